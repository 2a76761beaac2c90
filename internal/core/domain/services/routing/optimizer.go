package routing

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/model/vehicle"
	"logistics/internal/pkg/errs"
)

// ErrInfeasible is returned when no stop sequence can satisfy every order's
// delivery window within the vehicle's availability.
var ErrInfeasible = errors.New("no feasible route for the given orders")

const (
	// DefaultTwoOptBudget caps the number of 2-opt improvement passes when
	// the caller does not configure one.
	DefaultTwoOptBudget = 40

	// FallbackSpeedKmh is the conservative speed used when the distance
	// oracle is unavailable and a leg falls back to straight-line distance.
	FallbackSpeedKmh = 25.0

	// costEpsilon is the tolerance below which two insertion costs are
	// considered equal and the deadline tie-break applies.
	costEpsilon = 1e-6
)

// Stop is one visit on a planned route.
type Stop struct {
	OrderID kernel.UUID

	// Sequence is the 1-based position of the stop on the route.
	Sequence int

	// ETA is the expected arrival, clamped to the window earliest when the
	// vehicle would arrive before the window opens.
	ETA time.Time

	// LegDistanceKm is the distance from the previous stop (or the vehicle's
	// start position for the first stop).
	LegDistanceKm float64

	// CumulativeDistanceKm is the distance driven up to and including this leg.
	CumulativeDistanceKm float64
}

// Route is the optimizer's output for one vehicle.
type Route struct {
	VehicleID       kernel.UUID
	Stops           []Stop
	TotalDistanceKm float64
	TotalDuration   time.Duration

	// Degraded is set when any leg used the fallback estimate because the
	// distance oracle was unavailable.
	Degraded bool

	// BudgetExhausted is set when 2-opt stopped on its iteration budget while
	// still finding improvements. The route is the best found so far.
	BudgetExhausted bool
}

// InsertionCostFunc scores a candidate insertion during route construction.
// Lower is better. The default scores by marginal route time.
type InsertionCostFunc func(marginal time.Duration, candidate *order.Order) float64

// Optimizer builds delivery routes with greedy cheapest-insertion followed by
// a budget-bounded 2-opt improvement pass. BuildRoute never mutates its
// inputs; schedules are always recomputed from scratch rather than patched.
type Optimizer struct {
	estimator DistanceEstimator

	// TwoOptBudget caps 2-opt improvement passes. Zero means DefaultTwoOptBudget.
	TwoOptBudget int

	// InsertionCost scores candidate insertions. Nil means marginal route time.
	InsertionCost InsertionCostFunc
}

// NewOptimizer creates an Optimizer over the given distance estimator.
func NewOptimizer(estimator DistanceEstimator) (*Optimizer, error) {
	if estimator == nil {
		return nil, errs.NewValueIsRequiredError("estimator")
	}

	return &Optimizer{estimator: estimator}, nil
}

// BuildRoute plans the visiting order for the given orders on one vehicle.
//
// Construction is greedy cheapest-insertion: each round inserts the
// order/position pair with the lowest insertion cost, breaking cost ties in
// favour of the earlier latest-delivery deadline. A candidate is only
// considered if the resulting schedule honours every delivery window and the
// vehicle's availability, with early arrivals waiting at the window start. A
// departure before the vehicle comes on duty waits for the availability start.
// If any order cannot be placed the route is ErrInfeasible.
//
// The constructed sequence is then improved with 2-opt segment reversals,
// bounded by TwoOptBudget passes. Improvement stops early once a full pass
// finds no better sequence; hitting the budget while still improving returns
// the best sequence found with BudgetExhausted set.
func (o *Optimizer) BuildRoute(ctx context.Context, veh *vehicle.Vehicle,
	orders []*order.Order, departAt time.Time, weather *WeatherContext) (Route, error) {
	if err := veh.Validate(); err != nil {
		return Route{}, err
	}
	if departAt.IsZero() {
		return Route{}, errs.NewValueIsRequiredError("departAt")
	}
	for _, ord := range orders {
		if err := ord.Validate(); err != nil {
			return Route{}, err
		}
	}

	seq, planned, err := o.construct(ctx, veh, orders, departAt, weather)
	if err != nil {
		return Route{}, err
	}

	_, planned, exhausted, err := o.improve(ctx, veh, seq, planned, departAt, weather)
	if err != nil {
		return Route{}, err
	}

	return Route{
		VehicleID:       veh.ID(),
		Stops:           planned.stops,
		TotalDistanceKm: planned.totalKm,
		TotalDuration:   planned.duration,
		Degraded:        planned.degraded,
		BudgetExhausted: exhausted,
	}, nil
}

// plan is a fully propagated schedule for one candidate sequence.
type plan struct {
	stops    []Stop
	totalKm  float64
	duration time.Duration
	degraded bool
}

// construct runs greedy cheapest-insertion until every order is placed.
func (o *Optimizer) construct(ctx context.Context, veh *vehicle.Vehicle,
	orders []*order.Order, departAt time.Time,
	weather *WeatherContext) ([]*order.Order, plan, error) {
	seq := make([]*order.Order, 0, len(orders))
	current := plan{}

	remaining := append([]*order.Order(nil), orders...)

	for len(remaining) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, plan{}, err
		}

		bestRemaining := -1
		bestPos := -1
		bestCost := math.Inf(1)
		var bestDeadline time.Time
		var bestPlan plan

		for ri, candidate := range remaining {
			for pos := 0; pos <= len(seq); pos++ {
				trial := insertAt(seq, pos, candidate)

				trialPlan, feasible, err := o.schedule(veh, trial, departAt, weather)
				if err != nil {
					return nil, plan{}, err
				}
				if !feasible {
					continue
				}

				marginal := trialPlan.duration - current.duration
				cost := o.insertionCost(marginal, candidate)
				deadline := candidate.Window().Latest()

				better := cost < bestCost-costEpsilon
				tied := math.Abs(cost-bestCost) <= costEpsilon
				if better || (tied && deadline.Before(bestDeadline)) {
					bestRemaining = ri
					bestPos = pos
					bestCost = cost
					bestDeadline = deadline
					bestPlan = trialPlan
				}
			}
		}

		if bestRemaining < 0 {
			return nil, plan{}, fmt.Errorf("%w: %d of %d orders could not be scheduled",
				ErrInfeasible, len(remaining), len(orders))
		}

		seq = insertAt(seq, bestPos, remaining[bestRemaining])
		current = bestPlan
		remaining = append(remaining[:bestRemaining], remaining[bestRemaining+1:]...)
	}

	return seq, current, nil
}

// improve applies 2-opt segment reversals until converged or out of budget.
func (o *Optimizer) improve(ctx context.Context, veh *vehicle.Vehicle,
	seq []*order.Order, current plan, departAt time.Time,
	weather *WeatherContext) ([]*order.Order, plan, bool, error) {
	if len(seq) < 3 {
		return seq, current, false, nil
	}

	budget := o.TwoOptBudget
	if budget <= 0 {
		budget = DefaultTwoOptBudget
	}

	for pass := 0; pass < budget; pass++ {
		if err := ctx.Err(); err != nil {
			return nil, plan{}, false, err
		}

		improved := false
		for i := 0; i < len(seq)-1; i++ {
			for k := i + 1; k < len(seq); k++ {
				trial := reverseSegment(seq, i, k)

				trialPlan, feasible, err := o.schedule(veh, trial, departAt, weather)
				if err != nil {
					return nil, plan{}, false, err
				}
				if !feasible {
					continue
				}

				if trialPlan.duration < current.duration-time.Microsecond {
					seq = trial
					current = trialPlan
					improved = true
				}
			}
		}

		if !improved {
			return seq, current, false, nil
		}
	}

	// Budget ran out while passes were still finding improvements.
	return seq, current, true, nil
}

// schedule propagates departure time through the sequence. Departure before
// the vehicle's availability waits for the availability start, and arrival
// before a window waits at the window earliest. Arrival after the window
// latest, or after the vehicle's availability ends, makes the sequence
// infeasible. The boolean result separates infeasibility from hard errors.
func (o *Optimizer) schedule(veh *vehicle.Vehicle, seq []*order.Order,
	departAt time.Time, weather *WeatherContext) (plan, bool, error) {
	result := plan{stops: make([]Stop, 0, len(seq))}

	availability := veh.Availability()

	at := departAt
	if at.Before(availability.Earliest()) {
		at = availability.Earliest()
	}
	from := veh.Location()

	for i, ord := range seq {
		estimate, degraded, err := o.estimateLeg(from, ord.Destination(), at, weather)
		if err != nil {
			return plan{}, false, err
		}

		arrival := at.Add(estimate.Duration)
		window := ord.Window()
		if arrival.Before(window.Earliest()) {
			arrival = window.Earliest()
		}
		if arrival.After(window.Latest()) || arrival.After(availability.Latest()) {
			return plan{}, false, nil
		}

		result.totalKm += estimate.DistanceKm
		result.degraded = result.degraded || degraded
		result.stops = append(result.stops, Stop{
			OrderID:              ord.ID(),
			Sequence:             i + 1,
			ETA:                  arrival,
			LegDistanceKm:        estimate.DistanceKm,
			CumulativeDistanceKm: result.totalKm,
		})

		at = arrival
		from = ord.Destination()
	}

	result.duration = at.Sub(departAt)
	return result, true, nil
}

// estimateLeg consults the oracle, falling back to straight-line distance at
// a conservative speed when the oracle is unavailable. Any other estimator
// error propagates.
func (o *Optimizer) estimateLeg(from kernel.GeoLocation, to kernel.GeoLocation,
	at time.Time, weather *WeatherContext) (Estimate, bool, error) {
	estimate, err := o.estimator.Estimate(from, to, at, weather)
	if err == nil {
		return estimate, false, nil
	}
	if !errors.Is(err, ErrOracleUnavailable) {
		return Estimate{}, false, err
	}

	distanceKm, distErr := from.DistanceTo(to)
	if distErr != nil {
		return Estimate{}, false, distErr
	}

	hours := distanceKm / FallbackSpeedKmh
	return Estimate{
		DistanceKm: distanceKm,
		Duration:   time.Duration(hours * float64(time.Hour)),
	}, true, nil
}

// insertionCost applies the configured scoring hook or the marginal-time default.
func (o *Optimizer) insertionCost(marginal time.Duration, candidate *order.Order) float64 {
	if o.InsertionCost != nil {
		return o.InsertionCost(marginal, candidate)
	}
	return marginal.Seconds()
}

// insertAt returns a new slice with value inserted at pos.
func insertAt(seq []*order.Order, pos int, value *order.Order) []*order.Order {
	out := make([]*order.Order, 0, len(seq)+1)
	out = append(out, seq[:pos]...)
	out = append(out, value)
	out = append(out, seq[pos:]...)
	return out
}

// reverseSegment returns a new slice with seq[i..k] reversed.
func reverseSegment(seq []*order.Order, i int, k int) []*order.Order {
	out := make([]*order.Order, len(seq))
	copy(out, seq[:i])
	pos := i
	for j := k; j >= i; j-- {
		out[pos] = seq[j]
		pos++
	}
	copy(out[pos:], seq[k+1:])
	return out
}
