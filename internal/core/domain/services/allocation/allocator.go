package allocation

import (
	"context"
	"errors"
	"sort"
	"time"

	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/model/vehicle"
	"logistics/internal/core/domain/services/routing"
	"logistics/internal/pkg/errs"
)

// UnassignedReason explains why an order could not be placed on any vehicle.
type UnassignedReason string

const (
	// ReasonNoCapacity means no vehicle had enough remaining capacity for
	// the order's weight.
	ReasonNoCapacity UnassignedReason = "no_capacity"

	// ReasonNoFeasibleRoute means at least one vehicle had capacity but no
	// vehicle could fit the order into a window-feasible route within its
	// availability.
	ReasonNoFeasibleRoute UnassignedReason = "no_feasible_route"
)

// Assignment is the tentative plan for one vehicle: the orders it should
// carry and the route that delivers them.
type Assignment struct {
	Vehicle *vehicle.Vehicle
	Orders  []*order.Order
	Route   routing.Route
}

// Unassigned reports an order the allocator could not place. Unplaceable
// orders are reported, never dropped.
type Unassigned struct {
	Order  *order.Order
	Reason UnassignedReason
}

// Result is the allocator's output for one planning cycle.
type Result struct {
	Assignments []Assignment
	Unassigned  []Unassigned
}

// RouteBuilder plans a route for one vehicle over a set of orders.
// Satisfied by *routing.Optimizer.
type RouteBuilder interface {
	BuildRoute(ctx context.Context, veh *vehicle.Vehicle, orders []*order.Order,
		departAt time.Time, weather *routing.WeatherContext) (routing.Route, error)
}

// Allocator assigns pending orders to vehicles using earliest-deadline-first
// greedy selection: orders are processed by ascending latest-delivery
// deadline, and each order goes to the vehicle whose route cost grows the
// least by taking it.
//
// The allocator never mutates the aggregates it is given. Capacity is tracked
// on local tallies; committing the plan (loading vehicles, reserving stock)
// is the caller's job.
type Allocator struct {
	routes RouteBuilder
}

// NewAllocator creates an Allocator over the given route builder.
func NewAllocator(routes RouteBuilder) (*Allocator, error) {
	if routes == nil {
		return nil, errs.NewValueIsRequiredError("routes")
	}

	return &Allocator{routes: routes}, nil
}

// candidate tracks one vehicle's tentative plan while allocation runs.
type candidate struct {
	vehicle   *vehicle.Vehicle
	orders    []*order.Order
	route     routing.Route
	remaining int
}

// Allocate plans one cycle over the given pending orders and vehicles.
//
// Orders are taken in ascending latest-deadline order. For each order, every
// vehicle with enough remaining capacity gets a tentative route including the
// order; the vehicle with the smallest marginal route-duration increase wins.
// Orders no vehicle can take are reported in Result.Unassigned with a reason
// distinguishing missing capacity from missing route feasibility.
func (a *Allocator) Allocate(ctx context.Context, orders []*order.Order,
	vehicles []*vehicle.Vehicle, departAt time.Time,
	weather *routing.WeatherContext) (Result, error) {
	if departAt.IsZero() {
		return Result{}, errs.NewValueIsRequiredError("departAt")
	}
	for _, ord := range orders {
		if err := ord.Validate(); err != nil {
			return Result{}, err
		}
	}

	candidates := make([]*candidate, 0, len(vehicles))
	for _, veh := range vehicles {
		if err := veh.Validate(); err != nil {
			return Result{}, err
		}
		candidates = append(candidates, &candidate{
			vehicle:   veh,
			remaining: veh.RemainingCapacity(),
		})
	}

	// Earliest deadline first. Stable so equal deadlines keep input order.
	sorted := append([]*order.Order(nil), orders...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Window().Latest().Before(sorted[j].Window().Latest())
	})

	result := Result{}

	for _, ord := range sorted {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}

		winner, route, reason, err := a.placeOrder(ctx, ord, candidates, departAt, weather)
		if err != nil {
			return Result{}, err
		}
		if winner == nil {
			result.Unassigned = append(result.Unassigned, Unassigned{Order: ord, Reason: reason})
			continue
		}

		winner.orders = append(winner.orders, ord)
		winner.route = route
		winner.remaining -= ord.Weight()
	}

	for _, c := range candidates {
		if len(c.orders) == 0 {
			continue
		}
		result.Assignments = append(result.Assignments, Assignment{
			Vehicle: c.vehicle,
			Orders:  c.orders,
			Route:   c.route,
		})
	}

	return result, nil
}

// placeOrder finds the vehicle whose route grows the least by taking the
// order. A nil winner comes with the reason no vehicle qualified.
func (a *Allocator) placeOrder(ctx context.Context, ord *order.Order,
	candidates []*candidate, departAt time.Time,
	weather *routing.WeatherContext) (*candidate, routing.Route, UnassignedReason, error) {
	var (
		winner      *candidate
		winnerRoute routing.Route
		bestDelta   time.Duration
		hadCapacity bool
	)

	for _, c := range candidates {
		if c.remaining < ord.Weight() {
			continue
		}
		hadCapacity = true

		trial := append(append([]*order.Order(nil), c.orders...), ord)
		route, err := a.routes.BuildRoute(ctx, c.vehicle, trial, departAt, weather)
		if errors.Is(err, routing.ErrInfeasible) {
			continue
		}
		if err != nil {
			return nil, routing.Route{}, "", err
		}

		delta := route.TotalDuration - c.route.TotalDuration
		if winner == nil || delta < bestDelta {
			winner = c
			winnerRoute = route
			bestDelta = delta
		}
	}

	if winner == nil {
		reason := ReasonNoCapacity
		if hadCapacity {
			reason = ReasonNoFeasibleRoute
		}
		return nil, routing.Route{}, reason, nil
	}

	return winner, winnerRoute, "", nil
}
