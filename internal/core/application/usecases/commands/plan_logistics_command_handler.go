package commands

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/model/shipment"
	"logistics/internal/core/domain/model/vehicle"
	"logistics/internal/core/domain/model/warehouse"
	"logistics/internal/core/domain/services/allocation"
	"logistics/internal/core/domain/services/capacityledger"
	"logistics/internal/core/domain/services/routing"
	"logistics/internal/core/ports"
	"logistics/internal/metrics"
	"logistics/internal/pkg/errs"
)

// OrderAllocator plans one allocation over a snapshot of orders and vehicles.
// Satisfied by *allocation.Allocator.
type OrderAllocator interface {
	Allocate(ctx context.Context, orders []*order.Order, vehicles []*vehicle.Vehicle,
		departAt time.Time, weather *routing.WeatherContext) (allocation.Result, error)
}

// PlanOutcome is the per-order result of a planning cycle.
type PlanOutcome struct {
	OrderID    kernel.UUID
	Assigned   bool
	VehicleID  *kernel.UUID
	ShipmentID *kernel.UUID
	Reason     string
}

// PlanResult is the full result of one planning cycle. Partial success is
// the normal case: unplaceable orders appear as outcomes, never as errors.
type PlanResult struct {
	PlanID   kernel.UUID
	DepartAt time.Time
	Routes   []ports.PlannedRoute
	Outcomes []PlanOutcome
}

// Outcome reasons beyond the allocator's own, produced while committing
// reservations.
const (
	reasonCapacityConflict = "capacity_conflict"
)

// PlanLogisticsCommandHandler runs the planning cycle: snapshot pending
// orders and fleet state, allocate, reserve capacity through the ledger,
// persist assignments and shipments, then publish the plan.
//
// Only one cycle runs at a time; a second concurrent Handle call blocks
// until the first finishes.
type PlanLogisticsCommandHandler struct {
	uowFactory PlanUoWFactory
	allocator  OrderAllocator
	routes     allocation.RouteBuilder
	ledger     *capacityledger.Ledger
	weather    ports.WeatherProvider
	publisher  ports.EventPublisher
	log        *slog.Logger
	now        func() time.Time

	mu sync.Mutex
}

// NewPlanLogisticsCommandHandler creates the planning cycle handler.
// The weather provider and publisher may be nil; planning then proceeds
// unadjusted and unannounced.
func NewPlanLogisticsCommandHandler(uowFactory PlanUoWFactory, allocator OrderAllocator,
	routes allocation.RouteBuilder, ledger *capacityledger.Ledger,
	weather ports.WeatherProvider, publisher ports.EventPublisher,
	log *slog.Logger) (*PlanLogisticsCommandHandler, error) {
	if uowFactory == nil {
		return nil, errs.NewValueIsRequiredError("uowFactory")
	}
	if allocator == nil {
		return nil, errs.NewValueIsRequiredError("allocator")
	}
	if routes == nil {
		return nil, errs.NewValueIsRequiredError("routes")
	}
	if ledger == nil {
		return nil, errs.NewValueIsRequiredError("ledger")
	}
	if log == nil {
		log = slog.Default()
	}

	return &PlanLogisticsCommandHandler{
		uowFactory: uowFactory,
		allocator:  allocator,
		routes:     routes,
		ledger:     ledger,
		weather:    weather,
		publisher:  publisher,
		log:        log,
		now:        time.Now,
	}, nil
}

// Handle runs one planning cycle.
//
// Order-scoped failures (no capacity, no feasible route, reservation
// conflicts) become PlanOutcome entries and the cycle continues; only
// infrastructure failures abort the cycle. Ledger reservations taken during
// an aborted cycle are rolled back before returning.
func (h *PlanLogisticsCommandHandler) Handle(ctx context.Context,
	cmd PlanLogisticsCommand) (PlanResult, error) {
	if err := cmd.Validate(); err != nil {
		return PlanResult{}, err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	started := h.now()
	result, err := h.runCycle(ctx, cmd)
	metrics.PlanningDuration.Observe(h.now().Sub(started).Seconds())
	if err != nil {
		metrics.PlanningCycles.WithLabelValues("failure").Inc()
		return PlanResult{}, err
	}

	metrics.PlanningCycles.WithLabelValues("success").Inc()
	return result, nil
}

func (h *PlanLogisticsCommandHandler) runCycle(ctx context.Context,
	cmd PlanLogisticsCommand) (PlanResult, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return PlanResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orders, vehicles, warehouses, err := h.snapshot(ctx, uow, cmd)
	if err != nil {
		return PlanResult{}, err
	}

	if err = h.seedLedger(vehicles, warehouses); err != nil {
		return PlanResult{}, err
	}

	weather := h.currentWeather(ctx, warehouses)

	allocated, err := h.allocator.Allocate(ctx, orders, vehicles, cmd.DepartAt(), weather)
	if err != nil {
		return PlanResult{}, err
	}

	result := PlanResult{
		PlanID:   kernel.NewUUID(),
		DepartAt: cmd.DepartAt(),
	}

	for _, u := range allocated.Unassigned {
		result.Outcomes = append(result.Outcomes, PlanOutcome{
			OrderID: u.Order.ID(),
			Reason:  string(u.Reason),
		})
	}

	warehousesByID := make(map[string]*warehouse.Warehouse, len(warehouses))
	for _, w := range warehouses {
		warehousesByID[w.ID().String()] = w
	}

	var undo undoLog
	for _, assignment := range allocated.Assignments {
		if err = ctx.Err(); err != nil {
			undo.revert(h.ledger)
			return PlanResult{}, err
		}

		if err = h.commitAssignment(ctx, uow, assignment, warehousesByID,
			cmd.DepartAt(), weather, &undo, &result); err != nil {
			undo.revert(h.ledger)
			return PlanResult{}, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		undo.revert(h.ledger)
		return PlanResult{}, err
	}

	h.report(ctx, result)
	return result, nil
}

// snapshot loads the cycle's working set inside the transaction.
func (h *PlanLogisticsCommandHandler) snapshot(ctx context.Context, uow PlanUoW,
	cmd PlanLogisticsCommand) ([]*order.Order, []*vehicle.Vehicle, []*warehouse.Warehouse, error) {
	orders, err := uow.OrderRepository().GetAllInPendingStatus(ctx)
	if err != nil {
		return nil, nil, nil, err
	}

	if filter := cmd.OrderIDs(); len(filter) > 0 {
		wanted := make(map[string]struct{}, len(filter))
		for _, id := range filter {
			wanted[id.String()] = struct{}{}
		}

		filtered := orders[:0]
		for _, ord := range orders {
			if _, ok := wanted[ord.ID().String()]; ok {
				filtered = append(filtered, ord)
			}
		}
		orders = filtered
	}

	vehicles, err := uow.VehicleRepository().GetAll(ctx)
	if err != nil {
		return nil, nil, nil, err
	}

	warehouses, err := uow.WarehouseRepository().GetAll(ctx)
	if err != nil {
		return nil, nil, nil, err
	}

	return orders, vehicles, warehouses, nil
}

// seedLedger refreshes the capacity ledger from the snapshot. Vehicle
// accounts track load against capacity; warehouse accounts track stock
// still on hand, so "occupied" is what is already promised elsewhere.
func (h *PlanLogisticsCommandHandler) seedLedger(vehicles []*vehicle.Vehicle,
	warehouses []*warehouse.Warehouse) error {
	for _, v := range vehicles {
		id := capacityledger.ResourceID{Kind: capacityledger.KindVehicle, ID: v.ID()}
		if err := h.ledger.Register(id, v.Capacity(), v.CurrentLoad()); err != nil {
			return err
		}
	}

	for _, w := range warehouses {
		id := capacityledger.ResourceID{Kind: capacityledger.KindWarehouse, ID: w.ID()}
		if err := h.ledger.Register(id, w.MaxCapacity(), w.Occupied()); err != nil {
			return err
		}
	}

	return nil
}

// currentWeather asks the provider for conditions around the depot region.
// Missing provider or missing data both mean unadjusted planning.
func (h *PlanLogisticsCommandHandler) currentWeather(ctx context.Context,
	warehouses []*warehouse.Warehouse) *routing.WeatherContext {
	if h.weather == nil || len(warehouses) == 0 {
		return nil
	}

	weather, err := h.weather.Current(ctx, warehouses[0].Location())
	if err != nil {
		h.log.Warn("weather provider failed, planning unadjusted", "error", err)
		return nil
	}

	return weather
}

// commitAssignment reserves capacity for one vehicle's orders, persists the
// order transitions and creates shipments. Orders losing a reservation race
// are reported unassigned; the rest of the assignment proceeds.
func (h *PlanLogisticsCommandHandler) commitAssignment(ctx context.Context, uow PlanUoW,
	assignment allocation.Assignment, warehousesByID map[string]*warehouse.Warehouse,
	departAt time.Time, weather *routing.WeatherContext,
	undo *undoLog, result *PlanResult) error {
	veh := assignment.Vehicle
	vehicleResource := capacityledger.ResourceID{Kind: capacityledger.KindVehicle, ID: veh.ID()}

	// Phase one: take ledger reservations, collecting the survivors.
	survivors := make([]*order.Order, 0, len(assignment.Orders))
	for _, ord := range assignment.Orders {
		warehouseResource := capacityledger.ResourceID{
			Kind: capacityledger.KindWarehouse, ID: ord.WarehouseID(),
		}

		if err := h.ledger.Reserve(ctx, vehicleResource, ord.Weight()); err != nil {
			h.log.Warn("vehicle reservation lost, order stays pending",
				"order_id", ord.ID().String(), "vehicle_id", veh.ID().String(), "error", err)
			result.Outcomes = append(result.Outcomes, PlanOutcome{
				OrderID: ord.ID(), Reason: reasonCapacityConflict,
			})
			continue
		}

		if err := h.ledger.Release(ctx, warehouseResource, ord.Weight()); err != nil {
			_ = h.ledger.Release(context.WithoutCancel(ctx), vehicleResource, ord.Weight())
			h.log.Warn("warehouse stock release failed, order stays pending",
				"order_id", ord.ID().String(), "warehouse_id", ord.WarehouseID().String(), "error", err)
			result.Outcomes = append(result.Outcomes, PlanOutcome{
				OrderID: ord.ID(), Reason: reasonCapacityConflict,
			})
			continue
		}

		undo.record(vehicleResource, warehouseResource, ord.Weight())
		survivors = append(survivors, ord)
	}

	if len(survivors) == 0 {
		return nil
	}

	// Phase two: make sure the route still covers exactly the survivors.
	route := assignment.Route
	if len(survivors) != len(assignment.Orders) {
		rebuilt, err := h.routes.BuildRoute(ctx, veh, survivors, departAt, weather)
		if err != nil {
			return fmt.Errorf("rebuild route for vehicle %s: %w", veh.ID(), err)
		}
		route = rebuilt
	}

	// Phase three: apply aggregate transitions and persist.
	for _, ord := range survivors {
		stock, ok := warehousesByID[ord.WarehouseID().String()]
		if !ok {
			return errs.NewObjectNotFoundError("warehouse", ord.WarehouseID())
		}

		if err := stock.Release(ord.Weight()); err != nil {
			return err
		}
		if err := veh.Load(ord.Weight()); err != nil {
			return err
		}
		if err := ord.Assign(veh.ID()); err != nil {
			return err
		}
		if err := uow.OrderRepository().Update(ctx, ord); err != nil {
			return err
		}
		if err := uow.WarehouseRepository().Update(ctx, stock); err != nil {
			return err
		}

		placed, err := shipment.NewShipment(kernel.NewUUID(), ord.ID(), veh.ID(), h.now())
		if err != nil {
			return err
		}
		if err = uow.ShipmentRepository().Add(ctx, placed); err != nil {
			return err
		}

		vehicleID := veh.ID()
		shipmentID := placed.ID()
		result.Outcomes = append(result.Outcomes, PlanOutcome{
			OrderID:    ord.ID(),
			Assigned:   true,
			VehicleID:  &vehicleID,
			ShipmentID: &shipmentID,
		})
	}

	if err := uow.VehicleRepository().Update(ctx, veh); err != nil {
		return err
	}

	result.Routes = append(result.Routes, ports.PlannedRoute{
		VehicleID:       veh.ID(),
		Stops:           route.Stops,
		TotalDistanceKm: route.TotalDistanceKm,
		Degraded:        route.Degraded,
	})

	return nil
}

// report publishes the committed plan and records the cycle's metrics.
func (h *PlanLogisticsCommandHandler) report(ctx context.Context, result PlanResult) {
	assigned := 0
	unassigned := 0
	for _, outcome := range result.Outcomes {
		if outcome.Assigned {
			assigned++
		} else {
			unassigned++
		}
	}

	metrics.OrdersPlanned.WithLabelValues("assigned").Add(float64(assigned))
	metrics.OrdersPlanned.WithLabelValues("unassigned").Add(float64(unassigned))
	for _, route := range result.Routes {
		if route.Degraded {
			metrics.DegradedRoutes.Inc()
			h.log.Warn("route built on fallback estimates",
				"vehicle_id", route.VehicleID.String(), "plan_id", result.PlanID.String())
		}
	}

	h.log.Info("planning cycle committed",
		"plan_id", result.PlanID.String(),
		"routes", len(result.Routes),
		"assigned", assigned,
		"unassigned", unassigned)

	if h.publisher == nil {
		return
	}

	h.publisher.PublishPlanCommitted(ctx, ports.PlanCommitted{
		PlanID:           result.PlanID,
		DepartAt:         result.DepartAt,
		Routes:           result.Routes,
		UnassignedOrders: unassigned,
	})
}

// undoLog tracks ledger reservations taken during a cycle so an aborted
// cycle can put the ledger back the way it found it.
type undoLog struct {
	entries []undoEntry
}

type undoEntry struct {
	vehicle   capacityledger.ResourceID
	warehouse capacityledger.ResourceID
	weight    int
}

func (u *undoLog) record(vehicle capacityledger.ResourceID,
	warehouse capacityledger.ResourceID, weight int) {
	u.entries = append(u.entries, undoEntry{vehicle: vehicle, warehouse: warehouse, weight: weight})
}

// revert undoes reservations in reverse order. Runs on a background context
// so cancellation of the cycle cannot strand the ledger.
func (u *undoLog) revert(ledger *capacityledger.Ledger) {
	ctx := context.Background()
	for i := len(u.entries) - 1; i >= 0; i-- {
		entry := u.entries[i]
		_ = ledger.Release(ctx, entry.vehicle, entry.weight)
		_ = ledger.Reserve(ctx, entry.warehouse, entry.weight)
	}
	u.entries = nil
}
