package cmd

import (
	"fmt"
	"log/slog"

	"logistics/internal/adapters/out/eventlog"
	"logistics/internal/adapters/out/postgres"
	"logistics/internal/adapters/out/weather"
	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/domain/services/allocation"
	"logistics/internal/core/domain/services/capacityledger"
	"logistics/internal/core/domain/services/routing"

	"gorm.io/gorm"
)

// CompositionRoot wires every adapter and use case together. The planning
// handler and the capacity ledger are shared singletons: the handler
// serializes cycles and the ledger is the single source of reservation truth.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory

	logger    *slog.Logger
	publisher *eventlog.SlogPublisher
	ledger    *capacityledger.Ledger
	weather   *weather.StaticProvider

	planHandler *commands.PlanLogisticsCommandHandler
}

// NewCompositionRoot builds the object graph. Fails only on broken static
// configuration, never on runtime conditions.
func NewCompositionRoot(_ Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	root := &CompositionRoot{
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:     logger,
		publisher:  eventlog.NewSlogPublisher(logger),
		weather:    weather.NewStaticProvider(),
	}
	root.ledger = capacityledger.NewLedger(root.publisher)

	estimator, err := routing.NewHaversineEstimator(routing.DefaultSpeedKmh)
	if err != nil {
		return nil, fmt.Errorf("create distance estimator: %w", err)
	}

	optimizer, err := routing.NewOptimizer(estimator)
	if err != nil {
		return nil, fmt.Errorf("create route optimizer: %w", err)
	}

	allocator, err := allocation.NewAllocator(optimizer)
	if err != nil {
		return nil, fmt.Errorf("create allocator: %w", err)
	}

	var planFactory commands.PlanUoWFactory = FuncPlanUoWFactory(func() commands.PlanUoW {
		return root.uowFactory.Create()
	})

	root.planHandler, err = commands.NewPlanLogisticsCommandHandler(planFactory,
		allocator, optimizer, root.ledger, root.weather, root.publisher, logger)
	if err != nil {
		return nil, fmt.Errorf("create planning handler: %w", err)
	}

	return root, nil
}

// WeatherProvider exposes the provider so operators can seed conditions.
func (c *CompositionRoot) WeatherProvider() *weather.StaticProvider {
	return c.weather
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateRegisterVehicleCommandHandler() commands.RegisterVehicleCommandHandler {
	var f commands.VehicleUoWFactory = FuncVehicleUoWFactory(func() commands.VehicleUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRegisterVehicleCommandHandler(f)
}

func (c *CompositionRoot) CreateRegisterWarehouseCommandHandler() commands.RegisterWarehouseCommandHandler {
	var f commands.WarehouseUoWFactory = FuncWarehouseUoWFactory(func() commands.WarehouseUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRegisterWarehouseCommandHandler(f)
}

func (c *CompositionRoot) CreateAdvanceShipmentCommandHandler() commands.AdvanceShipmentCommandHandler {
	var f commands.ShipmentUoWFactory = FuncShipmentUoWFactory(func() commands.ShipmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAdvanceShipmentCommandHandler(f)
}

func (c *CompositionRoot) CreateVerifyDeliveryCommandHandler() commands.VerifyDeliveryCommandHandler {
	var f commands.ShipmentUoWFactory = FuncShipmentUoWFactory(func() commands.ShipmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewVerifyDeliveryCommandHandler(f, c.ledger)
}

func (c *CompositionRoot) CreateReportIncidentCommandHandler() commands.ReportIncidentCommandHandler {
	var f commands.IncidentUoWFactory = FuncIncidentUoWFactory(func() commands.IncidentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReportIncidentCommandHandler(f)
}

func (c *CompositionRoot) CreateResolveIncidentCommandHandler() commands.ResolveIncidentCommandHandler {
	var f commands.IncidentUoWFactory = FuncIncidentUoWFactory(func() commands.IncidentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewResolveIncidentCommandHandler(f)
}

// PlanLogisticsCommandHandler returns the shared planning handler. HTTP and
// the scheduled job must use the same instance so cycles stay serialized.
func (c *CompositionRoot) PlanLogisticsCommandHandler() *commands.PlanLogisticsCommandHandler {
	return c.planHandler
}

func (c *CompositionRoot) CreateGetPendingOrdersQueryHandler() queries.GetPendingOrdersQueryHandler {
	return queries.NewGetPendingOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetShipmentsQueryHandler() queries.GetShipmentsQueryHandler {
	return queries.NewGetShipmentsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetIncidentsQueryHandler() queries.GetIncidentsQueryHandler {
	return queries.NewGetIncidentsQueryHandler(c.gormDB)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncVehicleUoWFactory func() commands.VehicleUoW

func (f FuncVehicleUoWFactory) Create() commands.VehicleUoW {
	return f()
}

type FuncWarehouseUoWFactory func() commands.WarehouseUoW

func (f FuncWarehouseUoWFactory) Create() commands.WarehouseUoW {
	return f()
}

type FuncShipmentUoWFactory func() commands.ShipmentUoW

func (f FuncShipmentUoWFactory) Create() commands.ShipmentUoW {
	return f()
}

type FuncIncidentUoWFactory func() commands.IncidentUoW

func (f FuncIncidentUoWFactory) Create() commands.IncidentUoW {
	return f()
}

type FuncPlanUoWFactory func() commands.PlanUoW

func (f FuncPlanUoWFactory) Create() commands.PlanUoW {
	return f()
}
