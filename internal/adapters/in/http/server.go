// Package http exposes the logistics core over a REST API.
// It coordinates between HTTP handlers and application use cases.
package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/domain/model/incident"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/shipment"
	"logistics/internal/core/domain/services/routing"
	"logistics/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// WeatherStore is the operational weather source the API reads and updates.
// Reports cover a coarse map cell; a nil lookup result means no data.
type WeatherStore interface {
	Current(ctx context.Context, at kernel.GeoLocation) (*routing.WeatherContext, error)
	Set(at kernel.GeoLocation, weather routing.WeatherContext)
}

// Server wires the REST endpoints to the command and query handlers.
type Server struct {
	// Command handlers
	createOrderHandler       commands.CreateOrderCommandHandler
	registerVehicleHandler   commands.RegisterVehicleCommandHandler
	registerWarehouseHandler commands.RegisterWarehouseCommandHandler
	planLogisticsHandler     *commands.PlanLogisticsCommandHandler
	advanceShipmentHandler   commands.AdvanceShipmentCommandHandler
	verifyDeliveryHandler    commands.VerifyDeliveryCommandHandler
	reportIncidentHandler    commands.ReportIncidentCommandHandler
	resolveIncidentHandler   commands.ResolveIncidentCommandHandler

	// Query handlers
	getPendingOrdersHandler queries.GetPendingOrdersQueryHandler
	getShipmentsHandler     queries.GetShipmentsQueryHandler
	getIncidentsHandler     queries.GetIncidentsQueryHandler

	weather WeatherStore
}

// NewServer creates an HTTP server over the given command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	registerVehicleHandler commands.RegisterVehicleCommandHandler,
	registerWarehouseHandler commands.RegisterWarehouseCommandHandler,
	planLogisticsHandler *commands.PlanLogisticsCommandHandler,
	advanceShipmentHandler commands.AdvanceShipmentCommandHandler,
	verifyDeliveryHandler commands.VerifyDeliveryCommandHandler,
	reportIncidentHandler commands.ReportIncidentCommandHandler,
	resolveIncidentHandler commands.ResolveIncidentCommandHandler,
	getPendingOrdersHandler queries.GetPendingOrdersQueryHandler,
	getShipmentsHandler queries.GetShipmentsQueryHandler,
	getIncidentsHandler queries.GetIncidentsQueryHandler,
	weather WeatherStore,
) *Server {
	return &Server{
		createOrderHandler:       createOrderHandler,
		registerVehicleHandler:   registerVehicleHandler,
		registerWarehouseHandler: registerWarehouseHandler,
		planLogisticsHandler:     planLogisticsHandler,
		advanceShipmentHandler:   advanceShipmentHandler,
		verifyDeliveryHandler:    verifyDeliveryHandler,
		reportIncidentHandler:    reportIncidentHandler,
		resolveIncidentHandler:   resolveIncidentHandler,
		getPendingOrdersHandler:  getPendingOrdersHandler,
		getShipmentsHandler:      getShipmentsHandler,
		getIncidentsHandler:      getIncidentsHandler,
		weather:                  weather,
	}
}

// RegisterRoutes mounts every API endpoint on the given echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/pending", s.GetPendingOrders)

	api.POST("/vehicles", s.RegisterVehicle)
	api.POST("/warehouses", s.RegisterWarehouse)

	api.POST("/logistics/plan", s.PlanLogistics)
	api.POST("/logistics/delivery/verify", s.VerifyDelivery)

	api.GET("/shipments", s.GetShipments)
	api.GET("/shipments/active", s.GetActiveShipments)
	api.POST("/shipments/:id/advance", s.AdvanceShipment)

	api.POST("/incidents", s.ReportIncident)
	api.POST("/incidents/:id/resolve", s.ResolveIncident)
	api.GET("/incidents", s.GetIncidents)
	api.GET("/incidents/open", s.GetOpenIncidents)

	api.GET("/weather", s.GetWeather)
	api.POST("/weather", s.ReportWeather)
}

// CreateOrder handles POST /api/v1/orders - places a new order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var newOrder NewOrder
	if err := ctx.Bind(&newOrder); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	warehouseID, err := kernel.UUIDFromString(newOrder.WarehouseID)
	if err != nil {
		return badRequest(ctx, "Invalid warehouse_id: "+err.Error())
	}

	destination, err := kernel.NewGeoLocation(newOrder.Destination.Lat, newOrder.Destination.Lng)
	if err != nil {
		return badRequest(ctx, "Invalid destination: "+err.Error())
	}

	window, err := kernel.NewTimeWindow(newOrder.Window.Earliest, newOrder.Window.Latest)
	if err != nil {
		return badRequest(ctx, "Invalid window: "+err.Error())
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(orderID, warehouseID, destination,
		newOrder.Weight, window)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	if handleErr := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return domainError(ctx, handleErr, "Failed to create order")
	}

	return ctx.JSON(http.StatusCreated, Created{ID: orderID.String()})
}

// GetPendingOrders handles GET /api/v1/orders/pending.
func (s *Server) GetPendingOrders(ctx echo.Context) error {
	query := queries.NewGetPendingOrdersQuery()

	orders, err := s.getPendingOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return internalError(ctx, "Failed to retrieve pending orders")
	}

	response := make([]PendingOrder, len(orders))
	for i, pending := range orders {
		response[i] = PendingOrder{
			ID:          pending.ID.String(),
			WarehouseID: pending.WarehouseID.String(),
			Destination: Location{
				Lat: pending.Destination.Lat(),
				Lng: pending.Destination.Lng(),
			},
			Weight: pending.Weight,
			Window: TimeWindow{
				Earliest: pending.Window.Earliest(),
				Latest:   pending.Window.Latest(),
			},
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// RegisterVehicle handles POST /api/v1/vehicles - adds a vehicle to the fleet.
func (s *Server) RegisterVehicle(ctx echo.Context) error {
	var newVehicle NewVehicle
	if err := ctx.Bind(&newVehicle); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	warehouseID, err := kernel.UUIDFromString(newVehicle.WarehouseID)
	if err != nil {
		return badRequest(ctx, "Invalid warehouse_id: "+err.Error())
	}

	location, err := kernel.NewGeoLocation(newVehicle.Location.Lat, newVehicle.Location.Lng)
	if err != nil {
		return badRequest(ctx, "Invalid location: "+err.Error())
	}

	availability, err := kernel.NewTimeWindow(newVehicle.Availability.Earliest,
		newVehicle.Availability.Latest)
	if err != nil {
		return badRequest(ctx, "Invalid availability: "+err.Error())
	}

	vehicleID := kernel.NewUUID()
	cmd, err := commands.NewRegisterVehicleCommand(vehicleID, newVehicle.Name,
		warehouseID, newVehicle.Capacity, location, availability)
	if err != nil {
		return badRequest(ctx, "Invalid vehicle data: "+err.Error())
	}

	if handleErr := s.registerVehicleHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return domainError(ctx, handleErr, "Failed to register vehicle")
	}

	return ctx.JSON(http.StatusCreated, Created{ID: vehicleID.String()})
}

// RegisterWarehouse handles POST /api/v1/warehouses - adds a warehouse.
func (s *Server) RegisterWarehouse(ctx echo.Context) error {
	var newWarehouse NewWarehouse
	if err := ctx.Bind(&newWarehouse); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	location, err := kernel.NewGeoLocation(newWarehouse.Location.Lat, newWarehouse.Location.Lng)
	if err != nil {
		return badRequest(ctx, "Invalid location: "+err.Error())
	}

	warehouseID := kernel.NewUUID()
	cmd, err := commands.NewRegisterWarehouseCommand(warehouseID, newWarehouse.Name,
		location, newWarehouse.MaxCapacity)
	if err != nil {
		return badRequest(ctx, "Invalid warehouse data: "+err.Error())
	}

	if handleErr := s.registerWarehouseHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return domainError(ctx, handleErr, "Failed to register warehouse")
	}

	return ctx.JSON(http.StatusCreated, Created{ID: warehouseID.String()})
}

// PlanLogistics handles POST /api/v1/logistics/plan - runs one planning cycle.
// The body is optional; an empty one plans all pending orders departing now.
func (s *Server) PlanLogistics(ctx echo.Context) error {
	var request PlanRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	if request.DepartAt.IsZero() {
		request.DepartAt = time.Now()
	}

	orderIDs := make([]kernel.UUID, 0, len(request.OrderIDs))
	for _, raw := range request.OrderIDs {
		id, err := kernel.UUIDFromString(raw)
		if err != nil {
			return badRequest(ctx, "Invalid order ID "+raw+": "+err.Error())
		}
		orderIDs = append(orderIDs, id)
	}

	cmd, err := commands.NewPlanLogisticsCommand(request.DepartAt, orderIDs)
	if err != nil {
		return badRequest(ctx, "Invalid plan request: "+err.Error())
	}

	result, err := s.planLogisticsHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainError(ctx, err, "Planning cycle failed")
	}

	return ctx.JSON(http.StatusOK, toPlanResponse(result))
}

func toPlanResponse(result commands.PlanResult) PlanResponse {
	response := PlanResponse{
		PlanID:   result.PlanID.String(),
		DepartAt: result.DepartAt,
		Routes:   make([]PlanRoute, len(result.Routes)),
		Outcomes: make([]PlanOutcome, len(result.Outcomes)),
	}

	for i, route := range result.Routes {
		stops := make([]PlanStop, len(route.Stops))
		for j, stop := range route.Stops {
			stops[j] = PlanStop{
				OrderID:       stop.OrderID.String(),
				Sequence:      stop.Sequence,
				ETA:           stop.ETA,
				LegDistanceKm: stop.LegDistanceKm,
			}
		}
		response.Routes[i] = PlanRoute{
			VehicleID:       route.VehicleID.String(),
			Stops:           stops,
			TotalDistanceKm: route.TotalDistanceKm,
			Degraded:        route.Degraded,
		}
	}

	for i, outcome := range result.Outcomes {
		planOutcome := PlanOutcome{
			OrderID:  outcome.OrderID.String(),
			Assigned: outcome.Assigned,
			Reason:   outcome.Reason,
		}
		if outcome.VehicleID != nil {
			planOutcome.VehicleID = outcome.VehicleID.String()
		}
		if outcome.ShipmentID != nil {
			planOutcome.ShipmentID = outcome.ShipmentID.String()
		}
		response.Outcomes[i] = planOutcome
	}

	return response
}

// GetShipments handles GET /api/v1/shipments - lists all shipments.
func (s *Server) GetShipments(ctx echo.Context) error {
	return s.listShipments(ctx, queries.NewGetShipmentsQuery())
}

// GetActiveShipments handles GET /api/v1/shipments/active - lists shipments
// that have not reached a terminal stage.
func (s *Server) GetActiveShipments(ctx echo.Context) error {
	return s.listShipments(ctx, queries.NewGetActiveShipmentsQuery())
}

func (s *Server) listShipments(ctx echo.Context, query queries.GetShipmentsQuery) error {
	shipments, err := s.getShipmentsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return internalError(ctx, "Failed to retrieve shipments")
	}

	response := make([]Shipment, len(shipments))
	for i, item := range shipments {
		response[i] = Shipment{
			ID:            item.ID.String(),
			OrderID:       item.OrderID.String(),
			VehicleID:     item.VehicleID.String(),
			Stage:         item.Stage,
			PlacedAt:      item.PlacedAt,
			FailureReason: item.FailureReason,
			VerifiedBy:    item.VerifiedBy,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// AdvanceShipment handles POST /api/v1/shipments/:id/advance.
func (s *Server) AdvanceShipment(ctx echo.Context) error {
	shipmentID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid shipment ID: "+err.Error())
	}

	var advance AdvanceShipment
	if err = ctx.Bind(&advance); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	stage, err := shipment.ParseStage(advance.Stage)
	if err != nil {
		return badRequest(ctx, "Invalid stage: "+err.Error())
	}

	cmd, err := commands.NewAdvanceShipmentCommand(shipmentID, stage)
	if err != nil {
		return badRequest(ctx, "Invalid advance request: "+err.Error())
	}

	if handleErr := s.advanceShipmentHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return domainError(ctx, handleErr, "Failed to advance shipment")
	}

	return ctx.NoContent(http.StatusNoContent)
}

// VerifyDelivery handles POST /api/v1/logistics/delivery/verify - proof-of-delivery.
func (s *Server) VerifyDelivery(ctx echo.Context) error {
	var verify VerifyDelivery
	if err := ctx.Bind(&verify); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	shipmentID, err := kernel.UUIDFromString(verify.ShipmentID)
	if err != nil {
		return badRequest(ctx, "Invalid shipment_id: "+err.Error())
	}

	cmd, err := commands.NewVerifyDeliveryCommand(shipmentID, verify.Pin, verify.VerifiedBy)
	if err != nil {
		return badRequest(ctx, "Invalid verification request: "+err.Error())
	}

	if handleErr := s.verifyDeliveryHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return domainError(ctx, handleErr, "Failed to verify delivery")
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ReportIncident handles POST /api/v1/incidents - reports a disruption and
// returns the derived assessment.
func (s *Server) ReportIncident(ctx echo.Context) error {
	var report NewIncident
	if err := ctx.Bind(&report); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	shipmentID, err := kernel.UUIDFromString(report.ShipmentID)
	if err != nil {
		return badRequest(ctx, "Invalid shipment_id: "+err.Error())
	}

	incidentID := kernel.NewUUID()
	cmd, err := commands.NewReportIncidentCommand(incidentID, shipmentID,
		incident.Type(report.Type), report.Description)
	if err != nil {
		return badRequest(ctx, "Invalid incident data: "+err.Error())
	}

	reported, err := s.reportIncidentHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainError(ctx, err, "Failed to report incident")
	}

	return ctx.JSON(http.StatusCreated, IncidentAssessment{
		ID:            reported.ID().String(),
		ShipmentID:    reported.ShipmentID().String(),
		Severity:      string(reported.Severity()),
		DelayMinutes:  reported.DelayMinutes(),
		RecoverySteps: reported.RecoverySteps(),
	})
}

// ResolveIncident handles POST /api/v1/incidents/:id/resolve.
func (s *Server) ResolveIncident(ctx echo.Context) error {
	incidentID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid incident ID: "+err.Error())
	}

	cmd, err := commands.NewResolveIncidentCommand(incidentID)
	if err != nil {
		return badRequest(ctx, "Invalid resolve request: "+err.Error())
	}

	if handleErr := s.resolveIncidentHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return domainError(ctx, handleErr, "Failed to resolve incident")
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetIncidents handles GET /api/v1/incidents - lists every reported incident.
func (s *Server) GetIncidents(ctx echo.Context) error {
	return s.listIncidents(ctx, queries.NewGetIncidentsQuery())
}

// GetOpenIncidents handles GET /api/v1/incidents/open - lists incidents that
// still need dispatcher attention.
func (s *Server) GetOpenIncidents(ctx echo.Context) error {
	return s.listIncidents(ctx, queries.NewGetOpenIncidentsQuery())
}

func (s *Server) listIncidents(ctx echo.Context, query queries.GetIncidentsQuery) error {
	incidents, err := s.getIncidentsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return internalError(ctx, "Failed to retrieve incidents")
	}

	response := make([]Incident, len(incidents))
	for i, item := range incidents {
		response[i] = Incident{
			ID:           item.ID.String(),
			ShipmentID:   item.ShipmentID.String(),
			Type:         item.IncidentType,
			Description:  item.Description,
			Severity:     item.Severity,
			DelayMinutes: item.DelayMinutes,
			Status:       item.Status,
			ReportedAt:   item.ReportedAt,
		}
		if !item.ResolvedAt.IsZero() {
			resolvedAt := item.ResolvedAt
			response[i].ResolvedAt = &resolvedAt
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetWeather handles GET /api/v1/weather?lat=..&lng=.. - reports the
// conditions planning would use for that coordinate.
func (s *Server) GetWeather(ctx echo.Context) error {
	lat, err := strconv.ParseFloat(ctx.QueryParam("lat"), 64)
	if err != nil {
		return badRequest(ctx, "Invalid lat query parameter")
	}
	lng, err := strconv.ParseFloat(ctx.QueryParam("lng"), 64)
	if err != nil {
		return badRequest(ctx, "Invalid lng query parameter")
	}

	at, err := kernel.NewGeoLocation(lat, lng)
	if err != nil {
		return badRequest(ctx, "Invalid coordinates: "+err.Error())
	}

	conditions, err := s.weather.Current(ctx.Request().Context(), at)
	if err != nil {
		return internalError(ctx, "Failed to look up weather")
	}

	if conditions == nil {
		return ctx.JSON(http.StatusOK, WeatherConditions{Available: false})
	}

	return ctx.JSON(http.StatusOK, WeatherConditions{
		Available: true,
		Condition: string(conditions.Condition),
		Severity:  conditions.Severity,
	})
}

// ReportWeather handles POST /api/v1/weather - records conditions over the
// cell containing the given location.
func (s *Server) ReportWeather(ctx echo.Context) error {
	var report WeatherReport
	if err := ctx.Bind(&report); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	condition := routing.Condition(report.Condition)
	switch condition {
	case routing.ConditionClear, routing.ConditionRain, routing.ConditionFog,
		routing.ConditionStorm, routing.ConditionSnow:
	default:
		return badRequest(ctx, "Unknown weather condition: "+report.Condition)
	}

	at, err := kernel.NewGeoLocation(report.Location.Lat, report.Location.Lng)
	if err != nil {
		return badRequest(ctx, "Invalid location: "+err.Error())
	}

	s.weather.Set(at, routing.WeatherContext{
		Condition: condition,
		Severity:  report.Severity,
	})

	return ctx.NoContent(http.StatusNoContent)
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

func internalError(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusInternalServerError, Error{
		Code:    http.StatusInternalServerError,
		Message: message,
	})
}

// domainError maps a use case error to the HTTP status it deserves:
// missing aggregates are 404, rejected state transitions are 409 and
// everything else is a 500.
func domainError(ctx echo.Context, err error, message string) error {
	status := http.StatusInternalServerError

	var notFound *errs.ObjectNotFoundError
	switch {
	case errors.As(err, &notFound):
		status = http.StatusNotFound
	case errors.Is(err, shipment.ErrInvalidTransition),
		errors.Is(err, shipment.ErrVerificationFailed),
		errors.Is(err, incident.ErrAlreadyResolved):
		status = http.StatusConflict
	}

	return ctx.JSON(status, Error{
		Code:    status,
		Message: message + ": " + err.Error(),
	})
}
