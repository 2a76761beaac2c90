package http

import "time"

// Error is the standard error payload returned by every endpoint.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Location is a geographic point in request and response bodies.
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// TimeWindow bounds when an order must be delivered or a vehicle is on duty.
type TimeWindow struct {
	Earliest time.Time `json:"earliest"`
	Latest   time.Time `json:"latest"`
}

// NewOrder is the request body for creating an order.
type NewOrder struct {
	WarehouseID string     `json:"warehouse_id"`
	Destination Location   `json:"destination"`
	Weight      int        `json:"weight"`
	Window      TimeWindow `json:"window"`
}

// NewVehicle is the request body for registering a vehicle.
type NewVehicle struct {
	Name         string     `json:"name"`
	WarehouseID  string     `json:"warehouse_id"`
	Capacity     int        `json:"capacity"`
	Location     Location   `json:"location"`
	Availability TimeWindow `json:"availability"`
}

// NewWarehouse is the request body for registering a warehouse.
type NewWarehouse struct {
	Name        string   `json:"name"`
	Location    Location `json:"location"`
	MaxCapacity int      `json:"max_capacity"`
}

// Created is returned by creation endpoints with the new aggregate's ID.
type Created struct {
	ID string `json:"id"`
}

// PendingOrder is one order awaiting assignment.
type PendingOrder struct {
	ID          string     `json:"id"`
	WarehouseID string     `json:"warehouse_id"`
	Destination Location   `json:"destination"`
	Weight      int        `json:"weight"`
	Window      TimeWindow `json:"window"`
}

// PlanRequest triggers a planning cycle. DepartAt defaults to now and an
// empty OrderIDs list means every pending order is considered.
type PlanRequest struct {
	DepartAt time.Time `json:"depart_at,omitempty"`
	OrderIDs []string  `json:"order_ids,omitempty"`
}

// PlanStop is one stop on a planned route.
type PlanStop struct {
	OrderID       string    `json:"order_id"`
	Sequence      int       `json:"sequence"`
	ETA           time.Time `json:"eta"`
	LegDistanceKm float64   `json:"leg_distance_km"`
}

// PlanRoute is the per-vehicle slice of a committed plan.
type PlanRoute struct {
	VehicleID       string     `json:"vehicle_id"`
	Stops           []PlanStop `json:"stops"`
	TotalDistanceKm float64    `json:"total_distance_km"`
	Degraded        bool       `json:"degraded"`
}

// PlanOutcome reports what happened to one considered order.
type PlanOutcome struct {
	OrderID    string `json:"order_id"`
	Assigned   bool   `json:"assigned"`
	VehicleID  string `json:"vehicle_id,omitempty"`
	ShipmentID string `json:"shipment_id,omitempty"`
	Reason     string `json:"reason,omitempty"`
}

// PlanResponse is the result of one planning cycle.
type PlanResponse struct {
	PlanID   string        `json:"plan_id"`
	DepartAt time.Time     `json:"depart_at"`
	Routes   []PlanRoute   `json:"routes"`
	Outcomes []PlanOutcome `json:"outcomes"`
}

// Shipment is one shipment in list responses. The verification PIN never
// appears here; it travels to the recipient out of band.
type Shipment struct {
	ID            string    `json:"id"`
	OrderID       string    `json:"order_id"`
	VehicleID     string    `json:"vehicle_id"`
	Stage         string    `json:"stage"`
	PlacedAt      time.Time `json:"placed_at"`
	FailureReason string    `json:"failure_reason,omitempty"`
	VerifiedBy    string    `json:"verified_by,omitempty"`
}

// AdvanceShipment is the request body for moving a shipment to its next stage.
type AdvanceShipment struct {
	Stage string `json:"stage"`
}

// VerifyDelivery is the request body for proof-of-delivery.
type VerifyDelivery struct {
	ShipmentID string `json:"shipment_id"`
	Pin        string `json:"pin"`
	VerifiedBy string `json:"verified_by"`
}

// NewIncident is the request body for reporting an incident.
type NewIncident struct {
	ShipmentID  string `json:"shipment_id"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

// IncidentAssessment is returned when an incident is reported, so the
// reporter immediately sees the derived severity and recovery plan.
type IncidentAssessment struct {
	ID            string   `json:"id"`
	ShipmentID    string   `json:"shipment_id"`
	Severity      string   `json:"severity"`
	DelayMinutes  int      `json:"delay_minutes"`
	RecoverySteps []string `json:"recovery_steps"`
}

// WeatherReport is the request body for recording conditions over an area.
type WeatherReport struct {
	Location  Location `json:"location"`
	Condition string   `json:"condition"`
	Severity  int      `json:"severity"`
}

// WeatherConditions is the lookup response for a coordinate. Available is
// false when no report covers the area; planning proceeds unadjusted then.
type WeatherConditions struct {
	Available bool   `json:"available"`
	Condition string `json:"condition,omitempty"`
	Severity  int    `json:"severity,omitempty"`
}

// Incident is one reported incident in list responses.
type Incident struct {
	ID           string     `json:"id"`
	ShipmentID   string     `json:"shipment_id"`
	Type         string     `json:"type"`
	Description  string     `json:"description"`
	Severity     string     `json:"severity"`
	DelayMinutes int        `json:"delay_minutes"`
	Status       string     `json:"status"`
	ReportedAt   time.Time  `json:"reported_at"`
	ResolvedAt   *time.Time `json:"resolved_at,omitempty"`
}
