package shipment

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
)

var (
	// ErrShipmentIsNotConstructed is returned when a Shipment instance was not
	// created through the NewShipment factory method.
	ErrShipmentIsNotConstructed = errors.New("Shipment must be created via NewShipment constructor")

	// ErrInvalidTransition is returned when a stage change does not move to the
	// immediate successor of the current stage.
	ErrInvalidTransition = errors.New("shipment stage transition is not allowed")

	// ErrVerificationFailed is returned when the delivery PIN does not match.
	ErrVerificationFailed = errors.New("delivery verification failed")
)

// pinDigits is the number of digits in a delivery PIN.
const pinDigits = 4

// Shipment represents one order travelling on one vehicle. It is the aggregate
// root for the delivery pipeline and records when each stage was reached.
//
// Shipment follows these invariants:
//   - Stage changes move only to the immediate successor stage
//   - Failed is reachable from any non-terminal stage, with a reason
//   - Delivery requires PIN verification from OutForDelivery
//   - A failed transition or verification leaves the shipment unchanged
type Shipment struct {
	// id is the unique identifier for the shipment
	id kernel.UUID

	// orderID is the order this shipment carries
	orderID kernel.UUID

	// vehicleID is the vehicle this shipment travels on
	vehicleID kernel.UUID

	// pin is the delivery PIN the recipient must present
	pin string

	// stage is the shipment's current position in the pipeline
	stage Stage

	// stageTimes records when each stage was reached
	stageTimes map[Stage]time.Time

	// failureReason explains why the shipment failed (empty unless Failed)
	failureReason string

	// verifiedBy records who confirmed the delivery (empty until Delivered)
	verifiedBy string

	// isConstructed ensures the shipment was created via a constructor
	isConstructed bool
}

// NewShipment creates a Shipment in the Placed stage with a freshly generated
// delivery PIN.
//
// Parameters:
//   - id: Unique identifier for the shipment
//   - orderID: The order this shipment carries
//   - vehicleID: The vehicle this shipment travels on
//   - placedAt: When the shipment was created
//
// Returns the created shipment, or a validation error if any parameter is
// invalid. Errors for multiple invalid parameters are joined.
func NewShipment(id kernel.UUID, orderID kernel.UUID, vehicleID kernel.UUID,
	placedAt time.Time) (*Shipment, error) {
	if placedAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("placedAt")
	}

	pin, err := generatePIN()
	if err != nil {
		return nil, fmt.Errorf("generate delivery PIN: %w", err)
	}

	shipment := &Shipment{
		pin:           pin,
		stage:         StagePlaced,
		stageTimes:    map[Stage]time.Time{StagePlaced: placedAt},
		isConstructed: true,
	}

	if err := errors.Join(
		shipment.setID(id),
		shipment.setOrderID(orderID),
		shipment.setVehicleID(vehicleID),
	); err != nil {
		return nil, err
	}

	return shipment, nil
}

// RestoreShipment reconstructs a Shipment from persisted state.
func RestoreShipment(id kernel.UUID, orderID kernel.UUID, vehicleID kernel.UUID,
	pin string, stage Stage, stageTimes map[Stage]time.Time,
	failureReason string, verifiedBy string) (*Shipment, error) {
	shipment := &Shipment{
		failureReason: failureReason,
		verifiedBy:    verifiedBy,
		isConstructed: true,
	}

	if err := errors.Join(
		shipment.setID(id),
		shipment.setOrderID(orderID),
		shipment.setVehicleID(vehicleID),
		shipment.setPIN(pin),
		shipment.setStage(stage),
	); err != nil {
		return nil, err
	}

	shipment.stageTimes = make(map[Stage]time.Time, len(stageTimes))
	for s, at := range stageTimes {
		shipment.stageTimes[s] = at
	}

	return shipment, nil
}

// Validate ensures the Shipment instance was properly constructed.
func (s *Shipment) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrShipmentIsNotConstructed
	}

	return nil
}

// IsEqual compares two shipments by their unique identifiers.
func (s *Shipment) IsEqual(other *Shipment) bool {
	return other != nil && s.id.IsEqual(other.id)
}

// ID returns the shipment's unique identifier.
func (s *Shipment) ID() kernel.UUID {
	return s.id
}

// OrderID returns the identifier of the order this shipment carries.
func (s *Shipment) OrderID() kernel.UUID {
	return s.orderID
}

// VehicleID returns the identifier of the vehicle this shipment travels on.
func (s *Shipment) VehicleID() kernel.UUID {
	return s.vehicleID
}

// PIN returns the delivery PIN the recipient must present.
func (s *Shipment) PIN() string {
	return s.pin
}

// Stage returns the shipment's current pipeline stage.
func (s *Shipment) Stage() Stage {
	return s.stage
}

// FailureReason returns why the shipment failed. Empty unless Failed.
func (s *Shipment) FailureReason() string {
	return s.failureReason
}

// VerifiedBy returns who confirmed the delivery. Empty until Delivered.
func (s *Shipment) VerifiedBy() string {
	return s.verifiedBy
}

// StageAt returns the timestamp recorded when the given stage was reached.
// The second return value is false if the stage has not been reached.
func (s *Shipment) StageAt(stage Stage) (time.Time, bool) {
	at, ok := s.stageTimes[stage]
	return at, ok
}

// Advance moves the shipment to the given stage and records the timestamp.
//
// Only the immediate successor of the current stage is accepted; anything
// else, including skips, repeats and moves into Delivered without PIN
// verification, returns ErrInvalidTransition with the shipment unchanged.
// Delivered is reached through VerifyDelivery, Failed through Fail.
func (s *Shipment) Advance(to Stage, at time.Time) error {
	if err := to.Validate(); err != nil {
		return err
	}
	if at.IsZero() {
		return errs.NewValueIsRequiredError("at")
	}
	if to == StageDelivered || to == StageFailed {
		return fmt.Errorf("%w: %s is not reachable via Advance", ErrInvalidTransition, to)
	}
	if !s.stage.CanAdvanceTo(to) {
		return fmt.Errorf("%w: cannot move from %s to %s", ErrInvalidTransition, s.stage, to)
	}

	s.stage = to
	s.stageTimes[to] = at
	return nil
}

// Fail marks the shipment as failed with the given reason.
//
// Allowed from any non-terminal stage. The reason must be non-empty.
func (s *Shipment) Fail(reason string, at time.Time) error {
	if reason == "" {
		return errs.NewValueIsRequiredError("reason")
	}
	if at.IsZero() {
		return errs.NewValueIsRequiredError("at")
	}
	if s.stage.IsTerminal() {
		return fmt.Errorf("%w: cannot fail shipment in terminal stage %s",
			ErrInvalidTransition, s.stage)
	}

	s.stage = StageFailed
	s.stageTimes[StageFailed] = at
	s.failureReason = reason
	return nil
}

// VerifyDelivery completes the shipment if the presented PIN matches.
//
// Verification is only possible from OutForDelivery. A wrong PIN returns
// ErrVerificationFailed and leaves the stage unchanged; callers may retry.
// On success the shipment moves to Delivered and records who verified it.
func (s *Shipment) VerifyDelivery(pin string, verifiedBy string, at time.Time) error {
	if verifiedBy == "" {
		return errs.NewValueIsRequiredError("verifiedBy")
	}
	if at.IsZero() {
		return errs.NewValueIsRequiredError("at")
	}
	if s.stage != StageOutForDelivery {
		return fmt.Errorf("%w: cannot verify delivery from stage %s",
			ErrInvalidTransition, s.stage)
	}
	if pin != s.pin {
		return fmt.Errorf("%w: PIN mismatch", ErrVerificationFailed)
	}

	s.stage = StageDelivered
	s.stageTimes[StageDelivered] = at
	s.verifiedBy = verifiedBy
	return nil
}

// generatePIN produces a random PIN with pinDigits digits, zero padded.
func generatePIN() (string, error) {
	limit := big.NewInt(1)
	for range pinDigits {
		limit.Mul(limit, big.NewInt(10))
	}

	n, err := rand.Int(rand.Reader, limit)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%0*d", pinDigits, n), nil
}

// setID validates and sets the shipment's unique identifier.
func (s *Shipment) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

// setOrderID validates and sets the carried order's identifier.
func (s *Shipment) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	s.orderID = orderID
	return nil
}

// setVehicleID validates and sets the carrying vehicle's identifier.
func (s *Shipment) setVehicleID(vehicleID kernel.UUID) error {
	if err := vehicleID.Validate(); err != nil {
		return err
	}
	s.vehicleID = vehicleID
	return nil
}

// setPIN validates and sets the delivery PIN.
// This is a private method used only during restoration.
func (s *Shipment) setPIN(pin string) error {
	if len(pin) != pinDigits {
		return errs.NewValueIsInvalidErrorWithCause("pin is invalid",
			fmt.Errorf("PIN must have exactly %d digits", pinDigits))
	}
	for _, r := range pin {
		if r < '0' || r > '9' {
			return errs.NewValueIsInvalidErrorWithCause("pin is invalid",
				fmt.Errorf("PIN must contain only digits"))
		}
	}
	s.pin = pin
	return nil
}

// setStage validates and sets the current stage.
// This is a private method used only during restoration.
func (s *Shipment) setStage(stage Stage) error {
	if err := stage.Validate(); err != nil {
		return err
	}
	s.stage = stage
	return nil
}
