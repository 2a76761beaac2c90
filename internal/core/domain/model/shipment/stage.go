package shipment

import (
	"fmt"

	"logistics/internal/pkg/errs"
)

// Stage represents the position of a shipment in its delivery pipeline.
// Stages are strictly ordered and a shipment may only move to the stage
// immediately after its current one.
//
// Stage progression:
//
//	Placed ──> Confirmed ──> InTransit ──> OutForDelivery ──> Delivered
//	   │            │            │                │
//	   └────────────┴────────────┴────────────────┴──> Failed
//
// Delivered and Failed are terminal.
type Stage int

const (
	// StageUnknown represents an invalid or undefined stage.
	StageUnknown Stage = iota

	// StagePlaced is the initial stage when a shipment is created during planning.
	StagePlaced

	// StageConfirmed indicates the warehouse has confirmed and packed the shipment.
	StageConfirmed

	// StageInTransit indicates the shipment has left the warehouse.
	StageInTransit

	// StageOutForDelivery indicates the shipment is on its final leg.
	StageOutForDelivery

	// StageDelivered indicates the shipment was delivered and verified. Terminal.
	StageDelivered

	// StageFailed indicates the shipment failed. Terminal, reachable from any
	// non-terminal stage.
	StageFailed
)

// getStageStrings returns a map of Stage values to their string representations.
func getStageStrings() map[Stage]string {
	return map[Stage]string{
		StageUnknown:        "Unknown",
		StagePlaced:         "Placed",
		StageConfirmed:      "Confirmed",
		StageInTransit:      "InTransit",
		StageOutForDelivery: "OutForDelivery",
		StageDelivered:      "Delivered",
		StageFailed:         "Failed",
	}
}

// getValidStageStrings returns a map of only valid Stage values.
func getValidStageStrings() map[Stage]string {
	//nolint:exhaustive // StageUnknown is intentionally excluded as it's invalid
	return map[Stage]string{
		StagePlaced:         "Placed",
		StageConfirmed:      "Confirmed",
		StageInTransit:      "InTransit",
		StageOutForDelivery: "OutForDelivery",
		StageDelivered:      "Delivered",
		StageFailed:         "Failed",
	}
}

// Validate checks if the Stage value is valid.
func (s Stage) Validate() error {
	if _, ok := getValidStageStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("stage is invalid",
			fmt.Errorf("%d is not a valid stage", s))
	}
	return nil
}

// String returns the human-readable name of the stage.
// This method implements the fmt.Stringer interface and is safe to call
// on any Stage value, including invalid ones.
func (s Stage) String() string {
	if str, ok := getStageStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether the stage permits no further transitions.
func (s Stage) IsTerminal() bool {
	return s == StageDelivered || s == StageFailed
}

// Next returns the stage immediately after this one in the pipeline.
// Terminal stages and Failed have no successor.
func (s Stage) Next() (Stage, bool) {
	switch s {
	case StagePlaced:
		return StageConfirmed, true
	case StageConfirmed:
		return StageInTransit, true
	case StageInTransit:
		return StageOutForDelivery, true
	case StageOutForDelivery:
		return StageDelivered, true
	default:
		return StageUnknown, false
	}
}

// CanAdvanceTo reports whether the shipment may move from this stage to the
// target stage. Only the immediate successor is allowed; skipping stages or
// moving backwards is rejected.
func (s Stage) CanAdvanceTo(target Stage) bool {
	next, ok := s.Next()
	return ok && next == target
}

// ParseStage converts a string into a Stage. The comparison matches the
// String() representation exactly.
func ParseStage(value string) (Stage, error) {
	for stage, str := range getValidStageStrings() {
		if str == value {
			return stage, nil
		}
	}
	return StageUnknown, errs.NewValueIsInvalidErrorWithCause("stage is invalid",
		fmt.Errorf("%q is not a valid stage", value))
}
