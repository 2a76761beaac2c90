package kernel

import (
	"fmt"
	"time"

	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

// ErrTimeWindowIsNotConstructed is returned when attempting to use an improperly
// initialized TimeWindow. Windows must be created via NewTimeWindow.
var ErrTimeWindowIsNotConstructed = errs.NewValueIsRequiredError(
	"time window must be created via NewTimeWindow constructor")

// TimeWindow represents the earliest/latest acceptable time for a delivery or
// dispatch operation. It is an immutable value object; the zero value is invalid
// and fails validation.
//
// Example:
//
//	window, err := kernel.NewTimeWindow(depart, depart.Add(4*time.Hour))
//	if err != nil {
//	    // Handle validation error
//	}
//	if window.Contains(eta) {
//	    // arrival satisfies the window
//	}
type TimeWindow struct { //nolint:recvcheck //using for validation
	earliest time.Time
	latest   time.Time
	guard    guard.ConstructorGuard
}

// NewTimeWindow creates a TimeWindow from its bounds.
// Both bounds must be non-zero and earliest must be strictly before latest.
func NewTimeWindow(earliest time.Time, latest time.Time) (TimeWindow, error) {
	if earliest.IsZero() {
		return TimeWindow{}, errs.NewValueIsRequiredError("earliest")
	}
	if latest.IsZero() {
		return TimeWindow{}, errs.NewValueIsRequiredError("latest")
	}
	if !earliest.Before(latest) {
		return TimeWindow{}, errs.NewValueIsInvalidErrorWithCause("time window",
			fmt.Errorf("earliest %s is not before latest %s", earliest, latest))
	}

	return TimeWindow{
		earliest: earliest,
		latest:   latest,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate checks if the TimeWindow was properly constructed via NewTimeWindow.
func (w TimeWindow) Validate() error {
	return w.guard.Validate(ErrTimeWindowIsNotConstructed)
}

// Earliest returns the start of the window.
func (w TimeWindow) Earliest() time.Time {
	return w.earliest
}

// Latest returns the end of the window.
func (w TimeWindow) Latest() time.Time {
	return w.latest
}

// Duration returns the length of the window.
func (w TimeWindow) Duration() time.Duration {
	return w.latest.Sub(w.earliest)
}

// Contains reports whether t falls within the window, bounds inclusive.
func (w TimeWindow) Contains(t time.Time) bool {
	return !t.Before(w.earliest) && !t.After(w.latest)
}

// String returns a human-readable representation of the window.
// This method implements the fmt.Stringer interface.
func (w TimeWindow) String() string {
	return fmt.Sprintf("TimeWindow(%s..%s)",
		w.earliest.Format(time.RFC3339), w.latest.Format(time.RFC3339))
}
