package routing

// Condition classifies the weather affecting a route.
type Condition string

const (
	ConditionClear Condition = "clear"
	ConditionRain  Condition = "rain"
	ConditionFog   Condition = "fog"
	ConditionStorm Condition = "storm"
	ConditionSnow  Condition = "snow"
)

// WeatherContext describes the conditions a route will be driven under.
// Severity runs 1 (mild) to 3 (severe); values outside that range are
// clamped.
type WeatherContext struct {
	Condition Condition
	Severity  int
}

// getTravelFactors returns the multiplicative travel time factor per
// condition and severity. Every factor is >= 1 so weather can slow a leg
// down but never speed it up, and identical inputs always produce the same
// adjustment.
func getTravelFactors() map[Condition][3]float64 {
	return map[Condition][3]float64{
		ConditionClear: {1.0, 1.0, 1.0},
		ConditionRain:  {1.1, 1.2, 1.35},
		ConditionFog:   {1.15, 1.25, 1.4},
		ConditionStorm: {1.25, 1.45, 1.7},
		ConditionSnow:  {1.3, 1.5, 1.8},
	}
}

// TravelFactor returns the travel time multiplier for the context.
// A nil context or an unknown condition means no adjustment.
func (w *WeatherContext) TravelFactor() float64 {
	if w == nil {
		return 1.0
	}

	factors, ok := getTravelFactors()[w.Condition]
	if !ok {
		return 1.0
	}

	severity := w.Severity
	if severity < 1 {
		severity = 1
	}
	if severity > 3 {
		severity = 3
	}

	return factors[severity-1]
}
