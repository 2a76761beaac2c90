// Package kernel contains shared value objects used across the logistics domain.
//
// The kernel provides:
//   - UUID: validated identifier value object wrapping github.com/google/uuid
//   - GeoLocation: validated latitude/longitude pair with haversine distance
//   - TimeWindow: validated earliest/latest delivery window
//
// All kernel types are immutable, created through constructor functions, and
// carry a ConstructorGuard so that zero values are detectable and rejected.
package kernel
