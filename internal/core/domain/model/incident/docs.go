// Package incident contains the Incident aggregate for transport disruptions.
//
// Severity, expected delay and recovery steps come from a fixed per-type
// table, so reporting the same incident type always yields the same guidance.
package incident
