// Package ports defines the interfaces between the application core and its
// adapters: repositories, the unit of work, the event publisher and the
// weather provider. Implementations live under internal/adapters.
package ports
