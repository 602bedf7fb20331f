// Package services provides domain services that orchestrate business operations
// across multiple aggregates in the parcel tracking system. It implements
// business rules that don't naturally belong to a single aggregate root.
//
// The package includes:
//   - FleetGuard: Cross-aggregate rules between deliveries, drivers and vehicles
//   - DriverDispatcher: A domain service for finding and assigning the nearest
//     free driver to an unassigned delivery
//
// Domain services never perform I/O. Callers load the aggregates and counts
// they need inside one unit of work and pass them in.
package services
