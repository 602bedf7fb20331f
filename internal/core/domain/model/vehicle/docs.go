// Package vehicle provides the Vehicle aggregate and its activation state.
//
// Key business rules:
//   - A vehicle is held by at most one driver at a time
//   - An inactive vehicle accepts no driver and cannot be used on a delivery
//   - A vehicle cannot be deactivated while deliveries referencing it are active;
//     the active count is derived from the delivery set by the caller
package vehicle
