// Package driver provides the Driver aggregate: a person who carries parcels,
// their last reported position and the vehicle they currently hold.
//
// The package includes:
//   - Driver: the aggregate root managing identity, contact, position and vehicle link
//
// Key business rules:
//   - Drivers must have a valid unique identifier, a name and an E.164 phone number
//   - A driver holds at most one vehicle at a time
//   - Releasing a vehicle is never blocked by delivery progress
//   - The number of active deliveries of a driver is derived from the delivery
//     set and never stored on the driver
package driver
