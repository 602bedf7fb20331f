// Package errs provides standardized error types for the parceltrack service.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes two groups of error types:
//   - Input errors: ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError
//     and ObjectNotFoundError
//   - Lifecycle errors raised by the delivery state machine and the fleet guards:
//     PreconditionNotMetError, OutOfOrderStepError, ReassignmentWindowClosedError,
//     VehicleHasActiveDeliveriesError, VehicleInactiveError, ProofRejectedError,
//     ActorNotAllowedError and DataIntegrityError
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method returning the sentinel, so errors.Is works on joined errors
//
// KindOf maps any error produced by this package to a stable kind name that the
// HTTP layer and the metrics use as a label.
package errs
