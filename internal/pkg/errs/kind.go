package errs

import "errors"

// Kind is the stable, client-facing name of an error category.
type Kind string

const (
	KindInvalidInput               Kind = "InvalidInput"
	KindNotFound                   Kind = "NotFound"
	KindPreconditionNotMet         Kind = "PreconditionNotMet"
	KindOutOfOrderStep             Kind = "OutOfOrderStep"
	KindReassignmentWindowClosed   Kind = "ReassignmentWindowClosed"
	KindVehicleHasActiveDeliveries Kind = "VehicleHasActiveDeliveries"
	KindVehicleInactive            Kind = "VehicleInactive"
	KindProofRejected              Kind = "ProofRejected"
	KindActorNotAllowed            Kind = "ActorNotAllowed"
	KindDataIntegrity              Kind = "DataIntegrity"
	KindInternal                   Kind = "Internal"
)

// KindOf classifies err. Data integrity wins over everything else because a
// corrupted aggregate can surface wrapped inside any other failure.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrDataIntegrity):
		return KindDataIntegrity
	case errors.Is(err, ErrObjectNotFound):
		return KindNotFound
	case errors.Is(err, ErrActorNotAllowed):
		return KindActorNotAllowed
	case errors.Is(err, ErrProofRejected):
		return KindProofRejected
	case errors.Is(err, ErrOutOfOrderStep):
		return KindOutOfOrderStep
	case errors.Is(err, ErrReassignmentWindowClosed):
		return KindReassignmentWindowClosed
	case errors.Is(err, ErrVehicleHasActiveDeliveries):
		return KindVehicleHasActiveDeliveries
	case errors.Is(err, ErrVehicleInactive):
		return KindVehicleInactive
	case errors.Is(err, ErrPreconditionNotMet):
		return KindPreconditionNotMet
	case errors.Is(err, ErrValueIsInvalid),
		errors.Is(err, ErrValueIsRequired),
		errors.Is(err, ErrValueIsOutOfRange):
		return KindInvalidInput
	default:
		return KindInternal
	}
}

// IsDomain reports whether err is a recoverable business rejection, as opposed
// to an infrastructure failure or an integrity fault.
func IsDomain(err error) bool {
	switch KindOf(err) {
	case "", KindInternal, KindDataIntegrity:
		return false
	default:
		return true
	}
}
