package errs

import (
	"errors"
	"fmt"
)

var (
	ErrPreconditionNotMet         = errors.New("precondition not met")
	ErrOutOfOrderStep             = errors.New("verification step out of order")
	ErrReassignmentWindowClosed   = errors.New("reassignment window closed")
	ErrVehicleHasActiveDeliveries = errors.New("vehicle has active deliveries")
	ErrVehicleInactive            = errors.New("vehicle is inactive")
	ErrProofRejected              = errors.New("proof rejected")
	ErrActorNotAllowed            = errors.New("actor not allowed")
	ErrDataIntegrity              = errors.New("data integrity fault")
)

// PreconditionNotMetError reports an operation attempted from a state that does
// not allow it, or without the proof or assignment it requires.
type PreconditionNotMetError struct {
	Operation string
	Reason    string
	Cause     error
}

func NewPreconditionNotMetError(operation, reason string) *PreconditionNotMetError {
	return &PreconditionNotMetError{Operation: operation, Reason: reason}
}

func NewPreconditionNotMetErrorWithCause(operation, reason string, cause error) *PreconditionNotMetError {
	return &PreconditionNotMetError{Operation: operation, Reason: reason, Cause: cause}
}

func (e *PreconditionNotMetError) Error() string {
	msg := fmt.Sprintf("%s: %s: %s", ErrPreconditionNotMet, e.Operation, e.Reason)
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %v)", msg, e.Cause)
	}
	return msg
}

func (e *PreconditionNotMetError) Unwrap() error {
	return ErrPreconditionNotMet
}

// OutOfOrderStepError reports a verification step submitted before its predecessor.
type OutOfOrderStepError struct {
	Step    string
	Missing string
}

func NewOutOfOrderStepError(step, missing string) *OutOfOrderStepError {
	return &OutOfOrderStepError{Step: step, Missing: missing}
}

func (e *OutOfOrderStepError) Error() string {
	return fmt.Sprintf("%s: %s requires %s first", ErrOutOfOrderStep, e.Step, e.Missing)
}

func (e *OutOfOrderStepError) Unwrap() error {
	return ErrOutOfOrderStep
}

// ReassignmentWindowClosedError reports a driver or vehicle change after pickup.
type ReassignmentWindowClosedError struct {
	DeliveryID string
	Status     string
}

func NewReassignmentWindowClosedError(deliveryID, status string) *ReassignmentWindowClosedError {
	return &ReassignmentWindowClosedError{DeliveryID: deliveryID, Status: status}
}

func (e *ReassignmentWindowClosedError) Error() string {
	return fmt.Sprintf("%s: delivery %s is %s", ErrReassignmentWindowClosed, e.DeliveryID, e.Status)
}

func (e *ReassignmentWindowClosedError) Unwrap() error {
	return ErrReassignmentWindowClosed
}

type VehicleHasActiveDeliveriesError struct {
	VehicleID string
	Count     int64
}

func NewVehicleHasActiveDeliveriesError(vehicleID string, count int64) *VehicleHasActiveDeliveriesError {
	return &VehicleHasActiveDeliveriesError{VehicleID: vehicleID, Count: count}
}

func (e *VehicleHasActiveDeliveriesError) Error() string {
	return fmt.Sprintf("%s: vehicle %s has %d", ErrVehicleHasActiveDeliveries, e.VehicleID, e.Count)
}

func (e *VehicleHasActiveDeliveriesError) Unwrap() error {
	return ErrVehicleHasActiveDeliveries
}

type VehicleInactiveError struct {
	VehicleID string
}

func NewVehicleInactiveError(vehicleID string) *VehicleInactiveError {
	return &VehicleInactiveError{VehicleID: vehicleID}
}

func (e *VehicleInactiveError) Error() string {
	return fmt.Sprintf("%s: %s", ErrVehicleInactive, e.VehicleID)
}

func (e *VehicleInactiveError) Unwrap() error {
	return ErrVehicleInactive
}

// ProofRejectedError reports an operation blocked by an open proof rejection.
// Step names the artifact that has to be resubmitted.
type ProofRejectedError struct {
	Step   string
	Reason string
}

func NewProofRejectedError(step, reason string) *ProofRejectedError {
	return &ProofRejectedError{Step: step, Reason: reason}
}

func (e *ProofRejectedError) Error() string {
	return fmt.Sprintf("%s: resubmit %s (reason: %s)", ErrProofRejected, e.Step, e.Reason)
}

func (e *ProofRejectedError) Unwrap() error {
	return ErrProofRejected
}

type ActorNotAllowedError struct {
	Operation string
	Role      string
}

func NewActorNotAllowedError(operation, role string) *ActorNotAllowedError {
	return &ActorNotAllowedError{Operation: operation, Role: role}
}

func (e *ActorNotAllowedError) Error() string {
	return fmt.Sprintf("%s: %s may not %s", ErrActorNotAllowed, e.Role, e.Operation)
}

func (e *ActorNotAllowedError) Unwrap() error {
	return ErrActorNotAllowed
}

// DataIntegrityError reports stored state that breaks an aggregate invariant.
// It is never recoverable by the caller.
type DataIntegrityError struct {
	Aggregate string
	ID        string
	Cause     error
}

func NewDataIntegrityError(aggregate, id string, cause error) *DataIntegrityError {
	return &DataIntegrityError{Aggregate: aggregate, ID: id, Cause: cause}
}

func (e *DataIntegrityError) Error() string {
	return fmt.Sprintf("%s: %s %s (cause: %v)", ErrDataIntegrity, e.Aggregate, e.ID, e.Cause)
}

func (e *DataIntegrityError) Unwrap() error {
	return ErrDataIntegrity
}
