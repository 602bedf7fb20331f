package delivery

import (
	"fmt"
	"strings"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"
)

// Role is the kind of party issuing a command.
type Role int

const (
	RoleUnknown Role = iota
	RoleSystem
	RoleAdmin
	RoleDriver
	RoleBuyer
	RoleMerchant
)

var ErrActorIsNotConstructed = errs.NewValueIsRequiredError("actor must be created via NewActor or SystemActor")

func getRoleCodes() map[Role]string {
	//nolint:exhaustive // RoleUnknown has no wire code
	return map[Role]string{
		RoleSystem:   "system",
		RoleAdmin:    "admin",
		RoleDriver:   "driver",
		RoleBuyer:    "buyer",
		RoleMerchant: "merchant",
	}
}

func ParseRole(code string) (Role, error) {
	code = strings.ToLower(strings.TrimSpace(code))
	for r, c := range getRoleCodes() {
		if c == code {
			return r, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a role", code))
}

func (r Role) String() string {
	if c, ok := getRoleCodes()[r]; ok {
		return c
	}
	return "unknown"
}

// Actor is who issues a command. Drivers are identified by their driver id;
// other roles carry an optional free-form reference (user id, service name).
type Actor struct {
	role     Role
	driverID kernel.UUID
	ref      string
	guard    guard.ConstructorGuard
}

// NewActor builds an actor from a role and an identity string. A driver's
// identity must be its driver id.
func NewActor(role Role, identity string) (Actor, error) {
	if _, ok := getRoleCodes()[role]; !ok {
		return Actor{}, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a role", role))
	}

	a := Actor{role: role, ref: strings.TrimSpace(identity), guard: guard.NewConstructorGuard()}
	if role == RoleDriver {
		id, err := kernel.UUIDFromString(a.ref)
		if err != nil {
			return Actor{}, errs.NewValueIsRequiredErrorWithCause("driver identity", err)
		}
		a.driverID = id
	}

	return a, nil
}

// DriverActor is a shortcut for NewActor(RoleDriver, id.String()).
func DriverActor(id kernel.UUID) Actor {
	return Actor{role: RoleDriver, driverID: id, ref: id.String(), guard: guard.NewConstructorGuard()}
}

// SystemActor identifies automated work such as the dispatch job.
func SystemActor(component string) Actor {
	return Actor{role: RoleSystem, ref: component, guard: guard.NewConstructorGuard()}
}

func (a Actor) Validate() error {
	return a.guard.Validate(ErrActorIsNotConstructed)
}

func (a Actor) Role() Role {
	return a.role
}

func (a Actor) Ref() string {
	return a.ref
}

// IsDriver reports whether the actor is the driver with the given id.
func (a Actor) IsDriver(id *kernel.UUID) bool {
	return a.role == RoleDriver && id != nil && a.driverID.IsEqual(*id)
}

func (a Actor) String() string {
	if a.ref == "" {
		return a.role.String()
	}
	return a.role.String() + ":" + a.ref
}

// roleIn reports whether the actor's role is one of roles.
func (a Actor) roleIn(roles ...Role) bool {
	for _, r := range roles {
		if a.role == r {
			return true
		}
	}
	return false
}
