package kernel

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"
)

// E.164 without separators.
var rePhone = regexp.MustCompile(`^\+[1-9][0-9]{7,14}$`)

var ErrPartyIsNotConstructed = errs.NewValueIsRequiredError("party must be created via NewParty constructor")

// Party is a merchant or buyer as seen by a delivery: who they are, how to
// reach them and where the parcel is picked up from or dropped off at.
type Party struct { //nolint:recvcheck // setters need pointer receivers
	name    string
	phone   string
	address string
	point   GeoPoint
	guard   guard.ConstructorGuard
}

func NewParty(name, phone, address string, point GeoPoint) (Party, error) {
	p := Party{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		p.setName(name),
		p.setPhone(phone),
		p.setAddress(address),
		p.setPoint(point),
	); err != nil {
		return Party{}, err
	}

	return p, nil
}

func (p Party) Validate() error {
	return p.guard.Validate(ErrPartyIsNotConstructed)
}

func (p Party) Name() string {
	return p.name
}

func (p Party) Phone() string {
	return p.phone
}

func (p Party) Address() string {
	return p.address
}

func (p Party) Point() GeoPoint {
	return p.point
}

func (p *Party) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	p.name = name
	return nil
}

func (p *Party) setPhone(phone string) error {
	if phone == "" {
		return errs.NewValueIsRequiredError("phone")
	}
	if !rePhone.MatchString(phone) {
		return errs.NewValueIsInvalidErrorWithCause("phone", fmt.Errorf("%q is not an E.164 number", phone))
	}
	p.phone = phone
	return nil
}

func (p *Party) setAddress(address string) error {
	address = strings.TrimSpace(address)
	if address == "" {
		return errs.NewValueIsRequiredError("address")
	}
	p.address = address
	return nil
}

func (p *Party) setPoint(point GeoPoint) error {
	if err := point.Validate(); err != nil {
		return err
	}
	p.point = point
	return nil
}

// ValidatePhone checks a phone number with the same rule NewParty applies.
func ValidatePhone(phone string) error {
	var p Party
	return p.setPhone(phone)
}
