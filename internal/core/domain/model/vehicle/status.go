package vehicle

import (
	"fmt"
	"strings"

	"parceltrack/internal/pkg/errs"
)

// Status is the activation state of a vehicle.
//
//	Active <──> Inactive
type Status int

const (
	// Unknown catches uninitialized values.
	Unknown Status = iota

	// Active vehicles can be held by drivers and used on deliveries.
	Active

	// Inactive vehicles are parked: no new driver, no new delivery.
	Inactive
)

func getStatusCodes() map[Status]string {
	//nolint:exhaustive // Unknown has no wire code
	return map[Status]string{
		Active:   "active",
		Inactive: "inactive",
	}
}

func ParseStatus(code string) (Status, error) {
	code = strings.ToLower(strings.TrimSpace(code))
	for s, c := range getStatusCodes() {
		if c == code {
			return s, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("vehicle status", fmt.Errorf("%q is not a vehicle status", code))
}

func (s Status) Validate() error {
	if _, ok := getStatusCodes()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("vehicle status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if c, ok := getStatusCodes()[s]; ok {
		return c
	}
	return "unknown"
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
