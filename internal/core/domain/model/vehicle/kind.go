package vehicle

import (
	"fmt"
	"strings"

	"parceltrack/internal/pkg/errs"
)

// Kind is the body type of a vehicle.
type Kind int

const (
	KindUnknown Kind = iota
	Bike
	Car
	Van
)

func getKindCodes() map[Kind]string {
	//nolint:exhaustive // KindUnknown has no wire code
	return map[Kind]string{
		Bike: "bike",
		Car:  "car",
		Van:  "van",
	}
}

func ParseKind(code string) (Kind, error) {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return KindUnknown, errs.NewValueIsRequiredError("vehicle kind")
	}
	for k, c := range getKindCodes() {
		if c == code {
			return k, nil
		}
	}
	return KindUnknown, errs.NewValueIsInvalidErrorWithCause("vehicle kind", fmt.Errorf("%q is not a vehicle kind", code))
}

func (k Kind) Validate() error {
	if _, ok := getKindCodes()[k]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("vehicle kind", fmt.Errorf("%d is not a valid kind", k))
	}
	return nil
}

func (k Kind) String() string {
	if c, ok := getKindCodes()[k]; ok {
		return c
	}
	return "unknown"
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}
