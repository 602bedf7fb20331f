package kernel

import (
	"fmt"
	"strings"
	"unicode"

	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"
)

const MediaRefMaxLen = 512

var ErrMediaRefIsNotConstructed = errs.NewValueIsRequiredError("media reference must be created via NewMediaRef")

// MediaRef is an opaque handle to a photo held by the media storage service.
// The zero value means "no artifact".
type MediaRef struct {
	value string
	guard guard.ConstructorGuard
}

func NewMediaRef(value string) (MediaRef, error) {
	if value == "" {
		return MediaRef{}, errs.NewValueIsRequiredError("media reference")
	}
	if len(value) > MediaRefMaxLen {
		return MediaRef{}, errs.NewValueIsOutOfRangeError("media reference length", len(value), 1, MediaRefMaxLen)
	}
	if strings.IndexFunc(value, unicode.IsSpace) >= 0 {
		return MediaRef{}, errs.NewValueIsInvalidErrorWithCause(
			"media reference", fmt.Errorf("%q contains whitespace", value))
	}

	return MediaRef{value: value, guard: guard.NewConstructorGuard()}, nil
}

func (m MediaRef) Validate() error {
	return m.guard.Validate(ErrMediaRefIsNotConstructed)
}

func (m MediaRef) IsZero() bool {
	return m.Validate() != nil
}

func (m MediaRef) String() string {
	return m.value
}
