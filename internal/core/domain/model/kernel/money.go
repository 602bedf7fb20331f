package kernel

import (
	"errors"
	"fmt"
	"math"
	"regexp"

	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"
)

var reCurrency = regexp.MustCompile(`^[A-Z]{3}$`)

var ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError("money must be created via NewMoney")

// Money is an amount in minor units (cents, paise) of an ISO 4217 currency.
type Money struct { //nolint:recvcheck // setters need pointer receivers
	minor    int64
	currency string
	guard    guard.ConstructorGuard
}

func NewMoney(minor int64, currency string) (Money, error) {
	m := Money{guard: guard.NewConstructorGuard()}

	if err := errors.Join(m.setMinor(minor), m.setCurrency(currency)); err != nil {
		return Money{}, err
	}

	return m, nil
}

func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}

func (m Money) Minor() int64 {
	return m.minor
}

func (m Money) Currency() string {
	return m.currency
}

func (m Money) String() string {
	return fmt.Sprintf("%d.%02d %s", m.minor/100, m.minor%100, m.currency)
}

func (m *Money) setMinor(minor int64) error {
	if minor < 0 {
		return errs.NewValueIsOutOfRangeError("amount", minor, 0, int64(math.MaxInt64))
	}
	m.minor = minor
	return nil
}

func (m *Money) setCurrency(currency string) error {
	if !reCurrency.MatchString(currency) {
		return errs.NewValueIsInvalidErrorWithCause("currency", fmt.Errorf("%q is not an ISO 4217 code", currency))
	}
	m.currency = currency
	return nil
}
