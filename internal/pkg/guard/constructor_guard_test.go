package guard_test

import (
	"errors"
	"testing"

	"parceltrack/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	errNotConstructed := errors.New("entity not constructed")

	t.Run("constructed_guard_returns_nil", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errNotConstructed))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero_value_guard_returns_given_error", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(errNotConstructed)

		require.Error(t, err)
		assert.Equal(t, errNotConstructed, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		require.Error(t, err)
		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
		assert.Equal(t, "object must be created via its constructor", err.Error())
	})
}

func TestConstructorGuard_EmbeddedInValueObject(t *testing.T) {
	type plate struct {
		number string
		guard  guard.ConstructorGuard
	}

	errPlateNotConstructed := errors.New("plate must be created via newPlate")

	newPlate := func(number string) (plate, error) {
		if number == "" {
			return plate{}, errors.New("plate number is required")
		}
		return plate{number: number, guard: guard.NewConstructorGuard()}, nil
	}

	t.Run("constructor_marks_value", func(t *testing.T) {
		p, err := newPlate("KA-01-1234")

		require.NoError(t, err)
		require.NoError(t, p.guard.Validate(errPlateNotConstructed))
	})

	t.Run("literal_is_rejected", func(t *testing.T) {
		p := plate{number: "KA-01-1234"}

		require.ErrorIs(t, p.guard.Validate(errPlateNotConstructed), errPlateNotConstructed)
	})

	t.Run("copy_keeps_mark", func(t *testing.T) {
		p, err := newPlate("KA-01-1234")
		require.NoError(t, err)

		cp := p

		require.NoError(t, cp.guard.Validate(errPlateNotConstructed))
	})
}

func BenchmarkConstructorGuard_Validate(b *testing.B) {
	g := guard.NewConstructorGuard()
	err := errors.New("not constructed")
	b.ResetTimer()
	for range b.N {
		_ = g.Validate(err)
	}
}
