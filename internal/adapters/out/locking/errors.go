package locking

import (
	"fmt"

	"parceltrack/internal/core/ports"
)

func lockError(key string, cause error) error {
	return fmt.Errorf("%w: %s: %w", ports.ErrLockNotAcquired, key, cause)
}
