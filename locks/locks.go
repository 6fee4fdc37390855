// Package locks serializes split and merge operations on the same pitch number.
package locks

import (
	"context"
	"errors"
)

// ErrLocked is returned when the key is already held by another operation.
var ErrLocked = errors.New("lock is held by another operation")

// Locker acquires a non-blocking exclusive lock on key. The returned release
// function must be called exactly once.
type Locker interface {
	Lock(ctx context.Context, key string) (release func(), err error)
}
