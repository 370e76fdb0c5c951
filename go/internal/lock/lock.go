// Package lock serializes work keyed by a string, either inside one process
// or across instances through Redis.
package lock

import (
	"context"

	"github.com/google/uuid"
)

// Manager acquires and releases keyed locks. Acquire reports ok=false when
// the lock is held elsewhere after the backend gave up waiting.
type Manager interface {
	Acquire(ctx context.Context, key string) (token string, ok bool, err error)
	Release(ctx context.Context, key, token string) error
}

func newToken() string {
	return uuid.NewString()
}
