package lock

import (
	"context"
	"errors"
	"sync"
	"time"
)

var ErrNotHeld = errors.New("lock not held")

type holder struct {
	token string
	done  chan struct{}
}

// LocalLock is an in-process keyed lock. Acquire waits for the current
// holder up to the configured timeout.
type LocalLock struct {
	mu      sync.Mutex
	held    map[string]*holder
	timeout time.Duration
}

// NewLocalLock creates a LocalLock that waits at most timeout for a key
func NewLocalLock(timeout time.Duration) *LocalLock {
	return &LocalLock{
		held:    make(map[string]*holder),
		timeout: timeout,
	}
}

func (l *LocalLock) Acquire(ctx context.Context, key string) (string, bool, error) {
	var deadline <-chan time.Time
	if l.timeout > 0 {
		timer := time.NewTimer(l.timeout)
		defer timer.Stop()
		deadline = timer.C
	}

	for {
		l.mu.Lock()
		h, busy := l.held[key]
		if !busy {
			h = &holder{token: newToken(), done: make(chan struct{})}
			l.held[key] = h
			l.mu.Unlock()
			return h.token, true, nil
		}
		l.mu.Unlock()

		select {
		case <-h.done:
		case <-deadline:
			return "", false, nil
		case <-ctx.Done():
			return "", false, ctx.Err()
		}
	}
}

func (l *LocalLock) Release(_ context.Context, key, token string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	h, ok := l.held[key]
	if !ok || h.token != token {
		return ErrNotHeld
	}
	delete(l.held, key)
	close(h.done)
	return nil
}
