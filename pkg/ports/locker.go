package ports

import (
	"context"
	"time"
)

// UnlockFunc releases a held run lock.
type UnlockFunc func(ctx context.Context) error

// RunLocker serializes resume attempts on a pending run. With a shared
// store, two replicas can receive answers for the same run concurrently;
// the lock makes sure only one of them consumes it.
type RunLocker interface {
	// Lock blocks until the lock for runID is acquired, the context is
	// canceled, or the TTL elapses. The returned UnlockFunc MUST be called
	// to release the lock.
	Lock(ctx context.Context, runID string, ttl time.Duration) (UnlockFunc, error)
}
