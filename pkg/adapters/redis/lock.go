package redis

import (
	"context"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"

	"github.com/aretw0/arbor/pkg/ports"
)

// unlockScript releases the lock only if the stored token still matches, so
// a client whose lock already expired cannot delete someone else's lock.
const unlockScript = `
	if redis.call("get", KEYS[1]) == ARGV[1] then
		return redis.call("del", KEYS[1])
	else
		return 0
	end
`

// Locker implements ports.DistributedLocker using Redis SET NX PX.
type Locker struct {
	client *backend.Client
	prefix string
	retry  time.Duration
}

// NewLocker creates a new Redis locker. The prefix namespaces lock keys
// (e.g. "arbor:").
func NewLocker(client *backend.Client, prefix string) *Locker {
	return &Locker{
		client: client,
		prefix: prefix,
		retry:  100 * time.Millisecond,
	}
}

// Lock acquires a distributed lock for the given key. The first attempt is
// immediate; afterwards it polls until the lock is acquired or ctx is done.
// The stored value is a per-acquisition token checked on release.
func (l *Locker) Lock(ctx context.Context, key string, ttl time.Duration) (ports.UnlockFunc, error) {
	lockKey := l.prefix + "lock:" + key
	token := fmt.Sprintf("%d", time.Now().UnixNano())

	ticker := time.NewTicker(l.retry)
	defer ticker.Stop()

	for {
		success, err := l.client.SetNX(ctx, lockKey, token, ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("redis error acquiring lock: %w", err)
		}
		if success {
			return func(ctx context.Context) error {
				return l.client.Eval(ctx, unlockScript, []string{lockKey}, token).Err()
			}, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}
