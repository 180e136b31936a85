package deadline

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Locker guards a sweep across every instance sharing the same Redis.
type Locker interface {
	TryLock(ctx context.Context) (release func(), acquired bool, err error)
}

const (
	LockKey = "sweep:deadline:lock"

	// lockGrace covers the audit and archive steps that run after the sweep
	// timeout has fired.
	lockGrace = time.Minute
)

// releaseScript deletes the lock only while it still holds our token, so an
// expired lock taken over by another instance is left alone.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type RedisLocker struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// NewRedisLocker holds the lock for the sweep timeout plus a grace period.
// A zero timeout still yields an expiring lock.
func NewRedisLocker(client *redis.Client, sweepTimeout time.Duration) *RedisLocker {
	return &RedisLocker{client: client, key: LockKey, ttl: LockTTL(sweepTimeout)}
}

func LockTTL(sweepTimeout time.Duration) time.Duration {
	if sweepTimeout < 0 {
		sweepTimeout = 0
	}
	return sweepTimeout + lockGrace
}

func (l *RedisLocker) TryLock(ctx context.Context) (func(), bool, error) {
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, l.key, token, l.ttl).Result()
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
	}

	release := func() {
		_ = releaseScript.Run(context.Background(), l.client, []string{l.key}, token).Err()
	}
	return release, true, nil
}
