package persistence

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// VisitLocker serializes lifecycle transitions per visit id. Two concurrent
// transition attempts against the same id must not interleave their
// read-modify-write sequences; transitions on different ids are independent.
type VisitLocker interface {
	Acquire(ctx context.Context, visitID int64) (release func(), err error)
}

const lockRetryInterval = 50 * time.Millisecond

var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
    return redis.call("DEL", KEYS[1])
end
return 0`)

// redisVisitLocker leases a per-visit key with SET NX PX. The lease expires on
// its own if the holder dies mid-transition.
type redisVisitLocker struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisVisitLocker builds a lease-based locker on the shared client.
func NewRedisVisitLocker(client *redis.Client, ttl time.Duration) VisitLocker {
	return &redisVisitLocker{client: client, ttl: ttl}
}

func (l *redisVisitLocker) Acquire(ctx context.Context, visitID int64) (func(), error) {
	key := fmt.Sprintf("visit:lock:%d", visitID)
	token := uuid.NewString()

	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return nil, err
		}
		if ok {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(lockRetryInterval):
		}
	}

	release := func() {
		_, _ = releaseScript.Run(context.Background(), l.client, []string{key}, token).Result()
	}
	return release, nil
}

// localVisitLocker is the in-process fallback used when redis is unreachable
// and by tests.
type localVisitLocker struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

// NewLocalVisitLocker builds a mutex-per-id locker.
func NewLocalVisitLocker() VisitLocker {
	return &localVisitLocker{locks: make(map[int64]*sync.Mutex)}
}

func (l *localVisitLocker) Acquire(ctx context.Context, visitID int64) (func(), error) {
	l.mu.Lock()
	m, ok := l.locks[visitID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[visitID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock, nil
}
