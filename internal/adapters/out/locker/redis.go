package locker

import (
	"context"
	"fmt"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/ports"
	"orders/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	defaultKeyPrefix  = "orders:lock:"
	defaultTTL        = 5 * time.Second
	defaultRetries    = 20
	defaultRetryDelay = 50 * time.Millisecond
)

var _ ports.OrderLocker = (*Redis)(nil)

// releaseScript deletes the key only if it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Redis is a lease lock stored under one key per order.
//
// Lock sets the key with SET NX PX and a random token. If the key is taken it retries
// a bounded number of times and then reports errs.ErrConcurrentModification.
// Unlock removes the key only while it still holds the caller's token, so a lease
// that expired and was taken by another writer is left alone.
type Redis struct {
	client     *redis.Client
	prefix     string
	ttl        time.Duration
	retries    int
	retryDelay time.Duration
}

// RedisOption customizes a Redis locker.
type RedisOption func(*Redis)

// WithTTL sets how long a lease lives if its holder never unlocks.
func WithTTL(ttl time.Duration) RedisOption {
	return func(r *Redis) {
		if ttl > 0 {
			r.ttl = ttl
		}
	}
}

// WithRetries sets how many extra attempts Lock makes after the first one fails.
func WithRetries(retries int) RedisOption {
	return func(r *Redis) {
		if retries >= 0 {
			r.retries = retries
		}
	}
}

// WithRetryDelay sets the pause between attempts.
func WithRetryDelay(delay time.Duration) RedisOption {
	return func(r *Redis) {
		if delay > 0 {
			r.retryDelay = delay
		}
	}
}

// WithKeyPrefix sets the namespace of lock keys.
func WithKeyPrefix(prefix string) RedisOption {
	return func(r *Redis) {
		r.prefix = prefix
	}
}

// NewRedis creates a Redis-backed locker.
func NewRedis(client *redis.Client, opts ...RedisOption) *Redis {
	r := &Redis{
		client:     client,
		prefix:     defaultKeyPrefix,
		ttl:        defaultTTL,
		retries:    defaultRetries,
		retryDelay: defaultRetryDelay,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Lock acquires the lease for orderID.
func (r *Redis) Lock(ctx context.Context, orderID kernel.UUID) (ports.Unlock, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	key := r.prefix + orderID.String()
	token := uuid.NewString()

	for attempt := 0; ; attempt++ {
		acquired, err := r.client.SetNX(ctx, key, token, r.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("acquire order lock %s: %w", key, err)
		}
		if acquired {
			return r.unlockFunc(key, token, orderID), nil
		}
		if attempt >= r.retries {
			return nil, errs.NewConcurrentModificationError("order", orderID.String())
		}

		timer := time.NewTimer(r.retryDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}

func (r *Redis) unlockFunc(key, token string, orderID kernel.UUID) ports.Unlock {
	released := false
	return func(ctx context.Context) error {
		if released {
			return nil
		}
		released = true

		deleted, err := releaseScript.Run(ctx, r.client, []string{key}, token).Int()
		if err != nil {
			return fmt.Errorf("release order lock %s: %w", key, err)
		}
		if deleted == 0 {
			return errs.NewConcurrentModificationError("order", orderID.String())
		}
		return nil
	}
}
