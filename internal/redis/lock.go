package redisclient

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var ErrLockNotAcquired = errors.New("booking lock not acquired")

const bookingLockKey = "lock:registry:booking"

// retryInterval paces SetNX attempts while another instance holds the lock.
const retryInterval = 25 * time.Millisecond

// BookingLocker guards the allocate-and-insert section of a booking across
// API instances that share one store. It satisfies the registry's Locker
// interface. Acquisition blocks, polling SetNX, until the lock is taken or
// the caller's context ends, so concurrent bookings queue up instead of
// failing.
type BookingLocker struct {
	client *redis.Client
	ttl    time.Duration
}

func NewBookingLocker(client *redis.Client, ttl time.Duration) *BookingLocker {
	return &BookingLocker{
		client: client,
		ttl:    ttl,
	}
}

func (l *BookingLocker) WithBookingLock(ctx context.Context, fn func(ctx context.Context) error) error {
	token := uuid.NewString()

	if err := l.acquire(ctx, token); err != nil {
		return err
	}
	defer func() {
		_ = l.release(context.WithoutCancel(ctx), token)
	}()

	ctxWithTimeout, cancel := context.WithTimeout(ctx, l.ttl)
	defer cancel()

	return fn(ctxWithTimeout)
}

func (l *BookingLocker) acquire(ctx context.Context, token string) error {
	for {
		ok, err := l.client.SetNX(ctx, bookingLockKey, token, l.ttl).Result()
		if err != nil {
			return fmt.Errorf("acquire booking lock: %w", err)
		}
		if ok {
			return nil
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %v", ErrLockNotAcquired, ctx.Err())
		case <-time.After(retryInterval):
		}
	}
}

// unlockScript deletes the lock only when the token still matches, so an
// instance whose lock expired cannot release a lock now held by another.
var unlockScript = redis.NewScript(`
local val = redis.call("GET", KEYS[1])
if val == ARGV[1] then
  return redis.call("DEL", KEYS[1])
else
  return 0
end
`)

func (l *BookingLocker) release(ctx context.Context, token string) error {
	_, err := unlockScript.Run(ctx, l.client, []string{bookingLockKey}, token).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("release booking lock: %w", err)
	}
	return nil
}
