package redisclient

import (
	"context"
	"sync"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newTestLocker(t *testing.T) (*BookingLocker, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewBookingLocker(client, 2*time.Second), mr
}

func TestWithBookingLockRunsSection(t *testing.T) {
	locker, mr := newTestLocker(t)

	ran := false
	err := locker.WithBookingLock(context.Background(), func(ctx context.Context) error {
		ran = true
		require.True(t, mr.Exists(bookingLockKey))
		return nil
	})
	require.NoError(t, err)
	require.True(t, ran)

	// Lock is released once the section returns.
	require.False(t, mr.Exists(bookingLockKey))
}

func TestWithBookingLockSerializesSections(t *testing.T) {
	locker, _ := newTestLocker(t)

	var mu sync.Mutex
	var active, maxActive int

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := locker.WithBookingLock(context.Background(), func(ctx context.Context) error {
				mu.Lock()
				active++
				if active > maxActive {
					maxActive = active
				}
				mu.Unlock()

				time.Sleep(5 * time.Millisecond)

				mu.Lock()
				active--
				mu.Unlock()
				return nil
			})
			require.NoError(t, err)
		}()
	}
	wg.Wait()

	require.Equal(t, 1, maxActive)
}

func TestWithBookingLockGivesUpWhenContextEnds(t *testing.T) {
	locker, mr := newTestLocker(t)

	// Simulate another instance holding the lock.
	mr.Set(bookingLockKey, "someone-else")

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
	defer cancel()

	err := locker.WithBookingLock(ctx, func(ctx context.Context) error {
		t.Fatal("section must not run while the lock is held elsewhere")
		return nil
	})
	require.ErrorIs(t, err, ErrLockNotAcquired)
}

func TestReleaseLeavesForeignLockAlone(t *testing.T) {
	locker, mr := newTestLocker(t)

	mr.Set(bookingLockKey, "someone-else")
	require.NoError(t, locker.release(context.Background(), "not-my-token"))

	val, err := mr.Get(bookingLockKey)
	require.NoError(t, err)
	require.Equal(t, "someone-else", val)
}
