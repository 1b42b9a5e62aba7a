package limiter

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestMemory_FixedWindow(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	m := NewMemory(3, time.Minute).WithClock(func() time.Time { return now })
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		d, err := m.Allow(ctx, "a")
		require.NoError(t, err)
		require.True(t, d.Allowed)
		require.Equal(t, 3-i, d.Remaining)
		require.Equal(t, now.Add(time.Minute), d.ResetAt)
	}
	d, _ := m.Allow(ctx, "a")
	require.False(t, d.Allowed)
	require.Equal(t, 0, d.Remaining)

	// other keys are independent
	d, _ = m.Allow(ctx, "b")
	require.True(t, d.Allowed)

	now = now.Add(time.Minute)
	d, _ = m.Allow(ctx, "a")
	require.True(t, d.Allowed)
	require.Equal(t, 2, d.Remaining)
}

func TestMemory_Concurrent(t *testing.T) {
	t.Parallel()
	m := NewMemory(50, time.Hour)
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d, _ := m.Allow(context.Background(), "k")
			if d.Allowed {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	require.Equal(t, 50, allowed)
}

func TestHashKey(t *testing.T) {
	t.Parallel()
	require.Equal(t, HashKey("10.0.0.1"), HashKey("10.0.0.1"))
	require.NotEqual(t, HashKey("10.0.0.1"), HashKey("10.0.0.2"))
	require.Len(t, HashKey("::1"), 32)
}

type fakeCounter struct {
	count   int64
	ttl     time.Duration
	incrErr error

	expires []time.Duration
}

func (f *fakeCounter) Incr(context.Context, string) *redis.IntCmd {
	if f.incrErr != nil {
		return redis.NewIntResult(0, f.incrErr)
	}
	f.count++
	return redis.NewIntResult(f.count, nil)
}

func (f *fakeCounter) PExpire(_ context.Context, _ string, d time.Duration) *redis.BoolCmd {
	f.expires = append(f.expires, d)
	f.ttl = d
	return redis.NewBoolResult(true, nil)
}

func (f *fakeCounter) PTTL(context.Context, string) *redis.DurationCmd {
	return redis.NewDurationResult(f.ttl, nil)
}

func TestRedis_Allow(t *testing.T) {
	t.Parallel()
	fc := &fakeCounter{}
	l := NewRedis(fc, "rl:general:", 2, 15*time.Minute)
	ctx := context.Background()

	d, err := l.Allow(ctx, "ip")
	require.NoError(t, err)
	require.True(t, d.Allowed)
	require.Equal(t, 1, d.Remaining)
	require.Equal(t, []time.Duration{15 * time.Minute}, fc.expires)

	fc.ttl = 10 * time.Minute
	d, err = l.Allow(ctx, "ip")
	require.NoError(t, err)
	require.True(t, d.Allowed)
	require.WithinDuration(t, time.Now().Add(10*time.Minute), d.ResetAt, 5*time.Second)

	d, err = l.Allow(ctx, "ip")
	require.NoError(t, err)
	require.False(t, d.Allowed)
	require.Len(t, fc.expires, 1)
}

func TestRedis_RepairsMissingExpiry(t *testing.T) {
	t.Parallel()
	fc := &fakeCounter{count: 5, ttl: -1}
	l := NewRedis(fc, "p:", 10, time.Minute)

	_, err := l.Allow(context.Background(), "ip")
	require.NoError(t, err)
	require.Equal(t, []time.Duration{time.Minute}, fc.expires)
}

func TestRedis_Error(t *testing.T) {
	t.Parallel()
	l := NewRedis(&fakeCounter{incrErr: errors.New("conn refused")}, "p:", 10, time.Minute)
	_, err := l.Allow(context.Background(), "ip")
	require.ErrorContains(t, err, "conn refused")
}
