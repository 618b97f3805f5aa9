package ratelimit_test

import (
	"testing"
	"time"

	"go-inspection-backend/pkg/ratelimit"

	"github.com/stretchr/testify/assert"
)

func TestAllowExhaustsCapacity(t *testing.T) {
	store := ratelimit.NewStore()

	for i := 1; i <= ratelimit.Capacity; i++ {
		assert.True(t, store.Allow("1.2.3.4"), "request %d should be allowed", i)
	}
	assert.False(t, store.Allow("1.2.3.4"), "request beyond capacity should be denied")
}

func TestWindowElapseHardResets(t *testing.T) {
	now := time.Now()
	store := ratelimit.NewStore(
		ratelimit.WithLimit(2, time.Minute),
		ratelimit.WithClock(func() time.Time { return now }),
	)

	assert.True(t, store.Allow("1.2.3.4"))
	assert.True(t, store.Allow("1.2.3.4"))
	assert.False(t, store.Allow("1.2.3.4"))

	// Hard reset: once the window elapses the bucket refills to capacity,
	// not proportionally.
	now = now.Add(time.Minute + time.Second)
	assert.True(t, store.Allow("1.2.3.4"))
	assert.True(t, store.Allow("1.2.3.4"))
	assert.False(t, store.Allow("1.2.3.4"))
}

func TestSourcesAreIndependent(t *testing.T) {
	store := ratelimit.NewStore(ratelimit.WithLimit(1, time.Minute))

	assert.True(t, store.Allow("1.2.3.4"))
	assert.False(t, store.Allow("1.2.3.4"))
	assert.True(t, store.Allow("5.6.7.8"), "a different source must have its own bucket")
}

func TestResetAll(t *testing.T) {
	store := ratelimit.NewStore(ratelimit.WithLimit(1, time.Minute))

	assert.True(t, store.Allow("1.2.3.4"))
	assert.False(t, store.Allow("1.2.3.4"))

	store.ResetAll()
	assert.True(t, store.Allow("1.2.3.4"), "exhausted source should be allowed after reset")
}
