package cache_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/venuemap/internal/server/cache"
)

func TestRemember(t *testing.T) {
	c := cache.New(time.Minute, time.Minute)
	loads := 0
	load := func() (any, error) {
		loads++
		return "payload", nil
	}

	for range 3 {
		v, err := c.Remember(cache.KeyMarket, load)
		require.NoError(t, err)
		assert.Equal(t, "payload", v)
	}
	assert.Equal(t, 1, loads)
	assert.Equal(t, cache.Stats{Items: 1, Hits: 2, Misses: 1}, c.Stats())
}

func TestRememberDoesNotCacheErrors(t *testing.T) {
	c := cache.New(time.Minute, time.Minute)
	boom := errors.New("store down")

	_, err := c.Remember(cache.KeyMarket, func() (any, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)
	_, ok := c.Get(cache.KeyMarket)
	assert.False(t, ok)
}

func TestClear(t *testing.T) {
	c := cache.New(time.Minute, time.Minute)
	c.Set(cache.KeyMarket, 1)
	c.Set(cache.KeyAnalytics, 2)
	c.Clear()
	assert.Equal(t, 0, c.Stats().Items)
}

func TestExpiry(t *testing.T) {
	c := cache.New(20*time.Millisecond, time.Minute)
	c.Set(cache.KeyReport, "x")
	time.Sleep(40 * time.Millisecond)
	_, ok := c.Get(cache.KeyReport)
	assert.False(t, ok)
}
