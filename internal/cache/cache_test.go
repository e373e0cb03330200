package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestMemoryCache_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	var got payload
	ok, err := c.Get(ctx, "missing", &got)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "k", payload{Name: "a", Count: 2}, time.Minute))
	ok, err = c.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, payload{Name: "a", Count: 2}, got)

	require.NoError(t, c.Delete(ctx, "k", "other"))
	ok, err = c.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryCache_Expiry(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set(ctx, "k", 1, time.Second))

	var v int
	ok, _ := c.Get(ctx, "k", &v)
	assert.True(t, ok)

	now = now.Add(2 * time.Second)
	ok, _ = c.Get(ctx, "k", &v)
	assert.False(t, ok)
}

func TestMemoryCache_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = c.Set(ctx, "shared", i, 0)
			var v int
			_, _ = c.Get(ctx, "shared", &v)
			_ = c.Delete(ctx, "shared")
		}(i)
	}
	wg.Wait()
}

func TestNew(t *testing.T) {
	c, err := New(Config{Type: "memory"})
	require.NoError(t, err)
	assert.IsType(t, &MemoryCache{}, c)

	c, err = New(Config{Type: "none"})
	require.NoError(t, err)
	ok, err := c.Get(context.Background(), "x", new(int))
	assert.NoError(t, err)
	assert.False(t, ok)

	_, err = New(Config{Type: "memcached"})
	assert.Error(t, err)
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "reviews:received:u1", ReceivedReviewsKey("u1"))
	assert.Equal(t, "reviews:given:u1", GivenReviewsKey("u1"))
	assert.Equal(t, "reviews:gen:u1", ReviewsGenerationKey("u1"))
	assert.Equal(t, "reviews:given:u1", Versioned(GivenReviewsKey("u1"), ""))
	assert.Equal(t, "reviews:given:u1@g2", Versioned(GivenReviewsKey("u1"), "g2"))
}
