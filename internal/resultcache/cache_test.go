package resultcache

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nationbot/internal/nationalize"
)

func sampleGuesses() []nationalize.Guess {
	return []nationalize.Guess{
		{CountryID: "RU", Probability: 0.42},
		{CountryID: "DE", Probability: 0.11},
	}
}

func TestPutTakeRoundTrip(t *testing.T) {
	c := New(Options{})
	token := c.Put(100, "Lena", sampleGuesses())
	require.NotEmpty(t, token)

	entry, ok := c.Take(token)
	require.True(t, ok)
	assert.Equal(t, int64(100), entry.ChatID)
	assert.Equal(t, "Lena", entry.Name)
	assert.Equal(t, sampleGuesses(), entry.Guesses)
}

func TestTakeIsSingleUse(t *testing.T) {
	c := New(Options{})
	token := c.Put(100, "Lena", sampleGuesses())

	_, ok := c.Take(token)
	require.True(t, ok)

	_, ok = c.Take(token)
	assert.False(t, ok)
}

func TestTakeUnknownToken(t *testing.T) {
	c := New(Options{})
	_, ok := c.Take("no-such-token")
	assert.False(t, ok)
}

func TestTokensAreUnique(t *testing.T) {
	c := New(Options{})
	a := c.Put(1, "Lena", sampleGuesses())
	b := c.Put(1, "Lena", sampleGuesses())
	assert.NotEqual(t, a, b)
}

func TestExpiryOnTake(t *testing.T) {
	current := time.Now()
	c := New(Options{TTL: time.Minute, now: func() time.Time { return current }})

	token := c.Put(100, "Lena", sampleGuesses())
	current = current.Add(2 * time.Minute)

	_, ok := c.Take(token)
	assert.False(t, ok)
}

func TestLenSweepsExpired(t *testing.T) {
	current := time.Now()
	c := New(Options{TTL: time.Minute, now: func() time.Time { return current }})

	c.Put(1, "a", sampleGuesses())
	c.Put(2, "b", sampleGuesses())
	assert.Equal(t, 2, c.Len())

	current = current.Add(2 * time.Minute)
	assert.Equal(t, 0, c.Len())
}

func TestCapacityEvictsOldest(t *testing.T) {
	c := New(Options{MaxEntries: 2})

	first := c.Put(1, "a", sampleGuesses())
	second := c.Put(2, "b", sampleGuesses())
	third := c.Put(3, "c", sampleGuesses())

	_, ok := c.Take(first)
	assert.False(t, ok, "oldest entry should have been evicted")

	_, ok = c.Take(second)
	assert.True(t, ok)
	_, ok = c.Take(third)
	assert.True(t, ok)
}

func TestOrderQueueStaysBounded(t *testing.T) {
	c := New(Options{MaxEntries: 1000})

	for i := 0; i < 5000; i++ {
		token := c.Put(1, "name", sampleGuesses())
		_, ok := c.Take(token)
		require.True(t, ok)
	}

	assert.Equal(t, 0, c.Len())
	c.mu.Lock()
	retained := len(c.order)
	c.mu.Unlock()
	assert.LessOrEqual(t, retained, 2, "order queue must not retain tokens of consumed entries")
}

func TestConcurrentAccess(t *testing.T) {
	c := New(Options{MaxEntries: 64})

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int64) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				token := c.Put(n, "name", sampleGuesses())
				if entry, ok := c.Take(token); ok {
					assert.Equal(t, n, entry.ChatID)
				}
			}
		}(int64(i))
	}
	wg.Wait()
}
