// Package resultcache keeps prediction results alive between the text reply
// and the chart button press. Entries are addressed by opaque tokens, taken
// at most once, and bounded by TTL and capacity.
package resultcache

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"nationbot/core/logger"
	"nationbot/internal/nationalize"

	"log/slog"
)

const (
	// DefaultTTL is how long a result stays claimable after Put.
	DefaultTTL = 15 * time.Minute

	// DefaultMaxEntries caps the cache size; oldest entries are evicted first.
	DefaultMaxEntries = 1000
)

// Entry is a cached prediction result bound to the chat that requested it.
type Entry struct {
	ChatID  int64
	Name    string
	Guesses []nationalize.Guess

	storedAt time.Time
}

// Options configure a Cache.
type Options struct {
	TTL        time.Duration
	MaxEntries int

	// now overrides the clock in tests.
	now func() time.Time
}

// Cache is a bounded in-memory store of prediction results. Safe for
// concurrent use. Expired entries are dropped lazily on access, so the
// cache needs no background goroutine.
type Cache struct {
	mu      sync.Mutex
	entries map[string]Entry
	order   []string

	ttl time.Duration
	max int
	now func() time.Time
}

// New builds a Cache, applying defaults for unset options.
func New(opts Options) *Cache {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	max := opts.MaxEntries
	if max <= 0 {
		max = DefaultMaxEntries
	}
	now := opts.now
	if now == nil {
		now = time.Now
	}
	return &Cache{
		entries: make(map[string]Entry),
		ttl:     ttl,
		max:     max,
		now:     now,
	}
}

// Put stores a result and returns the opaque token that claims it.
func (c *Cache) Put(chatID int64, name string, guesses []nationalize.Guess) string {
	token := uuid.NewString()

	c.mu.Lock()
	c.sweepLocked()
	for len(c.entries) >= c.max {
		c.evictOldestLocked()
	}
	c.entries[token] = Entry{
		ChatID:   chatID,
		Name:     name,
		Guesses:  guesses,
		storedAt: c.now(),
	}
	c.order = append(c.order, token)
	size := len(c.entries)
	c.mu.Unlock()

	if logger.CACHE != nil {
		logger.CACHE.Debug("put",
			slog.String("event", "put"),
			slog.Int("entries", size),
		)
	}
	return token
}

// Take removes and returns the entry for token. The second return value is
// false when the token is unknown, already claimed, or expired.
func (c *Cache) Take(token string) (Entry, bool) {
	c.mu.Lock()
	entry, ok := c.entries[token]
	if ok {
		delete(c.entries, token)
	}
	c.mu.Unlock()

	if !ok {
		c.logTake("miss")
		return Entry{}, false
	}
	if c.now().Sub(entry.storedAt) > c.ttl {
		c.logTake("stale")
		return Entry{}, false
	}
	c.logTake("hit")
	return entry, true
}

// Len reports the number of live (unexpired) entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sweepLocked()
	return len(c.entries)
}

func (c *Cache) sweepLocked() {
	cutoff := c.now().Add(-c.ttl)
	for token, entry := range c.entries {
		if entry.storedAt.Before(cutoff) {
			delete(c.entries, token)
		}
	}
	c.compactLocked()
}

// compactLocked drops tokens of taken or swept entries from the order
// queue. Put sweeps before appending, so the queue stays proportional to
// the live set instead of growing with every token ever issued.
func (c *Cache) compactLocked() {
	if len(c.order) <= 2*len(c.entries) {
		return
	}
	live := c.order[:0]
	for _, token := range c.order {
		if _, ok := c.entries[token]; ok {
			live = append(live, token)
		}
	}
	c.order = live
}

// evictOldestLocked drops the oldest live entry. Tokens already taken or
// swept are skipped and removed from the order queue on the way.
func (c *Cache) evictOldestLocked() {
	for len(c.order) > 0 {
		token := c.order[0]
		c.order = c.order[1:]
		if _, ok := c.entries[token]; ok {
			delete(c.entries, token)
			return
		}
	}
	// order queue out of sync, drop an arbitrary entry to make room
	for token := range c.entries {
		delete(c.entries, token)
		return
	}
}

func (c *Cache) logTake(outcome string) {
	if logger.CACHE == nil {
		return
	}
	logger.CACHE.Debug("take",
		slog.String("event", "take"),
		slog.String("cache", outcome),
	)
}
