// Package cache keeps the session state streamed in over the Discord
// gateway queryable in memory. Entities arrive fully formed from the
// gateway decoder; the cache decomposes them into compact records plus a
// single reference-counted copy of every shared user, and rebuilds the
// full entities on read. Guild-owned records (members, roles, emojis,
// channels, voice states) live and die with their guild record, while
// high-volume entries (messages, DM channels) sit in fixed-size LRU maps.
package cache

import (
	"io"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/disgoorg/snowflake/v2"

	"github.com/fuad-daoud/discord-state/discord"
)

const (
	DefaultMessageCacheSize   = 300
	DefaultDMChannelCacheSize = 100
)

// Option configures a Caches on construction.
type Option func(*Caches)

// WithLogger sets the logger used for eviction and invariant diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Caches) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMetrics sets the sink that receives hit/miss/eviction signals.
func WithMetrics(metrics Metrics) Option {
	return func(c *Caches) {
		if metrics != nil {
			c.metrics = metrics
		}
	}
}

// WithMessageCacheSize caps how many messages are retained.
func WithMessageCacheSize(size int) Option {
	return func(c *Caches) {
		if size > 0 {
			c.messageCacheSize = size
		}
	}
}

// WithDMChannelCacheSize caps how many DM channels are retained.
func WithDMChannelCacheSize(size int) Option {
	return func(c *Caches) {
		if size > 0 {
			c.dmChannelCacheSize = size
		}
	}
}

// Caches is the single entry point to all cached session state. One
// sequential gateway dispatch path mutates it; any number of goroutines may
// read concurrently. Every mutation swaps whole records under the write
// lock, so readers never observe a half-applied update, and every returned
// entity or view is a point-in-time copy that does not track later changes.
type Caches struct {
	logger  *slog.Logger
	metrics Metrics

	messageCacheSize   int
	dmChannelCacheSize int

	mu sync.RWMutex

	me *discord.OwnUser

	users  map[snowflake.ID]*userEntry
	guilds map[snowflake.ID]*guildRecord

	// Delete events only carry the entity id, so these map role, channel
	// and emoji ids back to their owning guild in O(1).
	roleIndex    map[snowflake.ID]snowflake.ID
	channelIndex map[snowflake.ID]snowflake.ID
	emojiIndex   map[snowflake.ID]snowflake.ID

	// dmChannels is keyed by recipient id, messages by message id.
	dmChannels *boundedMap[snowflake.ID, *dmChannelData]
	messages   *boundedMap[snowflake.ID, *messageData]

	hitCount   atomic.Uint64
	missCount  atomic.Uint64
	evictCount atomic.Uint64
}

// New creates an empty cache.
func New(opts ...Option) *Caches {
	c := &Caches{
		logger:             slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics:            NoopMetrics{},
		messageCacheSize:   DefaultMessageCacheSize,
		dmChannelCacheSize: DefaultDMChannelCacheSize,
		users:              make(map[snowflake.ID]*userEntry),
		guilds:             make(map[snowflake.ID]*guildRecord),
		roleIndex:          make(map[snowflake.ID]snowflake.ID),
		channelIndex:       make(map[snowflake.ID]snowflake.ID),
		emojiIndex:         make(map[snowflake.ID]snowflake.ID),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.dmChannels = newBoundedMap[snowflake.ID, *dmChannelData](c.dmChannelCacheSize, c.evictDMChannelLocked)
	c.messages = newBoundedMap[snowflake.ID, *messageData](c.messageCacheSize, c.evictMessageLocked)
	return c
}

func (c *Caches) hit()  { c.hitCount.Add(1); c.metrics.Hit() }
func (c *Caches) miss() { c.missCount.Add(1); c.metrics.Miss() }
