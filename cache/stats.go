package cache

// Metrics receives cache access signals. Implementations must be safe for
// concurrent use; signals can fire from any reading goroutine.
type Metrics interface {
	Hit()
	Miss()
	Evict()
}

// NoopMetrics is the default Metrics sink and does nothing.
type NoopMetrics struct{}

func (NoopMetrics) Hit()   {}
func (NoopMetrics) Miss()  {}
func (NoopMetrics) Evict() {}

var _ Metrics = NoopMetrics{}

// Stats is a point-in-time census of everything resident in the cache.
type Stats struct {
	Users         int
	Guilds        int
	Members       int
	VoiceStates   int
	Roles         int
	Emojis        int
	GuildChannels int
	DMChannels    int
	Messages      int
	Hits          uint64
	Misses        uint64
	Evictions     uint64
}

// Stats counts resident entries across all stores.
func (c *Caches) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	stats := Stats{
		Users:      len(c.users),
		Guilds:     len(c.guilds),
		DMChannels: c.dmChannels.len(),
		Messages:   c.messages.len(),
		Hits:       c.hitCount.Load(),
		Misses:     c.missCount.Load(),
		Evictions:  c.evictCount.Load(),
	}
	for _, rec := range c.guilds {
		stats.Members += len(rec.members)
		stats.VoiceStates += len(rec.voiceStates)
		stats.Roles += len(rec.roles)
		stats.Emojis += len(rec.emojis)
		stats.GuildChannels += len(rec.channels)
	}
	return stats
}
