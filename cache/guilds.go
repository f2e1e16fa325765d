package cache

import (
	"github.com/disgoorg/snowflake/v2"

	"github.com/fuad-daoud/discord-state/discord"
)

// guildRecord aggregates everything owned by one guild. The guild entity
// itself may be absent while only partially known: owned entities can be
// attached before the guild streams in, and survive the guild entity being
// deleted. available is nil until the gateway has said either way.
type guildRecord struct {
	guild     *discord.Guild
	available *bool

	members     map[snowflake.ID]*memberData
	voiceStates map[snowflake.ID]*voiceStateData
	roles       map[snowflake.ID]*discord.Role
	emojis      map[snowflake.ID]*emojiData
	channels    map[snowflake.ID]*discord.GuildChannel
}

// empty reports whether the record holds nothing worth keeping. The
// availability flag alone does not pin a record; only content does.
func (r *guildRecord) empty() bool {
	return r.guild == nil &&
		len(r.members) == 0 &&
		len(r.voiceStates) == 0 &&
		len(r.roles) == 0 &&
		len(r.emojis) == 0 &&
		len(r.channels) == 0
}

// guildRecordLocked returns the record for guildID, inserting an empty
// placeholder so owned entities can be cached before their guild is known.
func (c *Caches) guildRecordLocked(guildID snowflake.ID) *guildRecord {
	rec, ok := c.guilds[guildID]
	if !ok {
		rec = &guildRecord{}
		c.guilds[guildID] = rec
	}
	return rec
}

// removeGuildRecordIfEmptyLocked drops the record once the last piece of
// content leaves it, so emptied shells do not accumulate.
func (c *Caches) removeGuildRecordIfEmptyLocked(guildID snowflake.ID) {
	if rec, ok := c.guilds[guildID]; ok && rec.empty() {
		delete(c.guilds, guildID)
	}
}

// Guild returns the cached guild entity. It returns (nil, nil) on a plain
// miss and ErrGuildUnavailable when the guild is known but flagged
// unavailable, so callers never mistake an outage for absence.
func (c *Caches) Guild(guildID snowflake.ID) (*discord.Guild, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	rec, ok := c.guilds[guildID]
	if !ok {
		c.miss()
		return nil, nil
	}
	if rec.available != nil && !*rec.available {
		return nil, ErrGuildUnavailable
	}
	if rec.guild == nil {
		c.miss()
		return nil, nil
	}
	c.hit()
	guild := cloneGuild(*rec.guild)
	return &guild, nil
}

// SetGuild stores the full guild entity and marks it available.
func (c *Caches) SetGuild(guild discord.Guild) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setGuildLocked(guild)
}

func (c *Caches) setGuildLocked(guild discord.Guild) {
	rec := c.guildRecordLocked(guild.ID)
	clone := cloneGuild(guild)
	rec.guild = &clone
	available := true
	rec.available = &available
}

// DeleteGuild removes the guild entity from its record and returns it.
// Owned sub-collections stay behind in a shell record; the record itself
// is removed only when nothing is left in it.
func (c *Caches) DeleteGuild(guildID snowflake.ID) (*discord.Guild, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	rec, ok := c.guilds[guildID]
	if !ok || rec.guild == nil {
		return nil, false
	}
	deleted := *rec.guild
	rec.guild = nil
	rec.available = nil
	c.removeGuildRecordIfEmptyLocked(guildID)
	return &deleted, true
}

// UpdateGuild stores guild and returns the before/after pair, both read
// regardless of the availability flag so change events always see what was
// cached.
func (c *Caches) UpdateGuild(guild discord.Guild) (old *discord.Guild, updated *discord.Guild) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if rec, ok := c.guilds[guild.ID]; ok && rec.guild != nil {
		prev := cloneGuild(*rec.guild)
		old = &prev
	}
	c.setGuildLocked(guild)
	fresh := cloneGuild(*c.guilds[guild.ID].guild)
	return old, &fresh
}

// GuildsView snapshots every guild with a cached entity; placeholder
// records are skipped.
func (c *Caches) GuildsView() map[snowflake.ID]discord.Guild {
	c.mu.RLock()
	defer c.mu.RUnlock()
	view := make(map[snowflake.ID]discord.Guild)
	for id, rec := range c.guilds {
		if rec.guild == nil {
			continue
		}
		view[id] = cloneGuild(*rec.guild)
	}
	return view
}

// SetGuildAvailability flags a known or new guild as reachable or not
// without touching any cached data.
func (c *Caches) SetGuildAvailability(guildID snowflake.ID, available bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	rec := c.guildRecordLocked(guildID)
	rec.available = &available
}

// SetInitialUnavailableGuilds seeds placeholder records for the guilds the
// ready payload listed before any of them stream in. Reading one of these
// yields ErrGuildUnavailable rather than a miss.
func (c *Caches) SetInitialUnavailableGuilds(guildIDs []snowflake.ID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, id := range guildIDs {
		rec := c.guildRecordLocked(id)
		available := false
		rec.available = &available
	}
}

// ClearGuilds removes and returns every cached guild entity, for teardown
// on a full reconnect. Records still holding owned entities are kept as
// shells so that data is not orphaned; fully emptied records go away.
func (c *Caches) ClearGuilds() map[snowflake.ID]discord.Guild {
	c.mu.Lock()
	defer c.mu.Unlock()
	cleared := make(map[snowflake.ID]discord.Guild)
	for id, rec := range c.guilds {
		rec.available = nil
		if rec.guild == nil {
			continue
		}
		cleared[id] = *rec.guild
		rec.guild = nil
		if rec.empty() {
			delete(c.guilds, id)
		}
	}
	return cleared
}
