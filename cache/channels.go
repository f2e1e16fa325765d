package cache

import (
	"github.com/disgoorg/snowflake/v2"

	"github.com/fuad-daoud/discord-state/discord"
)

// GuildChannel looks up a guild channel by its id alone through the global
// channel index.
func (c *Caches) GuildChannel(channelID snowflake.ID) (discord.GuildChannel, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	channel, ok := c.guildChannelLocked(channelID)
	if !ok {
		c.miss()
		return discord.GuildChannel{}, false
	}
	c.hit()
	return channel, true
}

func (c *Caches) guildChannelLocked(channelID snowflake.ID) (discord.GuildChannel, bool) {
	guildID, ok := c.channelIndex[channelID]
	if !ok {
		return discord.GuildChannel{}, false
	}
	rec, ok := c.guilds[guildID]
	if !ok {
		return discord.GuildChannel{}, false
	}
	channel, ok := rec.channels[channelID]
	if !ok {
		return discord.GuildChannel{}, false
	}
	return cloneGuildChannel(*channel), true
}

// SetGuildChannel stores a channel under its guild, replacing any previous
// value wholesale.
func (c *Caches) SetGuildChannel(channel discord.GuildChannel) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setGuildChannelLocked(channel)
}

func (c *Caches) setGuildChannelLocked(channel discord.GuildChannel) {
	rec := c.guildRecordLocked(channel.GuildID)
	if rec.channels == nil {
		rec.channels = make(map[snowflake.ID]*discord.GuildChannel)
	}
	clone := cloneGuildChannel(channel)
	rec.channels[channel.ID] = &clone
	c.channelIndex[channel.ID] = channel.GuildID
}

// DeleteGuildChannel removes and returns a channel by id.
func (c *Caches) DeleteGuildChannel(channelID snowflake.ID) (discord.GuildChannel, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	guildID, ok := c.channelIndex[channelID]
	if !ok {
		return discord.GuildChannel{}, false
	}
	delete(c.channelIndex, channelID)
	rec, ok := c.guilds[guildID]
	if !ok {
		return discord.GuildChannel{}, false
	}
	channel, ok := rec.channels[channelID]
	if !ok {
		return discord.GuildChannel{}, false
	}
	delete(rec.channels, channelID)
	c.removeGuildRecordIfEmptyLocked(guildID)
	return *channel, true
}

// UpdateGuildChannel stores channel and returns the before/after pair.
func (c *Caches) UpdateGuildChannel(channel discord.GuildChannel) (old *discord.GuildChannel, updated *discord.GuildChannel) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if prev, ok := c.guildChannelLocked(channel.ID); ok {
		old = &prev
	}
	c.setGuildChannelLocked(channel)
	if fresh, ok := c.guildChannelLocked(channel.ID); ok {
		updated = &fresh
	}
	return old, updated
}

// GuildChannelsView snapshots every channel of one guild.
func (c *Caches) GuildChannelsView(guildID snowflake.ID) map[snowflake.ID]discord.GuildChannel {
	c.mu.RLock()
	defer c.mu.RUnlock()
	rec, ok := c.guilds[guildID]
	if !ok {
		return map[snowflake.ID]discord.GuildChannel{}
	}
	view := make(map[snowflake.ID]discord.GuildChannel, len(rec.channels))
	for id, channel := range rec.channels {
		view[id] = cloneGuildChannel(*channel)
	}
	return view
}

// ClearGuildChannels removes and returns every channel of one guild.
func (c *Caches) ClearGuildChannels(guildID snowflake.ID) map[snowflake.ID]discord.GuildChannel {
	c.mu.Lock()
	defer c.mu.Unlock()
	rec, ok := c.guilds[guildID]
	if !ok {
		return map[snowflake.ID]discord.GuildChannel{}
	}
	cleared := make(map[snowflake.ID]discord.GuildChannel, len(rec.channels))
	for id, channel := range rec.channels {
		cleared[id] = *channel
		delete(c.channelIndex, id)
	}
	rec.channels = nil
	c.removeGuildRecordIfEmptyLocked(guildID)
	return cleared
}
