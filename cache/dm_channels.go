package cache

import (
	"github.com/disgoorg/snowflake/v2"

	"github.com/fuad-daoud/discord-state/discord"
)

// DMChannel returns the direct message channel with recipientID. DM
// channels are keyed by who they reach, not by channel id, because that is
// how both the REST layer and consumers ask for them. The lookup counts as
// a use for eviction ordering.
func (c *Caches) DMChannel(recipientID snowflake.ID) (discord.DMChannel, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, ok := c.dmChannels.get(recipientID)
	if !ok {
		c.miss()
		return discord.DMChannel{}, false
	}
	entry, ok := c.users[data.recipientID]
	if !ok {
		c.miss()
		return discord.DMChannel{}, false
	}
	c.hit()
	return data.build(cloneUser(entry.user)), true
}

// SetDMChannel decomposes channel into a compact record and claims a
// reference on the recipient. Inserting past capacity evicts the
// least-recently-used DM channel first, releasing that recipient's
// reference exactly as an explicit delete would.
func (c *Caches) SetDMChannel(channel discord.DMChannel) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setDMChannelLocked(channel)
}

func (c *Caches) setDMChannelLocked(channel discord.DMChannel) {
	if _, ok := c.dmChannels.peek(channel.Recipient.ID); ok {
		// the record being replaced already holds the recipient's reference
		c.refreshUserLocked(channel.Recipient)
	} else {
		c.touchUserLocked(channel.Recipient)
	}
	c.dmChannels.set(channel.Recipient.ID, newDMChannelData(channel))
}

func (c *Caches) evictDMChannelLocked(recipientID snowflake.ID, data *dmChannelData) {
	c.releaseUserLocked(data.recipientID)
	c.evictCount.Add(1)
	c.metrics.Evict()
	c.logger.Debug("evicted dm channel", "channel_id", data.id, "recipient_id", recipientID)
}

// DeleteDMChannel removes the DM channel with recipientID, returns it
// reconstructed and releases the recipient reference.
func (c *Caches) DeleteDMChannel(recipientID snowflake.ID) (discord.DMChannel, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, ok := c.dmChannels.delete(recipientID)
	if !ok {
		return discord.DMChannel{}, false
	}
	var channel discord.DMChannel
	built := false
	if entry, ok := c.users[data.recipientID]; ok {
		channel = data.build(cloneUser(entry.user))
		built = true
	}
	c.releaseUserLocked(data.recipientID)
	return channel, built
}

// UpdateDMChannel stores channel and returns the before/after pair, both
// read through full reconstruction.
func (c *Caches) UpdateDMChannel(channel discord.DMChannel) (old *discord.DMChannel, updated *discord.DMChannel) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if prev, ok := c.dmChannelLocked(channel.Recipient.ID); ok {
		old = &prev
	}
	c.setDMChannelLocked(channel)
	if fresh, ok := c.dmChannelLocked(channel.Recipient.ID); ok {
		updated = &fresh
	}
	return old, updated
}

func (c *Caches) dmChannelLocked(recipientID snowflake.ID) (discord.DMChannel, bool) {
	data, ok := c.dmChannels.peek(recipientID)
	if !ok {
		return discord.DMChannel{}, false
	}
	entry, ok := c.users[data.recipientID]
	if !ok {
		return discord.DMChannel{}, false
	}
	return data.build(cloneUser(entry.user)), true
}

// DMChannelsView snapshots every cached DM channel keyed by recipient,
// without disturbing eviction order. Records whose recipient no longer
// resolves are skipped.
func (c *Caches) DMChannelsView() map[snowflake.ID]discord.DMChannel {
	c.mu.RLock()
	defer c.mu.RUnlock()
	view := make(map[snowflake.ID]discord.DMChannel, c.dmChannels.len())
	c.dmChannels.each(func(recipientID snowflake.ID, data *dmChannelData) {
		entry, ok := c.users[data.recipientID]
		if !ok {
			return
		}
		view[recipientID] = data.build(cloneUser(entry.user))
	})
	return view
}

// ClearDMChannels empties the DM channel cache, returning every channel
// that still reconstructs and releasing all recipient references in the
// same pass.
func (c *Caches) ClearDMChannels() map[snowflake.ID]discord.DMChannel {
	c.mu.Lock()
	defer c.mu.Unlock()
	cleared := make(map[snowflake.ID]discord.DMChannel)
	for recipientID, data := range c.dmChannels.drain() {
		if entry, ok := c.users[data.recipientID]; ok {
			cleared[recipientID] = data.build(cloneUser(entry.user))
		}
		c.releaseUserLocked(data.recipientID)
	}
	return cleared
}
