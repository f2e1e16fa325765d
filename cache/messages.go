package cache

import (
	"github.com/disgoorg/snowflake/v2"

	"github.com/fuad-daoud/discord-state/discord"
)

// Message returns a cached message by id. The lookup counts as a use for
// eviction ordering.
func (c *Caches) Message(messageID snowflake.ID) (discord.Message, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, ok := c.messages.get(messageID)
	if !ok {
		c.miss()
		return discord.Message{}, false
	}
	entry, ok := c.users[data.authorID]
	if !ok {
		c.miss()
		return discord.Message{}, false
	}
	c.hit()
	return data.build(cloneUser(entry.user)), true
}

// SetMessage decomposes message into a compact record, claims a reference
// on the author and advances the last-message id of the channel it landed
// in, if that channel is cached. Inserting past capacity evicts the
// least-recently-used message first, releasing its author reference.
func (c *Caches) SetMessage(message discord.Message) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setMessageLocked(message)
}

func (c *Caches) setMessageLocked(message discord.Message) {
	data := newMessageData(message)
	if prev, ok := c.messages.peek(message.ID); ok {
		if prev.authorID == data.authorID {
			c.refreshUserLocked(message.Author)
		} else {
			// an edit never moves a message between authors, but a replayed
			// id must not leak the old author's reference
			c.releaseUserLocked(prev.authorID)
			c.touchUserLocked(message.Author)
		}
	} else {
		c.touchUserLocked(message.Author)
	}
	c.messages.set(message.ID, data)
	c.advanceLastMessageLocked(message)
}

// advanceLastMessageLocked moves the owning channel's last-message id
// forward only. Edits and other replays arrive through the same set path
// as fresh messages; snowflake ids are time-ordered, so an older id
// never overwrites a newer one.
func (c *Caches) advanceLastMessageLocked(message discord.Message) {
	if message.GuildID != nil {
		if guildID, ok := c.channelIndex[message.ChannelID]; ok {
			if rec, ok := c.guilds[guildID]; ok {
				if channel, ok := rec.channels[message.ChannelID]; ok {
					if channel.LastMessageID == nil || message.ID > *channel.LastMessageID {
						id := message.ID
						channel.LastMessageID = &id
					}
				}
			}
		}
		return
	}
	// DM records are keyed by recipient, so finding the channel means a
	// walk; the cache is small and bounded.
	c.dmChannels.each(func(_ snowflake.ID, data *dmChannelData) {
		if data.id == message.ChannelID {
			if data.lastMessageID == nil || message.ID > *data.lastMessageID {
				id := message.ID
				data.lastMessageID = &id
			}
		}
	})
}

func (c *Caches) evictMessageLocked(messageID snowflake.ID, data *messageData) {
	c.releaseUserLocked(data.authorID)
	c.evictCount.Add(1)
	c.metrics.Evict()
	c.logger.Debug("evicted message", "message_id", messageID, "channel_id", data.channelID)
}

// DeleteMessage removes a message by id, returns it reconstructed and
// releases the author reference.
func (c *Caches) DeleteMessage(messageID snowflake.ID) (discord.Message, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, ok := c.messages.delete(messageID)
	if !ok {
		return discord.Message{}, false
	}
	var message discord.Message
	built := false
	if entry, ok := c.users[data.authorID]; ok {
		message = data.build(cloneUser(entry.user))
		built = true
	}
	c.releaseUserLocked(data.authorID)
	return message, built
}

// UpdateMessage stores message and returns the before/after pair, both
// read through full reconstruction.
func (c *Caches) UpdateMessage(message discord.Message) (old *discord.Message, updated *discord.Message) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if prev, ok := c.messageLocked(message.ID); ok {
		old = &prev
	}
	c.setMessageLocked(message)
	if fresh, ok := c.messageLocked(message.ID); ok {
		updated = &fresh
	}
	return old, updated
}

func (c *Caches) messageLocked(messageID snowflake.ID) (discord.Message, bool) {
	data, ok := c.messages.peek(messageID)
	if !ok {
		return discord.Message{}, false
	}
	entry, ok := c.users[data.authorID]
	if !ok {
		return discord.Message{}, false
	}
	return data.build(cloneUser(entry.user)), true
}

// MessagesView snapshots every cached message without disturbing eviction
// order. Records whose author no longer resolves are skipped.
func (c *Caches) MessagesView() map[snowflake.ID]discord.Message {
	c.mu.RLock()
	defer c.mu.RUnlock()
	view := make(map[snowflake.ID]discord.Message, c.messages.len())
	c.messages.each(func(messageID snowflake.ID, data *messageData) {
		entry, ok := c.users[data.authorID]
		if !ok {
			return
		}
		view[messageID] = data.build(cloneUser(entry.user))
	})
	return view
}

// ClearMessages empties the message cache, returning every message that
// still reconstructs and releasing all author references in the same pass.
func (c *Caches) ClearMessages() map[snowflake.ID]discord.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	cleared := make(map[snowflake.ID]discord.Message)
	for messageID, data := range c.messages.drain() {
		if entry, ok := c.users[data.authorID]; ok {
			cleared[messageID] = data.build(cloneUser(entry.user))
		}
		c.releaseUserLocked(data.authorID)
	}
	return cleared
}
