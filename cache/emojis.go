package cache

import (
	"github.com/disgoorg/snowflake/v2"

	"github.com/fuad-daoud/discord-state/discord"
)

// Emoji looks up a custom emoji by id through the global emoji index. An
// emoji whose recorded creator no longer resolves is returned without one;
// unlike a member's user, the creator is decoration, not identity.
func (c *Caches) Emoji(emojiID snowflake.ID) (discord.Emoji, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	emoji, ok := c.emojiLocked(emojiID)
	if !ok {
		c.miss()
		return discord.Emoji{}, false
	}
	c.hit()
	return emoji, true
}

func (c *Caches) emojiLocked(emojiID snowflake.ID) (discord.Emoji, bool) {
	guildID, ok := c.emojiIndex[emojiID]
	if !ok {
		return discord.Emoji{}, false
	}
	rec, ok := c.guilds[guildID]
	if !ok {
		return discord.Emoji{}, false
	}
	data, ok := rec.emojis[emojiID]
	if !ok {
		return discord.Emoji{}, false
	}
	return data.build(c.creatorLocked(data)), true
}

func (c *Caches) creatorLocked(data *emojiData) *discord.User {
	if data.creatorID == nil {
		return nil
	}
	entry, ok := c.users[*data.creatorID]
	if !ok {
		return nil
	}
	creator := cloneUser(entry.user)
	return &creator
}

// SetEmoji decomposes emoji into a compact record under its guild and
// settles the creator reference: claimed on first sight, moved if the
// recorded creator changed, released if it went away.
func (c *Caches) SetEmoji(emoji discord.Emoji) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setEmojiLocked(emoji)
}

func (c *Caches) setEmojiLocked(emoji discord.Emoji) {
	rec := c.guildRecordLocked(emoji.GuildID)
	if rec.emojis == nil {
		rec.emojis = make(map[snowflake.ID]*emojiData)
	}
	data := newEmojiData(emoji)
	prev, replacing := rec.emojis[emoji.ID]
	switch {
	case !replacing || prev.creatorID == nil:
		if emoji.Creator != nil {
			c.touchUserLocked(*emoji.Creator)
		}
	case data.creatorID == nil:
		c.releaseUserLocked(*prev.creatorID)
	case *prev.creatorID == *data.creatorID:
		c.refreshUserLocked(*emoji.Creator)
	default:
		c.releaseUserLocked(*prev.creatorID)
		c.touchUserLocked(*emoji.Creator)
	}
	rec.emojis[emoji.ID] = data
	c.emojiIndex[emoji.ID] = emoji.GuildID
}

// DeleteEmoji removes an emoji by id, returns it reconstructed and
// releases the creator reference if the record held one.
func (c *Caches) DeleteEmoji(emojiID snowflake.ID) (discord.Emoji, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	guildID, ok := c.emojiIndex[emojiID]
	if !ok {
		return discord.Emoji{}, false
	}
	delete(c.emojiIndex, emojiID)
	rec, ok := c.guilds[guildID]
	if !ok {
		return discord.Emoji{}, false
	}
	data, ok := rec.emojis[emojiID]
	if !ok {
		return discord.Emoji{}, false
	}
	emoji := data.build(c.creatorLocked(data))
	delete(rec.emojis, emojiID)
	if data.creatorID != nil {
		c.releaseUserLocked(*data.creatorID)
	}
	c.removeGuildRecordIfEmptyLocked(guildID)
	return emoji, true
}

// UpdateEmoji stores emoji and returns the before/after pair.
func (c *Caches) UpdateEmoji(emoji discord.Emoji) (old *discord.Emoji, updated *discord.Emoji) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if prev, ok := c.emojiLocked(emoji.ID); ok {
		old = &prev
	}
	c.setEmojiLocked(emoji)
	if fresh, ok := c.emojiLocked(emoji.ID); ok {
		updated = &fresh
	}
	return old, updated
}

// EmojisView reconstructs every custom emoji of one guild.
func (c *Caches) EmojisView(guildID snowflake.ID) map[snowflake.ID]discord.Emoji {
	c.mu.RLock()
	defer c.mu.RUnlock()
	rec, ok := c.guilds[guildID]
	if !ok {
		return map[snowflake.ID]discord.Emoji{}
	}
	view := make(map[snowflake.ID]discord.Emoji, len(rec.emojis))
	for id, data := range rec.emojis {
		view[id] = data.build(c.creatorLocked(data))
	}
	return view
}

// ClearEmojis removes and returns every custom emoji of one guild,
// releasing the creator references held by the records.
func (c *Caches) ClearEmojis(guildID snowflake.ID) map[snowflake.ID]discord.Emoji {
	c.mu.Lock()
	defer c.mu.Unlock()
	rec, ok := c.guilds[guildID]
	if !ok {
		return map[snowflake.ID]discord.Emoji{}
	}
	cleared := make(map[snowflake.ID]discord.Emoji, len(rec.emojis))
	for id, data := range rec.emojis {
		cleared[id] = data.build(c.creatorLocked(data))
		delete(c.emojiIndex, id)
		if data.creatorID != nil {
			c.releaseUserLocked(*data.creatorID)
		}
	}
	rec.emojis = nil
	c.removeGuildRecordIfEmptyLocked(guildID)
	return cleared
}
