package cache

import (
	"github.com/disgoorg/snowflake/v2"

	"github.com/fuad-daoud/discord-state/discord"
)

// VoiceState returns one user's voice state within a guild.
func (c *Caches) VoiceState(guildID snowflake.ID, userID snowflake.ID) (discord.VoiceState, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	state, ok := c.voiceStateLocked(guildID, userID)
	if !ok {
		c.miss()
		return discord.VoiceState{}, false
	}
	c.hit()
	return state, true
}

func (c *Caches) voiceStateLocked(guildID snowflake.ID, userID snowflake.ID) (discord.VoiceState, bool) {
	rec, ok := c.guilds[guildID]
	if !ok {
		return discord.VoiceState{}, false
	}
	data, ok := rec.voiceStates[userID]
	if !ok {
		return discord.VoiceState{}, false
	}
	return data.build(), true
}

// SetVoiceState stores a voice state under its guild, keyed by user.
func (c *Caches) SetVoiceState(state discord.VoiceState) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setVoiceStateLocked(state)
}

func (c *Caches) setVoiceStateLocked(state discord.VoiceState) {
	rec := c.guildRecordLocked(state.GuildID)
	if rec.voiceStates == nil {
		rec.voiceStates = make(map[snowflake.ID]*voiceStateData)
	}
	rec.voiceStates[state.UserID] = newVoiceStateData(state)
}

// DeleteVoiceState removes and returns a user's voice state.
func (c *Caches) DeleteVoiceState(guildID snowflake.ID, userID snowflake.ID) (discord.VoiceState, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	rec, ok := c.guilds[guildID]
	if !ok {
		return discord.VoiceState{}, false
	}
	data, ok := rec.voiceStates[userID]
	if !ok {
		return discord.VoiceState{}, false
	}
	delete(rec.voiceStates, userID)
	c.removeGuildRecordIfEmptyLocked(guildID)
	return data.build(), true
}

// UpdateVoiceState stores state and returns the before/after pair.
func (c *Caches) UpdateVoiceState(state discord.VoiceState) (old *discord.VoiceState, updated *discord.VoiceState) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if prev, ok := c.voiceStateLocked(state.GuildID, state.UserID); ok {
		old = &prev
	}
	c.setVoiceStateLocked(state)
	if fresh, ok := c.voiceStateLocked(state.GuildID, state.UserID); ok {
		updated = &fresh
	}
	return old, updated
}

// VoiceStatesView snapshots every voice state of one guild.
func (c *Caches) VoiceStatesView(guildID snowflake.ID) map[snowflake.ID]discord.VoiceState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	rec, ok := c.guilds[guildID]
	if !ok {
		return map[snowflake.ID]discord.VoiceState{}
	}
	view := make(map[snowflake.ID]discord.VoiceState, len(rec.voiceStates))
	for id, data := range rec.voiceStates {
		view[id] = data.build()
	}
	return view
}

// ClearVoiceStates removes and returns every voice state of one guild.
func (c *Caches) ClearVoiceStates(guildID snowflake.ID) map[snowflake.ID]discord.VoiceState {
	c.mu.Lock()
	defer c.mu.Unlock()
	rec, ok := c.guilds[guildID]
	if !ok {
		return map[snowflake.ID]discord.VoiceState{}
	}
	cleared := make(map[snowflake.ID]discord.VoiceState, len(rec.voiceStates))
	for id, data := range rec.voiceStates {
		cleared[id] = data.build()
	}
	rec.voiceStates = nil
	c.removeGuildRecordIfEmptyLocked(guildID)
	return cleared
}
