package cache

import (
	"github.com/disgoorg/snowflake/v2"

	"github.com/fuad-daoud/discord-state/discord"
)

// Member reconstructs one guild member, joining the stored record with the
// shared user cache. A record whose user has gone missing reads as absent.
func (c *Caches) Member(guildID snowflake.ID, userID snowflake.ID) (discord.Member, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	member, ok := c.memberLocked(guildID, userID)
	if !ok {
		c.miss()
		return discord.Member{}, false
	}
	c.hit()
	return member, true
}

func (c *Caches) memberLocked(guildID snowflake.ID, userID snowflake.ID) (discord.Member, bool) {
	rec, ok := c.guilds[guildID]
	if !ok {
		return discord.Member{}, false
	}
	data, ok := rec.members[userID]
	if !ok {
		return discord.Member{}, false
	}
	entry, ok := c.users[data.userID]
	if !ok {
		return discord.Member{}, false
	}
	return data.build(cloneUser(entry.user)), true
}

// SetMember decomposes member into a compact record under its guild and
// claims a reference on the user, inserting the user on first sight.
func (c *Caches) SetMember(member discord.Member) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setMemberLocked(member)
}

func (c *Caches) setMemberLocked(member discord.Member) {
	rec := c.guildRecordLocked(member.GuildID)
	if rec.members == nil {
		rec.members = make(map[snowflake.ID]*memberData)
	}
	if _, ok := rec.members[member.User.ID]; ok {
		// the record being replaced already holds this user's reference
		c.refreshUserLocked(member.User)
	} else {
		c.touchUserLocked(member.User)
	}
	rec.members[member.User.ID] = newMemberData(member)
}

// DeleteMember removes a member record, returns the reconstructed member
// and releases its user reference, deleting the user if nothing else names
// it.
func (c *Caches) DeleteMember(guildID snowflake.ID, userID snowflake.ID) (discord.Member, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	rec, ok := c.guilds[guildID]
	if !ok {
		return discord.Member{}, false
	}
	data, ok := rec.members[userID]
	if !ok {
		return discord.Member{}, false
	}
	member, built := c.memberLocked(guildID, userID)
	delete(rec.members, userID)
	c.releaseUserLocked(data.userID)
	c.removeGuildRecordIfEmptyLocked(guildID)
	return member, built
}

// UpdateMember stores member and returns the before/after pair, both read
// through full reconstruction so they match what external callers see.
func (c *Caches) UpdateMember(member discord.Member) (old *discord.Member, updated *discord.Member) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if prev, ok := c.memberLocked(member.GuildID, member.User.ID); ok {
		old = &prev
	}
	c.setMemberLocked(member)
	if fresh, ok := c.memberLocked(member.GuildID, member.User.ID); ok {
		updated = &fresh
	}
	return old, updated
}

// MembersView reconstructs every member of one guild. Records whose user
// no longer resolves are skipped; a transiently missing shared entity is a
// race artifact of the event stream, not an error.
func (c *Caches) MembersView(guildID snowflake.ID) map[snowflake.ID]discord.Member {
	c.mu.RLock()
	defer c.mu.RUnlock()
	rec, ok := c.guilds[guildID]
	if !ok {
		return map[snowflake.ID]discord.Member{}
	}
	view := make(map[snowflake.ID]discord.Member, len(rec.members))
	for id, data := range rec.members {
		entry, ok := c.users[data.userID]
		if !ok {
			continue
		}
		view[id] = data.build(cloneUser(entry.user))
	}
	return view
}

// ClearMembers removes every member record of one guild, returning the
// reconstructable ones and releasing one user reference per record.
func (c *Caches) ClearMembers(guildID snowflake.ID) map[snowflake.ID]discord.Member {
	c.mu.Lock()
	defer c.mu.Unlock()
	rec, ok := c.guilds[guildID]
	if !ok {
		return map[snowflake.ID]discord.Member{}
	}
	cleared := make(map[snowflake.ID]discord.Member, len(rec.members))
	for id, data := range rec.members {
		if entry, ok := c.users[data.userID]; ok {
			cleared[id] = data.build(cloneUser(entry.user))
		}
		c.releaseUserLocked(data.userID)
	}
	rec.members = nil
	c.removeGuildRecordIfEmptyLocked(guildID)
	return cleared
}
