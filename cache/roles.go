package cache

import (
	"github.com/disgoorg/snowflake/v2"

	"github.com/fuad-daoud/discord-state/discord"
)

// Role looks up a role by its id alone; the owning guild is resolved
// through the global role index.
func (c *Caches) Role(roleID snowflake.ID) (discord.Role, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	role, ok := c.roleLocked(roleID)
	if !ok {
		c.miss()
		return discord.Role{}, false
	}
	c.hit()
	return role, true
}

func (c *Caches) roleLocked(roleID snowflake.ID) (discord.Role, bool) {
	guildID, ok := c.roleIndex[roleID]
	if !ok {
		return discord.Role{}, false
	}
	rec, ok := c.guilds[guildID]
	if !ok {
		return discord.Role{}, false
	}
	role, ok := rec.roles[roleID]
	if !ok {
		return discord.Role{}, false
	}
	return *role, true
}

// SetRole stores a role under its guild. Roles embed no shared entities;
// the stored value is simply replaced wholesale.
func (c *Caches) SetRole(role discord.Role) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setRoleLocked(role)
}

func (c *Caches) setRoleLocked(role discord.Role) {
	rec := c.guildRecordLocked(role.GuildID)
	if rec.roles == nil {
		rec.roles = make(map[snowflake.ID]*discord.Role)
	}
	clone := role
	rec.roles[role.ID] = &clone
	c.roleIndex[role.ID] = role.GuildID
}

// DeleteRole removes and returns a role by id.
func (c *Caches) DeleteRole(roleID snowflake.ID) (discord.Role, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	guildID, ok := c.roleIndex[roleID]
	if !ok {
		return discord.Role{}, false
	}
	delete(c.roleIndex, roleID)
	rec, ok := c.guilds[guildID]
	if !ok {
		return discord.Role{}, false
	}
	role, ok := rec.roles[roleID]
	if !ok {
		return discord.Role{}, false
	}
	delete(rec.roles, roleID)
	c.removeGuildRecordIfEmptyLocked(guildID)
	return *role, true
}

// UpdateRole stores role and returns the before/after pair.
func (c *Caches) UpdateRole(role discord.Role) (old *discord.Role, updated *discord.Role) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if prev, ok := c.roleLocked(role.ID); ok {
		old = &prev
	}
	c.setRoleLocked(role)
	if fresh, ok := c.roleLocked(role.ID); ok {
		updated = &fresh
	}
	return old, updated
}

// RolesView snapshots every role of one guild.
func (c *Caches) RolesView(guildID snowflake.ID) map[snowflake.ID]discord.Role {
	c.mu.RLock()
	defer c.mu.RUnlock()
	rec, ok := c.guilds[guildID]
	if !ok {
		return map[snowflake.ID]discord.Role{}
	}
	view := make(map[snowflake.ID]discord.Role, len(rec.roles))
	for id, role := range rec.roles {
		view[id] = *role
	}
	return view
}

// ClearRoles removes and returns every role of one guild.
func (c *Caches) ClearRoles(guildID snowflake.ID) map[snowflake.ID]discord.Role {
	c.mu.Lock()
	defer c.mu.Unlock()
	rec, ok := c.guilds[guildID]
	if !ok {
		return map[snowflake.ID]discord.Role{}
	}
	cleared := make(map[snowflake.ID]discord.Role, len(rec.roles))
	for id, role := range rec.roles {
		cleared[id] = *role
		delete(c.roleIndex, id)
	}
	rec.roles = nil
	c.removeGuildRecordIfEmptyLocked(guildID)
	return cleared
}
