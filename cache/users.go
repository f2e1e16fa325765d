package cache

import (
	"github.com/disgoorg/snowflake/v2"

	"github.com/fuad-daoud/discord-state/discord"
)

// userEntry is the shared store slot for one user. refs counts every
// container that names the user: guild member records, DM channel
// recipients, message authors and emoji creators. The entry disappears
// when the count reaches zero, except for users inserted by SetUser alone,
// which sit at zero until referenced or deleted.
type userEntry struct {
	user discord.User
	refs int
}

// User looks up a cached user by id.
func (c *Caches) User(userID snowflake.ID) (discord.User, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.users[userID]
	if !ok {
		c.miss()
		return discord.User{}, false
	}
	c.hit()
	return cloneUser(entry.user), true
}

// SetUser inserts or wholesale-replaces the cached copy of user. The
// reference count is untouched; only container mutations move it.
func (c *Caches) SetUser(user discord.User) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setUserLocked(user)
}

func (c *Caches) setUserLocked(user discord.User) {
	if entry, ok := c.users[user.ID]; ok {
		entry.user = cloneUser(user)
		return
	}
	c.users[user.ID] = &userEntry{user: cloneUser(user)}
}

// DeleteUser removes a user unconditionally and returns the previous
// value. Callers use it when a reference count provably reached zero.
func (c *Caches) DeleteUser(userID snowflake.ID) (discord.User, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.users[userID]
	if !ok {
		return discord.User{}, false
	}
	delete(c.users, userID)
	return entry.user, true
}

// UpdateUser stores user and returns the previously cached value next to
// the fresh one for change detection. old is nil if the user was unknown.
func (c *Caches) UpdateUser(user discord.User) (old *discord.User, updated *discord.User) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if entry, ok := c.users[user.ID]; ok {
		prev := cloneUser(entry.user)
		old = &prev
	}
	c.setUserLocked(user)
	fresh := cloneUser(c.users[user.ID].user)
	return old, &fresh
}

// UsersView snapshots every cached user.
func (c *Caches) UsersView() map[snowflake.ID]discord.User {
	c.mu.RLock()
	defer c.mu.RUnlock()
	view := make(map[snowflake.ID]discord.User, len(c.users))
	for id, entry := range c.users {
		view[id] = cloneUser(entry.user)
	}
	return view
}

// ClearUsers removes and returns every user nothing references anymore.
// Users still named by a member record, DM channel, message or emoji stay
// put; dropping them would leave dangling ids behind.
func (c *Caches) ClearUsers() map[snowflake.ID]discord.User {
	c.mu.Lock()
	defer c.mu.Unlock()
	cleared := make(map[snowflake.ID]discord.User)
	for id, entry := range c.users {
		if entry.refs > 0 {
			continue
		}
		cleared[id] = entry.user
		delete(c.users, id)
	}
	return cleared
}

// touchUserLocked records one more container referencing user, inserting
// the freshest copy on first sight.
func (c *Caches) touchUserLocked(user discord.User) {
	if entry, ok := c.users[user.ID]; ok {
		entry.user = cloneUser(user)
		entry.refs++
		return
	}
	c.users[user.ID] = &userEntry{user: cloneUser(user), refs: 1}
}

// refreshUserLocked replaces the stored copy without moving the count,
// for containers replacing a record that already holds its reference. A
// missing entry is re-inserted with that one reference restored.
func (c *Caches) refreshUserLocked(user discord.User) {
	if entry, ok := c.users[user.ID]; ok {
		entry.user = cloneUser(user)
		return
	}
	c.users[user.ID] = &userEntry{user: cloneUser(user), refs: 1}
}

// releaseUserLocked drops one reference and deletes the user at zero.
// Decrement-then-check under the single write lock keeps concurrent
// removal paths (explicit deletes racing LRU evictions) exact.
func (c *Caches) releaseUserLocked(userID snowflake.ID) {
	entry, ok := c.users[userID]
	if !ok {
		c.logger.Warn("released a reference to an unknown user", "user_id", userID)
		return
	}
	entry.refs--
	if entry.refs <= 0 {
		delete(c.users, userID)
	}
}
