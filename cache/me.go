package cache

import (
	"github.com/fuad-daoud/discord-state/discord"
)

// Me returns the user this session is authenticated as.
func (c *Caches) Me() (discord.OwnUser, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.me == nil {
		c.miss()
		return discord.OwnUser{}, false
	}
	c.hit()
	return cloneOwnUser(*c.me), true
}

// SetMe stores the session's own user. There is exactly one, so no
// reference counting applies.
func (c *Caches) SetMe(user discord.OwnUser) {
	c.mu.Lock()
	defer c.mu.Unlock()
	clone := cloneOwnUser(user)
	c.me = &clone
}

// DeleteMe clears the own-user slot and returns the previous value.
func (c *Caches) DeleteMe() (discord.OwnUser, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.me == nil {
		return discord.OwnUser{}, false
	}
	previous := *c.me
	c.me = nil
	return previous, true
}

// UpdateMe stores user and returns the before/after pair; old is nil if
// no own user was cached.
func (c *Caches) UpdateMe(user discord.OwnUser) (old *discord.OwnUser, updated *discord.OwnUser) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.me != nil {
		prev := cloneOwnUser(*c.me)
		old = &prev
	}
	clone := cloneOwnUser(user)
	c.me = &clone
	fresh := cloneOwnUser(*c.me)
	return old, &fresh
}
