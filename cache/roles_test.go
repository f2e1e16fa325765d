package cache

import (
	"testing"

	"github.com/disgoorg/snowflake/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fuad-daoud/discord-state/discord"
)

func testRole(id snowflake.ID, guildID snowflake.ID, name string) discord.Role {
	return discord.Role{ID: id, GuildID: guildID, Name: name, Position: 1}
}

func TestRoleLookupByIDAlone(t *testing.T) {
	c := New()
	role := testRole(65234, 1234213, "admin")

	_, ok := c.Role(65234)
	assert.False(t, ok)

	c.SetRole(role)
	got, ok := c.Role(65234)
	require.True(t, ok)
	assert.Equal(t, role, got)
}

func TestDeleteRoleCleansIndexAndRecord(t *testing.T) {
	c := New()
	c.SetRole(testRole(65234, 1234213, "admin"))

	deleted, ok := c.DeleteRole(65234)
	require.True(t, ok)
	assert.Equal(t, "admin", deleted.Name)
	assert.Equal(t, 0, c.Stats().Guilds)

	_, ok = c.Role(65234)
	assert.False(t, ok)
	_, ok = c.DeleteRole(65234)
	assert.False(t, ok)
}

func TestUpdateRoleReturnsBeforeAfterPair(t *testing.T) {
	c := New()

	old, updated := c.UpdateRole(testRole(65234, 1234213, "first"))
	assert.Nil(t, old)
	require.NotNil(t, updated)

	old, updated = c.UpdateRole(testRole(65234, 1234213, "second"))
	require.NotNil(t, old)
	assert.Equal(t, "first", old.Name)
	assert.Equal(t, "second", updated.Name)
}

func TestRolesViewAndClear(t *testing.T) {
	c := New()
	c.SetRole(testRole(65234, 1234213, "one"))
	c.SetRole(testRole(654234123, 1234213, "two"))
	c.SetRole(testRole(99, 5555, "elsewhere"))

	view := c.RolesView(1234213)
	assert.Len(t, view, 2)

	cleared := c.ClearRoles(1234213)
	assert.Len(t, cleared, 2)
	assert.Empty(t, c.RolesView(1234213))
	_, ok := c.Role(65234)
	assert.False(t, ok, "cleared roles leave the global index too")
	_, ok = c.Role(99)
	assert.True(t, ok)
}
