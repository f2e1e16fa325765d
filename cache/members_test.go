package cache

import (
	"testing"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fuad-daoud/discord-state/discord"
)

func TestMemberRoundTripPreservesEveryField(t *testing.T) {
	c := New()
	nick := "A NICK LOL"
	premium := time.Date(2020, 7, 1, 2, 0, 12, 0, time.UTC)
	member := discord.Member{
		GuildID:      67345234,
		User:         testUser(645234123, "member"),
		Nick:         &nick,
		RoleIDs:      []snowflake.ID{65345234, 123123},
		JoinedAt:     time.Date(2020, 7, 15, 23, 30, 59, 0, time.UTC),
		PremiumSince: &premium,
		Deaf:         true,
		Mute:         false,
	}

	c.SetMember(member)
	got, ok := c.Member(67345234, 645234123)
	require.True(t, ok)
	assert.Equal(t, member, got)
}

func TestSetMemberBeforeGuildIsKnown(t *testing.T) {
	c := New()
	c.SetMember(testMember(67345234, testUser(645234123, "early")))

	// the guild record is a placeholder: member readable, guild absent
	member, ok := c.Member(67345234, 645234123)
	require.True(t, ok)
	assert.Equal(t, "early", member.User.Username)

	guild, err := c.Guild(67345234)
	require.NoError(t, err)
	assert.Nil(t, guild)
}

func TestDeleteMemberReleasesSoleUserReference(t *testing.T) {
	c := New()
	c.SetMember(testMember(42123, testUser(67876, "solo")))

	deleted, ok := c.DeleteMember(42123, 67876)
	require.True(t, ok)
	assert.Equal(t, "solo", deleted.User.Username)

	_, ok = c.User(67876)
	assert.False(t, ok, "the last reference is gone, so is the user")
}

func TestDeleteMemberKeepsUserReferencedElsewhere(t *testing.T) {
	c := New()
	shared := testUser(67876, "shared")
	c.SetMember(testMember(42123, shared))
	c.SetMember(testMember(99999, shared))

	_, ok := c.DeleteMember(42123, 67876)
	require.True(t, ok)

	_, ok = c.User(67876)
	assert.True(t, ok, "still referenced by the other guild's record")

	member, ok := c.Member(99999, 67876)
	require.True(t, ok)
	assert.Equal(t, "shared", member.User.Username)
}

func TestDeleteMemberForUnknownGuildOrMember(t *testing.T) {
	c := New()
	_, ok := c.DeleteMember(42123, 67876)
	assert.False(t, ok)

	c.SetInitialUnavailableGuilds([]snowflake.ID{42123})
	_, ok = c.DeleteMember(42123, 67876)
	assert.False(t, ok)
}

func TestUpdateMemberReturnsBeforeAfterPair(t *testing.T) {
	c := New()
	member := testMember(123123, testUser(65234123, "member"))

	old, updated := c.UpdateMember(member)
	assert.Nil(t, old)
	require.NotNil(t, updated)

	nick := "newer"
	renamed := member
	renamed.Nick = &nick
	old, updated = c.UpdateMember(renamed)
	require.NotNil(t, old)
	assert.Nil(t, old.Nick)
	require.NotNil(t, updated)
	require.NotNil(t, updated.Nick)
	assert.Equal(t, "newer", *updated.Nick)
}

func TestMembersViewSkipsUnresolvableUsers(t *testing.T) {
	c := New()
	c.SetMember(testMember(42334, testUser(3214321, "one")))
	c.SetMember(testMember(42334, testUser(53224, "two")))

	// simulate the race window: the shared user vanished under the record
	c.DeleteUser(53224)

	view := c.MembersView(42334)
	assert.Len(t, view, 1)
	assert.Contains(t, view, snowflake.ID(3214321))
}

func TestMembersViewForUnknownGuild(t *testing.T) {
	c := New()
	assert.Empty(t, c.MembersView(42334))
}

func TestClearMembersReleasesAllReferences(t *testing.T) {
	c := New()
	c.SetMember(testMember(54123123, testUser(7512312, "one")))
	c.SetMember(testMember(54123123, testUser(43123123, "two")))

	cleared := c.ClearMembers(54123123)
	assert.Len(t, cleared, 2)

	_, ok := c.User(7512312)
	assert.False(t, ok)
	_, ok = c.User(43123123)
	assert.False(t, ok)
	assert.Equal(t, 0, c.Stats().Guilds, "emptied record collapses")
}

func TestReturnedMemberIsDetachedFromTheCache(t *testing.T) {
	c := New()
	c.SetMember(testMember(67345234, testUser(645234123, "member")))

	got, ok := c.Member(67345234, 645234123)
	require.True(t, ok)
	got.RoleIDs[0] = 1

	fresh, ok := c.Member(67345234, 645234123)
	require.True(t, ok)
	assert.Equal(t, snowflake.ID(65234), fresh.RoleIDs[0], "views are point-in-time copies")
}
