package cache

import (
	"testing"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fuad-daoud/discord-state/discord"
)

func testMessage(id snowflake.ID, channelID snowflake.ID, author discord.User) discord.Message {
	return discord.Message{
		ID:        id,
		ChannelID: channelID,
		Author:    author,
		Content:   "hello",
		Timestamp: time.Date(2020, 7, 20, 14, 43, 7, 0, time.UTC),
	}
}

func TestMessageRoundTrip(t *testing.T) {
	c := New()
	author := testUser(7512312, "author")
	message := testMessage(1010, 2020, author)

	c.SetMessage(message)
	got, ok := c.Message(1010)
	require.True(t, ok)
	assert.Equal(t, message, got)
}

func TestMessageCacheCapacity(t *testing.T) {
	c := New(WithMessageCacheSize(3))
	author := testUser(7512312, "author")
	for i := 1; i <= 4; i++ {
		c.SetMessage(testMessage(snowflake.ID(i), 2020, author))
	}

	_, ok := c.Message(1)
	assert.False(t, ok, "oldest message evicted at capacity+1")
	for i := 2; i <= 4; i++ {
		_, ok := c.Message(snowflake.ID(i))
		assert.True(t, ok)
	}
}

func TestMessageEvictionReleasesAuthor(t *testing.T) {
	c := New(WithMessageCacheSize(1))
	c.SetMessage(testMessage(1, 2020, testUser(11, "first")))
	c.SetMessage(testMessage(2, 2020, testUser(22, "second")))

	_, ok := c.User(11)
	assert.False(t, ok, "evicted message was the author's only reference")
	_, ok = c.User(22)
	assert.True(t, ok)
}

func TestSharedAuthorSurvivesSingleEviction(t *testing.T) {
	c := New(WithMessageCacheSize(2))
	author := testUser(11, "prolific")
	c.SetMessage(testMessage(1, 2020, author))
	c.SetMessage(testMessage(2, 2020, author))
	c.SetMessage(testMessage(3, 2020, author))

	_, ok := c.User(11)
	assert.True(t, ok, "two resident messages still reference the author")
}

func TestDeleteMessageReleasesAuthor(t *testing.T) {
	c := New()
	c.SetMessage(testMessage(1010, 2020, testUser(7512312, "author")))

	deleted, ok := c.DeleteMessage(1010)
	require.True(t, ok)
	assert.Equal(t, "hello", deleted.Content)

	_, ok = c.User(7512312)
	assert.False(t, ok)
	_, ok = c.DeleteMessage(1010)
	assert.False(t, ok)
}

func TestUpdateMessageReturnsBeforeAfterPair(t *testing.T) {
	c := New()
	message := testMessage(1010, 2020, testUser(7512312, "author"))

	old, updated := c.UpdateMessage(message)
	assert.Nil(t, old)
	require.NotNil(t, updated)

	edited := message
	edited.Content = "edited"
	old, updated = c.UpdateMessage(edited)
	require.NotNil(t, old)
	assert.Equal(t, "hello", old.Content)
	require.NotNil(t, updated)
	assert.Equal(t, "edited", updated.Content)

	_, ok := c.User(7512312)
	assert.True(t, ok)
	_, ok = c.DeleteMessage(1010)
	require.True(t, ok)
	_, ok = c.User(7512312)
	assert.False(t, ok, "replacement must not stack references")
}

func TestSetMessageAdvancesGuildChannelLastMessage(t *testing.T) {
	c := New()
	c.SetGuildChannel(discord.GuildChannel{ID: 2020, GuildID: 3030, Name: "general"})

	guildID := snowflake.ID(3030)
	message := testMessage(1010, 2020, testUser(7512312, "author"))
	message.GuildID = &guildID
	c.SetMessage(message)

	channel, ok := c.GuildChannel(2020)
	require.True(t, ok)
	require.NotNil(t, channel.LastMessageID)
	assert.Equal(t, snowflake.ID(1010), *channel.LastMessageID)
}

func TestSetMessageAdvancesDMChannelLastMessage(t *testing.T) {
	c := New()
	c.SetDMChannel(testDMChannel(2020, testUser(2342344, "recipient")))

	c.SetMessage(testMessage(1010, 2020, testUser(7512312, "author")))

	channel, ok := c.DMChannel(2342344)
	require.True(t, ok)
	require.NotNil(t, channel.LastMessageID)
	assert.Equal(t, snowflake.ID(1010), *channel.LastMessageID)
}

func TestLastMessageNeverMovesBackwards(t *testing.T) {
	c := New()
	c.SetGuildChannel(discord.GuildChannel{ID: 2020, GuildID: 3030, Name: "general"})

	guildID := snowflake.ID(3030)
	author := testUser(7512312, "author")
	first := testMessage(100, 2020, author)
	first.GuildID = &guildID
	second := testMessage(200, 2020, author)
	second.GuildID = &guildID
	c.SetMessage(first)
	c.SetMessage(second)

	edited := first
	edited.Content = "edited"
	c.SetMessage(edited)

	channel, ok := c.GuildChannel(2020)
	require.True(t, ok)
	require.NotNil(t, channel.LastMessageID)
	assert.Equal(t, snowflake.ID(200), *channel.LastMessageID,
		"an edit of an older message must not rewind the channel")
}

func TestLastMessageNeverMovesBackwardsInDMChannel(t *testing.T) {
	c := New()
	c.SetDMChannel(testDMChannel(2020, testUser(2342344, "recipient")))

	author := testUser(7512312, "author")
	c.SetMessage(testMessage(100, 2020, author))
	c.SetMessage(testMessage(200, 2020, author))
	c.SetMessage(testMessage(100, 2020, author))

	channel, ok := c.DMChannel(2342344)
	require.True(t, ok)
	require.NotNil(t, channel.LastMessageID)
	assert.Equal(t, snowflake.ID(200), *channel.LastMessageID)
}

func TestClearMessagesReleasesAuthors(t *testing.T) {
	c := New()
	c.SetMessage(testMessage(1, 2020, testUser(11, "one")))
	c.SetMessage(testMessage(2, 2020, testUser(22, "two")))

	cleared := c.ClearMessages()
	assert.Len(t, cleared, 2)
	assert.Empty(t, c.MessagesView())
	_, ok := c.User(11)
	assert.False(t, ok)
	_, ok = c.User(22)
	assert.False(t, ok)
}
