package cache

import (
	"testing"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fuad-daoud/discord-state/discord"
)

// Decompose-then-build must reproduce the original entity exactly; any
// asymmetry between the two directions corrupts every read after a write.

func TestDMChannelDataSymmetry(t *testing.T) {
	name := "NAME"
	lastMessage := snowflake.ID(65345)
	recipient := testUser(2342344, "recipient")
	channel := discord.DMChannel{
		ID:            5642134,
		Type:          discord.ChannelTypeDM,
		Name:          &name,
		LastMessageID: &lastMessage,
		Recipient:     recipient,
	}

	data := newDMChannelData(channel)
	assert.Equal(t, snowflake.ID(2342344), data.recipientID)
	assert.Equal(t, channel, data.build(recipient))
}

func TestMemberDataSymmetry(t *testing.T) {
	nick := "NICK"
	premium := time.Date(2020, 7, 17, 13, 11, 18, 0, time.UTC)
	user := testUser(512312354, "member")
	member := discord.Member{
		GuildID:      6434435234,
		User:         user,
		Nick:         &nick,
		RoleIDs:      []snowflake.ID{65234, 654234123},
		JoinedAt:     time.Date(2020, 7, 9, 13, 11, 18, 0, time.UTC),
		PremiumSince: &premium,
		Deaf:         false,
		Mute:         true,
	}

	data := newMemberData(member)
	assert.Equal(t, snowflake.ID(512312354), data.userID)
	assert.Equal(t, member, data.build(user))
}

func TestMemberDataDetachesPointers(t *testing.T) {
	nick := "before"
	member := discord.Member{
		GuildID: 1,
		User:    testUser(2, "u"),
		Nick:    &nick,
		RoleIDs: []snowflake.ID{10},
	}

	data := newMemberData(member)
	nick = "after"
	member.RoleIDs[0] = 99

	rebuilt := data.build(member.User)
	require.NotNil(t, rebuilt.Nick)
	assert.Equal(t, "before", *rebuilt.Nick)
	assert.Equal(t, snowflake.ID(10), rebuilt.RoleIDs[0])
}

func TestVoiceStateDataSymmetry(t *testing.T) {
	channelID := snowflake.ID(4651234123)
	state := discord.VoiceState{
		GuildID:    54123123,
		ChannelID:  &channelID,
		UserID:     7512312,
		SessionID:  "oeroewrowerkosfdkl",
		GuildDeaf:  true,
		SelfDeaf:   true,
		SelfMute:   true,
		SelfStream: true,
	}

	assert.Equal(t, state, newVoiceStateData(state).build())
}

func TestEmojiDataSymmetry(t *testing.T) {
	creator := testUser(645234123, "artist")
	emoji := discord.Emoji{
		ID:             65234,
		GuildID:        1234213,
		Name:           "blobwave",
		RoleIDs:        []snowflake.ID{1, 2},
		Creator:        &creator,
		Animated:       true,
		Available:      true,
		RequiresColons: true,
	}

	data := newEmojiData(emoji)
	require.NotNil(t, data.creatorID)
	assert.Equal(t, creator.ID, *data.creatorID)
	assert.Equal(t, emoji, data.build(&creator))

	emoji.Creator = nil
	data = newEmojiData(emoji)
	assert.Nil(t, data.creatorID)
	assert.Equal(t, emoji, data.build(nil))
}

func TestMessageDataSymmetry(t *testing.T) {
	guildID := snowflake.ID(3030)
	edited := time.Date(2020, 7, 21, 20, 51, 7, 0, time.UTC)
	author := testUser(7512312, "author")
	message := discord.Message{
		ID:              1010,
		ChannelID:       2020,
		GuildID:         &guildID,
		Author:          author,
		Content:         "hello",
		Timestamp:       time.Date(2020, 7, 20, 14, 43, 7, 0, time.UTC),
		EditedTimestamp: &edited,
		TTS:             true,
		Pinned:          true,
	}

	data := newMessageData(message)
	assert.Equal(t, author.ID, data.authorID)
	assert.Equal(t, message, data.build(author))
}
