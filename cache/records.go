package cache

import (
	"time"

	"github.com/disgoorg/snowflake/v2"

	"github.com/fuad-daoud/discord-state/discord"
)

// Compact persisted forms of the entities whose full form embeds shared
// users. Each newXData constructor must be the exact left inverse of the
// matching build method for every field the record retains: build resolves
// stored ids back to shared entities and copies everything else through
// untouched. Any drift between the two silently corrupts round-trips, so
// changes here come in pairs.

type dmChannelData struct {
	id            snowflake.ID
	name          *string
	lastMessageID *snowflake.ID
	recipientID   snowflake.ID
}

func newDMChannelData(channel discord.DMChannel) *dmChannelData {
	return &dmChannelData{
		id:            channel.ID,
		name:          clonePtr(channel.Name),
		lastMessageID: clonePtr(channel.LastMessageID),
		recipientID:   channel.Recipient.ID,
	}
}

func (d *dmChannelData) build(recipient discord.User) discord.DMChannel {
	return discord.DMChannel{
		ID:            d.id,
		Type:          discord.ChannelTypeDM,
		Name:          clonePtr(d.name),
		LastMessageID: clonePtr(d.lastMessageID),
		Recipient:     recipient,
	}
}

type memberData struct {
	userID       snowflake.ID
	guildID      snowflake.ID
	nick         *string
	roleIDs      []snowflake.ID
	joinedAt     time.Time
	premiumSince *time.Time
	deaf         bool
	mute         bool
}

func newMemberData(member discord.Member) *memberData {
	return &memberData{
		userID:       member.User.ID,
		guildID:      member.GuildID,
		nick:         clonePtr(member.Nick),
		roleIDs:      cloneIDs(member.RoleIDs),
		joinedAt:     member.JoinedAt,
		premiumSince: clonePtr(member.PremiumSince),
		deaf:         member.Deaf,
		mute:         member.Mute,
	}
}

func (d *memberData) build(user discord.User) discord.Member {
	return discord.Member{
		GuildID:      d.guildID,
		User:         user,
		Nick:         clonePtr(d.nick),
		RoleIDs:      cloneIDs(d.roleIDs),
		JoinedAt:     d.joinedAt,
		PremiumSince: clonePtr(d.premiumSince),
		Deaf:         d.deaf,
		Mute:         d.mute,
	}
}

type voiceStateData struct {
	guildID    snowflake.ID
	channelID  *snowflake.ID
	userID     snowflake.ID
	sessionID  string
	guildDeaf  bool
	guildMute  bool
	selfDeaf   bool
	selfMute   bool
	selfStream bool
	selfVideo  bool
	suppress   bool
}

func newVoiceStateData(state discord.VoiceState) *voiceStateData {
	return &voiceStateData{
		guildID:    state.GuildID,
		channelID:  clonePtr(state.ChannelID),
		userID:     state.UserID,
		sessionID:  state.SessionID,
		guildDeaf:  state.GuildDeaf,
		guildMute:  state.GuildMute,
		selfDeaf:   state.SelfDeaf,
		selfMute:   state.SelfMute,
		selfStream: state.SelfStream,
		selfVideo:  state.SelfVideo,
		suppress:   state.Suppress,
	}
}

// Voice states reference no shared entities, so build takes no lookups.
func (d *voiceStateData) build() discord.VoiceState {
	return discord.VoiceState{
		GuildID:    d.guildID,
		ChannelID:  clonePtr(d.channelID),
		UserID:     d.userID,
		SessionID:  d.sessionID,
		GuildDeaf:  d.guildDeaf,
		GuildMute:  d.guildMute,
		SelfDeaf:   d.selfDeaf,
		SelfMute:   d.selfMute,
		SelfStream: d.selfStream,
		SelfVideo:  d.selfVideo,
		Suppress:   d.suppress,
	}
}

type emojiData struct {
	id             snowflake.ID
	guildID        snowflake.ID
	name           string
	roleIDs        []snowflake.ID
	creatorID      *snowflake.ID
	animated       bool
	managed        bool
	available      bool
	requiresColons bool
}

func newEmojiData(emoji discord.Emoji) *emojiData {
	data := &emojiData{
		id:             emoji.ID,
		guildID:        emoji.GuildID,
		name:           emoji.Name,
		roleIDs:        cloneIDs(emoji.RoleIDs),
		animated:       emoji.Animated,
		managed:        emoji.Managed,
		available:      emoji.Available,
		requiresColons: emoji.RequiresColons,
	}
	if emoji.Creator != nil {
		id := emoji.Creator.ID
		data.creatorID = &id
	}
	return data
}

func (d *emojiData) build(creator *discord.User) discord.Emoji {
	return discord.Emoji{
		ID:             d.id,
		GuildID:        d.guildID,
		Name:           d.name,
		RoleIDs:        cloneIDs(d.roleIDs),
		Creator:        creator,
		Animated:       d.animated,
		Managed:        d.managed,
		Available:      d.available,
		RequiresColons: d.requiresColons,
	}
}

type messageData struct {
	id              snowflake.ID
	channelID       snowflake.ID
	guildID         *snowflake.ID
	authorID        snowflake.ID
	content         string
	timestamp       time.Time
	editedTimestamp *time.Time
	tts             bool
	pinned          bool
}

func newMessageData(message discord.Message) *messageData {
	return &messageData{
		id:              message.ID,
		channelID:       message.ChannelID,
		guildID:         clonePtr(message.GuildID),
		authorID:        message.Author.ID,
		content:         message.Content,
		timestamp:       message.Timestamp,
		editedTimestamp: clonePtr(message.EditedTimestamp),
		tts:             message.TTS,
		pinned:          message.Pinned,
	}
}

func (d *messageData) build(author discord.User) discord.Message {
	return discord.Message{
		ID:              d.id,
		ChannelID:       d.channelID,
		GuildID:         clonePtr(d.guildID),
		Author:          author,
		Content:         d.content,
		Timestamp:       d.timestamp,
		EditedTimestamp: clonePtr(d.editedTimestamp),
		TTS:             d.tts,
		Pinned:          d.pinned,
	}
}

// Clone helpers keep stored state and returned entities from aliasing each
// other through pointer or slice fields.

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneIDs(ids []snowflake.ID) []snowflake.ID {
	if ids == nil {
		return nil
	}
	out := make([]snowflake.ID, len(ids))
	copy(out, ids)
	return out
}

func cloneUser(user discord.User) discord.User {
	user.Avatar = clonePtr(user.Avatar)
	return user
}

func cloneOwnUser(user discord.OwnUser) discord.OwnUser {
	user.User = cloneUser(user.User)
	user.Locale = clonePtr(user.Locale)
	user.Verified = clonePtr(user.Verified)
	user.Email = clonePtr(user.Email)
	return user
}

func cloneGuild(guild discord.Guild) discord.Guild {
	guild.Icon = clonePtr(guild.Icon)
	guild.AFKChannelID = clonePtr(guild.AFKChannelID)
	guild.JoinedAt = clonePtr(guild.JoinedAt)
	return guild
}

func cloneGuildChannel(channel discord.GuildChannel) discord.GuildChannel {
	channel.ParentID = clonePtr(channel.ParentID)
	channel.LastMessageID = clonePtr(channel.LastMessageID)
	return channel
}

func cloneEmoji(emoji discord.Emoji) discord.Emoji {
	emoji.RoleIDs = cloneIDs(emoji.RoleIDs)
	if emoji.Creator != nil {
		creator := cloneUser(*emoji.Creator)
		emoji.Creator = &creator
	}
	return emoji
}
