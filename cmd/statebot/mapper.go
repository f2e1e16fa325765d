package main

import (
	disgodiscord "github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/snowflake/v2"

	"github.com/fuad-daoud/discord-state/discord"
)

// The gateway client ships its own entity structs; the cache keeps its
// own slimmer ones. These helpers translate one into the other, field by
// field, dropping everything the cache does not retain.

func mapUser(u disgodiscord.User) discord.User {
	return discord.User{
		ID:            u.ID,
		Username:      u.Username,
		Discriminator: u.Discriminator,
		Avatar:        u.Avatar,
		Bot:           u.Bot,
		System:        u.System,
	}
}

func mapOwnUser(u disgodiscord.OAuth2User) discord.OwnUser {
	locale := string(u.Locale)
	verified := u.Verified
	email := u.Email
	return discord.OwnUser{
		User:       mapUser(u.User),
		MFAEnabled: u.MfaEnabled,
		Locale:     &locale,
		Verified:   &verified,
		Email:      &email,
	}
}

func mapGuild(g disgodiscord.Guild) discord.Guild {
	return discord.Guild{
		ID:           g.ID,
		Name:         g.Name,
		Icon:         g.Icon,
		OwnerID:      g.OwnerID,
		AFKChannelID: g.AfkChannelID,
		AFKTimeout:   int(g.AfkTimeout),
	}
}

func mapMember(guildID snowflake.ID, m disgodiscord.Member) discord.Member {
	return discord.Member{
		GuildID:      guildID,
		User:         mapUser(m.User),
		Nick:         m.Nick,
		RoleIDs:      m.RoleIDs,
		JoinedAt:     m.JoinedAt,
		PremiumSince: m.PremiumSince,
		Deaf:         m.Deaf,
		Mute:         m.Mute,
	}
}

func mapVoiceState(vs disgodiscord.VoiceState) discord.VoiceState {
	return discord.VoiceState{
		GuildID:    vs.GuildID,
		ChannelID:  vs.ChannelID,
		UserID:     vs.UserID,
		SessionID:  vs.SessionID,
		GuildDeaf:  vs.GuildDeaf,
		GuildMute:  vs.GuildMute,
		SelfDeaf:   vs.SelfDeaf,
		SelfMute:   vs.SelfMute,
		SelfStream: vs.SelfStream,
		SelfVideo:  vs.SelfVideo,
		Suppress:   vs.Suppress,
	}
}

func mapRole(guildID snowflake.ID, r disgodiscord.Role) discord.Role {
	return discord.Role{
		ID:          r.ID,
		GuildID:     guildID,
		Name:        r.Name,
		Color:       r.Color,
		Hoisted:     r.Hoist,
		Position:    r.Position,
		Permissions: uint64(r.Permissions),
		Managed:     r.Managed,
		Mentionable: r.Mentionable,
	}
}

func mapGuildChannel(guildID snowflake.ID, ch disgodiscord.GuildChannel) discord.GuildChannel {
	return discord.GuildChannel{
		ID:       ch.ID(),
		GuildID:  guildID,
		Type:     discord.ChannelType(ch.Type()),
		Name:     ch.Name(),
		Position: ch.Position(),
		ParentID: ch.ParentID(),
	}
}

func mapMessage(m disgodiscord.Message) discord.Message {
	return discord.Message{
		ID:              m.ID,
		ChannelID:       m.ChannelID,
		GuildID:         m.GuildID,
		Author:          mapUser(m.Author),
		Content:         m.Content,
		Timestamp:       m.ID.Time(),
		EditedTimestamp: m.EditedTimestamp,
		TTS:             m.TTS,
		Pinned:          m.Pinned,
	}
}
