package discord

import (
	"github.com/disgoorg/snowflake/v2"
)

// ChannelType uses the wire values of the channel "type" field.
type ChannelType int

const (
	ChannelTypeGuildText ChannelType = iota
	ChannelTypeDM
	ChannelTypeGuildVoice
	ChannelTypeGroupDM
	ChannelTypeGuildCategory
	ChannelTypeGuildNews
	ChannelTypeGuildStore
)

// GuildChannel is any channel owned by a guild.
type GuildChannel struct {
	ID            snowflake.ID
	GuildID       snowflake.ID
	Type          ChannelType
	Name          string
	Position      int
	ParentID      *snowflake.ID
	LastMessageID *snowflake.ID
	NSFW          bool
}

// DMChannel is a direct message channel with a single recipient. The
// recipient is shared state looked up from the user cache on read.
type DMChannel struct {
	ID            snowflake.ID
	Type          ChannelType
	Name          *string
	LastMessageID *snowflake.ID
	Recipient     User
}
