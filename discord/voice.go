package discord

import (
	"github.com/disgoorg/snowflake/v2"
)

// VoiceState is one user's voice connection state within a guild. A nil
// ChannelID means the user left voice entirely.
type VoiceState struct {
	GuildID    snowflake.ID
	ChannelID  *snowflake.ID
	UserID     snowflake.ID
	SessionID  string
	GuildDeaf  bool
	GuildMute  bool
	SelfDeaf   bool
	SelfMute   bool
	SelfStream bool
	SelfVideo  bool
	Suppress   bool
}
