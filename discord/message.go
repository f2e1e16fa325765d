package discord

import (
	"time"

	"github.com/disgoorg/snowflake/v2"
)

// Message is a chat message. The author is shared state looked up from the
// user cache on read; GuildID is nil for direct messages.
type Message struct {
	ID              snowflake.ID
	ChannelID       snowflake.ID
	GuildID         *snowflake.ID
	Author          User
	Content         string
	Timestamp       time.Time
	EditedTimestamp *time.Time
	TTS             bool
	Pinned          bool
}
