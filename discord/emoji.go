package discord

import (
	"github.com/disgoorg/snowflake/v2"
)

// Emoji is a custom emoji owned by a guild. Creator is optional; when
// present it is shared state looked up from the user cache on read.
type Emoji struct {
	ID             snowflake.ID
	GuildID        snowflake.ID
	Name           string
	RoleIDs        []snowflake.ID
	Creator        *User
	Animated       bool
	Managed        bool
	Available      bool
	RequiresColons bool
}
