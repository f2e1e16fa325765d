package discord

import (
	"time"

	"github.com/disgoorg/snowflake/v2"
)

// Guild is a guild the session can see. The gateway may announce a guild as
// unavailable (outage, or not yet streamed in) before any of this data is
// known; availability is tracked by the cache, not on the entity.
type Guild struct {
	ID           snowflake.ID
	Name         string
	Icon         *string
	OwnerID      snowflake.ID
	AFKChannelID *snowflake.ID
	AFKTimeout   int
	Large        bool
	MemberCount  int
	JoinedAt     *time.Time
}

// Member is a user's membership of one guild. The user itself is shared
// state; everything else here is owned by the guild.
type Member struct {
	GuildID      snowflake.ID
	User         User
	Nick         *string
	RoleIDs      []snowflake.ID
	JoinedAt     time.Time
	PremiumSince *time.Time
	Deaf         bool
	Mute         bool
}

// Role is a guild role. Roles are owned by their guild.
type Role struct {
	ID          snowflake.ID
	GuildID     snowflake.ID
	Name        string
	Color       int
	Hoisted     bool
	Position    int
	Permissions uint64
	Managed     bool
	Mentionable bool
}
