package discord

import (
	"github.com/disgoorg/snowflake/v2"
)

// User is a Discord user as seen by the gateway. Users are shared between
// guilds, DM channels and messages, so the cache stores a single copy per id
// and replaces it wholesale on update.
type User struct {
	ID            snowflake.ID
	Username      string
	Discriminator string
	Avatar        *string
	Bot           bool
	System        bool
}

// OwnUser is the user the current session is authenticated as.
type OwnUser struct {
	User
	MFAEnabled bool
	Locale     *string
	Verified   *bool
	Email      *string
}
