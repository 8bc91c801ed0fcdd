package instance

import (
	"context"

	"github.com/shirokodev/presence-relay/data/structures"
)

// Discord is the upstream gateway client surface the relay consumes.
type Discord interface {
	// Ready is closed once the gateway session has signalled READY.
	Ready() <-chan struct{}

	// Connected reports whether the gateway websocket is currently open.
	Connected() bool

	// GuildWithMember scans the loaded guilds for one whose member list
	// contains the given user. When the user is a member of several
	// guilds the lowest guild id wins.
	GuildWithMember(userID string) (string, bool)

	// Presence returns the last known presence of the given user, or
	// false when no presence data has been seen at all.
	Presence(userID string) (structures.Presence, bool)

	// FetchUser re-fetches the user's profile over REST, bypassing any
	// local cache.
	FetchUser(ctx context.Context, userID string) (structures.User, error)

	// OnPresenceUpdate registers a callback invoked for every gateway
	// presence update, regardless of user.
	OnPresenceUpdate(fn func(structures.Presence))
}
