package structures

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// Presence is the tracked user's live state as delivered by the
// gateway. Every field except the user id is optional on the wire;
// absence is modeled with nil so projection can pattern-match on it.
type Presence struct {
	User         *User                         `json:"user,omitempty"`
	GuildID      string                        `json:"guild_id,omitempty"`
	Status       PresenceStatus                `json:"status,omitempty"`
	Activities   []Activity                    `json:"activities,omitempty"`
	ClientStatus map[DeviceKind]PresenceStatus `json:"client_status,omitempty"`
}

type PresenceStatus string

const (
	PresenceStatusOnline       PresenceStatus = "online"
	PresenceStatusIdle         PresenceStatus = "idle"
	PresenceStatusDoNotDisturb PresenceStatus = "dnd"
	PresenceStatusInvisible    PresenceStatus = "invisible"
	PresenceStatusOffline      PresenceStatus = "offline"
)

type DeviceKind string

const (
	DeviceKindDesktop DeviceKind = "desktop"
	DeviceKindMobile  DeviceKind = "mobile"
	DeviceKindWeb     DeviceKind = "web"
)

type User struct {
	ID          string  `json:"id"`
	Username    *string `json:"username,omitempty"`
	DisplayName *string `json:"display_name,omitempty"`
	AvatarURL   *string `json:"avatar_url,omitempty"`
	BannerURL   *string `json:"banner_url,omitempty"`
}

type ActivityType int

const (
	ActivityTypeGame      ActivityType = 0
	ActivityTypeStreaming ActivityType = 1
	ActivityTypeListening ActivityType = 2
	ActivityTypeWatching  ActivityType = 3
	ActivityTypeCustom    ActivityType = 4
	ActivityTypeCompeting ActivityType = 5
)

type Activity struct {
	Name          string              `json:"name"`
	Type          ActivityType        `json:"type"`
	URL           *string             `json:"url,omitempty"`
	Details       *string             `json:"details,omitempty"`
	State         *string             `json:"state,omitempty"`
	ApplicationID *string             `json:"application_id,omitempty"`
	Emoji         *Emoji              `json:"emoji,omitempty"`
	Assets        *ActivityAssets     `json:"assets,omitempty"`
	Timestamps    *ActivityTimestamps `json:"timestamps,omitempty"`
	CreatedAt     int64               `json:"created_at"`
}

type ActivityAssets struct {
	LargeImage *string `json:"large_image,omitempty"`
	LargeText  *string `json:"large_text,omitempty"`
	SmallImage *string `json:"small_image,omitempty"`
	SmallText  *string `json:"small_text,omitempty"`
}

type ActivityTimestamps struct {
	Start *int64 `json:"start,omitempty"`
	End   *int64 `json:"end,omitempty"`
}

type Emoji struct {
	Name     *string `json:"name,omitempty"`
	ID       *string `json:"id,omitempty"`
	Animated *bool   `json:"animated,omitempty"`
}

const mediaProxyURL = "https://media.discordapp.net/"

// ImageURL resolves the CDN location of a custom emoji. Unicode emoji
// have no id and resolve to nothing.
func (e Emoji) ImageURL() *string {
	if e.ID == nil || *e.ID == "" {
		return nil
	}

	ext := "png"
	if e.Animated != nil && *e.Animated {
		ext = "gif"
	}

	u := fmt.Sprintf("%semojis/%s.%s", discordgo.EndpointCDN, *e.ID, ext)

	return &u
}

// ImageURL resolves a raw asset image id against the activity's
// application. Media-proxy ids (spotify album art and the like) carry
// an "mp:" prefix and resolve against the proxy instead. Ids in any
// other foreign scheme resolve to nothing.
func (a Activity) ImageURL(assetID *string) *string {
	if assetID == nil || *assetID == "" {
		return nil
	}

	id := *assetID

	if rest, ok := cutPrefix(id, "mp:"); ok {
		u := mediaProxyURL + rest
		return &u
	}

	if strings.Contains(id, ":") {
		return nil
	}

	if a.ApplicationID == nil || *a.ApplicationID == "" {
		return nil
	}

	u := fmt.Sprintf("%sapp-assets/%s/%s.png", discordgo.EndpointCDN, *a.ApplicationID, id)

	return &u
}

func cutPrefix(s, prefix string) (string, bool) {
	if !strings.HasPrefix(s, prefix) {
		return s, false
	}

	return s[len(prefix):], true
}
