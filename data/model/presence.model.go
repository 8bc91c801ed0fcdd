package model

import (
	"github.com/shirokodev/presence-relay/data/structures"
)

// PresenceModel is the wire snapshot delivered to the downstream
// consumer. Optional fields carry no omitempty so that an absent value
// serializes as an explicit null rather than vanishing from the
// payload.
type PresenceModel struct {
	User         PresenceUserModel   `json:"user"`
	Status       PresenceStatusModel `json:"status"`
	CustomStatus *CustomStatusModel  `json:"customStatus"`
	Activity     *ActivityModel      `json:"activity"`
}

type PresenceUserModel struct {
	Username    *string `json:"username"`
	Avatar      *string `json:"avatar"`
	DisplayName *string `json:"displayName"`
	Banner      *string `json:"banner"`
}

type PresenceStatusModel struct {
	Type    structures.PresenceStatus                           `json:"type"`
	Devices map[structures.DeviceKind]structures.PresenceStatus `json:"devices"`
}

type CustomStatusModel struct {
	State *string             `json:"state"`
	Emoji *ActivityEmojiModel `json:"emoji"`
}

type ActivityEmojiModel struct {
	Name *string `json:"name"`
	URL  *string `json:"url"`
}

type ActivityModel struct {
	Name             string                   `json:"name"`
	URL              *string                  `json:"url"`
	Details          *string                  `json:"details"`
	State            *string                  `json:"state"`
	Assets           *ActivityAssetsModel     `json:"assets"`
	Timestamps       *ActivityTimestampsModel `json:"timestamps"`
	CreatedTimestamp int64                    `json:"createdTimestamp"`
}

type ActivityAssetsModel struct {
	SmallText  *string `json:"smallText"`
	SmallImage *string `json:"smallImage"`
	LargeText  *string `json:"largeText"`
	LargeImage *string `json:"largeImage"`
}

type ActivityTimestampsModel struct {
	Start *int64 `json:"start"`
	End   *int64 `json:"end"`
}

// Presence flattens a gateway presence into the wire snapshot. The
// projection is total: any missing upstream substructure maps to an
// absent output field.
//
// The activity list is scanned once. The first custom-status entry
// becomes CustomStatus and the first entry of any other kind becomes
// Activity; further entries of either category are dropped.
func (x *modelizer) Presence(v structures.Presence) PresenceModel {
	var (
		custom   *structures.Activity
		activity *structures.Activity
	)

	for i := range v.Activities {
		act := &v.Activities[i]

		switch {
		case act.Type == structures.ActivityTypeCustom && custom == nil:
			custom = act
		case act.Type != structures.ActivityTypeCustom && activity == nil:
			activity = act
		}
	}

	m := PresenceModel{
		Status: PresenceStatusModel{
			Type:    v.Status,
			Devices: v.ClientStatus,
		},
	}

	if v.User != nil {
		m.User = PresenceUserModel{
			Username:    v.User.Username,
			Avatar:      v.User.AvatarURL,
			DisplayName: v.User.DisplayName,
			Banner:      v.User.BannerURL,
		}
	}

	if custom != nil {
		m.CustomStatus = &CustomStatusModel{
			State: custom.State,
		}

		if custom.Emoji != nil {
			m.CustomStatus.Emoji = &ActivityEmojiModel{
				Name: custom.Emoji.Name,
				URL:  custom.Emoji.ImageURL(),
			}
		}
	}

	if activity != nil {
		m.Activity = x.activity(*activity)
	}

	return m
}

func (x *modelizer) activity(act structures.Activity) *ActivityModel {
	am := ActivityModel{
		Name:             act.Name,
		URL:              act.URL,
		Details:          act.Details,
		State:            act.State,
		CreatedTimestamp: act.CreatedAt,
	}

	if act.Assets != nil {
		am.Assets = &ActivityAssetsModel{
			SmallText:  act.Assets.SmallText,
			SmallImage: act.ImageURL(act.Assets.SmallImage),
			LargeText:  act.Assets.LargeText,
			LargeImage: act.ImageURL(act.Assets.LargeImage),
		}
	}

	if act.Timestamps != nil {
		am.Timestamps = &ActivityTimestampsModel{
			Start: act.Timestamps.Start,
			End:   act.Timestamps.End,
		}
	}

	return &am
}
