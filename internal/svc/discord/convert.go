package discord

import (
	"github.com/bwmarrin/discordgo"
	"github.com/shirokodev/presence-relay/data/structures"
)

func convertUser(u *discordgo.User) structures.User {
	out := structures.User{
		ID: u.ID,
	}

	if u.Username != "" {
		out.Username = ptr(u.Username)
	}

	display := u.GlobalName
	if display == "" {
		display = u.Username
	}

	if display != "" {
		out.DisplayName = ptr(display)
	}

	if avatar := u.AvatarURL(""); avatar != "" {
		out.AvatarURL = ptr(avatar)
	}

	if banner := u.BannerURL(""); banner != "" {
		out.BannerURL = ptr(banner)
	}

	return out
}

func convertPresence(p *discordgo.Presence) structures.Presence {
	out := structures.Presence{
		Status: structures.PresenceStatus(p.Status),
	}

	if p.User != nil {
		u := convertUser(p.User)
		out.User = &u
	}

	if len(p.Activities) > 0 {
		out.Activities = make([]structures.Activity, 0, len(p.Activities))

		for _, act := range p.Activities {
			if act == nil {
				continue
			}

			out.Activities = append(out.Activities, convertActivity(act))
		}
	}

	return out
}

func convertActivity(act *discordgo.Activity) structures.Activity {
	out := structures.Activity{
		Name:      act.Name,
		Type:      structures.ActivityType(act.Type),
		CreatedAt: act.CreatedAt.UnixMilli(),
	}

	if act.URL != "" {
		out.URL = ptr(act.URL)
	}

	if act.Details != "" {
		out.Details = ptr(act.Details)
	}

	if act.State != "" {
		out.State = ptr(act.State)
	}

	if act.ApplicationID != "" {
		out.ApplicationID = ptr(act.ApplicationID)
	}

	if act.Emoji.Name != "" || act.Emoji.ID != "" {
		emoji := structures.Emoji{}

		if act.Emoji.Name != "" {
			emoji.Name = ptr(act.Emoji.Name)
		}

		if act.Emoji.ID != "" {
			emoji.ID = ptr(act.Emoji.ID)
			emoji.Animated = ptr(act.Emoji.Animated)
		}

		out.Emoji = &emoji
	}

	if act.Assets != (discordgo.Assets{}) {
		assets := structures.ActivityAssets{}

		if act.Assets.LargeImageID != "" {
			assets.LargeImage = ptr(act.Assets.LargeImageID)
		}

		if act.Assets.LargeText != "" {
			assets.LargeText = ptr(act.Assets.LargeText)
		}

		if act.Assets.SmallImageID != "" {
			assets.SmallImage = ptr(act.Assets.SmallImageID)
		}

		if act.Assets.SmallText != "" {
			assets.SmallText = ptr(act.Assets.SmallText)
		}

		out.Assets = &assets
	}

	if act.Timestamps != (discordgo.TimeStamps{}) {
		ts := structures.ActivityTimestamps{}

		if act.Timestamps.StartTimestamp != 0 {
			ts.Start = ptr(act.Timestamps.StartTimestamp)
		}

		if act.Timestamps.EndTimestamp != 0 {
			ts.End = ptr(act.Timestamps.EndTimestamp)
		}

		out.Timestamps = &ts
	}

	return out
}

func ptr[T any](v T) *T {
	return &v
}
