package discord

import (
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/shirokodev/presence-relay/data/structures"
	"github.com/shirokodev/presence-relay/internal/testutil"
)

func TestConvertUser(t *testing.T) {
	t.Parallel()

	u := convertUser(&discordgo.User{
		ID:         "999",
		Username:   "shiroko",
		GlobalName: "Shiroko",
		Avatar:     "abc123",
	})

	testutil.Assert(t, "999", u.ID, "id")
	testutil.Assert(t, "shiroko", *u.Username, "username")
	testutil.Assert(t, "Shiroko", *u.DisplayName, "display name from global name")
	testutil.IsNotNil(t, u.AvatarURL, "avatar url resolved")
	testutil.Assert(t, true, u.BannerURL == nil, "no banner, no url")
}

func TestConvertUserFallsBackToUsername(t *testing.T) {
	t.Parallel()

	u := convertUser(&discordgo.User{
		ID:       "999",
		Username: "shiroko",
	})

	testutil.Assert(t, "shiroko", *u.DisplayName, "display name falls back to username")
}

func TestConvertActivity(t *testing.T) {
	t.Parallel()

	created := time.UnixMilli(1700000000000)

	bare := convertActivity(&discordgo.Activity{
		Name:      "Celeste",
		Type:      discordgo.ActivityTypeGame,
		CreatedAt: created,
	})

	testutil.Assert(t, structures.ActivityTypeGame, bare.Type, "type")
	testutil.Assert(t, int64(1700000000000), bare.CreatedAt, "created at epoch")
	testutil.Assert(t, true, bare.Assets == nil, "zero assets stay absent")
	testutil.Assert(t, true, bare.Timestamps == nil, "zero timestamps stay absent")
	testutil.Assert(t, true, bare.Emoji == nil, "zero emoji stays absent")

	full := convertActivity(&discordgo.Activity{
		Name:          "Celeste",
		Type:          discordgo.ActivityTypeGame,
		ApplicationID: "4321",
		Details:       "Chapter 9",
		CreatedAt:     created,
		Assets: discordgo.Assets{
			LargeImageID: "cover",
			LargeText:    "Farewell",
		},
		Timestamps: discordgo.TimeStamps{
			StartTimestamp: 1700000000,
			EndTimestamp:   1700000360,
		},
	})

	testutil.Assert(t, "Chapter 9", *full.Details, "details")
	testutil.IsNotNil(t, full.Assets, "assets converted")
	testutil.Assert(t, "cover", *full.Assets.LargeImage, "asset id")
	testutil.Assert(t, true, full.Assets.SmallImage == nil, "unset asset stays absent")
	testutil.IsNotNil(t, full.Timestamps, "timestamps converted")
	testutil.Assert(t, int64(1700000360), *full.Timestamps.End, "end from end field")
}

func TestSnowflakeLess(t *testing.T) {
	t.Parallel()

	testutil.Assert(t, true, snowflakeLess("99", "100"), "shorter is smaller")
	testutil.Assert(t, true, snowflakeLess("100", "101"), "same length compares lexicographically")
	testutil.Assert(t, false, snowflakeLess("101", "100"), "not less")
}
