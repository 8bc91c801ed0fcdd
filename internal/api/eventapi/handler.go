package eventapi

import (
	"github.com/shirokodev/presence-relay/data/events"
	"github.com/shirokodev/presence-relay/internal/global"
	"github.com/shirokodev/presence-relay/internal/instance"
	"go.uber.org/zap"
)

// handleGetPresence serves a pull request from a single consumer.
//
// The tracked user is located in the guild member caches; absence is a
// terminal error for this connection. On a hit, the user profile is
// force-refreshed before the presence is projected so username, avatar
// and banner are current at the moment of the pull. A member without
// any presence data produces no event at all.
func handleGetPresence(gctx global.Context, c instance.Consumer) {
	trackedID := gctx.Config().Discord.TrackedUserID
	d := gctx.Inst().Discord

	if _, ok := d.GuildWithMember(trackedID); !ok {
		gctx.Inst().Prometheus.RelayErrors().Inc()

		_ = c.SendMessage(events.NewMessage(events.OpcodeError, events.ErrorPayload{
			Error: events.ErrorCodeUserNotFound,
			Data:  trackedID,
			Msg:   "Wrong user id or bot not ready",
		}).ToRaw())

		c.Close("user not found")

		return
	}

	if _, err := d.FetchUser(gctx, trackedID); err != nil {
		// The pull never completes; nothing is reported downstream.
		zap.S().Errorw("eventapi, forced user fetch failed",
			"error", err,
			"user_id", trackedID,
		)

		return
	}

	presence, ok := d.Presence(trackedID)
	if !ok {
		return
	}

	gctx.Inst().Prometheus.ServedPulls().Inc()

	_ = c.SendMessage(events.NewMessage(events.OpcodeUpdatePresence, gctx.Inst().Modelizer.Presence(presence)).ToRaw())
}
