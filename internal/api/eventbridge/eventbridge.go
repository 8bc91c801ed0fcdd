package eventbridge

import (
	"github.com/shirokodev/presence-relay/data/events"
	"github.com/shirokodev/presence-relay/data/structures"
	"github.com/shirokodev/presence-relay/internal/global"
	"go.uber.org/zap"
)

// The event bridge forwards gateway presence changes for the tracked
// user to whichever consumer is currently active. Updates arriving with
// no consumer connected are dropped, not buffered.
func New(gctx global.Context) <-chan struct{} {
	done := make(chan struct{})

	gctx.Inst().Discord.OnPresenceUpdate(func(p structures.Presence) {
		if p.User == nil || p.User.ID != gctx.Config().Discord.TrackedUserID {
			return
		}

		zap.S().Debugw("presence update",
			"user_id", p.User.ID,
			"status", p.Status,
		)

		gctx.Inst().Prometheus.RelayedUpdates().Inc()

		gctx.Inst().Relay.Push(events.NewMessage(events.OpcodeUpdatePresence, gctx.Inst().Modelizer.Presence(p)).ToRaw())
	})

	go func() {
		<-gctx.Done()
		close(done)
	}()

	return done
}
