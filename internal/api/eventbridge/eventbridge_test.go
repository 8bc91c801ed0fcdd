package eventbridge

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/shirokodev/presence-relay/data/events"
	"github.com/shirokodev/presence-relay/data/model"
	"github.com/shirokodev/presence-relay/data/structures"
	"github.com/shirokodev/presence-relay/internal/configure"
	"github.com/shirokodev/presence-relay/internal/global"
	"github.com/shirokodev/presence-relay/internal/svc/prometheus"
	"github.com/shirokodev/presence-relay/internal/svc/relay"
	"github.com/shirokodev/presence-relay/internal/testutil"
)

const trackedID = "888777666"

type fakeDiscord struct {
	fn func(structures.Presence)
}

func (f *fakeDiscord) Ready() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)

	return ch
}

func (f *fakeDiscord) Connected() bool {
	return true
}

func (f *fakeDiscord) GuildWithMember(string) (string, bool) {
	return "", false
}

func (f *fakeDiscord) Presence(string) (structures.Presence, bool) {
	return structures.Presence{}, false
}

func (f *fakeDiscord) FetchUser(_ context.Context, userID string) (structures.User, error) {
	return structures.User{ID: userID}, nil
}

func (f *fakeDiscord) OnPresenceUpdate(fn func(structures.Presence)) {
	f.fn = fn
}

type fakeConsumer struct {
	mu       sync.Mutex
	messages []events.Message[json.RawMessage]
}

func (f *fakeConsumer) SendMessage(msg events.Message[json.RawMessage]) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.messages = append(f.messages, msg)

	return nil
}

func (f *fakeConsumer) Close(string) {}

func setup(t *testing.T) (*fakeDiscord, *fakeConsumer, global.Context, context.CancelFunc) {
	t.Helper()

	config := &configure.Config{}
	config.Discord.TrackedUserID = trackedID

	gctx, cancel := global.WithCancel(global.New(context.Background(), config))

	d := &fakeDiscord{}
	gctx.Inst().Discord = d
	gctx.Inst().Relay = relay.New()
	gctx.Inst().Prometheus = prometheus.New(prometheus.Options{})
	gctx.Inst().Modelizer = model.NewInstance()

	New(gctx)

	testutil.Assert(t, true, d.fn != nil, "bridge subscribed")

	c := &fakeConsumer{}
	gctx.Inst().Relay.SetActive(c)

	return d, c, gctx, cancel
}

func TestBridgeRelaysTrackedUser(t *testing.T) {
	t.Parallel()

	d, c, _, cancel := setup(t)
	defer cancel()

	d.fn(structures.Presence{
		User:   &structures.User{ID: trackedID},
		Status: structures.PresenceStatusOnline,
	})

	testutil.Assert(t, 1, len(c.messages), "one push")
	testutil.Assert(t, events.OpcodeUpdatePresence, c.messages[0].Op, "presence event")

	decoded, err := events.ConvertMessage[model.PresenceModel](c.messages[0])
	testutil.IsNil(t, err, "decode payload")
	testutil.Assert(t, structures.PresenceStatusOnline, decoded.Data.Status.Type, "status")
}

func TestBridgeIgnoresOtherUsers(t *testing.T) {
	t.Parallel()

	d, c, _, cancel := setup(t)
	defer cancel()

	d.fn(structures.Presence{
		User:   &structures.User{ID: "someone-else"},
		Status: structures.PresenceStatusOnline,
	})

	testutil.Assert(t, 0, len(c.messages), "no push")
}

func TestBridgeDropsWithoutConsumer(t *testing.T) {
	t.Parallel()

	d, c, gctx, cancel := setup(t)
	defer cancel()

	gctx.Inst().Relay.ClearIfMatches(c)

	// Must not panic nor buffer.
	d.fn(structures.Presence{
		User:   &structures.User{ID: trackedID},
		Status: structures.PresenceStatusIdle,
	})

	testutil.Assert(t, 0, len(c.messages), "nothing delivered")
}
