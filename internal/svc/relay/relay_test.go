package relay

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/shirokodev/presence-relay/data/events"
	"github.com/shirokodev/presence-relay/internal/testutil"
)

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

func (f *fakeConsumer) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.messages)
}

func TestPushWithoutConsumer(t *testing.T) {
	t.Parallel()

	r := New()

	// Must be a silent no-op.
	r.Push(events.NewMessage(events.OpcodeUpdatePresence, events.EmptyObject{}).ToRaw())
}

func TestPushToActiveConsumer(t *testing.T) {
	t.Parallel()

	r := New()
	c := &fakeConsumer{}

	r.SetActive(c)
	r.Push(events.NewMessage(events.OpcodeUpdatePresence, events.EmptyObject{}).ToRaw())

	testutil.Assert(t, 1, c.count(), "one message delivered")
	testutil.Assert(t, events.OpcodeUpdatePresence, c.messages[0].Op, "op")
}

func TestNewConsumerDisplacesOld(t *testing.T) {
	t.Parallel()

	r := New()
	first := &fakeConsumer{}
	second := &fakeConsumer{}

	r.SetActive(first)
	r.SetActive(second)

	r.Push(events.NewMessage(events.OpcodeUpdatePresence, events.EmptyObject{}).ToRaw())

	testutil.Assert(t, 0, first.count(), "displaced consumer receives nothing")
	testutil.Assert(t, 1, second.count(), "new consumer receives the push")
}

func TestClearIfMatches(t *testing.T) {
	t.Parallel()

	r := New()
	first := &fakeConsumer{}
	second := &fakeConsumer{}

	r.SetActive(first)
	r.SetActive(second)

	// A stale disconnect must not tear down the current consumer.
	r.ClearIfMatches(first)
	r.Push(events.NewMessage(events.OpcodeUpdatePresence, events.EmptyObject{}).ToRaw())
	testutil.Assert(t, 1, second.count(), "current consumer unaffected")

	r.ClearIfMatches(second)
	r.Push(events.NewMessage(events.OpcodeUpdatePresence, events.EmptyObject{}).ToRaw())
	testutil.Assert(t, 1, second.count(), "no delivery after clear")
}
