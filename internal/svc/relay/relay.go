package relay

import (
	"encoding/json"
	"sync"

	"github.com/shirokodev/presence-relay/data/events"
	"github.com/shirokodev/presence-relay/internal/instance"
	"go.uber.org/zap"
)

type relayInst struct {
	mu     sync.Mutex
	active instance.Consumer
}

// New creates the single-consumer relay channel. A newly connecting
// consumer displaces the previous one as the push target; the displaced
// connection stays open but no longer receives pushes.
func New() instance.Relay {
	return &relayInst{}
}

func (r *relayInst) SetActive(c instance.Consumer) {
	r.mu.Lock()
	r.active = c
	r.mu.Unlock()
}

func (r *relayInst) ClearIfMatches(c instance.Consumer) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.active == c {
		r.active = nil
	}
}

func (r *relayInst) Push(msg events.Message[json.RawMessage]) {
	r.mu.Lock()
	active := r.active
	r.mu.Unlock()

	if active == nil {
		zap.S().Debugw("relay, no active consumer",
			"op", msg.Op,
		)

		return
	}

	if err := active.SendMessage(msg); err != nil {
		// A push racing a disconnect; the transport already dropped it.
		zap.S().Debugw("relay, push failed",
			"op", msg.Op,
			"error", err,
		)
	}
}
