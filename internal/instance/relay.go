package instance

import (
	"encoding/json"

	"github.com/shirokodev/presence-relay/data/events"
)

// Relay tracks at most one active downstream consumer and forwards
// messages to it.
type Relay interface {
	// SetActive replaces the current push target. A previous consumer
	// is displaced, not disconnected.
	SetActive(c Consumer)

	// ClearIfMatches drops the active reference if it still points at
	// the given consumer.
	ClearIfMatches(c Consumer)

	// Push sends a message to the active consumer. With no consumer
	// connected the message is dropped.
	Push(msg events.Message[json.RawMessage])
}

// Consumer is a single downstream connection.
type Consumer interface {
	SendMessage(msg events.Message[json.RawMessage]) error
	Close(reason string)
}
