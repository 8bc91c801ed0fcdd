package events

import (
	"encoding/json"
	"time"

	"github.com/shirokodev/presence-relay/data/model"
)

type Message[D AnyPayload] struct {
	Op        Opcode `json:"op"`
	Timestamp int64  `json:"t"`
	Data      D      `json:"d"`
}

func NewMessage[D AnyPayload](op Opcode, data D) Message[D] {
	msg := Message[D]{
		Op:        op,
		Timestamp: time.Now().UnixMilli(),
		Data:      data,
	}

	return msg
}

func (e Message[D]) ToRaw() Message[json.RawMessage] {
	switch x := any(e.Data).(type) {
	case json.RawMessage:
		return Message[json.RawMessage]{
			Op:        e.Op,
			Timestamp: e.Timestamp,
			Data:      x,
		}
	}

	raw, _ := json.Marshal(e.Data)

	return Message[json.RawMessage]{
		Op:        e.Op,
		Timestamp: e.Timestamp,
		Data:      raw,
	}
}

func ConvertMessage[D AnyPayload](c Message[json.RawMessage]) (Message[D], error) {
	var d D
	err := json.Unmarshal(c.Data, &d)
	c2 := Message[D]{
		Op:        c.Op,
		Timestamp: c.Timestamp,
		Data:      d,
	}

	return c2, err
}

// Opcode names the message variant. The values are the event names of
// the downstream protocol, so a consumer dispatches on the "op" field
// alone.
type Opcode string

const (
	// S - Consumer requests the current presence snapshot
	OpcodeGetPresence Opcode = "getPresence"
	// R - Server delivers a presence snapshot
	OpcodeUpdatePresence Opcode = "updatePresence"
	// R - Terminal error context, sent before the server closes the connection
	OpcodeError Opcode = "error"
)

func (op Opcode) String() string {
	return string(op)
}

type EmptyObject = struct{}

type AnyPayload interface {
	json.RawMessage | model.PresenceModel | ErrorPayload | EmptyObject
}

type ErrorPayload struct {
	Error string `json:"error"`
	Data  string `json:"data"`
	Msg   string `json:"msg"`
}

const ErrorCodeUserNotFound = "USER_NOT_FOUND"
