package events

import (
	"encoding/json"
	"testing"

	"github.com/shirokodev/presence-relay/internal/testutil"
)

func TestMessageRoundTrip(t *testing.T) {
	t.Parallel()

	msg := NewMessage(OpcodeError, ErrorPayload{
		Error: ErrorCodeUserNotFound,
		Data:  "1234567890",
		Msg:   "Wrong user id or bot not ready",
	})

	raw := msg.ToRaw()
	testutil.Assert(t, OpcodeError, raw.Op, "op preserved")
	testutil.Assert(t, msg.Timestamp, raw.Timestamp, "timestamp preserved")

	back, err := ConvertMessage[ErrorPayload](raw)
	testutil.IsNil(t, err, "convert")
	testutil.Assert(t, msg.Data, back.Data, "payload preserved")
}

func TestMessageWireShape(t *testing.T) {
	t.Parallel()

	b, err := json.Marshal(NewMessage(OpcodeGetPresence, EmptyObject{}).ToRaw())
	testutil.IsNil(t, err, "marshal")

	var decoded struct {
		Op string          `json:"op"`
		T  int64           `json:"t"`
		D  json.RawMessage `json:"d"`
	}
	testutil.IsNil(t, json.Unmarshal(b, &decoded), "unmarshal")

	testutil.Assert(t, "getPresence", decoded.Op, "op tag is the event name")
	testutil.Assert(t, true, decoded.T > 0, "timestamp set")
	testutil.Assert(t, "{}", string(decoded.D), "empty payload")
}
