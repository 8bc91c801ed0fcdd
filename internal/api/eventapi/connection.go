package eventapi

import (
	stdjson "encoding/json"
	"sync"
	"time"

	"github.com/fasthttp/websocket"
	jsoniter "github.com/json-iterator/go"
	"github.com/shirokodev/presence-relay/data/events"
	"github.com/shirokodev/presence-relay/internal/global"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const closeWriteTimeout = time.Second

type Connection struct {
	gctx global.Context
	conn *websocket.Conn

	writeMtx sync.Mutex
}

func newConnection(gctx global.Context, ws *websocket.Conn) *Connection {
	return &Connection{
		gctx: gctx,
		conn: ws,
	}
}

func (c *Connection) SendMessage(msg events.Message[stdjson.RawMessage]) error {
	b, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	c.writeMtx.Lock()
	defer c.writeMtx.Unlock()

	return c.conn.WriteMessage(websocket.TextMessage, b)
}

func (c *Connection) Close(reason string) {
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, reason)

	c.writeMtx.Lock()
	_ = c.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(closeWriteTimeout))
	c.writeMtx.Unlock()

	_ = c.conn.Close()
}

// read drives the connection until the peer goes away. Malformed
// frames and unknown ops are ignored.
func (c *Connection) read() {
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		var msg events.Message[stdjson.RawMessage]
		if err := json.Unmarshal(data, &msg); err != nil {
			zap.S().Debugw("eventapi, malformed frame",
				"error", err,
			)

			continue
		}

		switch msg.Op {
		case events.OpcodeGetPresence:
			handleGetPresence(c.gctx, c)
		default:
			zap.S().Debugw("eventapi, unknown op",
				"op", msg.Op,
			)
		}
	}
}
