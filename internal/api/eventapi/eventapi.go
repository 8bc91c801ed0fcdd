package eventapi

import (
	"github.com/fasthttp/router"
	"github.com/fasthttp/websocket"
	"github.com/shirokodev/presence-relay/internal/global"
	"github.com/shirokodev/presence-relay/internal/middleware"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

// New starts the downstream websocket server. Callers are expected to
// hold off until the gateway session is ready, so a consumer can never
// be served before upstream login completes.
func New(gctx global.Context) <-chan struct{} {
	done := make(chan struct{})

	upgrader := websocket.FastHTTPUpgrader{
		CheckOrigin: originChecker(gctx),
	}

	cors := middleware.CORS(gctx)

	r := router.New()
	r.GET("/", func(ctx *fasthttp.RequestCtx) {
		err := upgrader.Upgrade(ctx, func(ws *websocket.Conn) {
			conn := newConnection(gctx, ws)

			zap.S().Infow("consumer connected",
				"addr", ws.RemoteAddr().String(),
			)

			gctx.Inst().Relay.SetActive(conn)
			gctx.Inst().Prometheus.ActiveConsumers().Inc()

			conn.read()

			gctx.Inst().Relay.ClearIfMatches(conn)
			gctx.Inst().Prometheus.ActiveConsumers().Dec()

			zap.S().Infow("consumer disconnected",
				"tracked_user_id", gctx.Config().Discord.TrackedUserID,
			)
		})
		if err != nil {
			zap.S().Errorw("eventapi, upgrade failed",
				"error", err,
			)
		}
	})

	srv := fasthttp.Server{
		Handler: func(ctx *fasthttp.RequestCtx) {
			cors(ctx)

			if string(ctx.Method()) == fasthttp.MethodOptions {
				ctx.SetStatusCode(fasthttp.StatusNoContent)
				return
			}

			r.Handler(ctx)
		},
	}

	go func() {
		defer close(done)
		zap.S().Infow("EventAPI enabled",
			"bind", gctx.Config().Http.Bind,
		)

		if err := srv.ListenAndServe(gctx.Config().Http.Bind); err != nil {
			zap.S().Fatalw("failed to bind eventapi",
				"error", err,
			)
		}
	}()

	go func() {
		<-gctx.Done()
		_ = srv.Shutdown()
	}()

	return done
}

// originChecker permits whitelisted origins, same-origin requests and,
// with an empty whitelist, everything.
func originChecker(gctx global.Context) func(ctx *fasthttp.RequestCtx) bool {
	return func(ctx *fasthttp.RequestCtx) bool {
		origin := string(ctx.Request.Header.Peek("Origin"))
		if origin == "" {
			return true
		}

		whitelist := gctx.Config().Http.Cookie.Whitelist
		if len(whitelist) == 0 {
			return true
		}

		for _, o := range whitelist {
			if o == origin {
				return true
			}
		}

		return false
	}
}
