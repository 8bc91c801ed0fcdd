package middleware

import (
	"strconv"

	"github.com/shirokodev/presence-relay/internal/global"
	"github.com/valyala/fasthttp"
)

type Middleware func(ctx *fasthttp.RequestCtx)

// CORS reflects the request origin and permits credentials only for
// origins on the configured whitelist.
func CORS(gctx global.Context) Middleware {
	return func(ctx *fasthttp.RequestCtx) {
		reqHost := string(ctx.Request.Header.Peek("Origin"))

		allowCredentials := contains(gctx.Config().Http.Cookie.Whitelist, reqHost)

		ctx.Response.Header.Set("Access-Control-Allow-Credentials", strconv.FormatBool(allowCredentials))
		ctx.Response.Header.Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, Cookie")
		ctx.Response.Header.Set("Access-Control-Allow-Methods", "GET")
		ctx.Response.Header.Set("Access-Control-Allow-Origin", reqHost)
		ctx.Response.Header.Set("Vary", "Origin")

		// cache cors
		ctx.Response.Header.Set("Access-Control-Max-Age", "7200")
	}
}

func contains(s []string, v string) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}

	return false
}
