package web

import (
	"context"
	"net/http"

	"github.com/JonMunkholm/CRM/internal/core"
	mw "github.com/JonMunkholm/CRM/internal/web/middleware"
)

// WithRequestMetadata adds the client IP and User-Agent to ctx so service
// logs can attribute imports to a client.
func WithRequestMetadata(ctx context.Context, r *http.Request) context.Context {
	ctx = core.ContextWithClientIP(ctx, mw.ClientIP(r))
	ctx = core.ContextWithUserAgent(ctx, r.UserAgent())
	return ctx
}
