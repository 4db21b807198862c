package middleware

import (
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/sharelink-go/internal/handlers"
)

// anonCookie is the optional anonymous visitor cookie. It feeds the
// visitor fingerprint and is never stored raw.
const anonCookie = "slv_anon"

// RequestMeta is a middleware that adds client IP, user-agent and the
// anonymous visitor cookie to the request context.
func RequestMeta(_ huma.API) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		meta := handlers.RequestMeta{
			ClientIP:  extractClientIP(ctx),
			UserAgent: ctx.Header("User-Agent"),
			AnonID:    extractAnonID(ctx),
		}

		newCtx := handlers.ContextWithRequestMeta(ctx.Context(), meta)
		ctx = huma.WithContext(ctx, newCtx)

		next(ctx)
	}
}

func extractClientIP(ctx huma.Context) string {
	// Check X-Forwarded-For first (may contain multiple IPs)
	if xff := ctx.Header("X-Forwarded-For"); xff != "" {
		// Take the first IP (original client)
		if idx := strings.Index(xff, ","); idx != -1 {
			return strings.TrimSpace(xff[:idx])
		}

		return strings.TrimSpace(xff)
	}

	// Check X-Real-IP
	if xri := ctx.Header("X-Real-IP"); xri != "" {
		return xri
	}

	// Fall back to remote addr
	host := ctx.Host()
	if idx := strings.LastIndex(host, ":"); idx != -1 {
		return host[:idx]
	}

	return host
}

func extractAnonID(ctx huma.Context) string {
	header := ctx.Header("Cookie")
	if header == "" {
		return ""
	}

	cookies, err := http.ParseCookie(header)
	if err != nil {
		return ""
	}

	for _, c := range cookies {
		if c.Name == anonCookie {
			return c.Value
		}
	}

	return ""
}
