package middleware

import (
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/serroba/sharelink-go/internal/handlers"
)

// Auth returns a Huma middleware that validates a JWT bearer token and
// puts the owner's user ID into the request context. Operations opt in
// via AuthMetadataKey; anonymous resolution endpoints stay open.
func Auth(api huma.API, secret []byte) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		if !requiresAuth(ctx) {
			next(ctx)

			return
		}

		userID, err := authenticate(ctx, secret)
		if err != nil {
			_ = huma.WriteErr(api, ctx, http.StatusUnauthorized, "authentication required")

			return
		}

		newCtx := handlers.ContextWithUserID(ctx.Context(), userID)
		ctx = huma.WithContext(ctx, newCtx)

		next(ctx)
	}
}

func requiresAuth(ctx huma.Context) bool {
	op := ctx.Operation()
	if op == nil || op.Metadata == nil {
		return false
	}

	required, ok := op.Metadata[handlers.AuthMetadataKey].(bool)

	return ok && required
}

func authenticate(ctx huma.Context, secret []byte) (string, error) {
	header := ctx.Header("Authorization")
	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return "", jwt.ErrTokenMalformed
	}

	token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", err
	}

	subject, err := token.Claims.GetSubject()
	if err != nil || subject == "" {
		return "", jwt.ErrTokenInvalidSubject
	}

	return subject, nil
}
