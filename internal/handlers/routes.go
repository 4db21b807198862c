package handlers

import (
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/sharelink-go/internal/ratelimit"
)

// AuthMetadataKey marks an operation as requiring an authenticated owner.
// Mirrored by the auth middleware.
const AuthMetadataKey = "requiresAuth"

// RegisterRoutes registers all share link routes with per-endpoint
// rate limit and auth configuration.
func RegisterRoutes(api huma.API, shareHandler *ShareHandler) {
	// POST /share - Create share link
	// Write operation; strict limits on top of the plan gate.
	huma.Register(api, huma.Operation{
		Method:        http.MethodPost,
		Path:          "/share",
		Summary:       "Create share link",
		Description:   "Creates a short, optionally password-protected, time-limited public link to a stored file.",
		Tags:          []string{"Shares"},
		DefaultStatus: http.StatusCreated,
		Metadata: map[string]any{
			AuthMetadataKey: true,
			ratelimit.MetadataKey: ratelimit.EndpointConfig{
				Limits: []ratelimit.LimitConfig{
					{Window: time.Minute, Max: 10},
					{Window: time.Hour, Max: 100},
				},
			},
		},
	}, shareHandler.CreateShare)

	// GET /share/{code}/info - Public link metadata
	huma.Register(api, huma.Operation{
		Method:      http.MethodGet,
		Path:        "/share/{code}/info",
		Summary:     "Get link info",
		Description: "Returns public metadata for a share link without requiring its password.",
		Tags:        []string{"Shares"},
		Metadata: map[string]any{
			ratelimit.MetadataKey: ratelimit.EndpointConfig{
				Limits: []ratelimit.LimitConfig{
					{Window: time.Minute, Max: 300},
				},
			},
		},
	}, shareHandler.GetShareInfo)

	// GET /share/{code}/url - Resolve to a signed download URL
	// Failed-password throttling is handled per code inside the service;
	// this endpoint limit only bounds overall traffic per client.
	huma.Register(api, huma.Operation{
		Method:      http.MethodGet,
		Path:        "/share/{code}/url",
		Summary:     "Resolve share link",
		Description: "Exchanges a short code (plus password for protected links) for a short-lived download URL.",
		Tags:        []string{"Shares"},
		Metadata: map[string]any{
			ratelimit.MetadataKey: ratelimit.EndpointConfig{
				Limits: []ratelimit.LimitConfig{
					{Window: time.Minute, Max: 120},
				},
			},
		},
	}, shareHandler.ResolveShare)

	// GET /share/my - Owner's link history
	huma.Register(api, huma.Operation{
		Method:      http.MethodGet,
		Path:        "/share/my",
		Summary:     "List my share links",
		Description: "Returns all links the caller created, including expired and revoked, with analytics.",
		Tags:        []string{"Shares"},
		Metadata: map[string]any{
			AuthMetadataKey: true,
		},
	}, shareHandler.ListMyShares)

	// DELETE /share/{code} - Revoke a link
	huma.Register(api, huma.Operation{
		Method:        http.MethodDelete,
		Path:          "/share/{code}",
		Summary:       "Revoke share link",
		Description:   "Permanently disables a link. Idempotent; only the owner may revoke.",
		Tags:          []string{"Shares"},
		DefaultStatus: http.StatusNoContent,
		Metadata: map[string]any{
			AuthMetadataKey: true,
		},
	}, shareHandler.RevokeShare)
}
