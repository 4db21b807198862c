package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/sharelink-go/internal/sharelink"
	"go.uber.org/zap"
)

// ShareHandler exposes the share link operations over HTTP.
type ShareHandler struct {
	service *sharelink.Service
	logger  *zap.Logger
	now     func() time.Time
}

// NewShareHandler creates a new share handler.
func NewShareHandler(service *sharelink.Service, logger *zap.Logger) *ShareHandler {
	return &ShareHandler{
		service: service,
		logger:  logger,
		now:     time.Now,
	}
}

// CreateShare issues a new share link for the authenticated owner.
func (h *ShareHandler) CreateShare(ctx context.Context, req *CreateShareRequest) (*CreateShareResponse, error) {
	ownerID := UserIDFromContext(ctx)
	if ownerID == "" {
		return nil, huma.Error401Unauthorized("authentication required")
	}

	created, err := h.service.Create(ctx, sharelink.CreateInput{
		OwnerID: ownerID,
		FileRef: sharelink.FileRef{
			FileID: req.Body.FileID,
			Kind:   sharelink.FileKind(req.Body.FileType),
		},
		TTLMinutes: req.Body.ExpiresInMinutes,
		Password:   req.Body.Password,
	})
	if err != nil {
		return nil, h.mapCreateError(err)
	}

	resp := &CreateShareResponse{}
	resp.Body.Code = string(created.Code)
	resp.Body.URL = created.URL

	return resp, nil
}

// GetShareInfo returns public metadata for a code, no password needed.
func (h *ShareHandler) GetShareInfo(ctx context.Context, req *ShareInfoRequest) (*ShareInfoResponse, error) {
	info, err := h.service.GetInfo(ctx, sharelink.Code(req.Code))
	if err != nil {
		return nil, h.mapResolveError(err)
	}

	resp := &ShareInfoResponse{}
	resp.Body.FileName = info.FileName
	resp.Body.FileSize = info.FileSize
	resp.Body.PasswordRequired = info.PasswordRequired
	resp.Body.ExpiresAt = info.ExpiresAt
	resp.Body.CreatedAt = info.CreatedAt

	return resp, nil
}

// ResolveShare exchanges a code for a signed download URL.
func (h *ShareHandler) ResolveShare(ctx context.Context, req *ResolveShareRequest) (*ResolveShareResponse, error) {
	meta := RequestMetaFromContext(ctx)
	fingerprint := sharelink.FingerprintOf(meta.ClientIP, meta.UserAgent, meta.AnonID)

	resolution, err := h.service.Resolve(ctx, sharelink.Code(req.Code), req.Password, fingerprint)
	if err != nil {
		return nil, h.mapResolveError(err)
	}

	resp := &ResolveShareResponse{}
	resp.Body.DownloadURL = resolution.DownloadURL

	return resp, nil
}

// ListMyShares returns every link the authenticated owner created,
// including expired and revoked ones, with full analytics.
func (h *ShareHandler) ListMyShares(ctx context.Context, _ *struct{}) (*ListSharesResponse, error) {
	ownerID := UserIDFromContext(ctx)
	if ownerID == "" {
		return nil, huma.Error401Unauthorized("authentication required")
	}

	links, err := h.service.ListMine(ctx, ownerID)
	if err != nil {
		h.logger.Error("failed to list links", zap.Error(err))

		return nil, huma.Error500InternalServerError("failed to list links")
	}

	now := h.now()
	resp := &ListSharesResponse{}
	resp.Body.Links = make([]ShareSummary, 0, len(links))

	for _, link := range links {
		resp.Body.Links = append(resp.Body.Links, ShareSummary{
			Code:           string(link.Code),
			FileID:         link.FileRef.FileID,
			FileType:       string(link.FileRef.Kind),
			PasswordSet:    link.PasswordProtected(),
			CreatedAt:      link.CreatedAt,
			ExpiresAt:      link.ExpiresAt,
			Revoked:        link.Revoked,
			Active:         link.Resolvable(now),
			TotalClicks:    link.TotalClicks,
			UniqueVisitors: link.UniqueVisitors,
			FirstOpenedAt:  link.FirstOpenedAt,
			LastOpenedAt:   link.LastOpenedAt,
		})
	}

	return resp, nil
}

// RevokeShare permanently disables an owned link.
func (h *ShareHandler) RevokeShare(ctx context.Context, req *RevokeShareRequest) (*RevokeShareResponse, error) {
	ownerID := UserIDFromContext(ctx)
	if ownerID == "" {
		return nil, huma.Error401Unauthorized("authentication required")
	}

	err := h.service.Revoke(ctx, sharelink.Code(req.Code), ownerID)
	if err != nil {
		switch {
		case errors.Is(err, sharelink.ErrForbidden):
			return nil, huma.Error403Forbidden("not the owner of this link")
		case errors.Is(err, sharelink.ErrLinkNotAvailable):
			return nil, huma.Error404NotFound("link not available")
		default:
			h.logger.Error("failed to revoke link", zap.Error(err))

			return nil, huma.Error500InternalServerError("failed to revoke link")
		}
	}

	return &RevokeShareResponse{}, nil
}

func (h *ShareHandler) mapCreateError(err error) error {
	switch {
	case errors.Is(err, sharelink.ErrPlanRestricted):
		return huma.Error403Forbidden("your plan does not allow creating public links")
	case errors.Is(err, sharelink.ErrInvalidExpiry):
		return huma.Error400BadRequest("expiry must be positive and within the allowed maximum")
	case errors.Is(err, sharelink.ErrFileNotFound):
		return huma.Error404NotFound("file not found")
	default:
		// ErrCodeSpaceExhausted lands here too: operational, not the
		// caller's business.
		h.logger.Error("failed to create link", zap.Error(err))

		return huma.Error500InternalServerError("failed to create link, please retry")
	}
}

func (h *ShareHandler) mapResolveError(err error) error {
	switch {
	case errors.Is(err, sharelink.ErrLinkNotAvailable):
		// Unknown, expired and revoked all answer identically.
		return huma.Error404NotFound("link not available")
	case errors.Is(err, sharelink.ErrInvalidPassword):
		return huma.Error401Unauthorized("invalid password")
	case errors.Is(err, sharelink.ErrTooManyAttempts):
		return huma.Error429TooManyRequests("too many failed attempts, try again later")
	default:
		h.logger.Error("failed to resolve link", zap.Error(err))

		return huma.Error500InternalServerError("failed to resolve link, please retry")
	}
}
