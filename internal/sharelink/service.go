package sharelink

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/serroba/sharelink-go/internal/analytics"
	"github.com/serroba/sharelink-go/internal/messaging"
	"github.com/serroba/sharelink-go/internal/password"
	"github.com/serroba/sharelink-go/internal/plan"
	"go.uber.org/zap"
)

// DefaultCodeAttempts bounds how many times creation regenerates a
// colliding short code before giving up.
const DefaultCodeAttempts = 5

// AttemptLimiter throttles failed password attempts per short code.
type AttemptLimiter interface {
	// Allowed reports whether the code is still accepting attempts.
	Allowed(ctx context.Context, key string) (bool, error)
	// RecordFailure counts one failed attempt against the code.
	RecordFailure(ctx context.Context, key string) error
}

// CreateInput carries the owner's request to create a link.
type CreateInput struct {
	OwnerID    string
	FileRef    FileRef
	TTLMinutes int
	Password   string // empty for a public link
}

// CreatedLink is the outcome of a successful create.
type CreatedLink struct {
	Code Code
	URL  string
}

// LinkInfo is the public metadata returned without a password.
type LinkInfo struct {
	FileName         string
	FileSize         int64
	PasswordRequired bool
	ExpiresAt        time.Time
	CreatedAt        time.Time
}

// Resolution is the outcome of a successful resolve.
type Resolution struct {
	DownloadURL string
	NewVisitor  bool
}

// Config wires a Service. Zero-value Now and CodeAttempts fall back to
// time.Now and DefaultCodeAttempts.
type Config struct {
	Repo            Repository
	Visits          VisitRegistry
	Guard           *password.Guard
	Gate            *plan.Gate
	Files           MetadataFetcher
	Issuer          DownloadURLIssuer
	Expiry          ExpiryPolicy
	Generate        CodeGenerator
	Attempts        AttemptLimiter
	PublishCreated  messaging.Publish[analytics.LinkCreatedEvent]
	PublishAccessed messaging.Publish[analytics.LinkAccessedEvent]
	BaseURL         string
	Logger          *zap.Logger
	Now             func() time.Time
	CodeAttempts    int
}

// Service orchestrates share link creation, resolution, listing and
// revocation. It holds no mutable state of its own; every counter
// mutation is delegated to the store as an atomic operation so the
// resolving path can run as multiple stateless replicas.
type Service struct {
	repo            Repository
	visits          VisitRegistry
	guard           *password.Guard
	gate            *plan.Gate
	files           MetadataFetcher
	issuer          DownloadURLIssuer
	expiry          ExpiryPolicy
	generate        CodeGenerator
	attempts        AttemptLimiter
	publishCreated  messaging.Publish[analytics.LinkCreatedEvent]
	publishAccessed messaging.Publish[analytics.LinkAccessedEvent]
	baseURL         string
	logger          *zap.Logger
	now             func() time.Time
	codeAttempts    int
}

// NewService creates a share link service from the given configuration.
func NewService(cfg Config) *Service {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	attempts := cfg.CodeAttempts
	if attempts <= 0 {
		attempts = DefaultCodeAttempts
	}

	return &Service{
		repo:            cfg.Repo,
		visits:          cfg.Visits,
		guard:           cfg.Guard,
		gate:            cfg.Gate,
		files:           cfg.Files,
		issuer:          cfg.Issuer,
		expiry:          cfg.Expiry,
		generate:        cfg.Generate,
		attempts:        cfg.Attempts,
		publishCreated:  cfg.PublishCreated,
		publishAccessed: cfg.PublishAccessed,
		baseURL:         cfg.BaseURL,
		logger:          cfg.Logger,
		now:             now,
		codeAttempts:    attempts,
	}
}

// Create issues a new share link for the owner's file.
func (s *Service) Create(ctx context.Context, in CreateInput) (*CreatedLink, error) {
	allowed, err := s.gate.CanCreatePublicLink(ctx, in.OwnerID)
	if err != nil {
		return nil, err
	}

	if !allowed {
		return nil, ErrPlanRestricted
	}

	ttl, err := s.expiry.ValidateTTL(in.TTLMinutes)
	if err != nil {
		return nil, err
	}

	if _, err = s.files.FetchMeta(ctx, in.FileRef); err != nil {
		return nil, err
	}

	var passwordHash string
	if in.Password != "" {
		passwordHash, err = s.guard.Hash(in.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
	}

	now := s.now()
	link := &ShareLink{
		ID:           uuid.NewString(),
		FileRef:      in.FileRef,
		OwnerID:      in.OwnerID,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		ExpiresAt:    now.Add(ttl),
	}

	if err = s.insertWithRetry(ctx, link); err != nil {
		return nil, err
	}

	s.publishLinkCreated(link)

	return &CreatedLink{
		Code: link.Code,
		URL:  fmt.Sprintf("%s/share/%s", s.baseURL, link.Code),
	}, nil
}

// insertWithRetry claims a unique short code via optimistic insert.
// Collision handling relies on the store's uniqueness constraint, never
// on a check-then-insert read.
func (s *Service) insertWithRetry(ctx context.Context, link *ShareLink) error {
	for range s.codeAttempts {
		link.Code = s.generate()

		err := s.repo.Insert(ctx, link)
		if err == nil {
			return nil
		}

		if !errors.Is(err, ErrCodeTaken) {
			return fmt.Errorf("failed to insert link: %w", err)
		}

		s.logger.Warn("short code collision, regenerating",
			zap.String("code", string(link.Code)),
		)
	}

	s.logger.Error("short code space exhausted, increase code length",
		zap.Int("attempts", s.codeAttempts),
	)

	return ErrCodeSpaceExhausted
}

// GetInfo returns public metadata for a code without requiring a
// password. Unknown, expired and revoked codes are indistinguishable.
func (s *Service) GetInfo(ctx context.Context, code Code) (*LinkInfo, error) {
	link, err := s.availableLink(ctx, code)
	if err != nil {
		return nil, err
	}

	meta, err := s.files.FetchMeta(ctx, link.FileRef)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch file metadata: %w", err)
	}

	return &LinkInfo{
		FileName:         meta.Name,
		FileSize:         meta.Size,
		PasswordRequired: link.PasswordProtected(),
		ExpiresAt:        link.ExpiresAt,
		CreatedAt:        link.CreatedAt,
	}, nil
}

// Resolve exchanges a code (plus password, for protected links) for a
// short-lived signed download URL, recording the access.
func (s *Service) Resolve(ctx context.Context, code Code, attempt, fingerprint string) (*Resolution, error) {
	link, err := s.availableLink(ctx, code)
	if err != nil {
		return nil, err
	}

	if link.PasswordProtected() {
		if err = s.checkPassword(ctx, link, attempt); err != nil {
			return nil, err
		}
	}

	newVisitor, err := s.visits.Register(ctx, code, fingerprint)
	if err != nil {
		return nil, fmt.Errorf("failed to register visit: %w", err)
	}

	if err = s.repo.RecordAccess(ctx, link.ID, newVisitor, s.now()); err != nil {
		return nil, fmt.Errorf("failed to record access: %w", err)
	}

	s.publishLinkAccessed(link, fingerprint, newVisitor)

	downloadURL, err := s.issuer.PresignDownload(ctx, link.FileRef)
	if err != nil {
		return nil, fmt.Errorf("failed to presign download: %w", err)
	}

	return &Resolution{DownloadURL: downloadURL, NewVisitor: newVisitor}, nil
}

func (s *Service) checkPassword(ctx context.Context, link *ShareLink, attempt string) error {
	key := string(link.Code)

	allowed, err := s.attempts.Allowed(ctx, key)
	if err != nil {
		return fmt.Errorf("failed to check attempt limit: %w", err)
	}

	if !allowed {
		return ErrTooManyAttempts
	}

	ok, err := s.guard.Verify(attempt, link.PasswordHash)
	if err != nil {
		return fmt.Errorf("failed to verify password: %w", err)
	}

	if !ok {
		if err = s.attempts.RecordFailure(ctx, key); err != nil {
			s.logger.Error("failed to record password failure",
				zap.String("code", key),
				zap.Error(err),
			)
		}

		return ErrInvalidPassword
	}

	return nil
}

// ListMine returns every link the owner created, including expired and
// revoked ones, with full analytics counters.
func (s *Service) ListMine(ctx context.Context, ownerID string) ([]ShareLink, error) {
	links, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list links: %w", err)
	}

	return links, nil
}

// Revoke permanently disables a link. Only the owner may revoke;
// revoking an already revoked link succeeds.
func (s *Service) Revoke(ctx context.Context, code Code, ownerID string) error {
	link, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrLinkNotAvailable
		}

		return fmt.Errorf("failed to get link: %w", err)
	}

	if link.OwnerID != ownerID {
		return ErrForbidden
	}

	if err = s.repo.Revoke(ctx, link.ID); err != nil {
		return fmt.Errorf("failed to revoke link: %w", err)
	}

	return nil
}

// availableLink loads a link and collapses unknown, expired and revoked
// into the single ErrLinkNotAvailable outcome.
func (s *Service) availableLink(ctx context.Context, code Code) (*ShareLink, error) {
	link, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrLinkNotAvailable
		}

		return nil, fmt.Errorf("failed to get link: %w", err)
	}

	if !s.expiry.IsResolvable(link, s.now()) {
		return nil, ErrLinkNotAvailable
	}

	return link, nil
}

func (s *Service) publishLinkCreated(link *ShareLink) {
	event := &analytics.LinkCreatedEvent{
		Code:              string(link.Code),
		OwnerID:           link.OwnerID,
		FileID:            link.FileRef.FileID,
		FileKind:          string(link.FileRef.Kind),
		PasswordProtected: link.PasswordProtected(),
		CreatedAt:         link.CreatedAt,
		ExpiresAt:         link.ExpiresAt,
	}

	if err := s.publishCreated(event); err != nil {
		s.logger.Error("failed to publish link created event",
			zap.String("code", event.Code),
			zap.Error(err),
		)
	}
}

func (s *Service) publishLinkAccessed(link *ShareLink, fingerprint string, newVisitor bool) {
	event := &analytics.LinkAccessedEvent{
		Code:        string(link.Code),
		Fingerprint: fingerprint,
		NewVisitor:  newVisitor,
		AccessedAt:  s.now(),
	}

	if err := s.publishAccessed(event); err != nil {
		s.logger.Error("failed to publish link accessed event",
			zap.String("code", event.Code),
			zap.Error(err),
		)
	}
}
