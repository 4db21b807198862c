package sharelink

import "errors"

var (
	// ErrNotFound is returned by repositories when no link matches.
	ErrNotFound = errors.New("share link not found")

	// ErrCodeTaken is returned by repositories when an insert loses the
	// race for a short code.
	ErrCodeTaken = errors.New("short code already taken")

	// ErrCodeSpaceExhausted indicates code generation kept colliding past
	// the retry budget. Operational signal that the code length is too
	// short for the current volume.
	ErrCodeSpaceExhausted = errors.New("short code space exhausted")

	// ErrLinkNotAvailable is the uniform outcome for unknown, expired and
	// revoked codes. Callers get no signal about which case applies.
	ErrLinkNotAvailable = errors.New("link not available")

	// ErrInvalidPassword is returned when a protected link is resolved
	// with the wrong password.
	ErrInvalidPassword = errors.New("invalid password")

	// ErrTooManyAttempts is returned when failed password attempts
	// against one code exceed the allowed rate.
	ErrTooManyAttempts = errors.New("too many failed attempts")

	// ErrPlanRestricted is returned when the owner's plan does not allow
	// creating public links.
	ErrPlanRestricted = errors.New("plan does not allow public links")

	// ErrInvalidExpiry is returned for non-positive or over-cap TTLs.
	ErrInvalidExpiry = errors.New("invalid expiry")

	// ErrFileNotFound is returned when the file reference does not
	// resolve via the file metadata collaborator.
	ErrFileNotFound = errors.New("file not found")

	// ErrForbidden is returned when a caller acts on a link they do not own.
	ErrForbidden = errors.New("forbidden")
)
