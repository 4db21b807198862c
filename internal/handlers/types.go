package handlers

import "time"

// CreateShareRequest is the request body for creating a share link.
type CreateShareRequest struct {
	Body struct {
		FileID           string `doc:"Identifier of the stored file"          example:"9f2d41c7.pdf" json:"fileId"   required:"true"`
		FileType         string `doc:"Where the file lives"                   enum:"temporary,library" json:"fileType" required:"true"`
		ExpiresInMinutes int    `doc:"Link lifetime in minutes"               example:"60"            json:"expiresInMinutes" required:"true"`
		Password         string `doc:"Optional password protecting the link"  json:"password,omitempty"`
	}
}

// CreateShareResponse is the response for a successfully created link.
type CreateShareResponse struct {
	Body struct {
		Code string `doc:"The public short code" example:"aB3xK9mQ"                          json:"code"`
		URL  string `doc:"The full share URL"    example:"https://pdf.example/share/aB3xK9mQ" json:"url"`
	}
}

// ShareInfoRequest asks for public metadata about a code.
type ShareInfoRequest struct {
	Code string `doc:"The short code" example:"aB3xK9mQ" path:"code"`
}

// ShareInfoResponse carries metadata available without a password.
type ShareInfoResponse struct {
	Body struct {
		FileName         string    `json:"fileName"`
		FileSize         int64     `json:"fileSize"`
		PasswordRequired bool      `json:"passwordRequired"`
		ExpiresAt        time.Time `json:"expiresAt"`
		CreatedAt        time.Time `json:"createdAt"`
	}
}

// ResolveShareRequest exchanges a code (plus password when protected)
// for a download URL.
type ResolveShareRequest struct {
	Code     string `doc:"The short code"               example:"aB3xK9mQ" path:"code"`
	Password string `doc:"Password for protected links" query:"password"`
}

// ResolveShareResponse carries the short-lived signed download URL.
type ResolveShareResponse struct {
	Body struct {
		DownloadURL string `json:"downloadUrl"`
	}
}

// ShareSummary is one owned link with its analytics counters.
type ShareSummary struct {
	Code           string     `json:"code"`
	FileID         string     `json:"fileId"`
	FileType       string     `json:"fileType"`
	PasswordSet    bool       `json:"passwordSet"`
	CreatedAt      time.Time  `json:"createdAt"`
	ExpiresAt      time.Time  `json:"expiresAt"`
	Revoked        bool       `json:"revoked"`
	Active         bool       `json:"active"`
	TotalClicks    int64      `json:"totalClicks"`
	UniqueVisitors int64      `json:"uniqueVisitors"`
	FirstOpenedAt  *time.Time `json:"firstOpenedAt,omitempty"`
	LastOpenedAt   *time.Time `json:"lastOpenedAt,omitempty"`
}

// ListSharesResponse is the owner's full link history.
type ListSharesResponse struct {
	Body struct {
		Links []ShareSummary `json:"links"`
	}
}

// RevokeShareRequest permanently disables a link.
type RevokeShareRequest struct {
	Code string `doc:"The short code" example:"aB3xK9mQ" path:"code"`
}

// RevokeShareResponse is empty; revocation answers 204.
type RevokeShareResponse struct{}
