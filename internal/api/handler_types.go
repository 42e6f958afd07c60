package api

import "time"

const (
	defaultSessionTTL = 7 * 24 * time.Hour

	errorBannerDismissAfter   = 5 * time.Second
	successBannerDismissAfter = 3 * time.Second
)

// Session is the authenticated identity of a request.
type Session struct {
	ID        string
	UserID    int64
	Login     string
	ExpiresAt time.Time
}

// FlashPayload survives exactly one redirect. Each slot holds at most one
// message; setting it again replaces the text.
type FlashPayload struct {
	Error      string `json:"error,omitempty"`
	Success    string `json:"success,omitempty"`
	Warning    string `json:"warning,omitempty"`
	LoginValue string `json:"login,omitempty"`
}

type Banner struct {
	Kind         string
	Message      string
	DismissAfter int64
}
