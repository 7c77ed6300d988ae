package ai

import (
	"context"
	"errors"
)

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Provider turns an ordered prompt (system + prior turns + new user turn)
// into a single completion.
type Provider interface {
	Chat(ctx context.Context, messages []Message) (string, error)
}

// Completion failure classes. Providers wrap these so callers can pick a
// recovery with errors.Is: retry once on ErrTransient, degrade to a fallback
// reply on ErrRateLimited, anything else is surfaced as-is.
var (
	ErrAuthentication = errors.New("ai: authentication failed")
	ErrRateLimited    = errors.New("ai: rate limited")
	ErrTransient      = errors.New("ai: transient upstream failure")
)

// classifyStatus maps an HTTP status to a failure class, or nil for
// statuses with no defined recovery.
func classifyStatus(status int) error {
	switch {
	case status == 401 || status == 403:
		return ErrAuthentication
	case status == 429:
		return ErrRateLimited
	case status == 408 || status >= 500:
		return ErrTransient
	default:
		return nil
	}
}
