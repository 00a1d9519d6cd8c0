package port

import (
	"context"
	"time"
)

// CallbackOutcome enumerates the three possible results of completing the
// OAuth callback. Exactly one is produced per call.
type CallbackOutcome int

const (
	// CallbackSuccess means a credential was exchanged and stored.
	CallbackSuccess CallbackOutcome = iota
	// CallbackDenied means the user denied consent or the provider reported
	// an error before any exchange; no credential was written.
	CallbackDenied
	// CallbackExchangeFailed means the code-for-token exchange itself failed;
	// no credential was written.
	CallbackExchangeFailed
)

// CallbackResult is the single outcome of one callback completion. Reason is
// the provider's denial reason or the upstream error payload; empty on
// success.
type CallbackResult struct {
	Outcome CallbackOutcome
	Reason  string
}

// AuthStatus reports whether a session currently holds a valid credential.
type AuthStatus struct {
	Authenticated bool       `json:"authenticated"`
	ExpiresAt     *time.Time `json:"expiresAt"`
}

// AuthUseCase drives the OAuth authorization-code flow and owns a session's
// authentication state. Status is the sole authority on validity; no other
// component re-derives it.
type AuthUseCase interface {
	// AuthURL builds the provider consent URL. It mutates nothing; the
	// pending state of the flow lives in the redirect itself.
	AuthURL(state string) string
	// CompleteCallback consumes the provider callback. providerErr and
	// providerReason carry the provider's error/error_reason parameters when
	// consent was denied.
	CompleteCallback(ctx context.Context, sessionID, code, providerErr, providerReason string) CallbackResult
	// Status reports authentication state without mutating it.
	Status(ctx context.Context, sessionID string) (AuthStatus, error)
	// Logout destroys the session's credential. Idempotent: logging out an
	// already-unauthenticated session succeeds.
	Logout(ctx context.Context, sessionID string) error
}
