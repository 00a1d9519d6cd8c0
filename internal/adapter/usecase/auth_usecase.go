package usecase

import (
	"context"
	"log/slog"
	"time"

	"meta-ads-proxy/internal/core/domain"
	"meta-ads-proxy/internal/core/port"
)

// defaultExpiresInSeconds is applied when the provider omits expires_in from
// the token response.
const defaultExpiresInSeconds = 7200

// AuthUseCase implements the OAuth authorization-code flow against the
// session store and the Meta client. A session moves from unauthenticated to
// authenticated only through a successful callback completion, and back
// through logout, expiry or forced invalidation.
type AuthUseCase struct {
	store  port.SessionStore
	client port.MetaClient
	logger *slog.Logger

	// now is swappable in tests.
	now func() time.Time
}

// NewAuthUseCase wires the flow controller with its collaborators.
func NewAuthUseCase(store port.SessionStore, client port.MetaClient, logger *slog.Logger) *AuthUseCase {
	return &AuthUseCase{store: store, client: client, logger: logger, now: time.Now}
}

var _ port.AuthUseCase = (*AuthUseCase)(nil)

// AuthURL builds the provider consent URL. No session state changes here;
// the pending flow exists only in the redirect.
func (u *AuthUseCase) AuthURL(state string) string {
	return u.client.AuthCodeURL(state)
}

// CompleteCallback consumes the provider callback and produces exactly one
// outcome. A provider-reported error short-circuits before any exchange; an
// exchange failure (including a reused code, which the upstream rejects)
// leaves the session unauthenticated.
func (u *AuthUseCase) CompleteCallback(ctx context.Context, sessionID, code, providerErr, providerReason string) port.CallbackResult {
	if providerErr != "" {
		reason := providerReason
		if reason == "" {
			reason = providerErr
		}
		u.logger.Warn("oauth consent denied", slog.String("reason", reason))
		return port.CallbackResult{Outcome: port.CallbackDenied, Reason: reason}
	}

	grant, err := u.client.ExchangeCode(ctx, code)
	if err != nil {
		pe := domain.AsProxyError(err)
		u.logger.Error("token exchange failed", slog.String("kind", string(pe.Kind)), slog.String("message", pe.Message))
		reason := pe.ProviderDetail
		if reason == "" {
			reason = pe.Message
		}
		return port.CallbackResult{Outcome: port.CallbackExchangeFailed, Reason: reason}
	}

	expiresIn := grant.ExpiresIn
	if expiresIn <= 0 {
		expiresIn = defaultExpiresInSeconds
	}
	obtained := u.now()
	cred := domain.Credential{
		AccessToken: grant.AccessToken,
		ObtainedAt:  obtained,
		ExpiresAt:   obtained.Add(time.Duration(expiresIn) * time.Second),
	}
	if err := u.store.SaveCredential(ctx, sessionID, cred); err != nil {
		u.logger.Error("storing credential failed", slog.Any("error", err))
		return port.CallbackResult{Outcome: port.CallbackExchangeFailed, Reason: "failed to store credential"}
	}
	u.logger.Info("session authenticated", slog.Time("expires_at", cred.ExpiresAt))
	return port.CallbackResult{Outcome: port.CallbackSuccess}
}

// Status reports whether the session holds a credential that is still inside
// its validity window. Every other component asks here instead of inspecting
// the store itself.
func (u *AuthUseCase) Status(ctx context.Context, sessionID string) (port.AuthStatus, error) {
	cred, err := u.store.Credential(ctx, sessionID)
	if err != nil {
		return port.AuthStatus{}, err
	}
	if cred == nil || !cred.Valid(u.now()) {
		return port.AuthStatus{Authenticated: false}, nil
	}
	expires := cred.ExpiresAt
	return port.AuthStatus{Authenticated: true, ExpiresAt: &expires}, nil
}

// Logout destroys the session's credential. Calling it on a session without
// one is a no-op success.
func (u *AuthUseCase) Logout(ctx context.Context, sessionID string) error {
	return u.store.DeleteCredential(ctx, sessionID)
}
