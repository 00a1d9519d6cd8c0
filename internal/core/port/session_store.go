package port

import (
	"context"

	"meta-ads-proxy/internal/core/domain"
)

// SessionStore keeps at most one credential per session id. It is an outbound
// port; implementations must guarantee session isolation (no state shared
// across session ids). A session's slot is last-writer-wins: racing writers
// are not synchronized beyond what memory safety requires.
type SessionStore interface {
	// Credential returns the stored credential for the session, or nil when
	// the session holds none. Validity is not checked here; that is the auth
	// use case's job.
	Credential(ctx context.Context, sessionID string) (*domain.Credential, error)
	// SaveCredential stores the credential, replacing any previous one.
	SaveCredential(ctx context.Context, sessionID string, cred domain.Credential) error
	// DeleteCredential removes the session's credential. Deleting an absent
	// credential is a no-op, not an error.
	DeleteCredential(ctx context.Context, sessionID string) error
}
