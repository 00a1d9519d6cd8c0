package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"meta-ads-proxy/internal/core/domain"
	"meta-ads-proxy/internal/core/port"
)

var _ port.SessionStore = (*SessionRepository)(nil)

// SessionRepository implements port.SessionStore on PostgreSQL, letting
// several proxy instances share one session table. Rows are deleted on
// logout or forced invalidation, so no token persists past its session.
type SessionRepository struct {
	pool *pgxpool.Pool
}

// NewSessionRepository returns a new repository instance.
func NewSessionRepository(pool *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{pool: pool}
}

// Credential returns the session's credential, or nil when the session holds
// none.
func (r *SessionRepository) Credential(ctx context.Context, sessionID string) (*domain.Credential, error) {
	var cred domain.Credential
	err := r.pool.QueryRow(ctx,
		`SELECT access_token, obtained_at, expires_at FROM sessions WHERE id = $1`,
		sessionID,
	).Scan(&cred.AccessToken, &cred.ObtainedAt, &cred.ExpiresAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("selecting session %s: %w", sessionID, err)
	}
	return &cred, nil
}

// SaveCredential stores the credential, replacing any previous one for the
// session. Last writer wins, same as the in-memory slot.
func (r *SessionRepository) SaveCredential(ctx context.Context, sessionID string, cred domain.Credential) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO sessions (id, access_token, obtained_at, expires_at)
         VALUES ($1, $2, $3, $4)
         ON CONFLICT (id) DO UPDATE SET
             access_token = EXCLUDED.access_token,
             obtained_at  = EXCLUDED.obtained_at,
             expires_at   = EXCLUDED.expires_at`,
		sessionID, cred.AccessToken, cred.ObtainedAt, cred.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("saving session %s: %w", sessionID, err)
	}
	return nil
}

// DeleteCredential removes the session row. Deleting an absent row succeeds.
func (r *SessionRepository) DeleteCredential(ctx context.Context, sessionID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, sessionID)
	if err != nil {
		return fmt.Errorf("deleting session %s: %w", sessionID, err)
	}
	return nil
}
