package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"gitlab.com/sprinkles/storefront/internal/db"
	"gitlab.com/sprinkles/storefront/internal/repository"
)

type SessionRepo struct {
	db db.DB
}

func NewSessionRepo(db db.DB) *SessionRepo {
	return &SessionRepo{db: db}
}

func (r *SessionRepo) Create(ctx context.Context, session *repository.Session) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO sessions (id, account_id, created_at, expires_at)
        VALUES ($1, $2, $3, $4)
    `, session.ID, session.AccountID, session.CreatedAt, session.ExpiresAt)
	return err
}

// GetActive returns the session only if it has not expired at now.
func (r *SessionRepo) GetActive(ctx context.Context, id uuid.UUID, now time.Time) (*repository.Session, error) {
	var session repository.Session
	err := r.db.Get(ctx, &session, `
        SELECT id, account_id, created_at, expires_at
        FROM sessions
        WHERE id = $1 AND expires_at > $2
    `, id, now)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &session, nil
}

func (r *SessionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, "DELETE FROM sessions WHERE id = $1", id)
	return err
}

func (r *SessionRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, "DELETE FROM sessions WHERE expires_at <= $1", now)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
