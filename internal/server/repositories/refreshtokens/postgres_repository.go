package refreshtokens

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/AvinashKhichar/mynotes/internal/common"
	"github.com/AvinashKhichar/mynotes/internal/dbx"
	"github.com/AvinashKhichar/mynotes/internal/server/models"
)

// PostgresRepository implements the ledger over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new ledger row for (userID, fingerprint).
func (r *PostgresRepository) Create(ctx context.Context, userID, fingerprint string, expiresAt time.Time) error {
	query := `
		INSERT INTO refresh_tokens (user_id, fingerprint, expires_at)
		VALUES ($1, $2, $3)
	`
	if _, err := r.db.ExecContext(ctx, query, userID, fingerprint, expiresAt); err != nil {
		return fmt.Errorf("error performing sql request: %w", err)
	}
	return nil
}

// Find returns the ledger row for (userID, fingerprint).
// If not found, it returns common.ErrorNotFound.
func (r *PostgresRepository) Find(ctx context.Context, userID, fingerprint string) (*models.RefreshToken, error) {
	query := `
		SELECT user_id, fingerprint, expires_at, created_at
		FROM refresh_tokens
		WHERE user_id = $1 AND fingerprint = $2
	`
	token := &models.RefreshToken{}
	err := r.db.QueryRowContext(ctx, query, userID, fingerprint).
		Scan(&token.UserID, &token.Fingerprint, &token.Expires, &token.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return token, nil
}

// Delete removes the (userID, fingerprint) row. The reported bool is false
// when the row was already gone, e.g. when a concurrent redemption won the
// race on the same token.
func (r *PostgresRepository) Delete(ctx context.Context, userID, fingerprint string) (bool, error) {
	query := `
		DELETE FROM refresh_tokens
		WHERE user_id = $1 AND fingerprint = $2
	`
	res, err := r.db.ExecContext(ctx, query, userID, fingerprint)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	return affected > 0, nil
}

// DeleteExpired removes all rows expired at or before now.
func (r *PostgresRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	query := `
		DELETE FROM refresh_tokens
		WHERE expires_at <= $1
	`
	res, err := r.db.ExecContext(ctx, query, now)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	return affected, nil
}

// PruneOldest keeps the user's keep newest rows and removes the rest.
func (r *PostgresRepository) PruneOldest(ctx context.Context, userID string, keep int) error {
	query := `
		DELETE FROM refresh_tokens
		WHERE user_id = $1 AND (user_id, fingerprint) NOT IN (
			SELECT user_id, fingerprint
			FROM refresh_tokens
			WHERE user_id = $1
			ORDER BY created_at DESC
			LIMIT $2
		)
	`
	if _, err := r.db.ExecContext(ctx, query, userID, keep); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
