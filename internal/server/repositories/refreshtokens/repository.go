// Package refreshtokens declares the server-side contract for the refresh
// token ledger: persisted fingerprints of issued refresh tokens, keyed by
// (user, fingerprint).
package refreshtokens

import (
	"context"
	"time"

	"github.com/AvinashKhichar/mynotes/internal/server/models"
)

// Repository defines operations on the refresh-token ledger. Rows are
// inserted once and deleted once; there is no update.
type Repository interface {
	// Create stores a new fingerprint for userID expiring at expiresAt.
	// An existing (user, fingerprint) row is never overwritten.
	Create(ctx context.Context, userID, fingerprint string, expiresAt time.Time) error

	// Find looks up the ledger row for (userID, fingerprint) and returns
	// common.ErrorNotFound when the token was never issued or already redeemed.
	Find(ctx context.Context, userID, fingerprint string) (*models.RefreshToken, error)

	// Delete removes the (userID, fingerprint) row and reports whether a row
	// was actually deleted. Concurrent redemptions of the same token race
	// here: exactly one caller observes true.
	Delete(ctx context.Context, userID, fingerprint string) (bool, error)

	// DeleteExpired removes all rows whose expiry is at or before now and
	// returns the number of rows removed.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)

	// PruneOldest removes the user's oldest rows so that at most keep remain.
	PruneOldest(ctx context.Context, userID string, keep int) error
}
