package models

import "time"

// RefreshToken is a ledger row for an issued refresh token. Fingerprint is a
// one-way digest of the raw token; the raw token itself is never stored, so a
// leaked ledger cannot be replayed as bearer credentials.
type RefreshToken struct {
	UserID      string
	Fingerprint string
	Expires     time.Time
	CreatedAt   time.Time
}
