// Package models contains the persisted record types used by the server.
package models

import "time"

// User is an account record. Email is stored normalized (trimmed, lowercased)
// and is unique. HashedPassword is a bcrypt digest; the plaintext password is
// never persisted.
type User struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"`
	CreatedAt      time.Time `json:"createdAt"`
}
