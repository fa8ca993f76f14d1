// Package users declares the server-side repository contract for user
// accounts (the user directory).
package users

import (
	"context"

	"github.com/AvinashKhichar/mynotes/internal/server/models"
)

// Repository defines lookup and creation of user accounts.
type Repository interface {
	// Create stores a new user. It returns common.ErrorAlreadyExists when a
	// user with the same email is already present.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetByEmail returns the user with the given (normalized) email, or
	// common.ErrorNotFound.
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// GetByID returns the user with the given id, or common.ErrorNotFound.
	GetByID(ctx context.Context, id string) (*models.User, error)
}
