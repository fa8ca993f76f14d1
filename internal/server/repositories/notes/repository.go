// Package notes declares the server-side repository contract for note
// records.
package notes

import (
	"context"

	"github.com/AvinashKhichar/mynotes/internal/server/models"
)

// Repository defines storage operations for notes.
type Repository interface {
	// Create stores a new note.
	Create(ctx context.Context, note *models.Note) (*models.Note, error)

	// ListByOwner returns all notes owned by ownerID, newest first.
	ListByOwner(ctx context.Context, ownerID string) ([]*models.Note, error)

	// GetByID returns the note with the given id, or common.ErrorNotFound.
	GetByID(ctx context.Context, id string) (*models.Note, error)

	// Delete removes the note with the given id.
	Delete(ctx context.Context, id string) error
}
