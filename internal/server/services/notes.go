package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/AvinashKhichar/mynotes/internal/common"
	"github.com/AvinashKhichar/mynotes/internal/server/models"
	"github.com/AvinashKhichar/mynotes/internal/server/repositories/repomanager"
)

// NoteService provides note operations scoped to the owning user.
type NoteService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewNoteService(db *sql.DB, m repomanager.RepositoryManager) *NoteService {
	return &NoteService{db: db, repomanager: m}
}

// Create stores a new note for ownerID.
func (s *NoteService) Create(ctx context.Context, ownerID, title, content string, color int64) (*models.Note, error) {
	note := &models.Note{
		ID:      uuid.NewString(),
		OwnerID: ownerID,
		Title:   title,
		Content: content,
		Color:   color,
	}

	n, err := s.repomanager.Notes(s.db).Create(ctx, note)
	if err != nil {
		return nil, fmt.Errorf("error creating note: %w", err)
	}

	return n, nil
}

// List returns the owner's notes, newest first.
func (s *NoteService) List(ctx context.Context, ownerID string) ([]*models.Note, error) {
	result, err := s.repomanager.Notes(s.db).ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("error listing notes: %w", err)
	}
	return result, nil
}

// Delete removes the note with the given id if it belongs to ownerID.
// A foreign note is reported as not found rather than forbidden, so note ids
// do not leak across users.
func (s *NoteService) Delete(ctx context.Context, ownerID, noteID string) error {
	repo := s.repomanager.Notes(s.db)

	note, err := repo.GetByID(ctx, noteID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("error loading note: %w", err)
	}

	if note.OwnerID != ownerID {
		return common.ErrorNotFound
	}

	if err := repo.Delete(ctx, noteID); err != nil {
		return fmt.Errorf("error deleting note: %w", err)
	}

	return nil
}
