package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/AvinashKhichar/mynotes/internal/common"
	"github.com/AvinashKhichar/mynotes/internal/server/models"
)

type fakeNotesRepo struct {
	mu    sync.Mutex
	notes map[string]*models.Note
}

func newFakeNotesRepo() *fakeNotesRepo {
	return &fakeNotesRepo{notes: map[string]*models.Note{}}
}

func (f *fakeNotesRepo) Create(ctx context.Context, n *models.Note) (*models.Note, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n.CreatedAt = time.Now()
	f.notes[n.ID] = n
	return n, nil
}

func (f *fakeNotesRepo) ListByOwner(ctx context.Context, ownerID string) ([]*models.Note, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := []*models.Note{}
	for _, n := range f.notes {
		if n.OwnerID == ownerID {
			result = append(result, n)
		}
	}
	return result, nil
}

func (f *fakeNotesRepo) GetByID(ctx context.Context, id string) (*models.Note, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if n, ok := f.notes[id]; ok {
		return n, nil
	}
	return nil, common.ErrorNotFound
}

func (f *fakeNotesRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.notes, id)
	return nil
}

func newNoteService(t *testing.T) (*NoteService, *fakeNotesRepo) {
	t.Helper()
	db, _ := newSQLMockDB(t)
	t.Cleanup(func() { _ = db.Close() })
	rm := newFakeRepoManager()
	repo := newFakeNotesRepo()
	rm.n = repo
	return NewNoteService(db, rm), repo
}

func TestNoteCreateAndList(t *testing.T) {
	s, _ := newNoteService(t)

	n, err := s.Create(context.Background(), "owner-1", "shopping", "milk", 0xFFAA00)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if n.ID == "" || n.OwnerID != "owner-1" {
		t.Fatalf("unexpected note: %+v", n)
	}

	list, err := s.List(context.Background(), "owner-1")
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(list) != 1 || list[0].Title != "shopping" {
		t.Fatalf("unexpected list: %+v", list)
	}

	other, err := s.List(context.Background(), "owner-2")
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(other) != 0 {
		t.Fatalf("notes must be scoped to their owner, got %+v", other)
	}
}

func TestNoteDelete_Own(t *testing.T) {
	s, repo := newNoteService(t)

	n, err := s.Create(context.Background(), "owner-1", "t", "c", 0)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	if err := s.Delete(context.Background(), "owner-1", n.ID); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, err := repo.GetByID(context.Background(), n.ID); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("note must be gone, got %v", err)
	}
}

func TestNoteDelete_ForeignLooksMissing(t *testing.T) {
	s, repo := newNoteService(t)

	n, err := s.Create(context.Background(), "owner-1", "t", "c", 0)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	err = s.Delete(context.Background(), "owner-2", n.ID)
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("foreign delete must report not found, got %v", err)
	}
	if _, err := repo.GetByID(context.Background(), n.ID); err != nil {
		t.Fatalf("note must survive a foreign delete: %v", err)
	}
}

func TestNoteDelete_Missing(t *testing.T) {
	s, _ := newNoteService(t)

	err := s.Delete(context.Background(), "owner-1", "no-such-id")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want ErrorNotFound, got %v", err)
	}
}
