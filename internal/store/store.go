// Package store implements the per-user note collection: CRUD, trash
// lifecycle and the listing query engine (search, sort, pagination).
//
// Every operation is scoped to the authenticated user id given as first
// argument and only ever touches that partition. Read-modify-write sequences
// are serialized per partition so concurrent callers cannot lose updates.
package store

import (
	"sync"
	"time"

	"github.com/mdouchement/quicknotes/internal/database"
	"github.com/mdouchement/quicknotes/internal/model"
	"github.com/pkg/errors"
)

// ErrNotFound is returned when a note does not exist in the user's partition.
var ErrNotFound = errors.New("note not found")

// A Store owns all access to note partitions.
type Store struct {
	db database.Client

	mu         sync.Mutex
	partitions map[string]*sync.Mutex
}

// New returns a new Store backed by the given database client.
func New(db database.Client) *Store {
	return &Store{
		db:         db,
		partitions: make(map[string]*sync.Mutex),
	}
}

// NoteFields holds the caller-provided fields of a new note.
// The store persists them as given; trimming and the "Untitled Note" default
// are the caller's responsibility.
type NoteFields struct {
	Title   string
	Content string
	Media   []model.MediaItem
}

// A NotePatch is a partial update. Nil fields are left untouched; in
// particular a nil Media never clears the existing attachments.
// Identity and creation date are not patchable.
type NotePatch struct {
	Title   *string
	Content *string
	Media   *[]model.MediaItem
}

// Add creates a note in the user's partition and persists it.
// Creation and update dates are equal on the stored record.
func (s *Store) Add(userID string, fields NoteFields) (*model.Note, error) {
	defer s.lock(userID)()

	note := &model.Note{
		UserID:  userID,
		Title:   fields.Title,
		Content: fields.Content,
		Media:   fields.Media,
	}
	if note.Media == nil {
		note.Media = []model.MediaItem{}
	}

	if err := s.db.Save(note); err != nil {
		return nil, errors.Wrap(err, "could not persist note")
	}
	return note, nil
}

// Update merges the patch into the note and refreshes its update date.
// It returns ErrNotFound when the note is not part of the user's partition.
func (s *Store) Update(userID, noteID string, patch NotePatch) (*model.Note, error) {
	defer s.lock(userID)()

	note, err := s.find(userID, noteID)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		note.Title = *patch.Title
	}
	if patch.Content != nil {
		note.Content = *patch.Content
	}
	if patch.Media != nil {
		note.Media = *patch.Media
	}

	if err := s.db.Save(note); err != nil {
		return nil, errors.Wrap(err, "could not persist note")
	}
	return normalize(note), nil
}

// Delete moves the note to the trash.
// It is idempotent in effect: deleting a trashed note refreshes its
// timestamps and stays trashed. It returns false when the note does not
// exist in the user's partition.
func (s *Store) Delete(userID, noteID string) (bool, error) {
	defer s.lock(userID)()

	note, err := s.find(userID, noteID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	t := time.Now().UTC()
	note.Deleted = true
	note.DeletedAt = &t

	if err := s.db.Save(note); err != nil {
		return false, errors.Wrap(err, "could not persist note")
	}
	return true, nil
}

// Restore takes the note out of the trash and refreshes its update date.
// Restoring a note that is not trashed succeeds and leaves it active.
func (s *Store) Restore(userID, noteID string) (bool, error) {
	defer s.lock(userID)()

	note, err := s.find(userID, noteID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	note.Deleted = false
	note.DeletedAt = nil

	if err := s.db.Save(note); err != nil {
		return false, errors.Wrap(err, "could not persist note")
	}
	return true, nil
}

// Purge removes the note irrecoverably, whatever its trash state.
// It returns false when the note does not exist in the user's partition.
func (s *Store) Purge(userID, noteID string) (bool, error) {
	defer s.lock(userID)()

	if _, err := s.find(userID, noteID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	if err := s.db.DeleteNote(noteID, userID); err != nil {
		return false, errors.Wrap(err, "could not purge note")
	}
	return true, nil
}

// Get returns the note for the given id or ErrNotFound.
func (s *Store) Get(userID, noteID string) (*model.Note, error) {
	note, err := s.find(userID, noteID)
	if err != nil {
		return nil, err
	}
	return normalize(note), nil
}

// Trash returns all trashed notes of the user's partition.
// The order is not part of the contract.
func (s *Store) Trash(userID string) ([]*model.Note, error) {
	notes, err := s.db.FindTrashedNotesByUserID(userID)
	if err != nil {
		return nil, errors.Wrap(err, "could not list trashed notes")
	}
	for _, note := range notes {
		normalize(note)
	}
	return notes, nil
}

func (s *Store) find(userID, noteID string) (*model.Note, error) {
	note, err := s.db.FindNoteByUserID(noteID, userID)
	if err != nil {
		if s.db.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrap(err, "could not read partition")
	}
	return note, nil
}

// lock serializes operations on one partition. Partitions are independent
// and never coordinate with each other.
func (s *Store) lock(userID string) func() {
	s.mu.Lock()
	l, ok := s.partitions[userID]
	if !ok {
		l = &sync.Mutex{}
		s.partitions[userID] = l
	}
	s.mu.Unlock()

	l.Lock()
	return l.Unlock
}

// normalize guards callers against a corrupted record with no media list.
func normalize(note *model.Note) *model.Note {
	if note.Media == nil {
		note.Media = []model.MediaItem{}
	}
	return note
}
