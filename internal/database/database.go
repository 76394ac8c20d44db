package database

import (
	"github.com/mdouchement/quicknotes/internal/model"
)

type (
	// A Client can interacts with the database.
	Client interface {
		// Save inserts or updates the entry in database with the given model.
		Save(m model.Model) error
		// Delete deletes the entry in database with the given model.
		Delete(m model.Model) error
		// Close the database.
		Close() error
		// IsNotFound returns true if err is a not found error.
		IsNotFound(err error) bool

		UserInteraction
		SessionInteraction
		NoteInteraction
	}

	// An UserInteraction defines all the methods used to interact with a user record.
	UserInteraction interface {
		// FindUser returns the user for the given id (UUID).
		FindUser(id string) (*model.User, error)
		// FindUserByMail returns the user for the given email.
		FindUserByMail(email string) (*model.User, error)
	}

	// An SessionInteraction defines all the methods used to interact with a session record.
	SessionInteraction interface {
		// FindSession returns the session for the given id (UUID).
		FindSession(id string) (*model.Session, error)
		// FindSessionByUserID returns the session for the given id and user id.
		FindSessionByUserID(id, userID string) (*model.Session, error)
		// FindSessionByRefreshToken returns the session for the given id and refresh token.
		FindSessionByRefreshToken(id, token string) (*model.Session, error)
		// FindSessionsByUserID returns all sessions for the given user id.
		FindSessionsByUserID(userID string) ([]*model.Session, error)
	}

	// A NoteInteraction defines all the methods used to interact with note record(s).
	// All finders are scoped to a user id so a partition can never leak into another.
	NoteInteraction interface {
		// FindNoteByUserID returns the note for the given id and user id (UUID).
		FindNoteByUserID(id, userID string) (*model.Note, error)
		// FindNotesByUserID returns the full partition of the given user.
		FindNotesByUserID(userID string) ([]*model.Note, error)
		// FindTrashedNotesByUserID returns all soft-deleted notes of the given user.
		FindTrashedNotesByUserID(userID string) ([]*model.Note, error)
		// DeleteNote removes the note matching the given parameters.
		DeleteNote(id, userID string) error
	}
)
