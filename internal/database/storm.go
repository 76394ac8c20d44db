package database

import (
	"time"

	"github.com/asdine/storm/v3"
	"github.com/asdine/storm/v3/codec/msgpack"
	"github.com/asdine/storm/v3/q"
	"github.com/gofrs/uuid"
	"github.com/mdouchement/quicknotes/internal/model"
	"github.com/pkg/errors"
)

type strm struct {
	db *storm.DB
}

// StormCodec is the format used to store data in the database.
var StormCodec = storm.Codec(msgpack.Codec)

// StormInit initializes Storm database.
func StormInit(database string) error {
	db, err := storm.Open(database, StormCodec)
	if err != nil {
		return errors.Wrap(err, "could not get database connection")
	}
	defer db.Close()

	if err := db.Init(&model.User{}); err != nil {
		return errors.Wrap(err, "could not init user index")
	}

	if err := db.Init(&model.Session{}); err != nil {
		return errors.Wrap(err, "could not init session index")
	}

	err = db.Init(&model.Note{})
	return errors.Wrap(err, "could not init note index")
}

// StormReIndex reindex Storm database.
func StormReIndex(database string) error {
	db, err := storm.Open(database, StormCodec)
	if err != nil {
		return errors.Wrap(err, "could not get database connection")
	}
	defer db.Close()

	if err := db.ReIndex(&model.User{}); err != nil {
		return errors.Wrap(err, "could not reindex users")
	}

	if err := db.ReIndex(&model.Session{}); err != nil {
		return errors.Wrap(err, "could not reindex sessions")
	}

	err = db.ReIndex(&model.Note{})
	return errors.Wrap(err, "could not reindex notes")
}

// StormOpen returns a new Storm database connection.
func StormOpen(database string) (Client, error) {
	db, err := storm.Open(database, StormCodec)
	if err != nil {
		return nil, errors.Wrap(err, "could not get database connection")
	}

	return &strm{
		db: db,
	}, nil
}

// Save inserts or updates the entry in database with the given model.
// A model without id gets a fresh UUID and its creation date; the update date
// is always refreshed.
func (c *strm) Save(m model.Model) error {
	t := time.Now().UTC()
	m.SetUpdatedAt(t)

	if m.GetID() == "" {
		m.SetID(uuid.Must(uuid.NewV4()).String())
		m.SetCreatedAt(t)
	}

	return errors.Wrap(c.db.Save(m), "could not save the model")
}

// Delete deletes the entry in database with the given model.
func (c *strm) Delete(m model.Model) error {
	return errors.Wrap(c.db.DeleteStruct(m), "could not delete the model")
}

// Close the database.
func (c *strm) Close() error {
	return c.db.Close()
}

// IsNotFound returns true if err is a not found error.
func (c *strm) IsNotFound(err error) bool {
	return errors.Cause(err) == storm.ErrNotFound
}

// FindUser returns the user for the given id (UUID).
func (c *strm) FindUser(id string) (*model.User, error) {
	var user model.User
	if err := c.db.One("ID", id, &user); err != nil {
		return nil, errors.Wrap(err, "find user by id")
	}
	return &user, nil
}

// FindUserByMail returns the user for the given email.
func (c *strm) FindUserByMail(email string) (*model.User, error) {
	var user model.User
	if err := c.db.One("Email", email, &user); err != nil {
		return nil, errors.Wrap(err, "find user by mail")
	}
	return &user, nil
}

// FindSession returns the session for the given id (UUID).
func (c *strm) FindSession(id string) (*model.Session, error) {
	var session model.Session
	if err := c.db.One("ID", id, &session); err != nil {
		return nil, errors.Wrap(err, "find session by id")
	}
	return &session, nil
}

// FindSessionByUserID returns the session for the given id and user id.
func (c *strm) FindSessionByUserID(id, userID string) (*model.Session, error) {
	var session model.Session
	err := c.db.Select(q.Eq("ID", id), q.Eq("UserID", userID)).First(&session)
	if err != nil {
		return nil, errors.Wrap(err, "find session by id and user id")
	}
	return &session, nil
}

// FindSessionByRefreshToken returns the session for the given id and refresh token.
func (c *strm) FindSessionByRefreshToken(id, token string) (*model.Session, error) {
	var session model.Session
	err := c.db.Select(q.Eq("ID", id), q.Eq("RefreshToken", token)).First(&session)
	if err != nil {
		return nil, errors.Wrap(err, "find session by refresh token")
	}
	return &session, nil
}

// FindSessionsByUserID returns all the sessions for the given user id.
func (c *strm) FindSessionsByUserID(userID string) ([]*model.Session, error) {
	sessions := make([]*model.Session, 0)
	err := c.db.Select(q.Eq("UserID", userID)).OrderBy("CreatedAt").Find(&sessions)
	if err != nil && !c.IsNotFound(err) {
		return nil, errors.Wrap(err, "could not find sessions by user id")
	}
	return sessions, nil
}

// FindNoteByUserID returns the note for the given id and user id (UUID).
func (c *strm) FindNoteByUserID(id, userID string) (*model.Note, error) {
	var note model.Note
	err := c.db.Select(q.Eq("ID", id), q.Eq("UserID", userID)).First(&note)
	if err != nil {
		return nil, errors.Wrap(err, "could not find note by user id")
	}
	return &note, nil
}

// FindNotesByUserID returns the full partition of the given user.
func (c *strm) FindNotesByUserID(userID string) ([]*model.Note, error) {
	notes := make([]*model.Note, 0)
	err := c.db.Select(q.Eq("UserID", userID)).OrderBy("CreatedAt").Find(&notes)
	if err != nil && !c.IsNotFound(err) {
		return nil, errors.Wrap(err, "could not find notes by user id")
	}
	return notes, nil
}

// FindTrashedNotesByUserID returns all soft-deleted notes of the given user.
func (c *strm) FindTrashedNotesByUserID(userID string) ([]*model.Note, error) {
	notes := make([]*model.Note, 0)
	err := c.db.Select(q.Eq("UserID", userID), q.Eq("Deleted", true)).Find(&notes)
	if err != nil && !c.IsNotFound(err) {
		return nil, errors.Wrap(err, "could not find trashed notes")
	}
	return notes, nil
}

// DeleteNote removes the note matching the given parameters.
func (c *strm) DeleteNote(id, userID string) error {
	err := c.db.Select(q.Eq("ID", id), q.Eq("UserID", userID)).Delete(&model.Note{})
	return errors.Wrap(err, "could not delete note")
}
