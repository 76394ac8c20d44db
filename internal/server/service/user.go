package service

import (
	"net/http"
	"time"

	"github.com/mdouchement/quicknotes/internal/database"
	"github.com/mdouchement/quicknotes/internal/model"
	"github.com/mdouchement/quicknotes/internal/qnerror"
	"github.com/mdouchement/quicknotes/internal/server/serializer"
	"github.com/mdouchement/quicknotes/internal/server/session"
	argon2 "github.com/mdouchement/simple-argon2"
	"github.com/pkg/errors"
)

type (
	// A Render is an arbitrary payload serializable in JSON by the API.
	Render interface{}

	// A UserService is the authentication gate. It yields the stable user
	// identity every note operation is scoped with.
	UserService interface {
		Register(params RegisterParams) (Render, error)
		Login(params LoginParams) (Render, error)
	}

	// RegisterParams are used to register a user.
	RegisterParams struct {
		Email     string `json:"email"`
		Password  string `json:"password"`
		Name      string `json:"name"`
		UserAgent string `json:"-"`
	}

	// LoginParams are used to login a user.
	LoginParams struct {
		Email     string `json:"email"`
		Password  string `json:"password"`
		UserAgent string `json:"-"`
	}

	userService struct {
		db       database.Client
		sessions session.Manager
	}
)

// NewUser returns a new UserService.
func NewUser(db database.Client, sessions session.Manager) UserService {
	return &userService{
		db:       db,
		sessions: sessions,
	}
}

func (s *userService) Register(params RegisterParams) (Render, error) {
	// Check if the email is free to use.
	u, err := s.db.FindUserByMail(params.Email)
	if err != nil && !s.db.IsNotFound(err) {
		return nil, errors.Wrap(err, "could not get access to database")
	}
	if u != nil {
		return nil, qnerror.NewWithTagCode(http.StatusUnauthorized, "", "This email is already registered.")
	}

	user := &model.User{
		Email: params.Email,
		Name:  params.Name,
	}

	// Crypt password
	user.Password, err = argon2.GenerateFromPasswordString(params.Password, argon2.Default)
	if err != nil {
		return nil, errors.Wrap(err, "could not store user password safe")
	}
	user.PasswordUpdatedAt = time.Now().Unix()

	if err := s.db.Save(user); err != nil {
		return nil, errors.Wrap(err, "could not persist user")
	}

	return s.authenticate(user, params.UserAgent)
}

func (s *userService) Login(params LoginParams) (Render, error) {
	// Retrieve user. A missing account and a bad password render the same
	// opaque error so credentials cannot be probed.
	user, err := s.db.FindUserByMail(params.Email)
	if err != nil {
		if s.db.IsNotFound(err) {
			return nil, qnerror.NewWithTagCode(http.StatusUnauthorized, "", "Invalid email or password.")
		}
		return nil, errors.Wrap(err, "could not get user")
	}

	// Verify password
	if err = argon2.CompareHashAndPasswordString(user.Password, params.Password); err != nil {
		if err == argon2.ErrMismatchedHashAndPassword {
			return nil, qnerror.NewWithTagCode(http.StatusUnauthorized, "", "Invalid email or password.")
		}
		return nil, errors.Wrap(err, "could not validate password")
	}

	return s.authenticate(user, params.UserAgent)
}

func (s *userService) authenticate(user *model.User, userAgent string) (Render, error) {
	session, token, err := s.sessions.Generate(user, userAgent)
	if err != nil {
		return nil, errors.Wrap(err, "could not create session")
	}
	return serializer.Authentication(user, session, token), nil
}
