package session

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mdouchement/quicknotes/internal/database"
	"github.com/mdouchement/quicknotes/internal/model"
	"github.com/mdouchement/quicknotes/internal/qnerror"
	"github.com/pkg/errors"
)

type (
	// A Manager manages sessions.
	//
	// An access token is a short-lived signed JWT carrying the user id and the
	// session id. The session record holds the long-lived refresh token.
	Manager interface {
		// SigningKey returns the JWT signing key.
		SigningKey() []byte
		// Generate creates and persists a new session for the user and signs
		// its first access token.
		Generate(user *model.User, userAgent string) (*model.Session, string, error)
		// Validate checks that the session referenced by an access token is
		// still alive and returns it.
		Validate(userID, sessionID string) (*model.Session, error)
		// Regenerate rotates the session's refresh token, extends its lifetime
		// and signs a new access token.
		Regenerate(session *model.Session, user *model.User) (string, error)
		// UserFromClaims returns the user an access token was issued for.
		UserFromClaims(claims jwt.Claims) (*model.User, error)
	}

	manager struct {
		db                         database.Client
		signingKey                 []byte
		accessTokenExpirationTime  time.Duration
		refreshTokenExpirationTime time.Duration
	}
)

// NewManager returns a new manager.
func NewManager(db database.Client, signingKey []byte, accessTokenExpirationTime, refreshTokenExpirationTime time.Duration) Manager {
	return &manager{
		db:                         db,
		signingKey:                 signingKey,
		accessTokenExpirationTime:  accessTokenExpirationTime,
		refreshTokenExpirationTime: refreshTokenExpirationTime,
	}
}

func (m *manager) SigningKey() []byte {
	return m.signingKey
}

func (m *manager) Generate(user *model.User, userAgent string) (*model.Session, string, error) {
	session := &model.Session{
		UserID:       user.ID,
		UserAgent:    userAgent,
		ExpireAt:     time.Now().Add(m.refreshTokenExpirationTime).UTC(),
		RefreshToken: SecureToken(24),
	}

	if err := m.db.Save(session); err != nil {
		return nil, "", errors.Wrap(err, "could not persist session")
	}

	token, err := m.sign(user, session)
	if err != nil {
		return nil, "", err
	}
	return session, token, nil
}

func (m *manager) Validate(userID, sessionID string) (*model.Session, error) {
	session, err := m.db.FindSessionByUserID(sessionID, userID)
	if err != nil {
		if m.db.IsNotFound(err) {
			return nil, qnerror.NewWithTagCode(http.StatusUnauthorized, "invalid-auth", "Invalid login credentials.")
		}
		return nil, errors.Wrap(err, "could not get access to database")
	}

	if m.isSessionExpired(session) {
		return nil, qnerror.NewWithTagCode(http.StatusUnauthorized, "invalid-auth", "Invalid login credentials.")
	}

	return session, nil
}

func (m *manager) Regenerate(session *model.Session, user *model.User) (string, error) {
	if m.isSessionExpired(session) {
		return "", qnerror.NewWithTagCode(
			http.StatusBadRequest,
			"expired-refresh-token",
			"The refresh token has expired.",
		)
	}

	session.RefreshToken = SecureToken(24)
	session.ExpireAt = time.Now().Add(m.refreshTokenExpirationTime).UTC()

	if err := m.db.Save(session); err != nil {
		return "", errors.Wrap(err, "could not save session after refreshing session")
	}

	return m.sign(user, session)
}

func (m *manager) UserFromClaims(claims jwt.Claims) (*model.User, error) {
	id, err := claims.GetSubject()
	if err != nil {
		return nil, errors.Wrap(err, "could not read token subject")
	}

	user, err := m.db.FindUser(id)
	if err != nil {
		if m.db.IsNotFound(err) {
			return nil, qnerror.NewWithTagCode(http.StatusUnauthorized, "invalid-auth", "Invalid login credentials.")
		}
		return nil, errors.Wrap(err, "could not get access to database")
	}
	return user, nil
}

func (m *manager) sign(user *model.User, session *model.Session) (string, error) {
	now := time.Now().UTC()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    "quicknotes",
		Subject:   user.ID,
		ID:        session.ID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.accessTokenExpirationTime)),
	})

	signed, err := token.SignedString(m.signingKey)
	return signed, errors.Wrap(err, "could not sign access token")
}

func (m *manager) isSessionExpired(session *model.Session) bool {
	return session.ExpireAt.Before(time.Now().UTC())
}
