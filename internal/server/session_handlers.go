package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/mdouchement/quicknotes/internal/database"
	"github.com/mdouchement/quicknotes/internal/qnerror"
	"github.com/mdouchement/quicknotes/internal/server/serializer"
	sessionpkg "github.com/mdouchement/quicknotes/internal/server/session"
)

type (
	sess struct {
		db       database.Client
		sessions sessionpkg.Manager
	}

	refreshSessionParams struct {
		RefreshToken string `json:"refresh_token"`
	}
)

// Refresh rotates the refresh token of the current session and obtains a new
// access token.
func (s *sess) Refresh(c echo.Context) error {
	// Filter params
	var params refreshSessionParams
	if err := c.Bind(&params); err != nil {
		return c.JSON(http.StatusBadRequest, qnerror.NewWithTagCode(
			http.StatusBadRequest,
			"invalid-parameters",
			"Invalid request body.",
		))
	}

	session := currentSession(c)
	if !sessionpkg.SecureCompare(session.RefreshToken, params.RefreshToken) {
		return c.JSON(http.StatusBadRequest, qnerror.NewWithTagCode(
			http.StatusBadRequest,
			"invalid-refresh-token",
			"The refresh token is not valid.",
		))
	}

	token, err := s.sessions.Regenerate(session, currentUser(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, serializer.TokenPair(session, token))
}
