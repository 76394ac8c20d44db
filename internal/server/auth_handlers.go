package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/mdouchement/quicknotes/internal/database"
	"github.com/mdouchement/quicknotes/internal/qnerror"
	"github.com/mdouchement/quicknotes/internal/server/service"
	"github.com/mdouchement/quicknotes/internal/server/session"
)

// auth contains all authentication handlers.
type auth struct {
	db       database.Client
	sessions session.Manager
}

///// Register
////
//

// Register handler is used to register a user.
func (h *auth) Register(c echo.Context) error {
	// Filter params
	var params service.RegisterParams
	if err := c.Bind(&params); err != nil {
		return c.JSON(http.StatusUnauthorized, qnerror.New("Could not get user's params."))
	}
	params.UserAgent = c.Request().UserAgent()

	if params.Email == "" {
		return c.JSON(http.StatusUnauthorized, qnerror.New("No email provided."))
	}
	if params.Password == "" {
		return c.JSON(http.StatusUnauthorized, qnerror.New("No password provided."))
	}

	service := service.NewUser(h.db, h.sessions)
	register, err := service.Register(params)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, register)
}

///// Login
////
//

// Login authenticates a user and returns its session identity and tokens.
func (h *auth) Login(c echo.Context) error {
	// Filter params
	var params service.LoginParams
	if err := c.Bind(&params); err != nil {
		return c.JSON(http.StatusBadRequest, qnerror.New("Could not get credentials."))
	}
	params.UserAgent = c.Request().UserAgent()

	if params.Email == "" || params.Password == "" {
		return c.JSON(http.StatusBadRequest, qnerror.New("No email or password provided."))
	}

	service := service.NewUser(h.db, h.sessions)
	login, err := service.Login(params)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, login)
}

///// Logout
////
//

// Logout terminates the current session.
func (h *auth) Logout(c echo.Context) error {
	session := currentSession(c)
	if session != nil {
		err := h.db.Delete(session)
		if err != nil && !h.db.IsNotFound(err) {
			return err
		}
	}

	return c.NoContent(http.StatusNoContent)
}
