package server_test

import (
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/appleboy/gofight/v2"
	"github.com/labstack/echo/v4"
	"github.com/mdouchement/quicknotes/internal/database"
	"github.com/mdouchement/quicknotes/internal/model"
	"github.com/mdouchement/quicknotes/internal/server"
	sessionpkg "github.com/mdouchement/quicknotes/internal/server/session"
	"github.com/mdouchement/quicknotes/internal/vault"
	argon2 "github.com/mdouchement/simple-argon2"
	"github.com/stretchr/testify/assert"
)

func TestRequestHome(t *testing.T) {
	engine, _, r, cleanup := setup()
	defer cleanup()

	r.GET("/").Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)
		assert.JSONEq(t, `{"version":"test"}`, r.Body.String())
	})
}

func TestRequestVersion(t *testing.T) {
	engine, _, r, cleanup := setup()
	defer cleanup()

	r.GET("/version").Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)
		assert.JSONEq(t, `{"version":"test"}`, r.Body.String())
	})
}

func setup() (engine *echo.Echo, ctrl server.Controller, r *gofight.RequestConfig, cleanup func()) {
	dir, err := os.MkdirTemp("", "quicknotes")
	if err != nil {
		panic(err)
	}

	db, err := database.StormOpen(filepath.Join(dir, "quicknotes.db"))
	if err != nil {
		panic(err)
	}

	vlt, err := vault.New(filepath.Join(dir, "vault"))
	if err != nil {
		panic(err)
	}

	ctrl = server.Controller{
		Version:                    "test",
		Database:                   db,
		Vault:                      vlt,
		NoRegistration:             false,
		SigningKey:                 []byte("secret"),
		AccessTokenExpirationTime:  60 * 24 * time.Hour,
		RefreshTokenExpirationTime: 365 * 24 * time.Hour,
	}
	engine = server.EchoEngine(ctrl)

	return engine, ctrl, gofight.New(), func() {
		db.Close()
		os.RemoveAll(dir)
	}
}

func createUser(ctrl server.Controller) *model.User {
	return createUserWithMail(ctrl, "george.abitbol@nowhere.lan")
}

func createUserWithMail(ctrl server.Controller, email string) *model.User {
	var err error

	user := &model.User{
		Email: email,
		Name:  "George",
	}
	user.Password, err = argon2.GenerateFromPasswordString("password42", argon2.Default)
	if err != nil {
		panic(err)
	}
	user.PasswordUpdatedAt = time.Now().Add(-12 * time.Hour).Unix()

	if err = ctrl.Database.Save(user); err != nil {
		panic(err)
	}
	return user
}

// login creates a session for the user and returns a valid bearer token.
func login(ctrl server.Controller, user *model.User) (*model.Session, string) {
	sessions := sessionpkg.NewManager(
		ctrl.Database,
		ctrl.SigningKey,
		ctrl.AccessTokenExpirationTime,
		ctrl.RefreshTokenExpirationTime,
	)

	session, token, err := sessions.Generate(user, "Go-http-client/1.1")
	if err != nil {
		panic(err)
	}
	return session, token
}

func bearer(token string) gofight.H {
	return gofight.H{"Authorization": "Bearer " + token}
}
