package server

import (
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/mdouchement/quicknotes/internal/database"
	"github.com/mdouchement/quicknotes/internal/model"
	"github.com/mdouchement/quicknotes/internal/server/middlewares"
	"github.com/mdouchement/quicknotes/internal/server/session"
	"github.com/mdouchement/quicknotes/internal/store"
	"github.com/mdouchement/quicknotes/internal/vault"
)

// A Controller is an Inversion Of Control pattern used to init the server package.
type Controller struct {
	Version        string
	Database       database.Client
	Vault          *vault.Vault
	NoRegistration bool
	// JWT params
	SigningKey []byte
	// Session params
	AccessTokenExpirationTime  time.Duration
	RefreshTokenExpirationTime time.Duration
}

// EchoEngine instantiates the web server.
func EchoEngine(ctrl Controller) *echo.Echo {
	engine := echo.New()
	engine.Use(middleware.Recover())
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.DefaultCORSConfig))
	engine.Use(middleware.Gzip())

	engine.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "[${status}] ${method} ${uri} (${bytes_in}) ${latency_human}\n",
	}))
	engine.Binder = middlewares.NewBinder()
	// Error handler
	engine.HTTPErrorHandler = middlewares.HTTPErrorHandler

	engine.Pre(middleware.Rewrite(map[string]string{
		"/": "/version",
	}))

	////////////
	// Router //
	////////////

	sessions := session.NewManager(
		ctrl.Database,
		ctrl.SigningKey,
		ctrl.AccessTokenExpirationTime,
		ctrl.RefreshTokenExpirationTime,
	)

	router := engine.Group("")
	restricted := router.Group("")
	restricted.Use(middlewares.Session(sessions))

	// generic handlers
	//
	router.GET("/version", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"version": ctrl.Version,
		})
	})

	//
	// auth handlers
	//
	auth := &auth{
		db:       ctrl.Database,
		sessions: sessions,
	}
	if !ctrl.NoRegistration {
		router.POST("/auth/register", auth.Register)
	}
	router.POST("/auth/sign_in", auth.Login)
	restricted.POST("/auth/sign_out", auth.Logout)

	//
	// session handlers
	//
	sess := &sess{
		db:       ctrl.Database,
		sessions: sessions,
	}
	restricted.POST("/session/refresh", sess.Refresh)

	//
	// note handlers
	//
	note := &note{
		store: store.New(ctrl.Database),
	}
	restricted.GET("/notes", note.List)
	restricted.POST("/notes", note.Create)
	restricted.GET("/notes/:id", note.Show)
	restricted.PATCH("/notes/:id", note.Update)
	restricted.DELETE("/notes/:id", note.Delete)
	restricted.POST("/notes/:id/restore", note.Restore)
	restricted.DELETE("/notes/:id/permanent", note.Purge)
	restricted.GET("/trash", note.Trash)

	//
	// media handlers
	//
	files := &files{
		vault: ctrl.Vault,
	}
	restricted.POST("/media", files.Upload)
	restricted.GET("/media/:handle", files.Download)

	return engine
}

// PrintRoutes prints the Echo engine exposed routes.
func PrintRoutes(e *echo.Echo) {
	ignored := map[string]bool{
		"":   true,
		".":  true,
		"/*": true,
	}

	routes := e.Routes()
	sort.Slice(routes, func(i int, j int) bool {
		return routes[i].Path < routes[j].Path
	})

	fmt.Println("Routes:")
	for _, route := range routes {
		if ignored[route.Path] {
			continue
		}
		fmt.Printf("%6s %s\n", route.Method, route.Path)
	}
}

func currentUser(c echo.Context) *model.User {
	user, ok := c.Get(middlewares.CurrentUserContextKey).(*model.User)
	if ok {
		return user
	}
	return nil
}

func currentSession(c echo.Context) *model.Session {
	session, ok := c.Get(middlewares.CurrentSessionContextKey).(*model.Session)
	if ok {
		return session
	}
	return nil
}
