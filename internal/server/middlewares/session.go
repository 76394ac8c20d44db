package middlewares

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/mdouchement/quicknotes/internal/server/session"
)

const (
	// CurrentUserContextKey is the key to retrieve the current_user from echo.Context.
	CurrentUserContextKey = "current_user"
	// CurrentSessionContextKey is the key to retrieve the current_session from echo.Context.
	CurrentSessionContextKey = "current_session"
)

// Session returns a session auth middleware.
// It validates the bearer access token, checks the session it references is
// still alive and stores current_user and current_session into echo.Context.
func Session(m session.Manager) echo.MiddlewareFunc {
	check := echojwt.WithConfig(echojwt.Config{
		SigningKey: m.SigningKey(),
	})

	fake := func(echo.Context) error {
		return nil
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// Check token signature and expiry according to its claims.
			if err := check(fake)(c); err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"error": echo.Map{
						"tag":     "invalid-auth",
						"message": "Invalid login credentials.",
					},
				})
			}

			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				panic("token implementation has changed")
			}
			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				panic("token implementation has wrong type of claims")
			}

			subject, err := claims.GetSubject()
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"error": echo.Map{
						"tag":     "invalid-auth",
						"message": "Invalid login credentials.",
					},
				})
			}
			sessionID, _ := claims["jti"].(string)

			// Find, validate and store current_session for handlers.
			sess, err := m.Validate(subject, sessionID)
			if err != nil {
				return err
			}
			c.Set(CurrentSessionContextKey, sess)

			// Find and store current_user for handlers.
			user, err := m.UserFromClaims(claims)
			if err != nil {
				return err
			}

			// Check if password has changed since the token was issued.
			iat, err := claims.GetIssuedAt()
			if err != nil || iat.Unix() < user.PasswordUpdatedAt {
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"error": echo.Map{
						"tag":     "invalid-auth",
						"message": "Revoked token.",
					},
				})
			}

			c.Set(CurrentUserContextKey, user)
			return next(c)
		}
	}
}
