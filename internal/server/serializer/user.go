package serializer

import (
	"github.com/mdouchement/quicknotes/internal/model"
)

// User serializes the given user to its public API format.
func User(user *model.User) M {
	return M{
		"id":    user.ID,
		"email": user.Email,
		"name":  user.Name,
	}
}

// Authentication serializes a successful login or registration.
func Authentication(user *model.User, session *model.Session, accessToken string) M {
	return M{
		"user":  User(user),
		"token": accessToken,
		"session": M{
			"refresh_token": session.RefreshToken,
			"expire_at":     session.ExpireAt,
		},
	}
}

// TokenPair serializes a refreshed session.
func TokenPair(session *model.Session, accessToken string) M {
	return M{
		"token": accessToken,
		"session": M{
			"refresh_token": session.RefreshToken,
			"expire_at":     session.ExpireAt,
		},
	}
}
