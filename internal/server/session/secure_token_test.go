package session_test

import (
	"testing"

	"github.com/mdouchement/quicknotes/internal/server/session"
	"github.com/stretchr/testify/assert"
)

func TestSecureToken(t *testing.T) {
	token := session.SecureToken(24)
	assert.Len(t, token, 24)

	assert.NotEqual(t, token, session.SecureToken(24))
}

func TestSecureCompare(t *testing.T) {
	assert.True(t, session.SecureCompare("t0ken", "t0ken"))
	assert.False(t, session.SecureCompare("t0ken", "t0keN"))
	assert.False(t, session.SecureCompare("t0ken", "t0ken "))
}
