package qnerror_test

import (
	"net/http"
	"testing"

	"github.com/mdouchement/quicknotes/internal/qnerror"
	"github.com/stretchr/testify/assert"
)

func TestQNError(t *testing.T) {
	err := qnerror.New("some message")

	assert.Equal(t, "some message", err.Error())
	assert.Equal(t, http.StatusInternalServerError, qnerror.StatusCode(err))

	err = qnerror.NewWithTagCode(http.StatusNotFound, "not-found", "Note not found.")
	assert.Equal(t, "Note not found.", err.Error())
	assert.Equal(t, http.StatusNotFound, qnerror.StatusCode(err))
}
