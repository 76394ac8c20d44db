package media_test

import (
	"testing"

	"github.com/mdouchement/quicknotes/internal/media"
	"github.com/mdouchement/quicknotes/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeAllowed(t *testing.T) {
	allowed := []string{
		"image/jpeg", "image/png", "image/gif", "image/webp",
		"audio/mpeg", "audio/wav", "audio/ogg",
		"video/mp4", "video/webm", "video/ogg",
	}
	for _, ctype := range allowed {
		assert.True(t, media.TypeAllowed(ctype), ctype)
	}

	assert.False(t, media.TypeAllowed("text/plain"))
	assert.False(t, media.TypeAllowed("application/pdf"))
	assert.False(t, media.TypeAllowed(""))
}

func TestSizeValid(t *testing.T) {
	assert.True(t, media.SizeValid(0))
	assert.True(t, media.SizeValid(media.MaxFileSize))
	assert.False(t, media.SizeValid(media.MaxFileSize+1))
	assert.False(t, media.SizeValid(12*1024*1024))
}

func TestKind(t *testing.T) {
	assert.Equal(t, model.MediaImage, media.Kind("image/webp"))
	assert.Equal(t, model.MediaGIF, media.Kind("image/gif"))
	assert.Equal(t, model.MediaAudio, media.Kind("audio/wav"))
	assert.Equal(t, model.MediaVideo, media.Kind("video/webm"))

	// Unmapped types classify as a generic file.
	assert.Equal(t, model.MediaFile, media.Kind("application/zip"))
}

func TestValidate(t *testing.T) {
	assert.NoError(t, media.Validate("cat.webp", "image/webp", 1024))

	err := media.Validate("notes.txt", "text/plain", 1024)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "notes.txt")
	assert.Contains(t, err.Error(), "not allowed")

	err = media.Validate("huge.jpg", "image/jpeg", 12*1024*1024)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "huge.jpg")
	assert.Contains(t, err.Error(), "10 MiB")
}

func TestNewItem(t *testing.T) {
	item := media.NewItem("cat.webp", "image/webp", 2048, "/media/xyz.webp")

	assert.NotEmpty(t, item.ID)
	assert.Equal(t, model.MediaImage, item.Type)
	assert.Equal(t, "/media/xyz.webp", item.URL)
	assert.Equal(t, "cat.webp", item.Name)
	assert.EqualValues(t, 2048, item.Size)
	assert.False(t, item.UploadedAt.IsZero())

	other := media.NewItem("cat.webp", "image/webp", 2048, "/media/xyz.webp")
	assert.NotEqual(t, item.ID, other.ID, "ids are never reused")
}
