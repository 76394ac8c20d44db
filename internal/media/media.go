// Package media validates uploaded files and builds MediaItem records.
// It never touches the file bytes; materializing them and producing the
// resource handle is the caller's job.
package media

import (
	"time"

	"github.com/gofrs/uuid"
	"github.com/mdouchement/quicknotes/internal/model"
	"github.com/pkg/errors"
)

// MaxFileSize is the upload limit, in bytes.
const MaxFileSize = 10 * 1024 * 1024

// kinds is the MIME allow-list and its mapping to media kinds.
var kinds = map[string]model.MediaType{
	"image/jpeg": model.MediaImage,
	"image/png":  model.MediaImage,
	"image/webp": model.MediaImage,
	"image/gif":  model.MediaGIF,
	"audio/mpeg": model.MediaAudio,
	"audio/wav":  model.MediaAudio,
	"audio/ogg":  model.MediaAudio,
	"video/mp4":  model.MediaVideo,
	"video/webm": model.MediaVideo,
	"video/ogg":  model.MediaVideo,
}

// TypeAllowed returns true if the declared MIME type is part of the allow-list.
func TypeAllowed(contentType string) bool {
	_, ok := kinds[contentType]
	return ok
}

// SizeValid returns true if the byte length fits the upload limit.
func SizeValid(size int64) bool {
	return size <= MaxFileSize
}

// Kind maps the declared MIME type to a media kind.
// Unmapped types classify as a generic file; callers gate on TypeAllowed
// first so this default is a safety net, not a policy.
func Kind(contentType string) model.MediaType {
	if kind, ok := kinds[contentType]; ok {
		return kind
	}
	return model.MediaFile
}

// Validate reports why a file must be rejected, or nil.
// Rejections are per file so one bad file does not abort a whole batch.
func Validate(name, contentType string, size int64) error {
	if !TypeAllowed(contentType) {
		return errors.Errorf("%s: file type %q is not allowed", name, contentType)
	}
	if !SizeValid(size) {
		return errors.Errorf("%s: file exceeds the %d MiB limit", name, MaxFileSize/1024/1024)
	}
	return nil
}

// NewItem builds the record for an already-materialized resource.
func NewItem(name, contentType string, size int64, url string) model.MediaItem {
	return model.MediaItem{
		ID:         uuid.Must(uuid.NewV4()).String(),
		Type:       Kind(contentType),
		URL:        url,
		Name:       name,
		Size:       size,
		UploadedAt: time.Now().UTC(),
	}
}
