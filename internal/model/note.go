package model

import "time"

// A MediaType classifies an attachment into the closed set of supported kinds.
type MediaType string

// Supported media kinds. Anything allowed but unrecognized falls back to MediaFile.
const (
	MediaImage MediaType = "image"
	MediaGIF   MediaType = "gif"
	MediaAudio MediaType = "audio"
	MediaVideo MediaType = "video"
	MediaFile  MediaType = "file"
)

// A MediaItem describes one file attached to a note (metadata and locator,
// not the bytes themselves). It is immutable once created; it can only be
// appended to or removed from a note's media list.
type MediaItem struct {
	ID         string    `json:"id"         msgpack:"id"`
	Type       MediaType `json:"type"       msgpack:"type"`
	URL        string    `json:"url"        msgpack:"url"`
	Name       string    `json:"name"       msgpack:"name"`
	Size       int64     `json:"size"       msgpack:"size"`
	UploadedAt time.Time `json:"uploadedAt" msgpack:"uploaded_at"`
}

// A Note represents a database record and the rendered API response.
//
// (ID, UserID) uniquely identifies a note; UserID is the partition key and is
// never changed after creation. DeletedAt is set if and only if Deleted is true.
type Note struct {
	Base `msgpack:",inline" storm:"inline"`

	UserID    string      `json:"userId"              msgpack:"user_id"    storm:"index"`
	Title     string      `json:"title"               msgpack:"title"`
	Content   string      `json:"content"             msgpack:"content"`
	Media     []MediaItem `json:"media"               msgpack:"media"`
	Deleted   bool        `json:"deleted"             msgpack:"deleted"    storm:"index"`
	DeletedAt *time.Time  `json:"deletedAt,omitempty" msgpack:"deleted_at"`
}
