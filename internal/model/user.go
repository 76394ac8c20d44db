package model

// A User represents a database record.
type User struct {
	Base `msgpack:",inline" storm:"inline"`

	Email string `json:"email"          msgpack:"email" storm:"unique"`
	Name  string `json:"name,omitempty" msgpack:"name"`
	// Argon2 hash, never rendered.
	Password string `json:"-" msgpack:"password"`

	PasswordUpdatedAt int64 `json:"-" msgpack:"password_updated_at"`
}
