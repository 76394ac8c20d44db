// Package vault stores uploaded file bytes on the local filesystem and hands
// back an opaque handle. It backs the "store a file, get back a handle"
// upload contract; notes only ever reference handles, never paths.
package vault

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/uuid"
	"github.com/pkg/errors"
)

// ErrInvalidHandle is returned for handles that do not designate a vault entry.
var ErrInvalidHandle = errors.New("invalid vault handle")

// A Vault is a flat directory of uploaded files keyed by handle.
type Vault struct {
	root string
}

// New returns a Vault rooted at the given directory, creating it if needed.
func New(root string) (*Vault, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, errors.Wrap(err, "could not create vault directory")
	}
	return &Vault{root: root}, nil
}

// Store writes the content to the vault and returns its handle.
// The extension is kept so HTTP file servers can infer the content type.
func (v *Vault) Store(r io.Reader, ext string) (string, error) {
	handle := uuid.Must(uuid.NewV4()).String() + ext

	f, err := os.Create(filepath.Join(v.root, handle))
	if err != nil {
		return "", errors.Wrap(err, "could not create vault entry")
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(f.Name())
		return "", errors.Wrap(err, "could not write vault entry")
	}
	return handle, nil
}

// Open streams back the content for the given handle.
func (v *Vault) Open(handle string) (io.ReadCloser, error) {
	path, err := v.path(handle)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, ErrInvalidHandle
	}
	return f, errors.Wrap(err, "could not open vault entry")
}

// Remove deletes the content for the given handle.
func (v *Vault) Remove(handle string) error {
	path, err := v.path(handle)
	if err != nil {
		return err
	}
	return errors.Wrap(os.Remove(path), "could not remove vault entry")
}

// path rejects handles that could escape the vault directory.
func (v *Vault) path(handle string) (string, error) {
	if handle == "" || handle != filepath.Base(handle) || strings.HasPrefix(handle, ".") {
		return "", ErrInvalidHandle
	}
	return filepath.Join(v.root, handle), nil
}
