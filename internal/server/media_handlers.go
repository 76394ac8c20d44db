package server

import (
	"mime"
	"net/http"
	"path/filepath"

	"github.com/labstack/echo/v4"
	"github.com/mdouchement/quicknotes/internal/media"
	"github.com/mdouchement/quicknotes/internal/model"
	"github.com/mdouchement/quicknotes/internal/qnerror"
	"github.com/mdouchement/quicknotes/internal/vault"
	"github.com/pkg/errors"
)

// files contains the media upload and download handlers.
type files struct {
	vault *vault.Vault
}

type rejectedFile struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

///// Upload
////
//

// Upload materializes the accepted files into the vault and returns their
// MediaItem records. Rejections are reported per file and do not abort the
// rest of the batch.
func (h *files) Upload(c echo.Context) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.JSON(http.StatusBadRequest, qnerror.New("Could not read multipart form."))
	}

	uploads := form.File["files"]
	if len(uploads) == 0 {
		return c.JSON(http.StatusBadRequest, qnerror.New("No file provided."))
	}

	items := make([]model.MediaItem, 0, len(uploads))
	rejected := make([]rejectedFile, 0)

	for _, upload := range uploads {
		ctype := upload.Header.Get(echo.HeaderContentType)

		if err := media.Validate(upload.Filename, ctype, upload.Size); err != nil {
			rejected = append(rejected, rejectedFile{
				Name:   upload.Filename,
				Reason: err.Error(),
			})
			continue
		}

		src, err := upload.Open()
		if err != nil {
			return errors.Wrap(err, "could not read uploaded file")
		}

		handle, err := h.vault.Store(src, filepath.Ext(upload.Filename))
		src.Close()
		if err != nil {
			return errors.Wrap(err, "could not store uploaded file")
		}

		items = append(items, media.NewItem(upload.Filename, ctype, upload.Size, "/media/"+handle))
	}

	return c.JSON(http.StatusOK, echo.Map{
		"uploaded": items,
		"rejected": rejected,
	})
}

///// Download
////
//

// Download streams back the bytes for the given handle.
func (h *files) Download(c echo.Context) error {
	handle := c.Param("handle")

	content, err := h.vault.Open(handle)
	if err != nil {
		if errors.Is(err, vault.ErrInvalidHandle) {
			return qnerror.NewWithTagCode(http.StatusNotFound, "not-found", "No such media.")
		}
		return errors.Wrap(err, "could not open media")
	}
	defer content.Close()

	ctype := mime.TypeByExtension(filepath.Ext(handle))
	if ctype == "" {
		ctype = echo.MIMEOctetStream
	}

	return c.Stream(http.StatusOK, ctype, content)
}
