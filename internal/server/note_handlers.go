package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/mdouchement/quicknotes/internal/model"
	"github.com/mdouchement/quicknotes/internal/qnerror"
	"github.com/mdouchement/quicknotes/internal/store"
	"github.com/pkg/errors"
)

// UntitledNote is the title applied when a note is saved with a blank one.
// The store persists titles verbatim; the default is applied here, at the
// call site.
const UntitledNote = "Untitled Note"

// note contains all note handlers.
type note struct {
	store *store.Store
}

type (
	createNoteParams struct {
		Title   string            `json:"title"`
		Content string            `json:"content"`
		Media   []model.MediaItem `json:"media"`
	}

	updateNoteParams struct {
		Title   *string             `json:"title"`
		Content *string             `json:"content"`
		Media   *[]model.MediaItem  `json:"media"`
	}
)

///// List
////
//

// List renders one page of the user's notes, filtered, searched and sorted.
func (h *note) List(c echo.Context) error {
	opts := store.ListOptions{
		Search: strings.TrimSpace(c.QueryParam("search")),
		Sort:   store.SortOrder(c.QueryParam("sort")),
	}
	opts.Page, _ = strconv.Atoi(c.QueryParam("page"))
	opts.PerPage, _ = strconv.Atoi(c.QueryParam("per_page"))
	opts.IncludeDeleted, _ = strconv.ParseBool(c.QueryParam("include_deleted"))

	page, err := h.store.List(currentUser(c).ID, opts)
	if err != nil {
		return errors.Wrap(err, "could not list notes")
	}

	return c.JSON(http.StatusOK, page)
}

///// Create
////
//

// Create adds a note to the user's partition.
func (h *note) Create(c echo.Context) error {
	var params createNoteParams
	if err := c.Bind(&params); err != nil {
		return c.JSON(http.StatusBadRequest, qnerror.New("Could not get note's params."))
	}

	fields := store.NoteFields{
		Title:   strings.TrimSpace(params.Title),
		Content: strings.TrimSpace(params.Content),
		Media:   params.Media,
	}
	if fields.Title == "" {
		fields.Title = UntitledNote
	}

	note, err := h.store.Add(currentUser(c).ID, fields)
	if err != nil {
		return errors.Wrap(err, "could not create note")
	}

	return c.JSON(http.StatusCreated, note)
}

///// Show
////
//

// Show renders a single note.
func (h *note) Show(c echo.Context) error {
	note, err := h.store.Get(currentUser(c).ID, c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return qnerror.NewWithTagCode(http.StatusNotFound, "not-found", "Note not found.")
		}
		return errors.Wrap(err, "could not get note")
	}

	return c.JSON(http.StatusOK, note)
}

///// Update
////
//

// Update merges the given fields into the note.
func (h *note) Update(c echo.Context) error {
	var params updateNoteParams
	if err := c.Bind(&params); err != nil {
		return c.JSON(http.StatusBadRequest, qnerror.New("Could not get note's params."))
	}

	patch := store.NotePatch{Media: params.Media}
	if params.Title != nil {
		title := strings.TrimSpace(*params.Title)
		if title == "" {
			title = UntitledNote
		}
		patch.Title = &title
	}
	if params.Content != nil {
		content := strings.TrimSpace(*params.Content)
		patch.Content = &content
	}

	note, err := h.store.Update(currentUser(c).ID, c.Param("id"), patch)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return qnerror.NewWithTagCode(http.StatusNotFound, "not-found", "Note not found.")
		}
		return errors.Wrap(err, "could not update note")
	}

	return c.JSON(http.StatusOK, note)
}

///// Delete
////
//

// Delete moves a note to the trash.
func (h *note) Delete(c echo.Context) error {
	ok, err := h.store.Delete(currentUser(c).ID, c.Param("id"))
	if err != nil {
		return errors.Wrap(err, "could not delete note")
	}
	if !ok {
		return qnerror.NewWithTagCode(http.StatusNotFound, "not-found", "Note not found.")
	}

	return c.NoContent(http.StatusNoContent)
}

///// Restore
////
//

// Restore takes a note out of the trash.
func (h *note) Restore(c echo.Context) error {
	ok, err := h.store.Restore(currentUser(c).ID, c.Param("id"))
	if err != nil {
		return errors.Wrap(err, "could not restore note")
	}
	if !ok {
		return qnerror.NewWithTagCode(http.StatusNotFound, "not-found", "Note not found.")
	}

	return c.NoContent(http.StatusNoContent)
}

///// Purge
////
//

// Purge permanently removes a note.
func (h *note) Purge(c echo.Context) error {
	ok, err := h.store.Purge(currentUser(c).ID, c.Param("id"))
	if err != nil {
		return errors.Wrap(err, "could not purge note")
	}
	if !ok {
		return qnerror.NewWithTagCode(http.StatusNotFound, "not-found", "Note not found.")
	}

	return c.NoContent(http.StatusNoContent)
}

///// Trash
////
//

// Trash renders all trashed notes. The client applies its own order.
func (h *note) Trash(c echo.Context) error {
	notes, err := h.store.Trash(currentUser(c).ID)
	if err != nil {
		return errors.Wrap(err, "could not list trash")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"notes": notes,
	})
}
