package store

import (
	"sort"
	"strings"
	"time"

	"github.com/mdouchement/quicknotes/internal/model"
	"github.com/pkg/errors"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// A SortOrder is one of the four total orders supported by List.
type SortOrder string

// Supported sort orders.
const (
	SortNewest    SortOrder = "newest"
	SortOldest    SortOrder = "oldest"
	SortTitleAsc  SortOrder = "title-asc"
	SortTitleDesc SortOrder = "title-desc"
)

// DefaultPerPage is the page size used when the caller does not provide one.
const DefaultPerPage = 6

// ListOptions drives the List query.
// Zero values mean: active notes only, no search, newest first, page 1 with
// DefaultPerPage notes per page.
type ListOptions struct {
	Search         string
	Sort           SortOrder
	IncludeDeleted bool
	Page           int
	PerPage        int
}

// A Page is the result of a List query. Page scalars always reflect the
// effective (clamped) values, not the raw caller input.
type Page struct {
	Notes       []*model.Note `json:"notes"`
	Total       int           `json:"total"`
	Page        int           `json:"page"`
	TotalPages  int           `json:"totalPages"`
	HasNext     bool          `json:"hasNext"`
	HasPrevious bool          `json:"hasPrevious"`
}

// List applies filter, search, sort and pagination to the user's partition.
//
// Trashed notes are dropped unless IncludeDeleted is set. A non-empty search
// term keeps the notes whose title or content contains it, case-insensitively.
// Total counts the notes after filter and search, before pagination. An
// out-of-range page yields an empty slice, not an error, and TotalPages never
// goes below 1 so pagination controls stay coherent on an empty partition.
func (s *Store) List(userID string, opts ListOptions) (*Page, error) {
	notes, err := s.db.FindNotesByUserID(userID)
	if err != nil {
		return nil, errors.Wrap(err, "could not read partition")
	}

	if !opts.IncludeDeleted {
		kept := notes[:0]
		for _, note := range notes {
			if !note.Deleted {
				kept = append(kept, note)
			}
		}
		notes = kept
	}

	if opts.Search != "" {
		term := strings.ToLower(opts.Search)
		kept := notes[:0]
		for _, note := range notes {
			if strings.Contains(strings.ToLower(note.Title), term) ||
				strings.Contains(strings.ToLower(note.Content), term) {
				kept = append(kept, note)
			}
		}
		notes = kept
	}

	sortNotes(notes, opts.Sort)

	page := opts.Page
	if page < 1 {
		page = 1
	}
	perPage := opts.PerPage
	if perPage < 1 {
		if opts.PerPage == 0 {
			perPage = DefaultPerPage
		} else {
			perPage = 1
		}
	}

	total := len(notes)
	totalPages := (total + perPage - 1) / perPage
	if totalPages < 1 {
		totalPages = 1
	}

	start := (page - 1) * perPage
	end := start + perPage
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	paged := notes[start:end]
	for _, note := range paged {
		normalize(note)
	}

	return &Page{
		Notes:       paged,
		Total:       total,
		Page:        page,
		TotalPages:  totalPages,
		HasNext:     page < totalPages,
		HasPrevious: page > 1,
	}, nil
}

// sortNotes orders notes in place. The sort is stable so equal keys keep
// their relative partition order.
func sortNotes(notes []*model.Note, order SortOrder) {
	var less func(i, j int) bool

	switch order {
	case SortOldest:
		less = func(i, j int) bool {
			return updatedAt(notes[i]).Before(updatedAt(notes[j]))
		}
	case SortTitleAsc:
		c := collate.New(language.English)
		less = func(i, j int) bool {
			return c.CompareString(notes[i].Title, notes[j].Title) < 0
		}
	case SortTitleDesc:
		c := collate.New(language.English)
		less = func(i, j int) bool {
			return c.CompareString(notes[j].Title, notes[i].Title) < 0
		}
	case SortNewest:
		fallthrough
	default:
		less = func(i, j int) bool {
			return updatedAt(notes[j]).Before(updatedAt(notes[i]))
		}
	}

	sort.SliceStable(notes, less)
}

func updatedAt(note *model.Note) time.Time {
	if note.UpdatedAt == nil {
		return time.Time{}
	}
	return *note.UpdatedAt
}
