// Package query keeps a remote paginated/filtered/sorted file collection
// consistent with local UI state. Every field change is a commit that
// triggers exactly one fetch; responses arriving for superseded commits are
// discarded, so a slow early fetch can never clobber a fast later one.
package query

import "github.com/jitensha/sharebox/internal/client/models"

// SortField names a server-side sort column.
type SortField string

const (
	SortByCreatedAt SortField = "createdAt"
	SortByFileName  SortField = "fileName"
)

// SortDirection is the server-side sort order.
type SortDirection string

const (
	Ascending  SortDirection = "asc"
	Descending SortDirection = "desc"
)

// DefaultDirection is the direction a freshly selected sort column starts
// with: newest first for dates, alphabetical for names.
func DefaultDirection(f SortField) SortDirection {
	if f == SortByFileName {
		return Ascending
	}
	return Descending
}

// Query is the complete parameter tuple of one listing fetch.
type Query struct {
	Status  models.FileStatus
	SortBy  SortField
	SortDir SortDirection
	Page    int
	Limit   int
}

// Default returns the initial tuple: all statuses, newest first, first page.
func Default(limit int) Query {
	if limit < 1 {
		limit = 20
	}
	return Query{
		Status:  models.StatusAll,
		SortBy:  SortByCreatedAt,
		SortDir: DefaultDirection(SortByCreatedAt),
		Page:    1,
		Limit:   limit,
	}
}
