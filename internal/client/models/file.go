package models

import "time"

// FileStatus classifies a shared file by its availability window.
type FileStatus string

const (
	StatusAll     FileStatus = "all"
	StatusActive  FileStatus = "active"
	StatusPending FileStatus = "pending"
	StatusExpired FileStatus = "expired"
)

// FileSummary is one row of the uploaded-files listing.
type FileSummary struct {
	ID         string     `json:"id"`
	FileName   string     `json:"fileName"`
	Status     FileStatus `json:"status"`
	CreatedAt  time.Time  `json:"createdAt"`
	ShareToken string     `json:"shareToken,omitempty"`
}

// StatusCounts are the per-status totals the server computes over the whole
// collection, not just the current page.
type StatusCounts struct {
	Active  int `json:"activeFiles"`
	Pending int `json:"pendingFiles"`
	Expired int `json:"expiredFiles"`
	Deleted int `json:"deletedFiles"`
}

// PageInfo describes the server-side pagination of a listing response.
type PageInfo struct {
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
	TotalFiles  int `json:"totalFiles"`
	Limit       int `json:"limit"`
}

// FileListing is one fetch result: the page of files, the collection-wide
// status counts, and the pagination envelope.
type FileListing struct {
	Files      []FileSummary `json:"files"`
	Summary    StatusCounts  `json:"summary"`
	Pagination PageInfo      `json:"pagination"`
}
