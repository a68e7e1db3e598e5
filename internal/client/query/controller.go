package query

import (
	"context"
	"sync"

	"github.com/jitensha/sharebox/internal/client/models"
)

// FetchFunc performs one listing fetch for the given tuple.
type FetchFunc func(ctx context.Context, q Query) (*models.FileListing, error)

// Controller owns the query tuple and the fetch discipline around it.
//
// Every setter replaces exactly one logical aspect of the tuple and commits,
// which schedules one fetch stamped with the commit's generation. When a
// fetch resolves, its result is applied only if its generation still matches
// the latest committed one; stale results are dropped. In-flight requests
// are never aborted, only discarded post-hoc: all calls are idempotent reads.
type Controller struct {
	ctx   context.Context
	fetch FetchFunc

	mu      sync.Mutex
	wg      sync.WaitGroup
	q       Query
	gen     uint64
	listing *models.FileListing
	err     error
}

// NewController returns a controller positioned at the initial tuple.
// No fetch is issued until the first commit (or Refresh).
func NewController(ctx context.Context, initial Query, fetch FetchFunc) *Controller {
	return &Controller{ctx: ctx, fetch: fetch, q: initial}
}

// SetStatus commits a new status filter.
func (c *Controller) SetStatus(s models.FileStatus) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.q.Status = s
	c.commitLocked()
}

// ToggleSort commits a column-header click: clicking the current sort column
// flips the direction, clicking another column selects it and resets the
// direction to that column's default. Both fields change in one commit.
func (c *Controller) ToggleSort(f SortField) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.q.SortBy == f {
		if c.q.SortDir == Ascending {
			c.q.SortDir = Descending
		} else {
			c.q.SortDir = Ascending
		}
	} else {
		c.q.SortBy = f
		c.q.SortDir = DefaultDirection(f)
	}
	c.commitLocked()
}

// SetPage commits a page change. Pages below 1 clamp to 1.
func (c *Controller) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.q.Page = page
	c.commitLocked()
}

// SetLimit commits a page-size change and implicitly returns to page 1, so
// the tuple can never point past the new last page.
func (c *Controller) SetLimit(limit int) {
	if limit < 1 {
		limit = 1
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.q.Limit = limit
	c.q.Page = 1
	c.commitLocked()
}

// Refresh re-issues a fetch for the current tuple without changing it.
func (c *Controller) Refresh() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.commitLocked()
}

// ResetToFirstPage forces page 1 and commits, even when already there.
// Used after a delete: the summary counts and the total-pages boundary can
// only be recomputed by the server.
func (c *Controller) ResetToFirstPage() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.q.Page = 1
	c.commitLocked()
}

// commitLocked stamps the current tuple with a fresh generation and launches
// its fetch. Callers must hold c.mu.
func (c *Controller) commitLocked() {
	c.gen++
	gen, q := c.gen, c.q
	c.wg.Add(1)
	go c.run(gen, q)
}

func (c *Controller) run(gen uint64, q Query) {
	defer c.wg.Done()
	listing, err := c.fetch(c.ctx, q)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		// A later commit superseded this fetch; its result must not be shown.
		return
	}
	c.listing, c.err = listing, err
}

// Wait blocks until all scheduled fetches have resolved (applied or
// discarded).
func (c *Controller) Wait() {
	c.wg.Wait()
}

// Snapshot returns the current tuple together with the listing and error of
// the latest applied fetch. The listing may be nil before the first fetch
// resolves.
func (c *Controller) Snapshot() (Query, *models.FileListing, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.q, c.listing, c.err
}
