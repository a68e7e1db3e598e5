package query

import (
	"context"
	"fmt"
	"sync"

	"github.com/jitensha/sharebox/internal/client/models"
)

// ProfileFunc fetches the account profile.
type ProfileFunc func(ctx context.Context) (*models.User, error)

// DeleteFunc removes one uploaded file by id.
type DeleteFunc func(ctx context.Context, id string) error

// PartialFetchError reports a composite refresh where at least one of the
// two sub-fetches failed. Callers must surface the failed half distinctly
// instead of silently rendering the surviving one.
type PartialFetchError struct {
	ProfileErr error
	ListingErr error
}

func (e *PartialFetchError) Error() string {
	switch {
	case e.ProfileErr != nil && e.ListingErr != nil:
		return fmt.Sprintf("profile fetch failed: %v; listing fetch failed: %v", e.ProfileErr, e.ListingErr)
	case e.ProfileErr != nil:
		return fmt.Sprintf("profile fetch failed: %v", e.ProfileErr)
	default:
		return fmt.Sprintf("listing fetch failed: %v", e.ListingErr)
	}
}

// Unwrap exposes the underlying errors to errors.Is/errors.As.
func (e *PartialFetchError) Unwrap() []error {
	var errs []error
	if e.ProfileErr != nil {
		errs = append(errs, e.ProfileErr)
	}
	if e.ListingErr != nil {
		errs = append(errs, e.ListingErr)
	}
	return errs
}

// Dashboard is the composite view state of the files screen: the account
// profile and the file collection, each owned by its own sub-fetch and
// reconciled here.
type Dashboard struct {
	Ctrl *Controller

	profileFn ProfileFunc
	deleteFn  DeleteFunc

	mu   sync.Mutex
	user *models.User
}

// NewDashboard wires a dashboard around an existing controller.
func NewDashboard(ctrl *Controller, profile ProfileFunc, del DeleteFunc) *Dashboard {
	return &Dashboard{Ctrl: ctrl, profileFn: profile, deleteFn: del}
}

// Refresh runs the profile and listing sub-fetches independently and waits
// for both. A failure of either half is reported as *PartialFetchError;
// the surviving half is still applied.
func (d *Dashboard) Refresh(ctx context.Context) error {
	d.Ctrl.Refresh()

	user, profileErr := d.profileFn(ctx)
	if profileErr == nil {
		d.mu.Lock()
		d.user = user
		d.mu.Unlock()
	}

	d.Ctrl.Wait()
	_, _, listingErr := d.Ctrl.Snapshot()

	if profileErr != nil || listingErr != nil {
		return &PartialFetchError{ProfileErr: profileErr, ListingErr: listingErr}
	}
	return nil
}

// Delete removes a file and, on success, forces the listing back to page 1
// with exactly one refetch. The local page is never spliced: only the server
// can recompute the summary counts and the total-pages boundary.
func (d *Dashboard) Delete(ctx context.Context, id string) error {
	if err := d.deleteFn(ctx, id); err != nil {
		return err
	}
	d.Ctrl.ResetToFirstPage()
	return nil
}

// User returns the most recently fetched profile, or nil before the first
// successful profile fetch.
func (d *Dashboard) User() *models.User {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.user
}
