package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/jitensha/sharebox/internal/client/models"
	"github.com/jitensha/sharebox/internal/client/query"
)

// Files opens the uploaded-files dashboard: a sub-loop with filter, sort,
// pagination and delete commands over the remote collection.
func (a *App) Files(ctx context.Context) error {
	ctrl := query.NewController(ctx, query.Default(a.config.PageLimit), a.files.List)
	dash := query.NewDashboard(ctrl, a.auth.Profile, a.files.Delete)

	if err := a.refreshDashboard(ctx, dash); err != nil {
		return err
	}

	for {
		cmd, err := getSimpleText(a.reader,
			"files> filter all|active|pending|expired, sort name|date, page N, limit N, next, prev, delete ID, refresh, back",
			os.Stdout)
		if err != nil {
			return err
		}
		parts := strings.Fields(cmd)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "back", "b":
			return nil

		case "refresh", "r":
			if err := a.refreshDashboard(ctx, dash); err != nil {
				continue
			}

		case "filter":
			if len(parts) < 2 {
				printlnFn("Usage: filter all|active|pending|expired")
				continue
			}
			status := models.FileStatus(parts[1])
			switch status {
			case models.StatusAll, models.StatusActive, models.StatusPending, models.StatusExpired:
				ctrl.SetStatus(status)
				a.renderAfterCommit(ctx, ctrl)
			default:
				printlnFn("Unknown status:", parts[1])
			}

		case "sort":
			if len(parts) < 2 {
				printlnFn("Usage: sort name|date")
				continue
			}
			switch parts[1] {
			case "name":
				ctrl.ToggleSort(query.SortByFileName)
			case "date":
				ctrl.ToggleSort(query.SortByCreatedAt)
			default:
				printlnFn("Unknown sort field:", parts[1])
				continue
			}
			a.renderAfterCommit(ctx, ctrl)

		case "page":
			if len(parts) < 2 {
				printlnFn("Usage: page N")
				continue
			}
			n, err := strconv.Atoi(parts[1])
			if err != nil || n < 1 {
				printlnFn("Page must be a positive number")
				continue
			}
			ctrl.SetPage(n)
			a.renderAfterCommit(ctx, ctrl)

		case "next", "n":
			q, _, _ := ctrl.Snapshot()
			ctrl.SetPage(q.Page + 1)
			a.renderAfterCommit(ctx, ctrl)

		case "prev", "p":
			q, _, _ := ctrl.Snapshot()
			ctrl.SetPage(q.Page - 1)
			a.renderAfterCommit(ctx, ctrl)

		case "limit":
			if len(parts) < 2 {
				printlnFn("Usage: limit N")
				continue
			}
			n, err := strconv.Atoi(parts[1])
			if err != nil || n < 1 {
				printlnFn("Limit must be a positive number")
				continue
			}
			ctrl.SetLimit(n)
			a.renderAfterCommit(ctx, ctrl)

		case "delete", "del":
			if len(parts) < 2 {
				printlnFn("Usage: delete ID")
				continue
			}
			if err := dash.Delete(ctx, parts[1]); err != nil {
				a.reportErr(ctx, err)
				continue
			}
			printlnFn("Deleted.")
			a.renderAfterCommit(ctx, ctrl)

		default:
			printlnFn("Unknown command:", parts[0])
		}
	}
}

func (a *App) refreshDashboard(ctx context.Context, dash *query.Dashboard) error {
	if err := dash.Refresh(ctx); err != nil {
		a.reportErr(ctx, err)
		return err
	}
	_, listing, _ := dash.Ctrl.Snapshot()
	a.renderListing(listing)
	return nil
}

// renderAfterCommit waits for the fetch scheduled by the last commit and
// renders whatever listing is current afterwards.
func (a *App) renderAfterCommit(ctx context.Context, ctrl *query.Controller) {
	ctrl.Wait()
	_, listing, err := ctrl.Snapshot()
	if err != nil {
		a.reportErr(ctx, err)
		return
	}
	a.renderListing(listing)
}

func (a *App) renderListing(listing *models.FileListing) {
	if listing == nil {
		return
	}

	printlnFn(fmt.Sprintf("Active: %d  Pending: %d  Expired: %d",
		listing.Summary.Active, listing.Summary.Pending, listing.Summary.Expired))

	if len(listing.Files) == 0 {
		printlnFn("No files.")
	}
	for _, f := range listing.Files {
		printlnFn(fmt.Sprintf("%-36s  %-10s  %s  %s",
			f.ID, f.Status, f.CreatedAt.Format("2006-01-02 15:04"), f.FileName))
	}

	p := listing.Pagination
	printlnFn(fmt.Sprintf("Page %d/%d (%d files)", p.CurrentPage, p.TotalPages, p.TotalFiles))
}
