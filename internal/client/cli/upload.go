package cli

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/jitensha/sharebox/internal/client/models"
	"github.com/jitensha/sharebox/internal/client/policy"
)

// Upload collects a file path and an access policy, submits the upload, and
// shows the share result. A failed attempt keeps the entered policy as a
// draft so the user can correct and resubmit; success clears it.
func (a *App) Upload(ctx context.Context) error {
	path, err := getSimpleText(a.reader, "Enter file path", os.Stdout)
	if err != nil {
		return err
	}

	p := a.draft
	if p != nil {
		reuse, err := Confirm(a.reader, "Reuse the settings from the previous attempt?", os.Stdout)
		if err != nil {
			return err
		}
		if !reuse {
			p = nil
		}
	}
	if p == nil {
		p, err = a.buildPolicy()
		if err != nil {
			return err
		}
	}

	result, err := a.files.Upload(ctx, p, path)
	if err != nil {
		a.draft = p
		var verrs policy.ValidationErrors
		if errors.As(err, &verrs) {
			for _, v := range verrs {
				printlnFn("-", v.Error())
			}
			return err
		}
		a.reportErr(ctx, err)
		return err
	}

	a.draft = nil
	a.lastResult = result
	a.showResult(result)
	return nil
}

// buildPolicy walks the user through the gate configuration.
func (a *App) buildPolicy() (*policy.Policy, error) {
	p := &policy.Policy{}

	withPassword, err := Confirm(a.reader, "Protect with a password?", os.Stdout)
	if err != nil {
		return nil, err
	}
	if withPassword {
		pw, err := getSecret("Enter share password (min 6 characters)", os.Stdout)
		if err != nil {
			return nil, err
		}
		p.Password = pw
	}

	from, err := a.promptInstant("Available from (RFC3339, empty for now)")
	if err != nil {
		return nil, err
	}
	to, err := a.promptInstant("Available until (RFC3339, empty for no expiry)")
	if err != nil {
		return nil, err
	}
	p.Window = models.TimeWindow{From: from, To: to}

	for {
		raw, err := getSimpleText(a.reader, "Share with (email, empty line to finish)", os.Stdout)
		if err != nil {
			return nil, err
		}
		if raw == "" {
			break
		}
		updated, err := policy.AddRecipient(p.Recipients, raw)
		if err != nil {
			printlnFn(err.Error())
			continue
		}
		p.Recipients = updated
	}

	p.RequireCode, err = Confirm(a.reader, "Require a one-time code to access?", os.Stdout)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (a *App) promptInstant(prompt string) (*time.Time, error) {
	for {
		raw, err := getSimpleText(a.reader, prompt, os.Stdout)
		if err != nil {
			return nil, err
		}
		if raw == "" {
			return nil, nil
		}
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			printlnFn("Not a valid instant, use e.g. 2026-01-02T15:04:05Z")
			continue
		}
		return &t, nil
	}
}

func (a *App) showResult(r *models.ShareResult) {
	printlnFn("Upload successful!")
	if r.DisplayName != "" {
		printlnFn("File:", r.DisplayName)
	}
	if r.ShareLink != "" {
		printlnFn("Share link:", r.ShareLink)
	}
	if r.IsPublic != nil && *r.IsPublic {
		printlnFn("Visibility: public")
	}
	if r.HasPassword != nil && *r.HasPassword {
		printlnFn("Password protected: yes")
	}
	if len(r.Recipients) > 0 {
		printlnFn("Shared with:", len(r.Recipients), "recipient(s)")
	}
	if r.Window.From != nil {
		printlnFn("Available from:", r.Window.From.Format(time.RFC3339))
	}
	if r.Window.To != nil {
		printlnFn("Available until:", r.Window.To.Format(time.RFC3339))
	}
	if r.OneTimeCodeSetup != nil {
		printlnFn("One-time code enabled. Secret:", r.OneTimeCodeSetup.Secret)
		printlnFn("Scan the QR code from your authenticator app, then keep the secret safe.")
	}
	if r.Message != "" {
		printlnFn(r.Message)
	}
}

// History prints the most recent locally recorded uploads.
func (a *App) History(ctx context.Context) error {
	entries, err := a.files.History(ctx, 20)
	if err != nil {
		a.reportErr(ctx, err)
		return err
	}
	if len(entries) == 0 {
		printlnFn("No uploads recorded yet.")
		return nil
	}
	for _, e := range entries {
		printlnFn(e.CreatedAt.Format("2006-01-02 15:04"), e.DisplayName, e.ShareLink)
	}
	return nil
}
