// Package cli implements the interactive sharebox client: a REPL over the
// auth and file services, an upload flow that builds an access policy, and
// a dashboard over the uploaded-files collection.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/jitensha/sharebox/internal/client/api"
	"github.com/jitensha/sharebox/internal/client/config"
	"github.com/jitensha/sharebox/internal/client/models"
	"github.com/jitensha/sharebox/internal/client/policy"
	"github.com/jitensha/sharebox/internal/client/services"
	"github.com/jitensha/sharebox/internal/client/store"
	"github.com/jitensha/sharebox/internal/logging"
)

// App holds the wiring and the per-session view state of the CLI.
type App struct {
	config *config.Config
	auth   services.AuthService
	files  services.FileService
	cache  *store.Store
	log    logging.Logger
	reader *bufio.Reader

	email    string
	loggedIn bool

	// draft is the policy of an upload that failed; it is offered for reuse
	// on the next attempt and cleared on success.
	draft *policy.Policy

	// lastResult is the outcome of the most recent successful upload. It is
	// replaced on the next submission.
	lastResult *models.ShareResult
}

// NewApp wires the application: local cache, transport client, services.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	cache, err := store.Open(ctx, c.CacheDBPath)
	if err != nil {
		return nil, fmt.Errorf("open local cache: %w", err)
	}

	apiClient := api.NewHTTPClient(c.ServerBaseURL, c.RequestTimeout, logger)

	app := &App{
		config: c,
		auth:   services.NewAuthService(apiClient, cache),
		files:  services.NewFileService(apiClient, cache, policy.DefaultLimits(), logger),
		cache:  cache,
		log:    logger,
		reader: bufio.NewReader(os.Stdin),
	}

	if email, ok, err := app.auth.RestoreSession(ctx); err == nil && ok {
		app.email = email
		app.loggedIn = true
		printlnFn("Restored session for", email)
	}

	return app, nil
}

// Run starts the REPL and blocks until the user exits.
func (a *App) Run(ctx context.Context) {
	defer a.cache.Close()
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.status, scanner)
}

func (a *App) isLoggedIn() bool {
	return a.loggedIn
}

func (a *App) status() string {
	if a.loggedIn {
		return a.email
	}
	return "not logged in"
}

// reportErr prints a failure as exactly one observable outcome. An expired
// session additionally drops the local session and returns the user to the
// login surface.
func (a *App) reportErr(ctx context.Context, err error) {
	if errors.Is(err, api.ErrAuthExpired) {
		a.loggedIn = false
		a.email = ""
		if a.cache != nil {
			_ = a.cache.ClearSession(ctx)
		}
		printlnFn("Session expired, please login again.")
		return
	}
	printlnFn("Error:", err.Error())
}
