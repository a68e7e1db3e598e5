// Package api is the transport boundary of the sharebox client: an
// HTTP/JSON client for the file-sharing service. It executes requests,
// injects the bearer token, and maps failures onto sentinel errors and
// TransportError; it knows nothing about policies or view state.
package api

import (
	"context"
	"io"

	"github.com/jitensha/sharebox/internal/client/models"
	"github.com/jitensha/sharebox/internal/client/query"
)

// LoginResult is the outcome of the first login step. When the account has
// a one-time-code requirement the server answers with RequireTOTP instead
// of a token, and the caller must follow up with LoginTOTP.
type LoginResult struct {
	RequireTOTP bool         `json:"requireTOTP"`
	AccessToken string       `json:"accessToken"`
	User        *models.User `json:"user"`
	Message     string       `json:"message"`
}

// Client is the remote surface the rest of the client builds on.
// All methods honor context cancellation.
type Client interface {
	Register(ctx context.Context, email, password string) error
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	LoginTOTP(ctx context.Context, email, code string) (*LoginResult, error)
	Logout(ctx context.Context) error

	Profile(ctx context.Context) (*models.User, error)
	ListFiles(ctx context.Context, q query.Query) (*models.FileListing, error)
	DeleteFile(ctx context.Context, id string) error

	// Upload posts a prepared multipart body and returns the raw response
	// payload; reconciliation into a ShareResult happens elsewhere.
	Upload(ctx context.Context, contentType string, body io.Reader) ([]byte, error)

	ChangePassword(ctx context.Context, oldPassword, totpCode, newPassword string) error
	SetupTOTP(ctx context.Context) (*models.TOTPSetup, error)
	VerifyTOTP(ctx context.Context, code string) error
	DisableTOTP(ctx context.Context, code string) error

	// SetToken installs a bearer token, e.g. one restored from the local
	// session cache. Token returns the currently installed one.
	SetToken(token string)
	Token() string
}
