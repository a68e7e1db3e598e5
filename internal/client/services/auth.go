// Package services contains the application services of the sharebox
// client: authentication/account actions and file operations. Services sit
// between the CLI and the transport client and own all local validation, so
// nothing invalid ever reaches the network.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jitensha/sharebox/internal/client/api"
	"github.com/jitensha/sharebox/internal/client/models"
)

const minPasswordLen = 6

var (
	// ErrPasswordMismatch means the new password and its confirmation differ.
	ErrPasswordMismatch = errors.New("new password and confirmation do not match")

	// ErrPasswordTooShort means the new password is under the minimum length.
	ErrPasswordTooShort = fmt.Errorf("new password must be at least %d characters", minPasswordLen)

	// ErrSecondFactorRequired means neither the old password nor a one-time
	// code was supplied.
	ErrSecondFactorRequired = errors.New("provide either the old password or a one-time code")

	// ErrSecondFactorConflict means both secondary factors were supplied;
	// they are mutually exclusive.
	ErrSecondFactorConflict = errors.New("provide the old password or a one-time code, not both")

	// ErrCodeFormat means a one-time code of the wrong length was supplied.
	ErrCodeFormat = errors.New("one-time code must be 6 characters")
)

// SessionStore is the slice of the local cache the auth service needs.
type SessionStore interface {
	SaveSession(ctx context.Context, token, email string) error
	LoadSession(ctx context.Context) (token, email string, err error)
	ClearSession(ctx context.Context) error
}

// LoginOutcome reports how far the login handshake got. When the account
// carries a one-time-code requirement the first step yields RequireTOTP and
// the caller must follow up with CompleteTOTPLogin.
type LoginOutcome struct {
	RequireTOTP bool
	User        *models.User
}

// ChangePasswordInput is the guarded password-change command. Exactly one
// of OldPassword / TOTPCode must be set.
type ChangePasswordInput struct {
	OldPassword string
	TOTPCode    string
	NewPassword string
	Confirm     string
}

// AuthService covers authentication and account actions.
type AuthService interface {
	Register(ctx context.Context, email, password string) error
	Login(ctx context.Context, email, password string) (*LoginOutcome, error)
	CompleteTOTPLogin(ctx context.Context, email, code string) (*LoginOutcome, error)
	Logout(ctx context.Context) error

	// RestoreSession installs a previously cached session, if one exists
	// and its token has not visibly expired. It returns the cached account
	// email and whether a session was restored.
	RestoreSession(ctx context.Context) (string, bool, error)

	Profile(ctx context.Context) (*models.User, error)
	ChangePassword(ctx context.Context, in ChangePasswordInput) error
	SetupTOTP(ctx context.Context) (*models.TOTPSetup, error)
	VerifyTOTP(ctx context.Context, code string) error
	DisableTOTP(ctx context.Context, code string) (*models.User, error)
}

type authService struct {
	api      api.Client
	sessions SessionStore
}

// NewAuthService binds an AuthService to the transport client and the local
// session cache.
func NewAuthService(apiClient api.Client, sessions SessionStore) AuthService {
	return &authService{api: apiClient, sessions: sessions}
}

func (a *authService) Register(ctx context.Context, email, password string) error {
	return a.api.Register(ctx, email, password)
}

func (a *authService) Login(ctx context.Context, email, password string) (*LoginOutcome, error) {
	res, err := a.api.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if res.RequireTOTP {
		return &LoginOutcome{RequireTOTP: true}, nil
	}
	if err := a.sessions.SaveSession(ctx, res.AccessToken, email); err != nil {
		return nil, fmt.Errorf("cache session: %w", err)
	}
	return &LoginOutcome{User: res.User}, nil
}

func (a *authService) CompleteTOTPLogin(ctx context.Context, email, code string) (*LoginOutcome, error) {
	if len(code) != 6 {
		return nil, ErrCodeFormat
	}
	res, err := a.api.LoginTOTP(ctx, email, code)
	if err != nil {
		return nil, err
	}
	if err := a.sessions.SaveSession(ctx, res.AccessToken, email); err != nil {
		return nil, fmt.Errorf("cache session: %w", err)
	}
	return &LoginOutcome{User: res.User}, nil
}

func (a *authService) Logout(ctx context.Context) error {
	err := a.api.Logout(ctx)
	if clearErr := a.sessions.ClearSession(ctx); clearErr != nil && err == nil {
		err = clearErr
	}
	return err
}

func (a *authService) RestoreSession(ctx context.Context) (string, bool, error) {
	token, email, err := a.sessions.LoadSession(ctx)
	if err != nil {
		return "", false, err
	}
	if token == "" {
		return "", false, nil
	}
	if tokenExpired(token) {
		_ = a.sessions.ClearSession(ctx)
		return "", false, nil
	}
	a.api.SetToken(token)
	return email, true, nil
}

// tokenExpired decodes the token without verifying its signature, just to
// read the exp claim. Opaque (non-JWT) tokens report false: their lifetime
// is only known to the server, which will answer 401 when they lapse.
func tokenExpired(token string) bool {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return false
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}

func (a *authService) Profile(ctx context.Context) (*models.User, error) {
	return a.api.Profile(ctx)
}

// ChangePassword validates locally, in order: confirmation mismatch, new
// password length, secondary-factor presence. Any failure aborts before a
// request is built.
func (a *authService) ChangePassword(ctx context.Context, in ChangePasswordInput) error {
	if in.NewPassword != in.Confirm {
		return ErrPasswordMismatch
	}
	if len(in.NewPassword) < minPasswordLen {
		return ErrPasswordTooShort
	}
	if in.OldPassword == "" && in.TOTPCode == "" {
		return ErrSecondFactorRequired
	}
	if in.OldPassword != "" && in.TOTPCode != "" {
		return ErrSecondFactorConflict
	}
	return a.api.ChangePassword(ctx, in.OldPassword, in.TOTPCode, in.NewPassword)
}

func (a *authService) SetupTOTP(ctx context.Context) (*models.TOTPSetup, error) {
	return a.api.SetupTOTP(ctx)
}

func (a *authService) VerifyTOTP(ctx context.Context, code string) error {
	if len(code) != 6 {
		return ErrCodeFormat
	}
	return a.api.VerifyTOTP(ctx, code)
}

// DisableTOTP turns the one-time-code requirement off and re-fetches the
// profile so the caller sees the refreshed enabled flag. Failures are never
// retried automatically.
func (a *authService) DisableTOTP(ctx context.Context, code string) (*models.User, error) {
	if len(code) != 6 {
		return nil, ErrCodeFormat
	}
	if err := a.api.DisableTOTP(ctx, code); err != nil {
		return nil, err
	}
	return a.api.Profile(ctx)
}
