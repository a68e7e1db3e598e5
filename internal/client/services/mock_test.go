package services

import (
	"context"
	"io"

	"github.com/jitensha/sharebox/internal/client/api"
	"github.com/jitensha/sharebox/internal/client/models"
	"github.com/jitensha/sharebox/internal/client/query"
)

// fakeAPI is a hand-rolled api.Client test double. Only the function fields
// a test assigns are exercised; unassigned ones succeed with zero values.
type fakeAPI struct {
	loginFn          func(ctx context.Context, email, password string) (*api.LoginResult, error)
	loginTOTPFn      func(ctx context.Context, email, code string) (*api.LoginResult, error)
	logoutFn         func(ctx context.Context) error
	profileFn        func(ctx context.Context) (*models.User, error)
	uploadFn         func(ctx context.Context, contentType string, body io.Reader) ([]byte, error)
	changePasswordFn func(ctx context.Context, oldPassword, totpCode, newPassword string) error
	disableTOTPFn    func(ctx context.Context, code string) error

	token string
	calls []string
}

func (f *fakeAPI) record(name string) { f.calls = append(f.calls, name) }

func (f *fakeAPI) Register(ctx context.Context, email, password string) error {
	f.record("Register")
	return nil
}

func (f *fakeAPI) Login(ctx context.Context, email, password string) (*api.LoginResult, error) {
	f.record("Login")
	if f.loginFn != nil {
		return f.loginFn(ctx, email, password)
	}
	return &api.LoginResult{AccessToken: "tok"}, nil
}

func (f *fakeAPI) LoginTOTP(ctx context.Context, email, code string) (*api.LoginResult, error) {
	f.record("LoginTOTP")
	if f.loginTOTPFn != nil {
		return f.loginTOTPFn(ctx, email, code)
	}
	return &api.LoginResult{AccessToken: "tok"}, nil
}

func (f *fakeAPI) Logout(ctx context.Context) error {
	f.record("Logout")
	if f.logoutFn != nil {
		return f.logoutFn(ctx)
	}
	return nil
}

func (f *fakeAPI) Profile(ctx context.Context) (*models.User, error) {
	f.record("Profile")
	if f.profileFn != nil {
		return f.profileFn(ctx)
	}
	return &models.User{}, nil
}

func (f *fakeAPI) ListFiles(ctx context.Context, q query.Query) (*models.FileListing, error) {
	f.record("ListFiles")
	return &models.FileListing{}, nil
}

func (f *fakeAPI) DeleteFile(ctx context.Context, id string) error {
	f.record("DeleteFile")
	return nil
}

func (f *fakeAPI) Upload(ctx context.Context, contentType string, body io.Reader) ([]byte, error) {
	f.record("Upload")
	if f.uploadFn != nil {
		return f.uploadFn(ctx, contentType, body)
	}
	return []byte(`{"file": {"id": "f1"}}`), nil
}

func (f *fakeAPI) ChangePassword(ctx context.Context, oldPassword, totpCode, newPassword string) error {
	f.record("ChangePassword")
	if f.changePasswordFn != nil {
		return f.changePasswordFn(ctx, oldPassword, totpCode, newPassword)
	}
	return nil
}

func (f *fakeAPI) SetupTOTP(ctx context.Context) (*models.TOTPSetup, error) {
	f.record("SetupTOTP")
	return &models.TOTPSetup{Secret: "JBSWY3DP"}, nil
}

func (f *fakeAPI) VerifyTOTP(ctx context.Context, code string) error {
	f.record("VerifyTOTP")
	return nil
}

func (f *fakeAPI) DisableTOTP(ctx context.Context, code string) error {
	f.record("DisableTOTP")
	if f.disableTOTPFn != nil {
		return f.disableTOTPFn(ctx, code)
	}
	return nil
}

func (f *fakeAPI) SetToken(token string) { f.token = token }
func (f *fakeAPI) Token() string         { return f.token }

// fakeSessions is an in-memory SessionStore.
type fakeSessions struct {
	token, email string
	saveErr      error
	cleared      bool
}

func (f *fakeSessions) SaveSession(ctx context.Context, token, email string) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.token, f.email = token, email
	return nil
}

func (f *fakeSessions) LoadSession(ctx context.Context) (string, string, error) {
	return f.token, f.email, nil
}

func (f *fakeSessions) ClearSession(ctx context.Context) error {
	f.token, f.email = "", ""
	f.cleared = true
	return nil
}
