package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/jitensha/sharebox/internal/client/models"
	"github.com/jitensha/sharebox/internal/client/policy"
	"github.com/jitensha/sharebox/internal/client/query"
	"github.com/jitensha/sharebox/internal/client/services"
	"github.com/jitensha/sharebox/internal/client/store"
)

// capturePrintln routes printlnFn into a line buffer for assertions.
func capturePrintln(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(args ...any) (int, error) {
		lines = append(lines, fmt.Sprintln(args...))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

// stubTextInputs feeds getSimpleText from a queue, one answer per prompt.
func stubTextInputs(t *testing.T, answers ...string) {
	t.Helper()
	orig := getSimpleText
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if len(answers) == 0 {
			return "", io.EOF
		}
		next := answers[0]
		answers = answers[1:]
		return next, nil
	}
	t.Cleanup(func() { getSimpleText = orig })
}

// stubSecrets feeds getSecret from a queue.
func stubSecrets(t *testing.T, answers ...string) {
	t.Helper()
	orig := getSecret
	getSecret = func(_ string, _ io.Writer) (string, error) {
		if len(answers) == 0 {
			return "", io.EOF
		}
		next := answers[0]
		answers = answers[1:]
		return next, nil
	}
	t.Cleanup(func() { getSecret = orig })
}

func output(lines *[]string) string {
	return strings.Join(*lines, "")
}

type fakeAuth struct {
	loginOutcome    *services.LoginOutcome
	loginErr        error
	totpOutcome     *services.LoginOutcome
	totpErr         error
	logoutErr       error
	profileUser     *models.User
	profileErr      error
	changeIn        services.ChangePasswordInput
	changeErr       error
	setup           *models.TOTPSetup
	setupErr        error
	verifyErr       error
	disabledUser    *models.User
	disableErr      error
	registeredEmail string

	calls []string
}

func (f *fakeAuth) Register(_ context.Context, email, password string) error {
	f.calls = append(f.calls, "Register")
	f.registeredEmail = email
	return nil
}

func (f *fakeAuth) Login(_ context.Context, email, password string) (*services.LoginOutcome, error) {
	f.calls = append(f.calls, "Login")
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	if f.loginOutcome != nil {
		return f.loginOutcome, nil
	}
	return &services.LoginOutcome{User: &models.User{Email: email}}, nil
}

func (f *fakeAuth) CompleteTOTPLogin(_ context.Context, email, code string) (*services.LoginOutcome, error) {
	f.calls = append(f.calls, "CompleteTOTPLogin")
	if f.totpErr != nil {
		return nil, f.totpErr
	}
	if f.totpOutcome != nil {
		return f.totpOutcome, nil
	}
	return &services.LoginOutcome{User: &models.User{Email: email}}, nil
}

func (f *fakeAuth) Logout(_ context.Context) error {
	f.calls = append(f.calls, "Logout")
	return f.logoutErr
}

func (f *fakeAuth) RestoreSession(_ context.Context) (string, bool, error) {
	f.calls = append(f.calls, "RestoreSession")
	return "", false, nil
}

func (f *fakeAuth) Profile(_ context.Context) (*models.User, error) {
	f.calls = append(f.calls, "Profile")
	return f.profileUser, f.profileErr
}

func (f *fakeAuth) ChangePassword(_ context.Context, in services.ChangePasswordInput) error {
	f.calls = append(f.calls, "ChangePassword")
	f.changeIn = in
	return f.changeErr
}

func (f *fakeAuth) SetupTOTP(_ context.Context) (*models.TOTPSetup, error) {
	f.calls = append(f.calls, "SetupTOTP")
	return f.setup, f.setupErr
}

func (f *fakeAuth) VerifyTOTP(_ context.Context, code string) error {
	f.calls = append(f.calls, "VerifyTOTP")
	return f.verifyErr
}

func (f *fakeAuth) DisableTOTP(_ context.Context, code string) (*models.User, error) {
	f.calls = append(f.calls, "DisableTOTP")
	return f.disabledUser, f.disableErr
}

type fakeFiles struct {
	uploadResult *models.ShareResult
	uploadErr    error
	uploadPolicy *policy.Policy
	uploadPath   string
	listing      *models.FileListing
	listErr      error
	lastQuery    query.Query
	deleteErr    error
	deletedIDs   []string
	history      []store.HistoryEntry
	historyErr   error
}

func (f *fakeFiles) Upload(_ context.Context, p *policy.Policy, filePath string) (*models.ShareResult, error) {
	f.uploadPolicy, f.uploadPath = p, filePath
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	if f.uploadResult != nil {
		return f.uploadResult, nil
	}
	return &models.ShareResult{ResourceID: "f1", Success: true}, nil
}

func (f *fakeFiles) List(_ context.Context, q query.Query) (*models.FileListing, error) {
	f.lastQuery = q
	if f.listErr != nil {
		return nil, f.listErr
	}
	if f.listing != nil {
		return f.listing, nil
	}
	return &models.FileListing{
		Pagination: models.PageInfo{CurrentPage: q.Page, TotalPages: 1, Limit: q.Limit},
	}, nil
}

func (f *fakeFiles) Delete(_ context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletedIDs = append(f.deletedIDs, id)
	return nil
}

func (f *fakeFiles) History(_ context.Context, limit int) ([]store.HistoryEntry, error) {
	return f.history, f.historyErr
}
