package cli

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jitensha/sharebox/internal/client/api"
	"github.com/jitensha/sharebox/internal/client/models"
	"github.com/jitensha/sharebox/internal/client/services"
)

func TestRegister(t *testing.T) {
	lines := capturePrintln(t)
	stubTextInputs(t, "a@b.co")
	stubSecrets(t, "secret1")

	auth := &fakeAuth{}
	a := &App{auth: auth}

	require.NoError(t, a.Register(context.Background()))
	assert.Equal(t, "a@b.co", auth.registeredEmail)
	assert.Contains(t, output(lines), "Registered")
}

func TestLogin(t *testing.T) {
	t.Run("plain login", func(t *testing.T) {
		lines := capturePrintln(t)
		stubTextInputs(t, "a@b.co")
		stubSecrets(t, "secret1")

		auth := &fakeAuth{}
		a := &App{auth: auth}

		require.NoError(t, a.Login(context.Background()))
		assert.True(t, a.loggedIn)
		assert.Equal(t, "a@b.co", a.email)
		assert.Equal(t, []string{"Login"}, auth.calls)
		assert.Contains(t, output(lines), "Logged in as a@b.co")
	})

	t.Run("second factor required", func(t *testing.T) {
		capturePrintln(t)
		stubTextInputs(t, "a@b.co", "123456")
		stubSecrets(t, "secret1")

		auth := &fakeAuth{loginOutcome: &services.LoginOutcome{RequireTOTP: true}}
		a := &App{auth: auth}

		require.NoError(t, a.Login(context.Background()))
		assert.True(t, a.loggedIn)
		assert.Equal(t, []string{"Login", "CompleteTOTPLogin"}, auth.calls)
	})

	t.Run("wrong code leaves user logged out", func(t *testing.T) {
		capturePrintln(t)
		stubTextInputs(t, "a@b.co", "000000")
		stubSecrets(t, "secret1")

		auth := &fakeAuth{
			loginOutcome: &services.LoginOutcome{RequireTOTP: true},
			totpErr:      errors.New("invalid code"),
		}
		a := &App{auth: auth}

		assert.Error(t, a.Login(context.Background()))
		assert.False(t, a.loggedIn)
	})

	t.Run("failed login reports once", func(t *testing.T) {
		lines := capturePrintln(t)
		stubTextInputs(t, "a@b.co")
		stubSecrets(t, "wrong")

		auth := &fakeAuth{loginErr: errors.New("invalid credentials")}
		a := &App{auth: auth}

		assert.Error(t, a.Login(context.Background()))
		assert.False(t, a.loggedIn)
		assert.Contains(t, output(lines), "Error: invalid credentials")
	})
}

func TestLogout_ClearsStateEvenOnError(t *testing.T) {
	lines := capturePrintln(t)

	auth := &fakeAuth{logoutErr: errors.New("server down")}
	a := &App{auth: auth, email: "a@b.co", loggedIn: true, lastResult: &models.ShareResult{}}

	require.NoError(t, a.Logout(context.Background()))
	assert.False(t, a.loggedIn)
	assert.Empty(t, a.email)
	assert.Nil(t, a.lastResult)
	assert.Contains(t, output(lines), "Logged out.")
}

func TestWhoAmI(t *testing.T) {
	lines := capturePrintln(t)

	auth := &fakeAuth{profileUser: &models.User{
		Email:       "a@b.co",
		Username:    "alice",
		Role:        "user",
		TOTPEnabled: true,
	}}
	a := &App{auth: auth}

	require.NoError(t, a.WhoAmI(context.Background()))
	out := output(lines)
	assert.Contains(t, out, "Email: a@b.co")
	assert.Contains(t, out, "Username: alice")
	assert.Contains(t, out, "Two-factor: enabled")
}

func TestReportErr_AuthExpiredDropsSession(t *testing.T) {
	lines := capturePrintln(t)

	a := &App{email: "a@b.co", loggedIn: true}
	a.reportErr(context.Background(), fmt.Errorf("%w: token expired", api.ErrAuthExpired))

	assert.False(t, a.loggedIn)
	assert.Empty(t, a.email)
	assert.Contains(t, output(lines), "Session expired, please login again.")
}

func TestReportErr_OtherErrorsKeepSession(t *testing.T) {
	lines := capturePrintln(t)

	a := &App{email: "a@b.co", loggedIn: true}
	a.reportErr(context.Background(), errors.New("quota exceeded"))

	assert.True(t, a.loggedIn)
	assert.Contains(t, output(lines), "Error: quota exceeded")
}
