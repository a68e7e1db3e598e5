package cli

import (
	"context"
	"os"
)

// getSimpleText and getSecret are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getSecret = GetSecret

// Register prompts for an email and password and creates a new account.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getSecret("Enter password", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.auth.Register(ctx, email, password); err != nil {
		a.reportErr(ctx, err)
		return err
	}
	printlnFn("Registered! You can login now.")
	return nil
}

// Login runs the login handshake. When the account requires a one-time
// code the first step yields no token and the user is prompted for the
// code before the session is established.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getSecret("Enter password", os.Stdout)
	if err != nil {
		return err
	}

	outcome, err := a.auth.Login(ctx, email, password)
	if err != nil {
		a.reportErr(ctx, err)
		return err
	}

	if outcome.RequireTOTP {
		code, err := getSimpleText(a.reader, "Enter one-time code", os.Stdout)
		if err != nil {
			return err
		}
		outcome, err = a.auth.CompleteTOTPLogin(ctx, email, code)
		if err != nil {
			a.reportErr(ctx, err)
			return err
		}
	}

	a.email = email
	a.loggedIn = true
	printlnFn("Logged in as", email)
	return nil
}

// Logout ends the server session and drops the cached one.
func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		a.reportErr(ctx, err)
	}
	a.email = ""
	a.loggedIn = false
	a.lastResult = nil
	printlnFn("Logged out.")
	return nil
}

// WhoAmI fetches and prints the account profile.
func (a *App) WhoAmI(ctx context.Context) error {
	user, err := a.auth.Profile(ctx)
	if err != nil {
		a.reportErr(ctx, err)
		return err
	}
	printlnFn("Email:", user.Email)
	printlnFn("Username:", user.Username)
	printlnFn("Role:", user.Role)
	if user.TOTPEnabled {
		printlnFn("Two-factor: enabled")
	} else {
		printlnFn("Two-factor: disabled")
	}
	return nil
}
