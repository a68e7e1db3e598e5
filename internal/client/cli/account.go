package cli

import (
	"context"
	"os"

	"github.com/jitensha/sharebox/internal/client/services"
)

// ChangePassword collects the guarded password-change command: a new
// password with confirmation plus exactly one secondary factor (old
// password or one-time code). All validation happens locally before any
// request is built; on failure nothing is sent.
func (a *App) ChangePassword(ctx context.Context) error {
	useCode, err := Confirm(a.reader, "Confirm with a one-time code instead of the old password?", os.Stdout)
	if err != nil {
		return err
	}

	in := services.ChangePasswordInput{}
	if useCode {
		in.TOTPCode, err = getSimpleText(a.reader, "Enter one-time code", os.Stdout)
	} else {
		in.OldPassword, err = getSecret("Enter old password", os.Stdout)
	}
	if err != nil {
		return err
	}

	in.NewPassword, err = getSecret("Enter new password (min 6 characters)", os.Stdout)
	if err != nil {
		return err
	}
	in.Confirm, err = getSecret("Repeat new password", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.auth.ChangePassword(ctx, in); err != nil {
		a.reportErr(ctx, err)
		return err
	}
	printlnFn("Password changed.")
	return nil
}

// TwoFactor manages the one-time-code requirement on the account:
// "2fa on" runs setup and verification, "2fa off" disables it.
func (a *App) TwoFactor(ctx context.Context, args []string) error {
	if len(args) == 0 {
		printlnFn("Usage: 2fa on|off")
		return nil
	}

	switch args[0] {
	case "on":
		setup, err := a.auth.SetupTOTP(ctx)
		if err != nil {
			a.reportErr(ctx, err)
			return err
		}
		printlnFn("Secret:", setup.Secret)
		printlnFn("Add it to your authenticator app, then confirm with a code.")

		code, err := getSimpleText(a.reader, "Enter one-time code", os.Stdout)
		if err != nil {
			return err
		}
		if err := a.auth.VerifyTOTP(ctx, code); err != nil {
			a.reportErr(ctx, err)
			return err
		}
		printlnFn("Two-factor enabled.")

	case "off":
		code, err := getSimpleText(a.reader, "Enter one-time code", os.Stdout)
		if err != nil {
			return err
		}
		user, err := a.auth.DisableTOTP(ctx, code)
		if err != nil {
			a.reportErr(ctx, err)
			return err
		}
		if user != nil && !user.TOTPEnabled {
			printlnFn("Two-factor disabled.")
		} else {
			printlnFn("Server did not confirm the change; check your account.")
		}

	default:
		printlnFn("Usage: 2fa on|off")
	}
	return nil
}
