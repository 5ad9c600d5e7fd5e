package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/refinemirror/mirror-go/internal/api"
	"github.com/refinemirror/mirror-go/internal/services"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Signup prompts for the signup fields and attempts to create an account.
// On success the session is active and the account details are displayed.
// Validation and server rejections are reported to the user; only I/O
// errors are returned.
func (a *App) Signup(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	name, err := getSimpleText(a.reader, "Enter name", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout, "Enter password")
	if err != nil {
		return err
	}
	passwordConfirm, err := getPassword(os.Stdout, "Confirm password")
	if err != nil {
		return err
	}

	info := services.SignupInfo{
		Email:           email,
		Name:            name,
		Password:        password,
		PasswordConfirm: passwordConfirm,
	}

	p, err := a.authService.CreateAccount(ctx, info)
	if err != nil {
		a.reportAuthError(err, msgSignupFailed)
		return nil
	}

	a.userEmail = email
	a.watchProfile(p)
	printlnFn("Signed up!")
	a.printDetails(p)
	return nil
}

// Login prompts for credentials, authenticates, then fetches the account
// details (the original app's post-login fetch) and displays them.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout, "Enter password")
	if err != nil {
		return err
	}

	p, err := a.authService.Login(ctx, services.LoginInfo{Email: email, Password: password})
	if err != nil {
		a.reportAuthError(err, msgLoginFailed)
		return nil
	}

	a.userEmail = email
	a.watchProfile(p)

	if err := p.Fetch(ctx); err != nil {
		a.log.Warn(ctx, "post-login fetch failed", "err", err)
	}
	a.printDetails(p)
	return nil
}

// Logout invalidates the session.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		return err
	}
	a.userEmail = ""
	printlnFn("Logged out")
	return nil
}

// watchProfile announces record replacements, the CLI's stand-in for the
// original app's view re-render hook.
func (a *App) watchProfile(p detailsProfile) {
	p.Subscribe(func() {
		printlnFn("(account details updated)")
	})
}

// reportAuthError maps a failed signup/login outcome to a user-facing
// message. Known server codes get specific texts, unknown ones the generic
// fallback; validation messages are shown as-is.
func (a *App) reportAuthError(err error, generic string) {
	var se *api.ServerError
	switch {
	case errors.Is(err, services.ErrValidation):
		printlnFn(err.Error())
	case errors.As(err, &se):
		if se.Code == "error_user_already_exists" {
			printlnFn(msgUserExists)
		} else {
			printlnFn(generic)
		}
	case errors.Is(err, api.ErrUnavailable):
		printlnFn(msgUnavailable)
	default:
		printlnFn(fmt.Sprintf("%s (%v)", generic, err))
	}
}
