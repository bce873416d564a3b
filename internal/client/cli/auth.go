package cli

import (
	"context"
	"fmt"
	"os"

	"socialctl/internal/common"
)

// getSimpleText, getMultiline and getPassword are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var getSimpleText = GetSimpleText
var getMultiline = GetMultiline
var getPassword = GetPassword

// Register prompts for an email, username and password and creates a new
// account. The password byte slice is wiped before returning.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	username, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.api.Register(ctx, email, username, password); err != nil {
		return err
	}

	printlnFn("Account created, you can log in now.")
	return nil
}

// Login prompts for credentials, authenticates and installs the session.
// The password is wiped before returning.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	user, err := a.api.Login(ctx, email, password)
	if err != nil {
		return err
	}
	a.session.Set(ctx, user)
	printlnFn(fmt.Sprintf("Logged in as %s", user.Username))
	return nil
}

// Logout ends the server session and clears the local one. The local state
// and cache are cleared even when the server call fails; the cookie is gone
// either way once it expires.
func (a *App) Logout(ctx context.Context) error {
	err := a.api.Logout(ctx)
	a.session.Clear(ctx)
	if cerr := a.repos.ClearAll(ctx); cerr != nil {
		a.log.Warn(ctx, "local cache clear failed", "error", cerr)
	}
	return err
}

// Whoami prints the current session.
func (a *App) Whoami(ctx context.Context) error {
	sess := a.session.Current()
	if !sess.LoggedIn() {
		printlnFn("Not logged in.")
		return nil
	}
	printlnFn(fmt.Sprintf("%s (%s)", sess.Username, sess.UserID))
	if !sess.ExpiresAt.IsZero() {
		printlnFn("Session expires:", sess.ExpiresAt.Format("2006-01-02 15:04:05"))
	}
	return nil
}
