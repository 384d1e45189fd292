package cli

import (
	"context"
	"fmt"
)

// getSimpleText, getPassword and getMultiline are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword
var getMultiline = GetMultiline

// Register prompts for a name, email and password and creates an account.
// The user logs in separately afterwards, matching the service flow.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}

	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	if err := a.ctrl.Register(ctx, name, email, password); err != nil {
		fmt.Fprintf(a.out, "Registration failed: %s\n", err)
		return err
	}

	fmt.Fprintln(a.out, "Account created. You can log in now.")
	return nil
}

// Login prompts for credentials, authenticates and prints the restored
// history size so the user knows where they are.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	if err := a.ctrl.Login(ctx, email, password); err != nil {
		fmt.Fprintf(a.out, "Login failed: %s\n", err)
		return err
	}

	if user, ok := a.ctrl.User(); ok {
		fmt.Fprintf(a.out, "Logged in as %s\n", user.Email)
	}
	fmt.Fprintf(a.out, "%d past analyses loaded\n", a.ctrl.History().Len())
	return nil
}

// Logout clears the stored session.
func (a *App) Logout(ctx context.Context) error {
	return a.ctrl.Logout(ctx)
}
