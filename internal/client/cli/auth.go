package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/taskmaster/internal/common"
)

// getSimpleText, getOptionalText and getPassword are indirections used to
// facilitate testing.
var (
	getSimpleText   = GetSimpleText
	getOptionalText = GetOptionalText
	getPassword     = GetPassword
)

// Register prompts for an email and password and creates an account. The
// password buffer is wiped before returning.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	user, err := a.api.Register(ctx, email, password)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Registered %s (id %s)\n", user.Email, user.ID)
	return nil
}

// Login prompts for credentials and keeps the issued token in the API client.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.api.Login(ctx, email, password); err != nil {
		return err
	}

	a.userEmail = email
	fmt.Fprintln(a.out, "Login successful")
	return nil
}

func (a *App) Me(ctx context.Context) error {
	user, err := a.api.Me(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "ID:      %s\nEmail:   %s\nActive:  %t\nCreated: %s\n",
		user.ID, user.Email, user.IsActive, user.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	return nil
}

func (a *App) Logout(_ context.Context) error {
	a.api.Logout()
	a.userEmail = ""
	fmt.Fprintln(a.out, "Logged out")
	return nil
}
