package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/mastereducationkz/lms-front-sub003/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts the user for an email and password and authenticates via the
// session facade. On success the returned profile becomes the active user.
// The password byte slice is wiped before returning.
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

	user, err := a.session.Login(ctx, email, string(password))
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	a.user = user
	printlnFn(fmt.Sprintf("Logged in as %s (%s)", user.Email, user.Role))
	return nil
}

// Logout runs the canonical logout procedure and forgets the active user.
func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		printlnFn(err.Error())
		return err
	}
	a.user = nil
	printlnFn("Logged out.")
	return nil
}

// Whoami prints the current profile: the cached copy when available, a
// server round trip otherwise.
func (a *App) Whoami(ctx context.Context) error {
	user, err := a.session.CachedUser(ctx)
	if err != nil || user == nil {
		user, err = a.session.CurrentUser(ctx)
		if err != nil {
			printlnFn(err.Error())
			return err
		}
	}
	printlnFn(fmt.Sprintf("%s <%s> role=%s points=%d", user.FullName, user.Email, user.Role, user.Points))
	return nil
}
