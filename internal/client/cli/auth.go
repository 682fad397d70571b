package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Sauce1o9/Elementopia-Mobile/internal/client/models"
	"github.com/Sauce1o9/Elementopia-Mobile/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

var errPasswordMismatch = errors.New("passwords do not match")

// Register prompts for the sign-up fields and creates an account. It does
// not log the new user in.
func (a *App) Register(ctx context.Context) error {
	var req models.RegisterRequest
	prompts := []struct {
		label string
		dst   *string
	}{
		{"First name", &req.FirstName},
		{"Last name", &req.LastName},
		{"Email", &req.Email},
		{"Username", &req.Username},
	}
	for _, p := range prompts {
		v, err := getSimpleText(a.reader, p.label, a.out)
		if err != nil {
			return err
		}
		*p.dst = v
	}

	password, err := getPassword("Password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	confirm, err := getPassword("Confirm password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	if string(password) != string(confirm) {
		fmt.Fprintln(a.out, "Passwords do not match.")
		return errPasswordMismatch
	}
	req.Password = string(password)

	role, err := getSimpleText(a.reader, "Role (Student/Teacher, empty for Student)", a.out)
	if err != nil {
		return err
	}
	req.Role = normalizeRole(role)

	user, err := a.authService.Register(ctx, req)
	a.track(err)
	if err != nil {
		a.report(err)
		return err
	}

	fmt.Fprintf(a.out, "Registration successful. You can now log in as %s.\n", user.Username)
	return nil
}

func normalizeRole(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "student":
		return models.RoleStudent
	case "teacher":
		return models.RoleTeacher
	}
	return s
}

// Login prompts for credentials, exchanges them for a token and hands the
// token to the session controller, which persists it before the session
// becomes authenticated.
func (a *App) Login(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	token, err := a.authService.Authenticate(ctx, userName, string(password))
	a.track(err)
	if err != nil {
		a.logger.Info(ctx, "login unsuccessful", "username", userName, "error", err)
		a.report(err)
		return err
	}

	if err := a.session.Login(ctx, token); err != nil {
		a.logger.Error(ctx, "could not persist session", "error", err)
		fmt.Fprintln(a.out, "Error: could not save your session on this device.")
		return err
	}

	a.userName = userName
	a.loadUserName(ctx)
	fmt.Fprintf(a.out, "Welcome, %s!\n", a.userName)
	return nil
}

// loadUserName replaces the prompt name with the server's idea of who we
// are. Failures only get logged.
func (a *App) loadUserName(ctx context.Context) {
	user, err := a.authService.CurrentUser(ctx)
	a.track(err)
	if err != nil {
		a.logger.Warn(ctx, "could not fetch current user", "error", err)
		return
	}
	a.userName = user.Username
}

// Logout ends the session. The session ends even when the local store
// cannot be cleared; that error is reported and returned.
func (a *App) Logout(ctx context.Context) error {
	err := a.session.Logout(ctx)
	a.userName = ""
	if err != nil {
		fmt.Fprintln(a.out, "Logged out, but the saved session could not be fully removed:", err.Error())
		return err
	}
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

func (a *App) Whoami(ctx context.Context) error {
	user, err := a.authService.CurrentUser(ctx)
	a.track(err)
	if err != nil {
		a.report(err)
		return err
	}

	a.userName = user.Username
	fmt.Fprintf(a.out, "ID:       %d\n", user.ID)
	fmt.Fprintf(a.out, "Username: %s\n", user.Username)
	fmt.Fprintf(a.out, "Email:    %s\n", user.Email)
	fmt.Fprintf(a.out, "Role:     %s\n", user.Role)
	return nil
}
