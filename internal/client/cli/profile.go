package cli

import (
	"context"
	"fmt"

	"github.com/Sauce1o9/Elementopia-Mobile/internal/client/models"
)

var getWithDefault = GetWithDefault
var confirm = Confirm

func (a *App) printProfile(p models.UserProfile) {
	fmt.Fprintf(a.out, "First name: %s\n", p.FirstName)
	fmt.Fprintf(a.out, "Last name:  %s\n", p.LastName)
	fmt.Fprintf(a.out, "Email:      %s\n", p.Email)
	fmt.Fprintf(a.out, "Username:   %s\n", p.Username)
}

func (a *App) Profile(ctx context.Context) error {
	p, err := a.profileService.FetchUserProfile(ctx)
	a.track(err)
	if err != nil {
		a.report(err)
		return err
	}
	a.printProfile(p)
	return nil
}

// Edit loads the profile into the editor, asks for each field (Enter keeps
// the current value) and saves the whole record on confirmation.
func (a *App) Edit(ctx context.Context) error {
	current, err := a.editor.Load(ctx)
	a.track(err)
	if err != nil {
		a.report(err)
		return err
	}

	fields := []struct {
		label string
		value string
		set   func(*models.UserProfile, string)
	}{
		{"First name", current.FirstName, func(p *models.UserProfile, v string) { p.FirstName = v }},
		{"Last name", current.LastName, func(p *models.UserProfile, v string) { p.LastName = v }},
		{"Email", current.Email, func(p *models.UserProfile, v string) { p.Email = v }},
		{"Username", current.Username, func(p *models.UserProfile, v string) { p.Username = v }},
	}
	for _, f := range fields {
		v, err := getWithDefault(a.reader, f.label, f.value, a.out)
		if err != nil {
			a.editor.Cancel()
			return err
		}
		if err := a.editor.Edit(func(p *models.UserProfile) { f.set(p, v) }); err != nil {
			return err
		}
	}

	if !a.editor.Dirty() {
		fmt.Fprintln(a.out, "No changes.")
		return nil
	}

	a.printProfile(a.editor.Draft())
	ok, err := confirm(a.reader, "Save these changes?", a.out)
	if err != nil || !ok {
		a.editor.Cancel()
		fmt.Fprintln(a.out, "Changes discarded.")
		return err
	}

	updated, err := a.editor.Save(ctx)
	a.track(err)
	if err != nil {
		a.report(err)
		a.editor.Cancel()
		return err
	}

	if a.userName != "" && updated.Username != "" {
		a.userName = updated.Username
	}
	fmt.Fprintln(a.out, "Profile updated successfully!")
	return nil
}
