package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/refinemirror/mirror-go/internal/datex"
	"github.com/refinemirror/mirror-go/internal/profile"
)

// detailsProfile is the slice of the view-model surface the CLI screens
// need. *profile.UserProfile satisfies it; tests can substitute a stub.
type detailsProfile interface {
	Subscribe(fn profile.Observer) (unsubscribe func())
	Fetch(ctx context.Context) error
	Save(ctx context.Context, upd profile.AccountUpdate) error
	Email() string
	Name() string
	Location() string
	Birthday() time.Time
}

// Show re-fetches the account details and prints them.
func (a *App) Show(ctx context.Context) error {
	p, err := a.session.Profile()
	if err != nil {
		return err
	}
	if err := p.Fetch(ctx); err != nil {
		printlnFn(msgUnavailable)
		return nil
	}
	a.printDetails(p)
	return nil
}

// Edit prompts for the editable fields and saves them. Blank answers keep
// the current name, clear the location, and default the birthday to today,
// matching what the save operation sends. The local record is not updated;
// a following "show" re-fetches the authoritative state.
func (a *App) Edit(ctx context.Context) error {
	p, err := a.session.Profile()
	if err != nil {
		return err
	}

	name, err := getSimpleText(a.reader, fmt.Sprintf("Enter name [%s]", p.Name()), os.Stdout)
	if err != nil {
		return err
	}
	if name == "" {
		name = p.Name()
	}

	location, err := getSimpleText(a.reader, "Enter location", os.Stdout)
	if err != nil {
		return err
	}

	birthdayStr, err := getSimpleText(a.reader, "Enter birthday (YYYY-MM-DD, blank for today)", os.Stdout)
	if err != nil {
		return err
	}

	var birthday time.Time
	if birthdayStr != "" {
		birthday, err = datex.Parse(birthdayStr)
		if err != nil {
			printlnFn("Birthday must look like 1995-08-31")
			return nil
		}
	}

	upd := profile.AccountUpdate{Name: name, Location: location, Birthday: birthday}
	if err := p.Save(ctx, upd); err != nil {
		printlnFn(msgSaveFailed)
		return nil
	}
	printlnFn(msgSaved)
	return nil
}

// printDetails renders the account fields, the CLI analog of the original
// details screen.
func (a *App) printDetails(p detailsProfile) {
	printlnFn("ACCOUNT DETAILS")
	printlnFn("Name:     " + p.Name())
	printlnFn("Location: " + p.Location())
	printlnFn("Birthday: " + datex.Format(p.Birthday()))
}
