package onboarding

import (
	"context"

	"github.com/trezcool/elevate/core"
	"github.com/trezcool/elevate/core/profile"
)

type (
	// AccountCreator creates the account of a finished draft and returns its user id.
	AccountCreator interface {
		CreateAccount(ctx context.Context, np profile.NewProfile) (string, error)
	}

	// SessionWriter remembers that onboarding is complete, along with the created profile.
	SessionWriter interface {
		SaveOnboarded(ctx context.Context, p profile.Profile) error
	}

	// ThemeListener previews the theme picked by the user.
	ThemeListener interface {
		SetTheme(th profile.Theme)
	}

	// SessionContext carries the collaborators of a Wizard.
	// Accounts and Sessions are required to submit; Theme and Logger are optional.
	SessionContext struct {
		Accounts AccountCreator
		Sessions SessionWriter
		Theme    ThemeListener
		Logger   core.Logger
	}
)
