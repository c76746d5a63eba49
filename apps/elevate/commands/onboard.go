package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/trezcool/elevate/core"
	"github.com/trezcool/elevate/core/onboarding"
	"github.com/trezcool/elevate/core/profile"
)

var errAlreadyOnboarded = errors.New("you are already signed up, run `elevate reset` to start over")

func onboardCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "onboard",
		Short: "Create your Elevate profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			done, err := a.store.IsOnboarded(ctx)
			if err != nil {
				return err
			}
			if done {
				return errAlreadyOnboarded
			}

			p := newPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
			validate, translator := core.NewValidator()
			wiz := onboarding.NewWizard(
				&onboarding.SessionContext{
					Accounts: a.accounts,
					Sessions: a.store,
					Theme:    themePreview{p: p},
					Logger:   a.logger,
				},
				onboarding.NewValidator(validate, translator),
			)

			prof, err := runWizard(ctx, wiz, p, a.introDelay(cmd.InOrStdin()))
			if err != nil {
				return err
			}
			p.printf("\nWelcome aboard, %s! Your user id is %s.\n", prof.Name, prof.ID)
			return nil
		},
	}
}

type themePreview struct {
	p *prompter
}

func (tp themePreview) SetTheme(th profile.Theme) {
	tp.p.printf("Previewing %s: %s\n", th.Name, th.Description)
}

// runWizard drives `wiz` until the profile is submitted.
func runWizard(ctx context.Context, wiz *onboarding.Wizard, p *prompter, introDelay time.Duration) (profile.Profile, error) {
	for {
		var err error
		switch wiz.Step() {
		case onboarding.StepIntro:
			err = intro(ctx, wiz, p, introDelay)
		case onboarding.StepIdentity:
			err = askIdentity(wiz, p)
		case onboarding.StepGrade:
			err = askGrade(wiz, p)
		case onboarding.StepTheme:
			err = askTheme(ctx, wiz, p)
		case onboarding.StepSubmitted:
			return *wiz.Snapshot().Profile, nil
		}
		if err != nil {
			return profile.Profile{}, err
		}
	}
}

func intro(ctx context.Context, wiz *onboarding.Wizard, p *prompter, delay time.Duration) error {
	p.println("Welcome to Elevate!")
	p.println("Let's set up your profile. Type < at any prompt to go back.")
	p.println()
	if delay > 0 {
		return wiz.AutoAdvance(ctx, delay)
	}
	_, err := wiz.Advance()
	return err
}

func askIdentity(wiz *onboarding.Wizard, p *prompter) error {
	d := wiz.Draft()
	questions := []struct {
		field, label, current string
	}{
		{field: onboarding.FieldName, label: "What's your name?", current: d.Name},
		{field: onboarding.FieldSchool, label: "Which school do you attend?", current: d.School},
		{field: onboarding.FieldAge, label: "How old are you?", current: d.Age},
	}

	for _, q := range questions {
		for {
			answer, err := p.ask(q.label, q.current)
			if err != nil {
				return err
			}
			if answer == backInput {
				wiz.Retreat()
				return nil
			}
			if err = wiz.SetField(q.field, answer); err == nil {
				break
			}
			if !p.explain(err) {
				return err
			}
		}
	}
	return advance(wiz, p)
}

func askGrade(wiz *onboarding.Wizard, p *prompter) error {
	labels := make([]string, len(profile.Grades))
	for i, g := range profile.Grades {
		labels[i] = g + " grade"
	}

	answer, err := p.choose("Which grade are you in?", wiz.Draft().Grade, labels, profile.Grades)
	if err != nil {
		return err
	}
	if answer == backInput {
		wiz.Retreat()
		return nil
	}
	if err = wiz.SetField(onboarding.FieldGrade, answer); err != nil {
		return err
	}
	return advance(wiz, p)
}

func askTheme(ctx context.Context, wiz *onboarding.Wizard, p *prompter) error {
	labels := make([]string, len(profile.Themes))
	values := make([]string, len(profile.Themes))
	for i, th := range profile.Themes {
		labels[i] = fmt.Sprintf("%s - %s", th.Name, th.Description)
		values[i] = th.Value
	}

	answer, err := p.choose("Pick a theme:", wiz.Draft().Theme, labels, values)
	if err != nil {
		return err
	}
	if answer == backInput {
		wiz.Retreat()
		return nil
	}
	if err = wiz.SetField(onboarding.FieldTheme, answer); err != nil {
		return err
	}
	return submit(ctx, wiz, p)
}

// submit retries failed sign ups as long as the user agrees to.
func submit(ctx context.Context, wiz *onboarding.Wizard, p *prompter) error {
	for {
		_, err := wiz.Submit(ctx)
		switch {
		case err == nil:
			return nil
		case errors.Is(err, onboarding.ErrSubmitFailed):
			p.println(onboarding.SubmitFailedMessage)
			p.explain(err)
			answer, err := p.ask("Retry? [Y/n]", "")
			if err != nil {
				return err
			}
			if strings.EqualFold(answer, "n") {
				return onboarding.ErrSubmitFailed
			}
		case p.explain(err):
			return nil
		default:
			return err
		}
	}
}

func advance(wiz *onboarding.Wizard, p *prompter) error {
	if _, err := wiz.Advance(); err != nil && !p.explain(err) {
		return err
	}
	return nil
}

// explain prints the message of a validation error and reports whether `err` was one.
func (p *prompter) explain(err error) bool {
	var verr *core.ValidationError
	if !errors.As(err, &verr) {
		return false
	}
	p.println(verr.Message())
	return true
}
