package commands

import (
	"github.com/spf13/cobra"

	"github.com/trezcool/elevate/core/profile"
)

func whoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the profile created on this machine",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, ok, err := a.store.Profile(cmd.Context())
			if err != nil {
				return err
			}
			pr := newPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
			if !ok {
				pr.println("You haven't signed up yet. Run `elevate onboard` to get started.")
				return nil
			}

			theme := p.Theme
			if th, ok := profile.LookupTheme(p.Theme); ok {
				theme = th.Name
			}
			pr.printf("User ID: %s\n", p.ID)
			pr.printf("Name:    %s\n", p.Name)
			pr.printf("Age:     %d\n", p.Age)
			pr.printf("School:  %s\n", p.School)
			pr.printf("Grade:   %s\n", p.Grade)
			pr.printf("Theme:   %s\n", theme)
			return nil
		},
	}
}
