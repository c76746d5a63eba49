package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/elevate/core/profile"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	db         *sql.DB
	profileSvc *profile.Service
	validate   *validator.Validate
	out        io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  migrate COMMAND [ARGS] - run a goose command (up, down, status, ...)")
	fmt.Fprintln(cli.out, "  addprofile -name NAME -age AGE -school SCHOOL -grade GRADE -theme THEME - create a student profile")
	fmt.Fprintln(cli.out, "  listprofiles [-search S] [-grade G] [-school S] [-theme T] [-ordering FIELD|-FIELD] - list student profiles")
	fmt.Fprintln(cli.out, "  deleteprofile -id ID - delete a student profile")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	addProfileCmd := flag.NewFlagSet("addprofile", flag.ContinueOnError)
	addProfileName := addProfileCmd.String("name", "", "The student's name.")
	addProfileAge := addProfileCmd.Int("age", 0, "The student's age.")
	addProfileSchool := addProfileCmd.String("school", "", "The student's school.")
	addProfileGrade := addProfileCmd.String("grade", "", "One of 9th, 10th, 11th, 12th.")
	addProfileTheme := addProfileCmd.String("theme", profile.ThemeLight, "The preferred theme.")

	listProfilesCmd := flag.NewFlagSet("listprofiles", flag.ContinueOnError)
	listProfilesSearch := listProfilesCmd.String("search", "", "Match on name or school.")
	listProfilesGrade := listProfilesCmd.String("grade", "", "Filter by grade.")
	listProfilesSchool := listProfilesCmd.String("school", "", "Filter by school.")
	listProfilesTheme := listProfilesCmd.String("theme", "", "Filter by theme.")
	listProfilesOrdering := listProfilesCmd.String("ordering", "", "Order by a field, prefix with - for descending.")

	deleteProfileCmd := flag.NewFlagSet("deleteprofile", flag.ContinueOnError)
	deleteProfileID := deleteProfileCmd.String("id", "", "The profile's ID.")

	for _, cmd := range []*flag.FlagSet{addProfileCmd, listProfilesCmd, deleteProfileCmd} {
		cmd.SetOutput(cli.out)
	}

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	case "addprofile":
		if err := addProfileCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *addProfileName == "" || *addProfileSchool == "" || *addProfileGrade == "" {
			addProfileCmd.Usage()
			return errHelp
		}
		return cli.addProfile(profile.NewProfile{
			Name:   *addProfileName,
			Age:    *addProfileAge,
			School: *addProfileSchool,
			Grade:  *addProfileGrade,
			Theme:  *addProfileTheme,
		})
	case "listprofiles":
		if err := listProfilesCmd.Parse(args[2:]); err != nil {
			return err
		}
		filter := profile.QueryFilter{
			Search: *listProfilesSearch,
			Grade:  *listProfilesGrade,
			School: *listProfilesSchool,
			Theme:  *listProfilesTheme,
		}
		return cli.listProfiles(filter, *listProfilesOrdering)
	case "deleteprofile":
		if err := deleteProfileCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *deleteProfileID == "" {
			deleteProfileCmd.Usage()
			return errHelp
		}
		return cli.deleteProfile(*deleteProfileID)
	default:
		cli.printUsage()
		return errHelp
	}
}
