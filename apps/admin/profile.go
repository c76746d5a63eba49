package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/pkg/errors"

	"github.com/trezcool/elevate/core"
	"github.com/trezcool/elevate/core/profile"
)

var errInvalidOrdering = errors.New("invalid ordering")

func (cli *commandLine) addProfile(np profile.NewProfile) error {
	ac := profile.AccountCreator{Svc: cli.profileSvc, Validate: cli.validate}
	id, err := ac.CreateAccount(context.Background(), np)
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "profile created: %s\n", id)
	return nil
}

func (cli *commandLine) listProfiles(filter profile.QueryFilter, ordering string) error {
	var orderings []core.DBOrdering
	if ordering != "" {
		ord, ok := core.ParseOrdering(ordering, profile.OrderingFields...)
		if !ok {
			return errors.Wrap(errInvalidOrdering, ordering)
		}
		orderings = append(orderings, ord)
	}

	profiles, err := cli.profileSvc.Query(context.Background(), filter, orderings...)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cli.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tAGE\tSCHOOL\tGRADE\tTHEME\tJOINED")
	for _, p := range profiles {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\t%s\t%s\n",
			p.ID, p.Name, p.Age, p.School, p.Grade, p.Theme, p.JoinedAt.Format("2006-01-02"))
	}
	return w.Flush()
}

func (cli *commandLine) deleteProfile(id string) error {
	ctx := context.Background()
	if _, err := cli.profileSvc.GetByID(ctx, id); err != nil {
		return err
	}
	if err := cli.profileSvc.Delete(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "profile deleted: %s\n", id)
	return nil
}
