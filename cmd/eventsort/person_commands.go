package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"eventsort/internal/catalog"
	"eventsort/internal/textutil"
)

func newPersonCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "person",
		Short: "Manage persons",
	}
	cmd.AddCommand(newPersonAddCommand(ctx))
	cmd.AddCommand(newPersonListCommand(ctx))
	cmd.AddCommand(newPersonDeleteCommand(ctx))
	return cmd
}

func newPersonAddCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "add <name>",
		Short: "Add a person",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *catalog.Store) error {
				person, err := store.InsertPerson(cmd.Context(), args[0])
				if err != nil {
					return rejection(err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Person #%d %s added\n", person.ID, textutil.DisplayName(person.Name))
				return nil
			})
		},
	}
}

func newPersonListCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List persons",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *catalog.Store) error {
				persons, err := store.ListPersons(cmd.Context())
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, persons)
				}
				if len(persons) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No persons")
					return nil
				}
				rows := make([][]string, 0, len(persons))
				for _, p := range persons {
					rows = append(rows, []string{strconv.FormatInt(p.ID, 10), textutil.DisplayName(p.Name)})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"ID", "Name"}, rows))
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

func newPersonDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a person with no participants or artists",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "person")
			if err != nil {
				return err
			}
			return ctx.withStore(func(store *catalog.Store) error {
				if err := store.DeletePerson(cmd.Context(), id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Person #%d deleted\n", id)
				return nil
			})
		},
	}
}
