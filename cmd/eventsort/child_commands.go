package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"eventsort/internal/catalog"
	"eventsort/internal/textutil"
)

func newSubeventCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "subevent",
		Short: "Manage subevents inside an event",
	}
	cmd.AddCommand(newSubeventAddCommand(ctx))
	cmd.AddCommand(newSubeventListCommand(ctx))
	cmd.AddCommand(newChildDeleteCommand(ctx, "subevent", func(store *catalog.Store, cmd *cobra.Command, id int64) error {
		return store.DeleteSubevent(cmd.Context(), id)
	}))
	return cmd
}

func newSubeventAddCommand(ctx *commandContext) *cobra.Command {
	var bounds boundsFlags
	cmd := &cobra.Command{
		Use:   "add <event-id> <title>",
		Short: "Add a subevent",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			eventID, err := parseID(args[0], "event")
			if err != nil {
				return err
			}
			iv, err := parseBounds(bounds.start, bounds.end)
			if err != nil {
				return err
			}
			return ctx.withStore(func(store *catalog.Store) error {
				sub, err := store.InsertSubevent(cmd.Context(), eventID, args[1], iv)
				if err != nil {
					return rejection(err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Subevent #%d %s added to event #%d\n", sub.ID, sub.Title, eventID)
				return nil
			})
		},
	}
	bounds.register(cmd)
	return cmd
}

func newSubeventListCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "list <event-id>",
		Short: "List the subevents of an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eventID, err := parseID(args[0], "event")
			if err != nil {
				return err
			}
			return ctx.withStore(func(store *catalog.Store) error {
				subs, err := store.ListSubevents(cmd.Context(), eventID)
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, subs)
				}
				rows := make([][]string, 0, len(subs))
				for _, sub := range subs {
					start, end := formatInterval(sub.Interval)
					rows = append(rows, []string{strconv.FormatInt(sub.ID, 10), sub.Title, start, end})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"ID", "Title", "Start", "End"}, rows))
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

func newParticipantCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "participant",
		Short: "Manage event participants",
	}
	cmd.AddCommand(newParticipantAddCommand(ctx))
	cmd.AddCommand(newParticipantListCommand(ctx))
	cmd.AddCommand(newChildDeleteCommand(ctx, "participant", func(store *catalog.Store, cmd *cobra.Command, id int64) error {
		return store.DeleteParticipant(cmd.Context(), id)
	}))
	return cmd
}

func newParticipantAddCommand(ctx *commandContext) *cobra.Command {
	var bounds boundsFlags
	cmd := &cobra.Command{
		Use:   "add <event-id> <person>",
		Short: "Add a participant; unknown persons are created",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			eventID, err := parseID(args[0], "event")
			if err != nil {
				return err
			}
			iv, err := parseBounds(bounds.start, bounds.end)
			if err != nil {
				return err
			}
			return ctx.withStore(func(store *catalog.Store) error {
				p, err := store.AddParticipant(cmd.Context(), args[1], eventID, iv)
				if err != nil {
					return rejection(err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Participant #%d %s added to event #%d\n",
					p.ID, textutil.DisplayName(p.PersonName), eventID)
				return nil
			})
		},
	}
	bounds.register(cmd)
	return cmd
}

func newParticipantListCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "list <event-id>",
		Short: "List the participants of an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eventID, err := parseID(args[0], "event")
			if err != nil {
				return err
			}
			return ctx.withStore(func(store *catalog.Store) error {
				parts, err := store.ListParticipants(cmd.Context(), eventID)
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, parts)
				}
				rows := make([][]string, 0, len(parts))
				for _, p := range parts {
					start, end := formatInterval(p.Interval)
					rows = append(rows, []string{strconv.FormatInt(p.ID, 10), textutil.DisplayName(p.PersonName), start, end})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"ID", "Person", "Start", "End"}, rows))
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

func newChildDeleteCommand(ctx *commandContext, entity string, del func(*catalog.Store, *cobra.Command, int64) error) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a " + entity,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], entity)
			if err != nil {
				return err
			}
			return ctx.withStore(func(store *catalog.Store) error {
				if err := del(store, cmd, id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s #%d deleted\n", textutil.DisplayName(entity), id)
				return nil
			})
		},
	}
}
