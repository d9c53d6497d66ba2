package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"eventsort/internal/catalog"
	"eventsort/internal/textutil"
)

type boundsFlags struct {
	start string
	end   string
}

func (b *boundsFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&b.start, "start", "", "Start (YYYY-MM-DD or YYYY-MM-DD HH:MM[:SS])")
	cmd.Flags().StringVar(&b.end, "end", "", "End; a bare date means the end of that day")
}

func newEventCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "event",
		Short: "Manage events",
	}
	cmd.AddCommand(newEventAddCommand(ctx))
	cmd.AddCommand(newEventUpdateCommand(ctx))
	cmd.AddCommand(newEventListCommand(ctx))
	cmd.AddCommand(newEventShowCommand(ctx))
	cmd.AddCommand(newEventDeleteCommand(ctx))
	return cmd
}

func newEventAddCommand(ctx *commandContext) *cobra.Command {
	var bounds boundsFlags
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			iv, err := parseBounds(bounds.start, bounds.end)
			if err != nil {
				return err
			}
			return ctx.withStore(func(store *catalog.Store) error {
				event, err := store.InsertEvent(cmd.Context(), args[0], iv)
				if err != nil {
					return rejection(err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Event #%d %s added (%s)\n", event.ID, event.Title, event.Interval)
				return nil
			})
		},
	}
	bounds.register(cmd)
	return cmd
}

func newEventUpdateCommand(ctx *commandContext) *cobra.Command {
	var bounds boundsFlags
	var title string
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change an event's title or interval",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "event")
			if err != nil {
				return err
			}
			return ctx.withStore(func(store *catalog.Store) error {
				current, err := store.GetEvent(cmd.Context(), id)
				if err != nil {
					return err
				}
				if cmd.Flags().Changed("title") {
					current.Title = title
				}
				changed, err := parseBounds(bounds.start, bounds.end)
				if err != nil {
					return err
				}
				if !changed.Start.IsZero() {
					current.Interval.Start = changed.Start
				}
				if !changed.End.IsZero() {
					current.Interval.End = changed.End
				}
				event, err := store.UpdateEvent(cmd.Context(), id, current.Title, current.Interval)
				if err != nil {
					return rejection(err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Event #%d %s updated (%s)\n", event.ID, event.Title, event.Interval)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "New title")
	bounds.register(cmd)
	return cmd
}

func newEventListCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List events",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *catalog.Store) error {
				events, err := store.ListEvents(cmd.Context())
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, events)
				}
				if len(events) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No events")
					return nil
				}
				rows := make([][]string, 0, len(events))
				for _, ev := range events {
					start, end := formatInterval(ev.Interval)
					rows = append(rows, []string{strconv.FormatInt(ev.ID, 10), ev.Title, start, end})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"ID", "Title", "Start", "End"}, rows))
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

type eventDetail struct {
	Event        catalog.Event         `json:"event"`
	Subevents    []catalog.Subevent    `json:"subevents"`
	Participants []catalog.Participant `json:"participants"`
}

func newEventShowCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show an event with its subevents and participants",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "event")
			if err != nil {
				return err
			}
			return ctx.withStore(func(store *catalog.Store) error {
				var detail eventDetail
				if detail.Event, err = store.GetEvent(cmd.Context(), id); err != nil {
					return err
				}
				if detail.Subevents, err = store.ListSubevents(cmd.Context(), id); err != nil {
					return err
				}
				if detail.Participants, err = store.ListParticipants(cmd.Context(), id); err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, detail)
				}
				renderEventDetail(cmd, detail)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

func renderEventDetail(cmd *cobra.Command, detail eventDetail) {
	out := cmd.OutOrStdout()
	start, end := formatInterval(detail.Event.Interval)
	fmt.Fprintf(out, "Event #%d: %s\n", detail.Event.ID, detail.Event.Title)
	fmt.Fprintf(out, "  %s → %s\n", start, end)

	if len(detail.Subevents) > 0 {
		rows := make([][]string, 0, len(detail.Subevents))
		for _, sub := range detail.Subevents {
			s, e := formatInterval(sub.Interval)
			rows = append(rows, []string{strconv.FormatInt(sub.ID, 10), sub.Title, s, e})
		}
		fmt.Fprintln(out, "\nSubevents")
		fmt.Fprintln(out, renderTable([]string{"ID", "Title", "Start", "End"}, rows))
	}
	if len(detail.Participants) > 0 {
		rows := make([][]string, 0, len(detail.Participants))
		for _, p := range detail.Participants {
			s, e := formatInterval(p.Interval)
			rows = append(rows, []string{strconv.FormatInt(p.ID, 10), textutil.DisplayName(p.PersonName), s, e})
		}
		fmt.Fprintln(out, "\nParticipants")
		fmt.Fprintln(out, renderTable([]string{"ID", "Person", "Start", "End"}, rows))
	}
}

func newEventDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an event and its subevents and participants",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "event")
			if err != nil {
				return err
			}
			return ctx.withStore(func(store *catalog.Store) error {
				if err := store.DeleteEvent(cmd.Context(), id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Event #%d deleted\n", id)
				return nil
			})
		},
	}
}
