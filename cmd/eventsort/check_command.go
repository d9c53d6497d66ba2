package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"eventsort/internal/catalog"
	"eventsort/internal/validation"
)

type checkResult struct {
	Entity  string          `json:"entity"`
	Code    validation.Code `json:"code"`
	Message string          `json:"message"`
}

func newCheckCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Report the warning a draft would raise without saving it",
	}
	cmd.PersistentFlags().BoolVar(&asJSON, "json", false, "Output as JSON")

	run := func(cmd *cobra.Command, entity string, validate func(context.Context, *validation.Validator) (validation.Code, error)) error {
		return ctx.withStore(func(store *catalog.Store) error {
			code, err := validate(cmd.Context(), validation.New(store))
			if err != nil {
				return err
			}
			result := checkResult{Entity: entity, Code: code, Message: validation.Message(code)}
			if asJSON {
				return writeJSON(cmd, result)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", result.Code, result.Message)
			return nil
		})
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "person <name>",
		Short: "Check a person name",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			draft := validation.PersonDraft{}
			if len(args) == 1 {
				draft.Name = args[0]
			}
			return run(cmd, "person", func(c context.Context, v *validation.Validator) (validation.Code, error) {
				return v.Person(c, draft)
			})
		},
	})

	var eventBounds boundsFlags
	var eventTitle string
	eventCmd := &cobra.Command{
		Use:   "event",
		Short: "Check an event",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			iv, err := parseBounds(eventBounds.start, eventBounds.end)
			if err != nil {
				return err
			}
			draft := validation.EventDraft{Title: eventTitle, Start: iv.Start, End: iv.End}
			return run(cmd, "event", func(c context.Context, v *validation.Validator) (validation.Code, error) {
				return v.Event(c, draft)
			})
		},
	}
	eventCmd.Flags().StringVar(&eventTitle, "title", "", "Event title")
	eventBounds.register(eventCmd)
	cmd.AddCommand(eventCmd)

	var subBounds boundsFlags
	subCmd := &cobra.Command{
		Use:   "subevent <event-id> <title>",
		Short: "Check a subevent against its event and siblings",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			eventID, err := parseID(args[0], "event")
			if err != nil {
				return err
			}
			iv, err := parseBounds(subBounds.start, subBounds.end)
			if err != nil {
				return err
			}
			draft := validation.SubeventDraft{EventID: eventID, Start: iv.Start, End: iv.End}
			if len(args) == 2 {
				draft.Title = args[1]
			}
			return run(cmd, "subevent", func(c context.Context, v *validation.Validator) (validation.Code, error) {
				return v.Subevent(c, draft)
			})
		},
	}
	subBounds.register(subCmd)
	cmd.AddCommand(subCmd)

	var partBounds boundsFlags
	partCmd := &cobra.Command{
		Use:   "participant <event-id> <person>",
		Short: "Check a participant against the event and the person's other attendances",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			eventID, err := parseID(args[0], "event")
			if err != nil {
				return err
			}
			iv, err := parseBounds(partBounds.start, partBounds.end)
			if err != nil {
				return err
			}
			draft := validation.ParticipantDraft{EventID: eventID, Start: iv.Start, End: iv.End}
			if len(args) == 2 {
				draft.PersonName = args[1]
			}
			return run(cmd, "participant", func(c context.Context, v *validation.Validator) (validation.Code, error) {
				return v.Participant(c, draft)
			})
		},
	}
	partBounds.register(partCmd)
	cmd.AddCommand(partCmd)

	var artist artistFlags
	var artistID int64
	artistCmd := &cobra.Command{
		Use:   "artist",
		Short: "Check an artist attribution against other windows of the camera",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := artist.artist()
			if err != nil {
				return err
			}
			draft := validation.ArtistDraft{
				ID:         artistID,
				PersonName: a.PersonName,
				Make:       a.Make,
				Model:      a.Model,
				Start:      a.Interval.Start,
				End:        a.Interval.End,
				Shift:      a.Shift,
			}
			return run(cmd, "artist", func(c context.Context, v *validation.Validator) (validation.Code, error) {
				return v.Artist(c, draft)
			})
		},
	}
	artist.register(artistCmd)
	artistCmd.Flags().Int64Var(&artistID, "id", 0, "Existing artist being edited")
	cmd.AddCommand(artistCmd)

	return cmd
}
