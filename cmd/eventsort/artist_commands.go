package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"eventsort/internal/catalog"
	"eventsort/internal/textutil"
)

type artistFlags struct {
	bounds boundsFlags
	person string
	make   string
	model  string
	shift  catalog.TimeShift
}

func (f *artistFlags) register(cmd *cobra.Command) {
	f.bounds.register(cmd)
	cmd.Flags().StringVar(&f.person, "person", "", "Person name; created when unknown")
	cmd.Flags().StringVar(&f.make, "make", "", "Camera make as written in EXIF")
	cmd.Flags().StringVar(&f.model, "model", "", "Camera model as written in EXIF")
	cmd.Flags().IntVar(&f.shift.Days, "shift-days", 0, "Clock correction in days")
	cmd.Flags().IntVar(&f.shift.Hours, "shift-hours", 0, "Clock correction in hours")
	cmd.Flags().IntVar(&f.shift.Minutes, "shift-minutes", 0, "Clock correction in minutes")
	cmd.Flags().IntVar(&f.shift.Seconds, "shift-seconds", 0, "Clock correction in seconds")
}

func (f *artistFlags) artist() (catalog.Artist, error) {
	iv, err := parseBounds(f.bounds.start, f.bounds.end)
	if err != nil {
		return catalog.Artist{}, err
	}
	return catalog.Artist{
		PersonName: f.person,
		Make:       f.make,
		Model:      f.model,
		Interval:   iv,
		Shift:      f.shift,
	}, nil
}

func newArtistCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "artist",
		Short: "Manage camera-to-person attributions",
	}
	cmd.AddCommand(newArtistAddCommand(ctx))
	cmd.AddCommand(newArtistUpdateCommand(ctx))
	cmd.AddCommand(newArtistListCommand(ctx))
	cmd.AddCommand(newArtistDeleteCommand(ctx))
	return cmd
}

func newArtistAddCommand(ctx *commandContext) *cobra.Command {
	var flags artistFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Attribute a camera to a person for an interval",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := flags.artist()
			if err != nil {
				return err
			}
			return ctx.withStore(func(store *catalog.Store) error {
				saved, err := store.InsertArtist(cmd.Context(), a)
				if err != nil {
					return rejection(err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Artist #%d added: %s %s → %s\n",
					saved.ID, saved.Make, saved.Model, textutil.DisplayName(saved.PersonName))
				return nil
			})
		},
	}
	flags.register(cmd)
	return cmd
}

func newArtistUpdateCommand(ctx *commandContext) *cobra.Command {
	var flags artistFlags
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Replace an artist attribution",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "artist")
			if err != nil {
				return err
			}
			a, err := flags.artist()
			if err != nil {
				return err
			}
			a.ID = id
			return ctx.withStore(func(store *catalog.Store) error {
				saved, err := store.UpdateArtist(cmd.Context(), a)
				if err != nil {
					return rejection(err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Artist #%d updated (shift %s)\n", saved.ID, saved.Shift)
				return nil
			})
		},
	}
	flags.register(cmd)
	return cmd
}

func newArtistListCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List artists",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *catalog.Store) error {
				artists, err := store.ListArtists(cmd.Context())
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, artists)
				}
				if len(artists) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No artists")
					return nil
				}
				rows := make([][]string, 0, len(artists))
				for _, a := range artists {
					start, end := formatInterval(a.Interval)
					shift := "-"
					if !a.Shift.IsZero() {
						shift = a.Shift.String()
					}
					rows = append(rows, []string{
						strconv.FormatInt(a.ID, 10), textutil.DisplayName(a.PersonName),
						a.Make, a.Model, start, end, shift,
					})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"ID", "Person", "Make", "Model", "Start", "End", "Shift"}, rows))
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

func newArtistDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an artist attribution",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "artist")
			if err != nil {
				return err
			}
			return ctx.withStore(func(store *catalog.Store) error {
				if err := store.DeleteArtist(cmd.Context(), id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Artist #%d deleted\n", id)
				return nil
			})
		},
	}
}
