package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"eventsort/internal/catalog"
	"eventsort/internal/config"
	"eventsort/internal/exchange"
	"eventsort/internal/logging"
)

func newImportCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import events, artists, and persons from JSON, YAML, or iCalendar",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.ExpandPath(args[0])
			if err != nil {
				return err
			}
			bundle, err := exchange.Load(path)
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			logger = logging.NewComponentLogger(logger, "import")

			return ctx.withStore(func(store *catalog.Store) error {
				sum, err := exchange.Apply(cmd.Context(), store, bundle)
				for _, rej := range sum.Rejected {
					logging.WarnWithContext(logger, "record rejected", "import_rejected",
						logging.String("entity", rej.Entity),
						logging.String("label", rej.Label),
						logging.String("code", string(rej.Code)),
						logging.String(logging.FieldErrorHint, "fix the record and import it again"),
					)
				}
				if err != nil {
					return err
				}
				logger.Info("import finished",
					logging.String("path", path),
					logging.Int("imported", sum.Imported()),
					logging.Int("rejected", len(sum.Rejected)),
				)
				if asJSON {
					return writeJSON(cmd, sum)
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Imported %d records (%d events, %d subevents, %d participants, %d artists, %d persons)\n",
					sum.Imported(), sum.Events, sum.Subevents, sum.Participants, sum.Artists, sum.Persons)
				if len(sum.Rejected) > 0 {
					rows := make([][]string, 0, len(sum.Rejected))
					for _, rej := range sum.Rejected {
						rows = append(rows, []string{rej.Entity, rej.Label, string(rej.Code)})
					}
					fmt.Fprintf(out, "Rejected %d records\n", len(sum.Rejected))
					fmt.Fprintln(out, renderTable([]string{"Entity", "Record", "Code"}, rows))
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

func newExportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "export <file>",
		Short: "Export the catalog as JSON or YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.ExpandPath(args[0])
			if err != nil {
				return err
			}
			return ctx.withStore(func(store *catalog.Store) error {
				bundle, err := exchange.Collect(cmd.Context(), store)
				if err != nil {
					return err
				}
				if err := exchange.Save(path, bundle); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %d records to %s\n", bundle.Len(), path)
				return nil
			})
		},
	}
}
