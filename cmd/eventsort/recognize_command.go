package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"eventsort/internal/signature"
)

type recognition struct {
	Name      string `json:"name"`
	Stripped  string `json:"stripped"`
	Signature string `json:"signature,omitempty"`
	Time      string `json:"time,omitempty"`
}

func newRecognizeCommand() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:         "recognize <name>...",
		Short:       "Show the timestamp read from file names",
		Args:        cobra.MinimumNArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			results := make([]recognition, 0, len(args))
			for _, name := range args {
				res := signature.Recognize(name)
				rec := recognition{Name: res.Original, Stripped: res.Stripped}
				if res.Recognized {
					rec.Signature = res.Signature
					rec.Time = formatInstant(res.Time)
				}
				results = append(results, rec)
			}
			if asJSON {
				return writeJSON(cmd, results)
			}
			rows := make([][]string, 0, len(results))
			for _, rec := range results {
				sig, ts := rec.Signature, rec.Time
				if sig == "" {
					sig, ts = "unparsed", "-"
				}
				rows = append(rows, []string{rec.Name, sig, ts})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Name", "Signature", "Time"}, rows))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}
