package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"eventsort/internal/catalog"
	"eventsort/internal/config"
	"eventsort/internal/fileutil"
	"eventsort/internal/media"
	"eventsort/internal/router"
)

type sortFlags struct {
	source string
	target string
	copy   bool
	dryRun bool
	asJSON bool
}

func newSortCommand(ctx *commandContext) *cobra.Command {
	var flags sortFlags
	cmd := &cobra.Command{
		Use:   "sort",
		Short: "Move media from the source directory into the library",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			source, target, err := sortPaths(cfg, flags)
			if err != nil {
				return err
			}
			opts, err := router.OptionsFromConfig(cfg.Sorting)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("copy") {
				opts.Copy = flags.copy
			}
			opts.DryRun = flags.dryRun

			return ctx.withStore(func(store *catalog.Store) error {
				r := router.New(store, media.NewEXIFReader(), fileutil.OS{}, opts, logger)
				batch, err := r.Start(cmd.Context(), source, target)
				if err != nil {
					return err
				}
				interval := time.Duration(cfg.Sorting.PollIntervalMs) * time.Millisecond
				report := watchBatch(cmd.Context(), batch, interval, progressWriter(cmd, flags.asJSON))

				if flags.asJSON {
					if err := writeJSON(cmd, report); err != nil {
						return err
					}
				} else {
					renderReport(cmd.OutOrStdout(), report)
				}
				switch {
				case report.Canceled:
					return context.Canceled
				case report.Failed():
					return fmt.Errorf("%d files could not be routed", report.Count(router.IoError))
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&flags.source, "source", "", "Source directory (default paths.source_dir)")
	cmd.Flags().StringVar(&flags.target, "target", "", "Library directory (default paths.target_dir)")
	cmd.Flags().BoolVar(&flags.copy, "copy", false, "Copy instead of move")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "Compute destinations without touching files")
	cmd.Flags().BoolVar(&flags.asJSON, "json", false, "Output the report as JSON")
	return cmd
}

func sortPaths(cfg *config.Config, flags sortFlags) (string, string, error) {
	source, target := cfg.Paths.SourceDir, cfg.Paths.TargetDir
	var err error
	if strings.TrimSpace(flags.source) != "" {
		if source, err = config.ExpandPath(flags.source); err != nil {
			return "", "", err
		}
	}
	if strings.TrimSpace(flags.target) != "" {
		if target, err = config.ExpandPath(flags.target); err != nil {
			return "", "", err
		}
	}
	if source == "" || target == "" {
		return "", "", fmt.Errorf("source and target directories are required")
	}
	if source == target {
		return "", "", fmt.Errorf("source and target must differ (%s)", source)
	}
	return source, target, nil
}

// progressWriter returns stderr when it is a terminal and no machine output
// was requested.
func progressWriter(cmd *cobra.Command, asJSON bool) io.Writer {
	if asJSON {
		return nil
	}
	if f, ok := cmd.ErrOrStderr().(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		return f
	}
	return nil
}

// watchBatch polls the batch until it finishes, redrawing a progress line
// on w when w is non-nil.
func watchBatch(ctx context.Context, batch *router.Batch, every time.Duration, w io.Writer) router.Report {
	if every <= 0 {
		every = 250 * time.Millisecond
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	draw := func() {
		if w == nil {
			return
		}
		snap := batch.Progress()
		fmt.Fprintf(w, "\rSorting %d/%d (%.0f%%)", snap.Current, snap.Total, snap.Percent())
	}
	for {
		select {
		case <-batch.Done():
			draw()
			if w != nil {
				fmt.Fprintln(w)
			}
			return batch.Wait()
		case <-ticker.C:
			draw()
		case <-ctx.Done():
			// The batch observes the same context; keep waiting for it to
			// record where it stopped.
			return batch.Wait()
		}
	}
}

func renderReport(out io.Writer, report router.Report) {
	if report.DryRun {
		fmt.Fprintln(out, "Dry run: no files were moved or copied")
	}
	rows := make([][]string, 0, len(router.Outcomes()))
	for _, outcome := range router.Outcomes() {
		if n := report.Count(outcome); n > 0 {
			rows = append(rows, []string{string(outcome), strconv.Itoa(n)})
		}
	}
	fmt.Fprintln(out, renderTable([]string{"Outcome", "Files"}, rows))

	var failures [][]string
	for _, res := range report.Results {
		if res.Outcome == router.IoError {
			failures = append(failures, []string{res.Source, res.ErrorKind, res.Reason})
		}
	}
	if len(failures) > 0 {
		fmt.Fprintln(out, "\nFailed")
		fmt.Fprintln(out, renderTable([]string{"File", "Kind", "Reason"}, failures))
	}
	for _, warning := range report.Warnings {
		fmt.Fprintf(out, "warning: %s\n", warning)
	}
	if report.Canceled {
		fmt.Fprintf(out, "Canceled after %d files\n", len(report.Results))
	}
	fmt.Fprintf(out, "Batch %s finished in %s\n", report.ID, report.FinishedAt.Sub(report.StartedAt).Round(time.Millisecond))
}
