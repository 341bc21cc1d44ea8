package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"submux/internal/episode"
	"submux/internal/history"
	"submux/internal/logging"
	"submux/internal/mux"
	"submux/internal/services"
)

func newMuxCommand(ctx *commandContext) *cobra.Command {
	var (
		dryRun       bool
		keepWorkdir  bool
		episodesExpr string
	)

	cmd := &cobra.Command{
		Use:   "mux <project>",
		Short: "Mux every planned episode into its release container",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.loadProject(args[0])
			if err != nil {
				return err
			}
			logger, err := ctx.loggerFor(cfg)
			if err != nil {
				return err
			}

			opts := mux.Options{DryRun: dryRun, KeepWorkdir: keepWorkdir}
			if expr := strings.TrimSpace(episodesExpr); expr != "" {
				selection, err := episode.ParseRange(expr)
				if err != nil {
					return services.Wrap(services.ErrValidation, "mux", "episodes", expr, err)
				}
				opts.Episodes = selection.Episodes()
			}

			// A broken history database must not block a release run.
			store, err := history.Open(cfg.HistoryPath())
			if err != nil {
				logger.Warn("run history unavailable", logging.Error(err))
				store = nil
			} else {
				defer store.Close()
			}

			runner := mux.NewRunner(cfg, logger, store, opts)
			summary, err := runner.Run(cmd.Context())
			if err != nil {
				return err
			}

			printMuxSummary(cmd.OutOrStdout(), summary)
			if failed := summary.Failed(); failed > 0 {
				return fmt.Errorf("%d of %d episodes failed", failed, len(summary.Episodes))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Plan and validate without touching any file")
	cmd.Flags().BoolVar(&keepWorkdir, "keep-workdir", false, "Keep per-episode working directories for inspection")
	cmd.Flags().StringVar(&episodesExpr, "episodes", "", `Mux a subset of the configured episodes ("3" or "2...5")`)
	return cmd
}

func printMuxSummary(out io.Writer, summary *mux.Summary) {
	rows := make([]table.Row, 0, len(summary.Episodes))
	for _, result := range summary.Episodes {
		status := "ok"
		switch {
		case result.Err != nil:
			status = result.Err.Error()
		case summary.DryRun:
			status = "planned"
		}
		crc := result.CRC32
		if crc == "" {
			crc = "-"
		}
		rows = append(rows, table.Row{result.Key, result.OutputName, crc, formatDuration(result.Duration), status})
	}
	fmt.Fprintln(out, renderTable(table.Row{"Episode", "Output", "CRC32", "Time", "Status"}, rows))
}
