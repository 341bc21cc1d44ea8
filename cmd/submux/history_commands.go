package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"submux/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect recorded mux runs",
	}

	historyCmd.AddCommand(newHistoryListCommand(ctx))
	historyCmd.AddCommand(newHistoryClearCommand(ctx))

	return historyCmd
}

func newHistoryListCommand(ctx *commandContext) *cobra.Command {
	var (
		limit   int
		jsonOut bool
	)

	cmd := &cobra.Command{
		Use:   "list <project>",
		Short: "List recorded runs, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.loadProject(args[0])
			if err != nil {
				return err
			}
			store, err := history.Open(cfg.HistoryPath())
			if err != nil {
				return err
			}
			defer store.Close()

			runs, err := store.Runs(cmd.Context(), limit)
			if err != nil {
				return err
			}

			if jsonOut {
				type runView struct {
					*history.Run
					Episodes []history.Episode `json:"episodes,omitempty"`
				}
				views := make([]runView, 0, len(runs))
				for _, run := range runs {
					episodes, err := store.RunEpisodes(cmd.Context(), run.ID)
					if err != nil {
						return err
					}
					views = append(views, runView{Run: run, Episodes: episodes})
				}
				return writeJSON(cmd, views)
			}

			if len(runs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No recorded runs")
				return nil
			}
			rows := make([]table.Row, 0, len(runs))
			for _, run := range runs {
				rows = append(rows, table.Row{
					shortID(run.ID),
					run.StartedAt.Local().Format("2006-01-02 15:04"),
					run.Show,
					run.EpisodesTotal,
					run.EpisodesFailed,
					yesNo(run.DryRun),
					runState(run),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				table.Row{"Run", "Started", "Show", "Episodes", "Failed", "Dry", "Result"}, rows, 4, 5))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs to show (0 for all)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit runs with their episodes as JSON")
	return cmd
}

func newHistoryClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear <project>",
		Short: "Delete every recorded run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.loadProject(args[0])
			if err != nil {
				return err
			}
			store, err := history.Open(cfg.HistoryPath())
			if err != nil {
				return err
			}
			defer store.Close()

			removed, err := store.Clear(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d runs from %s\n", removed, store.Path())
			return nil
		},
	}
}
