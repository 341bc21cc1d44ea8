package main

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"submux/internal/config"
	"submux/internal/mergeplan"
)

func newPlanCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "plan <project>",
		Short: "Show the resolved mux plan without touching any file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.loadProject(args[0])
			if err != nil {
				return err
			}
			plans, err := mergeplan.Plan(cfg)
			if err != nil {
				return err
			}
			if jsonOut {
				return writeJSON(cmd, plans)
			}
			printPlan(cmd.OutOrStdout(), cfg, plans)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the plan as JSON")
	return cmd
}

func printPlan(out io.Writer, cfg *config.Project, plans []mergeplan.EpisodePlan) {
	fmt.Fprintf(out, "%s (%s, %s %s)\n", cfg.ShowName, cfg.FansubGroup, cfg.ResolutionLabel(), cfg.VideoSource)
	fmt.Fprintf(out, "Episodes %s, output %s\n", cfg.EpisodeRange(), cfg.OutputPath)

	rows := make([]table.Row, 0, len(plans))
	for _, plan := range plans {
		video := "-"
		if plan.Video != "" {
			video = filepath.Base(plan.Video)
		}
		rows = append(rows, table.Row{plan.Key, video, len(plan.Subtitles), extrasCell(plan.Extras), plan.OutputName})
	}
	fmt.Fprintln(out, renderTable(table.Row{"Episode", "Video", "Subs", "Extras", "Output"}, rows, 3))

	if len(cfg.Staff) > 0 {
		keys := make([]string, 0, len(cfg.Staff))
		for key := range cfg.Staff {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		fmt.Fprintln(out, "Staff:")
		for _, key := range keys {
			fmt.Fprintf(out, "  %-12s %s\n", key+":", cfg.Staff[key])
		}
	}

	problems := 0
	for _, plan := range plans {
		for _, problem := range plan.Problems {
			fmt.Fprintf(out, "Problem (episode %s): %s\n", plan.Key, problem)
			problems++
		}
	}
	if problems > 0 {
		fmt.Fprintf(out, "%d problems; these episodes will not mux\n", problems)
	}
}

func extrasCell(extras []mergeplan.Extra) string {
	if len(extras) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(extras))
	for _, extra := range extras {
		label := extra.To
		if extra.From != extra.To {
			label = extra.From + "/" + extra.To
		}
		parts = append(parts, fmt.Sprintf("%s (%s)", extra.File, label))
	}
	return strings.Join(parts, ", ")
}
