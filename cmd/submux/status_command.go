package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"submux/internal/preflight"
	"submux/internal/services"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status [project]",
		Short: "Check external tools and project directories",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			color := shouldColorize(out)

			var results []preflight.Result
			if len(args) == 1 {
				cfg, err := ctx.loadProject(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s (%s)\n", cfg.ShowName, cfg.ProjectDir())
				results = preflight.RunAll(cfg)
			} else {
				results = []preflight.Result{preflight.CheckBinary("mkvmerge", "mkvmerge")}
			}

			failed := 0
			for _, result := range results {
				fmt.Fprintln(out, statusLine(result, color))
				if !result.Passed {
					failed++
				}
			}
			if failed > 0 {
				return services.Wrap(services.ErrValidation, "status", "check",
					fmt.Sprintf("%d of %d checks failed", failed, len(results)), nil)
			}
			return nil
		},
	}
}

func statusLine(result preflight.Result, color bool) string {
	state := colorize("OK", ansiGreen, color)
	if !result.Passed {
		state = colorize("FAIL", ansiRed, color)
	}
	return fmt.Sprintf("  %-22s [%s] %s", result.Name+":", state, result.Detail)
}
