package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"submux/internal/services"
	"submux/internal/terms"
)

func newCheckCommand() *cobra.Command {
	var (
		ratio   float64
		jsonOut bool
	)

	cmd := &cobra.Command{
		Use:   "check <terms-file> <path>...",
		Short: "Flag words that nearly match a reference terminology list",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			termList, err := terms.LoadTerms(args[0])
			if err != nil {
				return services.Wrap(services.ErrValidation, "check", "terms", args[0], err)
			}
			checker := terms.NewChecker(termList, ratio)

			var findings []terms.Finding
			for _, path := range args[1:] {
				found, err := checker.ScanFile(path)
				if err != nil {
					return err
				}
				findings = append(findings, found...)
			}

			if jsonOut {
				err = writeJSON(cmd, map[string]any{
					"terms":    len(termList),
					"files":    len(args[1:]),
					"findings": findings,
				})
			} else {
				printFindings(cmd.OutOrStdout(), findings, len(args[1:]))
			}
			if err != nil {
				return err
			}
			if len(findings) > 0 {
				return fmt.Errorf("found %d near misses", len(findings))
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&ratio, "ratio", terms.DefaultThreshold, "Similarity threshold in percent")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit findings as JSON")
	return cmd
}

func printFindings(out io.Writer, findings []terms.Finding, files int) {
	if len(findings) == 0 {
		fmt.Fprintf(out, "No near misses in %d files\n", files)
		return
	}
	lastFile := ""
	for _, finding := range findings {
		if finding.File != lastFile {
			fmt.Fprintf(out, "%s:\n", finding.File)
			lastFile = finding.File
		}
		fmt.Fprintf(out, "  Line %d: '%s' -> '%s' (%.0f%%)\n", finding.Line, finding.Found, finding.Term, finding.Ratio)
		if finding.Context != "" {
			fmt.Fprintf(out, "    context: %s\n", finding.Context)
		}
	}
}
