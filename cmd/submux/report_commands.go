package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"submux/internal/crossref"
	"submux/internal/episode"
	"submux/internal/services"
	"submux/internal/textutil"
)

func newReportCommand() *cobra.Command {
	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Continuity reports across episode scripts",
	}

	reportCmd.AddCommand(newReportCrossrefCommand())
	reportCmd.AddCommand(newReportRecapCommand())

	return reportCmd
}

func newReportCrossrefCommand() *cobra.Command {
	var flags reportFlags

	cmd := &cobra.Command{
		Use:   "crossref <path> <range>",
		Short: "Check CR markers against their target lines",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := flags.filter()
			if err != nil {
				return err
			}
			selection, err := episode.ParseRange(args[1])
			if err != nil {
				return services.Wrap(services.ErrValidation, "report", "range", args[1], err)
			}
			refs, err := crossref.ScanMarkers(args[0], selection.Episodes())
			if err != nil {
				return err
			}
			return renderReport(cmd, refs, filter, flags.jsonOut)
		},
	}

	flags.register(cmd)
	return cmd
}

func newReportRecapCommand() *cobra.Command {
	var flags reportFlags

	cmd := &cobra.Command{
		Use:   "recap <path>",
		Short: "Check replay and preview callouts against their target episode",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := flags.filter()
			if err != nil {
				return err
			}
			refs, err := crossref.ScanRecaps(args[0])
			if err != nil {
				return err
			}
			return renderReport(cmd, refs, filter, flags.jsonOut)
		},
	}

	flags.register(cmd)
	return cmd
}

type reportFlags struct {
	matched   bool
	notFound  bool
	different bool
	jsonOut   bool
}

func (f *reportFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.matched, "matched", false, "Show only exact matches")
	cmd.Flags().BoolVar(&f.notFound, "not-found", false, "Show only unresolved references")
	cmd.Flags().BoolVar(&f.different, "different", false, "Show only references whose target text changed")
	cmd.Flags().BoolVar(&f.jsonOut, "json", false, "Emit the report as JSON")
}

func (f *reportFlags) filter() (crossref.Filter, error) {
	set := 0
	filter := crossref.FilterAll
	if f.matched {
		set++
		filter = crossref.FilterMatched
	}
	if f.notFound {
		set++
		filter = crossref.FilterNotFound
	}
	if f.different {
		set++
		filter = crossref.FilterDifferent
	}
	if set > 1 {
		return filter, errors.New("--matched, --not-found, and --different are mutually exclusive")
	}
	return filter, nil
}

func renderReport(cmd *cobra.Command, refs []crossref.Reference, filter crossref.Filter, jsonOut bool) error {
	displayed := crossref.Apply(refs, filter)
	summary := crossref.Summarize(refs, displayed)

	if jsonOut {
		return writeJSON(cmd, map[string]any{
			"references": displayed,
			"summary":    summary,
		})
	}

	out := cmd.OutOrStdout()
	color := shouldColorize(out)
	for _, ref := range displayed {
		printReference(out, ref, color)
	}
	fmt.Fprintf(out, "Total %d, displayed %d: %d exact, %d different, %d not found\n",
		summary.Total, summary.Displayed, summary.ExactMatches, summary.Different, summary.NotFound)
	return nil
}

func printReference(out io.Writer, ref crossref.Reference, color bool) {
	location := fmt.Sprintf("%s/%s:%d", ref.Folder, ref.File, ref.Line)
	switch {
	case !ref.Found():
		fmt.Fprintf(out, "%s  %s  %s\n", location, ref.Marker(), colorize("NOT FOUND", ansiRed, color))
		fmt.Fprintf(out, "  source: %s\n", textutil.NormalizeDialogue(ref.Text))
	case ref.Matched():
		fmt.Fprintf(out, "%s  %s  %s\n", location, ref.Marker(), colorize("MATCH", ansiGreen, color))
	default:
		target := ref.TargetFolder + "/" + ref.TargetFile
		if ref.TargetLine > 0 {
			target = fmt.Sprintf("%s:%d", target, ref.TargetLine)
		}
		fmt.Fprintf(out, "%s  %s  %s\n", location, ref.Marker(), colorize("DIFFERENT", ansiYellow, color))
		fmt.Fprintf(out, "  source: %s\n", textutil.NormalizeDialogue(ref.Text))
		fmt.Fprintf(out, "  target: %s  %s\n", target, textutil.NormalizeDialogue(ref.TargetText))
	}
}
