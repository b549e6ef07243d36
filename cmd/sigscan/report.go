package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// styles holds color formatters for human-readable scan output
type styles struct {
	heading  *color.Color
	id       *color.Color
	sigName  *color.Color
	match    *color.Color
	metadata *color.Color
	failure  *color.Color
}

// newStyles creates color formatters for report output
// enabled=false respects --color=never and the NO_COLOR env var
func newStyles(enabled bool) *styles {
	s := &styles{
		heading:  color.New(color.Bold),
		id:       color.New(color.FgHiGreen),
		sigName:  color.New(color.Bold, color.FgHiBlue),
		match:    color.New(color.FgYellow),
		metadata: color.New(color.FgHiBlue),
		failure:  color.New(color.Bold, color.FgRed),
	}

	if !enabled {
		s.heading.DisableColor()
		s.id.DisableColor()
		s.sigName.DisableColor()
		s.match.DisableColor()
		s.metadata.DisableColor()
		s.failure.DisableColor()
	}

	return s
}

// colorEnabled resolves the --color flag.
func colorEnabled(mode string) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default: // "auto"
		return term.IsTerminal(int(os.Stdout.Fd())) && os.Getenv("NO_COLOR") == ""
	}
}

func outputReportJSON(cmd *cobra.Command, report *scanReport) error {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}

func outputReportHuman(cmd *cobra.Command, report *scanReport) error {
	out := cmd.OutOrStdout()
	s := newStyles(colorEnabled(scanColor))

	for i, m := range report.Matches {
		fmt.Fprintf(out, "%s (%s %s)\n",
			s.heading.Sprintf("Match %d/%d", i+1, len(report.Matches)),
			s.heading.Sprint("id"),
			s.id.Sprint(m.SignatureID))
		fmt.Fprintf(out, "%s %s\n", s.heading.Sprint("Signature:"), s.sigName.Sprint(m.SignatureName))
		fmt.Fprintf(out, "%s %s\n", s.heading.Sprint("File:"), s.metadata.Sprint(m.Source))
		fmt.Fprintf(out, "%s %s\n", s.heading.Sprint("Offset:"), s.metadata.Sprintf("0x%X-0x%X", m.Offset, m.End()))
		fmt.Fprintf(out, "%s %s\n\n", s.heading.Sprint("Bytes:"), s.match.Sprint(m.Matched))
	}

	for _, f := range report.Failures {
		fmt.Fprintf(out, "%s %s in %s: %d matches (first at 0x%X, 0x%X)\n",
			s.failure.Sprint("Not unique:"),
			s.id.Sprint(f.SignatureID),
			s.metadata.Sprint(f.Source),
			f.Count, f.First, f.Second)
	}

	if len(report.Matches) == 0 && len(report.Failures) == 0 {
		fmt.Fprintf(out, "No matches.\n")
	}
	fmt.Fprintf(out, "Scan complete: %d files, %d matches\n", report.Files, len(report.Matches))
	return nil
}
