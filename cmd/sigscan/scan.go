package main

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/praetorian-inc/sigscan"
	"github.com/praetorian-inc/sigscan/pkg/enum"
	"github.com/praetorian-inc/sigscan/pkg/scanner"
	"github.com/praetorian-inc/sigscan/pkg/types"
	"github.com/spf13/cobra"
)

var (
	scanPattern        string
	scanSignaturesPath string
	scanInclude        string
	scanExclude        string
	scanWorkers        int
	scanSequential     bool
	scanUnique         bool
	scanOutputFormat   string
	scanColor          string
	scanMaxFileSize    int64
	scanIncludeHidden  bool
	scanFollowSymlinks bool
)

var scanCmd = &cobra.Command{
	Use:   "scan <target>",
	Short: "Scan a file or directory for byte signatures",
	Long: `Scan a file or directory for byte signatures.

With --pattern only that pattern is searched for; otherwise the builtin
signatures (or those loaded with --signatures) are used. With --unique every
signature must occur at most once per file.`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func init() {
	scanCmd.Flags().StringVar(&scanPattern, "pattern", "", `Pattern to search for, e.g. "48 8B ? ? 89"`)
	scanCmd.Flags().StringVar(&scanSignaturesPath, "signatures", "", "Path to custom signatures file or directory")
	scanCmd.Flags().StringVar(&scanInclude, "include", "", "Include signatures matching regex pattern (comma-separated)")
	scanCmd.Flags().StringVar(&scanExclude, "exclude", "", "Exclude signatures matching regex pattern (comma-separated)")
	scanCmd.Flags().IntVar(&scanWorkers, "workers", 0, "Number of scan workers (0 = number of CPUs)")
	scanCmd.Flags().BoolVar(&scanSequential, "sequential", false, "Scan each buffer on a single goroutine")
	scanCmd.Flags().BoolVar(&scanUnique, "unique", false, "Fail when a signature occurs more than once in a file")
	scanCmd.Flags().StringVar(&scanOutputFormat, "format", "human", "Output format: human, json")
	scanCmd.Flags().StringVar(&scanColor, "color", "auto", "Color output: auto, always, never")
	scanCmd.Flags().Int64Var(&scanMaxFileSize, "max-file-size", 256*1024*1024, "Maximum file size to scan (bytes, 0 = no limit)")
	scanCmd.Flags().BoolVar(&scanIncludeHidden, "include-hidden", false, "Include hidden files and directories")
	scanCmd.Flags().BoolVar(&scanFollowSymlinks, "follow-symlinks", false, "Scan files reached through symbolic links (directory links are not descended)")
	scanCmd.MarkFlagsMutuallyExclusive("pattern", "signatures")
}

// scanReport is the result of a scan command.
type scanReport struct {
	Files    int                `json:"files"`
	Matches  []*types.Match     `json:"matches"`
	Failures []*scanner.Failure `json:"failures,omitempty"`
}

func runScan(cmd *cobra.Command, args []string) error {
	target := args[0]
	logger := newLogger(cmd)

	if _, err := os.Stat(target); err != nil {
		return fmt.Errorf("target does not exist: %s", target)
	}
	if scanOutputFormat != "human" && scanOutputFormat != "json" {
		return fmt.Errorf("unknown output format: %s", scanOutputFormat)
	}

	sigs, err := scanSignatures()
	if err != nil {
		return err
	}
	logger.Debug("signatures loaded", "count", len(sigs))

	opts := []sigscan.Option{sigscan.WithLogger(logger)}
	if scanSequential {
		opts = append(opts, sigscan.WithSequential())
	} else {
		opts = append(opts, sigscan.WithWorkers(scanWorkers))
	}
	engine, err := sigscan.NewScanner(opts...)
	if err != nil {
		return fmt.Errorf("creating scanner: %w", err)
	}
	defer engine.Close()

	core, err := scanner.NewCore(engine, sigs, scanUnique)
	if err != nil {
		return fmt.Errorf("compiling signatures: %w", err)
	}

	enumerator := enum.NewFilesystemEnumerator(enum.Config{
		Root:           target,
		IncludeHidden:  scanIncludeHidden,
		MaxFileSize:    scanMaxFileSize,
		FollowSymlinks: scanFollowSymlinks,
	})

	report := &scanReport{}
	var mu sync.Mutex

	err = enumerator.Enumerate(context.Background(), func(content []byte, blobID types.BlobID, prov types.Provenance) error {
		result, err := core.Scan(content, blobID, prov.Path())
		if err != nil {
			return fmt.Errorf("scanning %s: %w", prov.Path(), err)
		}

		mu.Lock()
		defer mu.Unlock()
		report.Files++
		report.Matches = append(report.Matches, result.Matches...)
		report.Failures = append(report.Failures, result.Failures...)
		return nil
	})
	if err != nil {
		return fmt.Errorf("scanning: %w", err)
	}

	sortReport(report)
	logger.Info("scan complete",
		"files", report.Files,
		"matches", len(report.Matches),
		"failures", len(report.Failures),
		"workers", engine.Workers(),
	)

	switch scanOutputFormat {
	case "json":
		err = outputReportJSON(cmd, report)
	default:
		err = outputReportHuman(cmd, report)
	}
	if err != nil {
		return err
	}

	if len(report.Failures) > 0 {
		return fmt.Errorf("%d signature(s) not unique: %w", len(report.Failures), sigscan.ErrNonUniquePattern)
	}
	return nil
}

// =============================================================================
// HELPERS
// =============================================================================

// scanSignatures returns the --pattern signature, or the loaded signature set.
func scanSignatures() ([]*types.Signature, error) {
	if scanPattern == "" {
		return loadSignatures(scanSignaturesPath, scanInclude, scanExclude)
	}

	sig := &types.Signature{
		ID:      "pattern",
		Name:    "Command-line pattern",
		Pattern: scanPattern,
	}
	sig.StructuralID = sig.ComputeStructuralID()
	return []*types.Signature{sig}, nil
}

// sortReport orders results by source, then offset, then signature ID, so
// output does not depend on file read order.
func sortReport(r *scanReport) {
	slices.SortFunc(r.Matches, func(a, b *types.Match) int {
		if c := strings.Compare(a.Source, b.Source); c != 0 {
			return c
		}
		if a.Offset != b.Offset {
			if a.Offset < b.Offset {
				return -1
			}
			return 1
		}
		return strings.Compare(a.SignatureID, b.SignatureID)
	})
	slices.SortFunc(r.Failures, func(a, b *scanner.Failure) int {
		if c := strings.Compare(a.Source, b.Source); c != 0 {
			return c
		}
		return strings.Compare(a.SignatureID, b.SignatureID)
	})
}
