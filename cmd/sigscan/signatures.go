package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/praetorian-inc/sigscan/pkg/scanner"
	"github.com/praetorian-inc/sigscan/pkg/signature"
	"github.com/praetorian-inc/sigscan/pkg/types"
	"github.com/spf13/cobra"
)

var (
	signaturesPath    string
	signaturesInclude string
	signaturesExclude string
	outputFormat      string
)

var signaturesCmd = &cobra.Command{
	Use:   "signatures",
	Short: "Manage byte signatures",
	Long:  "Commands for listing and testing byte signatures",
}

var signaturesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available signatures",
	Long:  "Display all available signatures with their IDs, names and patterns",
	RunE:  runSignaturesList,
}

var signaturesTestCmd = &cobra.Command{
	Use:   "test",
	Short: "Check signatures against their examples",
	Long:  "Validate every signature and check that it matches its examples and none of its negative examples",
	RunE:  runSignaturesTest,
}

func init() {
	signaturesCmd.AddCommand(signaturesListCmd)
	signaturesCmd.AddCommand(signaturesTestCmd)

	for _, c := range []*cobra.Command{signaturesListCmd, signaturesTestCmd} {
		c.Flags().StringVar(&signaturesPath, "signatures", "", "Path to custom signatures file or directory")
		c.Flags().StringVar(&signaturesInclude, "include", "", "Include signatures matching regex pattern (comma-separated)")
		c.Flags().StringVar(&signaturesExclude, "exclude", "", "Exclude signatures matching regex pattern (comma-separated)")
	}
	signaturesListCmd.Flags().StringVar(&outputFormat, "format", "table", "Output format: table, json")
}

func runSignaturesList(cmd *cobra.Command, args []string) error {
	sigs, err := loadSignatures(signaturesPath, signaturesInclude, signaturesExclude)
	if err != nil {
		return err
	}

	switch outputFormat {
	case "json":
		return outputSignaturesJSON(cmd, sigs)
	case "table":
		return outputSignaturesTable(cmd, sigs)
	default:
		return fmt.Errorf("unknown output format: %s", outputFormat)
	}
}

func runSignaturesTest(cmd *cobra.Command, args []string) error {
	sigs, err := loadSignatures(signaturesPath, signaturesInclude, signaturesExclude)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	failed := 0
	for _, s := range sigs {
		if err := signature.Test(s); err != nil {
			failed++
			fmt.Fprintf(out, "FAIL %s: %v\n", s.ID, err)
			continue
		}
		fmt.Fprintf(out, "ok   %s\n", s.ID)
	}

	fmt.Fprintf(out, "\n%d signatures, %d failed\n", len(sigs), failed)
	if failed > 0 {
		return fmt.Errorf("%d of %d signatures failed", failed, len(sigs))
	}
	return nil
}

// =============================================================================
// HELPERS
// =============================================================================

// loadSignatures loads custom signatures from path, or the builtin set when
// path is empty, then applies the include/exclude filters.
func loadSignatures(path, include, exclude string) ([]*types.Signature, error) {
	var sigs []*types.Signature
	var err error

	if path != "" {
		sigs, err = signature.NewLoader().LoadPath(path)
		if err != nil {
			return nil, fmt.Errorf("loading signatures from %s: %w", path, err)
		}
	} else {
		sigs, err = scanner.GetBuiltinSignatures()
		if err != nil {
			return nil, fmt.Errorf("loading builtin signatures: %w", err)
		}
	}

	if include != "" || exclude != "" {
		config := signature.FilterConfig{
			Include: signature.ParsePatterns(include),
			Exclude: signature.ParsePatterns(exclude),
		}
		sigs, err = signature.Filter(sigs, config)
		if err != nil {
			return nil, fmt.Errorf("filtering signatures: %w", err)
		}
	}

	return sigs, nil
}

func outputSignaturesJSON(cmd *cobra.Command, sigs []*types.Signature) error {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(sigs)
}

func outputSignaturesTable(cmd *cobra.Command, sigs []*types.Signature) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintf(w, "ID\tName\tPattern\tCategories\n")
	fmt.Fprintf(w, "--\t----\t-------\t----------\n")

	for _, s := range sigs {
		categories := ""
		if len(s.Categories) > 0 {
			categories = s.Categories[0]
			if len(s.Categories) > 1 {
				categories += fmt.Sprintf(" (+%d)", len(s.Categories)-1)
			}
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", s.ID, s.Name, s.Pattern, categories)
	}

	return nil
}
