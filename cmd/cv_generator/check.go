package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-generator/internal/config"
	"github.com/jonathan/cv-generator/internal/cvdata"
	"github.com/jonathan/cv-generator/internal/observability"
	"github.com/jonathan/cv-generator/internal/types"
	"github.com/jonathan/cv-generator/internal/validation"
)

var checkCmd = &cobra.Command{
	Use:   "check DATA [PDF]",
	Short: "Check CV content and page count against limits",
	Long: `Scans the CV text for forbidden phrases, over-long bullet lines and
leftover placeholder text. With --max-pages the page count is taken from PDF,
or from a temporary render when no PDF is given.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runCheck,
}

var (
	checkFlags        renderFlags
	checkMaxLineChars int
	checkForbidden    []string
	checkOutput       string
)

func init() {
	checkFlags.register(checkCmd)
	checkCmd.Flags().IntVar(&checkMaxLineChars, "max-line-chars", 0, "Maximum characters per bullet line (0 disables the check)")
	checkCmd.Flags().StringArrayVar(&checkForbidden, "forbid", nil, "Forbidden phrase (repeatable)")
	checkCmd.Flags().StringVarP(&checkOutput, "out", "o", "", "Path to write the violations as JSON")

	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := checkFlags.resolve(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("max-line-chars") {
		cfg.MaxLineChars = checkMaxLineChars
	}
	cfg.ForbiddenPhrases = append(cfg.ForbiddenPhrases, checkForbidden...)

	cv, err := cvdata.LoadValidated(args[0])
	if err != nil {
		return err
	}
	opts := validation.Options{
		MaxPages:         cfg.MaxPages,
		MaxLineChars:     cfg.MaxLineChars,
		ForbiddenPhrases: cfg.ForbiddenPhrases,
	}

	var violations *types.Violations
	switch {
	case len(args) == 2:
		violations, err = validation.CheckFile(args[1], cv, opts)
		if err != nil {
			return fmt.Errorf("failed to check PDF: %w", err)
		}
	case cfg.MaxPages > 0:
		pages, err := renderedPages(cmd, cfg, args[0])
		if err != nil {
			return err
		}
		violations = validation.Check(cv, pages, opts)
	default:
		violations = validation.Check(cv, 0, opts)
	}

	if checkOutput != "" {
		if err := writeViolations(checkOutput, violations); err != nil {
			return err
		}
	}

	observability.NewPrinter(cmd.OutOrStdout()).PrintViolations(violations)
	if validation.HasErrors(violations) {
		return fmt.Errorf("check failed with %d violations", len(violations.Violations))
	}
	return nil
}

// renderedPages renders into a temporary directory to count pages.
func renderedPages(cmd *cobra.Command, cfg config.Config, dataPath string) (int, error) {
	dir, err := os.MkdirTemp("", "cv-check-*")
	if err != nil {
		return 0, fmt.Errorf("failed to create temporary directory: %w", err)
	}
	defer func() { _ = os.RemoveAll(dir) }()

	gen, err := newGenerator(cfg)
	if err != nil {
		return 0, err
	}
	result, err := gen.CreateCV(cmd.Context(), newRequest(cfg, dataPath, filepath.Join(dir, "cv.pdf")))
	if err != nil {
		return 0, err
	}
	return result.Pages, nil
}

func writeViolations(path string, violations *types.Violations) error {
	// Ensure output directory exists
	outputDir := filepath.Dir(path)
	if outputDir != "" && outputDir != "." {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(violations, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal violations: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write violations file: %w", err)
	}
	return nil
}
