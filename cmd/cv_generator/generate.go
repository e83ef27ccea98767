package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-generator/internal/cvdata"
	"github.com/jonathan/cv-generator/internal/observability"
	"github.com/jonathan/cv-generator/internal/validation"
)

var generateCmd = &cobra.Command{
	Use:   "generate DATA OUTPUT",
	Short: "Generate a PDF CV from a JSON data file",
	Long: `Loads and validates the CV data, picks the theme from the content density,
applies overrides from the data file, config and flags, and writes the PDF.

With --max-pages the written PDF is checked against the page limit and the
command fails when it is exceeded.`,
	Args: cobra.ExactArgs(2),
	RunE: runGenerate,
}

var (
	generateFlags   renderFlags
	generatePreview bool
)

func init() {
	generateFlags.register(generateCmd)
	generateCmd.Flags().BoolVar(&generatePreview, "preview", false, "Also write a shortened preview next to the output")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	dataPath, outputPath := args[0], args[1]
	out := cmd.OutOrStdout()

	cfg, err := generateFlags.resolve(cmd)
	if err != nil {
		return err
	}
	gen, err := newGenerator(cfg)
	if err != nil {
		return err
	}

	req := newRequest(cfg, dataPath, outputPath)
	result, err := gen.CreateCV(cmd.Context(), req)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "✓ CV generated: %s (%d pages, template %s)\n", result.OutputPath, result.Pages, result.Template)
	if verbose || debug {
		observability.NewPrinter(out).PrintResult(result)
	}

	if generatePreview {
		preview, err := gen.GeneratePreview(cmd.Context(), forPreview(cmd, req))
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(out, "✓ Preview generated: %s (template %s)\n", preview.OutputPath, preview.Template)
	}

	if cfg.MaxPages <= 0 && cfg.MaxLineChars <= 0 && len(cfg.ForbiddenPhrases) == 0 {
		return nil
	}
	cv, err := cvdata.Load(dataPath)
	if err != nil {
		return err
	}
	violations := validation.Check(cv, result.Pages, validation.Options{
		MaxPages:         cfg.MaxPages,
		MaxLineChars:     cfg.MaxLineChars,
		ForbiddenPhrases: cfg.ForbiddenPhrases,
	})
	if len(violations.Violations) > 0 {
		observability.NewPrinter(out).PrintViolations(violations)
	}
	if validation.HasErrors(violations) {
		return fmt.Errorf("generated CV failed checks")
	}
	return nil
}
