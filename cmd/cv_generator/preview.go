package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var previewCmd = &cobra.Command{
	Use:   "preview DATA OUTPUT",
	Short: "Generate a shortened preview PDF",
	Long: `Renders the first entries of each section, with the minimal template unless
--template is given, to OUTPUT with "_preview.pdf" replacing its extension.`,
	Args: cobra.ExactArgs(2),
	RunE: runPreview,
}

var previewFlags renderFlags

func init() {
	previewFlags.register(previewCmd)

	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, args []string) error {
	cfg, err := previewFlags.resolve(cmd)
	if err != nil {
		return err
	}
	gen, err := newGenerator(cfg)
	if err != nil {
		return err
	}

	result, err := gen.GeneratePreview(cmd.Context(), forPreview(cmd, newRequest(cfg, args[0], args[1])))
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "✓ Preview generated: %s (%d pages, template %s)\n", result.OutputPath, result.Pages, result.Template)
	return nil
}
