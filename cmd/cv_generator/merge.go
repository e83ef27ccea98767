package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-generator/internal/cvdata"
)

var mergeCmd = &cobra.Command{
	Use:   "merge BASE OVERLAY... OUTPUT",
	Short: "Merge CV data files into one",
	Long: `Loads BASE and merges each OVERLAY into it in order: lists are appended,
skills of matching categories are combined and scalar values of later files
win. The merged document is validated and saved as JSON to OUTPUT.`,
	Args: cobra.MinimumNArgs(3),
	RunE: runMerge,
}

var mergeSkipValidation bool

func init() {
	mergeCmd.Flags().BoolVar(&mergeSkipValidation, "no-validate", false, "Save the merged data without validating it")

	rootCmd.AddCommand(mergeCmd)
}

func runMerge(cmd *cobra.Command, args []string) error {
	inputs, output := args[:len(args)-1], args[len(args)-1]

	merged, err := cvdata.Load(inputs[0])
	if err != nil {
		return err
	}
	for _, path := range inputs[1:] {
		overlay, err := cvdata.Load(path)
		if err != nil {
			return err
		}
		cvdata.Merge(merged, overlay)
	}

	if !mergeSkipValidation {
		if err := cvdata.Validate(merged); err != nil {
			return fmt.Errorf("merged data is invalid: %w", err)
		}
	}
	if err := cvdata.Save(merged, output); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "✓ Merged %d files into %s\n", len(inputs), output)
	return nil
}
