package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-generator/internal/cvdata"
	"github.com/jonathan/cv-generator/internal/observability"
)

var statsCmd = &cobra.Command{
	Use:   "stats DATA",
	Short: "Show content statistics of a CV data file",
	Long:  "Counts sections, entries and skills and reports the content density used to pick the theme.",
	Args:  cobra.ExactArgs(1),
	RunE:  runStats,
}

var statsJSON bool

func init() {
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "Print as JSON")

	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	cv, err := cvdata.LoadValidated(args[0])
	if err != nil {
		return err
	}
	stats := cvdata.ComputeStats(cv)

	if statsJSON {
		data, err := json.MarshalIndent(stats, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal stats: %w", err)
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintStats(cv.CandidateName(), stats)
	return nil
}
