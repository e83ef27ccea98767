package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-generator/internal/generator"
	"github.com/jonathan/cv-generator/internal/observability"
	"github.com/jonathan/cv-generator/internal/rendering"
)

var templatesCmd = &cobra.Command{
	Use:   "templates [NAME]",
	Short: "List the available templates or describe one",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTemplates,
}

var templatesJSON bool

func init() {
	templatesCmd.Flags().BoolVar(&templatesJSON, "json", false, "Print as JSON")

	rootCmd.AddCommand(templatesCmd)
}

func runTemplates(cmd *cobra.Command, args []string) error {
	gen := generator.New(generator.Options{Logger: log()})

	infos := gen.ListTemplates()
	if len(args) == 1 {
		info, err := gen.TemplateInfo(args[0])
		if err != nil {
			return err
		}
		infos = []rendering.Info{info}
	}

	if templatesJSON {
		data, err := json.MarshalIndent(infos, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal templates: %w", err)
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintTemplates(infos)
	return nil
}
