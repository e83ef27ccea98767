package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/cv-generator/internal/generator"
	"github.com/jonathan/cv-generator/internal/schemas"
)

var validateSchema string

var validateCmd = &cobra.Command{
	Use:   "validate DATA",
	Short: "Validate a CV data file without rendering it",
	Long: `Checks the data file against the CV JSON schema and the data model rules.

With --schema the file must also satisfy an extra JSON schema, for example
house rules such as a required projects section. A relative schema path is
looked up in the working directory, then next to the data file.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringVar(&validateSchema, "schema", "", "Extra JSON schema the data must satisfy")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	dataPath := args[0]
	gen := generator.New(generator.Options{Logger: log()})
	ok, message := gen.ValidateFile(dataPath)
	if !ok {
		return fmt.Errorf("validation failed: %s", message)
	}

	if validateSchema != "" {
		schemaPath := schemas.ResolveSchemaPath(validateSchema, filepath.Dir(dataPath))
		if schemaPath == "" {
			return fmt.Errorf("schema file not found: %s", validateSchema)
		}
		if err := schemas.ValidateJSON(schemaPath, dataPath); err != nil {
			return fmt.Errorf("validation failed against %s: %w", filepath.Base(schemaPath), err)
		}
		log().Debug("extra schema passed", zap.String("schema", schemaPath))
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "✓ %s: %s\n", dataPath, message)
	return nil
}
