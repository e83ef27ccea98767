// Package schemas embeds the JSON Schema documents shipped with the CLI.
package schemas

import "embed"

// CVDataSchemaFile is the file name of the CV data schema inside FS.
const CVDataSchemaFile = "cv_data.schema.json"

// FS holds every *.schema.json file in this directory.
//
//go:embed *.schema.json
var FS embed.FS

// CVDataSchema returns the raw CV data schema.
func CVDataSchema() ([]byte, error) {
	return FS.ReadFile(CVDataSchemaFile)
}
