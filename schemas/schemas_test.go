package schemas_test

import (
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/cv-generator/internal/schemas"
	embedded "github.com/jonathan/cv-generator/schemas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllSchemaFiles_ValidJSON(t *testing.T) {
	schemaFiles, err := fs.Glob(embedded.FS, "*.schema.json")
	require.NoError(t, err)
	require.NotEmpty(t, schemaFiles)

	for _, schemaFile := range schemaFiles {
		t.Run(schemaFile, func(t *testing.T) {
			data, err := embedded.FS.ReadFile(schemaFile)
			require.NoError(t, err, "should be able to read schema file")

			var schemaObj map[string]interface{}
			require.NoError(t, json.Unmarshal(data, &schemaObj), "schema file should be valid JSON: %s", schemaFile)

			_, hasType := schemaObj["type"]
			_, hasSchema := schemaObj["$schema"]
			assert.True(t, hasType && hasSchema, "schema should declare $schema and type")
		})
	}
}

func TestEmbeddedSchema_MatchesFileOnDisk(t *testing.T) {
	onDisk, err := os.ReadFile(filepath.Join(".", embedded.CVDataSchemaFile))
	require.NoError(t, err)

	inBinary, err := embedded.CVDataSchema()
	require.NoError(t, err)
	assert.Equal(t, string(onDisk), string(inBinary))
}

func TestCVDataSchema_AcceptsMinimalDocument(t *testing.T) {
	doc := `{
		"candidate": {"name": "Jane Doe", "contact": [{"icon": "@", "text": "jane@example.com"}]},
		"profile": "Backend engineer",
		"technical_skills": {"Languages": ["Go"]}
	}`
	assert.NoError(t, schemas.ValidateCVBytes([]byte(doc)))

	docPath := filepath.Join(t.TempDir(), "cv.json")
	require.NoError(t, os.WriteFile(docPath, []byte(doc), 0644))
	assert.NoError(t, schemas.ValidateJSON(embedded.CVDataSchemaFile, docPath))
}

func TestCVDataSchema_RejectsMissingProfile(t *testing.T) {
	err := schemas.ValidateCVBytes([]byte(`{"candidate": {"name": "Jane Doe", "contact": []}}`))
	require.Error(t, err)

	var validationErr *schemas.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "(root)", validationErr.Errors[0].Field)
}

func TestCVDataSchema_RejectsCompanyWithoutName(t *testing.T) {
	doc := `{
		"candidate": {"name": "Jane", "contact": []},
		"profile": "",
		"experience": {"companies": [{"roles": []}]}
	}`
	assert.Error(t, schemas.ValidateCVBytes([]byte(doc)))
}
