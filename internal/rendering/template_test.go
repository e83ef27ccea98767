package rendering

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry()
	assert.Equal(t, []string{"minimal", "modern", "two_column"}, r.Names())

	tmpl, err := r.Get(DefaultTemplate)
	require.NoError(t, err)
	assert.Equal(t, "two_column", tmpl.Name())

	for _, name := range r.Names() {
		info, err := r.Info(name)
		require.NoError(t, err)
		assert.Equal(t, name, info.Name)
		assert.NotEmpty(t, info.Description)
		assert.NotEmpty(t, info.Features)
	}
}

func TestRegistry_UnknownTemplate(t *testing.T) {
	r := DefaultRegistry()

	_, err := r.Get("fancy")
	require.Error(t, err)

	var tmplErr *TemplateError
	require.True(t, errors.As(err, &tmplErr))
	assert.Equal(t, "fancy", tmplErr.Name)
	assert.Contains(t, err.Error(), "minimal, modern, two_column")

	_, err = r.Info("fancy")
	assert.Error(t, err)
}

func TestRegistry_RegisterReplaces(t *testing.T) {
	r := NewRegistry()
	assert.Empty(t, r.Names())

	r.Register(Minimal{})
	r.Register(Minimal{})
	assert.Equal(t, []string{"minimal"}, r.Names())
}
