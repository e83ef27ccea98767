package generator

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/jonathan/cv-generator/internal/cvdata"
	"github.com/jonathan/cv-generator/internal/layout"
	"github.com/jonathan/cv-generator/internal/rendering"
	"github.com/jonathan/cv-generator/internal/theme"
	"github.com/jonathan/cv-generator/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func fixture(parts ...string) string {
	return filepath.Join(append([]string{"..", "..", "testdata"}, parts...)...)
}

func newTestGenerator(t *testing.T) *Generator {
	t.Helper()
	return New(Options{Logger: zaptest.NewLogger(t)})
}

func assertPDF(t *testing.T, path string) {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-", string(data[:5]))
}

func TestCreateCV(t *testing.T) {
	g := newTestGenerator(t)
	out := filepath.Join(t.TempDir(), "nested", "cv.pdf")

	var events []ProgressEvent
	res, err := g.CreateCV(context.Background(), Request{
		DataPath:   fixture("valid", "cv_full.json"),
		OutputPath: out,
		OnProgress: func(e ProgressEvent) { events = append(events, e) },
	})
	require.NoError(t, err)

	assertPDF(t, out)
	assert.Equal(t, out, res.OutputPath)
	assert.Equal(t, rendering.DefaultTemplate, res.Template)
	assert.GreaterOrEqual(t, res.Pages, 1)
	_, err = uuid.Parse(res.RenderID)
	assert.NoError(t, err)

	// the document's own theme and layout are applied
	assert.Equal(t, "#1A3C5E", res.Theme.PrimaryColor)
	assert.Equal(t, layout.A4, res.Layout.PageSize)

	require.NotEmpty(t, events)
	assert.Equal(t, StepLoad, events[0].Step)
	assert.Equal(t, StepWrite, events[len(events)-1].Step)

	order := map[string]int{}
	for i, s := range Steps {
		order[s.Name] = i
	}
	for i, e := range events {
		assert.Equal(t, res.RenderID, e.RenderID)
		assert.NotEmpty(t, e.Category)
		if i > 0 {
			assert.Less(t, order[events[i-1].Step], order[e.Step], "%s reported after %s", e.Step, events[i-1].Step)
		}
	}
}

func TestCreateCV_Overrides(t *testing.T) {
	g := newTestGenerator(t)
	out := filepath.Join(t.TempDir(), "cv.pdf")

	res, err := g.CreateCV(context.Background(), Request{
		DataPath:        fixture("valid", "cv_minimal.json"),
		OutputPath:      out,
		Template:        "modern",
		ThemeOverrides:  map[string]any{"primary_color": "navy", "glow": true},
		LayoutOverrides: map[string]any{"page_size": "letter"},
	})
	require.NoError(t, err)
	assert.Equal(t, "navy", res.Theme.PrimaryColor)
	assert.Equal(t, layout.Letter, res.Layout.PageSize)
	assert.Equal(t, []string{"theme.glow"}, res.Unknown)

	// sparse content gets the roomier theme
	assert.Less(t, res.Density, 0.4)
	assert.Equal(t, theme.ForDensity(res.Density).HeaderFontSize, res.Theme.HeaderFontSize)
}

func TestCreateCV_UnrecognisedColour(t *testing.T) {
	g := newTestGenerator(t)
	out := filepath.Join(t.TempDir(), "cv.pdf")

	res, err := g.CreateCV(context.Background(), Request{
		DataPath:   fixture("valid", "cv_minimal.json"),
		OutputPath: out,
		ThemeOverrides: map[string]any{
			"primary_color": "not-a-colour",
			"accent_color":  "cornflowerblue",
		},
	})
	require.NoError(t, err)
	assertPDF(t, out)
	assert.Equal(t, theme.Black, res.Theme.Primary())
}

func TestInMemoryDataIsValidated(t *testing.T) {
	g := newTestGenerator(t)
	dir := t.TempDir()
	out := filepath.Join(dir, "cv.pdf")
	noProfile := &types.CVData{
		Candidate: &types.Candidate{
			Name:    "Jane Doe",
			Contact: []types.ContactItem{{Icon: "f0e0", Text: "jane@example.com"}},
		},
	}

	calls := map[string]func() error{
		"CreateCV": func() error {
			_, err := g.CreateCV(context.Background(), Request{Data: noProfile, OutputPath: out})
			return err
		},
		"Render": func() error {
			_, err := g.Render(context.Background(), noProfile, Request{OutputPath: out})
			return err
		},
		"GeneratePreview": func() error {
			_, err := g.GeneratePreview(context.Background(), Request{Data: noProfile, OutputPath: out})
			return err
		},
		"RenderAll": func() error {
			_, err := g.RenderAll(context.Background(), Request{Data: noProfile}, dir)
			return err
		},
	}
	for name, call := range calls {
		t.Run(name, func(t *testing.T) {
			err := call()
			require.Error(t, err)
			var genErr *GenerateError
			require.ErrorAs(t, err, &genErr)
			assert.Equal(t, StepValidate, genErr.Step)
			assert.Contains(t, err.Error(), "profile")
		})
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCreateCV_Errors(t *testing.T) {
	g := newTestGenerator(t)
	out := filepath.Join(t.TempDir(), "cv.pdf")

	tests := []struct {
		name string
		req  Request
		step string
	}{
		{
			name: "missing file",
			req:  Request{DataPath: fixture("valid", "nope.json"), OutputPath: out},
			step: StepLoad,
		},
		{
			name: "invalid data",
			req:  Request{DataPath: fixture("invalid", "missing_candidate.json"), OutputPath: out},
			step: StepLoad,
		},
		{
			name: "unknown template",
			req:  Request{DataPath: fixture("valid", "cv_minimal.json"), OutputPath: out, Template: "fancy"},
			step: StepRender,
		},
		{
			name: "bad font size",
			req: Request{
				DataPath:       fixture("valid", "cv_minimal.json"),
				OutputPath:     out,
				ThemeOverrides: map[string]any{"body_font_size": -1.0},
			},
			step: StepTheme,
		},
		{
			name: "missing picture",
			req: Request{
				DataPath:    fixture("valid", "cv_minimal.json"),
				OutputPath:  out,
				PicturePath: fixture("valid", "missing.png"),
			},
			step: StepValidate,
		},
		{
			name: "picture is not an image",
			req: Request{
				DataPath:    fixture("valid", "cv_minimal.json"),
				OutputPath:  out,
				PicturePath: fixture("valid", "cv_minimal.json"),
			},
			step: StepValidate,
		},
		{
			name: "bad page size",
			req: Request{
				DataPath:        fixture("valid", "cv_minimal.json"),
				OutputPath:      out,
				LayoutOverrides: map[string]any{"page_size": "B9"},
			},
			step: StepLayout,
		},
		{
			name: "no output",
			req:  Request{DataPath: fixture("valid", "cv_minimal.json")},
			step: StepWrite,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := g.CreateCV(context.Background(), tt.req)
			require.Error(t, err)
			var genErr *GenerateError
			require.True(t, errors.As(err, &genErr))
			assert.Equal(t, tt.step, genErr.Step)
		})
	}

	_, err := os.Stat(out)
	assert.True(t, os.IsNotExist(err))
}

func TestCreateCV_ValidationErrorIsReachable(t *testing.T) {
	g := newTestGenerator(t)
	_, err := g.CreateCV(context.Background(), Request{
		DataPath:   fixture("invalid", "company_without_name.json"),
		OutputPath: filepath.Join(t.TempDir(), "cv.pdf"),
	})
	var valErr *cvdata.ValidationError
	require.True(t, errors.As(err, &valErr))
}

func TestCreateCV_Cancelled(t *testing.T) {
	g := newTestGenerator(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := g.CreateCV(ctx, Request{
		DataPath:   fixture("valid", "cv_full.json"),
		OutputPath: filepath.Join(t.TempDir(), "cv.pdf"),
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestValidateFile(t *testing.T) {
	g := newTestGenerator(t)

	ok, msg := g.ValidateFile(fixture("valid", "cv_full.json"))
	assert.True(t, ok)
	assert.Equal(t, "CV data is valid", msg)

	ok, msg = g.ValidateFile(fixture("invalid", "malformed.json"))
	assert.False(t, ok)
	assert.Contains(t, msg, "parse error")
}

func TestPreviewPath(t *testing.T) {
	assert.Equal(t, filepath.Join("out", "cv_preview.pdf"), PreviewPath(filepath.Join("out", "cv.pdf")))
	assert.Equal(t, "cv_preview.pdf", PreviewPath("cv"))
}

func TestGeneratePreview(t *testing.T) {
	g := newTestGenerator(t)
	out := filepath.Join(t.TempDir(), "cv.pdf")

	res, err := g.GeneratePreview(context.Background(), Request{
		DataPath:   fixture("valid", "cv_full.json"),
		OutputPath: out,
	})
	require.NoError(t, err)
	assert.Equal(t, PreviewPath(out), res.OutputPath)
	assert.Equal(t, PreviewTemplate, res.Template)
	assert.Equal(t, 1, res.Pages)
	assertPDF(t, res.OutputPath)

	_, err = os.Stat(out)
	assert.True(t, os.IsNotExist(err))
}

func TestListTemplates(t *testing.T) {
	g := newTestGenerator(t)

	infos := g.ListTemplates()
	require.Len(t, infos, 3)
	assert.Equal(t, "minimal", infos[0].Name)
	assert.Equal(t, "two_column", infos[2].Name)

	info, err := g.TemplateInfo("modern")
	require.NoError(t, err)
	assert.NotEmpty(t, info.Features)

	_, err = g.TemplateInfo("fancy")
	assert.Error(t, err)
}

func TestRenderAll(t *testing.T) {
	g := newTestGenerator(t)
	dir := filepath.Join(t.TempDir(), "all")

	results, err := g.RenderAll(context.Background(), Request{DataPath: fixture("valid", "cv_full.json")}, dir)
	require.NoError(t, err)
	require.Len(t, results, 3)

	ids := map[string]bool{}
	for _, res := range results {
		require.NotNil(t, res)
		assert.Equal(t, filepath.Join(dir, "cv_full_"+res.Template+".pdf"), res.OutputPath)
		assertPDF(t, res.OutputPath)
		ids[res.RenderID] = true
	}
	assert.Len(t, ids, 3)
}

func TestStepCategory(t *testing.T) {
	assert.Equal(t, CategoryData, StepCategory(StepLoad))
	assert.Equal(t, CategoryOutput, StepCategory(StepWrite))
	assert.Equal(t, "", StepCategory("nope"))
}
