package generator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/cv-generator/internal/canvas"
	"github.com/jonathan/cv-generator/internal/cvdata"
	"github.com/jonathan/cv-generator/internal/fonts"
	"github.com/jonathan/cv-generator/internal/layout"
	"github.com/jonathan/cv-generator/internal/rendering"
	"github.com/jonathan/cv-generator/internal/theme"
	"github.com/jonathan/cv-generator/internal/types"
)

// Creator is written to the PDF metadata.
const Creator = "cv-generator"

// PreviewTemplate is used for previews unless another template is requested.
const PreviewTemplate = "minimal"

// Options configures a Generator.
type Options struct {
	// Templates defaults to rendering.DefaultRegistry().
	Templates *rendering.Registry
	// Fonts defaults to an empty registry, so only the standard PDF fonts
	// are available.
	Fonts *fonts.Registry
	// Compress enables PDF stream compression.
	Compress bool
	Logger   *zap.Logger
}

// Generator turns CV data files into PDFs. It is safe for concurrent use.
type Generator struct {
	templates *rendering.Registry
	fonts     *fonts.Registry
	compress  bool
	logger    *zap.Logger
}

// New creates a Generator.
func New(opts Options) *Generator {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	templates := opts.Templates
	if templates == nil {
		templates = rendering.DefaultRegistry()
	}
	reg := opts.Fonts
	if reg == nil {
		reg = fonts.NewRegistry(logger)
	}
	return &Generator{
		templates: templates,
		fonts:     reg,
		compress:  opts.Compress,
		logger:    logger,
	}
}

// Request describes one generation.
type Request struct {
	DataPath   string
	OutputPath string
	// Template defaults to rendering.DefaultTemplate.
	Template    string
	PicturePath string
	// ThemeOverrides and LayoutOverrides apply on top of the document's own
	// theme and layout objects.
	ThemeOverrides  map[string]any
	LayoutOverrides map[string]any
	// Data skips loading DataPath when set.
	Data       *types.CVData
	OnProgress ProgressCallback
}

// Result describes a written PDF.
type Result struct {
	RenderID   string
	OutputPath string
	Template   string
	Pages      int
	Density    float64
	Theme      theme.Theme
	Layout     layout.Layout
	// Unknown lists theme and layout keys that were ignored.
	Unknown  []string
	Duration time.Duration
}

func (g *Generator) emit(req Request, renderID, step, message string) {
	g.logger.Debug(message, zap.String("step", step), zap.String("render_id", renderID))
	if req.OnProgress != nil {
		req.OnProgress(ProgressEvent{
			Step:     step,
			Category: StepCategory(step),
			Message:  message,
			RenderID: renderID,
		})
	}
}

// CreateCV loads and validates the data file and renders it to the output
// path, creating parent directories as needed.
func (g *Generator) CreateCV(ctx context.Context, req Request) (*Result, error) {
	renderID := uuid.New().String()

	cv, err := g.loadData(req, renderID)
	if err != nil {
		return nil, err
	}
	return g.render(ctx, cv, req, renderID)
}

// loadData reads and schema-checks req.DataPath, or validates req.Data when
// the caller already has the data in memory.
func (g *Generator) loadData(req Request, renderID string) (*types.CVData, error) {
	if req.Data == nil {
		g.emit(req, renderID, StepLoad, "loading CV data")
		cv, err := cvdata.LoadValidated(req.DataPath)
		if err != nil {
			return nil, &GenerateError{Step: StepLoad, Message: req.DataPath, Cause: err}
		}
		return cv, nil
	}
	g.emit(req, renderID, StepValidate, "validating CV data")
	if err := cvdata.Validate(req.Data); err != nil {
		return nil, &GenerateError{Step: StepValidate, Message: "invalid CV data", Cause: err}
	}
	return req.Data, nil
}

// Render validates and renders cv, ignoring req.Data and req.DataPath.
func (g *Generator) Render(ctx context.Context, cv *types.CVData, req Request) (*Result, error) {
	if err := cvdata.Validate(cv); err != nil {
		return nil, &GenerateError{Step: StepValidate, Message: "invalid CV data", Cause: err}
	}
	return g.render(ctx, cv, req, uuid.New().String())
}

func (g *Generator) render(ctx context.Context, cv *types.CVData, req Request, renderID string) (*Result, error) {
	start := time.Now()
	if req.OutputPath == "" {
		return nil, &GenerateError{Step: StepWrite, Message: "no output path"}
	}
	name := req.Template
	if name == "" {
		name = rendering.DefaultTemplate
	}
	tmpl, err := g.templates.Get(name)
	if err != nil {
		return nil, &GenerateError{Step: StepRender, Message: "unknown template", Cause: err}
	}
	if req.PicturePath != "" {
		if _, err := canvas.LoadSquareImage(req.PicturePath, 8); err != nil {
			return nil, &GenerateError{Step: StepValidate, Message: "unusable profile picture", Cause: err}
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	g.emit(req, renderID, StepOptimize, "optimizing CV data")
	cv, err = cvdata.Optimize(cv, g.logger)
	if err != nil {
		return nil, &GenerateError{Step: StepOptimize, Message: "failed to prepare data", Cause: err}
	}
	density := cvdata.ContentDensity(cv)

	g.emit(req, renderID, StepTheme, fmt.Sprintf("content density %.2f", density))
	th := theme.ForDensity(density)
	var unknown []string
	for _, overrides := range []map[string]any{cv.Theme, req.ThemeOverrides} {
		ignored, err := th.ApplyOverrides(overrides, g.logger)
		if err != nil {
			return nil, &GenerateError{Step: StepTheme, Message: "invalid theme", Cause: err}
		}
		unknown = append(unknown, prefixed("theme.", ignored)...)
	}

	g.emit(req, renderID, StepLayout, "resolving page layout")
	l, ignored, err := layout.FromMap(overlay(cv.Layout, req.LayoutOverrides))
	if err != nil {
		return nil, &GenerateError{Step: StepLayout, Message: "invalid layout", Cause: err}
	}
	unknown = append(unknown, prefixed("layout.", ignored)...)
	for _, key := range unknown {
		g.logger.Warn("ignoring unknown style key", zap.String("key", key))
	}

	g.emit(req, renderID, StepFonts, "installing fonts")
	c := canvas.New(canvas.Options{PageSize: l.PageSize, Compress: g.compress, Logger: g.logger})
	th = g.fonts.ResolveTheme(th, c)
	icons := g.fonts.InstallIconFont(c)
	c.SetMetadata(metadata(cv))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	g.emit(req, renderID, StepRender, "rendering template "+tmpl.Name())
	page := &rendering.Page{
		Canvas:      c,
		Data:        cv,
		Theme:       th,
		Layout:      l,
		PicturePath: req.PicturePath,
		Icons:       icons,
		Density:     density,
		Logger:      g.logger.With(zap.String("template", tmpl.Name())),
	}
	if err := tmpl.Render(page); err != nil {
		return nil, &GenerateError{
			Step:    StepRender,
			Message: tmpl.Name(),
			Cause:   &rendering.RenderError{Template: tmpl.Name(), Message: "drawing failed", Cause: err},
		}
	}

	g.emit(req, renderID, StepWrite, "writing "+req.OutputPath)
	if err := c.WriteFile(req.OutputPath); err != nil {
		return nil, &GenerateError{Step: StepWrite, Message: req.OutputPath, Cause: err}
	}

	result := &Result{
		RenderID:   renderID,
		OutputPath: req.OutputPath,
		Template:   tmpl.Name(),
		Pages:      c.PageCount(),
		Density:    density,
		Theme:      th,
		Layout:     l,
		Unknown:    unknown,
		Duration:   time.Since(start),
	}
	g.logger.Info("CV generated",
		zap.String("render_id", renderID),
		zap.String("template", result.Template),
		zap.String("output", result.OutputPath),
		zap.Int("pages", result.Pages),
		zap.Duration("duration", result.Duration))
	return result, nil
}

// overlay returns base with the keys of over replacing its own. Unlike
// cvdata.MergeMaps, lists such as an explicit page size are replaced.
func overlay(base, over map[string]any) map[string]any {
	out := make(map[string]any, len(base)+len(over))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range over {
		out[k] = v
	}
	return out
}

func prefixed(prefix string, keys []string) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = prefix + k
	}
	return out
}

func metadata(cv *types.CVData) canvas.Metadata {
	name := cv.CandidateName()
	keywords := []string{"CV", "Resume"}
	for _, cat := range cv.TechnicalSkills {
		keywords = append(keywords, cat.Name)
	}
	return canvas.Metadata{
		Title:    name + " - Curriculum Vitae",
		Author:   name,
		Subject:  "Curriculum Vitae",
		Keywords: strings.Join(keywords, ", "),
		Creator:  Creator,
	}
}

// ValidateFile checks a data file without rendering it. It reports whether
// the file is valid and a message describing the outcome.
func (g *Generator) ValidateFile(path string) (bool, string) {
	if _, err := cvdata.LoadValidated(path); err != nil {
		return false, err.Error()
	}
	return true, "CV data is valid"
}

// PreviewPath derives the preview file name from an output path:
// "out/cv.pdf" becomes "out/cv_preview.pdf".
func PreviewPath(output string) string {
	ext := filepath.Ext(output)
	return strings.TrimSuffix(output, ext) + "_preview.pdf"
}

// GeneratePreview renders a shortened copy of the data, with the minimal
// template unless req names another, next to the requested output.
func (g *Generator) GeneratePreview(ctx context.Context, req Request) (*Result, error) {
	renderID := uuid.New().String()
	cv, err := g.loadData(req, renderID)
	if err != nil {
		return nil, err
	}
	preview, err := cvdata.Preview(cv)
	if err != nil {
		return nil, &GenerateError{Step: StepOptimize, Message: "failed to build preview", Cause: err}
	}
	if req.Template == "" {
		req.Template = PreviewTemplate
	}
	req.OutputPath = PreviewPath(req.OutputPath)
	return g.render(ctx, preview, req, renderID)
}

// ListTemplates describes every registered template, sorted by name.
func (g *Generator) ListTemplates() []rendering.Info {
	names := g.templates.Names()
	infos := make([]rendering.Info, 0, len(names))
	for _, name := range names {
		if info, err := g.templates.Info(name); err == nil {
			infos = append(infos, info)
		}
	}
	return infos
}

// TemplateInfo describes one template.
func (g *Generator) TemplateInfo(name string) (rendering.Info, error) {
	return g.templates.Info(name)
}

// RenderAll renders the data with every template into outDir, one file per
// template named "<base>_<template>.pdf". Templates render concurrently,
// so req.OnProgress must be safe for concurrent use. The first failure
// cancels the rest.
func (g *Generator) RenderAll(ctx context.Context, req Request, outDir string) ([]*Result, error) {
	cv, err := g.loadData(req, uuid.New().String())
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, &GenerateError{Step: StepWrite, Message: "failed to create output directory", Cause: err}
	}

	base := "cv"
	if req.DataPath != "" {
		base = strings.TrimSuffix(filepath.Base(req.DataPath), filepath.Ext(req.DataPath))
	}

	names := g.templates.Names()
	results := make([]*Result, len(names))

	var mu sync.Mutex
	var failed []string

	group, gctx := errgroup.WithContext(ctx)
	for i, name := range names {
		i, name := i, name
		r := req
		r.Data = cv
		r.Template = name
		r.OutputPath = filepath.Join(outDir, fmt.Sprintf("%s_%s.pdf", base, name))
		group.Go(func() error {
			res, err := g.Render(gctx, cv, r)
			if err != nil {
				mu.Lock()
				failed = append(failed, name)
				mu.Unlock()
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		var genErr *GenerateError
		if errors.As(err, &genErr) {
			return nil, err
		}
		return nil, &GenerateError{Step: StepRender, Message: strings.Join(failed, ", "), Cause: err}
	}
	return results, nil
}
