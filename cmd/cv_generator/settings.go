package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/cv-generator/internal/config"
	"github.com/jonathan/cv-generator/internal/fonts"
	"github.com/jonathan/cv-generator/internal/generator"
	"github.com/jonathan/cv-generator/internal/rendering"
)

// renderFlags are the settings shared by every command that writes a PDF.
type renderFlags struct {
	configPath     string
	template       string
	profilePicture string
	pageSize       string
	fontDir        string
	primaryColor   string
	secondaryColor string
	accentColor    string
	maxPages       int
	compress       bool
}

func (f *renderFlags) register(cmd *cobra.Command) {
	// Config file flag (processed first)
	cmd.Flags().StringVarP(&f.configPath, "config", "c", "", "Path to a YAML or JSON config file (values can be overridden by other flags)")

	cmd.Flags().StringVarP(&f.template, "template", "t", rendering.DefaultTemplate, "Template name (see the templates command)")
	cmd.Flags().StringVarP(&f.profilePicture, "profile-picture", "p", "", "Path to a profile picture (PNG or JPEG)")
	cmd.Flags().StringVar(&f.pageSize, "page-size", "", "Page size: A4, Letter, A3 or Legal")
	cmd.Flags().StringVar(&f.fontDir, "font-dir", "", "Directory of TrueType fonts to register")
	cmd.Flags().StringVar(&f.primaryColor, "primary-color", "", "Primary colour (hex or name)")
	cmd.Flags().StringVar(&f.secondaryColor, "secondary-color", "", "Secondary colour (hex or name)")
	cmd.Flags().StringVar(&f.accentColor, "accent-color", "", "Accent colour (hex or name)")
	cmd.Flags().IntVar(&f.maxPages, "max-pages", 0, "Fail when the PDF has more pages (0 disables the check)")
	cmd.Flags().BoolVar(&f.compress, "compress", false, "Compress PDF streams")
}

// resolve merges environment, config file and flags, in increasing priority.
func (f *renderFlags) resolve(cmd *cobra.Command) (config.Config, error) {
	cfg, err := loadConfig(f.configPath)
	if err != nil {
		return cfg, err
	}

	// Only override if the flag was explicitly set
	flags := cmd.Flags()
	if flags.Changed("template") || cfg.Template == "" {
		cfg.Template = f.template
	}
	if flags.Changed("profile-picture") {
		cfg.ProfilePicture = f.profilePicture
	}
	if flags.Changed("page-size") {
		cfg.PageSize = f.pageSize
	}
	if flags.Changed("font-dir") {
		cfg.FontDir = f.fontDir
	}
	if flags.Changed("max-pages") {
		cfg.MaxPages = f.maxPages
	}
	if flags.Changed("compress") {
		cfg.Compress = f.compress
	}

	colours := map[string]string{
		"primary_color":   f.primaryColor,
		"secondary_color": f.secondaryColor,
		"accent_color":    f.accentColor,
	}
	for key, value := range colours {
		if value == "" {
			continue
		}
		if cfg.Theme == nil {
			cfg.Theme = map[string]any{}
		}
		cfg.Theme[key] = value
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// loadConfig reads CVGEN_* variables and layers the config file on top.
func loadConfig(path string) (config.Config, error) {
	env, err := config.FromEnv()
	if err != nil {
		return env, err
	}
	if path == "" {
		return env, nil
	}

	loaded, err := config.LoadConfig(path)
	if err != nil {
		return env, fmt.Errorf("failed to load config: %w", err)
	}
	if err := loaded.Validate(); err != nil {
		return env, err
	}
	log().Debug("loaded config", zap.String("path", path))
	return loaded.MergeWithDefaults(env), nil
}

func newGenerator(cfg config.Config) (*generator.Generator, error) {
	reg := fonts.NewRegistry(log())
	if cfg.FontDir != "" {
		n, err := reg.AddDir(cfg.FontDir)
		if err != nil {
			return nil, fmt.Errorf("failed to load fonts: %w", err)
		}
		log().Debug("registered fonts", zap.String("dir", cfg.FontDir), zap.Int("count", n))
	}
	return generator.New(generator.Options{
		Fonts:    reg,
		Compress: cfg.Compress,
		Logger:   log(),
	}), nil
}

func newRequest(cfg config.Config, dataPath, outputPath string) generator.Request {
	return generator.Request{
		DataPath:        dataPath,
		OutputPath:      outputPath,
		Template:        cfg.Template,
		PicturePath:     cfg.ProfilePicture,
		ThemeOverrides:  cfg.Theme,
		LayoutOverrides: cfg.LayoutOverrides(),
		OnProgress: func(ev generator.ProgressEvent) {
			log().Debug(ev.Message,
				zap.String("step", ev.Step),
				zap.String("category", ev.Category),
				zap.String("render_id", ev.RenderID))
		},
	}
}

// forPreview returns req with the template cleared unless --template was
// given, so previews use the generator's preview template.
func forPreview(cmd *cobra.Command, req generator.Request) generator.Request {
	if !cmd.Flags().Changed("template") {
		req.Template = ""
	}
	return req
}
