// Package fonts provides a registry of TrueType fonts available to CV templates
// and resolves theme fonts against it, falling back to the standard PDF fonts.
package fonts

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jonathan/cv-generator/internal/theme"
	"go.uber.org/zap"
	"seehuhn.de/go/sfnt"
)

// IconFontName is the name templates use for the contact/section icon font.
const IconFontName = "FontAwesome"

// Fallback fonts used when a theme font is not available.
const (
	FallbackHeaderFont = "Helvetica-Bold"
	FallbackBodyFont   = "Helvetica"
)

// Face is a TrueType font known to the registry.
type Face struct {
	// Name is the key used by themes, e.g. "DejaVuSans-Bold".
	Name   string
	Family string
	Bold   bool
	Italic bool
	Path   string

	data     []byte
	hasGlyph func(r rune) bool
}

// Data returns the raw font file.
func (f *Face) Data() []byte {
	return f.data
}

// HasGlyph reports whether the font maps r to a glyph.
func (f *Face) HasGlyph(r rune) bool {
	if f.hasGlyph == nil {
		return false
	}
	return f.hasGlyph(r)
}

// LoadError reports a font file that could not be read or parsed.
type LoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("font %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("font %s: %s", e.Path, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// Registry holds TrueType faces by name.
type Registry struct {
	faces  map[string]*Face
	logger *zap.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		faces:  make(map[string]*Face),
		logger: logger,
	}
}

// ParseFace inspects a TrueType font. name overrides the detected name when
// non-empty.
func ParseFace(name, path string, data []byte) (*Face, error) {
	info, err := sfnt.Read(bytes.NewReader(data))
	if err != nil {
		return nil, &LoadError{Path: path, Message: "not a TrueType/OpenType font", Cause: err}
	}

	face := &Face{
		Name:   name,
		Family: info.FamilyName,
		Bold:   info.IsBold,
		Italic: info.IsItalic,
		Path:   path,
		data:   data,
	}
	if face.Name == "" {
		face.Name = faceName(info.FamilyName, info.IsBold, info.IsItalic)
	}

	if table, err := info.CMapTable.GetBest(); err == nil {
		face.hasGlyph = func(r rune) bool {
			return table.Lookup(r) != 0
		}
	}
	return face, nil
}

// faceName builds the conventional "Family-Style" name with spaces removed.
func faceName(family string, bold, italic bool) string {
	name := strings.ReplaceAll(family, " ", "")
	switch {
	case bold && italic:
		return name + "-BoldOblique"
	case bold:
		return name + "-Bold"
	case italic:
		return name + "-Oblique"
	default:
		return name
	}
}

// AddFile registers the font at path. name may be empty to use the detected
// family and style.
func (r *Registry) AddFile(name, path string) (*Face, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Message: "cannot read", Cause: err}
	}
	face, err := ParseFace(name, path, data)
	if err != nil {
		return nil, err
	}
	r.Add(face)
	return face, nil
}

// Add registers face, replacing any face with the same name.
func (r *Registry) Add(face *Face) {
	if _, exists := r.faces[face.Name]; exists {
		r.logger.Debug("replacing font", zap.String("font", face.Name))
	}
	r.faces[face.Name] = face
	r.logger.Debug("font available",
		zap.String("font", face.Name),
		zap.String("family", face.Family),
		zap.Bool("bold", face.Bold),
		zap.Bool("italic", face.Italic))
}

// AddDir registers every .ttf file directly inside dir. The file name without
// extension becomes the font name, so "DejaVuSans-Bold.ttf" is "DejaVuSans-Bold".
// Unreadable files are logged and skipped. A missing dir is not an error.
func (r *Registry) AddDir(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read font directory %s: %w", dir, err)
	}

	added := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".ttf") {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		if strings.HasPrefix(strings.ToLower(name), "fontawesome") {
			name = IconFontName
		}
		if _, err := r.AddFile(name, filepath.Join(dir, entry.Name())); err != nil {
			r.logger.Warn("skipping font file", zap.String("path", entry.Name()), zap.Error(err))
			continue
		}
		added++
	}
	return added, nil
}

// Lookup returns the face registered under name.
func (r *Registry) Lookup(name string) (*Face, bool) {
	face, ok := r.faces[name]
	return face, ok
}

// Names returns all registered font names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.faces))
	for name := range r.faces {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Target is the canvas side of font installation.
type Target interface {
	HasFont(name string) bool
	RegisterFont(name string, data []byte) error
}

// Install embeds the named face into target unless target already knows it.
func (r *Registry) Install(target Target, name string) error {
	if target.HasFont(name) {
		return nil
	}
	face, ok := r.faces[name]
	if !ok {
		return &LoadError{Path: name, Message: "font not registered"}
	}
	return target.RegisterFont(name, face.data)
}

// ResolveTheme makes every font named by th available on target, replacing
// unavailable ones with the standard fallbacks.
func (r *Registry) ResolveTheme(th theme.Theme, target Target) theme.Theme {
	th.HeaderFont = r.resolve(th.HeaderFont, FallbackHeaderFont, target)
	th.BodyFont = r.resolve(th.BodyFont, FallbackBodyFont, target)
	return th
}

func (r *Registry) resolve(name, fallback string, target Target) string {
	if err := r.Install(target, name); err != nil {
		r.logger.Warn("font not available, using fallback",
			zap.String("font", name),
			zap.String("fallback", fallback),
			zap.Error(err))
		return fallback
	}
	return name
}

// InstallIconFont embeds the icon font when registered and reports whether
// icons can be drawn with it.
func (r *Registry) InstallIconFont(target Target) bool {
	if _, ok := r.faces[IconFontName]; !ok {
		return false
	}
	if err := r.Install(target, IconFontName); err != nil {
		r.logger.Warn("icon font unusable, icons fall back to bullets", zap.Error(err))
		return false
	}
	return true
}
