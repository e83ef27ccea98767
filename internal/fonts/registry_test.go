package fonts

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jonathan/cv-generator/internal/theme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

type fakeTarget struct {
	known      map[string]bool
	registered []string
	fail       error
}

func newFakeTarget(core ...string) *fakeTarget {
	known := make(map[string]bool)
	for _, name := range core {
		known[name] = true
	}
	return &fakeTarget{known: known}
}

func (f *fakeTarget) HasFont(name string) bool { return f.known[name] }

func (f *fakeTarget) RegisterFont(name string, data []byte) error {
	if f.fail != nil {
		return f.fail
	}
	f.known[name] = true
	f.registered = append(f.registered, name)
	return nil
}

func writeFont(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func TestParseFace(t *testing.T) {
	regular, err := ParseFace("", "goregular.ttf", goregular.TTF)
	require.NoError(t, err)
	bold, err := ParseFace("", "gobold.ttf", gobold.TTF)
	require.NoError(t, err)

	assert.NotEmpty(t, regular.Family)
	assert.False(t, regular.Bold)
	assert.True(t, bold.Bold)
	assert.True(t, strings.HasSuffix(bold.Name, "-Bold"), bold.Name)
	assert.NotContains(t, regular.Name, " ")

	assert.True(t, regular.HasGlyph('A'))
	assert.False(t, regular.HasGlyph('\uf0e0'))
	assert.Equal(t, goregular.TTF, regular.Data())
}

func TestParseFace_NamedOverride(t *testing.T) {
	face, err := ParseFace("DejaVuSans", "x.ttf", goregular.TTF)
	require.NoError(t, err)
	assert.Equal(t, "DejaVuSans", face.Name)
}

func TestParseFace_NotAFont(t *testing.T) {
	_, err := ParseFace("", "notes.txt", []byte("plain text"))
	require.Error(t, err)

	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "notes.txt", loadErr.Path)
}

func TestFaceName(t *testing.T) {
	assert.Equal(t, "DejaVuSans", faceName("DejaVu Sans", false, false))
	assert.Equal(t, "DejaVuSans-Bold", faceName("DejaVu Sans", true, false))
	assert.Equal(t, "DejaVuSans-Oblique", faceName("DejaVu Sans", false, true))
	assert.Equal(t, "DejaVuSans-BoldOblique", faceName("DejaVu Sans", true, true))
}

func TestAddDir(t *testing.T) {
	dir := t.TempDir()
	writeFont(t, dir, "DejaVuSans.ttf", goregular.TTF)
	writeFont(t, dir, "DejaVuSans-Bold.TTF", gobold.TTF)
	writeFont(t, dir, "fontawesome-webfont.ttf", goregular.TTF)
	writeFont(t, dir, "broken.ttf", []byte("nope"))
	writeFont(t, dir, "README.md", []byte("# fonts"))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.ttf"), 0755))

	reg := NewRegistry(nil)
	added, err := reg.AddDir(dir)
	require.NoError(t, err)

	assert.Equal(t, 3, added)
	assert.Equal(t, []string{"DejaVuSans", "DejaVuSans-Bold", IconFontName}, reg.Names())

	face, ok := reg.Lookup("DejaVuSans-Bold")
	require.True(t, ok)
	assert.True(t, face.Bold)
}

func TestAddDir_Missing(t *testing.T) {
	reg := NewRegistry(nil)
	added, err := reg.AddDir(filepath.Join(t.TempDir(), "absent"))
	require.NoError(t, err)
	assert.Zero(t, added)
}

func TestAddFile_Missing(t *testing.T) {
	reg := NewRegistry(nil)
	_, err := reg.AddFile("", filepath.Join(t.TempDir(), "absent.ttf"))

	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestInstall(t *testing.T) {
	reg := NewRegistry(nil)
	_, err := reg.AddFile("DejaVuSans", writeFont(t, t.TempDir(), "a.ttf", goregular.TTF))
	require.NoError(t, err)

	target := newFakeTarget("Helvetica")
	require.NoError(t, reg.Install(target, "Helvetica"))
	require.NoError(t, reg.Install(target, "DejaVuSans"))
	require.NoError(t, reg.Install(target, "DejaVuSans"))
	assert.Equal(t, []string{"DejaVuSans"}, target.registered)

	assert.Error(t, reg.Install(target, "Missing"))
}

func TestResolveTheme(t *testing.T) {
	reg := NewRegistry(nil)
	_, err := reg.AddFile("DejaVuSans", writeFont(t, t.TempDir(), "a.ttf", goregular.TTF))
	require.NoError(t, err)

	th := theme.Default()
	th.HeaderFont = "DejaVuSans-Bold"
	th.BodyFont = "DejaVuSans"

	target := newFakeTarget("Helvetica", "Helvetica-Bold")
	resolved := reg.ResolveTheme(th, target)

	assert.Equal(t, FallbackHeaderFont, resolved.HeaderFont)
	assert.Equal(t, "DejaVuSans", resolved.BodyFont)
	assert.Equal(t, []string{"DejaVuSans"}, target.registered)
}

func TestResolveTheme_RegistrationFailure(t *testing.T) {
	reg := NewRegistry(nil)
	_, err := reg.AddFile("DejaVuSans", writeFont(t, t.TempDir(), "a.ttf", goregular.TTF))
	require.NoError(t, err)

	th := theme.Default()
	th.BodyFont = "DejaVuSans"

	target := newFakeTarget("Helvetica", "Helvetica-Bold")
	target.fail = errors.New("embed failed")

	resolved := reg.ResolveTheme(th, target)
	assert.Equal(t, FallbackBodyFont, resolved.BodyFont)
	assert.Equal(t, "Helvetica-Bold", resolved.HeaderFont)
}

func TestInstallIconFont(t *testing.T) {
	reg := NewRegistry(nil)
	target := newFakeTarget()
	assert.False(t, reg.InstallIconFont(target))

	_, err := reg.AddFile(IconFontName, writeFont(t, t.TempDir(), "fa.ttf", goregular.TTF))
	require.NoError(t, err)
	assert.True(t, reg.InstallIconFont(target))
	assert.True(t, target.HasFont(IconFontName))
}
