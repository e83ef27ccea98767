// Package canvas provides a page canvas for CV templates on top of gofpdf.
//
// Coordinates are in points with the origin at the top-left corner of the
// page and y growing downwards. DrawString places text on its baseline.
package canvas

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/cv-generator/internal/layout"
	"github.com/jonathan/cv-generator/internal/theme"
	"github.com/jung-kurt/gofpdf"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/unicode/norm"
)

// Options configures a new Canvas.
type Options struct {
	PageSize layout.Size
	// Compress enables stream compression. Uncompressed output is easier to
	// post-process in other editors.
	Compress bool
	Logger   *zap.Logger
}

// Metadata is written to the PDF information dictionary.
type Metadata struct {
	Title    string
	Author   string
	Subject  string
	Keywords string
	Creator  string
}

type fontRef struct {
	family string
	style  string
	utf8   bool
}

// core fonts available without embedding, by PostScript name
var coreFonts = map[string]fontRef{
	"Helvetica":             {family: "Helvetica"},
	"Helvetica-Bold":        {family: "Helvetica", style: "B"},
	"Helvetica-Oblique":     {family: "Helvetica", style: "I"},
	"Helvetica-BoldOblique": {family: "Helvetica", style: "BI"},
	"Times-Roman":           {family: "Times"},
	"Times-Bold":            {family: "Times", style: "B"},
	"Times-Italic":          {family: "Times", style: "I"},
	"Times-BoldItalic":      {family: "Times", style: "BI"},
	"Courier":               {family: "Courier"},
	"Courier-Bold":          {family: "Courier", style: "B"},
	"Courier-Oblique":       {family: "Courier", style: "I"},
	"Courier-BoldOblique":   {family: "Courier", style: "BI"},
}

// IsCoreFont reports whether name is one of the standard PDF fonts.
func IsCoreFont(name string) bool {
	_, ok := coreFonts[name]
	return ok
}

// FontError reports a font that has not been registered with the canvas.
type FontError struct {
	Name    string
	Message string
	Cause   error
}

func (e *FontError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("font %q: %s: %v", e.Name, e.Message, e.Cause)
	}
	return fmt.Sprintf("font %q: %s", e.Name, e.Message)
}

func (e *FontError) Unwrap() error {
	return e.Cause
}

// Canvas draws CV pages into a PDF document.
type Canvas struct {
	pdf      *gofpdf.Fpdf
	size     layout.Size
	fonts    map[string]fontRef
	fontName string
	fontSize float64
	decorate func()
	images   int
	logger   *zap.Logger
}

// New creates an empty document. Call NewPage before drawing.
func New(opts Options) *Canvas {
	size := opts.PageSize
	if size.Width <= 0 || size.Height <= 0 {
		size = layout.A4
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: size.Width, Ht: size.Height},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCompression(opts.Compress)

	fonts := make(map[string]fontRef, len(coreFonts))
	for name, ref := range coreFonts {
		fonts[name] = ref
	}

	return &Canvas{
		pdf:    pdf,
		size:   size,
		fonts:  fonts,
		logger: logger,
	}
}

// PageSize returns the page dimensions.
func (c *Canvas) PageSize() layout.Size {
	return c.size
}

// RegisterFont embeds a TrueType font under name. The font is drawn as UTF-8.
func (c *Canvas) RegisterFont(name string, data []byte) error {
	if len(data) == 0 {
		return &FontError{Name: name, Message: "empty font data"}
	}
	c.pdf.AddUTF8FontFromBytes(name, "", data)
	if err := c.pdf.Error(); err != nil {
		c.pdf.ClearError()
		return &FontError{Name: name, Message: "failed to embed", Cause: err}
	}
	c.fonts[name] = fontRef{family: name, utf8: true}
	c.logger.Debug("registered font", zap.String("font", name))
	return nil
}

// HasFont reports whether name can be passed to SetFont.
func (c *Canvas) HasFont(name string) bool {
	_, ok := c.fonts[name]
	return ok
}

// SetFont selects the font used by DrawString and StringWidth.
func (c *Canvas) SetFont(name string, size float64) error {
	ref, ok := c.fonts[name]
	if !ok {
		return &FontError{Name: name, Message: "not registered"}
	}
	c.pdf.SetFont(ref.family, ref.style, size)
	c.fontName = name
	c.fontSize = size
	return nil
}

// Font returns the current font name and size.
func (c *Canvas) Font() (string, float64) {
	return c.fontName, c.fontSize
}

// StringWidth measures s in the current font.
func (c *Canvas) StringWidth(s string) float64 {
	return c.pdf.GetStringWidth(c.encode(s))
}

// StringWidthIn measures s in the given font without changing the current one.
func (c *Canvas) StringWidthIn(s, font string, size float64) float64 {
	prevName, prevSize := c.fontName, c.fontSize
	if err := c.SetFont(font, size); err != nil {
		return 0
	}
	w := c.StringWidth(s)
	if prevName != "" {
		_ = c.SetFont(prevName, prevSize)
	}
	return w
}

// SetFillColor sets the colour used for filled shapes and text.
func (c *Canvas) SetFillColor(col theme.Color) {
	c.pdf.SetFillColor(col.R, col.G, col.B)
	c.pdf.SetTextColor(col.R, col.G, col.B)
}

// SetStrokeColor sets the colour used for lines and outlines.
func (c *Canvas) SetStrokeColor(col theme.Color) {
	c.pdf.SetDrawColor(col.R, col.G, col.B)
}

// SetLineWidth sets the stroke width.
func (c *Canvas) SetLineWidth(w float64) {
	c.pdf.SetLineWidth(w)
}

func shapeStyle(fill, stroke bool) string {
	switch {
	case fill && stroke:
		return "FD"
	case fill:
		return "F"
	default:
		return "D"
	}
}

// Rect draws a rectangle with its top-left corner at (x, y).
func (c *Canvas) Rect(x, y, w, h float64, fill, stroke bool) {
	c.pdf.Rect(x, y, w, h, shapeStyle(fill, stroke))
}

// Circle draws a circle centred on (x, y).
func (c *Canvas) Circle(x, y, r float64, fill, stroke bool) {
	c.pdf.Circle(x, y, r, shapeStyle(fill, stroke))
}

// Line draws a straight line.
func (c *Canvas) Line(x1, y1, x2, y2 float64) {
	c.pdf.Line(x1, y1, x2, y2)
}

// DrawString draws s with its baseline at y.
func (c *Canvas) DrawString(x, y float64, s string) {
	if s == "" {
		return
	}
	c.pdf.Text(x, y, c.encode(s))
}

// DrawCentredString draws s centred horizontally on x.
func (c *Canvas) DrawCentredString(x, y float64, s string) {
	c.DrawString(x-c.StringWidth(s)/2, y, s)
}

// DrawRightString draws s ending at x.
func (c *Canvas) DrawRightString(x, y float64, s string) {
	c.DrawString(x-c.StringWidth(s), y, s)
}

// SetPageDecorator registers fn to run after every NewPage, for backgrounds
// and sidebars that repeat on each page.
func (c *Canvas) SetPageDecorator(fn func()) {
	c.decorate = fn
}

// NewPage starts a page, restores the current font and runs the decorator.
func (c *Canvas) NewPage() {
	c.pdf.AddPage()
	if c.fontName != "" {
		_ = c.SetFont(c.fontName, c.fontSize)
	}
	c.logger.Debug("new page", zap.Int("page", c.pdf.PageNo()))
	if c.decorate != nil {
		c.decorate()
	}
}

// PageNumber returns the current page number, starting at 1.
func (c *Canvas) PageNumber() int {
	return c.pdf.PageNo()
}

// PageCount returns the number of pages started so far.
func (c *Canvas) PageCount() int {
	return c.pdf.PageCount()
}

// SetPage moves drawing to an existing page, starting at 1. Out of range
// values are ignored.
func (c *Canvas) SetPage(n int) {
	if n < 1 || n > c.pdf.PageCount() || n == c.pdf.PageNo() {
		return
	}
	c.pdf.SetPage(n)
	c.refreshFont()
}

// refreshFont re-emits the current font into the page content stream.
// gofpdf skips SetFont calls that match its cached state, which is stale
// after switching pages.
func (c *Canvas) refreshFont() {
	if c.fontName == "" {
		return
	}
	c.pdf.SetFontSize(c.fontSize + 1)
	c.pdf.SetFontSize(c.fontSize)
}

// SetMetadata fills the document information dictionary.
func (c *Canvas) SetMetadata(m Metadata) {
	c.pdf.SetTitle(m.Title, true)
	c.pdf.SetAuthor(m.Author, true)
	c.pdf.SetSubject(m.Subject, true)
	c.pdf.SetKeywords(m.Keywords, true)
	c.pdf.SetCreator(m.Creator, true)
}

// Err returns the first drawing error, if any.
func (c *Canvas) Err() error {
	return c.pdf.Error()
}

// Output writes the document to w.
func (c *Canvas) Output(w io.Writer) error {
	if c.pdf.PageCount() == 0 {
		c.NewPage()
	}
	return c.pdf.Output(w)
}

// WriteFile writes the document to path, creating parent directories.
func (c *Canvas) WriteFile(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := c.Output(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	return f.Close()
}

// encode prepares s for the current font: UTF-8 fonts take NFC text as is;
// core fonts need Windows-1252 bytes.
func (c *Canvas) encode(s string) string {
	s = norm.NFC.String(s)
	if ref, ok := c.fonts[c.fontName]; ok && ref.utf8 {
		return s
	}
	return toWindows1252(s)
}

// toWindows1252 maps each rune to its Windows-1252 byte. Runes outside the
// code page fall back to their unaccented base letter, then to '?'.
func toWindows1252(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		if b, ok := charmap.Windows1252.EncodeRune(r); ok {
			sb.WriteByte(b)
			continue
		}
		if base := []rune(norm.NFD.String(string(r))); len(base) > 0 {
			if b, ok := charmap.Windows1252.EncodeRune(base[0]); ok && base[0] != r {
				sb.WriteByte(b)
				continue
			}
		}
		sb.WriteByte('?')
	}
	return sb.String()
}
