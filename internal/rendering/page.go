package rendering

import (
	"os"
	"strings"

	"github.com/jonathan/cv-generator/internal/canvas"
	"github.com/jonathan/cv-generator/internal/fonts"
	"github.com/jonathan/cv-generator/internal/layout"
	"github.com/jonathan/cv-generator/internal/textfit"
	"github.com/jonathan/cv-generator/internal/theme"
	"github.com/jonathan/cv-generator/internal/types"
	"go.uber.org/zap"
)

// Shared drawing constants, in points.
const (
	SectionHeaderHeight = 20.0
	// PageBreakBuffer is kept free above the bottom margin.
	PageBreakBuffer = 15.0
	Bullet          = "•"

	sectionIconSize = 12.0
	iconGap         = 8.0
	// profile pictures are outlined with this stroke width
	pictureBorder = 2.0
)

// Align is the horizontal alignment of wrapped text.
type Align int

// Supported alignments.
const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
	AlignJustify
)

// ParseAlign maps "left", "center", "right" and "justify" to an Align.
// Anything else is left aligned.
func ParseAlign(s string) Align {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "center", "centre":
		return AlignCenter
	case "right":
		return AlignRight
	case "justify":
		return AlignJustify
	default:
		return AlignLeft
	}
}

// TextStyle controls how a block of text is wrapped and drawn. Zero font,
// size and line height fall back to the theme body values.
type TextStyle struct {
	Font       string
	Size       float64
	LineHeight float64
	Indent     float64
	Hyphenate  bool
	Align      Align
	Color      theme.Color
}

// Page is the drawing context handed to a template: the canvas plus the
// data, theme and layout of the CV being rendered.
type Page struct {
	Canvas *canvas.Canvas
	Data   *types.CVData
	Theme  theme.Theme
	Layout layout.Layout
	// PicturePath is an optional profile picture.
	PicturePath string
	// Icons reports whether the icon font is installed on the canvas.
	Icons bool
	// Density is the content density score of Data, from 0 to 1.
	Density float64
	Logger  *zap.Logger

	top float64
}

func (p *Page) log() *zap.Logger {
	if p.Logger == nil {
		return zap.NewNop()
	}
	return p.Logger
}

// SetTop sets where content resumes after a page break.
func (p *Page) SetTop(y float64) {
	p.top = y
}

// Top returns where content resumes after a page break.
func (p *Page) Top() float64 {
	return p.top
}

// Bottom is the lowest y content may reach.
func (p *Page) Bottom() float64 {
	return p.Layout.PageSize.Height - p.Layout.BottomMargin
}

// RemainingHeight is the space left between y and the bottom margin.
func (p *Page) RemainingHeight(y float64) float64 {
	return p.Bottom() - y
}

// Fits reports whether needed points of content fit below y on this page.
func (p *Page) Fits(y, needed float64) bool {
	return y+needed <= p.Bottom()-PageBreakBuffer
}

// CheckPageBreak moves to the next page when needed points do not fit below
// y and returns the y to continue from.
func (p *Page) CheckPageBreak(y, needed float64) float64 {
	if p.Fits(y, needed) {
		return y
	}
	p.NextPage()
	return p.top
}

// KeepTogether moves to the next page when a block of height does not fit
// below y but would fit on an empty page, and returns the y to draw at.
func (p *Page) KeepTogether(y, height float64) float64 {
	if p.Fits(y, height) || height > p.Bottom()-PageBreakBuffer-p.top {
		return y
	}
	p.NextPage()
	return p.top
}

// NextPage continues on the following page, starting one when the document
// has no more pages. New pages run the canvas page decorator.
func (p *Page) NextPage() {
	c := p.Canvas
	if c.PageNumber() < c.PageCount() {
		c.SetPage(c.PageNumber() + 1)
	} else {
		c.NewPage()
	}
	p.log().Debug("page break", zap.Int("page", c.PageNumber()))
}

// Cursor is a vertical position on a specific page.
type Cursor struct {
	Page int
	Y    float64
}

// Mark records y on the current page.
func (p *Page) Mark(y float64) Cursor {
	return Cursor{Page: p.Canvas.PageNumber(), Y: y}
}

// Resume returns to the page of c and its y.
func (p *Page) Resume(c Cursor) float64 {
	p.Canvas.SetPage(c.Page)
	return c.Y
}

func (p *Page) setFont(name string, size float64) {
	if err := p.Canvas.SetFont(name, size); err != nil {
		p.log().Warn("font unavailable", zap.String("font", name), zap.Error(err))
		_ = p.Canvas.SetFont(fonts.FallbackBodyFont, size)
	}
}

// Processor selects font and returns a text processor measuring with it.
func (p *Page) Processor(font string, size float64) *textfit.Processor {
	p.setFont(font, size)
	return textfit.New(p.Canvas)
}

// BodyStyle is the theme body text in the text colour.
func (p *Page) BodyStyle() TextStyle {
	return TextStyle{
		Font:       p.Theme.BodyFont,
		Size:       p.Theme.BodyFontSize,
		LineHeight: p.Theme.LineSpacing,
		Hyphenate:  true,
		Color:      p.Theme.Text(),
	}
}

// StrongStyle is body text set in the header font.
func (p *Page) StrongStyle() TextStyle {
	s := p.BodyStyle()
	s.Font = p.Theme.HeaderFont
	return s
}

func (p *Page) normalize(s TextStyle) TextStyle {
	if s.Font == "" {
		s.Font = p.Theme.BodyFont
	}
	if s.Size <= 0 {
		s.Size = p.Theme.BodyFontSize
	}
	if s.LineHeight <= 0 {
		s.LineHeight = p.Theme.LineSpacing
	}
	return s
}

// WrapLines wraps text to maxWidth less the style indent.
func (p *Page) WrapLines(text string, maxWidth float64, s TextStyle) []string {
	s = p.normalize(s)
	return p.Processor(s.Font, s.Size).Wrap(text, maxWidth-s.Indent, s.Hyphenate)
}

// TextHeight is the height text takes when wrapped to maxWidth.
func (p *Page) TextHeight(text string, maxWidth float64, s TextStyle) float64 {
	s = p.normalize(s)
	return float64(len(p.WrapLines(text, maxWidth, s))) * s.LineHeight
}

// BulletWidth is the width of the bullet glyph in the style font.
func (p *Page) BulletWidth(s TextStyle) float64 {
	s = p.normalize(s)
	p.setFont(s.Font, s.Size)
	return p.Canvas.StringWidth(Bullet)
}

// BulletedTextHeight is TextHeight for text drawn after a bullet.
func (p *Page) BulletedTextHeight(text string, maxWidth float64, s TextStyle) float64 {
	s = p.normalize(s)
	bullet := p.BulletWidth(s)
	return p.Processor(s.Font, s.Size).EstimateBulletedHeight(text, maxWidth, bullet, s.LineHeight, s.Hyphenate)
}

// Truncate shortens text with an ellipsis to fit maxWidth in the style font.
func (p *Page) Truncate(text string, maxWidth float64, s TextStyle) string {
	s = p.normalize(s)
	return p.Processor(s.Font, s.Size).TruncateWithEllipsis(text, maxWidth)
}

// DrawWrappedText draws text wrapped to maxWidth with its first baseline at
// y and returns the baseline following the last line.
func (p *Page) DrawWrappedText(text string, x, y, maxWidth float64, s TextStyle) float64 {
	s = p.normalize(s)
	lines := p.WrapLines(text, maxWidth, s)
	p.setFont(s.Font, s.Size)
	p.Canvas.SetFillColor(s.Color)

	for i, line := range lines {
		last := i == len(lines)-1 || lines[i+1] == ""
		p.drawLine(line, x, y, maxWidth, s, last)
		y += s.LineHeight
	}
	return y
}

// FlowText is DrawWrappedText for text that may run past the bottom of the
// page: lines that do not fit continue on the next page.
func (p *Page) FlowText(text string, x, y, maxWidth float64, s TextStyle) float64 {
	s = p.normalize(s)
	if p.Fits(y, p.TextHeight(text, maxWidth, s)) {
		return p.DrawWrappedText(text, x, y, maxWidth, s)
	}
	lines := p.WrapLines(text, maxWidth, s)
	for i, line := range lines {
		y = p.CheckPageBreak(y, s.LineHeight)
		p.setFont(s.Font, s.Size)
		p.Canvas.SetFillColor(s.Color)
		last := i == len(lines)-1 || lines[i+1] == ""
		p.drawLine(line, x, y, maxWidth, s, last)
		y += s.LineHeight
	}
	return y
}

// drawLine draws one wrapped line in the current font. The last line of a
// justified paragraph stays ragged.
func (p *Page) drawLine(line string, x, y, maxWidth float64, s TextStyle, last bool) {
	switch s.Align {
	case AlignCenter:
		p.Canvas.DrawString(x+(maxWidth-p.Canvas.StringWidth(line))/2, y, line)
	case AlignRight:
		p.Canvas.DrawString(x+maxWidth-p.Canvas.StringWidth(line), y, line)
	case AlignJustify:
		if last || !p.drawJustified(line, x+s.Indent, y, maxWidth-s.Indent) {
			p.Canvas.DrawString(x+s.Indent, y, line)
		}
	default:
		p.Canvas.DrawString(x+s.Indent, y, line)
	}
}

// drawJustified spreads the words of line across width. Lines that would
// need gaps wider than three spaces are left for the caller to draw.
func (p *Page) drawJustified(line string, x, y, width float64) bool {
	words := strings.Fields(line)
	if len(words) < 2 {
		return false
	}
	total := 0.0
	for _, w := range words {
		total += p.Canvas.StringWidth(w)
	}
	gap := (width - total) / float64(len(words)-1)
	if gap < 0 || gap > 3*p.Canvas.StringWidth(" ") {
		return false
	}
	for _, w := range words {
		p.Canvas.DrawString(x, y, w)
		x += p.Canvas.StringWidth(w) + gap
	}
	return true
}

// DrawBulletedText draws a bullet at x and the wrapped text indented past
// it. It returns the baseline following the last line.
func (p *Page) DrawBulletedText(text string, x, y, maxWidth float64, s TextStyle, bulletColor theme.Color) float64 {
	s = p.normalize(s)
	bullet := p.BulletWidth(s)

	p.Canvas.SetFillColor(bulletColor)
	p.Canvas.DrawString(x, y, Bullet)

	textX := x + bullet + textfit.BulletGap
	s.Indent = 0
	s.Align = AlignLeft
	return p.DrawWrappedText(text, textX, y, maxWidth-(textX-x), s)
}

// DrawIcon draws icon with its baseline at y and returns its width. Without
// the icon font, or for a zero icon, a bullet is drawn instead.
func (p *Page) DrawIcon(icon rune, x, y, size float64, col theme.Color) float64 {
	p.Canvas.SetFillColor(col)
	if p.Icons && icon != 0 {
		p.setFont(fonts.IconFontName, size)
		glyph := string(icon)
		p.Canvas.DrawString(x, y, glyph)
		return p.Canvas.StringWidth(glyph)
	}
	p.setFont(p.Theme.BodyFont, size)
	p.Canvas.DrawString(x, y, Bullet)
	return p.Canvas.StringWidth(Bullet)
}

// IconWidth is the width DrawIcon would use.
func (p *Page) IconWidth(icon rune, size float64) float64 {
	if p.Icons && icon != 0 {
		p.setFont(fonts.IconFontName, size)
		return p.Canvas.StringWidth(string(icon))
	}
	p.setFont(p.Theme.BodyFont, size)
	return p.Canvas.StringWidth(Bullet)
}

// SectionHeaderHeightFor is the height DrawSectionHeader uses for title.
func (p *Page) SectionHeaderHeightFor(title string, width float64, icon rune) float64 {
	lines := p.headerLines(title, width, icon)
	if len(lines) <= 1 {
		return SectionHeaderHeight
	}
	return float64(len(lines))*p.Theme.LineSpacing + 10
}

func (p *Page) headerLines(title string, width float64, icon rune) []string {
	avail := width - 5
	if icon != 0 {
		avail -= p.IconWidth(icon, sectionIconSize) + iconGap
	}
	lines := p.Processor(p.Theme.HeaderFont, p.Theme.HeaderFontSize).Wrap(title, avail, false)
	if len(lines) == 0 {
		return []string{""}
	}
	return lines
}

// DrawSectionHeader draws title on an accent band starting at y, preceded
// by icon when non-zero. Titles too wide for the band are split over
// several lines. It returns the y below the band.
func (p *Page) DrawSectionHeader(title string, x, y, width float64, icon rune) float64 {
	lines := p.headerLines(title, width, icon)
	height := p.SectionHeaderHeightFor(title, width, icon)

	p.Canvas.SetFillColor(p.Theme.Accent())
	p.Canvas.Rect(x-5, y, width, height, true, false)

	middle := y + height/2
	textX := x
	if icon != 0 {
		w := p.DrawIcon(icon, x, middle+sectionIconSize/2-2, sectionIconSize, p.Theme.Text())
		textX = x + w + iconGap
	}

	p.setFont(p.Theme.HeaderFont, p.Theme.HeaderFontSize)
	p.Canvas.SetFillColor(p.Theme.Text())
	if len(lines) == 1 {
		p.Canvas.DrawString(textX, middle+p.Theme.HeaderFontSize/2-2, lines[0])
		return y + height
	}
	for i, line := range lines {
		baseline := y + 5 + float64(i+1)*p.Theme.LineSpacing - p.Theme.LineSpacing*0.25
		p.Canvas.DrawString(textX, baseline, line)
	}
	return y + height
}

// HasPicture reports whether a readable profile picture was supplied.
func (p *Page) HasPicture() bool {
	if p.PicturePath == "" {
		return false
	}
	info, err := os.Stat(p.PicturePath)
	return err == nil && !info.IsDir()
}

// DrawProfileImage draws the profile picture in a circle outlined with the
// secondary colour. It reports whether the picture was drawn.
func (p *Page) DrawProfileImage(cx, cy, r float64) bool {
	if !p.HasPicture() {
		return false
	}
	if err := p.Canvas.DrawImageInCircle(p.PicturePath, cx, cy, r, p.Theme.Secondary()); err != nil {
		return false
	}
	return true
}

// SectionSpacing scales the theme section spacing with the content
// density: dense CVs get tighter sections, sparse ones more air.
func (p *Page) SectionSpacing() float64 {
	return layout.AdjustSectionSpacing(
		p.Theme.SectionSpacing,
		p.Density,
		layout.DefaultSectionSpacingMin,
		layout.DefaultSectionSpacingMax,
	)
}
