package rendering

import (
	"math"
	"strings"

	"github.com/jonathan/cv-generator/internal/layout"
	"github.com/jonathan/cv-generator/internal/theme"
	"go.uber.org/zap"
)

const (
	minimalNameSize     = 18.0
	minimalContactSize  = 9.0
	minimalContactGap   = 25.0
	maxMinimalContacts  = 4
	minimalUnderline    = 0.4
	minimalContentStart = 1.5 * theme.PointsPerInch
)

// Minimal is a single column with a light header, for short CVs and
// previews.
type Minimal struct{}

// Name implements Template.
func (Minimal) Name() string { return "minimal" }

// Description implements Template.
func (Minimal) Description() string {
	return "Single column with a light header and whole sections per page"
}

// Features implements Template.
func (Minimal) Features() []string {
	return []string{
		"compact header with horizontal contact line",
		"optional small profile picture",
		"sections never split across pages when they fit on one",
		"spacing adapts to how full the page is",
	}
}

// Render implements Template.
func (Minimal) Render(p *Page) error {
	r := &minimal{p: p}
	return r.render()
}

type minimal struct {
	p    *Page
	x, w float64
}

// minimalSection is a titled block whose height is known before drawing.
type minimalSection struct {
	title  string
	height float64
	draw   func(y float64) float64
}

func (r *minimal) render() error {
	p := r.p
	l := p.Layout
	r.x = l.LeftMargin
	r.w = l.ContentWidth()

	top := l.TopMargin + minimalContentStart
	p.SetTop(top)
	p.Canvas.SetPageDecorator(r.drawHeader)
	p.Canvas.NewPage()

	sections := r.sections()
	total := 0.0
	for _, s := range sections {
		total += s.height
	}
	ratio := total / math.Max(1, p.Bottom()-top)
	spacing := layout.AdjustSectionSpacing(p.Theme.SectionSpacing, ratio,
		layout.DefaultSectionSpacingMin, layout.DefaultSectionSpacingMax)
	p.log().Debug("minimal layout",
		zap.Int("sections", len(sections)),
		zap.Float64("content_ratio", ratio),
		zap.Float64("section_spacing", spacing))

	y := top
	for _, s := range sections {
		y = r.placeSection(y, s.height)
		y = r.sectionHeader(s.title, y)
		y = s.draw(y)
		y += spacing
	}
	return p.Canvas.Err()
}

// drawHeader draws the name, rule and contact line. It runs on every page.
func (r *minimal) drawHeader() {
	p := r.p
	l := p.Layout
	pageW := l.PageSize.Width

	nameY := l.TopMargin + 0.3*theme.PointsPerInch
	name := p.Truncate(p.Data.CandidateName(), r.w, TextStyle{Font: p.Theme.HeaderFont, Size: minimalNameSize})
	p.setFont(p.Theme.HeaderFont, minimalNameSize)
	p.Canvas.SetFillColor(p.Theme.Primary())
	p.Canvas.DrawCentredString(pageW/2, nameY, name)

	ruleY := nameY + 0.2*theme.PointsPerInch
	p.Canvas.SetStrokeColor(p.Theme.Accent())
	p.Canvas.SetLineWidth(1)
	p.Canvas.Line(r.x, ruleY, r.x+r.w, ruleY)

	r.drawContactLine(ruleY + 18)

	if p.Canvas.PageNumber() == 1 {
		radius := math.Min(30, l.RightMargin*0.8)
		p.DrawProfileImage(pageW-l.RightMargin-radius, l.TopMargin+radius, radius)
	}
}

func (r *minimal) drawContactLine(y float64) {
	p := r.p
	contacts := p.Data.Contacts()
	if len(contacts) > maxMinimalContacts {
		contacts = contacts[:maxMinimalContacts]
	}
	if len(contacts) == 0 {
		return
	}

	style := TextStyle{Font: p.Theme.BodyFont, Size: minimalContactSize}
	each := (r.w - minimalContactGap*float64(len(contacts)-1)) / float64(len(contacts))
	texts := make([]string, len(contacts))
	for i, c := range contacts {
		text := c.Text
		if looksLikeURL(text) {
			p.setFont(style.Font, style.Size)
			if p.Canvas.StringWidth(text) > each {
				text = shortURL(text)
			}
		}
		texts[i] = p.Truncate(text, each, style)
	}

	p.setFont(style.Font, style.Size)
	widths := make([]float64, len(texts))
	total := minimalContactGap * float64(len(texts)-1)
	for i, t := range texts {
		widths[i] = p.Canvas.StringWidth(t)
		total += widths[i]
	}

	x := r.x + (r.w-total)/2
	p.Canvas.SetFillColor(p.Theme.Text())
	for i, t := range texts {
		p.Canvas.DrawString(x, y, t)
		x += widths[i] + minimalContactGap
	}
}

func (r *minimal) headerHeight() float64 {
	return r.p.Theme.HeaderFontSize + 4 + r.p.Theme.LineSpacing + 2
}

// placeSection returns the y a section of height starts at. A section taller
// than a page flows, but its header still needs room for the first lines.
func (r *minimal) placeSection(y, height float64) float64 {
	p := r.p
	y = p.KeepTogether(y, height)
	return p.CheckPageBreak(y, r.headerHeight()+2*p.Theme.LineSpacing)
}

// sectionHeader draws a primary title with a short accent underline.
func (r *minimal) sectionHeader(title string, y float64) float64 {
	p := r.p
	size := p.Theme.HeaderFontSize
	p.setFont(p.Theme.HeaderFont, size)
	p.Canvas.SetFillColor(p.Theme.Primary())
	p.Canvas.DrawString(r.x, y+size, title)

	lineY := y + size + 4
	p.Canvas.SetStrokeColor(p.Theme.Accent())
	p.Canvas.SetLineWidth(0.5)
	p.Canvas.Line(r.x, lineY, r.x+r.w*minimalUnderline, lineY)
	return lineY + p.Theme.LineSpacing + 2
}

func (r *minimal) sections() []minimalSection {
	p := r.p
	cv := p.Data
	x, w := r.x, r.w
	var out []minimalSection
	add := func(title string, body float64, draw func(y float64) float64) {
		out = append(out, minimalSection{title: title, height: r.headerHeight() + body, draw: draw})
	}

	if cv.Profile != "" {
		style := p.BodyStyle()
		add(titleProfile, p.TextHeight(cv.Profile, w, style), func(y float64) float64 {
			return p.FlowText(cv.Profile, x, y, w, style)
		})
	}

	if len(cv.TechnicalSkills) > 0 {
		lines := r.skillLines()
		style := p.BodyStyle()
		h := 0.0
		for _, l := range lines {
			h += p.TextHeight(l, w, style)
		}
		add(titleSkills, h, func(y float64) float64 {
			for _, l := range lines {
				y = p.CheckPageBreak(y, p.TextHeight(l, w, style))
				y = p.DrawWrappedText(l, x, y, w, style)
			}
			return y
		})
	}

	if companies := cv.Companies(); len(companies) > 0 {
		heading := p.StrongStyle()
		heading.Color = p.Theme.Primary()
		heading.Hyphenate = false
		h := 0.0
		for i, c := range companies {
			h += p.TextHeight(companyHeading(c, i == 0), w, heading) + rolesHeight(p, c.Roles, w) + p.Theme.ParagraphSpacing
		}
		add(titleExperience, h, func(y float64) float64 {
			for i, c := range companies {
				text := companyHeading(c, i == 0)
				y = p.CheckPageBreak(y, p.TextHeight(text, w, heading)+2*p.Theme.LineSpacing)
				y = p.DrawWrappedText(text, x, y, w, heading)
				for _, role := range c.Roles {
					y = drawRole(p, role, x, y, w)
				}
				y += p.Theme.ParagraphSpacing
			}
			return y
		})
	}

	if items := cv.EducationItems(); len(items) > 0 {
		strong := p.StrongStyle()
		strong.Hyphenate = false
		muted := p.BodyStyle()
		muted.Size--
		muted.Color = p.Theme.Secondary()
		line := func(i int) (string, string) {
			item := items[i]
			head := item.Institution
			if item.Degree != "" {
				head = item.Degree + " - " + item.Institution
			}
			return head, educationDuration(item)
		}
		h := 0.0
		for i := range items {
			head, dur := line(i)
			h += p.TextHeight(head, w, strong)
			if dur != "" {
				h += muted.LineHeight
			}
		}
		add(titleEducation, h, func(y float64) float64 {
			for i := range items {
				head, dur := line(i)
				y = p.CheckPageBreak(y, p.TextHeight(head, w, strong)+muted.LineHeight)
				y = p.DrawWrappedText(head, x, y, w, strong)
				if dur != "" {
					y = p.DrawWrappedText(dur, x, y, w, muted)
				}
			}
			return y
		})
	}

	if len(cv.Projects) > 0 {
		h := 0.0
		for _, proj := range cv.Projects {
			h += projectHeight(p, proj, w)
		}
		add(titleProjects, h, func(y float64) float64 {
			for _, proj := range cv.Projects {
				y = drawProject(p, proj, x, y, w)
			}
			return y
		})
	}

	if len(cv.AdditionalInfo) > 0 {
		body := p.BodyStyle()
		h := 0.0
		for _, info := range cv.AdditionalInfo {
			h += p.BulletedTextHeight(info, w, body)
		}
		add("ADDITIONAL INFORMATION", h, func(y float64) float64 {
			for _, info := range cv.AdditionalInfo {
				y = p.CheckPageBreak(y, p.BulletedTextHeight(info, w, body))
				y = p.DrawBulletedText(info, x, y, w, body, p.Theme.Secondary())
			}
			return y
		})
	}
	return out
}

// skillLines renders each category inline as "Name: a, b" when that fits on
// one line, and as the name followed by the list otherwise.
func (r *minimal) skillLines() []string {
	p := r.p
	var lines []string
	for _, cat := range p.Data.TechnicalSkills {
		inline := cat.Name + ": " + skillList(cat)
		if len(p.WrapLines(inline, r.w, TextStyle{Hyphenate: false})) <= 1 {
			lines = append(lines, inline)
			continue
		}
		lines = append(lines, cat.Name+":", strings.TrimSpace(skillList(cat)))
	}
	return lines
}
