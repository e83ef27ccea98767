package rendering

import (
	"math"

	"github.com/jonathan/cv-generator/internal/theme"
	"github.com/jonathan/cv-generator/internal/types"
)

const (
	sidebarRatio    = 0.33
	modernNameSize  = 24.0
	modernTitleSize = 14.0
	sidebarIconSize = 9.0
	sidebarGap      = 6.0
)

// Modern is a full-height coloured sidebar holding the picture, contacts,
// skills and education next to a main column with the career history.
type Modern struct{}

// Name implements Template.
func (Modern) Name() string { return "modern" }

// Description implements Template.
func (Modern) Description() string {
	return "Coloured full-height sidebar with contacts and skills beside the career history"
}

// Features implements Template.
func (Modern) Features() []string {
	return []string{
		"full-height sidebar repeated on every page",
		"optional circular profile picture",
		"right-aligned company durations",
		"underlined section headers",
	}
}

// Render implements Template.
func (Modern) Render(p *Page) error {
	r := &modern{p: p}
	return r.render()
}

type modern struct {
	p        *Page
	sidebarW float64

	sideX, sideW float64
	mainX, mainW float64
}

func (r *modern) render() error {
	p := r.p
	l := p.Layout
	pageW := l.PageSize.Width

	r.sidebarW = pageW * sidebarRatio
	r.sideX = l.LeftMargin
	r.sideW = r.sidebarW - 2*l.LeftMargin
	r.mainX = r.sidebarW + 0.3*theme.PointsPerInch
	r.mainW = pageW - r.mainX - l.RightMargin

	p.Canvas.SetPageDecorator(r.decorate)
	p.Canvas.NewPage()
	p.SetTop(l.TopMargin + p.Theme.LineSpacing)

	sideTop := l.TopMargin + p.Theme.LineSpacing
	radius := math.Min(r.sideW/3, 1.2*theme.PointsPerInch)
	cy := 1.5 * theme.PointsPerInch
	if p.DrawProfileImage(r.sidebarW/2, cy, radius) {
		sideTop = cy + radius + 25
	}

	start := p.Mark(sideTop)
	side := r.drawSidebar(start)

	p.Canvas.SetPage(1)
	mainTop := r.drawName()
	main := r.drawMain(p.Mark(mainTop))

	last := side.Page
	if main.Page > last {
		last = main.Page
	}
	p.Canvas.SetPage(last)
	return p.Canvas.Err()
}

func (r *modern) decorate() {
	p := r.p
	p.Canvas.SetFillColor(p.Theme.Primary())
	p.Canvas.Rect(0, 0, r.sidebarW, p.Layout.PageSize.Height, true, false)
}

// drawName draws the name and title and returns where sections start.
func (r *modern) drawName() float64 {
	p := r.p
	top := p.Layout.TopMargin

	name := p.Truncate(p.Data.CandidateName(), r.mainW, TextStyle{Font: p.Theme.HeaderFont, Size: modernNameSize})
	p.setFont(p.Theme.HeaderFont, modernNameSize)
	p.Canvas.SetFillColor(p.Theme.Primary())
	p.Canvas.DrawString(r.mainX, top+0.5*theme.PointsPerInch, name)

	if c := p.Data.Candidate; c != nil && c.Title != "" {
		p.setFont(p.Theme.BodyFont, modernTitleSize)
		p.Canvas.SetFillColor(p.Theme.Secondary())
		p.Canvas.DrawString(r.mainX, top+0.8*theme.PointsPerInch, c.Title)
	}
	return top + 1.2*theme.PointsPerInch
}

// sidebarHeader draws a white title underlined in the secondary colour.
func (r *modern) sidebarHeader(title string, y float64) float64 {
	p := r.p
	size := p.Theme.HeaderFontSize - 2
	y = p.CheckPageBreak(y, size+3*p.Theme.LineSpacing)

	p.setFont(p.Theme.HeaderFont, size)
	p.Canvas.SetFillColor(theme.White)
	p.Canvas.DrawString(r.sideX, y+size, title)

	ruleY := y + size + 4
	p.Canvas.SetStrokeColor(p.Theme.Secondary())
	p.Canvas.SetLineWidth(1)
	p.Canvas.Line(r.sideX, ruleY, r.sideX+r.sideW, ruleY)
	return ruleY + p.Theme.LineSpacing + 2
}

func (r *modern) sidebarStyle() TextStyle {
	s := r.p.BodyStyle()
	s.Size = r.p.Theme.BodyFontSize - 1.5
	s.LineHeight = r.p.Theme.LineSpacing - 1
	s.Color = theme.White
	return s
}

func (r *modern) drawSidebar(start Cursor) Cursor {
	p := r.p
	y := start.Y
	x, w := r.sideX, r.sideW
	spacing := p.SectionSpacing()
	body := r.sidebarStyle()

	if contacts := p.Data.Contacts(); len(contacts) > 0 {
		y = r.sidebarHeader("CONTACT", y)
		for _, c := range contacts {
			y = r.drawContact(c, y)
		}
		y += spacing
	}

	if len(p.Data.TechnicalSkills) > 0 {
		title := titleSkills
		p.setFont(p.Theme.HeaderFont, p.Theme.HeaderFontSize-2)
		if p.Canvas.StringWidth(title) > w {
			title = "TECH SKILLS"
		}
		y = r.sidebarHeader(title, y)

		strong := body
		strong.Font = p.Theme.HeaderFont
		strong.Hyphenate = false
		for _, cat := range p.Data.TechnicalSkills {
			list := skillList(cat)
			y = p.CheckPageBreak(y, p.TextHeight(cat.Name, w, strong)+p.TextHeight(list, w, body))
			y = p.DrawWrappedText(cat.Name, x, y, w, strong)
			y = p.DrawWrappedText(list, x, y, w, body)
			y += p.Theme.ParagraphSpacing / 2
		}
		y += spacing
	}

	if items := p.Data.EducationItems(); len(items) > 0 {
		y = r.sidebarHeader(titleEducation, y)
		strong := body
		strong.Font = p.Theme.HeaderFont
		strong.Hyphenate = false
		muted := body
		muted.Color = p.Theme.Accent()
		for _, item := range items {
			duration := educationDuration(item)
			height := p.TextHeight(item.Degree, w, strong) + p.TextHeight(item.Institution, w, body)
			if duration != "" {
				height += muted.LineHeight
			}
			y = p.CheckPageBreak(y, height)
			if item.Degree != "" {
				y = p.DrawWrappedText(item.Degree, x, y, w, strong)
			}
			y = p.DrawWrappedText(item.Institution, x, y, w, body)
			if duration != "" {
				y = p.DrawWrappedText(duration, x, y, w, muted)
			}
			y += p.Theme.ParagraphSpacing
		}
		y += spacing
	}

	if len(p.Data.AdditionalInfo) > 0 {
		y = r.sidebarHeader(titleMoreInfo, y)
		for _, info := range p.Data.AdditionalInfo {
			y = p.CheckPageBreak(y, p.BulletedTextHeight(info, w, body))
			y = p.DrawBulletedText(info, x, y, w, body, p.Theme.Accent())
		}
	}
	return p.Mark(y)
}

func (r *modern) drawContact(c types.ContactItem, y float64) float64 {
	p := r.p
	body := r.sidebarStyle()
	body.Hyphenate = false

	icon := ParseIcon(c.Icon)
	iconW := p.IconWidth(icon, sidebarIconSize) + sidebarGap
	textW := r.sideW - iconW

	text := c.Text
	if looksLikeURL(text) {
		p.setFont(body.Font, body.Size)
		if p.Canvas.StringWidth(text) > textW {
			text = p.Truncate(shortURL(text), textW, body)
		}
	}

	y = p.CheckPageBreak(y, p.TextHeight(text, textW, body))
	p.DrawIcon(icon, r.sideX, y, sidebarIconSize, p.Theme.Accent())
	y = p.DrawWrappedText(text, r.sideX+iconW, y, textW, body)
	return y + 3
}

// mainHeader draws a primary title with a rule below it.
func (r *modern) mainHeader(title string, y float64) float64 {
	p := r.p
	size := p.Theme.HeaderFontSize + 1
	y = p.CheckPageBreak(y, size+0.15*theme.PointsPerInch+3*p.Theme.LineSpacing)

	p.setFont(p.Theme.HeaderFont, size)
	p.Canvas.SetFillColor(p.Theme.Primary())
	p.Canvas.DrawString(r.mainX, y+size, title)

	ruleY := y + size + 0.15*theme.PointsPerInch/2
	p.Canvas.SetStrokeColor(p.Theme.Primary())
	p.Canvas.SetLineWidth(1.5)
	p.Canvas.Line(r.mainX, ruleY, r.mainX+r.mainW, ruleY)
	return ruleY + p.Theme.LineSpacing + 4
}

func (r *modern) drawMain(start Cursor) Cursor {
	p := r.p
	y := start.Y
	x, w := r.mainX, r.mainW
	spacing := p.SectionSpacing()

	if p.Data.Profile != "" {
		y = r.mainHeader(titleProfile, y)
		style := p.BodyStyle()
		style.Align = AlignJustify
		y = p.FlowText(p.Data.Profile, x, y, w, style)
		y += spacing
	}

	if companies := p.Data.Companies(); len(companies) > 0 {
		y = r.mainHeader("EXPERIENCE", y)
		for i, c := range companies {
			y = r.drawCompany(c, i == 0, y)
		}
		y += spacing
	}

	if len(p.Data.Projects) > 0 {
		y = r.mainHeader("PROJECTS", y)
		for _, proj := range p.Data.Projects {
			y = drawProject(p, proj, x, y, w)
		}
		y += spacing
	}

	y = r.mainHeader(titleReferences, y)
	y = p.FlowText(p.Data.ReferencesText(), x, y, w, p.BodyStyle())
	return p.Mark(y)
}

func companyDuration(c types.Company, first bool) string {
	if c.TotalDuration != "" {
		return c.TotalDuration
	}
	if c.StartDate == "" {
		return ""
	}
	end := c.EndDate
	if first || c.IsCurrent || end == "" {
		end = present
	}
	return c.StartDate + " - " + end
}

// drawCompany puts the duration right-aligned on the company line when both
// fit, and indented on the following line otherwise.
func (r *modern) drawCompany(c types.Company, first bool, y float64) float64 {
	p := r.p
	x, w := r.mainX, r.mainW
	size := p.Theme.BodyFontSize + 1
	lineH := p.Theme.LineSpacing + 2

	duration := companyDuration(c, first)
	p.setFont(p.Theme.HeaderFont, size)
	nameW := p.Canvas.StringWidth(c.Name)
	p.setFont(p.Theme.BodyFont, p.Theme.BodyFontSize)
	durW := p.Canvas.StringWidth(duration)
	inline := duration == "" || nameW+20+durW <= w

	heading := lineH
	if !inline {
		heading += p.Theme.LineSpacing
	}
	y = p.KeepTogether(y, heading+rolesHeight(p, c.Roles, w))
	y = p.CheckPageBreak(y, heading+2*p.Theme.LineSpacing)

	p.setFont(p.Theme.HeaderFont, size)
	p.Canvas.SetFillColor(p.Theme.Primary())
	p.Canvas.DrawString(x, y, p.Truncate(c.Name, w, TextStyle{Font: p.Theme.HeaderFont, Size: size}))

	if duration != "" {
		p.setFont(p.Theme.BodyFont, p.Theme.BodyFontSize)
		p.Canvas.SetFillColor(p.Theme.Secondary())
		if inline {
			p.Canvas.DrawRightString(x+w, y, duration)
		} else {
			p.Canvas.DrawString(x+20, y+p.Theme.LineSpacing, duration)
		}
	}
	y += heading

	for _, role := range c.Roles {
		y = drawRole(p, role, x, y, w)
	}
	return y + p.Theme.ParagraphSpacing
}
