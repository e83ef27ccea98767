package rendering

import (
	"math"

	"github.com/jonathan/cv-generator/internal/theme"
	"github.com/jonathan/cv-generator/internal/types"
	"go.uber.org/zap"
)

const (
	bannerNameSize    = 22.0
	bannerNameGap     = 10.0
	bannerMinPadding  = 12.0
	contactRowHeight  = 18.0
	contactIconSize   = 10.0
	contactTextSize   = 9.5
	contactPadding    = 6.0
	contactColumnGap  = 35.0
	maxBannerContacts = 6
	maxURLWidth       = 160.0
	maxContactWidth   = 220.0
)

// TwoColumn puts the name and contacts on a banner, skills and education in
// a shaded left column and the career history on the right.
type TwoColumn struct{}

// Name implements Template.
func (TwoColumn) Name() string { return "two_column" }

// Description implements Template.
func (TwoColumn) Description() string {
	return "Banner header with a contact grid above a shaded sidebar and a main column"
}

// Features implements Template.
func (TwoColumn) Features() []string {
	return []string{
		"banner header with contact grid",
		"optional circular profile picture",
		"sidebar for skills, education and details",
		"columns paginate independently",
		"justified profile text",
	}
}

// Render implements Template.
func (TwoColumn) Render(p *Page) error {
	r := &twoColumn{p: p}
	return r.render()
}

type twoColumn struct {
	p        *Page
	contacts []types.ContactItem
	banner   float64

	leftX, leftW   float64
	rightX, rightW float64
}

func (r *twoColumn) render() error {
	p := r.p
	l := p.Layout

	r.contacts = p.Data.Contacts()
	if len(r.contacts) > maxBannerContacts {
		r.contacts = r.contacts[:maxBannerContacts]
	}
	r.banner = r.bannerHeight()

	colW := l.LeftColumnWidth()
	r.leftX = l.LeftMargin
	r.leftW = colW - l.LeftMargin*1.5
	r.rightX = colW + l.LeftMargin*0.8
	r.rightW = l.PageSize.Width - r.rightX - l.RightMargin

	p.Canvas.SetPageDecorator(r.decorate)
	p.Canvas.NewPage()
	r.drawBanner()
	p.SetTop(l.TopMargin)

	start := p.Mark(r.banner + l.TopMargin*0.75)
	left := r.drawLeft(start)
	p.Resume(start)
	right := r.drawRight(start)

	last := left.Page
	if right.Page > last {
		last = right.Page
	}
	p.Canvas.SetPage(last)
	p.log().Debug("two column layout done",
		zap.Int("left_pages", left.Page),
		zap.Int("right_pages", right.Page))
	return p.Canvas.Err()
}

// decorate shades the left column, below the banner on the first page.
func (r *twoColumn) decorate() {
	p := r.p
	top := 0.0
	if p.Canvas.PageNumber() == 1 {
		top = r.banner
	}
	p.Canvas.SetFillColor(p.Theme.Background())
	p.Canvas.Rect(0, top, p.Layout.LeftColumnWidth(), p.Layout.PageSize.Height-top, true, false)
}

func (r *twoColumn) contactRows() int {
	return (len(r.contacts) + 1) / 2
}

// bannerHeight grows the configured banner when the name and contact grid
// need more room.
func (r *twoColumn) bannerHeight() float64 {
	needed := r.blockHeight() + 2*bannerMinPadding
	return math.Max(r.p.Layout.BannerHeight, needed)
}

func (r *twoColumn) blockHeight() float64 {
	h := bannerNameSize
	if rows := r.contactRows(); rows > 0 {
		h += bannerNameGap + float64(rows)*contactRowHeight
	}
	return h
}

func (r *twoColumn) drawBanner() {
	p := r.p
	pageW := p.Layout.PageSize.Width

	p.Canvas.SetFillColor(p.Theme.Primary())
	p.Canvas.Rect(0, 0, pageW, r.banner, true, false)

	areaW := pageW
	radius := math.Min(50, r.banner*0.4)
	if p.DrawProfileImage(pageW-radius-25, r.banner/2, radius) {
		areaW = pageW - 2*radius - 35
	}

	blockTop := (r.banner - r.blockHeight()) / 2
	p.setFont(p.Theme.HeaderFont, bannerNameSize)
	p.Canvas.SetFillColor(theme.White)
	p.Canvas.DrawCentredString(areaW/2, blockTop+bannerNameSize*0.8, p.Data.CandidateName())

	if len(r.contacts) > 0 {
		r.drawContactGrid(blockTop+bannerNameSize+bannerNameGap, areaW)
	}
}

type contactCell struct {
	icon rune
	text string
	w    float64
}

func (r *twoColumn) contactCell(c types.ContactItem) contactCell {
	p := r.p
	style := TextStyle{Font: p.Theme.BodyFont, Size: contactTextSize}
	text := c.Text
	limit := maxContactWidth
	if looksLikeURL(text) {
		limit = maxURLWidth
		p.setFont(style.Font, style.Size)
		if p.Canvas.StringWidth(text) > limit {
			text = shortURL(text)
		}
	}
	text = p.Truncate(text, limit, style)

	icon := ParseIcon(c.Icon)
	w := p.IconWidth(icon, contactIconSize) + contactPadding
	p.setFont(style.Font, style.Size)
	w += p.Canvas.StringWidth(text)
	return contactCell{icon: icon, text: text, w: w}
}

func (r *twoColumn) drawContactGrid(top, areaW float64) {
	p := r.p
	rows := r.contactRows()

	cells := make([]contactCell, len(r.contacts))
	for i, c := range r.contacts {
		cells[i] = r.contactCell(c)
	}
	left, right := cells[:rows], cells[rows:]

	colWidth := func(cs []contactCell) float64 {
		w := 0.0
		for _, c := range cs {
			w = math.Max(w, c.w)
		}
		return w
	}
	leftW, rightW := colWidth(left), colWidth(right)
	total := leftW
	if len(right) > 0 {
		total += contactColumnGap + rightW
	}
	startX := math.Max(p.Layout.LeftMargin, (areaW-total)/2)

	drawColumn := func(cs []contactCell, x float64) {
		for i, c := range cs {
			baseline := top + float64(i)*contactRowHeight + contactRowHeight*0.65
			w := p.DrawIcon(c.icon, x, baseline, contactIconSize, theme.White)
			p.setFont(p.Theme.BodyFont, contactTextSize)
			p.Canvas.SetFillColor(theme.White)
			p.Canvas.DrawString(x+w+contactPadding, baseline, c.text)
		}
	}
	drawColumn(left, startX)

	if len(right) == 0 {
		return
	}
	sepX := startX + leftW + contactColumnGap/2
	p.Canvas.SetStrokeColor(p.Theme.Primary().Blend(theme.White, 0.3))
	p.Canvas.SetLineWidth(0.5)
	p.Canvas.Line(sepX, top+2, sepX, top+float64(rows)*contactRowHeight-2)
	drawColumn(right, startX+leftW+contactColumnGap)
}

func (r *twoColumn) header(title string, x, y, w float64, icon rune) float64 {
	p := r.p
	needed := p.SectionHeaderHeightFor(title, w, icon) + 2*p.Theme.LineSpacing
	y = p.CheckPageBreak(y, needed)
	return p.DrawSectionHeader(title, x, y, w, icon) + p.Theme.LineSpacing
}

func (r *twoColumn) drawLeft(start Cursor) Cursor {
	p := r.p
	y := start.Y
	x, w := r.leftX, r.leftW
	spacing := p.SectionSpacing()

	if len(p.Data.TechnicalSkills) > 0 {
		y = r.header("TECHNICAL EXPERTISE", x, y, w, IconSkills)
		y = r.drawSkills(y)
		y += spacing
	}

	if items := p.Data.EducationItems(); len(items) > 0 {
		y = r.header(titleEducation, x, y, w, IconEducation)
		for _, item := range items {
			y = r.drawEducation(item, y)
		}
		y += spacing
	}

	if len(p.Data.AdditionalInfo) > 0 {
		y = r.header(titleMoreInfo, x, y, w, IconInfo)
		body := p.BodyStyle()
		body.Size--
		for _, info := range p.Data.AdditionalInfo {
			y = p.CheckPageBreak(y, p.BulletedTextHeight(info, w, body))
			y = p.DrawBulletedText(info, x, y, w, body, p.Theme.Secondary())
		}
	}
	return p.Mark(y)
}

func (r *twoColumn) drawSkills(y float64) float64 {
	p := r.p
	x, w := r.leftX, r.leftW
	strong := p.StrongStyle()
	strong.Color = p.Theme.Primary()
	strong.Hyphenate = false
	body := p.BodyStyle()
	body.Size--

	for _, cat := range p.Data.TechnicalSkills {
		list := skillList(cat)
		height := p.TextHeight(cat.Name, w, strong) + p.TextHeight(list, w, body)
		y = p.CheckPageBreak(y, height)
		y = p.DrawWrappedText(cat.Name, x, y, w, strong)
		y = p.DrawWrappedText(list, x, y, w, body)
		y += p.Theme.ParagraphSpacing / 2
	}
	return y
}

func (r *twoColumn) drawEducation(item types.EducationItem, y float64) float64 {
	p := r.p
	x, w := r.leftX, r.leftW
	strong := p.StrongStyle()
	strong.Hyphenate = false
	body := p.BodyStyle()
	body.Size--
	muted := body
	muted.Color = p.Theme.Secondary()

	duration := educationDuration(item)
	height := p.TextHeight(item.Degree, w, strong) + p.TextHeight(item.Institution, w, body)
	if duration != "" {
		height += p.TextHeight(duration, w, muted)
	}
	y = p.CheckPageBreak(y, height)

	if item.Degree != "" {
		y = p.DrawWrappedText(item.Degree, x, y, w, strong)
	}
	y = p.DrawWrappedText(item.Institution, x, y, w, body)
	if duration != "" {
		y = p.DrawWrappedText(duration, x, y, w, muted)
	}
	return y + p.Theme.ParagraphSpacing
}

func (r *twoColumn) drawRight(start Cursor) Cursor {
	p := r.p
	y := start.Y
	x, w := r.rightX, r.rightW
	spacing := p.SectionSpacing()

	if p.Data.Profile != "" {
		y = r.header(titleProfile, x, y, w, IconProfile)
		style := p.BodyStyle()
		style.Align = AlignJustify
		style.LineHeight = style.Size * 1.3
		y = p.FlowText(p.Data.Profile, x, y, w, style)
		y += spacing
	}

	if companies := p.Data.Companies(); len(companies) > 0 {
		y = r.header(titleExperience, x, y, w, IconExperience)
		for i, c := range companies {
			y = drawCompany(p, c, i == 0, x, y, w)
		}
		y += spacing
	}

	if len(p.Data.Projects) > 0 {
		y = r.header(titleProjects, x, y, w, IconProjects)
		for _, proj := range p.Data.Projects {
			y = drawProject(p, proj, x, y, w)
		}
		y += spacing
	}

	y = r.header(titleReferences, x, y, w, IconReferences)
	y = p.FlowText(p.Data.ReferencesText(), x, y, w, p.BodyStyle())
	return p.Mark(y)
}

// drawCompany keeps a company on one page when it fits on an empty one, and
// otherwise breaks between roles and responsibilities.
func drawCompany(p *Page, c types.Company, first bool, x, y, w float64) float64 {
	heading := p.StrongStyle()
	heading.Size++
	heading.Color = p.Theme.Primary()
	heading.Hyphenate = false

	text := companyHeading(c, first)
	y = p.KeepTogether(y, p.TextHeight(text, w, heading)+rolesHeight(p, c.Roles, w))

	y = p.CheckPageBreak(y, p.TextHeight(text, w, heading)+p.Theme.LineSpacing*2)
	y = p.DrawWrappedText(text, x, y, w, heading)
	for _, role := range c.Roles {
		y = drawRole(p, role, x, y, w)
	}
	return y + p.Theme.ParagraphSpacing
}

func rolesHeight(p *Page, roles []types.Role, w float64) float64 {
	h := 0.0
	for _, role := range roles {
		h += roleHeight(p, role, w)
	}
	return h
}

// roleBulletIndent offsets responsibility bullets from the role title.
const roleBulletIndent = 4.0

type roleStyles struct {
	title, muted, body TextStyle
}

func newRoleStyles(p *Page) roleStyles {
	st := roleStyles{title: p.StrongStyle(), muted: p.BodyStyle(), body: p.BodyStyle()}
	st.title.Hyphenate = false
	st.muted.Size--
	st.muted.Color = p.Theme.Secondary()
	return st
}

// roleHeadHeight measures the title and duration lines of a role.
func roleHeadHeight(p *Page, role types.Role, w float64, st roleStyles) float64 {
	h := 0.0
	if role.Title != "" {
		h += p.TextHeight(role.Title, w, st.title)
	}
	if d := roleDuration(role); d != "" {
		h += p.TextHeight(d, w, st.muted)
	}
	return h
}

func responsibilityHeight(p *Page, resp string, w float64, st roleStyles) float64 {
	return p.BulletedTextHeight(resp, w-roleBulletIndent, st.body)
}

func roleHeight(p *Page, role types.Role, w float64) float64 {
	st := newRoleStyles(p)
	h := roleHeadHeight(p, role, w, st)
	for _, resp := range role.Responsibilities {
		h += responsibilityHeight(p, resp, w, st)
	}
	return h + p.Theme.ParagraphSpacing/2
}

func drawRole(p *Page, role types.Role, x, y, w float64) float64 {
	st := newRoleStyles(p)

	first := 0.0
	if len(role.Responsibilities) > 0 {
		first = responsibilityHeight(p, role.Responsibilities[0], w, st)
	}
	y = p.CheckPageBreak(y, roleHeadHeight(p, role, w, st)+first)

	if role.Title != "" {
		y = p.DrawWrappedText(role.Title, x, y, w, st.title)
	}
	if duration := roleDuration(role); duration != "" {
		y = p.DrawWrappedText(duration, x, y, w, st.muted)
	}
	for _, resp := range role.Responsibilities {
		y = p.CheckPageBreak(y, responsibilityHeight(p, resp, w, st))
		y = p.DrawBulletedText(resp, x+roleBulletIndent, y, w-roleBulletIndent, st.body, p.Theme.Secondary())
	}
	return y + p.Theme.ParagraphSpacing/2
}

func projectHeight(p *Page, proj types.Project, w float64) float64 {
	h := p.TextHeight(proj.DisplayTitle(), w, p.StrongStyle())
	h += p.TextHeight(proj.Description, w, p.BodyStyle())
	if tech := technologies(proj); tech != "" {
		h += p.TextHeight(tech, w, p.BodyStyle())
	}
	if proj.URL != "" {
		h += p.Theme.LineSpacing
	}
	return h + p.Theme.ParagraphSpacing
}

func drawProject(p *Page, proj types.Project, x, y, w float64) float64 {
	title := p.StrongStyle()
	title.Color = p.Theme.Primary()
	title.Hyphenate = false
	body := p.BodyStyle()
	muted := p.BodyStyle()
	muted.Size--
	muted.Color = p.Theme.Secondary()

	y = p.CheckPageBreak(y, projectHeight(p, proj, w))
	y = p.DrawWrappedText(proj.DisplayTitle(), x, y, w, title)
	if proj.Description != "" {
		y = p.DrawWrappedText(proj.Description, x, y, w, body)
	}
	if tech := technologies(proj); tech != "" {
		y = p.DrawWrappedText(tech, x, y, w, muted)
	}
	if proj.URL != "" {
		y = p.DrawWrappedText(p.Truncate(proj.URL, w, muted), x, y, w, muted)
	}
	return y + p.Theme.ParagraphSpacing
}
