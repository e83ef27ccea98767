// Package textfit wraps, hyphenates and truncates text to fit fixed-width columns.
//
// Widths are measured by a Measurer bound to the font currently in use, so the
// same Processor can be reused for every line drawn with that font.
package textfit

import (
	"strings"
	"unicode/utf8"
)

// Ellipsis is appended to truncated text.
const Ellipsis = "..."

// BulletGap is the space between a bullet and its text, in points.
const BulletGap = 5.0

// Minimum word length, in runes, considered for hyphenation.
const minHyphenateLen = 6

// Words this short are not left alone at the start of the next line.
const shortWordLen = 3

// Measurer reports the rendered width of a string in points.
type Measurer interface {
	StringWidth(s string) float64
}

// MeasureFunc adapts a function to Measurer.
type MeasureFunc func(s string) float64

// StringWidth implements Measurer.
func (f MeasureFunc) StringWidth(s string) float64 { return f(s) }

// Hyphenator returns the rune offsets at which a word may be broken, in
// ascending order.
type Hyphenator interface {
	Positions(word string) []int
}

// Processor fits text into columns using a Measurer and an optional Hyphenator.
type Processor struct {
	Measurer   Measurer
	Hyphenator Hyphenator
}

// New returns a Processor using the en_GB pattern hyphenator.
func New(m Measurer) *Processor {
	return &Processor{Measurer: m, Hyphenator: DefaultHyphenator()}
}

func (p *Processor) width(s string) float64 {
	return p.Measurer.StringWidth(s)
}

// Hyphenate finds the first break point of word whose prefix plus "-" fits in
// maxWidth after usedWidth. It returns the hyphenated prefix and the remainder.
func (p *Processor) Hyphenate(word string, maxWidth, usedWidth float64) (string, string, bool) {
	if p.Hyphenator == nil || utf8.RuneCountInString(word) < minHyphenateLen {
		return "", word, false
	}
	runes := []rune(word)
	for _, pos := range p.Hyphenator.Positions(word) {
		if pos <= 0 || pos >= len(runes) {
			continue
		}
		prefix := string(runes[:pos]) + "-"
		if usedWidth+p.width(prefix) <= maxWidth {
			return prefix, string(runes[pos:]), true
		}
	}
	return "", word, false
}

// Wrap breaks text into lines no wider than maxWidth where possible.
//
// Paragraphs are separated by "\n"; each blank paragraph yields an empty line
// and consecutive paragraphs are separated by an empty line. Trailing empty
// lines are dropped. A word wider than maxWidth on its own is placed alone on
// a line.
func (p *Processor) Wrap(text string, maxWidth float64, hyphenate bool) []string {
	if text == "" {
		return nil
	}

	paragraphs := strings.Split(text, "\n")
	var result []string
	space := p.width(" ")

	for pi, paragraph := range paragraphs {
		if strings.TrimSpace(paragraph) == "" {
			result = append(result, "")
			continue
		}

		words := strings.Fields(paragraph)
		var line []string
		lineWidth := 0.0

		for i, word := range words {
			wordWidth := p.width(word)
			gap := 0.0
			if len(line) > 0 {
				gap = space
			}

			if lineWidth+gap+wordWidth <= maxWidth {
				line = append(line, word)
				lineWidth += gap + wordWidth

				if i+1 < len(words) {
					next := words[i+1]
					if utf8.RuneCountInString(next) <= shortWordLen &&
						lineWidth+space+p.width(next) > maxWidth &&
						len(line) > 1 {
						moved := line[len(line)-1]
						result = append(result, strings.Join(line[:len(line)-1], " "))
						line = []string{moved}
						lineWidth = p.width(moved)
					}
				}
				continue
			}

			if hyphenate {
				if prefix, rest, ok := p.Hyphenate(word, maxWidth, lineWidth+gap); ok {
					line = append(line, prefix)
					result = append(result, strings.Join(line, " "))
					line = []string{rest}
					lineWidth = p.width(rest)
					continue
				}
			}

			if len(line) > 0 {
				result = append(result, strings.Join(line, " "))
			}
			line = []string{word}
			lineWidth = wordWidth
		}

		if len(line) > 0 {
			result = append(result, strings.Join(line, " "))
		}
		if pi < len(paragraphs)-1 {
			result = append(result, "")
		}
	}

	for len(result) > 0 && result[len(result)-1] == "" {
		result = result[:len(result)-1]
	}
	return result
}

// TruncateWithEllipsis shortens text until text+"..." fits in maxWidth.
// Text that already fits is returned unchanged; when not even the ellipsis
// fits, the ellipsis alone is returned.
func (p *Processor) TruncateWithEllipsis(text string, maxWidth float64) string {
	if p.width(text) <= maxWidth {
		return text
	}
	if maxWidth <= p.width(Ellipsis) {
		return Ellipsis
	}
	runes := []rune(text)
	for i := len(runes) - 1; i > 0; i-- {
		candidate := string(runes[:i]) + Ellipsis
		if p.width(candidate) <= maxWidth {
			return candidate
		}
	}
	return Ellipsis
}

// TruncateToFit keeps as many wrapped lines of text as fit in maxHeight and
// joins them with spaces. With ellipsis set, the last kept line is shortened
// until it fits with "..." appended.
func (p *Processor) TruncateToFit(text string, maxWidth, maxHeight, lineHeight float64, ellipsis bool) string {
	if lineHeight <= 0 {
		return text
	}
	lines := p.Wrap(text, maxWidth, false)
	maxLines := int(maxHeight / lineHeight)
	if len(lines) <= maxLines {
		return text
	}
	if maxLines <= 0 {
		return ""
	}

	kept := append([]string(nil), lines[:maxLines]...)
	if ellipsis {
		last := []rune(kept[len(kept)-1])
		for len(last) > 1 && p.width(string(last)+Ellipsis) > maxWidth {
			last = last[:len(last)-1]
		}
		kept[len(kept)-1] = string(last) + Ellipsis
	}
	return strings.Join(kept, " ")
}

// EstimateHeight is the number of wrapped lines times lineHeight.
func (p *Processor) EstimateHeight(text string, maxWidth, lineHeight float64, hyphenate bool) float64 {
	return float64(len(p.Wrap(text, maxWidth, hyphenate))) * lineHeight
}

// EstimateBulletedHeight is EstimateHeight for text indented past a bullet of
// bulletWidth followed by BulletGap.
func (p *Processor) EstimateBulletedHeight(text string, maxWidth, bulletWidth, lineHeight float64, hyphenate bool) float64 {
	return p.EstimateHeight(text, maxWidth-bulletWidth-BulletGap, lineHeight, hyphenate)
}
