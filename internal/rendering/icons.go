package rendering

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// Section icons in the icon font.
const (
	IconSkills     rune = '\uf085'
	IconEducation  rune = '\uf19d'
	IconInfo       rune = '\uf05a'
	IconProfile    rune = '\uf007'
	IconExperience rune = '\uf0b1'
	IconProjects   rune = '\uf0ae'
	IconReferences rune = '\uf0c0'
)

// ParseIcon turns a contact icon code into a glyph. Codes are either the
// glyph itself or its hex code point, optionally written as "\uf0e0",
// "U+F0E0", "0xf0e0" or "&#xf0e0;", with four to six hex digits. It
// returns 0 for anything else.
func ParseIcon(code string) rune {
	code = strings.TrimSpace(code)
	if code == "" {
		return 0
	}
	if utf8.RuneCountInString(code) == 1 {
		r, _ := utf8.DecodeRuneInString(code)
		if r >= 0x80 {
			return r
		}
	}

	lower := strings.ToLower(code)
	for _, prefix := range []string{`\u`, "u+", "0x", "&#x"} {
		if strings.HasPrefix(lower, prefix) {
			lower = lower[len(prefix):]
			break
		}
	}
	lower = strings.TrimSuffix(lower, ";")
	if len(lower) < 4 || len(lower) > 6 {
		return 0
	}

	v, err := strconv.ParseUint(lower, 16, 32)
	if err != nil || v == 0 || !utf8.ValidRune(rune(v)) {
		return 0
	}
	return rune(v)
}
