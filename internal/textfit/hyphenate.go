package textfit

import (
	_ "embed"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/speedata/hyphenation"
)

// British English TeX hyphenation patterns.
//
//go:embed patterns/hyph-en-gb.pat.txt
var enGBPatterns string

// PatternHyphenator breaks words at the points proposed by Liang's TeX
// hyphenation patterns, keeping at least MinPrefix runes before and
// MinSuffix runes after each break.
type PatternHyphenator struct {
	lang      *hyphenation.Lang
	MinPrefix int
	MinSuffix int
}

// NewPatternHyphenator reads TeX patterns (whitespace separated, as in the
// hyph-*.pat.txt files) from r.
func NewPatternHyphenator(r io.Reader, minPrefix, minSuffix int) (*PatternHyphenator, error) {
	lang, err := hyphenation.New(r)
	if err != nil {
		return nil, fmt.Errorf("failed to load hyphenation patterns: %w", err)
	}
	return &PatternHyphenator{lang: lang, MinPrefix: minPrefix, MinSuffix: minSuffix}, nil
}

var (
	enGBOnce sync.Once
	enGB     *PatternHyphenator
	enGBErr  error
)

// EnglishGB returns the shared en_GB hyphenator. It keeps two runes on each
// side of a break.
func EnglishGB() (*PatternHyphenator, error) {
	enGBOnce.Do(func() {
		enGB, enGBErr = NewPatternHyphenator(strings.NewReader(enGBPatterns), 2, 2)
	})
	return enGB, enGBErr
}

// DefaultHyphenator is the en_GB hyphenator, or nil when its patterns cannot
// be loaded.
func DefaultHyphenator() Hyphenator {
	h, err := EnglishGB()
	if err != nil {
		return nil
	}
	return h
}

// Positions implements Hyphenator. Words containing anything other than
// letters (digits, punctuation, URLs) are never broken.
func (h *PatternHyphenator) Positions(word string) []int {
	if h == nil || h.lang == nil {
		return nil
	}
	for _, r := range word {
		if !unicode.IsLetter(r) {
			return nil
		}
	}

	n := utf8.RuneCountInString(word)
	var positions []int
	for _, pos := range h.lang.Hyphenate(strings.ToLower(word)) {
		if pos < h.MinPrefix || pos > n-h.MinSuffix || pos <= 0 || pos >= n {
			continue
		}
		positions = append(positions, pos)
	}
	sort.Ints(positions)
	return dedupe(positions)
}

func dedupe(positions []int) []int {
	if len(positions) < 2 {
		return positions
	}
	out := positions[:1]
	for _, p := range positions[1:] {
		if p != out[len(out)-1] {
			out = append(out, p)
		}
	}
	return out
}
