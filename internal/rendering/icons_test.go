package rendering

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseIcon(t *testing.T) {
	tests := []struct {
		code string
		want rune
	}{
		{"f0e0", '\uf0e0'},
		{"F0E0", '\uf0e0'},
		{`\uf0e0`, '\uf0e0'},
		{"U+F095", '\uf095'},
		{"0xf08c", '\uf08c'},
		{"&#xf09b;", '\uf09b'},
		{" f3c5 ", '\uf3c5'},
		{"\uf0e0", '\uf0e0'},
		{"", 0},
		{"email", 0},
		{"e", 0},
		{"0", 0},
		{"1234567", 0},
		{"d800", 0},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseIcon(tt.code))
		})
	}
}
