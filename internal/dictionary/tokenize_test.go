package dictionary

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokens(t *testing.T) {
	tests := []struct {
		name       string
		definition string
		want       []string
	}{
		{
			name:       "short definition has no tokens",
			definition: "in",
			want:       nil,
		},
		{
			name:       "punctuation is stripped",
			definition: "thil tha; mi (tha) hnathawk!",
			want:       []string{"thil", "tha", "hnathawk"},
		},
		{
			name:       "duplicates are removed within one definition",
			definition: "tui, tui leh tui",
			want:       []string{"tui", "leh"},
		},
		{
			name:       "tokens with uppercase letters are skipped",
			definition: "Pathian thu hril",
			want:       []string{"thu", "hril"},
		},
		{
			name:       "tokens starting with a digit are skipped",
			definition: "3rd kum hnih",
			want:       []string{"kum", "hnih"},
		},
		{
			name:       "mizo letters are kept",
			definition: "ṭhatna chêng lâwm",
			want:       []string{"ṭhatna", "chêng", "lâwm"},
		},
		{
			name:       "dashes and slashes split tokens",
			definition: "nghah—tawh/zawng-zawng",
			want:       []string{"nghah", "tawh", "zawng"},
		},
		{
			name:       "non latin tokens are skipped",
			definition: "khawvel 世界 mihring",
			want:       []string{"khawvel", "mihring"},
		},
		{
			name:       "tokens containing digits are skipped",
			definition: "ab12 zirna",
			want:       []string{"zirna"},
		},
		{
			name:       "tokens containing math signs are skipped",
			definition: "a×b÷c pawl",
			want:       []string{"pawl"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Tokens(tt.definition))
		})
	}
}
