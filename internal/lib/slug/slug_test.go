package slug_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"coloringbook/internal/lib/slug"
)

func TestMake(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{
			name:   "simple prompt",
			input:  "a happy dinosaur",
			expect: "a-happy-dinosaur",
		},
		{
			name:   "mixed case and punctuation",
			input:  "A Cat, Sleeping!",
			expect: "a-cat-sleeping",
		},
		{
			name:   "whitespace runs collapse",
			input:  "  two   spaced\twords \n",
			expect: "two-spaced-words",
		},
		{
			name:   "underscores become separators",
			input:  "legacy_cat_art",
			expect: "legacy-cat-art",
		},
		{
			name:   "only symbols",
			input:  "!!! ??? ***",
			expect: "",
		},
		{
			name:   "long input truncated without trailing hyphen",
			input:  "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa bbbbbbbb",
			expect: "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := slug.Make(tt.input)
			require.Equal(t, tt.expect, got)
			require.LessOrEqual(t, len(got), 48)
		})
	}
}
