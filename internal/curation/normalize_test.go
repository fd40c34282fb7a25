package curation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeStripsMarkupAndWhitespace(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Wheat prices rise", "Wheat prices rise"},
		{"tags", "<p>Wheat <b>prices</b> rise</p>", "Wheat prices rise"},
		{"whitespace", "  Wheat\n\tprices   rise ", "Wheat prices rise"},
		{"entities", "Grain &amp; Seed", "Grain & Seed"},
		{"angle in prose", "yield 5 &lt; 6 t/ha", "yield 5 < 6 t/ha"},
		{"empty", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Normalize(tc.in))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"<div>Cgrain launches <em>new</em> analyzer</div>",
		"plain text",
		"a &amp; b &lt; c",
		"   spaced\t\tout   ",
		"",
	}

	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "normalize must be idempotent for %q", in)
	}
}

func TestDedupKeyLowercases(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "wheat prices rise", DedupKey("<b>Wheat  Prices</b> RISE"))
	assert.Equal(t, "", DedupKey("  <br/> "))
}

func TestCombinedText(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Title Body", CombinedText("<h1>Title</h1>", "Body"))
	assert.Equal(t, "Title", CombinedText("Title", ""))
	assert.Equal(t, "Body", CombinedText("", "Body"))
}
