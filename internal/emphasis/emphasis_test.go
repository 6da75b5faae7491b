package emphasis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/inkwell-tools/bionify/internal/core/domain"
)

func TestPrefixLen(t *testing.T) {
	tests := []struct {
		length int
		want   int
	}{
		{0, 0},
		{1, 0},
		{2, 1},
		{3, 1},
		{4, 2},
		{6, 2},
		{7, 3},
		{9, 3},
		{10, 5},
		{11, 5},
		{20, 10},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, PrefixLen(tt.length), "length %d", tt.length)
	}
}

func TestWord(t *testing.T) {
	tests := []struct {
		word string
		want string
	}{
		{"a", "a"},
		{"I", "I"},
		{"cat", "<b>c</b>at"},
		{"house", "<b>ho</b>use"},
		{"reading", "<b>rea</b>ding"},
		{"extraordinary", "<b>extrao</b>rdinary"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Word(tt.word, domain.EmphasisBold), tt.word)
	}
}

func TestWordStrongTag(t *testing.T) {
	assert.Equal(t, "<strong>c</strong>at", Word("cat", domain.EmphasisStrong))
}

func TestWordCountsRunesNotBytes(t *testing.T) {
	// "Übung" is 5 runes, prefix 2, even though Ü is 2 bytes.
	assert.Equal(t, "<b>Üb</b>ung", Word("Übung", domain.EmphasisBold))
	// CJK: 3 runes, prefix 1.
	assert.Equal(t, "<b>日</b>本語", Word("日本語", domain.EmphasisBold))
}

func TestText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "simple sentence",
			in:   "The quick fox",
			want: "<b>T</b>he <b>qu</b>ick <b>f</b>ox",
		},
		{
			name: "punctuation preserved",
			in:   "Hello, world!",
			want: "<b>He</b>llo, <b>wo</b>rld!",
		},
		{
			name: "single letter word unchanged",
			in:   "a b c",
			want: "a b c",
		},
		{
			name: "empty",
			in:   "",
			want: "",
		},
		{
			name: "whitespace only",
			in:   "  \n\t ",
			want: "  \n\t ",
		},
		{
			name: "digits not emphasized",
			in:   "call 911 now",
			want: "<b>ca</b>ll 911 <b>n</b>ow",
		},
		{
			name: "apostrophe splits words",
			in:   "don't",
			want: "<b>d</b>on't",
		},
		{
			name: "hyphenated words split",
			in:   "well-known",
			want: "<b>we</b>ll-<b>kn</b>own",
		},
		{
			name: "letters glued to digits are skipped",
			in:   "abc123 xyz",
			want: "abc123 <b>x</b>yz",
		},
		{
			name: "digits before letters block emphasis",
			in:   "3rd place",
			want: "3rd <b>pl</b>ace",
		},
		{
			name: "underscore blocks emphasis",
			in:   "foo_bar baz",
			want: "foo_bar <b>b</b>az",
		},
		{
			name: "accented words",
			in:   "café déjà",
			want: "<b>ca</b>fé <b>dé</b>jà",
		},
		{
			name: "leading and trailing space preserved",
			in:   " word ",
			want: " <b>wo</b>rd ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Text(tt.in, domain.EmphasisBold))
		})
	}
}

func TestTextRoundTripsSegments(t *testing.T) {
	// The emitted segments must concatenate back to the input.
	in := "The 2nd well-known café, don't you know, is closed."
	var rebuilt string
	Apply(in, func(segment string, _ bool) {
		rebuilt += segment
	})
	assert.Equal(t, in, rebuilt)
}

func TestHasWork(t *testing.T) {
	assert.True(t, HasWork("hello"))
	assert.False(t, HasWork("a"))
	assert.False(t, HasWork("42 + 7"))
	assert.False(t, HasWork("   "))
	assert.False(t, HasWork(""))
}
