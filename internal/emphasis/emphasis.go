// Package emphasis implements the bionic reading word rule: the leading
// portion of each word is wrapped in an inline emphasis element so the
// eye can anchor on word beginnings.
package emphasis

import (
	"strings"
	"unicode"

	"github.com/inkwell-tools/bionify/internal/core/domain"
)

// PrefixLen returns how many leading runes of a word of length n are
// emphasized. Words of a single rune are left unchanged.
func PrefixLen(n int) int {
	switch {
	case n <= 1:
		return 0
	case n <= 3:
		return 1
	case n <= 6:
		return 2
	case n <= 9:
		return 3
	default:
		return n / 2
	}
}

// isWordRune reports whether r is part of a word: a letter or a
// combining mark.
func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsMark(r)
}

// isBoundaryBlocker reports whether r, adjacent to a letter run,
// suppresses emphasis. Digits and connector punctuation (underscore)
// glue onto the run the way word characters do, so "abc123" and
// "foo_bar" are not emphasized.
func isBoundaryBlocker(r rune) bool {
	return unicode.IsDigit(r) || unicode.Is(unicode.Pc, r)
}

// Apply walks text and calls emit for each segment in order. Word
// prefixes selected by PrefixLen are emitted with emphasized true;
// everything else (word remainders, punctuation, whitespace, digits)
// with emphasized false. The concatenation of all segments equals text.
func Apply(text string, emit func(segment string, emphasized bool)) {
	runes := []rune(text)
	i := 0
	for i < len(runes) {
		if !isWordRune(runes[i]) {
			start := i
			for i < len(runes) && !isWordRune(runes[i]) {
				i++
			}
			emit(string(runes[start:i]), false)
			continue
		}

		start := i
		for i < len(runes) && isWordRune(runes[i]) {
			i++
		}
		word := runes[start:i]

		blocked := start > 0 && isBoundaryBlocker(runes[start-1])
		if i < len(runes) && isBoundaryBlocker(runes[i]) {
			blocked = true
		}

		n := PrefixLen(len(word))
		if blocked || n == 0 {
			emit(string(word), false)
			continue
		}

		emit(string(word[:n]), true)
		if n < len(word) {
			emit(string(word[n:]), false)
		}
	}
}

// Word converts a single word to its emphasized form using tag.
// Words short enough to have no prefix are returned unchanged.
func Word(word string, tag domain.EmphasisTag) string {
	runes := []rune(word)
	n := PrefixLen(len(runes))
	if n == 0 {
		return word
	}
	name := tag.String()
	return "<" + name + ">" + string(runes[:n]) + "</" + name + ">" + string(runes[n:])
}

// Text applies the word rule to a run of plain text and returns markup
// with emphasized prefixes wrapped in tag. The input is treated as
// trusted plain text: non-word segments are copied through verbatim,
// so callers embedding the result in a document must escape first.
// Empty or all-whitespace input is returned unchanged.
func Text(text string, tag domain.EmphasisTag) string {
	if strings.TrimSpace(text) == "" {
		return text
	}

	name := tag.String()
	var b strings.Builder
	b.Grow(len(text) + len(text)/4)
	Apply(text, func(segment string, emphasized bool) {
		if emphasized {
			b.WriteString("<")
			b.WriteString(name)
			b.WriteString(">")
			b.WriteString(segment)
			b.WriteString("</")
			b.WriteString(name)
			b.WriteString(">")
		} else {
			b.WriteString(segment)
		}
	})
	return b.String()
}

// HasWork reports whether applying the word rule to text would change
// it, without building the rewritten form.
func HasWork(text string) bool {
	found := false
	Apply(text, func(_ string, emphasized bool) {
		if emphasized {
			found = true
		}
	})
	return found
}
