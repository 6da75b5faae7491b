// Package html rewrites text nodes of HTML and XHTML documents, wrapping
// word prefixes in emphasis elements. Markup is never re-serialised:
// every non-text token is copied through byte-for-byte from the
// tokenizer, so attribute order, case, self-closing forms, comments,
// doctypes and CDATA survive the round trip unchanged.
package html

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"

	nethtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/inkwell-tools/bionify/internal/core/domain"
	"github.com/inkwell-tools/bionify/internal/core/ports/driven"
	"github.com/inkwell-tools/bionify/internal/emphasis"
)

// Ensure Rewriter implements the interface.
var _ driven.DocumentRewriter = (*Rewriter)(nil)

// Rewriter handles HTML and XHTML documents.
type Rewriter struct{}

// New creates a new HTML rewriter.
func New() *Rewriter {
	return &Rewriter{}
}

// skipElements is the set of elements whose text content is never
// rewritten. script/style/pre/code/svg/math carry non-prose content;
// title and textarea are raw-text elements where inserted tags would
// render literally.
var skipElements = map[atom.Atom]bool{
	atom.Script:   true,
	atom.Style:    true,
	atom.Pre:      true,
	atom.Code:     true,
	atom.Svg:      true,
	atom.Math:     true,
	atom.Title:    true,
	atom.Textarea: true,
}

// selfClosingRawTagPattern matches XHTML self-closing forms of raw-text
// elements. The tokenizer would otherwise treat everything after
// <script/> as script data.
var selfClosingRawTagPattern = regexp.MustCompile(`(?is)<(script|style|title|textarea)\b([^>]*)/>`)

func normalizeSelfClosingRawTags(data []byte) []byte {
	if !selfClosingRawTagPattern.Match(data) {
		return data
	}
	return selfClosingRawTagPattern.ReplaceAll(data, []byte(`<$1$2></$1>`))
}

// utf8BOM is the UTF-8 byte order mark.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Rewrite applies the emphasis rule to every text node of content and
// returns the rewritten document. A leading UTF-8 BOM is preserved.
// Text inside skip elements passes through untouched, as does any text
// node the rule would not change.
func (r *Rewriter) Rewrite(_ context.Context, content []byte, opts domain.EmphasisOptions) ([]byte, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	hadBOM := bytes.HasPrefix(content, utf8BOM)
	data := content
	if hadBOM {
		data = data[len(utf8BOM):]
	}
	data = normalizeSelfClosingRawTags(data)

	tokenizer := nethtml.NewTokenizer(bytes.NewReader(data))

	var out bytes.Buffer
	out.Grow(len(content) + len(content)/4)
	if hadBOM {
		out.Write(utf8BOM)
	}

	skipDepth := 0 // depth inside skip elements
	for {
		tt := tokenizer.Next()
		switch tt {
		case nethtml.ErrorToken:
			err := tokenizer.Err()
			if errors.Is(err, io.EOF) {
				return out.Bytes(), nil
			}
			return nil, fmt.Errorf("tokenize document: %w", err)

		case nethtml.TextToken:
			if skipDepth > 0 {
				out.Write(tokenizer.Raw())
				continue
			}
			// Text() unescapes entities in place in the buffer Raw()
			// aliases, so the raw bytes must be copied first.
			raw := append([]byte(nil), tokenizer.Raw()...)
			text := string(tokenizer.Text())
			if !emphasis.HasWork(text) {
				// Keep the original bytes, entity forms included.
				out.Write(raw)
				continue
			}
			writeEmphasized(&out, text, opts.Tag)

		case nethtml.StartTagToken:
			name, _ := tokenizer.TagName()
			if skipElements[atom.Lookup(name)] {
				skipDepth++
			}
			out.Write(tokenizer.Raw())

		case nethtml.EndTagToken:
			name, _ := tokenizer.TagName()
			if skipElements[atom.Lookup(name)] && skipDepth > 0 {
				skipDepth--
			}
			out.Write(tokenizer.Raw())

		default:
			// Self-closing tags, comments, doctypes: verbatim.
			out.Write(tokenizer.Raw())
		}
	}
}

// writeEmphasized emits the rewritten form of one text node. Segments
// are entity-escaped so decoded characters re-encode safely; emphasis
// tags are emitted as markup around word prefixes.
func writeEmphasized(out *bytes.Buffer, text string, tag domain.EmphasisTag) {
	name := tag.String()
	emphasis.Apply(text, func(segment string, emphasized bool) {
		if emphasized {
			out.WriteByte('<')
			out.WriteString(name)
			out.WriteByte('>')
			out.WriteString(nethtml.EscapeString(segment))
			out.WriteString("</")
			out.WriteString(name)
			out.WriteByte('>')
		} else {
			out.WriteString(nethtml.EscapeString(segment))
		}
	})
}
