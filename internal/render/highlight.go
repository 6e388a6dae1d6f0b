package render

import (
	"fmt"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/emacsmirror/chatgpt-shell/internal/span"
)

// Highlighter delegates code-body coloring to chroma, token by token.
type Highlighter struct {
	style *chroma.Style
}

// NewHighlighter returns a highlighter using the named chroma style.
// Empty or unknown names fall back to monokai, then chroma's fallback.
func NewHighlighter(styleName string) *Highlighter {
	if styleName == "" {
		styleName = "monokai"
	}
	style := styles.Get(styleName)
	if style == nil {
		style = styles.Fallback
	}
	return &Highlighter{style: style}
}

// Resolvable reports whether lang maps to a known chroma lexer.
func (h *Highlighter) Resolvable(lang string) bool {
	return lang != "" && lexers.Get(lang) != nil
}

// BodyFaces tokenizes the code body and returns one Face decoration per
// colored token. Returns nil when the language is absent, unknown, or
// tokenization fails; the caller falls back to the uniform doc-markup
// face.
func (h *Highlighter) BodyFaces(body span.Span, text string, lang string) []Decoration {
	if lang == "" || body.Empty() {
		return nil
	}
	lexer := lexers.Get(lang)
	if lexer == nil {
		return nil
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, body.Text(text))
	if err != nil {
		return nil
	}

	var out []Decoration
	off := body.Start
	for token := iterator(); token != chroma.EOF; token = iterator() {
		n := len(token.Value)
		if n == 0 {
			continue
		}
		// Lexers with EnsureNL tokenise a trailing newline that is not
		// part of the body; clamp so no face leaks past the body span.
		if off >= body.End {
			break
		}
		if off+n > body.End {
			n = body.End - off
		}
		tokenSpan := span.New(off, off+n)
		off += len(token.Value)
		entry := h.style.Get(token.Type)
		style := Style{
			Bold:      entry.Bold == chroma.Yes,
			Italic:    entry.Italic == chroma.Yes,
			Underline: entry.Underline == chroma.Yes,
		}
		if entry.Colour.IsSet() {
			style.Fg = fmt.Sprintf("#%02X%02X%02X",
				entry.Colour.Red(), entry.Colour.Green(), entry.Colour.Blue())
		}
		if style == (Style{}) {
			continue
		}
		out = append(out, Decoration{Span: tokenSpan, Kind: Face, Style: style})
	}
	return out
}
