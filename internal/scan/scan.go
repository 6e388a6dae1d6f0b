// Package scan implements the per-construct scanners. Each scanner walks
// the full buffer snapshot (or a sub-range) left to right and yields
// candidate matches for a single construct kind. Scanners know nothing
// about each other; overlap between kinds is resolved by the arbiter in
// the blocks package.
package scan

import "github.com/emacsmirror/chatgpt-shell/internal/span"

// Kind identifies a construct. The declaration order is the arbiter's
// acceptance priority: code blocks first, then structural headers, then
// inline constructs with inline code ahead of emphasis so a backtick span
// is never reinterpreted as emphasis.
type Kind int

const (
	KindCodeBlock Kind = iota
	KindHeader
	KindInlineCode
	KindLink
	KindBold
	KindStrikethrough
	KindItalic
)

var kindNames = map[Kind]string{
	KindCodeBlock:     "code-block",
	KindHeader:        "header",
	KindInlineCode:    "inline-code",
	KindLink:          "link",
	KindBold:          "bold",
	KindStrikethrough: "strikethrough",
	KindItalic:        "italic",
}

func (k Kind) String() string { return kindNames[k] }

// Match is one candidate occurrence of a construct. Whole always covers
// the full matched text including delimiters; the remaining spans are
// kind-specific and zero-valued when not applicable.
type Match struct {
	Kind  Kind
	Whole span.Span

	// Code block sub-spans.
	FenceOpen  span.Span // the opening backtick run (after any indent)
	FenceClose span.Span // the closing fence line
	Language   span.Span // language token; empty span after FenceOpen when untagged
	Body       span.Span // code body, or inner text for emphasis/inline code

	// Header and link sub-spans.
	Level span.Span // header: the leading '#' run
	Title span.Span // header title or link title
	URL   span.Span // link target
}

// nextFunc finds the next match of one construct at or after from.
// Returning ok=false ends the scan.
type nextFunc func(text string, from int) (Match, bool)

var scanners = map[Kind]nextFunc{
	KindCodeBlock:     nextFence,
	KindHeader:        nextHeader,
	KindInlineCode:    nextInlineCode,
	KindLink:          nextLink,
	KindBold:          nextBold,
	KindStrikethrough: nextStrikethrough,
	KindItalic:        nextItalic,
}

// Cursor is a lazy, restartable scan of one construct kind. Matches come
// out in buffer order and never overlap each other: the cursor resumes
// immediately after each match end (greedy left-to-right tokenization).
type Cursor struct {
	kind Kind
	text string
	pos  int
}

// NewCursor starts a scan of kind over text.
func NewCursor(kind Kind, text string) *Cursor {
	return &Cursor{kind: kind, text: text}
}

// Next returns the next match, or ok=false when the text is exhausted.
func (c *Cursor) Next() (Match, bool) {
	if c.pos > len(c.text) {
		return Match{}, false
	}
	m, ok := scanners[c.kind](c.text, c.pos)
	if !ok {
		c.pos = len(c.text) + 1
		return Match{}, false
	}
	c.pos = m.Whole.End
	if m.Whole.Empty() {
		// Guard against a zero-width match stalling the cursor.
		c.pos++
	}
	return m, true
}

// Reset restarts the cursor from offset, which may be mid-text to narrow
// a scan to a sub-range.
func (c *Cursor) Reset(offset int) {
	if offset < 0 {
		offset = 0
	}
	c.pos = offset
}

// All drains a fresh cursor for kind over text.
func All(kind Kind, text string) []Match {
	var out []Match
	c := NewCursor(kind, text)
	for {
		m, ok := c.Next()
		if !ok {
			return out
		}
		out = append(out, m)
	}
}

// Kinds lists every construct kind in acceptance-priority order.
func Kinds() []Kind {
	return []Kind{
		KindCodeBlock,
		KindHeader,
		KindInlineCode,
		KindLink,
		KindBold,
		KindStrikethrough,
		KindItalic,
	}
}
