package scan

import (
	"regexp"

	"github.com/emacsmirror/chatgpt-shell/internal/span"
)

// Inline constructs are single-line and bounded, so RE2 patterns (no
// backtracking) are fine here; leftmost-match semantics give the greedy
// left-to-right tokenization directly.
var (
	inlineCodeRE    = regexp.MustCompile("`[^`\n]+`")
	linkRE          = regexp.MustCompile(`\[[^]\n]+\]\([^)\n]+\)`)
	boldRE          = regexp.MustCompile(`\*\*[^*\n]+\*\*|__[^_\n]+__`)
	strikethroughRE = regexp.MustCompile(`~~[^~\n]+~~`)
	italicRE        = regexp.MustCompile(`\*[^*\n]+\*|_[^_\n]+_`)
)

func nextInlineCode(text string, from int) (Match, bool) {
	whole, ok := findAt(inlineCodeRE, text, from)
	if !ok {
		return Match{}, false
	}
	return Match{
		Kind:  KindInlineCode,
		Whole: whole,
		Body:  span.New(whole.Start+1, whole.End-1),
	}, true
}

func nextLink(text string, from int) (Match, bool) {
	whole, ok := findAt(linkRE, text, from)
	if !ok {
		return Match{}, false
	}
	// [title](url): the delimiters are single bytes, so sub-spans can be
	// derived from the bracket positions directly.
	titleEnd := whole.Start + 1
	for text[titleEnd] != ']' {
		titleEnd++
	}
	return Match{
		Kind:  KindLink,
		Whole: whole,
		Title: span.New(whole.Start+1, titleEnd),
		URL:   span.New(titleEnd+2, whole.End-1),
	}, true
}

func nextBold(text string, from int) (Match, bool) {
	whole, ok := findAt(boldRE, text, from)
	if !ok {
		return Match{}, false
	}
	return Match{
		Kind:  KindBold,
		Whole: whole,
		Body:  span.New(whole.Start+2, whole.End-2),
	}, true
}

func nextStrikethrough(text string, from int) (Match, bool) {
	whole, ok := findAt(strikethroughRE, text, from)
	if !ok {
		return Match{}, false
	}
	return Match{
		Kind:  KindStrikethrough,
		Whole: whole,
		Body:  span.New(whole.Start+2, whole.End-2),
	}, true
}

// nextItalic additionally requires the opening delimiter to be preceded by
// start-of-text, a newline, or whitespace so the tail of a bold run is not
// picked up as italic.
func nextItalic(text string, from int) (Match, bool) {
	pos := from
	for {
		whole, ok := findAt(italicRE, text, pos)
		if !ok {
			return Match{}, false
		}
		if italicDelimiterOK(text, whole.Start) {
			return Match{
				Kind:  KindItalic,
				Whole: whole,
				Body:  span.New(whole.Start+1, whole.End-1),
			}, true
		}
		pos = whole.Start + 1
	}
}

func italicDelimiterOK(text string, start int) bool {
	if start == 0 {
		return true
	}
	switch text[start-1] {
	case '\n', ' ', '\t':
		return true
	}
	return false
}

func findAt(re *regexp.Regexp, text string, from int) (span.Span, bool) {
	if from > len(text) {
		return span.Span{}, false
	}
	loc := re.FindStringIndex(text[from:])
	if loc == nil {
		return span.Span{}, false
	}
	return span.New(from+loc[0], from+loc[1]), true
}
