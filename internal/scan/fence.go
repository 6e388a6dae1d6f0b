package scan

import (
	"strings"

	"github.com/emacsmirror/chatgpt-shell/internal/span"
)

// Fence scanning is two-phase: find the next opening fence line, then walk
// forward line by line for the closing fence line. No regex is involved so
// arbitrary-length bodies cost one pass with no backtracking.

// lineStartAt returns the first line-start offset at or after from, or
// len(text)+1 when no further line begins.
func lineStartAt(text string, from int) int {
	if from <= 0 {
		return 0
	}
	if from <= len(text) && text[from-1] == '\n' {
		return from
	}
	if from > len(text) {
		return len(text) + 1
	}
	j := strings.IndexByte(text[from:], '\n')
	if j < 0 {
		return len(text) + 1
	}
	return from + j + 1
}

// lineEndAt returns the offset of the newline terminating the line that
// begins at start, or len(text) with hasNL=false for the final line.
func lineEndAt(text string, start int) (end int, hasNL bool) {
	j := strings.IndexByte(text[start:], '\n')
	if j < 0 {
		return len(text), false
	}
	return start + j, true
}

func isLangChar(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' ||
		b >= '0' && b <= '9' || b == '-' || b == '+'
}

// fenceOpen describes a parsed opening fence line.
type fenceOpen struct {
	fence span.Span // the three backticks
	lang  span.Span // language token; empty span after fence when absent
}

// parseFenceOpen parses text[start:end) (one line, newline excluded) as an
// opening fence: optional indent, exactly three backticks, optional
// whitespace, optional language token, optional trailing whitespace.
func parseFenceOpen(text string, start, end int) (fenceOpen, bool) {
	i := start
	for i < end && (text[i] == ' ' || text[i] == '\t') {
		i++
	}
	if i+3 > end || text[i:i+3] != "```" {
		return fenceOpen{}, false
	}
	if i+3 < end && text[i+3] == '`' {
		return fenceOpen{}, false
	}
	open := fenceOpen{fence: span.New(i, i+3)}
	j := i + 3
	for j < end && (text[j] == ' ' || text[j] == '\t') {
		j++
	}
	langStart := j
	for j < end && isLangChar(text[j]) {
		j++
	}
	if j > langStart {
		open.lang = span.New(langStart, j)
	} else {
		open.lang = span.New(open.fence.End, open.fence.End)
	}
	for j < end && (text[j] == ' ' || text[j] == '\t') {
		j++
	}
	if j != end {
		return fenceOpen{}, false
	}
	return open, true
}

// isFenceClose reports whether one line (newline excluded) closes a fence:
// optional whitespace around a bare backtick triple.
func isFenceClose(line string) bool {
	return strings.Trim(line, " \t") == "```"
}

func nextFence(text string, from int) (Match, bool) {
	pos := lineStartAt(text, from)
	for pos <= len(text) {
		lineEnd, hasNL := lineEndAt(text, pos)
		open, ok := parseFenceOpen(text, pos, lineEnd)
		if ok && hasNL {
			bodyStart := lineEnd + 1
			cur := bodyStart
			for cur <= len(text) {
				closeEnd, closeHasNL := lineEndAt(text, cur)
				if isFenceClose(text[cur:closeEnd]) {
					bodyEnd := cur - 1 // newline before the closing line
					if bodyEnd < bodyStart {
						bodyEnd = bodyStart
					}
					return Match{
						Kind:       KindCodeBlock,
						Whole:      span.New(pos, closeEnd),
						FenceOpen:  open.fence,
						FenceClose: span.New(cur, closeEnd),
						Language:   open.lang,
						Body:       span.New(bodyStart, bodyEnd),
					}, true
				}
				if !closeHasNL {
					break
				}
				cur = closeEnd + 1
			}
			// Unterminated fence: nothing at or past this opening can
			// form a block, since any later bare fence line would have
			// closed it.
			return Match{}, false
		}
		if !hasNL {
			break
		}
		pos = lineEnd + 1
	}
	return Match{}, false
}

func nextHeader(text string, from int) (Match, bool) {
	pos := lineStartAt(text, from)
	for pos <= len(text) {
		lineEnd, hasNL := lineEndAt(text, pos)
		i := pos
		for i < lineEnd && text[i] == '#' {
			i++
		}
		level := i - pos
		if level >= 1 && level <= 8 && i < lineEnd && text[i] == ' ' {
			for i < lineEnd && text[i] == ' ' {
				i++
			}
			return Match{
				Kind:  KindHeader,
				Whole: span.New(pos, lineEnd),
				Level: span.New(pos, pos+level),
				Title: span.New(i, lineEnd),
			}, true
		}
		if !hasNL {
			break
		}
		pos = lineEnd + 1
	}
	return Match{}, false
}
