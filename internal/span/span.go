// Package span provides the half-open offset interval used throughout the
// annotation engine. Offsets are byte positions into a single buffer
// snapshot and are only meaningful until that snapshot is replaced.
package span

import "fmt"

// Span is a half-open [Start, End) byte interval over buffer text.
type Span struct {
	Start int
	End   int
}

// New returns a span covering [start, end). It panics if end < start;
// spans are constructed from scanner matches where that would be a bug,
// not an input error.
func New(start, end int) Span {
	if end < start {
		panic(fmt.Sprintf("span: end %d < start %d", end, start))
	}
	return Span{Start: start, End: end}
}

// Empty reports whether the span covers no bytes.
func (s Span) Empty() bool { return s.Start == s.End }

// Len returns the number of bytes covered.
func (s Span) Len() int { return s.End - s.Start }

// Contains reports whether offset p lies inside the half-open interval.
func (s Span) Contains(p int) bool { return p >= s.Start && p < s.End }

// Overlaps reports whether s and o share at least one byte. Empty spans
// never overlap anything.
func (s Span) Overlaps(o Span) bool {
	return s.Start < o.End && o.Start < s.End
}

// Within reports whether s lies entirely inside o.
func (s Span) Within(o Span) bool {
	return s.Start >= o.Start && s.End <= o.End
}

// Text slices the span out of the snapshot it was computed against.
func (s Span) Text(text string) string {
	return text[s.Start:s.End]
}

func (s Span) String() string {
	return fmt.Sprintf("[%d,%d)", s.Start, s.End)
}
