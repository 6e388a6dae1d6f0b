// Package blocks resolves the candidate matches from every scanner into a
// disjoint, position-ordered model of source blocks and inline
// annotations. Code blocks are scanned first and their bodies form the
// protected set: no inline scanner result may survive inside one.
package blocks

import (
	"sort"

	"github.com/emacsmirror/chatgpt-shell/internal/scan"
	"github.com/emacsmirror/chatgpt-shell/internal/span"
)

// SourceBlock is a resolved fenced code block.
type SourceBlock struct {
	FenceStart span.Span // opening backtick run
	FenceEnd   span.Span // closing fence line
	Language   span.Span // empty span after FenceStart when untagged
	Body       span.Span
}

// Whole covers the block from opening fence through closing fence.
func (b SourceBlock) Whole() span.Span {
	return span.New(b.FenceStart.Start, b.FenceEnd.End)
}

// HasLanguage reports whether a language token is present.
func (b SourceBlock) HasLanguage() bool { return !b.Language.Empty() }

// LanguageText returns the raw language token, or "" when untagged.
func (b SourceBlock) LanguageText(text string) string {
	return b.Language.Text(text)
}

// Annotation is a surfaced inline or structural construct. Sub-spans
// beyond Whole are populated per kind, mirroring scan.Match.
type Annotation struct {
	Kind  scan.Kind
	Whole span.Span
	Body  span.Span // emphasis/inline-code inner text
	Level span.Span // header '#' run
	Title span.Span // header or link title
	URL   span.Span // link target
}

// HeaderLevel returns the heading level for header annotations, 0 otherwise.
func (a Annotation) HeaderLevel() int {
	if a.Kind != scan.KindHeader {
		return 0
	}
	return a.Level.Len()
}

// Model is the resolved view of one buffer snapshot. Blocks and
// annotations are each ordered by start offset and are mutually disjoint
// by construction. The model owns no text and must be discarded once the
// buffer mutates.
type Model struct {
	Blocks      []SourceBlock
	Annotations []Annotation
}

// Resolve runs every scanner over text and arbitrates overlaps.
// Acceptance order is scan.Kinds(): fenced blocks seed the accepted set,
// then each inline kind in priority order, first-accepted-wins.
func Resolve(text string) *Model {
	m := &Model{}
	var accepted []span.Span

	for _, f := range scan.All(scan.KindCodeBlock, text) {
		m.Blocks = append(m.Blocks, SourceBlock{
			FenceStart: f.FenceOpen,
			FenceEnd:   f.FenceClose,
			Language:   f.Language,
			Body:       f.Body,
		})
		accepted = append(accepted, f.Whole)
	}

	for _, kind := range scan.Kinds() {
		if kind == scan.KindCodeBlock {
			continue
		}
		for _, c := range scan.All(kind, text) {
			if overlapsAny(c.Whole, accepted) {
				continue
			}
			m.Annotations = append(m.Annotations, Annotation{
				Kind:  c.Kind,
				Whole: c.Whole,
				Body:  c.Body,
				Level: c.Level,
				Title: c.Title,
				URL:   c.URL,
			})
			accepted = append(accepted, c.Whole)
		}
	}

	sort.Slice(m.Blocks, func(i, j int) bool {
		return m.Blocks[i].FenceStart.Start < m.Blocks[j].FenceStart.Start
	})
	sort.Slice(m.Annotations, func(i, j int) bool {
		return m.Annotations[i].Whole.Start < m.Annotations[j].Whole.Start
	})
	return m
}

func overlapsAny(s span.Span, set []span.Span) bool {
	for _, a := range set {
		if s.Overlaps(a) {
			return true
		}
	}
	return false
}

// BlockAt returns the block whose fence-to-fence span contains p.
func (m *Model) BlockAt(p int) *SourceBlock {
	for i := range m.Blocks {
		w := m.Blocks[i].Whole()
		if w.Contains(p) {
			return &m.Blocks[i]
		}
	}
	return nil
}

// NextBlock returns the nearest block whose body starts strictly after p.
func (m *Model) NextBlock(p int) *SourceBlock {
	i := sort.Search(len(m.Blocks), func(i int) bool {
		return m.Blocks[i].Body.Start > p
	})
	if i == len(m.Blocks) {
		return nil
	}
	return &m.Blocks[i]
}

// PrevBlock returns the nearest block whose body starts strictly before p.
func (m *Model) PrevBlock(p int) *SourceBlock {
	i := sort.Search(len(m.Blocks), func(i int) bool {
		return m.Blocks[i].Body.Start >= p
	})
	if i == 0 {
		return nil
	}
	return &m.Blocks[i-1]
}
