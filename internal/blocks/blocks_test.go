package blocks

import (
	"reflect"
	"testing"

	"github.com/emacsmirror/chatgpt-shell/internal/scan"
)

func TestResolveCodeBlock(t *testing.T) {
	text := "```python\ndef f():\n  return 1\n```"
	m := Resolve(text)
	if len(m.Blocks) != 1 {
		t.Fatalf("got %d blocks, want 1", len(m.Blocks))
	}
	b := m.Blocks[0]
	if got := b.LanguageText(text); got != "python" {
		t.Errorf("language = %q, want python", got)
	}
	if got := b.Body.Text(text); got != "def f():\n  return 1" {
		t.Errorf("body = %q", got)
	}
	if len(m.Annotations) != 0 {
		t.Errorf("got %d annotations, want 0", len(m.Annotations))
	}
}

func TestResolveInlineOrder(t *testing.T) {
	text := "**bold** and *italic* and ~~gone~~ and `code`"
	m := Resolve(text)
	if len(m.Annotations) != 4 {
		t.Fatalf("got %d annotations, want 4", len(m.Annotations))
	}
	want := []struct {
		kind scan.Kind
		body string
	}{
		{scan.KindBold, "bold"},
		{scan.KindItalic, "italic"},
		{scan.KindStrikethrough, "gone"},
		{scan.KindInlineCode, "code"},
	}
	for i, w := range want {
		a := m.Annotations[i]
		if a.Kind != w.kind {
			t.Errorf("annotation %d kind = %v, want %v", i, a.Kind, w.kind)
		}
		if got := a.Body.Text(text); got != w.body {
			t.Errorf("annotation %d body = %q, want %q", i, got, w.body)
		}
	}
	for i := 1; i < len(m.Annotations); i++ {
		if m.Annotations[i-1].Whole.Overlaps(m.Annotations[i].Whole) {
			t.Errorf("annotations %d and %d overlap", i-1, i)
		}
	}
}

func TestResolveCodeSpanProtectsEmphasis(t *testing.T) {
	text := "a `*not italic*` b"
	m := Resolve(text)
	if len(m.Annotations) != 1 {
		t.Fatalf("got %d annotations, want 1", len(m.Annotations))
	}
	if m.Annotations[0].Kind != scan.KindInlineCode {
		t.Errorf("kind = %v, want inline code", m.Annotations[0].Kind)
	}
}

func TestResolveUnterminatedFence(t *testing.T) {
	m := Resolve("```js\nconsole.log(1)")
	if len(m.Blocks) != 0 {
		t.Fatalf("got %d blocks, want 0", len(m.Blocks))
	}
}

func TestResolveProtectedBody(t *testing.T) {
	// Emphasis and header markers inside the code body must not surface.
	text := "```\n# not a header\n**not bold**\n```\nafter **bold**"
	m := Resolve(text)
	if len(m.Blocks) != 1 {
		t.Fatalf("got %d blocks, want 1", len(m.Blocks))
	}
	if len(m.Annotations) != 1 {
		t.Fatalf("got %d annotations, want 1", len(m.Annotations))
	}
	a := m.Annotations[0]
	if a.Kind != scan.KindBold || a.Body.Text(text) != "bold" {
		t.Errorf("annotation = %v %q", a.Kind, a.Body.Text(text))
	}
	body := m.Blocks[0].Body
	if a.Whole.Overlaps(body) {
		t.Errorf("annotation %v overlaps code body %v", a.Whole, body)
	}
}

func TestResolveDeterminism(t *testing.T) {
	text := "# h\n\n**b** and `c`\n\n```go\nx := 1\n```\n[t](u)\n"
	first := Resolve(text)
	second := Resolve(text)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("re-resolving unchanged text produced a different model")
	}
}

func TestNoOverlapInvariant(t *testing.T) {
	texts := []string{
		"**a** *b* ~~c~~ `d` [e](f) # not header\n## header\n",
		"```py\n*x*\n```\n*y* **z**",
		"`**`**bold**`**`",
		"*a**b**c*",
		"__a__ _b_ ~~c~~~~d~~",
	}
	for _, text := range texts {
		m := Resolve(text)
		var all []Annotation
		all = append(all, m.Annotations...)
		for i := range all {
			for j := i + 1; j < len(all); j++ {
				if all[i].Whole.Overlaps(all[j].Whole) {
					t.Errorf("text %q: %v overlaps %v", text, all[i].Whole, all[j].Whole)
				}
			}
			for _, b := range m.Blocks {
				if all[i].Whole.Overlaps(b.Whole()) {
					t.Errorf("text %q: annotation %v overlaps block %v", text, all[i].Whole, b.Whole())
				}
			}
		}
	}
}

func TestBlockQueries(t *testing.T) {
	text := "intro\n```a\none\n```\nmiddle\n```b\ntwo\n```\ntail"
	m := Resolve(text)
	if len(m.Blocks) != 2 {
		t.Fatalf("got %d blocks, want 2", len(m.Blocks))
	}
	first, second := m.Blocks[0], m.Blocks[1]

	tests := []struct {
		name  string
		point int
		want  *SourceBlock
	}{
		{name: "before all blocks", point: 0, want: nil},
		{name: "inside first fence span", point: first.FenceStart.Start, want: &m.Blocks[0]},
		{name: "inside first body", point: first.Body.Start, want: &m.Blocks[0]},
		{name: "between blocks", point: first.FenceEnd.End + 2, want: nil},
		{name: "inside second body", point: second.Body.Start + 1, want: &m.Blocks[1]},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.BlockAt(tt.point); got != tt.want {
				t.Errorf("BlockAt(%d) = %v, want %v", tt.point, got, tt.want)
			}
		})
	}

	if got := m.NextBlock(0); got != &m.Blocks[0] {
		t.Errorf("NextBlock(0) = %v", got)
	}
	if got := m.NextBlock(first.Body.Start); got != &m.Blocks[1] {
		t.Errorf("NextBlock(first body) = %v", got)
	}
	if got := m.NextBlock(second.Body.Start); got != nil {
		t.Errorf("NextBlock(last body) = %v, want nil", got)
	}
	if got := m.PrevBlock(second.Body.Start); got != &m.Blocks[0] {
		t.Errorf("PrevBlock(second body) = %v", got)
	}
	if got := m.PrevBlock(first.Body.Start); got != nil {
		t.Errorf("PrevBlock(first body) = %v, want nil", got)
	}
}

func TestNextPrevInverse(t *testing.T) {
	text := "```a\none\n```\nx\n```b\ntwo\n```\ny\n```c\nthree\n```"
	m := Resolve(text)
	if len(m.Blocks) != 3 {
		t.Fatalf("got %d blocks, want 3", len(m.Blocks))
	}
	// From any point between the first and last body starts, stepping
	// forward then back never lands past the starting point's block.
	for p := m.Blocks[0].Body.Start; p < m.Blocks[2].Body.Start; p++ {
		next := m.NextBlock(p)
		if next == nil {
			continue
		}
		back := m.PrevBlock(next.Body.Start)
		if back == nil {
			continue
		}
		if back.Body.Start > p && m.BlockAt(p) == nil {
			t.Fatalf("p=%d: prev(next(p)) body start %d jumped past point", p, back.Body.Start)
		}
	}
}
