package scan

import "testing"

func TestFenceScan(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		wantLang string
		wantBody string
		wantNone bool
	}{
		{
			name:     "python block",
			text:     "```python\ndef f():\n  return 1\n```",
			wantLang: "python",
			wantBody: "def f():\n  return 1",
		},
		{
			name:     "no language tag",
			text:     "```\nplain\n```\n",
			wantLang: "",
			wantBody: "plain",
		},
		{
			name:     "unterminated fence yields nothing",
			text:     "```js\nconsole.log(1)",
			wantNone: true,
		},
		{
			name:     "opening fence with no body line",
			text:     "```go",
			wantNone: true,
		},
		{
			name:     "indented fences",
			text:     "  ```ruby\nputs 1\n  ```",
			wantLang: "ruby",
			wantBody: "puts 1",
		},
		{
			name:     "empty body",
			text:     "```\n```",
			wantBody: "",
		},
		{
			name:     "four backticks is not a fence",
			text:     "````\nx\n````",
			wantNone: true,
		},
		{
			name:     "language with plus and dash",
			text:     "```objective-c+2\nid x;\n```",
			wantLang: "objective-c+2",
			wantBody: "id x;",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matches := All(KindCodeBlock, tt.text)
			if tt.wantNone {
				if len(matches) != 0 {
					t.Fatalf("got %d matches, want none", len(matches))
				}
				return
			}
			if len(matches) != 1 {
				t.Fatalf("got %d matches, want 1", len(matches))
			}
			m := matches[0]
			if got := m.Language.Text(tt.text); got != tt.wantLang {
				t.Errorf("language = %q, want %q", got, tt.wantLang)
			}
			if got := m.Body.Text(tt.text); got != tt.wantBody {
				t.Errorf("body = %q, want %q", got, tt.wantBody)
			}
		})
	}
}

func TestFenceLanguageSpanWhenUntagged(t *testing.T) {
	text := "```\nx\n```"
	matches := All(KindCodeBlock, text)
	if len(matches) != 1 {
		t.Fatalf("got %d matches, want 1", len(matches))
	}
	m := matches[0]
	if !m.Language.Empty() {
		t.Errorf("language span %v not empty", m.Language)
	}
	if m.Language.Start != m.FenceOpen.End {
		t.Errorf("language span %v not immediately after fence %v", m.Language, m.FenceOpen)
	}
}

func TestFenceGreedyLeftmost(t *testing.T) {
	// Two complete blocks: scanning resumes after the first block's end.
	text := "```a\none\n```\nmiddle\n```b\ntwo\n```"
	matches := All(KindCodeBlock, text)
	if len(matches) != 2 {
		t.Fatalf("got %d matches, want 2", len(matches))
	}
	if got := matches[0].Body.Text(text); got != "one" {
		t.Errorf("first body = %q", got)
	}
	if got := matches[1].Body.Text(text); got != "two" {
		t.Errorf("second body = %q", got)
	}
}

func TestHeaderScan(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantLevel int
		wantTitle string
		wantNone  bool
	}{
		{name: "level one", text: "# Title", wantLevel: 1, wantTitle: "Title"},
		{name: "level three", text: "### Deep dive\n", wantLevel: 3, wantTitle: "Deep dive"},
		{name: "level eight", text: "######## Tiny", wantLevel: 8, wantTitle: "Tiny"},
		{name: "nine hashes is not a header", text: "######### Nope", wantNone: true},
		{name: "no space after hashes", text: "#Title", wantNone: true},
		{name: "mid line hash ignored", text: "not # a header", wantNone: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matches := All(KindHeader, tt.text)
			if tt.wantNone {
				if len(matches) != 0 {
					t.Fatalf("got %d matches, want none", len(matches))
				}
				return
			}
			if len(matches) != 1 {
				t.Fatalf("got %d matches, want 1", len(matches))
			}
			m := matches[0]
			if got := m.Level.Len(); got != tt.wantLevel {
				t.Errorf("level = %d, want %d", got, tt.wantLevel)
			}
			if got := m.Title.Text(tt.text); got != tt.wantTitle {
				t.Errorf("title = %q, want %q", got, tt.wantTitle)
			}
		})
	}
}

func TestInlineScan(t *testing.T) {
	tests := []struct {
		name  string
		kind  Kind
		text  string
		wants []string // inner body text of each match, in order
	}{
		{name: "inline code", kind: KindInlineCode, text: "run `ls -la` now", wants: []string{"ls -la"}},
		{name: "inline code excludes newline", kind: KindInlineCode, text: "`broken\nspan`", wants: nil},
		{name: "bold asterisks", kind: KindBold, text: "**hi** there", wants: []string{"hi"}},
		{name: "bold underscores", kind: KindBold, text: "__hi__ there", wants: []string{"hi"}},
		{name: "strikethrough", kind: KindStrikethrough, text: "~~gone~~", wants: []string{"gone"}},
		{name: "italic star", kind: KindItalic, text: "an *italic* word", wants: []string{"italic"}},
		{name: "italic underscore", kind: KindItalic, text: "an _italic_ word", wants: []string{"italic"}},
		{name: "italic needs boundary before delimiter", kind: KindItalic, text: "mid*dle*word", wants: nil},
		{name: "italic at start of text", kind: KindItalic, text: "*lead* word", wants: []string{"lead"}},
		{name: "italic after newline", kind: KindItalic, text: "line\n*lead* word", wants: []string{"lead"}},
		{name: "two links tokenized left to right", kind: KindLink, text: "[a](x) [b](y)", wants: []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matches := All(tt.kind, tt.text)
			if len(matches) != len(tt.wants) {
				t.Fatalf("got %d matches, want %d", len(matches), len(tt.wants))
			}
			for i, want := range tt.wants {
				body := matches[i].Body
				if tt.kind == KindLink {
					body = matches[i].Title
				}
				if got := body.Text(tt.text); got != want {
					t.Errorf("match %d = %q, want %q", i, got, want)
				}
			}
		})
	}
}

func TestLinkSubSpans(t *testing.T) {
	text := "see [docs](https://example.com) here"
	matches := All(KindLink, text)
	if len(matches) != 1 {
		t.Fatalf("got %d matches, want 1", len(matches))
	}
	m := matches[0]
	if got := m.Title.Text(text); got != "docs" {
		t.Errorf("title = %q", got)
	}
	if got := m.URL.Text(text); got != "https://example.com" {
		t.Errorf("url = %q", got)
	}
}

func TestCursorRestart(t *testing.T) {
	text := "`a` and `b` and `c`"
	c := NewCursor(KindInlineCode, text)
	first, ok := c.Next()
	if !ok || first.Body.Text(text) != "a" {
		t.Fatalf("first = %+v ok=%v", first, ok)
	}
	c.Reset(first.Whole.End)
	second, ok := c.Next()
	if !ok || second.Body.Text(text) != "b" {
		t.Fatalf("second after reset = %+v ok=%v", second, ok)
	}
}
