package render

import (
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/emacsmirror/chatgpt-shell/internal/span"
)

// Host is the display layer a renderer targets. Decorations are owned by
// the renderer alone: hosts never invent or move them, and the only
// mutation path is Clear followed by Apply.
type Host interface {
	Clear()
	Apply(decs []Decoration)
}

// Terminal is an ANSI host. It draws decorations over a text snapshot
// without touching the snapshot itself; clearing restores the original
// text exactly because the text was never mutated to begin with.
type Terminal struct {
	theme   *Theme
	plain   bool // no color support detected
	text    string
	decs    []Decoration
	actions []Decoration
}

// NewTerminal returns a host themed with theme (nil means DefaultTheme).
// The environment's color profile decides whether styles are emitted.
func NewTerminal(theme *Theme) *Terminal {
	if theme == nil {
		theme = DefaultTheme()
	}
	return &Terminal{
		theme: theme,
		plain: termenv.EnvColorProfile() == termenv.Ascii,
	}
}

// SetText installs the buffer snapshot the next Apply decorates.
// Changing the text drops all decorations; spans from the previous
// snapshot are meaningless against the new one.
func (t *Terminal) SetText(text string) {
	t.text = text
	t.Clear()
}

// Clear removes every decoration.
func (t *Terminal) Clear() {
	t.decs = nil
	t.actions = nil
}

// Apply installs the decoration set. Call Clear (or rely on SetText)
// between models; Apply itself also resets, so re-rendering the same
// model is idempotent.
func (t *Terminal) Apply(decs []Decoration) {
	t.Clear()
	for _, d := range decs {
		if d.Kind == BindAction {
			t.actions = append(t.actions, d)
			continue
		}
		t.decs = append(t.decs, d)
	}
	sort.SliceStable(t.decs, func(i, j int) bool {
		return t.decs[i].Span.Start < t.decs[j].Span.Start
	})
}

// ActionAt returns the action bound at offset p, if any.
func (t *Terminal) ActionAt(p int) (Action, bool) {
	for _, d := range t.actions {
		if d.Span.Contains(p) {
			return d.Action, true
		}
	}
	return Action{}, false
}

// String draws the decorated snapshot as ANSI text.
func (t *Terminal) String() string {
	var b strings.Builder
	cur := 0
	for _, d := range t.decs {
		if d.Span.Start < cur {
			// Overlap would be an arbiter bug; draw the remainder plainly
			// rather than double-printing.
			continue
		}
		b.WriteString(t.text[cur:d.Span.Start])
		switch d.Kind {
		case Hide:
			// skipped
		case Substitute:
			b.WriteString(t.styled(Style{Name: FaceDocMarkup}, d.Text))
		case Face:
			b.WriteString(t.styled(d.Style, d.Span.Text(t.text)))
		}
		cur = d.Span.End
	}
	b.WriteString(t.text[cur:])
	return b.String()
}

func (t *Terminal) styled(s Style, text string) string {
	if t.plain {
		return text
	}
	if s.Name != "" {
		return t.theme.Face(s.Name).Render(text)
	}
	style := lipgloss.NewStyle()
	if s.Fg != "" {
		style = style.Foreground(lipgloss.Color(s.Fg))
	}
	if s.Bold {
		style = style.Bold(true)
	}
	if s.Italic {
		style = style.Italic(true)
	}
	if s.Underline {
		style = style.Underline(true)
	}
	if s.Strike {
		style = style.Strikethrough(true)
	}
	return style.Render(text)
}

// Draw is the render-and-show convenience used by the CLI: clear, apply,
// emit.
func (t *Terminal) Draw(decs []Decoration) string {
	t.Apply(decs)
	return t.String()
}

// visibleSpan reports whether any decoration hides or replaces s entirely.
// Used in tests to assert non-destructiveness.
func (t *Terminal) visibleSpan(s span.Span) bool {
	for _, d := range t.decs {
		if d.Kind != Face && d.Span.Overlaps(s) {
			return false
		}
	}
	return true
}
