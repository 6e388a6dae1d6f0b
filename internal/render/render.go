// Package render turns a resolved block model into declarative visual
// decorations. Decorations never mutate the underlying text: a host maps
// them onto its own non-destructive overlay primitive, and the only
// mutation path is clear-everything-then-reapply, which makes rendering a
// pure function of the current model.
package render

import (
	"github.com/emacsmirror/chatgpt-shell/internal/blocks"
	"github.com/emacsmirror/chatgpt-shell/internal/scan"
	"github.com/emacsmirror/chatgpt-shell/internal/span"
)

// DecorationKind enumerates the overlay primitives a host must support.
type DecorationKind int

const (
	Hide       DecorationKind = iota // span is not displayed
	Substitute                       // span is displayed as Text instead
	Face                             // span is displayed with Style
	BindAction                       // span triggers Action when activated
)

// Face names used by the engine. Hosts map these to concrete styles;
// syntax-token faces from the highlighter carry explicit colors instead.
const (
	FaceDocMarkup     = "doc-markup" // uniform code body fallback
	FaceInlineCode    = "inline-code"
	FaceBold          = "bold"
	FaceItalic        = "italic"
	FaceStrikethrough = "strikethrough"
	FaceLink          = "link"
	FaceHeading       = "heading" // suffixed -1 .. -8
)

// Style describes how a Face decoration draws. Either Name refers to a
// host-themed face, or the explicit attributes are set (highlighter
// tokens).
type Style struct {
	Name      string
	Fg        string // hex #RRGGBB when set
	Bold      bool
	Italic    bool
	Underline bool
	Strike    bool
}

// ActionID identifies a bindable action.
type ActionID string

const (
	ActionCopyBody ActionID = "copy-body" // copy Target to the clipboard
	ActionOpenURL  ActionID = "open-url"  // open Target as a URL
)

// Action is an activation binding attached to a span. Target is the span
// the action operates on (a block body, a link URL), not the span it is
// bound to.
type Action struct {
	ID     ActionID
	Target span.Span
}

// Decoration is one visual instruction over a span of the snapshot.
type Decoration struct {
	Span   span.Span
	Kind   DecorationKind
	Text   string // Substitute
	Style  Style  // Face
	Action Action // BindAction
}

// CopyGlyph is the compact affordance substituted for an opening fence.
const CopyGlyph = "⎘"

// Renderer computes decorations for a model. The zero value delegates
// syntax highlighting through the default chroma resolver.
type Renderer struct {
	highlighter *Highlighter
}

// New returns a Renderer using h for code-body coloring. A nil h falls
// back to the default chroma-backed highlighter.
func New(h *Highlighter) *Renderer {
	if h == nil {
		h = NewHighlighter("")
	}
	return &Renderer{highlighter: h}
}

// Render produces the complete decoration set for model over text. The
// result is deterministic for a given (model, text) pair; hosts clear all
// prior decorations before applying it.
func (r *Renderer) Render(m *blocks.Model, text string) []Decoration {
	var out []Decoration
	for i := range m.Blocks {
		out = append(out, r.renderBlock(&m.Blocks[i], text)...)
	}
	for i := range m.Annotations {
		out = append(out, renderAnnotation(&m.Annotations[i])...)
	}
	return out
}

func (r *Renderer) renderBlock(b *blocks.SourceBlock, text string) []Decoration {
	out := []Decoration{
		{Span: b.FenceStart, Kind: Substitute, Text: CopyGlyph},
		{Span: b.FenceStart, Kind: BindAction, Action: Action{ID: ActionCopyBody, Target: b.Body}},
		{Span: b.FenceEnd, Kind: Hide},
	}
	lang := ""
	if b.HasLanguage() {
		lang = b.LanguageText(text)
	}
	if faces := r.highlighter.BodyFaces(b.Body, text, lang); len(faces) > 0 {
		out = append(out, faces...)
	} else if !b.Body.Empty() {
		out = append(out, Decoration{Span: b.Body, Kind: Face, Style: Style{Name: FaceDocMarkup}})
	}
	return out
}

func renderAnnotation(a *blocks.Annotation) []Decoration {
	switch a.Kind {
	case scan.KindHeader:
		level := a.HeaderLevel()
		if level < 1 || level > 8 {
			level = 1
		}
		return []Decoration{
			{Span: span.New(a.Whole.Start, a.Title.Start), Kind: Hide},
			{Span: a.Title, Kind: Face, Style: Style{Name: headingFace(level)}},
		}
	case scan.KindLink:
		return []Decoration{
			{Span: span.New(a.Whole.Start, a.Title.Start), Kind: Hide},
			{Span: span.New(a.Title.End, a.Whole.End), Kind: Hide},
			{Span: a.Title, Kind: Face, Style: Style{Name: FaceLink}},
			{Span: a.Title, Kind: BindAction, Action: Action{ID: ActionOpenURL, Target: a.URL}},
		}
	case scan.KindBold:
		return emphasis(a, FaceBold)
	case scan.KindItalic:
		return emphasis(a, FaceItalic)
	case scan.KindStrikethrough:
		return emphasis(a, FaceStrikethrough)
	case scan.KindInlineCode:
		return emphasis(a, FaceInlineCode)
	}
	return nil
}

// emphasis hides the delimiters on both sides and styles the inner text.
func emphasis(a *blocks.Annotation, face string) []Decoration {
	return []Decoration{
		{Span: span.New(a.Whole.Start, a.Body.Start), Kind: Hide},
		{Span: span.New(a.Body.End, a.Whole.End), Kind: Hide},
		{Span: a.Body, Kind: Face, Style: Style{Name: face}},
	}
}

func headingFace(level int) string {
	return FaceHeading + "-" + string(rune('0'+level))
}
