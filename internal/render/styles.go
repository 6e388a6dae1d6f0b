package render

import "github.com/charmbracelet/lipgloss"

// Theme maps engine face names to lipgloss styles.
type Theme struct {
	faces map[string]lipgloss.Style
}

// Eight distinct heading colors; levels beyond the palette clamp to
// level 1 at render time.
var headingColors = [8]string{"212", "99", "39", "35", "178", "208", "167", "245"}

// DefaultTheme returns the stock theme.
func DefaultTheme() *Theme {
	t := &Theme{faces: map[string]lipgloss.Style{
		FaceDocMarkup:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		FaceInlineCode:    lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		FaceBold:          lipgloss.NewStyle().Bold(true),
		FaceItalic:        lipgloss.NewStyle().Italic(true),
		FaceStrikethrough: lipgloss.NewStyle().Strikethrough(true),
		FaceLink:          lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Underline(true),
	}}
	for i, c := range headingColors {
		t.faces[headingFace(i+1)] = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(c))
	}
	return t
}

// Face returns the style for name; unknown names render unstyled.
func (t *Theme) Face(name string) lipgloss.Style {
	if s, ok := t.faces[name]; ok {
		return s
	}
	return lipgloss.NewStyle()
}

// SetFace overrides one face, allowing config-driven theming.
func (t *Theme) SetFace(name string, style lipgloss.Style) {
	t.faces[name] = style
}
