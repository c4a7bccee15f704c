package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/alexisbeaulieu97/powerline/internal/theme"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).MarginTop(1)
	nameStyle   = lipgloss.NewStyle().Width(22)
	hexStyle    = lipgloss.NewStyle().Faint(true)
)

// Preview lists every role of t with a color swatch or its glyph.
func Preview(t *theme.Theme) string {
	var colors, glyphs []string

	for _, role := range theme.Roles() {
		switch role.Kind {
		case theme.KindColor:
			c, _ := t.Color(role.Name)
			swatch := lipgloss.NewStyle().Background(lipgloss.Color(c.Hex())).Render("    ")
			colors = append(colors, lipgloss.JoinHorizontal(lipgloss.Top,
				nameStyle.Render(role.Name), swatch, " ", hexStyle.Render(fmt.Sprintf("%s  %s", c.Hex(), c))))
		case theme.KindGlyph:
			g, _ := t.Glyph(role.Name)
			glyphs = append(glyphs, lipgloss.JoinHorizontal(lipgloss.Top,
				nameStyle.Render(role.Name), glyphCell(g), " ", hexStyle.Render(fmt.Sprintf("U+%04X", g))))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		headerStyle.Render("Colors"),
		strings.Join(colors, "\n"),
		headerStyle.Render("Glyphs"),
		strings.Join(glyphs, "\n"),
	)
}

// glyphCell pads a glyph to four columns; wide glyphs take two.
func glyphCell(g rune) string {
	return runewidth.FillRight(string(g), 4)
}
