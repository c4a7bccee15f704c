// Package render turns a finished segment sequence into the escape-coded
// string a shell uses as its prompt.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"

	"github.com/alexisbeaulieu97/powerline/internal/segment"
	"github.com/alexisbeaulieu97/powerline/internal/theme"
)

const (
	arrow     = "\uE0B0"
	thinArrow = "\uE0B1"
)

// Shell selects how non-printing escape sequences are marked.
type Shell string

const (
	ShellBare Shell = "bare"
	ShellBash Shell = "bash"
	ShellZsh  Shell = "zsh"
)

// Shells lists the accepted shell names.
var Shells = []Shell{ShellBare, ShellBash, ShellZsh}

// ParseShell validates a shell name.
func ParseShell(name string) (Shell, error) {
	for _, s := range Shells {
		if string(s) == name {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown shell %q (want bare, bash or zsh)", name)
}

// Render writes segs as a powerline prompt followed by a reset and a space.
// An empty sequence writes nothing.
func Render(w io.Writer, segs []segment.Segment, t *theme.Theme, shell Shell) error {
	if len(segs) == 0 {
		return nil
	}
	if t == nil {
		t = theme.Default()
	}

	var b strings.Builder
	for i, seg := range segs {
		b.WriteString(shell.wrap(fg(seg.FG()) + bg(seg.BG())))
		b.WriteString(" " + shell.escape(seg.Text()) + " ")

		if i+1 < len(segs) {
			next := segs[i+1]
			if next.BG() == seg.BG() {
				b.WriteString(shell.wrap(fg(t.SeparatorFG)))
				b.WriteString(thinArrow)
				continue
			}
			b.WriteString(shell.wrap(fg(seg.BG()) + bg(next.BG())))
			b.WriteString(arrow)
			continue
		}

		b.WriteString(shell.wrap(sgr("49") + fg(seg.BG())))
		b.WriteString(arrow)
	}
	b.WriteString(shell.wrap(sgr(termenv.ResetSeq)))
	b.WriteString(" ")

	_, err := io.WriteString(w, b.String())
	return err
}

func sgr(seq string) string {
	return termenv.CSI + seq + "m"
}

// trueColor writes the channels verbatim. termenv.RGBColor round-trips
// through floats and truncates some values by one.
func trueColor(layer string, c theme.RGB) string {
	return sgr(fmt.Sprintf("%s;2;%d;%d;%d", layer, c.R, c.G, c.B))
}

func fg(c theme.RGB) string { return trueColor(termenv.Foreground, c) }

func bg(c theme.RGB) string { return trueColor(termenv.Background, c) }

// wrap marks escape sequences as zero-width so the shell computes the
// prompt length correctly.
func (s Shell) wrap(esc string) string {
	switch s {
	case ShellBash:
		return `\[` + esc + `\]`
	case ShellZsh:
		return "%{" + esc + "%}"
	default:
		return esc
	}
}

var (
	bashEscaper = strings.NewReplacer(`\`, `\\`, "$", `\$`, "`", "\\`")
	zshEscaper  = strings.NewReplacer("%", "%%")
)

// escape keeps segment text literal under the shell's prompt expansion.
func (s Shell) escape(text string) string {
	switch s {
	case ShellBash:
		return bashEscaper.Replace(text)
	case ShellZsh:
		return zshEscaper.Replace(text)
	default:
		return text
	}
}
