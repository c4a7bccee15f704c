// Package segment defines the colored units a prompt is made of and the
// assembler detectors append them to.
package segment

import "github.com/alexisbeaulieu97/powerline/internal/theme"

// Segment is one colored piece of the prompt. It has no setters.
type Segment struct {
	fg   theme.RGB
	bg   theme.RGB
	text string
}

// New builds a Segment.
func New(fg, bg theme.RGB, text string) Segment {
	return Segment{fg: fg, bg: bg, text: text}
}

func (s Segment) FG() theme.RGB { return s.fg }

func (s Segment) BG() theme.RGB { return s.bg }

func (s Segment) Text() string { return s.text }

// Powerline collects the segments of one render pass, in push order, along
// with the theme they are painted from.
type Powerline struct {
	theme    *theme.Theme
	segments []Segment
}

// NewPowerline creates an empty assembler for t. A nil theme means theme.Default().
func NewPowerline(t *theme.Theme) *Powerline {
	if t == nil {
		t = theme.Default()
	}
	return &Powerline{theme: t}
}

// Theme returns the active theme. Callers must not modify it.
func (p *Powerline) Theme() *theme.Theme {
	return p.theme
}

// Push appends s. It is the only way to change the sequence.
func (p *Powerline) Push(s Segment) {
	p.segments = append(p.segments, s)
}

// Segments returns a copy of the sequence in push order.
func (p *Powerline) Segments() []Segment {
	out := make([]Segment, len(p.segments))
	copy(out, p.segments)
	return out
}

func (p *Powerline) Len() int {
	return len(p.segments)
}
