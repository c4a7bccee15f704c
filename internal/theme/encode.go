package theme

import (
	"bufio"
	"fmt"
	"io"
)

// Encode writes t in theme-file syntax, one role per line, grouped by the
// segment that uses it. Glyphs are written as hexadecimal code points so
// the output parses back to the same theme.
func Encode(w io.Writer, t *Theme) error {
	if t == nil {
		t = Default()
	}
	bw := bufio.NewWriter(w)
	for _, role := range roleTable {
		switch role.Kind {
		case KindColor:
			fmt.Fprintf(bw, "%s = %s\n", role.Name, *role.color(t))
		case KindGlyph:
			fmt.Fprintf(bw, "%s = %04X\n", role.Name, *role.glyph(t))
		}
	}
	return bw.Flush()
}
