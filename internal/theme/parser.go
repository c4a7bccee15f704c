package theme

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	powerlineerrors "github.com/alexisbeaulieu97/powerline/pkg/errors"
)

const (
	commentMarker = '#'
	separator     = "="
)

var errInvalidUTF8 = errors.New("line is not valid UTF-8")

// Load reads a theme file. The file is closed before Load returns.
//
// Application is all-or-nothing: a file that fails on any line yields a nil
// theme, never one carrying only the lines before the failure.
func Load(path string) (*Theme, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, powerlineerrors.NewSourceError(path, err)
	}
	defer f.Close()

	return parse(f, path)
}

// Parse reads theme entries from r on top of Default.
func Parse(r io.Reader) (*Theme, error) {
	return parse(r, "")
}

func parse(r io.Reader, path string) (*Theme, error) {
	t := Default()

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if !utf8.ValidString(line) {
			return nil, powerlineerrors.NewLineError(path, lineNo, errInvalidUTF8)
		}

		if corrupt := t.applyLine(line); corrupt != nil {
			corrupt.Path = path
			corrupt.Line = lineNo
			return nil, corrupt
		}
	}

	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, powerlineerrors.NewLineError(path, lineNo+1, err)
		}
		return nil, powerlineerrors.NewSourceError(path, err)
	}

	return t, nil
}

func (t *Theme) applyLine(line string) *powerlineerrors.CorruptError {
	if skipLine(line) {
		return nil
	}

	corrupt := func(key, reason string, err error) *powerlineerrors.CorruptError {
		return powerlineerrors.NewCorruptError(0, line, key, reason, err)
	}

	rawKey, rawValue, found := strings.Cut(line, separator)
	key := strings.TrimSpace(rawKey)
	value := strings.TrimSpace(rawValue)

	switch {
	case !found:
		return corrupt(key, fmt.Sprintf("missing %q separator", separator), nil)
	case key == "":
		return corrupt(key, "empty role name", nil)
	case value == "":
		return corrupt(key, fmt.Sprintf("role %s has no value", key), nil)
	}

	role, ok := roleIndex[key]
	if !ok || role.Kind != KindOf(key) {
		return corrupt(key, fmt.Sprintf("unknown role %s", key), nil)
	}

	switch role.Kind {
	case KindGlyph:
		glyph, err := ParseGlyph(value)
		if err != nil {
			return corrupt(key, fmt.Sprintf("invalid glyph for %s", key), err)
		}
		*role.glyph(t) = glyph
	default:
		color, err := ParseColor(value)
		if err != nil {
			return corrupt(key, fmt.Sprintf("invalid color for %s", key), err)
		}
		*role.color(t) = color
	}

	return nil
}

// skipLine reports lines made only of whitespace and comment lines. A
// comment starts in the first column; an indented '#' is parsed as a role.
func skipLine(line string) bool {
	if strings.TrimFunc(line, unicode.IsSpace) == "" {
		return true
	}
	return line[0] == commentMarker
}

// ParseColor parses "R,G,B" with each channel a decimal integer in 0-255.
func ParseColor(value string) (RGB, error) {
	fields := strings.Split(value, ",")
	if len(fields) != 3 {
		return RGB{}, fmt.Errorf("expected 3 comma-separated channels, got %d", len(fields))
	}

	var channels [3]uint8
	for i, field := range fields {
		n, err := strconv.ParseUint(strings.TrimSpace(field), 10, 8)
		if err != nil {
			return RGB{}, fmt.Errorf("channel %d: %w", i+1, err)
		}
		channels[i] = uint8(n)
	}

	return RGB{R: channels[0], G: channels[1], B: channels[2]}, nil
}

// ParseGlyph accepts a single character, or a hexadecimal code point such
// as 2713 for U+2713.
func ParseGlyph(value string) (rune, error) {
	if utf8.RuneCountInString(value) == 1 {
		r, size := utf8.DecodeRuneInString(value)
		if r == utf8.RuneError && size == 1 {
			return 0, errInvalidUTF8
		}
		return r, nil
	}

	codepoint, err := strconv.ParseUint(value, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("not a character or hex code point: %w", err)
	}
	r := rune(codepoint)
	if !utf8.ValidRune(r) {
		return 0, fmt.Errorf("U+%X is not a valid code point", codepoint)
	}
	return r, nil
}
