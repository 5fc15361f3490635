package fixedwidth

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultTerminator ends every line unless configured otherwise.
const DefaultTerminator = "\n"

// UnescapeTerminator turns the escaped form used in configuration ("\n", "\r\n") into
// the literal terminator. An empty value yields DefaultTerminator.
func UnescapeTerminator(escaped string) (string, error) {
	if escaped == "" {
		return DefaultTerminator, nil
	}

	if !strings.Contains(escaped, `\`) {
		return escaped, nil
	}

	s, err := strconv.Unquote(`"` + strings.ReplaceAll(escaped, `"`, `\"`) + `"`)
	if err != nil {
		return "", fmt.Errorf("unescaping record terminator %q: %w", escaped, err)
	}

	if s == "" {
		return DefaultTerminator, nil
	}

	return s, nil
}

// Buffer accumulates terminated lines.
type Buffer struct {
	sb         strings.Builder
	terminator string
	lines      int
}

func NewBuffer(terminator string) *Buffer {
	if terminator == "" {
		terminator = DefaultTerminator
	}

	return &Buffer{terminator: terminator}
}

// Append encodes v with r and adds the line. Nothing is written when encoding fails.
func Append[T any](b *Buffer, r Record[T], v T) error {
	line, err := r.Encode(v)
	if err != nil {
		return err
	}

	b.WriteLine(line)

	return nil
}

func (b *Buffer) WriteLine(line string) {
	b.sb.WriteString(line)
	b.sb.WriteString(b.terminator)
	b.lines++
}

func (b *Buffer) Lines() int { return b.lines }

func (b *Buffer) String() string { return b.sb.String() }

func (b *Buffer) Bytes() []byte { return []byte(b.sb.String()) }
