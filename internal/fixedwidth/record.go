package fixedwidth

import (
	"fmt"
	"strings"
)

// Record is the schema of one physical line: a literal record-type marker followed by
// an ordered list of fields.
type Record[T any] struct {
	Name   string
	Marker string
	Fields []Field[T]
}

// NewRecord builds a record schema and assigns each field its offset in the line.
func NewRecord[T any](name, marker string, fields ...Field[T]) Record[T] {
	offset := len([]rune(marker))

	for i := range fields {
		fields[i].Offset = offset
		offset += fields[i].Length
	}

	return Record[T]{
		Name:   name,
		Marker: marker,
		Fields: fields,
	}
}

// Width is the number of characters in an encoded line, terminator excluded.
func (r Record[T]) Width() int {
	w := len([]rune(r.Marker))
	for _, f := range r.Fields {
		w += f.Length
	}

	return w
}

// Encode renders v as one line without terminator.
func (r Record[T]) Encode(v T) (string, error) {
	var sb strings.Builder

	sb.Grow(r.Width())
	sb.WriteString(r.Marker)

	for _, f := range r.Fields {
		raw, err := f.Value(v)
		if err != nil {
			return "", err
		}

		cell, err := f.Render(raw)
		if err != nil {
			return "", fmt.Errorf("record %s: %w", r.Name, err)
		}

		sb.WriteString(cell)
	}

	return sb.String(), nil
}
