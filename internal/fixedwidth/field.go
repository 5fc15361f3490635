package fixedwidth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrOverflow is returned when a strict field receives a value wider than its length.
var ErrOverflow = errors.New("value does not fit field")

// Alignment decides on which side of a value the padding goes.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

// Field is one fixed-width column of a record. Value extracts the raw text for the
// column from the record source; Render pads or truncates it to Length runes.
type Field[T any] struct {
	Name   string
	Offset int // informational, assigned by NewRecord
	Length int
	Align  Alignment
	Pad    rune
	// Strict fields fail with ErrOverflow instead of truncating.
	Strict bool
	Value  func(T) (string, error)
}

// Render fits value into the field.
func (f Field[T]) Render(value string) (string, error) {
	runes := []rune(value)

	if len(runes) > f.Length {
		if f.Strict {
			return "", fmt.Errorf("field %s: %q is %d characters, max %d: %w", f.Name, value, len(runes), f.Length, ErrOverflow)
		}

		runes = runes[:f.Length]
	}

	pad := f.Pad
	if pad == 0 {
		pad = ' '
	}

	padding := strings.Repeat(string(pad), f.Length-len(runes))

	if f.Align == AlignRight {
		return padding + string(runes), nil
	}

	return string(runes) + padding, nil
}

// Text is a left aligned, space padded column that truncates long values.
func Text[T any](name string, length int, value func(T) string) Field[T] {
	return Field[T]{
		Name:   name,
		Length: length,
		Align:  AlignLeft,
		Pad:    ' ',
		Value: func(v T) (string, error) {
			return value(v), nil
		},
	}
}

// Required is a left aligned text column whose extraction may fail, typically with a
// missing field error.
func Required[T any](name string, length int, value func(T) (string, error)) Field[T] {
	return Field[T]{
		Name:   name,
		Length: length,
		Align:  AlignLeft,
		Pad:    ' ',
		Value:  value,
	}
}

// Filler is a blank column.
func Filler[T any](name string, length int) Field[T] {
	return Text(name, length, func(T) string { return "" })
}

// Amount renders a monetary value with format. Amount columns never truncate.
func Amount[T any](name string, length int, align Alignment, format Formatter, value func(T) decimal.Decimal) Field[T] {
	return Field[T]{
		Name:   name,
		Length: length,
		Align:  align,
		Pad:    ' ',
		Strict: true,
		Value: func(v T) (string, error) {
			return format(value(v))
		},
	}
}

// RequiredAmount is an Amount whose extraction may fail.
func RequiredAmount[T any](name string, length int, align Alignment, format Formatter, value func(T) (decimal.Decimal, error)) Field[T] {
	return Field[T]{
		Name:   name,
		Length: length,
		Align:  align,
		Pad:    ' ',
		Strict: true,
		Value: func(v T) (string, error) {
			d, err := value(v)
			if err != nil {
				return "", err
			}

			return format(d)
		},
	}
}
