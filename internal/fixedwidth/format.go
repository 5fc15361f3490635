package fixedwidth

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultInternalPattern is the decimal pattern used by the internal ledger.
const DefaultInternalPattern = "#.00;-#.00"

var hundred = decimal.NewFromInt(100)

// Formatter renders a monetary amount as text.
type Formatter func(decimal.Decimal) (string, error)

// ExternalAmount returns a formatter producing a signed, zero padded amount in minor
// units: the value is rounded half up to two decimals, shifted two places and written
// as the sign followed by width-1 digits.
//
//	ExternalAmount(15)(1.235) == "+00000000000124"
func ExternalAmount(width int) Formatter {
	digits := width - 1

	return func(d decimal.Decimal) (string, error) {
		minor := d.Round(2).Mul(hundred).IntPart()

		// Zero is always "+", including negatives that round to it.
		sign := "+"
		if minor < 0 {
			sign = "-"
			minor = -minor
		}

		s := fmt.Sprintf("%0*d", digits, minor)
		if len(s) > digits {
			return "", fmt.Errorf("amount %s needs more than %d digits: %w", d.String(), digits, ErrOverflow)
		}

		return sign + s, nil
	}
}

// numberPattern is one side of a decimal pattern such as "#,##0.00".
type numberPattern struct {
	prefix   string
	suffix   string
	minInt   int
	grouping int
	minFrac  int
	maxFrac  int
}

// InternalAmount returns a locale independent formatter for a decimal pattern. The
// pattern syntax is a subset of the classic decimal pattern: '#' and '0' digits, ','
// grouping, '.' as the decimal separator and an optional ";negative" subpattern.
// An empty pattern means DefaultInternalPattern.
func InternalAmount(pattern string) (Formatter, error) {
	if pattern == "" {
		pattern = DefaultInternalPattern
	}

	positivePart, negativePart, hasNegative := strings.Cut(pattern, ";")

	positive, err := parseNumberPattern(positivePart)
	if err != nil {
		return nil, fmt.Errorf("parsing pattern %q: %w", pattern, err)
	}

	negative := positive
	negative.prefix = "-" + positive.prefix

	if hasNegative {
		n, err := parseNumberPattern(negativePart)
		if err != nil {
			return nil, fmt.Errorf("parsing pattern %q: %w", pattern, err)
		}

		// Only the affixes of the negative subpattern are significant.
		negative.prefix = n.prefix
		negative.suffix = n.suffix
	}

	return func(d decimal.Decimal) (string, error) {
		// A negative value that rounds to zero is written as an unsigned zero.
		rounded := d.RoundBank(int32(positive.maxFrac))

		p := positive
		if rounded.IsNegative() {
			p = negative
		}

		return p.prefix + p.digits(rounded.Abs()) + p.suffix, nil
	}, nil
}

func parseNumberPattern(s string) (numberPattern, error) {
	var p numberPattern

	start := strings.IndexAny(s, "#0,.")
	if start < 0 {
		return p, fmt.Errorf("no digits in %q", s)
	}

	end := start
	for end < len(s) && strings.ContainsRune("#0,.", rune(s[end])) {
		end++
	}

	p.prefix = s[:start]
	p.suffix = s[end:]

	intPart, fracPart, _ := strings.Cut(s[start:end], ".")

	if i := strings.LastIndex(intPart, ","); i >= 0 {
		p.grouping = len(intPart) - i - 1
		if p.grouping == 0 {
			return p, fmt.Errorf("grouping separator at end of %q", s)
		}
	}

	p.minInt = strings.Count(intPart, "0")

	for _, r := range fracPart {
		switch r {
		case '0':
			if p.maxFrac > p.minFrac {
				return p, fmt.Errorf("'0' after '#' in fraction of %q", s)
			}

			p.minFrac++
			p.maxFrac++
		case '#':
			p.maxFrac++
		default:
			return p, fmt.Errorf("unexpected %q in fraction of %q", r, s)
		}
	}

	return p, nil
}

// digits renders a non negative value already rounded to maxFrac places.
func (p numberPattern) digits(d decimal.Decimal) string {
	intDigits, fracDigits, _ := strings.Cut(d.StringFixed(int32(p.maxFrac)), ".")

	for len(fracDigits) > p.minFrac && strings.HasSuffix(fracDigits, "0") {
		fracDigits = fracDigits[:len(fracDigits)-1]
	}

	intDigits = strings.TrimLeft(intDigits, "0")
	if len(intDigits) < p.minInt {
		intDigits = strings.Repeat("0", p.minInt-len(intDigits)) + intDigits
	}

	if p.grouping > 0 {
		intDigits = group(intDigits, p.grouping)
	}

	if fracDigits == "" {
		if intDigits == "" {
			return "0"
		}

		return intDigits
	}

	return intDigits + "." + fracDigits
}

func group(digits string, size int) string {
	if len(digits) <= size {
		return digits
	}

	var sb strings.Builder

	head := len(digits) % size
	if head > 0 {
		sb.WriteString(digits[:head])
	}

	for i := head; i < len(digits); i += size {
		if sb.Len() > 0 {
			sb.WriteByte(',')
		}

		sb.WriteString(digits[i : i+size])
	}

	return sb.String()
}
