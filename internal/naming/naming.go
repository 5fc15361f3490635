// Package naming resolves the output filename of an invoice file from its
// configuration. Patterns hold bracketed date/time tokens written with the familiar
// letter notation ({yyyyMMdd}, {yyyyMMddHHmmss}) which are rendered from an injected
// clock.
package naming

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/billingfiles/internal/invoicefile"
)

// Clock is the source of the current moment.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock always returns the same instant.
type FixedClock time.Time

func (c FixedClock) Now() time.Time { return time.Time(c) }

// Configurations is the configuration lookup the resolver depends on.
type Configurations interface {
	ConfigurationFor(ctx context.Context, typ, categoryTag string) (*invoicefile.Configuration, error)
	ConfigurationForCreator(ctx context.Context, creatorName string) (*invoicefile.Configuration, error)
}

type Resolver struct {
	configs Configurations
	clock   Clock
}

func NewResolver(configs Configurations, clock Clock) *Resolver {
	if clock == nil {
		clock = SystemClock{}
	}

	return &Resolver{configs: configs, clock: clock}
}

// Filename resolves the filename for a type and category.
func (r *Resolver) Filename(ctx context.Context, typ, categoryTag string) (string, error) {
	cfg, err := r.configs.ConfigurationFor(ctx, typ, categoryTag)
	if err != nil {
		return "", err
	}

	return Expand(cfg.FilenamePattern, r.clock.Now())
}

// FilenameForCreator resolves the filename for the configuration bound to a creator.
func (r *Resolver) FilenameForCreator(ctx context.Context, creatorName string) (string, error) {
	cfg, err := r.configs.ConfigurationForCreator(ctx, creatorName)
	if err != nil {
		return "", err
	}

	return r.FilenameFor(cfg)
}

// FilenameFor expands the pattern of an already loaded configuration.
func (r *Resolver) FilenameFor(cfg *invoicefile.Configuration) (string, error) {
	if cfg == nil {
		return "", invoicefile.ErrConfigurationMissing
	}

	return Expand(cfg.FilenamePattern, r.clock.Now())
}

// Expand replaces every {pattern} token with now rendered using that pattern. Text
// outside tokens is copied verbatim.
func Expand(pattern string, now time.Time) (string, error) {
	var sb strings.Builder

	rest := pattern
	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			sb.WriteString(rest)
			break
		}

		end := strings.IndexByte(rest[open:], '}')
		if end < 0 {
			return "", fmt.Errorf("unterminated token in filename pattern %q", pattern)
		}

		sb.WriteString(rest[:open])

		formatted, err := FormatDate(rest[open+1:open+end], now)
		if err != nil {
			return "", fmt.Errorf("filename pattern %q: %w", pattern, err)
		}

		sb.WriteString(formatted)
		rest = rest[open+end+1:]
	}

	return sb.String(), nil
}

// letters maps runs of pattern letters to Go layout elements. Longer runs first.
var letters = []struct {
	token  string
	layout string
}{
	{"yyyy", "2006"},
	{"yy", "06"},
	{"MMMM", "January"},
	{"MMM", "Jan"},
	{"MM", "01"},
	{"M", "1"},
	{"dd", "02"},
	{"d", "2"},
	{"HH", "15"},
	{"hh", "03"},
	{"h", "3"},
	{"mm", "04"},
	{"m", "4"},
	{"ss", "05"},
	{"s", "5"},
	{"SSS", ""}, // milliseconds, see formatLetters
	{"a", "PM"},
}

// FormatDate renders t with a date pattern such as "yyyyMMdd_HHmmss". Anything that
// is not a pattern letter is copied literally; text between single quotes is always
// literal.
func FormatDate(pattern string, t time.Time) (string, error) {
	if pattern == "" {
		return "", fmt.Errorf("empty date token")
	}

	var sb strings.Builder

	for i := 0; i < len(pattern); {
		if pattern[i] == '\'' {
			end := strings.IndexByte(pattern[i+1:], '\'')
			if end < 0 {
				return "", fmt.Errorf("unterminated quote in %q", pattern)
			}

			sb.WriteString(pattern[i+1 : i+1+end])
			i += end + 2

			continue
		}

		matched := false

		for _, l := range letters {
			if strings.HasPrefix(pattern[i:], l.token) {
				sb.WriteString(formatLetters(l.token, l.layout, t))
				i += len(l.token)
				matched = true

				break
			}
		}

		if matched {
			continue
		}

		c := pattern[i]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
			return "", fmt.Errorf("unsupported date letter %q in %q", c, pattern)
		}

		sb.WriteByte(c)
		i++
	}

	return sb.String(), nil
}

// formatLetters renders one letter run. Go only knows fractional seconds after a
// separator, so milliseconds are written directly.
func formatLetters(token, layout string, t time.Time) string {
	if token == "SSS" {
		return fmt.Sprintf("%03d", t.Nanosecond()/int(time.Millisecond))
	}

	return t.Format(layout)
}
