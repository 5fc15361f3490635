package creator

import (
	_ "embed"
	"fmt"
	"os"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/MrJamesThe3rd/billingfiles/internal/billing"
	"github.com/MrJamesThe3rd/billingfiles/internal/fixedwidth"
)

//go:embed creators.yaml
var definitions []byte

// AmountSource selects what a footer sums.
type AmountSource string

const (
	// AmountRows sums the row totals of every record.
	AmountRows AmountSource = "rows"
	// AmountAccounts sums the account information amounts of every record.
	AmountAccounts AmountSource = "accounts"
)

// Strategy is the per category behavior of a creator.
type Strategy struct {
	Name             string       `yaml:"name"`
	Channel          billing.Type `yaml:"channel"`
	Footer           bool         `yaml:"footer"`
	FooterAmount     AmountSource `yaml:"footerAmount"`
	GeneratingSystem string       `yaml:"generatingSystem"`
	FileTag          string       `yaml:"fileTag"`
	// AmountPattern overrides the decimal pattern of internal amounts.
	AmountPattern string `yaml:"amountPattern"`
}

type definitionsFile struct {
	Creators []Strategy `yaml:"creators"`
}

// LoadStrategies reads creator definitions from path, or the built-in definitions when
// path is empty.
func LoadStrategies(path string) ([]Strategy, error) {
	data := definitions

	if path != "" {
		var err error

		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading creator definitions: %w", err)
		}
	}

	return ParseStrategies(data)
}

// ParseStrategies decodes and validates creator definitions.
func ParseStrategies(data []byte) ([]Strategy, error) {
	var file definitionsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decoding creator definitions: %w", err)
	}

	if len(file.Creators) == 0 {
		return nil, fmt.Errorf("no creators defined")
	}

	var errs error

	seen := make(map[string]bool, len(file.Creators))

	for i := range file.Creators {
		s := &file.Creators[i]

		if s.Footer && s.FooterAmount == "" {
			s.FooterAmount = AmountRows
		}

		if err := s.validate(); err != nil {
			errs = multierr.Append(errs, err)
			continue
		}

		if seen[s.Name] {
			errs = multierr.Append(errs, fmt.Errorf("creator %s defined twice", s.Name))
		}

		seen[s.Name] = true
	}

	if errs != nil {
		return nil, errs
	}

	return file.Creators, nil
}

func (s Strategy) validate() error {
	if s.Name == "" {
		return fmt.Errorf("creator without name")
	}

	switch s.Channel {
	case billing.TypeExternal, billing.TypeInternal:
	default:
		return fmt.Errorf("creator %s: unknown channel %q", s.Name, s.Channel)
	}

	switch s.FooterAmount {
	case "", AmountRows, AmountAccounts:
	default:
		return fmt.Errorf("creator %s: unknown footer amount source %q", s.Name, s.FooterAmount)
	}

	if s.AmountPattern != "" {
		if _, err := fixedwidth.InternalAmount(s.AmountPattern); err != nil {
			return fmt.Errorf("creator %s: %w", s.Name, err)
		}
	}

	return nil
}
