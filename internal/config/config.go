package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/MrJamesThe3rd/billingfiles/internal/fixedwidth"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"billingfiles"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"billingfiles"`
	}

	Server struct {
		Timeout     time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
		JWTSecret   string        `envconfig:"JWT_SECRET"`
		CORSOrigins []string      `envconfig:"CORS_ORIGINS"`
	}

	Log struct {
		Level  string `envconfig:"LOG_LEVEL" default:"info"`
		Format string `envconfig:"LOG_FORMAT" default:"text"`
	}

	Files struct {
		// RecordTerminator is kept in escaped form, e.g. \n or \r\n.
		RecordTerminator string `envconfig:"RECORD_TERMINATOR" default:"\\n"`
		CreatorsFile     string `envconfig:"CREATORS_FILE"`
		OutboxDir        string `envconfig:"OUTBOX_DIR" default:"outbox"`
	}

	Party struct {
		URL     string        `envconfig:"PARTY_URL"`
		Token   string        `envconfig:"PARTY_TOKEN"`
		Timeout time.Duration `envconfig:"PARTY_TIMEOUT" default:"30s"`
	}

	Jobs struct {
		QueueSize int `envconfig:"JOB_QUEUE_SIZE" default:"16"`
	}

	Notify struct {
		Recipient string `envconfig:"NOTIFY_RECIPIENT"`
	}

	// Console holds the defaults of the operator TUI and CLI.
	Console struct {
		MunicipalityID string `envconfig:"MUNICIPALITY_ID" default:"2281"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

// Terminator returns the unescaped record terminator.
func (c *Config) Terminator() (string, error) {
	return fixedwidth.UnescapeTerminator(c.Files.RecordTerminator)
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if _, err := cfg.Terminator(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
