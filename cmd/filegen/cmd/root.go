// Package cmd implements filegen, the command line runner for invoice file creation
// and transfer.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/MrJamesThe3rd/billingfiles/internal/app"
	"github.com/MrJamesThe3rd/billingfiles/internal/batch"
	"github.com/MrJamesThe3rd/billingfiles/internal/config"
	"github.com/MrJamesThe3rd/billingfiles/internal/invoicefile"
	"github.com/MrJamesThe3rd/billingfiles/internal/logging"
	"github.com/MrJamesThe3rd/billingfiles/internal/transfer"
)

var (
	cfgFile string
	version = "dev"
	commit  = "unknown"
)

// Services is what the commands run against.
type Services struct {
	CreateFiles func(ctx context.Context, municipalityID string) (*batch.Result, error)
	Transfer    func(ctx context.Context, municipalityID string) (*transfer.Result, error)
	ListFiles   func(ctx context.Context, filter invoicefile.ListFilter) ([]*invoicefile.File, error)
	GetFile     func(ctx context.Context, id uuid.UUID) (*invoicefile.File, error)
	Close       func() error
}

// newServices connects to the database. Tests replace it.
var newServices = func(ctx context.Context, cfg *config.Config) (*Services, error) {
	a, err := app.New(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return &Services{
		CreateFiles: a.Batch.CreateFiles,
		Transfer:    a.Transfer.Transfer,
		ListFiles:   a.Files.List,
		GetFile:     a.Files.Get,
		Close:       a.Close,
	}, nil
}

var rootCmd = &cobra.Command{
	Use:   "filegen",
	Short: "Create and transfer invoice files",
	Long: `filegen runs the invoice file creators for a municipality, transfers the
generated files and lists what has been produced.

Database and creator settings are read from the environment (and .env). Flags can
also be set through a config file or FILEGEN_ prefixed variables.

Examples:
  filegen create --municipality 2281
  filegen transfer -m 2281
  filegen files -m 2281 --status generated,send_failed
  filegen content 7b7f3c1e-3f57-4a4e-9d0b-2f0a8f1e6c11 -m 2281`,
	Version:       versionString(),
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (optional)")
	rootCmd.PersistentFlags().StringP("municipality", "m", "", "municipality id (default from MUNICIPALITY_ID)")
	rootCmd.PersistentFlags().String("log-level", "", "log level (default from LOG_LEVEL)")

	_ = viper.BindPFlag("municipality", rootCmd.PersistentFlags().Lookup("municipality"))
	_ = viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)

		if err := viper.ReadInConfig(); err != nil {
			slog.Error("failed to read config file", "file", cfgFile, "error", err)
		}
	}

	viper.SetEnvPrefix("FILEGEN")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func SetVersionInfo(v, c string) {
	version = v
	commit = c
	rootCmd.Version = versionString()
}

func versionString() string {
	return fmt.Sprintf("%s (commit %s)", version, commit)
}

// setup loads the configuration, installs the logger and resolves the municipality
// the command works on.
func setup(ctx context.Context) (*Services, string, error) {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, "", err
	}

	level := viper.GetString("log-level")
	if level == "" {
		level = cfg.Log.Level
	}

	logger, err := logging.New(level, cfg.Log.Format)
	if err != nil {
		return nil, "", err
	}

	slog.SetDefault(logger)

	municipalityID := strings.TrimSpace(viper.GetString("municipality"))
	if municipalityID == "" {
		municipalityID = cfg.Console.MunicipalityID
	}

	if municipalityID == "" {
		return nil, "", fmt.Errorf("municipality is required")
	}

	svc, err := newServices(ctx, cfg)
	if err != nil {
		return nil, "", err
	}

	return svc, municipalityID, nil
}
