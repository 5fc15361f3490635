// Package app wires the services shared by the api, filegen and tui binaries.
package app

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MrJamesThe3rd/billingfiles/internal/batch"
	"github.com/MrJamesThe3rd/billingfiles/internal/billing"
	billingStore "github.com/MrJamesThe3rd/billingfiles/internal/billing/store"
	"github.com/MrJamesThe3rd/billingfiles/internal/config"
	"github.com/MrJamesThe3rd/billingfiles/internal/creator"
	"github.com/MrJamesThe3rd/billingfiles/internal/database"
	"github.com/MrJamesThe3rd/billingfiles/internal/invoicefile"
	fileStore "github.com/MrJamesThe3rd/billingfiles/internal/invoicefile/store"
	"github.com/MrJamesThe3rd/billingfiles/internal/jobs"
	"github.com/MrJamesThe3rd/billingfiles/internal/naming"
	"github.com/MrJamesThe3rd/billingfiles/internal/notify"
	"github.com/MrJamesThe3rd/billingfiles/internal/party"
	"github.com/MrJamesThe3rd/billingfiles/internal/transfer"
)

type App struct {
	DB       *sql.DB
	Records  *billing.Service
	Files    *invoicefile.Service
	Batch    *batch.Service
	Transfer *transfer.Service
}

// New connects to the database, applies the schema and builds the services.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		return nil, err
	}

	if err := database.Migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	a, err := Build(db, cfg)
	if err != nil {
		db.Close()
		return nil, err
	}

	return a, nil
}

// Build creates the services on top of an open database.
func Build(db *sql.DB, cfg *config.Config) (*App, error) {
	terminator, err := cfg.Terminator()
	if err != nil {
		return nil, err
	}

	strategies, err := creator.LoadStrategies(cfg.Files.CreatorsFile)
	if err != nil {
		return nil, err
	}

	opts := creator.Options{
		Terminator: terminator,
		Clock:      naming.SystemClock{},
	}

	if cfg.Party.URL != "" {
		opts.LegalIDs = party.NewResolver(cfg.Party.URL, cfg.Party.Token, cfg.Party.Timeout)
	}

	creators, err := creator.NewAll(strategies, opts)
	if err != nil {
		return nil, fmt.Errorf("building creators: %w", err)
	}

	var (
		records = billing.NewService(billingStore.New(db))
		files   = invoicefile.NewService(fileStore.New(db), fileStore.NewConfigurationStore(db))
		names   = naming.NewResolver(files, naming.SystemClock{})
	)

	return &App{
		DB:       db,
		Records:  records,
		Files:    files,
		Batch:    batch.NewService(records, files, names, creators, notify.LogNotifier{Recipient: cfg.Notify.Recipient}),
		Transfer: transfer.NewService(files, transfer.DirectorySender{Dir: cfg.Files.OutboxDir}, naming.SystemClock{}),
	}, nil
}

// Handlers maps job kinds to the services running them.
func (a *App) Handlers() map[jobs.Kind]jobs.Handler {
	return map[jobs.Kind]jobs.Handler{
		jobs.KindCreateFiles: func(ctx context.Context, municipalityID string) error {
			_, err := a.Batch.CreateFiles(ctx, municipalityID)
			return err
		},
		jobs.KindTransferFiles: func(ctx context.Context, municipalityID string) error {
			_, err := a.Transfer.Transfer(ctx, municipalityID)
			return err
		},
	}
}

func (a *App) Close() error {
	return a.DB.Close()
}
