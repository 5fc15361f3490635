package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/MrJamesThe3rd/billingfiles/internal/invoicefile"
)

const uniqueViolation = "23505"

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectFileColumns = `
	id, municipality_id, name, content, encoding, type, status, created, sent
`

func scanFile(s scanner) (*invoicefile.File, error) {
	var f invoicefile.File

	var statusStr string

	if err := s.Scan(
		&f.ID, &f.MunicipalityID, &f.Name, &f.Content, &f.Encoding, &f.Type, &statusStr,
		&f.Created, &f.Sent,
	); err != nil {
		return nil, err
	}

	f.Status = invoicefile.Status(statusStr)

	return &f, nil
}

func (s *Store) CreateFile(ctx context.Context, f *invoicefile.File) error {
	query := `
		INSERT INTO invoice_files (municipality_id, name, content, encoding, type, status, created)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id, created
	`

	err := s.db.QueryRowContext(ctx, query,
		f.MunicipalityID,
		f.Name,
		f.Content,
		f.Encoding,
		f.Type,
		f.Status,
	).Scan(&f.ID, &f.Created)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("creating invoice file %s: %w", f.Name, invoicefile.ErrDuplicateName)
		}

		return fmt.Errorf("creating invoice file: %w", err)
	}

	return nil
}

func (s *Store) GetFile(ctx context.Context, id uuid.UUID) (*invoicefile.File, error) {
	query := `SELECT ` + selectFileColumns + ` FROM invoice_files WHERE id = $1`

	f, err := scanFile(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, invoicefile.ErrNotFound
		}

		return nil, fmt.Errorf("getting invoice file: %w", err)
	}

	return f, nil
}

func (s *Store) ExistsByName(ctx context.Context, name string) (bool, error) {
	var exists bool

	err := s.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM invoice_files WHERE name = $1)`, name).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking invoice file name: %w", err)
	}

	return exists, nil
}

func (s *Store) ListFiles(ctx context.Context, filter invoicefile.ListFilter) ([]*invoicefile.File, error) {
	query := `SELECT ` + selectFileColumns + `
		FROM invoice_files
		WHERE municipality_id = $1`

	args := []any{filter.MunicipalityID}

	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, st := range filter.Statuses {
			placeholders[i] = fmt.Sprintf("$%d", len(args)+1)
			args = append(args, st)
		}

		query += " AND status IN (" + strings.Join(placeholders, ", ") + ")"
	}

	query += " ORDER BY created ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing invoice files: %w", err)
	}
	defer rows.Close()

	var files []*invoicefile.File

	for rows.Next() {
		f, err := scanFile(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning invoice file: %w", err)
		}

		files = append(files, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating invoice files: %w", err)
	}

	return files, nil
}

// UpdateStatus never leaves SEND_SUCCESSFUL, even if the caller's copy of the file is
// stale.
func (s *Store) UpdateStatus(ctx context.Context, id uuid.UUID, status invoicefile.Status, sent *time.Time) error {
	query := `
		UPDATE invoice_files
		SET status = $1, sent = $2
		WHERE id = $3 AND status <> $4
	`

	res, err := s.db.ExecContext(ctx, query, status, sent, id, invoicefile.StatusSendSuccessful)
	if err != nil {
		return fmt.Errorf("updating invoice file status: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating invoice file status: %w", err)
	}

	if n == 0 {
		return fmt.Errorf("invoice file %s: %w", id, invoicefile.ErrInvalidTransition)
	}

	return nil
}

const selectConfigurationColumns = `type, category_tag, creator_name, filename_pattern, encoding`

func scanConfiguration(s scanner) (*invoicefile.Configuration, error) {
	var c invoicefile.Configuration

	if err := s.Scan(&c.Type, &c.CategoryTag, &c.CreatorName, &c.FilenamePattern, &c.Encoding); err != nil {
		return nil, err
	}

	return &c, nil
}

// ConfigurationStore reads the operator managed invoice_file_configurations table.
type ConfigurationStore struct {
	db *sql.DB
}

func NewConfigurationStore(db *sql.DB) *ConfigurationStore {
	return &ConfigurationStore{db: db}
}

func (s *ConfigurationStore) FindByTypeAndCategory(ctx context.Context, typ, categoryTag string) (*invoicefile.Configuration, error) {
	query := `SELECT ` + selectConfigurationColumns + `
		FROM invoice_file_configurations
		WHERE type = $1 AND category_tag = $2`

	return s.findOne(ctx, query, typ, categoryTag)
}

func (s *ConfigurationStore) FindByCreatorName(ctx context.Context, creatorName string) (*invoicefile.Configuration, error) {
	query := `SELECT ` + selectConfigurationColumns + `
		FROM invoice_file_configurations
		WHERE creator_name = $1`

	return s.findOne(ctx, query, creatorName)
}

func (s *ConfigurationStore) findOne(ctx context.Context, query string, args ...any) (*invoicefile.Configuration, error) {
	c, err := scanConfiguration(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, invoicefile.ErrNotFound
		}

		return nil, fmt.Errorf("finding invoice file configuration: %w", err)
	}

	return c, nil
}

func (s *ConfigurationStore) ListConfigurations(ctx context.Context) ([]*invoicefile.Configuration, error) {
	query := `SELECT ` + selectConfigurationColumns + `
		FROM invoice_file_configurations
		ORDER BY type, category_tag`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing invoice file configurations: %w", err)
	}
	defer rows.Close()

	var configs []*invoicefile.Configuration

	for rows.Next() {
		c, err := scanConfiguration(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning invoice file configuration: %w", err)
		}

		configs = append(configs, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating invoice file configurations: %w", err)
	}

	return configs, nil
}
