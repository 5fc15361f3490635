package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/billingfiles/internal/billing"
)

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

const selectRecordColumns = `
	id, municipality_id, category, type, status, approved, approved_by,
	recipient, invoice, created, modified
`

// scanRecord reads a billing_records row in selectRecordColumns order.
func scanRecord(s scanner) (*billing.Record, error) {
	var r billing.Record

	var typeStr, statusStr string

	var approvedBy sql.NullString

	var recipient, invoice []byte

	if err := s.Scan(
		&r.ID, &r.MunicipalityID, &r.Category, &typeStr, &statusStr, &r.Approved, &approvedBy,
		&recipient, &invoice, &r.Created, &r.Modified,
	); err != nil {
		return nil, err
	}

	r.Type = billing.Type(typeStr)
	r.Status = billing.Status(statusStr)
	r.ApprovedBy = approvedBy.String

	if len(recipient) > 0 && string(recipient) != "null" {
		r.Recipient = &billing.Recipient{}
		if err := json.Unmarshal(recipient, r.Recipient); err != nil {
			return nil, fmt.Errorf("decoding recipient of %s: %w", r.ID, err)
		}
	}

	if len(invoice) > 0 {
		if err := json.Unmarshal(invoice, &r.Invoice); err != nil {
			return nil, fmt.Errorf("decoding invoice of %s: %w", r.ID, err)
		}
	}

	return &r, nil
}

func (s *Store) ListRecords(ctx context.Context, filter billing.ListFilter) ([]*billing.Record, error) {
	query := `SELECT ` + selectRecordColumns + `
		FROM billing_records
		WHERE municipality_id = $1`

	args := []any{filter.MunicipalityID}
	argIdx := 2

	if filter.Status != nil {
		query += fmt.Sprintf(" AND status = $%d", argIdx)

		args = append(args, *filter.Status)
		argIdx++
	}

	if filter.Type != nil {
		query += fmt.Sprintf(" AND type = $%d", argIdx)

		args = append(args, *filter.Type)
		argIdx++
	}

	if filter.Category != nil {
		query += fmt.Sprintf(" AND category = $%d", argIdx)

		args = append(args, *filter.Category)
		argIdx++
	}

	query += " ORDER BY created ASC, id ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing billing records: %w", err)
	}
	defer rows.Close()

	var records []*billing.Record

	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning billing record: %w", err)
		}

		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating billing records: %w", err)
	}

	return records, nil
}

// UpdateStatus only touches the record while it is still in status from, so a record
// invoiced by a concurrent run is never invoiced twice.
func (s *Store) UpdateStatus(ctx context.Context, id uuid.UUID, from, to billing.Status) error {
	query := `
		UPDATE billing_records
		SET status = $1, modified = NOW()
		WHERE id = $2 AND status = $3
	`

	res, err := s.db.ExecContext(ctx, query, to, id, from)
	if err != nil {
		return fmt.Errorf("updating status: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating status: %w", err)
	}

	if n == 0 {
		return fmt.Errorf("record %s is not %s: %w", id, from, billing.ErrInvalidTransition)
	}

	return nil
}
