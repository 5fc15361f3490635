// Package batch drives invoice file creation for a municipality. Every registered
// creator is run in turn; a failing record is reported and skipped, while a failure
// that concerns the file as a whole aborts that creator only.
package batch

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/MrJamesThe3rd/billingfiles/internal/billing"
	"github.com/MrJamesThe3rd/billingfiles/internal/creator"
	"github.com/MrJamesThe3rd/billingfiles/internal/encoding"
	"github.com/MrJamesThe3rd/billingfiles/internal/invoicefile"
	"github.com/MrJamesThe3rd/billingfiles/internal/logging"
	"github.com/MrJamesThe3rd/billingfiles/internal/naming"
	"github.com/MrJamesThe3rd/billingfiles/internal/notify"
)

// Stage is the step of a creator run a structural error occurred in.
type Stage string

const (
	StageConfiguration Stage = "configuration"
	StageSelect        Stage = "select"
	StageNaming        Stage = "naming"
	StageHeader        Stage = "header"
	StageFooter        Stage = "footer"
	StageEncoding      Stage = "encoding"
	StagePersist       Stage = "persist"
)

// StructuralError aborts the run of one creator. No file is written for it.
type StructuralError struct {
	Creator string
	Stage   Stage
	Err     error
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("creator %s: %s: %v", e.Creator, e.Stage, e.Err)
}

func (e *StructuralError) Unwrap() error { return e.Err }

// Result lists what a run produced.
type Result struct {
	Files  []*invoicefile.File
	Errors []notify.CreationError
}

type Service struct {
	records  *billing.Service
	files    *invoicefile.Service
	names    *naming.Resolver
	creators []creator.Creator
	notifier notify.Notifier
}

func NewService(
	records *billing.Service,
	files *invoicefile.Service,
	names *naming.Resolver,
	creators []creator.Creator,
	notifier notify.Notifier,
) *Service {
	return &Service{
		records:  records,
		files:    files,
		names:    names,
		creators: creators,
		notifier: notifier,
	}
}

// CreateFiles runs every creator for municipalityID. The returned error combines the
// structural errors of all creators; record errors are only reported in the result
// and the notification.
func (s *Service) CreateFiles(ctx context.Context, municipalityID string) (*Result, error) {
	log := logging.FromContext(ctx).With("municipality_id", municipalityID)
	agg := notify.NewAggregator()
	result := &Result{}

	var errs error

	for _, c := range s.creators {
		if err := ctx.Err(); err != nil {
			errs = multierr.Append(errs, err)
			break
		}

		f, err := s.run(ctx, municipalityID, c, agg)
		if err != nil {
			log.Error("invoice file creation aborted", "creator", c.Name(), "error", err)
			agg.Common(c.Name(), err.Error())
			errs = multierr.Append(errs, err)

			continue
		}

		if f != nil {
			log.Info("invoice file created", "creator", c.Name(), "file", f.Name, "bytes", len(f.Content))
			result.Files = append(result.Files, f)
		}
	}

	result.Errors = agg.Errors()

	if !agg.Empty() && s.notifier != nil {
		if err := s.notifier.Notify(ctx, agg.Compose(municipalityID)); err != nil {
			log.Error("sending creation error notification", "error", err)
		}
	}

	return result, errs
}

// block is the encoded invoice data of one record.
type block struct {
	record *billing.Record
	data   []byte
}

func recordsOf(blocks []block) []*billing.Record {
	out := make([]*billing.Record, len(blocks))
	for i, b := range blocks {
		out[i] = b.record
	}

	return out
}

// run creates the file of one creator. Nothing is changed until header, records and
// footer have all been encoded; records are then marked invoiced one by one and the
// file is assembled from those that were.
func (s *Service) run(ctx context.Context, municipalityID string, c creator.Creator, agg *notify.Aggregator) (*invoicefile.File, error) {
	name := c.Name()
	log := logging.FromContext(ctx).With("municipality_id", municipalityID, "creator", name)

	structural := func(stage Stage, err error) error {
		return &StructuralError{Creator: name, Stage: stage, Err: err}
	}

	cfg, err := s.files.ConfigurationForCreator(ctx, name)
	if err != nil {
		return nil, structural(StageConfiguration, err)
	}

	bound, err := c.Bind(cfg)
	if err != nil {
		return nil, structural(StageConfiguration, err)
	}

	if _, err := encoding.Lookup(cfg.Encoding); err != nil {
		return nil, structural(StageConfiguration, err)
	}

	records, err := s.records.ListApproved(ctx, municipalityID, bound.ProcessableType(), bound.ProcessableCategory())
	if err != nil {
		return nil, structural(StageSelect, err)
	}

	if len(records) == 0 {
		log.Debug("no approved billing records")
		return nil, nil
	}

	filename, err := s.names.FilenameFor(cfg)
	if err != nil {
		return nil, structural(StageNaming, err)
	}

	taken, err := s.files.NameTaken(ctx, filename)
	if err != nil {
		return nil, structural(StageNaming, err)
	}

	if taken {
		return nil, structural(StageNaming, fmt.Errorf("file %s: %w", filename, invoicefile.ErrDuplicateName))
	}

	header, err := bound.FileHeader()
	if err != nil {
		return nil, structural(StageHeader, err)
	}

	encoded := make([]block, 0, len(records))

	for _, r := range records {
		data, err := s.encodeRecord(ctx, bound, r, cfg.Encoding)
		if err != nil {
			log.Warn("billing record skipped", "record_id", r.ID, "error", err)
			agg.Record(r.ID, name, err.Error())

			continue
		}

		encoded = append(encoded, block{record: r, data: data})
	}

	if len(encoded) == 0 {
		log.Warn("no billing record could be encoded", "records", len(records))
		return nil, nil
	}

	footer, err := bound.FileFooter(recordsOf(encoded))
	if err != nil {
		return nil, structural(StageFooter, err)
	}

	committed := s.commit(ctx, encoded, name, agg)
	if len(committed) == 0 {
		return nil, nil
	}

	if len(committed) != len(encoded) {
		if footer, err = bound.FileFooter(recordsOf(committed)); err != nil {
			return nil, structural(StageFooter, err)
		}
	}

	content := make([]byte, 0, len(header)+len(footer)+len(committed)*256)
	content = append(content, header...)

	for _, b := range committed {
		content = append(content, b.data...)
	}

	content = append(content, footer...)

	out, err := encoding.Encode(string(content), cfg.Encoding)
	if err != nil {
		return nil, structural(StageEncoding, err)
	}

	f, err := s.files.Create(ctx, municipalityID, filename, string(bound.ProcessableType()), cfg.Encoding, out)
	if err != nil {
		return nil, structural(StagePersist, err)
	}

	return f, nil
}

// encodeRecord returns the invoice data of r after checking it is representable in
// charset.
func (s *Service) encodeRecord(ctx context.Context, c creator.Creator, r *billing.Record, charset string) ([]byte, error) {
	data, err := c.InvoiceData(ctx, r)
	if err != nil {
		return nil, err
	}

	if _, err := encoding.Encode(string(data), charset); err != nil {
		return nil, err
	}

	return data, nil
}

// commit marks each record invoiced with its own call and returns the blocks of the
// records that were.
func (s *Service) commit(ctx context.Context, blocks []block, creatorName string, agg *notify.Aggregator) []block {
	log := logging.FromContext(ctx)
	committed := make([]block, 0, len(blocks))

	for _, b := range blocks {
		if err := s.records.MarkInvoiced(ctx, b.record); err != nil {
			log.Error("marking billing record invoiced", "record_id", b.record.ID, "error", err)
			agg.Record(b.record.ID, creatorName, err.Error())

			continue
		}

		committed = append(committed, b)
	}

	return committed
}

// FailedRecords returns the ids of the billing records left APPROVED by the run.
func (r *Result) FailedRecords() []uuid.UUID {
	var ids []uuid.UUID

	for _, e := range r.Errors {
		if e.EntityID != nil {
			ids = append(ids, *e.EntityID)
		}
	}

	return ids
}
