// Package transfer delivers generated invoice files and records the outcome of every
// attempt on the file.
package transfer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/multierr"

	"github.com/MrJamesThe3rd/billingfiles/internal/invoicefile"
	"github.com/MrJamesThe3rd/billingfiles/internal/logging"
	"github.com/MrJamesThe3rd/billingfiles/internal/naming"
)

//go:generate mockgen -source=transfer.go -destination=sender_mock.go -package=transfer
type Sender interface {
	Send(ctx context.Context, f *invoicefile.File) error
}

// Result lists the names of the files of a run by outcome.
type Result struct {
	Sent   []string
	Failed []string
}

type Service struct {
	files  *invoicefile.Service
	sender Sender
	clock  naming.Clock
}

func NewService(files *invoicefile.Service, sender Sender, clock naming.Clock) *Service {
	if clock == nil {
		clock = naming.SystemClock{}
	}

	return &Service{files: files, sender: sender, clock: clock}
}

// Transfer sends every GENERATED or SEND_FAILED file of municipalityID. A failed send
// marks the file SEND_FAILED and is retried by the next run; the returned error only
// reports files whose outcome could not be recorded.
func (s *Service) Transfer(ctx context.Context, municipalityID string) (*Result, error) {
	log := logging.FromContext(ctx).With("municipality_id", municipalityID)

	files, err := s.files.ListTransferable(ctx, municipalityID)
	if err != nil {
		return nil, fmt.Errorf("listing transferable files: %w", err)
	}

	result := &Result{}

	var errs error

	for _, f := range files {
		status := invoicefile.StatusSendSuccessful

		if err := s.sender.Send(ctx, f); err != nil {
			log.Error("sending invoice file", "file", f.Name, "error", err)

			status = invoicefile.StatusSendFailed
		}

		if err := s.files.MarkSent(ctx, f, status, s.clock.Now()); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("recording transfer of %s: %w", f.Name, err))
			continue
		}

		if status == invoicefile.StatusSendSuccessful {
			log.Info("invoice file sent", "file", f.Name)
			result.Sent = append(result.Sent, f.Name)
		} else {
			result.Failed = append(result.Failed, f.Name)
		}
	}

	return result, errs
}

// DirectorySender drops files into <Dir>/<municipality id>/<file name>.
type DirectorySender struct {
	Dir string
}

func (d DirectorySender) Send(_ context.Context, f *invoicefile.File) error {
	if f.Name == "" || f.Name != filepath.Base(f.Name) || strings.HasPrefix(f.Name, ".") {
		return fmt.Errorf("invalid file name %q", f.Name)
	}

	dir := filepath.Join(d.Dir, filepath.Base(f.MunicipalityID))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating outbox directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+f.Name+".*")
	if err != nil {
		return fmt.Errorf("creating temporary file: %w", err)
	}

	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(f.Content); err != nil {
		tmp.Close()
		return fmt.Errorf("writing file: %w", err)
	}

	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("syncing file: %w", err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing file: %w", err)
	}

	if err := os.Rename(tmpName, filepath.Join(dir, f.Name)); err != nil {
		return fmt.Errorf("moving file into outbox: %w", err)
	}

	return nil
}
