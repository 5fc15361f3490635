// Package notify collects the errors of an invoice file run and turns them into a
// notification for the operators.
package notify

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/billingfiles/internal/logging"
)

// CreationError is a failure collected during a run. EntityID is the billing record it
// concerns, or nil for a common error.
type CreationError struct {
	EntityID *uuid.UUID
	Creator  string
	Message  string
}

// Common reports whether the error is not tied to a billing record.
func (e CreationError) Common() bool { return e.EntityID == nil }

func (e CreationError) String() string {
	if e.Common() {
		return fmt.Sprintf("[%s] %s", e.Creator, e.Message)
	}

	return fmt.Sprintf("[%s] record %s: %s", e.Creator, e.EntityID, e.Message)
}

// Aggregator is safe for concurrent use.
type Aggregator struct {
	mu     sync.Mutex
	errors []CreationError
}

func NewAggregator() *Aggregator {
	return &Aggregator{}
}

func (a *Aggregator) Add(errs ...CreationError) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.errors = append(a.errors, errs...)
}

// Record adds an error for one billing record.
func (a *Aggregator) Record(id uuid.UUID, creator, message string) {
	a.Add(CreationError{EntityID: &id, Creator: creator, Message: message})
}

// Common adds an error not tied to any billing record.
func (a *Aggregator) Common(creator, message string) {
	a.Add(CreationError{Creator: creator, Message: message})
}

func (a *Aggregator) Errors() []CreationError {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := make([]CreationError, len(a.errors))
	copy(out, a.errors)

	return out
}

func (a *Aggregator) Empty() bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	return len(a.errors) == 0
}

// Notification is the message sent after a run with errors.
type Notification struct {
	MunicipalityID string
	Subject        string
	Body           string
	RecordErrors   []CreationError
	CommonErrors   []CreationError
}

// Compose splits the collected errors into record and common errors and renders the
// message body.
func (a *Aggregator) Compose(municipalityID string) Notification {
	n := Notification{
		MunicipalityID: municipalityID,
		Subject:        fmt.Sprintf("Invoice file creation errors for municipality %s", municipalityID),
	}

	for _, e := range a.Errors() {
		if e.Common() {
			n.CommonErrors = append(n.CommonErrors, e)
		} else {
			n.RecordErrors = append(n.RecordErrors, e)
		}
	}

	var sb strings.Builder

	if len(n.CommonErrors) > 0 {
		fmt.Fprintf(&sb, "General errors (%d):\n", len(n.CommonErrors))

		for _, e := range n.CommonErrors {
			fmt.Fprintf(&sb, "* %s\n", e)
		}
	}

	if len(n.RecordErrors) > 0 {
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}

		fmt.Fprintf(&sb, "Billing records not invoiced (%d):\n", len(n.RecordErrors))

		for _, e := range n.RecordErrors {
			fmt.Fprintf(&sb, "* %s\n", e)
		}
	}

	n.Body = sb.String()

	return n
}

//go:generate mockgen -source=notify.go -destination=notifier_mock.go -package=notify
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// LogNotifier writes notifications to the log.
type LogNotifier struct {
	Recipient string
}

func (l LogNotifier) Notify(ctx context.Context, n Notification) error {
	logging.FromContext(ctx).Warn(n.Subject,
		"recipient", l.Recipient,
		"municipality_id", n.MunicipalityID,
		"record_errors", len(n.RecordErrors),
		"common_errors", len(n.CommonErrors),
		"body", n.Body,
	)

	return nil
}
