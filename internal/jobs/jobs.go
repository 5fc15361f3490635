// Package jobs runs file creation and transfer requests in the background. Callers
// get a correlation id back immediately; every log line of the job carries it.
package jobs

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sourcegraph/conc"
	"github.com/sourcegraph/conc/panics"

	"github.com/MrJamesThe3rd/billingfiles/internal/logging"
)

var (
	ErrQueueFull   = errors.New("job queue is full")
	ErrClosed      = errors.New("dispatcher is closed")
	ErrUnknownKind = errors.New("unknown job kind")
)

type Kind string

const (
	KindCreateFiles   Kind = "create-files"
	KindTransferFiles Kind = "transfer-files"
)

// Handler performs one job for a municipality.
type Handler func(ctx context.Context, municipalityID string) error

type job struct {
	id             uuid.UUID
	kind           Kind
	municipalityID string
}

// Dispatcher executes jobs one at a time, in submission order.
type Dispatcher struct {
	ctx      context.Context
	handlers map[Kind]Handler
	queue    chan job
	wg       conc.WaitGroup

	mu     sync.RWMutex
	closed bool
}

// NewDispatcher starts the worker. ctx is the parent of every job context; its logger
// is inherited by the jobs.
func NewDispatcher(ctx context.Context, queueSize int, handlers map[Kind]Handler) *Dispatcher {
	if queueSize <= 0 {
		queueSize = 1
	}

	d := &Dispatcher{
		ctx:      ctx,
		handlers: handlers,
		queue:    make(chan job, queueSize),
	}

	d.wg.Go(d.work)

	return d
}

// Submit queues a job and returns its correlation id.
func (d *Dispatcher) Submit(kind Kind, municipalityID string) (uuid.UUID, error) {
	if _, ok := d.handlers[kind]; !ok {
		return uuid.Nil, fmt.Errorf("%s: %w", kind, ErrUnknownKind)
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		return uuid.Nil, ErrClosed
	}

	j := job{id: uuid.New(), kind: kind, municipalityID: municipalityID}

	select {
	case d.queue <- j:
	default:
		return uuid.Nil, ErrQueueFull
	}

	logging.FromContext(d.ctx).Info("job queued", "request_id", j.id, "job", kind, "municipality_id", municipalityID)

	return j.id, nil
}

// Close stops accepting jobs and waits for the queued ones to finish.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	d.wg.Wait()
}

func (d *Dispatcher) work() {
	for j := range d.queue {
		d.run(j)
	}
}

func (d *Dispatcher) run(j job) {
	ctx := logging.WithRequestID(d.ctx, j.id.String())
	log := logging.FromContext(ctx).With("job", j.kind, "municipality_id", j.municipalityID)

	start := time.Now()

	log.Info("job started")

	var (
		pc  panics.Catcher
		err error
	)

	pc.Try(func() { err = d.handlers[j.kind](ctx, j.municipalityID) })

	if r := pc.Recovered(); r != nil {
		err = r.AsError()
	}

	if err != nil {
		log.Error("job finished with errors", "duration", time.Since(start), "error", err)
		return
	}

	log.Info("job finished", "duration", time.Since(start))
}
