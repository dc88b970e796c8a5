package history

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"judgement/internal/engine"
)

// Record is one committed action and the game snapshot it produced. The
// snapshot is a deep copy owned by the outbox.
type Record struct {
	GameID   string
	Action   string
	At       time.Time
	Snapshot *engine.Game
}

// Sink persists committed records. Failures are the sink's problem to
// report; they never roll back the in-memory commit.
type Sink interface {
	Record(ctx context.Context, rec Record) error
}

// Noop discards records; used when no backend is configured.
type Noop struct{}

func (Noop) Record(context.Context, Record) error { return nil }

// Outbox decouples persistence from the mutation path: records are
// enqueued synchronously with each commit and drained by a single worker
// goroutine that retries transient sink failures.
type Outbox struct {
	sink    Sink
	log     *logrus.Logger
	ch      chan Record
	wg      sync.WaitGroup
	retries int
	backoff time.Duration
}

func NewOutbox(sink Sink, log *logrus.Logger) *Outbox {
	return &Outbox{
		sink:    sink,
		log:     log,
		ch:      make(chan Record, 256),
		retries: 3,
		backoff: time.Second,
	}
}

// Enqueue hands a record to the worker. It never blocks the caller: when
// the buffer is full the record is dropped with an error log, since the
// game commit it describes has already happened and must be returned to
// the player regardless.
func (o *Outbox) Enqueue(rec Record) {
	select {
	case o.ch <- rec:
	default:
		o.log.WithFields(logrus.Fields{"game": rec.GameID, "action": rec.Action}).
			Error("history outbox full, dropping record")
	}
}

// Start launches the drain worker. Close stops it after the queue empties.
func (o *Outbox) Start(ctx context.Context) {
	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		for rec := range o.ch {
			o.deliver(ctx, rec)
		}
	}()
}

func (o *Outbox) Close() {
	close(o.ch)
	o.wg.Wait()
}

func (o *Outbox) deliver(ctx context.Context, rec Record) {
	var err error
	for attempt := 0; attempt <= o.retries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return
			case <-time.After(o.backoff * time.Duration(attempt)):
			}
		}
		if err = o.sink.Record(ctx, rec); err == nil {
			return
		}
	}
	o.log.WithFields(logrus.Fields{"game": rec.GameID, "action": rec.Action}).
		WithError(err).Error("history record permanently failed")
}
