package audit

import (
	"context"
	"log/slog"
	"time"
)

const publishTimeout = 5 * time.Second

// Worker decouples audit fan-out from the request path. Publish enqueues and
// returns immediately; Run drains the inbox into the wrapped sink. When the
// inbox is full the entry is dropped with a warning - fan-out is best-effort
// and must never apply backpressure to mutations.
type Worker struct {
	sink   Sink
	inbox  chan Entry
	logger *slog.Logger
}

func NewWorker(sink Sink, buffer int, logger *slog.Logger) *Worker {
	return &Worker{
		sink:   sink,
		inbox:  make(chan Entry, buffer),
		logger: logger,
	}
}

// Publish enqueues the entry for asynchronous delivery.
func (w *Worker) Publish(_ context.Context, entry Entry) error {
	select {
	case w.inbox <- entry:
	default:
		w.logger.Warn("audit fan-out inbox full, dropping entry",
			slog.String("action", string(entry.Action)))
	}
	return nil
}

// Run consumes the inbox until ctx is cancelled. Delivery uses its own
// timeout so a slow broker cannot wedge the worker.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case entry := <-w.inbox:
			publishCtx, cancel := context.WithTimeout(context.Background(), publishTimeout)
			if err := w.sink.Publish(publishCtx, entry); err != nil {
				w.logger.Warn("audit fan-out delivery failed",
					slog.String("action", string(entry.Action)),
					slog.Any("error", err))
			}
			cancel()
		}
	}
}
