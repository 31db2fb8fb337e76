package audit

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/ustudiopd/EventLive-sub001/internal/platform/metrics"
	"github.com/ustudiopd/EventLive-sub001/pkg/requestcontext"
)

// Store is the persistence surface the recorder needs. Append-only.
type Store interface {
	Append(ctx context.Context, entry Entry) error
}

// Sink receives entries after they are persisted, for fan-out to external
// systems. Delivery is best-effort; a nil Sink disables fan-out.
type Sink interface {
	Publish(ctx context.Context, entry Entry) error
}

// Recorder writes audit entries. Callers invoke Record only after the primary
// mutation has committed; the recorder never returns an error, so an audit
// outage cannot fail or roll back the operation being audited.
type Recorder struct {
	store   Store
	sink    Sink
	metrics *metrics.Metrics
	logger  *slog.Logger
}

func NewRecorder(store Store, sink Sink, m *metrics.Metrics, logger *slog.Logger) *Recorder {
	return &Recorder{store: store, sink: sink, metrics: m, logger: logger}
}

// Record persists the entry and fans it out. Failures are logged and counted,
// never propagated.
func (r *Recorder) Record(ctx context.Context, entry Entry) {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = requestcontext.Now(ctx)
	}
	if entry.Payload == nil {
		entry.Payload = map[string]any{}
	}

	if err := r.store.Append(ctx, entry); err != nil {
		if r.metrics != nil {
			r.metrics.AuditWriteFailed.Inc()
		}
		r.logger.ErrorContext(ctx, "audit write failed",
			slog.String("action", string(entry.Action)),
			slog.String("actor_id", entry.ActorUserID.String()),
			slog.Any("error", err))
		return
	}
	if r.metrics != nil {
		r.metrics.AuditEvents.Inc()
	}

	if r.sink != nil {
		if err := r.sink.Publish(ctx, entry); err != nil {
			r.logger.WarnContext(ctx, "audit fan-out failed",
				slog.String("action", string(entry.Action)),
				slog.Any("error", err))
		}
	}
}
