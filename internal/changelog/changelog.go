package changelog

import (
	"context"
	"fmt"
	"time"

	"github.com/yairfalse/tagsync/internal/logger"
	"github.com/yairfalse/tagsync/internal/storage"
	"github.com/yairfalse/tagsync/pkg/types"
)

// Sink accepts change records
type Sink interface {
	Record(ctx context.Context, record types.ChangeRecord) error
}

// Recorder appends change records to the Changelog sheet. Timestamp and
// actor are filled in when the caller leaves them empty.
type Recorder struct {
	wb    storage.Workbook
	actor string
	log   logger.Logger
	now   func() time.Time
}

// Option configures a Recorder
type Option func(*Recorder)

// WithClock overrides the timestamp source
func WithClock(now func() time.Time) Option {
	return func(r *Recorder) {
		r.now = now
	}
}

// WithLogger logs every recorded change at debug level
func WithLogger(log logger.Logger) Option {
	return func(r *Recorder) {
		r.log = log
	}
}

// NewRecorder creates a recorder writing to wb on behalf of actor
func NewRecorder(wb storage.Workbook, actor string, opts ...Option) *Recorder {
	r := &Recorder{
		wb:    wb,
		actor: actor,
		log:   logger.NewNop(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Record implements Sink
func (r *Recorder) Record(ctx context.Context, record types.ChangeRecord) error {
	if record.Timestamp.IsZero() {
		record.Timestamp = r.now()
	}
	if record.Actor == "" {
		record.Actor = r.actor
	}

	if err := r.wb.Append(ctx, storage.SheetChangelog, record.Row()); err != nil {
		return fmt.Errorf("failed to append changelog entry for %q: %w", record.EntityName, err)
	}

	r.log.WithFields(map[string]interface{}{
		"entity":    record.EntityName,
		"entity_id": record.EntityID,
		"type":      record.EntityType,
	}).Debug(record.Action)
	return nil
}

// Memory collects records in order, for dry runs and tests
type Memory struct {
	Records []types.ChangeRecord
}

// Record implements Sink
func (m *Memory) Record(_ context.Context, record types.ChangeRecord) error {
	m.Records = append(m.Records, record)
	return nil
}
