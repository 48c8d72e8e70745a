package inventory

import (
	"context"
	"errors"
	"sync"

	"catalog-sync/core/events"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// ErrArchiveDisabled is returned when reports are requested without storage.
var ErrArchiveDisabled = errors.New("report archive disabled")

// Syncer runs one sync pass.
type Syncer interface {
	Run(ctx context.Context) Summary
}

// Service coordinates sync runs for the CLI and the HTTP API.
type Service struct {
	syncer    Syncer
	archive   ReportArchive
	publisher events.Publisher
	logger    *zap.Logger

	group singleflight.Group

	mu   sync.RWMutex
	last *Summary
}

// NewService creates a sync service. archive may be nil when storage is disabled.
func NewService(syncer Syncer, archive ReportArchive, publisher events.Publisher, logger *zap.Logger) *Service {
	if publisher == nil {
		publisher = events.Noop{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{syncer: syncer, archive: archive, publisher: publisher, logger: logger}
}

// Run executes a sync pass. Concurrent callers share the in-flight run;
// shared reports whether this caller joined a run started by another.
func (s *Service) Run(ctx context.Context) (Summary, bool) {
	v, _, shared := s.group.Do("sync", func() (any, error) {
		summary := s.syncer.Run(ctx)
		s.record(ctx, summary)
		return summary, nil
	})
	return v.(Summary), shared
}

// Last returns the most recent summary, if any run finished.
func (s *Service) Last() (Summary, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.last == nil {
		return Summary{}, false
	}
	return *s.last, true
}

// Reports lists archived reports, newest first.
func (s *Service) Reports(ctx context.Context, limit int) ([]ReportInfo, error) {
	if s.archive == nil {
		return nil, ErrArchiveDisabled
	}
	return s.archive.List(ctx, limit)
}

// Report returns one archived summary.
func (s *Service) Report(ctx context.Context, key string) (Summary, error) {
	if s.archive == nil {
		return Summary{}, ErrArchiveDisabled
	}
	return s.archive.Load(ctx, key)
}

// record keeps, archives and announces a finished run. Archive and publish
// failures are logged only: the run itself already happened.
func (s *Service) record(ctx context.Context, summary Summary) {
	s.mu.Lock()
	s.last = &summary
	s.mu.Unlock()

	// The run may have been canceled; bookkeeping still has to happen
	ctx = context.WithoutCancel(ctx)

	if s.archive != nil {
		if key, err := s.archive.Save(ctx, summary); err != nil {
			s.logger.Error("Failed to archive sync report", zap.Error(err))
		} else {
			s.logger.Info("Sync report archived", zap.String("key", key))
		}
	}

	if err := s.publisher.Publish(ctx, events.SyncCompleted, summary); err != nil {
		s.logger.Error("Failed to publish sync event", zap.Error(err))
	}
}
