package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/researchdesk/internal/researchdesk/store"
)

// indexBatch is how many projects go to the index per call.
const indexBatch = 500

// IndexSyncService periodically pushes every project to the search index so
// documents missed by the per-write updates catch up.
type IndexSyncService struct {
	Store    store.Store
	Indexer  ProjectIndexer
	Logger   *slog.Logger
	Interval time.Duration

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewIndexSyncService creates the worker. A non-positive interval defaults
// to 15 minutes.
func NewIndexSyncService(s store.Store, indexer ProjectIndexer, logger *slog.Logger, interval time.Duration) *IndexSyncService {
	if interval <= 0 {
		interval = 15 * time.Minute
	}

	return &IndexSyncService{
		Store:    s,
		Indexer:  indexer,
		Logger:   logger,
		Interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start runs a sync now and then on every tick. It does not block.
func (s *IndexSyncService) Start() {
	go s.run()
	s.Logger.Info("index sync started", slog.Duration("interval", s.Interval))
}

// Stop blocks until an in-flight sync has finished.
func (s *IndexSyncService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("index sync stopped")
}

func (s *IndexSyncService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	s.Sync(context.Background())

	for {
		select {
		case <-ticker.C:
			s.Sync(context.Background())
		case <-s.stopCh:
			return
		}
	}
}

// Sync indexes every stored project and reports how many were sent.
func (s *IndexSyncService) Sync(ctx context.Context) int {
	start := time.Now()

	ps, err := s.Store.Projects().ListAll(ctx)
	if err != nil {
		s.Logger.Error("index sync: list projects", slog.Any("error", err))
		return 0
	}

	sent := 0
	for i := 0; i < len(ps); i += indexBatch {
		end := min(i+indexBatch, len(ps))
		if err := s.Indexer.IndexProjects(ctx, ps[i:end]...); err != nil {
			s.Logger.Error("index sync: index batch",
				slog.Int("offset", i),
				slog.Any("error", err),
			)
			continue
		}
		sent += end - i
	}

	s.Logger.Info("index sync completed",
		slog.Int("projects", sent),
		slog.Duration("took", time.Since(start)),
	)
	return sent
}
