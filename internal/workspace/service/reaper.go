package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/hivedesk/hivedesk/internal/workspace/store"
)

// ReaperService periodically deletes archived workspaces whose grace period
// has elapsed, and flips overdue pending invitations to expired so the
// ledger does not accumulate stale pending rows.
type ReaperService struct {
	Store     store.Store
	Lifecycle *LifecycleService
	Logger    *slog.Logger
	Interval  time.Duration

	// Internal channels for lifecycle management
	stopCh chan struct{}
	doneCh chan struct{}

	now func() time.Time
}

// NewReaperService creates a new reaper with the given sweep interval.
// If interval is 0 or negative, defaults to 1 hour.
func NewReaperService(st store.Store, lifecycle *LifecycleService, logger *slog.Logger, interval time.Duration) *ReaperService {
	if interval <= 0 {
		interval = 1 * time.Hour
	}

	return &ReaperService{
		Store:     st,
		Lifecycle: lifecycle,
		Logger:    logger,
		Interval:  interval,
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
	}
}

func (s *ReaperService) clock() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now().UTC()
}

// Start begins the background worker that periodically sweeps.
// This is non-blocking and should be called after the database is ready.
// Call Stop() to gracefully shutdown the worker.
func (s *ReaperService) Start() {
	go s.run()
	s.Logger.Info("reaper service started", "interval", s.Interval)
}

// Stop gracefully shuts down the background worker.
// Blocks until the worker has finished any in-progress sweep.
func (s *ReaperService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("reaper service stopped")
}

// run is the main background worker loop.
func (s *ReaperService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	// Sweep immediately on startup
	s.sweep(context.Background())

	for {
		select {
		case <-ticker.C:
			s.sweep(context.Background())
		case <-s.stopCh:
			return
		}
	}
}

// sweep deletes every reap-eligible workspace. Each deletion is independent:
// a failure on one workspace is logged and does not stop the rest.
func (s *ReaperService) sweep(ctx context.Context) {
	now := s.clock()

	candidates, err := s.Store.Workspaces().ListReapable(ctx, now)
	if err != nil {
		s.Logger.Error("failed to list reap candidates", "error", err)
		return
	}

	var reaped int
	for _, ws := range candidates {
		if err := s.Lifecycle.Reap(ctx, ws.ID); err != nil {
			s.Logger.Error("failed to reap workspace", "workspace_id", ws.ID, "error", err)
			continue
		}
		reaped++
	}

	expired, err := s.Store.Invitations().MarkExpiredBefore(ctx, now)
	if err != nil {
		s.Logger.Error("failed to expire overdue invitations", "error", err)
	}

	if reaped > 0 || expired > 0 {
		s.Logger.Info("reaper sweep completed", "workspaces_reaped", reaped, "invitations_expired", expired)
	}
}
