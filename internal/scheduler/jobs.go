package scheduler

import (
	"context"
	"time"

	"github.com/alphaforge/forge/internal/modules/portfolio"
	"github.com/alphaforge/forge/internal/services/quotes"
)

// QuoteSyncJob refreshes live prices for all held tickers
type QuoteSyncJob struct {
	service *quotes.Service
	timeout time.Duration
}

// NewQuoteSyncJob creates the quote refresh job
func NewQuoteSyncJob(service *quotes.Service) *QuoteSyncJob {
	return &QuoteSyncJob{
		service: service,
		timeout: 10 * time.Minute,
	}
}

// Name implements Job
func (j *QuoteSyncJob) Name() string { return "quote_sync" }

// Run implements Job
func (j *QuoteSyncJob) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	_, err := j.service.SyncAll(ctx)
	return err
}

// SnapshotJob records the daily portfolio value
type SnapshotJob struct {
	service *portfolio.Service
}

// NewSnapshotJob creates the daily snapshot job
func NewSnapshotJob(service *portfolio.Service) *SnapshotJob {
	return &SnapshotJob{service: service}
}

// Name implements Job
func (j *SnapshotJob) Name() string { return "daily_snapshot" }

// Run implements Job
func (j *SnapshotJob) Run() error {
	return j.service.TakeSnapshot()
}
