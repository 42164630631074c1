package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"
	"cryptobet.backend/internal/domain/repositories"
	"cryptobet.backend/pkg/logger"
)

// VerificationCleanupJob periodically purges expired, unconsumed email
// verification codes so stale codes cannot pile up.
type VerificationCleanupJob struct {
	repo     repositories.EmailVerificationRepository
	interval time.Duration
	stop     chan struct{}
}

func NewVerificationCleanupJob(repo repositories.EmailVerificationRepository, interval time.Duration) *VerificationCleanupJob {
	if interval <= 0 {
		interval = 15 * time.Minute
	}
	return &VerificationCleanupJob{
		repo:     repo,
		interval: interval,
		stop:     make(chan struct{}),
	}
}

func (j *VerificationCleanupJob) Start(ctx context.Context) {
	logger.Info(ctx, "Starting verification cleanup job", zap.Duration("interval", j.interval))

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "Verification cleanup job stopped (context cancelled)")
			return
		case <-j.stop:
			logger.Info(ctx, "Verification cleanup job stopped")
			return
		case <-ticker.C:
			j.sweep(ctx)
		}
	}
}

func (j *VerificationCleanupJob) Stop() {
	close(j.stop)
}

func (j *VerificationCleanupJob) sweep(ctx context.Context) {
	deleted, err := j.repo.DeleteExpired(ctx)
	if err != nil {
		logger.Error(ctx, "Failed to purge expired verification codes", zap.Error(err))
		return
	}
	if deleted > 0 {
		logger.Info(ctx, "Purged expired verification codes", zap.Int64("count", deleted))
	}
}
