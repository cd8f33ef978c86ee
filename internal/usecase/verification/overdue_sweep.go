package verification

import (
	"context"
	"time"

	"go.uber.org/zap"

	"asset-verification-portal/internal/logger"
)

// StartOverdueSweepJob starts a background job that periodically marks pending
// records of campaigns past their deadline as overdue.
func (s *Service) StartOverdueSweepJob(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logger.Info("Overdue sweep job started",
		zap.Duration("interval", interval),
	)

	s.runOverdueSweep(ctx)

	for {
		select {
		case <-ctx.Done():
			logger.Info("Overdue sweep job stopped")
			return
		case <-ticker.C:
			s.runOverdueSweep(ctx)
		}
	}
}

func (s *Service) runOverdueSweep(ctx context.Context) {
	flipped, err := s.SweepOverdue(ctx)
	if err != nil {
		logger.Error("Overdue sweep failed", zap.Error(err))
		return
	}

	if flipped > 0 {
		logger.Info("Overdue sweep completed",
			zap.Int64("records_marked", flipped),
		)
	}
}
