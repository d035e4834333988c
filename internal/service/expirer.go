package service

import (
	"context"
	"sync"
	"time"

	"github.com/Harshitk-cp/dempster/internal/domain"
	"go.uber.org/zap"
)

const defaultExpirerInterval = 1 * time.Hour

// ExpirerService purges evidence records past their expires_at.
type ExpirerService struct {
	evidenceStore domain.EvidenceStore
	logger        *zap.Logger

	interval time.Duration
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

func NewExpirerService(es domain.EvidenceStore, logger *zap.Logger) *ExpirerService {
	return &ExpirerService{
		evidenceStore: es,
		logger:        logger,
		interval:      defaultExpirerInterval,
		stopCh:        make(chan struct{}),
	}
}

func (s *ExpirerService) SetInterval(d time.Duration) {
	if d > 0 {
		s.interval = d
	}
}

// Start runs the expirer on a periodic schedule in a background goroutine.
func (s *ExpirerService) Start() {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.logger.Info("evidence expirer started", zap.Duration("interval", s.interval))

		for {
			select {
			case <-ticker.C:
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				s.run(ctx)
				cancel()
			case <-s.stopCh:
				s.logger.Info("evidence expirer stopped")
				return
			}
		}
	}()
}

// Stop gracefully stops the expirer.
func (s *ExpirerService) Stop() {
	close(s.stopCh)
	s.wg.Wait()
}

func (s *ExpirerService) run(ctx context.Context) int64 {
	deleted, err := s.evidenceStore.DeleteExpired(ctx)
	if err != nil {
		s.logger.Error("failed to delete expired evidence", zap.Error(err))
		return 0
	}
	if deleted > 0 {
		s.logger.Info("deleted expired evidence", zap.Int64("count", deleted))
	}
	return deleted
}
