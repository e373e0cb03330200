package workers

import (
	"context"
	"time"

	"trainertrust_backend/internal/logger"
	"trainertrust_backend/internal/repositories"

	"gorm.io/gorm"
)

// ApplicationCountWorker периодически сверяет jobs.application_count
// с реальным числом откликов (счетчик может разойтись после ручных правок БД).
type ApplicationCountWorker struct {
	db       *gorm.DB
	jobRepo  repositories.JobRepository
	interval time.Duration
}

func NewApplicationCountWorker(db *gorm.DB, jobRepo repositories.JobRepository, interval time.Duration) *ApplicationCountWorker {
	if interval <= 0 {
		interval = 15 * time.Minute
	}
	return &ApplicationCountWorker{db: db, jobRepo: jobRepo, interval: interval}
}

// Start запускает фоновую сверку до отмены ctx
func (w *ApplicationCountWorker) Start(ctx context.Context) {
	go w.run(ctx)
}

func (w *ApplicationCountWorker) run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Application count worker stopped")
			return
		case <-ticker.C:
			_, _ = w.Reconcile(ctx)
		}
	}
}

// Reconcile выполняет одну сверку и возвращает число исправленных вакансий
func (w *ApplicationCountWorker) Reconcile(ctx context.Context) (int64, error) {
	start := time.Now()
	affected, err := w.jobRepo.ReconcileApplicationCounts(w.db.WithContext(ctx))
	logger.WorkerLog("application_count", "reconcile", affected, time.Since(start), err)
	return affected, err
}
