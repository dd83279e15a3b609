package completion

import (
	"context"
	"time"
)

// Worker периодически закрывает прошедшие бронирования
// Завершенное бронирование продолжает занимать интервал и учитываться в квоте
type Worker struct {
	repo         BookingCompleter
	interval     time.Duration
	timeProvider TimeProvider
	logger       Logger
}

// NewWorker создает воркер с периодом interval
func NewWorker(repo BookingCompleter, interval time.Duration, logger Logger) *Worker {
	return &Worker{
		repo:         repo,
		interval:     interval,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Run выполняет проход сразу и затем по таймеру до отмены контекста
func (w *Worker) Run(ctx context.Context) error {
	w.logger.Info("CompletionWorker: started, interval=%s", w.interval)

	w.RunOnce(ctx)

	timer := time.NewTimer(w.interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("CompletionWorker: shutting down")
			return nil
		case <-timer.C:
			w.RunOnce(ctx)
			timer.Reset(w.interval)
		}
	}
}

// RunOnce завершает бронирования, чей конец не позже текущего момента
// Ошибка хранилища логируется, следующий проход повторит попытку
func (w *Worker) RunOnce(ctx context.Context) int64 {
	completed, err := w.repo.CompleteEnded(ctx, w.timeProvider.Now())
	if err != nil {
		if ctx.Err() == nil {
			w.logger.Error("CompletionWorker: failed to complete ended bookings: %v", err)
		}
		return 0
	}

	if completed > 0 {
		w.logger.Info("CompletionWorker: completed %d bookings", completed)
	}
	return completed
}
