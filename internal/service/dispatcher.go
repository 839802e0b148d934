package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/pribylovaa/hackerbabel/internal/models"
	"github.com/pribylovaa/hackerbabel/pkg/log"
)

// StartDispatcher запускает цикл раздачи работы: на каждом тике снимает
// пачку задач из очереди и отдаёт их пулу воркеров фиксированного размера.
//
// Диспетчер не ждёт завершения задач — долгие job-ы (опрос статуса
// перевода) копятся во внутренней очереди пула; backpressure применяет
// пул границей параллелизма, а не диспетчер.
//
// Останавливается по ctx; дожидается выхода воркеров.
func (s *Service) StartDispatcher(ctx context.Context) error {
	const op = "service/dispatcher/StartDispatcher"

	lg := log.From(ctx)
	lg.Info("dispatcher_start",
		slog.String("op", op),
		slog.Duration("interval", s.cfg.Dispatcher.Interval),
		slog.Int("workers", s.cfg.Dispatcher.Workers),
	)

	// Внутренняя очередь пула. Буфер в размер пачки сглаживает пики;
	// заполненный буфер блокирует съём до освобождения воркеров.
	tasks := make(chan models.Job, s.cfg.Dispatcher.BatchSize)

	var wg sync.WaitGroup
	for i := 0; i < s.cfg.Dispatcher.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.worker(ctx, tasks)
		}()
	}

	ticker := time.NewTicker(s.cfg.Dispatcher.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			close(tasks)
			wg.Wait()
			lg.Info("dispatcher_stop", slog.String("op", op))
			return nil
		case <-ticker.C:
			s.drainOnce(ctx, tasks)
		}
	}
}

// drainOnce — один тик: если ожидающих задач не меньше порога, снять до
// BatchSize и передать пулу. Пустая (или недобравшая порог) очередь не
// блокирует — диспетчер просто спит до следующего тика.
func (s *Service) drainOnce(ctx context.Context, tasks chan<- models.Job) {
	const op = "service/dispatcher/drainOnce"

	depth := s.queue.Len()
	if s.metrics != nil {
		s.metrics.QueueDepth.Set(float64(depth))
	}

	if depth < s.cfg.Dispatcher.MinPending {
		return
	}

	jobs := s.queue.Drain(s.cfg.Dispatcher.BatchSize)
	if len(jobs) == 0 {
		return
	}

	log.From(ctx).Info("dispatch_batch",
		slog.String("op", op),
		slog.Int("jobs", len(jobs)),
		slog.Int("left", s.queue.Len()),
	)

	for _, job := range jobs {
		select {
		case <-ctx.Done():
			return
		case tasks <- job:
		}
	}
}

// worker — один воркер пула: последовательно исполняет задачи из канала
// до его закрытия или отмены ctx.
func (s *Service) worker(ctx context.Context, tasks <-chan models.Job) {
	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-tasks:
			if !ok {
				return
			}
			s.runJob(ctx, job)
		}
	}
}

// runJob исполняет одну задачу с изоляцией отказов: ошибка или паника
// внутри обработчика логируется с идентичностью задачи и не трогает ни
// пул, ни другие задачи. Повторной постановки нет — потерянная работа
// будет заново выведена Poller-ом из сохранённого состояния.
func (s *Service) runJob(ctx context.Context, job models.Job) {
	const op = "service/dispatcher/runJob"

	lg := log.From(ctx).With(
		slog.String("op", op),
		slog.String("kind", job.Kind.String()),
		slog.Int64("story_id", job.StoryID),
	)

	result := "ok"
	defer func() {
		if rec := recover(); rec != nil {
			result = "panic"
			lg.Error("job_panic", slog.Any("panic", rec))
		}

		if s.metrics != nil {
			s.metrics.JobsProcessed.WithLabelValues(job.Kind.String(), result).Inc()
		}
	}()

	if err := s.handleJob(ctx, job); err != nil {
		result = "error"
		lg.Warn("job_failed", slog.String("err", err.Error()))
		return
	}

	lg.Debug("job_done")
}

// handleJob — единственная точка диспетчеризации по виду задачи.
// Закрытый switch по models.JobKind; неизвестный вид — нарушение
// контракта, задача отбрасывается с ошибкой.
func (s *Service) handleJob(ctx context.Context, job models.Job) error {
	switch job.Kind {
	case models.JobTranslateTitle:
		return s.handleTranslateTitle(ctx, job)
	case models.JobResolveComments:
		return s.handleResolveComments(ctx, job)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownJobKind, job.Kind)
	}
}
