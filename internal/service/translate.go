package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/pribylovaa/hackerbabel/internal/models"
	"github.com/pribylovaa/hackerbabel/internal/storage"
	"github.com/pribylovaa/hackerbabel/pkg/log"
)

// handleTranslateTitle ведёт перевод заголовка одной пары (story, lang)
// через асинхронный жизненный цикл внешнего API:
//
//	submit (с backoff) -> pending -> опрос статуса -> done
//
// Исчерпание попыток на любом шаге завершает пару терминальным failed —
// в отличие от pending, он означает «сдались», а не «ещё работаем».
// Конкурентные job-ы разных языков одной истории не конфликтуют: каждый
// пишет только свои подключи, а статусы продвигаются строго вперёд.
func (s *Service) handleTranslateTitle(ctx context.Context, job models.Job) error {
	const op = "service/translate/handleTranslateTitle"

	lg := log.From(ctx).With(
		slog.String("op", op),
		slog.Int64("story_id", job.StoryID),
		slog.String("lang", job.Lang),
	)

	uid, err := s.submitWithBackoff(ctx, job)
	if err != nil {
		s.markFailed(ctx, lg, job)
		return fmt.Errorf("%s: submit: %w", op, err)
	}

	if err := s.storage.UpdateTitleStatus(ctx, job.StoryID, job.Lang, models.StatusPending); err != nil {
		switch {
		case errors.Is(err, storage.ErrStaleStatus):
			// Пара уже продвинулась дальше (конкурентный job или
			// повторно выведенная работа) — молча уступаем.
			lg.Debug("translate_already_advanced")
			return nil
		case errors.Is(err, storage.ErrNotFound):
			// Job адресован несуществующей истории — нарушение контракта.
			return fmt.Errorf("%s: mark pending: %w", op, err)
		default:
			return fmt.Errorf("%s: mark pending: %w", op, err)
		}
	}

	lg.Info("translate_submitted", slog.String("uid", uid))

	text, err := s.awaitTranslation(ctx, uid)
	if err != nil {
		s.markFailed(ctx, lg, job)
		return fmt.Errorf("%s: await: %w", op, err)
	}

	if err := s.storage.SetTranslatedTitle(ctx, job.StoryID, job.Lang, text); err != nil {
		if errors.Is(err, storage.ErrStaleStatus) {
			lg.Debug("translate_already_advanced")
			return nil
		}

		return fmt.Errorf("%s: store result: %w", op, err)
	}

	lg.Info("translate_done")

	return nil
}

// submitWithBackoff добивается принятия задачи внешним API: повторы с
// экспоненциальным backoff и джиттером, не более SubmitAttempts попыток.
func (s *Service) submitWithBackoff(ctx context.Context, job models.Job) (string, error) {
	var lastErr error

	for attempt := 1; attempt <= s.cfg.Retry.SubmitAttempts; attempt++ {
		uid, err := s.translator.Submit(ctx, job.SourceText, job.Lang)
		if err == nil {
			return uid, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return "", ctx.Err()
		}

		if attempt == s.cfg.Retry.SubmitAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(backoffDelay(s.cfg.Retry.BaseDelay, attempt)):
		}
	}

	return "", fmt.Errorf("%w: %d attempts: %w", ErrTranslationFailed, s.cfg.Retry.SubmitAttempts, lastErr)
}

// awaitTranslation опрашивает статус удалённой задачи до completed.
// Каждая попытка — одно обращение к API с паузой PollInterval перед ним;
// транзиентные ошибки опроса расходуют попытки наравне с «ещё не готово».
func (s *Service) awaitTranslation(ctx context.Context, uid string) (string, error) {
	lg := log.From(ctx)

	for attempt := 1; attempt <= s.cfg.Retry.PollAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(s.cfg.Retry.PollInterval):
		}

		upd, err := s.translator.Status(ctx, uid)
		if err != nil {
			lg.Warn("translate_status_error",
				slog.String("uid", uid),
				slog.Int("attempt", attempt),
				slog.String("err", err.Error()),
			)
			continue
		}

		if upd.Status == models.RemoteStatusCompleted {
			return upd.TranslatedText, nil
		}
	}

	return "", fmt.Errorf("%w: status not completed after %d polls", ErrTranslationFailed, s.cfg.Retry.PollAttempts)
}

// markFailed записывает терминальный failed; «опоздавший» переход (пара
// уже done) не ошибка — монотонность охраняет сторадж.
func (s *Service) markFailed(ctx context.Context, lg *slog.Logger, job models.Job) {
	err := s.storage.UpdateTitleStatus(ctx, job.StoryID, job.Lang, models.StatusFailed)
	switch {
	case err == nil:
		lg.Warn("translate_failed_terminal")
	case errors.Is(err, storage.ErrStaleStatus):
		lg.Debug("translate_already_advanced")
	default:
		lg.Error("mark_failed_error", slog.String("err", err.Error()))
	}
}

// backoffDelay — экспоненциальная задержка base*2^(attempt-1) с джиттером
// ±30% (как в повторах источников, чтобы не бить API синхронно).
func backoffDelay(base time.Duration, attempt int) time.Duration {
	delay := base
	for i := 1; i < attempt; i++ {
		delay *= 2
	}

	jitter := float64(delay) * 0.3

	return time.Duration(float64(delay) + (rand.Float64()*2-1)*jitter)
}
