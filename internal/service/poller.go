package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/pribylovaa/hackerbabel/internal/models"
	"github.com/pribylovaa/hackerbabel/internal/storage"
	"github.com/pribylovaa/hackerbabel/pkg/log"
)

// StartPoller запускает периодический опрос источника историй.
//
// Особенности:
//   - первый тик выполняется сразу, дальше — по s.cfg.Poller.Interval;
//   - неудачный тик логируется и не прерывает цикл (повтор — следующий тик);
//   - останавливается по ctx.
//
// Задачи обогащения не персистентны: работа, потерянная на рестарте,
// заново выводится тиком из разницы между топом источника и стораджем.
func (s *Service) StartPoller(ctx context.Context) error {
	const op = "service/poller/StartPoller"

	lg := log.From(ctx)
	lg.Info("poller_start",
		slog.String("op", op),
		slog.Duration("interval", s.cfg.Poller.Interval),
		slog.Int("top_stories", s.cfg.Poller.TopStories),
	)

	ticker := time.NewTicker(s.cfg.Poller.Interval)
	defer ticker.Stop()

	s.pollTick(ctx)

	for {
		select {
		case <-ctx.Done():
			lg.Info("poller_stop", slog.String("op", op))
			return nil
		case <-ticker.C:
			s.pollTick(ctx)
		}
	}
}

// pollTick — один тик с логированием результата и метрикой.
func (s *Service) pollTick(ctx context.Context) {
	const op = "service/poller/pollTick"

	lg := log.From(ctx)

	if err := s.pollOnce(ctx); err != nil {
		if s.metrics != nil {
			s.metrics.PollTicks.WithLabelValues("error").Inc()
		}
		lg.Warn("poll_tick_error",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)
		return
	}

	if s.metrics != nil {
		s.metrics.PollTicks.WithLabelValues("ok").Inc()
	}
}

// pollOnce — один проход: выборка топа, диф против стораджа, постановка
// недостающей работы, вставка новых историй.
//
// Порядок существенен: поиск существующей записи всегда предшествует
// вставке — это и есть защита от дублей при пересечении двух тиков.
func (s *Service) pollOnce(ctx context.Context) error {
	const op = "service/poller/pollOnce"

	lg := log.From(ctx)

	stories, err := s.source.TopStories(ctx, s.cfg.Poller.TopStories)
	if err != nil {
		// Неудачная выборка прерывает только этот тик.
		return fmt.Errorf("%s: fetch top stories: %w", op, err)
	}

	var added, queued int
	for _, story := range stories {
		_, err := s.storage.StoryByID(ctx, story.ID)
		switch {
		case errors.Is(err, storage.ErrNotFound):
			// Новая история: сперва вся работа в очередь, затем вставка.
			queued += s.enqueueNewStory(ctx, story)

			if err := s.storage.SaveStory(ctx, story); err != nil {
				lg.Error("save_story_failed",
					slog.String("op", op),
					slog.Int64("story_id", story.ID),
					slog.String("err", err.Error()),
				)
				continue
			}
			added++
		case err != nil:
			// Ошибка чтения стораджа: история пропускается до
			// следующего тика, цикл не прерывается.
			lg.Warn("story_read_failed",
				slog.String("op", op),
				slog.Int64("story_id", story.ID),
				slog.String("err", err.Error()),
			)
		default:
			// История известна: единственная возможная новая работа —
			// комментарии.
			if s.needCommentResolution(ctx, story) {
				s.push(ctx, models.Job{
					Kind:    models.JobResolveComments,
					StoryID: story.ID,
					Refs:    story.CommentRefs,
				})
				queued++
			}
		}
	}

	lg.Info("poll_tick_done",
		slog.String("op", op),
		slog.Int("fetched", len(stories)),
		slog.Int("added", added),
		slog.Int("jobs_queued", queued),
	)

	return nil
}

// enqueueNewStory ставит полный набор задач для ранее не виденной истории:
// перевод заголовка на каждый целевой язык и, при наличии ссылок,
// разрешение дерева комментариев.
func (s *Service) enqueueNewStory(ctx context.Context, story models.Story) int {
	sourceText := story.Titles[s.cfg.Langs.Source].Text

	queued := 0
	for _, lang := range s.cfg.Langs.Targets {
		s.push(ctx, models.Job{
			Kind:       models.JobTranslateTitle,
			StoryID:    story.ID,
			Lang:       lang,
			SourceText: sourceText,
		})
		queued++
	}

	if len(story.CommentRefs) > 0 {
		s.push(ctx, models.Job{
			Kind:    models.JobResolveComments,
			StoryID: story.ID,
			Refs:    story.CommentRefs,
		})
		queued++
	}

	return queued
}

// needCommentResolution решает, нужна ли известной истории повторная
// работа по комментариям. Эвристика дешёвая: если число ссылок не
// изменилось с последнего разрешения, дорогой обход дерева не ставится.
func (s *Service) needCommentResolution(ctx context.Context, story models.Story) bool {
	const op = "service/poller/needCommentResolution"

	if len(story.CommentRefs) == 0 {
		return false
	}

	rec, err := s.storage.CommentRecordByID(ctx, story.ID)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		// Записи о комментариях нет вовсе — считаем историю «новой» в
		// этом отношении.
		return true
	case err != nil:
		log.From(ctx).Warn("comment_record_read_failed",
			slog.String("op", op),
			slog.Int64("story_id", story.ID),
			slog.String("err", err.Error()),
		)
		return false
	}

	if !rec.Resolved {
		return true
	}

	return len(rec.Refs) != len(story.CommentRefs)
}

// push кладёт задачу в очередь с учётом метрик и журнала.
func (s *Service) push(ctx context.Context, job models.Job) {
	s.queue.Push(job)

	if s.metrics != nil {
		s.metrics.JobsQueued.WithLabelValues(job.Kind.String()).Inc()
	}

	log.From(ctx).Debug("job_queued",
		slog.String("kind", job.Kind.String()),
		slog.Int64("story_id", job.StoryID),
		slog.String("lang", job.Lang),
	)
}
