package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/pribylovaa/hackerbabel/internal/config"
	"github.com/pribylovaa/hackerbabel/internal/metrics"
	"github.com/pribylovaa/hackerbabel/internal/models"
	"github.com/pribylovaa/hackerbabel/internal/queue"
	"github.com/pribylovaa/hackerbabel/mocks"
	"github.com/pribylovaa/hackerbabel/pkg/log"
)

// Общие помощники тестов сервиса: конфигурация с короткими интервалами,
// стабы Source/Translator и сборка Service поверх gomock-стораджа.

// testConfig — конфигурация с миллисекундными интервалами, чтобы тесты
// повторов и циклов укладывались в доли секунды.
func testConfig() config.Config {
	return config.Config{
		Env: "local",
		Langs: config.LangConfig{
			Source:  "EN",
			Targets: []string{"DE"},
		},
		Poller: config.PollerConfig{
			Interval:   5 * time.Millisecond,
			TopStories: 10,
		},
		Dispatcher: config.DispatcherConfig{
			Interval:   5 * time.Millisecond,
			Workers:    2,
			MinPending: 1,
			BatchSize:  8,
		},
		Retry: config.RetryConfig{
			BaseDelay:      time.Millisecond,
			SubmitAttempts: 3,
			PollInterval:   time.Millisecond,
			PollAttempts:   5,
		},
	}
}

// silentCtx — контекст с логгером в io.Discard, чтобы тесты не шумели.
func silentCtx() context.Context {
	lg := slog.New(slog.NewTextHandler(io.Discard, nil))
	return log.Into(context.Background(), lg)
}

// stubSource — стаб источника историй с функциями-полями.
type stubSource struct {
	topFn  func(ctx context.Context, limit int) ([]models.Story, error)
	itemFn func(ctx context.Context, id int64) (*models.SourceItem, error)
}

func (s *stubSource) TopStories(ctx context.Context, limit int) ([]models.Story, error) {
	return s.topFn(ctx, limit)
}

func (s *stubSource) Item(ctx context.Context, id int64) (*models.SourceItem, error) {
	return s.itemFn(ctx, id)
}

// stubTranslator — стаб клиента переводов с функциями-полями.
type stubTranslator struct {
	submitFn func(ctx context.Context, text, targetLang string) (string, error)
	statusFn func(ctx context.Context, uid string) (*models.TranslationUpdate, error)
}

func (s *stubTranslator) Submit(ctx context.Context, text, targetLang string) (string, error) {
	return s.submitFn(ctx, text, targetLang)
}

func (s *stubTranslator) Status(ctx context.Context, uid string) (*models.TranslationUpdate, error) {
	return s.statusFn(ctx, uid)
}

// newTestService собирает Service поверх мок-стораджа и стабов с
// изолированным prometheus-реестром и свежей очередью.
func newTestService(t *testing.T, st *mocks.MockStorage, src Source, tr Translator) (*Service, *queue.Queue, *metrics.Metrics) {
	t.Helper()

	q := queue.New()
	m := metrics.New(prometheus.NewRegistry())

	return New(st, src, tr, q, m, testConfig()), q, m
}

// storyFixture — нормализованная история в том виде, в каком её отдаёт
// адаптер источника: карта заголовков посеяна, дата — строка.
func storyFixture(id int64, title string, refs []int64) models.Story {
	return models.Story{
		ID:          id,
		Author:      "pg",
		Type:        "story",
		CreatedAt:   "01-01-2024, 12:00",
		Score:       100,
		URL:         "https://example.com",
		Titles:      models.NewTitles("EN", title, []string{"DE"}),
		CommentRefs: refs,
	}
}

func newStorageMock(t *testing.T) (*mocks.MockStorage, *gomock.Controller) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	return mocks.NewMockStorage(ctrl), ctrl
}
