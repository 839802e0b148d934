// service содержит бизнес-логику фоновой оркестрации hackerbabel:
// Poller, Dispatcher с пулом воркеров и обработчики задач обогащения.
package service

import (
	"context"
	"errors"

	"github.com/pribylovaa/hackerbabel/internal/config"
	"github.com/pribylovaa/hackerbabel/internal/metrics"
	"github.com/pribylovaa/hackerbabel/internal/models"
	"github.com/pribylovaa/hackerbabel/internal/queue"
	"github.com/pribylovaa/hackerbabel/internal/storage"
)

var (
	// ErrUnknownJobKind — job с неизвестным видом; нарушение контракта,
	// задача логируется и отбрасывается.
	ErrUnknownJobKind = errors.New("unknown job kind")
	// ErrTranslationFailed — попытки submit/poll исчерпаны, паре
	// (story, lang) записан терминальный статус failed.
	ErrTranslationFailed = errors.New("translation failed")
)

// Source описывает адаптер источника историй.
//
// Требования к реализации:
//  1. TopStories возвращает уже нормализованные истории: карта Titles
//     посеяна (исходный язык done, целевые not_requested с заглушкой),
//     CreatedAt — отображаемая строка.
//  2. Item возвращает (nil, nil) для несуществующего идентификатора;
//     вызывающая сторона отсекает такие ссылки как удалённые.
//  3. Реализация обязана уважать ctx (отмена/таймауты).
type Source interface {
	TopStories(ctx context.Context, limit int) ([]models.Story, error)
	Item(ctx context.Context, id int64) (*models.SourceItem, error)
}

// Translator описывает клиент внешнего API переводов с асинхронным
// жизненным циклом задач: Submit возвращает uid принятой задачи,
// Status опрашивается до RemoteStatusCompleted.
type Translator interface {
	Submit(ctx context.Context, text, targetLang string) (string, error)
	Status(ctx context.Context, uid string) (*models.TranslationUpdate, error)
}

// Service — оркестратор фонового обогащения. Poller и Dispatcher —
// независимые циклы, общаются только через очередь и сторадж.
type Service struct {
	storage    storage.Storage
	source     Source
	translator Translator
	queue      *queue.Queue
	metrics    *metrics.Metrics
	cfg        config.Config
}

// New создает новый экземпляр Service.
func New(st storage.Storage, src Source, tr Translator, q *queue.Queue, m *metrics.Metrics, cfg config.Config) *Service {
	return &Service{
		storage:    st,
		source:     src,
		translator: tr,
		queue:      q,
		metrics:    m,
		cfg:        cfg,
	}
}
