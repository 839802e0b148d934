package storage

import (
	"context"
	"errors"

	"github.com/pribylovaa/hackerbabel/internal/models"
)

var (
	// ErrNotFound — сущность отсутствует в хранилище.
	ErrNotFound = errors.New("not found")
	// ErrStaleStatus — попытка перевести статус перевода назад либо
	// перезаписать терминальный статус. Обновление не применено.
	ErrStaleStatus = errors.New("stale status transition")
)

// Storage описывает операции над тремя логическими коллекциями
// (articles/titles/comments), скоррелированными по story_id. Связь между
// коллекциями — рекомендательная, без внешних ключей: читатели обязаны
// проверять наличие скоррелированных документов сами.
type Storage interface {
	// SaveStory сохраняет новую историю: документ статьи, стартовую карту
	// заголовков и запись комментариев с неразрешёнными ссылками.
	// Повторная вставка того же story_id — ErrConflict-подобная ситуация
	// на уникальном индексе; Poller исключает её предварительным StoryByID.
	SaveStory(ctx context.Context, story models.Story) error

	// StoryByID возвращает историю (включая заголовки) по внешнему ID.
	// Если запись не найдена — ErrNotFound.
	StoryByID(ctx context.Context, id int64) (*models.Story, error)

	// NewestStories возвращает до limit последних историй, новые первыми.
	NewestStories(ctx context.Context, limit int64) ([]models.Story, error)

	// CommentRecordByID возвращает запись комментариев истории.
	// Если запись не найдена — ErrNotFound.
	CommentRecordByID(ctx context.Context, id int64) (*models.CommentRecord, error)

	// SaveCommentTree записывает разрешённое дерево вместе со списком
	// ссылок, из которого оно построено. Идемпотентно: повторная запись
	// того же дерева меняет документ на равный.
	SaveCommentTree(ctx context.Context, id int64, refs []int64, tree []models.CommentNode) error

	// UpdateTitleStatus продвигает статус перевода пары (story, lang)
	// строго вперёд. Недопустимый переход — ErrStaleStatus; отсутствие
	// истории — ErrNotFound.
	UpdateTitleStatus(ctx context.Context, id int64, lang string, next models.TranslationStatus) error

	// SetTranslatedTitle атомарно записывает переведённый текст и статус
	// done для пары (story, lang). Допустим только из pending — иначе
	// ErrStaleStatus.
	SetTranslatedTitle(ctx context.Context, id int64, lang string, text string) error

	// Close закрывает соединения/ресурсы хранилища.
	Close(ctx context.Context) error
}
