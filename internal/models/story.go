// Package models содержит доменные сущности hackerbabel.
package models

// PlaceholderTitle — текст-заглушка для ещё не переведённых заголовков.
const PlaceholderTitle = "###"

// TranslationStatus — статус перевода заголовка для пары (story, language).
// Допустимые переходы строго вперёд:
//
//	not_requested -> pending -> done
//	not_requested -> pending -> failed
//
// done и failed — терминальные, откаты и перезапись запрещены
// (контролируется условным обновлением на уровне стораджа).
type TranslationStatus string

const (
	StatusNotRequested TranslationStatus = "not_requested"
	StatusPending      TranslationStatus = "pending"
	StatusDone         TranslationStatus = "done"
	StatusFailed       TranslationStatus = "failed"
)

// rank — позиция статуса в порядке продвижения. Неизвестный статус = -1.
func (s TranslationStatus) rank() int {
	switch s {
	case StatusNotRequested:
		return 0
	case StatusPending:
		return 1
	case StatusDone, StatusFailed:
		return 2
	default:
		return -1
	}
}

// Valid сообщает, известен ли статус.
func (s TranslationStatus) Valid() bool {
	return s.rank() >= 0
}

// Terminal сообщает, является ли статус терминальным.
func (s TranslationStatus) Terminal() bool {
	return s == StatusDone || s == StatusFailed
}

// Predecessors возвращает статусы, из которых разрешён переход в s.
// Используется сторадж-слоем как фильтр условного обновления.
// done достижим только через pending; failed — из любого нетерминального
// статуса (перевод может «сдаться» ещё до принятия задачи внешним API).
func (s TranslationStatus) Predecessors() []TranslationStatus {
	switch s {
	case StatusPending:
		return []TranslationStatus{StatusNotRequested}
	case StatusDone:
		return []TranslationStatus{StatusPending}
	case StatusFailed:
		return []TranslationStatus{StatusNotRequested, StatusPending}
	default:
		return nil
	}
}

// CanAdvance проверяет, допустим ли переход s -> next.
func (s TranslationStatus) CanAdvance(next TranslationStatus) bool {
	for _, p := range next.Predecessors() {
		if p == s {
			return true
		}
	}

	return false
}

// Title — заголовок истории на одном языке вместе со статусом перевода.
type Title struct {
	Text   string            `bson:"title"`
	Status TranslationStatus `bson:"translation_status"`
}

// Story — внутренняя доменная модель истории Hacker News.
// Важно:
//   - ID — внешний идентификатор HN (int64), первичный ключ корреляции
//     между коллекциями articles/titles/comments;
//   - CreatedAt — отображаемая строка (unix-время источника уже
//     сконвертировано адаптером, формат "02-01-2006, 15:04" UTC);
//   - Titles — ключ = код языка; исходный язык создаётся со статусом done,
//     целевые — not_requested с заглушкой PlaceholderTitle;
//   - CommentRefs — «сырые» идентификаторы комментариев верхнего уровня,
//     до разрешения в дерево.
type Story struct {
	ID          int64            `bson:"story_id"`
	Author      string           `bson:"author"`
	Type        string           `bson:"article_type"`
	CreatedAt   string           `bson:"date"`
	Score       int64            `bson:"score"`
	URL         string           `bson:"url,omitempty"`
	Titles      map[string]Title `bson:"-"`
	CommentRefs []int64          `bson:"-"`
}

// NewTitles собирает стартовую карту заголовков: исходный язык — done с
// оригинальным текстом, каждый целевой — not_requested с заглушкой.
func NewTitles(sourceLang, sourceText string, targetLangs []string) map[string]Title {
	titles := make(map[string]Title, len(targetLangs)+1)
	titles[sourceLang] = Title{Text: sourceText, Status: StatusDone}

	for _, lang := range targetLangs {
		if lang == sourceLang {
			continue
		}

		titles[lang] = Title{Text: PlaceholderTitle, Status: StatusNotRequested}
	}

	return titles
}
