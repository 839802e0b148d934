package models

import "fmt"

// JobKind — закрытое множество видов фоновой работы. Диспетчеризация —
// единственный switch в диспетчере; неизвестный вид трактуется как
// нарушение контракта (job логируется и отбрасывается).
type JobKind int

const (
	// JobTranslateTitle — перевести заголовок одной истории на один язык.
	JobTranslateTitle JobKind = iota + 1
	// JobResolveComments — разрешить дерево комментариев одной истории.
	JobResolveComments
)

// String — человекочитаемое имя вида работы для логов и метрик.
func (k JobKind) String() string {
	switch k {
	case JobTranslateTitle:
		return "translate_title"
	case JobResolveComments:
		return "resolve_comments"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// Job — безсостоянийное описание одной единицы работы по обогащению.
// Job не хранится и не является «хэндлом»: всё его содержимое выводимо из
// сохранённого состояния, поэтому потерянная при рестарте работа заново
// обнаруживается Poller-ом на следующем тике.
//
// Поля по видам:
//   - JobTranslateTitle: StoryID, Lang, SourceText;
//   - JobResolveComments: StoryID, Refs.
type Job struct {
	Kind    JobKind
	StoryID int64

	Lang       string
	SourceText string

	Refs []int64
}
