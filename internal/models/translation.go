package models

// Статусы удалённой задачи внешнего API переводов
// (new -> accepted -> translating -> completed).
const (
	RemoteStatusNew         = "new"
	RemoteStatusAccepted    = "accepted"
	RemoteStatusTranslating = "translating"
	RemoteStatusCompleted   = "completed"
)

// TranslationUpdate — снимок состояния удалённой задачи перевода.
type TranslationUpdate struct {
	Status         string `json:"status"`
	TranslatedText string `json:"translatedText"`
}
