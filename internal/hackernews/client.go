// Package hackernews — адаптер источника: Firebase API Hacker News.
//
// Адаптер нормализует «сырые» элементы API в доменные модели на своей
// границе: переименования полей (by -> author, type -> article_type,
// time -> date, kids -> refs), форматирование даты и посев карты
// заголовков с плейсхолдерами под целевые языки.
package hackernews

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pribylovaa/hackerbabel/internal/config"
	"github.com/pribylovaa/hackerbabel/internal/models"
)

// dateLayout — отображаемый формат даты истории (UTC).
const dateLayout = "02-01-2006, 15:04"

// rawItem — элемент Firebase API (история или комментарий).
type rawItem struct {
	ID      int64   `json:"id"`
	By      string  `json:"by"`
	Type    string  `json:"type"`
	Time    int64   `json:"time"`
	Title   string  `json:"title"`
	Text    string  `json:"text"`
	URL     string  `json:"url"`
	Score   int64   `json:"score"`
	Kids    []int64 `json:"kids"`
	Deleted bool    `json:"deleted"`
	Dead    bool    `json:"dead"`
}

// Client — HTTP-клиент Firebase API Hacker News.
type Client struct {
	baseURL     string
	sourceLang  string
	targetLangs []string
	httpc       *http.Client
}

// New создаёт клиент по конфигурации.
func New(cfg *config.Config) *Client {
	return &Client{
		baseURL:     strings.TrimRight(cfg.HackerNews.BaseURL, "/"),
		sourceLang:  cfg.Langs.Source,
		targetLangs: cfg.Langs.Targets,
		httpc:       &http.Client{Timeout: cfg.HackerNews.Timeout},
	}
}

// TopStories возвращает до limit текущих топ-историй, нормализованных в
// доменные модели. Ошибка любой части выборки фатальна для всего вызова:
// тик опроса либо видит согласованный срез топа, либо не видит ничего.
func (c *Client) TopStories(ctx context.Context, limit int) ([]models.Story, error) {
	const op = "hackernews/TopStories"

	var ids []int64
	if err := c.getJSON(ctx, c.baseURL+"/topstories.json", &ids); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if limit > 0 && limit < len(ids) {
		ids = ids[:limit]
	}

	stories := make([]models.Story, 0, len(ids))
	for _, id := range ids {
		raw, err := c.getItem(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("%s: item %d: %w", op, id, err)
		}

		if raw == nil || raw.Deleted || raw.Dead {
			continue
		}

		stories = append(stories, c.normalize(raw))
	}

	return stories, nil
}

// Item возвращает сырой элемент по идентификатору (для разрешения
// комментариев). Несуществующий элемент (API отвечает null) — nil без
// ошибки: вызывающая сторона отсекает его как удалённый.
func (c *Client) Item(ctx context.Context, id int64) (*models.SourceItem, error) {
	const op = "hackernews/Item"

	raw, err := c.getItem(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: item %d: %w", op, id, err)
	}

	if raw == nil {
		return nil, nil
	}

	return &models.SourceItem{
		ID:      raw.ID,
		Text:    raw.Text,
		Kids:    raw.Kids,
		Deleted: raw.Deleted,
		Dead:    raw.Dead,
	}, nil
}

// normalize переводит сырой элемент в доменную модель: переименования,
// дата в отображаемую строку, посев карты заголовков.
func (c *Client) normalize(raw *rawItem) models.Story {
	return models.Story{
		ID:          raw.ID,
		Author:      raw.By,
		Type:        raw.Type,
		CreatedAt:   time.Unix(raw.Time, 0).UTC().Format(dateLayout),
		Score:       raw.Score,
		URL:         raw.URL,
		Titles:      models.NewTitles(c.sourceLang, raw.Title, c.targetLangs),
		CommentRefs: raw.Kids,
	}
}

// getItem забирает один элемент; API возвращает JSON null для
// несуществующих идентификаторов, в этом случае результат — nil.
func (c *Client) getItem(ctx context.Context, id int64) (*rawItem, error) {
	var raw *rawItem
	url := fmt.Sprintf("%s/item/%d.json", c.baseURL, id)
	if err := c.getJSON(ctx, url, &raw); err != nil {
		return nil, err
	}

	return raw, nil
}

// getJSON — GET с декодированием JSON-ответа в out.
func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}
