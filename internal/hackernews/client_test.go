package hackernews

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/hackerbabel/internal/config"
	"github.com/pribylovaa/hackerbabel/internal/models"
)

// Тесты адаптера источника поверх httptest: нормализация сырых элементов
// в доменные модели и контракт Item для несуществующих идентификаторов.

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return New(&config.Config{
		HackerNews: config.HackerNewsConfig{
			BaseURL: srv.URL,
			Timeout: 5 * time.Second,
		},
		Langs: config.LangConfig{
			Source:  "EN",
			Targets: []string{"DE", "PT"},
		},
	})
}

// TestTopStories_Normalize — история нормализуется: переименования
// полей, дата в отображаемую строку UTC, посев карты заголовков.
func TestTopStories_Normalize(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/topstories.json", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `[42]`)
	})
	mux.HandleFunc("/item/42.json", func(w http.ResponseWriter, _ *http.Request) {
		// 2021-03-01 12:30:00 UTC.
		fmt.Fprint(w, `{"id":42,"by":"pg","type":"story","time":1614601800,"title":"X","url":"https://example.com","score":100,"kids":[7,8]}`)
	})

	c := newTestClient(t, mux)

	stories, err := c.TopStories(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, stories, 1)

	got := stories[0]
	require.Equal(t, int64(42), got.ID)
	require.Equal(t, "pg", got.Author)
	require.Equal(t, "story", got.Type)
	require.Equal(t, "01-03-2021, 12:30", got.CreatedAt)
	require.Equal(t, int64(100), got.Score)
	require.Equal(t, "https://example.com", got.URL)
	require.Equal(t, []int64{7, 8}, got.CommentRefs)

	require.Equal(t, models.Title{Text: "X", Status: models.StatusDone}, got.Titles["EN"])
	require.Equal(t, models.Title{Text: models.PlaceholderTitle, Status: models.StatusNotRequested}, got.Titles["DE"])
	require.Equal(t, models.Title{Text: models.PlaceholderTitle, Status: models.StatusNotRequested}, got.Titles["PT"])
}

// TestTopStories_LimitAndSkips — limit обрезает список идентификаторов;
// удалённые, мёртвые и несуществующие элементы пропускаются.
func TestTopStories_LimitAndSkips(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/topstories.json", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `[1,2,3,4,5]`)
	})
	mux.HandleFunc("/item/1.json", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"id":1,"by":"a","type":"story","time":1614601800,"title":"A"}`)
	})
	mux.HandleFunc("/item/2.json", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"id":2,"deleted":true}`)
	})
	mux.HandleFunc("/item/3.json", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"id":3,"dead":true}`)
	})
	mux.HandleFunc("/item/4.json", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `null`)
	})

	c := newTestClient(t, mux)

	stories, err := c.TopStories(context.Background(), 4)
	require.NoError(t, err)
	require.Len(t, stories, 1)
	require.Equal(t, int64(1), stories[0].ID)
}

// TestTopStories_ItemErrorFatal — ошибка выборки любого элемента
// фатальна для всего вызова: тик видит либо согласованный срез, либо
// ничего.
func TestTopStories_ItemErrorFatal(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/topstories.json", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `[1,2]`)
	})
	mux.HandleFunc("/item/1.json", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"id":1,"by":"a","type":"story","time":1614601800,"title":"A"}`)
	})
	mux.HandleFunc("/item/2.json", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	c := newTestClient(t, mux)

	_, err := c.TopStories(context.Background(), 10)
	require.Error(t, err)
}

// TestItem — сырой элемент для разрешения комментариев; JSON null от
// API превращается в (nil, nil).
func TestItem(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/item/7.json", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"id":7,"type":"comment","text":"hello","kids":[9],"deleted":false}`)
	})
	mux.HandleFunc("/item/404.json", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `null`)
	})

	c := newTestClient(t, mux)

	item, err := c.Item(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, &models.SourceItem{
		ID:   7,
		Text: "hello",
		Kids: []int64{9},
	}, item)

	item, err = c.Item(context.Background(), 404)
	require.NoError(t, err)
	require.Nil(t, item)
}

// TestItem_ContextCancelled — клиент уважает отмену контекста.
func TestItem_ContextCancelled(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/item/7.json", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"id":7}`)
	})

	c := newTestClient(t, mux)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Item(ctx, 7)
	require.Error(t, err)
}
