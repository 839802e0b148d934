package unbabel

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/hackerbabel/internal/config"
	"github.com/pribylovaa/hackerbabel/internal/models"
)

// Тесты клиента API переводов поверх httptest: формат запроса Submit
// (тело, авторизация), контракт uid и опрос статуса.

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return New(&config.Config{
		Unbabel: config.UnbabelConfig{
			BaseURL:  srv.URL, // без завершающего '/': New добавит сам
			Username: "user",
			Secret:   "shh",
			Timeout:  5 * time.Second,
		},
	})
}

// TestSubmit — POST с телом {text, target_language(lowercase)} и
// заголовком ApiKey; из ответа возвращается uid.
func TestSubmit(t *testing.T) {
	t.Parallel()

	var gotAuth, gotContentType string
	var gotBody map[string]string

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"uid":"abc123"}`)
	})

	c := newTestClient(t, handler)

	uid, err := c.Submit(context.Background(), "X", "DE")
	require.NoError(t, err)
	require.Equal(t, "abc123", uid)

	require.Equal(t, "ApiKey user:shh", gotAuth)
	require.Contains(t, gotContentType, "application/json")
	require.Equal(t, map[string]string{
		"text":            "X",
		"target_language": "de",
	}, gotBody)
}

// TestSubmit_EmptyUID — принятый ответ без uid это ошибка.
func TestSubmit_EmptyUID(t *testing.T) {
	t.Parallel()

	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{}`)
	})

	c := newTestClient(t, handler)

	_, err := c.Submit(context.Background(), "X", "DE")
	require.Error(t, err)
}

// TestSubmit_UnexpectedStatus — коды кроме 200/201 это ошибка
// (транзиентная с точки зрения вызывающей стороны).
func TestSubmit_UnexpectedStatus(t *testing.T) {
	t.Parallel()

	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	c := newTestClient(t, handler)

	_, err := c.Submit(context.Background(), "X", "DE")
	require.Error(t, err)
}

// TestStatus — GET по uid с завершающим '/', декодирование статуса и
// текста перевода.
func TestStatus(t *testing.T) {
	t.Parallel()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/abc123/", r.URL.Path)
		require.Equal(t, "ApiKey user:shh", r.Header.Get("Authorization"))

		fmt.Fprint(w, `{"status":"completed","translatedText":"Y"}`)
	})

	c := newTestClient(t, handler)

	upd, err := c.Status(context.Background(), "abc123")
	require.NoError(t, err)
	require.Equal(t, &models.TranslationUpdate{
		Status:         models.RemoteStatusCompleted,
		TranslatedText: "Y",
	}, upd)
}

// TestStatus_InProgress — промежуточные статусы возвращаются как есть,
// решение об ожидании принимает вызывающая сторона.
func TestStatus_InProgress(t *testing.T) {
	t.Parallel()

	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"status":"translating"}`)
	})

	c := newTestClient(t, handler)

	upd, err := c.Status(context.Background(), "abc123")
	require.NoError(t, err)
	require.Equal(t, models.RemoteStatusTranslating, upd.Status)
	require.Empty(t, upd.TranslatedText)
}

// TestStatus_ServerError — не-200 от API это ошибка опроса.
func TestStatus_ServerError(t *testing.T) {
	t.Parallel()

	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	c := newTestClient(t, handler)

	_, err := c.Status(context.Background(), "abc123")
	require.Error(t, err)
}
