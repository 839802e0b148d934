// Package unbabel — клиент внешнего API переводов (sandbox-режим).
//
// Жизненный цикл удалённой задачи асинхронный: Submit создаёт job и
// возвращает uid, дальше статус опрашивается через Status до completed
// (new -> accepted -> translating -> completed).
package unbabel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/pribylovaa/hackerbabel/internal/config"
	"github.com/pribylovaa/hackerbabel/internal/models"
)

// Client — HTTP-клиент API переводов.
type Client struct {
	baseURL  string
	username string
	secret   string
	httpc    *http.Client
}

// New создаёт клиент по конфигурации.
func New(cfg *config.Config) *Client {
	base := cfg.Unbabel.BaseURL
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}

	return &Client{
		baseURL:  base,
		username: cfg.Unbabel.Username,
		secret:   cfg.Unbabel.Secret,
		httpc:    &http.Client{Timeout: cfg.Unbabel.Timeout},
	}
}

// submitRequest — тело запроса на создание перевода.
type submitRequest struct {
	Text           string `json:"text"`
	TargetLanguage string `json:"target_language"`
}

// submitResponse — ответ на создание перевода.
type submitResponse struct {
	UID string `json:"uid"`
}

// Submit создаёт удалённую задачу перевода и возвращает её uid.
// Принятым считается ответ 200/201; остальные коды — ошибка (транзиентная
// с точки зрения вызывающей стороны, повторы — её политика).
func (c *Client) Submit(ctx context.Context, text, targetLang string) (string, error) {
	const op = "unbabel/Submit"

	body, err := json.Marshal(submitRequest{
		Text:           text,
		TargetLanguage: strings.ToLower(targetLang),
	})
	if err != nil {
		return "", fmt.Errorf("%s: marshal: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%s: new request: %w", op, err)
	}
	c.setHeaders(req)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("%s: do request: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("%s: unexpected status %d", op, resp.StatusCode)
	}

	var out submitResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%s: decode: %w", op, err)
	}

	if out.UID == "" {
		return "", fmt.Errorf("%s: empty uid in response", op)
	}

	return out.UID, nil
}

// Status возвращает текущее состояние удалённой задачи по её uid.
func (c *Client) Status(ctx context.Context, uid string) (*models.TranslationUpdate, error) {
	const op = "unbabel/Status"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+uid+"/", nil)
	if err != nil {
		return nil, fmt.Errorf("%s: new request: %w", op, err)
	}
	c.setHeaders(req)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: do request: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: unexpected status %d", op, resp.StatusCode)
	}

	var out models.TranslationUpdate
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%s: decode: %w", op, err)
	}

	return &out, nil
}

// setHeaders выставляет авторизацию и тип содержимого API.
func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", fmt.Sprintf("ApiKey %s:%s", c.username, c.secret))
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
}
