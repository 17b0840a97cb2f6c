package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

var (
	// ErrNotFound — бэкенд ответил 404
	ErrNotFound = errors.New("resource not found")
	// ErrUnexpectedStatus — любой другой неуспешный HTTP-статус
	ErrUnexpectedStatus = errors.New("unexpected status")
)

// StatusError несёт путь и код ответа, errors.Is сопоставляет его с ErrNotFound / ErrUnexpectedStatus
type StatusError struct {
	Path   string
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: HTTP %d: %s", e.Path, e.Status, e.Body)
}

func (e *StatusError) Is(target error) bool {
	if e.Status == http.StatusNotFound {
		return target == ErrNotFound
	}
	return target == ErrUnexpectedStatus
}

// Client — обёртка над http.Client для REST API бэкенда (только GET, без авторизации)
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

// NewClient создаёт клиент для бэкенда с указанным базовым адресом и таймаутом
func NewClient(baseURL string, timeout time.Duration, log *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// BaseURL возвращает базовый адрес бэкенда
func (c *Client) BaseURL() string { return c.baseURL }

func (c *Client) get(ctx context.Context, path string, result any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request GET %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("GET %s: read body: %w", path, err)
	}
	// любой статус вне 2xx считаем ошибкой
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{Path: path, Status: resp.StatusCode, Body: strings.TrimSpace(string(data))}
	}

	if err := json.Unmarshal(data, result); err != nil {
		return fmt.Errorf("GET %s: decode: %w", path, err)
	}
	return nil
}
