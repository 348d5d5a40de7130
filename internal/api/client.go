// Package api предоставляет клиент удалённого REST API прачечной.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultTimeout ограничивает время одного запроса к API.
const DefaultTimeout = 10 * time.Second

// Handler отправляет подготовленный запрос и возвращает ответ API.
type Handler func(req *http.Request) (*http.Response, error)

// Middleware оборачивает Handler. Первый зарегистрированный middleware выполняется первым.
type Middleware func(next Handler) Handler

// Client инкапсулирует HTTP-взаимодействие с API прачечной.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	middlewares []Middleware
}

// Option настраивает Client.
type Option func(*Client)

// WithHTTPClient задаёт собственный *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout задаёт таймаут запросов.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient = &http.Client{Timeout: d}
	}
}

// WithMiddleware добавляет middleware в конвейер клиента.
func WithMiddleware(mws ...Middleware) Option {
	return func(c *Client) {
		c.middlewares = append(c.middlewares, mws...)
	}
}

// NewClient создаёт клиент API по указанному базовому адресу.
// Заголовки JSON добавляются всегда и идут первыми в конвейере.
func NewClient(baseURL string, opts ...Option) *Client {
	base := strings.TrimRight(baseURL, "/")
	if base != "" && !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "http://" + base
	}

	c := &Client{
		baseURL: base,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		middlewares: []Middleware{JSONHeaders()},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// With возвращает копию клиента с дополнительными middleware в конце конвейера.
// Исходный клиент не меняется, поэтому его можно разделять между запросами.
func (c *Client) With(mws ...Middleware) *Client {
	cp := *c
	cp.middlewares = make([]Middleware, 0, len(c.middlewares)+len(mws))
	cp.middlewares = append(cp.middlewares, c.middlewares...)
	cp.middlewares = append(cp.middlewares, mws...)
	return &cp
}

// BaseURL возвращает базовый адрес API.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Get выполняет GET-запрос и декодирует ответ в out.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.Do(ctx, http.MethodGet, path, query, nil, out)
}

// Post выполняет POST-запрос.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPost, path, nil, body, out)
}

// Put выполняет PUT-запрос.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPut, path, nil, body, out)
}

// Patch выполняет PATCH-запрос.
func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPatch, path, nil, body, out)
}

// Delete выполняет DELETE-запрос.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.Do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// Do отправляет запрос через конвейер middleware. Ответ со статусом вне 2xx
// возвращается как *Error; ответ 2xx декодируется в out, если out не nil.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	if c == nil || c.baseURL == "" {
		return fmt.Errorf("api client not configured")
	}

	target := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.chain()(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newError(resp.StatusCode, data)
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	if err := decode(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) chain() Handler {
	h := Handler(c.httpClient.Do)
	for i := len(c.middlewares) - 1; i >= 0; i-- {
		h = c.middlewares[i](h)
	}
	return h
}

// decode снимает конверт {"data": ...}, если API его прислал.
func decode(data []byte, out any) error {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(data, &envelope); err == nil {
		if inner, ok := envelope["data"]; ok {
			return json.Unmarshal(inner, out)
		}
	}
	return json.Unmarshal(data, out)
}

var (
	// ErrUnauthorized соответствует ответу 401.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotFound соответствует ответу 404.
	ErrNotFound = errors.New("not found")
)

// Error описывает ответ API со статусом вне 2xx.
type Error struct {
	StatusCode int
	Message    string
}

func newError(status int, body []byte) *Error {
	e := &Error{StatusCode: status}

	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		e.Message = payload.Message
		if e.Message == "" {
			e.Message = payload.Error
		}
	}
	return e
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api status %d", e.StatusCode)
}

// Is сопоставляет ошибку с ErrUnauthorized и ErrNotFound по статусу.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	}
	return false
}

// ClientError сообщает, что запрос отклонён как некорректный (4xx, кроме 401).
func (e *Error) ClientError() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500 && e.StatusCode != http.StatusUnauthorized
}

// MessageOf возвращает текст ошибки валидации из ответа API или fallback.
func MessageOf(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.ClientError() && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
