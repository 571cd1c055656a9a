// Package api содержит HTTP-клиент для взаимодействия с сервером FinTracker.
//
// Клиент построен на go-resty/resty: базовый URL, таймаут и заголовок Accept
// задаются один раз при создании, а методы клиента отправляют JSON-запросы
// с авторизацией через Bearer токен.
//
// Особенности:
//   - baseURL нормализуется (обрезаются завершающие "/").
//   - Ответ не 2xx превращается в *APIError с текстом поля error из тела ответа
//     (если тело не JSON, используется сырой текст или статус).
//   - Ответ 401 разворачивается в serr.ErrUnauthorized, 400 в serr.ErrInvalidInput.
//
// ВНИМАНИЕ: флаг insecure отключает проверку TLS-сертификата.
// Допустимо только для локальной разработки с самоподписанным сертификатом.
package api

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	serr "github.com/IvanChernomyrdin/go-fintracker/internal/shared/errors"
	dto "github.com/IvanChernomyrdin/go-fintracker/internal/shared/models"
)

// DefaultTimeout таймаут одного запроса к серверу.
const DefaultTimeout = 10 * time.Second

// Client реализует HTTP-клиент для общения с сервером FinTracker.
type Client struct {
	baseURL string
	http    *resty.Client
}

// NewClient создаёт новый клиент сервера.
//
// Параметры:
//   - baseURL: базовый адрес сервера (например: "http://127.0.0.1:5000");
//   - insecure: отключить проверку TLS-сертификата сервера.
func NewClient(baseURL string, insecure bool) *Client {
	baseURL = strings.TrimRight(baseURL, "/")

	rc := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(DefaultTimeout).
		SetHeader("Accept", "application/json")
	if insecure {
		rc.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true}) // только для dev
	}

	return &Client{baseURL: baseURL, http: rc}
}

// BaseURL возвращает нормализованный адрес сервера.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// APIError ошибка, которую вернул сервер.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server responded %d: %s", e.StatusCode, e.Message)
}

// Unwrap позволяет проверять ответ через errors.Is.
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusUnauthorized:
		return serr.ErrUnauthorized
	case http.StatusBadRequest:
		return serr.ErrInvalidInput
	case http.StatusServiceUnavailable:
		return serr.ErrStoreUnavailable
	default:
		return nil
	}
}

// request готовит запрос: контекст, Accept и, если есть, Bearer токен.
func (c *Client) request(ctx context.Context, token string) *resty.Request {
	r := c.http.R().SetContext(ctx).SetError(&dto.ErrorResponse{})
	if token != "" {
		r.SetAuthToken(token)
	}
	return r
}

// checkResponse переводит ответ не 2xx в *APIError.
func checkResponse(res *resty.Response, err error) error {
	if err != nil {
		return err
	}
	if !res.IsError() {
		return nil
	}

	msg := ""
	if e, ok := res.Error().(*dto.ErrorResponse); ok && e != nil {
		msg = e.Error
	}
	if msg == "" {
		msg = strings.TrimSpace(res.String())
	}
	if msg == "" {
		msg = res.Status()
	}
	return &APIError{StatusCode: res.StatusCode(), Message: msg}
}
