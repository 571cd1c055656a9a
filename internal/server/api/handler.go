// Package api реализует HTTP-слой сервера FinTracker.
//
// Пакет отвечает за:
//   - обработку входящих запросов и формирование ответов (JSON, статусы);
//   - валидацию тел запросов на границе (go-playground/validator);
//   - маппинг доменных ошибок (service/repository) в HTTP-коды и сообщения.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/IvanChernomyrdin/go-fintracker/internal/server/middleware"
	"github.com/IvanChernomyrdin/go-fintracker/internal/server/service"
	serr "github.com/IvanChernomyrdin/go-fintracker/internal/shared/errors"
	dto "github.com/IvanChernomyrdin/go-fintracker/internal/shared/models"
	"github.com/IvanChernomyrdin/go-fintracker/internal/shared/logger"
)

// Каждый метод если будет возвращать ответ то будет это делать в JSON
// Вынес Content-Type и JSON для удобства
const (
	JsonContentType string = "application/json"
	ContentType     string = "Content-Type"
)

// DefaultMaxBodyBytes — лимит тела запроса, если в конфиге не задан.
const DefaultMaxBodyBytes int64 = 1 << 20

// Handler агрегирует зависимости HTTP-слоя и предоставляет методы-хендлеры.
//
// Handler содержит:
//   - Svc: сервисный слой (бизнес-логика);
//   - Log: логгер для записи событий и ошибок;
//   - Verifier: аутентификация запросов и middleware авторизации.
//
// Методы Handler используются роутером для обработки HTTP-запросов.
type Handler struct {
	Svc      *service.Services
	Log      *logger.HTTPLogger
	Verifier *middleware.JWTVerifier

	maxBodyBytes int64
	validate     *validator.Validate
}

// NewHandler создаёт экземпляр Handler с переданными зависимостями.
//
// maxBodyBytes <= 0 означает DefaultMaxBodyBytes.
func NewHandler(svc *service.Services, log *logger.HTTPLogger, verifier *middleware.JWTVerifier, maxBodyBytes int64) *Handler {
	if maxBodyBytes <= 0 {
		maxBodyBytes = DefaultMaxBodyBytes
	}
	return &Handler{
		Svc:          svc,
		Log:          log,
		Verifier:     verifier,
		maxBodyBytes: maxBodyBytes,
		validate:     validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Вспомогательная функция вывода ошибки
func WriteError(w http.ResponseWriter, status int, err error) {
	w.Header().Set(ContentType, JsonContentType)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error: err.Error(),
	})
}

// WriteJSON отдаёт v с заданным статусом.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set(ContentType, JsonContentType)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decode читает JSON-тело (не больше maxBodyBytes) и валидирует его по тегам validate.
//
// Ошибки:
//   - ErrBadJSON — тело не читается как JSON нужной структуры;
//   - ErrInvalidInput — JSON корректен, но поля не прошли валидацию.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return serr.ErrBadJSON
	}
	if err := h.validate.Struct(dst); err != nil {
		var fields validator.ValidationErrors
		if errors.As(err, &fields) && len(fields) > 0 {
			names := make([]string, 0, len(fields))
			for _, f := range fields {
				names = append(names, strings.ToLower(f.Field()))
			}
			return fmt.Errorf("%w: %s", serr.ErrInvalidInput, strings.Join(names, ", "))
		}
		return serr.ErrInvalidInput
	}
	return nil
}

// internalError пишет причину в лог и отдаёт клиенту 500 без подробностей.
func (h *Handler) internalError(w http.ResponseWriter, msg string, err error, kv ...any) {
	h.Log.Logger.Sugar().Errorw(msg, append([]any{"error", err}, kv...)...)
	WriteError(w, http.StatusInternalServerError, serr.ErrInternal)
}
