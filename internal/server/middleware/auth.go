// Package middleware содержит HTTP middleware сервера.
package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"

	serr "github.com/IvanChernomyrdin/go-fintracker/internal/shared/errors"
	"github.com/IvanChernomyrdin/go-fintracker/internal/shared/models"
)

// ctxKey используется как тип ключа для хранения значений в context.Context.
// Отдельный тип предотвращает коллизии ключей между пакетами.
type ctxKey string

// userIDKey — ключ контекста, под которым хранится ID аутентифицированного пользователя.
const userIDKey ctxKey = "user_id"

// TokenVerifier проверяет токен и возвращает ID пользователя (реализует crypto.TokenService).
type TokenVerifier interface {
	Verify(token string) (uuid.UUID, error)
}

// JWTVerifier аутентифицирует запросы по access-токену.
//
// Токен всегда читается из одного места: заголовка Authorization: Bearer <token>.
type JWTVerifier struct {
	tokens TokenVerifier
}

// NewJWTVerifier создаёт новый JWTVerifier.
func NewJWTVerifier(tokens TokenVerifier) *JWTVerifier {
	return &JWTVerifier{tokens: tokens}
}

// Authenticate извлекает токен из запроса и возвращает ID пользователя.
//
// Любая ошибка (нет заголовка, не Bearer, токен не прошёл проверку)
// сворачивается в ErrUnauthorized.
func (v *JWTVerifier) Authenticate(r *http.Request) (uuid.UUID, error) {
	tokenStr := ExtractBearer(r.Header.Get("Authorization"))
	if tokenStr == "" {
		return uuid.Nil, serr.ErrUnauthorized
	}
	userID, err := v.tokens.Verify(tokenStr)
	if err != nil {
		return uuid.Nil, serr.ErrUnauthorized
	}
	return userID, nil
}

// WithUserID кладёт ID пользователя в контекст.
func WithUserID(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromContext извлекает userID аутентифицированного пользователя из контекста.
//
// Возвращает:
//   - userID
//   - false, если пользователь не аутентифицирован
func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userIDKey).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}

// AuthMiddleware возвращает HTTP middleware для защищённых маршрутов.
//
// Middleware:
//   - вызывает Authenticate
//   - сохраняет userID в context.Context
//
// В случае ошибки отвечает 401 {"error":"unauthorized"} и дальше запрос не пускает.
func (v *JWTVerifier) AuthMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := v.Authenticate(r)
			if err != nil {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(models.ErrorResponse{Error: serr.ErrUnauthorized.Error()})
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}

// ExtractBearer извлекает JWT из заголовка Authorization.
//
// Ожидаемый формат:
//
//	Authorization: Bearer <token>
//
// Возвращает пустую строку, если формат некорректен.
func ExtractBearer(h string) string {
	h = strings.TrimSpace(h)
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
