// Package crypto содержит криптографические примитивы сервера FinTracker.
//
// В частности, пакет отвечает за:
//   - хэширование и проверку паролей (bcrypt, argon2id);
//   - выпуск и проверку JWT access-токенов (HS256).
//
// Токен подписан, но не зашифрован: claims читаются кем угодно,
// поэтому кроме идентификатора пользователя в них ничего не кладём.
package crypto

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	serr "github.com/IvanChernomyrdin/go-fintracker/internal/shared/errors"
)

// JWTConfig описывает параметры генерации JWT access-токена.
type JWTConfig struct {
	// Issuer — значение поля iss (кто выдал токен). Пустое значение не проверяется.
	Issuer string
	// Audience — значение поля aud (для кого предназначен токен). Пустое значение не проверяется.
	Audience string
	// SigningKey — секретный ключ для подписи токена (HS256).
	SigningKey string
	// AccessTTL — срок жизни токена; 0 означает токен без exp.
	AccessTTL time.Duration
}

// NewAccessToken создаёт и подписывает JWT access-токен для пользователя.
//
// Токен содержит стандартные RegisteredClaims:
//   - iss (Issuer), aud (Audience), если заданы
//   - sub (userID)
//   - iat (IssuedAt)
//   - exp (ExpiresAt), если AccessTTL > 0
func NewAccessToken(userID string, cfg JWTConfig) (string, error) {
	now := time.Now()

	claims := jwt.RegisteredClaims{
		Issuer:   cfg.Issuer,
		Subject:  userID,
		IssuedAt: jwt.NewNumericDate(now),
	}
	if cfg.Audience != "" {
		claims.Audience = jwt.ClaimStrings{cfg.Audience}
	}
	if cfg.AccessTTL > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(cfg.AccessTTL))
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(cfg.SigningKey))
}

// ParseAccessToken проверяет подпись и claims токена и возвращает subject.
//
// Любая проблема (подпись, формат, алгоритм, exp, iss, aud, пустой sub)
// возвращается как ErrInvalidToken с причиной внутри.
func ParseAccessToken(tokenStr string, cfg JWTConfig) (string, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithIssuedAt(),
		// без строгого base64 правка последнего символа подписи может остаться незамеченной
		jwt.WithStrictDecoding(),
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}
	if cfg.Audience != "" {
		opts = append(opts, jwt.WithAudience(cfg.Audience))
	}
	if cfg.AccessTTL > 0 {
		opts = append(opts, jwt.WithExpirationRequired())
	}

	claims := &jwt.RegisteredClaims{}
	_, err := jwt.NewParser(opts...).ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		return []byte(cfg.SigningKey), nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", serr.ErrInvalidToken, err)
	}

	sub := strings.TrimSpace(claims.Subject)
	if sub == "" {
		return "", fmt.Errorf("%w: empty subject", serr.ErrInvalidToken)
	}
	return sub, nil
}

// TokenService выпускает и проверяет токены с идентификатором пользователя.
//
// Ключ подписи загружается один раз при старте и не меняется за время жизни процесса.
type TokenService struct {
	cfg JWTConfig
}

// NewTokenService создаёт TokenService.
func NewTokenService(cfg JWTConfig) *TokenService {
	return &TokenService{cfg: cfg}
}

// Issue выпускает токен для пользователя.
func (s *TokenService) Issue(userID uuid.UUID) (string, error) {
	if userID == uuid.Nil {
		return "", serr.ErrUserIDEmpty
	}
	return NewAccessToken(userID.String(), s.cfg)
}

// Verify проверяет токен и возвращает идентификатор пользователя.
func (s *TokenService) Verify(token string) (uuid.UUID, error) {
	sub, err := ParseAccessToken(strings.TrimSpace(token), s.cfg)
	if err != nil {
		return uuid.Nil, err
	}
	id, err := uuid.Parse(sub)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, fmt.Errorf("%w: subject is not a user id", serr.ErrInvalidToken)
	}
	return id, nil
}
