package service

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/IvanChernomyrdin/go-fintracker/internal/server/crypto"
	"github.com/IvanChernomyrdin/go-fintracker/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-fintracker/internal/shared/errors"
)

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// минимальная длина пароля
const minPasswordLen = 8

// AuthService реализует регистрацию и вход пользователей.
//
// Ответственность:
//   - нормализация и валидация учётных данных
//   - хэширование и проверка паролей
//   - выпуск токена после успешного входа
type AuthService struct {
	users  UsersRepo
	hasher crypto.PasswordHasher
	tokens TokenIssuer
}

// NewAuthService создаёт AuthService с внедрёнными зависимостями.
func NewAuthService(users UsersRepo, hasher crypto.PasswordHasher, tokens TokenIssuer) *AuthService {
	return &AuthService{
		users:  users,
		hasher: hasher,
		tokens: tokens,
	}
}

// NormalizeEmail приводит email к виду, в котором он хранится.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register регистрирует нового пользователя.
//
// Валидация:
//   - имя обязательно
//   - email обязателен и должен быть валидным
//   - пароль обязателен и длиной >= 8 символов
//
// Ошибки:
//   - ErrInvalidInput при некорректных данных
//   - ErrAlreadyExists если email уже зарегистрирован
//   - ErrInternal при сбое хэширования или хранилища
func (s *AuthService) Register(ctx context.Context, name, email, password string) (models.User, error) {
	name = strings.TrimSpace(name)
	email = NormalizeEmail(email)

	if name == "" || !emailRe.MatchString(email) || len(strings.TrimSpace(password)) < minPasswordLen {
		return models.User{}, serr.ErrInvalidInput
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		if errors.Is(err, serr.ErrInvalidInput) {
			return models.User{}, serr.ErrInvalidInput
		}
		return models.User{}, serr.ErrInternal
	}
	return s.users.Create(ctx, name, email, hash)
}

// Login проверяет пароль и выдаёт токен.
//
// Ошибки:
//   - ErrInvalidInput — пустые поля
//   - ErrUserNotFound — email не зарегистрирован
//   - ErrInvalidCredentials — пароль не подошёл
//   - ErrInternal — сбой хранилища или подписи токена
func (s *AuthService) Login(ctx context.Context, email, password string) (string, models.User, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return "", models.User{}, serr.ErrInvalidInput
	}
	// получаем юзера по email
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			return "", models.User{}, serr.ErrUserNotFound
		}
		return "", models.User{}, err
	}
	// проверяем пароль
	if !s.hasher.Verify(password, user.PasswordHash) {
		return "", models.User{}, serr.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", models.User{}, serr.ErrInternal
	}

	return token, user, nil
}
