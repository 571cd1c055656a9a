// Package service содержит бизнес-логику приложения (fintracker).
// Это прослойка между HTTP-обработчиками (api) и хранилищем данных (repository).
package service

//go:generate mockgen -destination=mocks/mocks.go -package=mocks . UsersRepo,TransactionsRepo,HealthRepo

import (
	"context"

	"github.com/google/uuid"

	"github.com/IvanChernomyrdin/go-fintracker/internal/server/crypto"
	"github.com/IvanChernomyrdin/go-fintracker/internal/server/models"
)

// Repositories — набор интерфейсов, которые сервисный слой ожидает от слоя repository.
type Repositories struct {
	Users        UsersRepo
	Transactions TransactionsRepo
	Health       HealthRepo
}

// Services — агрегатор всех сервисов приложения.
type Services struct {
	Auth         *AuthService
	Transactions *TransactionsService
	Health       HealthRepo
}

// NewServices собирает все сервисы приложения.
// hasher и tokens создаются один раз при старте из конфига.
func NewServices(repos Repositories, hasher crypto.PasswordHasher, tokens TokenIssuer) *Services {
	return &Services{
		Auth:         NewAuthService(repos.Users, hasher, tokens),
		Transactions: NewTransactionsService(repos.Transactions),
		Health:       repos.Health,
	}
}

// HealthRepo — минимально нужное для health-check.
type HealthRepo interface {
	Ping(ctx context.Context) error
}

// UsersRepo — репозиторий пользователей (нужен для register/login).
type UsersRepo interface {
	Create(ctx context.Context, name, email, passwordHash string) (models.User, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
}

// TransactionsRepo — репозиторий финансовых записей, всегда в разрезе владельца.
type TransactionsRepo interface {
	Create(ctx context.Context, ownerID uuid.UUID, tx models.NewTransaction) (models.Transaction, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Transaction, error)
}

// TokenIssuer выпускает токен для пользователя (реализует crypto.TokenService).
type TokenIssuer interface {
	Issue(userID uuid.UUID) (string, error)
}
