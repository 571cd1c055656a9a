// Package memory — потокобезопасное in-memory хранилище пользователей и записей.
//
// Используется при storage: memory (локальный запуск без PostgreSQL) и в тестах.
// Поведение повторяет PostgreSQL-репозитории: уникальный email,
// проверка владельца при создании записи, порядок добавления при чтении.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/IvanChernomyrdin/go-fintracker/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-fintracker/internal/shared/errors"
)

// Store хранит состояние под одним RWMutex.
type Store struct {
	mu      sync.RWMutex
	users   map[uuid.UUID]models.User
	byEmail map[string]uuid.UUID
	// записи в порядке добавления
	txs []models.Transaction

	now func() time.Time
}

// NewStore создаёт пустое хранилище.
func NewStore() *Store {
	return &Store{
		users:   make(map[uuid.UUID]models.User),
		byEmail: make(map[string]uuid.UUID),
		now:     time.Now,
	}
}

// Users возвращает Credential Store поверх хранилища.
func (s *Store) Users() *UsersRepository {
	return &UsersRepository{s: s}
}

// Transactions возвращает Transaction Repository поверх хранилища.
func (s *Store) Transactions() *TransactionsRepository {
	return &TransactionsRepository{s: s}
}

// UsersRepository — in-memory реализация хранилища пользователей.
type UsersRepository struct {
	s *Store
}

// Create добавляет пользователя; email уже должен быть нормализован сервисом.
func (r *UsersRepository) Create(ctx context.Context, name, email, passwordHash string) (models.User, error) {
	if err := ctx.Err(); err != nil {
		return models.User{}, serr.ErrInternal
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.byEmail[email]; ok {
		return models.User{}, serr.ErrAlreadyExists
	}

	u := models.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    r.s.now().UTC(),
	}
	r.s.users[u.ID] = u
	r.s.byEmail[email] = u.ID
	return u, nil
}

// GetByEmail ищет пользователя по email.
func (r *UsersRepository) GetByEmail(ctx context.Context, email string) (models.User, error) {
	if err := ctx.Err(); err != nil {
		return models.User{}, serr.ErrInternal
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	id, ok := r.s.byEmail[email]
	if !ok {
		return models.User{}, serr.ErrNotFound
	}
	return r.s.users[id], nil
}

// Ping всегда успешен.
func (r *UsersRepository) Ping(ctx context.Context) error {
	return nil
}

// Count возвращает число пользователей с данным email (0 или 1).
func (r *UsersRepository) Count(email string) int {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	n := 0
	for _, u := range r.s.users {
		if u.Email == email {
			n++
		}
	}
	return n
}

// TransactionsRepository — in-memory реализация хранилища записей.
type TransactionsRepository struct {
	s *Store
}

// Create сохраняет запись; владелец должен существовать.
func (r *TransactionsRepository) Create(ctx context.Context, ownerID uuid.UUID, in models.NewTransaction) (models.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return models.Transaction{}, serr.ErrInternal
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[ownerID]; !ok {
		return models.Transaction{}, serr.ErrNotFound
	}

	tx := models.Transaction{
		ID:        uuid.New(),
		UserID:    ownerID,
		Amount:    in.Amount,
		Kind:      in.Kind,
		Category:  in.Category,
		Date:      in.Date,
		Note:      copyStr(in.Note),
		CreatedAt: r.s.now().UTC(),
	}
	r.s.txs = append(r.s.txs, tx)
	tx.Note = copyStr(tx.Note)
	return tx, nil
}

// ListByOwner возвращает копии записей владельца в порядке добавления.
func (r *TransactionsRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, serr.ErrInternal
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	result := make([]models.Transaction, 0)
	for _, tx := range r.s.txs {
		if tx.UserID == ownerID {
			tx.Note = copyStr(tx.Note)
			result = append(result, tx)
		}
	}
	return result, nil
}

func copyStr(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
