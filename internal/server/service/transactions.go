package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/IvanChernomyrdin/go-fintracker/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-fintracker/internal/shared/errors"
	"github.com/IvanChernomyrdin/go-fintracker/internal/shared/utils"
)

// TransactionsService реализует бизнес-логику работы с доходами и расходами.
// Сервис:
//   - валидирует входные данные;
//   - всегда работает от имени владельца, переданного из middleware;
//   - не знает о HTTP и БД напрямую.
type TransactionsService struct {
	repo TransactionsRepo
	now  func() time.Time
}

// NewTransactionsService создаёт новый TransactionsService.
func NewTransactionsService(repo TransactionsRepo) *TransactionsService {
	return &TransactionsService{
		repo: repo,
		now:  time.Now,
	}
}

// Create создаёт запись для ownerID.
//
// Знак суммы с видом операции не сверяется.
// Нулевая дата заменяется текущим временем.
//
// Ошибки:
//   - ErrUserIDEmpty — пустой владелец;
//   - ErrInvalidInput — вид операции не income/expense или сумма вне NUMERIC(20,4);
//   - ErrNotFound — владельца нет в хранилище;
//   - ErrInternal — ошибка хранилища.
func (s *TransactionsService) Create(ctx context.Context, ownerID uuid.UUID, in models.NewTransaction) (models.Transaction, error) {
	if ownerID == uuid.Nil {
		return models.Transaction{}, serr.ErrUserIDEmpty
	}

	in.Kind = models.Kind(strings.ToLower(strings.TrimSpace(string(in.Kind))))
	if !in.Kind.Valid() {
		return models.Transaction{}, serr.ErrInvalidInput
	}

	if !models.ValidAmount(in.Amount) {
		return models.Transaction{}, serr.ErrInvalidInput
	}

	in.Category = strings.TrimSpace(in.Category)
	if in.Date.IsZero() {
		in.Date = s.now().UTC()
	}
	if in.Note != nil {
		in.Note = utils.NilIfBlank(*in.Note)
	}

	return s.repo.Create(ctx, ownerID, in)
}

// List возвращает все записи владельца.
func (s *TransactionsService) List(ctx context.Context, ownerID uuid.UUID) ([]models.Transaction, error) {
	if ownerID == uuid.Nil {
		return nil, serr.ErrUserIDEmpty
	}
	return s.repo.ListByOwner(ctx, ownerID)
}
