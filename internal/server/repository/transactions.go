package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/IvanChernomyrdin/go-fintracker/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-fintracker/internal/shared/errors"
)

// TransactionsRepository реализует доступ к финансовым записям (PostgreSQL).
// Все операции ограничены владельцем: чужие записи не читаются и не пишутся.
type TransactionsRepository struct {
	db      *sql.DB
	timeout time.Duration
}

// NewTransactionsRepository создаёт новый экземпляр TransactionsRepository.
func NewTransactionsRepository(db *sql.DB, queryTimeout time.Duration) *TransactionsRepository {
	return &TransactionsRepository{db: db, timeout: queryTimeout}
}

// Create сохраняет запись пользователя ownerID.
// Сумма возвращается в том виде, в каком её сохранила база.
//
// Ошибки:
//   - ErrNotFound — владельца нет в users (нарушен внешний ключ)
//   - ErrInvalidInput — сумма не помещается в колонку amount
//   - ErrInternal — ошибка базы данных
func (r *TransactionsRepository) Create(ctx context.Context, ownerID uuid.UUID, in models.NewTransaction) (models.Transaction, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	tx := models.Transaction{
		UserID:   ownerID,
		Amount:   in.Amount,
		Kind:     in.Kind,
		Category: in.Category,
		Date:     in.Date,
		Note:     in.Note,
	}

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO transactions (user_id, amount, kind, category, date, note)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, amount, created_at
	`,
		ownerID,
		in.Amount,
		string(in.Kind),
		in.Category,
		in.Date,
		in.Note,
	).Scan(&tx.ID, &tx.Amount, &tx.CreatedAt)

	if err != nil {
		switch pgCode(err) {
		case pgForeignKeyViolation:
			return models.Transaction{}, serr.ErrNotFound
		case pgNumericOutOfRange:
			return models.Transaction{}, serr.ErrInvalidInput
		}
		return models.Transaction{}, serr.ErrInternal
	}

	return tx, nil
}

// ListByOwner возвращает все записи владельца в порядке добавления.
// Пагинации нет; при отсутствии записей возвращается пустой срез.
func (r *TransactionsRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Transaction, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, amount, kind, category, date, note, created_at
		FROM transactions
		WHERE user_id = $1
		ORDER BY created_at, id
	`, ownerID)
	if err != nil {
		return nil, serr.ErrInternal
	}
	defer rows.Close()

	result := make([]models.Transaction, 0)
	for rows.Next() {
		var (
			tx   models.Transaction
			kind string
			note sql.NullString
		)
		if err := rows.Scan(
			&tx.ID,
			&tx.UserID,
			&tx.Amount,
			&kind,
			&tx.Category,
			&tx.Date,
			&note,
			&tx.CreatedAt,
		); err != nil {
			return nil, serr.ErrInternal
		}
		tx.Kind = models.Kind(kind)
		if note.Valid {
			n := note.String
			tx.Note = &n
		}
		result = append(result, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, serr.ErrInternal
	}

	return result, nil
}
