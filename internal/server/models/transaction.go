package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Kind — вид операции: доход или расход.
type Kind string

const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
)

// Valid сообщает, входит ли значение в перечисление.
func (k Kind) Valid() bool {
	return k == KindIncome || k == KindExpense
}

// Пределы суммы совпадают с колонкой NUMERIC(20,4).
const (
	AmountScale        = 4
	AmountMaxIntDigits = 16
)

// Экспонента и разрядность проверяются до любых вычислений:
// "1e50000000" занимает несколько байт, но разворачивается в 50 млн цифр.
const (
	amountMinExponent = -38
	amountMaxBits     = 128
)

var amountLimit = decimal.New(1, AmountMaxIntDigits)

// ValidAmount сообщает, помещается ли сумма в хранилище без округления:
// не больше AmountMaxIntDigits цифр целой части и AmountScale знаков после точки.
func ValidAmount(d decimal.Decimal) bool {
	if d.IsZero() {
		return true
	}
	exp := d.Exponent()
	if exp > AmountMaxIntDigits || exp < amountMinExponent || d.Coefficient().BitLen() > amountMaxBits {
		return false
	}
	return d.Abs().LessThan(amountLimit) && d.Equal(d.Truncate(AmountScale))
}

// Transaction — финансовая запись пользователя.
//
// Знак Amount с Kind не сверяется: доход можно сохранить отрицательным.
type Transaction struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Amount    decimal.Decimal
	Kind      Kind
	Category  string
	Date      time.Time
	Note      *string
	CreatedAt time.Time
}

// NewTransaction — данные для создания записи, владелец передаётся отдельно.
type NewTransaction struct {
	Amount   decimal.Decimal
	Kind     Kind
	Category string
	Date     time.Time
	Note     *string
}
