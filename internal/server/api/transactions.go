package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/IvanChernomyrdin/go-fintracker/internal/server/middleware"
	"github.com/IvanChernomyrdin/go-fintracker/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-fintracker/internal/shared/errors"
	dto "github.com/IvanChernomyrdin/go-fintracker/internal/shared/models"
)

// DateLayout — короткий формат даты, принимаемый наряду с RFC 3339.
const DateLayout = "2006-01-02"

// ParseDate разбирает дату записи.
// Пустая строка даёт нулевое время (сервис подставит текущее).
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	return time.Time{}, serr.ErrInvalidInput
}

func toTransactionDTO(tx models.Transaction) dto.Transaction {
	return dto.Transaction{
		ID:        tx.ID.String(),
		UserID:    tx.UserID.String(),
		Amount:    tx.Amount,
		Type:      string(tx.Kind),
		Category:  tx.Category,
		Date:      tx.Date,
		Note:      tx.Note,
		CreatedAt: tx.CreatedAt,
	}
}

// CreateTransaction создаёт запись о доходе или расходе для аутентифицированного пользователя.
//
// Требует JWT-аутентификацию.
//
// Возможные ошибки:
//   - ErrBadJSON, ErrInvalidInput — неверные поля запроса;
//   - ErrUnauthorized — пользователь не аутентифицирован или уже не существует;
//   - ErrInternal — внутренняя ошибка сервера.
//
// @Summary      Create transaction
// @Description  Records an income or expense for the authenticated user.
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateTransactionRequest true "Create transaction request"
// @Success      200 {object} dto.Transaction
// @Failure      400 {object} dto.ErrorResponse "Invalid input or bad JSON"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /transactions [post]
func (h *Handler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, serr.ErrUnauthorized)
		return
	}

	var req dto.CreateTransactionRequest
	if err := h.decode(w, r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, err)
		return
	}

	// сумма должна помещаться в NUMERIC(20,4) без округления
	if !models.ValidAmount(req.Amount) {
		WriteError(w, http.StatusBadRequest, fmt.Errorf("%w: amount", serr.ErrInvalidInput))
		return
	}

	date, err := ParseDate(req.Date)
	if err != nil {
		WriteError(w, http.StatusBadRequest, serr.ErrInvalidInput)
		return
	}

	tx, err := h.Svc.Transactions.Create(r.Context(), userID, models.NewTransaction{
		Amount:   req.Amount,
		Kind:     models.Kind(req.Type),
		Category: req.Category,
		Date:     date,
		Note:     req.Note,
	})
	if err != nil {
		switch {
		case errors.Is(err, serr.ErrInvalidInput):
			WriteError(w, http.StatusBadRequest, serr.ErrInvalidInput)
		case errors.Is(err, serr.ErrNotFound), errors.Is(err, serr.ErrUserIDEmpty):
			// токен валиден, но владельца уже нет
			WriteError(w, http.StatusUnauthorized, serr.ErrUnauthorized)
		default:
			h.internalError(w, "create transaction failed", err, "user_id", userID.String())
		}
		return
	}

	WriteJSON(w, http.StatusOK, toTransactionDTO(tx))
}

// ListTransactions возвращает все записи текущего пользователя.
//
// Пользователь определяется по JWT-токену (middleware). Пагинации нет.
//
// @Summary      List transactions
// @Description  Returns every transaction of the authenticated user in insertion order.
// @Tags         transactions
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.Transaction
// @Failure      401 {object} dto.ErrorResponse "Unauthorized"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /transactions [get]
func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, serr.ErrUnauthorized)
		return
	}

	txs, err := h.Svc.Transactions.List(r.Context(), userID)
	if err != nil {
		h.internalError(w, "list transactions failed", err, "user_id", userID.String())
		return
	}

	resp := make([]dto.Transaction, 0, len(txs))
	for _, tx := range txs {
		resp = append(resp, toTransactionDTO(tx))
	}
	WriteJSON(w, http.StatusOK, resp)
}
