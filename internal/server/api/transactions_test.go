package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/IvanChernomyrdin/go-fintracker/internal/server/api"
	"github.com/IvanChernomyrdin/go-fintracker/internal/server/middleware"
	"github.com/IvanChernomyrdin/go-fintracker/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-fintracker/internal/shared/errors"
	dto "github.com/IvanChernomyrdin/go-fintracker/internal/shared/models"
)

// запрос от имени userID, как после AuthMiddleware
func authedRequest(method, target string, body []byte, userID uuid.UUID) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	return req.WithContext(middleware.WithUserID(req.Context(), userID))
}

func TestParseDate(t *testing.T) {
	got, err := api.ParseDate("")
	require.NoError(t, err)
	require.True(t, got.IsZero())

	got, err = api.ParseDate("2024-03-01")
	require.NoError(t, err)
	require.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), got)

	got, err = api.ParseDate("2024-03-01T10:30:00+03:00")
	require.NoError(t, err)
	require.Equal(t, time.Date(2024, 3, 1, 7, 30, 0, 0, time.UTC), got)

	_, err = api.ParseDate("01.03.2024")
	require.ErrorIs(t, err, serr.ErrInvalidInput)
}

func TestHandler_CreateTransaction_Success(t *testing.T) {
	t.Parallel()

	h, d := NewTestHandler(t)
	userID := uuid.New()
	txID := uuid.New()

	d.txs.EXPECT().
		Create(gomock.Any(), userID, gomock.Any()).
		DoAndReturn(func(_ context.Context, owner uuid.UUID, in models.NewTransaction) (models.Transaction, error) {
			require.Equal(t, models.KindExpense, in.Kind)
			require.Equal(t, "food", in.Category)
			require.True(t, in.Amount.Equal(decimal.RequireFromString("-12.5")))
			require.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), in.Date)
			require.NotNil(t, in.Note)
			return models.Transaction{
				ID:       txID,
				UserID:   owner,
				Amount:   in.Amount,
				Kind:     in.Kind,
				Category: in.Category,
				Date:     in.Date,
				Note:     in.Note,
			}, nil
		})

	body := []byte(`{"amount":"-12.50","type":"expense","category":"food","date":"2024-01-15","note":"lunch"}`)
	rec := httptest.NewRecorder()
	h.CreateTransaction(rec, authedRequest(http.MethodPost, "/transactions", body, userID))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp dto.Transaction
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Equal(t, txID.String(), resp.ID)
	require.Equal(t, userID.String(), resp.UserID)
	require.Equal(t, "expense", resp.Type)
	require.Equal(t, "lunch", *resp.Note)
}

// сумма числом тоже принимается
func TestHandler_CreateTransaction_NumericAmount(t *testing.T) {
	t.Parallel()

	h, d := NewTestHandler(t)
	userID := uuid.New()

	d.txs.EXPECT().
		Create(gomock.Any(), userID, gomock.Any()).
		DoAndReturn(func(_ context.Context, owner uuid.UUID, in models.NewTransaction) (models.Transaction, error) {
			require.True(t, in.Amount.Equal(decimal.NewFromInt(1500)))
			return models.Transaction{ID: uuid.New(), UserID: owner, Amount: in.Amount, Kind: in.Kind}, nil
		})

	body := []byte(`{"amount":1500,"type":"income","category":"salary"}`)
	rec := httptest.NewRecorder()
	h.CreateTransaction(rec, authedRequest(http.MethodPost, "/transactions", body, userID))

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestHandler_CreateTransaction_BadInput(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"bad json":      `{"amount":`,
		"bad type":      `{"amount":1,"type":"transfer"}`,
		"missing type":  `{"amount":1}`,
		"bad date":      `{"amount":1,"type":"income","date":"15/01/2024"}`,
		"bad amount":    `{"amount":"abc","type":"income"}`,
		"huge exponent": `{"amount":"1e50000000","type":"income"}`,
		"too large":     `{"amount":"12345678901234567","type":"income"}`,
		"too precise":   `{"amount":0.12345,"type":"income"}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			h, _ := NewTestHandler(t)
			rec := httptest.NewRecorder()
			h.CreateTransaction(rec, authedRequest(http.MethodPost, "/transactions", []byte(body), uuid.New()))
			require.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestHandler_CreateTransaction_NoUser(t *testing.T) {
	t.Parallel()

	h, _ := NewTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/transactions", bytes.NewBufferString(`{"amount":1,"type":"income"}`))
	rec := httptest.NewRecorder()
	h.CreateTransaction(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

// токен валиден, но пользователя уже нет
func TestHandler_CreateTransaction_OwnerGone(t *testing.T) {
	t.Parallel()

	h, d := NewTestHandler(t)

	d.txs.EXPECT().
		Create(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(models.Transaction{}, serr.ErrNotFound)

	rec := httptest.NewRecorder()
	h.CreateTransaction(rec, authedRequest(http.MethodPost, "/transactions", []byte(`{"amount":1,"type":"income"}`), uuid.New()))

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandler_CreateTransaction_InternalError(t *testing.T) {
	t.Parallel()

	h, d := NewTestHandler(t)

	d.txs.EXPECT().
		Create(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(models.Transaction{}, errors.New("db is down"))

	rec := httptest.NewRecorder()
	h.CreateTransaction(rec, authedRequest(http.MethodPost, "/transactions", []byte(`{"amount":1,"type":"income"}`), uuid.New()))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, serr.ErrInternal.Error(), decodeError(t, rec))
}

func TestHandler_ListTransactions(t *testing.T) {
	t.Parallel()

	h, d := NewTestHandler(t)
	userID := uuid.New()

	d.txs.EXPECT().
		ListByOwner(gomock.Any(), userID).
		Return([]models.Transaction{
			{ID: uuid.New(), UserID: userID, Amount: decimal.NewFromInt(10), Kind: models.KindIncome},
			{ID: uuid.New(), UserID: userID, Amount: decimal.NewFromInt(-3), Kind: models.KindExpense},
		}, nil)

	rec := httptest.NewRecorder()
	h.ListTransactions(rec, authedRequest(http.MethodGet, "/transactions", nil, userID))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp []dto.Transaction
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp, 2)
	require.Equal(t, "income", resp[0].Type)
	require.Equal(t, "expense", resp[1].Type)
}

// пустой список отдаётся как [], а не null
func TestHandler_ListTransactions_Empty(t *testing.T) {
	t.Parallel()

	h, d := NewTestHandler(t)
	userID := uuid.New()

	d.txs.EXPECT().ListByOwner(gomock.Any(), userID).Return([]models.Transaction{}, nil)

	rec := httptest.NewRecorder()
	h.ListTransactions(rec, authedRequest(http.MethodGet, "/transactions", nil, userID))

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `[]`, rec.Body.String())
}

func TestHandler_ListTransactions_InternalError(t *testing.T) {
	t.Parallel()

	h, d := NewTestHandler(t)

	d.txs.EXPECT().ListByOwner(gomock.Any(), gomock.Any()).Return(nil, serr.ErrInternal)

	rec := httptest.NewRecorder()
	h.ListTransactions(rec, authedRequest(http.MethodGet, "/transactions", nil, uuid.New()))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHandler_Ping(t *testing.T) {
	t.Parallel()

	h, d := NewTestHandler(t)

	d.health.EXPECT().Ping(gomock.Any()).Return(nil)
	rec := httptest.NewRecorder()
	h.Ping(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	d.health.EXPECT().Ping(gomock.Any()).Return(serr.ErrStoreUnavailable)
	rec = httptest.NewRecorder()
	h.Ping(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
