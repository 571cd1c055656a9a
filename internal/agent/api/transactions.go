package api

import (
	"context"

	dto "github.com/IvanChernomyrdin/go-fintracker/internal/shared/models"
)

// CreateTransaction создаёт запись о доходе или расходе от имени владельца токена.
func (c *Client) CreateTransaction(ctx context.Context, token string, req dto.CreateTransactionRequest) (dto.Transaction, error) {
	var tx dto.Transaction
	res, err := c.request(ctx, token).
		SetBody(req).
		SetResult(&tx).
		Post("/transactions")
	if err := checkResponse(res, err); err != nil {
		return dto.Transaction{}, err
	}
	return tx, nil
}

// ListTransactions возвращает все записи владельца токена в порядке добавления.
func (c *Client) ListTransactions(ctx context.Context, token string) ([]dto.Transaction, error) {
	txs := make([]dto.Transaction, 0)
	res, err := c.request(ctx, token).
		SetResult(&txs).
		Get("/transactions")
	if err := checkResponse(res, err); err != nil {
		return nil, err
	}
	return txs, nil
}
