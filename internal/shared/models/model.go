// Package models содержит контракт HTTP API, общий для сервера и CLI-клиента.
//
// Структуры запросов размечены тегами validate (go-playground/validator),
// сервер проверяет их на границе до вызова сервисов.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterRequest — тело запроса POST /register.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=128"`
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginRequest — тело запроса POST /login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// User — публичное представление пользователя.
//
// Хэш пароля в ответы не попадает никогда.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginResponse — ответ POST /login.
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// CreateTransactionRequest — тело запроса POST /transactions.
//
// Amount принимается и числом, и строкой ("12.50").
// Date — RFC 3339 или YYYY-MM-DD; пустая дата означает "сейчас".
// Amount: не больше 16 цифр целой части и 4 знаков после точки.
type CreateTransactionRequest struct {
	Amount   decimal.Decimal `json:"amount"`
	Type     string          `json:"type" validate:"required,oneof=income expense"`
	Category string          `json:"category" validate:"max=64"`
	Date     string          `json:"date,omitempty"`
	Note     *string         `json:"note,omitempty" validate:"omitempty,max=512"`
}

// Transaction — запись о доходе или расходе в ответах API.
type Transaction struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	Amount    decimal.Decimal `json:"amount"`
	Type      string          `json:"type"`
	Category  string          `json:"category"`
	Date      time.Time       `json:"date"`
	Note      *string         `json:"note,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// ErrorResponse стандартный формат ошибки API.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse — ответ GET /ping.
type HealthResponse struct {
	Status string `json:"status"`
}
