// Package errors содержит общие доменные ошибки приложения.
//
// Эти ошибки используются в service и repository слоях
// и маппятся на HTTP-статусы в api слое.
package errors

import "errors"

var (
	// Входные данные невалидны (пустые поля, неправильный формат и т.п.)
	ErrInvalidInput = errors.New("invalid input")
	// Неверные учётные данные
	ErrInvalidCredentials = errors.New("invalid credentials")
	// Получена непредвиденная ошибка
	ErrInternal = errors.New("internal error")
	// Полученные JSON данные с ошибками
	ErrBadJSON = errors.New("bad json")
	// Неавторизован
	ErrUnauthorized = errors.New("unauthorized")
	// Ресурс уже существует (например email уже занят)
	ErrAlreadyExists = errors.New("email already exists")
	// Ресурс не найден
	ErrNotFound = errors.New("not found")
	// ожидаемая ошибка
	ErrExpectedError = errors.New("expected error")
)

// auth
var (
	// пользователь с таким email не зарегистрирован
	ErrUserNotFound = errors.New("user not found")
	// подпись, формат или срок жизни токена не прошли проверку.
	// Наружу никогда не отдаётся, на границе превращается в ErrUnauthorized.
	ErrInvalidToken = errors.New("invalid token")
	ErrUserIDEmpty  = errors.New("user id cannot be empty")
)

// хранилище
var (
	ErrStoreUnavailable = errors.New("store unavailable")
)
