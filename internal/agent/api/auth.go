// В этом файле описаны методы клиента для работы
// с эндпоинтами аутентификации: регистрация, вход и проверка доступности сервера.
package api

import (
	"context"

	dto "github.com/IvanChernomyrdin/go-fintracker/internal/shared/models"
)

// Register регистрирует пользователя на сервере.
//
// Отправляет POST /register и возвращает публичное представление созданного пользователя.
func (c *Client) Register(ctx context.Context, name, email, password string) (dto.User, error) {
	var user dto.User
	res, err := c.request(ctx, "").
		SetBody(dto.RegisterRequest{Name: name, Email: email, Password: password}).
		SetResult(&user).
		Post("/register")
	if err := checkResponse(res, err); err != nil {
		return dto.User{}, err
	}
	return user, nil
}

// Login выполняет вход и получает access-токен.
func (c *Client) Login(ctx context.Context, email, password string) (dto.LoginResponse, error) {
	var resp dto.LoginResponse
	res, err := c.request(ctx, "").
		SetBody(dto.LoginRequest{Email: email, Password: password}).
		SetResult(&resp).
		Post("/login")
	if err := checkResponse(res, err); err != nil {
		return dto.LoginResponse{}, err
	}
	return resp, nil
}

// Ping проверяет доступность сервера и его хранилища.
func (c *Client) Ping(ctx context.Context) error {
	res, err := c.request(ctx, "").Get("/ping")
	return checkResponse(res, err)
}
