// HTTP-хендлеры регистрации и логина
package api

import (
	"errors"
	"net/http"

	"github.com/IvanChernomyrdin/go-fintracker/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-fintracker/internal/shared/errors"
	dto "github.com/IvanChernomyrdin/go-fintracker/internal/shared/models"
)

// toUserDTO переводит пользователя в публичное представление без хэша пароля.
func toUserDTO(u models.User) dto.User {
	return dto.User{
		ID:        u.ID.String(),
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

// Register обрабатывает регистрацию пользователя.
//
// Ответы:
//   - 200 OK: регистрация успешна, в теле пользователь без хэша;
//   - 400 Bad Request: неверный JSON, невалидные данные или email уже занят;
//   - 500 Internal Server Error: прочие ошибки.
//
// @Summary      Register user
// @Description  Creates a new user. Email is stored trimmed and lower-cased.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body dto.RegisterRequest true "Register request"
// @Success      200 {object} dto.User
// @Failure      400 {object} dto.ErrorResponse "Bad JSON, invalid input or email already exists"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /register [post]
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := h.decode(w, r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, err)
		return
	}

	user, err := h.Svc.Auth.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, serr.ErrInvalidInput):
			WriteError(w, http.StatusBadRequest, serr.ErrInvalidInput)
		case errors.Is(err, serr.ErrAlreadyExists):
			WriteError(w, http.StatusBadRequest, serr.ErrAlreadyExists)
		default:
			h.internalError(w, "register failed", err)
		}
		return
	}

	WriteJSON(w, http.StatusOK, toUserDTO(user))
}

// Login обрабатывает вход пользователя и выдачу токена.
//
// Ответы:
//   - 200 OK: успешный вход, токен и пользователь;
//   - 400 Bad Request: неверный JSON или пустые поля;
//   - 401 Unauthorized: email не найден или пароль не подошёл;
//   - 500 Internal Server Error: прочие ошибки.
//
// @Summary      Login
// @Description  Verifies credentials and returns a signed access token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body dto.LoginRequest true "Login request"
// @Success      200 {object} dto.LoginResponse
// @Failure      400 {object} dto.ErrorResponse "Bad JSON or invalid input"
// @Failure      401 {object} dto.ErrorResponse "User not found or invalid credentials"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := h.decode(w, r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, err)
		return
	}

	token, user, err := h.Svc.Auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, serr.ErrInvalidInput):
			WriteError(w, http.StatusBadRequest, serr.ErrInvalidInput)
		case errors.Is(err, serr.ErrUserNotFound):
			WriteError(w, http.StatusUnauthorized, serr.ErrUserNotFound)
		case errors.Is(err, serr.ErrInvalidCredentials):
			WriteError(w, http.StatusUnauthorized, serr.ErrInvalidCredentials)
		default:
			h.internalError(w, "login failed", err)
		}
		return
	}

	WriteJSON(w, http.StatusOK, dto.LoginResponse{
		Token: token,
		User:  toUserDTO(user),
	})
}
