// Package http реализует маршрутизацию HTTP-слоя сервера FinTracker.
//
// Пакет отвечает за:
//   - регистрацию HTTP-маршрутов и настройку роутера (chi);
//   - логирование выполнения HTTP-запросов;
//   - подключение проверки access-токенов к защищённым маршрутам.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/IvanChernomyrdin/go-fintracker/internal/server/api"
	"github.com/IvanChernomyrdin/go-fintracker/internal/server/middleware"
)

// NewRouter создаёт и настраивает HTTP-роутер сервера.
//
// Роутер использует chi.Router и регистрирует:
//   - middleware логирования для всех запросов;
//   - публичные эндпоинты /register, /login, /ping и swagger;
//   - группу защищённых эндпоинтов /transactions.
func NewRouter(h *api.Handler) http.Handler {
	r := chi.NewRouter()
	// логирование всех запросов
	r.Use(middleware.LoggerMiddleware(h.Log))

	// добавляем swagger
	r.Get("/swagger/*", httpSwagger.WrapHandler)
	// Публичные пути
	r.Post("/register", h.Register)
	r.Post("/login", h.Login)
	r.Get("/ping", h.Ping)
	// защищены пути
	r.Group(func(r chi.Router) {
		// проверка access токена
		r.Use(h.Verifier.AuthMiddleware())
		r.Route("/transactions", func(r chi.Router) {
			r.Post("/", h.CreateTransaction) // создание записи
			r.Get("/", h.ListTransactions)   // все записи пользователя
		})
	})

	return r
}
