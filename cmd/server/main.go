// @title           FinTracker API
// @version         1.0
// @description     Personal finance tracker backend.
// @description     Provides user authentication and per-user income/expense records.

// @contact.name   Ivan Chernomyrdin
// @contact.url    https://github.com/IvanChernomyrdin

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:5000
// @BasePath  /
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
//
// Package main содержит точку входа серверного приложения FinTracker.
//
// Пакет отвечает за инициализацию и жизненный цикл HTTP(S)-сервера, а именно:
//   - загрузку переменных окружения из файла .env (если он присутствует);
//   - загрузку конфигурации сервера из файла ./configs/server.yaml;
//   - выбор хранилища (PostgreSQL или in-memory) и управление его жизненным циклом;
//   - создание репозиториев, сервисов, middleware и HTTP-обработчиков;
//   - запуск сервера (HTTPS при tls.enabled) с заданными таймаутами;
//   - корректное (graceful) завершение работы по SIGINT, SIGTERM, SIGQUIT.
//
// Пакет не содержит бизнес-логики и не предназначен для unit-тестирования.
// HTTP API сервера реализовано в пакете internal/server/api и документируется с помощью OpenAPI (Swagger).
package main

import (
	"context"
	"crypto/tls"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/IvanChernomyrdin/go-fintracker/internal/server/api"
	"github.com/IvanChernomyrdin/go-fintracker/internal/server/config"
	"github.com/IvanChernomyrdin/go-fintracker/internal/server/crypto"
	"github.com/IvanChernomyrdin/go-fintracker/internal/server/middleware"
	h "github.com/IvanChernomyrdin/go-fintracker/internal/server/net/http"
	"github.com/IvanChernomyrdin/go-fintracker/internal/server/repository"
	"github.com/IvanChernomyrdin/go-fintracker/internal/server/repository/memory"
	"github.com/IvanChernomyrdin/go-fintracker/internal/server/service"
	"github.com/IvanChernomyrdin/go-fintracker/internal/shared/logger"

	_ "github.com/IvanChernomyrdin/go-fintracker/swagger/docs"
)

func main() {
	configPath := flag.String("config", "./configs/server.yaml", "path to server config")
	flag.Parse()

	bootLog := logger.NewHTTPLogger(logger.WithStdout(true)).Logger.Sugar()

	if err := godotenv.Load(); err != nil {
		bootLog.Warnf("no .env file loaded, error: %v", err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		bootLog.Fatal(err)
	}

	httpLogger := logger.NewHTTPLogger(
		logger.WithDir(cfg.Log.Dir),
		logger.WithLevel(cfg.Log.Level),
		logger.WithFormat(cfg.Log.Format),
		logger.WithStdout(cfg.Log.Stdout),
	)
	sugar := httpLogger.Logger.Sugar()
	defer func() { _ = httpLogger.Sync() }()

	// создаём контекст и errgroup
	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer stop()

	// складываем в репозиторий
	var repos service.Repositories
	switch cfg.Storage {
	case config.StorageMemory:
		store := memory.NewStore()
		repos = service.Repositories{
			Users:        store.Users(),
			Transactions: store.Transactions(),
			Health:       store.Users(),
		}
		sugar.Warn("using in-memory storage, data is lost on restart")
	default:
		// подключаем базу данных
		db, err := config.Open(ctx, cfg.DB, cfg.Migrations, httpLogger)
		if err != nil {
			sugar.Fatal(err)
		}
		// делаем отложенное закрытие бд
		defer db.Close()

		usersRepo := repository.NewUsersRepository(db, cfg.DB.QueryTimeout)
		repos = service.Repositories{
			Users:        usersRepo,
			Transactions: repository.NewTransactionsRepository(db, cfg.DB.QueryTimeout),
			Health:       usersRepo,
		}
	}

	hasher, err := cfg.Password.NewHasher()
	if err != nil {
		sugar.Fatal(err)
	}
	// ключ подписи читается один раз
	tokens := crypto.NewTokenService(cfg.Auth.TokenConfig())

	// создаём сервис
	svc := service.NewServices(repos, hasher, tokens)
	// создаём хандлер
	handler := api.NewHandler(svc, httpLogger, middleware.NewJWTVerifier(tokens), cfg.Server.MaxBodyBytes)
	// создаём роутер
	router := h.NewRouter(handler)

	//создаём сервер
	addr := cfg.Server.Addr()
	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		MaxHeaderBytes:    cfg.Server.MaxHeaderBytes,
	}
	if cfg.TLS.Enabled {
		server.TLSConfig = &tls.Config{MinVersion: tlsVersion(cfg.TLS.MinVersion)}
	}

	g, ctx := errgroup.WithContext(ctx)

	// запускаем сервер
	g.Go(func() error {
		var err error
		if cfg.TLS.Enabled {
			sugar.Infof("server started on https://%s", addr)
			err = server.ListenAndServeTLS(cfg.TLS.CertFile, cfg.TLS.KeyFile)
		} else {
			sugar.Infof("server started on http://%s", addr)
			err = server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// graceful shutdown с таймаутом из конфига
	g.Go(func() error {
		<-ctx.Done()

		sugar.Info("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(
			context.Background(),
			cfg.Server.ShutdownTimeout,
		)
		defer cancel()

		return server.Shutdown(shutdownCtx)
	})

	// ожидание и единная обработка ошибок
	if err := g.Wait(); err != nil {
		sugar.Errorf("server stopped with error: %v", err)
		return
	}
	sugar.Info("server gracefully stopped")
}

func tlsVersion(v string) uint16 {
	if v == "1.3" {
		return tls.VersionTLS13
	}
	return tls.VersionTLS12
}
