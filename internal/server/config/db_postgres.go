package config

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"

	"github.com/IvanChernomyrdin/go-fintracker/internal/shared/logger"

	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v4/stdlib"
)

// Open открывает подключение к PostgreSQL (драйвер pgx), настраивает пул,
// проверяет доступность базы и применяет миграции.
//
// Если миграции уже применены, migrate.ErrNoChange не считается ошибкой.
// Закрытие *sql.DB остаётся на вызывающем.
func Open(ctx context.Context, dbCfg DBConfig, migCfg MigrationsConfig, log *logger.HTTPLogger) (*sql.DB, error) {
	customLog := log.Logger.Sugar()

	db, err := sql.Open("pgx", dbCfg.DSN)
	if err != nil {
		customLog.Errorf("error to connect db: %v", err)
		return nil, err
	}

	if dbCfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(dbCfg.MaxOpenConns)
	}
	if dbCfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(dbCfg.MaxIdleConns)
	}
	if dbCfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(dbCfg.ConnMaxLifetime)
	}
	if dbCfg.ConnMaxIdleTime > 0 {
		db.SetConnMaxIdleTime(dbCfg.ConnMaxIdleTime)
	}

	if err = db.PingContext(ctx); err != nil {
		customLog.Errorf("error check db connection: %v", err)
		_ = db.Close()
		return nil, err
	}

	if migCfg.Enabled {
		if err := Migrate(db, migCfg.Path); err != nil {
			customLog.Errorf("error applying migrations: %v", err)
			_ = db.Close()
			return nil, err
		}
		customLog.Info("migrations applied successfully")
	}

	return db, nil
}

// Migrate применяет up-миграции из sourceURL (например file://migrations/postgres).
func Migrate(db *sql.DB, sourceURL string) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("creating migration driver: %w", err)
	}

	// создаём миграции с выбранным драйвером
	m, err := migrate.NewWithDatabaseInstance(sourceURL, "postgres", driver)
	if err != nil {
		return fmt.Errorf("creating migrations: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}
