// Package cli реализует командный интерфейс (CLI) клиентского приложения FinTracker.
//
// Пакет отвечает за:
//   - определение root-команды и набора подкоманд;
//   - загрузку локальных учётных данных (access-токен) из файла конфигурации;
//   - выполнение команд и вывод результата пользователю.
//
// Точка входа пакета — функция Execute.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/IvanChernomyrdin/go-fintracker/internal/agent/config"
	serr "github.com/IvanChernomyrdin/go-fintracker/internal/shared/errors"
)

// DefaultServerURL адрес сервера по умолчанию.
const DefaultServerURL = "http://127.0.0.1:5000"

// errNotLoggedIn возвращается командами, которым нужен сохранённый токен.
var errNotLoggedIn = errors.New("no access token, run: fintrack login")

// App содержит состояние CLI-приложения, разделяемое между командами.
type App struct {
	// ServerURL — базовый URL сервера FinTracker.
	ServerURL string
	// Insecure отключает проверку TLS-сертификата сервера.
	Insecure bool

	// CredsPath — путь к файлу с сохранёнными учётными данными.
	CredsPath string
	// Creds — загруженные учётные данные; nil до PersistentPreRunE.
	Creds *config.Credentials
}

// token возвращает сохранённый токен или errNotLoggedIn.
func (a *App) token() (string, error) {
	if !a.Creds.LoggedIn() {
		return "", errNotLoggedIn
	}
	return a.Creds.Token, nil
}

// explain дополняет ошибку сервера подсказкой для пользователя.
func explain(err error) error {
	if errors.Is(err, serr.ErrUnauthorized) {
		return fmt.Errorf("%w (token expired or invalid, run: fintrack login)", err)
	}
	return err
}

// NewRootCmd создаёт root-команду CLI и регистрирует подкоманды.
//
// buildVersion и buildDate используются командой version.
// В PersistentPreRunE определяется путь к файлу учётных данных и загружается токен,
// если путь не задан заранее (например, в тестах).
func NewRootCmd(buildVersion, buildDate string) *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:   "fintrack",
		Short: "FinTracker CLI — учёт личных доходов и расходов",
		Long: `FinTracker CLI.

Команды:
  register  Регистрация нового пользователя
  login     Вход (сохраняет токен локально)
  logout    Удалить сохранённый токен
  tx add    Добавить доход или расход
  tx list   Список записей
  ping      Проверить доступность сервера
  version   Версия и дата сборки

Примеры:
  fintrack register --name Ivan --email ivan@example.com
  fintrack login --email ivan@example.com
  fintrack tx add --amount 1500 --type income --category salary
  fintrack tx add --amount -12.50 --type expense --category food --note lunch
  fintrack tx list
`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if app.CredsPath == "" {
				p, err := config.DefaultPath()
				if err != nil {
					return err
				}
				app.CredsPath = p
			}

			creds, err := config.Load(app.CredsPath)
			if err != nil {
				return fmt.Errorf("load credentials: %w", err)
			}
			app.Creds = creds
			return nil
		},
	}

	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)

	cmd.PersistentFlags().StringVar(&app.ServerURL, "server", envOr("FINTRACK_SERVER", DefaultServerURL), "server base URL")
	cmd.PersistentFlags().BoolVar(&app.Insecure, "insecure", false, "skip TLS certificate verification (dev only)")
	cmd.PersistentFlags().StringVar(&app.CredsPath, "credentials", "", "path to credentials file (default ~/.fintrack/credentials.json)")

	cmd.AddCommand(NewRegisterCmd(app))
	cmd.AddCommand(NewLoginCmd(app))
	cmd.AddCommand(NewLogoutCmd(app))
	cmd.AddCommand(NewTxCmd(app))
	cmd.AddCommand(NewPingCmd(app))
	cmd.AddCommand(NewVersionCmd(buildVersion, buildDate))

	return cmd
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// Execute запускает обработку CLI-команд.
//
// При ошибке сообщение выводится в stderr, процесс завершается с кодом 1.
func Execute(buildVersion, buildDate string) {
	if err := NewRootCmd(buildVersion, buildDate).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
