// Package main содержит точку входа клиентского CLI-приложения FinTracker.
//
// Пакет запускает консольный клиент и передаёт в CLI-слой версию и дату сборки.
package main

import "github.com/IvanChernomyrdin/go-fintracker/internal/agent/cli"

var (
	// buildVersion задаётся при сборке через -ldflags.
	buildVersion = "dev"
	// buildDate задаётся при сборке через -ldflags.
	buildDate = "unknown"
)

func main() {
	cli.Execute(buildVersion, buildDate)
}
