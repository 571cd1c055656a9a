package logger_test

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/IvanChernomyrdin/go-fintracker/internal/shared/logger"
)

func TestNewHTTPLogger_CreatesLogFileAndWrites(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "http.log")

	l := logger.NewHTTPLogger(logger.WithDir(dir))
	l.Info("test message")
	_ = l.Sync()

	if _, err := os.Stat(logPath); err != nil {
		t.Fatalf("expected log file to exist at %q, got error: %v", logPath, err)
	}

	b, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	s := string(b)

	if !regexp.MustCompile(`\btest message\b`).MatchString(s) {
		t.Fatalf("expected log to contain message, got: %q", s)
	}

	// формат времени: "HH:MM:SS DD.MM.YYYY"
	timeRe := regexp.MustCompile(`\b\d{2}:\d{2}:\d{2} \d{2}\.\d{2}\.\d{4}\b`)
	if !timeRe.MatchString(s) {
		t.Fatalf("expected custom time format (HH:MM:SS DD.MM.YYYY), got: %q", s)
	}
}

func TestHTTPLogger_LogRequest_WritesStructuredFields(t *testing.T) {
	dir := t.TempDir()

	l := logger.NewHTTPLogger(logger.WithDir(dir), logger.WithFormat("json"))
	l.LogRequest("POST", "/login", 401, 20, 158.5463)
	_ = l.Sync()

	b, err := os.ReadFile(filepath.Join(dir, "http.log"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	s := string(b)

	mustContain := []string{
		`"msg":"HTTP request"`,
		`"method":"POST"`,
		`"uri":"/login"`,
		`"status":401`,
		`"response_size":20`,
		`"duration_ms"`,
	}
	for _, sub := range mustContain {
		if !regexp.MustCompile(regexp.QuoteMeta(sub)).MatchString(s) {
			t.Fatalf("expected log to contain %q, got: %q", sub, s)
		}
	}
}

// Сообщения ниже уровня не пишутся
func TestNewHTTPLogger_RespectsLevel(t *testing.T) {
	dir := t.TempDir()

	l := logger.NewHTTPLogger(logger.WithDir(dir), logger.WithLevel("warn"))
	l.Info("hidden info")
	l.Warn("visible warn")
	_ = l.Sync()

	b, err := os.ReadFile(filepath.Join(dir, "http.log"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	s := string(b)

	if regexp.MustCompile(`hidden info`).MatchString(s) {
		t.Fatalf("info message must be filtered at warn level, got: %q", s)
	}
	if !regexp.MustCompile(`visible warn`).MatchString(s) {
		t.Fatalf("expected warn message, got: %q", s)
	}
}

// caller указывает на место вызова: и для прямых вызовов, и для LogRequest
func TestHTTPLogger_CallerPointsToCallSite(t *testing.T) {
	dir := t.TempDir()

	l := logger.NewHTTPLogger(logger.WithDir(dir), logger.WithFormat("json"))
	l.Sugar().Errorw("direct call", "error", "boom")
	l.LogRequest("GET", "/ping", 200, 15, 1.5)
	_ = l.Sync()

	b, err := os.ReadFile(filepath.Join(dir, "http.log"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	callers := regexp.MustCompile(`"caller":"([^"]+)"`).FindAllStringSubmatch(string(b), -1)
	if len(callers) != 2 {
		t.Fatalf("expected 2 records with caller, got: %q", string(b))
	}
	for _, c := range callers {
		if !strings.Contains(c[1], "logger_zap_test.go") {
			t.Fatalf("expected caller in logger_zap_test.go, got %q", c[1])
		}
	}
}
