// Package logger содержит общий логгер для server и agent.
//
// Пакет предоставляет Zap-логгер, настроенный на запись в файл с ротацией
// (lumberjack) и удобный метод для логирования HTTP-запросов.
package logger

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// HTTPLogger представляет обёртку над zap.Logger для логирования HTTP-событий.
//
// Встраивание *zap.Logger позволяет использовать все методы zap напрямую.
type HTTPLogger struct {
	*zap.Logger

	// requests пропускает кадр LogRequest, чтобы caller указывал на middleware
	requests *zap.Logger
}

// options — параметры создания логгера.
type options struct {
	dir    string
	level  zapcore.Level
	json   bool
	stdout bool
}

// Option настраивает HTTPLogger.
type Option func(*options)

// WithDir задаёт каталог, в котором создаётся http.log.
func WithDir(dir string) Option {
	return func(o *options) {
		if dir != "" {
			o.dir = dir
		}
	}
}

// WithLevel задаёт уровень логирования: debug|info|warn|error.
// Неизвестное значение оставляет info.
func WithLevel(level string) Option {
	return func(o *options) {
		var l zapcore.Level
		if err := l.UnmarshalText([]byte(strings.ToLower(level))); err == nil {
			o.level = l
		}
	}
}

// WithFormat выбирает энкодер: json или console.
func WithFormat(format string) Option {
	return func(o *options) {
		o.json = strings.EqualFold(format, "json")
	}
}

// WithStdout дублирует записи в stdout (удобно в контейнере).
func WithStdout(enabled bool) Option {
	return func(o *options) {
		o.stdout = enabled
	}
}

// NewHTTPLogger создаёт файловый zap-логгер для HTTP-логов.
//
// По умолчанию логи записываются в файл runtime/logs/http.log.
// Для файлов включена ротация (MaxSize/MaxBackups/MaxAge) и сжатие архивов.
// Формат времени: "HH:MM:SS DD.MM.YYYY".
func NewHTTPLogger(opts ...Option) *HTTPLogger {
	o := options{
		dir:   filepath.Join("runtime", "logs"),
		level: zap.InfoLevel,
	}
	for _, opt := range opts {
		opt(&o)
	}

	_ = os.MkdirAll(o.dir, 0755)

	logFile := filepath.Join(o.dir, "http.log")

	// lumberjack отвечает за ротацию файлов
	writer := zapcore.AddSync(&lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    100, // MB
		MaxBackups: 10,  // сколько старых файлов хранить
		MaxAge:     30,  // дней
		Compress:   true,
	})
	if o.stdout {
		writer = zapcore.NewMultiWriteSyncer(writer, zapcore.AddSync(os.Stdout))
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = customTimeEncoder

	encoder := zapcore.NewConsoleEncoder(encoderCfg)
	if o.json {
		encoder = zapcore.NewJSONEncoder(encoderCfg)
	}

	core := zapcore.NewCore(encoder, writer, o.level)

	logger := zap.New(core, zap.AddCaller())

	return &HTTPLogger{
		Logger:   logger,
		requests: logger.WithOptions(zap.AddCallerSkip(1)),
	}
}

// LogRequest записывает структурированный лог об HTTP-запросе.
//
// method и uri — параметры запроса,
// status — HTTP-статус ответа,
// responseSize — размер ответа в байтах,
// duration — длительность обработки запроса в миллисекундах.
func (logger *HTTPLogger) LogRequest(method, uri string, status, responseSize int, duration float64) {
	logger.requests.Info("HTTP request",
		zap.String("method", method),
		zap.String("uri", uri),
		zap.Int("status", status),
		zap.Int("response_size", responseSize),
		zap.Float64("duration_ms", duration),
	)
}

// customTimeEncoder форматирует время для логов в виде "HH:MM:SS DD.MM.YYYY".
func customTimeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.Format("15:04:05 02.01.2006"))
}
