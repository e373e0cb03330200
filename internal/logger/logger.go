package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

var (
	log   *slog.Logger
	level = new(slog.LevelVar)
)

// Init настраивает глобальный логгер под окружение:
// development - текст и debug, test - текст и только warn+, иначе JSON.
func Init(env string) {
	InitWithWriter(env, os.Stdout)
}

// InitWithWriter - Init с явным выводом
func InitWithWriter(env string, w io.Writer) {
	opts := &slog.HandlerOptions{Level: level, AddSource: true}

	var handler slog.Handler
	switch env {
	case "development":
		level.Set(slog.LevelDebug)
		handler = slog.NewTextHandler(w, opts)
	case "test":
		level.Set(slog.LevelWarn)
		opts.AddSource = false
		handler = slog.NewTextHandler(w, opts)
	default:
		level.Set(slog.LevelInfo)
		handler = slog.NewJSONHandler(w, opts)
	}

	log = slog.New(handler).With("service", "trainertrust")
	slog.SetDefault(log)
}

// SetLevel переопределяет уровень, выбранный Init (server.log_level в конфиге)
func SetLevel(name string) {
	level.Set(ParseLevel(name))
}

// ParseLevel переводит строку из конфига в slog.Level. Неизвестное значение - info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

func GetLogger() *slog.Logger {
	if log == nil {
		Init("development")
	}
	return log
}

func Debug(msg string, args ...any) { GetLogger().Debug(msg, args...) }
func Info(msg string, args ...any)  { GetLogger().Info(msg, args...) }
func Warn(msg string, args ...any)  { GetLogger().Warn(msg, args...) }
func Error(msg string, args ...any) { GetLogger().Error(msg, args...) }

// Fatal пишет ошибку и завершает процесс
func Fatal(msg string, args ...any) {
	GetLogger().Error(msg, args...)
	os.Exit(1)
}

// WorkerLog - итог одного прогона фонового воркера
func WorkerLog(worker, operation string, affected int64, took time.Duration, err error) {
	l := GetLogger().With(
		"worker", worker,
		"operation", operation,
		"rows_affected", affected,
		"duration_ms", took.Milliseconds(),
	)
	if err != nil {
		l.Error("worker operation failed", "error", err.Error())
		return
	}
	l.Info("worker operation completed")
}
