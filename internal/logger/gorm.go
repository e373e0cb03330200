package logger

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// GormLogger пишет SQL-логи gorm через slog с полями запроса из context.
type GormLogger struct {
	level         gormlogger.LogLevel
	slowThreshold time.Duration
}

// NewGormLogger создает логгер для gorm.Config. level - строка из конфига.
func NewGormLogger(level string, slowThreshold time.Duration) *GormLogger {
	l := &GormLogger{slowThreshold: slowThreshold}
	switch ParseLevel(level) {
	case slog.LevelDebug:
		l.level = gormlogger.Info
	case slog.LevelInfo, slog.LevelWarn:
		l.level = gormlogger.Warn
	default:
		l.level = gormlogger.Error
	}
	return l
}

func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	cp := *l
	cp.level = level
	return &cp
}

func (l *GormLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Info {
		FromContext(ctx).Info(msg, "args", args)
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Warn {
		FromContext(ctx).Warn(msg, "args", args)
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Error {
		FromContext(ctx).Error(msg, "args", args)
	}
}

// Trace вызывается gorm после каждого запроса
func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	switch {
	case err != nil && l.level >= gormlogger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		sql, rows := fc()
		FromContext(ctx).Error("database operation failed",
			"query", sql, "rows", rows, "duration_ms", elapsed.Milliseconds(), "error", err.Error())
	case l.slowThreshold > 0 && elapsed > l.slowThreshold && l.level >= gormlogger.Warn:
		sql, rows := fc()
		FromContext(ctx).Warn("slow query",
			"query", sql, "rows", rows, "duration_ms", elapsed.Milliseconds())
	case l.level >= gormlogger.Info:
		sql, rows := fc()
		FromContext(ctx).Debug("database operation",
			"query", sql, "rows", rows, "duration_ms", elapsed.Milliseconds())
	}
}
