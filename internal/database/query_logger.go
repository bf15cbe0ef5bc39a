package database

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// queryLogger routes GORM output through logrus at matching levels. Bound
// values are never logged: statements keep their placeholders, since rows
// such as users carry password hashes.
type queryLogger struct {
	log           *logrus.Logger
	level         logger.LogLevel
	slowThreshold time.Duration
}

func newQueryLogger(log *logrus.Logger, level logger.LogLevel, slowThreshold time.Duration) *queryLogger {
	return &queryLogger{log: log, level: level, slowThreshold: slowThreshold}
}

func (l *queryLogger) LogMode(level logger.LogLevel) logger.Interface {
	cp := *l
	cp.level = level
	return &cp
}

func (l *queryLogger) Info(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Info {
		l.log.WithContext(ctx).Infof(msg, data...)
	}
}

func (l *queryLogger) Warn(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Warn {
		l.log.WithContext(ctx).Warnf(msg, data...)
	}
}

func (l *queryLogger) Error(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Error {
		l.log.WithContext(ctx).Errorf(msg, data...)
	}
}

func (l *queryLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= logger.Silent {
		return
	}

	elapsed := time.Since(begin)
	switch {
	case err != nil && l.level >= logger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		l.entry(ctx, fc, elapsed).WithError(err).Error("query failed")
	case l.slowThreshold > 0 && elapsed > l.slowThreshold && l.level >= logger.Warn:
		l.entry(ctx, fc, elapsed).Warn("slow query")
	case l.level >= logger.Info:
		l.entry(ctx, fc, elapsed).Info("query")
	}
}

// ParamsFilter drops bound values before GORM renders the statement.
func (l *queryLogger) ParamsFilter(ctx context.Context, sql string, params ...any) (string, []any) {
	return sql, nil
}

func (l *queryLogger) entry(ctx context.Context, fc func() (string, int64), elapsed time.Duration) *logrus.Entry {
	sql, rows := fc()
	return l.log.WithContext(ctx).WithFields(logrus.Fields{
		"sql":        sql,
		"rows":       rows,
		"elapsed_ms": elapsed.Milliseconds(),
	})
}
