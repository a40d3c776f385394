package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newObservedGormLogger(level gormlogger.LogLevel, slow time.Duration) (*GormLogger, *observer.ObservedLogs) {
	core, recorded := observer.New(zapcore.DebugLevel)
	return NewGormLogger(zap.New(core), level, slow), recorded
}

func sqlFunc(sql string, rows int64) func() (string, int64) {
	return func() (string, int64) { return sql, rows }
}

func TestGormLogger_LogMode(t *testing.T) {
	l, _ := newObservedGormLogger(gormlogger.Info, 0)
	changed := l.LogMode(gormlogger.Warn)

	assert.Equal(t, gormlogger.Info, l.logLevel)
	clone, ok := changed.(*GormLogger)
	require.True(t, ok)
	assert.Equal(t, gormlogger.Warn, clone.logLevel)
}

func TestGormLogger_Trace(t *testing.T) {
	ctx, _ := WithRequestID(context.Background(), zap.NewNop(), "req-7")

	t.Run("error is logged with request id", func(t *testing.T) {
		l, recorded := newObservedGormLogger(gormlogger.Warn, 0)
		l.Trace(ctx, time.Now(), sqlFunc("SELECT 1", 0), errors.New("boom"))

		logs := recorded.FilterMessage("SQL Error").All()
		require.Len(t, logs, 1)
		assert.Equal(t, "req-7", logs[0].ContextMap()["request_id"])
	})

	t.Run("record not found is ignored", func(t *testing.T) {
		l, recorded := newObservedGormLogger(gormlogger.Warn, 0)
		l.Trace(ctx, time.Now(), sqlFunc("SELECT 1", 0), gormlogger.ErrRecordNotFound)
		assert.Empty(t, recorded.All())
	})

	t.Run("slow query warns", func(t *testing.T) {
		l, recorded := newObservedGormLogger(gormlogger.Warn, time.Millisecond)
		l.Trace(ctx, time.Now().Add(-time.Second), sqlFunc("SELECT pg_sleep(1)", 1), nil)

		logs := recorded.FilterMessage("Slow SQL").All()
		require.Len(t, logs, 1)
		assert.Equal(t, zapcore.WarnLevel, logs[0].Level)
	})

	t.Run("info level logs every query at debug", func(t *testing.T) {
		l, recorded := newObservedGormLogger(gormlogger.Info, 0)
		l.Trace(context.Background(), time.Now(), sqlFunc("SELECT 1", 1), nil)

		logs := recorded.FilterMessage("SQL Query").All()
		require.Len(t, logs, 1)
		assert.Equal(t, zapcore.DebugLevel, logs[0].Level)
	})

	t.Run("constraint violations are warnings", func(t *testing.T) {
		l, recorded := newObservedGormLogger(gormlogger.Warn, 0)
		l.Trace(ctx, time.Now(), sqlFunc("INSERT INTO tags", 0), gorm.ErrDuplicatedKey)

		logs := recorded.FilterMessage("SQL constraint violation").All()
		require.Len(t, logs, 1)
		assert.Equal(t, zapcore.WarnLevel, logs[0].Level)
	})

	t.Run("unknown row count is omitted", func(t *testing.T) {
		l, recorded := newObservedGormLogger(gormlogger.Info, 0)
		l.Trace(ctx, time.Now(), sqlFunc("BEGIN", -1), nil)

		logs := recorded.FilterMessage("SQL Query").All()
		require.Len(t, logs, 1)
		assert.NotContains(t, logs[0].ContextMap(), "rows")
	})

	t.Run("printf honours the level", func(t *testing.T) {
		l, recorded := newObservedGormLogger(gormlogger.Warn, 0)
		l.Info(ctx, "replacing callback %s", "gorm:create")
		l.Warn(ctx, "unsupported option %d", 3)

		require.Equal(t, 1, recorded.Len())
		assert.Equal(t, "unsupported option 3", recorded.All()[0].Message)
	})

	t.Run("silent logs nothing", func(t *testing.T) {
		l, recorded := newObservedGormLogger(gormlogger.Silent, 0)
		l.Trace(ctx, time.Now(), sqlFunc("SELECT 1", 0), errors.New("boom"))
		l.Info(ctx, "hello %s", "world")
		assert.Empty(t, recorded.All())
	})
}

func TestMapGormLogLevel(t *testing.T) {
	assert.Equal(t, gormlogger.Silent, MapGormLogLevel("silent"))
	assert.Equal(t, gormlogger.Error, MapGormLogLevel("error"))
	assert.Equal(t, gormlogger.Info, MapGormLogLevel("debug"))
	assert.Equal(t, gormlogger.Warn, MapGormLogLevel("warn"))
	assert.Equal(t, gormlogger.Warn, MapGormLogLevel("other"))
}
