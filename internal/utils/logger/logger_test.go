// internal/utils/logger/logger_test.go
package logger

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestWithOperation_TagsEveryEntry(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	log := &Logger{Logger: zap.New(core)}

	opLogger := log.WithOperation("buy")
	opLogger.Info("first")
	opLogger.Info("second")

	entries := logs.All()
	require.Len(t, entries, 2)

	first := entries[0].ContextMap()
	assert.Equal(t, "buy", first["operation"])
	assert.Contains(t, first, "start_time")

	id, ok := first["correlation_id"].(string)
	require.True(t, ok)
	_, err := uuid.Parse(id)
	assert.NoError(t, err)

	// Both entries of one operation share the same correlation id.
	assert.Equal(t, id, entries[1].ContextMap()["correlation_id"])
}

func TestWithOperation_DistinctOperationsGetDistinctIDs(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	log := &Logger{Logger: zap.New(core)}

	log.WithOperation("buy").Info("a")
	log.WithOperation("sell").Info("b")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.NotEqual(t,
		entries[0].ContextMap()["correlation_id"],
		entries[1].ContextMap()["correlation_id"])
}
