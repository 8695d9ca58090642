package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestCorrelationID(t *testing.T) {
	ctx := WithCorrelationID(context.Background(), "corr-1")
	assert.Equal(t, "corr-1", GetCorrelationID(ctx))
	assert.Equal(t, "", GetCorrelationID(context.Background()))
}

func TestInfo_AddsCorrelationField(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	prev := current.Load()
	current.Store(zap.New(core))
	t.Cleanup(func() { current.Store(prev) })

	ctx := WithCorrelationID(context.Background(), "corr-2")
	Info(ctx, "[TEST]", String("key", "value"))
	Warn(context.Background(), "[TEST]")

	entries := logs.All()
	if assert.Len(t, entries, 2) {
		assert.Equal(t, "corr-2", entries[0].ContextMap()[correlationIDKey])
		assert.Equal(t, "value", entries[0].ContextMap()["key"])
		_, found := entries[1].ContextMap()[correlationIDKey]
		assert.False(t, found)
	}
}

func TestInit(t *testing.T) {
	prev := current.Load()
	t.Cleanup(func() { current.Store(prev) })

	assert.NoError(t, Init("test-app", WithLevel("debug"), WithEnv("local"), WithCaller(true)))
	assert.NotNil(t, L())
}
