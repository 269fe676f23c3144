package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want *zapcore.Level
	}{
		{"debug", levelPtr(zapcore.DebugLevel)},
		{"info", levelPtr(zapcore.InfoLevel)},
		{"warn", levelPtr(zapcore.WarnLevel)},
		{"error", levelPtr(zapcore.ErrorLevel)},
		{"verbose", nil},
		{"", nil},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLevel(tt.in))
			assert.Equal(t, tt.want != nil, ValidLevel(tt.in))
		})
	}
}

func levelPtr(l zapcore.Level) *zapcore.Level { return &l }

func TestNamedLoggerCarriesFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := FromZap(zap.New(core)).Named("editor")

	log.Info("config saved", String("title", "Home"), Int("links", 2), Bool("mirrored", false), Error(errors.New("boom")))

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "editor", entries[0].LoggerName)
	fields := entries[0].ContextMap()
	assert.Equal(t, "Home", fields["title"])
	assert.Equal(t, int64(2), fields["links"])
	assert.Equal(t, false, fields["mirrored"])
	assert.Equal(t, "boom", fields["error"])
}

func TestNewNop(t *testing.T) {
	log := NewNop()
	log.Info("discarded")
	log.Named("x").Warnf("discarded %d", 1)
	assert.NoError(t, log.Sync())
}
