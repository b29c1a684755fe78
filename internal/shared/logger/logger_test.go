package logger

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConditionalSourceHandler(t *testing.T) {
	tests := []struct {
		name       string
		log        func(l *slog.Logger)
		wantSource bool
	}{
		{"info has no source", func(l *slog.Logger) { l.Info("msg") }, false},
		{"warn has source", func(l *slog.Logger) { l.Warn("msg") }, true},
		{"error has source", func(l *slog.Logger) { l.Error("msg") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			h := NewConditionalSourceHandler(slog.NewTextHandler(&buf, nil), slog.LevelWarn, slog.LevelError)
			tt.log(slog.New(h).With("ticket_id", 7))

			out := buf.String()
			assert.Equal(t, tt.wantSource, strings.Contains(out, "source="), out)
			assert.Contains(t, out, "ticket_id=7")
		})
	}
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, parseLevel("warning"))
	assert.Equal(t, slog.LevelError, parseLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLevel(""))
}

func TestNopLogger(t *testing.T) {
	l := NewNopLogger().With("component", "test").Named("nop")
	assert.NotPanics(t, func() {
		l.Infow("ignored", "key", "value")
		l.Errorw("ignored", "error", assert.AnError)
	})
}
