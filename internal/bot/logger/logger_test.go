package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ tgbotapi.BotLogger = (*Logger)(nil)

func TestLoggerWritesDebugRecords(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	l := New(log)

	l.Printf("Endpoint: %s, params: %v", "getMe", 1)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "DEBUG", rec["level"])
	assert.Equal(t, "Endpoint: getMe, params: 1", rec["msg"])
	assert.Equal(t, "tgbotapi", rec["component"])

	buf.Reset()
	l.Println("a", "b")
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "a b", rec["msg"])
}

func TestLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})))

	l.Println("dropped")
	assert.Zero(t, buf.Len())
}
