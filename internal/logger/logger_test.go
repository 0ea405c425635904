package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"

	"sportsbook/internal/config"
)

func TestNewDefaultsToJSONInfo(t *testing.T) {
	log, err := New(config.LogConfig{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer log.Sync()
	if !log.Core().Enabled(zapcore.InfoLevel) {
		t.Fatalf("info not enabled at default level")
	}
	if log.Core().Enabled(zapcore.DebugLevel) {
		t.Fatalf("debug enabled at default level")
	}
}

func TestNewParsesLevel(t *testing.T) {
	log, err := New(config.LogConfig{Level: "debug", Encoding: "console"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer log.Sync()
	if !log.Core().Enabled(zapcore.DebugLevel) {
		t.Fatalf("debug not enabled")
	}
}

func TestNewUnknownLevelFallsBack(t *testing.T) {
	log, err := New(config.LogConfig{Level: "chatty"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer log.Sync()
	if log.Core().Enabled(zapcore.DebugLevel) {
		t.Fatalf("unknown level did not fall back to info")
	}
}

func TestNewRejectsUnknownEncoding(t *testing.T) {
	if _, err := New(config.LogConfig{Encoding: "xml"}); err == nil {
		t.Fatalf("New accepted an unknown encoding")
	}
}
