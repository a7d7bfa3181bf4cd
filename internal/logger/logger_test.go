package logger

import (
	"context"
	"log/slog"
	"testing"
)

func TestNewDefaultsToInfo(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	l := New()
	if l == nil {
		t.Fatal("expected logger, got nil")
	}

	if !l.Enabled(context.Background(), slog.LevelInfo) {
		t.Errorf("expected info level to be enabled")
	}
	if l.Enabled(context.Background(), slog.LevelDebug) {
		t.Errorf("did not expect debug level to be enabled")
	}
}

func TestNewHonorsLogLevelEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	l := New()
	if !l.Enabled(context.Background(), slog.LevelDebug) {
		t.Errorf("expected debug level to be enabled")
	}

	t.Setenv("LOG_LEVEL", "error")
	l = New()
	if l.Enabled(context.Background(), slog.LevelWarn) {
		t.Errorf("did not expect warn level to be enabled")
	}
}

func TestLevelFromEnvUnknownValue(t *testing.T) {
	t.Setenv("LOG_LEVEL", "verbose")
	if lvl := levelFromEnv(); lvl != slog.LevelInfo {
		t.Fatalf("unknown value must fall back to info, got %v", lvl)
	}
}
