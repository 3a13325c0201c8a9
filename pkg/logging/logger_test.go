package logging

import "testing"

func TestNewLevels(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error", "bogus", ""} {
		logger := New(level, "")
		if logger == nil || logger.Logger == nil {
			t.Fatalf("New(%q) returned nil logger", level)
		}
	}
}

func TestNewDevelopmentEnv(t *testing.T) {
	logger := New("debug", "development")
	if logger == nil {
		t.Fatal("expected non-nil logger")
	}
	logger.Debug("development logger works")
}

func TestDefault(t *testing.T) {
	logger := Default()
	if logger == nil {
		t.Fatal("expected non-nil default logger")
	}
	logger.Info("default logger works")
}
