package logger

import (
	"os"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name:   "development config",
			config: Config{Level: "debug", Development: true, Encoding: "console"},
		},
		{
			name:   "production config",
			config: Config{Level: "info", Development: false, Encoding: "json"},
		},
		{
			name:   "invalid level falls back to info",
			config: Config{Level: "invalid", Development: false, Encoding: "json"},
		},
		{
			name:   "empty encoding uses default",
			config: Config{Level: "info"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.config)
			if (err != nil) != tt.wantErr {
				t.Errorf("New() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && logger == nil {
				t.Error("New() returned nil logger")
			}
			if logger != nil {
				logger.Sync()
			}
		})
	}
}

func TestNewWithLevel_InvalidLevelIsInfo(t *testing.T) {
	logger, level, err := NewWithLevel(Config{Level: "loud"})
	if err != nil {
		t.Fatalf("NewWithLevel() error = %v", err)
	}
	defer logger.Sync()

	if level.Level() != zapcore.InfoLevel {
		t.Errorf("level = %v, want info", level.Level())
	}
}

func TestSetLevel(t *testing.T) {
	logger, level, err := NewWithLevel(Config{Level: "info", Encoding: "json"})
	if err != nil {
		t.Fatalf("NewWithLevel() error = %v", err)
	}
	defer logger.Sync()

	if err := SetLevel(level, "debug"); err != nil {
		t.Fatalf("SetLevel() error = %v", err)
	}
	if !logger.Core().Enabled(zapcore.DebugLevel) {
		t.Error("logger should log debug after SetLevel(debug)")
	}

	if err := SetLevel(level, "nonsense"); err == nil {
		t.Error("SetLevel() should reject an unknown level")
	}
	if level.Level() != zapcore.DebugLevel {
		t.Errorf("level changed on invalid input: %v", level.Level())
	}
}

func TestDefault(t *testing.T) {
	originalLogLevel := os.Getenv("LOG_LEVEL")
	originalAppEnv := os.Getenv("APP_ENV")
	defer func() {
		os.Setenv("LOG_LEVEL", originalLogLevel)
		os.Setenv("APP_ENV", originalAppEnv)
	}()

	for _, appEnv := range []string{"development", "production", ""} {
		t.Run(appEnv, func(t *testing.T) {
			os.Setenv("APP_ENV", appEnv)
			logger := Default()
			if logger == nil {
				t.Error("Default() returned nil")
			}
			logger.Sync()
		})
	}
}

func TestWithContext(t *testing.T) {
	logger, err := New(Config{Level: "info", Development: true, Encoding: "console"})
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	contextLogger := WithContext(logger,
		zap.String("service", "test-service"),
		zap.Int("version", 1),
	)
	if contextLogger == nil {
		t.Error("WithContext() returned nil")
	}
	if contextLogger == logger {
		t.Error("WithContext() should return a new logger instance")
	}
}

func TestForComponent(t *testing.T) {
	logger := ForComponent(zap.NewNop(), "movie_service")
	if logger == nil {
		t.Fatal("ForComponent() returned nil")
	}
	logger.Info("does not panic")
}

func BenchmarkLogger_Info(b *testing.B) {
	logger, _ := New(Config{Level: "info", Development: false, Encoding: "json"})
	defer logger.Sync()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Info("benchmark message", zap.String("key", "value"))
	}
}
