package logger

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sukalov/lyricsheet/internal/utils"
)

var (
	ChannelID int64

	mu        sync.RWMutex
	once      sync.Once
	log       = zap.NewNop()
	botClient BotClient
)

// BotClient mirrors log records to a chat channel.
type BotClient interface {
	SendMessage(chatID int64, text string) error
}

// Init builds the process logger. LOG_LEVEL picks the level (default info).
// When client is non-nil and LOG_CHANNEL_ID is set, records are also sent
// to that channel.
func Init(client BotClient) error {
	var initErr error
	once.Do(func() {
		level := zapcore.InfoLevel
		if raw := utils.Getenv("LOG_LEVEL", ""); raw != "" {
			if err := level.Set(raw); err != nil {
				initErr = fmt.Errorf("failed to parse LOG_LEVEL: %w", err)
				return
			}
		}

		built, err := New(level)
		if err != nil {
			initErr = fmt.Errorf("failed to build logger: %w", err)
			return
		}

		mu.Lock()
		defer mu.Unlock()
		log = built

		if client == nil {
			return
		}
		raw := utils.Getenv("LOG_CHANNEL_ID", "")
		if raw == "" {
			return
		}
		ChannelID, err = strconv.ParseInt(raw, 10, 64)
		if err != nil {
			initErr = fmt.Errorf("failed to parse LOG_CHANNEL_ID: %w", err)
			return
		}
		botClient = client
	})

	return initErr
}

// New returns a console zap logger at the given level.
func New(level zapcore.Level) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.DisableStacktrace = true
	return cfg.Build(zap.AddCallerSkip(2))
}

// Use replaces the process logger. Tests use it with zaptest/observer.
func Use(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	log = l
}

// Sync flushes buffered records.
func Sync() {
	mu.RLock()
	defer mu.RUnlock()
	_ = log.Sync()
}

func Info(message string, fields ...zap.Field) {
	write(zapcore.InfoLevel, "ℹ️ INFO", message, fields)
}

func Error(message string, fields ...zap.Field) {
	write(zapcore.ErrorLevel, "❌ ERROR", message, fields)
}

func Debug(message string, fields ...zap.Field) {
	write(zapcore.DebugLevel, "🔍 DEBUG", message, fields)
}

func Success(message string, fields ...zap.Field) {
	write(zapcore.InfoLevel, "✅ SUCCESS", message, append(fields, zap.Bool("success", true)))
}

func write(level zapcore.Level, prefix, message string, fields []zap.Field) {
	mu.RLock()
	l, client := log, botClient
	mu.RUnlock()

	ce := l.Check(level, message)
	if ce == nil {
		return
	}
	ce.Write(fields...)

	if client == nil {
		return
	}

	timestamp := time.Now().Format("2006-01-02 15:04:05")
	logMessage := fmt.Sprintf("[%s] %s\n%s", timestamp, prefix, message)

	go func() {
		if err := client.SendMessage(ChannelID, logMessage); err != nil {
			l.Warn("failed to send log to channel", zap.Error(err))
		}
	}()
}

// LogWithErr logs message at info level, or at error level with err
// attached, and returns err wrapped with message.
func LogWithErr(message string, err error) error {
	if err == nil {
		Info(message)
		return nil
	}

	Error(message, zap.Error(err))
	return fmt.Errorf("%s: %w", message, err)
}
