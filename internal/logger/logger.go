package logger

import (
	"context"
	"log/slog"
	"os"
	"time"
)

var log *slog.Logger

// Init sets up the global logger.
// env: "development" or "production"
func Init(env string) {
	var handler slog.Handler

	opts := &slog.HandlerOptions{
		Level:     slog.LevelInfo,
		AddSource: true,
	}

	if env == "development" {
		opts.Level = slog.LevelDebug
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		// Production: JSON for log shippers
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	log = slog.New(handler)
	slog.SetDefault(log)
}

func GetLogger() *slog.Logger {
	if log == nil {
		Init("development")
	}
	return log
}

func Debug(msg string, args ...any) {
	GetLogger().Debug(msg, args...)
}

func Info(msg string, args ...any) {
	GetLogger().Info(msg, args...)
}

func Warn(msg string, args ...any) {
	GetLogger().Warn(msg, args...)
}

func Error(msg string, args ...any) {
	GetLogger().Error(msg, args...)
}

// Fatal logs the error and exits with code 1.
func Fatal(msg string, args ...any) {
	GetLogger().Error(msg, args...)
	os.Exit(1)
}

func With(args ...any) *slog.Logger {
	return GetLogger().With(args...)
}

func WithError(err error) *slog.Logger {
	return GetLogger().With("error", err.Error())
}

// HTTPLog logs one served request at a level matching its status class,
// annotated with the request/user ids the context carries.
func HTTPLog(ctx context.Context, method, path, clientIP string, status int, duration time.Duration, size int) {
	log := FromContext(ctx)
	fields := []any{
		"client_ip", clientIP,
		"status", status,
		"method", method,
		"path", path,
		"duration", duration,
		"size_bytes", size,
	}

	switch {
	case status >= 500:
		log.Error("HTTP Server Error", fields...)
	case status >= 400:
		log.Warn("HTTP Client Error", fields...)
	default:
		log.Info("HTTP Request", fields...)
	}
}

// GatewayLog logs an outbound payment-gateway call.
func GatewayLog(provider, operation string, duration time.Duration, err error) {
	fields := []any{
		"provider", provider,
		"operation", operation,
		"duration_ms", duration.Milliseconds(),
	}

	if err != nil {
		fields = append(fields, "error", err.Error())
		GetLogger().Error("gateway call failed", fields...)
	} else {
		GetLogger().Debug("gateway call", fields...)
	}
}
