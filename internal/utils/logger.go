package utils

import (
	"context"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type contextKey string

type Fields = logrus.Fields

const (
	CorrelationIDKey contextKey = "correlation_id"
	RequestIDKey     contextKey = "request_id"
)

var logger *logrus.Logger

func init() {
	logger = logrus.New()
	logger.SetOutput(os.Stdout)
	configureLogger(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))
}

// configureLogger applies level and format; unknown values fall back to info/json.
func configureLogger(levelName, format string) {
	if strings.EqualFold(format, "text") {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "timestamp",
				logrus.FieldKeyLevel: "level",
				logrus.FieldKeyMsg:   "message",
			},
		})
	}

	if levelName == "" {
		levelName = "info"
	}
	level, err := logrus.ParseLevel(levelName)
	if err != nil {
		logger.Warnf("Invalid log level %s, defaulting to info", levelName)
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
}

func GetLogger() *logrus.Logger {
	return logger
}

func WithCorrelationID(ctx context.Context, correlationID string) context.Context {
	return context.WithValue(ctx, CorrelationIDKey, correlationID)
}

func GetCorrelationID(ctx context.Context) string {
	if id, ok := ctx.Value(CorrelationIDKey).(string); ok {
		return id
	}
	return ""
}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(RequestIDKey).(string); ok {
		return id
	}
	return ""
}

func GenerateCorrelationID() string {
	return uuid.New().String()
}

func GenerateRequestID() string {
	return "req_" + uuid.New().String()
}

// LoggerFromContext returns an entry carrying the request's correlation and request IDs.
func LoggerFromContext(ctx context.Context) *logrus.Entry {
	entry := logrus.NewEntry(logger)
	if ctx == nil {
		return entry
	}

	if correlationID := GetCorrelationID(ctx); correlationID != "" {
		entry = entry.WithField("correlation_id", correlationID)
	}
	if requestID := GetRequestID(ctx); requestID != "" {
		entry = entry.WithField("request_id", requestID)
	}
	return entry
}

func withFields(entry *logrus.Entry, fields []logrus.Fields) *logrus.Entry {
	for _, f := range fields {
		entry = entry.WithFields(f)
	}
	return entry
}

func LogInfo(ctx context.Context, message string, fields ...logrus.Fields) {
	withFields(LoggerFromContext(ctx), fields).Info(message)
}

func LogError(ctx context.Context, message string, err error, fields ...logrus.Fields) {
	withFields(LoggerFromContext(ctx).WithError(err), fields).Error(message)
}

func LogWarn(ctx context.Context, message string, fields ...logrus.Fields) {
	withFields(LoggerFromContext(ctx), fields).Warn(message)
}

func LogDebug(ctx context.Context, message string, fields ...logrus.Fields) {
	withFields(LoggerFromContext(ctx), fields).Debug(message)
}
