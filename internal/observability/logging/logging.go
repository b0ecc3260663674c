package logging

import (
	"log/slog"
	"os"
)

// Module identifies the logical component emitting a log record.
type Module string

// ServiceInfo carries identifying attributes attached to every log record
// and to the telemetry resource.
type ServiceInfo struct {
	Name    string
	Version string
}

// NewLogger builds the service-wide JSON logger.
func NewLogger(level slog.Level, info ServiceInfo, module Module) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})

	return slog.New(handler).With(
		slog.String("service", info.Name),
		slog.String("version", info.Version),
		slog.String("module", string(module)),
	)
}
