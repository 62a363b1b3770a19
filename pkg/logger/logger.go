package logger

import (
	"log/slog"
	"os"
)

// New returns a JSON slog logger tagged with the service name and host.
func New(service string) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.String("timestamp", a.Value.Time().Format("2006-01-02T15:04:05Z07:00"))
			}
			if a.Key == slog.MessageKey {
				return slog.String("message", a.Value.String())
			}
			return a
		},
	})
	lg := slog.New(handler)
	if host, err := os.Hostname(); err == nil {
		lg = lg.With("host", host)
	}
	return lg.With("service", service)
}
