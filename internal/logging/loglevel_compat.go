//go:build !go1.22

package logging

import (
	"log/slog"
	"os"
)

// slog.SetLogLoggerLevel does not exist before Go 1.22; honor the requested
// level by installing a stderr text handler as the default logger instead.
func setLogLoggerLevel(l slog.Level) {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l})))
}
