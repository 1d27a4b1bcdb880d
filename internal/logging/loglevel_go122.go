//go:build go1.22

package logging

import "log/slog"

func setLogLoggerLevel(l slog.Level) {
	slog.SetLogLoggerLevel(l)
}
