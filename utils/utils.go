package utils

import (
	"log/slog"
)

// Check panics on unexpected errors that leave the process unusable.
func Check(e error, args ...any) {
	if e != nil {
		slog.Error("Unexpected Error", append([]any{"error", e}, args...)...)
		panic(e)
	}
}

func Loge(e error, args ...any) {
	if e != nil {
		slog.Error("", append([]any{"error", e}, args...)...)
	}
}

func Logwe(e error, args ...any) {
	if e != nil {
		slog.Warn("", append([]any{"error", e}, args...)...)
	}
}

func Logie(e error, args ...any) {
	if e != nil {
		slog.Info("", append([]any{"error", e}, args...)...)
	}
}

func Logde(e error, args ...any) {
	if e != nil {
		slog.Debug("", append([]any{"error", e}, args...)...)
	}
}
