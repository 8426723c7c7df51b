package sapling

import (
	"log/slog"

	"github.com/phanxgames/sapling/internal/logging"
)

// SetLogger configures the logger for sapling and all its sub-packages.
// By default nothing is logged. Pass nil to restore silent output.
//
// Levels used:
//   - [slog.LevelDebug]: atlas loading, region misses, batch membership, uploads
//   - [slog.LevelWarn]: teardown of resources that were still in use
//
// Example:
//
//	sapling.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	logging.Set(l)
}

// Logger returns the current logger.
func Logger() *slog.Logger {
	return logging.Logger()
}

// globalDebug enables per-frame render statistics. sapling is single-threaded,
// so a plain bool is enough.
var globalDebug bool

// SetDebugMode enables or disables debug mode. When enabled, every
// BatchRenderer.Render logs its timing and upload statistics at debug level.
func SetDebugMode(enabled bool) {
	globalDebug = enabled
}
