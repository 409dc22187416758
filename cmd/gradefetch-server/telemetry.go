package main

import (
	"context"
	"log/slog"

	"gradefetch-backend/internal/components/telemetry"
)

// InitTelemetry sets up logging and, when a telemetry.json5 can be found,
// otlp traces and metrics. The returned function flushes the exporters.
func InitTelemetry(ctx context.Context, verbose bool) func() {
	telemetry.InitSlog(verbose)
	if verbose {
		slog.DebugContext(ctx, "verbose logging enabled")
	}

	t, err := telemetry.SetupFromEnv(ctx, "gradefetch-server")
	if err != nil {
		slog.Warn("telemetry disabled", "err", err)
		return func() {}
	}
	telemetry.InstrumentPerfStats(ctx)

	return func() {
		err := t.Shutdown(context.Background())
		if err != nil {
			slog.Warn("failed to flush telemetry", "err", err)
		}
	}
}
