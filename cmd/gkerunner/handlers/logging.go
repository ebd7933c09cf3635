package handlers

import (
	"context"

	uberzap "go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/log"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"
)

// SetupLogging installs the global logger and returns ctx carrying it.
// Verbose switches to development mode with debug output.
func SetupLogging(ctx context.Context, verbose bool) context.Context {
	level := uberzap.NewAtomicLevelAt(zapcore.InfoLevel)
	if verbose {
		level.SetLevel(zapcore.DebugLevel)
	}

	logger := zap.New(
		zap.UseDevMode(verbose),
		zap.Level(level),
	)
	ctrl.SetLogger(logger)

	if ctx == nil {
		ctx = context.Background()
	}
	return log.IntoContext(ctx, logger.WithName("gkerunner"))
}
