package querycache

import (
	"log/slog"
	"os"

	"github.com/hupe1980/querycache/model"
)

// Logger wraps slog.Logger with querycache-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithTargetID adds a target id field to the logger.
func (l *Logger) WithTargetID(id model.TargetID) *Logger {
	return &Logger{
		Logger: l.Logger.With("target_id", id),
	}
}

// WithCount adds a count field to the logger.
func (l *Logger) WithCount(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("count", count),
	}
}

// LogAddTarget logs a target registration.
func (l *Logger) LogAddTarget(data model.QueryData, targetCount int) {
	l.Debug("target added",
		"target_id", data.TargetID,
		"query", data.CanonicalID(),
		"purpose", data.Purpose.String(),
		"targets", targetCount,
	)
}

// LogUpdateTarget logs an in-place target update.
func (l *Logger) LogUpdateTarget(data model.QueryData) {
	l.Debug("target updated",
		"target_id", data.TargetID,
		"query", data.CanonicalID(),
		"snapshot_version", data.SnapshotVersion.String(),
	)
}

// LogRemoveTarget logs a target removal and what it purged.
func (l *Logger) LogRemoveTarget(id model.TargetID, references, changeSets int) {
	l.Debug("target removed",
		"target_id", id,
		"references_purged", references,
		"change_sets_purged", changeSets,
	)
}

// LogApplyTargetChange logs an applied target change.
func (l *Logger) LogApplyTargetChange(id model.TargetID, change model.TargetChange) {
	l.Debug("target change applied",
		"target_id", id,
		"snapshot_version", change.SnapshotVersion.String(),
		"added", change.Added.Len(),
		"modified", change.Modified.Len(),
		"removed", change.Removed.Len(),
	)
}

// LogPreconditionFailed logs a rejected operation. These indicate a bug in the caller.
func (l *Logger) LogPreconditionFailed(op string, err error) {
	l.Warn("precondition failed",
		"op", op,
		"error", err,
	)
}
