package logger

import "go.uber.org/zap/zapcore"

// Verbosity level constants for CLI flag counts.
const (
	VerbosityUser  = 0 // No flags: results, warnings, and errors only
	VerbosityInfo  = 1 // -v: + per-call resolution summaries
	VerbosityDebug = 2 // -vv: + document loads, cache hits, merge steps
)

// VerbosityToLevel maps verbosity flag counts (-v, -vv) to zap log levels.
func VerbosityToLevel(verbosity int) zapcore.Level {
	switch verbosity {
	case VerbosityUser:
		return zapcore.WarnLevel
	case VerbosityInfo:
		return zapcore.InfoLevel
	default:
		return zapcore.DebugLevel
	}
}

// LevelName returns a human-readable name for a verbosity level
func LevelName(verbosity int) string {
	switch verbosity {
	case VerbosityUser:
		return "User"
	case VerbosityInfo:
		return "Info (-v)"
	default:
		return "Debug (-vv)"
	}
}
