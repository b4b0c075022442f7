// Package log provides a small structured logging interface based on
// [log/slog].
//
// A [Logger] is an immutable value: [Logger.Wrap] and [Logger.With] return new
// loggers, so a Logger can be shared between goroutines and stored in option
// structs. The zero Logger discards everything.
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithTimeLayout("kitchen"),
//		log.WithCaller(true))
//
//	logger.Info("parsed", slog.Int("scope_count", 3))
//
// [LevelTrace] sits below [LevelDebug] and is reserved for high-volume
// diagnostics such as per-parse timing.
//
// Output is either [FormatText] or [FormatJSON]. With [WithPretty] enabled,
// the default, both are colorized for a terminal; text is written as one line
// of key=value pairs and JSON as an indented block.
//
// The package-level functions ([Info], [ErrorContext], ...) use a default
// logger writing to standard error, reconfigured with [Config].
package log
