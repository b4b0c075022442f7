package log_test

import (
	"context"
	"log/slog"
	"os"

	"github.com/ardnew/vic3def/log"
)

func Example_basic() {
	logger := log.Make(os.Stdout, log.WithPretty(false), log.WithTimeLayout("none"))
	logger.Info("parse complete", slog.Int("scopes", 2))
	// Output:
	// level=INFO msg="parse complete" scopes=2
}

func Example_levels() {
	logger := log.Make(os.Stdout,
		log.WithLevel(log.LevelWarn),
		log.WithPretty(false),
		log.WithTimeLayout("none"))

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warning message", slog.String("key", "value"))
	// Output:
	// level=WARN msg="warning message" key=value
}

func Example_jsonFormat() {
	logger := log.Make(os.Stdout,
		log.WithFormat(log.FormatJSON),
		log.WithPretty(false),
		log.WithTimeLayout("none"))

	logger.Info("loaded", slog.String("path", "common/history/states"))
	// Output:
	// {"level":"INFO","msg":"loaded","path":"common/history/states"}
}

func Example_withAttributes() {
	logger := log.Make(os.Stdout, log.WithPretty(false), log.WithTimeLayout("none")).
		With(slog.String("file", "00_states.txt"))

	logger.Error("syntax error", slog.Int("line", 12))
	// Output:
	// level=ERROR msg="syntax error" file=00_states.txt line=12
}

func Example_withContext() {
	type requestIDKey struct{}

	ctx := context.WithValue(context.Background(), requestIDKey{}, "req-789")

	logger := log.Make(os.Stdout,
		log.WithLevel(log.LevelTrace),
		log.WithPretty(false),
		log.WithTimeLayout("none"))

	logger.TraceContext(ctx, "tokenized")
	// Output:
	// level=TRACE msg=tokenized
}
