package cli

import (
	"context"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/vic3def/log"
)

// logFormat configures the logger format as a side effect of parsing via
// encoding.TextUnmarshaler, early enough to affect errors reported by kong.
type logFormat log.Format

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *logFormat) UnmarshalText(text []byte) error {
	if err := (*log.Format)(f).UnmarshalText(text); err != nil {
		return err
	}

	log.Config(log.WithFormat(log.Format(*f)))

	return nil
}

func (f logFormat) String() string { return log.Format(f).String() }

// logLevel configures the logger level as a side effect of parsing via
// encoding.TextUnmarshaler.
type logLevel log.Level

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *logLevel) UnmarshalText(text []byte) error {
	if err := (*log.Level)(l).UnmarshalText(text); err != nil {
		return err
	}

	log.Config(log.WithLevel(log.Level(*l)))

	return nil
}

func (l logLevel) String() string { return log.Level(l).String() }

type logConfig struct {
	Level      logLevel  `default:"info"    help:"Set log level (${logLevels})."   placeholder:"LEVEL"`
	Format     logFormat `default:"text"    help:"Set log format (${logFormats})." placeholder:"FORMAT"`
	TimeLayout string    `default:"RFC3339" help:"Set timestamp format, or none."  name:"time"`
	Caller     bool      `default:"false"   help:"Include caller information."       negatable:""`
	Pretty     bool      `default:"true"    help:"Enable colorized pretty printing." negatable:""`
}

func (*logConfig) vars() kong.Vars {
	return kong.Vars{
		"logLevels":  strings.Join(slices.Collect(log.Levels()), ", "),
		"logFormats": strings.Join(slices.Collect(log.Formats()), ", "),
	}
}

func (*logConfig) group() kong.Group {
	var group kong.Group

	group.Key = "log"
	group.Title = "Logging options"

	return group
}

// options returns the logger options selected by f.
func (f *logConfig) options() []log.Option {
	return []log.Option{
		log.WithLevel(log.Level(f.Level)),
		log.WithFormat(log.Format(f.Format)),
		log.WithTimeLayout(f.TimeLayout),
		log.WithCaller(f.Caller),
		log.WithPretty(f.Pretty),
	}
}

// start applies the parsed values, including those such as TimeLayout that
// do not take effect while parsing.
func (f *logConfig) start(ctx context.Context) {
	log.Config(f.options()...)

	log.DebugContext(ctx, "logger initialized",
		slog.String("level", f.Level.String()),
		slog.String("format", f.Format.String()),
		slog.String("time", f.TimeLayout),
		slog.Bool("caller", f.Caller),
		slog.Bool("pretty", f.Pretty),
	)
}

// scan performs an early pass over command-line arguments to apply logger
// flags before kong begins parsing. Boolean flags such as --log-pretty are
// not decoded through encoding.TextUnmarshaler, so they are handled here.
// Invalid values are ignored and reported later by kong.
func (f *logConfig) scan(args []string) {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			return
		}

		name, value, assigned := strings.Cut(arg, "=")

		// next consumes the following argument as the value of a non-boolean
		// flag given without "=".
		next := func() string {
			if !assigned && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				i++

				return args[i]
			}

			return value
		}

		// flag parses an optional boolean value.
		flag := func(negated bool) (bool, bool) {
			if !assigned {
				return !negated, true
			}

			v, err := strconv.ParseBool(value)
			if err != nil {
				return false, false
			}

			return v != negated, true
		}

		switch name {
		case "--log-level":
			_ = f.Level.UnmarshalText([]byte(next()))

		case "--log-format":
			_ = f.Format.UnmarshalText([]byte(next()))

		case "--log-time":
			f.TimeLayout = next()
			log.Config(log.WithTimeLayout(f.TimeLayout))

		case "--log-pretty", "--no-log-pretty":
			if v, ok := flag(strings.HasPrefix(name, "--no-")); ok {
				f.Pretty = v
				log.Config(log.WithPretty(v))
			}

		case "--log-caller", "--no-log-caller":
			if v, ok := flag(strings.HasPrefix(name, "--no-")); ok {
				f.Caller = v
				log.Config(log.WithCaller(v))
			}
		}
	}
}
