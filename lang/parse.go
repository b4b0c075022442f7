package lang

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/klauspost/readahead"

	"github.com/ardnew/vic3def/log"
)

// Strategy selects how the grammar decides between a set and an array when it
// meets an opening brace. Both strategies accept exactly the same inputs and
// build identical trees.
type Strategy int

const (
	// Backtrack tries set, then array, then primitive, rewinding after each
	// failed attempt.
	Backtrack Strategy = iota
	// Predictive looks ahead at most three tokens to pick the branch.
	Predictive
)

var strategyNames = [...]string{Backtrack: "backtrack", Predictive: "predictive"}

// String returns the strategy name.
func (s Strategy) String() string {
	if s < 0 || int(s) >= len(strategyNames) {
		return "unknown"
	}

	return strategyNames[s]
}

// MarshalText implements encoding.TextMarshaler.
func (s Strategy) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Strategy) UnmarshalText(text []byte) error {
	name := strings.ToLower(strings.TrimSpace(string(text)))
	for i, n := range strategyNames {
		if n == name {
			*s = Strategy(i)

			return nil
		}
	}

	return NewError("invalid strategy").With(slog.String("strategy", string(text)))
}

// config holds the options of a single parse.
type config struct {
	logger   log.Logger
	strategy Strategy
	maxDepth int
}

// Option configures parsing behavior.
type Option func(*config)

// WithLogger sets the structured logger for trace-level debugging.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithStrategy sets the strategy used to resolve braced values.
func WithStrategy(strategy Strategy) Option {
	return func(c *config) { c.strategy = strategy }
}

// WithMaxDepth limits brace nesting; deeper input fails with
// [ErrMaxDepthExceeded]. Values less than 1, the default, disable the limit.
func WithMaxDepth(depth int) Option {
	return func(c *config) { c.maxDepth = depth }
}

func makeConfig(opts ...Option) config {
	cfg := config{strategy: Backtrack}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// ParseString tokenizes and parses a complete program.
func ParseString(ctx context.Context, input string, opts ...Option) (*Program, error) {
	cfg := makeConfig(opts...)

	cfg.logger.TraceContext(ctx, "parse start",
		slog.Int("source_length", len(input)),
		slog.String("strategy", cfg.strategy.String()),
	)

	prog, err := parse(cfg, input, func(g *grammar) parser[*Program] { return g.program })
	if err != nil {
		cfg.logger.TraceContext(ctx, "parse failed", slog.Any("error", err))

		return nil, err
	}

	cfg.logger.TraceContext(ctx, "parse complete",
		slog.Int("scope_count", len(prog.Scopes)))

	return prog, nil
}

// ParseReader reads all of r and parses it as a complete program.
func ParseReader(ctx context.Context, r io.Reader, opts ...Option) (*Program, error) {
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return nil, ErrReadInput.Wrap(err).
			With(slog.String("source", "reader"))
	}

	makeConfig(opts...).logger.TraceContext(ctx, "read input",
		slog.Int("source_bytes", len(data)),
		slog.Bool("read_ahead", true),
	)

	return ParseString(ctx, string(data), opts...)
}

// ProjectString parses a complete program and projects it to plain values.
func ProjectString(ctx context.Context, input string, opts ...Option) (map[string]any, error) {
	prog, err := ParseString(ctx, input, opts...)
	if err != nil {
		return nil, err
	}

	return Project(prog), nil
}

// ParsePrimitive parses input consisting of exactly one primitive.
func ParsePrimitive(input string, opts ...Option) (Primitive, error) {
	return parse(makeConfig(opts...), input, func(g *grammar) parser[Primitive] {
		return complete(g.primitive)
	})
}

// ParseValue parses input consisting of exactly one value: a set, an array,
// or a primitive.
func ParseValue(input string, opts ...Option) (Value, error) {
	return parse(makeConfig(opts...), input, func(g *grammar) parser[Value] {
		return complete(g.value)
	})
}

// ParseVariable parses input consisting of exactly one assignment.
func ParseVariable(input string, opts ...Option) (Variable, error) {
	return parse(makeConfig(opts...), input, func(g *grammar) parser[Variable] {
		return complete(g.variable)
	})
}

// ParseArray parses input consisting of exactly one braced list of
// primitives.
func ParseArray(input string, opts ...Option) (Array, error) {
	return parse(makeConfig(opts...), input, func(g *grammar) parser[Array] {
		return complete(g.array)
	})
}

// ParseSet parses input consisting of exactly one braced list of assignments.
// The result is an empty [Array] when the braces are empty.
func ParseSet(input string, opts ...Option) (Value, error) {
	return parse(makeConfig(opts...), input, func(g *grammar) parser[Value] {
		return complete(g.set)
	})
}

// ParseScope parses input consisting of exactly one scope.
func ParseScope(input string, opts ...Option) (Scope, error) {
	return parse(makeConfig(opts...), input, func(g *grammar) parser[Scope] {
		return complete(g.scope)
	})
}

// parse tokenizes input and runs the production chosen by start on a grammar
// built for cfg.
func parse[T any](cfg config, input string, start func(*grammar) parser[T]) (T, error) {
	tokens, err := Tokenize(input)
	if err != nil {
		var zero T

		return zero, err
	}

	return run(start(newGrammar(cfg.strategy)), tokens, input, cfg.maxDepth)
}
