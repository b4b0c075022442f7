package lang

import (
	"context"
	"log/slog"
	"slices"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Query evaluates an expr-lang expression against the projection of prog.
// Each scope is a top-level variable, and nested sets are reached with member
// access:
//
//	STATE_SVEALAND.provinces[0]
//	len(STATE_SVEALAND.capped_resources)
func Query(ctx context.Context, prog *Program, expression string) (any, error) {
	return Evaluate(ctx, Project(prog), expression)
}

// Evaluate compiles expression against env and runs it.
func Evaluate(ctx context.Context, env map[string]any, expression string) (any, error) {
	program, err := Compile(expression, env)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, ErrQueryEvaluate.Wrap(err).
			With(slog.String("source", expression))
	}

	result, err := vm.Run(program, env)
	if err != nil {
		return nil, ErrQueryEvaluate.Wrap(err).
			With(slog.String("source", expression))
	}

	return result, nil
}

// Compile checks expression against the names and types in env.
func Compile(expression string, env map[string]any) (*vm.Program, error) {
	program, err := expr.Compile(expression, expr.Env(env))
	if err != nil {
		return nil, ErrQueryCompile.Wrap(err).
			With(slog.String("source", expression))
	}

	return program, nil
}

// Keys lists the dotted path of every set member in the projection of prog,
// sorted. Scope names are paths of one element.
func Keys(prog *Program) []string {
	return KeysOf(Project(prog))
}

// KeysOf lists the dotted path of every map key reachable in env through
// nested maps, sorted.
func KeysOf(env map[string]any) []string {
	var keys []string

	var walk func(prefix string, m map[string]any)

	walk = func(prefix string, m map[string]any) {
		for k, v := range m {
			path := k
			if prefix != "" {
				path = prefix + "." + k
			}

			keys = append(keys, path)

			if sub, ok := v.(map[string]any); ok {
				walk(path, sub)
			}
		}
	}

	walk("", env)
	slices.Sort(keys)

	return keys
}
