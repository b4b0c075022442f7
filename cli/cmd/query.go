package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/vic3def/lang"
)

// Query evaluates an expression against the projection of a program and
// prints the result as JSON.
type Query struct {
	Indent int `default:"2" help:"Indent width, 0 for compact output." short:"i"`

	Expr   string   `arg:"" help:"Expression to evaluate; scopes are top-level variables." name:"expr"`
	Source []string `arg:"" default:"-" help:"Source file(s) or '-' for stdin." name:"source" optional:""`
}

// Run executes the query command.
func (q *Query) Run(ctx context.Context) error {
	prog, err := readProgram(ctx, "query", q.Source)
	if err != nil {
		return err
	}

	result, err := lang.Query(ctx, prog, q.Expr)
	if err != nil {
		return ErrQuery.With(slog.String("expr", q.Expr)).Wrap(err)
	}

	err = lang.FormatJSON(ctx, settingsFrom(ctx).Stdout, result, q.Indent)
	if err != nil {
		return ErrWriteOutput.With(slog.String("format", "json")).Wrap(err)
	}

	return nil
}
