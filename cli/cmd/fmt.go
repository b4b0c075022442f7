package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/vic3def/lang"
)

// JSON prints the projection of a program as JSON.
type JSON struct {
	Indent int `default:"2" help:"Indent width, 0 for compact output." short:"i"`

	Source []string `arg:"" default:"-" help:"Source file(s) or '-' for stdin." name:"source" optional:""`
}

// Run executes the json command.
func (j *JSON) Run(ctx context.Context) error {
	prog, err := readProgram(ctx, "json", j.Source)
	if err != nil {
		return err
	}

	err = lang.FormatJSON(ctx, settingsFrom(ctx).Stdout, lang.Project(prog), j.Indent)
	if err != nil {
		return ErrWriteOutput.With(slog.String("format", "json")).Wrap(err)
	}

	return nil
}

// YAML prints the projection of a program as YAML.
type YAML struct {
	Indent int `default:"2" help:"Indent width, 0 for flow style." short:"i"`

	Source []string `arg:"" default:"-" help:"Source file(s) or '-' for stdin." name:"source" optional:""`
}

// Run executes the yaml command.
func (y *YAML) Run(ctx context.Context) error {
	prog, err := readProgram(ctx, "yaml", y.Source)
	if err != nil {
		return err
	}

	err = lang.FormatYAML(ctx, settingsFrom(ctx).Stdout, lang.Project(prog), y.Indent)
	if err != nil {
		return ErrWriteOutput.With(slog.String("format", "yaml")).Wrap(err)
	}

	return nil
}

// AST prints the syntax tree of a program as tagged JSON.
type AST struct {
	Source []string `arg:"" default:"-" help:"Source file(s) or '-' for stdin." name:"source" optional:""`
}

// Run executes the ast command.
func (a *AST) Run(ctx context.Context) error {
	prog, err := readProgram(ctx, "ast", a.Source)
	if err != nil {
		return err
	}

	if err := prog.Print(settingsFrom(ctx).Stdout); err != nil {
		return ErrWriteOutput.With(slog.String("format", "ast")).Wrap(err)
	}

	return nil
}

// Fmt rewrites a program in canonical form. Comments are not preserved.
type Fmt struct {
	Indent int `default:"4" help:"Indent width, 0 for one line per scope." short:"i"`

	Source []string `arg:"" default:"-" help:"Source file(s) or '-' for stdin." name:"source" optional:""`
}

// Run executes the fmt command.
func (f *Fmt) Run(ctx context.Context) error {
	prog, err := readProgram(ctx, "fmt", f.Source)
	if err != nil {
		return err
	}

	if err := prog.Format(settingsFrom(ctx).Stdout, f.Indent); err != nil {
		return ErrWriteOutput.With(slog.String("format", "native")).Wrap(err)
	}

	return nil
}
