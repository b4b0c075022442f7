package cmd

import (
	"context"
	"slices"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/vic3def/cli/cmd/repl"
	"github.com/ardnew/vic3def/pkg"
)

// Repl explores a program interactively with expressions.
type Repl struct {
	Source []string `arg:"" default:"-" help:"Source file(s) or '-' for stdin." name:"source" optional:""`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) error {
	prog, err := readProgram(ctx, "repl", r.Source)
	if err != nil {
		return err
	}

	s := settingsFrom(ctx)

	cacheDir := pkg.CacheDir()
	if ktx := kongContextFrom(ctx); ktx != nil {
		if dir, ok := ktx.Model.Vars()[CacheIdentifier]; ok {
			cacheDir = dir
		}
	}

	opts := []repl.Option{repl.WithParseOptions(s.parseOptions()...)}

	// Standard input was consumed by the program; read keys from the terminal.
	if len(r.Source) == 0 || slices.Contains(r.Source, stdinSource) {
		opts = append(opts, repl.WithProgramOptions(tea.WithInputTTY()))
	}

	return repl.Run(ctx, prog, cacheDir, s.Logger, opts...)
}
