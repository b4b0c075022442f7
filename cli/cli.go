package cli

import (
	"context"

	"github.com/alecthomas/kong"

	"github.com/ardnew/vic3def/cli/cmd"
	"github.com/ardnew/vic3def/lang"
	"github.com/ardnew/vic3def/log"
	"github.com/ardnew/vic3def/pkg"
)

// CLI is the top-level command-line interface for vic3def.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Version kong.VersionFlag `help:"Print version and exit."`

	Path     []string      `help:"Directories searched for relative source names, before ${pathEnv}." placeholder:"DIR" short:"I"`
	Strategy lang.Strategy `default:"backtrack" help:"Brace resolution strategy (backtrack, predictive)."`
	MaxDepth int           `default:"0"         help:"Maximum brace nesting depth, 0 for no limit."`

	JSON  cmd.JSON  `cmd:"" default:"withargs" help:"Print the projection as JSON."`
	YAML  cmd.YAML  `cmd:""                   help:"Print the projection as YAML."`
	AST   cmd.AST   `cmd:""                   help:"Print the syntax tree as tagged JSON."`
	Fmt   cmd.Fmt   `cmd:""                   help:"Rewrite sources in canonical form."`
	Query cmd.Query `cmd:""                   help:"Evaluate an expression against the projection."`
	Repl  cmd.Repl  `cmd:""                   help:"Explore sources interactively."`
	Init  cmd.Init  `cmd:""                   help:"Initialize configuration file."`
}

// Run executes the vic3def CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	if err := pkg.MkdirAll(); err != nil {
		return err
	}

	configFilePath := pkg.ConfigPath(cmd.ConfigIdentifier)

	vars := kong.Vars{
		cmd.ConfigIdentifier: configFilePath,
		cmd.CacheIdentifier:  pkg.CacheDir(),
		"version":            pkg.Version(),
		"pathEnv":            pkg.PathEnv,
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Logger flags are applied before parsing so that errors reported while
	// parsing use them regardless of flag position.
	cli.Log.scan(args)

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group()},
		),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				FlagsLast:           false,
				NoAppSummary:        false,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(kong.JSON, configFilePath+".json"),
		kong.Configuration(resolve(ctx, cmd.ConfigScope), configFilePath),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	cli.Log.start(ctx)

	ctx = cmd.WithContext(ctx, ktx)
	ctx = cmd.WithSettings(ctx, cmd.Settings{
		SearchPath: pkg.SearchPath(cli.Path...),
		Strategy:   cli.Strategy,
		MaxDepth:   cli.MaxDepth,
		Logger:     log.Default(),
	})

	// [pprofConfig.start] is no-op unless built with tag pprof and enabled.
	defer cli.Pprof.start(ctx)()

	return ktx.Run(ctx, &cli)
}
