package cli

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/vic3def/lang"
	"github.com/ardnew/vic3def/log"
)

// resolve returns a [kong.ConfigurationLoader] reading flag values from the
// named scope of a configuration file written in the definition language.
//
// It can be used with [kong.Configuration] like this:
//
//	kong.Configuration(resolve(ctx, "CONFIG"), "/path/to/config")
//
// Each variable of the scope names a flag, with hyphens written as
// underscores:
//
//	CONFIG = {
//	    log_level = "debug"
//	    log_pretty = false
//	    path = { "/games/victoria3/game" }
//	}
//
// Command-line flags override configuration values. A file that does not
// parse, or has no such scope, is reported and otherwise ignored.
func resolve(ctx context.Context, scope string) kong.ConfigurationLoader {
	return func(r io.Reader) (kong.Resolver, error) {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, err
		}

		proj, err := lang.ProjectString(ctx, string(data))
		if err != nil {
			log.WarnContext(ctx, "ignoring configuration", slog.Any("error", err))

			return config{}, nil
		}

		vars, ok := proj[scope].(map[string]any)
		if !ok {
			log.DebugContext(ctx, "configuration scope undefined",
				slog.String("scope", scope))

			return config{}, nil
		}

		conf := make(config, len(vars))
		for name, value := range vars {
			if value = flagValue(value); value != nil {
				conf[name] = value
			}
		}

		return conf, nil
	}
}

// config implements [kong.Resolver] for configuration scopes.
type config map[string]any

// Validate implements [kong.Resolver].
func (config) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver].
func (r config) Resolve(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
	// Variable names cannot contain hyphens, so try both forms.
	for _, name := range []string{flag.Name, strings.ReplaceAll(flag.Name, "-", "_")} {
		if value, ok := r[name]; ok {
			return value, nil
		}
	}

	// Not found; kong uses the default.
	return nil, nil //nolint:nilnil
}

// flagValue converts a projected value into a form kong can decode. Kong
// parses numbers from strings, and nested sets have no flag equivalent.
func flagValue(value any) any {
	switch v := value.(type) {
	case int64:
		return strconv.FormatInt(v, 10)

	case string, bool:
		return v

	case []any:
		list := make([]any, 0, len(v))

		for _, elem := range v {
			if elem = flagValue(elem); elem != nil {
				list = append(list, elem)
			}
		}

		return list

	default:
		return nil
	}
}
