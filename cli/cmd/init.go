package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"reflect"
	"slices"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/vic3def/lang"
	"github.com/ardnew/vic3def/log"
	"github.com/ardnew/vic3def/profile"
)

// defaultConfigIndent is the indent width of the generated configuration file.
const defaultConfigIndent = 4

// Init writes a configuration file holding the current flag values.
type Init struct {
	Force bool `help:"Overwrite existing configuration file" short:"f"`
}

// Run executes the init command.
func (i *Init) Run(ctx context.Context) error {
	ktx := kongContextFrom(ctx)
	if ktx == nil {
		panic("internal error: kong context undefined")
	}

	confPath, ok := ktx.Model.Vars()[ConfigIdentifier]
	if !ok {
		panic("internal error: config path undefined")
	}

	if _, err := os.Stat(confPath); err == nil && !i.Force {
		return ErrWriteConfig.
			With(slog.String("file", confPath), slog.Bool("exists", true)).
			Wrap(ErrFileExists)
	}

	file, err := os.Create(confPath)
	if err != nil {
		return ErrWriteConfig.With(slog.String("file", confPath)).Wrap(err)
	}
	defer file.Close()

	prog := configProgram(ktx.Model.Flags, ktx.FlagValue)

	if err := prog.Format(file, defaultConfigIndent); err != nil {
		return ErrWriteConfig.With(slog.String("file", confPath)).Wrap(err)
	}

	log.DebugContext(ctx, "initialized configuration file",
		slog.String("path", confPath),
		slog.Int("flag_count", len(prog.Scopes[0].Variables)),
	)

	return nil
}

// configProgram builds the configuration scope from the given flags. Flag
// names become variable names with hyphens replaced by underscores.
func configProgram(flags []*kong.Flag, value func(*kong.Flag) any) *lang.Program {
	ignore := []string{"help", "version", profile.Tag}

	var vars []lang.Variable

	for _, flag := range flags {
		if flag.Hidden || slices.ContainsFunc(ignore, func(s string) bool {
			return strings.HasPrefix(flag.Name, s)
		}) {
			continue
		}

		v := configValue(value(flag))
		if v == nil {
			continue
		}

		vars = append(vars, lang.Variable{
			Name:  strings.ReplaceAll(flag.Name, "-", "_"),
			Value: v,
		})
	}

	return &lang.Program{Scopes: []lang.Scope{{Name: ConfigScope, Variables: vars}}}
}

// configValue converts a flag value to a syntax tree value, or nil for unset
// and empty values.
func configValue(val any) lang.Value {
	if val == nil {
		return nil
	}

	if s, ok := val.(fmt.Stringer); ok && !isPlain(val) {
		return lang.String(s.String())
	}

	rv := reflect.ValueOf(val)

	switch rv.Kind() {
	case reflect.Bool:
		return lang.Boolean(rv.Bool())

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return lang.Number(rv.Int())

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32:
		return lang.Number(int64(rv.Uint()))

	case reflect.String:
		if rv.Len() == 0 {
			return nil
		}

		return lang.String(rv.String())

	case reflect.Slice:
		if rv.Len() == 0 {
			return nil
		}

		arr := lang.Array{Values: make([]lang.Primitive, 0, rv.Len())}

		for i := range rv.Len() {
			p, ok := configValue(rv.Index(i).Interface()).(lang.Primitive)
			if !ok {
				return nil
			}

			arr.Values = append(arr.Values, p)
		}

		return arr

	default:
		return lang.String(fmt.Sprint(val))
	}
}

// isPlain reports whether val has a builtin kind that converts directly.
func isPlain(val any) bool {
	switch val.(type) {
	case bool, string, int, int64, []string, []int:
		return true
	}

	return false
}
