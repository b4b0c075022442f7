package lang

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"
)

// Format writes the program in native syntax. Sets are written one
// assignment per line, nested by indent spaces; arrays stay on one line.
// With indent 0 the whole program is written on a single line per scope.
//
// Comments and original layout are not preserved. For trees built by the
// parser, parsing the output yields a tree equal to p. A [Variable] used as a
// value has no syntax of its own; it is written as a one-entry set and reads
// back as a [Set].
func (p *Program) Format(w io.Writer, indent int) error {
	bw := bufio.NewWriter(w)
	f := formatter{w: bw, indent: indent}

	for _, s := range p.Scopes {
		f.printf("%s = ", s.Name)
		f.variables(s.Variables, 0)
		f.newline()
	}

	if f.err != nil {
		return f.err
	}

	return bw.Flush()
}

// formatter writes native syntax, remembering the first write error.
type formatter struct {
	w      io.Writer
	indent int
	err    error
}

func (f *formatter) printf(format string, args ...any) {
	if f.err == nil {
		_, f.err = fmt.Fprintf(f.w, format, args...)
	}
}

func (f *formatter) newline() { f.printf("\n") }

// open starts a nested line at depth.
func (f *formatter) open(depth int) {
	if f.indent > 0 {
		f.printf("\n%s", strings.Repeat(" ", depth*f.indent))
	} else {
		f.printf(" ")
	}
}

func (f *formatter) variables(vars []Variable, depth int) {
	if len(vars) == 0 {
		f.printf("{ }")

		return
	}

	f.printf("{")

	for _, v := range vars {
		f.open(depth + 1)
		f.printf("%s = ", v.Name)
		f.value(v.Value, depth+1)
	}

	f.open(depth)
	f.printf("}")
}

func (f *formatter) value(v Value, depth int) {
	switch v := v.(type) {
	case Primitive:
		f.printf("%s", v)

	case Array:
		f.printf("{")

		for _, p := range v.Values {
			f.printf(" %s", p)
		}

		f.printf(" }")

	case Set:
		f.variables(v.Variables, depth)

	case Variable:
		f.variables([]Variable{v}, depth)
	}
}

// FormatJSON writes v as JSON. A positive indent selects indented output.
func FormatJSON(_ context.Context, w io.Writer, v any, indent int) error {
	var (
		data []byte
		err  error
	)

	if indent > 0 {
		data, err = json.MarshalIndent(v, "", strings.Repeat(" ", indent))
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(data))

	return err
}

// FormatYAML writes v as YAML. A positive indent selects block style with
// that indent; otherwise flow style is used.
func FormatYAML(ctx context.Context, w io.Writer, v any, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	data, err := yaml.MarshalContext(ctx, v, opts...)
	if err != nil {
		return err
	}

	_, err = w.Write(data)

	return err
}
