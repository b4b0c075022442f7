package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strconv"
	"sync"
	"time"
)

// ANSI color codes for pretty printing.
const (
	colorReset   = "\033[0m"
	colorGray    = "\033[90m"
	colorRed     = "\033[31m"
	colorGreen   = "\033[32m"
	colorYellow  = "\033[33m"
	colorBlue    = "\033[34m"
	colorMagenta = "\033[35m"
	colorCyan    = "\033[36m"
)

// field is one flattened key/value pair of a record. Keys of grouped
// attributes are joined with '.'.
type field struct {
	key string
	val slog.Value
}

// prettyHandler writes colorized records for reading on a terminal, either as
// a single line of key=value pairs or as an indented JSON-like block.
type prettyHandler struct {
	w      io.Writer
	mu     *sync.Mutex
	opts   slog.HandlerOptions
	format Format
	attrs  []field
	group  string
}

func newPrettyHandler(w io.Writer, format Format, opts *slog.HandlerOptions) *prettyHandler {
	return &prettyHandler{w: w, mu: &sync.Mutex{}, opts: *opts, format: format}
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	minLevel := slog.LevelInfo
	if h.opts.Level != nil {
		minLevel = h.opts.Level.Level()
	}

	return level >= minLevel
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *h
	c.attrs = append([]field(nil), h.attrs...)

	for _, a := range attrs {
		c.attrs = flatten(c.attrs, h.group, a)
	}

	return &c
}

func (h *prettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	c := *h
	c.group = join(h.group, name)

	return &c
}

func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	fields := make([]field, 0, 4+len(h.attrs)+r.NumAttrs())

	if !r.Time.IsZero() {
		fields = h.builtin(fields, slog.Time(slog.TimeKey, r.Time))
	}

	fields = h.builtin(fields, slog.Any(slog.LevelKey, r.Level))

	if h.opts.AddSource {
		if src := r.Source(); src != nil {
			fields = append(fields, field{
				slog.SourceKey,
				slog.StringValue(filepath.Base(src.File) + ":" + strconv.Itoa(src.Line)),
			})
		}
	}

	fields = append(fields, field{slog.MessageKey, slog.StringValue(r.Message)})
	fields = append(fields, h.attrs...)

	r.Attrs(func(a slog.Attr) bool {
		fields = flatten(fields, h.group, a)

		return true
	})

	var buf bytes.Buffer

	switch h.format {
	case FormatJSON:
		writeBlock(&buf, fields, r.Level)

	default:
		writeLine(&buf, fields, r.Level)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

// builtin passes a record's built-in attribute through ReplaceAttr.
func (h *prettyHandler) builtin(fields []field, a slog.Attr) []field {
	if h.opts.ReplaceAttr != nil {
		a = h.opts.ReplaceAttr(nil, a)
	}

	if a.Key == "" {
		return fields
	}

	return append(fields, field{a.Key, a.Value})
}

// flatten appends a to fields, resolving LogValuers and expanding groups.
func flatten(fields []field, prefix string, a slog.Attr) []field {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return fields
	}

	if a.Value.Kind() != slog.KindGroup {
		return append(fields, field{join(prefix, a.Key), a.Value})
	}

	prefix = join(prefix, a.Key)
	for _, sub := range a.Value.Group() {
		fields = flatten(fields, prefix, sub)
	}

	return fields
}

func join(prefix, key string) string {
	switch {
	case prefix == "":
		return key

	case key == "":
		return prefix

	default:
		return prefix + "." + key
	}
}

func writeLine(buf *bytes.Buffer, fields []field, level slog.Level) {
	for i, f := range fields {
		if i > 0 {
			buf.WriteByte(' ')
		}

		buf.WriteString(colorGray)
		buf.WriteString(f.key)
		buf.WriteString(colorReset)
		buf.WriteByte('=')
		writeField(buf, f, level)
	}

	buf.WriteByte('\n')
}

func writeBlock(buf *bytes.Buffer, fields []field, level slog.Level) {
	buf.WriteString("{\n")

	for i, f := range fields {
		if i > 0 {
			buf.WriteString(",\n")
		}

		buf.WriteString("  ")
		buf.WriteString(colorGray)
		buf.WriteString(f.key)
		buf.WriteString(colorReset)
		buf.WriteString(": ")
		writeField(buf, f, level)
	}

	buf.WriteString("\n}\n")
}

func writeField(buf *bytes.Buffer, f field, level slog.Level) {
	if f.key == slog.LevelKey {
		colored(buf, levelColor(level), f.val.String())

		return
	}

	writeValue(buf, f.val)
}

func levelColor(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return colorRed

	case level >= slog.LevelWarn:
		return colorYellow

	case level >= slog.LevelInfo:
		return colorGreen

	default:
		return colorBlue
	}
}

func writeValue(buf *bytes.Buffer, v slog.Value) {
	switch v.Kind() {
	case slog.KindString:
		colored(buf, colorCyan, v.String())

	case slog.KindInt64:
		colored(buf, colorYellow, strconv.FormatInt(v.Int64(), 10))

	case slog.KindUint64:
		colored(buf, colorYellow, strconv.FormatUint(v.Uint64(), 10))

	case slog.KindFloat64:
		colored(buf, colorYellow, strconv.FormatFloat(v.Float64(), 'g', -1, 64))

	case slog.KindBool:
		if v.Bool() {
			colored(buf, colorGreen, "true")
		} else {
			colored(buf, colorRed, "false")
		}

	case slog.KindDuration:
		colored(buf, colorMagenta, v.Duration().String())

	case slog.KindTime:
		colored(buf, colorBlue, v.Time().Format(time.RFC3339))

	default:
		if v.Any() == nil {
			colored(buf, colorGray, "null")

			return
		}

		colored(buf, colorCyan, fmt.Sprint(v.Any()))
	}
}

func colored(buf *bytes.Buffer, color, s string) {
	buf.WriteString(color)
	buf.WriteString(s)
	buf.WriteString(colorReset)
}
