package lang

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"
)

// Predefined errors (sentinel values).
var (
	ErrLexical          = NewError("lexical error")
	ErrSyntax           = NewError("syntax error")
	ErrNumberRange      = NewError("number out of range")
	ErrMaxDepthExceeded = NewError("maximum nesting depth exceeded")
	ErrReadInput        = NewError("failed to read input")
	ErrQueryCompile     = NewError("query compilation failed")
	ErrQueryEvaluate    = NewError("query evaluation failed")
)

// Error represents an error with optional structured logging attributes.
// It implements both error and slog.LogValuer interfaces.
type Error struct {
	msg   string
	err   error       // Wrapped error (for errors.Unwrap)
	attrs []slog.Attr // Attributes for structured logging
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// WrapError wraps a standard error into an Error.
// Errors that already are (or wrap) an *Error are returned as is, except for
// positioned lexical and syntax errors, which are wrapped to keep their detail.
func WrapError(err error) *Error {
	var (
		le *LexicalError
		se *SyntaxError
	)

	if errors.As(err, &le) || errors.As(err, &se) {
		return &Error{err: err}
	}

	ee := &Error{}
	if errors.As(err, &ee) {
		return ee
	}

	return &Error{err: err}
}

// Error implements the error interface.
func (e *Error) Error() string {
	// Build error message using the first available format,
	// depending on which fields are set:
	//
	//   1. "<msg>: <err>" // base and wrapped error both set
	//   2. "<msg>"        // wrapped error is nil
	//   3. "<err>"        // base error message is empty
	//   4. ""             // no fields are set
	part := make([]string, 0, 2)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is the same sentinel, so that errors derived from
// a sentinel with Wrap or With still match it.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t.err != nil || len(t.attrs) > 0 {
		return false
	}

	return t.msg != "" && t.msg == e.msg
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+2)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		msg:   e.msg,
		err:   err,
		attrs: e.attrs, // Share attrs
	}
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	return &Error{
		msg:   e.msg,
		err:   e.err,
		attrs: newAttrs,
	}
}

// maxRemaining bounds the input excerpt kept by a LexicalError.
const maxRemaining = 32

// LexicalError reports input that matches none of the tokenizer rules.
type LexicalError struct {
	Pos       Position
	Remaining string // input from Pos onward, truncated
	Source    string // full source, used to render a snippet when set
}

func newLexicalError(source string, pos Position) *LexicalError {
	rest := source[pos.Offset:]
	if r := []rune(rest); len(r) > maxRemaining {
		rest = string(r[:maxRemaining]) + "…"
	}

	return &LexicalError{Pos: pos, Remaining: rest, Source: source}
}

// Error implements the error interface.
func (e *LexicalError) Error() string {
	var buf strings.Builder

	buf.WriteString("unrecognized input at line ")
	buf.WriteString(strconv.Itoa(e.Pos.Line))
	buf.WriteString(", column ")
	buf.WriteString(strconv.Itoa(e.Pos.Column))
	buf.WriteString(": ")
	buf.WriteString(strconv.Quote(e.Remaining))
	buf.WriteString(snippet(e.Source, e.Pos))

	return buf.String()
}

// Unwrap returns [ErrLexical].
func (e *LexicalError) Unwrap() error { return ErrLexical }

// LogValue implements slog.LogValuer.
func (e *LexicalError) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("error", ErrLexical.msg),
		slog.Any("position", e.Pos),
		slog.String("remaining", e.Remaining),
	)
}

// SyntaxError reports a token sequence that no grammar alternative accepts.
// Found is nil when the input ended early.
type SyntaxError struct {
	Pos      Position
	Expected []string
	Found    *Token
	Source   string // full source, used to render a snippet when set
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	var buf strings.Builder

	buf.WriteString("line ")
	buf.WriteString(strconv.Itoa(e.Pos.Line))
	buf.WriteString(", column ")
	buf.WriteString(strconv.Itoa(e.Pos.Column))
	buf.WriteString(": expected ")

	switch len(e.Expected) {
	case 0:
		buf.WriteString("nothing")
	case 1:
		buf.WriteString(e.Expected[0])
	default:
		buf.WriteString("one of ")
		buf.WriteString(strings.Join(e.Expected, ", "))
	}

	buf.WriteString(", found ")
	buf.WriteString(e.found())
	buf.WriteString(snippet(e.Source, e.Pos))

	return buf.String()
}

func (e *SyntaxError) found() string {
	if e.Found == nil {
		return "end of input"
	}

	return e.Found.String()
}

// Unwrap returns [ErrSyntax].
func (e *SyntaxError) Unwrap() error { return ErrSyntax }

// LogValue implements slog.LogValuer.
func (e *SyntaxError) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("error", ErrSyntax.msg),
		slog.Any("position", e.Pos),
		slog.Any("expected", e.Expected),
		slog.String("found", e.found()),
	)
}

// snippet renders the source line containing pos with a caret under the
// offending column. It returns "" when source is empty or pos is out of range.
func snippet(source string, pos Position) string {
	if source == "" {
		return ""
	}

	lines := strings.Split(source, "\n")
	if pos.Line <= 0 || pos.Line > len(lines) {
		return ""
	}

	var buf strings.Builder

	lineNum := strconv.Itoa(pos.Line)

	buf.WriteString("\n  ")
	buf.WriteString(lineNum)
	buf.WriteString(" | ")
	buf.WriteString(strings.TrimRight(lines[pos.Line-1], "\r"))
	buf.WriteRune('\n')

	// +5 accounts for: 2 leading spaces + " | " (3 chars)
	padding := strings.Repeat(" ", len(lineNum)+5)
	if pos.Column > 0 {
		padding += strings.Repeat(" ", pos.Column-1)
	}

	buf.WriteString(padding + "^")

	return buf.String()
}
