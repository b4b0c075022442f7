package lang

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"
)

func TestError_Is(t *testing.T) {
	derived := ErrSyntax.Wrap(fmt.Errorf("inner")).With(slog.Int("n", 1))

	if !errors.Is(derived, ErrSyntax) {
		t.Error("derived error does not match its sentinel")
	}

	if errors.Is(derived, ErrLexical) {
		t.Error("derived error matches an unrelated sentinel")
	}

	if errors.Is(ErrSyntax, derived) {
		t.Error("sentinel matches an error carrying attributes")
	}
}

func TestError_Message(t *testing.T) {
	tests := []struct {
		err  *Error
		want string
	}{
		{NewError("base"), "base"},
		{NewError("base").Wrap(errors.New("cause")), "base: cause"},
		{WrapError(errors.New("cause")), "cause"},
		{&Error{}, ""},
	}

	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}

func TestError_WithIsImmutable(t *testing.T) {
	base := ErrReadInput.With(slog.String("a", "1"))
	_ = base.With(slog.String("b", "2"))

	if n := len(base.attrs); n != 1 {
		t.Errorf("With modified its receiver: %d attrs", n)
	}

	if len(ErrReadInput.attrs) != 0 {
		t.Error("With modified the sentinel")
	}
}

func TestWrapError_KeepsExisting(t *testing.T) {
	orig := ErrNumberRange.With(slog.String("text", "1"))
	wrapped := fmt.Errorf("context: %w", orig)

	if got := WrapError(wrapped); got != orig {
		t.Errorf("WrapError returned %v, want the wrapped *Error", got)
	}
}

func TestWrapError_KeepsSyntaxDetail(t *testing.T) {
	_, err := ParseString(t.Context(), "A = { a 2 }")
	if err == nil {
		t.Fatal("expected syntax error")
	}

	wrapped := WrapError(err).With(slog.String("file", "a.txt"))

	var se *SyntaxError
	if !errors.As(wrapped, &se) {
		t.Fatalf("wrapped error lost *SyntaxError: %v", wrapped)
	}

	if !errors.Is(wrapped, ErrSyntax) {
		t.Error("wrapped error should match ErrSyntax")
	}

	if wrapped.Error() != err.Error() {
		t.Errorf("message changed: %q", wrapped.Error())
	}
}

func TestSyntaxError_Message(t *testing.T) {
	found := Token{Kind: KindNumber, Text: "2", Pos: Position{Offset: 8, Line: 1, Column: 9}}
	err := &SyntaxError{
		Pos:      found.Pos,
		Expected: []string{"identifier", "'}'"},
		Found:    &found,
		Source:   "A = { a 2 }",
	}

	want := "line 1, column 9: expected one of identifier, '}', found number \"2\"\n" +
		"  1 | A = { a 2 }\n" +
		"              ^"

	if got := err.Error(); got != want {
		t.Errorf("Error() =\n%s\nwant\n%s", got, want)
	}
}

func TestLexicalError_Message(t *testing.T) {
	_, err := Tokenize("a = 1\nb = @")
	if err == nil {
		t.Fatal("Tokenize succeeded")
	}

	msg := err.Error()
	for _, want := range []string{"line 2, column 5", `"@"`, "2 | b = @", "^"} {
		if !strings.Contains(msg, want) {
			t.Errorf("message %q missing %q", msg, want)
		}
	}
}
