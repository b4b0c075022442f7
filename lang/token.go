package lang

//go:generate go tool stringer --linecomment --type Kind,PrimitiveType --output kind_string.go

import (
	"log/slog"
	"strconv"
)

// Kind classifies a token produced by [Tokenize].
type Kind int

const (
	KindString     Kind = iota // string
	KindNumber                 // number
	KindHexColor               // hexcolor
	KindScope                  // scope identifier
	KindAny                    // identifier
	KindEquals                 // '='
	KindOpenBrace              // '{'
	KindCloseBrace             // '}'
	KindComment                // comment
	KindSpace                  // whitespace
)

// Position locates a token in the source text. Offset is a byte offset;
// Line and Column are 1-based, with Column counted in runes.
type Position struct {
	Offset int `json:"offset"`
	Line   int `json:"line"`
	Column int `json:"column"`
}

// String returns the position as "line:column".
func (p Position) String() string {
	return strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Column)
}

// LogValue implements slog.LogValuer.
func (p Position) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("line", p.Line),
		slog.Int("column", p.Column),
		slog.Int("offset", p.Offset),
	)
}

// Token is a classified run of source text.
type Token struct {
	Kind Kind
	Text string
	Pos  Position
}

// String returns a short description of the token for error messages.
func (t Token) String() string {
	switch t.Kind {
	case KindEquals, KindOpenBrace, KindCloseBrace:
		return t.Kind.String()

	default:
		return t.Kind.String() + " " + strconv.Quote(t.Text)
	}
}
