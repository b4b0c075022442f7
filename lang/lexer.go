package lang

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// rule recognizes one token kind at the start of its input. match returns the
// byte length of the recognized prefix, or 0 when the rule does not apply.
type rule struct {
	kind  Kind
	keep  bool
	match func(s string) int
}

// rules lists the tokenizer rules in priority order. The first rule that
// matches at a position wins, even when a later rule would match more text:
// this is what makes x155C07 a color and SCOPE a scope identifier.
var rules = [...]rule{
	{KindHexColor, true, matchHexColor},
	{KindString, true, matchString},
	{KindNumber, true, matchNumber},
	{KindScope, true, matchScope},
	{KindAny, true, matchAny},
	{KindEquals, true, matchByte('=')},
	{KindOpenBrace, true, matchByte('{')},
	{KindCloseBrace, true, matchByte('}')},
	{KindComment, false, matchLineComment},
	{KindComment, false, matchBlockComment},
	{KindSpace, false, matchSpace},
}

// Tokenize converts input into the sequence of significant tokens.
// Comments and whitespace are consumed but never emitted. Input that no rule
// recognizes halts tokenization with a *LexicalError.
func Tokenize(input string) ([]Token, error) {
	var (
		tokens []Token
		pos    = Position{Offset: 0, Line: 1, Column: 1}
	)

	for pos.Offset < len(input) {
		rest := input[pos.Offset:]

		var (
			matched rule
			n       int
		)

		for _, r := range rules {
			if n = r.match(rest); n > 0 {
				matched = r

				break
			}
		}

		if n == 0 {
			return nil, newLexicalError(input, pos)
		}

		text := rest[:n]

		if matched.keep {
			tokens = append(tokens, Token{Kind: matched.kind, Text: text, Pos: pos})
		}

		pos = advance(pos, text)
	}

	return tokens, nil
}

// advance returns the position following text.
func advance(pos Position, text string) Position {
	pos.Offset += len(text)

	if nl := strings.LastIndexByte(text, '\n'); nl >= 0 {
		pos.Line += strings.Count(text, "\n")
		pos.Column = 1 + utf8.RuneCountInString(text[nl+1:])
	} else {
		pos.Column += utf8.RuneCountInString(text)
	}

	return pos
}

// Character classification

func isDigit(b byte) bool { return '0' <= b && b <= '9' }

func isUpperHex(b byte) bool { return isDigit(b) || ('A' <= b && b <= 'F') }

func isScopeChar(b byte) bool { return isDigit(b) || ('A' <= b && b <= 'Z') || b == '_' }

func isWordChar(b byte) bool { return isScopeChar(b) || ('a' <= b && b <= 'z') }

// hexColorDigits is the number of hex digits following the 'x' of a color.
const hexColorDigits = 6

// matchHexColor matches "?x[0-9A-F]{6}"?.
func matchHexColor(s string) int {
	i := 0
	if i < len(s) && s[i] == '"' {
		i++
	}

	if i >= len(s) || s[i] != 'x' {
		return 0
	}

	i++

	for range hexColorDigits {
		if i >= len(s) || !isUpperHex(s[i]) {
			return 0
		}

		i++
	}

	if i < len(s) && s[i] == '"' {
		i++
	}

	return i
}

// matchString matches a double-quoted run in which a backslash escapes the
// character that follows it, including a quote.
func matchString(s string) int {
	if len(s) == 0 || s[0] != '"' {
		return 0
	}

	for i := 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++ // skip escaped byte
		case '"':
			return i + 1
		}
	}

	return 0 // unterminated
}

// matchNumber matches [+-]?[0-9]+(\.[0-9]+)?.
func matchNumber(s string) int {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}

	start := i
	for i < len(s) && isDigit(s[i]) {
		i++
	}

	if i == start {
		return 0
	}

	if i+1 < len(s) && s[i] == '.' && isDigit(s[i+1]) {
		i += 2
		for i < len(s) && isDigit(s[i]) {
			i++
		}
	}

	return i
}

// matchScope matches [A-Z0-9_]+.
func matchScope(s string) int {
	i := 0
	for i < len(s) && isScopeChar(s[i]) {
		i++
	}

	return i
}

// matchAny matches [A-Za-z0-9_]+.
func matchAny(s string) int {
	i := 0
	for i < len(s) && isWordChar(s[i]) {
		i++
	}

	return i
}

func matchByte(b byte) func(string) int {
	return func(s string) int {
		if len(s) > 0 && s[0] == b {
			return 1
		}

		return 0
	}
}

// matchLineComment matches '#' or "//" through the end of the line,
// including the newline when present.
func matchLineComment(s string) int {
	if !strings.HasPrefix(s, "#") && !strings.HasPrefix(s, "//") {
		return 0
	}

	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		return nl + 1
	}

	return len(s)
}

// matchBlockComment matches the shortest /* ... */ run.
func matchBlockComment(s string) int {
	if !strings.HasPrefix(s, "/*") {
		return 0
	}

	if end := strings.Index(s[2:], "*/"); end >= 0 {
		return end + 4
	}

	return 0 // unterminated
}

func matchSpace(s string) int {
	i := 0

	for i < len(s) {
		r, size := utf8.DecodeRuneInString(s[i:])
		if !unicode.IsSpace(r) {
			break
		}

		i += size
	}

	return i
}
