package repl

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// builtinSignatures holds parameter names of common expr-lang builtins.
// Source: https://expr-lang.org/docs/language-definition
var builtinSignatures = map[string][]string{
	"abs":           {"n"},
	"all":           {"array", "predicate"},
	"any":           {"array", "predicate"},
	"ceil":          {"n"},
	"concat":        {"...arrays"},
	"count":         {"array", "predicate"},
	"filter":        {"array", "predicate"},
	"find":          {"array", "predicate"},
	"findIndex":     {"array", "predicate"},
	"findLast":      {"array", "predicate"},
	"findLastIndex": {"array", "predicate"},
	"first":         {"array"},
	"flatten":       {"array"},
	"float":         {"v"},
	"floor":         {"n"},
	"groupBy":       {"array", "mapper"},
	"hasPrefix":     {"string", "prefix"},
	"hasSuffix":     {"string", "suffix"},
	"indexOf":       {"string", "substring"},
	"int":           {"v"},
	"join":          {"array", "separator"},
	"keys":          {"map"},
	"last":          {"array"},
	"len":           {"v"},
	"lower":         {"string"},
	"map":           {"array", "mapper"},
	"max":           {"...values"},
	"mean":          {"array"},
	"median":        {"array"},
	"min":           {"...values"},
	"none":          {"array", "predicate"},
	"one":           {"array", "predicate"},
	"reduce":        {"array", "reducer", "initial"},
	"repeat":        {"string", "n"},
	"replace":       {"string", "old", "new"},
	"reverse":       {"array"},
	"round":         {"n"},
	"sort":          {"array", "order"},
	"sortBy":        {"array", "mapper", "order"},
	"split":         {"string", "separator"},
	"string":        {"v"},
	"sum":           {"array"},
	"take":          {"array", "n"},
	"toJSON":        {"v"},
	"trim":          {"string"},
	"trimPrefix":    {"string", "prefix"},
	"trimSuffix":    {"string", "suffix"},
	"type":          {"v"},
	"uniq":          {"array"},
	"upper":         {"string"},
	"values":        {"map"},
}

var (
	signatureStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	signatureNameStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("6")).
				Bold(true)
	currentParamStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("11")).
				Bold(true)
)

// functionCall describes the call whose argument list contains the cursor.
type functionCall struct {
	name     string
	argIndex int
	inCall   bool
}

// detectFunctionCall finds the innermost unclosed call before cursor and the
// index of the argument being typed.
func detectFunctionCall(input string, cursor int) functionCall {
	cursor = min(cursor, len(input))

	open, depth := -1, 0

scan:
	for i := cursor - 1; i >= 0; i-- {
		switch input[i] {
		case ')', ']', '}':
			depth++

		case '(':
			if depth == 0 {
				open = i

				break scan
			}

			depth--

		case '[', '{':
			if depth == 0 {
				return functionCall{}
			}

			depth--
		}
	}

	if open < 0 {
		return functionCall{}
	}

	start := open
	for start > 0 && isIdentByte(input[start-1]) {
		start--
	}

	if start == open {
		return functionCall{}
	}

	call := functionCall{name: input[start:open], inCall: true}

	depth = 0

	for _, c := range []byte(input[open+1 : cursor]) {
		switch c {
		case '(', '[', '{':
			depth++

		case ')', ']', '}':
			depth--

		case ',':
			if depth == 0 {
				call.argIndex++
			}
		}
	}

	return call
}

func isIdentByte(c byte) bool {
	return c == '_' || c == '.' ||
		('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}

// renderSignatureHint renders name(params...) with the parameter at argIndex
// highlighted. A variadic parameter stays highlighted for all later arguments.
// Unknown functions render nothing.
func renderSignatureHint(name string, argIndex int) string {
	params, ok := builtinSignatures[name]
	if !ok {
		return ""
	}

	var b strings.Builder

	b.WriteString(signatureNameStyle.Render(name))
	b.WriteString(signatureStyle.Render("("))

	for i, param := range params {
		if i > 0 {
			b.WriteString(signatureStyle.Render(", "))
		}

		variadic := strings.HasPrefix(param, "...")
		if argIndex == i || (variadic && argIndex >= i) {
			b.WriteString(currentParamStyle.Render(param))
		} else {
			b.WriteString(signatureStyle.Render(param))
		}
	}

	b.WriteString(signatureStyle.Render(")"))

	return b.String()
}
