// Package lang parses the brace-delimited definition scripts used by Paradox
// games such as Victoria 3.
//
// A document is a sequence of scopes. Each scope assigns a set of named values,
// and values nest:
//
//	# comments start with '#' or "//"; /* block comments */ also work
//	STATE_SVEALAND = {
//	    id = 1
//	    subsistence_building = "building_subsistence_farms"
//	    provinces = { "x2C1A1E" "x1CE3A1" }
//	    traits = { state_trait_scandinavian_forests }
//	    capped_resources = {
//	        bg_logging = 12
//	        bg_iron_mining = 24
//	    }
//	    color = x145C07
//	}
//
// # Grammar
//
//	Program   → Scope* EOF
//	Scope     → SCOPE_ID '=' Set
//	Value     → Set | Array | Primitive
//	Set       → '{' Variable* '}'
//	Array     → '{' Primitive* '}'
//	Variable  → IDENT '=' Value
//	Primitive → NUMBER | HEXCOLOR | STRING | IDENT
//
// Tokens are recognized by the first rule that matches, in this order:
//
//	HEXCOLOR  "?x[0-9A-F]{6}"?
//	STRING    "([^"\\]|\\.)*"
//	NUMBER    [+-]?[0-9]+(\.[0-9]+)?
//	SCOPE_ID  [A-Z0-9_]+
//	IDENT     [A-Za-z0-9_]+
//
// The order matters: x145C07 is a color, not an identifier, and a word that
// starts with an uppercase letter, a digit, or an underscore begins with a
// scope identifier or a number. Variable names therefore start with a
// lowercase letter.
//
// A brace pair could open either a set or an array. "{ }" is an empty
// [Array]; a non-empty pair is a [Set] when it holds assignments and an
// [Array] when it holds primitives. Mixing the two is a syntax error.
//
// # Primitives
//
// Token text is classified by [Classify]: true and false are booleans, null
// is null, text starting with a number is a number truncated to its integer
// part, an optionally quoted x followed by six uppercase hex digits is a
// hexcolor, and anything else is a string with its quotes removed. Escape
// sequences inside strings are kept as written.
//
// # Projection
//
// [Project] flattens a [Program] into map[string]any, []any, int64, string,
// bool, and nil, with the last assignment winning when names repeat. The
// result is ready for [FormatJSON], [FormatYAML], or [Query].
package lang
