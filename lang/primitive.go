package lang

import (
	"log/slog"
	"strconv"
	"strings"
)

// PrimitiveType tags the payload carried by a [Primitive].
type PrimitiveType int

const (
	TypeNumber   PrimitiveType = iota // number
	TypeString                        // string
	TypeBoolean                       // boolean
	TypeNull                          // null
	TypeHexColor                      // hexcolor
)

// Primitive is a leaf value. Its fields are unexported so that the type tag
// and payload cannot disagree: a Primitive is only built by [Classify] or by
// one of the typed constructors.
type Primitive struct {
	typ  PrimitiveType
	num  int64
	text string
	flag bool
}

// Number returns a number primitive.
func Number(n int64) Primitive { return Primitive{typ: TypeNumber, num: n} }

// String returns a string primitive.
func String(s string) Primitive { return Primitive{typ: TypeString, text: s} }

// Boolean returns a boolean primitive.
func Boolean(b bool) Primitive { return Primitive{typ: TypeBoolean, flag: b} }

// Null returns the null primitive.
func Null() Primitive { return Primitive{typ: TypeNull} }

// HexColor returns a hexcolor primitive. The second result is false, and the
// zero Primitive is returned, unless s has the exact shape x[0-9A-F]{6}.
func HexColor(s string) (Primitive, bool) {
	if !IsHexColor(s) {
		return Primitive{}, false
	}

	return Primitive{typ: TypeHexColor, text: s}, true
}

// IsHexColor reports whether s is exactly 'x' followed by six uppercase hex
// digits.
func IsHexColor(s string) bool {
	return len(s) == 1+hexColorDigits && matchHexColor(s) == len(s) && s[0] == 'x'
}

// Type returns the primitive's type tag.
func (p Primitive) Type() PrimitiveType { return p.typ }

// Int returns the payload of a number primitive.
func (p Primitive) Int() (int64, bool) { return p.num, p.typ == TypeNumber }

// Bool returns the payload of a boolean primitive.
func (p Primitive) Bool() (bool, bool) { return p.flag, p.typ == TypeBoolean }

// Text returns the payload of a string or hexcolor primitive.
func (p Primitive) Text() (string, bool) {
	return p.text, p.typ == TypeString || p.typ == TypeHexColor
}

// Interface returns the payload as a plain Go value: int64, string, bool, or
// nil for null.
func (p Primitive) Interface() any {
	switch p.typ {
	case TypeNumber:
		return p.num

	case TypeBoolean:
		return p.flag

	case TypeString, TypeHexColor:
		return p.text

	default:
		return nil
	}
}

// String returns the primitive in DSL source form.
func (p Primitive) String() string {
	switch p.typ {
	case TypeNumber:
		return strconv.FormatInt(p.num, 10)

	case TypeBoolean:
		return strconv.FormatBool(p.flag)

	case TypeNull:
		return keywordNull

	case TypeHexColor:
		return p.text

	default:
		return quote(p.text)
	}
}

// quote returns text in a form that tokenizes back to text. A color with a
// quote on one side only, such as "x155C07, is a string that already
// carries its quote and is written as is.
func quote(text string) string {
	if n := matchHexColor(text); n > 0 && n == len(text) {
		return text
	}

	return `"` + text + `"`
}

// LogValue implements slog.LogValuer.
func (p Primitive) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("type", p.typ.String()),
		slog.Any("value", p.Interface()),
	)
}

const (
	keywordTrue  = "true"
	keywordFalse = "false"
	keywordNull  = "null"
)

// Classify decides which primitive kind the text of a single token denotes.
// Checks run in order and the first match wins:
//
//  1. "true" or "false" is a boolean.
//  2. "null" is null.
//  3. Text beginning with a number is a number. Only the integer part is kept;
//     a fraction is discarded.
//  4. With surrounding quotes removed, text shaped x[0-9A-F]{6} is a hexcolor.
//  5. Anything else is a string of the unquoted text.
//
// The only error is an integer part that does not fit in an int64.
func Classify(text string) (Primitive, error) {
	switch text {
	case keywordTrue:
		return Boolean(true), nil

	case keywordFalse:
		return Boolean(false), nil

	case keywordNull:
		return Null(), nil
	}

	if n := matchNumber(text); n > 0 {
		return classifyNumber(text[:n])
	}

	unquoted := unquote(text)

	if p, ok := HexColor(unquoted); ok {
		return p, nil
	}

	return String(unquoted), nil
}

func classifyNumber(text string) (Primitive, error) {
	whole, _, _ := strings.Cut(text, ".")

	n, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return Primitive{}, ErrNumberRange.Wrap(err).
			With(slog.String("text", text))
	}

	return Number(n), nil
}

// unquote strips one pair of surrounding double quotes. Escape sequences are
// kept verbatim.
func unquote(text string) string {
	if len(text) >= 2 && text[0] == '"' && text[len(text)-1] == '"' {
		return text[1 : len(text)-1]
	}

	return text
}
