package lang

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
)

const stateDefinition = `STATE_TEST = {
    id = 123
    subsistence_building = "building_subsistence_farms"
    provinces = { "x09198A" "x1870F2" "x21316A" "x23A418" "x27403E" xEF2FE4 xFCB8BC } # hex colors are their own type
    traits = { "state_trait_parana_river" "state_trait_mata_atlantica" state_trait_terra_roxa }
    city = "x544559"
    port = "x9D3688"
    farm = "x1870F2"
    mine = "xD2EC89"
    wood = "xD7EC24"
    arable_land = 199
    arable_resources = { "bg_maize_farms" "bg_livestock_ranches" "bg_coffee_plantations" bg_banana_plantations } # unquoted strings are valid
    capped_resources = {
        bg_logging = 22
        bg_fishing = 5
    }
    resource = {
        type = "bg_rubber"
        discovered_amount = 10
    }
    resource = {
        type = "bg_oil_extraction"
        undiscovered_amount = 5
    }
    naval_exit_id = 1234
}
`

// strategies runs fn once for each parse strategy.
func strategies(t *testing.T, fn func(t *testing.T, opt Option)) {
	t.Helper()

	for _, s := range []Strategy{Backtrack, Predictive} {
		t.Run(s.String(), func(t *testing.T) { fn(t, WithStrategy(s)) })
	}
}

func hex(s string) Primitive {
	p, ok := HexColor(s)
	if !ok {
		panic("invalid hexcolor " + s)
	}

	return p
}

func numbers(ns ...int64) Array {
	a := Array{}
	for _, n := range ns {
		a.Values = append(a.Values, Number(n))
	}

	return a
}

func strs(ss ...string) Array {
	a := Array{}
	for _, s := range ss {
		a.Values = append(a.Values, String(s))
	}

	return a
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Value
	}{
		{"number", "123", Number(123)},
		{"string", `"text"`, String("text")},
		{"numbers", "{ 1 2 3 }", numbers(1, 2, 3)},
		{"quoted numbers", `{ "1" "2" "3" }`, strs("1", "2", "3")},
		{"single element", "{ 1 }", numbers(1)},
		{"empty braces", "{ }", Array{}},
		{"hexcolors", "{ x123456 xABCDEF }", Array{Values: []Primitive{hex("x123456"), hex("xABCDEF")}}},
		{
			"mixed implicit strings",
			`{ test test_2 3 4 "5" }`,
			Array{Values: []Primitive{String("test"), String("test_2"), Number(3), Number(4), String("5")}},
		},
		{
			"set",
			`{ var = "one" }`,
			Set{Variables: []Variable{{Name: "var", Value: String("one")}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			strategies(t, func(t *testing.T, opt Option) {
				got, err := ParseValue(tt.input, opt)
				if err != nil {
					t.Fatalf("ParseValue(%q) error: %v", tt.input, err)
				}

				if !reflect.DeepEqual(got, tt.want) {
					t.Errorf("ParseValue(%q) = %#v, want %#v", tt.input, got, tt.want)
				}
			})
		})
	}
}

func TestParsePrimitive(t *testing.T) {
	tests := []struct {
		input string
		want  Primitive
	}{
		{"1", Number(1)},
		{`"1"`, String("1")},
		{"true", Boolean(true)},
		{"null", Null()},
		{`"xFFFFFF"`, hex("xFFFFFF")},
	}

	for _, tt := range tests {
		got, err := ParsePrimitive(tt.input)
		if err != nil {
			t.Fatalf("ParsePrimitive(%q) error: %v", tt.input, err)
		}

		if got != tt.want {
			t.Errorf("ParsePrimitive(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}

	for _, input := range []string{"{ 1 }", "1 2", "SCOPE", "="} {
		if _, err := ParsePrimitive(input); !errors.Is(err, ErrSyntax) {
			t.Errorf("ParsePrimitive(%q) error = %v, want ErrSyntax", input, err)
		}
	}
}

func TestParseVariable(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Variable
	}{
		{"number", "variable = 123", Variable{"variable", Number(123)}},
		{"implied string", "variable = implied_string_literal", Variable{"variable", String("implied_string_literal")}},
		{"boolean", "variable = true", Variable{"variable", Boolean(true)}},
		{"null", "variable = null", Variable{"variable", Null()}},
		{
			"nested",
			"variable = { variable = { variable = 123 } variable2 = 456 }",
			Variable{"variable", Set{Variables: []Variable{
				{"variable", Set{Variables: []Variable{{"variable", Number(123)}}}},
				{"variable2", Number(456)},
			}}},
		},
		{
			"dictionary",
			`dictionary = { one = "ett" two = "två" }`,
			Variable{"dictionary", Set{Variables: []Variable{
				{"one", String("ett")},
				{"two", String("två")},
			}}},
		},
		{"empty", "nothing = { }", Variable{"nothing", Array{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			strategies(t, func(t *testing.T, opt Option) {
				got, err := ParseVariable(tt.input, opt)
				if err != nil {
					t.Fatalf("ParseVariable(%q) error: %v", tt.input, err)
				}

				if !reflect.DeepEqual(got, tt.want) {
					t.Errorf("ParseVariable(%q) = %#v, want %#v", tt.input, got, tt.want)
				}
			})
		})
	}
}

func TestParseArray_RejectsAssignments(t *testing.T) {
	for _, input := range []string{
		`{ number = 1 "test" }`,
		`{ string = "1" number = 2 x000000 }`,
	} {
		_, err := ParseArray(input)
		if !errors.Is(err, ErrSyntax) {
			t.Errorf("ParseArray(%q) error = %v, want ErrSyntax", input, err)
		}
	}
}

func TestParseSet(t *testing.T) {
	got, err := ParseSet("{ }")
	if err != nil {
		t.Fatalf("ParseSet error: %v", err)
	}

	if !reflect.DeepEqual(got, Array{}) {
		t.Errorf("ParseSet(\"{ }\") = %#v, want empty Array", got)
	}

	if _, err := ParseSet("{ 1 2 }"); !errors.Is(err, ErrSyntax) {
		t.Errorf("ParseSet of primitives error = %v, want ErrSyntax", err)
	}
}

func TestParseScope(t *testing.T) {
	got, err := ParseScope("SCOPE = { var = 123 }")
	if err != nil {
		t.Fatalf("ParseScope error: %v", err)
	}

	want := Scope{Name: "SCOPE", Variables: []Variable{{"var", Number(123)}}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseScope = %#v, want %#v", got, want)
	}

	got, err = ParseScope("EMPTY = { }")
	if err != nil {
		t.Fatalf("ParseScope of empty scope error: %v", err)
	}

	if got.Name != "EMPTY" || len(got.Variables) != 0 {
		t.Errorf("ParseScope of empty scope = %#v", got)
	}
}

func TestParseScope_StateDefinition(t *testing.T) {
	strategies(t, func(t *testing.T, opt Option) {
		got, err := ParseScope(stateDefinition, opt)
		if err != nil {
			t.Fatalf("ParseScope error: %v", err)
		}

		want := Scope{Name: "STATE_TEST", Variables: []Variable{
			{"id", Number(123)},
			{"subsistence_building", String("building_subsistence_farms")},
			{"provinces", Array{Values: []Primitive{
				hex("x09198A"), hex("x1870F2"), hex("x21316A"), hex("x23A418"),
				hex("x27403E"), hex("xEF2FE4"), hex("xFCB8BC"),
			}}},
			{"traits", strs("state_trait_parana_river", "state_trait_mata_atlantica", "state_trait_terra_roxa")},
			{"city", hex("x544559")},
			{"port", hex("x9D3688")},
			{"farm", hex("x1870F2")},
			{"mine", hex("xD2EC89")},
			{"wood", hex("xD7EC24")},
			{"arable_land", Number(199)},
			{"arable_resources", strs("bg_maize_farms", "bg_livestock_ranches", "bg_coffee_plantations", "bg_banana_plantations")},
			{"capped_resources", Set{Variables: []Variable{
				{"bg_logging", Number(22)},
				{"bg_fishing", Number(5)},
			}}},
			{"resource", Set{Variables: []Variable{
				{"type", String("bg_rubber")},
				{"discovered_amount", Number(10)},
			}}},
			{"resource", Set{Variables: []Variable{
				{"type", String("bg_oil_extraction")},
				{"undiscovered_amount", Number(5)},
			}}},
			{"naval_exit_id", Number(1234)},
		}}

		if !reflect.DeepEqual(got, want) {
			t.Errorf("ParseScope =\n%#v\nwant\n%#v", got, want)
		}
	})
}

func TestParseString(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		input  string
		scopes []string
	}{
		{"empty", "", nil},
		{"comments only", "# nothing\n/* here */", nil},
		{"one scope", "SCOPE = { a = 1 }", []string{"SCOPE"}},
		{"two scopes", "SCOPE_ONE = { a = 1 }\nSCOPE_TWO = { b = { c d } }", []string{"SCOPE_ONE", "SCOPE_TWO"}},
		{"empty scope", "SCOPE = { }", []string{"SCOPE"}},
		{"duplicate scopes", "A = { x = 1 } A = { x = 2 }", []string{"A", "A"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog, err := ParseString(ctx, tt.input)
			if err != nil {
				t.Fatalf("ParseString error: %v", err)
			}

			var names []string
			for _, s := range prog.Scopes {
				names = append(names, s.Name)
			}

			if !reflect.DeepEqual(names, tt.scopes) {
				t.Errorf("scopes = %v, want %v", names, tt.scopes)
			}
		})
	}
}

func TestParseString_SyntaxErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		line     int
		column   int
		expected string // one of the expected descriptions
		found    string // "" for end of input
	}{
		{
			name:     "lowercase scope",
			input:    "scope = { a = 1 }",
			line:     1,
			column:   1,
			expected: "scope identifier",
			found:    "identifier",
		},
		{
			name:     "missing equals",
			input:    "SCOPE = { a 1 }",
			line:     1,
			column:   13,
			expected: "'='",
			found:    "number",
		},
		{
			name:     "mixed set and array",
			input:    "SCOPE = { a = { b = 1 2 } }",
			line:     1,
			column:   23,
			expected: "'}'",
			found:    "number",
		},
		{
			name:     "unclosed",
			input:    "SCOPE = { a = 1",
			line:     1,
			column:   16,
			expected: "'}'",
		},
		{
			name:     "scope body is not a set",
			input:    "SCOPE = 1",
			line:     1,
			column:   9,
			expected: "'{'",
			found:    "number",
		},
		{
			name:     "trailing tokens",
			input:    "SCOPE = { a = 1 } }",
			line:     1,
			column:   19,
			expected: "end of input",
			found:    "'}'",
		},
		{
			name:     "uppercase variable",
			input:    "SCOPE = { A = 1 }",
			line:     1,
			column:   11,
			expected: "identifier",
			found:    "scope identifier",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			strategies(t, func(t *testing.T, opt Option) {
				_, err := ParseString(context.Background(), tt.input, opt)
				if !errors.Is(err, ErrSyntax) {
					t.Fatalf("error = %v, want ErrSyntax", err)
				}

				var serr *SyntaxError
				if !errors.As(err, &serr) {
					t.Fatalf("error %T is not *SyntaxError", err)
				}

				if serr.Pos.Line != tt.line || serr.Pos.Column != tt.column {
					t.Errorf("position = %v, want %d:%d", serr.Pos, tt.line, tt.column)
				}

				if !strings.Contains(strings.Join(serr.Expected, "|"), tt.expected) {
					t.Errorf("expected = %v, want it to include %q", serr.Expected, tt.expected)
				}

				switch {
				case tt.found == "" && serr.Found != nil:
					t.Errorf("found = %v, want end of input", serr.Found)

				case tt.found != "" && (serr.Found == nil || !strings.HasPrefix(serr.Found.String(), tt.found)):
					t.Errorf("found = %v, want %s", serr.Found, tt.found)
				}

				if !strings.Contains(err.Error(), "^") {
					t.Errorf("error message has no snippet:\n%s", err)
				}
			})
		})
	}
}

func TestParseString_LexicalError(t *testing.T) {
	_, err := ParseString(context.Background(), "SCOPE = { a = ; }")
	if !errors.Is(err, ErrLexical) {
		t.Fatalf("error = %v, want ErrLexical", err)
	}
}

func TestParseString_NumberRange(t *testing.T) {
	strategies(t, func(t *testing.T, opt Option) {
		for _, input := range []string{
			"S = { a = 99999999999999999999 }",
			"S = { a = { 1 2 99999999999999999999 } }",
		} {
			_, err := ParseString(context.Background(), input, opt)
			if !errors.Is(err, ErrNumberRange) {
				t.Errorf("ParseString(%q) error = %v, want ErrNumberRange", input, err)
			}
		}
	})
}

func nested(depth int) string {
	return "S = " + strings.Repeat("{ a = ", depth-1) + "{ }" + strings.Repeat(" }", depth-1)
}

func TestParseString_MaxDepth(t *testing.T) {
	strategies(t, func(t *testing.T, opt Option) {
		ctx := context.Background()

		// Unlimited unless requested.
		for _, depth := range []int{100, 150, 1000} {
			if _, err := ParseString(ctx, nested(depth), opt); err != nil {
				t.Errorf("depth %d: unexpected error: %v", depth, err)
			}
		}

		if _, err := ParseString(ctx, nested(150), opt, WithMaxDepth(0)); err != nil {
			t.Errorf("WithMaxDepth(0): unexpected error: %v", err)
		}

		if _, err := ParseString(ctx, nested(3), opt, WithMaxDepth(3)); err != nil {
			t.Errorf("WithMaxDepth(3), depth 3: unexpected error: %v", err)
		}

		_, err := ParseString(ctx, nested(4), opt, WithMaxDepth(3))
		if !errors.Is(err, ErrMaxDepthExceeded) {
			t.Errorf("WithMaxDepth(3): error = %v, want ErrMaxDepthExceeded", err)
		}
	})
}

func TestParseReader(t *testing.T) {
	prog, err := ParseReader(context.Background(), strings.NewReader(stateDefinition))
	if err != nil {
		t.Fatalf("ParseReader error: %v", err)
	}

	if len(prog.Scopes) != 1 || prog.Scopes[0].Name != "STATE_TEST" {
		t.Errorf("scopes = %+v", prog.Scopes)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("boom") }

func TestParseReader_Error(t *testing.T) {
	_, err := ParseReader(context.Background(), failingReader{})
	if !errors.Is(err, ErrReadInput) {
		t.Errorf("error = %v, want ErrReadInput", err)
	}
}

func TestStrategy_Text(t *testing.T) {
	for _, s := range []Strategy{Backtrack, Predictive} {
		text, err := s.MarshalText()
		if err != nil {
			t.Fatal(err)
		}

		var got Strategy
		if err := got.UnmarshalText(text); err != nil {
			t.Fatalf("UnmarshalText(%q) error: %v", text, err)
		}

		if got != s {
			t.Errorf("UnmarshalText(%q) = %v, want %v", text, got, s)
		}
	}

	var s Strategy
	if err := s.UnmarshalText([]byte("greedy")); err == nil {
		t.Error("UnmarshalText(greedy) succeeded")
	}
}

func BenchmarkParseString(b *testing.B) {
	input := strings.Repeat(stateDefinition, 20)
	ctx := context.Background()

	for _, s := range []Strategy{Backtrack, Predictive} {
		b.Run(s.String(), func(b *testing.B) {
			b.SetBytes(int64(len(input)))
			b.ReportAllocs()

			for b.Loop() {
				if _, err := ParseString(ctx, input, WithStrategy(s)); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
