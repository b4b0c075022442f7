package lang

import (
	"context"
	"reflect"
	"testing"
)

const convertProgram = `
      SCOPE = {
        variable = 123
      }

      SCOPE_2 = {
        array = { 1 2 3 }

        set = {
          x = 1
          y = 2
          z = 3

          nested_set = {
            set2 = {
              set3 = {
                x = 1
              }
              y = 1
            }
          }
          array = {
            1
            2
            3
          }

          string = "test"
          number = 123
        }
      }
`

func TestProjectString(t *testing.T) {
	got, err := ProjectString(context.Background(), convertProgram)
	if err != nil {
		t.Fatalf("ProjectString error: %v", err)
	}

	want := map[string]any{
		"SCOPE": map[string]any{"variable": int64(123)},
		"SCOPE_2": map[string]any{
			"array": []any{int64(1), int64(2), int64(3)},
			"set": map[string]any{
				"x": int64(1),
				"y": int64(2),
				"z": int64(3),
				"nested_set": map[string]any{
					"set2": map[string]any{
						"set3": map[string]any{"x": int64(1)},
						"y":    int64(1),
					},
				},
				"array":  []any{int64(1), int64(2), int64(3)},
				"string": "test",
				"number": int64(123),
			},
		},
	}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("ProjectString =\n%#v\nwant\n%#v", got, want)
	}
}

func TestProject_LastWins(t *testing.T) {
	prog, err := ParseString(context.Background(), stateDefinition+"\nSTATE_TEST = { id = 7 }")
	if err != nil {
		t.Fatalf("ParseString error: %v", err)
	}

	got := Project(prog)

	state, ok := got["STATE_TEST"].(map[string]any)
	if !ok {
		t.Fatalf("STATE_TEST = %#v", got["STATE_TEST"])
	}

	if !reflect.DeepEqual(state, map[string]any{"id": int64(7)}) {
		t.Errorf("duplicate scope did not replace the first: %#v", state)
	}

	first := ProjectValue(prog.Scopes[0]).(map[string]any)

	resource := first["resource"]
	want := map[string]any{"type": "bg_oil_extraction", "undiscovered_amount": int64(5)}

	if !reflect.DeepEqual(resource, want) {
		t.Errorf("resource = %#v, want %#v", resource, want)
	}
}

func TestProjectValue(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want any
	}{
		{"number", Number(-4), int64(-4)},
		{"string", String("s"), "s"},
		{"hexcolor", hex("x0A0B0C"), "x0A0B0C"},
		{"boolean", Boolean(true), true},
		{"null", Null(), nil},
		{"empty array", Array{}, []any{}},
		{"mixed array", Array{Values: []Primitive{Number(1), String("a"), Null()}}, []any{int64(1), "a", nil}},
		{
			"set",
			Set{Variables: []Variable{{"a", Number(1)}, {"b", Array{}}}},
			map[string]any{"a": int64(1), "b": []any{}},
		},
		{
			"variable",
			Variable{"v", Set{Variables: []Variable{{"w", Boolean(false)}}}},
			map[string]any{"v": map[string]any{"w": false}},
		},
		{
			"scope",
			Scope{Name: "S", Variables: []Variable{{"a", Number(1)}, {"a", Number(2)}}},
			map[string]any{"a": int64(2)},
		},
		{
			"program",
			&Program{Scopes: []Scope{{Name: "S"}}},
			map[string]any{"S": map[string]any{}},
		},
		{"unknown", 42, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ProjectValue(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ProjectValue(%#v) = %#v, want %#v", tt.in, got, tt.want)
			}
		})
	}
}

func TestProject_EmptyArrayNotNil(t *testing.T) {
	got, err := ProjectString(context.Background(), "S = { a = { } }")
	if err != nil {
		t.Fatal(err)
	}

	arr, ok := got["S"].(map[string]any)["a"].([]any)
	if !ok || arr == nil {
		t.Errorf("a = %#v, want empty non-nil []any", got["S"].(map[string]any)["a"])
	}
}
