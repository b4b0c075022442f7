package lang

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

func TestQuery(t *testing.T) {
	prog, err := ParseString(context.Background(), stateDefinition)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		expr string
		want any
	}{
		{"STATE_TEST.id", int64(123)},
		{"STATE_TEST.provinces[0]", "x09198A"},
		{"len(STATE_TEST.traits)", 3},
		{"STATE_TEST.capped_resources.bg_logging + STATE_TEST.capped_resources.bg_fishing == 27", true},
		{`STATE_TEST.resource["type"]`, "bg_oil_extraction"},
		{`"bg_maize_farms" in STATE_TEST.arable_resources`, true},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := Query(context.Background(), prog, tt.expr)
			if err != nil {
				t.Fatalf("Query error: %v", err)
			}

			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Query(%q) = %#v, want %#v", tt.expr, got, tt.want)
			}
		})
	}
}

func TestQuery_Errors(t *testing.T) {
	prog, err := ParseString(context.Background(), "S = { n = 1 }")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := Query(context.Background(), prog, "S.n +"); !errors.Is(err, ErrQueryCompile) {
		t.Errorf("incomplete expression error = %v, want ErrQueryCompile", err)
	}

	if _, err := Query(context.Background(), prog, "MISSING"); !errors.Is(err, ErrQueryCompile) {
		t.Errorf("unknown name error = %v, want ErrQueryCompile", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Query(ctx, prog, "S.n"); !errors.Is(err, ErrQueryEvaluate) {
		t.Errorf("canceled context error = %v, want ErrQueryEvaluate", err)
	}
}

func TestKeys(t *testing.T) {
	prog, err := ParseString(context.Background(), "B = { x = 1 y = { z = 2 } l = { 1 } } A = { }")
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"A", "B", "B.l", "B.x", "B.y", "B.y.z"}
	if got := Keys(prog); !reflect.DeepEqual(got, want) {
		t.Errorf("Keys = %v, want %v", got, want)
	}
}
