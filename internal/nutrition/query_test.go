package nutrition

import (
	"reflect"
	"testing"
)

func TestParseQueryNormalization(t *testing.T) {
	t.Parallel()

	q := ParseQuery("  Chicken   CURRY ")
	if q.Normalized != "chicken curry" {
		t.Fatalf("normalized = %q, want %q", q.Normalized, "chicken curry")
	}
	if !reflect.DeepEqual(q.Tokens, []string{"chicken", "curry"}) {
		t.Fatalf("tokens = %v", q.Tokens)
	}
}

func TestParseQueryCompoundDetection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw      string
		compound bool
	}{
		{"chicken curry", true},
		{"paneer butter masala", true},
		{"boiled egg", false},
		{"egg boiled", false},
		{"grilled chicken", false},
		{"apple", false},
		{"dal", false},
		{"a b", false},
		{"", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.raw, func(t *testing.T) {
			t.Parallel()
			q := ParseQuery(tt.raw)
			if q.IsCompoundDish != tt.compound {
				t.Fatalf("ParseQuery(%q).IsCompoundDish = %v, want %v", tt.raw, q.IsCompoundDish, tt.compound)
			}
		})
	}
}
