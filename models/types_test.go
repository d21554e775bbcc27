package models

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

func TestTagListUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"array form", `["a","b","c"]`, []string{"a", "b", "c"}},
		{"string form", `"a, b ,,c"`, []string{"a", "b", "c"}},
		{"messy array", `[" a ","","b"]`, []string{"a", "b"}},
		{"empty string", `""`, []string{}},
		{"null", `null`, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var tags TagList
			if err := json.Unmarshal([]byte(tt.in), &tags); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			got := tags.Normalize()
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Normalize() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTagListUnmarshal_RejectsNonString(t *testing.T) {
	var tags TagList
	if err := json.Unmarshal([]byte(`42`), &tags); err == nil {
		t.Error("expected error for numeric tags value")
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	// Normalizing an already-normalized comma-joined string yields the same string
	first := strings.Join(SplitTags("a, b ,,c"), ",")
	second := strings.Join(SplitTags(first), ",")
	if first != second {
		t.Errorf("normalization not idempotent: %q != %q", first, second)
	}
	if first != "a,b,c" {
		t.Errorf("expected a,b,c, got %q", first)
	}
}

func TestValidResourceType(t *testing.T) {
	for _, ok := range []string{"pdf", "epub", "video"} {
		if !ValidResourceType(ok) {
			t.Errorf("expected %q to be valid", ok)
		}
	}
	for _, bad := range []string{"", "PDF", "doc", "mp4"} {
		if ValidResourceType(bad) {
			t.Errorf("expected %q to be invalid", bad)
		}
	}
}
