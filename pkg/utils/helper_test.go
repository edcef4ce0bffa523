package utils

import (
	"strings"
	"testing"
)

func TestGenerateOrderIDFormat(t *testing.T) {
	id := GenerateOrderID()

	parts := strings.Split(id, "-")
	if len(parts) != 4 {
		t.Fatalf("GenerateOrderID() = %s, want 4 dash-separated parts", id)
	}
	if parts[0] != "CV" {
		t.Errorf("prefix = %s, want CV", parts[0])
	}
	if len(parts[1]) != 8 || len(parts[2]) != 6 || len(parts[3]) != 4 {
		t.Errorf("GenerateOrderID() = %s, want CV-YYYYMMDD-HHMMSS-NNNN", id)
	}
}

func TestParseInt(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  int
	}{
		{"empty uses default", "", 10},
		{"valid number", "25", 25},
		{"not a number uses default", "abc", 10},
		{"zero uses default", "0", 10},
		{"negative uses default", "-5", 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseInt(tt.value, 10); got != tt.want {
				t.Errorf("ParseInt(%q, 10) = %d, want %d", tt.value, got, tt.want)
			}
		})
	}
}
