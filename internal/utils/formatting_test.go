package utils

import (
	"strings"
	"testing"
	"time"
)

func TestFormatMask(t *testing.T) {
	tests := []struct {
		digits   string
		mask     string
		expected string
	}{
		{"11987654321", "(00) 00000-0000", "(11) 98765-4321"},
		{"119", "(00) 00000-0000", "(11) 9"},
		{"52998224725", "000.000.000-00", "529.982.247-25"},
		{"01310100", "00000-000", "01310-100"},
		{"013101009", "00000-000", "01310-1009"},
		{"", "00000-000", ""},
	}

	for _, tt := range tests {
		if got := FormatMask(tt.digits, tt.mask); got != tt.expected {
			t.Errorf("FormatMask(%q, %q) = %q, expected %q", tt.digits, tt.mask, got, tt.expected)
		}
	}
}

func TestTruncateString(t *testing.T) {
	if got := TruncateString("São Paulo", 20); got != "São Paulo" {
		t.Errorf("Expected string unchanged, got '%s'", got)
	}
	if got := TruncateString("Avenida Paulista", 10); got != "Avenida..." {
		t.Errorf("Expected 'Avenida...', got '%s'", got)
	}
}

func TestPadString(t *testing.T) {
	if got := PadString("CEP", 6, '.'); got != "CEP..." {
		t.Errorf("Expected 'CEP...', got '%s'", got)
	}
}

func TestFormatStepIndicator(t *testing.T) {
	got := FormatStepIndicator(1, 3, []string{"Personal", "Address", "Banking"})
	expected := "✓ → [Address] → Banking"
	if got != expected {
		t.Errorf("Expected '%s', got '%s'", expected, got)
	}
}

func TestFormatTimeAgo(t *testing.T) {
	if got := FormatTimeAgo(time.Now()); got != "just now" {
		t.Errorf("Expected 'just now', got '%s'", got)
	}
	if got := FormatTimeAgo(time.Now().Add(-2 * time.Hour)); !strings.HasPrefix(got, "2 hours") {
		t.Errorf("Expected '2 hours ago', got '%s'", got)
	}
}
