package textutil

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSanitizeSheetName(t *testing.T) {
	tests := []struct {
		name, in, want string
	}{
		{"plain", "MAYA", "MAYA"},
		{"forbidden characters", "ABC/2024:17*?", "ABC202417"},
		{"brackets", "Crudo [v2]", "Crudo (v2)"},
		{"apostrophes", "'Olmeca'", "Olmeca"},
		{"empty", "  ", "fallback"},
		{"only forbidden", "/\\?*", "fallback"},
		{"long", strings.Repeat("X", 40), strings.Repeat("X", 31)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeSheetName(tt.in, "fallback"); got != tt.want {
				t.Fatalf("SanitizeSheetName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSanitizeSheetNameCountsRunes(t *testing.T) {
	got := SanitizeSheetName(strings.Repeat("Ñ", 40), "x")
	if utf8.RuneCountInString(got) != MaxSheetNameLength {
		t.Fatalf("expected %d runes, got %d", MaxSheetNameLength, utf8.RuneCountInString(got))
	}
	if !utf8.ValidString(got) {
		t.Fatal("truncation split a rune")
	}
}

func TestSheetNamerUniqueness(t *testing.T) {
	n := NewSheetNamer("Resumen", "Leyenda")

	if got := n.Next("resumen"); got != "resumen~2" {
		t.Fatalf("expected reserved name to be suffixed, got %q", got)
	}
	if got := n.Next("MAYA"); got != "MAYA" {
		t.Fatalf("unexpected name %q", got)
	}
	if got := n.Next("maya"); got != "maya~2" {
		t.Fatalf("expected case-insensitive clash, got %q", got)
	}
	long := strings.Repeat("A", 31)
	first := n.Next(long)
	second := n.Next(long)
	if first != long || second != strings.Repeat("A", 29)+"~2" {
		t.Fatalf("unexpected long names %q, %q", first, second)
	}
}
