package textutil

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		s        string
		maxWidth int
		want     string
	}{
		{"fits", "Sword", 10, "Sword"},
		{"exact", "Sword", 5, "Sword"},
		{"ascii", "Excalibur", 6, "Excal…"},
		{"wide runes", "剣と盾の物語", 7, "剣と盾…"},
		{"one column", "Sword", 1, "…"},
		{"zero", "Sword", 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Truncate(tt.s, tt.maxWidth)
			if got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.s, tt.maxWidth, got, tt.want)
			}
			if tt.maxWidth > 0 && VisualWidth(got) > tt.maxWidth {
				t.Errorf("Truncate(%q, %d) width %d exceeds max", tt.s, tt.maxWidth, VisualWidth(got))
			}
		})
	}
}

func TestTruncateStyled_KeepsWidth(t *testing.T) {
	styled := lipgloss.NewStyle().Bold(true).Render("Excalibur the Sword")
	got := TruncateStyled(styled, 8)
	if w := VisualWidthStyled(got); w > 8 {
		t.Errorf("TruncateStyled width = %d, want <= 8", w)
	}
	if TruncateStyled(styled, 0) != "" {
		t.Error("TruncateStyled with zero width should be empty")
	}
}

func TestPadVisual(t *testing.T) {
	if got := PadRightVisual("ab", 5); got != "ab   " {
		t.Errorf("PadRightVisual = %q", got)
	}
	if got := PadLeftVisual("ab", 5); got != "   ab" {
		t.Errorf("PadLeftVisual = %q", got)
	}
	if got := PadRightVisual("剣", 4); VisualWidth(got) != 4 {
		t.Errorf("PadRightVisual wide rune width = %d, want 4", VisualWidth(got))
	}
	if got := PadRightVisual("abcdef", 4); got != "abc…" {
		t.Errorf("PadRightVisual overflow = %q", got)
	}
}
