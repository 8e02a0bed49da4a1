package styles

import "testing"

func TestFade(t *testing.T) {
	tests := []struct {
		name   string
		hex    string
		amount float64
		want   string
	}{
		{"none", "#6495ed", 0, "#6495ed"},
		{"full", "#6495ed", 1, "#ffffff"},
		{"half black", "#000000", 0.5, "#808080"},
		{"clamped", "#000000", 2, "#ffffff"},
		{"invalid", "blue", 0.5, "blue"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Fade(tt.hex, tt.amount); got != tt.want {
				t.Errorf("Fade(%q, %v) = %q, want %q", tt.hex, tt.amount, got, tt.want)
			}
		})
	}
}

func TestDarken(t *testing.T) {
	if got := Darken("#ffffff", 1); got != "#000000" {
		t.Errorf("Darken(white, 1) = %q, want #000000", got)
	}
	if got := Darken("#228b22", 0); got != "#228b22" {
		t.Errorf("Darken(x, 0) = %q, want unchanged", got)
	}
}

func TestTextOn(t *testing.T) {
	if got := TextOn("#ffff00", "#000000", "#ffffff"); got != "#000000" {
		t.Errorf("TextOn(yellow) = %q, want dark", got)
	}
	if got := TextOn("#1a1a1a", "#000000", "#ffffff"); got != "#ffffff" {
		t.Errorf("TextOn(near black) = %q, want light", got)
	}
}
