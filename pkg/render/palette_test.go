package render

import (
	"image/color"
	"testing"
)

func TestRGBAPremultiplied(t *testing.T) {
	got := RGBA(1, 0.5, 0, 0.5)
	want := color.RGBA{R: 127, G: 63, B: 0, A: 127}
	if got != want {
		t.Errorf("RGBA(1, 0.5, 0, 0.5) = %v, want %v", got, want)
	}
	if c := RGBA(2, -1, 0, 3); c != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("out of range components should clamp, got %v", c)
	}
}

func TestTint(t *testing.T) {
	base := color.RGBA{R: 0, G: 100, B: 200, A: 255}
	if got := tint(base, 1, 1, 1, 0); got != base {
		t.Errorf("zero intensity changed colour: %v", got)
	}
	if got := tint(base, 1, 0, 0, 1); got != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("full intensity = %v, want pure red", got)
	}
}

func TestHealthRatio(t *testing.T) {
	tests := []struct {
		cur, max int
		want     float64
	}{
		{3, 3, 1},
		{0, 3, 0},
		{-1, 3, 0},
		{5, 3, 1},
		{1, 4, 0.25},
		{1, 0, 0},
	}
	for _, tt := range tests {
		if got := healthRatio(tt.cur, tt.max); got != tt.want {
			t.Errorf("healthRatio(%d, %d) = %v, want %v", tt.cur, tt.max, got, tt.want)
		}
	}
}
