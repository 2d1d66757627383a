package utils

import (
	"math"
	"testing"
)

func TestEasingEndpoints(t *testing.T) {
	funcs := map[string]func(float64) float64{
		"EaseOutCubic": EaseOutCubic,
		"EaseOutQuad":  EaseOutQuad,
		"EaseInQuad":   EaseInQuad,
	}
	for name, f := range funcs {
		t.Run(name, func(t *testing.T) {
			if f(0) != 0 || f(1) != 1 {
				t.Errorf("%s(0)=%v %s(1)=%v, want 0 and 1", name, f(0), name, f(1))
			}
			// 越界输入被限制
			if f(-1) != 0 || f(2) != 1 {
				t.Errorf("%s not clamped: f(-1)=%v f(2)=%v", name, f(-1), f(2))
			}
		})
	}
}

func TestEasingMidpoints(t *testing.T) {
	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"EaseOutCubic", EaseOutCubic(0.5), 0.875},
		{"EaseOutQuad", EaseOutQuad(0.5), 0.75},
		{"EaseInQuad", EaseInQuad(0.5), 0.25},
		{"Lerp", Lerp(10, 20, 0.25), 12.5},
	}
	for _, tt := range tests {
		if math.Abs(tt.got-tt.want) > 1e-9 {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}

// TestEaseOutFasterThanLinear 缓出在前半段领先于线性
func TestEaseOutFasterThanLinear(t *testing.T) {
	for p := 0.1; p < 0.5; p += 0.1 {
		if EaseOutCubic(p) <= p {
			t.Errorf("EaseOutCubic(%v) = %v should lead linear", p, EaseOutCubic(p))
		}
		if EaseInQuad(p) >= p {
			t.Errorf("EaseInQuad(%v) = %v should trail linear", p, EaseInQuad(p))
		}
	}
}

func TestProgress(t *testing.T) {
	tests := []struct {
		elapsed, total, want float64
	}{
		{0, 500, 0},
		{250, 500, 0.5},
		{900, 500, 1},
		{-10, 500, 0},
		{10, 0, 1},
	}
	for _, tt := range tests {
		if got := Progress(tt.elapsed, tt.total); got != tt.want {
			t.Errorf("Progress(%v, %v) = %v, want %v", tt.elapsed, tt.total, got, tt.want)
		}
	}
}
