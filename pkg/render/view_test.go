package render

import (
	"testing"

	"github.com/decker502/forestleeches/pkg/components"
	"github.com/decker502/forestleeches/pkg/config"
)

func TestViewFromCamera(t *testing.T) {
	v := ViewFromCamera(nil)
	if v.X != 0 || v.Y != 0 || v.Width != config.ViewportWidth || v.Height != config.ViewportHeight {
		t.Errorf("nil camera view = %+v", v)
	}

	v = ViewFromCamera(&components.CameraComponent{X: 120, Y: 495, ShakeOffsetX: 2, ShakeOffsetY: -1})
	sx, sy := v.ToScreen(220, 700)
	if sx != 102 || sy != 204 {
		t.Errorf("ToScreen(220, 700) = (%v, %v), want (102, 204)", sx, sy)
	}
}

func TestViewVisible(t *testing.T) {
	v := View{X: 100, Y: 0, Width: 400, Height: 225}
	tests := []struct {
		name   string
		x, y   float64
		w, h   float64
		expect bool
	}{
		{"centre", 300, 100, 10, 10, true},
		{"left edge overlap", 96, 100, 10, 10, true},
		{"left of view", 90, 100, 10, 10, false},
		{"right edge overlap", 504, 100, 10, 10, true},
		{"right of view", 510, 100, 10, 10, false},
		{"below view", 300, 240, 20, 20, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := v.Visible(tt.x, tt.y, tt.w, tt.h); got != tt.expect {
				t.Errorf("Visible(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.expect)
			}
		})
	}
}

func TestLayerRange(t *testing.T) {
	first, last := layerRange(0, 50, 400)
	if first != -1 || last != 9 {
		t.Errorf("layerRange(0) = [%d, %d], want [-1, 9]", first, last)
	}
	first, last = layerRange(125, 50, 400)
	if first != 1 || last != 12 {
		t.Errorf("layerRange(125) = [%d, %d], want [1, 12]", first, last)
	}
}

// TestLayerHash 同一输入结果稳定且在 [0, 1) 内
func TestLayerHash(t *testing.T) {
	for layer := 0; layer < 3; layer++ {
		for i := -50; i < 50; i++ {
			h := layerHash(i, layer)
			if h < 0 || h >= 1 {
				t.Fatalf("layerHash(%d, %d) = %v out of range", i, layer, h)
			}
			if h != layerHash(i, layer) {
				t.Fatalf("layerHash(%d, %d) not deterministic", i, layer)
			}
		}
	}
	if layerHash(3, 0) == layerHash(3, 1) && layerHash(4, 0) == layerHash(4, 1) {
		t.Error("layers should not share the same sequence")
	}
}

func TestLayerBaseline(t *testing.T) {
	if got := layerBaseline(225, 225, 0.3); got != 225 {
		t.Errorf("ground at bottom: baseline = %v, want 225", got)
	}
	// 地面上移时近处图层跟随得更多
	far := layerBaseline(125, 225, 0.3)
	near := layerBaseline(125, 225, 0.9)
	if !(near < far) {
		t.Errorf("near baseline %v should be above far baseline %v", near, far)
	}
}
