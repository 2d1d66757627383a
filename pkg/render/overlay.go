package render

import (
	"github.com/decker502/forestleeches/pkg/config"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// DimScreen 用半透明黑色覆盖整个屏幕
func DimScreen(screen *ebiten.Image, alpha float64) {
	if alpha <= 0 {
		return
	}
	vector.DrawFilledRect(screen, 0, 0, config.GameWindowWidth, config.GameWindowHeight, RGBA(0, 0, 0, alpha), false)
}

// DrawPanel 绘制带描边的面板，(cx, cy) 为中心
func DrawPanel(screen *ebiten.Image, cx, cy, w, h float64) {
	x, y := float32(cx-w/2), float32(cy-h/2)
	vector.DrawFilledRect(screen, x, y, float32(w), float32(h), ColorPanel, false)
	vector.StrokeRect(screen, x, y, float32(w), float32(h), 2, ColorPanelEdge, false)
}

