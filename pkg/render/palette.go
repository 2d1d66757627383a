// Package render 用 Ebitengine 的矢量和文字接口绘制游戏画面
//
// 游戏不使用图片资源：世界、角色、道具、HUD 都由简单几何图形组成。
// 世界先画到一张视口大小的离屏图像上，再按 config.CameraZoom 放大到屏幕，保持像素风格。
package render

import (
	"image/color"

	"github.com/decker502/forestleeches/pkg/utils"
)

// 调色板
var (
	ColorBackground = color.RGBA{0x1a, 0x1f, 0x2c, 0xff}
	ColorText       = color.RGBA{0xff, 0xff, 0xff, 0xff}
	ColorTextDim    = color.RGBA{0xaa, 0xaa, 0xaa, 0xff}
	ColorHighlight  = color.RGBA{0xff, 0xff, 0x00, 0xff}
	ColorDanger     = color.RGBA{0xff, 0x44, 0x44, 0xff}
	ColorPanel      = color.RGBA{0x1a, 0x1f, 0x2c, 0xff}
	ColorPanelEdge  = color.RGBA{0x5c, 0x6b, 0x8a, 0xff}
	ColorHealthBack = color.RGBA{0x33, 0x33, 0x33, 0xff}
	ColorHealthFill = color.RGBA{0xff, 0x00, 0x00, 0xff}

	// 背景层（远、中、近）
	colorLayers = [3]color.RGBA{
		{0x23, 0x30, 0x41, 0xff},
		{0x1f, 0x3b, 0x2d, 0xff},
		{0x2d, 0x5a, 0x3a, 0xff},
	}
	colorGround = color.RGBA{0x3b, 0x2a, 0x1e, 0xff}
	colorGrass  = color.RGBA{0x3f, 0x7a, 0x3a, 0xff}

	colorPlayerBody = color.RGBA{0x4a, 0xa3, 0xdf, 0xff}
	colorPlayerHead = color.RGBA{0xf2, 0xc6, 0x9b, 0xff}
	colorStick      = color.RGBA{0x8b, 0x5a, 0x2b, 0xff}
	colorLeech      = color.RGBA{0x3c, 0x6e, 0x2f, 0xff}
	colorLeechDark  = color.RGBA{0x24, 0x45, 0x1c, 0xff}
	colorBoss       = color.RGBA{0x6b, 0x2d, 0x5c, 0xff}
	colorMouth      = color.RGBA{0xc0, 0x20, 0x30, 0xff}
	colorSalt       = color.RGBA{0xf4, 0xf4, 0xf4, 0xff}
	colorCharm      = color.RGBA{0xff, 0xd7, 0x00, 0xff}
	colorProjectile = color.RGBA{0xff, 0x55, 0x33, 0xff}
)

// RGBA 把 0-1 的颜色分量和透明度转换为预乘 alpha 的 color.RGBA
func RGBA(r, g, b, a float64) color.RGBA {
	a = utils.Clamp01(a)
	return color.RGBA{
		R: uint8(utils.Clamp01(r) * a * 255),
		G: uint8(utils.Clamp01(g) * a * 255),
		B: uint8(utils.Clamp01(b) * a * 255),
		A: uint8(a * 255),
	}
}

// fade 给不透明颜色乘上透明度
func fade(c color.RGBA, alpha float64) color.RGBA {
	return RGBA(float64(c.R)/255, float64(c.G)/255, float64(c.B)/255, alpha)
}

// tint 按强度把颜色混向闪烁色
func tint(c color.RGBA, r, g, b, intensity float64) color.RGBA {
	intensity = utils.Clamp01(intensity)
	mix := func(v uint8, target float64) uint8 {
		return uint8(float64(v) + (target*255-float64(v))*intensity)
	}
	return color.RGBA{mix(c.R, r), mix(c.G, g), mix(c.B, b), c.A}
}
