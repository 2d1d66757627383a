package render

import (
	"image/color"

	"github.com/hajimehoshi/bitmapfont/v3"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

// Fonts 游戏使用的字体
type Fonts struct {
	// Body 标题、HUD、菜单（bitmapfont，支持放大）
	Body text.Face
	// Small 提示文字
	Small text.Face
}

// NewFonts 创建内置字体，不需要任何资源文件
func NewFonts() *Fonts {
	return &Fonts{
		Body:  text.NewGoXFace(bitmapfont.Face),
		Small: text.NewGoXFace(basicfont.Face7x13),
	}
}

// TextStyle 文字绘制参数
type TextStyle struct {
	Face  text.Face
	Color color.Color
	Align text.Align
	// Scale 放大倍数，0 视为 1
	Scale float64
	// Alpha 透明度，0 视为不透明
	Alpha float64
}

// DrawText 在 (x, y) 绘制一行文字，y 为文字顶部
// Align 为 AlignCenter 时 x 是文字中心，AlignEnd 时是右边缘
func DrawText(dst *ebiten.Image, s string, x, y float64, style TextStyle) {
	if style.Face == nil || s == "" {
		return
	}
	scale := style.Scale
	if scale <= 0 {
		scale = 1
	}
	op := &text.DrawOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.LayoutOptions.PrimaryAlign = style.Align
	if style.Color != nil {
		op.ColorScale.ScaleWithColor(style.Color)
	}
	if style.Alpha > 0 && style.Alpha < 1 {
		op.ColorScale.ScaleAlpha(float32(style.Alpha))
	}
	text.Draw(dst, s, style.Face, op)
}

// MeasureText 文字宽高（已乘缩放）
func MeasureText(s string, face text.Face, scale float64) (float64, float64) {
	if face == nil {
		return 0, 0
	}
	if scale <= 0 {
		scale = 1
	}
	w, h := text.Measure(s, face, 0)
	return w * scale, h * scale
}
