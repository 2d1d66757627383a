package render

import (
	"math"

	"github.com/decker502/forestleeches/pkg/components"
	"github.com/decker502/forestleeches/pkg/config"
)

// View 世界到视口（离屏图像）的变换
type View struct {
	X, Y float64
	// 屏幕震动偏移
	ShakeX, ShakeY float64
	Width, Height  float64
}

// ViewFromCamera 从摄像机组件构造视图，cam 为 nil 时返回原点视图
func ViewFromCamera(cam *components.CameraComponent) View {
	v := View{Width: config.ViewportWidth, Height: config.ViewportHeight}
	if cam == nil {
		return v
	}
	v.X, v.Y = cam.X, cam.Y
	v.ShakeX, v.ShakeY = cam.ShakeOffsetX, cam.ShakeOffsetY
	return v
}

// ToScreen 世界坐标转视口坐标
func (v View) ToScreen(wx, wy float64) (float64, float64) {
	return wx - v.X + v.ShakeX, wy - v.Y + v.ShakeY
}

// Visible 以 (wx, wy) 为中心、w×h 的矩形是否与视口相交
func (v View) Visible(wx, wy, w, h float64) bool {
	sx, sy := v.ToScreen(wx, wy)
	return sx+w/2 >= 0 && sx-w/2 <= v.Width && sy+h/2 >= 0 && sy-h/2 <= v.Height
}

// layerHash 背景元素的确定性伪随机值 ∈ [0, 1)
// 同一图层同一序号总是得到相同结果，背景滚动时不会闪烁
func layerHash(index, layer int) float64 {
	h := uint32(index)*2654435761 ^ uint32(layer+1)*40503
	h ^= h >> 13
	h *= 0x5bd1e995
	h ^= h >> 15
	return float64(h%10000) / 10000
}

// layerRange 视差图层在视口内可见的元素序号范围 [first, last]
//
// 参数：
//   - scroll: 图层滚动量（摄像机X × 视差系数）
//   - spacing: 元素间距
//   - width: 视口宽度
func layerRange(scroll, spacing, width float64) (first, last int) {
	first = int(math.Floor(scroll/spacing)) - 1
	last = int(math.Ceil((scroll+width)/spacing)) + 1
	return first, last
}

// layerBaseline 视差图层的地平线在视口中的Y
// 近处图层随地面移动，远处图层更接近视口底部保持不动
func layerBaseline(groundScreenY, height, factor float64) float64 {
	return groundScreenY*factor + height*(1-factor)
}
