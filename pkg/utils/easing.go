package utils

import "math"

// 缓动函数：输入进度 t ∈ [0, 1]，输出缓动后的值 ∈ [0, 1]
// 标题淡出（EaseInQuad）、结算数据滑入（EaseOutCubic）、暂停菜单高亮（EaseOutQuad）使用

// EaseOutCubic 三次方缓出，开始快结束慢
// f(t) = 1 - (1-t)³
func EaseOutCubic(t float64) float64 {
	return 1 - math.Pow(1-Clamp01(t), 3)
}

// EaseOutQuad 二次方缓出，比 Cubic 柔和
// f(t) = 1 - (1-t)²
func EaseOutQuad(t float64) float64 {
	t = Clamp01(t)
	return 1 - (1-t)*(1-t)
}

// EaseInQuad 二次方缓入
// f(t) = t²
func EaseInQuad(t float64) float64 {
	t = Clamp01(t)
	return t * t
}

// Lerp 线性插值，t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp01 把 t 限制在 [0, 1]
func Clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// Progress 已过时间占总时长的比例，限制在 [0, 1]；总时长非正时返回 1
func Progress(elapsed, total float64) float64 {
	if total <= 0 {
		return 1
	}
	return Clamp01(elapsed / total)
}
