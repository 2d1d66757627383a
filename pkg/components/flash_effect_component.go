package components

// FlashEffectComponent 闪烁效果组件
// 用于实体受击时的染色闪烁反馈（玩家受击闪红，水蛭受击闪白）
type FlashEffectComponent struct {
	// Duration 闪烁持续时间（秒）
	Duration float64

	// Elapsed 已经过的时间（秒）
	Elapsed float64

	// Intensity 闪烁强度（0.0 - 1.0）
	Intensity float64

	// R, G, B 闪烁颜色（0-1）
	R, G, B float64

	// IsActive 是否激活
	IsActive bool
}
