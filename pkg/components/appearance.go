package components

// AppearanceComponent 渲染相关的表现状态
// 不持有图像资源：渲染层根据实体类型和动画片段自行绘制
type AppearanceComponent struct {
	Alpha   float64 // 透明度 0-1（玩家死亡时淡出）
	FlipX   bool    // 朝左时为 true
	Visible bool
	Scale   float64
}
