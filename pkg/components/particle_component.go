package components

// ParticleComponent 单个粒子的运行时状态
// 位置由独立的 PositionComponent 管理
type ParticleComponent struct {
	// Velocity (速度, 像素/秒)
	VelocityX float64
	VelocityY float64

	// Gravity 纵向加速度（像素/秒²）
	Gravity float64

	// Scale 起始与结束缩放，按生命周期线性插值
	StartScale float64
	EndScale   float64

	// Alpha 当前透明度（由粒子系统按生命周期写入）
	Alpha float64

	// Color channels (颜色通道, 0-1)
	Red   float64
	Green float64
	Blue  float64

	// Size 基础边长（像素）
	Size float64

	// Lifecycle (生命周期, 秒)
	Age      float64
	Lifetime float64
}

// ParticleEmitterComponent 持续发射粒子的发射器（标题画面的上升粒子）
type ParticleEmitterComponent struct {
	// Rate 每秒发射数量
	Rate float64
	// Accumulator 未发射的小数部分
	Accumulator float64
	// Area 发射区域（以发射器位置为左上角）
	AreaWidth  float64
	AreaHeight float64
	Template   ParticleComponent
	// SpreadVX 水平速度随机范围 ±SpreadVX
	SpreadVX float64
	Active   bool
}
