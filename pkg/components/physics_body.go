package components

// PhysicsBodyComponent 参与速度积分的刚体标记
//
// 物理系统只做最简单的积分：重力、地面、世界左右边界。
// Enabled=false 时实体保持静止（附着在玩家身上的水蛭、正在播放拾取动画的道具）。
type PhysicsBodyComponent struct {
	Enabled      bool
	AllowGravity bool
	// CollideWorld 是否被世界边界（左右两侧与地面）约束
	CollideWorld bool
	// OnGround 本帧是否落在地面上（由物理系统写入）
	OnGround bool
	// Drag 水平方向每秒速度衰减比例（0 = 无阻力），落地后才生效
	Drag float64
}
