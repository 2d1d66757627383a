package components

// PositionComponent 实体在世界坐标系中的位置（碰撞盒中心点）
type PositionComponent struct {
	X float64
	Y float64
}

// VelocityComponent 实体速度（像素/秒）
type VelocityComponent struct {
	VX float64
	VY float64
}
