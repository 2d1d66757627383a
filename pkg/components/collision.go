package components

// CollisionLayer 碰撞层，用于筛选碰撞对
type CollisionLayer int

const (
	LayerPlayer CollisionLayer = iota
	LayerEnemy
	LayerItem
	LayerProjectile
	// LayerAttack 玩家近战攻击判定框
	LayerAttack
)

// String 返回碰撞层名称（用作碰撞空间的标签）
func (l CollisionLayer) String() string {
	switch l {
	case LayerPlayer:
		return "player"
	case LayerEnemy:
		return "enemy"
	case LayerItem:
		return "item"
	case LayerProjectile:
		return "projectile"
	case LayerAttack:
		return "attack"
	}
	return "unknown"
}

// CollisionComponent 定义实体的碰撞检测边界框
// 边界框以 PositionComponent 为中心，再加上偏移
type CollisionComponent struct {
	Width   float64 // 碰撞盒宽度（像素）
	Height  float64 // 碰撞盒高度（像素）
	OffsetX float64 // 碰撞盒中心相对于实体位置的X偏移量（像素），正值向右偏移
	OffsetY float64 // 碰撞盒中心相对于实体位置的Y偏移量（像素），正值向下偏移
	Layer   CollisionLayer
}
