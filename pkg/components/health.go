package components

// HealthComponent 存储实体的生命值信息
// 用于玩家、水蛭和水蛭王
type HealthComponent struct {
	CurrentHealth int // 当前生命值，不会小于 0
	MaxHealth     int // 最大生命值
}
