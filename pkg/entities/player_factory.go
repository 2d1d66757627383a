package entities

import (
	"fmt"

	"github.com/decker502/forestleeches/pkg/components"
	"github.com/decker502/forestleeches/pkg/config"
	"github.com/decker502/forestleeches/pkg/ecs"
)

// NewPlayerEntity 创建玩家实体
//
// 参数:
//   - em: 实体管理器
//   - cfg: 游戏配置
//   - x, y: 出生位置（世界坐标，碰撞盒中心）
//
// 返回:
//   - ecs.EntityID: 玩家实体ID
//   - error: 参数非法时返回错误
func NewPlayerEntity(em *ecs.EntityManager, cfg *config.GameConfig, x, y float64) (ecs.EntityID, error) {
	if em == nil || cfg == nil {
		return 0, fmt.Errorf("entity manager and config cannot be nil")
	}
	pc := cfg.Player

	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{X: x, Y: y})
	ecs.AddComponent(em, id, &components.VelocityComponent{})
	ecs.AddComponent(em, id, &components.PhysicsBodyComponent{
		Enabled:      true,
		AllowGravity: true,
		CollideWorld: true,
	})
	ecs.AddComponent(em, id, &components.CollisionComponent{
		Width:  pc.Width,
		Height: pc.Height,
		Layer:  components.LayerPlayer,
	})
	ecs.AddComponent(em, id, &components.HealthComponent{
		CurrentHealth: pc.MaxHealth,
		MaxHealth:     pc.MaxHealth,
	})
	ecs.AddComponent(em, id, &components.PlayerComponent{
		Facing:         1,
		MeleeRange:     1.0,
		BaseMeleeRange: 1.0,
		Anim:           components.PlayerAnimIdle,
	})
	ecs.AddComponent(em, id, &components.AnimationComponent{Clip: ClipPlayerIdle})
	ecs.AddComponent(em, id, &components.AppearanceComponent{Alpha: 1, Visible: true, Scale: 1})
	return id, nil
}

// NewAttackHitbox 创建玩家近战判定框
// 判定框位于玩家前方，宽度随近战范围倍率缩放
func NewAttackHitbox(em *ecs.EntityManager, owner ecs.EntityID, attackID uint64, x, y, facing, meleeRange, lifetimeSec float64) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{
		X: x + facing*20*meleeRange,
		Y: y - 5,
	})
	ecs.AddComponent(em, id, &components.CollisionComponent{
		Width:  30 * meleeRange,
		Height: 20,
		Layer:  components.LayerAttack,
	})
	ecs.AddComponent(em, id, &components.AttackHitboxComponent{Owner: owner, AttackID: attackID})
	ecs.AddComponent(em, id, &components.LifetimeComponent{MaxLifetime: lifetimeSec})
	return id
}
