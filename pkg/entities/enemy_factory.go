package entities

import (
	"fmt"
	"math"

	"github.com/decker502/forestleeches/pkg/components"
	"github.com/decker502/forestleeches/pkg/config"
	"github.com/decker502/forestleeches/pkg/ecs"
)

// EnemyScaling 按难度调整的敌人属性倍率
type EnemyScaling struct {
	SpeedMultiplier  float64
	HealthMultiplier float64
}

// NoScaling 不调整
var NoScaling = EnemyScaling{SpeedMultiplier: 1, HealthMultiplier: 1}

// NewLeechEntity 创建水蛭实体
//
// 参数:
//   - em: 实体管理器
//   - cfg: 游戏配置
//   - x, y: 出生位置
//   - target: 追踪目标（玩家），可以为 InvalidEntity
//   - owner: 召唤者（Boss），普通水蛭为 InvalidEntity
//   - scaling: 难度倍率，生命值四舍五入且至少为 1
func NewLeechEntity(em *ecs.EntityManager, cfg *config.GameConfig, x, y float64, target, owner ecs.EntityID, scaling EnemyScaling) (ecs.EntityID, error) {
	if em == nil || cfg == nil {
		return 0, fmt.Errorf("entity manager and config cannot be nil")
	}
	return newEnemyEntity(em, &cfg.Leech, components.EnemyLeech, x, y, target, owner, scaling), nil
}

// NewBossEntity 创建水蛭王实体
func NewBossEntity(em *ecs.EntityManager, cfg *config.GameConfig, x, y float64, target ecs.EntityID) (ecs.EntityID, error) {
	if em == nil || cfg == nil {
		return 0, fmt.Errorf("entity manager and config cannot be nil")
	}
	id := newEnemyEntity(em, &cfg.Boss.EnemyConfig, components.EnemyBoss, x, y, target, ecs.InvalidEntity, NoScaling)
	ecs.AddComponent(em, id, &components.BossComponent{
		PatternIndex:      0,
		MaxMinions:        cfg.Boss.MaxMinions,
		LastMinionSpawnAt: math.Inf(-1),
	})
	if app, ok := ecs.GetComponent[*components.AppearanceComponent](em, id); ok {
		app.Scale = 2
	}
	return id, nil
}

func newEnemyEntity(em *ecs.EntityManager, ec *config.EnemyConfig, kind components.EnemyKind, x, y float64, target, owner ecs.EntityID, scaling EnemyScaling) ecs.EntityID {
	health := int(math.Round(float64(ec.Health) * scaling.HealthMultiplier))
	if health < 1 {
		health = 1
	}
	idle, _, _, _ := EnemyClips(kind)

	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{X: x, Y: y})
	ecs.AddComponent(em, id, &components.VelocityComponent{})
	ecs.AddComponent(em, id, &components.PhysicsBodyComponent{
		Enabled:      true,
		AllowGravity: true,
		CollideWorld: true,
		Drag:         4,
	})
	ecs.AddComponent(em, id, &components.CollisionComponent{
		Width:  ec.Width,
		Height: ec.Height,
		Layer:  components.LayerEnemy,
	})
	ecs.AddComponent(em, id, &components.HealthComponent{CurrentHealth: health, MaxHealth: health})
	ecs.AddComponent(em, id, &components.EnemyComponent{
		Kind:              kind,
		State:             components.EnemyRoaming,
		Damage:            ec.Damage,
		Speed:             ec.Speed * scaling.SpeedMultiplier,
		ScoreValue:        ec.ScoreValue,
		Target:            target,
		Owner:             owner,
		JumpForce:         ec.JumpForce,
		JumpCooldownMinMs: ec.JumpCooldownMinMs,
		JumpCooldownMaxMs: ec.JumpCooldownMaxMs,
		AttachDurationMs:  ec.AttachDurationMs,
		DetachForce:       ec.DetachForce,
		DespawnDelayMs:    ec.DespawnDelayMs,
		Facing:            1,
	})
	ecs.AddComponent(em, id, &components.AnimationComponent{Clip: idle})
	ecs.AddComponent(em, id, &components.AppearanceComponent{Alpha: 1, Visible: true, Scale: 1})
	return id
}

// NewProjectileEntity 创建 Boss 弹幕
func NewProjectileEntity(em *ecs.EntityManager, cfg *config.GameConfig, owner ecs.EntityID, x, y, angle float64) ecs.EntityID {
	bc := cfg.Boss
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{X: x, Y: y})
	ecs.AddComponent(em, id, &components.VelocityComponent{
		VX: math.Cos(angle) * bc.ProjectileSpeed,
		VY: math.Sin(angle) * bc.ProjectileSpeed,
	})
	ecs.AddComponent(em, id, &components.PhysicsBodyComponent{Enabled: true})
	ecs.AddComponent(em, id, &components.CollisionComponent{Width: 6, Height: 6, Layer: components.LayerProjectile})
	ecs.AddComponent(em, id, &components.ProjectileComponent{Damage: bc.ProjectileDamage, Owner: owner})
	ecs.AddComponent(em, id, &components.LifetimeComponent{MaxLifetime: bc.ProjectileLifetimeMs / 1000})
	ecs.AddComponent(em, id, &components.AppearanceComponent{Alpha: 1, Visible: true, Scale: 1})
	return id
}
