package entities

import (
	"fmt"

	"github.com/decker502/forestleeches/pkg/components"
	"github.com/decker502/forestleeches/pkg/config"
	"github.com/decker502/forestleeches/pkg/ecs"
)

// NewItemEntity 创建道具实体
// 道具从视口上方落下，落到 restY 后开始漂浮
//
// 参数:
//   - kind: 道具类型
//   - x, y: 出生位置（通常在视口上方）
//   - restY: 悬浮中心高度
func NewItemEntity(em *ecs.EntityManager, cfg *config.GameConfig, kind components.ItemKind, x, y, restY float64) (ecs.EntityID, error) {
	if em == nil || cfg == nil {
		return 0, fmt.Errorf("entity manager and config cannot be nil")
	}
	if kind < 0 || int(kind) >= components.ItemKindCount {
		return 0, fmt.Errorf("unknown item kind: %d", kind)
	}
	ic := cfg.Items

	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{X: x, Y: y})
	ecs.AddComponent(em, id, &components.VelocityComponent{})
	ecs.AddComponent(em, id, &components.PhysicsBodyComponent{Enabled: true, AllowGravity: true})
	ecs.AddComponent(em, id, &components.CollisionComponent{
		Width:  ic.Size,
		Height: ic.Size,
		Layer:  components.LayerItem,
	})
	ecs.AddComponent(em, id, &components.ItemComponent{Kind: kind, RestY: restY})
	ecs.AddComponent(em, id, &components.AnimationComponent{Clip: ClipItemFloat})
	ecs.AddComponent(em, id, &components.AppearanceComponent{Alpha: 1, Visible: true, Scale: 1})
	if ic.LifetimeMs > 0 {
		ecs.AddComponent(em, id, &components.LifetimeComponent{MaxLifetime: ic.LifetimeMs / 1000})
	}
	return id, nil
}
