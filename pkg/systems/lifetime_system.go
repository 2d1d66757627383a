package systems

import (
	"github.com/decker502/forestleeches/pkg/components"
	"github.com/decker502/forestleeches/pkg/ecs"
)

// LifetimeSystem 管理实体的生命周期
type LifetimeSystem struct {
	ctx *Context
}

// NewLifetimeSystem 创建一个新的生命周期系统
func NewLifetimeSystem(ctx *Context) *LifetimeSystem {
	return &LifetimeSystem{
		ctx: ctx,
	}
}

// Update 更新所有拥有生命周期组件的实体
// 返回本帧过期的实体
func (s *LifetimeSystem) Update(deltaTime float64) []ecs.EntityID {
	var expired []ecs.EntityID
	entities := ecs.GetEntitiesWith1[*components.LifetimeComponent](s.ctx.EM)

	for _, id := range entities {
		lifetime, ok := ecs.GetComponent[*components.LifetimeComponent](s.ctx.EM, id)
		if !ok || lifetime.IsExpired {
			continue
		}

		lifetime.CurrentLifetime += deltaTime
		if lifetime.CurrentLifetime >= lifetime.MaxLifetime {
			lifetime.IsExpired = true
			expired = append(expired, id)
			s.ctx.Destroy(id)
		}
	}
	return expired
}
