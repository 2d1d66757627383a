package systems

import (
	"github.com/decker502/forestleeches/pkg/components"
	"github.com/decker502/forestleeches/pkg/ecs"
)

// FlashEffectSystem 闪烁效果系统
// 管理实体的受击闪烁效果生命周期
type FlashEffectSystem struct {
	entityManager *ecs.EntityManager
}

// NewFlashEffectSystem 创建闪烁效果系统
func NewFlashEffectSystem(em *ecs.EntityManager) *FlashEffectSystem {
	return &FlashEffectSystem{
		entityManager: em,
	}
}

// Flash 为实体添加（或重置）闪烁效果
// 参数：
//   - duration: 持续时间（秒）
//   - r, g, b: 闪烁颜色
func (s *FlashEffectSystem) Flash(id ecs.EntityID, duration, r, g, b float64) {
	if flash, ok := ecs.GetComponent[*components.FlashEffectComponent](s.entityManager, id); ok {
		flash.Duration = duration
		flash.Elapsed = 0
		flash.Intensity = 1
		flash.R, flash.G, flash.B = r, g, b
		flash.IsActive = true
		return
	}
	ecs.AddComponent(s.entityManager, id, &components.FlashEffectComponent{
		Duration:  duration,
		Intensity: 1,
		R:         r,
		G:         g,
		B:         b,
		IsActive:  true,
	})
}

// Update 更新所有闪烁效果
// 参数：
//   - dt: 时间增量（秒）
func (s *FlashEffectSystem) Update(dt float64) {
	entities := ecs.GetEntitiesWith1[*components.FlashEffectComponent](s.entityManager)

	for _, entity := range entities {
		flashComp, ok := ecs.GetComponent[*components.FlashEffectComponent](s.entityManager, entity)
		if !ok || !flashComp.IsActive {
			continue
		}

		flashComp.Elapsed += dt
		// 强度随时间线性衰减
		if flashComp.Duration > 0 {
			flashComp.Intensity = 1 - flashComp.Elapsed/flashComp.Duration
		}

		if flashComp.Elapsed >= flashComp.Duration {
			// 闪烁结束，移除组件
			ecs.RemoveComponent[*components.FlashEffectComponent](s.entityManager, entity)
		}
	}
}
