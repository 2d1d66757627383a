package systems

import (
	"github.com/decker502/forestleeches/pkg/components"
	"github.com/decker502/forestleeches/pkg/config"
	"github.com/decker502/forestleeches/pkg/ecs"
)

// PhysicsSystem 速度积分
// 只处理重力、地面和世界左右边界，重叠检测交给 CollisionSystem
type PhysicsSystem struct {
	em      *ecs.EntityManager
	gravity float64
}

// NewPhysicsSystem 创建物理系统
//
// 参数:
//   - em: 实体管理器
//   - gravity: 重力加速度（像素/秒²）
func NewPhysicsSystem(em *ecs.EntityManager, gravity float64) *PhysicsSystem {
	return &PhysicsSystem{
		em:      em,
		gravity: gravity,
	}
}

// Update 积分所有启用的刚体
// 参数：
//   - dt: 时间增量（秒）
func (ps *PhysicsSystem) Update(dt float64) {
	entities := ecs.GetEntitiesWith3[
		*components.PositionComponent,
		*components.VelocityComponent,
		*components.PhysicsBodyComponent,
	](ps.em)

	for _, id := range entities {
		body, _ := ecs.GetComponent[*components.PhysicsBodyComponent](ps.em, id)
		if !body.Enabled {
			continue
		}
		pos, _ := ecs.GetComponent[*components.PositionComponent](ps.em, id)
		vel, _ := ecs.GetComponent[*components.VelocityComponent](ps.em, id)

		if body.AllowGravity {
			vel.VY += ps.gravity * dt
		}
		if body.OnGround && body.Drag > 0 {
			factor := 1 - body.Drag*dt
			if factor < 0 {
				factor = 0
			}
			vel.VX *= factor
		}

		pos.X += vel.VX * dt
		pos.Y += vel.VY * dt

		if body.CollideWorld {
			ps.collideWorld(id, pos, vel, body)
		}
	}
}

// collideWorld 把实体限制在世界范围内，并更新落地状态
func (ps *PhysicsSystem) collideWorld(id ecs.EntityID, pos *components.PositionComponent, vel *components.VelocityComponent, body *components.PhysicsBodyComponent) {
	halfW, halfH := 0.0, 0.0
	if col, ok := ecs.GetComponent[*components.CollisionComponent](ps.em, id); ok {
		halfW, halfH = col.Width/2, col.Height/2
	}

	if pos.X-halfW < 0 {
		pos.X = halfW
		if vel.VX < 0 {
			vel.VX = 0
		}
	} else if pos.X+halfW > config.WorldWidth {
		pos.X = config.WorldWidth - halfW
		if vel.VX > 0 {
			vel.VX = 0
		}
	}

	if pos.Y-halfH < 0 {
		pos.Y = halfH
		if vel.VY < 0 {
			vel.VY = 0
		}
	}

	body.OnGround = false
	if pos.Y+halfH >= config.GroundY {
		pos.Y = config.GroundY - halfH
		if vel.VY > 0 {
			vel.VY = 0
		}
		body.OnGround = true
	}
}
