package systems

import (
	"github.com/decker502/forestleeches/pkg/components"
	"github.com/decker502/forestleeches/pkg/ecs"
	"github.com/decker502/forestleeches/pkg/entities"
)

// ParticleSystem 管理粒子发射器和单个粒子
//
// 每帧分两步：
//  1. 发射器按速率生成新粒子
//  2. 粒子按速度/重力移动，按生命周期插值透明度和缩放，到期销毁
type ParticleSystem struct {
	ctx *Context
}

// NewParticleSystem 创建粒子系统
func NewParticleSystem(ctx *Context) *ParticleSystem {
	return &ParticleSystem{ctx: ctx}
}

// Update 处理所有发射器和粒子
// dt 为秒
func (ps *ParticleSystem) Update(dt float64) {
	ps.updateEmitters(dt)
	ps.updateParticles(dt)
}

// Burst 在指定位置生成一次粒子爆发
func (ps *ParticleSystem) Burst(x, y float64, spec entities.BurstSpec) []ecs.EntityID {
	return entities.NewParticleBurst(ps.ctx.EM, ps.ctx.Rand, x, y, spec)
}

func (ps *ParticleSystem) updateEmitters(dt float64) {
	emitters := ecs.GetEntitiesWith2[
		*components.ParticleEmitterComponent,
		*components.PositionComponent,
	](ps.ctx.EM)

	for _, id := range emitters {
		emitter, _ := ecs.GetComponent[*components.ParticleEmitterComponent](ps.ctx.EM, id)
		if !emitter.Active || emitter.Rate <= 0 {
			continue
		}
		pos, _ := ecs.GetComponent[*components.PositionComponent](ps.ctx.EM, id)

		emitter.Accumulator += emitter.Rate * dt
		for emitter.Accumulator >= 1 {
			emitter.Accumulator--
			p := emitter.Template
			p.VelocityX += ps.ctx.Rand.FloatBetween(-emitter.SpreadVX, emitter.SpreadVX)
			x := pos.X + ps.ctx.Rand.FloatBetween(0, emitter.AreaWidth)
			y := pos.Y + ps.ctx.Rand.FloatBetween(0, emitter.AreaHeight)
			entities.NewParticle(ps.ctx.EM, x, y, p)
		}
	}
}

func (ps *ParticleSystem) updateParticles(dt float64) {
	particles := ecs.GetEntitiesWith2[
		*components.ParticleComponent,
		*components.PositionComponent,
	](ps.ctx.EM)

	for _, id := range particles {
		p, _ := ecs.GetComponent[*components.ParticleComponent](ps.ctx.EM, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](ps.ctx.EM, id)

		p.Age += dt
		if p.Lifetime <= 0 || p.Age >= p.Lifetime {
			ps.ctx.Destroy(id)
			continue
		}

		p.VelocityY += p.Gravity * dt
		pos.X += p.VelocityX * dt
		pos.Y += p.VelocityY * dt

		t := p.Age / p.Lifetime
		p.Alpha = 1 - t
	}
}

// ParticleScale 返回粒子当前缩放（按生命周期线性插值）
func ParticleScale(p *components.ParticleComponent) float64 {
	if p.Lifetime <= 0 {
		return p.EndScale
	}
	t := p.Age / p.Lifetime
	if t > 1 {
		t = 1
	}
	return p.StartScale + (p.EndScale-p.StartScale)*t
}
