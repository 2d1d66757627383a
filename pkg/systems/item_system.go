package systems

import (
	"log"
	"math"

	"github.com/decker502/forestleeches/pkg/components"
	"github.com/decker502/forestleeches/pkg/ecs"
	"github.com/decker502/forestleeches/pkg/entities"
)

// 拾取后显示的效果文字
const (
	StickEffectText = "MELEE RANGE UP!"
	SaltEffectText  = "SALT BURST!"
	CharmEffectText = "INVINCIBILITY!"
)

// ItemSystem 道具下落、漂浮与拾取效果
type ItemSystem struct {
	ctx       *Context
	enemies   *EnemySystem
	player    *PlayerSystem
	particles *ParticleSystem
}

// NewItemSystem 创建道具系统
func NewItemSystem(ctx *Context, enemies *EnemySystem, player *PlayerSystem, particles *ParticleSystem) *ItemSystem {
	return &ItemSystem{
		ctx:       ctx,
		enemies:   enemies,
		player:    player,
		particles: particles,
	}
}

// Update 下落中的道具到达悬浮高度后停下，之后按正弦上下漂浮
// 参数：dt - 时间增量（秒）
func (s *ItemSystem) Update(dt float64) {
	ids := ecs.GetEntitiesWith2[*components.ItemComponent, *components.PositionComponent](s.ctx.EM)
	for _, id := range ids {
		item, _ := ecs.GetComponent[*components.ItemComponent](s.ctx.EM, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.ctx.EM, id)
		if item.Collected {
			continue
		}

		if !item.Resting {
			vel, ok := ecs.GetComponent[*components.VelocityComponent](s.ctx.EM, id)
			if ok && vel.VY >= 0 && pos.Y >= item.RestY {
				s.rest(id, item, pos, vel)
			}
			continue
		}

		fc, ok := ecs.GetComponent[*components.FloatComponent](s.ctx.EM, id)
		if !ok {
			continue
		}
		fc.ElapsedMs += dt * 1000
		pos.Y = fc.BaseY - FloatOffset(fc)
	}
}

// rest 停在悬浮高度并开始漂浮
func (s *ItemSystem) rest(id ecs.EntityID, item *components.ItemComponent, pos *components.PositionComponent, vel *components.VelocityComponent) {
	item.Resting = true
	pos.Y = item.RestY
	vel.VX, vel.VY = 0, 0
	if body, ok := ecs.GetComponent[*components.PhysicsBodyComponent](s.ctx.EM, id); ok {
		body.Enabled = false
	}
	ic := s.ctx.Config.Items
	ecs.AddComponent(s.ctx.EM, id, &components.FloatComponent{
		BaseY:        item.RestY,
		Amplitude:    ic.FloatAmplitude,
		HalfPeriodMs: ic.FloatHalfPeriodMs,
	})
}

// FloatOffset 漂浮的向上偏移量：半周期内从 0 缓动到 Amplitude，再缓动回来
func FloatOffset(f *components.FloatComponent) float64 {
	if f.HalfPeriodMs <= 0 {
		return 0
	}
	phase := math.Mod(f.ElapsedMs, 2*f.HalfPeriodMs) / f.HalfPeriodMs
	// Sine.easeInOut 往返
	return f.Amplitude * (1 - math.Cos(math.Pi*phase)) / 2
}

// ApplyEffect 拾取道具：关闭物理、播放收集动画（播完销毁），并触发对应效果
// 幂等：已拾取的道具返回 false
func (s *ItemSystem) ApplyEffect(itemID, playerID ecs.EntityID) bool {
	if !s.ctx.Alive(itemID) || s.player.IsDead(playerID) {
		return false
	}
	item, ok := ecs.GetComponent[*components.ItemComponent](s.ctx.EM, itemID)
	if !ok || item.Collected {
		return false
	}
	item.Collected = true

	if body, ok := ecs.GetComponent[*components.PhysicsBodyComponent](s.ctx.EM, itemID); ok {
		body.Enabled = false
	}
	if vel, ok := ecs.GetComponent[*components.VelocityComponent](s.ctx.EM, itemID); ok {
		vel.VX, vel.VY = 0, 0
	}
	ecs.RemoveComponent[*components.CollisionComponent](s.ctx.EM, itemID)
	ecs.RemoveComponent[*components.FloatComponent](s.ctx.EM, itemID)
	ecs.RemoveComponent[*components.LifetimeComponent](s.ctx.EM, itemID)

	if anim, ok := ecs.GetComponent[*components.AnimationComponent](s.ctx.EM, itemID); ok {
		entities.PlayClip(anim, entities.ClipItemCollect, true)
		anim.DestroyOnFinish = true
	} else {
		s.ctx.Destroy(itemID)
	}

	x, y := 0.0, 0.0
	if pos, ok := ecs.GetComponent[*components.PositionComponent](s.ctx.EM, itemID); ok {
		x, y = pos.X, pos.Y
	}

	ic := s.ctx.Config.Items
	var text string
	switch item.Kind {
	case components.ItemStick:
		s.player.SetMeleeRange(playerID, ic.Stick.RangeMultiplier, ic.Stick.DurationMs)
		text = StickEffectText
	case components.ItemSalt:
		s.SaltBurst(playerID, x, y)
		text = SaltEffectText
	case components.ItemCharm:
		s.player.GrantInvincibility(playerID, components.InvincibleFromCharm, ic.Charm.DurationMs)
		text = CharmEffectText
	}

	log.Printf("[ItemSystem] %s collected at (%.0f, %.0f)", item.Kind, x, y)
	s.ctx.Events.Publish(EventItemCollected, ItemEvent{ID: itemID, Kind: item.Kind, X: x, Y: y, Text: text})
	return true
}

// SaltBurst 对 (x, y) 半径内所有存活敌人造成伤害并击退，
// 然后不论距离强制所有附着在玩家身上的敌人脱离
// 返回：被击中的敌人数、被强制脱离的敌人数
func (s *ItemSystem) SaltBurst(playerID ecs.EntityID, x, y float64) (hit, detached int) {
	salt := s.ctx.Config.Items.Salt

	ids := ecs.GetEntitiesWith2[*components.EnemyComponent, *components.PositionComponent](s.ctx.EM)
	for _, id := range ids {
		state, ok := s.enemies.State(id)
		if !ok || state == components.EnemyDead {
			continue
		}
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.ctx.EM, id)
		if math.Hypot(pos.X-x, pos.Y-y) > salt.Radius {
			continue
		}
		hit++
		if !s.enemies.TakeDamage(id, salt.Damage) {
			s.enemies.RepelFrom(id, x, y, salt.Knockback)
		}
	}

	detached = s.player.ShakeOffLeeches(playerID)

	if s.particles != nil {
		s.particles.Burst(x, y, entities.SaltBurst)
	}
	s.ctx.Events.Publish(EventSaltBurst, SaltBurstEvent{X: x, Y: y, Radius: salt.Radius, Hit: hit, Detached: detached})
	return hit, detached
}
