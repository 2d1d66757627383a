package systems

import (
	"log"
	"math"

	"github.com/decker502/forestleeches/pkg/components"
	"github.com/decker502/forestleeches/pkg/config"
	"github.com/decker502/forestleeches/pkg/ecs"
	"github.com/decker502/forestleeches/pkg/entities"
)

const (
	// runAnimThreshold 水平速度超过该值时播放跑步动画
	runAnimThreshold = 10
	// deathFadeSeconds 死亡淡出时长
	deathFadeSeconds = 1.0
	// blinkPeriodSeconds 无敌闪烁的半周期
	blinkPeriodSeconds = 0.2
)

// PlayerSystem 玩家移动、攻击、受伤与附着水蛭管理
type PlayerSystem struct {
	ctx     *Context
	flash   *FlashEffectSystem
	enemies *EnemySystem
}

// NewPlayerSystem 创建玩家系统
func NewPlayerSystem(ctx *Context, flash *FlashEffectSystem, enemies *EnemySystem) *PlayerSystem {
	return &PlayerSystem{ctx: ctx, flash: flash, enemies: enemies}
}

func (s *PlayerSystem) player(id ecs.EntityID) (*components.PlayerComponent, bool) {
	if !s.ctx.Alive(id) {
		return nil, false
	}
	return ecs.GetComponent[*components.PlayerComponent](s.ctx.EM, id)
}

// Update 处理一帧输入
//
// 参数:
//   - id: 玩家实体
//   - input: 本帧输入
//   - dt: 时间增量（秒）
func (s *PlayerSystem) Update(id ecs.EntityID, input components.InputState, dt float64) {
	p, ok := s.player(id)
	if !ok {
		return
	}
	app, _ := ecs.GetComponent[*components.AppearanceComponent](s.ctx.EM, id)

	if p.IsDead {
		if app != nil {
			app.Alpha = math.Max(0, app.Alpha-dt/deathFadeSeconds)
		}
		return
	}

	vel, _ := ecs.GetComponent[*components.VelocityComponent](s.ctx.EM, id)
	body, _ := ecs.GetComponent[*components.PhysicsBodyComponent](s.ctx.EM, id)
	if vel == nil || body == nil {
		return
	}
	pc := s.ctx.Config.Player

	switch {
	case input.Left:
		vel.VX = -pc.Speed
		p.Facing = -1
	case input.Right:
		vel.VX = pc.Speed
		p.Facing = 1
	default:
		vel.VX *= pc.IdleDamping
	}
	if app != nil {
		app.FlipX = p.Facing < 0
	}

	if input.Jump && !p.PrevJump && body.OnGround {
		vel.VY = -pc.JumpForce
		body.OnGround = false
		s.ctx.Events.Publish(EventPlayerJumped, nil)
	}
	if input.Attack && !p.PrevAttack {
		s.Attack(id)
	}
	p.PrevJump = input.Jump
	p.PrevAttack = input.Attack

	s.updateAnimation(id, p, vel, body)
	s.positionAttached(id, p)

	if app != nil {
		if s.IsInvincible(id) {
			p.InvincibleBlinkT += dt
			if int(p.InvincibleBlinkT/blinkPeriodSeconds)%2 == 0 {
				app.Alpha = 0.5
			} else {
				app.Alpha = 1
			}
		} else {
			p.InvincibleBlinkT = 0
			app.Alpha = 1
		}
	}
}

// CanAttack 冷却是否结束
func (s *PlayerSystem) CanAttack(id ecs.EntityID) bool {
	p, ok := s.player(id)
	if !ok || p.IsDead || p.IsAttacking {
		return false
	}
	return !p.HasAttacked || s.ctx.Now()-p.LastAttackAt >= s.ctx.Config.Player.AttackCooldownMs
}

// Attack 发起一次近战攻击：生成判定框，攻击时长结束后退出攻击状态
// 冷却期间调用返回 false
func (s *PlayerSystem) Attack(id ecs.EntityID) bool {
	if !s.CanAttack(id) {
		return false
	}
	p, _ := s.player(id)
	pos, ok := ecs.GetComponent[*components.PositionComponent](s.ctx.EM, id)
	if !ok {
		return false
	}
	pc := s.ctx.Config.Player

	p.IsAttacking = true
	p.HasAttacked = true
	p.LastAttackAt = s.ctx.Now()
	p.AttackID++
	p.Hitbox = entities.NewAttackHitbox(s.ctx.EM, id, p.AttackID, pos.X, pos.Y, p.Facing, p.MeleeRange, pc.HitboxLifetimeMs/1000)

	if anim, ok := ecs.GetComponent[*components.AnimationComponent](s.ctx.EM, id); ok {
		entities.PlayClip(anim, entities.ClipPlayerAttack, true)
	}
	p.Anim = components.PlayerAnimAttack

	s.ctx.Sched.Cancel(p.AttackEndTimer)
	p.AttackEndTimer = s.ctx.Sched.After(pc.AttackDurationMs, id, func() {
		p.AttackEndTimer = 0
		p.IsAttacking = false
	})

	s.ctx.Events.Publish(EventPlayerAttacked, nil)
	return true
}

// IsAttacking 玩家是否处于攻击状态
func (s *PlayerSystem) IsAttacking(id ecs.EntityID) bool {
	p, ok := s.player(id)
	return ok && p.IsAttacking
}

// updateAnimation 动画优先级：attack > hurt > 空中 > 跑 > 待机
func (s *PlayerSystem) updateAnimation(id ecs.EntityID, p *components.PlayerComponent, vel *components.VelocityComponent, body *components.PhysicsBodyComponent) {
	var next components.PlayerAnim
	var clip components.AnimationClip
	switch {
	case p.IsAttacking:
		next, clip = components.PlayerAnimAttack, entities.ClipPlayerAttack
	case s.ctx.Now() < p.HurtUntil:
		next, clip = components.PlayerAnimHurt, entities.ClipPlayerHurt
	case !body.OnGround:
		next, clip = components.PlayerAnimJump, entities.ClipPlayerJump
	case math.Abs(vel.VX) > runAnimThreshold:
		next, clip = components.PlayerAnimRun, entities.ClipPlayerRun
	default:
		next, clip = components.PlayerAnimIdle, entities.ClipPlayerIdle
	}
	p.Anim = next
	if anim, ok := ecs.GetComponent[*components.AnimationComponent](s.ctx.EM, id); ok {
		entities.PlayClip(anim, clip, false)
	}
}

// positionAttached 把附着的水蛭排在玩家周围：第 i 只位于角度 i/n·2π、半径 20+5i 处
func (s *PlayerSystem) positionAttached(id ecs.EntityID, p *components.PlayerComponent) {
	pos, ok := ecs.GetComponent[*components.PositionComponent](s.ctx.EM, id)
	if !ok {
		return
	}
	n := len(p.AttachedEnemies)
	for i, eid := range p.AttachedEnemies {
		epos, ok := ecs.GetComponent[*components.PositionComponent](s.ctx.EM, eid)
		if !ok {
			continue
		}
		angle := float64(i) / float64(n) * 2 * math.Pi
		radius := 20 + 5*float64(i)
		epos.X = pos.X + math.Cos(angle)*radius
		epos.Y = pos.Y - 10 + math.Sin(angle)*radius
	}
}

// TakeDamage 扣血
// 无敌或已死亡时不生效，返回是否造成了伤害
func (s *PlayerSystem) TakeDamage(id ecs.EntityID, amount int) bool {
	p, ok := s.player(id)
	if !ok || p.IsDead || amount <= 0 || s.IsInvincible(id) {
		return false
	}
	health, ok := ecs.GetComponent[*components.HealthComponent](s.ctx.EM, id)
	if !ok {
		return false
	}

	health.CurrentHealth -= amount
	if health.CurrentHealth < 0 {
		health.CurrentHealth = 0
	}
	s.ctx.Events.Publish(EventPlayerHit, PlayerHitEvent{
		Health:    health.CurrentHealth,
		MaxHealth: health.MaxHealth,
		Damage:    amount,
	})

	if health.CurrentHealth == 0 {
		s.Die(id)
		return true
	}

	pc := s.ctx.Config.Player
	s.GrantInvincibility(id, components.InvincibleFromHit, pc.InvincibleDurationMs)
	p.HurtUntil = s.ctx.Now() + pc.HurtDurationMs
	if anim, ok := ecs.GetComponent[*components.AnimationComponent](s.ctx.EM, id); ok {
		entities.PlayClip(anim, entities.ClipPlayerHurt, true)
	}
	if s.flash != nil {
		s.flash.Flash(id, 0.1, 1, 0, 0)
	}
	return true
}

// Health 当前生命值与上限
func (s *PlayerSystem) Health(id ecs.EntityID) (current, maxHealth int) {
	health, ok := ecs.GetComponent[*components.HealthComponent](s.ctx.EM, id)
	if !ok {
		return 0, 0
	}
	return health.CurrentHealth, health.MaxHealth
}

// IsDead 玩家是否已死亡（实体不存在也视为死亡）
func (s *PlayerSystem) IsDead(id ecs.EntityID) bool {
	p, ok := s.player(id)
	return !ok || p.IsDead
}

// IsInvincible 按配置的策略判断是否无敌
func (s *PlayerSystem) IsInvincible(id ecs.EntityID) bool {
	p, ok := s.player(id)
	if !ok {
		return false
	}
	if s.ctx.Config.Player.InvincibilityPolicy == config.InvincibilityOverride {
		return p.Invincible
	}
	for _, active := range p.SourceActive {
		if active {
			return true
		}
	}
	return false
}

// GrantInvincibility 开启某个来源的无敌窗口，同一来源重复开启时替换旧的计时器
//
// sources 策略下到期只清除该来源；override 策略下到期无条件清除共享标志，
// 所以护符到期会连带结束仍在进行中的受击无敌。
func (s *PlayerSystem) GrantInvincibility(id ecs.EntityID, source components.InvincibilitySource, durationMs float64) {
	p, ok := s.player(id)
	if !ok || p.IsDead {
		return
	}
	override := s.ctx.Config.Player.InvincibilityPolicy == config.InvincibilityOverride

	s.ctx.Sched.Cancel(p.SourceTimers[source])
	p.SourceActive[source] = true
	if override {
		p.Invincible = true
	}
	p.SourceTimers[source] = s.ctx.Sched.After(durationMs, id, func() {
		p.SourceTimers[source] = 0
		p.SourceActive[source] = false
		if override {
			p.Invincible = false
		}
	})
}

// ClearInvincibility 立即结束某个来源的无敌（override 策略下清除共享标志）
func (s *PlayerSystem) ClearInvincibility(id ecs.EntityID, source components.InvincibilitySource) {
	p, ok := s.player(id)
	if !ok {
		return
	}
	s.ctx.Sched.Cancel(p.SourceTimers[source])
	p.SourceTimers[source] = 0
	p.SourceActive[source] = false
	if s.ctx.Config.Player.InvincibilityPolicy == config.InvincibilityOverride {
		p.Invincible = false
	}
}

// SetInvincible 开启受击无敌窗口或清除所有无敌
func (s *PlayerSystem) SetInvincible(id ecs.EntityID, on bool) {
	if on {
		s.GrantInvincibility(id, components.InvincibleFromHit, s.ctx.Config.Player.InvincibleDurationMs)
		return
	}
	s.ClearInvincibility(id, components.InvincibleFromHit)
	s.ClearInvincibility(id, components.InvincibleFromCharm)
}

// MeleeRange 当前近战范围倍率
func (s *PlayerSystem) MeleeRange(id ecs.EntityID) float64 {
	p, ok := s.player(id)
	if !ok {
		return 0
	}
	return p.MeleeRange
}

// SetMeleeRange 把近战范围设为 "拾取时的原值 × multiplier"，durationMs 后恢复原值
//
// 原值只在没有待恢复的计时器时记录，效果重叠时后者替换计时器（后写覆盖），
// 但恢复的仍是第一次记录的原值，不会把加成永久叠加上去。
func (s *PlayerSystem) SetMeleeRange(id ecs.EntityID, multiplier, durationMs float64) {
	p, ok := s.player(id)
	if !ok || p.IsDead {
		return
	}
	if !s.ctx.Sched.IsPending(p.MeleeRevertTimer) {
		p.BaseMeleeRange = p.MeleeRange
	}
	p.MeleeRange = p.BaseMeleeRange * multiplier

	s.ctx.Sched.Cancel(p.MeleeRevertTimer)
	p.MeleeRevertTimer = s.ctx.Sched.After(durationMs, id, func() {
		p.MeleeRevertTimer = 0
		p.MeleeRange = p.BaseMeleeRange
	})
}

// AttachLeech 让敌人附着到玩家并登记
// 附着后 attachDamageDelayMs 结算一次伤害（敌人仍附着且玩家存活时）
func (s *PlayerSystem) AttachLeech(id, enemy ecs.EntityID) bool {
	p, ok := s.player(id)
	if !ok || p.IsDead {
		return false
	}
	for _, attached := range p.AttachedEnemies {
		if attached == enemy {
			return false
		}
	}
	if !s.enemies.AttachTo(enemy, id) {
		return false
	}
	p.AttachedEnemies = append(p.AttachedEnemies, enemy)

	// 计时器归属敌人：敌人死亡或销毁时一并取消
	s.ctx.Sched.After(s.ctx.Config.Player.AttachDamageDelayMs, enemy, func() {
		e, ok := s.enemies.enemy(enemy)
		if !ok || e.State != components.EnemyAttached || e.AttachedTo != id {
			return
		}
		if s.IsDead(id) {
			return
		}
		s.TakeDamage(id, e.Damage)
	})
	return true
}

// DetachLeech 从附着列表中移除敌人（不改变敌人状态）
func (s *PlayerSystem) DetachLeech(id, enemy ecs.EntityID) bool {
	p, ok := ecs.GetComponent[*components.PlayerComponent](s.ctx.EM, id)
	if !ok {
		return false
	}
	for i, attached := range p.AttachedEnemies {
		if attached == enemy {
			p.AttachedEnemies = append(p.AttachedEnemies[:i], p.AttachedEnemies[i+1:]...)
			return true
		}
	}
	return false
}

// ShakeOffLeeches 强制所有附着的敌人脱离，返回脱离数量
func (s *PlayerSystem) ShakeOffLeeches(id ecs.EntityID) int {
	p, ok := ecs.GetComponent[*components.PlayerComponent](s.ctx.EM, id)
	if !ok {
		return 0
	}
	attached := append([]ecs.EntityID(nil), p.AttachedEnemies...)
	count := 0
	for _, enemy := range attached {
		if s.enemies.Detach(enemy) {
			count++
		}
	}
	p.AttachedEnemies = p.AttachedEnemies[:0]
	return count
}

// AttachedCount 当前附着的敌人数量
func (s *PlayerSystem) AttachedCount(id ecs.EntityID) int {
	p, ok := ecs.GetComponent[*components.PlayerComponent](s.ctx.EM, id)
	if !ok {
		return 0
	}
	return len(p.AttachedEnemies)
}

// Die 玩家死亡：终态，关闭物理和碰撞，开始淡出并通知场景
func (s *PlayerSystem) Die(id ecs.EntityID) bool {
	p, ok := s.player(id)
	if !ok || p.IsDead {
		return false
	}
	p.IsDead = true
	p.IsAttacking = false
	p.Anim = components.PlayerAnimDie

	// 玩家拥有的计时器：攻击结束、近战范围恢复、无敌窗口
	s.ctx.Sched.CancelOwner(id)
	p.AttackEndTimer, p.MeleeRevertTimer = 0, 0
	for i := range p.SourceTimers {
		p.SourceTimers[i] = 0
		p.SourceActive[i] = false
	}
	p.Invincible = false

	if body, ok := ecs.GetComponent[*components.PhysicsBodyComponent](s.ctx.EM, id); ok {
		body.Enabled = false
	}
	if vel, ok := ecs.GetComponent[*components.VelocityComponent](s.ctx.EM, id); ok {
		vel.VX, vel.VY = 0, 0
	}
	ecs.RemoveComponent[*components.CollisionComponent](s.ctx.EM, id)
	if anim, ok := ecs.GetComponent[*components.AnimationComponent](s.ctx.EM, id); ok {
		entities.PlayClip(anim, entities.ClipPlayerDie, true)
	}

	log.Printf("[PlayerSystem] player %d died", id)
	s.ctx.Events.Publish(EventPlayerDied, nil)
	return true
}
