package systems

import (
	"log"
	"math"

	"github.com/decker502/forestleeches/pkg/components"
	"github.com/decker502/forestleeches/pkg/ecs"
	"github.com/decker502/forestleeches/pkg/entities"
	"github.com/decker502/forestleeches/pkg/scheduler"
)

// minHopRatio 跳跃时竖直向上分量至少占跳跃力的比例，保证水蛭是"跳"过去而不是贴地滑行
const minHopRatio = 0.5

// EnemySystem 水蛭与水蛭王共用的状态机和移动 AI
//
// 状态机：Roaming → Attached → Detached，Dead 可从任意非 Dead 状态进入且为终态。
// 非法的状态迁移是静默的空操作，返回 false。
type EnemySystem struct {
	ctx   *Context
	flash *FlashEffectSystem
	// beforeDeath 在敌人进入 Dead 之前调用（Boss 用它先清掉小怪）
	beforeDeath []func(id ecs.EntityID)
}

// NewEnemySystem 创建敌人系统
func NewEnemySystem(ctx *Context, flash *FlashEffectSystem) *EnemySystem {
	return &EnemySystem{ctx: ctx, flash: flash}
}

func (s *EnemySystem) enemy(id ecs.EntityID) (*components.EnemyComponent, bool) {
	if !s.ctx.Alive(id) {
		return nil, false
	}
	return ecs.GetComponent[*components.EnemyComponent](s.ctx.EM, id)
}

// OnBeforeDeath 注册死亡前回调
func (s *EnemySystem) OnBeforeDeath(fn func(id ecs.EntityID)) {
	s.beforeDeath = append(s.beforeDeath, fn)
}

// State 返回敌人当前状态
func (s *EnemySystem) State(id ecs.EntityID) (components.EnemyState, bool) {
	e, ok := s.enemy(id)
	if !ok {
		return components.EnemyDead, false
	}
	return e.State, true
}

// Health 敌人当前生命值与上限，已死亡或不存在时 alive 为 false
func (s *EnemySystem) Health(id ecs.EntityID) (current, maxHealth int, alive bool) {
	e, ok := s.enemy(id)
	if !ok || e.State == components.EnemyDead {
		return 0, 0, false
	}
	hp, ok := ecs.GetComponent[*components.HealthComponent](s.ctx.EM, id)
	if !ok {
		return 0, 0, false
	}
	return hp.CurrentHealth, hp.MaxHealth, true
}

// Update 每帧移动：在地面上时朝目标爬行，附着时保持静止
func (s *EnemySystem) Update(dt float64) {
	ids := ecs.GetEntitiesWith3[
		*components.EnemyComponent,
		*components.PositionComponent,
		*components.VelocityComponent,
	](s.ctx.EM)

	for _, id := range ids {
		e, _ := ecs.GetComponent[*components.EnemyComponent](s.ctx.EM, id)
		vel, _ := ecs.GetComponent[*components.VelocityComponent](s.ctx.EM, id)

		switch e.State {
		case components.EnemyDead, components.EnemyAttached:
			vel.VX, vel.VY = 0, 0
			continue
		}
		if s.ctx.Frozen {
			continue
		}

		body, ok := ecs.GetComponent[*components.PhysicsBodyComponent](s.ctx.EM, id)
		if !ok || !body.OnGround {
			continue
		}
		tx, _, hasTarget := s.targetPosition(e)
		if !hasTarget {
			continue
		}
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.ctx.EM, id)
		dx := tx - pos.X
		if math.Abs(dx) < 1 {
			continue
		}
		dir := math.Copysign(1, dx)
		// 脱离后的击退速度衰减到爬行速度以下之前不覆盖
		if math.Abs(vel.VX) <= e.Speed {
			vel.VX = dir * e.Speed
		}
		e.Facing = dir
		if app, ok := ecs.GetComponent[*components.AppearanceComponent](s.ctx.EM, id); ok {
			app.FlipX = dir < 0
		}
	}
}

// StartAI 启动跳跃循环
func (s *EnemySystem) StartAI(id ecs.EntityID) {
	s.scheduleJump(id)
}

// minJumpDelayMs 两次跳跃之间的最小间隔（一帧）
const minJumpDelayMs = 1000.0 / 60

// scheduleJump 在 [min, max] 随机间隔后跳向目标
func (s *EnemySystem) scheduleJump(id ecs.EntityID) {
	e, ok := s.enemy(id)
	if !ok || s.ctx.Frozen {
		return
	}
	if e.State == components.EnemyDead || e.State == components.EnemyAttached {
		return
	}
	s.ctx.Sched.Cancel(e.JumpTimer)
	// 至少间隔一帧，否则零间隔的定时器会在同一次 Advance 里无限重排
	delay := max(minJumpDelayMs, s.ctx.Rand.FloatBetween(e.JumpCooldownMinMs, e.JumpCooldownMaxMs))
	e.JumpTimer = s.ctx.Sched.After(delay, id, func() {
		e.JumpTimer = 0
		s.jump(id)
	})
}

// jump 朝目标施加冲量（没有目标时随机方向，力度 ×0.7），然后安排下一次跳跃
func (s *EnemySystem) jump(id ecs.EntityID) {
	e, ok := s.enemy(id)
	if !ok || e.State == components.EnemyDead || e.State == components.EnemyAttached || s.ctx.Frozen {
		return
	}
	pos, _ := ecs.GetComponent[*components.PositionComponent](s.ctx.EM, id)
	vel, _ := ecs.GetComponent[*components.VelocityComponent](s.ctx.EM, id)
	if pos == nil || vel == nil {
		return
	}

	force := e.JumpForce
	var angle float64
	if tx, ty, ok := s.targetPosition(e); ok {
		angle = math.Atan2(ty-pos.Y, tx-pos.X)
	} else {
		angle = s.ctx.Rand.FloatBetween(0, 2*math.Pi)
		force *= 0.7
	}
	vel.VX = math.Cos(angle) * force
	vel.VY = math.Sin(angle) * force
	if vel.VY > -force*minHopRatio {
		vel.VY = -force * minHopRatio
	}

	_, jumpClip, _, _ := entities.EnemyClips(e.Kind)
	if anim, ok := ecs.GetComponent[*components.AnimationComponent](s.ctx.EM, id); ok {
		entities.PlayClip(anim, jumpClip, true)
	}

	s.scheduleJump(id)
}

// AttachTo 附着到目标（只能从 Roaming 进入）
// 关闭物理、取消待执行的跳跃，并在附着时长后自动脱离
func (s *EnemySystem) AttachTo(id, target ecs.EntityID) bool {
	e, ok := s.enemy(id)
	if !ok || e.State != components.EnemyRoaming || !s.ctx.Alive(target) {
		return false
	}

	e.State = components.EnemyAttached
	e.AttachedTo = target
	e.Target = target

	if body, ok := ecs.GetComponent[*components.PhysicsBodyComponent](s.ctx.EM, id); ok {
		body.Enabled = false
	}
	if vel, ok := ecs.GetComponent[*components.VelocityComponent](s.ctx.EM, id); ok {
		vel.VX, vel.VY = 0, 0
	}
	s.ctx.Sched.Cancel(e.JumpTimer)
	e.JumpTimer = 0

	_, _, attachClip, _ := entities.EnemyClips(e.Kind)
	if anim, ok := ecs.GetComponent[*components.AnimationComponent](s.ctx.EM, id); ok {
		entities.PlayClip(anim, attachClip, true)
	}

	e.DetachTimer = s.ctx.Sched.After(e.AttachDurationMs, id, func() {
		e.DetachTimer = 0
		s.Detach(id)
	})

	s.ctx.Events.Publish(EventEnemyAttached, EnemyEvent{ID: id, Kind: e.Kind})
	return true
}

// Detach 脱离（只能从 Attached 进入）
// 恢复物理、沿远离目标方向弹开，宽限期后仍未重新附着则消失，同时恢复跳跃循环
func (s *EnemySystem) Detach(id ecs.EntityID) bool {
	e, ok := s.enemy(id)
	if !ok || e.State != components.EnemyAttached {
		return false
	}

	holder := e.AttachedTo
	e.State = components.EnemyDetached
	e.AttachedTo = ecs.InvalidEntity
	s.ctx.Sched.Cancel(e.DetachTimer)
	e.DetachTimer = 0
	s.removeFromHolder(holder, id)

	if body, ok := ecs.GetComponent[*components.PhysicsBodyComponent](s.ctx.EM, id); ok {
		body.Enabled = true
	}
	s.Repel(id, holder, e.DetachForce)

	idle, _, _, _ := entities.EnemyClips(e.Kind)
	if anim, ok := ecs.GetComponent[*components.AnimationComponent](s.ctx.EM, id); ok {
		entities.PlayClip(anim, idle, true)
	}

	if !s.ctx.Frozen {
		e.DespawnTimer = s.ctx.Sched.After(e.DespawnDelayMs, id, func() {
			e.DespawnTimer = 0
			if e.State == components.EnemyDetached {
				s.Die(id, components.DeathDespawned)
			}
		})
		s.scheduleJump(id)
	}

	s.ctx.Events.Publish(EventEnemyDetached, EnemyEvent{ID: id, Kind: e.Kind})
	return true
}

// Repel 以 force 的速度把敌人推离 from 实体
func (s *EnemySystem) Repel(id, from ecs.EntityID, force float64) {
	fromPos, ok := ecs.GetComponent[*components.PositionComponent](s.ctx.EM, from)
	if !ok {
		return
	}
	s.RepelFrom(id, fromPos.X, fromPos.Y, force)
}

// RepelFrom 以 force 的速度把敌人推离点 (x, y)
func (s *EnemySystem) RepelFrom(id ecs.EntityID, x, y, force float64) {
	e, ok := s.enemy(id)
	if !ok || e.State == components.EnemyDead {
		return
	}
	pos, ok1 := ecs.GetComponent[*components.PositionComponent](s.ctx.EM, id)
	vel, ok2 := ecs.GetComponent[*components.VelocityComponent](s.ctx.EM, id)
	if !ok1 || !ok2 {
		return
	}
	angle := math.Atan2(pos.Y-y, pos.X-x)
	vel.VX = math.Cos(angle) * force
	vel.VY = math.Sin(angle) * force
}

// TakeDamage 扣血，死亡返回 true
// 死亡后调用是空操作
func (s *EnemySystem) TakeDamage(id ecs.EntityID, amount int) bool {
	e, ok := s.enemy(id)
	if !ok || e.State == components.EnemyDead {
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
	if s.flash != nil {
		s.flash.Flash(id, 0.1, 1, 0, 0)
	}

	killed := health.CurrentHealth <= 0
	s.ctx.Events.Publish(EventEnemyDamaged, EnemyDamagedEvent{ID: id, Kind: e.Kind, Amount: amount, Killed: killed})
	if killed {
		s.Die(id, components.DeathKilled)
	}
	return killed
}

// Die 进入终态：取消所有定时器、关闭物理、播放死亡动画（播完后销毁实体）
// 幂等：重复调用返回 false
func (s *EnemySystem) Die(id ecs.EntityID, cause components.DeathCause) bool {
	e, ok := s.enemy(id)
	if !ok || e.State == components.EnemyDead {
		return false
	}

	for _, fn := range s.beforeDeath {
		fn(id)
	}
	if e.State == components.EnemyDead {
		return false
	}

	holder := e.AttachedTo
	e.State = components.EnemyDead
	e.Cause = cause
	e.AttachedTo = ecs.InvalidEntity
	e.JumpTimer, e.DetachTimer, e.DespawnTimer = 0, 0, 0
	s.ctx.Sched.CancelOwner(id)
	s.removeFromHolder(holder, id)

	if body, ok := ecs.GetComponent[*components.PhysicsBodyComponent](s.ctx.EM, id); ok {
		body.Enabled = false
	}
	if vel, ok := ecs.GetComponent[*components.VelocityComponent](s.ctx.EM, id); ok {
		vel.VX, vel.VY = 0, 0
	}
	// 死亡后不再参与碰撞
	ecs.RemoveComponent[*components.CollisionComponent](s.ctx.EM, id)

	_, _, _, dieClip := entities.EnemyClips(e.Kind)
	if anim, ok := ecs.GetComponent[*components.AnimationComponent](s.ctx.EM, id); ok {
		entities.PlayClip(anim, dieClip, true)
		anim.DestroyOnFinish = true
	} else {
		s.ctx.Destroy(id)
	}

	x, y := 0.0, 0.0
	if pos, ok := ecs.GetComponent[*components.PositionComponent](s.ctx.EM, id); ok {
		x, y = pos.X, pos.Y
	}
	log.Printf("[EnemySystem] %s %d died (cause=%d)", e.Kind, id, cause)
	s.ctx.Events.Publish(EventEnemyDied, EnemyDiedEvent{
		ID:         id,
		Kind:       e.Kind,
		Cause:      cause,
		ScoreValue: e.ScoreValue,
		Owner:      e.Owner,
		X:          x,
		Y:          y,
	})
	return true
}

// Freeze 终局冻结：取消所有敌人的 AI 定时器并清零速度
// 已死亡敌人的死亡动画照常播放完
func (s *EnemySystem) Freeze() {
	ids := ecs.GetEntitiesWith1[*components.EnemyComponent](s.ctx.EM)
	for _, id := range ids {
		e, _ := ecs.GetComponent[*components.EnemyComponent](s.ctx.EM, id)
		if e.State == components.EnemyDead {
			continue
		}
		for _, h := range []scheduler.Handle{e.JumpTimer, e.DetachTimer, e.DespawnTimer} {
			s.ctx.Sched.Cancel(h)
		}
		e.JumpTimer, e.DetachTimer, e.DespawnTimer = 0, 0, 0
		if boss, ok := ecs.GetComponent[*components.BossComponent](s.ctx.EM, id); ok {
			s.ctx.Sched.Cancel(boss.AttackTimer)
			boss.AttackTimer = 0
		}
		if vel, ok := ecs.GetComponent[*components.VelocityComponent](s.ctx.EM, id); ok {
			vel.VX, vel.VY = 0, 0
		}
		if body, ok := ecs.GetComponent[*components.PhysicsBodyComponent](s.ctx.EM, id); ok {
			body.Enabled = false
		}
	}
}

// targetPosition 返回目标位置（目标不存在时 ok=false）
func (s *EnemySystem) targetPosition(e *components.EnemyComponent) (float64, float64, bool) {
	if !s.ctx.Alive(e.Target) {
		return 0, 0, false
	}
	pos, ok := ecs.GetComponent[*components.PositionComponent](s.ctx.EM, e.Target)
	if !ok {
		return 0, 0, false
	}
	return pos.X, pos.Y, true
}

// removeFromHolder 从玩家的附着列表中移除敌人
func (s *EnemySystem) removeFromHolder(holder, id ecs.EntityID) {
	if holder == ecs.InvalidEntity {
		return
	}
	player, ok := ecs.GetComponent[*components.PlayerComponent](s.ctx.EM, holder)
	if !ok {
		return
	}
	for i, attached := range player.AttachedEnemies {
		if attached == id {
			player.AttachedEnemies = append(player.AttachedEnemies[:i], player.AttachedEnemies[i+1:]...)
			return
		}
	}
}
