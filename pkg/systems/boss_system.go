package systems

import (
	"log"
	"math"

	"github.com/decker502/forestleeches/pkg/components"
	"github.com/decker502/forestleeches/pkg/ecs"
	"github.com/decker502/forestleeches/pkg/entities"
	"github.com/decker502/forestleeches/pkg/event"
)

// BossSystem 水蛭王的攻击循环
//
// 每隔 attackCooldownMs 轮换一次攻击模式（先递增再执行，所以第一次是 spiral）：
// charge 冲撞并在落点检测冲击波，spiral 依次发射一圈弹幕，summon 召唤 1-3 只小水蛭。
type BossSystem struct {
	ctx     *Context
	enemies *EnemySystem
	player  *PlayerSystem
}

// NewBossSystem 创建 Boss 系统
func NewBossSystem(ctx *Context, enemies *EnemySystem, player *PlayerSystem) *BossSystem {
	bs := &BossSystem{ctx: ctx, enemies: enemies, player: player}
	enemies.OnBeforeDeath(bs.cascadeMinions)
	ctx.Events.SubscribeFunc(EventEnemyDied, bs.onEnemyDied)
	return bs
}

// Start 启动 Boss 的跳跃循环和攻击循环
func (bs *BossSystem) Start(boss ecs.EntityID) {
	bs.enemies.StartAI(boss)
	bs.scheduleAttack(boss)
}

func (bs *BossSystem) components(boss ecs.EntityID) (*components.EnemyComponent, *components.BossComponent, bool) {
	e, ok := bs.enemies.enemy(boss)
	if !ok {
		return nil, nil, false
	}
	b, ok := ecs.GetComponent[*components.BossComponent](bs.ctx.EM, boss)
	if !ok {
		return nil, nil, false
	}
	return e, b, true
}

func (bs *BossSystem) scheduleAttack(boss ecs.EntityID) {
	e, b, ok := bs.components(boss)
	if !ok || e.State == components.EnemyDead || bs.ctx.Frozen {
		return
	}
	b.AttackTimer = bs.ctx.Sched.After(bs.ctx.Config.Boss.AttackCooldownMs, boss, func() {
		b.AttackTimer = 0
		bs.ExecuteNextPattern(boss)
		bs.scheduleAttack(boss)
	})
}

// ExecuteNextPattern 轮换到下一个攻击模式并执行
// 附着或死亡时跳过（不推进轮换）
func (bs *BossSystem) ExecuteNextPattern(boss ecs.EntityID) (components.BossPattern, bool) {
	e, b, ok := bs.components(boss)
	if !ok || e.State == components.EnemyDead || e.State == components.EnemyAttached {
		return 0, false
	}

	b.PatternIndex = (b.PatternIndex + 1) % components.BossPatternCount
	pattern := components.BossPattern(b.PatternIndex)
	b.LastPattern = pattern

	switch pattern {
	case components.BossCharge:
		bs.charge(boss, e)
	case components.BossSpiral:
		bs.spiral(boss)
	case components.BossSummon:
		bs.summon(boss, e, b)
	}
	bs.ctx.Events.Publish(EventBossAttack, BossAttackEvent{ID: boss, Pattern: pattern})
	return pattern, true
}

// charge 朝目标冲撞，冲击时刻检测目标是否在冲击波半径内
func (bs *BossSystem) charge(boss ecs.EntityID, e *components.EnemyComponent) {
	tx, ty, ok := bs.enemies.targetPosition(e)
	if !ok {
		return
	}
	pos, _ := ecs.GetComponent[*components.PositionComponent](bs.ctx.EM, boss)
	vel, _ := ecs.GetComponent[*components.VelocityComponent](bs.ctx.EM, boss)
	if pos == nil || vel == nil {
		return
	}

	force := e.JumpForce * bs.ctx.Config.Boss.ChargeMultiplier
	angle := math.Atan2(ty-pos.Y, tx-pos.X)
	vel.VX = math.Cos(angle) * force
	vel.VY = math.Sin(angle) * force

	_, jumpClip, _, _ := entities.EnemyClips(e.Kind)
	if anim, ok := ecs.GetComponent[*components.AnimationComponent](bs.ctx.EM, boss); ok {
		entities.PlayClip(anim, jumpClip, true)
	}

	bs.ctx.Sched.After(bs.ctx.Config.Boss.ChargeImpactDelayMs, boss, func() {
		bs.Shockwave(boss)
	})
}

// Shockwave 冲击波：目标在半径内时伤害并把目标推离 Boss
// 返回目标是否被击中
func (bs *BossSystem) Shockwave(boss ecs.EntityID) bool {
	e, _, ok := bs.components(boss)
	if !ok || e.State == components.EnemyDead || e.State == components.EnemyAttached {
		return false
	}
	if !bs.ctx.Alive(e.Target) {
		return false
	}
	bossPos, _ := ecs.GetComponent[*components.PositionComponent](bs.ctx.EM, boss)
	targetPos, _ := ecs.GetComponent[*components.PositionComponent](bs.ctx.EM, e.Target)
	if bossPos == nil || targetPos == nil {
		return false
	}

	cfg := bs.ctx.Config.Boss
	if math.Hypot(targetPos.X-bossPos.X, targetPos.Y-bossPos.Y) >= cfg.ShockwaveRadius {
		return false
	}
	if vel, ok := ecs.GetComponent[*components.VelocityComponent](bs.ctx.EM, e.Target); ok {
		angle := math.Atan2(targetPos.Y-bossPos.Y, targetPos.X-bossPos.X)
		vel.VX = math.Cos(angle) * cfg.ShockwaveForce
		vel.VY = math.Sin(angle) * cfg.ShockwaveForce
	}
	if bs.player != nil {
		bs.player.TakeDamage(e.Target, cfg.ShockwaveDamage)
	}
	return true
}

// spiral 每隔 spiralIntervalMs 发射一颗弹幕，共 spiralCount 颗，角度均匀铺满一圈
func (bs *BossSystem) spiral(boss ecs.EntityID) {
	cfg := bs.ctx.Config.Boss
	if cfg.SpiralCount <= 0 {
		return
	}
	step := 2 * math.Pi / float64(cfg.SpiralCount)
	for i := 0; i < cfg.SpiralCount; i++ {
		angle := step * float64(i)
		bs.ctx.Sched.After(float64(i)*cfg.SpiralIntervalMs, boss, func() {
			e, _, ok := bs.components(boss)
			if !ok || e.State == components.EnemyDead || e.State == components.EnemyAttached || bs.ctx.Frozen {
				return
			}
			pos, ok := ecs.GetComponent[*components.PositionComponent](bs.ctx.EM, boss)
			if !ok {
				return
			}
			entities.NewProjectileEntity(bs.ctx.EM, bs.ctx.Config, boss, pos.X, pos.Y, angle)
		})
	}
}

// summon 召唤小怪：数量未达上限且冷却结束时，在 Boss 周围等角度生成 1-3 只水蛭
func (bs *BossSystem) summon(boss ecs.EntityID, e *components.EnemyComponent, b *components.BossComponent) int {
	cfg := bs.ctx.Config.Boss
	now := bs.ctx.Now()
	if len(b.Minions) >= b.MaxMinions {
		return 0
	}
	if now-b.LastMinionSpawnAt < cfg.MinionSpawnCooldownMs {
		return 0
	}
	pos, ok := ecs.GetComponent[*components.PositionComponent](bs.ctx.EM, boss)
	if !ok {
		return 0
	}

	count := bs.ctx.Rand.IntBetween(1, 3)
	step := 2 * math.Pi / float64(count)
	spawned := 0
	for i := 0; i < count && len(b.Minions) < b.MaxMinions; i++ {
		angle := step * float64(i)
		x := pos.X + math.Cos(angle)*cfg.MinionSpawnDistance
		y := pos.Y + math.Sin(angle)*cfg.MinionSpawnDistance
		minion, err := entities.NewLeechEntity(bs.ctx.EM, bs.ctx.Config, x, y, e.Target, boss, entities.NoScaling)
		if err != nil {
			log.Printf("[BossSystem] failed to spawn minion: %v", err)
			continue
		}
		b.Minions = append(b.Minions, minion)
		bs.enemies.StartAI(minion)
		spawned++
	}
	b.LastMinionSpawnAt = now
	return spawned
}

// LiveMinions 返回 Boss 当前存活的小怪数量
func (bs *BossSystem) LiveMinions(boss ecs.EntityID) int {
	_, b, ok := bs.components(boss)
	if !ok {
		return 0
	}
	return len(b.Minions)
}

// cascadeMinions Boss 死亡前先杀死所有存活的小怪
func (bs *BossSystem) cascadeMinions(id ecs.EntityID) {
	b, ok := ecs.GetComponent[*components.BossComponent](bs.ctx.EM, id)
	if !ok {
		return
	}
	minions := append([]ecs.EntityID(nil), b.Minions...)
	for _, m := range minions {
		bs.enemies.Die(m, components.DeathCascade)
	}
	b.Minions = nil
	bs.ctx.Sched.Cancel(b.AttackTimer)
	b.AttackTimer = 0
}

// onEnemyDied 小怪死亡时从召唤者的小怪列表中移除
func (bs *BossSystem) onEnemyDied(ev event.Event) {
	died, ok := ev.Data.(EnemyDiedEvent)
	if !ok || died.Owner == ecs.InvalidEntity {
		return
	}
	b, ok := ecs.GetComponent[*components.BossComponent](bs.ctx.EM, died.Owner)
	if !ok {
		return
	}
	for i, m := range b.Minions {
		if m == died.ID {
			b.Minions = append(b.Minions[:i], b.Minions[i+1:]...)
			return
		}
	}
}
