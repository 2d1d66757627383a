package gameplay

import (
	"fmt"
	"log"

	"github.com/decker502/forestleeches/pkg/components"
	"github.com/decker502/forestleeches/pkg/config"
	"github.com/decker502/forestleeches/pkg/ecs"
	"github.com/decker502/forestleeches/pkg/entities"
	"github.com/decker502/forestleeches/pkg/event"
	"github.com/decker502/forestleeches/pkg/scheduler"
	"github.com/decker502/forestleeches/pkg/systems"
)

// 局级事件
const (
	EventDifficultyIncreased event.EventType = "session.difficultyIncreased"
	EventPauseChanged        event.EventType = "session.pauseChanged"
	EventGameOver            event.EventType = "session.gameOver"
	EventVictory             event.EventType = "session.victory"
	// EventRunFinished 结束后延迟 endSceneDelayMs 发出，场景据此切换
	EventRunFinished event.EventType = "session.runFinished"
)

// DifficultyEvent 难度升级
type DifficultyEvent struct {
	Level int
}

const (
	hitShakeSeconds       = 0.1
	hitShakeIntensity     = 3.0
	explosionShakeSeconds = 0.4
	explosionShakeIntense = 6.0
)

// Session 一局游戏：持有全部系统和状态，每帧由场景驱动
//
// 帧内顺序：输入 → 玩家 → 定时器（敌人 AI）→ 敌人移动 → 物理 → 碰撞 → 规则，
// 最后统一删除本帧标记销毁的实体。
type Session struct {
	Ctx   *systems.Context
	State *GameState

	Player ecs.EntityID
	Camera ecs.EntityID

	PlayerSys     *systems.PlayerSystem
	EnemySys      *systems.EnemySystem
	BossSys       *systems.BossSystem
	ItemSys       *systems.ItemSystem
	SpawnSys      *systems.SpawnSystem
	DifficultySys *systems.DifficultySystem
	PhysicsSys    *systems.PhysicsSystem
	CollisionSys  *systems.CollisionSystem
	AnimationSys  *systems.AnimationSystem
	LifetimeSys   *systems.LifetimeSystem
	FlashSys      *systems.FlashEffectSystem
	ParticleSys   *systems.ParticleSystem
	CameraSys     *systems.CameraSystem

	prevPause bool
	endTimer  scheduler.Handle
	finished  bool
}

// NewSession 创建一局游戏
//
// 参数:
//   - cfg: 游戏配置（nil 时使用默认值）
//   - seed: 随机种子（0 表示使用当前时间）
//
// 返回:
//   - *Session: 已生成玩家和摄像机、刷怪计时器已启动的会话
//   - error: 创建玩家失败
func NewSession(cfg *config.GameConfig, seed int64) (*Session, error) {
	if cfg == nil {
		cfg = config.DefaultGameConfig()
	}
	ctx := systems.NewContext(cfg, seed)

	player, err := entities.NewPlayerEntity(ctx.EM, cfg, config.PlayerStartX, config.PlayerStartY)
	if err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}
	camera := entities.NewCamera(ctx.EM, player, 0, 0, config.CameraLerp)

	s := &Session{
		Ctx:    ctx,
		State:  &GameState{Status: StatusRunning},
		Player: player,
		Camera: camera,
	}

	s.FlashSys = systems.NewFlashEffectSystem(ctx.EM)
	s.EnemySys = systems.NewEnemySystem(ctx, s.FlashSys)
	s.PlayerSys = systems.NewPlayerSystem(ctx, s.FlashSys, s.EnemySys)
	s.BossSys = systems.NewBossSystem(ctx, s.EnemySys, s.PlayerSys)
	s.ParticleSys = systems.NewParticleSystem(ctx)
	s.ItemSys = systems.NewItemSystem(ctx, s.EnemySys, s.PlayerSys, s.ParticleSys)
	s.CameraSys = systems.NewCameraSystem(ctx, camera)
	s.DifficultySys = systems.NewDifficultySystem(cfg.Difficulty)
	s.SpawnSys = systems.NewSpawnSystem(ctx, s.EnemySys, s.BossSys, s.CameraSys, s.DifficultySys, player)
	s.PhysicsSys = systems.NewPhysicsSystem(ctx.EM, cfg.Player.Gravity)
	s.CollisionSys = systems.NewCollisionSystem(ctx)
	s.AnimationSys = systems.NewAnimationSystem(ctx)
	s.LifetimeSys = systems.NewLifetimeSystem(ctx)

	s.DifficultySys.OnLevelUp = s.onLevelUp
	ctx.Events.SubscribeFunc(systems.EventEnemyDied, s.onEnemyDied)
	ctx.Events.SubscribeFunc(systems.EventPlayerHit, s.onPlayerHit)
	ctx.Events.SubscribeFunc(systems.EventPlayerDied, func(event.Event) { s.GameOver() })

	s.CameraSys.SnapToTarget()
	s.SpawnSys.Start()
	s.CollisionSys.Sync()

	log.Printf("[Session] new run started (seed=%d, policy=%s)", ctx.Rand.Seed(), cfg.Player.InvincibilityPolicy)
	return s, nil
}

// Events 会话的事件分发器
func (s *Session) Events() *event.Dispatcher {
	return s.Ctx.Events
}

// Config 会话使用的配置
func (s *Session) Config() *config.GameConfig {
	return s.Ctx.Config
}

// Update 推进一帧
//
// 参数:
//   - input: 本帧输入
//   - dt: 时间增量（秒）
func (s *Session) Update(input components.InputState, dt float64) {
	if input.Pause && !s.prevPause {
		s.TogglePause()
	}
	s.prevPause = input.Pause

	if s.State.Status == StatusPaused || dt <= 0 {
		return
	}
	dtMs := dt * 1000

	if s.State.Status == StatusRunning {
		s.updateRunning(input, dt, dtMs)
	} else {
		// 结束后只推进定时器和表现层（死亡动画、淡出、粒子）
		s.Ctx.Sched.Advance(dtMs)
		if s.PlayerSys.IsDead(s.Player) {
			s.PlayerSys.Update(s.Player, components.InputState{}, dt)
		}
	}

	s.AnimationSys.Update(dt)
	s.LifetimeSys.Update(dt)
	s.FlashSys.Update(dt)
	s.ParticleSys.Update(dt)
	s.CameraSys.Update(dt)

	s.Ctx.EM.RemoveMarkedEntities()
}

func (s *Session) updateRunning(input components.InputState, dt, dtMs float64) {
	cfg := s.Ctx.Config

	s.State.Advance(dtMs, cfg.Rules.DistancePerMs)
	s.DifficultySys.Update(s.State.Distance)
	s.SpawnSys.MaybeSpawnBoss(s.State.Distance)

	s.PlayerSys.Update(s.Player, input, dt)
	s.Ctx.Sched.Advance(dtMs)
	if s.State.IsOver() {
		return
	}
	s.EnemySys.Update(dt)
	s.PhysicsSys.Update(dt)
	s.ItemSys.Update(dt)

	s.CollisionSys.Sync()
	for _, c := range s.CollisionSys.Detect() {
		if s.State.IsOver() {
			break
		}
		s.resolve(c)
	}

	if s.State.Status == StatusRunning && s.State.Distance >= cfg.Rules.VictoryDistance {
		s.Victory()
	}
}

// resolve 处理一次接触
func (s *Session) resolve(c systems.Contact) {
	switch {
	case c.LayerA == components.LayerPlayer && c.LayerB == components.LayerEnemy:
		s.handlePlayerEnemy(c.B)
	case c.LayerA == components.LayerAttack && c.LayerB == components.LayerEnemy:
		hb, ok := ecs.GetComponent[*components.AttackHitboxComponent](s.Ctx.EM, c.A)
		if ok && s.PlayerSys.IsAttacking(hb.Owner) {
			s.attackHit(c.B, hb.AttackID)
		}
	case c.LayerA == components.LayerPlayer && c.LayerB == components.LayerItem:
		s.handleItemPickup(c.B)
	case c.LayerA == components.LayerProjectile && c.LayerB == components.LayerPlayer:
		s.handleProjectile(c.A)
	}
}

// handlePlayerEnemy 攻击中则伤害敌人，否则在非无敌时被附着
func (s *Session) handlePlayerEnemy(enemy ecs.EntityID) {
	if s.PlayerSys.IsAttacking(s.Player) {
		p, ok := ecs.GetComponent[*components.PlayerComponent](s.Ctx.EM, s.Player)
		if ok {
			s.attackHit(enemy, p.AttackID)
		}
		return
	}
	if s.PlayerSys.IsInvincible(s.Player) {
		return
	}
	if state, ok := s.EnemySys.State(enemy); ok && state == components.EnemyRoaming {
		s.PlayerSys.AttachLeech(s.Player, enemy)
	}
}

// attackHit 一次挥击对同一敌人只结算一次：+hitScore，造成 1 点伤害
func (s *Session) attackHit(enemy ecs.EntityID, attackID uint64) bool {
	e, ok := ecs.GetComponent[*components.EnemyComponent](s.Ctx.EM, enemy)
	if !ok || e.State == components.EnemyDead || e.LastHitAttackID == attackID {
		return false
	}
	e.LastHitAttackID = attackID
	s.State.AddScore(s.Ctx.Config.Rules.HitScore)
	s.EnemySys.TakeDamage(enemy, 1)
	return true
}

func (s *Session) handleItemPickup(item ecs.EntityID) {
	if !s.ItemSys.ApplyEffect(item, s.Player) {
		return
	}
	s.State.ItemsCollected++
	s.State.AddScore(s.Ctx.Config.Items.PickupScore)
}

func (s *Session) handleProjectile(projectile ecs.EntityID) {
	if !s.Ctx.Alive(projectile) {
		return
	}
	proj, ok := ecs.GetComponent[*components.ProjectileComponent](s.Ctx.EM, projectile)
	if !ok {
		return
	}
	s.PlayerSys.TakeDamage(s.Player, proj.Damage)
	s.Ctx.Destroy(projectile)
}

func (s *Session) onEnemyDied(ev event.Event) {
	died, ok := ev.Data.(systems.EnemyDiedEvent)
	if !ok {
		return
	}
	if died.Cause == components.DeathKilled {
		s.State.AddScore(died.ScoreValue)
		s.State.LeechesDefeated++
	}
	if died.Kind == components.EnemyBoss {
		s.ParticleSys.Burst(died.X, died.Y, entities.BossExplosion)
		s.CameraSys.Shake(explosionShakeSeconds, explosionShakeIntense)
	}
}

func (s *Session) onPlayerHit(event.Event) {
	s.CameraSys.Shake(hitShakeSeconds, hitShakeIntensity)
}

func (s *Session) onLevelUp(level int) {
	s.State.Level = level
	s.Ctx.Events.Publish(EventDifficultyIncreased, DifficultyEvent{Level: level})
}

// TogglePause 切换暂停，结束后忽略
// 返回切换后是否处于暂停状态
func (s *Session) TogglePause() bool {
	switch s.State.Status {
	case StatusRunning:
		s.State.Status = StatusPaused
	case StatusPaused:
		s.State.Status = StatusRunning
	default:
		return false
	}
	paused := s.State.Status == StatusPaused
	log.Printf("[Session] paused=%v", paused)
	s.Ctx.Events.Publish(EventPauseChanged, paused)
	return paused
}

// IsPaused 是否暂停
func (s *Session) IsPaused() bool {
	return s.State.Status == StatusPaused
}

// GameOver 玩家死亡：冻结并在延迟后发出 EventRunFinished
func (s *Session) GameOver() bool {
	return s.end(StatusGameOver, EventGameOver)
}

// Victory 到达终点：只触发一次
func (s *Session) Victory() bool {
	return s.end(StatusVictory, EventVictory)
}

func (s *Session) end(status Status, ev event.EventType) bool {
	if s.State.IsOver() {
		return false
	}
	s.State.Status = status
	s.Ctx.Frozen = true

	s.SpawnSys.Stop()
	s.EnemySys.Freeze()
	// 所有 AI、道具效果、刷怪计时器一起作废
	s.Ctx.Sched.CancelAll()

	result := s.State.Result()
	log.Printf("[Session] run ended: %s score=%d distance=%dm time=%ds",
		status, result.Score, result.Distance, result.Time)
	s.Ctx.Events.Publish(ev, result)

	s.endTimer = s.Ctx.Sched.After(s.Ctx.Config.Rules.EndSceneDelayMs, scheduler.NoOwner, func() {
		s.endTimer = 0
		s.finished = true
		s.Ctx.Events.Publish(EventRunFinished, s.State.Result())
	})
	return true
}

// Finished 结束延迟已过，场景可以切换
func (s *Session) Finished() bool {
	return s.finished
}

// Result 当前结算数据
func (s *Session) Result() RunResult {
	return s.State.Result()
}

// Boss 已出现的 Boss
func (s *Session) Boss() (ecs.EntityID, bool) {
	return s.SpawnSys.Boss()
}
