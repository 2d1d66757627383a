package gameplay

import (
	"testing"

	"github.com/decker502/forestleeches/pkg/components"
	"github.com/decker502/forestleeches/pkg/config"
	"github.com/decker502/forestleeches/pkg/ecs"
	"github.com/decker502/forestleeches/pkg/entities"
	"github.com/decker502/forestleeches/pkg/event"
	"github.com/decker502/forestleeches/pkg/systems"
)

const frame = 1.0 / 60

func newTestSession(t *testing.T, mutate func(cfg *config.GameConfig)) *Session {
	t.Helper()
	cfg := config.DefaultGameConfig()
	if mutate != nil {
		mutate(cfg)
	}
	s, err := NewSession(cfg, 42)
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	return s
}

func count(d *event.Dispatcher, et event.EventType) *int {
	n := new(int)
	d.SubscribeFunc(et, func(event.Event) { *n++ })
	return n
}

func (s *Session) testLeech(t *testing.T) ecs.EntityID {
	t.Helper()
	pos, _ := ecs.GetComponent[*components.PositionComponent](s.Ctx.EM, s.Player)
	id, err := entities.NewLeechEntity(s.Ctx.EM, s.Ctx.Config, pos.X+5, pos.Y, s.Player, ecs.InvalidEntity, entities.NoScaling)
	if err != nil {
		t.Fatalf("NewLeechEntity failed: %v", err)
	}
	return id
}

func playerContact(player, enemy ecs.EntityID) systems.Contact {
	return systems.Contact{A: player, B: enemy, LayerA: components.LayerPlayer, LayerB: components.LayerEnemy}
}

func maxEnemyID(s *Session) ecs.EntityID {
	var last ecs.EntityID
	for _, id := range ecs.GetEntitiesWith1[*components.EnemyComponent](s.Ctx.EM) {
		if id > last {
			last = id
		}
	}
	return last
}

func TestNewSession(t *testing.T) {
	s, err := NewSession(nil, 7)
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	if s.State.Status != StatusRunning {
		t.Errorf("status = %s, want running", s.State.Status)
	}
	if hp, maxHP := s.PlayerSys.Health(s.Player); hp != 100 || maxHP != 100 {
		t.Errorf("health = %d/%d, want 100/100", hp, maxHP)
	}
	if s.Ctx.Rand.Seed() != 7 {
		t.Errorf("seed = %d, want 7", s.Ctx.Rand.Seed())
	}
	if s.SpawnSys.Stopped() {
		t.Error("spawning should start with the session")
	}
}

// TestOverlappingLeechAttachesThroughCollision 重叠的水蛭经碰撞检测附着到玩家
func TestOverlappingLeechAttachesThroughCollision(t *testing.T) {
	s := newTestSession(t, nil)
	leech := s.testLeech(t)

	s.Update(components.InputState{}, frame)

	if st, _ := s.EnemySys.State(leech); st != components.EnemyAttached {
		t.Errorf("leech state = %v, want attached", st)
	}
	if n := s.PlayerSys.AttachedCount(s.Player); n != 1 {
		t.Errorf("attached count = %d, want 1", n)
	}
}

// TestZeroJumpCooldownDoesNotStallTick 零跳跃冷却的敌人不会让一帧卡死
func TestZeroJumpCooldownDoesNotStallTick(t *testing.T) {
	s := newTestSession(t, nil)
	pos, _ := ecs.GetComponent[*components.PositionComponent](s.Ctx.EM, s.Player)
	leech, err := entities.NewLeechEntity(s.Ctx.EM, s.Ctx.Config, pos.X+300, pos.Y, s.Player, ecs.InvalidEntity, entities.NoScaling)
	if err != nil {
		t.Fatalf("NewLeechEntity failed: %v", err)
	}
	e, _ := ecs.GetComponent[*components.EnemyComponent](s.Ctx.EM, leech)
	e.JumpCooldownMinMs, e.JumpCooldownMaxMs = 0, 0
	s.EnemySys.StartAI(leech)

	for i := 0; i < 10; i++ {
		s.Update(components.InputState{}, frame)
	}
	if s.Ctx.Sched.PendingFor(leech) > 1 {
		t.Errorf("leech owns %d timers, want at most 1", s.Ctx.Sched.PendingFor(leech))
	}
}

// TestAttackKillsLeech 攻击命中：+10 挥击分，击杀 +100
func TestAttackKillsLeech(t *testing.T) {
	s := newTestSession(t, nil)
	leech := s.testLeech(t)

	if !s.PlayerSys.Attack(s.Player) {
		t.Fatal("Attack failed")
	}
	s.resolve(playerContact(s.Player, leech))

	if s.State.Score != 110 {
		t.Errorf("score = %d, want 110", s.State.Score)
	}
	if s.State.LeechesDefeated != 1 {
		t.Errorf("leeches defeated = %d, want 1", s.State.LeechesDefeated)
	}
	if state, _ := s.EnemySys.State(leech); state != components.EnemyDead {
		t.Errorf("leech state = %s, want dead", state)
	}

	// 同一次挥击的判定框再次接触不重复计分
	p, _ := ecs.GetComponent[*components.PlayerComponent](s.Ctx.EM, s.Player)
	s.resolve(systems.Contact{A: p.Hitbox, B: leech, LayerA: components.LayerAttack, LayerB: components.LayerEnemy})
	if s.State.Score != 110 {
		t.Errorf("score after duplicate contact = %d, want 110", s.State.Score)
	}
}

// TestHitScoredOncePerAttack 一次挥击对多血敌人只结算一次
func TestHitScoredOncePerAttack(t *testing.T) {
	s := newTestSession(t, func(cfg *config.GameConfig) {
		cfg.Leech.Health = 3
	})
	leech := s.testLeech(t)

	s.PlayerSys.Attack(s.Player)
	for i := 0; i < 3; i++ {
		s.resolve(playerContact(s.Player, leech))
	}
	if s.State.Score != 10 {
		t.Errorf("score = %d, want 10", s.State.Score)
	}
	h, _ := ecs.GetComponent[*components.HealthComponent](s.Ctx.EM, leech)
	if h.CurrentHealth != 2 {
		t.Errorf("leech health = %d, want 2", h.CurrentHealth)
	}
}

// TestLeechAttachesAndDrains 未攻击时被附着，400ms 后扣血
func TestLeechAttachesAndDrains(t *testing.T) {
	s := newTestSession(t, nil)
	leech := s.testLeech(t)

	s.resolve(playerContact(s.Player, leech))
	if state, _ := s.EnemySys.State(leech); state != components.EnemyAttached {
		t.Fatalf("leech state = %s, want attached", state)
	}
	if s.PlayerSys.AttachedCount(s.Player) != 1 {
		t.Errorf("attached count = %d, want 1", s.PlayerSys.AttachedCount(s.Player))
	}

	s.Ctx.Sched.Advance(399)
	if hp, _ := s.PlayerSys.Health(s.Player); hp != 100 {
		t.Fatalf("health before drain = %d, want 100", hp)
	}
	s.Ctx.Sched.Advance(1)
	if hp, _ := s.PlayerSys.Health(s.Player); hp != 95 {
		t.Errorf("health after drain = %d, want 95", hp)
	}
	if s.State.Score != 0 {
		t.Errorf("score = %d, want 0", s.State.Score)
	}
}

// TestInvinciblePlayerIsNotAttached 无敌时接触不会被附着
func TestInvinciblePlayerIsNotAttached(t *testing.T) {
	s := newTestSession(t, nil)
	leech := s.testLeech(t)
	s.PlayerSys.GrantInvincibility(s.Player, components.InvincibleFromCharm, 5000)

	s.resolve(playerContact(s.Player, leech))

	if state, _ := s.EnemySys.State(leech); state != components.EnemyRoaming {
		t.Errorf("leech state = %s, want roaming", state)
	}
}

// TestItemPickup 拾取道具 +50 分并生效，只生效一次
func TestItemPickup(t *testing.T) {
	s := newTestSession(t, nil)
	item, err := entities.NewItemEntity(s.Ctx.EM, s.Ctx.Config, components.ItemStick, 210, 620, config.GroundY-40)
	if err != nil {
		t.Fatalf("NewItemEntity failed: %v", err)
	}
	contact := systems.Contact{A: s.Player, B: item, LayerA: components.LayerPlayer, LayerB: components.LayerItem}

	s.resolve(contact)
	s.resolve(contact)

	if s.State.Score != 50 || s.State.ItemsCollected != 1 {
		t.Errorf("score=%d items=%d, want 50 and 1", s.State.Score, s.State.ItemsCollected)
	}
	if got := s.PlayerSys.MeleeRange(s.Player); got != 1.5 {
		t.Errorf("melee range = %.2f, want 1.5", got)
	}
}

// TestProjectileHitsPlayer 弹幕伤害玩家后消失
func TestProjectileHitsPlayer(t *testing.T) {
	s := newTestSession(t, nil)
	proj := entities.NewProjectileEntity(s.Ctx.EM, s.Ctx.Config, ecs.InvalidEntity, 200, 620, 0)
	contact := systems.Contact{A: proj, B: s.Player, LayerA: components.LayerProjectile, LayerB: components.LayerPlayer}

	s.resolve(contact)
	s.resolve(contact)

	if hp, _ := s.PlayerSys.Health(s.Player); hp != 95 {
		t.Errorf("health = %d, want 95", hp)
	}
	if s.Ctx.Alive(proj) {
		t.Error("projectile should be destroyed on hit")
	}
}

// TestDespawnedLeechDoesNotScore 自然消失的水蛭不计分
func TestDespawnedLeechDoesNotScore(t *testing.T) {
	s := newTestSession(t, nil)
	leech := s.testLeech(t)

	s.EnemySys.Die(leech, components.DeathDespawned)

	if s.State.Score != 0 || s.State.LeechesDefeated != 0 {
		t.Errorf("score=%d defeated=%d, want 0 and 0", s.State.Score, s.State.LeechesDefeated)
	}
}

// TestBossKillScoresOnlyTheBoss 击杀 Boss +5000，随之死亡的小怪不计分
func TestBossKillScoresOnlyTheBoss(t *testing.T) {
	s := newTestSession(t, nil)
	boss, ok := s.SpawnSys.MaybeSpawnBoss(600)
	if !ok {
		t.Fatal("boss should spawn at 600")
	}
	s.BossSys.ExecuteNextPattern(boss) // spiral
	s.BossSys.ExecuteNextPattern(boss) // summon
	if s.BossSys.LiveMinions(boss) == 0 {
		t.Fatal("summon should spawn minions")
	}

	s.EnemySys.TakeDamage(boss, 1000)

	if s.State.Score != 5000 {
		t.Errorf("score = %d, want 5000", s.State.Score)
	}
	if s.State.LeechesDefeated != 1 {
		t.Errorf("defeated = %d, want 1", s.State.LeechesDefeated)
	}
	cam, _ := s.CameraSys.Camera()
	if cam.ShakeRemaining <= 0 {
		t.Error("boss death should shake the camera")
	}
}

// TestPauseTogglesOnPressEdge 暂停只在按下沿切换，暂停期间时间不走
func TestPauseTogglesOnPressEdge(t *testing.T) {
	s := newTestSession(t, nil)
	pauses := count(s.Events(), EventPauseChanged)

	s.Update(components.InputState{}, frame)
	elapsed := s.State.ElapsedMs

	for i := 0; i < 30; i++ {
		s.Update(components.InputState{Pause: true}, frame)
	}
	if !s.IsPaused() {
		t.Fatal("holding pause should pause")
	}
	if *pauses != 1 {
		t.Errorf("pause events = %d, want 1", *pauses)
	}
	if s.State.ElapsedMs != elapsed {
		t.Errorf("elapsed advanced while paused: %.1f → %.1f", elapsed, s.State.ElapsedMs)
	}

	s.Update(components.InputState{}, frame)
	s.Update(components.InputState{Pause: true}, frame)
	if s.IsPaused() {
		t.Error("second press should resume")
	}
	if *pauses != 2 {
		t.Errorf("pause events = %d, want 2", *pauses)
	}
}

// TestDifficultyIncreasesWithDistance 距离 200 时升到 1 级
func TestDifficultyIncreasesWithDistance(t *testing.T) {
	s := newTestSession(t, nil)
	var levels []int
	s.Events().SubscribeFunc(EventDifficultyIncreased, func(e event.Event) {
		levels = append(levels, e.Data.(DifficultyEvent).Level)
	})

	for i := 0; i < 100 && s.State.Level == 0; i++ {
		s.Update(components.InputState{}, 0.1)
	}
	if s.State.Level != 1 {
		t.Fatalf("level = %d, want 1", s.State.Level)
	}
	if s.State.Distance < 200 || s.State.Distance > 206 {
		t.Errorf("level reached at distance %.1f, want about 200", s.State.Distance)
	}
	if len(levels) != 1 || levels[0] != 1 {
		t.Errorf("difficulty events = %v, want [1]", levels)
	}
}

// TestGameOverOnDeath 玩家死亡后结束，暂停无效，延迟后发出 RunFinished
func TestGameOverOnDeath(t *testing.T) {
	s := newTestSession(t, nil)
	overs := count(s.Events(), EventGameOver)
	var finished []RunResult
	s.Events().SubscribeFunc(EventRunFinished, func(e event.Event) {
		finished = append(finished, e.Data.(RunResult))
	})

	s.State.Score = 123
	s.PlayerSys.TakeDamage(s.Player, 1000)

	if s.State.Status != StatusGameOver {
		t.Fatalf("status = %s, want gameover", s.State.Status)
	}
	if *overs != 1 {
		t.Errorf("game over events = %d, want 1", *overs)
	}
	if s.Victory() {
		t.Error("victory after game over should be ignored")
	}
	if s.TogglePause() || s.IsPaused() {
		t.Error("pause should be ignored after game over")
	}
	if !s.SpawnSys.Stopped() {
		t.Error("spawning should stop")
	}

	for i := 0; i < 119; i++ {
		s.Update(components.InputState{Pause: i%2 == 0}, frame)
	}
	if s.Finished() {
		t.Fatal("run finished before the end delay")
	}
	for i := 0; i < 5; i++ {
		s.Update(components.InputState{}, frame)
	}
	if !s.Finished() || len(finished) != 1 {
		t.Fatalf("finished=%v events=%d, want true and 1", s.Finished(), len(finished))
	}
	if finished[0].Victory || finished[0].Score != 123 {
		t.Errorf("result = %+v", finished[0])
	}
	if s.State.Status != StatusGameOver {
		t.Errorf("status changed after end: %s", s.State.Status)
	}
}

// TestVictoryOnce 到达终点后只胜利一次，停止刷怪
func TestVictoryOnce(t *testing.T) {
	s := newTestSession(t, func(cfg *config.GameConfig) {
		cfg.Player.MaxHealth = 1000000
	})
	victories := count(s.Events(), EventVictory)
	finished := count(s.Events(), EventRunFinished)

	for i := 0; i < 1300 && s.State.Status == StatusRunning; i++ {
		s.Update(components.InputState{Right: true}, frame)
	}
	if s.State.Status != StatusVictory {
		t.Fatalf("status = %s at distance %.1f, want victory", s.State.Status, s.State.Distance)
	}
	if *victories != 1 {
		t.Errorf("victory events = %d, want 1", *victories)
	}
	if _, ok := s.Boss(); !ok {
		t.Error("boss should have appeared on the way")
	}
	res := s.Result()
	if !res.Victory || res.Distance < 1000 || res.Time < 19 {
		t.Errorf("result = %+v", res)
	}

	lastEnemy := maxEnemyID(s)
	distance := s.State.Distance
	for i := 0; i < 180; i++ {
		s.Update(components.InputState{Right: true}, frame)
	}
	if *victories != 1 {
		t.Errorf("victory events after end = %d, want 1", *victories)
	}
	if *finished != 1 {
		t.Errorf("run finished events = %d, want 1", *finished)
	}
	if got := maxEnemyID(s); got > lastEnemy {
		t.Errorf("enemy %d spawned after the run ended", got)
	}
	if s.State.Distance != distance {
		t.Errorf("distance advanced after end: %.1f → %.1f", distance, s.State.Distance)
	}
	if s.Ctx.Sched.Pending() != 0 {
		t.Errorf("pending timers after end = %d, want 0", s.Ctx.Sched.Pending())
	}
}
