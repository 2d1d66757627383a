package systems

import (
	"math"
	"testing"

	"github.com/decker502/forestleeches/pkg/components"
	"github.com/decker502/forestleeches/pkg/config"
	"github.com/decker502/forestleeches/pkg/ecs"
	"github.com/decker502/forestleeches/pkg/entities"
)

func newTestSpawner(w *testWorld) (*SpawnSystem, *DifficultySystem) {
	difficulty := NewDifficultySystem(w.ctx.Config.Difficulty)
	return NewSpawnSystem(w.ctx, w.enemies, w.boss, nil, difficulty, w.playerID), difficulty
}

func countEnemies(w *testWorld) int {
	return len(ecs.GetEntitiesWith1[*components.EnemyComponent](w.ctx.EM))
}

func TestLevelForDistance(t *testing.T) {
	cfg := config.DefaultGameConfig().Difficulty
	tests := []struct {
		distance float64
		want     int
	}{
		{0, 0},
		{199, 0},
		{200, 1},
		{999, 4},
		{1000, 5},
		{5000, 5},
		{-10, 0},
	}
	for _, tt := range tests {
		if got := LevelForDistance(cfg, tt.distance); got != tt.want {
			t.Errorf("LevelForDistance(%.0f) = %d, want %d", tt.distance, got, tt.want)
		}
	}
}

// TestDifficultyLevelNeverDecreases 等级单调不减，每升一级通知一次
func TestDifficultyLevelNeverDecreases(t *testing.T) {
	d := NewDifficultySystem(config.DefaultGameConfig().Difficulty)
	var notified []int
	d.OnLevelUp = func(level int) { notified = append(notified, level) }

	if d.Update(150) {
		t.Error("no level up expected below 200")
	}
	if !d.Update(450) {
		t.Fatal("expected level up at 450")
	}
	if d.Level() != 2 {
		t.Errorf("level = %d, want 2", d.Level())
	}
	if d.Update(100) {
		t.Error("level must not decrease")
	}
	if d.Level() != 2 {
		t.Errorf("level after smaller distance = %d, want 2", d.Level())
	}
	if len(notified) != 2 || notified[0] != 1 || notified[1] != 2 {
		t.Errorf("notifications = %v, want [1 2]", notified)
	}

	s := d.Scaling()
	if math.Abs(s.SpeedMultiplier-1.2) > 1e-9 || math.Abs(s.HealthMultiplier-1.2) > 1e-9 {
		t.Errorf("scaling = %+v, want 1.2x", s)
	}
}

func TestNextLeechDelay(t *testing.T) {
	tests := []struct {
		name  string
		delay float64
		level int
		want  float64
	}{
		{"level 0 keeps delay", 2000, 0, 2000},
		{"level 2 shortens", 2000, 2, 1600},
		{"clamped to minimum", 600, 5, 500},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NextLeechDelay(tt.delay, 500, 0.1, tt.level); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("NextLeechDelay = %.2f, want %.2f", got, tt.want)
			}
		})
	}
}

// TestSpawnLeechOffscreen 水蛭出生在视口左右两侧之外，高度在视口下半部分
func TestSpawnLeechOffscreen(t *testing.T) {
	w := newTestWorld(t, nil)
	spawner, _ := newTestSpawner(w)
	margin := w.ctx.Config.Spawn.OffscreenMargin

	sides := map[float64]bool{}
	for i := 0; i < 40; i++ {
		id, err := spawner.SpawnLeech()
		if err != nil {
			t.Fatalf("SpawnLeech failed: %v", err)
		}
		pos, _ := ecs.GetComponent[*components.PositionComponent](w.ctx.EM, id)
		if pos.X != -margin && pos.X != config.ViewportWidth+margin {
			t.Fatalf("leech x = %.1f, want off-screen", pos.X)
		}
		sides[pos.X] = true
		if pos.Y < config.ViewportHeight/2 || pos.Y > config.ViewportHeight-config.EnemySpawnBottomMargin {
			t.Errorf("leech y = %.1f outside the lower band", pos.Y)
		}
		e, _ := ecs.GetComponent[*components.EnemyComponent](w.ctx.EM, id)
		if e.Target != w.playerID {
			t.Errorf("leech target = %d, want player", e.Target)
		}
		if w.ctx.Sched.PendingFor(id) != 1 {
			t.Errorf("leech %d should have its jump loop running", id)
		}
	}
	if len(sides) != 2 {
		t.Errorf("expected leeches on both sides over 40 spawns, got %v", sides)
	}
}

// TestSpawnLeechUsesDifficultyScaling 高等级时生成的水蛭更快更肉
func TestSpawnLeechUsesDifficultyScaling(t *testing.T) {
	w := newTestWorld(t, func(cfg *config.GameConfig) {
		cfg.Leech.Health = 10
	})
	spawner, difficulty := newTestSpawner(w)
	difficulty.Update(1000)

	id, err := spawner.SpawnLeech()
	if err != nil {
		t.Fatalf("SpawnLeech failed: %v", err)
	}
	if got := w.health(id); got != 15 {
		t.Errorf("health = %d, want 15", got)
	}
	e, _ := ecs.GetComponent[*components.EnemyComponent](w.ctx.EM, id)
	if math.Abs(e.Speed-90) > 1e-9 {
		t.Errorf("speed = %.2f, want 90", e.Speed)
	}
}

// TestSpawnTimers 水蛭按间隔生成，Stop 之后不再生成
func TestSpawnTimers(t *testing.T) {
	w := newTestWorld(t, nil)
	spawner, _ := newTestSpawner(w)
	spawned := record(w.ctx.Events, EventItemSpawned)
	spawner.Start()

	w.ctx.Sched.Advance(1999)
	if got := countEnemies(w); got != 0 {
		t.Fatalf("enemies before first delay = %d", got)
	}
	w.ctx.Sched.Advance(1)
	if got := countEnemies(w); got != 1 {
		t.Fatalf("enemies after 2000ms = %d, want 1", got)
	}

	w.ctx.Sched.Advance(8000)
	if got := countEnemies(w); got != 5 {
		t.Errorf("enemies after 10000ms = %d, want 5", got)
	}
	if len(*spawned) != 1 {
		t.Errorf("items after 10000ms = %d, want 1", len(*spawned))
	}
	ev := (*spawned)[0].(ItemEvent)
	if ev.Y != -config.ItemSpawnAboveViewport || ev.X < 50 || ev.X > config.ViewportWidth-50 {
		t.Errorf("item spawned at (%.1f, %.1f)", ev.X, ev.Y)
	}

	spawner.Stop()
	before := countEnemies(w)
	w.ctx.Sched.Advance(30000)
	if got := countEnemies(w); got != before {
		t.Errorf("enemies after Stop = %d, want %d", got, before)
	}
	if len(*spawned) != 1 {
		t.Errorf("items after Stop = %d, want 1", len(*spawned))
	}
}

// TestMaybeSpawnBossOnce Boss 在距离 600 时出现且只出现一次
func TestMaybeSpawnBossOnce(t *testing.T) {
	w := newTestWorld(t, nil)
	spawner, _ := newTestSpawner(w)
	events := record(w.ctx.Events, EventBossSpawned)

	if _, ok := spawner.MaybeSpawnBoss(599); ok {
		t.Fatal("boss should not appear before 600")
	}
	id, ok := spawner.MaybeSpawnBoss(600)
	if !ok {
		t.Fatal("boss should appear at 600")
	}
	if _, again := spawner.MaybeSpawnBoss(900); again {
		t.Error("boss should only appear once")
	}
	if got, ok := spawner.Boss(); !ok || got != id {
		t.Errorf("Boss() = (%d, %v), want (%d, true)", got, ok, id)
	}
	if len(*events) != 1 {
		t.Errorf("boss spawned events = %d, want 1", len(*events))
	}

	pos, _ := ecs.GetComponent[*components.PositionComponent](w.ctx.EM, id)
	bc := w.ctx.Config.Boss
	if pos.X != config.ViewportWidth-bc.Width || pos.Y != config.GroundY-bc.Height/2 {
		t.Errorf("boss position = (%.1f, %.1f)", pos.X, pos.Y)
	}

	// 攻击循环和跳跃循环都已启动
	if n := w.ctx.Sched.PendingFor(id); n != 2 {
		t.Errorf("boss pending timers = %d, want 2", n)
	}
}

// TestStoppedSpawnerSpawnsNoBoss 结束后不再出现 Boss
func TestStoppedSpawnerSpawnsNoBoss(t *testing.T) {
	w := newTestWorld(t, nil)
	spawner, _ := newTestSpawner(w)
	spawner.Stop()

	if _, ok := spawner.MaybeSpawnBoss(1000); ok {
		t.Error("stopped spawner should not spawn the boss")
	}
}

// TestSpawnerFollowsCamera 有摄像机时按视口位置生成
func TestSpawnerFollowsCamera(t *testing.T) {
	w := newTestWorld(t, nil)
	cam := entities.NewCamera(w.ctx.EM, w.playerID, 0, 0, 1)
	cameras := NewCameraSystem(w.ctx, cam)
	cameras.SnapToTarget()
	spawner := NewSpawnSystem(w.ctx, w.enemies, w.boss, cameras, nil, w.playerID)

	vx, _, vw, _ := cameras.Viewport()
	id, err := spawner.SpawnLeech()
	if err != nil {
		t.Fatalf("SpawnLeech failed: %v", err)
	}
	pos, _ := ecs.GetComponent[*components.PositionComponent](w.ctx.EM, id)
	margin := w.ctx.Config.Spawn.OffscreenMargin
	if pos.X != vx-margin && pos.X != vx+vw+margin {
		t.Errorf("leech x = %.1f, want just outside [%.1f, %.1f]", pos.X, vx, vx+vw)
	}
}
