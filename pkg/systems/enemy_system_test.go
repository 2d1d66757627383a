package systems

import (
	"testing"

	"github.com/decker502/forestleeches/pkg/components"
	"github.com/decker502/forestleeches/pkg/ecs"
)

// TestEnemyStateMachine 测试 Roaming → Attached → Detached → Dead 的合法迁移
func TestEnemyStateMachine(t *testing.T) {
	w := newTestWorld(t, nil)
	leech := w.spawnLeech(t, 300, 600)

	if got := w.state(t, leech); got != components.EnemyRoaming {
		t.Fatalf("initial state = %s, want roaming", got)
	}
	if w.enemies.Detach(leech) {
		t.Error("Detach from roaming should be rejected")
	}
	if !w.enemies.AttachTo(leech, w.playerID) {
		t.Fatal("AttachTo from roaming should succeed")
	}
	if w.enemies.AttachTo(leech, w.playerID) {
		t.Error("AttachTo while attached should be rejected")
	}
	body, _ := ecs.GetComponent[*components.PhysicsBodyComponent](w.ctx.EM, leech)
	if body.Enabled {
		t.Error("physics should be disabled while attached")
	}

	if !w.enemies.Detach(leech) {
		t.Fatal("Detach from attached should succeed")
	}
	if got := w.state(t, leech); got != components.EnemyDetached {
		t.Fatalf("state = %s, want detached", got)
	}
	if !body.Enabled {
		t.Error("physics should be re-enabled after detach")
	}
	if w.enemies.AttachTo(leech, w.playerID) {
		t.Error("AttachTo from detached should be rejected")
	}

	if !w.enemies.Die(leech, components.DeathKilled) {
		t.Fatal("Die should succeed")
	}
	if w.enemies.Die(leech, components.DeathKilled) {
		t.Error("second Die should be a no-op")
	}
}

// TestEnemyDeadIsTerminal 测试从任意状态死亡后所有操作都不再生效
func TestEnemyDeadIsTerminal(t *testing.T) {
	tests := []struct {
		name  string
		setup func(w *testWorld, id ecs.EntityID)
	}{
		{"from roaming", func(w *testWorld, id ecs.EntityID) {}},
		{"from attached", func(w *testWorld, id ecs.EntityID) {
			w.enemies.AttachTo(id, w.playerID)
		}},
		{"from detached", func(w *testWorld, id ecs.EntityID) {
			w.enemies.AttachTo(id, w.playerID)
			w.enemies.Detach(id)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWorld(t, nil)
			leech := w.spawnLeech(t, 300, 600)
			tt.setup(w, leech)

			if !w.enemies.Die(leech, components.DeathKilled) {
				t.Fatal("Die should succeed")
			}
			hp := w.health(leech)

			if w.enemies.TakeDamage(leech, 5) {
				t.Error("TakeDamage after death should report no kill")
			}
			if w.enemies.AttachTo(leech, w.playerID) {
				t.Error("AttachTo after death should be rejected")
			}
			if w.enemies.Detach(leech) {
				t.Error("Detach after death should be rejected")
			}
			if got := w.health(leech); got != hp {
				t.Errorf("health changed after death: %d → %d", hp, got)
			}
			if got := w.state(t, leech); got != components.EnemyDead {
				t.Errorf("state = %s, want dead", got)
			}
			if n := w.ctx.Sched.PendingFor(leech); n != 0 {
				t.Errorf("dead enemy still owns %d timers", n)
			}
		})
	}
}

// TestLeechKilledByOneHit 测试 1 血水蛭一击死亡并携带分值
func TestLeechKilledByOneHit(t *testing.T) {
	w := newTestWorld(t, nil)
	died := record(w.ctx.Events, EventEnemyDied)
	leech := w.spawnLeech(t, 300, 600)

	if !w.enemies.TakeDamage(leech, 1) {
		t.Fatal("one hit should kill a 1-health leech")
	}
	if len(*died) != 1 {
		t.Fatalf("expected 1 death event, got %d", len(*died))
	}
	ev := (*died)[0].(EnemyDiedEvent)
	if ev.Cause != components.DeathKilled || ev.ScoreValue != 100 {
		t.Errorf("death event = %+v, want cause killed with score 100", ev)
	}
	if w.health(leech) != 0 {
		t.Errorf("health = %d, want 0", w.health(leech))
	}
}

// TestEnemyHealthClamped 测试过量伤害后生命值为 0
func TestEnemyHealthClamped(t *testing.T) {
	w := newTestWorld(t, nil)
	boss := w.spawnBoss(t, 500, 600)

	if w.enemies.TakeDamage(boss, 10) {
		t.Fatal("boss should survive 10 damage")
	}
	if got := w.health(boss); got != 40 {
		t.Errorf("health = %d, want 40", got)
	}
	if cur, maxHealth, alive := w.enemies.Health(boss); !alive || cur != 40 || maxHealth != 50 {
		t.Errorf("Health() = (%d, %d, %v), want (40, 50, true)", cur, maxHealth, alive)
	}
	w.enemies.TakeDamage(boss, 1000)
	if got := w.health(boss); got != 0 {
		t.Errorf("health = %d, want 0", got)
	}
	if _, _, alive := w.enemies.Health(boss); alive {
		t.Error("Health() should report a dead boss as not alive")
	}
}

// TestAutoDetachThenDespawn 测试附着时长到期自动脱离，宽限期后消失且不计分
func TestAutoDetachThenDespawn(t *testing.T) {
	w := newTestWorld(t, nil)
	died := record(w.ctx.Events, EventEnemyDied)
	leech := w.spawnLeech(t, 300, 600)

	w.player.AttachLeech(w.playerID, leech)
	w.ctx.Sched.Advance(999)
	if got := w.state(t, leech); got != components.EnemyAttached {
		t.Fatalf("state before attach duration = %s, want attached", got)
	}
	w.ctx.Sched.Advance(1)
	if got := w.state(t, leech); got != components.EnemyDetached {
		t.Fatalf("state after attach duration = %s, want detached", got)
	}
	if n := w.player.AttachedCount(w.playerID); n != 0 {
		t.Errorf("player still holds %d leeches", n)
	}

	w.ctx.Sched.Advance(1000)
	if got := w.state(t, leech); got != components.EnemyDead {
		t.Fatalf("state after grace period = %s, want dead", got)
	}
	if len(*died) != 1 || (*died)[0].(EnemyDiedEvent).Cause != components.DeathDespawned {
		t.Errorf("expected one despawn death event, got %+v", *died)
	}
}

// TestDetachRepelsAwayFromTarget 测试脱离时沿远离玩家的方向弹开
func TestDetachRepelsAwayFromTarget(t *testing.T) {
	w := newTestWorld(t, nil)
	pp := w.playerPos()
	leech := w.spawnLeech(t, pp.X+30, pp.Y)

	w.enemies.AttachTo(leech, w.playerID)
	w.enemies.Detach(leech)

	vel, _ := ecs.GetComponent[*components.VelocityComponent](w.ctx.EM, leech)
	if vel.VX <= 0 {
		t.Errorf("VX = %.1f, want positive (away from player)", vel.VX)
	}
	if vel.VX > 200.001 {
		t.Errorf("VX = %.1f exceeds detach force", vel.VX)
	}
}

// TestLeechJumpLoop 测试跳跃循环：间隔内一定会跳，附着时暂停
func TestLeechJumpLoop(t *testing.T) {
	w := newTestWorld(t, nil)
	leech := w.spawnLeech(t, 400, 600)
	w.enemies.StartAI(leech)

	if n := w.ctx.Sched.PendingFor(leech); n != 1 {
		t.Fatalf("expected 1 pending jump, got %d", n)
	}
	w.ctx.Sched.Advance(3000)

	vel, _ := ecs.GetComponent[*components.VelocityComponent](w.ctx.EM, leech)
	if vel.VY > -100 {
		t.Errorf("VY = %.1f, want an upward hop of at least half the jump force", vel.VY)
	}
	if vel.VX >= 0 {
		t.Errorf("VX = %.1f, want negative (toward the player on the left)", vel.VX)
	}

	w.enemies.AttachTo(leech, w.playerID)
	e, _ := ecs.GetComponent[*components.EnemyComponent](w.ctx.EM, leech)
	if w.ctx.Sched.IsPending(e.JumpTimer) {
		t.Error("jump timer should be cancelled while attached")
	}
}

// TestZeroJumpCooldownAdvancesOneFrameAtATime 测试零冷却时跳跃间隔至少一帧
func TestZeroJumpCooldownAdvancesOneFrameAtATime(t *testing.T) {
	w := newTestWorld(t, nil)
	leech := w.spawnLeech(t, 400, 600)
	e, _ := ecs.GetComponent[*components.EnemyComponent](w.ctx.EM, leech)
	e.JumpCooldownMinMs = 0
	e.JumpCooldownMaxMs = 0
	w.enemies.StartAI(leech)

	w.ctx.Sched.Advance(1000.0 / 60)
	if !w.ctx.Sched.IsPending(e.JumpTimer) {
		t.Fatal("next jump should be scheduled after the first one fired")
	}
	if n := w.ctx.Sched.PendingFor(leech); n != 1 {
		t.Errorf("expected 1 pending jump, got %d", n)
	}
}

// TestFreezeStopsAI 测试冻结后不再有敌人定时器
func TestFreezeStopsAI(t *testing.T) {
	w := newTestWorld(t, nil)
	a := w.spawnLeech(t, 400, 600)
	b := w.spawnLeech(t, 420, 600)
	w.enemies.StartAI(a)
	w.player.AttachLeech(w.playerID, b)

	w.ctx.Frozen = true
	w.enemies.Freeze()

	if n := w.ctx.Sched.PendingFor(a); n != 0 {
		t.Errorf("frozen leech a owns %d timers", n)
	}
	e, _ := ecs.GetComponent[*components.EnemyComponent](w.ctx.EM, b)
	if w.ctx.Sched.IsPending(e.DetachTimer) {
		t.Error("auto-detach timer should be cancelled")
	}
}

// TestEnemyCrawlsTowardTarget 测试在地面上时朝玩家爬行
func TestEnemyCrawlsTowardTarget(t *testing.T) {
	w := newTestWorld(t, nil)
	leech := w.spawnLeech(t, 600, 700)
	body, _ := ecs.GetComponent[*components.PhysicsBodyComponent](w.ctx.EM, leech)
	body.OnGround = true

	w.enemies.Update(1.0 / 60)

	vel, _ := ecs.GetComponent[*components.VelocityComponent](w.ctx.EM, leech)
	if vel.VX != -60 {
		t.Errorf("VX = %.1f, want -60", vel.VX)
	}
}
