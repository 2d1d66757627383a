package systems

import (
	"testing"

	"github.com/decker502/forestleeches/pkg/components"
	"github.com/decker502/forestleeches/pkg/config"
	"github.com/decker502/forestleeches/pkg/ecs"
	"github.com/decker502/forestleeches/pkg/entities"
	"github.com/decker502/forestleeches/pkg/event"
)

// testWorld 测试用的一组系统，不经过 Session
type testWorld struct {
	ctx       *Context
	flash     *FlashEffectSystem
	enemies   *EnemySystem
	player    *PlayerSystem
	boss      *BossSystem
	particles *ParticleSystem
	items     *ItemSystem
	playerID  ecs.EntityID
}

func newTestWorld(t *testing.T, mutate func(cfg *config.GameConfig)) *testWorld {
	t.Helper()
	cfg := config.DefaultGameConfig()
	if mutate != nil {
		mutate(cfg)
	}
	ctx := NewContext(cfg, 42)

	w := &testWorld{ctx: ctx}
	w.flash = NewFlashEffectSystem(ctx.EM)
	w.enemies = NewEnemySystem(ctx, w.flash)
	w.player = NewPlayerSystem(ctx, w.flash, w.enemies)
	w.boss = NewBossSystem(ctx, w.enemies, w.player)
	w.particles = NewParticleSystem(ctx)
	w.items = NewItemSystem(ctx, w.enemies, w.player, w.particles)

	id, err := entities.NewPlayerEntity(ctx.EM, cfg, config.PlayerStartX, config.PlayerStartY)
	if err != nil {
		t.Fatalf("NewPlayerEntity failed: %v", err)
	}
	w.playerID = id
	return w
}

func (w *testWorld) spawnLeech(t *testing.T, x, y float64) ecs.EntityID {
	t.Helper()
	id, err := entities.NewLeechEntity(w.ctx.EM, w.ctx.Config, x, y, w.playerID, ecs.InvalidEntity, entities.NoScaling)
	if err != nil {
		t.Fatalf("NewLeechEntity failed: %v", err)
	}
	return id
}

func (w *testWorld) spawnBoss(t *testing.T, x, y float64) ecs.EntityID {
	t.Helper()
	id, err := entities.NewBossEntity(w.ctx.EM, w.ctx.Config, x, y, w.playerID)
	if err != nil {
		t.Fatalf("NewBossEntity failed: %v", err)
	}
	return id
}

func (w *testWorld) playerPos() *components.PositionComponent {
	pos, _ := ecs.GetComponent[*components.PositionComponent](w.ctx.EM, w.playerID)
	return pos
}

func (w *testWorld) health(id ecs.EntityID) int {
	h, ok := ecs.GetComponent[*components.HealthComponent](w.ctx.EM, id)
	if !ok {
		return -1
	}
	return h.CurrentHealth
}

func (w *testWorld) state(t *testing.T, id ecs.EntityID) components.EnemyState {
	t.Helper()
	e, ok := ecs.GetComponent[*components.EnemyComponent](w.ctx.EM, id)
	if !ok {
		t.Fatalf("entity %d has no EnemyComponent", id)
	}
	return e.State
}

// record 记录某类事件的全部负载
func record(d *event.Dispatcher, et event.EventType) *[]interface{} {
	got := &[]interface{}{}
	d.SubscribeFunc(et, func(e event.Event) { *got = append(*got, e.Data) })
	return got
}
