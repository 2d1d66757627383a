package systems

import (
	"log"

	"github.com/decker502/forestleeches/pkg/components"
	"github.com/decker502/forestleeches/pkg/config"
	"github.com/decker502/forestleeches/pkg/ecs"
	"github.com/decker502/forestleeches/pkg/entities"
	"github.com/decker502/forestleeches/pkg/scheduler"
)

// SpawnSystem 水蛭、道具与 Boss 的生成
//
// 水蛭计时器的间隔随难度缩短；道具计时器固定间隔；Boss 在距离达到阈值时出现一次。
// Stop 之后不再生成任何东西。
type SpawnSystem struct {
	ctx        *Context
	enemies    *EnemySystem
	boss       *BossSystem
	camera     *CameraSystem
	difficulty *DifficultySystem
	player     ecs.EntityID

	leechDelay float64
	leechTimer scheduler.Handle
	itemTimer  scheduler.Handle
	stopped    bool

	bossID      ecs.EntityID
	bossSpawned bool
}

// NewSpawnSystem 创建刷怪系统
func NewSpawnSystem(ctx *Context, enemies *EnemySystem, boss *BossSystem, camera *CameraSystem, difficulty *DifficultySystem, player ecs.EntityID) *SpawnSystem {
	return &SpawnSystem{
		ctx:        ctx,
		enemies:    enemies,
		boss:       boss,
		camera:     camera,
		difficulty: difficulty,
		player:     player,
		leechDelay: ctx.Config.Spawn.InitialLeechDelayMs,
	}
}

// Start 启动水蛭与道具计时器
func (s *SpawnSystem) Start() {
	s.stopped = false
	s.scheduleLeech()
	s.scheduleItem()
}

// Stop 取消所有刷怪计时器
func (s *SpawnSystem) Stop() {
	s.stopped = true
	s.ctx.Sched.Cancel(s.leechTimer)
	s.ctx.Sched.Cancel(s.itemTimer)
	s.leechTimer, s.itemTimer = 0, 0
}

// Stopped 是否已停止
func (s *SpawnSystem) Stopped() bool {
	return s.stopped
}

// LeechDelay 当前水蛭刷新间隔（毫秒）
func (s *SpawnSystem) LeechDelay() float64 {
	return s.leechDelay
}

func (s *SpawnSystem) scheduleLeech() {
	if s.stopped {
		return
	}
	s.leechTimer = s.ctx.Sched.After(s.leechDelay, scheduler.NoOwner, func() {
		s.leechTimer = 0
		if s.stopped || s.ctx.Frozen {
			return
		}
		s.SpawnLeech()
		sc := s.ctx.Config.Spawn
		s.leechDelay = NextLeechDelay(s.leechDelay, sc.MinLeechDelayMs, s.ctx.Config.Difficulty.SpawnRateFactor, s.level())
		s.scheduleLeech()
	})
}

func (s *SpawnSystem) scheduleItem() {
	if s.stopped {
		return
	}
	s.itemTimer = s.ctx.Sched.After(s.ctx.Config.Items.SpawnIntervalMs, scheduler.NoOwner, func() {
		s.itemTimer = 0
		if s.stopped || s.ctx.Frozen {
			return
		}
		kind := components.ItemKind(s.ctx.Rand.Intn(components.ItemKindCount))
		s.SpawnItem(kind)
		s.scheduleItem()
	})
}

func (s *SpawnSystem) level() int {
	if s.difficulty == nil {
		return 0
	}
	return s.difficulty.Level()
}

func (s *SpawnSystem) viewport() (x, y, w, h float64) {
	if s.camera == nil {
		return 0, 0, config.ViewportWidth, config.ViewportHeight
	}
	return s.camera.Viewport()
}

// SpawnLeech 在视口左侧或右侧屏幕外生成一只水蛭，高度在视口下半部分
func (s *SpawnSystem) SpawnLeech() (ecs.EntityID, error) {
	vx, vy, vw, vh := s.viewport()
	margin := s.ctx.Config.Spawn.OffscreenMargin

	x := vx - margin
	if s.ctx.Rand.Intn(2) == 1 {
		x = vx + vw + margin
	}
	y := s.ctx.Rand.FloatBetween(vy+vh/2, vy+vh-config.EnemySpawnBottomMargin)

	scaling := entities.NoScaling
	if s.difficulty != nil {
		scaling = s.difficulty.Scaling()
	}
	id, err := entities.NewLeechEntity(s.ctx.EM, s.ctx.Config, x, y, s.player, ecs.InvalidEntity, scaling)
	if err != nil {
		log.Printf("[SpawnSystem] failed to spawn leech: %v", err)
		return 0, err
	}
	s.enemies.StartAI(id)
	return id, nil
}

// SpawnItem 在视口上方随机横坐标生成道具，道具落到地面上方悬浮
func (s *SpawnSystem) SpawnItem(kind components.ItemKind) (ecs.EntityID, error) {
	vx, vy, vw, _ := s.viewport()
	x := vx + s.ctx.Rand.FloatBetween(config.ItemSpawnMarginX, vw-config.ItemSpawnMarginX)
	y := vy - config.ItemSpawnAboveViewport
	restY := config.GroundY - config.ItemRestHeight

	id, err := entities.NewItemEntity(s.ctx.EM, s.ctx.Config, kind, x, y, restY)
	if err != nil {
		log.Printf("[SpawnSystem] failed to spawn item: %v", err)
		return 0, err
	}
	s.ctx.Events.Publish(EventItemSpawned, ItemEvent{ID: id, Kind: kind, X: x, Y: y})
	return id, nil
}

// MaybeSpawnBoss 距离达到 boss.spawnDistance 时在视口右侧生成 Boss（整局只生成一次）
func (s *SpawnSystem) MaybeSpawnBoss(distance float64) (ecs.EntityID, bool) {
	bc := s.ctx.Config.Boss
	if s.bossSpawned || s.stopped || bc.SpawnDistance <= 0 || distance < bc.SpawnDistance {
		return 0, false
	}
	vx, _, vw, _ := s.viewport()
	x := vx + vw - bc.Width
	y := config.GroundY - bc.Height/2

	id, err := entities.NewBossEntity(s.ctx.EM, s.ctx.Config, x, y, s.player)
	if err != nil {
		log.Printf("[SpawnSystem] failed to spawn boss: %v", err)
		return 0, false
	}
	s.bossSpawned = true
	s.bossID = id
	if s.boss != nil {
		s.boss.Start(id)
	} else {
		s.enemies.StartAI(id)
	}
	log.Printf("[SpawnSystem] boss %d appeared at distance %.0f", id, distance)
	s.ctx.Events.Publish(EventBossSpawned, EnemyEvent{ID: id, Kind: components.EnemyBoss})
	return id, true
}

// Boss 已生成的 Boss 实体
func (s *SpawnSystem) Boss() (ecs.EntityID, bool) {
	return s.bossID, s.bossSpawned
}
