package systems

import (
	"github.com/decker502/forestleeches/pkg/config"
	"github.com/decker502/forestleeches/pkg/ecs"
	"github.com/decker502/forestleeches/pkg/event"
	"github.com/decker502/forestleeches/pkg/random"
	"github.com/decker502/forestleeches/pkg/scheduler"
)

// Context 一局游戏内各系统共享的依赖
// 每局新建一个，不使用全局变量
type Context struct {
	EM     *ecs.EntityManager
	Sched  *scheduler.Scheduler
	Config *config.GameConfig
	Rand   *random.PRNG
	Events *event.Dispatcher

	// Frozen 终局（失败或胜利）后为 true：AI 与刷怪不再调度新的行为
	Frozen bool
}

// NewContext 创建共享上下文
func NewContext(cfg *config.GameConfig, seed int64) *Context {
	return &Context{
		EM:     ecs.NewEntityManager(),
		Sched:  scheduler.New(),
		Config: cfg,
		Rand:   random.New(seed),
		Events: event.NewDispatcher(),
	}
}

// Now 当前游戏时钟（毫秒）
func (c *Context) Now() float64 {
	return c.Sched.Now()
}

// Destroy 标记实体待删除，并取消它拥有的所有定时器
func (c *Context) Destroy(id ecs.EntityID) {
	c.Sched.CancelOwner(id)
	c.EM.DestroyEntity(id)
}

// Alive 实体存在且未被标记删除
func (c *Context) Alive(id ecs.EntityID) bool {
	return id != ecs.InvalidEntity && c.EM.Exists(id) && !c.EM.IsPendingDestroy(id)
}
