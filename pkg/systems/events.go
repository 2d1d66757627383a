package systems

import (
	"github.com/decker502/forestleeches/pkg/components"
	"github.com/decker502/forestleeches/pkg/ecs"
	"github.com/decker502/forestleeches/pkg/event"
)

// 游戏逻辑事件，场景层订阅后播放音效、显示提示
const (
	EventPlayerHit      event.EventType = "player.hit"
	EventPlayerDied     event.EventType = "player.died"
	EventPlayerJumped   event.EventType = "player.jumped"
	EventPlayerAttacked event.EventType = "player.attacked"

	EventEnemyAttached event.EventType = "enemy.attached"
	EventEnemyDetached event.EventType = "enemy.detached"
	EventEnemyDamaged  event.EventType = "enemy.damaged"
	EventEnemyDied     event.EventType = "enemy.died"

	EventBossSpawned event.EventType = "boss.spawned"
	EventBossAttack  event.EventType = "boss.attack"

	EventItemSpawned   event.EventType = "item.spawned"
	EventItemCollected event.EventType = "item.collected"
	EventSaltBurst     event.EventType = "item.saltBurst"
)

// PlayerHitEvent 玩家受到伤害
type PlayerHitEvent struct {
	Health    int
	MaxHealth int
	Damage    int
}

// EnemyEvent 敌人附着/脱离
type EnemyEvent struct {
	ID   ecs.EntityID
	Kind components.EnemyKind
}

// EnemyDamagedEvent 敌人受伤
type EnemyDamagedEvent struct {
	ID     ecs.EntityID
	Kind   components.EnemyKind
	Amount int
	Killed bool
}

// EnemyDiedEvent 敌人死亡
type EnemyDiedEvent struct {
	ID         ecs.EntityID
	Kind       components.EnemyKind
	Cause      components.DeathCause
	ScoreValue int
	Owner      ecs.EntityID
	X, Y       float64
}

// BossAttackEvent Boss 发动攻击
type BossAttackEvent struct {
	ID      ecs.EntityID
	Pattern components.BossPattern
}

// ItemEvent 道具出现或被拾取
type ItemEvent struct {
	ID   ecs.EntityID
	Kind components.ItemKind
	X, Y float64
	// Text 拾取后显示的效果文字
	Text string
}

// SaltBurstEvent 盐爆发
type SaltBurstEvent struct {
	X, Y     float64
	Radius   float64
	Hit      int // 被击中的敌人数量
	Detached int // 被强制脱离的敌人数量
}
