package components

import (
	"github.com/decker502/forestleeches/pkg/ecs"
	"github.com/decker502/forestleeches/pkg/scheduler"
)

// EnemyKind 敌人类型
type EnemyKind int

const (
	EnemyLeech EnemyKind = iota
	EnemyBoss
)

// String 返回敌人类型名称
func (k EnemyKind) String() string {
	switch k {
	case EnemyLeech:
		return "leech"
	case EnemyBoss:
		return "boss"
	}
	return "unknown"
}

// EnemyState 敌人状态机
// Roaming → Attached → Detached，Dead 可从任意非 Dead 状态进入且为终态
type EnemyState int

const (
	EnemyRoaming EnemyState = iota
	EnemyAttached
	EnemyDetached
	EnemyDead
)

// String 返回状态名称
func (s EnemyState) String() string {
	switch s {
	case EnemyRoaming:
		return "roaming"
	case EnemyAttached:
		return "attached"
	case EnemyDetached:
		return "detached"
	case EnemyDead:
		return "dead"
	}
	return "unknown"
}

// DeathCause 死亡原因
type DeathCause int

const (
	// DeathKilled 被伤害击杀（计分、计入击杀数）
	DeathKilled DeathCause = iota
	// DeathDespawned 脱离后超时消失
	DeathDespawned
	// DeathCascade 随 Boss 一起死亡的小怪
	DeathCascade
)

// EnemyComponent 敌人（水蛭 / 水蛭王）状态
type EnemyComponent struct {
	Kind       EnemyKind
	State      EnemyState
	Damage     int
	Speed      float64
	ScoreValue int

	// Target 追踪目标（玩家实体），InvalidEntity 表示没有目标
	Target ecs.EntityID
	// AttachedTo 当前附着的实体
	AttachedTo ecs.EntityID
	// Owner 召唤者（Boss 的小怪），InvalidEntity 表示普通刷出的水蛭
	Owner ecs.EntityID

	JumpForce         float64
	JumpCooldownMinMs float64
	JumpCooldownMaxMs float64
	AttachDurationMs  float64
	DetachForce       float64
	DespawnDelayMs    float64

	JumpTimer    scheduler.Handle
	DetachTimer  scheduler.Handle
	DespawnTimer scheduler.Handle

	// LastHitAttackID 最近一次结算伤害的玩家挥击编号
	LastHitAttackID uint64
	Cause           DeathCause
	Facing          float64
}

// BossPattern Boss 攻击模式
type BossPattern int

const (
	BossCharge BossPattern = iota
	BossSpiral
	BossSummon
	bossPatternCount
)

// BossPatternCount 攻击模式数量
const BossPatternCount = int(bossPatternCount)

// String 返回攻击模式名称
func (p BossPattern) String() string {
	switch p {
	case BossCharge:
		return "charge"
	case BossSpiral:
		return "spiral"
	case BossSummon:
		return "summon"
	}
	return "unknown"
}

// BossComponent 水蛭王附加状态（与 EnemyComponent 同时存在）
type BossComponent struct {
	PatternIndex      int
	LastPattern       BossPattern
	Minions           []ecs.EntityID
	MaxMinions        int
	LastMinionSpawnAt float64 // 游戏时钟毫秒，初始为负无穷
	AttackTimer       scheduler.Handle
}

// ProjectileComponent Boss 弹幕
type ProjectileComponent struct {
	Damage int
	Owner  ecs.EntityID
}

// AttackHitboxComponent 玩家近战判定框
type AttackHitboxComponent struct {
	Owner    ecs.EntityID
	AttackID uint64
}
