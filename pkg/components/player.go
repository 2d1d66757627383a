package components

import (
	"github.com/decker502/forestleeches/pkg/ecs"
	"github.com/decker502/forestleeches/pkg/scheduler"
)

// InputState 一帧的玩家输入（由键盘、触屏或终端前端填充）
type InputState struct {
	Left   bool
	Right  bool
	Jump   bool
	Attack bool
	Pause  bool
}

// PlayerAnim 玩家动画状态
type PlayerAnim string

const (
	PlayerAnimIdle   PlayerAnim = "idle"
	PlayerAnimRun    PlayerAnim = "run"
	PlayerAnimJump   PlayerAnim = "jump"
	PlayerAnimAttack PlayerAnim = "attack"
	PlayerAnimHurt   PlayerAnim = "hurt"
	PlayerAnimDie    PlayerAnim = "die"
)

// InvincibilitySource 无敌来源
type InvincibilitySource int

const (
	// InvincibleFromHit 受击后的短暂无敌
	InvincibleFromHit InvincibilitySource = iota
	// InvincibleFromCharm 护符道具
	InvincibleFromCharm
	invincibleSourceCount
)

// PlayerComponent 玩家状态
type PlayerComponent struct {
	// Facing 朝向：1 向右，-1 向左
	Facing float64

	// 上一帧的按键状态，用于跳跃/攻击的边沿检测
	PrevJump   bool
	PrevAttack bool

	// 攻击
	IsAttacking    bool
	LastAttackAt   float64 // 上次攻击的游戏时钟（毫秒）
	HasAttacked    bool
	AttackID       uint64 // 每次挥击递增，同一挥击对同一敌人只结算一次
	AttackEndTimer scheduler.Handle
	Hitbox         ecs.EntityID

	// 近战范围倍率
	MeleeRange       float64
	BaseMeleeRange   float64
	MeleeRevertTimer scheduler.Handle

	// 无敌
	// sources 策略：每个来源独立计时，SourceActive 任一为 true 即无敌
	// override 策略：共享 Invincible 标志，任一来源到期都会清除它
	SourceActive     [invincibleSourceCount]bool
	SourceTimers     [invincibleSourceCount]scheduler.Handle
	Invincible       bool
	HurtUntil        float64 // 受击动画截止时间（毫秒）
	IsDead           bool
	AttachedEnemies  []ecs.EntityID
	Anim             PlayerAnim
	InvincibleBlinkT float64 // 无敌闪烁计时（秒），仅用于渲染
}
