package systems

import (
	"log"
	"math"

	"github.com/decker502/forestleeches/pkg/config"
	"github.com/decker502/forestleeches/pkg/entities"
)

// DifficultySystem 按行进距离提升难度等级
// 等级只升不降，每升一级通知一次
type DifficultySystem struct {
	cfg   config.DifficultyConfig
	level int
	// OnLevelUp 升级回调（每升一级调用一次）
	OnLevelUp func(level int)
}

// NewDifficultySystem 创建难度系统，初始等级 0
func NewDifficultySystem(cfg config.DifficultyConfig) *DifficultySystem {
	return &DifficultySystem{cfg: cfg}
}

// LevelForDistance level = min(maxLevel, floor(distance / increaseEvery))
func LevelForDistance(cfg config.DifficultyConfig, distance float64) int {
	if cfg.IncreaseEvery <= 0 || distance <= 0 {
		return 0
	}
	level := int(math.Floor(distance / cfg.IncreaseEvery))
	if level > cfg.MaxLevel {
		level = cfg.MaxLevel
	}
	return level
}

// Update 根据当前距离更新等级，返回本次是否升级
func (d *DifficultySystem) Update(distance float64) bool {
	next := LevelForDistance(d.cfg, distance)
	if next <= d.level {
		return false
	}
	for d.level < next {
		d.level++
		log.Printf("[DifficultySystem] difficulty increased to level %d", d.level)
		if d.OnLevelUp != nil {
			d.OnLevelUp(d.level)
		}
	}
	return true
}

// Level 当前等级
func (d *DifficultySystem) Level() int {
	return d.level
}

// Scaling 新生成水蛭的速度和生命倍率：1 + factor·level
func (d *DifficultySystem) Scaling() entities.EnemyScaling {
	return entities.EnemyScaling{
		SpeedMultiplier:  1 + d.cfg.EnemySpeedFactor*float64(d.level),
		HealthMultiplier: 1 + d.cfg.EnemyHealthFactor*float64(d.level),
	}
}

// NextLeechDelay 刷怪间隔随难度缩短：max(minDelay, delay·(1 − rate·level))
func NextLeechDelay(delay, minDelay, rate float64, level int) float64 {
	next := delay * (1 - rate*float64(level))
	if next < minDelay {
		return minDelay
	}
	return next
}
