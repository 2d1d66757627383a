package config

import (
	"fmt"
	"os"

	"github.com/decker502/forestleeches/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// DefaultGameConfigPath 默认游戏配置（嵌入资源路径）
const DefaultGameConfigPath = "data/game_config.yaml"

// InvincibilityPolicy 无敌状态的合并策略
type InvincibilityPolicy string

const (
	// InvincibilitySources 受击无敌与护符无敌各自计时，任一生效即无敌，到期只清除自身
	InvincibilitySources InvincibilityPolicy = "sources"
	// InvincibilityOverride 共享一个无敌标志，后写覆盖；护符到期时无条件清除
	InvincibilityOverride InvincibilityPolicy = "override"
)

// GameConfig 游戏数值配置
//
// 配置文件位置: data/game_config.yaml
type GameConfig struct {
	Player     PlayerConfig     `yaml:"player"`
	Leech      EnemyConfig      `yaml:"leech"`
	Boss       BossConfig       `yaml:"boss"`
	Items      ItemsConfig      `yaml:"items"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Spawn      SpawnConfig      `yaml:"spawn"`
	Rules      RulesConfig      `yaml:"rules"`
	Audio      AudioConfig      `yaml:"audio"`
}

// PlayerConfig 玩家配置
type PlayerConfig struct {
	MaxHealth            int                 `yaml:"maxHealth"`
	Speed                float64             `yaml:"speed"`
	JumpForce            float64             `yaml:"jumpForce"`
	Gravity              float64             `yaml:"gravity"`
	IdleDamping          float64             `yaml:"idleDamping"`
	AttackCooldownMs     float64             `yaml:"attackCooldownMs"`
	AttackDurationMs     float64             `yaml:"attackDurationMs"`
	HitboxLifetimeMs     float64             `yaml:"hitboxLifetimeMs"`
	InvincibleDurationMs float64             `yaml:"invincibleDurationMs"`
	HurtDurationMs       float64             `yaml:"hurtDurationMs"`
	Width                float64             `yaml:"width"`
	Height               float64             `yaml:"height"`
	AttachDamageDelayMs  float64             `yaml:"attachDamageDelayMs"`
	InvincibilityPolicy  InvincibilityPolicy `yaml:"invincibilityPolicy"`
}

// EnemyConfig 水蛭（以及 Boss 共用部分）的配置
type EnemyConfig struct {
	Health            int     `yaml:"health"`
	Damage            int     `yaml:"damage"`
	Speed             float64 `yaml:"speed"`
	AttachDurationMs  float64 `yaml:"attachDurationMs"`
	JumpForce         float64 `yaml:"jumpForce"`
	JumpCooldownMinMs float64 `yaml:"jumpCooldownMinMs"`
	JumpCooldownMaxMs float64 `yaml:"jumpCooldownMaxMs"`
	ScoreValue        int     `yaml:"scoreValue"`
	Width             float64 `yaml:"width"`
	Height            float64 `yaml:"height"`
	DetachForce       float64 `yaml:"detachForce"`
	DespawnDelayMs    float64 `yaml:"despawnDelayMs"`
}

// BossConfig 水蛭王配置
type BossConfig struct {
	EnemyConfig `yaml:",inline"`

	AttackCooldownMs      float64 `yaml:"attackCooldownMs"`
	MaxMinions            int     `yaml:"maxMinions"`
	MinionSpawnCooldownMs float64 `yaml:"minionSpawnCooldownMs"`
	MinionSpawnDistance   float64 `yaml:"minionSpawnDistance"`
	// SpawnDistance 玩家行进到该距离时出现（<=0 表示不出现）
	SpawnDistance        float64 `yaml:"spawnDistance"`
	ChargeMultiplier     float64 `yaml:"chargeMultiplier"`
	ChargeImpactDelayMs  float64 `yaml:"chargeImpactDelayMs"`
	ShockwaveRadius      float64 `yaml:"shockwaveRadius"`
	ShockwaveForce       float64 `yaml:"shockwaveForce"`
	ShockwaveDamage      int     `yaml:"shockwaveDamage"`
	SpiralCount          int     `yaml:"spiralCount"`
	SpiralIntervalMs     float64 `yaml:"spiralIntervalMs"`
	ProjectileSpeed      float64 `yaml:"projectileSpeed"`
	ProjectileDamage     int     `yaml:"projectileDamage"`
	ProjectileLifetimeMs float64 `yaml:"projectileLifetimeMs"`
}

// ItemsConfig 道具配置
type ItemsConfig struct {
	SpawnIntervalMs   float64 `yaml:"spawnIntervalMs"`
	PickupScore       int     `yaml:"pickupScore"`
	LifetimeMs        float64 `yaml:"lifetimeMs"` // 0 = 永不过期
	FloatAmplitude    float64 `yaml:"floatAmplitude"`
	FloatHalfPeriodMs float64 `yaml:"floatHalfPeriodMs"`
	Size              float64 `yaml:"size"`

	Stick struct {
		RangeMultiplier float64 `yaml:"rangeMultiplier"`
		DurationMs      float64 `yaml:"durationMs"`
	} `yaml:"stick"`

	Salt struct {
		Radius    float64 `yaml:"radius"`
		Damage    int     `yaml:"damage"`
		Knockback float64 `yaml:"knockback"`
	} `yaml:"salt"`

	Charm struct {
		DurationMs float64 `yaml:"durationMs"`
	} `yaml:"charm"`
}

// DifficultyConfig 难度曲线
type DifficultyConfig struct {
	IncreaseEvery     float64 `yaml:"increaseEvery"`
	SpawnRateFactor   float64 `yaml:"spawnRateFactor"`
	EnemySpeedFactor  float64 `yaml:"enemySpeedFactor"`
	EnemyHealthFactor float64 `yaml:"enemyHealthFactor"`
	MaxLevel          int     `yaml:"maxLevel"`
}

// SpawnConfig 刷怪配置
type SpawnConfig struct {
	InitialLeechDelayMs float64 `yaml:"initialLeechDelayMs"`
	MinLeechDelayMs     float64 `yaml:"minLeechDelayMs"`
	OffscreenMargin     float64 `yaml:"offscreenMargin"`
}

// RulesConfig 计分与胜负规则
type RulesConfig struct {
	HitScore        int     `yaml:"hitScore"`
	DistancePerMs   float64 `yaml:"distancePerMs"`
	VictoryDistance float64 `yaml:"victoryDistance"`
	EndSceneDelayMs float64 `yaml:"endSceneDelayMs"`
}

// AudioConfig 默认音量（设置存档不存在时使用）
type AudioConfig struct {
	MusicVolume float64 `yaml:"musicVolume"`
	SoundVolume float64 `yaml:"soundVolume"`
}

// DefaultGameConfig 返回内置默认值
// 与 data/game_config.yaml 保持一致，测试和嵌入资源缺失时使用
func DefaultGameConfig() *GameConfig {
	cfg := &GameConfig{
		Player: PlayerConfig{
			MaxHealth:            100,
			Speed:                200,
			JumpForce:            400,
			Gravity:              800,
			IdleDamping:          0.9,
			AttackCooldownMs:     500,
			AttackDurationMs:     250,
			HitboxLifetimeMs:     200,
			InvincibleDurationMs: 1000,
			HurtDurationMs:       200,
			Width:                16,
			Height:               24,
			AttachDamageDelayMs:  400,
			InvincibilityPolicy:  InvincibilitySources,
		},
		Leech: EnemyConfig{
			Health:            1,
			Damage:            5,
			Speed:             60,
			AttachDurationMs:  1000,
			JumpForce:         200,
			JumpCooldownMinMs: 1000,
			JumpCooldownMaxMs: 3000,
			ScoreValue:        100,
			Width:             12,
			Height:            12,
			DetachForce:       200,
			DespawnDelayMs:    1000,
		},
		Boss: BossConfig{
			EnemyConfig: EnemyConfig{
				Health:            50,
				Damage:            10,
				Speed:             80,
				AttachDurationMs:  500,
				JumpForce:         300,
				JumpCooldownMinMs: 500,
				JumpCooldownMaxMs: 1500,
				ScoreValue:        5000,
				Width:             32,
				Height:            24,
				DetachForce:       200,
				DespawnDelayMs:    1000,
			},
			AttackCooldownMs:      2000,
			MaxMinions:            5,
			MinionSpawnCooldownMs: 5000,
			MinionSpawnDistance:   50,
			SpawnDistance:         600,
			ChargeMultiplier:      1.5,
			ChargeImpactDelayMs:   250,
			ShockwaveRadius:       100,
			ShockwaveForce:        400,
			ShockwaveDamage:       5,
			SpiralCount:           12,
			SpiralIntervalMs:      100,
			ProjectileSpeed:       200,
			ProjectileDamage:      5,
			ProjectileLifetimeMs:  3000,
		},
		Items: ItemsConfig{
			SpawnIntervalMs:   10000,
			PickupScore:       50,
			FloatAmplitude:    10,
			FloatHalfPeriodMs: 1000,
			Size:              12,
		},
		Difficulty: DifficultyConfig{
			IncreaseEvery:     200,
			SpawnRateFactor:   0.1,
			EnemySpeedFactor:  0.1,
			EnemyHealthFactor: 0.1,
			MaxLevel:          5,
		},
		Spawn: SpawnConfig{
			InitialLeechDelayMs: 2000,
			MinLeechDelayMs:     500,
			OffscreenMargin:     50,
		},
		Rules: RulesConfig{
			HitScore:        10,
			DistancePerMs:   0.05,
			VictoryDistance: 1000,
			EndSceneDelayMs: 2000,
		},
		Audio: AudioConfig{
			MusicVolume: 0.5,
			SoundVolume: 0.8,
		},
	}
	cfg.Items.Stick.RangeMultiplier = 1.5
	cfg.Items.Stick.DurationMs = 10000
	cfg.Items.Salt.Radius = 120
	cfg.Items.Salt.Damage = 10
	cfg.Items.Salt.Knockback = 300
	cfg.Items.Charm.DurationMs = 5000
	return cfg
}

// LoadGameConfig 加载游戏配置
//
// 参数:
//   - path: 配置路径。以 "data/" 开头时优先从嵌入资源读取，否则从文件系统读取
//
// 返回:
//   - *GameConfig: 以默认值为底、被 YAML 覆盖后的配置
//   - error: 读取、解析或校验失败
func LoadGameConfig(path string) (*GameConfig, error) {
	data, err := readConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read game config %s: %w", path, err)
	}
	return ParseGameConfig(data)
}

// ParseGameConfig 解析 YAML 内容，未出现的字段保留默认值
func ParseGameConfig(data []byte) (*GameConfig, error) {
	cfg := DefaultGameConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse game config: %w", err)
	}
	if err := validateGameConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid game config: %w", err)
	}
	return cfg, nil
}

func readConfigFile(path string) ([]byte, error) {
	if embedded.IsInitialized() && embedded.Exists(path) {
		return embedded.ReadFile(path)
	}
	return os.ReadFile(path)
}

// validateGameConfig 校验数值范围
func validateGameConfig(cfg *GameConfig) error {
	if cfg.Player.MaxHealth <= 0 {
		return fmt.Errorf("player.maxHealth must be positive, got %d", cfg.Player.MaxHealth)
	}
	if cfg.Player.Width <= 0 || cfg.Player.Height <= 0 {
		return fmt.Errorf("player size must be positive, got %.1fx%.1f", cfg.Player.Width, cfg.Player.Height)
	}
	if cfg.Player.IdleDamping < 0 || cfg.Player.IdleDamping > 1 {
		return fmt.Errorf("player.idleDamping must be in [0,1], got %.2f", cfg.Player.IdleDamping)
	}
	switch cfg.Player.InvincibilityPolicy {
	case InvincibilitySources, InvincibilityOverride:
	default:
		return fmt.Errorf("player.invincibilityPolicy must be %q or %q, got %q",
			InvincibilitySources, InvincibilityOverride, cfg.Player.InvincibilityPolicy)
	}
	if err := validateEnemyConfig("leech", &cfg.Leech); err != nil {
		return err
	}
	if err := validateEnemyConfig("boss", &cfg.Boss.EnemyConfig); err != nil {
		return err
	}
	if cfg.Boss.MaxMinions < 0 {
		return fmt.Errorf("boss.maxMinions must not be negative, got %d", cfg.Boss.MaxMinions)
	}
	if cfg.Boss.AttackCooldownMs <= 0 {
		return fmt.Errorf("boss.attackCooldownMs must be positive, got %.1f", cfg.Boss.AttackCooldownMs)
	}
	if cfg.Items.SpawnIntervalMs <= 0 {
		return fmt.Errorf("items.spawnIntervalMs must be positive, got %.1f", cfg.Items.SpawnIntervalMs)
	}
	if cfg.Items.LifetimeMs < 0 {
		return fmt.Errorf("items.lifetimeMs must not be negative, got %.1f", cfg.Items.LifetimeMs)
	}
	if cfg.Difficulty.IncreaseEvery <= 0 {
		return fmt.Errorf("difficulty.increaseEvery must be positive, got %.1f", cfg.Difficulty.IncreaseEvery)
	}
	if cfg.Difficulty.MaxLevel < 0 {
		return fmt.Errorf("difficulty.maxLevel must not be negative, got %d", cfg.Difficulty.MaxLevel)
	}
	if cfg.Spawn.MinLeechDelayMs <= 0 || cfg.Spawn.InitialLeechDelayMs < cfg.Spawn.MinLeechDelayMs {
		return fmt.Errorf("spawn delays invalid: initial(%.1f) must be >= min(%.1f) > 0",
			cfg.Spawn.InitialLeechDelayMs, cfg.Spawn.MinLeechDelayMs)
	}
	if cfg.Rules.VictoryDistance <= 0 {
		return fmt.Errorf("rules.victoryDistance must be positive, got %.1f", cfg.Rules.VictoryDistance)
	}
	return nil
}

func validateEnemyConfig(name string, c *EnemyConfig) error {
	if c.Health <= 0 {
		return fmt.Errorf("%s.health must be positive, got %d", name, c.Health)
	}
	if c.Damage < 0 {
		return fmt.Errorf("%s.damage must not be negative, got %d", name, c.Damage)
	}
	if c.JumpCooldownMinMs < 0 || c.JumpCooldownMaxMs <= 0 {
		return fmt.Errorf("%s jump cooldown invalid: min(%.1f) must be >= 0 and max(%.1f) > 0",
			name, c.JumpCooldownMinMs, c.JumpCooldownMaxMs)
	}
	if c.JumpCooldownMinMs > c.JumpCooldownMaxMs {
		return fmt.Errorf("%s jump cooldown invalid: min(%.1f) > max(%.1f)",
			name, c.JumpCooldownMinMs, c.JumpCooldownMaxMs)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%s size must be positive, got %.1fx%.1f", name, c.Width, c.Height)
	}
	return nil
}
