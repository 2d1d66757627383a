// check_config 校验游戏数值配置文件
//
// 用法:
//
//	go run ./cmd/check_config [path]
//
// path 默认为 data/game_config.yaml。解析失败或数值越界时以非零状态退出。
package main

import (
	"fmt"
	"os"

	"github.com/decker502/forestleeches/pkg/config"
)

func main() {
	path := "data/game_config.yaml"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	cfg, err := config.LoadGameConfig(path)
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ %s 格式正确\n", path)
	for _, line := range summary(cfg) {
		fmt.Printf("   %s\n", line)
	}
}

// summary 关键数值一览
func summary(cfg *config.GameConfig) []string {
	return []string{
		fmt.Sprintf("player: hp=%d speed=%.0f jump=%.0f", cfg.Player.MaxHealth, cfg.Player.Speed, cfg.Player.JumpForce),
		fmt.Sprintf("invincibility policy: %s", cfg.Player.InvincibilityPolicy),
		fmt.Sprintf("victory distance: %.0fm", cfg.Rules.VictoryDistance),
		fmt.Sprintf("difficulty: max level %d", cfg.Difficulty.MaxLevel),
	}
}
