package main

import (
	"flag"
	"log"

	"github.com/decker502/forestleeches/pkg/app"
	"github.com/decker502/forestleeches/pkg/config"
	"github.com/decker502/forestleeches/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

const defaultConfigPath = "data/game_config.yaml"

var (
	verbose    = flag.Bool("verbose", false, "显示详细调试信息")
	seed       = flag.Int64("seed", 0, "随机种子（0 表示每局随机）")
	skipTitle  = flag.Bool("skip-title", false, "跳过标题画面直接开始")
	configPath = flag.String("config", defaultConfigPath, "游戏数值配置文件")
)

func main() {
	flag.Parse()

	// 初始化嵌入资源（配置默认从二进制内读取）
	embedded.Init(dataFS)

	gameConfig, err := config.LoadGameConfig(*configPath)
	if err != nil {
		log.Fatalf("配置加载失败: %v", err)
	}

	gameApp, err := app.NewApp(app.Config{
		Verbose:   *verbose,
		Seed:      *seed,
		SkipTitle: *skipTitle,
		Game:      gameConfig,
	})
	if err != nil {
		log.Fatalf("游戏初始化失败: %v", err)
	}
	defer gameApp.Shutdown()

	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
	ebiten.SetWindowTitle("Forest Leeches")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(gameApp); err != nil {
		log.Fatal(err)
	}
}
