// Package app 提供游戏应用的核心包装器
//
// 该包将游戏初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/decker502/forestleeches/pkg/config"
	"github.com/decker502/forestleeches/pkg/game"
	"github.com/decker502/forestleeches/pkg/render"
	"github.com/decker502/forestleeches/pkg/scenes"
	"github.com/decker502/forestleeches/pkg/sfx"
	"github.com/decker502/forestleeches/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Seed 随机种子，0 表示每局随机
	Seed int64
	// SkipTitle 跳过标题画面直接开始游戏
	SkipTitle bool
	// Game 游戏数值配置，nil 时使用默认值
	Game *config.GameConfig
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager    *game.SceneManager
	settingsManager *game.SettingsManager
	audioManager    *game.AudioManager
	verbose         bool

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化游戏应用
//
// 存储或音频初始化失败都不是致命错误：设置只保存在内存中，游戏静音运行。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	gameConfig := cfg.Game
	if gameConfig == nil {
		gameConfig = config.DefaultGameConfig()
	}

	storage, err := game.OpenStorage()
	if err != nil {
		log.Printf("[App] Warning: %v (settings will not be saved)", err)
	}
	settingsManager := game.NewSettingsManager(storage, gameConfig.Audio)

	bank, err := sfx.NewBank()
	if err != nil {
		log.Printf("[App] Warning: sound synthesis failed: %v (audio disabled)", err)
		bank = nil
	}
	audioManager := game.NewAudioManager(audio.NewContext(sfx.SampleRate), bank, settingsManager)
	log.Printf("[App] AudioManager initialized (enabled=%v)", audioManager.Enabled())

	sceneManager := game.NewSceneManager()
	scenes.Register(&scenes.Services{
		Scenes:   sceneManager,
		Audio:    audioManager,
		Settings: settingsManager,
		Fonts:    render.NewFonts(),
		Config:   gameConfig,
		Bindings: utils.DefaultKeyBindings,
		Seed:     cfg.Seed,
	})

	first := game.SceneTitle
	if cfg.SkipTitle {
		log.Printf("[App] SkipTitle enabled, starting run directly")
		first = game.SceneGame
	}
	if err := sceneManager.Load(first, game.RunResult{}); err != nil {
		return nil, fmt.Errorf("failed to load %s scene: %w", first, err)
	}

	if settingsManager.GetSettings().Fullscreen {
		ebiten.SetFullscreen(true)
	}

	return &App{
		sceneManager:    sceneManager,
		settingsManager: settingsManager,
		audioManager:    audioManager,
		verbose:         cfg.Verbose,
	}, nil
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏，M 切换音乐
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		a.toggleFullscreen()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		enabled := a.settingsManager.ToggleMusic()
		a.audioManager.ApplySettings()
		if enabled && a.sceneManager.CurrentID() == game.SceneGame {
			a.audioManager.PlayMusic(sfx.SoundBGM, true)
		}
		a.saveSettings()
	}

	deltaTime := 1.0 / 60.0
	return a.sceneManager.Update(deltaTime)
}

func (a *App) toggleFullscreen() {
	if ebiten.IsFullscreen() {
		ebiten.SetFullscreen(false)
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
		a.settingsManager.SetFullscreen(false)
		log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
	} else {
		ebiten.SetFullscreen(true)
		a.settingsManager.SetFullscreen(true)
	}
	a.saveSettings()
}

func (a *App) saveSettings() {
	if err := a.settingsManager.Save(); err != nil {
		log.Printf("[App] Warning: %v", err)
	}
}

// Draw 绘制游戏画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 全屏时左右留黑边，像素画面使用最近邻缩放
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterNearest
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.GameWindowWidth, config.GameWindowHeight
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// Shutdown 退出前停止音频并保存设置
func (a *App) Shutdown() {
	a.audioManager.StopAll()
	a.saveSettings()
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
