package scenes

import (
	"fmt"
	"log"

	"github.com/decker502/forestleeches/pkg/components"
	"github.com/decker502/forestleeches/pkg/config"
	"github.com/decker502/forestleeches/pkg/ecs"
	"github.com/decker502/forestleeches/pkg/event"
	"github.com/decker502/forestleeches/pkg/game"
	"github.com/decker502/forestleeches/pkg/gameplay"
	"github.com/decker502/forestleeches/pkg/modules"
	"github.com/decker502/forestleeches/pkg/render"
	"github.com/decker502/forestleeches/pkg/sfx"
	"github.com/decker502/forestleeches/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
)

// GameScene 一局游戏
//
// 每帧：轮询输入 → Session.Update → 暂停菜单 → 提示计时。
// 音效和提示都由订阅的会话事件驱动，场景不直接读取系统内部状态。
type GameScene struct {
	svc     *Services
	session *gameplay.Session

	world     *render.WorldRenderer
	notes     render.Notifications
	pauseMenu *modules.PauseMenuModule

	subs []event.Subscription
	// ending 会话已结束，正在等待切换到结算画面
	ending bool
}

// NewGameScene 创建一局新游戏
//
// 返回:
//   - *GameScene: 已开始播放背景音乐的场景
//   - error: 会话创建失败
func NewGameScene(svc *Services) (*GameScene, error) {
	session, err := gameplay.NewSession(svc.Config, svc.Seed)
	if err != nil {
		return nil, fmt.Errorf("failed to start run: %w", err)
	}

	s := &GameScene{
		svc:     svc,
		session: session,
		world:   render.NewWorldRenderer(),
	}
	s.pauseMenu = modules.NewPauseMenuModule(session, svc.Fonts, modules.PauseMenuCallbacks{
		OnRestart:     func() { svc.Scenes.Request(game.SceneGame, game.RunResult{}) },
		OnMainMenu:    func() { svc.Scenes.Request(game.SceneTitle, game.RunResult{}) },
		OnPauseMusic:  svc.Audio.PauseMusic,
		OnResumeMusic: svc.Audio.ResumeMusic,
	})
	s.subscribe()

	svc.Audio.PlayMusic(sfx.SoundBGM, true)
	log.Printf("[GameScene] created")
	return s, nil
}

// Session 当前会话
func (s *GameScene) Session() *gameplay.Session {
	return s.session
}

// Update 推进一帧
func (s *GameScene) Update(deltaTime float64) {
	input := utils.PollGameInput(s.svc.Bindings, config.GameWindowWidth, config.GameWindowHeight)
	if s.pauseMenu.IsActive() {
		// 菜单打开时只有暂停键传给会话
		input = components.InputState{Pause: input.Pause}
	}
	s.session.Update(input, deltaTime)
	s.pauseMenu.Update()

	if !s.session.IsPaused() {
		s.notes.Update(deltaTime * 1000)
	}
}

// Draw 世界 → HUD → 提示 → 结束字幕 → 暂停菜单
func (s *GameScene) Draw(screen *ebiten.Image) {
	cam, _ := ecs.GetComponent[*components.CameraComponent](s.session.Ctx.EM, s.session.Camera)
	s.world.Draw(screen, s.session.Ctx.EM, cam)

	render.DrawHUD(screen, s.svc.Fonts, hudState(s.session))
	s.notes.Draw(screen, s.svc.Fonts)
	s.drawEnding(screen)
	s.pauseMenu.Draw(screen)
}

// Dispose 取消事件订阅并停止音乐
func (s *GameScene) Dispose() {
	for _, sub := range s.subs {
		s.session.Events().Unsubscribe(sub)
	}
	s.subs = nil
	s.svc.Audio.StopMusic()
	log.Printf("[GameScene] disposed")
}

// drawEnding 结束延迟期间显示 GAME OVER / VICTORY!
func (s *GameScene) drawEnding(screen *ebiten.Image) {
	if !s.ending {
		return
	}
	caption, clr := endingCaption(s.session.State.Status)
	if caption == "" {
		return
	}
	render.DimScreen(screen, 0.4)
	render.DrawText(screen, caption, float64(config.GameWindowWidth)/2, 180, centered(s.svc.Fonts.Body, clr, 4))
}
