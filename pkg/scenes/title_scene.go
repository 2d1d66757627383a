package scenes

import (
	"log"

	"github.com/decker502/forestleeches/pkg/config"
	"github.com/decker502/forestleeches/pkg/entities"
	"github.com/decker502/forestleeches/pkg/game"
	"github.com/decker502/forestleeches/pkg/render"
	"github.com/decker502/forestleeches/pkg/sfx"
	"github.com/decker502/forestleeches/pkg/systems"
	"github.com/decker502/forestleeches/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

const (
	// Version 显示在标题画面右下角
	Version = "v1.0.0"

	titleBlinkMs    = 800.0
	titleFadeMs     = 500.0
	titleScrollRate = 20.0 // 背景自动滚动（世界像素/秒）
	titleDriftRate  = 6.0  // 每秒生成的萤火数量
)

// TitleScene 标题画面
// 背景自动滚动，萤火从底部升起；按 SPACE 或点击后淡出进入游戏
type TitleScene struct {
	svc *Services

	ctx       *systems.Context
	particles *systems.ParticleSystem
	world     *render.WorldRenderer

	elapsedMs float64
	scrollX   float64

	starting bool
	fadeMs   float64
}

// NewTitleScene 创建标题画面
func NewTitleScene(svc *Services) *TitleScene {
	ctx := systems.NewContext(svc.Config, svc.Seed)
	entities.NewParticleEmitter(ctx.EM, 0, config.ViewportHeight-10, config.ViewportWidth, 10,
		titleDriftRate, 8, entities.TitleDrift)

	log.Printf("[TitleScene] created")
	return &TitleScene{
		svc:       svc,
		ctx:       ctx,
		particles: systems.NewParticleSystem(ctx),
		world:     render.NewWorldRenderer(),
	}
}

// Update 推进动画，检测开始
func (s *TitleScene) Update(deltaTime float64) {
	s.elapsedMs += deltaTime * 1000
	s.scrollX += titleScrollRate * deltaTime
	if limit := config.WorldWidth - config.ViewportWidth; s.scrollX > limit {
		s.scrollX = 0
	}
	s.particles.Update(deltaTime)
	s.ctx.EM.RemoveMarkedEntities()

	if s.starting {
		s.fadeMs += deltaTime * 1000
		if s.fadeMs >= titleFadeMs {
			s.svc.Scenes.Request(game.SceneGame, game.RunResult{})
		}
		return
	}
	if confirmPressed() {
		s.starting = true
		s.svc.Audio.PlaySound(sfx.SoundPowerup)
		log.Printf("[TitleScene] starting run")
	}
}

// Draw 绘制背景、萤火和标题文字
func (s *TitleScene) Draw(screen *ebiten.Image) {
	canvas := s.world.Canvas()
	canvas.Fill(render.ColorBackground)
	render.DrawBackground(canvas, render.View{
		X:      s.scrollX,
		Y:      config.WorldHeight - config.ViewportHeight,
		Width:  config.ViewportWidth,
		Height: config.ViewportHeight,
	})
	render.DrawParticles(canvas, s.ctx.EM, render.ViewFromCamera(nil))
	s.world.Present(screen)

	fonts := s.svc.Fonts
	cx := float64(config.GameWindowWidth) / 2

	render.DrawText(screen, "FOREST LEECHES", cx, 90, centered(fonts.Body, render.ColorHighlight, 4))
	render.DrawText(screen, "Quest to Seiwa Hills", cx, 160, centered(fonts.Body, render.ColorText, 2))

	if s.starting || blinkOn(s.elapsedMs, titleBlinkMs) {
		render.DrawText(screen, "PRESS SPACE OR TOUCH TO START", cx, 270, centered(fonts.Body, render.ColorText, 2))
	}
	render.DrawText(screen, "ARROWS: MOVE   X: ATTACK   Z: JUMP", cx, 320, centered(fonts.Small, render.ColorTextDim, 1))

	bottom := float64(config.GameWindowHeight) - 24
	render.DrawText(screen, "© 2025 Forest Leeches Team", 20, bottom, render.TextStyle{Face: fonts.Small, Color: render.ColorTextDim})
	render.DrawText(screen, Version, float64(config.GameWindowWidth)-20, bottom, render.TextStyle{
		Face: fonts.Small, Color: render.ColorTextDim, Align: text.AlignEnd,
	})

	if s.starting {
		render.DimScreen(screen, utils.EaseInQuad(utils.Progress(s.fadeMs, titleFadeMs)))
	}
}

