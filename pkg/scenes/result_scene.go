package scenes

import (
	"fmt"
	"image/color"
	"log"

	"github.com/decker502/forestleeches/pkg/config"
	"github.com/decker502/forestleeches/pkg/game"
	"github.com/decker502/forestleeches/pkg/render"
	"github.com/decker502/forestleeches/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
)

const (
	// resultInputDelayMs 进入结算画面后忽略输入的时间，避免游戏中的按键直接跳过
	resultInputDelayMs = 300.0
	resultBlinkMs      = 800.0
	resultLineStep     = 30.0
	// 结算数据逐行从下方滑入
	resultSlideMs       = 400.0
	resultSlideStagger  = 80.0
	resultSlideDistance = 40.0
)

// ResultScene 结算画面（失败与胜利共用）
// SPACE / 点击回到标题，R 重新开始
type ResultScene struct {
	svc       *Services
	result    game.RunResult
	elapsedMs float64
}

// NewResultScene 创建结算画面
func NewResultScene(svc *Services, result game.RunResult) *ResultScene {
	log.Printf("[ResultScene] victory=%v score=%d", result.Victory, result.Score)
	return &ResultScene{svc: svc, result: result}
}

// Update 等待玩家选择
func (s *ResultScene) Update(deltaTime float64) {
	s.elapsedMs += deltaTime * 1000
	if s.elapsedMs < resultInputDelayMs {
		return
	}
	switch {
	case utils.IsAnyKeyJustPressed(ebiten.KeyR):
		s.svc.Scenes.Request(game.SceneGame, game.RunResult{})
	case confirmPressed():
		s.svc.Scenes.Request(game.SceneTitle, game.RunResult{})
	}
}

// Draw 标题、结算数据、操作提示
func (s *ResultScene) Draw(screen *ebiten.Image) {
	screen.Fill(render.ColorBackground)
	fonts := s.svc.Fonts
	cx := float64(config.GameWindowWidth) / 2

	title, clr := resultTitle(s.result)
	render.DrawText(screen, title, cx, 60, centered(fonts.Body, clr, 4))

	for i, line := range resultLines(s.result) {
		y := 150 + float64(i)*resultLineStep + lineOffset(s.elapsedMs, i)
		render.DrawText(screen, line, cx, y, centered(fonts.Body, render.ColorText, 2))
	}

	if blinkOn(s.elapsedMs, resultBlinkMs) {
		render.DrawText(screen, "PRESS SPACE OR TOUCH TO CONTINUE", cx, 340, centered(fonts.Body, render.ColorHighlight, 2))
	}
	render.DrawText(screen, "R: RETRY", cx, 380, centered(fonts.Small, render.ColorTextDim, 1))
}

func resultTitle(result game.RunResult) (string, color.Color) {
	if result.Victory {
		return "VICTORY!", render.ColorHighlight
	}
	return "GAME OVER", render.ColorDanger
}

// lineOffset 第 i 行在 elapsedMs 时的纵向偏移，滑入结束后为 0
func lineOffset(elapsedMs float64, i int) float64 {
	t := utils.Progress(elapsedMs-float64(i)*resultSlideStagger, resultSlideMs)
	return utils.Lerp(resultSlideDistance, 0, utils.EaseOutCubic(t))
}

// resultLines 结算数据的每一行
func resultLines(result game.RunResult) []string {
	lines := []string{
		fmt.Sprintf("SCORE: %d", result.Score),
		fmt.Sprintf("DISTANCE: %dm", result.Distance),
		fmt.Sprintf("TIME: %ds", result.Time),
	}
	if result.Victory {
		lines = append(lines,
			fmt.Sprintf("LEECHES DEFEATED: %d", result.LeechesDefeated),
			fmt.Sprintf("ITEMS COLLECTED: %d", result.ItemsCollected))
	}
	return lines
}
