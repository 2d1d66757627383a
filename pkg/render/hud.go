package render

import (
	"fmt"

	"github.com/decker502/forestleeches/pkg/config"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// HUD 布局（屏幕坐标）
const (
	hudMargin       = 20.0
	healthBarWidth  = 200.0
	healthBarHeight = 20.0
	healthBarInset  = 2.0
	bossBarWidth    = 300.0
	bossBarHeight   = 12.0
	progressHeight  = 4.0
)

// HUDState 一帧 HUD 需要的数据
type HUDState struct {
	Score     int
	Distance  float64
	Goal      float64
	Health    int
	MaxHealth int
	Level     int

	HasBoss       bool
	BossHealth    int
	BossMaxHealth int

	// Invincible 护符生效时生命条描边高亮
	Invincible bool
}

// healthRatio 生命比例 ∈ [0, 1]
func healthRatio(current, max int) float64 {
	if max <= 0 || current <= 0 {
		return 0
	}
	if current >= max {
		return 1
	}
	return float64(current) / float64(max)
}

// DrawHUD 绘制分数、距离、生命条、难度等级和 Boss 血条
func DrawHUD(screen *ebiten.Image, fonts *Fonts, hud HUDState) {
	body := TextStyle{Face: fonts.Body, Color: ColorText, Scale: 2}

	DrawText(screen, fmt.Sprintf("SCORE: %d", hud.Score), hudMargin, hudMargin, body)
	DrawText(screen, fmt.Sprintf("%dm", int(hud.Distance)), hudMargin, hudMargin+30, body)

	level := body
	level.Align = text.AlignEnd
	DrawText(screen, fmt.Sprintf("LV %d", hud.Level), config.GameWindowWidth-hudMargin, hudMargin, level)

	drawHealthBar(screen, fonts, hud)
	drawProgress(screen, hud.Distance, hud.Goal)

	if hud.HasBoss && hud.BossHealth > 0 {
		drawBossBar(screen, fonts, hud.BossHealth, hud.BossMaxHealth)
	}
}

func drawHealthBar(screen *ebiten.Image, fonts *Fonts, hud HUDState) {
	x := float32(hudMargin)
	y := float32(config.GameWindowHeight - 40)
	vector.DrawFilledRect(screen, x, y, healthBarWidth, healthBarHeight, ColorHealthBack, false)

	fill := float32((healthBarWidth - 2*healthBarInset) * healthRatio(hud.Health, hud.MaxHealth))
	if fill > 0 {
		vector.DrawFilledRect(screen, x+healthBarInset, y+healthBarInset, fill, healthBarHeight-2*healthBarInset, ColorHealthFill, false)
	}
	if hud.Invincible {
		vector.StrokeRect(screen, x, y, healthBarWidth, healthBarHeight, 2, colorCharm, false)
	}

	DrawText(screen, fmt.Sprintf("HP %d/%d", max(hud.Health, 0), hud.MaxHealth), float64(x)+healthBarWidth+10, float64(y)+4,
		TextStyle{Face: fonts.Small, Color: ColorText})
}

// drawProgress 屏幕底边的行进进度条
func drawProgress(screen *ebiten.Image, distance, goal float64) {
	if goal <= 0 {
		return
	}
	ratio := distance / goal
	if ratio > 1 {
		ratio = 1
	}
	y := float32(config.GameWindowHeight - progressHeight)
	vector.DrawFilledRect(screen, 0, y, config.GameWindowWidth, progressHeight, ColorHealthBack, false)
	vector.DrawFilledRect(screen, 0, y, float32(config.GameWindowWidth*ratio), progressHeight, colorGrass, false)
}

func drawBossBar(screen *ebiten.Image, fonts *Fonts, current, max int) {
	x := float32(config.GameWindowWidth/2 - bossBarWidth/2)
	y := float32(hudMargin + 24)
	DrawText(screen, "LEECH KING", config.GameWindowWidth/2, hudMargin, TextStyle{
		Face: fonts.Body, Color: ColorDanger, Align: text.AlignCenter, Scale: 1.5,
	})
	vector.DrawFilledRect(screen, x, y, bossBarWidth, bossBarHeight, ColorHealthBack, false)
	vector.DrawFilledRect(screen, x, y, float32(bossBarWidth*healthRatio(current, max)), bossBarHeight, ColorDanger, false)
	vector.StrokeRect(screen, x, y, bossBarWidth, bossBarHeight, 1, ColorPanelEdge, false)
}
