// Package scenes 标题、游戏、结算三类场景
//
// 场景只负责输入、绘制和音效；游戏规则全部在 gameplay.Session 中。
package scenes

import (
	"fmt"
	"image/color"

	"github.com/decker502/forestleeches/pkg/config"
	"github.com/decker502/forestleeches/pkg/game"
	"github.com/decker502/forestleeches/pkg/render"
	"github.com/decker502/forestleeches/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// Scene is a type alias for game.Scene.
type Scene = game.Scene

// Services 场景共享的依赖，由 app 创建
type Services struct {
	Scenes   *game.SceneManager
	Audio    *game.AudioManager
	Settings *game.SettingsManager
	Fonts    *render.Fonts
	Config   *config.GameConfig
	Bindings utils.KeyBindings

	// Seed 每局的随机种子，0 表示每局随机
	Seed int64
}

// Register 把场景工厂注册到场景管理器
func Register(svc *Services) {
	svc.Scenes.SetSceneFactory(func(id game.SceneID, result game.RunResult) (game.Scene, error) {
		switch id {
		case game.SceneTitle:
			return NewTitleScene(svc), nil
		case game.SceneGame:
			return NewGameScene(svc)
		case game.SceneGameOver, game.SceneVictory:
			return NewResultScene(svc, result), nil
		}
		return nil, fmt.Errorf("unknown scene %q", id)
	})
}

// confirmPressed SPACE / ENTER 或触屏点击
func confirmPressed() bool {
	if utils.IsAnyKeyJustPressed(utils.ConfirmKeys...) {
		return true
	}
	clicked, _, _ := utils.IsJustTouchedOrClicked()
	return clicked
}

// blinkOn 闪烁文字在 elapsedMs 时是否可见（亮、灭各 periodMs）
func blinkOn(elapsedMs, periodMs float64) bool {
	if periodMs <= 0 {
		return true
	}
	return int(elapsedMs/periodMs)%2 == 0
}

// centered 水平居中的文字样式
func centered(face text.Face, clr color.Color, scale float64) render.TextStyle {
	return render.TextStyle{Face: face, Color: clr, Align: text.AlignCenter, Scale: scale}
}
