package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// SceneID 场景标识
type SceneID string

const (
	SceneTitle    SceneID = "title"
	SceneGame     SceneID = "game"
	SceneGameOver SceneID = "gameover"
	SceneVictory  SceneID = "victory"
)

// Scene 一个画面（标题、游戏、结算）
// 同一时刻只有一个场景接收 Update 和 Draw
type Scene interface {
	// Update 推进场景逻辑，deltaTime 单位为秒
	Update(deltaTime float64)

	// Draw 把场景绘制到 screen
	Draw(screen *ebiten.Image)
}

// Disposable 可选接口：场景被切换掉时调用，用于停止音乐、取消订阅
type Disposable interface {
	Dispose()
}
