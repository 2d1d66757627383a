// Package utils 提供通用工具函数
package utils

import (
	"image"

	"github.com/decker502/forestleeches/pkg/components"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// KeyBindings 动作到按键的映射，任意一个键按下即视为该动作按下
type KeyBindings struct {
	Left   []ebiten.Key
	Right  []ebiten.Key
	Jump   []ebiten.Key
	Attack []ebiten.Key
	Pause  []ebiten.Key
}

// DefaultKeyBindings 方向键移动，Z 跳，X 攻击，ESC/P 暂停
var DefaultKeyBindings = KeyBindings{
	Left:   []ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyA},
	Right:  []ebiten.Key{ebiten.KeyArrowRight, ebiten.KeyD},
	Jump:   []ebiten.Key{ebiten.KeyZ, ebiten.KeyArrowUp, ebiten.KeyW},
	Attack: []ebiten.Key{ebiten.KeyX, ebiten.KeyJ},
	Pause:  []ebiten.Key{ebiten.KeyEscape, ebiten.KeyP},
}

// ConfirmKeys 标题、结算画面的确认键
var ConfirmKeys = []ebiten.Key{ebiten.KeySpace, ebiten.KeyEnter}

// 触摸区域
const (
	// TouchJumpBandHeight 屏幕底部这一条区域点击 = 跳跃
	TouchJumpBandHeight = 100
)

func anyPressed(keys []ebiten.Key) bool {
	for _, k := range keys {
		if ebiten.IsKeyPressed(k) {
			return true
		}
	}
	return false
}

// PollGameInput 读取本帧的游戏输入（键盘 + 触摸）
//
// 返回的是电平状态，跳跃/攻击/暂停的按下沿由玩家系统和会话检测。
// 参数：
//   - b: 按键绑定
//   - width, height: 逻辑屏幕尺寸
func PollGameInput(b KeyBindings, width, height int) components.InputState {
	in := components.InputState{
		Left:   anyPressed(b.Left),
		Right:  anyPressed(b.Right),
		Jump:   anyPressed(b.Jump),
		Attack: anyPressed(b.Attack),
		Pause:  anyPressed(b.Pause),
	}

	var held, pressed []image.Point
	for _, id := range ebiten.AppendTouchIDs(nil) {
		x, y := ebiten.TouchPosition(id)
		held = append(held, image.Pt(x, y))
	}
	for _, id := range inpututil.AppendJustPressedTouchIDs(nil) {
		x, y := ebiten.TouchPosition(id)
		pressed = append(pressed, image.Pt(x, y))
	}
	touch := MapTouches(held, pressed, width, height)

	in.Left = in.Left || touch.Left
	in.Right = in.Right || touch.Right
	in.Jump = in.Jump || touch.Jump
	in.Attack = in.Attack || touch.Attack
	in.Pause = in.Pause || touch.Pause
	return in
}

// MapTouches 把触摸点映射为游戏输入
//
// 规则：
//   - 同一帧两指按下：暂停
//   - 底部 TouchJumpBandHeight 像素内按下：跳跃
//   - 右半屏按下：攻击
//   - 左半屏按住：左 1/4 向左，另 1/4 向右
func MapTouches(held, pressed []image.Point, width, height int) components.InputState {
	var in components.InputState
	if len(pressed) >= 2 {
		in.Pause = true
		return in
	}
	for _, p := range pressed {
		switch {
		case p.Y >= height-TouchJumpBandHeight:
			in.Jump = true
		case p.X >= width/2:
			in.Attack = true
		}
	}
	for _, p := range held {
		if p.Y >= height-TouchJumpBandHeight || p.X >= width/2 {
			continue
		}
		if p.X < width/4 {
			in.Left = true
		} else {
			in.Right = true
		}
	}
	return in
}

// IsJustTouchedOrClicked 检查是否刚刚发生点击或触摸
// 返回是否点击以及点击位置
func IsJustTouchedOrClicked() (bool, int, int) {
	touchIDs := inpututil.AppendJustPressedTouchIDs(nil)
	if len(touchIDs) > 0 {
		x, y := ebiten.TouchPosition(touchIDs[0])
		return true, x, y
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		return true, x, y
	}

	return false, 0, 0
}

// GetPointerPosition 获取当前指针位置（触摸优先，其次鼠标）
func GetPointerPosition() (int, int) {
	touchIDs := ebiten.AppendTouchIDs(nil)
	if len(touchIDs) > 0 {
		return ebiten.TouchPosition(touchIDs[0])
	}
	return ebiten.CursorPosition()
}

// IsAnyKeyJustPressed 检查列表中是否有键刚刚按下
func IsAnyKeyJustPressed(keys ...ebiten.Key) bool {
	for _, k := range keys {
		if inpututil.IsKeyJustPressed(k) {
			return true
		}
	}
	return false
}
