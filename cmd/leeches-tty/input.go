package main

import (
	"github.com/decker502/forestleeches/pkg/components"
	"github.com/gdamore/tcell/v2"
)

type action int

const (
	actLeft action = iota
	actRight
	actJump
	actAttack
	actPause
	actionCount
)

// 终端没有按键抬起事件：按下后保持一段时间，依靠键盘自动重复续期
const (
	moveHoldMs = 300.0
	tapHoldMs  = 60.0
)

// keyLatch 把终端按键事件转换为电平输入
type keyLatch struct {
	until [actionCount]float64
}

// press 在 nowMs 时按下一个动作
func (k *keyLatch) press(a action, nowMs float64) {
	switch a {
	case actLeft:
		k.until[actRight] = 0
		k.until[a] = nowMs + moveHoldMs
	case actRight:
		k.until[actLeft] = 0
		k.until[a] = nowMs + moveHoldMs
	default:
		// 点按动作不续期：自动重复不会变成连续的按下沿
		if k.until[a] <= nowMs {
			k.until[a] = nowMs + tapHoldMs
		}
	}
}

// state 在 nowMs 时的输入电平
func (k *keyLatch) state(nowMs float64) components.InputState {
	held := func(a action) bool { return k.until[a] > nowMs }
	return components.InputState{
		Left:   held(actLeft),
		Right:  held(actRight),
		Jump:   held(actJump),
		Attack: held(actAttack),
		Pause:  held(actPause),
	}
}

// keyAction 按键到动作的映射，ok 为 false 表示不是游戏按键
func keyAction(ev *tcell.EventKey) (action, bool) {
	switch ev.Key() {
	case tcell.KeyLeft:
		return actLeft, true
	case tcell.KeyRight:
		return actRight, true
	case tcell.KeyUp:
		return actJump, true
	case tcell.KeyEscape:
		return actPause, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'a', 'A':
			return actLeft, true
		case 'd', 'D':
			return actRight, true
		case 'z', 'Z', 'w', 'W', ' ':
			return actJump, true
		case 'x', 'X', 'j', 'J':
			return actAttack, true
		case 'p', 'P':
			return actPause, true
		}
	}
	return 0, false
}

// isQuit q 或 Ctrl-C
func isQuit(ev *tcell.EventKey) bool {
	return ev.Key() == tcell.KeyCtrlC || (ev.Key() == tcell.KeyRune && (ev.Rune() == 'q' || ev.Rune() == 'Q'))
}

// isRetry r
func isRetry(ev *tcell.EventKey) bool {
	return ev.Key() == tcell.KeyRune && (ev.Rune() == 'r' || ev.Rune() == 'R')
}
