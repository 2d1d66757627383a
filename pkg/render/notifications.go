package render

import (
	"image/color"

	"github.com/decker502/forestleeches/pkg/config"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

const (
	// NotificationLifetimeMs 提示显示时长
	NotificationLifetimeMs = 2000.0
	// NotificationFadeMs 最后一段时间淡出
	NotificationFadeMs = 500.0
	notificationTop    = 100.0
	notificationStep   = 28.0
	maxNotifications   = 4
)

type notification struct {
	text  string
	color color.Color
	ageMs float64
}

// Notifications 屏幕中央的浮动提示（难度提升、道具效果）
type Notifications struct {
	items []notification
}

// Push 添加一条提示，超过上限时丢弃最旧的
func (n *Notifications) Push(s string, clr color.Color) {
	if clr == nil {
		clr = ColorHighlight
	}
	n.items = append(n.items, notification{text: s, color: clr})
	if len(n.items) > maxNotifications {
		n.items = n.items[len(n.items)-maxNotifications:]
	}
}

// Update 推进提示计时并移除到期的提示，dtMs 为毫秒
func (n *Notifications) Update(dtMs float64) {
	kept := n.items[:0]
	for _, it := range n.items {
		it.ageMs += dtMs
		if it.ageMs < NotificationLifetimeMs {
			kept = append(kept, it)
		}
	}
	n.items = kept
}

// Len 当前显示的提示数量
func (n *Notifications) Len() int {
	return len(n.items)
}

// Texts 当前提示文字（从旧到新）
func (n *Notifications) Texts() []string {
	out := make([]string, len(n.items))
	for i, it := range n.items {
		out[i] = it.text
	}
	return out
}

// notificationAlpha 提示在 ageMs 时的透明度
func notificationAlpha(ageMs float64) float64 {
	remaining := NotificationLifetimeMs - ageMs
	if remaining <= 0 {
		return 0
	}
	if remaining >= NotificationFadeMs {
		return 1
	}
	return remaining / NotificationFadeMs
}

// Draw 在屏幕中上方居中绘制提示，最新的在最上面
func (n *Notifications) Draw(screen *ebiten.Image, fonts *Fonts) {
	y := notificationTop
	for i := len(n.items) - 1; i >= 0; i-- {
		it := n.items[i]
		DrawText(screen, it.text, config.GameWindowWidth/2, y, TextStyle{
			Face:  fonts.Body,
			Color: it.color,
			Align: text.AlignCenter,
			Scale: 2,
			Alpha: notificationAlpha(it.ageMs),
		})
		y += notificationStep
	}
}
