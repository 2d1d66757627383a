package modules

import (
	"image/color"
	"log"

	"github.com/decker502/forestleeches/pkg/config"
	"github.com/decker502/forestleeches/pkg/render"
	"github.com/decker502/forestleeches/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// 暂停菜单布局（屏幕坐标）
const (
	PauseMenuPanelWidth    = 300.0
	PauseMenuPanelHeight   = 240.0
	PauseMenuOverlayAlpha  = 0.7
	PauseMenuButtonWidth   = 200.0
	PauseMenuButtonHeight  = 40.0
	PauseMenuButtonSpacing = 16.0
	pauseMenuTitleOffset   = 24.0
	PauseMenuHighlightMs   = 150.0 // 选中项高亮淡入时长
)

// PauseMenuItem 菜单项
type PauseMenuItem int

const (
	ItemResume PauseMenuItem = iota
	ItemRestart
	ItemMainMenu
	pauseMenuItemCount
)

// Label 菜单项文字
func (i PauseMenuItem) Label() string {
	switch i {
	case ItemResume:
		return "RESUME"
	case ItemRestart:
		return "RESTART"
	case ItemMainMenu:
		return "MAIN MENU"
	}
	return ""
}

// MenuAction 键盘导航动作
type MenuAction int

const (
	MenuNone MenuAction = iota
	MenuUp
	MenuDown
	MenuConfirm
)

// Pausable 可暂停的对象（gameplay.Session 满足此接口）
type Pausable interface {
	IsPaused() bool
	TogglePause() bool
}

// PauseMenuCallbacks 暂停菜单回调函数集合
type PauseMenuCallbacks struct {
	OnRestart     func() // "RESTART"
	OnMainMenu    func() // "MAIN MENU"
	OnPauseMusic  func() // 可选
	OnResumeMusic func() // 可选
}

// PauseMenuModule 暂停菜单：遮罩、面板、三个按钮
//
// 暂停状态只存在于 Pausable 中，模块每帧同步一次：
// 无论暂停由 ESC、触屏还是菜单按钮触发，音乐回调都只调用一次。
type PauseMenuModule struct {
	target    Pausable
	callbacks PauseMenuCallbacks
	fonts     *render.Fonts

	selected PauseMenuItem
	// hovered 鼠标悬停项，-1 表示没有
	hovered int

	wasActive bool
	// highlightMs 当前选中项高亮已持续的时间
	highlightMs float64
}

// NewPauseMenuModule 创建暂停菜单模块
//
// 参数:
//   - target: 暂停状态的持有者
//   - fonts: 渲染字体，可为 nil（仅逻辑测试时）
//   - callbacks: 回调函数集合
func NewPauseMenuModule(target Pausable, fonts *render.Fonts, callbacks PauseMenuCallbacks) *PauseMenuModule {
	return &PauseMenuModule{
		target:    target,
		callbacks: callbacks,
		fonts:     fonts,
		hovered:   -1,
	}
}

// Update 同步暂停状态并处理菜单输入
// 返回 true 表示本帧输入被菜单消费
func (m *PauseMenuModule) Update() bool {
	m.sync()
	if !m.IsActive() {
		return false
	}
	m.highlightMs += 1000.0 / 60

	switch {
	case utils.IsAnyKeyJustPressed(ebiten.KeyArrowUp, ebiten.KeyW):
		m.Navigate(MenuUp)
	case utils.IsAnyKeyJustPressed(ebiten.KeyArrowDown, ebiten.KeyS):
		m.Navigate(MenuDown)
	case utils.IsAnyKeyJustPressed(utils.ConfirmKeys...):
		m.Navigate(MenuConfirm)
	}

	x, y := utils.GetPointerPosition()
	m.PointerMoved(float64(x), float64(y))
	if clicked, cx, cy := utils.IsJustTouchedOrClicked(); clicked {
		m.Click(float64(cx), float64(cy))
	}
	return true
}

// sync 检测外部（ESC / 触屏）引起的暂停状态变化
func (m *PauseMenuModule) sync() {
	active := m.IsActive()
	if active == m.wasActive {
		return
	}
	m.wasActive = active
	if active {
		m.selected = ItemResume
		m.highlightMs = 0
		m.hovered = -1
		if m.callbacks.OnPauseMusic != nil {
			m.callbacks.OnPauseMusic()
		}
		log.Printf("[PauseMenuModule] Paused")
	} else {
		if m.callbacks.OnResumeMusic != nil {
			m.callbacks.OnResumeMusic()
		}
		log.Printf("[PauseMenuModule] Resumed")
	}
}

// IsActive 菜单是否显示
func (m *PauseMenuModule) IsActive() bool {
	return m.target != nil && m.target.IsPaused()
}

// Selected 当前键盘选中项
func (m *PauseMenuModule) Selected() PauseMenuItem {
	return m.selected
}

// Navigate 处理一次键盘导航，上下循环选择
func (m *PauseMenuModule) Navigate(action MenuAction) {
	switch action {
	case MenuUp:
		m.selectItem((m.selected + pauseMenuItemCount - 1) % pauseMenuItemCount)
	case MenuDown:
		m.selectItem((m.selected + 1) % pauseMenuItemCount)
	case MenuConfirm:
		m.Activate(m.selected)
	}
}

// Activate 执行菜单项
func (m *PauseMenuModule) Activate(item PauseMenuItem) {
	if !m.IsActive() {
		return
	}
	log.Printf("[PauseMenuModule] %s selected", item.Label())
	switch item {
	case ItemResume:
		m.target.TogglePause()
		m.sync()
	case ItemRestart:
		if m.callbacks.OnRestart != nil {
			m.callbacks.OnRestart()
		}
	case ItemMainMenu:
		if m.callbacks.OnMainMenu != nil {
			m.callbacks.OnMainMenu()
		}
	}
}

// ItemRect 菜单项按钮的屏幕矩形（左上角与宽高）
func ItemRect(item PauseMenuItem) (x, y, w, h float64) {
	cx := float64(config.GameWindowWidth) / 2
	cy := float64(config.GameWindowHeight) / 2
	top := cy - PauseMenuButtonHeight/2 - (PauseMenuButtonHeight + PauseMenuButtonSpacing) + pauseMenuTitleOffset
	return cx - PauseMenuButtonWidth/2,
		top + float64(item)*(PauseMenuButtonHeight+PauseMenuButtonSpacing),
		PauseMenuButtonWidth,
		PauseMenuButtonHeight
}

// ItemAt 屏幕坐标处的菜单项，没有时返回 -1
func ItemAt(px, py float64) int {
	for i := PauseMenuItem(0); i < pauseMenuItemCount; i++ {
		x, y, w, h := ItemRect(i)
		if px >= x && px < x+w && py >= y && py < y+h {
			return int(i)
		}
	}
	return -1
}

// PointerMoved 更新悬停项，悬停同时改变键盘选中项
func (m *PauseMenuModule) PointerMoved(px, py float64) {
	m.hovered = ItemAt(px, py)
	if m.hovered >= 0 {
		m.selectItem(PauseMenuItem(m.hovered))
	}
}

// selectItem 切换选中项，高亮重新淡入
func (m *PauseMenuModule) selectItem(item PauseMenuItem) {
	if item == m.selected {
		return
	}
	m.selected = item
	m.highlightMs = 0
}

// HighlightStrength 选中项高亮强度 [0, 1]
func (m *PauseMenuModule) HighlightStrength() float64 {
	return utils.EaseOutQuad(utils.Progress(m.highlightMs, PauseMenuHighlightMs))
}

// Click 点击坐标处的菜单项，返回是否命中
func (m *PauseMenuModule) Click(px, py float64) bool {
	i := ItemAt(px, py)
	if i < 0 {
		return false
	}
	m.Activate(PauseMenuItem(i))
	return true
}

// Draw 渲染遮罩、面板和按钮
func (m *PauseMenuModule) Draw(screen *ebiten.Image) {
	if !m.IsActive() || m.fonts == nil {
		return
	}
	cx := float64(config.GameWindowWidth) / 2
	cy := float64(config.GameWindowHeight) / 2

	render.DimScreen(screen, PauseMenuOverlayAlpha)
	render.DrawPanel(screen, cx, cy, PauseMenuPanelWidth, PauseMenuPanelHeight)
	render.DrawText(screen, "PAUSED", cx, cy-PauseMenuPanelHeight/2+16, render.TextStyle{
		Face: m.fonts.Body, Color: render.ColorText, Align: text.AlignCenter, Scale: 2,
	})

	for i := PauseMenuItem(0); i < pauseMenuItemCount; i++ {
		x, y, w, h := ItemRect(i)
		var clr color.Color = render.ColorText
		edge := render.ColorPanelEdge
		stroke := 2.0
		if i == m.selected {
			clr = render.ColorHighlight
			edge = render.ColorHighlight
			stroke = utils.Lerp(1, 3, m.HighlightStrength())
		}
		vector.StrokeRect(screen, float32(x), float32(y), float32(w), float32(h), float32(stroke), edge, false)
		render.DrawText(screen, i.Label(), x+w/2, y+h/2-8, render.TextStyle{
			Face: m.fonts.Body, Color: clr, Align: text.AlignCenter, Scale: 1.5,
		})
	}
}
