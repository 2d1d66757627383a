package main

import (
	"fmt"
	"math"
	"strings"

	"github.com/decker502/forestleeches/pkg/components"
	"github.com/decker502/forestleeches/pkg/config"
	"github.com/decker502/forestleeches/pkg/ecs"
	"github.com/decker502/forestleeches/pkg/gameplay"
	"github.com/gdamore/tcell/v2"
)

// 字符画面布局：第一行 HUD，最后一行提示，中间是世界
const (
	hudRows    = 1
	footerRows = 1
	barCells   = 10
	treeStep   = 9 // 近景树木间隔（列）
)

var (
	styleDefault = tcell.StyleDefault
	styleHUD     = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleDim     = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleGround  = tcell.StyleDefault.Foreground(tcell.ColorSaddleBrown)
	styleGrass   = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleTree    = tcell.StyleDefault.Foreground(tcell.ColorDarkGreen)
	stylePlayer  = tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true)
	styleStick   = tcell.StyleDefault.Foreground(tcell.ColorSaddleBrown).Bold(true)
	styleLeech   = tcell.StyleDefault.Foreground(tcell.ColorLime)
	styleLatched = tcell.StyleDefault.Foreground(tcell.ColorOlive)
	styleBoss    = tcell.StyleDefault.Foreground(tcell.ColorFuchsia).Bold(true)
	styleSalt    = tcell.StyleDefault.Foreground(tcell.ColorSilver).Bold(true)
	styleCharm   = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleShot    = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleDanger  = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleNotice  = tcell.StyleDefault.Foreground(tcell.ColorYellow)
)

type cell struct {
	ch    rune
	style tcell.Style
}

// frame 一帧的字符画面
type frame struct {
	w, h  int
	cells []cell
}

func newFrame(w, h int) *frame {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	f := &frame{w: w, h: h, cells: make([]cell, w*h)}
	for i := range f.cells {
		f.cells[i] = cell{' ', styleDefault}
	}
	return f
}

func (f *frame) set(x, y int, ch rune, style tcell.Style) {
	if x < 0 || y < 0 || x >= f.w || y >= f.h {
		return
	}
	f.cells[y*f.w+x] = cell{ch, style}
}

func (f *frame) at(x, y int) cell {
	if x < 0 || y < 0 || x >= f.w || y >= f.h {
		return cell{}
	}
	return f.cells[y*f.w+x]
}

// text 从 (x, y) 写一行文字，超出宽度截断
func (f *frame) text(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		f.set(x, y, r, style)
		x++
	}
}

// centerText 水平居中
func (f *frame) centerText(y int, s string, style tcell.Style) {
	f.text((f.w-len([]rune(s)))/2, y, s, style)
}

// row 一行的文字（测试用）
func (f *frame) row(y int) string {
	var b strings.Builder
	for x := 0; x < f.w; x++ {
		ch := f.at(x, y).ch
		if ch == 0 {
			ch = ' '
		}
		b.WriteRune(ch)
	}
	return b.String()
}

// projection 世界坐标到字符格
type projection struct {
	camX, camY float64
	sx, sy     float64
	top        int
}

func newProjection(cam *components.CameraComponent, w, h int) projection {
	p := projection{
		sx:  float64(w) / config.ViewportWidth,
		sy:  float64(h-hudRows-footerRows) / config.ViewportHeight,
		top: hudRows,
	}
	if cam != nil {
		p.camX = cam.X - cam.ShakeOffsetX
		p.camY = cam.Y - cam.ShakeOffsetY
	}
	return p
}

func (p projection) cell(wx, wy float64) (int, int) {
	return int(math.Floor((wx - p.camX) * p.sx)), p.top + int(math.Floor((wy-p.camY)*p.sy))
}

// treeAt 近景第 i 棵树是否存在（确定性）
func treeAt(i int) bool {
	h := uint32(i)*2654435761 ^ 0x9e3779b9
	h ^= h >> 15
	return h%3 != 0
}

// composeFrame 把会话当前状态画成字符画面
func composeFrame(s *gameplay.Session, w, h int, notice string) *frame {
	f := newFrame(w, h)
	if w <= 0 || h <= hudRows+footerRows {
		return f
	}
	em := s.Ctx.EM
	cam, _ := ecs.GetComponent[*components.CameraComponent](em, s.Camera)
	p := newProjection(cam, w, h)

	drawScenery(f, p, w, h)
	drawItems(f, em, p)
	drawEnemies(f, em, p)
	drawPlayer(f, s, p)
	drawShots(f, em, p)
	drawHUD(f, s)
	drawFooter(f, s, notice)
	return f
}

func drawScenery(f *frame, p projection, w, h int) {
	_, groundRow := p.cell(0, config.GroundY)
	bottom := h - footerRows
	for y := groundRow; y < bottom; y++ {
		for x := 0; x < w; x++ {
			if y == groundRow {
				f.set(x, y, '▀', styleGrass)
			} else {
				f.set(x, y, '░', styleGround)
			}
		}
	}

	// 近景树木按 0.9 的视差滚动
	scroll := p.camX * p.sx * config.ParallaxFactors[2]
	first := int(math.Floor(scroll / treeStep))
	for i := first; float64(i*treeStep)-scroll < float64(w); i++ {
		if !treeAt(i) {
			continue
		}
		x := int(float64(i*treeStep) - scroll)
		f.set(x, groundRow-1, '↟', styleTree)
	}
}

func drawItems(f *frame, em *ecs.EntityManager, p projection) {
	for _, id := range ecs.GetEntitiesWith2[*components.ItemComponent, *components.PositionComponent](em) {
		item, _ := ecs.GetComponent[*components.ItemComponent](em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		x, y := p.cell(pos.X, pos.Y)
		if item.Collected {
			f.set(x, y, '+', styleNotice)
			continue
		}
		switch item.Kind {
		case components.ItemStick:
			f.set(x, y, '/', styleStick)
		case components.ItemSalt:
			f.set(x, y, '%', styleSalt)
		case components.ItemCharm:
			f.set(x, y, '*', styleCharm)
		}
	}
}

func drawEnemies(f *frame, em *ecs.EntityManager, p projection) {
	for _, id := range ecs.GetEntitiesWith2[*components.EnemyComponent, *components.PositionComponent](em) {
		e, _ := ecs.GetComponent[*components.EnemyComponent](em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)

		if e.Kind == components.EnemyBoss {
			drawBoss(f, em, id, pos, p, e.State == components.EnemyDead)
			continue
		}

		x, y := p.cell(pos.X, pos.Y)
		switch e.State {
		case components.EnemyDead:
			f.set(x, y, '.', styleDim)
		case components.EnemyAttached:
			f.set(x, y, '§', styleLatched)
		default:
			f.set(x, y, '~', styleLeech)
		}
	}
}

// drawBoss 按碰撞盒大小画一块 W
func drawBoss(f *frame, em *ecs.EntityManager, id ecs.EntityID, pos *components.PositionComponent, p projection, dead bool) {
	w, h := 32.0, 24.0
	if c, ok := ecs.GetComponent[*components.CollisionComponent](em, id); ok {
		w, h = c.Width, c.Height
	}
	x0, y0 := p.cell(pos.X-w/2, pos.Y-h/2)
	x1, y1 := p.cell(pos.X+w/2, pos.Y+h/2)
	ch, style := 'W', styleBoss
	if dead {
		ch, style = '#', styleDim
	}
	for y := y0; y <= max(y0, y1-1); y++ {
		for x := x0; x <= max(x0, x1-1); x++ {
			f.set(x, y, ch, style)
		}
	}
}

func drawPlayer(f *frame, s *gameplay.Session, p projection) {
	em := s.Ctx.EM
	pl, ok := ecs.GetComponent[*components.PlayerComponent](em, s.Player)
	if !ok {
		return
	}
	pos, _ := ecs.GetComponent[*components.PositionComponent](em, s.Player)
	if app, ok := ecs.GetComponent[*components.AppearanceComponent](em, s.Player); ok && !app.Visible {
		return
	}
	x, y := p.cell(pos.X, pos.Y)
	if pl.IsDead {
		f.set(x, y, 'x', styleDanger)
		return
	}
	f.set(x, y, '@', stylePlayer)

	if pl.IsAttacking {
		dir := 1
		swing := '/'
		if pl.Facing < 0 {
			dir = -1
			swing = '\\'
		}
		reach := max(1, int(math.Round(pl.MeleeRange)))
		for i := 1; i <= reach; i++ {
			f.set(x+dir*i, y, swing, styleStick)
		}
	}
}

func drawShots(f *frame, em *ecs.EntityManager, p projection) {
	for _, id := range ecs.GetEntitiesWith2[*components.ProjectileComponent, *components.PositionComponent](em) {
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		x, y := p.cell(pos.X, pos.Y)
		f.set(x, y, 'o', styleShot)
	}
	for _, id := range ecs.GetEntitiesWith2[*components.ParticleComponent, *components.PositionComponent](em) {
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		x, y := p.cell(pos.X, pos.Y)
		if f.at(x, y).ch == ' ' {
			f.set(x, y, '·', styleNotice)
		}
	}
}

// healthBar 10 格生命条
func healthBar(current, maxHealth int) string {
	filled := 0
	if maxHealth > 0 && current > 0 {
		filled = int(math.Ceil(float64(current) / float64(maxHealth) * barCells))
		filled = min(filled, barCells)
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", barCells-filled)
}

func hudLine(s *gameplay.Session) string {
	hp, maxHP := s.PlayerSys.Health(s.Player)
	line := fmt.Sprintf("SCORE %d  %dm/%dm  HP %s %d/%d  LV %d",
		s.State.Score, int(s.State.Distance), int(s.Config().Rules.VictoryDistance),
		healthBar(hp, maxHP), max(hp, 0), maxHP, s.State.Level)
	if boss, ok := s.Boss(); ok {
		if cur, maxBoss, alive := s.EnemySys.Health(boss); alive {
			line += fmt.Sprintf("  KING %d/%d", cur, maxBoss)
		}
	}
	return line
}

func drawHUD(f *frame, s *gameplay.Session) {
	f.text(0, 0, hudLine(s), styleHUD)
}

func drawFooter(f *frame, s *gameplay.Session, notice string) {
	y := f.h - 1
	mid := hudRows + (f.h-hudRows-footerRows)/2

	switch {
	case s.Finished():
		drawResult(f, s.Result(), mid)
		f.centerText(y, "r: retry   q: quit", styleDim)
		return
	case s.State.Status == gameplay.StatusGameOver:
		f.centerText(mid, " GAME OVER ", styleDanger)
	case s.State.Status == gameplay.StatusVictory:
		f.centerText(mid, " VICTORY! ", styleNotice)
	case s.IsPaused():
		f.centerText(mid, " PAUSED ", styleHUD)
	}

	if notice != "" {
		f.centerText(y, notice, styleNotice)
		return
	}
	f.text(0, y, "←/→ move  z jump  x attack  p pause  q quit", styleDim)
}

func drawResult(f *frame, r gameplay.RunResult, mid int) {
	title, style := "GAME OVER", styleDanger
	if r.Victory {
		title, style = "VICTORY!", styleNotice
	}
	lines := []string{
		title,
		fmt.Sprintf("score %d", r.Score),
		fmt.Sprintf("distance %dm   time %ds", r.Distance, r.Time),
	}
	if r.Victory {
		lines = append(lines, fmt.Sprintf("leeches %d   items %d", r.LeechesDefeated, r.ItemsCollected))
	}
	y := mid - len(lines)/2
	for i, l := range lines {
		st := styleHUD
		if i == 0 {
			st = style
		}
		f.centerText(y+i, l, st)
	}
}
