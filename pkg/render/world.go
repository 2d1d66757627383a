package render

import (
	"image/color"
	"math"

	"github.com/decker502/forestleeches/pkg/components"
	"github.com/decker502/forestleeches/pkg/config"
	"github.com/decker502/forestleeches/pkg/ecs"
	"github.com/decker502/forestleeches/pkg/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// 背景图层参数（远、中、近）
var layerSpacing = [3]float64{90, 48, 34}

const grassHeight = 4.0

// WorldRenderer 绘制游戏世界
type WorldRenderer struct {
	canvas *ebiten.Image
}

// NewWorldRenderer 创建世界渲染器
func NewWorldRenderer() *WorldRenderer {
	return &WorldRenderer{
		canvas: ebiten.NewImage(int(config.ViewportWidth), int(config.ViewportHeight)),
	}
}

// Draw 绘制摄像机看到的世界并放大到屏幕
// 绘制顺序：背景 → 道具 → 敌人 → 玩家 → 弹幕 → 粒子
func (r *WorldRenderer) Draw(screen *ebiten.Image, em *ecs.EntityManager, cam *components.CameraComponent) {
	v := ViewFromCamera(cam)
	r.canvas.Fill(ColorBackground)
	DrawBackground(r.canvas, v)

	drawItems(r.canvas, em, v)
	drawEnemies(r.canvas, em, v)
	drawPlayers(r.canvas, em, v)
	drawProjectiles(r.canvas, em, v)
	DrawParticles(r.canvas, em, v)

	r.Present(screen)
}

// Canvas 视口大小的离屏图像（标题画面复用它绘制背景）
func (r *WorldRenderer) Canvas() *ebiten.Image {
	return r.canvas
}

// Present 把离屏图像放大绘制到屏幕
func (r *WorldRenderer) Present(screen *ebiten.Image) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(config.CameraZoom, config.CameraZoom)
	screen.DrawImage(r.canvas, op)
}

// DrawBackground 绘制三层视差背景和地面
func DrawBackground(dst *ebiten.Image, v View) {
	groundY := config.GroundY - v.Y + v.ShakeY

	for layer, factor := range config.ParallaxFactors {
		scroll := v.X * factor
		spacing := layerSpacing[layer]
		base := layerBaseline(groundY, v.Height, factor)
		first, last := layerRange(scroll, spacing, v.Width)
		clr := colorLayers[layer]

		for i := first; i <= last; i++ {
			h := layerHash(i, layer)
			x := float32(float64(i)*spacing + h*spacing*0.5 - scroll + v.ShakeX)
			y := float32(base)
			switch layer {
			case 0: // 远山
				radius := float32(40 + h*30)
				vector.DrawFilledCircle(dst, x, y+radius*0.4, radius, clr, false)
			case 1: // 树
				height := float32(50 + h*40)
				vector.DrawFilledRect(dst, x-2, y-height, 4, height, clr, false)
				vector.DrawFilledCircle(dst, x, y-height, float32(12+h*8), clr, false)
			case 2: // 灌木
				radius := float32(7 + h*6)
				vector.DrawFilledCircle(dst, x, y, radius, clr, false)
				vector.DrawFilledCircle(dst, x+radius, y+2, radius*0.7, clr, false)
			}
		}
	}

	if groundY <= v.Height+grassHeight {
		vector.DrawFilledRect(dst, 0, float32(groundY), float32(v.Width), float32(v.Height-groundY+1), colorGround, false)
		vector.DrawFilledRect(dst, 0, float32(groundY-grassHeight), float32(v.Width), grassHeight, colorGrass, false)
	}
}

// entityColor 应用受击闪烁后的颜色
func entityColor(em *ecs.EntityManager, id ecs.EntityID, base color.RGBA) color.RGBA {
	if flash, ok := ecs.GetComponent[*components.FlashEffectComponent](em, id); ok && flash.IsActive {
		return tint(base, flash.R, flash.G, flash.B, flash.Intensity)
	}
	return base
}

func appearance(em *ecs.EntityManager, id ecs.EntityID) (alpha float64, visible bool) {
	app, ok := ecs.GetComponent[*components.AppearanceComponent](em, id)
	if !ok {
		return 1, true
	}
	return app.Alpha, app.Visible && app.Alpha > 0
}

func size(em *ecs.EntityManager, id ecs.EntityID, fallbackW, fallbackH float64) (float64, float64) {
	if c, ok := ecs.GetComponent[*components.CollisionComponent](em, id); ok {
		return c.Width, c.Height
	}
	return fallbackW, fallbackH
}

func animFrame(em *ecs.EntityManager, id ecs.EntityID) (string, int, int) {
	anim, ok := ecs.GetComponent[*components.AnimationComponent](em, id)
	if !ok {
		return "", 0, 1
	}
	n := anim.Clip.FrameCount
	if n <= 0 {
		n = 1
	}
	return anim.Clip.Name, anim.CurrentFrame, n
}

func drawPlayers(dst *ebiten.Image, em *ecs.EntityManager, v View) {
	for _, id := range ecs.GetEntitiesWith2[*components.PlayerComponent, *components.PositionComponent](em) {
		p, _ := ecs.GetComponent[*components.PlayerComponent](em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		alpha, visible := appearance(em, id)
		if !visible {
			continue
		}
		w, h := size(em, id, 16, 24)
		x, y := v.ToScreen(pos.X, pos.Y)
		top := y - h/2

		body := fade(entityColor(em, id, colorPlayerBody), alpha)
		head := fade(entityColor(em, id, colorPlayerHead), alpha)

		bodyH := h * 0.6
		if p.Anim == components.PlayerAnimRun {
			_, frame, _ := animFrame(em, id)
			// 跑动时身体上下颠簸
			bodyH -= float64(frame % 2)
		}
		vector.DrawFilledRect(dst, float32(x-w/2), float32(y+h/2-bodyH), float32(w), float32(bodyH), body, false)
		vector.DrawFilledCircle(dst, float32(x), float32(top+h*0.22), float32(w*0.38), head, false)
		vector.DrawFilledRect(dst, float32(x+p.Facing*w*0.15-1), float32(top+h*0.18), 2, 2, fade(color.RGBA{A: 0xff}, alpha), false)

		if p.IsAttacking {
			_, frame, frames := animFrame(em, id)
			swing := -math.Pi/3 + float64(frame)/float64(frames)*math.Pi/2
			length := 18 * p.MeleeRange
			sx := x + p.Facing*w/2
			sy := y - 2
			ex := sx + p.Facing*math.Cos(swing)*length
			ey := sy + math.Sin(swing)*length
			vector.StrokeLine(dst, float32(sx), float32(sy), float32(ex), float32(ey), 3, fade(colorStick, alpha), false)
		}
	}
}

func drawEnemies(dst *ebiten.Image, em *ecs.EntityManager, v View) {
	for _, id := range ecs.GetEntitiesWith2[*components.EnemyComponent, *components.PositionComponent](em) {
		e, _ := ecs.GetComponent[*components.EnemyComponent](em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		w, h := size(em, id, 12, 12)
		if !v.Visible(pos.X, pos.Y, w*2, h*2) {
			continue
		}
		alpha, visible := appearance(em, id)
		if !visible {
			continue
		}

		base := colorLeech
		switch {
		case e.Kind == components.EnemyBoss:
			base = colorBoss
		case e.State == components.EnemyAttached:
			base = colorLeechDark
		}
		clr := fade(entityColor(em, id, base), alpha)

		_, frame, frames := animFrame(em, id)
		scale := 1.0
		if e.State == components.EnemyDead {
			scale = 1 - float64(frame)/float64(frames)
		} else if frame%2 == 1 {
			scale = 0.9
		}
		x, y := v.ToScreen(pos.X, pos.Y)
		bw, bh := w*scale, h*scale
		r := float32(bh / 2)
		vector.DrawFilledRect(dst, float32(x-bw/2)+r, float32(y-bh/2), float32(bw)-2*r, float32(bh), clr, false)
		vector.DrawFilledCircle(dst, float32(x-bw/2)+r, float32(y), r, clr, false)
		vector.DrawFilledCircle(dst, float32(x+bw/2)-r, float32(y), r, clr, false)

		facing := e.Facing
		if facing == 0 {
			facing = 1
		}
		vector.DrawFilledCircle(dst, float32(x+facing*(bw/2-float64(r)/2)), float32(y), r/3, fade(colorMouth, alpha), false)

		if e.Kind == components.EnemyBoss && e.State != components.EnemyDead {
			drawBossHealth(dst, em, id, x, y-h/2-5, w)
		}
	}
}

func drawBossHealth(dst *ebiten.Image, em *ecs.EntityManager, id ecs.EntityID, cx, y, w float64) {
	hp, ok := ecs.GetComponent[*components.HealthComponent](em, id)
	if !ok || hp.MaxHealth <= 0 {
		return
	}
	ratio := float64(hp.CurrentHealth) / float64(hp.MaxHealth)
	vector.DrawFilledRect(dst, float32(cx-w/2), float32(y), float32(w), 3, ColorHealthBack, false)
	vector.DrawFilledRect(dst, float32(cx-w/2), float32(y), float32(w*ratio), 3, ColorDanger, false)
}

func drawItems(dst *ebiten.Image, em *ecs.EntityManager, v View) {
	for _, id := range ecs.GetEntitiesWith2[*components.ItemComponent, *components.PositionComponent](em) {
		item, _ := ecs.GetComponent[*components.ItemComponent](em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		s, _ := size(em, id, 12, 12)
		if !v.Visible(pos.X, pos.Y, s*2, s*2) {
			continue
		}

		alpha := 1.0
		scale := 1.0
		if name, frame, frames := animFrame(em, id); item.Collected && name != "" {
			t := float64(frame) / float64(frames)
			scale = 1 + t
			alpha = 1 - t
		}
		x, y := v.ToScreen(pos.X, pos.Y)
		s *= scale
		fx, fy, fs := float32(x), float32(y), float32(s)

		switch item.Kind {
		case components.ItemStick:
			vector.DrawFilledRect(dst, fx-fs/2, fy-fs/6, fs, fs/3, fade(colorStick, alpha), false)
			vector.DrawFilledCircle(dst, fx+fs/2, fy, fs/5, fade(colorStick, alpha), false)
		case components.ItemSalt:
			vector.DrawFilledRect(dst, fx-fs/2, fy-fs/2, fs, fs, fade(colorSalt, alpha), false)
			vector.StrokeRect(dst, fx-fs/2, fy-fs/2, fs, fs, 1, fade(ColorTextDim, alpha), false)
		case components.ItemCharm:
			vector.DrawFilledCircle(dst, fx, fy, fs/2, fade(colorCharm, alpha), false)
			vector.DrawFilledCircle(dst, fx, fy, fs/5, fade(ColorBackground, alpha), false)
		}
	}
}

func drawProjectiles(dst *ebiten.Image, em *ecs.EntityManager, v View) {
	for _, id := range ecs.GetEntitiesWith2[*components.ProjectileComponent, *components.PositionComponent](em) {
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		w, _ := size(em, id, 6, 6)
		x, y := v.ToScreen(pos.X, pos.Y)
		vector.DrawFilledCircle(dst, float32(x), float32(y), float32(w/2), colorProjectile, false)
	}
}

// DrawParticles 绘制所有粒子（标题画面的上升粒子也走这里）
func DrawParticles(dst *ebiten.Image, em *ecs.EntityManager, v View) {
	for _, id := range ecs.GetEntitiesWith2[*components.ParticleComponent, *components.PositionComponent](em) {
		p, _ := ecs.GetComponent[*components.ParticleComponent](em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		s := p.Size * systems.ParticleScale(p)
		if s <= 0 || p.Alpha <= 0 {
			continue
		}
		x, y := v.ToScreen(pos.X, pos.Y)
		vector.DrawFilledRect(dst, float32(x-s/2), float32(y-s/2), float32(s), float32(s), RGBA(p.Red, p.Green, p.Blue, p.Alpha), false)
	}
}
