package systems

import (
	"math"

	"github.com/decker502/forestleeches/pkg/components"
	"github.com/decker502/forestleeches/pkg/config"
	"github.com/decker502/forestleeches/pkg/ecs"
)

// CameraSystem 摄像机跟随与屏幕震动
// 摄像机把目标放在视口中心，每帧按 Lerp 系数靠近，并限制在世界范围内
type CameraSystem struct {
	ctx          *Context
	cameraEntity ecs.EntityID
}

// NewCameraSystem 创建摄像机系统
// 参数：camera - 摄像机实体（由 entities.NewCamera 创建）
func NewCameraSystem(ctx *Context, camera ecs.EntityID) *CameraSystem {
	return &CameraSystem{ctx: ctx, cameraEntity: camera}
}

// Camera 返回摄像机组件
func (cs *CameraSystem) Camera() (*components.CameraComponent, bool) {
	return ecs.GetComponent[*components.CameraComponent](cs.ctx.EM, cs.cameraEntity)
}

// SnapToTarget 立即把摄像机移动到目标位置（开局使用）
func (cs *CameraSystem) SnapToTarget() {
	cam, ok := cs.Camera()
	if !ok {
		return
	}
	if tx, ty, ok := cs.targetTopLeft(cam); ok {
		cam.X, cam.Y = config.ClampCamera(tx, ty)
	}
}

// Shake 开始屏幕震动
// 参数：
//   - duration: 持续时间（秒）
//   - intensity: 幅度（世界像素）
func (cs *CameraSystem) Shake(duration, intensity float64) {
	cam, ok := cs.Camera()
	if !ok {
		return
	}
	cam.ShakeRemaining = duration
	cam.ShakeIntensity = intensity
}

// Update 更新摄像机位置
func (cs *CameraSystem) Update(dt float64) {
	cam, ok := cs.Camera()
	if !ok {
		return
	}

	if tx, ty, ok := cs.targetTopLeft(cam); ok {
		cam.X += (tx - cam.X) * cam.Lerp
		cam.Y += (ty - cam.Y) * cam.Lerp
		cam.X, cam.Y = config.ClampCamera(cam.X, cam.Y)
	}

	if cam.ShakeRemaining > 0 {
		cam.ShakeRemaining -= dt
		// 确定性的高频抖动，避免消耗共享随机数
		phase := cs.ctx.Now() / 16
		cam.ShakeOffsetX = math.Sin(phase*1.7) * cam.ShakeIntensity
		cam.ShakeOffsetY = math.Cos(phase*2.3) * cam.ShakeIntensity
	} else {
		cam.ShakeRemaining = 0
		cam.ShakeOffsetX, cam.ShakeOffsetY = 0, 0
	}
}

// Viewport 返回视口左上角和尺寸（世界坐标，不含震动）
func (cs *CameraSystem) Viewport() (x, y, w, h float64) {
	cam, ok := cs.Camera()
	if !ok {
		return 0, 0, config.ViewportWidth, config.ViewportHeight
	}
	return cam.X, cam.Y, config.ViewportWidth, config.ViewportHeight
}

func (cs *CameraSystem) targetTopLeft(cam *components.CameraComponent) (float64, float64, bool) {
	if !cs.ctx.Alive(cam.Target) {
		return 0, 0, false
	}
	pos, ok := ecs.GetComponent[*components.PositionComponent](cs.ctx.EM, cam.Target)
	if !ok {
		return 0, 0, false
	}
	return pos.X - config.ViewportWidth/2, pos.Y - config.ViewportHeight/2, true
}
