package components

import "github.com/decker502/forestleeches/pkg/ecs"

// CameraComponent 摄像机状态
// X, Y 为视口左上角的世界坐标
type CameraComponent struct {
	X float64
	Y float64

	// Target 跟随目标（通常是玩家）
	Target ecs.EntityID

	// Lerp 每帧向目标靠近的比例
	Lerp float64

	// 屏幕震动
	ShakeIntensity float64 // 震动幅度（世界像素）
	ShakeRemaining float64 // 剩余时长（秒）
	ShakeOffsetX   float64
	ShakeOffsetY   float64
}
