package config

// 布局配置常量
// 本文件定义了游戏窗口、世界尺寸和摄像机参数
// 世界坐标以左上角为原点，Y 轴向下

const (
	// GameWindowWidth 逻辑屏幕宽度（像素）
	GameWindowWidth = 800
	// GameWindowHeight 逻辑屏幕高度（像素），16:9
	GameWindowHeight = 450

	// CameraZoom 世界到屏幕的缩放倍数（像素风放大）
	CameraZoom = 2.0

	// ViewportWidth 摄像机可见的世界宽度
	ViewportWidth = GameWindowWidth / CameraZoom // 400
	// ViewportHeight 摄像机可见的世界高度
	ViewportHeight = GameWindowHeight / CameraZoom // 225

	// WorldWidth 关卡世界宽度
	WorldWidth = 4000.0
	// WorldHeight 关卡世界高度，底边即地面
	WorldHeight = 720.0
	// GroundY 地面Y坐标
	GroundY = WorldHeight

	// PlayerStartX 玩家出生X坐标
	PlayerStartX = 200.0
	// PlayerStartY 玩家出生Y坐标（脚底距地面100像素，开局落地）
	PlayerStartY = WorldHeight - 100

	// CameraLerp 摄像机跟随的插值系数（每帧）
	CameraLerp = 0.1

	// ItemRestHeight 道具悬浮时底边离地的高度
	ItemRestHeight = 40.0
	// ItemSpawnMarginX 道具在视口内随机X时距视口两侧的留白
	ItemSpawnMarginX = 50.0
	// ItemSpawnAboveViewport 道具在视口上方出现的距离
	ItemSpawnAboveViewport = 50.0

	// EnemySpawnBottomMargin 敌人出生高度距视口底部的最小留白
	EnemySpawnBottomMargin = 50.0
)

// Parallax 背景层滚动系数（远、中、近）
var ParallaxFactors = [3]float64{0.3, 0.6, 0.9}

// ClampCamera 把摄像机左上角限制在世界范围内
// 参数：x, y - 期望的摄像机左上角世界坐标
// 返回：限制后的坐标
func ClampCamera(x, y float64) (float64, float64) {
	maxX := WorldWidth - ViewportWidth
	maxY := WorldHeight - ViewportHeight
	if x < 0 {
		x = 0
	} else if x > maxX {
		x = maxX
	}
	if y < 0 {
		y = 0
	} else if y > maxY {
		y = maxY
	}
	return x, y
}
