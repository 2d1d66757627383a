package components

// AnimationClip 动画片段定义
type AnimationClip struct {
	Name       string
	FrameCount int
	FPS        float64
	// Repeat 额外重复次数：0 播放一次，-1 无限循环
	Repeat int
}

// AnimationComponent 基于帧计数器的动画状态
type AnimationComponent struct {
	Clip         AnimationClip
	FrameCounter float64 // 当前帧计时器(秒)
	CurrentFrame int     // 当前显示的帧索引(0-based)
	LoopsPlayed  int     // 已完整播放的次数
	IsFinished   bool    // 动画是否已完成(仅对非循环动画有效)

	// DestroyOnFinish 动画完成后销毁实体（死亡动画、拾取动画）
	DestroyOnFinish bool
}
