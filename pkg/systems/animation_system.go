package systems

import (
	"github.com/decker502/forestleeches/pkg/components"
	"github.com/decker502/forestleeches/pkg/ecs"
)

// AnimationSystem 推进所有实体的帧动画
// 动画只决定"当前是第几帧"，绘制交给渲染层
type AnimationSystem struct {
	ctx *Context
}

// NewAnimationSystem 创建一个新的动画系统
func NewAnimationSystem(ctx *Context) *AnimationSystem {
	return &AnimationSystem{
		ctx: ctx,
	}
}

// Update 更新所有动画实体的帧
// 非循环动画播放完成且标记了 DestroyOnFinish 的实体会被销毁
// 返回：本帧因动画完成而销毁的实体
func (s *AnimationSystem) Update(deltaTime float64) []ecs.EntityID {
	var destroyed []ecs.EntityID
	entities := ecs.GetEntitiesWith1[*components.AnimationComponent](s.ctx.EM)

	for _, id := range entities {
		anim, _ := ecs.GetComponent[*components.AnimationComponent](s.ctx.EM, id)

		if !anim.IsFinished {
			advanceAnimation(anim, deltaTime)
		}

		if anim.IsFinished && anim.DestroyOnFinish && !s.ctx.EM.IsPendingDestroy(id) {
			s.ctx.Destroy(id)
			destroyed = append(destroyed, id)
		}
	}
	return destroyed
}

// advanceAnimation 推进单个动画的帧计时器
func advanceAnimation(anim *components.AnimationComponent, deltaTime float64) {
	clip := anim.Clip
	if clip.FrameCount <= 0 || clip.FPS <= 0 {
		anim.IsFinished = clip.Repeat >= 0
		return
	}
	frameSpeed := 1.0 / clip.FPS

	anim.FrameCounter += deltaTime
	for anim.FrameCounter >= frameSpeed && !anim.IsFinished {
		anim.FrameCounter -= frameSpeed
		anim.CurrentFrame++
		if anim.CurrentFrame < clip.FrameCount {
			continue
		}
		// 一轮播放完成
		anim.LoopsPlayed++
		if clip.Repeat < 0 || anim.LoopsPlayed <= clip.Repeat {
			anim.CurrentFrame = 0
			continue
		}
		// 停在最后一帧
		anim.CurrentFrame = clip.FrameCount - 1
		anim.IsFinished = true
	}
}
