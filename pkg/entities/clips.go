package entities

import "github.com/decker502/forestleeches/pkg/components"

// 动画片段表（帧数、帧率、重复次数）
var (
	ClipPlayerIdle   = components.AnimationClip{Name: "player-idle", FrameCount: 2, FPS: 3, Repeat: -1}
	ClipPlayerRun    = components.AnimationClip{Name: "player-run", FrameCount: 4, FPS: 10, Repeat: -1}
	ClipPlayerJump   = components.AnimationClip{Name: "player-jump", FrameCount: 1, FPS: 1, Repeat: -1}
	ClipPlayerAttack = components.AnimationClip{Name: "player-attack", FrameCount: 3, FPS: 12, Repeat: 0}
	ClipPlayerHurt   = components.AnimationClip{Name: "player-hurt", FrameCount: 2, FPS: 8, Repeat: 3}
	ClipPlayerDie    = components.AnimationClip{Name: "player-die", FrameCount: 1, FPS: 1, Repeat: -1}

	ClipLeechIdle   = components.AnimationClip{Name: "leech-idle", FrameCount: 4, FPS: 6, Repeat: -1}
	ClipLeechJump   = components.AnimationClip{Name: "leech-jump", FrameCount: 3, FPS: 10, Repeat: 0}
	ClipLeechAttach = components.AnimationClip{Name: "leech-attach", FrameCount: 1, FPS: 1, Repeat: -1}
	ClipLeechDie    = components.AnimationClip{Name: "leech-die", FrameCount: 3, FPS: 8, Repeat: 0}

	ClipBossIdle   = components.AnimationClip{Name: "boss-idle", FrameCount: 4, FPS: 6, Repeat: -1}
	ClipBossJump   = components.AnimationClip{Name: "boss-jump", FrameCount: 3, FPS: 10, Repeat: 0}
	ClipBossAttach = components.AnimationClip{Name: "boss-attach", FrameCount: 1, FPS: 1, Repeat: -1}
	ClipBossDie    = components.AnimationClip{Name: "boss-die", FrameCount: 5, FPS: 6, Repeat: 0}

	ClipItemFloat   = components.AnimationClip{Name: "item-float", FrameCount: 4, FPS: 3, Repeat: -1}
	ClipItemCollect = components.AnimationClip{Name: "item-collect", FrameCount: 4, FPS: 12, Repeat: 0}
)

// EnemyClips 按敌人类型返回 idle/jump/attach/die 片段
func EnemyClips(kind components.EnemyKind) (idle, jump, attach, die components.AnimationClip) {
	if kind == components.EnemyBoss {
		return ClipBossIdle, ClipBossJump, ClipBossAttach, ClipBossDie
	}
	return ClipLeechIdle, ClipLeechJump, ClipLeechAttach, ClipLeechDie
}

// ClipDurationMs 非循环片段完整播放一次（含重复）所需时间
func ClipDurationMs(clip components.AnimationClip) float64 {
	if clip.Repeat < 0 || clip.FPS <= 0 {
		return 0
	}
	return float64(clip.FrameCount*(clip.Repeat+1)) / clip.FPS * 1000
}

// PlayClip 切换实体的动画片段（同名片段正在播放时不重置）
func PlayClip(anim *components.AnimationComponent, clip components.AnimationClip, restart bool) {
	if anim == nil {
		return
	}
	if !restart && anim.Clip.Name == clip.Name && !anim.IsFinished {
		return
	}
	anim.Clip = clip
	anim.CurrentFrame = 0
	anim.FrameCounter = 0
	anim.LoopsPlayed = 0
	anim.IsFinished = false
}
