package scenes

import (
	"image/color"
	"log"

	"github.com/decker502/forestleeches/pkg/components"
	"github.com/decker502/forestleeches/pkg/event"
	"github.com/decker502/forestleeches/pkg/game"
	"github.com/decker502/forestleeches/pkg/gameplay"
	"github.com/decker502/forestleeches/pkg/render"
	"github.com/decker502/forestleeches/pkg/sfx"
	"github.com/decker502/forestleeches/pkg/systems"
)

const (
	difficultyNotice = "DIFFICULTY INCREASED!"
	bossNotice       = "THE LEECH KING APPEARS!"
)

// subscribe 订阅会话事件：音效、提示、场景切换
func (s *GameScene) subscribe() {
	on := func(t event.EventType, fn func(event.Event)) {
		s.subs = append(s.subs, s.session.Events().SubscribeFunc(t, fn))
	}
	sound := func(id sfx.SoundID) func(event.Event) {
		return func(event.Event) { s.svc.Audio.PlaySound(id) }
	}

	on(systems.EventPlayerJumped, sound(sfx.SoundJump))
	on(systems.EventPlayerAttacked, sound(sfx.SoundAttack))
	on(systems.EventPlayerHit, sound(sfx.SoundHit))
	on(systems.EventSaltBurst, sound(sfx.SoundExplosion))
	on(systems.EventEnemyDied, s.onEnemyDied)
	on(systems.EventItemCollected, s.onItemCollected)
	on(systems.EventBossSpawned, func(event.Event) {
		s.notes.Push(bossNotice, render.ColorDanger)
	})

	on(gameplay.EventDifficultyIncreased, func(e event.Event) {
		s.notes.Push(difficultyNotice, nil)
		if d, ok := e.Data.(gameplay.DifficultyEvent); ok {
			log.Printf("[GameScene] difficulty level %d", d.Level)
		}
	})
	on(gameplay.EventGameOver, func(event.Event) { s.onRunEnded(sfx.SoundGameOver) })
	on(gameplay.EventVictory, func(event.Event) { s.onRunEnded(sfx.SoundVictory) })
	on(gameplay.EventRunFinished, s.onRunFinished)
}

func (s *GameScene) onEnemyDied(e event.Event) {
	died, ok := e.Data.(systems.EnemyDiedEvent)
	if !ok || died.Cause != components.DeathKilled {
		return
	}
	if died.Kind == components.EnemyBoss {
		s.svc.Audio.PlaySound(sfx.SoundExplosion)
		return
	}
	s.svc.Audio.PlaySound(sfx.SoundHit)
}

func (s *GameScene) onItemCollected(e event.Event) {
	item, ok := e.Data.(systems.ItemEvent)
	if !ok {
		return
	}
	s.svc.Audio.PlaySound(itemSound(item.Kind))
	if item.Text != "" {
		s.notes.Push(item.Text, itemNoteColor(item.Kind))
	}
}

// onRunEnded 停止背景音乐，播放结算音效
func (s *GameScene) onRunEnded(jingle sfx.SoundID) {
	s.ending = true
	s.svc.Audio.StopMusic()
	s.svc.Audio.PlaySound(jingle)
}

// onRunFinished 结束延迟已过，切换到结算画面
func (s *GameScene) onRunFinished(e event.Event) {
	result, ok := e.Data.(gameplay.RunResult)
	if !ok {
		result = s.session.Result()
	}
	s.svc.Scenes.Request(resultSceneID(result), result)
}

func resultSceneID(result gameplay.RunResult) game.SceneID {
	if result.Victory {
		return game.SceneVictory
	}
	return game.SceneGameOver
}

func itemSound(kind components.ItemKind) sfx.SoundID {
	if kind == components.ItemSalt {
		return sfx.SoundPickup
	}
	return sfx.SoundPowerup
}

func itemNoteColor(kind components.ItemKind) color.Color {
	switch kind {
	case components.ItemCharm:
		return render.ColorHighlight
	case components.ItemSalt:
		return render.ColorText
	}
	return render.ColorHealthFill
}

// hudState 从会话读取 HUD 数据
func hudState(session *gameplay.Session) render.HUDState {
	hp, maxHP := session.PlayerSys.Health(session.Player)
	hud := render.HUDState{
		Score:      session.State.Score,
		Distance:   session.State.Distance,
		Goal:       session.Config().Rules.VictoryDistance,
		Health:     hp,
		MaxHealth:  maxHP,
		Level:      session.State.Level,
		Invincible: session.PlayerSys.IsInvincible(session.Player),
	}
	if boss, ok := session.Boss(); ok {
		if cur, maxBoss, alive := session.EnemySys.Health(boss); alive {
			hud.HasBoss = true
			hud.BossHealth = cur
			hud.BossMaxHealth = maxBoss
		}
	}
	return hud
}

// endingCaption 会话结束后、切换前显示的字幕
func endingCaption(status gameplay.Status) (string, color.Color) {
	switch status {
	case gameplay.StatusGameOver:
		return "GAME OVER", render.ColorDanger
	case gameplay.StatusVictory:
		return "VICTORY!", render.ColorHighlight
	}
	return "", nil
}
