package scenes

import (
	"testing"

	"github.com/decker502/forestleeches/pkg/components"
	"github.com/decker502/forestleeches/pkg/config"
	"github.com/decker502/forestleeches/pkg/game"
	"github.com/decker502/forestleeches/pkg/gameplay"
	"github.com/decker502/forestleeches/pkg/render"
	"github.com/decker502/forestleeches/pkg/systems"
	"github.com/decker502/forestleeches/pkg/utils"
)

type sceneRequest struct {
	id     game.SceneID
	result game.RunResult
}

// newTestServices 没有音频的依赖集合，场景工厂只记录请求
func newTestServices(t *testing.T) (*Services, *[]sceneRequest) {
	t.Helper()
	requests := &[]sceneRequest{}
	sm := game.NewSceneManager()
	sm.SetSceneFactory(func(id game.SceneID, result game.RunResult) (game.Scene, error) {
		*requests = append(*requests, sceneRequest{id, result})
		return nil, nil
	})
	return &Services{
		Scenes:   sm,
		Fonts:    render.NewFonts(),
		Config:   config.DefaultGameConfig(),
		Bindings: utils.DefaultKeyBindings,
		Seed:     7,
	}, requests
}

func newTestGameScene(t *testing.T) (*GameScene, *Services, *[]sceneRequest) {
	t.Helper()
	svc, requests := newTestServices(t)
	s, err := NewGameScene(svc)
	if err != nil {
		t.Fatalf("NewGameScene failed: %v", err)
	}
	return s, svc, requests
}

func TestBlinkOn(t *testing.T) {
	tests := []struct {
		elapsed float64
		want    bool
	}{
		{0, true},
		{799, true},
		{800, false},
		{1599, false},
		{1600, true},
	}
	for _, tt := range tests {
		if got := blinkOn(tt.elapsed, 800); got != tt.want {
			t.Errorf("blinkOn(%v) = %v, want %v", tt.elapsed, got, tt.want)
		}
	}
	if !blinkOn(123, 0) {
		t.Error("zero period should always be visible")
	}
}

func TestResultLines(t *testing.T) {
	lost := resultLines(game.RunResult{Score: 120, Distance: 345, Time: 61, LeechesDefeated: 9})
	want := []string{"SCORE: 120", "DISTANCE: 345m", "TIME: 61s"}
	if len(lost) != len(want) {
		t.Fatalf("game over lines = %v", lost)
	}
	for i := range want {
		if lost[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lost[i], want[i])
		}
	}

	won := resultLines(game.RunResult{Score: 900, Distance: 1000, Time: 200, LeechesDefeated: 31, ItemsCollected: 4, Victory: true})
	if len(won) != 5 || won[3] != "LEECHES DEFEATED: 31" || won[4] != "ITEMS COLLECTED: 4" {
		t.Errorf("victory lines = %v", won)
	}
}

func TestResultLineSlideIn(t *testing.T) {
	tests := []struct {
		name    string
		elapsed float64
		line    int
		want    float64
	}{
		{"first line starts below", 0, 0, resultSlideDistance},
		{"first line settled", resultSlideMs, 0, 0},
		{"second line waits for stagger", resultSlideStagger, 1, resultSlideDistance},
		{"late line settled", 10000, 4, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := lineOffset(tt.elapsed, tt.line); got != tt.want {
				t.Errorf("lineOffset(%v, %d) = %v, want %v", tt.elapsed, tt.line, got, tt.want)
			}
		})
	}

	mid := lineOffset(resultSlideMs/2, 0)
	if mid <= 0 || mid >= resultSlideDistance/2 {
		t.Errorf("halfway offset = %v, want ease-out (less than half the distance left)", mid)
	}
}

func TestResultSceneID(t *testing.T) {
	if got := resultSceneID(gameplay.RunResult{}); got != game.SceneGameOver {
		t.Errorf("defeat -> %s, want gameover", got)
	}
	if got := resultSceneID(gameplay.RunResult{Victory: true}); got != game.SceneVictory {
		t.Errorf("victory -> %s, want victory", got)
	}
}

// TestGameSceneNotifications 难度提升和道具效果显示为提示
func TestGameSceneNotifications(t *testing.T) {
	s, _, _ := newTestGameScene(t)
	events := s.session.Events()

	events.Publish(gameplay.EventDifficultyIncreased, gameplay.DifficultyEvent{Level: 1})
	events.Publish(systems.EventItemCollected, systems.ItemEvent{Kind: components.ItemCharm, Text: "INVINCIBILITY!"})
	events.Publish(systems.EventItemCollected, systems.ItemEvent{Kind: components.ItemSalt})

	got := s.notes.Texts()
	if len(got) != 2 || got[0] != difficultyNotice || got[1] != "INVINCIBILITY!" {
		t.Errorf("notifications = %v", got)
	}

	s.Dispose()
	events.Publish(gameplay.EventDifficultyIncreased, gameplay.DifficultyEvent{Level: 2})
	if s.notes.Len() != 2 {
		t.Error("disposed scene should no longer receive events")
	}
}

// TestGameSceneRequestsResultScene 结束延迟过后请求结算画面并带上结算数据
func TestGameSceneRequestsResultScene(t *testing.T) {
	s, svc, requests := newTestGameScene(t)
	s.session.State.AddScore(55)

	if !s.session.GameOver() {
		t.Fatal("GameOver should succeed on a running session")
	}
	if !s.ending {
		t.Error("scene should enter the ending state")
	}

	for i := 0; i < 150 && !s.session.Finished(); i++ {
		s.session.Update(components.InputState{}, 1.0/60)
	}
	if !s.session.Finished() {
		t.Fatal("session did not finish after the end delay")
	}
	if err := svc.Scenes.Update(0); err != nil {
		t.Fatalf("SceneManager.Update failed: %v", err)
	}

	if len(*requests) != 1 {
		t.Fatalf("requests = %v, want exactly one", *requests)
	}
	req := (*requests)[0]
	if req.id != game.SceneGameOver || req.result.Score != 55 || req.result.Victory {
		t.Errorf("request = %+v", req)
	}
}

func TestHUDState(t *testing.T) {
	s, svc, _ := newTestGameScene(t)
	hud := hudState(s.session)

	if hud.Health != svc.Config.Player.MaxHealth || hud.MaxHealth != svc.Config.Player.MaxHealth {
		t.Errorf("health = %d/%d", hud.Health, hud.MaxHealth)
	}
	if hud.Goal != svc.Config.Rules.VictoryDistance {
		t.Errorf("goal = %v", hud.Goal)
	}
	if hud.HasBoss || hud.Score != 0 || hud.Level != 0 {
		t.Errorf("fresh run HUD = %+v", hud)
	}
}

func TestEndingCaption(t *testing.T) {
	if c, _ := endingCaption(gameplay.StatusRunning); c != "" {
		t.Errorf("running caption = %q", c)
	}
	if c, _ := endingCaption(gameplay.StatusGameOver); c != "GAME OVER" {
		t.Errorf("game over caption = %q", c)
	}
	if c, _ := endingCaption(gameplay.StatusVictory); c != "VICTORY!" {
		t.Errorf("victory caption = %q", c)
	}
}
