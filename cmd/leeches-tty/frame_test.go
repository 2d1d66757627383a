package main

import (
	"strings"
	"testing"

	"github.com/decker502/forestleeches/pkg/components"
	"github.com/decker502/forestleeches/pkg/config"
	"github.com/decker502/forestleeches/pkg/gameplay"
)

func newTestSession(t *testing.T) *gameplay.Session {
	t.Helper()
	s, err := gameplay.NewSession(config.DefaultGameConfig(), 7)
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	return s
}

func findRune(f *frame, ch rune) (int, int, bool) {
	for y := 0; y < f.h; y++ {
		for x := 0; x < f.w; x++ {
			if f.at(x, y).ch == ch {
				return x, y, true
			}
		}
	}
	return 0, 0, false
}

func TestProjectionCell(t *testing.T) {
	cam := &components.CameraComponent{X: 100, Y: 300}
	// 400 列、225 行世界区域：一格一像素
	p := newProjection(cam, 400, 225+hudRows+footerRows)

	x, y := p.cell(150, 310)
	if x != 50 || y != 11 {
		t.Errorf("cell(150, 310) = (%d, %d), want (50, 11)", x, y)
	}

	x, y = p.cell(99, 300)
	if x != -1 || y != 1 {
		t.Errorf("cell(99, 300) = (%d, %d), want (-1, 1)", x, y)
	}
}

func TestProjectionIgnoresShake(t *testing.T) {
	cam := &components.CameraComponent{X: 105, Y: 300, ShakeOffsetX: 5}
	p := newProjection(cam, 400, 227)
	if x, _ := p.cell(100, 300); x != 0 {
		t.Errorf("shake offset should be removed, got column %d", x)
	}
}

func TestHealthBar(t *testing.T) {
	tests := []struct {
		current, max int
		filled       int
	}{
		{100, 100, 10},
		{50, 100, 5},
		{1, 100, 1},
		{0, 100, 0},
		{-5, 100, 0},
		{10, 0, 0},
	}
	for _, tt := range tests {
		got := strings.Count(healthBar(tt.current, tt.max), "█")
		if got != tt.filled {
			t.Errorf("healthBar(%d, %d) filled = %d, want %d", tt.current, tt.max, got, tt.filled)
		}
		if n := len([]rune(healthBar(tt.current, tt.max))); n != barCells {
			t.Errorf("healthBar(%d, %d) width = %d, want %d", tt.current, tt.max, n, barCells)
		}
	}
}

func TestComposeFrameRunning(t *testing.T) {
	s := newTestSession(t)
	s.Update(components.InputState{}, 1.0/60)

	f := composeFrame(s, 80, 24, "")

	hud := f.row(0)
	if !strings.HasPrefix(hud, "SCORE 0") {
		t.Errorf("HUD row = %q, want SCORE prefix", hud)
	}
	if !strings.Contains(hud, "100/100") {
		t.Errorf("HUD row = %q, want full health", hud)
	}
	if _, y, ok := findRune(f, '@'); !ok {
		t.Error("player glyph not drawn")
	} else if y <= 0 || y >= f.h-1 {
		t.Errorf("player drawn on row %d, want inside the world area", y)
	}
	if !strings.Contains(f.row(f.h-1), "attack") {
		t.Errorf("footer = %q, want controls help", f.row(f.h-1))
	}
}

func TestComposeFrameNoticeReplacesHelp(t *testing.T) {
	s := newTestSession(t)
	f := composeFrame(s, 80, 24, "DIFFICULTY INCREASED!")
	if !strings.Contains(f.row(f.h-1), "DIFFICULTY INCREASED!") {
		t.Errorf("footer = %q, want notice", f.row(f.h-1))
	}
}

func TestComposeFramePausedAndFinished(t *testing.T) {
	s := newTestSession(t)
	s.TogglePause()
	f := composeFrame(s, 80, 24, "")
	if !strings.Contains(f.row(12), "PAUSED") {
		t.Errorf("middle row = %q, want PAUSED", f.row(12))
	}
	s.TogglePause()

	if !s.GameOver() {
		t.Fatal("GameOver should succeed on a running session")
	}
	for i := 0; i < 150 && !s.Finished(); i++ {
		s.Update(components.InputState{}, 1.0/60)
	}
	if !s.Finished() {
		t.Fatal("run should finish after the end delay")
	}

	f = composeFrame(s, 80, 24, "")
	if !strings.Contains(f.row(f.h-1), "r: retry") {
		t.Errorf("footer = %q, want retry hint", f.row(f.h-1))
	}
	var found bool
	for y := 0; y < f.h; y++ {
		if strings.Contains(f.row(y), "GAME OVER") {
			found = true
		}
	}
	if !found {
		t.Error("result title not drawn")
	}
}

func TestComposeFrameTinyTerminal(t *testing.T) {
	s := newTestSession(t)
	f := composeFrame(s, 10, 2, "")
	if f.w != 10 || f.h != 2 {
		t.Errorf("frame size = %dx%d, want 10x2", f.w, f.h)
	}
}
