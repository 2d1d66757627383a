package main

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
)

func newSimScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	return s
}

func TestPollEventsDelivers(t *testing.T) {
	screen := newSimScreen(t)
	defer screen.Fini()
	done := make(chan struct{})
	defer close(done)

	events, _ := pollEvents(screen, done, 4)
	screen.InjectKey(tcell.KeyRune, 'x', tcell.ModNone)

	select {
	case ev := <-events:
		key, ok := ev.(*tcell.EventKey)
		if !ok || key.Rune() != 'x' {
			t.Errorf("event = %#v, want key x", ev)
		}
	case <-time.After(time.Second):
		t.Fatal("no event delivered")
	}
}

// TestPollEventsStopsWhenUndrained 没人读取时关闭 done 也能退出
func TestPollEventsStopsWhenUndrained(t *testing.T) {
	screen := newSimScreen(t)
	done := make(chan struct{})

	_, stopped := pollEvents(screen, done, 0)
	screen.InjectKey(tcell.KeyRune, 'a', tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, 'b', tcell.ModNone)

	close(done)
	screen.Fini()

	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("poll goroutine did not exit")
	}
}
