package scheduler

import (
	"testing"

	"github.com/decker502/forestleeches/pkg/ecs"
)

func TestAdvanceFiresInOrder(t *testing.T) {
	s := New()
	var order []int

	s.After(300, NoOwner, func() { order = append(order, 3) })
	s.After(100, NoOwner, func() { order = append(order, 1) })
	s.After(100, NoOwner, func() { order = append(order, 2) }) // 同一时刻按注册顺序

	if n := s.Advance(99); n != 0 {
		t.Fatalf("nothing should fire before 100ms, fired %d", n)
	}
	if n := s.Advance(1); n != 2 {
		t.Fatalf("expected 2 timers at 100ms, fired %d", n)
	}
	s.Advance(500)

	want := []int{1, 2, 3}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
	if s.Now() != 600 {
		t.Errorf("Now() = %v, want 600", s.Now())
	}
}

func TestCallbackSeesFireTime(t *testing.T) {
	s := New()
	var seen float64
	s.After(250, NoOwner, func() { seen = s.Now() })
	s.Advance(1000)
	if seen != 250 {
		t.Errorf("callback saw Now()=%v, want 250", seen)
	}
}

func TestRescheduleWithinWindow(t *testing.T) {
	s := New()
	count := 0
	var tick func()
	tick = func() {
		count++
		s.After(100, NoOwner, tick)
	}
	s.After(100, NoOwner, tick)

	s.Advance(350)
	if count != 3 {
		t.Errorf("expected 3 ticks in 350ms, got %d", count)
	}
}

func TestCancel(t *testing.T) {
	s := New()
	fired := false
	h := s.After(50, NoOwner, func() { fired = true })

	if !s.IsPending(h) {
		t.Fatal("timer should be pending")
	}
	if !s.Cancel(h) {
		t.Fatal("first cancel should succeed")
	}
	if s.Cancel(h) {
		t.Error("second cancel should report false")
	}
	s.Advance(100)
	if fired {
		t.Error("cancelled timer fired")
	}
	if s.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0", s.Pending())
	}
}

func TestCancelOwner(t *testing.T) {
	s := New()
	owner := ecs.EntityID(7)
	other := ecs.EntityID(8)
	fired := map[string]bool{}

	s.After(10, owner, func() { fired["a"] = true })
	s.After(20, owner, func() { fired["b"] = true })
	s.After(30, other, func() { fired["c"] = true })

	if n := s.CancelOwner(owner); n != 2 {
		t.Fatalf("CancelOwner cancelled %d, want 2", n)
	}
	if s.PendingFor(owner) != 0 {
		t.Error("owner should have no pending timers")
	}
	s.Advance(100)
	if fired["a"] || fired["b"] {
		t.Error("owner timers should not fire")
	}
	if !fired["c"] {
		t.Error("other owner's timer should fire")
	}
}

func TestCancelAll(t *testing.T) {
	s := New()
	fired := false
	s.After(10, NoOwner, func() { fired = true })
	s.After(10, ecs.EntityID(3), func() { fired = true })
	s.CancelAll()
	s.Advance(100)
	if fired || s.Pending() != 0 {
		t.Error("CancelAll should drop every timer")
	}
}

func TestNegativeDelay(t *testing.T) {
	s := New()
	fired := false
	s.After(-5, NoOwner, func() { fired = true })
	s.Advance(0)
	if !fired {
		t.Error("negative delay should fire on the next Advance")
	}
}
