// Package scheduler 提供基于游戏时钟的定时回调服务
//
// 所有延迟效果（跳跃冷却、附着自动脱离、道具效果到期、Boss 攻击循环、刷怪计时器）
// 都是调度器里的一个条目。时钟只在 Advance 时前进，因此暂停游戏即暂停所有计时器。
package scheduler

import (
	"container/heap"

	"github.com/decker502/forestleeches/pkg/ecs"
)

// Handle 定时器句柄，0 表示无效句柄
type Handle uint64

// NoOwner 不属于任何实体的定时器（例如场景级刷怪计时器）
const NoOwner = ecs.InvalidEntity

type timer struct {
	handle    Handle
	fireAt    float64 // 游戏时钟毫秒
	seq       uint64  // 同一时刻按注册顺序触发
	owner     ecs.EntityID
	fn        func()
	cancelled bool
	index     int
}

type timerQueue []*timer

func (q timerQueue) Len() int { return len(q) }
func (q timerQueue) Less(i, j int) bool {
	if q[i].fireAt == q[j].fireAt {
		return q[i].seq < q[j].seq
	}
	return q[i].fireAt < q[j].fireAt
}
func (q timerQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}
func (q *timerQueue) Push(x interface{}) {
	t := x.(*timer)
	t.index = len(*q)
	*q = append(*q, t)
}
func (q *timerQueue) Pop() interface{} {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*q = old[:n-1]
	return t
}

// Scheduler 最小堆定时器服务
// 非线程安全：只能在游戏主循环（Update）内使用
type Scheduler struct {
	now     float64
	seq     uint64
	next    Handle
	queue   timerQueue
	active  map[Handle]*timer
	byOwner map[ecs.EntityID]map[Handle]struct{}
}

// New 创建调度器，时钟从 0 开始
func New() *Scheduler {
	return &Scheduler{
		queue:   make(timerQueue, 0, 32),
		active:  make(map[Handle]*timer),
		byOwner: make(map[ecs.EntityID]map[Handle]struct{}),
	}
}

// Now 返回当前游戏时钟（毫秒）
func (s *Scheduler) Now() float64 {
	return s.now
}

// After 在 delayMs 毫秒后调用 fn
// 参数：
//   - delayMs: 延迟，负数按 0 处理
//   - owner: 所属实体，实体销毁时通过 CancelOwner 一并取消
//   - fn: 回调
//
// 返回：可用于 Cancel 的句柄
func (s *Scheduler) After(delayMs float64, owner ecs.EntityID, fn func()) Handle {
	if delayMs < 0 {
		delayMs = 0
	}
	s.next++
	s.seq++
	t := &timer{
		handle: s.next,
		fireAt: s.now + delayMs,
		seq:    s.seq,
		owner:  owner,
		fn:     fn,
	}
	heap.Push(&s.queue, t)
	s.active[t.handle] = t
	if owner != NoOwner {
		set, ok := s.byOwner[owner]
		if !ok {
			set = make(map[Handle]struct{})
			s.byOwner[owner] = set
		}
		set[t.handle] = struct{}{}
	}
	return t.handle
}

// Cancel 取消一个尚未触发的定时器，返回是否确实取消了
func (s *Scheduler) Cancel(h Handle) bool {
	t, ok := s.active[h]
	if !ok {
		return false
	}
	s.release(t)
	t.cancelled = true
	if t.index >= 0 {
		heap.Remove(&s.queue, t.index)
	}
	return true
}

// CancelOwner 取消某实体拥有的全部定时器，返回取消数量
func (s *Scheduler) CancelOwner(owner ecs.EntityID) int {
	set, ok := s.byOwner[owner]
	if !ok {
		return 0
	}
	handles := make([]Handle, 0, len(set))
	for h := range set {
		handles = append(handles, h)
	}
	n := 0
	for _, h := range handles {
		if s.Cancel(h) {
			n++
		}
	}
	return n
}

// CancelAll 清空所有定时器（时钟保持不变）
func (s *Scheduler) CancelAll() {
	for _, t := range s.queue {
		t.cancelled = true
	}
	s.queue = s.queue[:0]
	s.active = make(map[Handle]*timer)
	s.byOwner = make(map[ecs.EntityID]map[Handle]struct{})
}

// Pending 返回等待触发的定时器数量
func (s *Scheduler) Pending() int {
	return len(s.active)
}

// PendingFor 返回某实体拥有的等待触发的定时器数量
func (s *Scheduler) PendingFor(owner ecs.EntityID) int {
	return len(s.byOwner[owner])
}

// IsPending 检查句柄对应的定时器是否仍在等待
func (s *Scheduler) IsPending(h Handle) bool {
	_, ok := s.active[h]
	return ok
}

// Advance 推进时钟 dtMs 毫秒，按 (触发时间, 注册顺序) 依次执行到期回调
// 回调内注册的新定时器若在本次窗口内到期，也会在本次 Advance 中执行
// 返回：本次执行的回调数量
func (s *Scheduler) Advance(dtMs float64) int {
	if dtMs < 0 {
		dtMs = 0
	}
	target := s.now + dtMs
	fired := 0
	for s.queue.Len() > 0 {
		t := s.queue[0]
		if t.fireAt > target {
			break
		}
		heap.Pop(&s.queue)
		if t.cancelled {
			continue
		}
		s.release(t)
		// 回调观察到的时钟等于其触发时间
		if t.fireAt > s.now {
			s.now = t.fireAt
		}
		t.fn()
		fired++
	}
	s.now = target
	return fired
}

func (s *Scheduler) release(t *timer) {
	delete(s.active, t.handle)
	if t.owner == NoOwner {
		return
	}
	if set, ok := s.byOwner[t.owner]; ok {
		delete(set, t.handle)
		if len(set) == 0 {
			delete(s.byOwner, t.owner)
		}
	}
}
