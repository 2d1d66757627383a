// Package event 同步事件总线
//
// 游戏逻辑通过 Dispatcher 广播事件（受击、击杀、拾取、胜负等），
// 场景层订阅这些事件来播放音效、显示提示和切换场景，逻辑层本身不依赖渲染和音频。
package event

// EventType 事件类型
type EventType string

// Event 事件
type Event struct {
	Type EventType
	Data interface{} // 事件数据，具体类型由事件类型约定
}

// Listener 事件订阅者
type Listener interface {
	OnEvent(e Event)
}

// ListenerFunc 函数适配器
type ListenerFunc func(e Event)

// OnEvent 实现 Listener
func (f ListenerFunc) OnEvent(e Event) { f(e) }

// Subscription 订阅句柄，用于退订
type Subscription uint64

type subscriber struct {
	id       Subscription
	listener Listener
}

// Dispatcher 事件分发器
type Dispatcher struct {
	listeners map[EventType][]subscriber
	nextID    Subscription
}

// NewDispatcher 创建事件分发器
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		listeners: make(map[EventType][]subscriber),
	}
}

// Subscribe 订阅事件
func (d *Dispatcher) Subscribe(eventType EventType, listener Listener) Subscription {
	d.nextID++
	d.listeners[eventType] = append(d.listeners[eventType], subscriber{id: d.nextID, listener: listener})
	return d.nextID
}

// SubscribeFunc 以函数形式订阅事件
func (d *Dispatcher) SubscribeFunc(eventType EventType, fn func(e Event)) Subscription {
	return d.Subscribe(eventType, ListenerFunc(fn))
}

// Unsubscribe 退订
func (d *Dispatcher) Unsubscribe(sub Subscription) {
	for eventType, subs := range d.listeners {
		for i, s := range subs {
			if s.id == sub {
				d.listeners[eventType] = append(subs[:i:i], subs[i+1:]...)
				return
			}
		}
	}
}

// Dispatch 同步分发事件给所有订阅者（按订阅顺序）
func (d *Dispatcher) Dispatch(e Event) {
	subs := d.listeners[e.Type]
	if len(subs) == 0 {
		return
	}
	// 快照：回调中订阅/退订不影响本次分发
	snapshot := make([]subscriber, len(subs))
	copy(snapshot, subs)
	for _, s := range snapshot {
		s.listener.OnEvent(e)
	}
}

// Publish 便捷方法
func (d *Dispatcher) Publish(eventType EventType, data interface{}) {
	d.Dispatch(Event{Type: eventType, Data: data})
}
