package store

import (
	"slices"
	"sync"
)

// Reducer 纯函数：(旧状态, Action) -> 新状态。
// 实现必须 copy-on-write，不能修改传入状态里共享的切片或 map。
type Reducer[S any] func(S, Action) S

// Observer 在 reducer 之后、同一次 Dispatch 内执行，可以继续改写状态。
// Observer 内不能再调用 Dispatch。
type Observer[S any] func(S, Action) S

// Listener 状态提交之后的通知，只读
type Listener[S any] func(S, Action)

// Dispatcher 只暴露派发能力，给异步操作使用
type Dispatcher interface {
	Dispatch(a Action)
}

// Store 单写者状态容器，Dispatch 之间串行执行
type Store[S any] struct {
	mu        sync.Mutex
	state     S
	reducer   Reducer[S]
	observers []Observer[S]

	listenerMu sync.RWMutex
	listeners  []subscription[S]
	nextID     int
}

type subscription[S any] struct {
	id int
	fn Listener[S]
}

func New[S any](initial S, reducer Reducer[S], observers ...Observer[S]) *Store[S] {
	return &Store[S]{
		state:     initial,
		reducer:   reducer,
		observers: observers,
	}
}

// Dispatch 执行 reducer 和所有 observer，然后按订阅顺序通知 listener。
// 通知在释放锁之后进行：不同 goroutine 同时 Dispatch 时，listener 收到通知的先后
// 不保证与状态提交的先后一致。
func (s *Store[S]) Dispatch(a Action) {
	s.mu.Lock()
	next := s.reducer(s.state, a)
	for _, observe := range s.observers {
		next = observe(next, a)
	}
	s.state = next
	s.mu.Unlock()

	// 先拷贝再调用，listener 里可以再次 Dispatch 或 Subscribe
	s.listenerMu.RLock()
	listeners := make([]subscription[S], len(s.listeners))
	copy(listeners, s.listeners)
	s.listenerMu.RUnlock()

	for _, l := range listeners {
		l.fn(next, a)
	}
}

// GetState 返回当前状态快照，调用方只能读
func (s *Store[S]) GetState() S {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe 注册 listener，返回取消函数
func (s *Store[S]) Subscribe(l Listener[S]) (unsubscribe func()) {
	s.listenerMu.Lock()
	defer s.listenerMu.Unlock()
	id := s.nextID
	s.nextID++
	s.listeners = append(s.listeners, subscription[S]{id: id, fn: l})
	return func() {
		s.listenerMu.Lock()
		defer s.listenerMu.Unlock()
		s.listeners = slices.DeleteFunc(slices.Clone(s.listeners), func(sub subscription[S]) bool {
			return sub.id == id
		})
	}
}

// Combine 依次执行多个 reducer
func Combine[S any](reducers ...Reducer[S]) Reducer[S] {
	return func(state S, a Action) S {
		for _, r := range reducers {
			state = r(state, a)
		}
		return state
	}
}

// Fanout 把同一个 Action 依次派发给多个 Dispatcher
type Fanout []Dispatcher

func (f Fanout) Dispatch(a Action) {
	for _, d := range f {
		d.Dispatch(a)
	}
}
