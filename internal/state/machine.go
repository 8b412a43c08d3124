package state

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/looplab/fsm"
)

// 目录加载状态
const (
	StateIdle    = "idle"
	StateLoading = "loading"
	StateReady   = "ready"
	StateFailed  = "failed"
)

// 事件常量
const (
	EventStartLoad = "start_load"
	EventLoaded    = "loaded"
	EventFail      = "fail"
)

// LoadStatus 加载状态快照
type LoadStatus struct {
	State string    `json:"state"`
	Since time.Time `json:"since"`
	Error string    `json:"error,omitempty"`
}

// Machine 目录加载状态机
// ready 和 failed 都是终态：集合只加载一次，失败不重试
type Machine struct {
	mu            sync.RWMutex
	fsm           *fsm.FSM
	since         time.Time
	lastErr       error
	onStateChange func(from, to string)
}

// NewMachine 创建状态机
func NewMachine(onStateChange func(from, to string)) *Machine {
	m := &Machine{
		since:         time.Now(),
		onStateChange: onStateChange,
	}

	m.fsm = fsm.NewFSM(
		StateIdle,
		fsm.Events{
			{Name: EventStartLoad, Src: []string{StateIdle}, Dst: StateLoading},
			{Name: EventLoaded, Src: []string{StateLoading}, Dst: StateReady},
			{Name: EventFail, Src: []string{StateLoading}, Dst: StateFailed},
		},
		fsm.Callbacks{
			"after_event": func(ctx context.Context, e *fsm.Event) {
				if m.onStateChange != nil && e.Src != e.Dst {
					m.onStateChange(e.Src, e.Dst)
				}
			},
		},
	)

	return m
}

// Current 当前状态
func (m *Machine) Current() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.fsm.Current()
}

// Status 状态快照
func (m *Machine) Status() LoadStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s := LoadStatus{
		State: m.fsm.Current(),
		Since: m.since,
	}
	if m.lastErr != nil {
		s.Error = m.lastErr.Error()
	}
	return s
}

// Err 加载失败原因，未失败时为 nil
func (m *Machine) Err() error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastErr
}

// StartLoad idle -> loading
func (m *Machine) StartLoad() error {
	return m.trigger(EventStartLoad, nil)
}

// MarkLoaded loading -> ready
func (m *Machine) MarkLoaded() error {
	return m.trigger(EventLoaded, nil)
}

// MarkFailed loading -> failed，记录失败原因
func (m *Machine) MarkFailed(cause error) error {
	return m.trigger(EventFail, cause)
}

func (m *Machine) trigger(event string, cause error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.fsm.Event(context.Background(), event); err != nil {
		return fmt.Errorf("trigger event %s: %w", event, err)
	}

	m.since = time.Now()
	if cause != nil {
		m.lastErr = cause
	}
	return nil
}

// CanTransition 检查是否可以转换
func (m *Machine) CanTransition(event string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.fsm.Can(event)
}
