package lifecycle

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Manager 由上层（shutdown）持有，向各个后台服务分发句柄并等待它们退出。
type Manager struct {
	name     string
	wg       sync.WaitGroup
	mu       sync.Mutex
	services map[string]bool

	ctx    context.Context
	cancel context.CancelFunc
}

// NewManager 创建一个生命周期管理器，name 只用于日志
func NewManager(name string) *Manager {
	m := &Manager{
		name:     name,
		services: make(map[string]bool),
	}
	m.ctx, m.cancel = context.WithCancel(context.Background())
	return m
}

// NewServiceHandle 为一个服务注册句柄，同名服务不能重复注册
func (m *Manager) NewServiceHandle(service string) (*Handle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.services[service] {
		return nil, fmt.Errorf("生命周期管理器 %s: 服务 '%s' 已被注册", m.name, service)
	}
	m.services[service] = true
	m.wg.Add(1)
	log.Debug().Str("manager", m.name).Str("service", service).Msg("服务已注册")

	return &Handle{
		ctx: m.ctx,
		Close: func() {
			m.mu.Lock()
			defer m.mu.Unlock()
			if !m.services[service] {
				return
			}
			delete(m.services, service)
			m.wg.Done()
		},
	}, nil
}

// Shutdown 广播停机信号，可以重复调用
func (m *Manager) Shutdown() {
	log.Info().Str("manager", m.name).Msg("生命周期管理器: 广播停机信号")
	m.cancel()
}

// WaitWithTimeout 等待所有已注册的服务退出，超时则返回仍在运行的服务名
func (m *Manager) WaitWithTimeout(timeout time.Duration) []string {
	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-done:
		return nil
	case <-timer.C:
		m.mu.Lock()
		defer m.mu.Unlock()
		remaining := make([]string, 0, len(m.services))
		for name := range m.services {
			remaining = append(remaining, name)
		}
		sort.Strings(remaining)
		return remaining
	}
}
