package database

import (
	"sync"

	"github.com/rs/zerolog/log"
)

// RedisState 描述Redis在健康检查中的状态
type RedisState string

const (
	RedisDisabled RedisState = "disabled"
	RedisUp       RedisState = "up"
	RedisDown     RedisState = "down"
)

// Status 负责线程安全地管理和提供Redis的健康状态。
type Status struct {
	mu      sync.RWMutex
	enabled bool
	healthy bool
}

// NewStatus 创建状态管理器，启用时默认健康（启动时已Ping成功）
func NewStatus(enabled bool) *Status {
	return &Status{enabled: enabled, healthy: enabled}
}

// IsRedisHealthy 返回当前Redis的健康状态。
func (s *Status) IsRedisHealthy() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.enabled && s.healthy
}

// State 返回用于展示的状态
func (s *Status) State() RedisState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	switch {
	case !s.enabled:
		return RedisDisabled
	case s.healthy:
		return RedisUp
	default:
		return RedisDown
	}
}

// Update 用于线程安全地更新健康状态。
func (s *Status) Update(isHealthy bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.enabled {
		return
	}

	// 只有当状态发生变化时才打印日志
	if s.healthy != isHealthy {
		s.healthy = isHealthy
		if isHealthy {
			log.Info().Msg("健康检查: Redis服务状态已更新为 [可用]")
		} else {
			log.Warn().Msg("健康检查警告: Redis服务状态已更新为 [不可用]")
		}
	}
}
