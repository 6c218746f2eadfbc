package config

import "sync/atomic"

// Live 持有当前生效的配置。热加载时整体换指针，
// 读方 Load 拿到的永远是一份完整的快照，不会读到换到一半的配置。
type Live struct {
	ptr atomic.Pointer[Config]
}

func NewLive(cfg *Config) *Live {
	l := &Live{}
	l.ptr.Store(cfg)
	return l
}

func (l *Live) Load() *Config {
	return l.ptr.Load()
}

func (l *Live) Store(cfg *Config) {
	l.ptr.Store(cfg)
}
