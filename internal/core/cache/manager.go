package cache

import (
	"context"
	"sync"
	"time"

	"meal-plan-generator/internal/infrastructure/config"
	"meal-plan-generator/internal/pkg/common"

	"go.uber.org/zap"
)

// Manager 記憶體快取，支援 TTL 與最少使用淘汰
type Manager struct {
	maxSize int
	ttl     time.Duration
	now     func() time.Time

	mu    sync.Mutex
	store map[string]cacheEntry
	stats Stats

	stop     chan struct{}
	stopOnce sync.Once
}

// cacheEntry 緩存條目
type cacheEntry struct {
	value       []byte
	expiresAt   time.Time
	createdAt   time.Time
	lastAccess  time.Time
	accessCount int
}

// Stats 緩存統計
type Stats struct {
	Size      int     `json:"size"`
	MaxSize   int     `json:"max_size"`
	Hits      int64   `json:"hits"`
	Misses    int64   `json:"misses"`
	Evictions int64   `json:"evictions"`
	Errors    int64   `json:"errors"`
	HitRatio  float64 `json:"hit_ratio"`
}

// NewManager 創建記憶體緩存；CleanupInterval > 0 時啟動背景清理
func NewManager(cfg *config.CacheConfig) *Manager {
	m := &Manager{
		maxSize: cfg.MaxSize,
		ttl:     cfg.TTL,
		now:     time.Now,
		store:   make(map[string]cacheEntry),
		stop:    make(chan struct{}),
	}

	if cfg.CleanupInterval > 0 {
		go m.startCleanup(cfg.CleanupInterval)
	}

	common.LogInfo("Cache manager initialized",
		zap.Int("max_size", cfg.MaxSize),
		zap.Duration("ttl", cfg.TTL),
		zap.Duration("cleanup_interval", cfg.CleanupInterval),
	)

	return m
}

// Get 獲取緩存值
func (m *Manager) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.store[key]
	if !exists {
		m.stats.Misses++
		common.LogCacheMiss("memory", key)
		return nil, common.ErrCacheMiss
	}

	now := m.now()
	if now.After(entry.expiresAt) {
		delete(m.store, key)
		m.stats.Evictions++
		m.stats.Misses++
		common.LogDebug("Cache entry expired", zap.String("key", key))
		return nil, common.ErrCacheMiss
	}

	entry.lastAccess = now
	entry.accessCount++
	m.store[key] = entry
	m.stats.Hits++

	common.LogCacheHit("memory", key)
	return entry.value, nil
}

// Set 設置緩存值
func (m *Manager) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.store[key]; !exists && len(m.store) >= m.maxSize {
		// 先清理過期項目，仍然已滿時淘汰最少使用的項目
		evicted := m.cleanupLocked()
		if len(m.store) >= m.maxSize {
			m.evictLRU()
		}
		if len(m.store) >= m.maxSize {
			m.stats.Errors++
			common.LogWarn("Cache full", zap.Int("size", len(m.store)))
			return common.ErrCacheFull
		}
		common.LogDebug("Cache cleanup executed", zap.Int("evicted", evicted))
	}

	now := m.now()
	m.store[key] = cacheEntry{
		value:      append([]byte(nil), value...),
		expiresAt:  now.Add(m.ttl),
		createdAt:  now,
		lastAccess: now,
	}

	common.LogDebug("Cache entry stored", zap.String("key", key))
	return nil
}

// startCleanup 定期清理過期緩存
func (m *Manager) startCleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.Cleanup()
		case <-m.stop:
			return
		}
	}
}

// Cleanup 清理過期的緩存，回傳清理數量
func (m *Manager) Cleanup() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cleanupLocked()
}

func (m *Manager) cleanupLocked() int {
	now := m.now()
	count := 0

	for key, entry := range m.store {
		if now.After(entry.expiresAt) {
			delete(m.store, key)
			count++
			m.stats.Evictions++
		}
	}

	if count > 0 {
		common.LogInfo("Cleaned up expired cache entries",
			zap.Int("count", count),
			zap.Int64("total_evictions", m.stats.Evictions),
			zap.Int("remaining_size", len(m.store)),
		)
	}

	return count
}

// evictLRU 淘汰訪問次數最少、最久未訪問的項目
func (m *Manager) evictLRU() {
	var oldestKey string
	var oldestAccess time.Time
	var lowestAccessCount int

	for key, entry := range m.store {
		if oldestKey == "" ||
			entry.accessCount < lowestAccessCount ||
			(entry.accessCount == lowestAccessCount && entry.lastAccess.Before(oldestAccess)) {
			oldestKey = key
			oldestAccess = entry.lastAccess
			lowestAccessCount = entry.accessCount
		}
	}

	if oldestKey != "" {
		delete(m.store, oldestKey)
		m.stats.Evictions++
		common.LogDebug("Cache entry evicted (LRU)", zap.String("key", oldestKey))
	}
}

// Stats 獲取緩存統計信息
func (m *Manager) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.stats
	s.Size = len(m.store)
	s.MaxSize = m.maxSize
	if total := s.Hits + s.Misses; total > 0 {
		s.HitRatio = float64(s.Hits) / float64(total)
	}
	return s
}

// Close 停止背景清理並清空緩存
func (m *Manager) Close() error {
	m.stopOnce.Do(func() { close(m.stop) })

	m.mu.Lock()
	defer m.mu.Unlock()

	m.store = make(map[string]cacheEntry)
	common.LogInfo("Cache manager closed",
		zap.Int64("hits", m.stats.Hits),
		zap.Int64("misses", m.stats.Misses),
		zap.Int64("evictions", m.stats.Evictions),
	)
	return nil
}
