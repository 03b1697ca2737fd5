package memory

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"image-enhancer/internal/logger"
	"image-enhancer/internal/opencv/safe"
)

// Manager accounts for the Mats that outlive a single call: the loaded source
// bitmap and the enhanced result. It refuses adoptions past maxMemory and
// reports anything still alive at shutdown.
type Manager struct {
	mu           sync.RWMutex
	logger       logger.Logger
	maxMemory    int64
	usedMemory   int64
	allocCount   int64
	deallocCount int64
	activeMats   map[uint64]*MatInfo
}

type MatInfo struct {
	ID        uint64
	Tag       string
	Size      int64
	Timestamp time.Time
}

const defaultMaxMemory = 2 * 1024 * 1024 * 1024

func NewManager(log logger.Logger) *Manager {
	return NewManagerWithLimit(log, defaultMaxMemory)
}

func NewManagerWithLimit(log logger.Logger, maxMemory int64) *Manager {
	return &Manager{
		logger:     log,
		maxMemory:  maxMemory,
		activeMats: make(map[uint64]*MatInfo),
	}
}

// Adopt starts tracking mat under tag. The Mat is closed and an error returned
// when it would exceed the memory limit.
func (m *Manager) Adopt(mat *safe.Mat, tag string) error {
	if err := safe.ValidateMatForOperation(mat, "Adopt"); err != nil {
		return err
	}

	size := mat.SizeBytes()

	m.mu.Lock()
	if m.usedMemory+size > m.maxMemory {
		used := m.usedMemory
		m.mu.Unlock()
		mat.Close()
		return fmt.Errorf("memory limit exceeded: would use %d bytes, limit is %d", used+size, m.maxMemory)
	}

	m.usedMemory += size
	m.allocCount++
	m.activeMats[mat.ID()] = &MatInfo{
		ID:        mat.ID(),
		Tag:       tag,
		Size:      size,
		Timestamp: time.Now(),
	}
	m.mu.Unlock()

	mat.Track(m, tag)
	return nil
}

// TrackDeallocation implements safe.MemoryTracker.
func (m *Manager) TrackDeallocation(id uint64, tag string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if info, exists := m.activeMats[id]; exists {
		delete(m.activeMats, id)
		m.usedMemory -= info.Size
	}
	m.deallocCount++
}

func (m *Manager) ReleaseMat(mat *safe.Mat, tag string) {
	if mat == nil {
		return
	}

	m.logger.Debug("MemoryManager", "releasing Mat", map[string]interface{}{
		"tag": tag,
		"id":  mat.ID(),
	})
	mat.Close()
}

func (m *Manager) GetUsedMemory() int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.usedMemory
}

func (m *Manager) GetStats() (allocCount, deallocCount int64, usedMemory int64) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.allocCount, m.deallocCount, m.usedMemory
}

func (m *Manager) GetActiveMatCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.activeMats)
}

func (m *Manager) Shutdown() {
	m.mu.RLock()
	leaked := make([]*MatInfo, 0, len(m.activeMats))
	for _, info := range m.activeMats {
		leaked = append(leaked, info)
	}
	m.mu.RUnlock()

	sort.Slice(leaked, func(i, j int) bool {
		return leaked[i].Timestamp.Before(leaked[j].Timestamp)
	})

	for _, info := range leaked {
		m.logger.Warning("MemoryManager", "unreleased Mat at shutdown", map[string]interface{}{
			"tag":  info.Tag,
			"size": info.Size,
			"age":  time.Since(info.Timestamp).String(),
		})
	}

	alloc, dealloc, used := m.GetStats()
	m.logger.Info("MemoryManager", "shutdown completed", map[string]interface{}{
		"allocations":   alloc,
		"deallocations": dealloc,
		"used_bytes":    used,
		"unreleased":    len(leaked),
	})
}
