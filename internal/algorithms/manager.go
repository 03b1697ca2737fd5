package algorithms

import (
	"fmt"
	"sync"

	"image-enhancer/internal/algorithms/equalization"
	"image-enhancer/internal/algorithms/fuzzy"
	"image-enhancer/internal/config"
	"image-enhancer/internal/opencv/safe"
)

// Algorithm is a bitmap-to-bitmap transform. Implementations return a new Mat
// of the input's dimensions and never modify the input.
type Algorithm interface {
	Process(input *safe.Mat) (*safe.Mat, error)
	GetName() string
}

type Manager struct {
	algorithms map[string]Algorithm
	order      []string
	mu         sync.RWMutex
}

func NewManager(cfg *config.Config) *Manager {
	manager := &Manager{
		algorithms: make(map[string]Algorithm),
	}

	manager.register(equalization.NewProcessor())
	manager.register(fuzzy.NewProcessor(cfg))

	return manager
}

func (m *Manager) register(algorithm Algorithm) {
	m.algorithms[algorithm.GetName()] = algorithm
	m.order = append(m.order, algorithm.GetName())
}

func (m *Manager) GetAlgorithm(name string) (Algorithm, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if algorithm, exists := m.algorithms[name]; exists {
		return algorithm, nil
	}

	return nil, fmt.Errorf("unknown algorithm: %s", name)
}

// GetAvailableAlgorithms lists algorithm names in registration order, which is
// the order offered to the user.
func (m *Manager) GetAvailableAlgorithms() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, len(m.order))
	copy(names, m.order)
	return names
}
