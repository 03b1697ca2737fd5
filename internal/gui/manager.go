package gui

import (
	"image-enhancer/internal/logger"
	"image-enhancer/internal/pipeline"

	"fyne.io/fyne/v2"
)

// Manager owns the MVC pair for the main window.
type Manager struct {
	window     fyne.Window
	controller *Controller
	view       *View
	logger     logger.Logger
	isShutdown bool
}

func NewManager(window fyne.Window, coordinator pipeline.ProcessingCoordinator, log logger.Logger) *Manager {
	manager := &Manager{
		window: window,
		logger: log,
	}

	manager.view = NewView(window)
	manager.controller = NewController(coordinator, log)
	manager.view.SetController(manager.controller)
	manager.controller.SetView(manager.view)

	log.Info("GUIManager", "initialized", map[string]interface{}{
		"window_title": window.Title(),
		"algorithms":   coordinator.AvailableAlgorithms(),
	})

	return manager
}

func (m *Manager) Show() {
	m.view.Show()
	m.logger.Info("GUIManager", "GUI displayed", nil)
}

// OpenImage and SaveImage back the application menu.
func (m *Manager) OpenImage() {
	m.controller.OpenImage()
}

func (m *Manager) SaveImage() {
	m.controller.SaveImage()
}

func (m *Manager) Shutdown() {
	if m.isShutdown {
		return
	}

	m.isShutdown = true
	m.logger.Info("GUIManager", "shutdown initiated", nil)

	if m.controller != nil {
		m.controller.Shutdown()
	}

	m.logger.Info("GUIManager", "shutdown completed", nil)
}
