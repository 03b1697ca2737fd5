package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"sync"
	"syscall"
	"time"

	"image-enhancer/internal/config"
	"image-enhancer/internal/gui"
	"image-enhancer/internal/gui/widgets"
	"image-enhancer/internal/logger"
	"image-enhancer/internal/opencv/memory"
	"image-enhancer/internal/pipeline"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

const (
	AppName    = "Image Enhancer"
	AppID      = "com.imageprocessing.image-enhancer"
	AppVersion = "1.0.0"
)

type shutdownHandler interface {
	Shutdown()
}

type Application struct {
	fyneApp       fyne.App
	window        fyne.Window
	guiManager    *gui.Manager
	coordinator   *pipeline.Coordinator
	memoryManager *memory.Manager
	config        *config.Config
	logger        logger.Logger
	shutdownables []shutdownHandler
	ctx           context.Context
	cancel        context.CancelFunc
	shutdown      chan struct{}
	shutdownOnce  sync.Once
}

func NewApplication() (*Application, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log := logger.NewConsoleLogger(logger.ParseLevel(cfg.Logging.Level))

	app.SetMetadata(fyne.AppMetadata{
		ID:      AppID,
		Name:    AppName,
		Version: AppVersion,
		Build:   1,
	})

	fyneApp := app.NewWithID(AppID)
	fyneApp.Settings().SetTheme(gui.NewTheme())

	window := fyneApp.NewWindow(AppName)
	windowSize := calculateMinimumWindowSize()
	window.Resize(windowSize)
	window.CenterOnScreen()
	window.SetMaster()

	log.Info("Application", "starting application", map[string]interface{}{
		"version":          AppVersion,
		"window_width":     windowSize.Width,
		"window_height":    windowSize.Height,
		"log_level":        cfg.Logging.Level,
		"output_directory": cfg.Output.Directory,
	})

	memoryManager := memory.NewManager(log)
	coordinator := pipeline.NewCoordinator(cfg, memoryManager, log)
	guiManager := gui.NewManager(window, coordinator, log)

	ctx, cancel := context.WithCancel(context.Background())

	application := &Application{
		fyneApp:       fyneApp,
		window:        window,
		guiManager:    guiManager,
		coordinator:   coordinator,
		memoryManager: memoryManager,
		config:        cfg,
		logger:        log,
		ctx:           ctx,
		cancel:        cancel,
		shutdown:      make(chan struct{}),
		// Shut down in reverse: GUI first, memory manager last.
		shutdownables: []shutdownHandler{
			memoryManager,
			coordinator,
			guiManager,
		},
	}

	application.setupMenu()
	application.setupSignalHandling()
	log.Info("Application", "initialization complete", nil)
	return application, nil
}

func (a *Application) setupMenu() {
	// fyne appends Quit to the first menu on its own.
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open...", a.guiManager.OpenImage),
		fyne.NewMenuItem("Save", a.guiManager.SaveImage),
	)
	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", a.showAbout),
	)

	a.window.SetMainMenu(fyne.NewMainMenu(fileMenu, helpMenu))
}

func (a *Application) showAbout() {
	metadata := a.fyneApp.Metadata()

	name := metadata.Name
	if name == "" {
		name = AppName
	}
	version := metadata.Version
	if version == "" {
		version = AppVersion
	}

	aboutContent := container.NewVBox(
		widget.NewLabel(name),
		widget.NewLabel(fmt.Sprintf("Version: %s", version)),
		widget.NewLabel(""),
		widget.NewLabel("Methods: Histogram Equalization, Fuzzy Enhancement"),
		widget.NewLabel(fmt.Sprintf("Output folder: %s", a.config.Output.Directory)),
		widget.NewLabel(""),
		widget.NewLabel(fmt.Sprintf("Go: %s", runtime.Version())),
		widget.NewLabel(fmt.Sprintf("Platform: %s/%s", runtime.GOOS, runtime.GOARCH)),
	)

	dialog.ShowCustom("About", "Close", aboutContent, a.window)
}

func calculateMinimumWindowSize() fyne.Size {
	toolbarHeight := float32(60)

	return fyne.Size{
		Width:  float32(widgets.ImageAreaWidth*2 + 40),
		Height: float32(widgets.ImageAreaHeight) + toolbarHeight + 60,
	}
}

func (a *Application) setupSignalHandling() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		defer signal.Stop(sigChan)

		select {
		case sig := <-sigChan:
			a.logger.Info("Application", "shutdown signal received", map[string]interface{}{
				"signal": sig.String(),
			})
			a.initiateShutdown()
		case <-a.ctx.Done():
		}
	}()
}

func (a *Application) Run() error {
	a.window.SetCloseIntercept(func() {
		a.logger.Info("Application", "shutdown requested via window close", nil)
		a.initiateShutdown()
		a.window.Close()
	})

	a.guiManager.Show()

	go func() {
		<-a.shutdown
		fyne.Do(a.fyneApp.Quit)
	}()

	a.fyneApp.Run()
	a.initiateShutdown()
	return nil
}

func (a *Application) initiateShutdown() {
	a.shutdownOnce.Do(func() {
		close(a.shutdown)
		a.cancel()

		a.logger.Info("Application", "shutdown sequence initiated", map[string]interface{}{
			"components": len(a.shutdownables),
		})

		for i := len(a.shutdownables) - 1; i >= 0; i-- {
			component := a.shutdownables[i]

			done := make(chan struct{})
			go func() {
				defer close(done)
				component.Shutdown()
			}()

			select {
			case <-done:
			case <-time.After(10 * time.Second):
				a.logger.Warning("Application", "component shutdown timeout", map[string]interface{}{
					"component": fmt.Sprintf("%T", component),
				})
			}
		}

		a.logger.Info("Application", "shutdown sequence completed", nil)
	})
}
