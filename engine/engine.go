package engine

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/spaghettifunk/prism/engine/assets"
	"github.com/spaghettifunk/prism/engine/core"
	"github.com/spaghettifunk/prism/engine/renderer"
	"github.com/spaghettifunk/prism/engine/renderer/queue"
	"github.com/spaghettifunk/prism/engine/systems"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
)

type Engine struct {
	currentStage  Stage
	gameInstance  *Game
	config        *ApplicationConfig
	isRunning     atomic.Bool
	renderer      *renderer.Renderer
	systemManager *systems.SystemManager
	clock         *core.Clock
	frameCount    uint64

	// views compiled every frame, either the game's or the loaded frame's
	views   []systems.View
	frame   *assets.Frame
	watcher *assets.FrameWatcher

	quitHandle uint64
}

func New(g *Game) (*Engine, error) {
	if g == nil || g.ApplicationConfig == nil {
		return nil, fmt.Errorf("engine needs a game with an application config: %w", core.ErrInvalidConfig)
	}
	config := g.ApplicationConfig
	core.SetLogLevel(config.LogLevel)

	rendererType, err := renderer.ParseRendererType(config.Backend)
	if err != nil {
		core.LogError("%s", err)
		return nil, err
	}
	r, err := renderer.New(rendererType)
	if err != nil {
		core.LogError("%s", err)
		return nil, err
	}

	sm, err := systems.NewSystemManager(r, systems.SystemManagerConfig{
		Width:         config.Width,
		Height:        config.Height,
		ShadowMapSize: config.ShadowMapSize,
		Workers:       config.Workers,
	})
	if err != nil {
		core.LogError("%s", err)
		return nil, err
	}

	return &Engine{
		currentStage:  EngineStageUninitialized,
		gameInstance:  g,
		config:        config,
		renderer:      r,
		systemManager: sm,
		clock:         core.NewClock(),
	}, nil
}

func (e *Engine) Initialize() error {
	e.currentStage = EngineStageInitializing

	e.quitHandle = core.EventRegister(core.EVENT_CODE_APPLICATION_QUIT, e.onEvent)

	if err := e.renderer.Initialize(e.config.Name, e.config.Width, e.config.Height); err != nil {
		return err
	}

	if e.gameInstance.FnInitialize != nil {
		views, err := e.gameInstance.FnInitialize(e.systemManager)
		if err != nil {
			return err
		}
		e.views = views
	}

	if e.config.FramePath != "" {
		if err := e.loadFrame(e.config.FramePath); err != nil {
			return err
		}
		if e.config.Watch {
			w, err := assets.NewFrameWatcher(e.config.FramePath, assets.DefaultDebounce)
			if err != nil {
				return err
			}
			e.watcher = w
		}
	}

	if len(e.views) == 0 {
		return core.ErrNoViews
	}

	if e.gameInstance.FnOnResize != nil {
		if err := e.gameInstance.FnOnResize(e.config.Width, e.config.Height); err != nil {
			return err
		}
	}

	e.isRunning.Store(true)
	e.currentStage = EngineStageInitialized
	return nil
}

// Views returns the views compiled every frame.
func (e *Engine) Views() []systems.View {
	return e.views
}

func (e *Engine) SystemManager() *systems.SystemManager {
	return e.systemManager
}

func (e *Engine) Renderer() *renderer.Renderer {
	return e.renderer
}

/**
 * @brief Compiles and executes one frame: the game updates its scenes,
 * every view is compiled into a command stream and the streams are
 * handed to the renderer in view order.
 * @param deltaTime Seconds since the previous frame.
 * @return The command streams of every view.
 */
func (e *Engine) RenderFrame(deltaTime float64) ([]systems.ViewResult, error) {
	if e.gameInstance.FnUpdate != nil {
		if err := e.gameInstance.FnUpdate(deltaTime); err != nil {
			core.LogError("Game update failed: %s", err)
			return nil, err
		}
	}

	start := time.Now()
	results, err := e.systemManager.FrameSystem.Build(e.views)
	if err != nil {
		core.LogError("Failed to build render queue: %s", err)
		return nil, err
	}
	buildTime := time.Since(start)

	packet := &renderer.FramePacket{
		DeltaTime: deltaTime,
		Views:     make([][]queue.RenderCommand, len(results)),
	}
	passes, commands := 0, 0
	for i, r := range results {
		packet.Views[i] = r.Commands
		commands += len(r.Commands)
		for _, c := range r.Commands {
			if c.Type == queue.RenderCommandTypePassStart {
				passes++
			}
		}
	}
	core.MetricsUpdate(buildTime, passes, commands)
	core.EventFire(core.EventContext{
		Type: core.EVENT_CODE_QUEUE_BUILT,
		Data: commands,
	})

	if err := e.renderer.DrawFrame(packet); err != nil {
		return nil, err
	}

	if e.gameInstance.FnRender != nil {
		if err := e.gameInstance.FnRender(results, deltaTime); err != nil {
			core.LogError("Game render failed: %s", err)
			return nil, err
		}
	}
	return results, nil
}

// Run renders frames until ctx is done, the quit event fires or the
// configured frame count is reached.
func (e *Engine) Run(ctx context.Context) error {
	if e.currentStage != EngineStageInitialized {
		return fmt.Errorf("engine must be initialized before running: %w", core.ErrInvalidConfig)
	}
	e.currentStage = EngineStageRunning

	var reloads <-chan string
	if e.watcher != nil {
		e.watcher.Start(ctx)
		reloads = e.watcher.Reloads()
	}

	var limiter <-chan time.Time
	if e.config.TargetFrameRate > 0 {
		ticker := time.NewTicker(time.Duration(float64(time.Second) / e.config.TargetFrameRate))
		defer ticker.Stop()
		limiter = ticker.C
	}

	e.clock.Start()
	lastTime := e.clock.Elapsed()

	for e.isRunning.Load() {
		select {
		case <-ctx.Done():
			e.isRunning.Store(false)
			continue
		case path := <-reloads:
			e.reloadFrame(path)
		default:
		}

		e.clock.Update()
		currentTime := e.clock.Elapsed()
		delta := (currentTime - lastTime).Seconds()
		lastTime = currentTime

		if _, err := e.RenderFrame(delta); err != nil {
			core.LogError("Frame %d failed, shutting down.", e.frameCount)
			e.isRunning.Store(false)
			return err
		}
		e.frameCount++

		if e.config.MaxFrames > 0 && e.frameCount >= e.config.MaxFrames {
			e.isRunning.Store(false)
			break
		}

		if limiter != nil {
			select {
			case <-ctx.Done():
			case <-limiter:
			}
		}
	}
	e.clock.Stop()
	core.LogInfo("Rendered %d frames in %s (avg build %.3fms)", e.frameCount, e.clock.Elapsed(), core.MetricsBuildTime())
	return nil
}

// FrameCount is the number of frames Run has rendered.
func (e *Engine) FrameCount() uint64 {
	return e.frameCount
}

// Resize changes the screen size. Intermediate targets follow on the next frame.
func (e *Engine) Resize(width, height uint32) error {
	if width == e.config.Width && height == e.config.Height {
		return nil
	}
	core.LogDebug("Resize: %d, %d", width, height)
	if err := e.systemManager.FrameSystem.Resize(width, height); err != nil {
		return err
	}
	if err := e.renderer.OnResize(width, height); err != nil {
		return err
	}
	e.config.Width, e.config.Height = width, height
	if e.gameInstance.FnOnResize != nil {
		return e.gameInstance.FnOnResize(width, height)
	}
	return nil
}

func (e *Engine) Shutdown() error {
	e.currentStage = EngineStageShuttingDown
	e.isRunning.Store(false)
	core.EventUnregister(core.EVENT_CODE_APPLICATION_QUIT, e.quitHandle)

	if e.watcher != nil {
		if err := e.watcher.Close(); err != nil {
			core.LogWarn("%s", err)
		}
		e.watcher = nil
	}
	if e.frame != nil {
		if err := e.frame.Release(e.systemManager.CameraSystem, e.renderer.Backend()); err != nil {
			core.LogWarn("%s", err)
		}
		e.frame = nil
	}
	if e.gameInstance.FnShutdown != nil {
		if err := e.gameInstance.FnShutdown(); err != nil {
			return err
		}
	}
	if err := e.systemManager.Shutdown(); err != nil {
		return err
	}
	if err := e.renderer.Shutdown(); err != nil {
		return err
	}
	e.currentStage = EngineStageUninitialized
	return nil
}

func (e *Engine) loadFrame(path string) error {
	d, err := assets.LoadFrameFile(path)
	if err != nil {
		return err
	}
	return e.useFrame(d)
}

func (e *Engine) useFrame(d *assets.FrameDescription) error {
	sm := e.systemManager
	f, err := assets.Instantiate(d, e.renderer.Backend(), sm.CameraSystem, sm.MeshSystem)
	if err != nil {
		return err
	}
	e.frame = f
	e.views = f.Views
	sm.FrameSystem.Forget(e.views)
	return nil
}

// reloadFrame swaps in a changed frame. A description that fails to
// load leaves the current frame in place.
func (e *Engine) reloadFrame(path string) {
	d, err := assets.LoadFrameFile(path)
	if err != nil {
		core.LogError("Keeping the current frame: %s", err)
		return
	}

	previous := e.frame
	if previous != nil {
		if err := previous.Release(e.systemManager.CameraSystem, e.renderer.Backend()); err != nil {
			core.LogWarn("%s", err)
		}
	}
	if err := e.useFrame(d); err != nil {
		core.LogError("Keeping the current frame: %s", err)
		if previous != nil {
			if err := e.useFrame(previous.Description); err != nil {
				core.LogError("Failed to restore the previous frame: %s", err)
			}
		}
		return
	}
	core.LogInfo("Frame '%s' reloaded with %d views", path, len(e.views))
}

func (e *Engine) onEvent(context core.EventContext) bool {
	switch context.Type {
	case core.EVENT_CODE_APPLICATION_QUIT:
		core.LogInfo("EVENT_CODE_APPLICATION_QUIT received, shutting down.")
		e.isRunning.Store(false)
	}
	// other listeners see the quit as well
	return false
}
