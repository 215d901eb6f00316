package systems

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"

	"github.com/spaghettifunk/prism/engine/core"
	"github.com/spaghettifunk/prism/engine/math"
	"github.com/spaghettifunk/prism/engine/renderer/queue"
)

// View is one independently compiled pass list of a frame, e.g. the
// main view and a minimap.
type View struct {
	Name   string
	Passes []*queue.RenderPass
}

// ViewResult is the command stream of one view.
type ViewResult struct {
	Name      string
	Commands  []queue.RenderCommand
	BuildTime time.Duration
}

/** @brief The frame system configuration. */
type FrameSystemConfig struct {
	/** @brief Size of full screen intermediate targets. */
	Width  uint32
	Height uint32
	/** @brief Edge length of shadow maps. Zero uses the queue default. */
	ShadowMapSize uint32
	/** @brief Number of views compiled in parallel. Zero uses GOMAXPROCS. */
	Workers int
}

/**
 * @brief Compiles every view of a frame into its own command stream.
 * Each view owns a queue builder, so views are built in parallel on a
 * worker pool while each builder stays single threaded.
 */
type FrameSystem struct {
	config    FrameSystemConfig
	targets   queue.RenderTargetProvider
	materials queue.MaterialFactory
	pool      worker.DynamicWorkerPool

	// serializes Build so a builder never runs twice at once
	mu       sync.Mutex
	builders map[string]*queue.Builder
}

func NewFrameSystem(config FrameSystemConfig, targets queue.RenderTargetProvider, materials queue.MaterialFactory) (*FrameSystem, error) {
	if config.Width == 0 || config.Height == 0 {
		err := fmt.Errorf("func NewFrameSystem - frame size must be > 0: %w", core.ErrInvalidConfig)
		core.LogError("%s", err)
		return nil, err
	}
	if config.Workers <= 0 {
		config.Workers = runtime.GOMAXPROCS(0)
	}
	config.Workers = math.Clamp(config.Workers, 1, 64)

	return &FrameSystem{
		config:    config,
		targets:   targets,
		materials: materials,
		pool:      worker.NewDynamicWorkerPool(config.Workers, 256, 1*time.Second),
		builders:  make(map[string]*queue.Builder),
	}, nil
}

func (fs *FrameSystem) Config() FrameSystemConfig {
	return fs.config
}

// Targets is the provider intermediate targets are allocated from.
func (fs *FrameSystem) Targets() queue.RenderTargetProvider {
	return fs.targets
}

/**
 * @brief Builds all views. Results keep the order of views. If any
 * view fails the first failure in view order is returned and no
 * results are.
 */
func (fs *FrameSystem) Build(views []View) ([]ViewResult, error) {
	if len(views) == 0 {
		return nil, core.ErrNoViews
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()

	builders := make([]*queue.Builder, len(views))
	seen := make(map[string]bool, len(views))
	for i, v := range views {
		if seen[v.Name] {
			return nil, fmt.Errorf("view '%s': %w", v.Name, core.ErrDuplicateView)
		}
		seen[v.Name] = true

		b, err := fs.builder(v.Name)
		if err != nil {
			return nil, err
		}
		builders[i] = b
	}

	results := make([]ViewResult, len(views))
	errs := make([]error, len(views))

	// the pool has no per batch barrier, so wait on our own group
	var wg sync.WaitGroup
	for i := range views {
		wg.Add(1)
		id := i
		fs.pool.SubmitTask(worker.Task{
			ID: id,
			Do: func() (any, error) {
				defer wg.Done()

				start := time.Now()
				commands, err := builders[id].Build(views[id].Passes)
				if err != nil {
					errs[id] = fmt.Errorf("view '%s': %w", views[id].Name, err)
					return nil, errs[id]
				}
				results[id] = ViewResult{
					Name:      views[id].Name,
					Commands:  commands,
					BuildTime: time.Since(start),
				}
				return nil, nil
			},
		})
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}

// builder returns the builder dedicated to a view, creating it on first use.
func (fs *FrameSystem) builder(view string) (*queue.Builder, error) {
	if b, ok := fs.builders[view]; ok {
		return b, nil
	}
	b, err := queue.New(queue.Config{
		Width:         fs.config.Width,
		Height:        fs.config.Height,
		ShadowMapSize: fs.config.ShadowMapSize,
	}, fs.targets, fs.materials)
	if err != nil {
		return nil, err
	}
	fs.builders[view] = b
	return b, nil
}

// Forget drops the builders of views that no longer exist.
func (fs *FrameSystem) Forget(keep []View) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	names := make(map[string]bool, len(keep))
	for _, v := range keep {
		names[v.Name] = true
	}
	for name := range fs.builders {
		if !names[name] {
			delete(fs.builders, name)
		}
	}
}

// Resize changes the size of full screen intermediate targets. Views
// get fresh builders on their next build.
func (fs *FrameSystem) Resize(width, height uint32) error {
	if width == 0 || height == 0 {
		return fmt.Errorf("func FrameSystem.Resize - frame size must be > 0: %w", core.ErrInvalidConfig)
	}
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.config.Width, fs.config.Height = width, height
	fs.builders = make(map[string]*queue.Builder)
	return nil
}

func (fs *FrameSystem) Shutdown() error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.builders = make(map[string]*queue.Builder)
	return nil
}
