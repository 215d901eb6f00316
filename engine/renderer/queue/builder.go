package queue

import (
	"fmt"
	"time"

	"github.com/spaghettifunk/prism/engine/containers"
	"github.com/spaghettifunk/prism/engine/core"
	"github.com/spaghettifunk/prism/engine/renderer/components"
	"github.com/spaghettifunk/prism/engine/renderer/geometry"
	"github.com/spaghettifunk/prism/engine/scene"
)

// DefaultShadowMapSize is the edge length of every shadow map target.
const DefaultShadowMapSize uint32 = 1024

type Config struct {
	/** @brief Size of full screen intermediate targets. */
	Width  uint32
	Height uint32
	/** @brief Edge length of shadow map targets. Zero means DefaultShadowMapSize. */
	ShadowMapSize uint32
}

// passData is the scene and camera hosting a pass the builder made up.
type passData struct {
	scene  *scene.Scene
	camera *components.Camera
}

/**
 * @brief Compiles a list of render passes into a flat command stream.
 * A Builder keeps scratch storage between calls and must not be used
 * from more than one goroutine at a time; independent builders can run
 * in parallel.
 */
type Builder struct {
	config    Config
	targets   RenderTargetProvider
	materials MaterialFactory
	meshes    *geometry.MeshSystem
	passData  *containers.Arena[passData]
}

func New(config Config, targets RenderTargetProvider, materials MaterialFactory) (*Builder, error) {
	if config.Width == 0 || config.Height == 0 {
		return nil, fmt.Errorf("render queue size must be non zero, got %dx%d: %w", config.Width, config.Height, core.ErrInvalidConfig)
	}
	if targets == nil || materials == nil {
		return nil, fmt.Errorf("render queue needs a target provider and a material factory: %w", core.ErrInvalidConfig)
	}
	if config.ShadowMapSize == 0 {
		config.ShadowMapSize = DefaultShadowMapSize
	}
	return &Builder{
		config:    config,
		targets:   targets,
		materials: materials,
		meshes:    geometry.Default(),
		passData:  containers.NewArena[passData](16),
	}, nil
}

func (b *Builder) Config() Config {
	return b.config
}

/**
 * @brief Builds the command stream for one frame. The passes are read
 * but never modified. Synthetic scenes and cameras from a previous call
 * are discarded, so commands returned earlier must not be replayed
 * after the next call.
 *
 * @param passes The passes to render, in order.
 * @return The commands, ending in a single PRESENT.
 */
func (b *Builder) Build(passes []*RenderPass) ([]RenderCommand, error) {
	start := time.Now()

	for i, pass := range passes {
		if pass == nil || pass.Scene == nil || pass.Camera == nil {
			return nil, fmt.Errorf("pass %d must have a scene and a camera: %w", i, core.ErrInvalidRenderPass)
		}
	}

	b.passData.Reset()

	pre, shadows, initial, err := b.inject(passes)
	if err != nil {
		return nil, err
	}

	ordered := make([]*RenderPass, 0, len(pre)+len(initial))
	ordered = append(ordered, pre...)
	ordered = append(ordered, initial...)

	expanded, err := b.expand(ordered)
	if err != nil {
		return nil, err
	}

	commands, err := b.encode(expanded, shadows)
	if err != nil {
		return nil, err
	}

	core.LogDebug("render queue built in %s: %d input passes, %d pre-passes, %d shadow maps, %d passes, %d commands",
		time.Since(start), len(passes), len(pre), len(shadows), len(expanded), len(commands))
	return commands, nil
}

// newPassData stores a fresh scene and full screen orthographic camera.
func (b *Builder) newPassData(name string) (containers.Handle, *passData) {
	return b.passData.Add(passData{
		scene:  scene.New(fmt.Sprintf("%s.%d", name, b.passData.Len())),
		camera: components.NewOrthographicCamera(b.config.Width, b.config.Height),
	})
}
