package headless

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/spaghettifunk/prism/engine/core"
	"github.com/spaghettifunk/prism/engine/renderer/components"
	"github.com/spaghettifunk/prism/engine/renderer/graph"
	"github.com/spaghettifunk/prism/engine/renderer/metadata"
	"github.com/spaghettifunk/prism/engine/renderer/queue"
	"github.com/spaghettifunk/prism/engine/scene"
)

// materialKey identifies materials that compile to the same pipeline.
type materialKey struct {
	signature     string
	lightType     components.LightType
	needsNormal   bool
	needsPosition bool
}

/**
 * @brief A renderer backend that allocates no GPU resources. Targets and
 * materials are plain bookkeeping objects and command streams are
 * validated instead of executed. It is safe for concurrent use, so one
 * backend can serve several queue builders at once.
 */
type Backend struct {
	mu sync.Mutex

	appName string
	width   uint32
	height  uint32

	frameNumber uint64
	inFrame     bool

	targetIDs  *core.IdentifierPool
	textureIDs *core.IdentifierPool
	targets    map[uint32]*metadata.RenderTarget

	materialIDs *core.IdentifierPool
	materials   map[materialKey]*metadata.Material

	stats Stats
}

func New() *Backend {
	return &Backend{
		targetIDs:   core.NewIdentifierPool(32),
		textureIDs:  core.NewIdentifierPool(64),
		targets:     make(map[uint32]*metadata.RenderTarget),
		materialIDs: core.NewIdentifierPool(64),
		materials:   make(map[materialKey]*metadata.Material),
	}
}

func (b *Backend) Initialize(appName string, width, height uint32) error {
	if width == 0 || height == 0 {
		return fmt.Errorf("headless backend needs a non zero size, got %dx%d: %w", width, height, core.ErrInvalidConfig)
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	b.appName = appName
	b.width = width
	b.height = height
	core.LogInfo("Headless renderer backend initialized for '%s' (%dx%d)", appName, width, height)
	return nil
}

func (b *Backend) Shutdown() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	core.LogInfo("Headless renderer backend shutting down: %d targets, %d materials", len(b.targets), len(b.materials))
	for id, rt := range b.targets {
		b.releaseTarget(rt)
		delete(b.targets, id)
	}
	for key, m := range b.materials {
		if err := b.materialIDs.Release(m.ID); err != nil {
			core.LogWarn("failed to release material %s: %s", m.Name, err)
		}
		delete(b.materials, key)
	}
	return nil
}

func (b *Backend) Resized(width, height uint32) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.width = width
	b.height = height
	return nil
}

func (b *Backend) BeginFrame(deltaTime float64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.inFrame {
		return fmt.Errorf("frame %d already started", b.frameNumber)
	}
	b.inFrame = true
	return nil
}

func (b *Backend) EndFrame(deltaTime float64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.inFrame {
		return fmt.Errorf("frame %d was never started", b.frameNumber)
	}
	b.inFrame = false
	b.frameNumber++
	return nil
}

func (b *Backend) FrameNumber() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.frameNumber
}

// Execute validates a command stream and adds it to the backend statistics.
func (b *Backend) Execute(commands []queue.RenderCommand) error {
	stats, err := Validate(commands)
	if err != nil {
		return err
	}

	b.mu.Lock()
	b.stats.Add(stats)
	b.mu.Unlock()

	core.LogDebug("executed %d passes, %d draws", stats.Passes, stats.Draws)
	return nil
}

// Stats returns the totals of every executed stream.
func (b *Backend) Stats() Stats {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.stats
}

func (b *Backend) CreateRenderTarget(width, height uint32) (*metadata.RenderTarget, error) {
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("render target size must be non zero, got %dx%d: %w", width, height, core.ErrInvalidConfig)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	name := uuid.NewString()
	rt := &metadata.RenderTarget{
		Name:   name,
		Width:  width,
		Height: height,
		Colour: b.newTexture(name+".colour", width, height, metadata.TextureFlagIsWriteable),
		Depth:  b.newTexture(name+".depth", width, height, metadata.TextureFlagIsWriteable|metadata.TextureFlagDepth),
	}
	rt.ID = b.targetIDs.Acquire(rt)
	b.targets[rt.ID] = rt
	return rt, nil
}

// CreateHybridRenderTarget shares the planes of two existing targets. A
// nil colour source stands for the screen.
func (b *Backend) CreateHybridRenderTarget(colour, depth *metadata.RenderTarget) (*metadata.RenderTarget, error) {
	if depth == nil {
		return nil, fmt.Errorf("hybrid render target needs a depth source: %w", core.ErrUnknownTarget)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if colour != nil && b.targets[colour.ID] != colour {
		return nil, fmt.Errorf("colour source %s: %w", colour, core.ErrUnknownTarget)
	}
	if b.targets[depth.ID] != depth {
		return nil, fmt.Errorf("depth source %s: %w", depth, core.ErrUnknownTarget)
	}

	width, height := depth.Width, depth.Height
	if colour != nil {
		width, height = colour.Width, colour.Height
	}
	rt := &metadata.RenderTarget{
		Name:   uuid.NewString(),
		Width:  width,
		Height: height,
		Colour: colour.ColourTexture(),
		Depth:  depth.DepthTexture(),
		Hybrid: true,
	}
	rt.ID = b.targetIDs.Acquire(rt)
	b.targets[rt.ID] = rt
	return rt, nil
}

// DestroyRenderTarget releases a target. Planes shared with hybrid
// targets stay valid until those are destroyed as well.
func (b *Backend) DestroyRenderTarget(rt *metadata.RenderTarget) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if rt == nil || b.targets[rt.ID] != rt {
		return fmt.Errorf("cannot destroy %s: %w", rt, core.ErrUnknownTarget)
	}
	b.releaseTarget(rt)
	delete(b.targets, rt.ID)
	return nil
}

func (b *Backend) RenderTargetCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.targets)
}

/**
 * @brief Returns the material for a graph under a light type. Materials
 * are cached by the graph signature and the requested outputs, so
 * identical graphs share one material.
 */
func (b *Backend) CreateMaterial(rg *graph.RenderGraph, entity *scene.Entity, target *metadata.RenderTarget, lightType components.LightType, needsNormal, needsPosition bool) (*metadata.Material, error) {
	if rg == nil {
		return nil, fmt.Errorf("cannot create a material for %s without a render graph", entity)
	}
	key := materialKey{
		signature:     rg.Signature(),
		lightType:     lightType,
		needsNormal:   needsNormal,
		needsPosition: needsPosition,
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if m, ok := b.materials[key]; ok {
		return m, nil
	}
	m := &metadata.Material{
		Name:         fmt.Sprintf("%s.%s", lightType, uuid.NewString()),
		InternalData: key,
	}
	m.ID = b.materialIDs.Acquire(m)
	b.materials[key] = m
	core.LogDebug("created material %s for %s", m.Name, key.signature)
	return m, nil
}

func (b *Backend) MaterialCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.materials)
}

func (b *Backend) newTexture(name string, width, height uint32, flags metadata.TextureFlag) *metadata.Texture {
	t := &metadata.Texture{
		TextureType: metadata.TextureType2d,
		Width:       width,
		Height:      height,
		Flags:       metadata.TextureFlagBits(flags),
		Name:        name,
	}
	t.ID = b.textureIDs.Acquire(t)
	return t
}

// releaseTarget frees the ids of planes the target owns. Hybrid targets
// borrow their planes.
func (b *Backend) releaseTarget(rt *metadata.RenderTarget) {
	if !rt.Hybrid {
		for _, t := range []*metadata.Texture{rt.Colour, rt.Depth} {
			if t == nil {
				continue
			}
			if err := b.textureIDs.Release(t.ID); err != nil {
				core.LogWarn("failed to release texture %s: %s", t.Name, err)
			}
		}
	}
	if err := b.targetIDs.Release(rt.ID); err != nil {
		core.LogWarn("failed to release render target %s: %s", rt, err)
	}
}
