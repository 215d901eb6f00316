package queue

import (
	"github.com/spaghettifunk/prism/engine/renderer/components"
	"github.com/spaghettifunk/prism/engine/renderer/graph"
	"github.com/spaghettifunk/prism/engine/renderer/metadata"
	"github.com/spaghettifunk/prism/engine/scene"
)

// RenderTargetProvider allocates the targets synthetic passes render into.
// Targets are owned by the provider; the builder never releases them.
type RenderTargetProvider interface {
	CreateRenderTarget(width, height uint32) (*metadata.RenderTarget, error)
	// CreateHybridRenderTarget combines the colour plane of colour with
	// the depth plane of depth.
	CreateHybridRenderTarget(colour, depth *metadata.RenderTarget) (*metadata.RenderTarget, error)
}

// MaterialFactory turns a render graph into something a draw can bind.
type MaterialFactory interface {
	CreateMaterial(
		rg *graph.RenderGraph,
		entity *scene.Entity,
		target *metadata.RenderTarget,
		lightType components.LightType,
		needsNormal, needsPosition bool,
	) (*metadata.Material, error)
}
