package renderer

import (
	"github.com/spaghettifunk/prism/engine/renderer/metadata"
	"github.com/spaghettifunk/prism/engine/renderer/queue"
)

// Executor replays a command stream produced by a queue builder.
type Executor interface {
	Execute(commands []queue.RenderCommand) error
}

/**
 * @brief Everything the engine needs from a graphics backend: the
 * allocation callbacks the queue builder calls, frame bracketing and
 * command execution.
 */
type RendererBackend interface {
	queue.RenderTargetProvider
	queue.MaterialFactory
	Executor

	Initialize(appName string, appWidth, appHeight uint32) error
	Shutdown() error
	Resized(width, height uint32) error
	BeginFrame(deltaTime float64) error
	EndFrame(deltaTime float64) error
	DestroyRenderTarget(target *metadata.RenderTarget) error
}
