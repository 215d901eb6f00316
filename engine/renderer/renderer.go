package renderer

import (
	"fmt"

	"github.com/spaghettifunk/prism/engine/core"
	"github.com/spaghettifunk/prism/engine/renderer/headless"
	"github.com/spaghettifunk/prism/engine/renderer/queue"
)

type RendererType uint8

const (
	Headless RendererType = iota
)

func ParseRendererType(name string) (RendererType, error) {
	switch name {
	case "", "headless":
		return Headless, nil
	}
	return 0, fmt.Errorf("unsupported renderer backend '%s': %w", name, core.ErrInvalidConfig)
}

// FramePacket holds the command streams of every view of one frame.
type FramePacket struct {
	DeltaTime float64
	Views     [][]queue.RenderCommand
}

type Renderer struct {
	backend RendererBackend
}

func New(rendererType RendererType) (*Renderer, error) {
	switch rendererType {
	case Headless:
		return NewWithBackend(headless.New()), nil
	}
	return nil, fmt.Errorf("unsupported renderer type %d: %w", rendererType, core.ErrInvalidConfig)
}

func NewWithBackend(backend RendererBackend) *Renderer {
	return &Renderer{backend: backend}
}

func (r *Renderer) Backend() RendererBackend {
	return r.backend
}

func (r *Renderer) Initialize(appName string, appWidth, appHeight uint32) error {
	return r.backend.Initialize(appName, appWidth, appHeight)
}

func (r *Renderer) Shutdown() error {
	return r.backend.Shutdown()
}

func (r *Renderer) OnResize(width, height uint32) error {
	return r.backend.Resized(width, height)
}

// DrawFrame executes every view of the packet in order between
// BeginFrame and EndFrame.
func (r *Renderer) DrawFrame(packet *FramePacket) error {
	if err := r.backend.BeginFrame(packet.DeltaTime); err != nil {
		core.LogError("%s", err)
		return err
	}
	for i, commands := range packet.Views {
		if err := r.backend.Execute(commands); err != nil {
			core.LogError("failed to execute view %d: %s", i, err)
			// keep the frame balanced
			if endErr := r.backend.EndFrame(packet.DeltaTime); endErr != nil {
				core.LogError("%s", endErr)
			}
			return err
		}
	}
	if err := r.backend.EndFrame(packet.DeltaTime); err != nil {
		core.LogError("RendererEndFrame failed: %s", err)
		return err
	}
	return nil
}
