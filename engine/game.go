package engine

import (
	"github.com/spaghettifunk/prism/engine/systems"
)

type Game struct {
	ApplicationConfig *ApplicationConfig
	State             interface{}
	FnInitialize      Initialize
	FnUpdate          Update
	FnRender          Render
	FnOnResize        OnResize
	FnShutdown        Shutdown
}

// Initialize builds the game's scenes and returns the views to compile every frame.
type Initialize func(sm *systems.SystemManager) ([]systems.View, error)
type Update func(deltaTime float64) error

// Render receives the compiled command streams of the frame.
type Render func(results []systems.ViewResult, deltaTime float64) error
type OnResize func(width uint32, height uint32) error
type Shutdown func() error
