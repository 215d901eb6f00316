package engine

import (
	"github.com/spaghettifunk/prism/engine/assets"
	"github.com/spaghettifunk/prism/engine/core"
)

type ApplicationConfig struct {
	// The application name, handed to the renderer backend.
	Name string
	// Renderer backend name, "headless" when empty.
	Backend string
	// Size of the screen and of full screen intermediate targets.
	Width  uint32
	Height uint32
	// Edge length of shadow maps. Zero uses the queue default.
	ShadowMapSize uint32
	// Views compiled in parallel. Zero uses GOMAXPROCS.
	Workers  int
	LogLevel core.LogLevel
	// Optional TOML frame description. When set the game's views are
	// replaced by the ones the file describes.
	FramePath string
	// Rebuild the frame whenever FramePath changes on disk.
	Watch bool
	// Stop Run after this many frames. Zero runs until cancelled.
	MaxFrames uint64
	// Frames per second Run is limited to. Zero does not limit.
	TargetFrameRate float64
}

// ApplyFrame takes the renderer settings of a frame description.
// Fields the description leaves out keep their current value.
func (c *ApplicationConfig) ApplyFrame(d *assets.FrameDescription) error {
	r := d.Renderer
	if r.Name != "" {
		c.Name = r.Name
	}
	if r.Backend != "" {
		c.Backend = r.Backend
	}
	if r.Width != 0 && r.Height != 0 {
		c.Width, c.Height = r.Width, r.Height
	}
	if r.ShadowMapSize != 0 {
		c.ShadowMapSize = r.ShadowMapSize
	}
	if r.Workers != 0 {
		c.Workers = r.Workers
	}
	if r.LogLevel != "" {
		level, err := core.ParseLogLevel(r.LogLevel)
		if err != nil {
			return err
		}
		c.LogLevel = level
	}
	return nil
}
