package systems

import (
	"github.com/spaghettifunk/prism/engine/renderer"
	"github.com/spaghettifunk/prism/engine/renderer/geometry"
)

type SystemManager struct {
	CameraSystem *CameraSystem
	FrameSystem  *FrameSystem
	MeshSystem   *geometry.MeshSystem
}

type SystemManagerConfig struct {
	Width         uint32
	Height        uint32
	ShadowMapSize uint32
	Workers       int
}

func NewSystemManager(r *renderer.Renderer, config SystemManagerConfig) (*SystemManager, error) {
	cs, err := NewCameraSystem(&CameraSystemConfig{
		MaxCameraCount: 100,
		Width:          config.Width,
		Height:         config.Height,
	})
	if err != nil {
		return nil, err
	}
	backend := r.Backend()
	fs, err := NewFrameSystem(FrameSystemConfig{
		Width:         config.Width,
		Height:        config.Height,
		ShadowMapSize: config.ShadowMapSize,
		Workers:       config.Workers,
	}, backend, backend)
	if err != nil {
		return nil, err
	}
	return &SystemManager{
		CameraSystem: cs,
		FrameSystem:  fs,
		MeshSystem:   geometry.Default(),
	}, nil
}

func (sm *SystemManager) Shutdown() error {
	if err := sm.FrameSystem.Shutdown(); err != nil {
		return err
	}
	if err := sm.CameraSystem.Shutdown(); err != nil {
		return err
	}
	return nil
}
