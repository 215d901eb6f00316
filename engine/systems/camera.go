package systems

import (
	"fmt"
	"sync"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/spaghettifunk/prism/engine/core"
	"github.com/spaghettifunk/prism/engine/renderer/components"
)

type cameraLookup struct {
	referenceCount uint16
	camera         *components.Camera
}

/**
 * @brief Keeps the named cameras a frame refers to. Cameras are
 * registered once and acquired by name; a default perspective camera
 * always exists as a fallback.
 */
type CameraSystem struct {
	Config *CameraSystemConfig

	mu      sync.RWMutex
	cameras map[string]*cameraLookup
	// A default, non-registered camera that always exists as a fallback.
	DefaultCamera *components.Camera
}

/** @brief The camera system configuration. */
type CameraSystemConfig struct {
	/**
	 * @brief NOTE: The maximum number of cameras that can be managed by
	 * the system.
	 */
	MaxCameraCount uint16
	/** @brief Viewport of the default camera. */
	Width  uint32
	Height uint32
}

/**
 * @brief Initializes the camera system.
 *
 * @param config The configuration for this system.
 * @return The camera system or an error if the configuration is invalid.
 */
func NewCameraSystem(config *CameraSystemConfig) (*CameraSystem, error) {
	if config.MaxCameraCount == 0 {
		err := fmt.Errorf("func NewCameraSystem - config.MaxCameraCount must be > 0: %w", core.ErrInvalidConfig)
		core.LogError("%s", err)
		return nil, err
	}
	cs := &CameraSystem{
		Config:  config,
		cameras: make(map[string]*cameraLookup, config.MaxCameraCount),
	}
	// Setup default camera.
	cs.DefaultCamera = components.NewPerspectiveCamera(mgl32.DegToRad(45.0), config.Width, config.Height, 0.1, 1000.0)
	cs.DefaultCamera.SetPosition(mgl32.Vec3{0, 0, 10})
	return cs, nil
}

/**
 * @brief Shuts down the camera system.
 */
func (cs *CameraSystem) Shutdown() error {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.cameras = make(map[string]*cameraLookup)
	return nil
}

/**
 * @brief Registers a camera under the given name.
 *
 * @param name The name of the camera. Must be unique.
 * @param camera The camera to register.
 */
func (cs *CameraSystem) Register(name string, camera *components.Camera) error {
	if name == components.DEFAULT_CAMERA_NAME {
		return fmt.Errorf("camera name '%s' is reserved: %w", name, core.ErrInvalidConfig)
	}

	cs.mu.Lock()
	defer cs.mu.Unlock()

	if _, ok := cs.cameras[name]; ok {
		return fmt.Errorf("camera '%s' is already registered: %w", name, core.ErrInvalidConfig)
	}
	if len(cs.cameras) >= int(cs.Config.MaxCameraCount) {
		err := fmt.Errorf("func CameraSystem.Register no free slot for '%s'. Adjust camera system config to allow more: %w", name, core.ErrInvalidConfig)
		core.LogError("%s", err)
		return err
	}
	core.LogDebug("Registering camera named '%s'...", name)
	cs.cameras[name] = &cameraLookup{camera: camera}
	return nil
}

/**
 * @brief Acquires a camera by name.
 * Internal reference counter is incremented.
 *
 * @param name The name of the camera to acquire.
 * @return The camera or core.ErrUnknownCamera.
 */
func (cs *CameraSystem) Acquire(name string) (*components.Camera, error) {
	if name == components.DEFAULT_CAMERA_NAME || name == "" {
		return cs.DefaultCamera, nil
	}

	cs.mu.Lock()
	defer cs.mu.Unlock()

	lookup, ok := cs.cameras[name]
	if !ok {
		return nil, fmt.Errorf("camera '%s': %w", name, core.ErrUnknownCamera)
	}
	lookup.referenceCount++
	return lookup.camera, nil
}

/**
 * @brief Releases a camera with the given name. Internal reference
 * counter is decremented. If this reaches 0, the camera is dropped.
 *
 * @param name The name of the camera to release.
 */
func (cs *CameraSystem) Release(name string) {
	if name == components.DEFAULT_CAMERA_NAME || name == "" {
		core.LogDebug("Cannot release default camera. Nothing was done.")
		return
	}

	cs.mu.Lock()
	defer cs.mu.Unlock()

	lookup, ok := cs.cameras[name]
	if !ok {
		core.LogWarn("CameraSystem.Release failed lookup for '%s'. Nothing was done.", name)
		return
	}
	if lookup.referenceCount > 0 {
		lookup.referenceCount--
	}
	if lookup.referenceCount == 0 {
		delete(cs.cameras, name)
	}
}

func (cs *CameraSystem) Count() int {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return len(cs.cameras)
}

/**
 * @brief Gets a pointer to the default camera.
 */
func (cs *CameraSystem) GetDefault() *components.Camera {
	return cs.DefaultCamera
}
