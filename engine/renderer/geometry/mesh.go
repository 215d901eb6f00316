package geometry

import (
	"sync"

	"github.com/spaghettifunk/prism/engine/core"
	"github.com/spaghettifunk/prism/engine/renderer/metadata"
)

const (
	cubeMeshName   = "cube"
	spriteMeshName = "sprite"
)

/**
 * @brief Hands out the primitive meshes the renderer synthesizes
 * entities from. Meshes are generated once and shared; the system is
 * safe to use from several builders at the same time.
 */
type MeshSystem struct {
	mu     sync.Mutex
	ids    *core.IdentifierPool
	meshes map[string]*metadata.Mesh
}

func NewMeshSystem() *MeshSystem {
	return &MeshSystem{
		ids:    core.NewIdentifierPool(8),
		meshes: make(map[string]*metadata.Mesh),
	}
}

// Cube returns a unit cube centred on the origin.
func (ms *MeshSystem) Cube() *metadata.Mesh {
	return ms.acquire(cubeMeshName, func() *metadata.GeometryConfig {
		return GenerateCubeConfig(1.0, 1.0, 1.0, 1.0, 1.0, cubeMeshName)
	})
}

// Sprite returns a unit quad in the xy plane facing +z.
func (ms *MeshSystem) Sprite() *metadata.Mesh {
	return ms.acquire(spriteMeshName, func() *metadata.GeometryConfig {
		return GeneratePlaneConfig(1.0, 1.0, 1, 1, 1.0, 1.0, spriteMeshName)
	})
}

func (ms *MeshSystem) acquire(name string, generate func() *metadata.GeometryConfig) *metadata.Mesh {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if m, ok := ms.meshes[name]; ok {
		return m
	}
	m := &metadata.Mesh{
		Name:     name,
		Geometry: generate(),
	}
	m.UniqueID = ms.ids.Acquire(m)
	ms.meshes[name] = m
	core.LogDebug("generated mesh '%s' with %d vertices", name, len(m.Geometry.Vertices))
	return m
}

var (
	defaultMeshSystem *MeshSystem
	onceMeshSystem    sync.Once
)

// Default returns the process wide mesh system.
func Default() *MeshSystem {
	onceMeshSystem.Do(func() {
		defaultMeshSystem = NewMeshSystem()
	})
	return defaultMeshSystem
}
