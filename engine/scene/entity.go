package scene

import (
	"fmt"

	"github.com/spaghettifunk/prism/engine/math"
	"github.com/spaghettifunk/prism/engine/renderer/metadata"
)

/**
 * @brief Something that can be drawn: a mesh placed in the world by a
 * transform. Entities are created through Scene.CreateEntity which
 * binds them to a render graph.
 */
type Entity struct {
	ID        uint32
	Name      string
	Mesh      *metadata.Mesh
	Transform *math.Transform
	/** @brief Whether directional shadow maps are sampled when lighting this entity. */
	receiveShadow bool
}

func (e *Entity) ReceiveShadow() bool {
	return e.receiveShadow
}

func (e *Entity) SetReceiveShadow(receive bool) {
	e.receiveShadow = receive
}

func (e *Entity) String() string {
	if e == nil {
		return "<nil>"
	}
	if e.Name != "" {
		return e.Name
	}
	return fmt.Sprintf("entity#%d", e.ID)
}
