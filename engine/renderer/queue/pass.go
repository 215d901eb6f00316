package queue

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/spaghettifunk/prism/engine/renderer/components"
	"github.com/spaghettifunk/prism/engine/renderer/metadata"
	"github.com/spaghettifunk/prism/engine/scene"
)

/**
 * @brief The declarative unit of work: render a scene through a camera
 * into a set of targets. A nil target means the attachment is absent,
 * except for ColourTarget where nil is the screen.
 */
type RenderPass struct {
	/** @brief Optional name, used in logs and dumps. */
	Name   string
	Scene  *scene.Scene
	Camera *components.Camera

	ColourTarget   *metadata.RenderTarget
	NormalTarget   *metadata.RenderTarget
	PositionTarget *metadata.RenderTarget

	/** @brief Only write depth (and ambient) output. */
	DepthOnly   bool
	ClearColour bool
	ClearDepth  bool
	/** @brief The colour the colour target is cleared to when ClearColour is set. */
	ClearValue mgl32.Vec4

	PostProcessing metadata.PostProcessingDescription
	SkyBox         *metadata.CubeMap
}

// Clone returns a shallow copy of the pass. Scene, camera, targets and
// effect descriptions are shared with the original.
func (p *RenderPass) Clone() *RenderPass {
	cp := *p
	return &cp
}

func (p *RenderPass) String() string {
	name := p.Name
	if name == "" {
		name = "pass"
	}
	return fmt.Sprintf("%s[colour=%s depth_only=%t]", name, p.ColourTarget, p.DepthOnly)
}

// ShadowMapTable maps every shadow casting directional light to the
// target its shadow map is rendered into.
type ShadowMapTable map[*components.DirectionalLight]*metadata.RenderTarget

// Lookup returns the shadow map for light or nil when it has none.
func (t ShadowMapTable) Lookup(light *components.DirectionalLight) *metadata.RenderTarget {
	return t[light]
}
