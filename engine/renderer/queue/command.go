package queue

import (
	"fmt"

	"github.com/spaghettifunk/prism/engine/renderer/components"
	"github.com/spaghettifunk/prism/engine/renderer/metadata"
	"github.com/spaghettifunk/prism/engine/scene"
)

type RenderCommandType int

const (
	RenderCommandTypePassStart RenderCommandType = iota
	RenderCommandTypeDraw
	RenderCommandTypePassEnd
	RenderCommandTypePresent
)

func (t RenderCommandType) String() string {
	switch t {
	case RenderCommandTypePassStart:
		return "PASS_START"
	case RenderCommandTypeDraw:
		return "DRAW"
	case RenderCommandTypePassEnd:
		return "PASS_END"
	case RenderCommandTypePresent:
		return "PRESENT"
	}
	return "UNKNOWN"
}

/**
 * @brief A single instruction for an executor. PASS_START and PASS_END
 * only carry the pass, PRESENT carries nothing. ShadowMap is only ever
 * set on directional light draws.
 */
type RenderCommand struct {
	Type       RenderCommandType
	RenderPass *RenderPass
	Material   *metadata.Material
	Entity     *scene.Entity
	Light      components.Light
	ShadowMap  *metadata.RenderTarget
}

func (c RenderCommand) String() string {
	switch c.Type {
	case RenderCommandTypeDraw:
		material := "<nil>"
		if c.Material != nil {
			material = c.Material.Name
		}
		light := "<nil>"
		if c.Light != nil {
			light = c.Light.LightType().String()
		}
		s := fmt.Sprintf("DRAW entity=%s light=%s material=%s", c.Entity, light, material)
		if c.ShadowMap != nil {
			s += fmt.Sprintf(" shadow_map=%s", c.ShadowMap)
		}
		return s
	case RenderCommandTypePresent:
		return "PRESENT"
	}
	if c.RenderPass == nil {
		return c.Type.String()
	}
	return fmt.Sprintf("%s %s", c.Type, c.RenderPass)
}
