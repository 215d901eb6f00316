package queue

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/spaghettifunk/prism/engine/math"
	"github.com/spaghettifunk/prism/engine/renderer/components"
	"github.com/spaghettifunk/prism/engine/renderer/graph"
)

/**
 * @brief Turns the final pass list into commands. Every pass becomes a
 * PASS_START, its draws and a PASS_END; a single PRESENT closes the
 * stream.
 */
func (b *Builder) encode(passes []*RenderPass, shadows ShadowMapTable) ([]RenderCommand, error) {
	commands := make([]RenderCommand, 0, len(passes)*3+1)

	for i, pass := range passes {
		commands = append(commands, RenderCommand{Type: RenderCommandTypePassStart, RenderPass: pass})

		for _, lightType := range lightTypesFor(pass) {
			draws, err := encodeLightPass(b.materials, pass, lightType, shadows)
			if err != nil {
				return nil, fmt.Errorf("failed to encode %s light for pass %d: %w", lightType, i, err)
			}
			commands = append(commands, draws...)
		}

		if !pass.DepthOnly && pass.SkyBox != nil {
			draw, err := b.encodeSkyBox(pass)
			if err != nil {
				return nil, fmt.Errorf("failed to encode sky box for pass %d: %w", i, err)
			}
			commands = append(commands, draw)
		}

		commands = append(commands, RenderCommand{Type: RenderCommandTypePassEnd, RenderPass: pass})
	}

	return append(commands, RenderCommand{Type: RenderCommandTypePresent}), nil
}

// lightTypesFor returns the light types drawn in pass, in draw order.
// Ambient occlusion replaces the ambient draw and depth only passes
// skip the direct lights.
func lightTypesFor(pass *RenderPass) []components.LightType {
	types := make([]components.LightType, 0, 3)
	if pass.PostProcessing.AmbientOcclusion == nil {
		types = append(types, components.LightTypeAmbient)
	}
	if !pass.DepthOnly {
		types = append(types, components.LightTypePoint, components.LightTypeDirectional)
	}
	return types
}

/**
 * @brief Emits the draws lighting every entity of the pass with every
 * light of one type. Entities are the outer loop and lights the inner
 * one; one material is created per entity. Directional draws carry the
 * light's shadow map when the entity receives shadows.
 */
func encodeLightPass(factory MaterialFactory, pass *RenderPass, lightType components.LightType, shadows ShadowMapTable) ([]RenderCommand, error) {
	rig := pass.Scene.LightingRig()

	var lights []components.Light
	switch lightType {
	case components.LightTypeAmbient:
		lights = []components.Light{rig.AmbientLight}
	case components.LightTypePoint:
		for _, l := range rig.PointLights {
			lights = append(lights, l)
		}
	case components.LightTypeDirectional:
		for _, l := range rig.DirectionalLights {
			lights = append(lights, l)
		}
	default:
		return nil, fmt.Errorf("unsupported light type %d", lightType)
	}
	if len(lights) == 0 {
		return nil, nil
	}

	needsNormal := pass.NormalTarget != nil && lightType == components.LightTypeAmbient
	needsPosition := pass.PositionTarget != nil && lightType == components.LightTypeAmbient

	entities := pass.Scene.Entities()
	commands := make([]RenderCommand, 0, len(entities)*len(lights))
	for _, binding := range entities {
		material, err := factory.CreateMaterial(binding.Graph, binding.Entity, pass.ColourTarget, lightType, needsNormal, needsPosition)
		if err != nil {
			return nil, err
		}

		for _, light := range lights {
			cmd := RenderCommand{
				Type:       RenderCommandTypeDraw,
				RenderPass: pass,
				Material:   material,
				Entity:     binding.Entity,
				Light:      light,
			}
			if directional, ok := light.(*components.DirectionalLight); ok && binding.Entity.ReceiveShadow() {
				cmd.ShadowMap = shadows.Lookup(directional)
			}
			commands = append(commands, cmd)
		}
	}

	return commands, nil
}

// encodeSkyBox draws a cube around the camera with the pass's sky box.
// The cube lives in a scratch scene so the caller's scene is untouched.
func (b *Builder) encodeSkyBox(pass *RenderPass) (RenderCommand, error) {
	_, data := b.newPassData("sky_box")

	rg := data.scene.CreateRenderGraph()
	rg.SetRenderNode(graph.NewSkyBoxNode(pass.SkyBox))
	entity := data.scene.CreateEntity(rg, b.meshes.Cube(), math.TransformFromScale(mgl32.Vec3{0.5, 0.5, 0.5}))

	material, err := b.materials.CreateMaterial(rg, entity, pass.ColourTarget, components.LightTypeAmbient, false, false)
	if err != nil {
		return RenderCommand{}, err
	}

	return RenderCommand{
		Type:       RenderCommandTypeDraw,
		RenderPass: pass,
		Material:   material,
		Entity:     entity,
		Light:      pass.Scene.LightingRig().AmbientLight,
	}, nil
}
