package queue

import (
	"fmt"

	"github.com/spaghettifunk/prism/engine/renderer/graph"
	"github.com/spaghettifunk/prism/engine/renderer/metadata"
)

/**
 * @brief Synthesizes the passes that have to run before the input
 * passes: one shadow pass per shadow casting directional light and, for
 * passes asking for ambient occlusion, a data pass writing normals and
 * positions followed by the occlusion pass itself.
 *
 * @return The pre-passes in order, the light to shadow map table and
 * clones of the input passes rewired to consume the occlusion output.
 */
func (b *Builder) inject(passes []*RenderPass) ([]*RenderPass, ShadowMapTable, []*RenderPass, error) {
	pre := make([]*RenderPass, 0)
	shadows := make(ShadowMapTable)
	initial := make([]*RenderPass, 0, len(passes))

	for i, input := range passes {
		pass := input.Clone()

		for _, light := range pass.Scene.LightingRig().DirectionalLights {
			if !light.CastsShadows() {
				continue
			}
			rt, err := b.targets.CreateRenderTarget(b.config.ShadowMapSize, b.config.ShadowMapSize)
			if err != nil {
				return nil, nil, nil, fmt.Errorf("failed to create shadow map for pass %d: %w", i, err)
			}

			shadow := pass.Clone()
			shadow.Name = pass.Name + ".shadow"
			shadow.PostProcessing = metadata.PostProcessingDescription{}
			shadow.Camera = light.ShadowCamera()
			shadow.ColourTarget = rt
			shadow.NormalTarget = nil
			shadow.PositionTarget = nil
			shadow.DepthOnly = true
			shadow.ClearColour = true
			shadow.ClearDepth = true

			pre = append(pre, shadow)
			shadows[light] = rt
		}

		if ao := pass.PostProcessing.AmbientOcclusion; ao != nil {
			var err error
			pre, err = b.injectAmbientOcclusion(pre, pass, *ao)
			if err != nil {
				return nil, nil, nil, fmt.Errorf("failed to inject ambient occlusion for pass %d: %w", i, err)
			}
		}

		initial = append(initial, pass)
	}

	return pre, shadows, initial, nil
}

// injectAmbientOcclusion appends the data and occlusion passes for pass
// to pre and rewires pass, which must be a clone owned by the builder.
func (b *Builder) injectAmbientOcclusion(pre []*RenderPass, pass *RenderPass, desc metadata.AmbientOcclusionDescription) ([]*RenderPass, error) {
	normal, err := b.targets.CreateRenderTarget(b.config.Width, b.config.Height)
	if err != nil {
		return nil, err
	}
	position, err := b.targets.CreateRenderTarget(b.config.Width, b.config.Height)
	if err != nil {
		return nil, err
	}

	data := pass.Clone()
	data.Name = pass.Name + ".ao_data"
	data.PostProcessing = metadata.PostProcessingDescription{}
	data.ColourTarget = nil
	data.NormalTarget = normal
	data.PositionTarget = position
	data.DepthOnly = true
	data.ClearColour = true
	pre = append(pre, data)

	// the data pass renders its colour into aoTarget, which the occlusion
	// pass samples together with the normal and position buffers
	pre, aoTarget, handle, err := b.addPass(pre, func(rg *graph.RenderGraph, target *metadata.RenderTarget) {
		rg.SetRenderNode(graph.NewAmbientOcclusionNode(
			rg.Texture(target.ColourTexture()),
			rg.Texture(normal.ColourTexture()),
			rg.Texture(position.ColourTexture()),
			desc,
		))
	})
	if err != nil {
		return nil, err
	}

	// render the occlusion pass with the perspective camera of the data
	// pass, never the full screen orthographic one
	hosted := b.passData.MustGet(handle)
	hosted.camera = data.Camera.Copy()

	compute := pre[len(pre)-1].Clone()
	compute.Name = pass.Name + ".ao"
	compute.Camera = hosted.camera
	compute.ColourTarget = pass.ColourTarget
	pre[len(pre)-1] = compute

	hybrid, err := b.targets.CreateHybridRenderTarget(compute.ColourTarget, aoTarget)
	if err != nil {
		return nil, err
	}
	pass.ColourTarget = hybrid
	pass.ClearColour = false
	pass.ClearDepth = false

	return pre, nil
}
