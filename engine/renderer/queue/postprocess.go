package queue

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/spaghettifunk/prism/engine/containers"
	"github.com/spaghettifunk/prism/engine/math"
	"github.com/spaghettifunk/prism/engine/renderer/graph"
	"github.com/spaghettifunk/prism/engine/renderer/metadata"
)

// luminanceWeights are the perceptual weights of the red, green and blue channels.
var luminanceWeights = mgl32.Vec4{0.2126, 0.7152, 0.0722, 0.0}

// graphFunc fills rg for a single stage pass. target is the colour
// target the previous pass in the chain now renders into.
type graphFunc func(rg *graph.RenderGraph, target *metadata.RenderTarget)

// stage appends the passes for one effect to chain.
type stage func(b *Builder, chain []*RenderPass, desc metadata.PostProcessingDescription) ([]*RenderPass, error)

// stages run in this order for every pass.
var stages = []stage{
	bloomStage,
	colourAdjustStage,
	antiAliasingStage,
}

/**
 * @brief Expands every pass into the chain of passes its post
 * processing needs. The last pass of every chain renders into the
 * colour target the original pass asked for.
 */
func (b *Builder) expand(passes []*RenderPass) ([]*RenderPass, error) {
	expanded := make([]*RenderPass, 0, len(passes))

	for i, pass := range passes {
		destination := pass.ColourTarget
		chain := []*RenderPass{pass.Clone()}

		var err error
		for _, s := range stages {
			if chain, err = s(b, chain, pass.PostProcessing); err != nil {
				return nil, fmt.Errorf("failed to expand post processing for pass %d: %w", i, err)
			}
		}

		last := chain[len(chain)-1].Clone()
		last.ColourTarget = destination
		chain[len(chain)-1] = last

		expanded = append(expanded, chain...)
	}

	return expanded, nil
}

/**
 * @brief Appends a full screen pass to chain. The previous last pass is
 * replaced by a clone rendering into a freshly allocated target, and
 * the new pass draws a screen sized sprite with the graph fn builds
 * over that target.
 *
 * @return The new chain, the target the previous pass now renders into
 * and the handle of the scene and camera hosting the new pass.
 */
func (b *Builder) addPass(chain []*RenderPass, fn graphFunc) ([]*RenderPass, *metadata.RenderTarget, containers.Handle, error) {
	handle, data := b.newPassData("post")

	target, err := b.targets.CreateRenderTarget(b.config.Width, b.config.Height)
	if err != nil {
		return nil, nil, 0, err
	}

	rg := data.scene.CreateRenderGraph()
	fn(rg, target)
	data.scene.CreateEntity(rg, b.meshes.Sprite(), math.TransformFromScale(mgl32.Vec3{
		float32(b.config.Width),
		float32(b.config.Height),
		1.0,
	}))

	previous := chain[len(chain)-1].Clone()
	previous.ColourTarget = target

	next := make([]*RenderPass, 0, len(chain)+1)
	next = append(next, chain[:len(chain)-1]...)
	next = append(next, previous, &RenderPass{
		Name:   data.scene.Name,
		Scene:  data.scene,
		Camera: data.camera,
	})

	return next, target, handle, nil
}

// bloomStage emits a pass-through, a threshold, the blur passes and
// an additive composite of the pass-through output with the blur.
func bloomStage(b *Builder, chain []*RenderPass, desc metadata.PostProcessingDescription) ([]*RenderPass, error) {
	bloom := desc.Bloom
	if bloom == nil {
		return chain, nil
	}

	chain, _, _, err := b.addPass(chain, func(rg *graph.RenderGraph, target *metadata.RenderTarget) {
		rg.RenderNode().SetColourInput(rg.Texture(target.ColourTexture()))
	})
	if err != nil {
		return nil, err
	}

	chain, passThrough, _, err := b.addPass(chain, func(rg *graph.RenderGraph, target *metadata.RenderTarget) {
		rg.RenderNode().SetColourInput(rg.Conditional(
			rg.Arithmetic(rg.Texture(target.ColourTexture()), rg.Colour(luminanceWeights), graph.ArithmeticOperatorDot),
			rg.Float(bloom.Threshold),
			rg.Texture(target.ColourTexture()),
			rg.Colour(mgl32.Vec4{0.0, 0.0, 0.0, 1.0}),
			graph.ConditionalOperatorGreater,
		))
	})
	if err != nil {
		return nil, err
	}

	for i := uint32(0); i < bloom.Iterations; i++ {
		chain, _, _, err = b.addPass(chain, func(rg *graph.RenderGraph, target *metadata.RenderTarget) {
			rg.RenderNode().SetColourInput(rg.Blur(rg.Texture(target.ColourTexture())))
		})
		if err != nil {
			return nil, err
		}
	}

	chain, _, _, err = b.addPass(chain, func(rg *graph.RenderGraph, target *metadata.RenderTarget) {
		rg.RenderNode().SetColourInput(rg.Arithmetic(
			rg.Texture(passThrough.ColourTexture()),
			rg.Texture(target.ColourTexture()),
			graph.ArithmeticOperatorAdd,
		))
	})
	return chain, err
}

func colourAdjustStage(b *Builder, chain []*RenderPass, desc metadata.PostProcessingDescription) ([]*RenderPass, error) {
	adjust := desc.ColourAdjust
	if adjust == nil {
		return chain, nil
	}

	chain, _, _, err := b.addPass(chain, func(rg *graph.RenderGraph, target *metadata.RenderTarget) {
		rg.SetRenderNode(graph.NewColourAdjustNode(rg.Texture(target.ColourTexture()), *adjust))
	})
	return chain, err
}

func antiAliasingStage(b *Builder, chain []*RenderPass, desc metadata.PostProcessingDescription) ([]*RenderPass, error) {
	if !desc.AntiAliasing {
		return chain, nil
	}

	chain, _, _, err := b.addPass(chain, func(rg *graph.RenderGraph, target *metadata.RenderTarget) {
		rg.SetRenderNode(graph.NewAntiAliasingNode(rg.Texture(target.ColourTexture())))
	})
	return chain, err
}
