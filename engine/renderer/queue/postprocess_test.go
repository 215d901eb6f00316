package queue

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/prism/engine/renderer/components"
	"github.com/spaghettifunk/prism/engine/renderer/graph"
	"github.com/spaghettifunk/prism/engine/renderer/metadata"
)

func TestBloomExpansion(t *testing.T) {
	b, _, _ := newTestBuilder(t)
	dest := newTarget(99, testWidth, testHeight)

	pass := newTestPass(newTestScene(1, 0))
	pass.ColourTarget = dest
	pass.PostProcessing.Bloom = &metadata.BloomDescription{Threshold: 0.8, Iterations: 3}

	commands, err := b.Build([]*RenderPass{pass})
	require.NoError(t, err)
	requireWellFormed(t, commands)

	passes := passesOf(commands)
	// original + pass-through + threshold + 3 blurs + composite
	require.Len(t, passes, 7)

	original := passes[0]
	assert.Same(t, pass.Scene, original.Scene)
	assert.NotSame(t, dest, original.ColourTarget)
	assert.Same(t, dest, passes[6].ColourTarget)

	// every stage samples the previous stage's output
	for i := 1; i < len(passes); i++ {
		textures := sampledTextures(t, passes[i])
		assert.Contains(t, textures, passes[i-1].ColourTarget.ColourTexture(), "stage %d", i)
	}

	passThrough := passes[1].Scene.Entities()[0].Graph
	assert.IsType(t, &graph.TextureNode{}, passThrough.RenderNode().ColourInput())

	threshold := passes[2].Scene.Entities()[0].Graph
	cond, ok := threshold.RenderNode().ColourInput().(*graph.ConditionalNode)
	require.True(t, ok)
	assert.Equal(t, graph.ConditionalOperatorGreater, cond.Operator)
	assert.Equal(t, float32(0.8), cond.B.(*graph.ValueNode[float32]).Value)
	dot := cond.A.(*graph.ArithmeticNode)
	assert.Equal(t, graph.ArithmeticOperatorDot, dot.Operator)
	assert.Equal(t, mgl32.Vec4{0.2126, 0.7152, 0.0722, 0}, dot.B.(*graph.ValueNode[mgl32.Vec4]).Value)
	assert.Equal(t, mgl32.Vec4{0, 0, 0, 1}, cond.Otherwise.(*graph.ValueNode[mgl32.Vec4]).Value)

	for i := 3; i < 6; i++ {
		rg := passes[i].Scene.Entities()[0].Graph
		assert.IsType(t, &graph.BlurNode{}, rg.RenderNode().ColourInput(), "stage %d", i)
	}

	// composite adds the pass-through output to the last blur
	composite := passes[6].Scene.Entities()[0].Graph
	add, ok := composite.RenderNode().ColourInput().(*graph.ArithmeticNode)
	require.True(t, ok)
	assert.Equal(t, graph.ArithmeticOperatorAdd, add.Operator)
	assert.Same(t, passes[1].ColourTarget.ColourTexture(), add.A.(*graph.TextureNode).Texture)
	assert.Same(t, passes[5].ColourTarget.ColourTexture(), add.B.(*graph.TextureNode).Texture)
}

func TestSyntheticPassesAreFullScreen(t *testing.T) {
	b, provider, _ := newTestBuilder(t)

	pass := newTestPass(newTestScene(1, 0))
	pass.PostProcessing.AntiAliasing = true

	commands, err := b.Build([]*RenderPass{pass})
	require.NoError(t, err)

	passes := passesOf(commands)
	require.Len(t, passes, 2)
	aa := passes[1]

	assert.Equal(t, components.CameraTypeOrthographic, aa.Camera.Type)
	assert.Equal(t, testWidth, aa.Camera.Width)
	assert.Equal(t, testHeight, aa.Camera.Height)
	assert.Nil(t, aa.ColourTarget)
	assert.False(t, aa.PostProcessing.Any())

	require.Len(t, provider.targets, 1)
	assert.Equal(t, testWidth, provider.targets[0].Width)
	assert.Equal(t, testHeight, provider.targets[0].Height)

	entities := aa.Scene.Entities()
	require.Len(t, entities, 1)
	assert.Equal(t, "sprite", entities[0].Entity.Mesh.Name)
	assert.Equal(t, mgl32.Vec3{float32(testWidth), float32(testHeight), 1}, entities[0].Entity.Transform.Scale)
	assert.IsType(t, &graph.AntiAliasingNode{}, entities[0].Graph.RenderNode())

	// the sprite is lit by the synthetic scene's ambient light
	draws := drawsFor(commands, aa)
	require.Len(t, draws, 1)
	assert.Same(t, aa.Scene.LightingRig().AmbientLight, draws[0].Light)
}

func TestStageOrder(t *testing.T) {
	b, _, _ := newTestBuilder(t)

	pass := newTestPass(newTestScene(1, 0))
	pass.PostProcessing = metadata.PostProcessingDescription{
		Bloom:        &metadata.BloomDescription{Threshold: 1.0, Iterations: 1},
		ColourAdjust: metadata.DefaultColourAdjust(),
		AntiAliasing: true,
	}

	commands, err := b.Build([]*RenderPass{pass})
	require.NoError(t, err)

	passes := passesOf(commands)
	require.Len(t, passes, 1+4+1+1)

	adjust := passes[5].Scene.Entities()[0].Graph.RenderNode()
	require.IsType(t, &graph.ColourAdjustNode{}, adjust)
	assert.Equal(t, *metadata.DefaultColourAdjust(), adjust.(*graph.ColourAdjustNode).Description)
	assert.IsType(t, &graph.AntiAliasingNode{}, passes[6].Scene.Entities()[0].Graph.RenderNode())
	assert.Nil(t, passes[6].ColourTarget)
}

func TestBloomWithoutBlur(t *testing.T) {
	b, _, _ := newTestBuilder(t)

	pass := newTestPass(newTestScene(1, 0))
	pass.PostProcessing.Bloom = &metadata.BloomDescription{Threshold: 0.5, Iterations: 0}

	commands, err := b.Build([]*RenderPass{pass})
	require.NoError(t, err)

	passes := passesOf(commands)
	require.Len(t, passes, 4)

	add := passes[3].Scene.Entities()[0].Graph.RenderNode().ColourInput().(*graph.ArithmeticNode)
	assert.Same(t, passes[1].ColourTarget.ColourTexture(), add.A.(*graph.TextureNode).Texture)
	assert.Same(t, passes[2].ColourTarget.ColourTexture(), add.B.(*graph.TextureNode).Texture)
}

func TestEveryPassIsExpandedIndependently(t *testing.T) {
	b, _, _ := newTestBuilder(t)
	destA := newTarget(90, testWidth, testHeight)
	destB := newTarget(91, testWidth, testHeight)

	a := newTestPass(newTestScene(1, 0))
	a.Name = "a"
	a.ColourTarget = destA
	a.PostProcessing.AntiAliasing = true

	bp := newTestPass(newTestScene(1, 0))
	bp.Name = "b"
	bp.ColourTarget = destB
	bp.PostProcessing.ColourAdjust = metadata.DefaultColourAdjust()

	commands, err := b.Build([]*RenderPass{a, bp})
	require.NoError(t, err)

	passes := passesOf(commands)
	require.Len(t, passes, 4)
	assert.Equal(t, "a", passes[0].Name)
	assert.Same(t, destA, passes[1].ColourTarget)
	assert.Equal(t, "b", passes[2].Name)
	assert.Same(t, destB, passes[3].ColourTarget)
}
