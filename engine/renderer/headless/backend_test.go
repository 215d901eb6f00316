package headless

import (
	"sync"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/prism/engine/core"
	"github.com/spaghettifunk/prism/engine/renderer/components"
	"github.com/spaghettifunk/prism/engine/renderer/metadata"
	"github.com/spaghettifunk/prism/engine/renderer/queue"
	"github.com/spaghettifunk/prism/engine/scene"
)

func TestInitializeValidatesSize(t *testing.T) {
	b := New()
	assert.ErrorIs(t, b.Initialize("test", 0, 600), core.ErrInvalidConfig)
	assert.NoError(t, b.Initialize("test", 800, 600))
}

func TestFrameLifecycle(t *testing.T) {
	b := New()
	require.NoError(t, b.BeginFrame(0.016))
	assert.Error(t, b.BeginFrame(0.016))
	require.NoError(t, b.EndFrame(0.016))
	assert.Error(t, b.EndFrame(0.016))
	assert.Equal(t, uint64(1), b.FrameNumber())
}

func TestRenderTargets(t *testing.T) {
	b := New()

	rt, err := b.CreateRenderTarget(800, 600)
	require.NoError(t, err)
	assert.NotEmpty(t, rt.Name)
	assert.Equal(t, uint32(800), rt.ColourTexture().Width)
	assert.True(t, rt.DepthTexture().Flags.Has(metadata.TextureFlagDepth))
	assert.False(t, rt.ColourTexture().Flags.Has(metadata.TextureFlagDepth))
	assert.True(t, rt.ColourTexture().Flags.Has(metadata.TextureFlagIsWriteable))
	assert.True(t, rt.DepthTexture().Flags.Has(metadata.TextureFlagIsWriteable))

	other, err := b.CreateRenderTarget(800, 600)
	require.NoError(t, err)
	assert.NotEqual(t, rt.ID, other.ID)
	assert.NotEqual(t, rt.Name, other.Name)

	_, err = b.CreateRenderTarget(0, 10)
	assert.ErrorIs(t, err, core.ErrInvalidConfig)

	hybrid, err := b.CreateHybridRenderTarget(rt, other)
	require.NoError(t, err)
	assert.True(t, hybrid.Hybrid)
	assert.Same(t, rt.ColourTexture(), hybrid.ColourTexture())
	assert.Same(t, other.DepthTexture(), hybrid.DepthTexture())
	assert.Equal(t, 3, b.RenderTargetCount())

	screen, err := b.CreateHybridRenderTarget(nil, other)
	require.NoError(t, err)
	assert.Nil(t, screen.ColourTexture())

	require.NoError(t, b.DestroyRenderTarget(hybrid))
	assert.ErrorIs(t, b.DestroyRenderTarget(hybrid), core.ErrUnknownTarget)
	assert.ErrorIs(t, b.DestroyRenderTarget(nil), core.ErrUnknownTarget)

	_, err = b.CreateHybridRenderTarget(hybrid, other)
	assert.ErrorIs(t, err, core.ErrUnknownTarget)
	_, err = b.CreateHybridRenderTarget(rt, nil)
	assert.ErrorIs(t, err, core.ErrUnknownTarget)
}

func TestMaterialsAreCached(t *testing.T) {
	b := New()
	s := scene.New("test")
	tex := &metadata.Texture{ID: 1, Name: "a"}

	rg1 := s.CreateRenderGraph()
	rg1.RenderNode().SetColourInput(rg1.Texture(tex))
	rg2 := s.CreateRenderGraph()
	rg2.RenderNode().SetColourInput(rg2.Texture(tex))

	e := s.CreateEntity(rg1, &metadata.Mesh{}, nil)

	m1, err := b.CreateMaterial(rg1, e, nil, components.LightTypeAmbient, false, false)
	require.NoError(t, err)
	m2, err := b.CreateMaterial(rg2, e, nil, components.LightTypeAmbient, false, false)
	require.NoError(t, err)
	assert.Same(t, m1, m2)

	m3, err := b.CreateMaterial(rg1, e, nil, components.LightTypePoint, false, false)
	require.NoError(t, err)
	m4, err := b.CreateMaterial(rg1, e, nil, components.LightTypeAmbient, true, false)
	require.NoError(t, err)
	assert.NotSame(t, m1, m3)
	assert.NotSame(t, m1, m4)
	assert.Equal(t, 3, b.MaterialCount())

	_, err = b.CreateMaterial(nil, e, nil, components.LightTypeAmbient, false, false)
	assert.Error(t, err)

	require.NoError(t, b.Shutdown())
	assert.Zero(t, b.MaterialCount())
}

func TestBackendServesConcurrentCallers(t *testing.T) {
	b := New()

	var wg sync.WaitGroup
	ids := make([]uint32, 32)
	for i := range ids {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			rt, err := b.CreateRenderTarget(64, 64)
			if assert.NoError(t, err) {
				ids[i] = rt.ID
			}
		}(i)
	}
	wg.Wait()

	seen := make(map[uint32]bool)
	for _, id := range ids {
		assert.False(t, seen[id])
		seen[id] = true
	}
}

func TestBackendExecutesBuiltQueues(t *testing.T) {
	b := New()
	require.NoError(t, b.Initialize("test", 320, 240))

	s := scene.New("main")
	s.CreateEntity(s.CreateRenderGraph(), &metadata.Mesh{Name: "cube"}, nil)
	s.AddPointLight(components.NewPointLight(mgl32.Vec3{0, 2, 0}, mgl32.Vec4{1, 1, 1, 1}))
	s.AddDirectionalLight(components.NewDirectionalLight(mgl32.Vec3{0, -1, 0}, mgl32.Vec4{1, 1, 1, 1}, true))

	dest, err := b.CreateRenderTarget(320, 240)
	require.NoError(t, err)

	pass := &queue.RenderPass{
		Name:         "main",
		Scene:        s,
		Camera:       components.NewPerspectiveCamera(mgl32.DegToRad(60), 320, 240, 0.1, 100),
		ColourTarget: dest,
		ClearColour:  true,
		ClearDepth:   true,
		SkyBox:       metadata.NewCubeMap("sky"),
		PostProcessing: metadata.PostProcessingDescription{
			Bloom:            &metadata.BloomDescription{Threshold: 0.8, Iterations: 2},
			AmbientOcclusion: metadata.DefaultAmbientOcclusion(),
			ColourAdjust:     metadata.DefaultColourAdjust(),
			AntiAliasing:     true,
		},
	}

	builder, err := queue.New(queue.Config{Width: 320, Height: 240}, b, b)
	require.NoError(t, err)

	commands, err := builder.Build([]*queue.RenderPass{pass})
	require.NoError(t, err)
	require.NoError(t, b.Execute(commands))

	stats := b.Stats()
	assert.Equal(t, 1, stats.Frames)
	// shadow, ao data, ao, main, 5 bloom, colour adjust, anti-aliasing
	assert.Equal(t, 11, stats.Passes)
	assert.Equal(t, 1, stats.ShadowedDraws)
	assert.Equal(t, 1, stats.DrawsByLight[components.LightTypePoint])
}
