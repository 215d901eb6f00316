package queue

import (
	"fmt"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/prism/engine/renderer/components"
	"github.com/spaghettifunk/prism/engine/renderer/graph"
	"github.com/spaghettifunk/prism/engine/renderer/metadata"
	"github.com/spaghettifunk/prism/engine/scene"
)

const (
	testWidth  uint32 = 800
	testHeight uint32 = 600
)

type recordingProvider struct {
	targets []*metadata.RenderTarget
	hybrids [][2]*metadata.RenderTarget
	// fail every CreateRenderTarget call after failAfter successful ones
	failAfter int
	err       error
}

func (p *recordingProvider) CreateRenderTarget(width, height uint32) (*metadata.RenderTarget, error) {
	if p.err != nil && len(p.targets) >= p.failAfter {
		return nil, p.err
	}
	rt := newTarget(uint32(len(p.targets)+1), width, height)
	p.targets = append(p.targets, rt)
	return rt, nil
}

func (p *recordingProvider) CreateHybridRenderTarget(colour, depth *metadata.RenderTarget) (*metadata.RenderTarget, error) {
	p.hybrids = append(p.hybrids, [2]*metadata.RenderTarget{colour, depth})
	return &metadata.RenderTarget{
		ID:     1000 + uint32(len(p.hybrids)),
		Name:   fmt.Sprintf("hybrid%d", len(p.hybrids)),
		Colour: colour.ColourTexture(),
		Depth:  depth.DepthTexture(),
		Hybrid: true,
	}, nil
}

type materialCall struct {
	graph         *graph.RenderGraph
	entity        *scene.Entity
	target        *metadata.RenderTarget
	lightType     components.LightType
	needsNormal   bool
	needsPosition bool
}

type recordingFactory struct {
	calls []materialCall
	err   error
}

func (f *recordingFactory) CreateMaterial(rg *graph.RenderGraph, entity *scene.Entity, target *metadata.RenderTarget, lightType components.LightType, needsNormal, needsPosition bool) (*metadata.Material, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.calls = append(f.calls, materialCall{rg, entity, target, lightType, needsNormal, needsPosition})
	id := uint32(len(f.calls))
	return &metadata.Material{ID: id, Name: fmt.Sprintf("material%d", id)}, nil
}

func newTarget(id, width, height uint32) *metadata.RenderTarget {
	return &metadata.RenderTarget{
		ID:     id,
		Name:   fmt.Sprintf("rt%d", id),
		Width:  width,
		Height: height,
		Colour: &metadata.Texture{ID: id * 2, Name: fmt.Sprintf("rt%d.colour", id), Width: width, Height: height},
		Depth:  &metadata.Texture{ID: id*2 + 1, Name: fmt.Sprintf("rt%d.depth", id), Width: width, Height: height},
	}
}

func newTestBuilder(t *testing.T) (*Builder, *recordingProvider, *recordingFactory) {
	t.Helper()
	provider := &recordingProvider{}
	factory := &recordingFactory{}
	b, err := New(Config{Width: testWidth, Height: testHeight}, provider, factory)
	require.NoError(t, err)
	return b, provider, factory
}

// newTestScene creates a scene with the given number of entities and
// point lights and one directional light per entry in shadows.
func newTestScene(entities, points int, shadows ...bool) *scene.Scene {
	s := scene.New("test")
	for i := 0; i < entities; i++ {
		s.CreateEntity(s.CreateRenderGraph(), &metadata.Mesh{Name: "cube"}, nil)
	}
	for i := 0; i < points; i++ {
		s.AddPointLight(components.NewPointLight(mgl32.Vec3{float32(i), 1, 0}, mgl32.Vec4{1, 1, 1, 1}))
	}
	for _, casts := range shadows {
		s.AddDirectionalLight(components.NewDirectionalLight(mgl32.Vec3{-1, -1, 0}, mgl32.Vec4{1, 1, 1, 1}, casts))
	}
	return s
}

func newTestCamera() *components.Camera {
	c := components.NewPerspectiveCamera(mgl32.DegToRad(45), testWidth, testHeight, 0.1, 1000)
	c.SetPosition(mgl32.Vec3{0, 0, 10})
	return c
}

func newTestPass(s *scene.Scene) *RenderPass {
	return &RenderPass{
		Name:        "main",
		Scene:       s,
		Camera:      newTestCamera(),
		ClearColour: true,
		ClearDepth:  true,
	}
}

// passesOf returns the passes of a stream in PASS_START order.
func passesOf(commands []RenderCommand) []*RenderPass {
	var passes []*RenderPass
	for _, c := range commands {
		if c.Type == RenderCommandTypePassStart {
			passes = append(passes, c.RenderPass)
		}
	}
	return passes
}

func drawsFor(commands []RenderCommand, pass *RenderPass) []RenderCommand {
	var draws []RenderCommand
	for _, c := range commands {
		if c.Type == RenderCommandTypeDraw && c.RenderPass == pass {
			draws = append(draws, c)
		}
	}
	return draws
}

func countLight(draws []RenderCommand, lightType components.LightType) int {
	n := 0
	for _, d := range draws {
		if d.Light.LightType() == lightType {
			n++
		}
	}
	return n
}

// sampledTextures lists the textures the first entity of a synthetic
// pass samples, in creation order.
func sampledTextures(t *testing.T, pass *RenderPass) []*metadata.Texture {
	t.Helper()
	entities := pass.Scene.Entities()
	require.NotEmpty(t, entities)

	var textures []*metadata.Texture
	for _, n := range entities[0].Graph.Nodes() {
		if tn, ok := n.(*graph.TextureNode); ok {
			textures = append(textures, tn.Texture)
		}
	}
	return textures
}

// requireWellFormed checks span nesting and the single trailing PRESENT.
func requireWellFormed(t *testing.T, commands []RenderCommand) {
	t.Helper()
	require.NotEmpty(t, commands)

	var open *RenderPass
	seen := make(map[*RenderPass]bool)
	for i, c := range commands {
		switch c.Type {
		case RenderCommandTypePassStart:
			require.Nil(t, open, "command %d starts a pass inside another", i)
			require.False(t, seen[c.RenderPass], "command %d starts a pass twice", i)
			seen[c.RenderPass] = true
			open = c.RenderPass
		case RenderCommandTypeDraw:
			require.NotNil(t, open, "command %d draws outside a pass", i)
			require.Same(t, open, c.RenderPass, "command %d draws into the wrong pass", i)
		case RenderCommandTypePassEnd:
			require.Same(t, open, c.RenderPass, "command %d ends the wrong pass", i)
			open = nil
		case RenderCommandTypePresent:
			require.Equal(t, len(commands)-1, i, "PRESENT must be last")
		}
	}
	require.Nil(t, open)
	require.Equal(t, RenderCommandTypePresent, commands[len(commands)-1].Type)
}
