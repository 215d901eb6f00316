package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/prism/engine/math"
	"github.com/spaghettifunk/prism/engine/renderer/components"
	"github.com/spaghettifunk/prism/engine/renderer/metadata"
)

func TestNewSceneHasAmbientLight(t *testing.T) {
	s := New("main")

	rig := s.LightingRig()
	require.NotNil(t, rig.AmbientLight)
	assert.Equal(t, DefaultAmbientColour, rig.AmbientLight.Colour)
	assert.Empty(t, rig.PointLights)
	assert.Empty(t, rig.DirectionalLights)
	assert.Empty(t, s.Entities())
}

func TestCreateEntityKeepsOrder(t *testing.T) {
	s := New("main")
	mesh := &metadata.Mesh{Name: "cube"}

	rg := s.CreateRenderGraph()
	a := s.CreateEntity(rg, mesh, nil)
	b := s.CreateEntity(rg, mesh, math.TransformFromPosition(mgl32.Vec3{1, 0, 0}))

	entities := s.Entities()
	require.Len(t, entities, 2)
	assert.Same(t, a, entities[0].Entity)
	assert.Same(t, b, entities[1].Entity)
	assert.Same(t, rg, entities[0].Graph)
	assert.Len(t, s.RenderGraphs(), 1)

	assert.True(t, a.ReceiveShadow())
	assert.NotNil(t, a.Transform)
	assert.Equal(t, "main.1", b.String())
	assert.NotEqual(t, a.ID, b.ID)
}

func TestLightsKeepInsertionOrder(t *testing.T) {
	s := New("main")
	p1 := s.AddPointLight(components.NewPointLight(mgl32.Vec3{1, 0, 0}, mgl32.Vec4{1, 1, 1, 1}))
	p2 := s.AddPointLight(components.NewPointLight(mgl32.Vec3{2, 0, 0}, mgl32.Vec4{1, 1, 1, 1}))
	d := s.AddDirectionalLight(components.NewDirectionalLight(mgl32.Vec3{0, -1, 0}, mgl32.Vec4{1, 1, 1, 1}, true))

	rig := s.LightingRig()
	assert.Equal(t, []*components.PointLight{p1, p2}, rig.PointLights)
	assert.Equal(t, []*components.DirectionalLight{d}, rig.DirectionalLights)

	s.SetAmbientLight(mgl32.Vec4{0.1, 0.1, 0.1, 1})
	assert.Equal(t, float32(0.1), rig.AmbientLight.Colour.X())
}
