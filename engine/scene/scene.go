package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/spaghettifunk/prism/engine/math"
	"github.com/spaghettifunk/prism/engine/renderer/components"
	"github.com/spaghettifunk/prism/engine/renderer/graph"
	"github.com/spaghettifunk/prism/engine/renderer/metadata"
)

// DefaultAmbientColour is the ambient light every new scene starts with.
var DefaultAmbientColour = mgl32.Vec4{0.25, 0.25, 0.25, 1.0}

// EntityBinding pairs an entity with the render graph it is drawn with.
type EntityBinding struct {
	Graph  *graph.RenderGraph
	Entity *Entity
}

/**
 * @brief A collection of entities and the lights illuminating them.
 * Entities and lights keep their insertion order, which is the order
 * the queue builder emits draws in.
 */
type Scene struct {
	Name     string
	graphs   []*graph.RenderGraph
	entities []EntityBinding
	rig      *components.LightingRig
	nextID   uint32
}

// New creates an empty scene lit by a default ambient light.
func New(name string) *Scene {
	return &Scene{
		Name: name,
		rig: &components.LightingRig{
			AmbientLight: components.NewAmbientLight(DefaultAmbientColour),
		},
	}
}

// CreateRenderGraph creates a graph owned by the scene.
func (s *Scene) CreateRenderGraph() *graph.RenderGraph {
	rg := graph.New()
	s.graphs = append(s.graphs, rg)
	return rg
}

// CreateEntity adds an entity drawn with rg. A nil transform places
// the entity at the origin.
func (s *Scene) CreateEntity(rg *graph.RenderGraph, mesh *metadata.Mesh, transform *math.Transform) *Entity {
	if transform == nil {
		transform = math.TransformCreate()
	}
	e := &Entity{
		ID:            s.nextID,
		Name:          fmt.Sprintf("%s.%d", s.Name, s.nextID),
		Mesh:          mesh,
		Transform:     transform,
		receiveShadow: true,
	}
	s.nextID++
	s.entities = append(s.entities, EntityBinding{Graph: rg, Entity: e})
	return e
}

// Entities returns the (graph, entity) pairs in creation order.
func (s *Scene) Entities() []EntityBinding {
	return s.entities
}

func (s *Scene) RenderGraphs() []*graph.RenderGraph {
	return s.graphs
}

func (s *Scene) LightingRig() *components.LightingRig {
	return s.rig
}

func (s *Scene) SetAmbientLight(colour mgl32.Vec4) {
	s.rig.AmbientLight.Colour = colour
}

func (s *Scene) AddPointLight(light *components.PointLight) *components.PointLight {
	s.rig.PointLights = append(s.rig.PointLights, light)
	return light
}

func (s *Scene) AddDirectionalLight(light *components.DirectionalLight) *components.DirectionalLight {
	s.rig.DirectionalLights = append(s.rig.DirectionalLights, light)
	return light
}
