package testbed

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/spaghettifunk/prism/engine"
	"github.com/spaghettifunk/prism/engine/core"
	"github.com/spaghettifunk/prism/engine/math"
	"github.com/spaghettifunk/prism/engine/renderer/components"
	"github.com/spaghettifunk/prism/engine/renderer/metadata"
	"github.com/spaghettifunk/prism/engine/renderer/queue"
	"github.com/spaghettifunk/prism/engine/scene"
	"github.com/spaghettifunk/prism/engine/systems"
)

type TestGame struct {
	*engine.Game
}

type gameState struct {
	WorldCamera   *components.Camera
	MinimapCamera *components.Camera
	World         *scene.Scene
	Minimap       *metadata.RenderTarget

	// spinning cubes, each parented to the previous one
	cubes []*scene.Entity

	width  uint32
	height uint32

	frames     uint64
	lastCounts []int
}

func NewTestGame() (*TestGame, error) {
	tg := &TestGame{
		Game: &engine.Game{
			ApplicationConfig: &engine.ApplicationConfig{
				Width:  1280,
				Height: 720,
				Name:   "Prism Testbed",
			},
			State: &gameState{},
		},
	}

	tg.FnInitialize = tg.Initialize
	tg.FnUpdate = tg.Update
	tg.FnRender = tg.Render
	tg.FnOnResize = tg.OnResize
	tg.FnShutdown = tg.Shutdown

	return tg, nil
}

/**
 * @brief Builds a small lit world: a ground sprite, three parented
 * cubes, a shadow casting sun and a point light. The world is drawn by
 * two views, the main one with every post processing effect and a top
 * down minimap rendered into its own target.
 */
func (g *TestGame) Initialize(sm *systems.SystemManager) ([]systems.View, error) {
	core.LogDebug("TestGame Initialize fn....")

	if sm == nil {
		return nil, fmt.Errorf("the engine is not yet initialized with all the system managers: %w", core.ErrInvalidConfig)
	}
	state := g.State.(*gameState)
	config := g.ApplicationConfig

	state.WorldCamera = sm.CameraSystem.GetDefault()
	state.WorldCamera.SetPosition(mgl32.Vec3{10.5, 5.0, 9.5})
	state.WorldCamera.Yaw(mgl32.DegToRad(45))

	state.MinimapCamera = components.NewOrthographicCamera(256, 256)
	state.MinimapCamera.SetPosition(mgl32.Vec3{0, 50, 0})
	state.MinimapCamera.SetEulerRotation(mgl32.Vec3{mgl32.DegToRad(-90), 0, 0})
	if err := sm.CameraSystem.Register("minimap", state.MinimapCamera); err != nil {
		return nil, err
	}

	world := scene.New("world")
	world.SetAmbientLight(mgl32.Vec4{0.2, 0.2, 0.25, 1})
	world.AddDirectionalLight(components.NewDirectionalLight(mgl32.Vec3{-0.5, -1, -0.3}, mgl32.Vec4{1, 0.95, 0.8, 1}, true))
	world.AddPointLight(components.NewPointLight(mgl32.Vec3{0, 4, 0}, mgl32.Vec4{0.4, 0.6, 1, 1}))

	ground := world.CreateEntity(world.CreateRenderGraph(), sm.MeshSystem.Sprite(), math.TransformFromPositionRotationScale(
		mgl32.Vec3{},
		mgl32.QuatRotate(mgl32.DegToRad(-90), mgl32.Vec3{1, 0, 0}),
		mgl32.Vec3{40, 40, 1},
	))
	ground.Name = "ground"

	var parent *math.Transform
	for i, size := range []float32{4, 2, 1} {
		rg := world.CreateRenderGraph()
		rg.RenderNode().SetColourInput(rg.Colour(mgl32.Vec4{1, float32(i) * 0.4, 0.2, 1}))

		transform := math.TransformFromPositionRotationScale(
			mgl32.Vec3{float32(i) * 5, size / 2, 1},
			mgl32.QuatIdent(),
			mgl32.Vec3{size, size, size},
		)
		transform.Parent = parent
		parent = transform

		cube := world.CreateEntity(rg, sm.MeshSystem.Cube(), transform)
		cube.Name = fmt.Sprintf("cube.%d", i)
		state.cubes = append(state.cubes, cube)
	}
	state.World = world

	minimap, err := sm.FrameSystem.Targets().CreateRenderTarget(256, 256)
	if err != nil {
		return nil, err
	}
	minimap.Name = "minimap"
	state.Minimap = minimap

	colourAdjust := metadata.DefaultColourAdjust()
	ao := metadata.DefaultAmbientOcclusion()
	views := []systems.View{
		{
			Name: "main",
			Passes: []*queue.RenderPass{{
				Name:        "opaque",
				Scene:       world,
				Camera:      state.WorldCamera,
				ClearColour: true,
				ClearDepth:  true,
				ClearValue:  mgl32.Vec4{0.39, 0.58, 0.93, 1},
				SkyBox:      metadata.NewCubeMap("skybox"),
				PostProcessing: metadata.PostProcessingDescription{
					Bloom:            &metadata.BloomDescription{Threshold: 0.8, Iterations: 2},
					ColourAdjust:     colourAdjust,
					AntiAliasing:     true,
					AmbientOcclusion: ao,
				},
			}},
		},
		{
			Name: "minimap",
			Passes: []*queue.RenderPass{{
				Name:         "minimap",
				Scene:        world,
				Camera:       state.MinimapCamera,
				ColourTarget: minimap,
				ClearColour:  true,
				ClearDepth:   true,
				ClearValue:   mgl32.Vec4{0, 0, 0, 1},
			}},
		},
	}

	state.width, state.height = config.Width, config.Height
	return views, nil
}

func (g *TestGame) Update(deltaTime float64) error {
	state := g.State.(*gameState)

	// Perform a small rotation on the cubes. Children inherit their parent's.
	rotation := mgl32.QuatRotate(float32(0.5*deltaTime), mgl32.Vec3{0, 1, 0})
	for _, c := range state.cubes {
		c.Transform.Rotate(rotation)
	}

	// Slowly orbit the world camera.
	state.WorldCamera.Yaw(float32(0.1 * deltaTime))
	return nil
}

func (g *TestGame) Render(results []systems.ViewResult, deltaTime float64) error {
	state := g.State.(*gameState)
	state.frames++

	state.lastCounts = state.lastCounts[:0]
	for _, r := range results {
		state.lastCounts = append(state.lastCounts, len(r.Commands))
	}

	if state.frames%60 == 1 {
		pos := state.WorldCamera.GetPosition()
		rot := state.WorldCamera.GetEulerRotation()
		core.LogInfo("Frame %d: commands per view %v, avg build %.3fms, camera pos [%.2f %.2f %.2f] rot [%.1f %.1f %.1f]",
			state.frames, state.lastCounts, core.MetricsBuildTime(),
			pos.X(), pos.Y(), pos.Z(),
			mgl32.RadToDeg(rot.X()), mgl32.RadToDeg(rot.Y()), mgl32.RadToDeg(rot.Z()))
	}
	return nil
}

func (g *TestGame) OnResize(width uint32, height uint32) error {
	state := g.State.(*gameState)
	state.width, state.height = width, height
	if state.WorldCamera != nil {
		state.WorldCamera.Width, state.WorldCamera.Height = width, height
		state.WorldCamera.IsDirty = true
	}
	return nil
}

func (g *TestGame) Shutdown() error {
	core.LogDebug("TestGame Shutdown fn....")
	return nil
}
