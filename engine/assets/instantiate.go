package assets

import (
	"fmt"
	"slices"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/spaghettifunk/prism/engine/core"
	"github.com/spaghettifunk/prism/engine/math"
	"github.com/spaghettifunk/prism/engine/renderer/components"
	"github.com/spaghettifunk/prism/engine/renderer/geometry"
	"github.com/spaghettifunk/prism/engine/renderer/metadata"
	"github.com/spaghettifunk/prism/engine/renderer/queue"
	"github.com/spaghettifunk/prism/engine/scene"
	"github.com/spaghettifunk/prism/engine/systems"
)

// Frame is a description turned into live scenes, targets and passes.
type Frame struct {
	Description *FrameDescription
	Scenes      map[string]*scene.Scene
	Targets     map[string]*metadata.RenderTarget
	Views       []systems.View

	registered []string
	acquired   []string
}

// TargetDestroyer releases targets a frame allocated.
type TargetDestroyer interface {
	DestroyRenderTarget(target *metadata.RenderTarget) error
}

/**
 * @brief Builds the scenes, cameras and targets a description names and
 * resolves every pass against them. Cameras are registered with the
 * camera system so later passes (and other views) can share them.
 * @param d A validated description.
 * @param targets Allocates the named render targets.
 * @param cameras Receives the named cameras.
 * @param meshes Supplies the cube and sprite meshes.
 */
func Instantiate(d *FrameDescription, targets queue.RenderTargetProvider, cameras *systems.CameraSystem, meshes *geometry.MeshSystem) (*Frame, error) {
	f := &Frame{
		Description: d,
		Scenes:      make(map[string]*scene.Scene, len(d.Scenes)),
		Targets:     make(map[string]*metadata.RenderTarget, len(d.Targets)),
	}

	for _, c := range d.Cameras {
		if err := cameras.Register(c.Name, newCamera(c)); err != nil {
			f.releaseCameras(cameras)
			return nil, fmt.Errorf("camera '%s': %w", c.Name, err)
		}
		f.registered = append(f.registered, c.Name)
	}

	for _, t := range d.Targets {
		rt, err := targets.CreateRenderTarget(t.Width, t.Height)
		if err != nil {
			f.releaseCameras(cameras)
			return nil, fmt.Errorf("target '%s': %w", t.Name, err)
		}
		rt.Name = t.Name
		f.Targets[t.Name] = rt
	}

	for _, sd := range d.Scenes {
		s, err := newScene(sd, meshes)
		if err != nil {
			f.releaseCameras(cameras)
			return nil, err
		}
		f.Scenes[sd.Name] = s
	}

	for _, vd := range d.Views {
		view := systems.View{Name: vd.Name, Passes: make([]*queue.RenderPass, 0, len(vd.Passes))}
		for i, pd := range vd.Passes {
			pass, err := f.newPass(pd, cameras)
			if err != nil {
				f.releaseCameras(cameras)
				return nil, fmt.Errorf("view '%s' pass %d: %w", vd.Name, i, err)
			}
			view.Passes = append(view.Passes, pass)
		}
		f.Views = append(f.Views, view)
	}

	core.LogDebug("frame instantiated: %d scenes, %d targets, %d views", len(f.Scenes), len(f.Targets), len(f.Views))
	return f, nil
}

/**
 * @brief Drops the cameras the frame registered and, when destroyer is
 * not nil, the targets it created. Passes of the frame must not be
 * built afterwards.
 */
func (f *Frame) Release(cameras *systems.CameraSystem, destroyer TargetDestroyer) error {
	f.releaseCameras(cameras)
	if destroyer == nil {
		return nil
	}
	var first error
	for name, rt := range f.Targets {
		if err := destroyer.DestroyRenderTarget(rt); err != nil && first == nil {
			first = fmt.Errorf("target '%s': %w", name, err)
		}
	}
	f.Targets = map[string]*metadata.RenderTarget{}
	return first
}

func (f *Frame) releaseCameras(cameras *systems.CameraSystem) {
	for _, name := range f.acquired {
		cameras.Release(name)
	}
	// never acquired cameras are still registered with a zero count
	for _, name := range f.registered {
		if !slices.Contains(f.acquired, name) {
			cameras.Release(name)
		}
	}
	f.acquired, f.registered = nil, nil
}

func newCamera(c CameraDescription) *components.Camera {
	var cam *components.Camera
	if c.Type == "orthographic" {
		cam = components.NewOrthographicCamera(c.Width, c.Height)
	} else {
		cam = components.NewPerspectiveCamera(mgl32.DegToRad(c.FOV), c.Width, c.Height, c.Near, c.Far)
	}
	cam.SetPosition(vec3(c.Position))
	cam.SetEulerRotation(radians(c.Rotation))
	return cam
}

func newScene(sd SceneDescription, meshes *geometry.MeshSystem) (*scene.Scene, error) {
	s := scene.New(sd.Name)

	ambient, err := ParseColour(sd.Ambient, DefaultAmbient)
	if err != nil {
		return nil, fmt.Errorf("scene '%s': %w", sd.Name, err)
	}
	s.SetAmbientLight(ambient)

	for _, l := range sd.PointLights {
		colour, _ := ParseColour(l.Colour, White)
		s.AddPointLight(components.NewPointLight(vec3(l.Position), colour))
	}
	for _, l := range sd.DirectionalLights {
		colour, _ := ParseColour(l.Colour, White)
		s.AddDirectionalLight(components.NewDirectionalLight(vec3(l.Direction), colour, l.CastsShadows))
	}

	for _, ed := range sd.Entities {
		mesh := meshes.Cube()
		if ed.Mesh == "sprite" {
			mesh = meshes.Sprite()
		}

		rg := s.CreateRenderGraph()
		if ed.Colour != "" {
			colour, err := ParseColour(ed.Colour, White)
			if err != nil {
				return nil, fmt.Errorf("entity '%s': %w", ed.Name, err)
			}
			rg.RenderNode().SetColourInput(rg.Colour(colour))
		}

		rot := radians(ed.Rotation)
		transform := math.TransformFromPositionRotationScale(
			vec3(ed.Position),
			mgl32.AnglesToQuat(rot.X(), rot.Y(), rot.Z(), mgl32.XYZ),
			vec3(ed.Scale),
		)
		e := s.CreateEntity(rg, mesh, transform)
		if ed.Name != "" {
			e.Name = ed.Name
		}
		if ed.ReceiveShadow != nil {
			e.SetReceiveShadow(*ed.ReceiveShadow)
		}
	}
	return s, nil
}

func (f *Frame) newPass(pd PassDescription, cameras *systems.CameraSystem) (*queue.RenderPass, error) {
	s, ok := f.Scenes[pd.Scene]
	if !ok {
		return nil, fmt.Errorf("scene '%s': %w", pd.Scene, core.ErrUnknownScene)
	}
	cam, err := cameras.Acquire(pd.Camera)
	if err != nil {
		return nil, err
	}
	if pd.Camera != "" && pd.Camera != components.DEFAULT_CAMERA_NAME {
		f.acquired = append(f.acquired, pd.Camera)
	}
	clear, err := ParseColour(pd.ClearValue, Black)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", err, core.ErrInvalidConfig)
	}

	pass := &queue.RenderPass{
		Name:           pd.Name,
		Scene:          s,
		Camera:         cam,
		DepthOnly:      pd.DepthOnly,
		ClearColour:    pd.ClearColour,
		ClearDepth:     pd.ClearDepth,
		ClearValue:     clear,
		PostProcessing: pd.PostProcessing.Metadata(),
	}
	if pd.SkyBox != "" {
		pass.SkyBox = metadata.NewCubeMap(pd.SkyBox)
	}
	for _, bind := range []struct {
		name string
		dst  **metadata.RenderTarget
	}{
		{pd.ColourTarget, &pass.ColourTarget},
		{pd.NormalTarget, &pass.NormalTarget},
		{pd.PositionTarget, &pass.PositionTarget},
	} {
		if bind.name == "" {
			continue
		}
		rt, ok := f.Targets[bind.name]
		if !ok {
			return nil, fmt.Errorf("target '%s': %w", bind.name, core.ErrUnknownTarget)
		}
		*bind.dst = rt
	}
	return pass, nil
}

func vec3(v [3]float32) mgl32.Vec3 { return mgl32.Vec3{v[0], v[1], v[2]} }

func radians(v [3]float32) mgl32.Vec3 {
	return mgl32.Vec3{mgl32.DegToRad(v[0]), mgl32.DegToRad(v[1]), mgl32.DegToRad(v[2])}
}
