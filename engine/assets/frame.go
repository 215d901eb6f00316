package assets

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/image/colornames"

	"github.com/spaghettifunk/prism/engine/core"
	"github.com/spaghettifunk/prism/engine/renderer/metadata"
)

/**
 * @brief The on disk description of a frame: the scenes, cameras and
 * render targets it uses and the views compiled from them.
 */
type FrameDescription struct {
	Renderer RendererDescription `toml:"renderer"`
	Cameras  []CameraDescription `toml:"camera"`
	Targets  []TargetDescription `toml:"target"`
	Scenes   []SceneDescription  `toml:"scene"`
	Views    []ViewDescription   `toml:"view"`
}

type RendererDescription struct {
	Name          string `toml:"name"`
	Backend       string `toml:"backend"`
	Width         uint32 `toml:"width"`
	Height        uint32 `toml:"height"`
	ShadowMapSize uint32 `toml:"shadow_map_size"`
	LogLevel      string `toml:"log_level"`
	Workers       int    `toml:"workers"`
}

type CameraDescription struct {
	Name string `toml:"name"`
	// "perspective" (default) or "orthographic"
	Type     string     `toml:"type"`
	FOV      float32    `toml:"fov"` // degrees
	Position [3]float32 `toml:"position"`
	Rotation [3]float32 `toml:"rotation"` // euler degrees
	Near     float32    `toml:"near"`
	Far      float32    `toml:"far"`
	Width    uint32     `toml:"width"`
	Height   uint32     `toml:"height"`
}

type TargetDescription struct {
	Name   string `toml:"name"`
	Width  uint32 `toml:"width"`
	Height uint32 `toml:"height"`
}

type SceneDescription struct {
	Name              string                        `toml:"name"`
	Ambient           string                        `toml:"ambient"`
	PointLights       []PointLightDescription       `toml:"point_light"`
	DirectionalLights []DirectionalLightDescription `toml:"directional_light"`
	Entities          []EntityDescription           `toml:"entity"`
}

type PointLightDescription struct {
	Position [3]float32 `toml:"position"`
	Colour   string     `toml:"colour"`
}

type DirectionalLightDescription struct {
	Direction    [3]float32 `toml:"direction"`
	Colour       string     `toml:"colour"`
	CastsShadows bool       `toml:"casts_shadows"`
}

type EntityDescription struct {
	Name string `toml:"name"`
	// "cube" (default) or "sprite"
	Mesh     string     `toml:"mesh"`
	Position [3]float32 `toml:"position"`
	Rotation [3]float32 `toml:"rotation"` // euler degrees
	Scale    [3]float32 `toml:"scale"`
	Colour   string     `toml:"colour"`
	// defaults to true
	ReceiveShadow *bool `toml:"receive_shadow"`
}

type ViewDescription struct {
	Name   string            `toml:"name"`
	Passes []PassDescription `toml:"pass"`
}

type PassDescription struct {
	Name           string                    `toml:"name"`
	Scene          string                    `toml:"scene"`
	Camera         string                    `toml:"camera"`
	ColourTarget   string                    `toml:"colour_target"`
	NormalTarget   string                    `toml:"normal_target"`
	PositionTarget string                    `toml:"position_target"`
	DepthOnly      bool                      `toml:"depth_only"`
	ClearColour    bool                      `toml:"clear_colour"`
	ClearDepth     bool                      `toml:"clear_depth"`
	ClearValue     string                    `toml:"clear_value"`
	SkyBox         string                    `toml:"sky_box"`
	PostProcessing PostProcessingDescription `toml:"post_processing"`
}

type PostProcessingDescription struct {
	Bloom            *BloomDescription            `toml:"bloom"`
	ColourAdjust     *ColourAdjustDescription     `toml:"colour_adjust"`
	AntiAliasing     bool                         `toml:"anti_aliasing"`
	AmbientOcclusion *AmbientOcclusionDescription `toml:"ambient_occlusion"`
}

type BloomDescription struct {
	Threshold  *float32 `toml:"threshold"`
	Iterations *uint32  `toml:"iterations"`
}

type ColourAdjustDescription struct {
	Gamma       *float32 `toml:"gamma"`
	Exposure    *float32 `toml:"exposure"`
	ToneMapping string   `toml:"tone_mapping"`
}

type AmbientOcclusionDescription struct {
	SampleCount *uint32  `toml:"sample_count"`
	Radius      *float32 `toml:"radius"`
	Bias        *float32 `toml:"bias"`
}

// LoadFrameFile reads and validates a frame description from disk.
func LoadFrameFile(path string) (*FrameDescription, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read frame file %s: %w", path, err)
	}
	d, err := ParseFrame(data)
	if err != nil {
		return nil, fmt.Errorf("frame file %s: %w", path, err)
	}
	return d, nil
}

// ParseFrame decodes a TOML frame description. Unknown keys are rejected.
func ParseFrame(data []byte) (*FrameDescription, error) {
	d := &FrameDescription{}
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(d); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return nil, fmt.Errorf("line %d column %d: %s: %w", row, col, derr.Error(), core.ErrInvalidConfig)
		}
		var serr *toml.StrictMissingError
		if errors.As(err, &serr) {
			return nil, fmt.Errorf("unknown keys:\n%s: %w", serr.String(), core.ErrInvalidConfig)
		}
		return nil, fmt.Errorf("%s: %w", err, core.ErrInvalidConfig)
	}
	d.applyDefaults()
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *FrameDescription) applyDefaults() {
	if d.Renderer.Name == "" {
		d.Renderer.Name = "prism"
	}
	if d.Renderer.Width == 0 {
		d.Renderer.Width = 1280
	}
	if d.Renderer.Height == 0 {
		d.Renderer.Height = 720
	}
	for i := range d.Cameras {
		c := &d.Cameras[i]
		if c.FOV == 0 {
			c.FOV = 45.0
		}
		if c.Near == 0 && c.Far == 0 {
			c.Near, c.Far = 0.1, 1000.0
		}
		if c.Width == 0 {
			c.Width = d.Renderer.Width
		}
		if c.Height == 0 {
			c.Height = d.Renderer.Height
		}
	}
	for i := range d.Targets {
		t := &d.Targets[i]
		if t.Width == 0 {
			t.Width = d.Renderer.Width
		}
		if t.Height == 0 {
			t.Height = d.Renderer.Height
		}
	}
	for i := range d.Scenes {
		for j := range d.Scenes[i].Entities {
			e := &d.Scenes[i].Entities[j]
			if e.Scale == ([3]float32{}) {
				e.Scale = [3]float32{1, 1, 1}
			}
		}
	}
}

// Validate checks names are unique and every reference resolves. Post
// processing effects must be fully specified when present.
func (d *FrameDescription) Validate() error {
	invalid := func(format string, args ...interface{}) error {
		return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), core.ErrInvalidConfig)
	}

	if d.Renderer.LogLevel != "" {
		if _, err := core.ParseLogLevel(d.Renderer.LogLevel); err != nil {
			return invalid("renderer.log_level: %s", err)
		}
	}

	cameras := make(map[string]bool)
	for _, c := range d.Cameras {
		if c.Name == "" || cameras[c.Name] {
			return invalid("camera name '%s' is empty or used twice", c.Name)
		}
		if c.Type != "" && c.Type != "perspective" && c.Type != "orthographic" {
			return invalid("camera '%s' has unknown type '%s'", c.Name, c.Type)
		}
		cameras[c.Name] = true
	}

	targets := make(map[string]bool)
	for _, t := range d.Targets {
		if t.Name == "" || targets[t.Name] {
			return invalid("target name '%s' is empty or used twice", t.Name)
		}
		targets[t.Name] = true
	}

	scenes := make(map[string]bool)
	for _, s := range d.Scenes {
		if s.Name == "" || scenes[s.Name] {
			return invalid("scene name '%s' is empty or used twice", s.Name)
		}
		scenes[s.Name] = true
		if _, err := ParseColour(s.Ambient, DefaultAmbient); err != nil {
			return invalid("scene '%s' ambient: %s", s.Name, err)
		}
		for _, e := range s.Entities {
			if e.Mesh != "" && e.Mesh != "cube" && e.Mesh != "sprite" {
				return invalid("entity '%s' has unknown mesh '%s'", e.Name, e.Mesh)
			}
			if _, err := ParseColour(e.Colour, mgl32.Vec4{}); err != nil {
				return invalid("entity '%s' colour: %s", e.Name, err)
			}
		}
		for _, l := range s.PointLights {
			if _, err := ParseColour(l.Colour, White); err != nil {
				return invalid("scene '%s' point light: %s", s.Name, err)
			}
		}
		for _, l := range s.DirectionalLights {
			if _, err := ParseColour(l.Colour, White); err != nil {
				return invalid("scene '%s' directional light: %s", s.Name, err)
			}
		}
	}

	views := make(map[string]bool)
	for _, v := range d.Views {
		if views[v.Name] {
			return fmt.Errorf("view '%s': %w", v.Name, core.ErrDuplicateView)
		}
		views[v.Name] = true

		for i, p := range v.Passes {
			where := fmt.Sprintf("view '%s' pass %d", v.Name, i)
			if !scenes[p.Scene] {
				return fmt.Errorf("%s scene '%s': %w", where, p.Scene, core.ErrUnknownScene)
			}
			if p.Camera != "" && p.Camera != "default" && !cameras[p.Camera] {
				return fmt.Errorf("%s camera '%s': %w", where, p.Camera, core.ErrUnknownCamera)
			}
			for _, name := range []string{p.ColourTarget, p.NormalTarget, p.PositionTarget} {
				if name != "" && !targets[name] {
					return fmt.Errorf("%s target '%s': %w", where, name, core.ErrUnknownTarget)
				}
			}
			if _, err := ParseColour(p.ClearValue, Black); err != nil {
				return invalid("%s clear_value: %s", where, err)
			}
			if err := p.PostProcessing.validate(); err != nil {
				return invalid("%s post_processing: %s", where, err)
			}
		}
	}
	if len(d.Views) == 0 {
		return core.ErrNoViews
	}
	return nil
}

func (pp PostProcessingDescription) validate() error {
	if b := pp.Bloom; b != nil && (b.Threshold == nil || b.Iterations == nil) {
		return errors.New("bloom needs threshold and iterations")
	}
	if c := pp.ColourAdjust; c != nil {
		if c.Gamma == nil || c.Exposure == nil {
			return errors.New("colour_adjust needs gamma and exposure")
		}
		if _, err := parseToneMapping(c.ToneMapping); err != nil {
			return err
		}
	}
	if ao := pp.AmbientOcclusion; ao != nil && (ao.SampleCount == nil || ao.Radius == nil || ao.Bias == nil) {
		return errors.New("ambient_occlusion needs sample_count, radius and bias")
	}
	return nil
}

// Metadata converts a validated description to the renderer's form.
func (pp PostProcessingDescription) Metadata() metadata.PostProcessingDescription {
	out := metadata.PostProcessingDescription{AntiAliasing: pp.AntiAliasing}
	if b := pp.Bloom; b != nil {
		out.Bloom = &metadata.BloomDescription{Threshold: *b.Threshold, Iterations: *b.Iterations}
	}
	if c := pp.ColourAdjust; c != nil {
		tm, _ := parseToneMapping(c.ToneMapping)
		out.ColourAdjust = &metadata.ColourAdjustDescription{Gamma: *c.Gamma, Exposure: *c.Exposure, ToneMapping: tm}
	}
	if ao := pp.AmbientOcclusion; ao != nil {
		out.AmbientOcclusion = &metadata.AmbientOcclusionDescription{SampleCount: *ao.SampleCount, Radius: *ao.Radius, Bias: *ao.Bias}
	}
	return out
}

func parseToneMapping(name string) (metadata.ToneMapping, error) {
	switch strings.ToLower(name) {
	case "", "none":
		return metadata.ToneMappingNone, nil
	case "reinhard":
		return metadata.ToneMappingReinhard, nil
	case "aces":
		return metadata.ToneMappingACES, nil
	}
	return 0, fmt.Errorf("unknown tone mapping '%s'", name)
}

var (
	Black          = mgl32.Vec4{0, 0, 0, 1}
	White          = mgl32.Vec4{1, 1, 1, 1}
	DefaultAmbient = mgl32.Vec4{0.25, 0.25, 0.25, 1}
)

/**
 * @brief Parses a colour given either as an SVG colour name
 * ("cornflowerblue") or as hex ("#rrggbb" / "#rrggbbaa"). An empty
 * string yields fallback.
 */
func ParseColour(value string, fallback mgl32.Vec4) (mgl32.Vec4, error) {
	value = strings.TrimSpace(strings.ToLower(value))
	if value == "" {
		return fallback, nil
	}
	if c, ok := colornames.Map[value]; ok {
		return toVec4(c), nil
	}
	if strings.HasPrefix(value, "#") {
		hex := value[1:]
		if len(hex) == 6 {
			hex += "ff"
		}
		if len(hex) == 8 {
			if v, err := strconv.ParseUint(hex, 16, 32); err == nil {
				return toVec4(color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}), nil
			}
		}
	}
	return fallback, fmt.Errorf("unknown colour '%s'", value)
}

func toVec4(c color.RGBA) mgl32.Vec4 {
	return mgl32.Vec4{float32(c.R) / 255.0, float32(c.G) / 255.0, float32(c.B) / 255.0, float32(c.A) / 255.0}
}
