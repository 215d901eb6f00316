package components

import (
	stdmath "math"

	"github.com/go-gl/mathgl/mgl32"
)

/** @brief The kind of light a draw is lit by. Materials are built per type. */
type LightType int

const (
	LightTypeAmbient LightType = iota
	LightTypePoint
	LightTypeDirectional
)

func (t LightType) String() string {
	switch t {
	case LightTypeAmbient:
		return "ambient"
	case LightTypePoint:
		return "point"
	case LightTypeDirectional:
		return "directional"
	}
	return "unknown"
}

// Light is implemented by every light a scene can hold.
type Light interface {
	LightType() LightType
}

type AmbientLight struct {
	Colour mgl32.Vec4
}

func NewAmbientLight(colour mgl32.Vec4) *AmbientLight {
	return &AmbientLight{Colour: colour}
}

func (l *AmbientLight) LightType() LightType { return LightTypeAmbient }

/**
 * @brief A light radiating from a single position. Attenuation holds
 * the constant, linear and quadratic terms.
 */
type PointLight struct {
	Position    mgl32.Vec3
	Colour      mgl32.Vec4
	Attenuation mgl32.Vec3
}

func NewPointLight(position mgl32.Vec3, colour mgl32.Vec4) *PointLight {
	return &PointLight{
		Position:    position,
		Colour:      colour,
		Attenuation: mgl32.Vec3{1.0, 0.09, 0.032},
	}
}

func (l *PointLight) LightType() LightType { return LightTypePoint }

// shadowExtent is the size of the orthographic volume a directional
// light renders its shadow map with.
const shadowExtent uint32 = 100

/**
 * @brief A light infinitely far away shining along Direction.
 * When it casts shadows the queue builder renders its shadow camera
 * into a dedicated shadow map before the passes that sample it.
 */
type DirectionalLight struct {
	Direction    mgl32.Vec3
	Colour       mgl32.Vec4
	castsShadows bool
	shadowCamera *Camera
}

func NewDirectionalLight(direction mgl32.Vec3, colour mgl32.Vec4, castsShadows bool) *DirectionalLight {
	l := &DirectionalLight{
		Direction:    normalize(direction),
		Colour:       colour,
		castsShadows: castsShadows,
	}
	l.shadowCamera = NewOrthographicCamera(shadowExtent, shadowExtent)
	l.updateShadowCamera()
	return l
}

func (l *DirectionalLight) LightType() LightType { return LightTypeDirectional }

func (l *DirectionalLight) CastsShadows() bool { return l.castsShadows }

func (l *DirectionalLight) SetCastsShadows(casts bool) { l.castsShadows = casts }

func (l *DirectionalLight) SetDirection(direction mgl32.Vec3) {
	l.Direction = normalize(direction)
	l.updateShadowCamera()
}

// ShadowCamera is the camera the light's shadow map is rendered with.
func (l *DirectionalLight) ShadowCamera() *Camera { return l.shadowCamera }

func (l *DirectionalLight) updateShadowCamera() {
	// place the camera back along the light direction so the volume
	// around the origin is in front of it
	position := l.Direction.Mul(-float32(shadowExtent) / 2.0)
	l.shadowCamera.SetPosition(position)

	yaw := float32(0.0)
	pitch := float32(0.0)
	if l.Direction.Len() > 0 {
		yaw = float32(-stdmath.Atan2(float64(l.Direction.X()), float64(-l.Direction.Z())))
		pitch = float32(stdmath.Asin(float64(l.Direction.Y())))
	}
	l.shadowCamera.SetEulerRotation(mgl32.Vec3{pitch, yaw, 0})
}

/**
 * @brief The lights of a scene. There is always exactly one ambient
 * light; point and directional lights are kept in insertion order.
 */
type LightingRig struct {
	AmbientLight      *AmbientLight
	PointLights       []*PointLight
	DirectionalLights []*DirectionalLight
}

func normalize(v mgl32.Vec3) mgl32.Vec3 {
	if v.Len() == 0 {
		return mgl32.Vec3{0, -1, 0}
	}
	return v.Normalize()
}
