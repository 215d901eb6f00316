package components

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestLightTypes(t *testing.T) {
	var lights = []Light{
		NewAmbientLight(mgl32.Vec4{0.25, 0.25, 0.25, 1}),
		NewPointLight(mgl32.Vec3{1, 2, 3}, mgl32.Vec4{1, 1, 1, 1}),
		NewDirectionalLight(mgl32.Vec3{0, -1, 0}, mgl32.Vec4{1, 1, 1, 1}, true),
	}
	assert.Equal(t, LightTypeAmbient, lights[0].LightType())
	assert.Equal(t, LightTypePoint, lights[1].LightType())
	assert.Equal(t, LightTypeDirectional, lights[2].LightType())
	assert.Equal(t, "directional", LightTypeDirectional.String())
}

func TestDirectionalLightShadowCamera(t *testing.T) {
	l := NewDirectionalLight(mgl32.Vec3{0, -2, 0}, mgl32.Vec4{1, 1, 1, 1}, false)
	assert.False(t, l.CastsShadows())
	assert.InDelta(t, 1.0, l.Direction.Len(), 1e-6)

	cam := l.ShadowCamera()
	assert.Equal(t, CameraTypeOrthographic, cam.Type)
	assert.InDelta(t, 50.0, cam.Position.Y(), 1e-4)

	l.SetCastsShadows(true)
	assert.True(t, l.CastsShadows())
	assert.Same(t, cam, l.ShadowCamera())
}

func TestDirectionalLightZeroDirection(t *testing.T) {
	l := NewDirectionalLight(mgl32.Vec3{}, mgl32.Vec4{1, 1, 1, 1}, true)
	assert.Equal(t, mgl32.Vec3{0, -1, 0}, l.Direction)
}
