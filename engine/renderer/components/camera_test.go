package components

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestCameraCopyIsIndependent(t *testing.T) {
	c := NewPerspectiveCamera(mgl32.DegToRad(45), 800, 600, 0.1, 1000)
	c.SetPosition(mgl32.Vec3{0, 0, 10})

	cp := c.Copy()
	assert.NotSame(t, c, cp)
	assert.Equal(t, *c, *cp)

	cp.SetPosition(mgl32.Vec3{1, 1, 1})
	assert.Equal(t, mgl32.Vec3{0, 0, 10}, c.GetPosition())
	assert.Equal(t, CameraTypePerspective, cp.Type)
}

func TestCameraViewTranslation(t *testing.T) {
	c := NewPerspectiveCamera(mgl32.DegToRad(45), 800, 600, 0.1, 1000)
	c.SetPosition(mgl32.Vec3{0, 0, 10})

	v := c.View()
	assert.False(t, c.IsDirty)
	p := v.Mul4x1(mgl32.Vec4{0, 0, 10, 1})
	assert.InDelta(t, 0.0, p.Z(), 1e-5)
}

func TestCameraPitchIsClamped(t *testing.T) {
	c := NewOrthographicCamera(10, 10)
	c.Pitch(10)
	assert.InDelta(t, 1.55334306, c.GetEulerRotation().X(), 1e-6)
}

func TestOrthographicProjection(t *testing.T) {
	c := NewOrthographicCamera(200, 100)
	p := c.Projection().Mul4x1(mgl32.Vec4{100, 50, 0, 1})
	assert.InDelta(t, 1.0, p.X(), 1e-5)
	assert.InDelta(t, 1.0, p.Y(), 1e-5)
}
