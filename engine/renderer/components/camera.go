package components

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/spaghettifunk/prism/engine/math"
)

type CameraType int

const (
	CameraTypePerspective CameraType = iota
	CameraTypeOrthographic
)

func (t CameraType) String() string {
	if t == CameraTypeOrthographic {
		return "orthographic"
	}
	return "perspective"
}

/**
 * @brief Represents a camera that can be used for
 * a variety of things, especially rendering. Cameras are plain
 * values: copying one yields an independent camera.
 */
type Camera struct {
	/** @brief Perspective or orthographic projection. */
	Type CameraType
	/**
	 * @brief The position of this camera.
	 * NOTE: Do not set this directly, use SetPosition() instead
	 * so the view matrix is recalculated when needed.
	 */
	Position mgl32.Vec3
	/**
	 * @brief The rotation of this camera using Euler angles (pitch, yaw, roll).
	 * NOTE: Do not set this directly, use SetEulerRotation() instead
	 * so the view matrix is recalculated when needed.
	 */
	EulerRotation mgl32.Vec3
	/** @brief Vertical field of view in radians. Perspective only. */
	FOV float32
	/** @brief Viewport size in pixels. */
	Width  uint32
	Height uint32
	Near   float32
	Far    float32
	/** @brief Internal flag used to determine when the view matrix needs to be rebuilt. */
	IsDirty bool
	/**
	 * @brief The view matrix of this camera.
	 * NOTE: IMPORTANT: Do not get this directly, use View() instead
	 * so the view matrix is recalculated when needed.
	 */
	ViewMatrix mgl32.Mat4
}

/** @brief The name of the default camera. */
const DEFAULT_CAMERA_NAME string = "default"

func NewPerspectiveCamera(fov float32, width, height uint32, near, far float32) *Camera {
	return &Camera{
		Type:       CameraTypePerspective,
		FOV:        fov,
		Width:      width,
		Height:     height,
		Near:       near,
		Far:        far,
		ViewMatrix: mgl32.Ident4(),
	}
}

// NewOrthographicCamera returns a camera whose projection covers
// width x height units centred on the origin.
func NewOrthographicCamera(width, height uint32) *Camera {
	return &Camera{
		Type:       CameraTypeOrthographic,
		Width:      width,
		Height:     height,
		Near:       -1000.0,
		Far:        1000.0,
		ViewMatrix: mgl32.Ident4(),
	}
}

// Copy returns an independent camera with the same fields.
func (c *Camera) Copy() *Camera {
	cp := *c
	return &cp
}

func (c *Camera) Reset() {
	c.EulerRotation = mgl32.Vec3{}
	c.Position = mgl32.Vec3{}
	c.IsDirty = false
	c.ViewMatrix = mgl32.Ident4()
}

func (c *Camera) GetPosition() mgl32.Vec3 {
	return c.Position
}

func (c *Camera) SetPosition(position mgl32.Vec3) {
	c.Position = position
	c.IsDirty = true
}

func (c *Camera) GetEulerRotation() mgl32.Vec3 {
	return c.EulerRotation
}

func (c *Camera) SetEulerRotation(rotation mgl32.Vec3) {
	c.EulerRotation = rotation
	c.IsDirty = true
}

func (c *Camera) View() mgl32.Mat4 {
	if c.IsDirty {
		rotation := mgl32.AnglesToQuat(c.EulerRotation.X(), c.EulerRotation.Y(), c.EulerRotation.Z(), mgl32.XYZ).Mat4()
		translation := mgl32.Translate3D(c.Position.X(), c.Position.Y(), c.Position.Z())

		c.ViewMatrix = translation.Mul4(rotation).Inv()
		c.IsDirty = false
	}
	return c.ViewMatrix
}

func (c *Camera) Projection() mgl32.Mat4 {
	if c.Type == CameraTypeOrthographic {
		hw := float32(c.Width) / 2.0
		hh := float32(c.Height) / 2.0
		return mgl32.Ortho(-hw, hw, -hh, hh, c.Near, c.Far)
	}
	return mgl32.Perspective(c.FOV, math.AspectRatio(c.Width, c.Height), c.Near, c.Far)
}

func (c *Camera) Forward() mgl32.Vec3 {
	v := c.View()
	return mgl32.Vec3{-v.At(2, 0), -v.At(2, 1), -v.At(2, 2)}.Normalize()
}

func (c *Camera) Right() mgl32.Vec3 {
	v := c.View()
	return mgl32.Vec3{v.At(0, 0), v.At(0, 1), v.At(0, 2)}.Normalize()
}

func (c *Camera) MoveForward(amount float32) {
	c.Position = c.Position.Add(c.Forward().Mul(amount))
	c.IsDirty = true
}

func (c *Camera) MoveRight(amount float32) {
	c.Position = c.Position.Add(c.Right().Mul(amount))
	c.IsDirty = true
}

func (c *Camera) MoveUp(amount float32) {
	c.Position = c.Position.Add(mgl32.Vec3{0, amount, 0})
	c.IsDirty = true
}

func (c *Camera) Yaw(amount float32) {
	c.EulerRotation[1] += amount
	c.IsDirty = true
}

func (c *Camera) Pitch(amount float32) {
	c.EulerRotation[0] += amount

	// Clamp to avoid Gimbal lock.
	limit := float32(1.55334306) // 89 degrees
	c.EulerRotation[0] = math.Clamp(c.EulerRotation[0], -limit, limit)

	c.IsDirty = true
}
