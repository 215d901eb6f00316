package math

import "github.com/go-gl/mathgl/mgl32"

/**
 * @brief Represents the transform of an object in the world.
 * Transforms can have a parent whose own transform is then
 * taken into account. The local matrix is rebuilt lazily when
 * position, rotation or scale change.
 */
type Transform struct {
	/** @brief The position in the world. */
	Position mgl32.Vec3
	/** @brief The rotation in the world. */
	Rotation mgl32.Quat
	/** @brief The scale in the world. */
	Scale mgl32.Vec3
	/** @brief Set when the local matrix needs to be recalculated. */
	IsDirty bool
	/** @brief The cached local transformation matrix. */
	Local mgl32.Mat4
	/** @brief A pointer to a parent transform if one is assigned. Can also be nil. */
	Parent *Transform
}

func TransformCreate() *Transform {
	return TransformFromPositionRotationScale(mgl32.Vec3{}, mgl32.QuatIdent(), mgl32.Vec3{1, 1, 1})
}

func TransformFromPosition(position mgl32.Vec3) *Transform {
	return TransformFromPositionRotationScale(position, mgl32.QuatIdent(), mgl32.Vec3{1, 1, 1})
}

func TransformFromScale(scale mgl32.Vec3) *Transform {
	return TransformFromPositionRotationScale(mgl32.Vec3{}, mgl32.QuatIdent(), scale)
}

func TransformFromPositionRotationScale(position mgl32.Vec3, rotation mgl32.Quat, scale mgl32.Vec3) *Transform {
	t := &Transform{Local: mgl32.Ident4()}
	t.SetPositionRotationScale(position, rotation, scale)
	return t
}

func (t *Transform) SetPosition(position mgl32.Vec3) {
	t.Position = position
	t.IsDirty = true
}

func (t *Transform) Translate(translation mgl32.Vec3) {
	t.Position = t.Position.Add(translation)
	t.IsDirty = true
}

func (t *Transform) SetRotation(rotation mgl32.Quat) {
	t.Rotation = rotation
	t.IsDirty = true
}

func (t *Transform) Rotate(rotation mgl32.Quat) {
	t.Rotation = t.Rotation.Mul(rotation)
	t.IsDirty = true
}

func (t *Transform) SetScale(scale mgl32.Vec3) {
	t.Scale = scale
	t.IsDirty = true
}

func (t *Transform) SetPositionRotationScale(position mgl32.Vec3, rotation mgl32.Quat, scale mgl32.Vec3) {
	t.Position = position
	t.Rotation = rotation
	t.Scale = scale
	t.IsDirty = true
}

// GetLocal returns translation * rotation * scale.
func (t *Transform) GetLocal() mgl32.Mat4 {
	if t == nil {
		return mgl32.Ident4()
	}
	if t.IsDirty {
		translation := mgl32.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z())
		rotation := t.Rotation.Mat4()
		scale := mgl32.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z())
		t.Local = translation.Mul4(rotation).Mul4(scale)
		t.IsDirty = false
	}
	return t.Local
}

func (t *Transform) GetWorld() mgl32.Mat4 {
	if t == nil {
		return mgl32.Ident4()
	}
	l := t.GetLocal()
	if t.Parent != nil {
		return t.Parent.GetWorld().Mul4(l)
	}
	return l
}
