package component

import "github.com/go-gl/mathgl/mgl64"

type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
	Scale    mgl64.Vec3
}

// Forward is the direction the entity faces (local -Z).
func (t Transform) Forward() mgl64.Vec3 {
	return t.Rotation.Rotate(mgl64.Vec3{0, 0, -1})
}

// Right is local +X in world space.
func (t Transform) Right() mgl64.Vec3 {
	return t.Rotation.Rotate(mgl64.Vec3{1, 0, 0})
}

// Matrix returns the model matrix: translate * rotate * scale.
func (t Transform) Matrix() mgl64.Mat4 {
	scale := t.Scale
	if scale == (mgl64.Vec3{}) {
		scale = mgl64.Vec3{1, 1, 1}
	}
	return mgl64.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z()).
		Mul4(t.Rotation.Mat4()).
		Mul4(mgl64.Scale3D(scale.X(), scale.Y(), scale.Z()))
}

var TransformComponent = NewComponent[Transform]()
