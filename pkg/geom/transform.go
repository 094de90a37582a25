package geom

import "github.com/go-gl/mathgl/mgl32"

// Transform is a position/rotation/scale triple, the live attributes the
// gizmo mutates on the display mesh.
type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3
}

// IdentityTransform returns a transform that maps geometry onto itself.
func IdentityTransform() Transform {
	return Transform{
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
	}
}

// Matrix composes the transform into a single 4x4 matrix, translation
// applied last (T * R * S ordering).
func (t Transform) Matrix() mgl32.Mat4 {
	tr := mgl32.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z())
	rot := t.Rotation.Normalize().Mat4()
	sc := mgl32.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z())
	return tr.Mul4(rot).Mul4(sc)
}
