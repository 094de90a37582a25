package geom

import (
	gomath "math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

// boxGeometry returns an axis-aligned box spanning min..max, triangulated.
func boxGeometry(min, max mgl32.Vec3) *Geometry {
	g := &Geometry{}
	x0, y0, z0 := min.X(), min.Y(), min.Z()
	x1, y1, z1 := max.X(), max.Y(), max.Z()
	g.Positions = []mgl32.Vec3{
		{x0, y0, z0}, {x1, y0, z0}, {x1, y1, z0}, {x0, y1, z0},
		{x0, y0, z1}, {x1, y0, z1}, {x1, y1, z1}, {x0, y1, z1},
	}
	g.Indices = []uint32{
		0, 2, 1, 0, 3, 2, // back
		4, 5, 6, 4, 6, 7, // front
		0, 1, 5, 0, 5, 4, // bottom
		3, 7, 6, 3, 6, 2, // top
		0, 4, 7, 0, 7, 3, // left
		1, 2, 6, 1, 6, 5, // right
	}
	return g
}

func TestAutoScale(t *testing.T) {
	tests := []struct {
		name       string
		geometry   *Geometry
		targetSize float32
		want       float32
	}{
		{
			name:       "extents 4x2x1 target 2",
			geometry:   boxGeometry(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{4, 2, 1}),
			targetSize: 2,
			want:       0.5,
		},
		{
			name:       "unit box target 2",
			geometry:   boxGeometry(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 1, 1}),
			targetSize: 2,
			want:       2,
		},
		{
			name:       "empty geometry falls back to 1",
			geometry:   &Geometry{},
			targetSize: 2,
			want:       1,
		},
		{
			name:       "single point falls back to 1",
			geometry:   &Geometry{Positions: []mgl32.Vec3{{3, 3, 3}}},
			targetSize: 2,
			want:       1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AutoScale(tt.geometry, tt.targetSize)
			if gomath.Abs(float64(got-tt.want)) > 1e-6 {
				t.Errorf("AutoScale = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBounds(t *testing.T) {
	g := boxGeometry(mgl32.Vec3{-1, -2, -3}, mgl32.Vec3{1, 2, 3})
	b, ok := g.Bounds()
	if !ok {
		t.Fatal("expected bounds for non-empty geometry")
	}
	if b.Center() != (mgl32.Vec3{0, 0, 0}) {
		t.Errorf("center = %v, want origin", b.Center())
	}
	if b.Size() != (mgl32.Vec3{2, 4, 6}) {
		t.Errorf("size = %v, want (2,4,6)", b.Size())
	}
	if b.MaxExtent() != 6 {
		t.Errorf("max extent = %v, want 6", b.MaxExtent())
	}

	if _, ok := (&Geometry{}).Bounds(); ok {
		t.Error("expected no bounds for empty geometry")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	g := boxGeometry(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 1, 1})
	g.RecomputeNormals()

	c := g.Clone()
	c.Positions[0] = mgl32.Vec3{99, 99, 99}
	c.Normals[0] = mgl32.Vec3{9, 9, 9}
	c.Indices[0] = 7

	if g.Positions[0] == (mgl32.Vec3{99, 99, 99}) {
		t.Error("clone shares position buffer with source")
	}
	if g.Normals[0] == (mgl32.Vec3{9, 9, 9}) {
		t.Error("clone shares normal buffer with source")
	}
	if g.Indices[0] == 7 {
		t.Error("clone shares index buffer with source")
	}
}

func TestApplyMatrixTranslates(t *testing.T) {
	g := boxGeometry(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{2, 2, 2})
	g.ApplyMatrix(mgl32.Translate3D(1, 0, 0))

	b, _ := g.Bounds()
	want := mgl32.Vec3{2, 1, 1}
	if got := b.Center(); got.Sub(want).Len() > 1e-6 {
		t.Errorf("center after translate = %v, want %v", got, want)
	}
}

func TestRecomputeNormals(t *testing.T) {
	// Single CCW triangle in the XY plane faces +Z.
	g := &Geometry{
		Positions: []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		Indices:   []uint32{0, 1, 2},
	}
	g.RecomputeNormals()

	if len(g.Normals) != 3 {
		t.Fatalf("expected 3 normals, got %d", len(g.Normals))
	}
	for i, n := range g.Normals {
		if n.Sub(mgl32.Vec3{0, 0, 1}).Len() > 1e-6 {
			t.Errorf("normal %d = %v, want +Z", i, n)
		}
	}
}

func TestTransformMatrixOrdering(t *testing.T) {
	// Scale then rotate then translate: unit X scaled by 2, rotated 90 deg
	// about Z (-> +Y), then moved by (5,0,0).
	tr := Transform{
		Position: mgl32.Vec3{5, 0, 0},
		Rotation: mgl32.QuatRotate(float32(gomath.Pi/2), mgl32.Vec3{0, 0, 1}),
		Scale:    mgl32.Vec3{2, 2, 2},
	}

	got := mgl32.TransformCoordinate(mgl32.Vec3{1, 0, 0}, tr.Matrix())
	want := mgl32.Vec3{5, 2, 0}
	if got.Sub(want).Len() > 1e-5 {
		t.Errorf("transformed point = %v, want %v", got, want)
	}
}

func TestIdentityTransformMatrix(t *testing.T) {
	m := IdentityTransform().Matrix()
	p := mgl32.Vec3{1.5, -2, 3}
	if got := mgl32.TransformCoordinate(p, m); got.Sub(p).Len() > 1e-6 {
		t.Errorf("identity transform moved %v to %v", p, got)
	}
}
