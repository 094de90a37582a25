// Package geom provides the mesh geometry types shared by the loaders,
// the viewer and the export pipeline.
package geom

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"
)

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// Center returns the box center.
func (b Bounds) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Size returns the box extents along each axis.
func (b Bounds) Size() mgl32.Vec3 {
	return b.Max.Sub(b.Min)
}

// MaxExtent returns the largest of the three extents.
func (b Bounds) MaxExtent() float32 {
	s := b.Size()
	m := s.X()
	if s.Y() > m {
		m = s.Y()
	}
	if s.Z() > m {
		m = s.Z()
	}
	return m
}

// Geometry is an indexed triangle surface. Normals are per-vertex and either
// empty or the same length as Positions. Indices reference Positions in
// groups of three.
type Geometry struct {
	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3
	Indices   []uint32
}

// Clone returns a deep copy sharing no buffers with the receiver.
func (g *Geometry) Clone() *Geometry {
	c := &Geometry{
		Positions: make([]mgl32.Vec3, len(g.Positions)),
		Indices:   make([]uint32, len(g.Indices)),
	}
	copy(c.Positions, g.Positions)
	copy(c.Indices, g.Indices)
	if len(g.Normals) > 0 {
		c.Normals = make([]mgl32.Vec3, len(g.Normals))
		copy(c.Normals, g.Normals)
	}
	return c
}

// TriangleCount returns the number of triangles.
func (g *Geometry) TriangleCount() int {
	return len(g.Indices) / 3
}

// Bounds computes the axis-aligned bounding box. The second return value is
// false for empty geometry.
func (g *Geometry) Bounds() (Bounds, bool) {
	if len(g.Positions) == 0 {
		return Bounds{}, false
	}
	b := Bounds{Min: g.Positions[0], Max: g.Positions[0]}
	for _, p := range g.Positions[1:] {
		for i := 0; i < 3; i++ {
			if p[i] < b.Min[i] {
				b.Min[i] = p[i]
			}
			if p[i] > b.Max[i] {
				b.Max[i] = p[i]
			}
		}
	}
	return b, true
}

// ApplyMatrix transforms every vertex position in place. Normals are left
// untouched; callers that need valid shading after a bake should follow up
// with RecomputeNormals.
func (g *Geometry) ApplyMatrix(m mgl32.Mat4) {
	for i, p := range g.Positions {
		g.Positions[i] = mgl32.TransformCoordinate(p, m)
	}
}

// RecomputeNormals rebuilds area-weighted per-vertex normals from the
// triangle faces.
func (g *Geometry) RecomputeNormals() {
	normals := make([]mgl32.Vec3, len(g.Positions))
	for i := 0; i+2 < len(g.Indices); i += 3 {
		i0, i1, i2 := g.Indices[i], g.Indices[i+1], g.Indices[i+2]
		if int(i0) >= len(g.Positions) || int(i1) >= len(g.Positions) || int(i2) >= len(g.Positions) {
			continue
		}
		e1 := g.Positions[i1].Sub(g.Positions[i0])
		e2 := g.Positions[i2].Sub(g.Positions[i0])
		// Cross product magnitude carries the face area weighting.
		n := e1.Cross(e2)
		normals[i0] = normals[i0].Add(n)
		normals[i1] = normals[i1].Add(n)
		normals[i2] = normals[i2].Add(n)
	}
	for i, n := range normals {
		if l := n.Len(); l > 1e-12 {
			normals[i] = n.Mul(1 / l)
		}
	}
	g.Normals = normals
}

// FaceNormal returns the unit normal of triangle tri, or the zero vector for
// a degenerate triangle.
func (g *Geometry) FaceNormal(tri int) mgl32.Vec3 {
	i0, i1, i2 := g.Indices[tri*3], g.Indices[tri*3+1], g.Indices[tri*3+2]
	e1 := g.Positions[i1].Sub(g.Positions[i0])
	e2 := g.Positions[i2].Sub(g.Positions[i0])
	n := e1.Cross(e2)
	l := n.Len()
	if l < 1e-12 || gomath.IsNaN(float64(l)) {
		return mgl32.Vec3{}
	}
	return n.Mul(1 / l)
}

// AutoScale computes the uniform scale factor that fits g into a cube of
// edge targetSize. Degenerate geometry (no bounding box, or a box with zero
// largest extent) yields 1.
func AutoScale(g *Geometry, targetSize float32) float32 {
	b, ok := g.Bounds()
	if !ok {
		return 1
	}
	ext := b.MaxExtent()
	if ext <= 0 {
		return 1
	}
	return targetSize / ext
}
