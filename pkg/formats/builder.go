package formats

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/triforge/meshview/pkg/geom"
)

// geometryBuilder accumulates triangle soup into an indexed geometry,
// merging vertices with bit-identical positions.
type geometryBuilder struct {
	g      *geom.Geometry
	lookup map[mgl32.Vec3]uint32
}

func newGeometryBuilder() *geometryBuilder {
	return &geometryBuilder{
		g:      &geom.Geometry{},
		lookup: make(map[mgl32.Vec3]uint32),
	}
}

func (b *geometryBuilder) addVertex(p mgl32.Vec3) uint32 {
	if idx, ok := b.lookup[p]; ok {
		return idx
	}
	idx := uint32(len(b.g.Positions))
	b.g.Positions = append(b.g.Positions, p)
	b.lookup[p] = idx
	return idx
}

func (b *geometryBuilder) addTriangle(v0, v1, v2 mgl32.Vec3) {
	b.g.Indices = append(b.g.Indices, b.addVertex(v0), b.addVertex(v1), b.addVertex(v2))
}

// finish recomputes smooth vertex normals and returns the geometry.
func (b *geometryBuilder) finish() *geom.Geometry {
	b.g.RecomputeNormals()
	return b.g
}
