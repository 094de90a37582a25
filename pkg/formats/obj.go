// Wavefront OBJ loading, delegated to go-obj. OBJ files carry a single flat
// face list, so "first mesh wins" degenerates to taking everything; faces
// with more than three points are fan-triangulated.
package formats

import (
	"bytes"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/sheenobu/go-obj/obj"

	"github.com/triforge/meshview/pkg/geom"
)

// ParseOBJ parses OBJ text into a geometry.
func ParseOBJ(data []byte) (*geom.Geometry, error) {
	object, err := obj.NewReader(bytes.NewReader(data)).Read()
	if err != nil {
		return nil, fmt.Errorf("parsing OBJ: %w", err)
	}

	b := newGeometryBuilder()
	for _, face := range object.Faces {
		if len(face.Points) < 3 {
			continue
		}
		p0 := objPoint(face.Points[0])
		for i := 1; i+1 < len(face.Points); i++ {
			b.addTriangle(p0, objPoint(face.Points[i]), objPoint(face.Points[i+1]))
		}
	}
	if b.g.TriangleCount() == 0 {
		return nil, fmt.Errorf("%w: OBJ contains no faces", ErrNoMeshFound)
	}
	return b.finish(), nil
}

func objPoint(p *obj.Point) mgl32.Vec3 {
	return mgl32.Vec3{float32(p.Vertex.X), float32(p.Vertex.Y), float32(p.Vertex.Z)}
}
