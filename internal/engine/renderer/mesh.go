package renderer

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/triforge/meshview/internal/logger"
	"github.com/triforge/meshview/pkg/geom"
)

// Mesh is geometry uploaded to the GPU.
type Mesh struct {
	vao        uint32
	vbo        uint32
	ebo        uint32
	indexCount int32
}

// UploadMesh uploads geometry as an interleaved position+normal buffer.
// The caller owns the returned mesh and must Dispose it when replaced.
func (r *Renderer) UploadMesh(g *geom.Geometry) *Mesh {
	if g == nil || len(g.Positions) == 0 || len(g.Indices) == 0 {
		return nil
	}

	// Interleave: position (x, y, z) + normal (x, y, z)
	vertices := make([]float32, 0, len(g.Positions)*6)
	for i, p := range g.Positions {
		var n [3]float32
		if i < len(g.Normals) {
			n = [3]float32{g.Normals[i].X(), g.Normals[i].Y(), g.Normals[i].Z()}
		}
		vertices = append(vertices, p.X(), p.Y(), p.Z(), n[0], n[1], n[2])
	}

	m := &Mesh{
		indexCount: int32(len(g.Indices)),
	}

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)

	gl.GenBuffers(1, &m.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(g.Indices)*4, unsafe.Pointer(&g.Indices[0]), gl.STATIC_DRAW)

	// Position attribute (location = 0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 6*4, nil)
	gl.EnableVertexAttribArray(0)

	// Normal attribute (location = 1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, 6*4, gl.PtrOffset(3*4))
	gl.EnableVertexAttribArray(1)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, 0)

	logger.Debug("mesh uploaded",
		zap.Uint32("vao", m.vao),
		zap.Int("vertices", len(g.Positions)),
		zap.Int("triangles", len(g.Indices)/3),
	)
	return m
}

// Dispose releases the mesh's GPU buffers. Safe to call more than once.
func (m *Mesh) Dispose() {
	if m == nil {
		return
	}
	if m.vao != 0 {
		gl.DeleteVertexArrays(1, &m.vao)
		m.vao = 0
	}
	if m.vbo != 0 {
		gl.DeleteBuffers(1, &m.vbo)
		m.vbo = 0
	}
	if m.ebo != 0 {
		gl.DeleteBuffers(1, &m.ebo)
		m.ebo = 0
	}
	m.indexCount = 0
}
