package renderer

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// lineBatch is a static set of colored line segments on the GPU.
type lineBatch struct {
	vao         uint32
	vbo         uint32
	vertexCount int32
}

// uploadLines uploads interleaved position+color line vertices.
func uploadLines(vertices []float32) lineBatch {
	if len(vertices) == 0 {
		return lineBatch{}
	}

	var b lineBatch
	b.vertexCount = int32(len(vertices) / 6)

	gl.GenVertexArrays(1, &b.vao)
	gl.BindVertexArray(b.vao)

	gl.GenBuffers(1, &b.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)

	// Position attribute (location = 0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 6*4, nil)
	gl.EnableVertexAttribArray(0)

	// Color attribute (location = 1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, 6*4, gl.PtrOffset(3*4))
	gl.EnableVertexAttribArray(1)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	return b
}

func (b *lineBatch) dispose() {
	if b.vao != 0 {
		gl.DeleteVertexArrays(1, &b.vao)
		b.vao = 0
	}
	if b.vbo != 0 {
		gl.DeleteBuffers(1, &b.vbo)
		b.vbo = 0
	}
	b.vertexCount = 0
}

// buildGridLines builds an XZ-plane grid centered at the origin.
// The two center lines use the axis color.
func buildGridLines(size float32, divisions int, color, axisColor [3]float32) []float32 {
	if size <= 0 || divisions <= 0 {
		return nil
	}

	half := size / 2
	step := size / float32(divisions)
	vertices := make([]float32, 0, (divisions+1)*4*6)

	appendLine := func(x1, z1, x2, z2 float32, c [3]float32) {
		vertices = append(vertices,
			x1, 0, z1, c[0], c[1], c[2],
			x2, 0, z2, c[0], c[1], c[2],
		)
	}

	for i := 0; i <= divisions; i++ {
		p := -half + float32(i)*step
		c := color
		if i == divisions/2 && divisions%2 == 0 {
			c = axisColor
		}
		appendLine(p, -half, p, half, c) // parallel to Z
		appendLine(-half, p, half, p, c) // parallel to X
	}

	return vertices
}

// buildAxisLines builds unit-length gizmo axis lines from the origin:
// X red, Y green, Z blue, two vertices each, in that order.
func buildAxisLines() []float32 {
	return []float32{
		0, 0, 0, 0.9, 0.2, 0.2,
		1, 0, 0, 0.9, 0.2, 0.2,

		0, 0, 0, 0.2, 0.9, 0.2,
		0, 1, 0, 0.2, 0.9, 0.2,

		0, 0, 0, 0.2, 0.4, 0.9,
		0, 0, 1, 0.2, 0.4, 0.9,
	}
}
