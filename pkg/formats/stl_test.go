package formats

import (
	"bytes"
	"encoding/binary"
	gomath "math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/triforge/meshview/pkg/geom"
)

const asciiTriangle = `solid test
  facet normal 0 0 1
    outer loop
      vertex 0 0 0
      vertex 1 0 0
      vertex 0 1 0
    endloop
  endfacet
endsolid test
`

// makeBinarySTL builds a binary STL buffer from triangle soup.
func makeBinarySTL(tris [][3]mgl32.Vec3) []byte {
	var buf bytes.Buffer
	buf.Write(make([]byte, 80))
	binary.Write(&buf, binary.LittleEndian, uint32(len(tris)))
	for _, tri := range tris {
		binary.Write(&buf, binary.LittleEndian, [3]float32{0, 0, 1})
		for _, v := range tri {
			binary.Write(&buf, binary.LittleEndian, [3]float32{v.X(), v.Y(), v.Z()})
		}
		binary.Write(&buf, binary.LittleEndian, uint16(0))
	}
	return buf.Bytes()
}

func TestParseSTL_ASCII(t *testing.T) {
	g, err := ParseSTL([]byte(asciiTriangle))
	if err != nil {
		t.Fatalf("ParseSTL: %v", err)
	}
	if g.TriangleCount() != 1 {
		t.Errorf("triangle count = %d, want 1", g.TriangleCount())
	}
	if len(g.Positions) != 3 {
		t.Errorf("vertex count = %d, want 3", len(g.Positions))
	}
	if len(g.Normals) != len(g.Positions) {
		t.Errorf("normals not recomputed: %d normals for %d vertices", len(g.Normals), len(g.Positions))
	}
}

func TestParseSTL_Binary(t *testing.T) {
	// Two triangles sharing an edge; shared vertices must be merged.
	data := makeBinarySTL([][3]mgl32.Vec3{
		{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		{{1, 0, 0}, {1, 1, 0}, {0, 1, 0}},
	})

	g, err := ParseSTL(data)
	if err != nil {
		t.Fatalf("ParseSTL: %v", err)
	}
	if g.TriangleCount() != 2 {
		t.Errorf("triangle count = %d, want 2", g.TriangleCount())
	}
	if len(g.Positions) != 4 {
		t.Errorf("vertex count = %d, want 4 after merging", len(g.Positions))
	}
}

func TestParseSTL_Malformed(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", []byte{}},
		{"short header", make([]byte, 40)},
		{"count beyond data", makeBinarySTL([][3]mgl32.Vec3{{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}})[:90]},
		{"ascii no facets", []byte("solid empty\nendsolid empty\n")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseSTL(tt.data); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestParseSTL_BinaryWithSolidHeader(t *testing.T) {
	// Binary files whose comment header begins with "solid" must still parse.
	data := makeBinarySTL([][3]mgl32.Vec3{{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}})
	copy(data[:5], "solid")

	g, err := ParseSTL(data)
	if err != nil {
		t.Fatalf("ParseSTL: %v", err)
	}
	if g.TriangleCount() != 1 {
		t.Errorf("triangle count = %d, want 1", g.TriangleCount())
	}
}

func TestWriteSTL_RoundTrip(t *testing.T) {
	src, err := ParseSTL(makeBinarySTL([][3]mgl32.Vec3{
		{{0, 0, 0}, {2, 0, 0}, {0, 2, 0}},
		{{0, 0, 1}, {2, 0, 1}, {0, 2, 1}},
	}))
	if err != nil {
		t.Fatalf("fixture parse: %v", err)
	}

	for _, format := range []STLFormat{STLASCII, STLBinary} {
		name := "ascii"
		if format == STLBinary {
			name = "binary"
		}
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := WriteSTL(&buf, src, format); err != nil {
				t.Fatalf("WriteSTL: %v", err)
			}

			back, err := ParseSTL(buf.Bytes())
			if err != nil {
				t.Fatalf("re-parse: %v", err)
			}
			if back.TriangleCount() != src.TriangleCount() {
				t.Errorf("triangle count = %d, want %d", back.TriangleCount(), src.TriangleCount())
			}

			sb, _ := src.Bounds()
			bb, _ := back.Bounds()
			if sb.Center().Sub(bb.Center()).Len() > 1e-5 {
				t.Errorf("bounds center drifted: %v -> %v", sb.Center(), bb.Center())
			}
		})
	}
}

func TestWriteSTL_Deterministic(t *testing.T) {
	g, err := ParseSTL([]byte(asciiTriangle))
	if err != nil {
		t.Fatalf("fixture parse: %v", err)
	}

	var a, b bytes.Buffer
	if err := WriteSTL(&a, g, STLASCII); err != nil {
		t.Fatalf("first write: %v", err)
	}
	if err := WriteSTL(&b, g, STLASCII); err != nil {
		t.Fatalf("second write: %v", err)
	}
	if !bytes.Equal(a.Bytes(), b.Bytes()) {
		t.Error("two ASCII exports of the same geometry differ")
	}

	a.Reset()
	b.Reset()
	if err := WriteSTL(&a, g, STLBinary); err != nil {
		t.Fatalf("first binary write: %v", err)
	}
	if err := WriteSTL(&b, g, STLBinary); err != nil {
		t.Fatalf("second binary write: %v", err)
	}
	if a.Len() != b.Len() {
		t.Errorf("binary export lengths differ: %d vs %d", a.Len(), b.Len())
	}
	if want := binarySTLHeaderSize + g.TriangleCount()*binarySTLTriangleSize; a.Len() != want {
		t.Errorf("binary export length = %d, want %d", a.Len(), want)
	}
}

func TestWriteSTL_BakedTranslation(t *testing.T) {
	// Bake a (1,0,0) translation and verify the exported mesh center moved
	// by exactly that offset.
	src, err := ParseSTL(makeBinarySTL([][3]mgl32.Vec3{
		{{0, 0, 0}, {2, 0, 0}, {0, 2, 0}},
	}))
	if err != nil {
		t.Fatalf("fixture parse: %v", err)
	}
	origBounds, _ := src.Bounds()

	tr := geom.IdentityTransform()
	tr.Position = mgl32.Vec3{1, 0, 0}

	baked := src.Clone()
	baked.ApplyMatrix(tr.Matrix())
	baked.RecomputeNormals()

	var buf bytes.Buffer
	if err := WriteSTL(&buf, baked, STLBinary); err != nil {
		t.Fatalf("WriteSTL: %v", err)
	}
	back, err := ParseSTL(buf.Bytes())
	if err != nil {
		t.Fatalf("re-parse: %v", err)
	}

	backBounds, _ := back.Bounds()
	offset := backBounds.Center().Sub(origBounds.Center())
	if gomath.Abs(float64(offset.X()-1)) > 1e-5 || gomath.Abs(float64(offset.Y())) > 1e-5 || gomath.Abs(float64(offset.Z())) > 1e-5 {
		t.Errorf("center offset = %v, want (1,0,0)", offset)
	}
}
