// STL (stereolithography) parser and writer. The parser autodetects ASCII
// and binary variants; the writer emits either on request.
package formats

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	gomath "math"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/triforge/meshview/pkg/geom"
)

// binarySTLHeaderSize is the fixed preamble: 80-byte comment + uint32 count.
const binarySTLHeaderSize = 84

// binarySTLTriangleSize is normal + 3 vertices (12 floats) + attribute word.
const binarySTLTriangleSize = 50

// STLFormat selects the STL serialization variant.
type STLFormat int

const (
	STLASCII STLFormat = iota
	STLBinary
)

func (f STLFormat) String() string {
	if f == STLBinary {
		return "binary"
	}
	return "ascii"
}

// ParseSTL parses STL data, autodetecting the variant: files starting with
// "solid" are tried as ASCII first, everything else is read as binary.
func ParseSTL(data []byte) (*geom.Geometry, error) {
	if bytes.HasPrefix(bytes.TrimLeft(data, " \t\r\n"), []byte("solid")) {
		g, err := parseASCIISTL(data)
		if err == nil {
			return g, nil
		}
		// Some binary exporters write "solid" into the comment header.
		if len(data) >= binarySTLHeaderSize {
			return parseBinarySTL(data)
		}
		return nil, err
	}
	return parseBinarySTL(data)
}

func parseASCIISTL(data []byte) (*geom.Geometry, error) {
	b := newGeometryBuilder()
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	var tri [3]mgl32.Vec3
	n := 0
	for scanner.Scan() {
		fields := strings.Fields(strings.TrimSpace(scanner.Text()))
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "vertex":
			if len(fields) < 4 {
				return nil, fmt.Errorf("%w: short vertex line", ErrTruncatedSTL)
			}
			v, err := parseVec3(fields[1], fields[2], fields[3])
			if err != nil {
				return nil, fmt.Errorf("invalid STL vertex: %w", err)
			}
			if n < 3 {
				tri[n] = v
			}
			n++
		case "endfacet":
			if n == 3 {
				b.addTriangle(tri[0], tri[1], tri[2])
			}
			n = 0
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading ASCII STL: %w", err)
	}
	if b.g.TriangleCount() == 0 {
		return nil, fmt.Errorf("%w: ASCII STL contains no facets", ErrNoMeshFound)
	}
	return b.finish(), nil
}

func parseBinarySTL(data []byte) (*geom.Geometry, error) {
	if len(data) < binarySTLHeaderSize {
		return nil, ErrTruncatedSTL
	}
	count := binary.LittleEndian.Uint32(data[80:84])
	if len(data)-binarySTLHeaderSize < int(count)*binarySTLTriangleSize {
		return nil, fmt.Errorf("%w: header promises %d triangles", ErrTruncatedSTL, count)
	}

	b := newGeometryBuilder()
	off := binarySTLHeaderSize
	for i := uint32(0); i < count; i++ {
		// Skip the stored normal; normals are recomputed from the faces.
		var tri [3]mgl32.Vec3
		for v := 0; v < 3; v++ {
			base := off + 12 + v*12
			tri[v] = mgl32.Vec3{
				float32frombytes(data[base:]),
				float32frombytes(data[base+4:]),
				float32frombytes(data[base+8:]),
			}
		}
		b.addTriangle(tri[0], tri[1], tri[2])
		off += binarySTLTriangleSize
	}
	if b.g.TriangleCount() == 0 {
		return nil, fmt.Errorf("%w: binary STL contains no triangles", ErrNoMeshFound)
	}
	return b.finish(), nil
}

func float32frombytes(b []byte) float32 {
	return gomath.Float32frombits(binary.LittleEndian.Uint32(b))
}

// WriteSTL serializes the geometry in the requested variant. Output is
// deterministic: identical geometry yields byte-identical output.
func WriteSTL(w io.Writer, g *geom.Geometry, format STLFormat) error {
	if format == STLBinary {
		return writeBinarySTL(w, g)
	}
	return writeASCIISTL(w, g)
}

func writeASCIISTL(w io.Writer, g *geom.Geometry) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "solid meshview\n"); err != nil {
		return err
	}
	for t := 0; t < g.TriangleCount(); t++ {
		n := g.FaceNormal(t)
		fmt.Fprintf(bw, "\tfacet normal %s %s %s\n", ftoa(n.X()), ftoa(n.Y()), ftoa(n.Z()))
		fmt.Fprintf(bw, "\t\touter loop\n")
		for v := 0; v < 3; v++ {
			p := g.Positions[g.Indices[t*3+v]]
			fmt.Fprintf(bw, "\t\t\tvertex %s %s %s\n", ftoa(p.X()), ftoa(p.Y()), ftoa(p.Z()))
		}
		fmt.Fprintf(bw, "\t\tendloop\n")
		fmt.Fprintf(bw, "\tendfacet\n")
	}
	if _, err := fmt.Fprintf(bw, "endsolid meshview\n"); err != nil {
		return err
	}
	return bw.Flush()
}

func writeBinarySTL(w io.Writer, g *geom.Geometry) error {
	bw := bufio.NewWriter(w)

	var header [80]byte
	copy(header[:], "meshview binary STL export")
	if _, err := bw.Write(header[:]); err != nil {
		return err
	}
	if err := binary.Write(bw, binary.LittleEndian, uint32(g.TriangleCount())); err != nil {
		return err
	}

	buf := make([]byte, binarySTLTriangleSize)
	for t := 0; t < g.TriangleCount(); t++ {
		n := g.FaceNormal(t)
		putVec3(buf[0:], n)
		for v := 0; v < 3; v++ {
			putVec3(buf[12+v*12:], g.Positions[g.Indices[t*3+v]])
		}
		buf[48], buf[49] = 0, 0 // attribute byte count
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func putVec3(b []byte, v mgl32.Vec3) {
	binary.LittleEndian.PutUint32(b[0:], gomath.Float32bits(v.X()))
	binary.LittleEndian.PutUint32(b[4:], gomath.Float32bits(v.Y()))
	binary.LittleEndian.PutUint32(b[8:], gomath.Float32bits(v.Z()))
}

func parseVec3(x, y, z string) (mgl32.Vec3, error) {
	fx, err := strconv.ParseFloat(x, 32)
	if err != nil {
		return mgl32.Vec3{}, err
	}
	fy, err := strconv.ParseFloat(y, 32)
	if err != nil {
		return mgl32.Vec3{}, err
	}
	fz, err := strconv.ParseFloat(z, 32)
	if err != nil {
		return mgl32.Vec3{}, err
	}
	return mgl32.Vec3{float32(fx), float32(fy), float32(fz)}, nil
}

// ftoa formats a float the way common STL exporters do.
func ftoa(f float32) string {
	return strconv.FormatFloat(float64(f), 'e', 6, 32)
}
