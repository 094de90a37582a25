// glTF 2.0 / GLB loading via qmuntal/gltf. The scene graph is walked
// depth-first in declaration order and the first node carrying a mesh wins;
// remaining meshes are ignored.
package formats

import (
	"bytes"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/triforge/meshview/pkg/geom"
)

// ParseGLTF parses glTF JSON or GLB bytes. External buffer references cannot
// be resolved from a byte slice; callers with a file path should prefer
// LoadFile.
func ParseGLTF(data []byte) (*geom.Geometry, error) {
	doc := new(gltf.Document)
	if err := gltf.NewDecoder(bytes.NewReader(data)).Decode(doc); err != nil {
		return nil, fmt.Errorf("parsing glTF: %w", err)
	}
	return firstGLTFMesh(doc)
}

// firstGLTFMesh extracts the first mesh reachable from the default scene.
// Documents without scenes fall back to the first mesh in the mesh array.
func firstGLTFMesh(doc *gltf.Document) (*geom.Geometry, error) {
	if mesh := firstMeshNode(doc); mesh != nil {
		return meshGeometry(doc, mesh)
	}
	if len(doc.Meshes) > 0 {
		return meshGeometry(doc, doc.Meshes[0])
	}
	return nil, fmt.Errorf("%w: glTF document has no meshes", ErrNoMeshFound)
}

// firstMeshNode runs an explicit depth-first search over the scene nodes,
// children before siblings, and returns the first mesh encountered.
func firstMeshNode(doc *gltf.Document) *gltf.Mesh {
	sceneIdx := 0
	if doc.Scene != nil {
		sceneIdx = *doc.Scene
	}
	if sceneIdx >= len(doc.Scenes) {
		return nil
	}

	// Iterative DFS; roots and children are pushed reversed so pop order
	// matches file declaration order.
	var stack []int
	roots := doc.Scenes[sceneIdx].Nodes
	for i := len(roots) - 1; i >= 0; i-- {
		stack = append(stack, roots[i])
	}

	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if idx < 0 || idx >= len(doc.Nodes) {
			continue
		}
		node := doc.Nodes[idx]
		if node.Mesh != nil && *node.Mesh < len(doc.Meshes) {
			return doc.Meshes[*node.Mesh]
		}
		for i := len(node.Children) - 1; i >= 0; i-- {
			stack = append(stack, node.Children[i])
		}
	}
	return nil
}

func meshGeometry(doc *gltf.Document, mesh *gltf.Mesh) (*geom.Geometry, error) {
	if len(mesh.Primitives) == 0 {
		return nil, fmt.Errorf("%w: mesh %q has no primitives", ErrNoMeshFound, mesh.Name)
	}
	prim := mesh.Primitives[0]

	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return nil, fmt.Errorf("%w: primitive has no positions", ErrNoMeshFound)
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return nil, fmt.Errorf("reading glTF positions: %w", err)
	}

	g := &geom.Geometry{Positions: make([]mgl32.Vec3, len(positions))}
	for i, p := range positions {
		g.Positions[i] = mgl32.Vec3{p[0], p[1], p[2]}
	}

	if prim.Indices != nil {
		indices, err := modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return nil, fmt.Errorf("reading glTF indices: %w", err)
		}
		g.Indices = indices
	} else {
		// Non-indexed primitive: triangles in vertex order.
		g.Indices = make([]uint32, len(g.Positions))
		for i := range g.Indices {
			g.Indices[i] = uint32(i)
		}
	}

	if normIdx, ok := prim.Attributes[gltf.NORMAL]; ok {
		normals, err := modeler.ReadNormal(doc, doc.Accessors[normIdx], nil)
		if err == nil && len(normals) == len(g.Positions) {
			g.Normals = make([]mgl32.Vec3, len(normals))
			for i, n := range normals {
				g.Normals[i] = mgl32.Vec3{n[0], n[1], n[2]}
			}
		}
	}
	if len(g.Normals) == 0 {
		g.RecomputeNormals()
	}
	return g, nil
}
