// Package formats provides parsers and writers for mesh file formats.
// Supported inputs are STL (ASCII and binary), OBJ and glTF/GLB; the only
// output format is STL. Dispatch is by lowercase filename extension.
package formats

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/qmuntal/gltf"

	"github.com/triforge/meshview/pkg/geom"
)

// Loader errors.
var (
	ErrUnsupportedExtension = errors.New("unsupported file extension")
	ErrNoMeshFound          = errors.New("no mesh found in file")
	ErrTruncatedSTL         = errors.New("truncated STL data")
)

// SupportedExtensions lists the extensions Load accepts, lowercase with dot.
func SupportedExtensions() []string {
	return []string{".stl", ".obj", ".gltf", ".glb"}
}

// IsSupported reports whether the filename has a loadable extension.
func IsSupported(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, s := range SupportedExtensions() {
		if ext == s {
			return true
		}
	}
	return false
}

// Load parses raw file bytes into a geometry, dispatching on the extension
// of name. Container formats (OBJ, glTF) yield the first mesh found; any
// further meshes are ignored. Library panics on malformed input are
// converted to errors so a bad file never takes down the session.
func Load(name string, data []byte) (g *geom.Geometry, err error) {
	defer func() {
		if r := recover(); r != nil {
			g = nil
			err = fmt.Errorf("parsing %s: %v", filepath.Base(name), r)
		}
	}()

	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".stl":
		return ParseSTL(data)
	case ".obj":
		return ParseOBJ(data)
	case ".gltf", ".glb":
		return ParseGLTF(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedExtension, ext)
	}
}

// LoadFile reads and parses the file at path. For .gltf files this resolves
// external buffer resources relative to the file, which a byte-slice parse
// cannot do.
func LoadFile(path string) (g *geom.Geometry, err error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".gltf" || ext == ".glb" {
		defer func() {
			if r := recover(); r != nil {
				g = nil
				err = fmt.Errorf("parsing %s: %v", filepath.Base(path), r)
			}
		}()
		doc, err := gltf.Open(path)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
		}
		return firstGLTFMesh(doc)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", filepath.Base(path), err)
	}
	return Load(path, data)
}
