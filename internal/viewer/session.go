// Package viewer implements the model viewing session: loading, display,
// interactive transform and export.
package viewer

import (
	"path/filepath"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"

	"github.com/triforge/meshview/pkg/geom"
)

// Session holds one loaded model. The original geometry is kept untouched
// for export; the display clone has auto-scale and centering baked into its
// vertex data so the interactive transform starts at identity.
type Session struct {
	ID   uuid.UUID
	Path string
	Name string

	Original *geom.Geometry // never mutated after load
	Display  *geom.Geometry // fitted clone shown in the viewport

	Transform geom.Transform // interactive TRS, applied on top of Display
}

// NewSession fits the parsed geometry for display and wraps it in a session.
// The display clone is scaled so its largest extent equals targetSize and
// centered on its bounding-box center at the origin.
func NewSession(path string, g *geom.Geometry, targetSize float32) *Session {
	display := g.Clone()
	if bounds, ok := display.Bounds(); ok {
		center := bounds.Center()
		scale := geom.AutoScale(display, targetSize)
		fit := mgl32.Scale3D(scale, scale, scale).
			Mul4(mgl32.Translate3D(-center.X(), -center.Y(), -center.Z()))
		display.ApplyMatrix(fit)
	}

	return &Session{
		ID:        uuid.New(),
		Path:      path,
		Name:      filepath.Base(path),
		Original:  g,
		Display:   display,
		Transform: geom.IdentityTransform(),
	}
}

// ExportGeometry clones the original geometry with the session's interactive
// transform baked into the vertex data, normals recomputed. The original is
// left untouched, so repeated exports with no intervening interaction are
// byte-identical.
func (s *Session) ExportGeometry() *geom.Geometry {
	out := s.Original.Clone()
	out.ApplyMatrix(s.Transform.Matrix())
	out.RecomputeNormals()
	return out
}
