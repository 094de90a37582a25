// Package gizmo implements the interactive transform widget state machine:
// translate/rotate/scale modes, local/world space, per-axis visibility,
// snapping and drag handling against an attached transform.
package gizmo

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/triforge/meshview/pkg/geom"
)

// Mode selects which transform attribute dragging mutates.
type Mode int

const (
	Translate Mode = iota
	Rotate
	Scale
)

// String returns a human-readable mode name.
func (m Mode) String() string {
	switch m {
	case Rotate:
		return "rotate"
	case Scale:
		return "scale"
	default:
		return "translate"
	}
}

// Space selects the coordinate frame drag axes live in.
type Space int

const (
	World Space = iota
	Local
)

// String returns a human-readable space name.
func (s Space) String() string {
	if s == Local {
		return "local"
	}
	return "world"
}

// Axis identifies one of the three gizmo handles.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// String returns the axis letter.
func (a Axis) String() string {
	return [...]string{"x", "y", "z"}[a]
}

// Config holds gizmo tuning values.
type Config struct {
	TranslateSnap float32 // world units, applied while snapping is on
	RotateSnap    float32 // radians, applied while snapping is on
	ScaleSnap     float32 // applied while snapping is on

	SizeStep float32 // +/- visual size increment
	MinSize  float32 // visual size floor

	TranslateFactor float32 // drag pixels to world units
	RotateFactor    float32 // drag pixels to radians
	ScaleFactor     float32 // drag pixels to scale delta
}

// Gizmo is the transform widget. It mutates an attached geom.Transform in
// response to drags; everything else is mode and visibility state the
// keyboard router flips.
type Gizmo struct {
	cfg Config

	mode    Mode
	space   Space
	enabled bool
	size    float32

	axisVisible [3]bool

	snapping bool

	// Drag state
	dragging  bool
	dragAxis  Axis
	dragStart geom.Transform
	accum     float32

	target *geom.Transform

	// Fired with the new dragging state; the viewer uses it to pause orbit
	// navigation for the duration of a drag.
	onDraggingChanged func(bool)
}

// New creates an enabled translate-mode gizmo with all axes visible.
func New(cfg Config) *Gizmo {
	return &Gizmo{
		cfg:         cfg,
		mode:        Translate,
		space:       World,
		enabled:     true,
		size:        1,
		axisVisible: [3]bool{true, true, true},
	}
}

// OnDraggingChanged registers the drag-state callback.
func (g *Gizmo) OnDraggingChanged(fn func(bool)) {
	g.onDraggingChanged = fn
}

// Attach binds the gizmo to a transform. A drag in progress is cancelled.
func (g *Gizmo) Attach(t *geom.Transform) {
	g.EndDrag()
	g.target = t
}

// Detach unbinds the gizmo.
func (g *Gizmo) Detach() {
	g.EndDrag()
	g.target = nil
}

// Attached reports whether a transform is bound.
func (g *Gizmo) Attached() bool {
	return g.target != nil
}

// Target returns the bound transform, or nil.
func (g *Gizmo) Target() *geom.Transform {
	return g.target
}

// Mode returns the current mode.
func (g *Gizmo) Mode() Mode {
	return g.mode
}

// SetMode switches the gizmo mode.
func (g *Gizmo) SetMode(m Mode) {
	g.mode = m
}

// Space returns the current coordinate space.
func (g *Gizmo) Space() Space {
	return g.space
}

// ToggleSpace flips between local and world space and returns the new one.
func (g *Gizmo) ToggleSpace() Space {
	if g.space == World {
		g.space = Local
	} else {
		g.space = World
	}
	return g.space
}

// Enabled reports whether the gizmo reacts to drags.
func (g *Gizmo) Enabled() bool {
	return g.enabled
}

// ToggleEnabled flips the enabled flag and returns the new value. Disabling
// cancels a drag in progress.
func (g *Gizmo) ToggleEnabled() bool {
	g.enabled = !g.enabled
	if !g.enabled {
		g.EndDrag()
	}
	return g.enabled
}

// AxisVisible reports whether the given handle is shown.
func (g *Gizmo) AxisVisible(a Axis) bool {
	return g.axisVisible[a]
}

// ToggleAxis flips one handle's visibility and returns the new value.
func (g *Gizmo) ToggleAxis(a Axis) bool {
	g.axisVisible[a] = !g.axisVisible[a]
	return g.axisVisible[a]
}

// Size returns the visual size multiplier.
func (g *Gizmo) Size() float32 {
	return g.size
}

// GrowSize increases the visual size by one step.
func (g *Gizmo) GrowSize() {
	g.size += g.cfg.SizeStep
}

// ShrinkSize decreases the visual size by one step, floored at MinSize.
func (g *Gizmo) ShrinkSize() {
	g.size -= g.cfg.SizeStep
	if g.size < g.cfg.MinSize {
		g.size = g.cfg.MinSize
	}
}

// SetSnapping enables or disables the configured snap increments. While off,
// transforms are free and continuous.
func (g *Gizmo) SetSnapping(on bool) {
	g.snapping = on
}

// Snapping reports whether snap increments are active.
func (g *Gizmo) Snapping() bool {
	return g.snapping
}

// Dragging reports whether a drag is in progress.
func (g *Gizmo) Dragging() bool {
	return g.dragging
}

// BeginDrag starts a drag along the given axis. It is a no-op when the
// gizmo is disabled, the axis is hidden, or nothing is attached.
func (g *Gizmo) BeginDrag(a Axis) bool {
	if !g.enabled || !g.axisVisible[a] || g.target == nil || g.dragging {
		return false
	}
	g.dragging = true
	g.dragAxis = a
	g.dragStart = *g.target
	g.accum = 0
	if g.onDraggingChanged != nil {
		g.onDraggingChanged(true)
	}
	return true
}

// EndDrag finishes the current drag, if any.
func (g *Gizmo) EndDrag() {
	if !g.dragging {
		return
	}
	g.dragging = false
	if g.onDraggingChanged != nil {
		g.onDraggingChanged(false)
	}
}

// Drag feeds a pointer delta into the active drag. The delta accumulates
// from the drag start, so snapping quantizes the absolute offset rather
// than each increment.
func (g *Gizmo) Drag(delta float32) {
	if !g.dragging || g.target == nil {
		return
	}

	switch g.mode {
	case Translate:
		g.accum += delta * g.cfg.TranslateFactor
		applied := g.snap(g.accum, g.cfg.TranslateSnap)
		g.target.Position = g.dragStart.Position.Add(g.axisDirection().Mul(applied))

	case Rotate:
		g.accum += delta * g.cfg.RotateFactor
		angle := g.snap(g.accum, g.cfg.RotateSnap)
		spin := mgl32.QuatRotate(angle, baseAxis(g.dragAxis))
		if g.space == Local {
			g.target.Rotation = g.dragStart.Rotation.Mul(spin)
		} else {
			g.target.Rotation = spin.Mul(g.dragStart.Rotation)
		}

	case Scale:
		g.accum += delta * g.cfg.ScaleFactor
		factor := 1 + g.snap(g.accum, g.cfg.ScaleSnap)
		if factor < 0.01 {
			factor = 0.01
		}
		s := g.dragStart.Scale
		s[int(g.dragAxis)] *= factor
		g.target.Scale = s
	}
}

// snap quantizes v to the increment when snapping is active; increments of
// zero always pass v through.
func (g *Gizmo) snap(v, increment float32) float32 {
	if !g.snapping || increment == 0 {
		return v
	}
	return float32(gomath.Round(float64(v/increment))) * increment
}

// axisDirection returns the drag axis in the space the gizmo operates in.
func (g *Gizmo) axisDirection() mgl32.Vec3 {
	dir := baseAxis(g.dragAxis)
	if g.space == Local && g.target != nil {
		dir = g.dragStart.Rotation.Rotate(dir)
	}
	return dir
}

func baseAxis(a Axis) mgl32.Vec3 {
	switch a {
	case AxisY:
		return mgl32.Vec3{0, 1, 0}
	case AxisZ:
		return mgl32.Vec3{0, 0, 1}
	default:
		return mgl32.Vec3{1, 0, 0}
	}
}
