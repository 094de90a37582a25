// Package camera provides the dual-projection camera rig and orbit
// navigation for the viewer.
package camera

import (
	gomath "math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
)

// Kind selects the active projection.
type Kind int

const (
	Perspective Kind = iota
	Orthographic
)

// String returns a human-readable projection name.
func (k Kind) String() string {
	if k == Orthographic {
		return "orthographic"
	}
	return "perspective"
}

// Config holds camera rig settings.
type Config struct {
	FOVDegrees float32
	Near       float32
	Far        float32
	Distance   float32

	RandomFOVMin  float32
	RandomFOVMax  float32
	RandomZoomMin float32
	RandomZoomMax float32
}

// Rig holds a perspective and an orthographic projection over one shared
// orbit state. Exactly one projection is active at a time; switching kinds
// leaves the world position and look-at target untouched because both
// projections read the same orbit.
type Rig struct {
	cfg    Config
	kind   Kind
	aspect float32

	fovDeg float32 // perspective field of view
	zoom   float32 // orthographic zoom factor

	// Orbit state shared by both projections
	center   mgl32.Vec3
	distance float32
	yaw      float32 // radians, around Y
	pitch    float32 // radians, clamped to avoid pole flip

	// Sensitivity
	rotateSpeed float32
	panSpeed    float32
	zoomSpeed   float32
}

// NewRig creates a camera rig with the perspective projection active.
func NewRig(cfg Config) *Rig {
	return &Rig{
		cfg:         cfg,
		kind:        Perspective,
		aspect:      16.0 / 9.0,
		fovDeg:      cfg.FOVDegrees,
		zoom:        1,
		distance:    cfg.Distance,
		yaw:         gomath.Pi / 4,
		pitch:       0.6,
		rotateSpeed: 0.008,
		panSpeed:    0.002,
		zoomSpeed:   0.1,
	}
}

// Kind returns the active projection kind.
func (r *Rig) Kind() Kind {
	return r.kind
}

// Toggle swaps the active projection between perspective and orthographic
// and returns the new kind. Orbit state is shared, so position and target
// are preserved across the switch.
func (r *Rig) Toggle() Kind {
	if r.kind == Perspective {
		r.kind = Orthographic
	} else {
		r.kind = Perspective
	}
	return r.kind
}

// SetAspect recomputes the aspect ratio for both projections.
func (r *Rig) SetAspect(width, height int) {
	if height <= 0 {
		return
	}
	r.aspect = float32(width) / float32(height)
}

// Position returns the camera position in world space.
func (r *Rig) Position() mgl32.Vec3 {
	cp := float32(gomath.Cos(float64(r.pitch)))
	offset := mgl32.Vec3{
		cp * float32(gomath.Sin(float64(r.yaw))),
		float32(gomath.Sin(float64(r.pitch))),
		cp * float32(gomath.Cos(float64(r.yaw))),
	}.Mul(r.distance)
	return r.center.Add(offset)
}

// Target returns the orbit focus point.
func (r *Rig) Target() mgl32.Vec3 {
	return r.center
}

// ViewMatrix returns the view matrix shared by both projections.
func (r *Rig) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(r.Position(), r.center, mgl32.Vec3{0, 1, 0})
}

// ProjectionMatrix returns the projection matrix of the active kind. The
// orthographic frustum height tracks the orbit distance so the two kinds
// frame the model comparably.
func (r *Rig) ProjectionMatrix() mgl32.Mat4 {
	if r.kind == Orthographic {
		halfH := r.distance * float32(gomath.Tan(float64(mgl32.DegToRad(r.fovDeg))/2)) / r.zoom
		halfW := halfH * r.aspect
		return mgl32.Ortho(-halfW, halfW, -halfH, halfH, r.cfg.Near, r.cfg.Far)
	}
	return mgl32.Perspective(mgl32.DegToRad(r.fovDeg), r.aspect, r.cfg.Near, r.cfg.Far)
}

// FOVDegrees returns the current perspective field of view.
func (r *Rig) FOVDegrees() float32 {
	return r.fovDeg
}

// Zoom returns the current orthographic zoom factor.
func (r *Rig) Zoom() float32 {
	return r.zoom
}

// Randomize assigns a random FOV to the perspective projection and a random
// zoom to the orthographic one, drawn uniformly from the configured ranges.
// Exists to exercise projection switching; both kinds are updated so the
// effect is visible whichever is active.
func (r *Rig) Randomize(rng *rand.Rand) {
	r.fovDeg = r.cfg.RandomFOVMin + rng.Float32()*(r.cfg.RandomFOVMax-r.cfg.RandomFOVMin)
	r.zoom = r.cfg.RandomZoomMin + rng.Float32()*(r.cfg.RandomZoomMax-r.cfg.RandomZoomMin)
}

// Rotate updates yaw and pitch from a pointer drag delta.
func (r *Rig) Rotate(dx, dy float32) {
	r.yaw -= dx * r.rotateSpeed
	r.pitch += dy * r.rotateSpeed

	const limit = float32(gomath.Pi/2) - 0.01
	if r.pitch > limit {
		r.pitch = limit
	}
	if r.pitch < -limit {
		r.pitch = -limit
	}
}

// Pan moves the orbit center in the camera plane.
func (r *Rig) Pan(dx, dy float32) {
	view := r.ViewMatrix()
	right := mgl32.Vec3{view.At(0, 0), view.At(0, 1), view.At(0, 2)}
	up := mgl32.Vec3{view.At(1, 0), view.At(1, 1), view.At(1, 2)}

	scale := r.distance * r.panSpeed
	r.center = r.center.Add(right.Mul(-dx * scale)).Add(up.Mul(dy * scale))
}

// HandleZoom moves the camera along the view axis from a scroll delta.
func (r *Rig) HandleZoom(delta float32) {
	r.distance -= delta * r.distance * r.zoomSpeed
	if r.distance < r.cfg.Near*2 {
		r.distance = r.cfg.Near * 2
	}
	if r.distance > r.cfg.Far*0.5 {
		r.distance = r.cfg.Far * 0.5
	}
}

// Reset recenters the orbit on the origin at the configured distance.
func (r *Rig) Reset() {
	r.center = mgl32.Vec3{}
	r.distance = r.cfg.Distance
	r.yaw = gomath.Pi / 4
	r.pitch = 0.6
	r.fovDeg = r.cfg.FOVDegrees
	r.zoom = 1
}
