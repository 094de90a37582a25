// Package picking provides ray casting utilities for cursor picking.
package picking

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/triforge/meshview/pkg/geom"
)

// Ray represents a ray in 3D space with origin and normalized direction.
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3
}

// ScreenToRay converts pixel coordinates to a world-space ray.
// invViewProj is the inverse of the view-projection matrix.
func ScreenToRay(screenX, screenY, viewportW, viewportH float32, invViewProj mgl32.Mat4) Ray {
	// Normalized device coords (-1 to 1), Y flipped
	ndcX := 2.0*screenX/viewportW - 1.0
	ndcY := 1.0 - 2.0*screenY/viewportH

	nearWorld := invViewProj.Mul4x1(mgl32.Vec4{ndcX, ndcY, -1, 1})
	farWorld := invViewProj.Mul4x1(mgl32.Vec4{ndcX, ndcY, 1, 1})

	if nearWorld.W() != 0 {
		nearWorld = nearWorld.Mul(1 / nearWorld.W())
	}
	if farWorld.W() != 0 {
		farWorld = farWorld.Mul(1 / farWorld.W())
	}

	origin := nearWorld.Vec3()
	dir := farWorld.Vec3().Sub(origin)
	if dir.Len() > 0 {
		dir = dir.Normalize()
	}

	return Ray{Origin: origin, Direction: dir}
}

// IntersectBounds tests the ray against an axis-aligned box using the slab
// method. Returns the entry distance, or the exit distance when the ray
// starts inside the box.
func (r Ray) IntersectBounds(b geom.Bounds) (t float32, hit bool) {
	tmin := float32(-gomath.MaxFloat32)
	tmax := float32(gomath.MaxFloat32)

	for axis := 0; axis < 3; axis++ {
		if r.Direction[axis] != 0 {
			t1 := (b.Min[axis] - r.Origin[axis]) / r.Direction[axis]
			t2 := (b.Max[axis] - r.Origin[axis]) / r.Direction[axis]
			if t1 > t2 {
				t1, t2 = t2, t1
			}
			if t1 > tmin {
				tmin = t1
			}
			if t2 < tmax {
				tmax = t2
			}
		} else if r.Origin[axis] < b.Min[axis] || r.Origin[axis] > b.Max[axis] {
			return 0, false
		}
	}

	if tmax < tmin || tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}

// DistanceToSegment returns the closest distance between the ray and the
// segment from a to b, plus the segment parameter of the closest point.
func (r Ray) DistanceToSegment(a, b mgl32.Vec3) (dist, s float32) {
	seg := b.Sub(a)
	w := r.Origin.Sub(a)

	dd := r.Direction.Dot(r.Direction)
	ds := r.Direction.Dot(seg)
	ss := seg.Dot(seg)
	dw := r.Direction.Dot(w)
	sw := seg.Dot(w)

	denom := dd*ss - ds*ds
	if denom > 1e-8 {
		s = (dd*sw - ds*dw) / denom
	}
	s = mgl32.Clamp(s, 0, 1)

	// Closest ray parameter to the clamped segment point, behind-origin
	// clamped to the origin itself
	t := (ds*s - dw) / dd
	if t < 0 {
		t = 0
	}

	onRay := r.Origin.Add(r.Direction.Mul(t))
	onSeg := a.Add(seg.Mul(s))
	return onRay.Sub(onSeg).Len(), s
}
