package viewer

import (
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/triforge/meshview/internal/engine/camera"
	"github.com/triforge/meshview/internal/engine/gizmo"
	"github.com/triforge/meshview/pkg/geom"
)

func newTestController() (*Controller, *camera.Rig, *gizmo.Gizmo) {
	rig := camera.NewRig(camera.Config{
		FOVDegrees:    75,
		Near:          0.1,
		Far:           1000,
		Distance:      5,
		RandomFOVMin:  30,
		RandomFOVMax:  90,
		RandomZoomMin: 0.5,
		RandomZoomMax: 1.5,
	})
	giz := gizmo.New(gizmo.Config{
		TranslateSnap: 1,
		RotateSnap:    mgl32.DegToRad(15),
		ScaleSnap:     0.25,
		SizeStep:      0.1,
		MinSize:       0.1,
	})
	return NewController(rig, giz, rand.New(rand.NewSource(1))), rig, giz
}

func TestModeKeys(t *testing.T) {
	c, _, giz := newTestController()

	c.HandleKeyDown(KeyE)
	if giz.Mode() != gizmo.Rotate {
		t.Errorf("after e: mode = %v, want rotate", giz.Mode())
	}
	c.HandleKeyDown(KeyW)
	if giz.Mode() != gizmo.Translate {
		t.Errorf("after w: mode = %v, want translate", giz.Mode())
	}
	c.HandleKeyDown(KeyR)
	if giz.Mode() != gizmo.Scale {
		t.Errorf("after r: mode = %v, want scale", giz.Mode())
	}

	// Unmapped keys leave the mode unchanged
	c.HandleKeyDown(KeyUnknown)
	if giz.Mode() != gizmo.Scale {
		t.Errorf("unmapped key changed mode to %v", giz.Mode())
	}
}

func TestSpaceKeyTogglesGizmo(t *testing.T) {
	c, _, giz := newTestController()

	c.HandleKeyDown(KeySpace)
	if giz.Enabled() {
		t.Error("gizmo still enabled after space")
	}
	c.HandleKeyDown(KeySpace)
	if !giz.Enabled() {
		t.Error("gizmo not re-enabled after second space")
	}
}

func TestCoordinateSpaceToggle(t *testing.T) {
	c, _, giz := newTestController()

	c.HandleKeyDown(KeyQ)
	if giz.Space() != gizmo.Local {
		t.Errorf("after q: space = %v, want local", giz.Space())
	}
	c.HandleKeyDown(KeyQ)
	if giz.Space() != gizmo.World {
		t.Errorf("after second q: space = %v, want world", giz.Space())
	}
}

func TestShiftHoldEnablesSnapping(t *testing.T) {
	c, _, giz := newTestController()

	if giz.Snapping() {
		t.Fatal("snapping on before shift")
	}
	c.HandleKeyDown(KeyShift)
	if !giz.Snapping() {
		t.Error("snapping off while shift held")
	}
	c.HandleKeyUp(KeyShift)
	if giz.Snapping() {
		t.Error("snapping on after shift release")
	}
}

func TestAxisVisibilityKeys(t *testing.T) {
	c, _, giz := newTestController()

	c.HandleKeyDown(KeyY)
	if giz.AxisVisible(gizmo.AxisY) {
		t.Error("Y axis still visible after y")
	}
	if !giz.AxisVisible(gizmo.AxisX) || !giz.AxisVisible(gizmo.AxisZ) {
		t.Error("toggling Y affected other axes")
	}
	c.HandleKeyDown(KeyY)
	if !giz.AxisVisible(gizmo.AxisY) {
		t.Error("Y axis not restored after second y")
	}
}

func TestEscapeResetsTransform(t *testing.T) {
	c, _, giz := newTestController()

	transform := geom.IdentityTransform()
	transform.Position = mgl32.Vec3{3, 2, 1}
	transform.Scale = mgl32.Vec3{2, 2, 2}
	giz.Attach(&transform)

	c.HandleKeyDown(KeyEscape)
	if transform != geom.IdentityTransform() {
		t.Errorf("after escape: transform = %+v, want identity", transform)
	}
}

func TestEscapeWithoutModelIsNoOp(t *testing.T) {
	c, _, _ := newTestController()
	c.HandleKeyDown(KeyEscape) // must not panic
}

func TestSizeKeys(t *testing.T) {
	c, _, giz := newTestController()

	c.HandleKeyDown(KeyPlus)
	if got := giz.Size(); mgl32.Abs(got-1.1) > 1e-6 {
		t.Errorf("after +: size = %v, want 1.1", got)
	}
	c.HandleKeyDown(KeyMinus)
	c.HandleKeyDown(KeyMinus)
	if got := giz.Size(); mgl32.Abs(got-0.9) > 1e-6 {
		t.Errorf("after + - -: size = %v, want 0.9", got)
	}
}

func TestCameraKeysFireViewChanged(t *testing.T) {
	c, rig, _ := newTestController()

	calls := 0
	c.OnViewChanged(func() { calls++ })

	c.HandleKeyDown(KeyC)
	if rig.Kind() != camera.Orthographic {
		t.Errorf("after c: kind = %v, want orthographic", rig.Kind())
	}
	c.HandleKeyDown(KeyV)
	if calls != 2 {
		t.Errorf("view-changed fired %d times, want 2", calls)
	}
}
