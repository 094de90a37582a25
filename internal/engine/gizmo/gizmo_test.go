package gizmo

import (
	gomath "math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/triforge/meshview/pkg/geom"
)

func testConfig() Config {
	return Config{
		TranslateSnap:   1,
		RotateSnap:      float32(15 * gomath.Pi / 180),
		ScaleSnap:       0.25,
		SizeStep:        0.1,
		MinSize:         0.1,
		TranslateFactor: 0.01,
		RotateFactor:    0.01,
		ScaleFactor:     0.005,
	}
}

func TestModeAndSpaceSwitching(t *testing.T) {
	g := New(testConfig())

	if g.Mode() != Translate {
		t.Errorf("initial mode = %v, want translate", g.Mode())
	}

	g.SetMode(Rotate)
	if g.Mode() != Rotate {
		t.Errorf("mode = %v, want rotate", g.Mode())
	}
	g.SetMode(Scale)
	if g.Mode() != Scale {
		t.Errorf("mode = %v, want scale", g.Mode())
	}

	if g.Space() != World {
		t.Errorf("initial space = %v, want world", g.Space())
	}
	if got := g.ToggleSpace(); got != Local {
		t.Errorf("toggled space = %v, want local", got)
	}
	if got := g.ToggleSpace(); got != World {
		t.Errorf("toggled space = %v, want world", got)
	}
}

func TestSizeFloor(t *testing.T) {
	g := New(testConfig())

	g.GrowSize()
	if gomath.Abs(float64(g.Size()-1.1)) > 1e-6 {
		t.Errorf("size after grow = %v, want 1.1", g.Size())
	}

	for i := 0; i < 50; i++ {
		g.ShrinkSize()
	}
	if gomath.Abs(float64(g.Size()-0.1)) > 1e-6 {
		t.Errorf("size floored at %v, want 0.1", g.Size())
	}
}

func TestDragTranslate(t *testing.T) {
	g := New(testConfig())
	tr := geom.IdentityTransform()
	g.Attach(&tr)

	if !g.BeginDrag(AxisX) {
		t.Fatal("BeginDrag failed")
	}
	g.Drag(150) // 150 px * 0.01 = 1.5 units
	g.EndDrag()

	want := mgl32.Vec3{1.5, 0, 0}
	if tr.Position.Sub(want).Len() > 1e-5 {
		t.Errorf("position = %v, want %v", tr.Position, want)
	}
}

func TestDragTranslateSnapped(t *testing.T) {
	g := New(testConfig())
	tr := geom.IdentityTransform()
	g.Attach(&tr)
	g.SetSnapping(true)

	g.BeginDrag(AxisY)
	g.Drag(160) // 1.6 units, snaps to 2
	g.EndDrag()

	want := mgl32.Vec3{0, 2, 0}
	if tr.Position.Sub(want).Len() > 1e-5 {
		t.Errorf("snapped position = %v, want %v", tr.Position, want)
	}

	// Releasing snap returns to free movement from the same start.
	g.SetSnapping(false)
	g.BeginDrag(AxisY)
	g.Drag(10) // +0.1
	g.EndDrag()
	want = mgl32.Vec3{0, 2.1, 0}
	if tr.Position.Sub(want).Len() > 1e-5 {
		t.Errorf("free position = %v, want %v", tr.Position, want)
	}
}

func TestDragRotateSnapped(t *testing.T) {
	g := New(testConfig())
	tr := geom.IdentityTransform()
	g.Attach(&tr)
	g.SetMode(Rotate)
	g.SetSnapping(true)

	g.BeginDrag(AxisZ)
	g.Drag(40) // 0.4 rad ~ 22.9 deg, rounds to the nearest 15 deg step: 30 deg
	g.EndDrag()

	rotated := tr.Rotation.Rotate(mgl32.Vec3{1, 0, 0})
	wantAngle := 30 * gomath.Pi / 180
	want := mgl32.Vec3{float32(gomath.Cos(wantAngle)), float32(gomath.Sin(wantAngle)), 0}
	if rotated.Sub(want).Len() > 1e-5 {
		t.Errorf("rotated X axis = %v, want %v", rotated, want)
	}
}

func TestDragScale(t *testing.T) {
	g := New(testConfig())
	tr := geom.IdentityTransform()
	g.Attach(&tr)
	g.SetMode(Scale)

	g.BeginDrag(AxisX)
	g.Drag(100) // factor 1.5
	g.EndDrag()

	if gomath.Abs(float64(tr.Scale.X()-1.5)) > 1e-5 {
		t.Errorf("scale X = %v, want 1.5", tr.Scale.X())
	}
	if tr.Scale.Y() != 1 || tr.Scale.Z() != 1 {
		t.Errorf("other axes scaled: %v", tr.Scale)
	}
}

func TestHiddenAxisBlocksDrag(t *testing.T) {
	g := New(testConfig())
	tr := geom.IdentityTransform()
	g.Attach(&tr)

	if got := g.ToggleAxis(AxisX); got {
		t.Fatal("expected axis X hidden after toggle")
	}
	if g.BeginDrag(AxisX) {
		t.Error("drag started on hidden axis")
	}
	if g.ToggleAxis(AxisX); !g.BeginDrag(AxisX) {
		t.Error("drag blocked on re-shown axis")
	}
}

func TestDisabledBlocksDrag(t *testing.T) {
	g := New(testConfig())
	tr := geom.IdentityTransform()
	g.Attach(&tr)

	if g.ToggleEnabled() {
		t.Fatal("expected disabled after toggle")
	}
	if g.BeginDrag(AxisX) {
		t.Error("drag started while disabled")
	}
}

func TestDraggingChangedEvents(t *testing.T) {
	g := New(testConfig())
	tr := geom.IdentityTransform()
	g.Attach(&tr)

	var events []bool
	g.OnDraggingChanged(func(on bool) { events = append(events, on) })

	g.BeginDrag(AxisX)
	g.Drag(5)
	g.EndDrag()
	g.EndDrag() // repeated end must not fire again

	if len(events) != 2 || events[0] != true || events[1] != false {
		t.Errorf("events = %v, want [true false]", events)
	}
}

func TestDetachCancelsDrag(t *testing.T) {
	g := New(testConfig())
	tr := geom.IdentityTransform()
	g.Attach(&tr)

	g.BeginDrag(AxisX)
	g.Detach()
	if g.Dragging() {
		t.Error("still dragging after detach")
	}
	if g.Attached() {
		t.Error("still attached after detach")
	}
}
