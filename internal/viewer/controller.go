package viewer

import (
	"math/rand"

	"github.com/triforge/meshview/internal/engine/camera"
	"github.com/triforge/meshview/internal/engine/gizmo"
	"github.com/triforge/meshview/pkg/geom"
)

// Key is a layout-independent key the controller understands. The window
// layer maps SDL scancodes onto these.
type Key int

const (
	KeyUnknown Key = iota
	KeyW
	KeyE
	KeyR
	KeyQ
	KeyX
	KeyY
	KeyZ
	KeySpace
	KeyEscape
	KeyPlus
	KeyMinus
	KeyC
	KeyV
	KeyShift
)

// Controller routes key events to the gizmo and camera rig. It is a pure
// mapping table: no key is fatal and unrecognized keys are no-ops.
type Controller struct {
	rig *camera.Rig
	giz *gizmo.Gizmo
	rng *rand.Rand

	// Called after camera kind or FOV/zoom changes so the owner can
	// re-apply its resize logic.
	onViewChanged func()
}

// NewController creates a key router over the given rig and gizmo.
func NewController(rig *camera.Rig, giz *gizmo.Gizmo, rng *rand.Rand) *Controller {
	return &Controller{
		rig: rig,
		giz: giz,
		rng: rng,
	}
}

// OnViewChanged registers the camera-change callback.
func (c *Controller) OnViewChanged(fn func()) {
	c.onViewChanged = fn
}

// HandleKeyDown applies a key-down event.
func (c *Controller) HandleKeyDown(k Key) {
	switch k {
	case KeyW:
		c.giz.SetMode(gizmo.Translate)
	case KeyE:
		c.giz.SetMode(gizmo.Rotate)
	case KeyR:
		c.giz.SetMode(gizmo.Scale)
	case KeyQ:
		c.giz.ToggleSpace()
	case KeyShift:
		c.giz.SetSnapping(true)
	case KeyX:
		c.giz.ToggleAxis(gizmo.AxisX)
	case KeyY:
		c.giz.ToggleAxis(gizmo.AxisY)
	case KeyZ:
		c.giz.ToggleAxis(gizmo.AxisZ)
	case KeySpace:
		c.giz.ToggleEnabled()
	case KeyEscape:
		if t := c.giz.Target(); t != nil {
			*t = geom.IdentityTransform()
		}
	case KeyPlus:
		c.giz.GrowSize()
	case KeyMinus:
		c.giz.ShrinkSize()
	case KeyC:
		c.rig.Toggle()
		c.viewChanged()
	case KeyV:
		c.rig.Randomize(c.rng)
		c.viewChanged()
	}
}

// HandleKeyUp applies a key-up event. Releasing shift returns the gizmo to
// free continuous transforms.
func (c *Controller) HandleKeyUp(k Key) {
	if k == KeyShift {
		c.giz.SetSnapping(false)
	}
}

func (c *Controller) viewChanged() {
	if c.onViewChanged != nil {
		c.onViewChanged()
	}
}
