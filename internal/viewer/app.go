package viewer

import (
	"fmt"
	gomath "math"
	"math/rand"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/sqweek/dialog"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/triforge/meshview/internal/config"
	"github.com/triforge/meshview/internal/engine/camera"
	"github.com/triforge/meshview/internal/engine/gizmo"
	"github.com/triforge/meshview/internal/engine/input"
	"github.com/triforge/meshview/internal/engine/picking"
	"github.com/triforge/meshview/internal/engine/renderer"
	"github.com/triforge/meshview/internal/engine/window"
	"github.com/triforge/meshview/internal/logger"
	"github.com/triforge/meshview/pkg/formats"
	"github.com/triforge/meshview/pkg/geom"
)

// App is the viewer application: window, renderer, camera rig, gizmo and
// the current session, driven by a single-threaded event loop.
type App struct {
	cfg     *config.Config
	running bool
	closed  bool

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input

	rig        *camera.Rig
	giz        *gizmo.Gizmo
	controller *Controller

	session *Session
	mesh    *renderer.Mesh

	leftDown   bool
	middleDown bool

	loads   chan loadResult
	watcher *fileWatcher
	rng     *rand.Rand
}

// New creates the viewer application. The OpenGL context is created here,
// so it must run on the main thread.
func New(cfg *config.Config) (*App, error) {
	logger.Info("initializing viewer",
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
	)

	a := &App{
		cfg:   cfg,
		loads: make(chan loadResult, 4),
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	// Create window (this also creates the OpenGL context)
	var err error
	a.window, err = window.New(window.Config{
		Title:  "meshview",
		Width:  cfg.Window.Width,
		Height: cfg.Window.Height,
		VSync:  cfg.Window.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Create renderer (AFTER window, since the OpenGL context must exist)
	a.renderer, err = renderer.New(renderer.Config{
		Width:            cfg.Window.Width,
		Height:           cfg.Window.Height,
		GridSize:         cfg.Grid.Size,
		GridDivisions:    cfg.Grid.Divisions,
		GridColor:        cfg.Grid.Color,
		GridAxisColor:    cfg.Grid.AxisColor,
		AmbientColor:     cfg.Light.AmbientColor,
		AmbientIntensity: cfg.Light.AmbientIntensity,
		DiffuseColor:     cfg.Light.DiffuseColor,
		DiffuseIntensity: cfg.Light.DiffuseIntensity,
		LightDirection:   cfg.Light.Direction,
		MaterialColor:    cfg.Light.MaterialColor,
	})
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	a.input = input.New()

	a.rig = camera.NewRig(camera.Config{
		FOVDegrees:    cfg.Camera.FOVDegrees,
		Near:          cfg.Camera.Near,
		Far:           cfg.Camera.Far,
		Distance:      cfg.Camera.Distance,
		RandomFOVMin:  cfg.Camera.RandomFOVMin,
		RandomFOVMax:  cfg.Camera.RandomFOVMax,
		RandomZoomMin: cfg.Camera.RandomZoomMin,
		RandomZoomMax: cfg.Camera.RandomZoomMax,
	})
	a.rig.SetAspect(cfg.Window.Width, cfg.Window.Height)

	a.giz = gizmo.New(gizmo.Config{
		TranslateSnap:   cfg.Gizmo.TranslateSnap,
		RotateSnap:      mgl32.DegToRad(cfg.Gizmo.RotateSnapDeg),
		ScaleSnap:       cfg.Gizmo.ScaleSnap,
		SizeStep:        cfg.Gizmo.SizeStep,
		MinSize:         cfg.Gizmo.MinSize,
		TranslateFactor: cfg.Gizmo.TranslateFactor,
		RotateFactor:    cfg.Gizmo.RotateFactor,
		ScaleFactor:     cfg.Gizmo.ScaleFactor,
	})
	a.giz.OnDraggingChanged(func(dragging bool) {
		logger.Debug("gizmo dragging", zap.Bool("dragging", dragging))
	})

	a.controller = NewController(a.rig, a.giz, a.rng)
	a.controller.OnViewChanged(a.applyViewport)

	if cfg.Watch.Enabled {
		a.watcher, err = newFileWatcher(
			time.Duration(cfg.Watch.DebounceMS)*time.Millisecond,
			a.reloadModel,
		)
		if err != nil {
			logger.Warn("file watching disabled", zap.Error(err))
		}
	}

	logger.Info("viewer initialized")
	return a, nil
}

// OpenModel starts loading the given model file in the background.
func (a *App) OpenModel(path string) {
	a.requestLoad(path)
}

// reloadModel is the watcher callback; it may fire off the UI thread, so
// it only queues a load.
func (a *App) reloadModel(path string) {
	logger.Info("model file changed, reloading", zap.String("path", path))
	a.requestLoad(path)
}

// Run starts the main event loop and blocks until quit.
func (a *App) Run() error {
	a.running = true
	logger.Info("starting viewer loop")

	for a.running {
		// 1. Process input
		if a.input.Update() {
			a.running = false
			break
		}
		for _, ev := range a.input.Events() {
			a.handleEvent(ev)
		}

		// 2. Apply finished background loads on the UI thread
		a.drainLoads()

		// 3. Render
		a.render()

		// 4. Present
		a.window.SwapBuffers()
	}

	return nil
}

// handleEvent dispatches one input event.
func (a *App) handleEvent(ev input.Event) {
	switch ev.Type {
	case input.EventQuit:
		a.running = false

	case input.EventWindowResize:
		a.renderer.Resize(ev.Width, ev.Height)
		a.rig.SetAspect(ev.Width, ev.Height)

	case input.EventKeyDown:
		a.handleKeyDown(ev)

	case input.EventKeyUp:
		a.controller.HandleKeyUp(mapKey(ev.Key))

	case input.EventMouseDown:
		switch ev.Button {
		case sdl.BUTTON_LEFT:
			a.leftDown = true
		case sdl.BUTTON_MIDDLE:
			a.middleDown = true
		case sdl.BUTTON_RIGHT:
			if axis, ok := a.pickAxis(float32(ev.MouseX), float32(ev.MouseY)); ok {
				a.giz.BeginDrag(axis)
			}
		}

	case input.EventMouseUp:
		switch ev.Button {
		case sdl.BUTTON_LEFT:
			a.leftDown = false
		case sdl.BUTTON_MIDDLE:
			a.middleDown = false
		case sdl.BUTTON_RIGHT:
			a.giz.EndDrag()
		}

	case input.EventMouseMove:
		a.handleMouseMove(ev)

	case input.EventMouseWheel:
		a.rig.HandleZoom(float32(ev.DeltaY))

	case input.EventDropFile:
		a.requestLoad(ev.File)
	}
}

// handleKeyDown routes viewer shortcuts first, then the control table.
func (a *App) handleKeyDown(ev input.Event) {
	switch ev.Key {
	case sdl.SCANCODE_O:
		a.openModelDialog()
		return
	case sdl.SCANCODE_S:
		a.exportDialog(formats.STLASCII)
		return
	case sdl.SCANCODE_B:
		a.exportDialog(formats.STLBinary)
		return
	case sdl.SCANCODE_HOME:
		a.rig.Reset()
		return
	}
	a.controller.HandleKeyDown(mapKey(ev.Key))
}

// handleMouseMove feeds an active gizmo drag, otherwise orbits or pans.
// Orbit is disabled while the gizmo is dragging.
func (a *App) handleMouseMove(ev input.Event) {
	if a.giz.Dragging() {
		a.giz.Drag(float32(ev.DeltaX))
		return
	}

	switch {
	case a.leftDown:
		a.rig.Rotate(float32(ev.DeltaX), float32(ev.DeltaY))
	case a.middleDown:
		a.rig.Pan(float32(ev.DeltaX), float32(ev.DeltaY))
	}
}

// pickAxis casts a ray through the cursor and returns the visible gizmo
// axis closest to it.
func (a *App) pickAxis(screenX, screenY float32) (gizmo.Axis, bool) {
	if a.session == nil || !a.giz.Enabled() {
		return gizmo.AxisX, false
	}

	w, h := a.window.GetSize()
	viewProj := a.rig.ProjectionMatrix().Mul4(a.rig.ViewMatrix())
	ray := picking.ScreenToRay(screenX, screenY, float32(w), float32(h), viewProj.Inv())

	model := a.gizmoModel()
	origin := model.Mul4x1(mgl32.Vec4{0, 0, 0, 1}).Vec3()

	// Coarse reject: clicks far from the gizmo never grab an axis.
	if _, hit := ray.IntersectBounds(a.gizmoBounds(model, origin)); !hit {
		return gizmo.AxisX, false
	}

	best := gizmo.AxisX
	bestDist := float32(gomath.MaxFloat32)
	found := false
	for _, axis := range []gizmo.Axis{gizmo.AxisX, gizmo.AxisY, gizmo.AxisZ} {
		if !a.giz.AxisVisible(axis) {
			continue
		}
		var tip mgl32.Vec4
		tip[int(axis)] = 1
		tip[3] = 1
		end := model.Mul4x1(tip).Vec3()
		dist, _ := ray.DistanceToSegment(origin, end)
		if dist < bestDist {
			best, bestDist, found = axis, dist, true
		}
	}
	return best, found
}

// gizmoBounds returns a padded box around the gizmo handles in world space.
func (a *App) gizmoBounds(model mgl32.Mat4, origin mgl32.Vec3) geom.Bounds {
	b := geom.Bounds{Min: origin, Max: origin}
	for i := 0; i < 3; i++ {
		var tip mgl32.Vec4
		tip[i] = 1
		tip[3] = 1
		end := model.Mul4x1(tip).Vec3()
		for c := 0; c < 3; c++ {
			if end[c] < b.Min[c] {
				b.Min[c] = end[c]
			}
			if end[c] > b.Max[c] {
				b.Max[c] = end[c]
			}
		}
	}
	pad := 0.25 * a.giz.Size()
	padVec := mgl32.Vec3{pad, pad, pad}
	b.Min = b.Min.Sub(padVec)
	b.Max = b.Max.Add(padVec)
	return b
}

// gizmoModel places the unit axis lines at the current transform.
func (a *App) gizmoModel() mgl32.Mat4 {
	size := a.giz.Size()
	p := a.session.Transform.Position
	model := mgl32.Translate3D(p.X(), p.Y(), p.Z())
	if a.giz.Space() == gizmo.Local {
		model = model.Mul4(a.session.Transform.Rotation.Normalize().Mat4())
	}
	return model.Mul4(mgl32.Scale3D(size, size, size))
}

// applyViewport re-applies the resize logic after camera kind or FOV/zoom
// changes.
func (a *App) applyViewport() {
	w, h := a.window.GetSize()
	a.renderer.Resize(w, h)
	a.rig.SetAspect(w, h)
}

// render draws the current frame.
func (a *App) render() {
	a.renderer.Begin()

	view := a.rig.ViewMatrix()
	proj := a.rig.ProjectionMatrix()

	a.renderer.DrawGrid(view, proj)

	if a.session != nil && a.mesh != nil {
		model := a.session.Transform.Matrix()
		a.renderer.DrawMesh(a.mesh, model, view, proj)

		if a.giz.Enabled() {
			a.renderer.DrawGizmoAxes(a.gizmoModel(), view, proj, [3]bool{
				a.giz.AxisVisible(gizmo.AxisX),
				a.giz.AxisVisible(gizmo.AxisY),
				a.giz.AxisVisible(gizmo.AxisZ),
			})
		}
	}

	a.renderer.End()
}

// openModelDialog shows the native open dialog and loads the chosen file.
func (a *App) openModelDialog() {
	path, err := dialog.File().
		Filter("3D models", "stl", "obj", "gltf", "glb").
		Title("Open model").
		Load()
	if err != nil {
		// Cancelled dialogs also land here.
		logger.Debug("open dialog dismissed", zap.Error(err))
		return
	}
	a.requestLoad(path)
}

// exportDialog shows the native save dialog and exports the current model.
func (a *App) exportDialog(format formats.STLFormat) {
	if a.session == nil || a.mesh == nil {
		logger.Warn("no model to export")
		return
	}

	path, err := dialog.File().
		Filter("STL", "stl").
		Title("Export STL").
		SetStartFile(DefaultExportName).
		Save()
	if err != nil {
		logger.Debug("save dialog dismissed", zap.Error(err))
		return
	}
	if err := a.ExportSTL(path, format); err != nil {
		logger.Error("export failed", zap.Error(err))
	}
}

// Close releases all viewer resources. Idempotent; safe on every exit path.
func (a *App) Close() {
	if a.closed {
		return
	}
	a.closed = true

	logger.Info("closing viewer")

	if a.watcher != nil {
		_ = a.watcher.Close()
	}
	if a.mesh != nil {
		a.mesh.Dispose()
		a.mesh = nil
	}
	a.giz.Detach()
	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}

// mapKey translates an SDL scancode into a controller key. The +/- size
// keys accept both the main row and the keypad.
func mapKey(code sdl.Scancode) Key {
	switch code {
	case sdl.SCANCODE_W:
		return KeyW
	case sdl.SCANCODE_E:
		return KeyE
	case sdl.SCANCODE_R:
		return KeyR
	case sdl.SCANCODE_Q:
		return KeyQ
	case sdl.SCANCODE_X:
		return KeyX
	case sdl.SCANCODE_Y:
		return KeyY
	case sdl.SCANCODE_Z:
		return KeyZ
	case sdl.SCANCODE_SPACE:
		return KeySpace
	case sdl.SCANCODE_ESCAPE:
		return KeyEscape
	case sdl.SCANCODE_EQUALS, sdl.SCANCODE_KP_PLUS:
		return KeyPlus
	case sdl.SCANCODE_MINUS, sdl.SCANCODE_KP_MINUS:
		return KeyMinus
	case sdl.SCANCODE_C:
		return KeyC
	case sdl.SCANCODE_V:
		return KeyV
	case sdl.SCANCODE_LSHIFT, sdl.SCANCODE_RSHIFT:
		return KeyShift
	default:
		return KeyUnknown
	}
}
