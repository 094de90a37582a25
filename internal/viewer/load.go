package viewer

import (
	"go.uber.org/zap"

	"github.com/triforge/meshview/internal/logger"
	"github.com/triforge/meshview/pkg/formats"
	"github.com/triforge/meshview/pkg/geom"
)

// loadResult is one completed background parse. Every request produces
// exactly one result, success or failure.
type loadResult struct {
	path string
	g    *geom.Geometry
	err  error
}

// requestLoad parses the file off the UI thread and queues the completion.
// Loads are not cancelled: if several are in flight, the completion that
// arrives last becomes the displayed model.
func (a *App) requestLoad(path string) {
	logger.Info("loading model", zap.String("path", path))
	go func() {
		g, err := formats.LoadFile(path)
		a.loads <- loadResult{path: path, g: g, err: err}
	}()
}

// drainLoads applies any queued load completions on the UI thread.
func (a *App) drainLoads() {
	for {
		select {
		case res := <-a.loads:
			a.applyLoad(res)
		default:
			return
		}
	}
}

// applyLoad installs a completed load. Failures warn and leave the current
// model untouched.
func (a *App) applyLoad(res loadResult) {
	if res.err != nil {
		logger.Warn("failed to load model",
			zap.String("path", res.path),
			zap.Error(res.err),
		)
		return
	}

	session := NewSession(res.path, res.g, a.cfg.Viewer.TargetSize)

	// Exactly one display mesh: dispose the previous GPU buffers before
	// uploading the replacement.
	if a.mesh != nil {
		a.mesh.Dispose()
		a.mesh = nil
	}
	a.giz.Detach()

	a.session = session
	a.mesh = a.renderer.UploadMesh(session.Display)
	a.giz.Attach(&session.Transform)

	if a.watcher != nil {
		if err := a.watcher.Watch(res.path); err != nil {
			logger.Warn("failed to watch model file", zap.Error(err))
		}
	}

	a.window.SetTitle("meshview - " + session.Name)
	logger.Info("model loaded",
		zap.String("session", session.ID.String()),
		zap.String("name", session.Name),
		zap.Int("triangles", session.Display.TriangleCount()),
	)
}
