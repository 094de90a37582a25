package viewer

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/triforge/meshview/internal/logger"
	"github.com/triforge/meshview/pkg/formats"
)

// DefaultExportName is the filename offered when exporting.
const DefaultExportName = "model.stl"

// ExportSTL bakes the session's interactive transform into a clone of the
// original geometry and writes it as STL. With no model loaded this warns
// and does nothing; it is a recoverable user condition, not an error.
func (a *App) ExportSTL(path string, format formats.STLFormat) error {
	if a.session == nil || a.mesh == nil {
		logger.Warn("no model to export")
		return nil
	}

	out := a.session.ExportGeometry()

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if err := formats.WriteSTL(f, out, format); err != nil {
		return fmt.Errorf("failed to write STL: %w", err)
	}

	logger.Info("model exported",
		zap.String("path", path),
		zap.String("format", format.String()),
		zap.Int("triangles", out.TriangleCount()),
	)
	return nil
}
