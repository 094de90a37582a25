// Package renderer provides OpenGL rendering for meshes, the ground grid
// and the transform gizmo overlay.
package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/triforge/meshview/internal/engine/shader"
	"github.com/triforge/meshview/internal/logger"
)

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int

	GridSize      float32
	GridDivisions int
	GridColor     [3]float32
	GridAxisColor [3]float32

	AmbientColor     [3]float32
	AmbientIntensity float32
	DiffuseColor     [3]float32
	DiffuseIntensity float32
	LightDirection   [3]float32

	MaterialColor [4]float32
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config Config

	// Lit mesh pass
	meshProgram uint32
	meshUniform struct {
		model, view, proj                  int32
		color                              int32
		ambientColor, ambientIntensity     int32
		diffuseColor, diffuseIntensity     int32
		lightDir                           int32
	}

	// Flat colored line pass (grid, gizmo axes)
	lineProgram uint32
	lineUniform struct {
		model, view, proj int32
	}

	grid lineBatch
	axes lineBatch
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
	}

	// Initialize OpenGL
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	// Log OpenGL info
	version := gl.GoStr(gl.GetString(gl.VERSION))
	rendererName := gl.GoStr(gl.GetString(gl.RENDERER))
	logger.Info("OpenGL initialized",
		zap.String("version", version),
		zap.String("renderer", rendererName),
	)

	// Setup default OpenGL state
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.ClearColor(0.1, 0.1, 0.15, 1.0) // Dark blue-gray background

	var err error
	r.meshProgram, err = shader.CompileProgram(meshVertexSrc, meshFragmentSrc)
	if err != nil {
		return nil, fmt.Errorf("failed to create mesh shader: %w", err)
	}
	r.meshUniform.model = shader.GetUniform(r.meshProgram, "uModel")
	r.meshUniform.view = shader.GetUniform(r.meshProgram, "uView")
	r.meshUniform.proj = shader.GetUniform(r.meshProgram, "uProj")
	r.meshUniform.color = shader.GetUniform(r.meshProgram, "uColor")
	r.meshUniform.ambientColor = shader.GetUniform(r.meshProgram, "uAmbientColor")
	r.meshUniform.ambientIntensity = shader.GetUniform(r.meshProgram, "uAmbientIntensity")
	r.meshUniform.diffuseColor = shader.GetUniform(r.meshProgram, "uDiffuseColor")
	r.meshUniform.diffuseIntensity = shader.GetUniform(r.meshProgram, "uDiffuseIntensity")
	r.meshUniform.lightDir = shader.GetUniform(r.meshProgram, "uLightDir")

	r.lineProgram, err = shader.CompileProgram(lineVertexSrc, lineFragmentSrc)
	if err != nil {
		gl.DeleteProgram(r.meshProgram)
		return nil, fmt.Errorf("failed to create line shader: %w", err)
	}
	r.lineUniform.model = shader.GetUniform(r.lineProgram, "uModel")
	r.lineUniform.view = shader.GetUniform(r.lineProgram, "uView")
	r.lineUniform.proj = shader.GetUniform(r.lineProgram, "uProj")

	r.grid = uploadLines(buildGridLines(cfg.GridSize, cfg.GridDivisions, cfg.GridColor, cfg.GridAxisColor))
	r.axes = uploadLines(buildAxisLines())

	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	r.grid.dispose()
	r.axes.dispose()
	if r.meshProgram != 0 {
		gl.DeleteProgram(r.meshProgram)
	}
	if r.lineProgram != 0 {
		gl.DeleteProgram(r.lineProgram)
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// End finishes the current frame.
func (r *Renderer) End() {
	// Nothing to flush; draws are immediate.
}

// DrawMesh draws an uploaded mesh with the lit material.
func (r *Renderer) DrawMesh(m *Mesh, model, view, proj mgl32.Mat4) {
	if m == nil || m.vao == 0 {
		return
	}

	gl.UseProgram(r.meshProgram)
	gl.UniformMatrix4fv(r.meshUniform.model, 1, false, &model[0])
	gl.UniformMatrix4fv(r.meshUniform.view, 1, false, &view[0])
	gl.UniformMatrix4fv(r.meshUniform.proj, 1, false, &proj[0])

	c := r.config.MaterialColor
	gl.Uniform4f(r.meshUniform.color, c[0], c[1], c[2], c[3])
	gl.Uniform3f(r.meshUniform.ambientColor,
		r.config.AmbientColor[0], r.config.AmbientColor[1], r.config.AmbientColor[2])
	gl.Uniform1f(r.meshUniform.ambientIntensity, r.config.AmbientIntensity)
	gl.Uniform3f(r.meshUniform.diffuseColor,
		r.config.DiffuseColor[0], r.config.DiffuseColor[1], r.config.DiffuseColor[2])
	gl.Uniform1f(r.meshUniform.diffuseIntensity, r.config.DiffuseIntensity)
	gl.Uniform3f(r.meshUniform.lightDir,
		r.config.LightDirection[0], r.config.LightDirection[1], r.config.LightDirection[2])

	gl.BindVertexArray(m.vao)
	gl.DrawElements(gl.TRIANGLES, m.indexCount, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
}

// DrawGrid draws the ground grid on the XZ plane.
func (r *Renderer) DrawGrid(view, proj mgl32.Mat4) {
	identity := mgl32.Ident4()
	r.drawLines(r.grid, identity, view, proj, r.grid.vertexCount)
}

// DrawGizmoAxes draws the gizmo axis lines at the given model transform.
// Axis lines are laid out X, Y, Z; hidden axes are skipped.
func (r *Renderer) DrawGizmoAxes(model, view, proj mgl32.Mat4, visible [3]bool) {
	gl.UseProgram(r.lineProgram)
	gl.UniformMatrix4fv(r.lineUniform.model, 1, false, &model[0])
	gl.UniformMatrix4fv(r.lineUniform.view, 1, false, &view[0])
	gl.UniformMatrix4fv(r.lineUniform.proj, 1, false, &proj[0])

	// Gizmo draws on top of the mesh
	gl.Disable(gl.DEPTH_TEST)
	gl.BindVertexArray(r.axes.vao)
	for axis := 0; axis < 3; axis++ {
		if !visible[axis] {
			continue
		}
		gl.DrawArrays(gl.LINES, int32(axis*2), 2)
	}
	gl.BindVertexArray(0)
	gl.Enable(gl.DEPTH_TEST)
}

func (r *Renderer) drawLines(b lineBatch, model, view, proj mgl32.Mat4, count int32) {
	if b.vao == 0 || count == 0 {
		return
	}
	gl.UseProgram(r.lineProgram)
	gl.UniformMatrix4fv(r.lineUniform.model, 1, false, &model[0])
	gl.UniformMatrix4fv(r.lineUniform.view, 1, false, &view[0])
	gl.UniformMatrix4fv(r.lineUniform.proj, 1, false, &proj[0])
	gl.BindVertexArray(b.vao)
	gl.DrawArrays(gl.LINES, 0, count)
	gl.BindVertexArray(0)
}

const meshVertexSrc = `
#version 410 core

layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aNormal;

uniform mat4 uModel;
uniform mat4 uView;
uniform mat4 uProj;

out vec3 vNormal;

void main() {
	vNormal = mat3(uModel) * aNormal;
	gl_Position = uProj * uView * uModel * vec4(aPos, 1.0);
}
`

const meshFragmentSrc = `
#version 410 core

in vec3 vNormal;

uniform vec4 uColor;
uniform vec3 uAmbientColor;
uniform float uAmbientIntensity;
uniform vec3 uDiffuseColor;
uniform float uDiffuseIntensity;
uniform vec3 uLightDir;

out vec4 FragColor;

void main() {
	vec3 n = normalize(vNormal);
	float diff = max(dot(n, normalize(uLightDir)), 0.0);
	vec3 light = uAmbientColor * uAmbientIntensity + uDiffuseColor * uDiffuseIntensity * diff;
	FragColor = vec4(uColor.rgb * light, uColor.a);
}
`

const lineVertexSrc = `
#version 410 core

layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aColor;

uniform mat4 uModel;
uniform mat4 uView;
uniform mat4 uProj;

out vec3 vColor;

void main() {
	vColor = aColor;
	gl_Position = uProj * uView * uModel * vec4(aPos, 1.0);
}
`

const lineFragmentSrc = `
#version 410 core

in vec3 vColor;
out vec4 FragColor;

void main() {
	FragColor = vec4(vColor, 1.0);
}
`
