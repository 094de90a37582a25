// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Camera  CameraConfig  `yaml:"camera"`
	Grid    GridConfig    `yaml:"grid"`
	Light   LightConfig   `yaml:"light"`
	Viewer  ViewerConfig  `yaml:"viewer"`
	Gizmo   GizmoConfig   `yaml:"gizmo"`
	Watch   WatchConfig   `yaml:"watch"`
	Logging LoggingConfig `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Width  int  `yaml:"width"`
	Height int  `yaml:"height"`
	VSync  bool `yaml:"vsync"`
}

// CameraConfig holds camera rig settings.
type CameraConfig struct {
	FOVDegrees float32 `yaml:"fov_degrees"` // Perspective field of view
	Near       float32 `yaml:"near"`
	Far        float32 `yaml:"far"`
	Distance   float32 `yaml:"distance"` // Initial orbit distance

	// Ranges for the demonstration FOV/zoom randomizer
	RandomFOVMin  float32 `yaml:"random_fov_min"`
	RandomFOVMax  float32 `yaml:"random_fov_max"`
	RandomZoomMin float32 `yaml:"random_zoom_min"`
	RandomZoomMax float32 `yaml:"random_zoom_max"`
}

// GridConfig holds ground grid settings.
type GridConfig struct {
	Size      float32    `yaml:"size"`
	Divisions int        `yaml:"divisions"`
	Color     [3]float32 `yaml:"color"`
	AxisColor [3]float32 `yaml:"axis_color"` // Center lines
}

// LightConfig holds scene lighting settings.
type LightConfig struct {
	AmbientColor     [3]float32 `yaml:"ambient_color"`
	AmbientIntensity float32    `yaml:"ambient_intensity"`
	DiffuseColor     [3]float32 `yaml:"diffuse_color"`
	DiffuseIntensity float32    `yaml:"diffuse_intensity"`
	Direction        [3]float32 `yaml:"direction"`

	MaterialColor [4]float32 `yaml:"material_color"` // Display mesh RGBA
}

// ViewerConfig holds model presentation settings.
type ViewerConfig struct {
	TargetSize float32 `yaml:"target_size"` // Auto-scale fit cube edge
}

// GizmoConfig holds transform gizmo settings.
type GizmoConfig struct {
	TranslateSnap   float32 `yaml:"translate_snap"`    // Units, while shift held
	RotateSnapDeg   float32 `yaml:"rotate_snap_deg"`   // Degrees, while shift held
	ScaleSnap       float32 `yaml:"scale_snap"`        // While shift held
	SizeStep        float32 `yaml:"size_step"`         // +/- keys
	MinSize         float32 `yaml:"min_size"`
	TranslateFactor float32 `yaml:"translate_factor"`  // Drag pixels to world units
	RotateFactor    float32 `yaml:"rotate_factor"`     // Drag pixels to radians
	ScaleFactor     float32 `yaml:"scale_factor"`      // Drag pixels to scale delta
}

// WatchConfig holds file auto-reload settings.
type WatchConfig struct {
	Enabled    bool `yaml:"enabled"`
	DebounceMS int  `yaml:"debounce_ms"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with the viewer's fixed default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Width:  1280,
			Height: 720,
			VSync:  true,
		},
		Camera: CameraConfig{
			FOVDegrees:    75,
			Near:          0.1,
			Far:           1000,
			Distance:      5,
			RandomFOVMin:  30,
			RandomFOVMax:  90,
			RandomZoomMin: 0.5,
			RandomZoomMax: 1.5,
		},
		Grid: GridConfig{
			Size:      10,
			Divisions: 10,
			Color:     [3]float32{0.35, 0.35, 0.35},
			AxisColor: [3]float32{0.55, 0.55, 0.55},
		},
		Light: LightConfig{
			AmbientColor:     [3]float32{1, 1, 1},
			AmbientIntensity: 0.4,
			DiffuseColor:     [3]float32{1, 1, 1},
			DiffuseIntensity: 1.0,
			Direction:        [3]float32{1, 1, 1},
			MaterialColor:    [4]float32{0.8, 0.8, 0.82, 1},
		},
		Viewer: ViewerConfig{
			TargetSize: 2,
		},
		Gizmo: GizmoConfig{
			TranslateSnap:   1,
			RotateSnapDeg:   15,
			ScaleSnap:       0.25,
			SizeStep:        0.1,
			MinSize:         0.1,
			TranslateFactor: 0.01,
			RotateFactor:    0.01,
			ScaleFactor:     0.005,
		},
		Watch: WatchConfig{
			Enabled:    true,
			DebounceMS: 200,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
