package config

import "flag"

var (
	flagConfig  = flag.String("config", "", "Path to config file")
	flagDebug   = flag.Bool("debug", false, "Enable debug logging")
	flagWidth   = flag.Int("width", 0, "Window width")
	flagHeight  = flag.Int("height", 0, "Window height")
	flagNoVSync = flag.Bool("no-vsync", false, "Disable VSync")
	flagNoWatch = flag.Bool("no-watch", false, "Disable auto-reload of the loaded file")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// ModelArg returns the optional positional model path argument.
func ModelArg() string {
	return flag.Arg(0)
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagWidth > 0 {
		cfg.Window.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Window.Height = *flagHeight
	}
	if *flagNoVSync {
		cfg.Window.VSync = false
	}
	if *flagNoWatch {
		cfg.Watch.Enabled = false
	}
}
