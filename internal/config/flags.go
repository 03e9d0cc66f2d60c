package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagSize       = flag.Int("size", 0, "Terrain size in quads per side")
	flagSeed       = flag.Int64("seed", 0, "Noise seed")
	flagFrequency  = flag.Float64("frequency", 0, "Noise frequency")
	flagAmplitude  = flag.Float64("amplitude", 0, "Noise amplitude")
	flagNoise      = flag.String("noise", "", "Noise kind (perlin or simplex)")
	flagWindowed   = flag.Bool("windowed", false, "Run the viewer in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run the viewer in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Viewer window width")
	flagHeight     = flag.Int("height", 0, "Viewer window height")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ParseArgs parses flags from args, for commands that consume a subcommand first.
func ParseArgs(args []string) error {
	return flag.CommandLine.Parse(args)
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagSize > 0 {
		cfg.Terrain.Size = *flagSize
	}
	if *flagSeed != 0 {
		cfg.Noise.Seed = *flagSeed
	}
	if *flagFrequency > 0 {
		cfg.Noise.Frequency = *flagFrequency
	}
	if *flagAmplitude > 0 {
		cfg.Noise.Amplitude = *flagAmplitude
	}
	if *flagNoise != "" {
		cfg.Noise.Kind = *flagNoise
	}
	if *flagWindowed {
		cfg.Viewer.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Viewer.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Viewer.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Viewer.Height = *flagHeight
	}
}
