package config

const (
	defaultFrameRate           = 30.0
	defaultCorruptionThreshold = 1e100
	defaultOutputSuffix        = "_fixed"
	defaultLogDir              = "~/.local/share/gltfix/logs"
	defaultLogLevel            = "info"
	defaultLogFormat           = "console"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Repair: Repair{
			FrameRate:           defaultFrameRate,
			CorruptionThreshold: defaultCorruptionThreshold,
			OutputSuffix:        defaultOutputSuffix,
		},
		Paths: Paths{
			LogDir: defaultLogDir,
		},
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
	}
}
