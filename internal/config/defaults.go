package config

const (
	defaultConfigPath       = "~/.config/crudeval/config.toml"
	projectConfigFile       = "crudeval.toml"
	dotEnvFile              = ".env"
	defaultLogDir           = "~/.local/share/crudeval/logs"
	defaultLogRetentionDays = 30
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"

	defaultTol              = 0.10
	defaultTolHeavy         = 0.60
	defaultPctGreenForGreen = 0.90
	defaultPctRedForRed     = 0.30
)

// Environment overrides applied after the TOML file is decoded.
const (
	EnvTol      = "CRUDEVAL_TOL"
	EnvTolHeavy = "CRUDEVAL_TOL_HEAVY"
	EnvPctGreen = "CRUDEVAL_PCT_GREEN"
	EnvPctRed   = "CRUDEVAL_PCT_RED"
	EnvLogLevel = "CRUDEVAL_LOG_LEVEL"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Classification: Classification{
			Tol:              defaultTol,
			TolHeavy:         defaultTolHeavy,
			PctGreenForGreen: defaultPctGreenForGreen,
			PctRedForRed:     defaultPctRedForRed,
		},
		Paths: Paths{
			LogDir: defaultLogDir,
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			RetentionDays: defaultLogRetentionDays,
		},
	}
}
