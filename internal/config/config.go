package config

// Config holds runtime configuration for the server.
type Config struct {
	Port        string
	Provider    string
	AdminToken  string
	MirrorLocal bool
	API         APIConfig
	Local       LocalConfig
	Stream      StreamConfig
	Metrics     MetricsConfig
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Port:        envOrDefault(envPort, defaultPort),
		Provider:    envOrDefault(envProvider, defaultProvider),
		AdminToken:  envOrDefault(envAdminToken, ""),
		MirrorLocal: boolEnvOrDefault(envMirrorLocal, defaultMirrorLocal),
		API:         loadAPI(),
		Local:       loadLocal(),
		Stream:      loadStream(),
		Metrics:     loadMetrics(),
	}
}
