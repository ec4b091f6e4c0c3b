package config

// APIConfig controls how we talk to the remote matches API.
type APIConfig struct {
	BaseURL string
	APIKey  string
	Timeout Duration
}

func loadAPI() APIConfig {
	return APIConfig{
		BaseURL: envOrDefault(envAPIBaseURL, defaultAPIBaseURL),
		APIKey:  envOrDefault(envAPIKey, ""),
		Timeout: durationEnvOrDefault(envAPITimeout, defaultAPITimeout),
	}
}
