package config

// LocalConfig selects and configures the local persistent store.
type LocalConfig struct {
	Kind      string // file, sqlite, redis or memory
	Path      string // file or sqlite database path
	RedisAddr string
	RedisDB   int
	RedisKey  string
	RedisTTL  Duration // zero keeps the key forever
}

func loadLocal() LocalConfig {
	return LocalConfig{
		Kind:      envOrDefault(envLocalKind, defaultLocalKind),
		Path:      envOrDefault(envLocalPath, defaultLocalPath),
		RedisAddr: envOrDefault(envRedisAddr, defaultRedisAddr),
		RedisDB:   nonNegativeIntEnvOrDefault(envRedisDB, 0),
		RedisKey:  envOrDefault(envRedisKey, defaultRedisKey),
		RedisTTL:  durationEnvOrDefault(envRedisTTL, 0),
	}
}

// StreamConfig bounds the websocket state stream.
type StreamConfig struct {
	MaxConnections int
}

func loadStream() StreamConfig {
	return StreamConfig{
		MaxConnections: intEnvOrDefault(envWSMaxConns, defaultWSMaxConns),
	}
}
