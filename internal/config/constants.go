package config

import "time"

const (
	envPort         = "PORT"
	envProvider     = "PROVIDER"
	envAdminToken   = "ADMIN_TOKEN"
	envMirrorLocal  = "MIRROR_LOCAL"
	envAPIBaseURL   = "MATCHES_API_BASE_URL"
	envAPIKey       = "MATCHES_API_KEY"
	envAPITimeout   = "MATCHES_API_TIMEOUT"
	envLocalKind    = "LOCAL_STORE"
	envLocalPath    = "LOCAL_STORE_PATH"
	envRedisAddr    = "REDIS_ADDR"
	envRedisDB      = "REDIS_DB"
	envRedisKey     = "REDIS_KEY"
	envRedisTTL     = "REDIS_TTL"
	envWSMaxConns   = "WS_MAX_CONNECTIONS"
	envMetricsPort  = "METRICS_PORT"
	envMetricsOn    = "METRICS_ENABLED"
	envOtelEndpoint = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService  = "OTEL_SERVICE_NAME"
	envOtelInsecure = "OTEL_EXPORTER_OTLP_INSECURE"

	defaultPort        = "4000"
	defaultProvider    = "fixture"
	defaultMirrorLocal = true
	defaultAPIBaseURL  = "http://localhost:3001/api"
	defaultAPITimeout  = 10 * Duration(time.Second)
	defaultLocalKind   = "file"
	defaultLocalPath   = "data/matches.json"
	defaultRedisAddr   = "localhost:6379"
	defaultRedisKey    = "matches:local"
	defaultWSMaxConns  = 100
	defaultMetricsPort = "9090"
	defaultServiceName = "matches-service"
)
