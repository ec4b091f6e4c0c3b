package matchapi

import "time"

const (
	providerName       = "matchapi"
	defaultBaseURL     = "http://localhost:3001/api"
	defaultHTTPTimeout = 10 * time.Second
	maxErrorBody       = 512
)
