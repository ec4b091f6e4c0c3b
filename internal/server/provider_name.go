package server

import (
	"fmt"
	"strings"

	"github.com/preston-bernstein/matches-service/internal/providers"
)

// normalizeProviderName returns a lower-cased provider name, deriving from instance when not explicitly configured.
// The api alias is reported as matchapi so metrics carry one label per upstream.
func normalizeProviderName(raw string, provider providers.MatchProvider) string {
	name := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case name == providerAPI:
		return providerMatchAPI
	case name != "":
		return name
	case provider != nil:
		return strings.ToLower(fmt.Sprintf("%T", provider))
	}
	return "provider"
}
