package metrics

import (
	"sync"
	"time"
)

type providerStats struct {
	calls           int
	errors          int
	rateLimitHits   int
	lastRetryAfter  time.Duration
	lastCallLatency time.Duration
}

type storeStats struct {
	loads          map[string]int
	mutations      map[string]int
	mutationErrors map[string]int
	transitions    int
	streamClients  int
}

// Recorder captures lightweight, in-memory metrics about provider calls and
// match store activity, mirroring them to OpenTelemetry when configured.
type Recorder struct {
	mu    sync.Mutex
	stats map[string]*providerStats
	store storeStats
	otel  *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		stats: make(map[string]*providerStats),
		store: storeStats{
			loads:          make(map[string]int),
			mutations:      make(map[string]int),
			mutationErrors: make(map[string]int),
		},
		otel: otel,
	}
}

// RecordProviderAttempt increments counters for a provider call and stores the last observed latency.
func (r *Recorder) RecordProviderAttempt(provider, operation string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureStatsLocked(provider)
	stats.calls++
	stats.lastCallLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordProviderAttempt(provider, operation, duration, err)
	}
}

// RecordRateLimit tracks that a provider response hit a rate limit and stores the last Retry-After.
func (r *Recorder) RecordRateLimit(provider string, retryAfter time.Duration) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureStatsLocked(provider)
	stats.rateLimitHits++
	if retryAfter > 0 {
		stats.lastRetryAfter = retryAfter
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordRateLimit(provider, retryAfter)
	}
}

// RecordStoreLoad tracks which source a completed load published.
func (r *Recorder) RecordStoreLoad(source string, duration time.Duration) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.store.loads[source]++
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordStoreLoad(source, duration)
	}
}

// RecordStoreMutation tracks the outcome of an add, update, delete or replace.
func (r *Recorder) RecordStoreMutation(operation string, err error) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.store.mutations[operation]++
	if err != nil {
		r.store.mutationErrors[operation]++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordStoreMutation(operation, err)
	}
}

// RecordAvailabilityChange counts flips of the remote availability flag.
func (r *Recorder) RecordAvailabilityChange(available bool) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.store.transitions++
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordAvailability(available)
	}
}

// RecordStreamClients adjusts the number of connected stream clients by delta.
func (r *Recorder) RecordStreamClients(delta int) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.store.streamClients += delta
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordStreamClients(delta)
	}
}

// ProviderCalls returns the total attempts recorded for a provider.
func (r *Recorder) ProviderCalls(provider string) int {
	return r.Snapshot(provider).Calls
}

// ProviderErrors returns the total failed attempts recorded for a provider.
func (r *Recorder) ProviderErrors(provider string) int {
	return r.Snapshot(provider).Errors
}

// RateLimitHits returns the number of rate limit events seen for a provider.
func (r *Recorder) RateLimitHits(provider string) int {
	return r.Snapshot(provider).RateLimitHits
}

// LastRetryAfter returns the most recent Retry-After recorded for a provider.
func (r *Recorder) LastRetryAfter(provider string) time.Duration {
	return r.Snapshot(provider).LastRetryAfter
}

// LastCallLatency returns the last recorded latency for a provider call.
func (r *Recorder) LastCallLatency(provider string) time.Duration {
	return r.Snapshot(provider).LastCallLatency
}

// Snapshot returns a copy of the current stats for the provider.
type Snapshot struct {
	Calls           int
	Errors          int
	RateLimitHits   int
	LastRetryAfter  time.Duration
	LastCallLatency time.Duration
}

func (r *Recorder) Snapshot(provider string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.stats[provider]
	if !ok || stats == nil {
		return Snapshot{}
	}
	return Snapshot{
		Calls:           stats.calls,
		Errors:          stats.errors,
		RateLimitHits:   stats.rateLimitHits,
		LastRetryAfter:  stats.lastRetryAfter,
		LastCallLatency: stats.lastCallLatency,
	}
}

// StoreSnapshot is a point-in-time copy of match store counters.
type StoreSnapshot struct {
	Loads               map[string]int
	Mutations           map[string]int
	MutationErrors      map[string]int
	AvailabilityChanges int
	StreamClients       int
}

func (r *Recorder) StoreSnapshot() StoreSnapshot {
	if r == nil {
		return StoreSnapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	return StoreSnapshot{
		Loads:               copyCounts(r.store.loads),
		Mutations:           copyCounts(r.store.mutations),
		MutationErrors:      copyCounts(r.store.mutationErrors),
		AvailabilityChanges: r.store.transitions,
		StreamClients:       r.store.streamClients,
	}
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

func (r *Recorder) ensureStatsLocked(provider string) *providerStats {
	stats, ok := r.stats[provider]
	if !ok {
		stats = &providerStats{}
		r.stats[provider] = stats
	}
	return stats
}

func copyCounts(src map[string]int) map[string]int {
	out := make(map[string]int, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
