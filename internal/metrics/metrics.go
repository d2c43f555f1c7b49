package metrics

import (
	"sync"
	"time"
)

type endpointStats struct {
	calls           int
	errors          int
	timeouts        int
	retries         int
	lastCallLatency time.Duration
}

// Recorder captures lightweight, in-memory metrics about upstream fetches and
// forwards them to OpenTelemetry instruments when configured.
type Recorder struct {
	mu         sync.Mutex
	endpoints  map[string]*endpointStats
	cacheHits  map[string]int
	cacheMiss  map[string]int
	enrichFail map[string]int
	otel       *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		endpoints:  make(map[string]*endpointStats),
		cacheHits:  make(map[string]int),
		cacheMiss:  make(map[string]int),
		enrichFail: make(map[string]int),
		otel:       otel,
	}
}

// RecordFetch counts one upstream GET against an endpoint with its outcome.
func (r *Recorder) RecordFetch(endpoint string, duration time.Duration, outcome string) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureStats(endpoint)
	stats.calls++
	stats.lastCallLatency = duration
	if outcome != OutcomeOK {
		stats.errors++
	}
	if outcome == OutcomeTimeout {
		stats.timeouts++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordFetch(endpoint, duration, outcome)
	}
}

// RecordRetry tracks that a failed fetch is being attempted again.
func (r *Recorder) RecordRetry(endpoint string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.ensureStats(endpoint).retries++
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordRetry(endpoint)
	}
}

// RecordEnrichment tracks a per-game linescore or highlight lookup.
func (r *Recorder) RecordEnrichment(kind string, err error) {
	if r == nil {
		return
	}
	if err != nil {
		r.mu.Lock()
		r.enrichFail[kind]++
		r.mu.Unlock()
	}
	if r.otel != nil {
		r.otel.recordEnrichment(kind, err)
	}
}

// RecordCacheLookup tracks view cache hits and misses.
func (r *Recorder) RecordCacheLookup(cache string, hit bool) {
	if r == nil {
		return
	}
	r.mu.Lock()
	if hit {
		r.cacheHits[cache]++
	} else {
		r.cacheMiss[cache]++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordCacheLookup(cache, hit)
	}
}

// EndpointCalls returns the total attempts recorded for an endpoint.
func (r *Recorder) EndpointCalls(endpoint string) int {
	return r.Snapshot(endpoint).Calls
}

// EndpointErrors returns the total failed attempts recorded for an endpoint.
func (r *Recorder) EndpointErrors(endpoint string) int {
	return r.Snapshot(endpoint).Errors
}

// CacheHits returns hit and miss counts for a named cache.
func (r *Recorder) CacheHits(cache string) (hits, misses int) {
	if r == nil {
		return 0, 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cacheHits[cache], r.cacheMiss[cache]
}

// EnrichmentFailures returns how many lookups of the given kind failed.
func (r *Recorder) EnrichmentFailures(kind string) int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.enrichFail[kind]
}

// Snapshot is a copy of the current stats for an endpoint.
type Snapshot struct {
	Calls           int
	Errors          int
	Timeouts        int
	Retries         int
	LastCallLatency time.Duration
}

func (r *Recorder) Snapshot(endpoint string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.endpoints[endpoint]
	if !ok {
		return Snapshot{}
	}
	return Snapshot{
		Calls:           stats.calls,
		Errors:          stats.errors,
		Timeouts:        stats.timeouts,
		Retries:         stats.retries,
		LastCallLatency: stats.lastCallLatency,
	}
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// RecordPollerCycle tracks poller cycles and errors.
func (r *Recorder) RecordPollerCycle(duration time.Duration, err error) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordPoller(duration, err)
}

// RecordLiveClients adjusts the connected websocket client gauge.
func (r *Recorder) RecordLiveClients(delta int64) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordLiveClients(delta)
}

// ensureStats must be called with mu held.
func (r *Recorder) ensureStats(endpoint string) *endpointStats {
	stats, ok := r.endpoints[endpoint]
	if !ok {
		stats = &endpointStats{}
		r.endpoints[endpoint] = stats
	}
	return stats
}
