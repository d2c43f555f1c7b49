package metrics

import (
	"errors"
	"testing"
	"time"
)

func TestRecorderTracksFetchOutcomes(t *testing.T) {
	rec := NewRecorder()
	rec.RecordFetch("schedule", 10*time.Millisecond, OutcomeOK)
	rec.RecordFetch("schedule", 15*time.Millisecond, OutcomeTimeout)
	rec.RecordFetch("schedule", 5*time.Millisecond, OutcomeHTTP)

	snap := rec.Snapshot("schedule")
	if snap.Calls != 3 || snap.Errors != 2 || snap.Timeouts != 1 {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
	if snap.LastCallLatency != 5*time.Millisecond {
		t.Fatalf("expected last latency to be 5ms, got %s", snap.LastCallLatency)
	}
	if got := rec.EndpointCalls("feed"); got != 0 {
		t.Fatalf("expected untouched endpoint to be empty, got %d", got)
	}
}

func TestRecorderTracksRetries(t *testing.T) {
	rec := NewRecorder()
	rec.RecordRetry("standings")
	rec.RecordRetry("standings")

	if got := rec.Snapshot("standings").Retries; got != 2 {
		t.Fatalf("expected 2 retries, got %d", got)
	}
}

func TestRecorderTracksCacheAndEnrichment(t *testing.T) {
	rec := NewRecorder()
	rec.RecordCacheLookup("standings", true)
	rec.RecordCacheLookup("standings", false)
	rec.RecordCacheLookup("standings", false)
	rec.RecordEnrichment("linescore", nil)
	rec.RecordEnrichment("linescore", errors.New("boom"))

	hits, misses := rec.CacheHits("standings")
	if hits != 1 || misses != 2 {
		t.Fatalf("expected 1 hit and 2 misses, got %d/%d", hits, misses)
	}
	if got := rec.EnrichmentFailures("linescore"); got != 1 {
		t.Fatalf("expected 1 enrichment failure, got %d", got)
	}
}

func TestNilRecorderIsSafe(t *testing.T) {
	var rec *Recorder
	rec.RecordFetch("schedule", time.Millisecond, OutcomeOK)
	rec.RecordRetry("schedule")
	rec.RecordCacheLookup("x", true)
	rec.RecordEnrichment("x", nil)
	rec.RecordLiveClients(1)
	if snap := rec.Snapshot("schedule"); snap.Calls != 0 {
		t.Fatalf("expected empty snapshot, got %+v", snap)
	}
}
