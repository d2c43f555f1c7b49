package statsapi

import (
	"context"
	"errors"
	"strings"
	"testing"

	"mlb-scoreboard-service/internal/providers"
)

func TestClientScheduleUsesEndpointAndURL(t *testing.T) {
	var gotEndpoint, gotURL string
	fetcher := providers.FetcherFunc(func(ctx context.Context, endpoint, url string, dest any) error {
		_ = ctx
		gotEndpoint, gotURL = endpoint, url
		payload := dest.(*SchedulePayload)
		payload.Dates = []ScheduleDate{{Date: "2024-07-04", Games: []ScheduleGame{{GamePk: 1}}}}
		return nil
	})

	client := NewClient(fetcher, "http://example.com")
	payload, err := client.Schedule(context.Background(), "2024-07-04")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if gotEndpoint != EndpointSchedule {
		t.Fatalf("expected schedule endpoint, got %s", gotEndpoint)
	}
	if !strings.HasPrefix(gotURL, "http://example.com/api/v1/schedule?") {
		t.Fatalf("unexpected url %s", gotURL)
	}
	if len(payload.Dates) != 1 || payload.Dates[0].Games[0].GamePk != 1 {
		t.Fatalf("unexpected payload %+v", payload)
	}
}

func TestClientWrapsErrors(t *testing.T) {
	fetcher := providers.FetcherFunc(func(ctx context.Context, endpoint, url string, dest any) error {
		return &providers.HTTPError{Status: 500}
	})
	client := NewClient(fetcher, "")

	_, err := client.LiveFeed(context.Background(), 42)
	if err == nil || !strings.Contains(err.Error(), "game 42 feed") {
		t.Fatalf("expected wrapped error, got %v", err)
	}
	if _, ok := providers.AsHTTPError(err); !ok {
		t.Fatalf("expected http error to remain unwrappable")
	}
}

func TestClientPeopleStatsSkipsEmptyIDs(t *testing.T) {
	fetcher := providers.FetcherFunc(func(ctx context.Context, endpoint, url string, dest any) error {
		return errors.New("should not be called")
	})
	client := NewClient(fetcher, "")

	payload, err := client.PeopleStats(context.Background(), nil, 2024)
	if err != nil || payload == nil || len(payload.People) != 0 {
		t.Fatalf("expected empty payload without request, got %+v %v", payload, err)
	}
}
