package viewstate

import (
	"context"
	"testing"
)

func TestHandleWritesWhileActive(t *testing.T) {
	s := New("2024-07-04")
	h := s.Mount(context.Background(), Route{View: ViewScores})

	if !h.Open(OverlayBoxScore, 745001) {
		t.Fatalf("expected open to apply")
	}
	snap := s.Snapshot()
	if snap.Overlay != OverlayBoxScore || snap.GamePk != 745001 {
		t.Fatalf("unexpected snapshot %+v", snap)
	}

	next, ok := h.ShiftDate(1)
	if !ok || next != "2024-07-05" {
		t.Fatalf("expected next day, got %q %v", next, ok)
	}
	if s.Snapshot().Overlay != OverlayNone {
		t.Fatalf("expected date change to close overlay")
	}
}

func TestReleasedHandleIsIgnored(t *testing.T) {
	s := New("2024-07-04")
	h := s.Mount(context.Background(), Route{View: ViewScores})
	h.Release()

	if h.SetDate("2024-07-10") {
		t.Fatalf("expected write after release to be ignored")
	}
	if s.Snapshot().Date != "2024-07-04" {
		t.Fatalf("expected date unchanged")
	}
	if h.Context().Err() == nil {
		t.Fatalf("expected context to end on release")
	}
}

func TestMountSupersedesPreviousHandle(t *testing.T) {
	s := New("2024-07-04")
	old := s.Mount(context.Background(), Route{View: ViewScores})
	_ = old.Open(OverlayHighlights, 1)

	current := s.Mount(context.Background(), Route{View: ViewTeam, TeamID: 147})
	if old.Active() || old.Close() {
		t.Fatalf("expected previous handle to be inactive")
	}
	if !current.Active() {
		t.Fatalf("expected new handle to be active")
	}
	snap := s.Snapshot()
	if snap.Route.TeamID != 147 || snap.Overlay != OverlayNone {
		t.Fatalf("expected mount to switch route and close overlay, got %+v", snap)
	}
}

func TestParentCancelReleasesHandle(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	h := New("2024-07-04").Mount(ctx, Route{})
	cancel()
	if h.Active() {
		t.Fatalf("expected handle to follow parent context")
	}
}

func TestShiftDateRejectsInvalidDate(t *testing.T) {
	h := New("bad").Mount(context.Background(), Route{})
	if _, ok := h.ShiftDate(1); ok {
		t.Fatalf("expected invalid date to be rejected")
	}
}
