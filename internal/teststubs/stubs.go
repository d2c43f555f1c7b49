package teststubs

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"mlb-scoreboard-service/internal/providers"
	"mlb-scoreboard-service/internal/providers/statsapi"
)

// ErrStub is returned for lookups with no configured payload.
var ErrStub = errors.New("stub: no payload configured")

// StubStatsAPI is a test double for the statsapi client. Maps are read-only
// once a test starts using the stub.
type StubStatsAPI struct {
	Schedules       map[string]*statsapi.SchedulePayload
	ScheduleErr     error
	Feeds           map[int]*statsapi.LiveFeed
	FeedErrs        map[int]error
	Contents        map[int]*statsapi.ContentPayload
	ContentErr      error
	StandingsBody   *statsapi.StandingsPayload
	StandingsErr    error
	Teams           map[int]*statsapi.TeamsPayload
	TeamErr         error
	Rosters         map[int]*statsapi.RosterPayload
	RosterErr       error
	People          *statsapi.PeoplePayload
	PeopleErr       error
	TeamSchedules   map[int]*statsapi.SchedulePayload
	TeamScheduleErr error

	// Gate, when set, blocks LiveFeed until it is closed or ctx ends.
	Gate chan struct{}
	// Notify is closed on the first Schedule call.
	Notify chan struct{}

	ScheduleCalls  atomic.Int32
	FeedCalls      atomic.Int32
	ContentCalls   atomic.Int32
	StandingsCalls atomic.Int32
	PeopleCalls    atomic.Int32

	mu        sync.Mutex
	windows   [][2]string
	notifyOne sync.Once
}

func (s *StubStatsAPI) Schedule(ctx context.Context, date string) (*statsapi.SchedulePayload, error) {
	_ = ctx
	s.ScheduleCalls.Add(1)
	if s.Notify != nil {
		s.notifyOne.Do(func() { close(s.Notify) })
	}
	if s.ScheduleErr != nil {
		return nil, s.ScheduleErr
	}
	if p, ok := s.Schedules[date]; ok {
		return p, nil
	}
	return &statsapi.SchedulePayload{}, nil
}

func (s *StubStatsAPI) TeamSchedule(ctx context.Context, teamID int, startDate, endDate string) (*statsapi.SchedulePayload, error) {
	_ = ctx
	s.mu.Lock()
	s.windows = append(s.windows, [2]string{startDate, endDate})
	s.mu.Unlock()
	if s.TeamScheduleErr != nil {
		return nil, s.TeamScheduleErr
	}
	if p, ok := s.TeamSchedules[teamID]; ok {
		return p, nil
	}
	return &statsapi.SchedulePayload{}, nil
}

// Windows returns the (start, end) pairs TeamSchedule was called with.
func (s *StubStatsAPI) Windows() [][2]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([][2]string, len(s.windows))
	copy(out, s.windows)
	return out
}

func (s *StubStatsAPI) LiveFeed(ctx context.Context, gamePk int) (*statsapi.LiveFeed, error) {
	s.FeedCalls.Add(1)
	if s.Gate != nil {
		select {
		case <-s.Gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err, ok := s.FeedErrs[gamePk]; ok {
		return nil, err
	}
	if f, ok := s.Feeds[gamePk]; ok {
		return f, nil
	}
	return nil, &providers.HTTPError{URL: "stub://feed", Status: 404}
}

func (s *StubStatsAPI) Content(ctx context.Context, gamePk int) (*statsapi.ContentPayload, error) {
	_ = ctx
	s.ContentCalls.Add(1)
	if s.ContentErr != nil {
		return nil, s.ContentErr
	}
	if c, ok := s.Contents[gamePk]; ok {
		return c, nil
	}
	return &statsapi.ContentPayload{}, nil
}

func (s *StubStatsAPI) Standings(ctx context.Context, season int) (*statsapi.StandingsPayload, error) {
	_ = ctx
	_ = season
	s.StandingsCalls.Add(1)
	if s.StandingsErr != nil {
		return nil, s.StandingsErr
	}
	if s.StandingsBody == nil {
		return &statsapi.StandingsPayload{}, nil
	}
	return s.StandingsBody, nil
}

func (s *StubStatsAPI) Team(ctx context.Context, teamID int) (*statsapi.TeamsPayload, error) {
	_ = ctx
	if s.TeamErr != nil {
		return nil, s.TeamErr
	}
	if t, ok := s.Teams[teamID]; ok {
		return t, nil
	}
	return nil, ErrStub
}

func (s *StubStatsAPI) ActiveRoster(ctx context.Context, teamID int) (*statsapi.RosterPayload, error) {
	_ = ctx
	if s.RosterErr != nil {
		return nil, s.RosterErr
	}
	if r, ok := s.Rosters[teamID]; ok {
		return r, nil
	}
	return nil, ErrStub
}

func (s *StubStatsAPI) PeopleStats(ctx context.Context, ids []int, season int) (*statsapi.PeoplePayload, error) {
	_ = ctx
	_ = ids
	_ = season
	s.PeopleCalls.Add(1)
	if s.PeopleErr != nil {
		return nil, s.PeopleErr
	}
	if s.People == nil {
		return &statsapi.PeoplePayload{}, nil
	}
	return s.People, nil
}
