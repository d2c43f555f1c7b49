package teams

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"

	domain "mlb-scoreboard-service/internal/domain/teams"
	"mlb-scoreboard-service/internal/logging"
	"mlb-scoreboard-service/internal/normalize"
	"mlb-scoreboard-service/internal/providers"
	"mlb-scoreboard-service/internal/providers/statsapi"
	"mlb-scoreboard-service/internal/timeutil"
)

// Source is the upstream surface the team page reads from.
type Source interface {
	Team(ctx context.Context, teamID int) (*statsapi.TeamsPayload, error)
	ActiveRoster(ctx context.Context, teamID int) (*statsapi.RosterPayload, error)
	PeopleStats(ctx context.Context, ids []int, season int) (*statsapi.PeoplePayload, error)
	TeamSchedule(ctx context.Context, teamID int, startDate, endDate string) (*statsapi.SchedulePayload, error)
	LiveFeed(ctx context.Context, gamePk int) (*statsapi.LiveFeed, error)
}

// Config wires a Service.
type Config struct {
	Source   Source
	Clock    clockwork.Clock
	Location *time.Location
	Logger   *slog.Logger
}

// Service assembles team pages.
type Service struct {
	source Source
	clock  clockwork.Clock
	loc    *time.Location
	logger *slog.Logger
}

// NewService constructs a Service.
func NewService(cfg Config) *Service {
	clock := cfg.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}
	return &Service{source: cfg.Source, clock: clock, loc: loc, logger: cfg.Logger}
}

// Page loads the team page. Meta or roster failure yields the unavailable
// page; stats and lineup failures only thin it out.
func (s *Service) Page(ctx context.Context, teamID int) domain.Page {
	logger := logging.FromContext(ctx, s.logger)

	var (
		meta   *statsapi.TeamsPayload
		roster *statsapi.RosterPayload
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		meta, err = s.source.Team(gctx, teamID)
		return err
	})
	g.Go(func() error {
		var err error
		roster, err = s.source.ActiveRoster(gctx, teamID)
		return err
	})
	if err := g.Wait(); err != nil {
		logging.Warn(logger, "team page unavailable", logging.FieldTeamID, teamID, "error", err)
		return domain.UnavailablePage(teamID)
	}

	var (
		splits map[int]normalize.SeasonSplits
		lineup domain.Lineup
		extras errgroup.Group
	)
	extras.Go(func() error {
		splits = s.seasonSplits(ctx, normalize.RosterIDs(roster))
		return nil
	})
	extras.Go(func() error {
		l, err := s.Lineup(ctx, teamID)
		if err != nil {
			logging.Warn(logger, "lineup unavailable", logging.FieldTeamID, teamID, "error", err)
			return nil
		}
		lineup = l
		return nil
	})
	_ = extras.Wait()

	header := normalize.TeamHeader(teamID, meta)
	return normalize.TeamPage(header, normalize.RosterPlayers(roster, splits), lineup)
}

func (s *Service) seasonSplits(ctx context.Context, ids []int) map[int]normalize.SeasonSplits {
	season := s.clock.Now().In(s.loc).Year()
	people, err := s.source.PeopleStats(ctx, ids, season)
	if err != nil {
		logging.Warn(logging.FromContext(ctx, s.logger), "season stats unavailable",
			logging.FieldSeason, season,
			logging.FieldCount, len(ids),
			"error", err,
		)
		return map[int]normalize.SeasonSplits{}
	}
	return normalize.SplitsByPlayer(people)
}

// Lineup finds the batting order of the team's most recent final game in the
// trailing window ending today.
func (s *Service) Lineup(ctx context.Context, teamID int) (domain.Lineup, error) {
	end := timeutil.Today(s.clock, s.loc)
	start, err := timeutil.ShiftDate(end, -statsapi.LineupLookbackDays)
	if err != nil {
		return domain.Lineup{}, err
	}

	schedule, err := s.source.TeamSchedule(ctx, teamID, start, end)
	if err != nil {
		return domain.Lineup{}, err
	}
	gamePk, ok := normalize.LatestFinalGame(schedule)
	if !ok {
		return domain.Lineup{}, &providers.NotFoundError{What: fmt.Sprintf("final game for team %d since %s", teamID, start)}
	}

	feed, err := s.source.LiveFeed(ctx, gamePk)
	if err != nil {
		return domain.Lineup{}, err
	}
	lineup, ok := normalize.LineupFromFeed(feed, teamID)
	if !ok {
		return domain.Lineup{}, &providers.NotFoundError{What: fmt.Sprintf("lineup in game %d", gamePk)}
	}
	return lineup, nil
}

// Logo returns the logo candidates and badge for a team. Missing metadata
// leaves the badge empty.
func (s *Service) Logo(ctx context.Context, teamID int) domain.Logo {
	meta, err := s.source.Team(ctx, teamID)
	if err != nil {
		logging.Debug(logging.FromContext(ctx, s.logger), "team meta unavailable for logo", logging.FieldTeamID, teamID, "error", err)
		return normalize.Logo(teamID, "")
	}
	return normalize.TeamHeader(teamID, meta).Logo
}
