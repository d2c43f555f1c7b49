package games

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"mlb-scoreboard-service/internal/domain/boxscore"
	domaingames "mlb-scoreboard-service/internal/domain/games"
	"mlb-scoreboard-service/internal/logging"
	"mlb-scoreboard-service/internal/metrics"
	"mlb-scoreboard-service/internal/normalize"
	"mlb-scoreboard-service/internal/providers/statsapi"
	"mlb-scoreboard-service/internal/timeutil"
)

const (
	defaultConcurrency = 4

	enrichLive    = "live"
	enrichContent = "content"
)

// Source is the upstream surface the games service reads from.
type Source interface {
	Schedule(ctx context.Context, date string) (*statsapi.SchedulePayload, error)
	LiveFeed(ctx context.Context, gamePk int) (*statsapi.LiveFeed, error)
	Content(ctx context.Context, gamePk int) (*statsapi.ContentPayload, error)
}

// Snapshots exposes stored scoreboards, typically the poller's.
type Snapshots interface {
	Scoreboard(date string) (domaingames.Scoreboard, bool)
}

// Config wires a Service.
type Config struct {
	Source      Source
	Snapshots   Snapshots
	Logger      *slog.Logger
	Metrics     *metrics.Recorder
	Concurrency int
}

// Service builds scoreboards and box scores from upstream data.
type Service struct {
	source      Source
	snapshots   Snapshots
	logger      *slog.Logger
	metrics     *metrics.Recorder
	concurrency int
}

// ScheduleResult carries the games for a date. Games is empty, never nil,
// when Err is set.
type ScheduleResult struct {
	Games []domaingames.Game
	Err   error
}

// NewService constructs a Service.
func NewService(cfg Config) *Service {
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	return &Service{
		source:      cfg.Source,
		snapshots:   cfg.Snapshots,
		logger:      cfg.Logger,
		metrics:     cfg.Metrics,
		concurrency: concurrency,
	}
}

// Schedule loads and normalizes the schedule for date.
func (s *Service) Schedule(ctx context.Context, date string) ScheduleResult {
	payload, err := s.source.Schedule(ctx, date)
	if err != nil {
		logging.Warn(logging.FromContext(ctx, s.logger), "schedule fetch failed",
			logging.FieldDate, date,
			"error", err,
		)
		return ScheduleResult{Games: []domaingames.Game{}, Err: err}
	}
	return ScheduleResult{Games: normalize.Schedule(payload)}
}

// Scoreboard serves the stored snapshot for date when one exists, otherwise
// builds it.
func (s *Service) Scoreboard(ctx context.Context, date string) domaingames.Scoreboard {
	if s.snapshots != nil {
		if board, ok := s.snapshots.Scoreboard(date); ok {
			return board
		}
	}
	board, _ := s.Build(ctx, date)
	return board
}

// Build fetches the schedule for date and enriches every game. The error is
// the schedule failure, if any; the board is still usable and empty.
func (s *Service) Build(ctx context.Context, date string) (domaingames.Scoreboard, error) {
	result := s.Schedule(ctx, date)
	list := result.Games
	if result.Err == nil {
		list = s.Enrich(ctx, list)
	}
	return domaingames.NewScoreboard(date, timeutil.DateKeyLabel(date), list), result.Err
}

// Enrich attaches linescore, live status and recap to each game through a
// bounded pool. A failing game keeps its schedule data. Results that arrive
// after ctx ends are discarded.
func (s *Service) Enrich(ctx context.Context, list []domaingames.Game) []domaingames.Game {
	out := make([]domaingames.Game, len(list))
	copy(out, list)

	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i := range out {
		g.Go(func() error {
			s.enrichOne(ctx, &out[i])
			return nil
		})
	}
	_ = g.Wait()
	return out
}

func (s *Service) enrichOne(ctx context.Context, game *domaingames.Game) {
	if ctx.Err() != nil {
		return
	}
	feed, content := s.fetchGame(ctx, game.GamePk)
	if ctx.Err() != nil || feed == nil {
		return
	}
	status := normalize.StatusText(feed.GameData.Status)
	game.Linescore = normalize.Linescore(feed.LiveData.Linescore)
	game.LiveStatus = status
	game.Recap = normalize.GatedRecap(status, content)
}

// fetchGame loads the live feed and content for a game concurrently. Either
// may be nil on failure.
func (s *Service) fetchGame(ctx context.Context, gamePk int) (*statsapi.LiveFeed, *statsapi.ContentPayload) {
	logger := logging.FromContext(ctx, s.logger)

	var (
		feed    *statsapi.LiveFeed
		content *statsapi.ContentPayload
		g       errgroup.Group
	)
	g.Go(func() error {
		f, err := s.source.LiveFeed(ctx, gamePk)
		s.metrics.RecordEnrichment(enrichLive, err)
		if err != nil {
			logging.Warn(logger, "live feed unavailable", logging.FieldGamePk, gamePk, "error", err)
			return nil
		}
		feed = f
		return nil
	})
	g.Go(func() error {
		c, err := s.source.Content(ctx, gamePk)
		s.metrics.RecordEnrichment(enrichContent, err)
		if err != nil {
			logging.Debug(logger, "content unavailable", logging.FieldGamePk, gamePk, "error", err)
			return nil
		}
		content = c
		return nil
	})
	_ = g.Wait()
	return feed, content
}

// BoxScore builds the overlay for one game. A missing live feed yields the
// unavailable view rather than an error.
func (s *Service) BoxScore(ctx context.Context, gamePk int) boxscore.BoxScore {
	feed, content := s.fetchGame(ctx, gamePk)
	if feed == nil {
		return boxscore.Unavailable(gamePk, "")
	}
	return normalize.BoxScore(normalize.GameFromFeed(gamePk, feed), feed, content)
}
