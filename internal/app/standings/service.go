package standings

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	domain "mlb-scoreboard-service/internal/domain/standings"
	"mlb-scoreboard-service/internal/logging"
	"mlb-scoreboard-service/internal/normalize"
	"mlb-scoreboard-service/internal/providers/statsapi"
	"mlb-scoreboard-service/internal/store"
)

const defaultTTL = 10 * time.Minute

// Source loads the raw standings for a season.
type Source interface {
	Standings(ctx context.Context, season int) (*statsapi.StandingsPayload, error)
}

// Config wires a Service. Cache may be nil to disable caching.
type Config struct {
	Source   Source
	Cache    store.ViewCache
	TTL      time.Duration
	Clock    clockwork.Clock
	Location *time.Location
	Logger   *slog.Logger
}

// Service serves grouped standings, caching the normalized value per season.
type Service struct {
	source Source
	cache  store.ViewCache
	ttl    time.Duration
	clock  clockwork.Clock
	loc    *time.Location
	logger *slog.Logger
}

// NewService constructs a Service.
func NewService(cfg Config) *Service {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = defaultTTL
	}
	clock := cfg.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		source: cfg.Source,
		cache:  cfg.Cache,
		ttl:    ttl,
		clock:  clock,
		loc:    loc,
		logger: cfg.Logger,
	}
}

// CurrentSeason is the calendar year in the service's location.
func (s *Service) CurrentSeason() int {
	return s.clock.Now().In(s.loc).Year()
}

// Standings returns the normalized standings for season, reading through
// the cache. Concurrent misses may each load; the last write wins.
func (s *Service) Standings(ctx context.Context, season int) (domain.Standings, error) {
	key := cacheKey(season)
	if s.cache != nil {
		var cached domain.Standings
		if found, err := s.cache.Get(ctx, key, &cached); err == nil && found {
			return cached, nil
		}
	}

	payload, err := s.source.Standings(ctx, season)
	if err != nil {
		logging.Warn(logging.FromContext(ctx, s.logger), "standings fetch failed",
			logging.FieldSeason, season,
			"error", err,
		)
		return domain.Standings{}, fmt.Errorf("standings %d: %w", season, err)
	}
	value := normalize.Standings(season, payload)

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, value, s.ttl); err != nil {
			logging.Warn(logging.FromContext(ctx, s.logger), "standings cache write failed", "error", err)
		}
	}
	return value, nil
}

// Table returns one presentation of the standings with games back computed
// per group.
func (s *Service) Table(ctx context.Context, season int, view domain.View) (domain.Table, error) {
	value, err := s.Standings(ctx, season)
	if err != nil {
		return domain.Table{}, err
	}
	return value.Table(view), nil
}

func cacheKey(season int) string {
	return fmt.Sprintf("standings:%d", season)
}
