package poller

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	domaingames "mlb-scoreboard-service/internal/domain/games"
	"mlb-scoreboard-service/internal/logging"
	"mlb-scoreboard-service/internal/metrics"
	"mlb-scoreboard-service/internal/timeutil"
)

const (
	defaultInterval = time.Minute
	maxFailures     = 3
)

// Builder produces the enriched scoreboard for a date.
type Builder interface {
	Build(ctx context.Context, date string) (domaingames.Scoreboard, error)
}

// Store keeps the latest scoreboard per date.
type Store interface {
	SetScoreboard(board domaingames.Scoreboard)
	Prune(keep string)
}

// Publisher fans a fresh scoreboard out to live subscribers.
type Publisher interface {
	Publish(board domaingames.Scoreboard)
}

// Config wires a Poller. Store and Publisher are optional.
type Config struct {
	Builder   Builder
	Store     Store
	Publisher Publisher
	Logger    *slog.Logger
	Metrics   *metrics.Recorder
	Interval  time.Duration
	Clock     clockwork.Clock
	Location  *time.Location
}

// Poller rebuilds today's scoreboard on an interval.
type Poller struct {
	builder   Builder
	store     Store
	publisher Publisher
	logger    *slog.Logger
	metrics   *metrics.Recorder
	interval  time.Duration
	clock     clockwork.Clock
	loc       *time.Location

	done     chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool

	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent health of the poller loop.
type Status struct {
	ConsecutiveFailures int
	LastError           string
	LastAttempt         time.Time
	LastSuccess         time.Time
	LastDate            string
}

// IsReady reports whether the poller has had a recent success and is not failing repeatedly.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < maxFailures
}

// New constructs a Poller with sane defaults.
func New(cfg Config) *Poller {
	interval := cfg.Interval
	if interval <= 0 {
		interval = defaultInterval
	}
	clock := cfg.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}
	return &Poller{
		builder:   cfg.Builder,
		store:     cfg.Store,
		publisher: cfg.Publisher,
		logger:    cfg.Logger,
		metrics:   cfg.Metrics,
		interval:  interval,
		clock:     clock,
		loc:       loc,
		done:      make(chan struct{}),
	}
}

// Start begins polling until the context is cancelled or Stop is called.
func (p *Poller) Start(ctx context.Context) {
	p.startMu.Lock()
	if p.started {
		p.startMu.Unlock()
		return
	}
	p.started = true
	p.startMu.Unlock()

	ticker := p.clock.NewTicker(p.interval)

	go func() {
		defer ticker.Stop()
		logging.Info(p.logger, "poller started", slog.Int64(logging.FieldDurationMS, p.interval.Milliseconds()))
		// Warm today's board on boot.
		p.fetchOnce(ctx)

		for {
			select {
			case <-ctx.Done():
				logging.Info(p.logger, "poller stopped")
				return
			case <-p.done:
				logging.Info(p.logger, "poller stopped")
				return
			case <-ticker.Chan():
				p.fetchOnce(ctx)
			}
		}
	}()
}

// Stop halts the polling loop.
func (p *Poller) Stop(ctx context.Context) error {
	_ = ctx
	p.stopOnce.Do(func() {
		close(p.done)
	})
	return nil
}

func (p *Poller) fetchOnce(ctx context.Context) {
	start := p.clock.Now()
	p.recordAttempt(start)
	today := timeutil.Today(p.clock, p.loc)

	board, err := p.builder.Build(ctx, today)
	elapsed := p.clock.Since(start)
	p.metrics.RecordPollerCycle(elapsed, err)
	if err != nil {
		logging.Error(p.logger, "poller refresh failed", err,
			logging.FieldDate, today,
			logging.FieldDurationMS, elapsed.Milliseconds(),
		)
		p.recordFailure(err, start)
		return
	}

	if p.store != nil {
		p.store.SetScoreboard(board)
		p.store.Prune(today)
	}
	if p.publisher != nil {
		p.publisher.Publish(board)
	}
	p.recordSuccess(start, today)
	logging.Info(p.logger, "poller refreshed scoreboard",
		logging.FieldDate, today,
		logging.FieldCount, len(board.Games),
		logging.FieldDurationMS, elapsed.Milliseconds(),
	)
}

func (p *Poller) recordAttempt(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.LastAttempt = at
}

func (p *Poller) recordSuccess(at time.Time, date string) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures = 0
	p.status.LastError = ""
	p.status.LastSuccess = at
	p.status.LastDate = date
}

func (p *Poller) recordFailure(err error, at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures++
	if err != nil {
		p.status.LastError = err.Error()
	}
	p.status.LastAttempt = at
}

// Status returns a snapshot of the poller's recent health.
func (p *Poller) Status() Status {
	p.statusMu.RLock()
	defer p.statusMu.RUnlock()
	return p.status
}
