package loadtest

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// Config describes one load test run.
type Config struct {
	Host      string
	Users     int
	SpawnRate float64 // users started per second; <= 0 starts all at once
	Duration  time.Duration
	MinWait   time.Duration
	MaxWait   time.Duration
	MaxRPS    float64 // global request cap; <= 0 disables it
}

// Validate checks the run parameters.
func (c Config) Validate() error {
	switch {
	case c.Host == "":
		return errors.New("host is required")
	case c.Users < 1:
		return fmt.Errorf("users must be at least 1, got %d", c.Users)
	case c.Duration < 0:
		return fmt.Errorf("duration must not be negative, got %s", c.Duration)
	case c.MinWait < 0 || c.MaxWait < c.MinWait:
		return fmt.Errorf("wait range [%s, %s] is invalid", c.MinWait, c.MaxWait)
	}
	return nil
}

// Runner drives simulated users against the API.
type Runner struct {
	cfg    Config
	picker *Picker
	client *Client
	ids    *KnownIDs
	stats  *Stats
	logger zerolog.Logger
	seed   uint64
}

// NewRunner validates cfg and wires the shared client, id set and stats.
// hc may be nil.
func NewRunner(cfg Config, tasks []Task, hc *http.Client, logger zerolog.Logger) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	picker, err := NewPicker(tasks)
	if err != nil {
		return nil, err
	}

	var limiter *rate.Limiter
	if cfg.MaxRPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.MaxRPS), max(1, int(cfg.MaxRPS)))
	}
	stats := NewStats()

	return &Runner{
		cfg:    cfg,
		picker: picker,
		client: NewClient(cfg.Host, hc, stats, limiter),
		ids:    &KnownIDs{},
		stats:  stats,
		logger: logger,
		seed:   uint64(time.Now().UnixNano()),
	}, nil
}

// Stats returns the collector filled by Run.
func (r *Runner) Stats() *Stats { return r.stats }

// IDs returns the shared set of known manager ids.
func (r *Runner) IDs() *KnownIDs { return r.ids }

// Run spawns users and blocks until Duration elapses or ctx is cancelled.
// A zero Duration runs until ctx is cancelled.
func (r *Runner) Run(ctx context.Context) error {
	if r.cfg.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.cfg.Duration)
		defer cancel()
	}

	spawnLimit := rate.Inf
	if r.cfg.SpawnRate > 0 {
		spawnLimit = rate.Limit(r.cfg.SpawnRate)
	}
	spawner := rate.NewLimiter(spawnLimit, 1)

	r.logger.Info().
		Str("event", "loadtest_start").
		Str("host", r.cfg.Host).
		Int("users", r.cfg.Users).
		Float64("spawn_rate", r.cfg.SpawnRate).
		Dur("duration", r.cfg.Duration).
		Send()

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < r.cfg.Users; i++ {
		if err := spawner.Wait(gctx); err != nil {
			break
		}
		g.Go(func() error {
			r.user(gctx, i)
			return nil
		})
	}
	err := g.Wait()

	r.logger.Info().
		Str("event", "loadtest_stop").
		Int("known_ids", r.ids.Len()).
		Send()
	return err
}

// user loops pick, run, wait until ctx is done.
func (r *Runner) user(ctx context.Context, n int) {
	rnd := rand.New(rand.NewPCG(r.seed, uint64(n)))
	s := &Session{Client: r.client, IDs: r.ids, Rand: rnd}
	log := r.logger.With().Int("user", n).Logger()
	log.Debug().Msg("user started")

	for ctx.Err() == nil {
		task := r.picker.Pick(rnd)
		err := task.Run(ctx, s)
		switch {
		case errors.Is(err, ErrStopped):
			log.Debug().Err(err).Msg("user stopped")
			return
		case err == nil, ctx.Err() != nil:
		case errors.Is(err, ErrSkipped):
			log.Debug().Str("task", task.Name).Msg("no known ids; task skipped")
		default:
			log.Warn().Err(err).Str("task", task.Name).Msg("task failed")
		}

		select {
		case <-ctx.Done():
		case <-time.After(r.wait(rnd)):
		}
	}
}

// wait draws a uniform think time in [MinWait, MaxWait].
func (r *Runner) wait(rnd *rand.Rand) time.Duration {
	span := r.cfg.MaxWait - r.cfg.MinWait
	if span <= 0 {
		return r.cfg.MinWait
	}
	return r.cfg.MinWait + time.Duration(rnd.Int64N(int64(span)+1))
}
