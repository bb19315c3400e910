// Package batch prices many scenarios concurrently.
//
// A Runner fans scenarios out to a fixed set of workers and merges their
// outcomes into one channel, which is closed once every scenario has been
// priced or the context is cancelled. Each scenario is priced in the numeric
// field it names.
package batch

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/SammyMurdoch/AutoPricing/internal/config"
	"github.com/SammyMurdoch/AutoPricing/internal/numeric"
	"github.com/SammyMurdoch/AutoPricing/internal/pricing"
)

// Job is one named scenario to price.
type Job struct {
	Name     string
	Scenario *config.Scenario
}

// Outcome is the result of pricing one Job. Err is set when the scenario
// failed to build or price; Value and Result are then empty.
type Outcome struct {
	Name    string
	Numeric string
	Value   string
	Result  pricing.Result
	Err     error
}

// Runner prices jobs with a bounded number of workers.
type Runner struct {
	workers int
	logger  zerolog.Logger
}

// NewRunner returns a runner using the given number of workers (at least one).
func NewRunner(workers int, logger zerolog.Logger) *Runner {
	if workers < 1 {
		workers = 1
	}
	return &Runner{workers: workers, logger: logger}
}

// Run starts pricing jobs and returns the outcome stream. Outcomes arrive in
// completion order, not submission order.
//
// decimal.DivisionPrecision is process-wide; per-scenario precisions are not
// applied here and must be set before Run.
func (r *Runner) Run(ctx context.Context, jobs []Job) <-chan Outcome {
	queue := make(chan Job)
	go func() {
		defer close(queue)
		for _, job := range jobs {
			select {
			case <-ctx.Done():
				return
			case queue <- job:
			}
		}
	}()

	out := make(chan Outcome, len(jobs))
	var wg sync.WaitGroup
	wg.Add(r.workers)
	for i := 0; i < r.workers; i++ {
		go func(worker int) {
			defer wg.Done()
			for job := range queue {
				o := r.price(job)
				r.logger.Debug().
					Int("worker", worker).
					Str("scenario", job.Name).
					Err(o.Err).
					Msg("scenario priced")
				select {
				case <-ctx.Done():
					return
				case out <- o:
				}
			}
		}(i)
	}

	// close the stream once every worker is done
	go func() {
		wg.Wait()
		close(out)
	}()

	return out
}

// Collect drains outcomes into a map keyed by job name.
func Collect(outcomes <-chan Outcome) map[string]Outcome {
	m := make(map[string]Outcome)
	for o := range outcomes {
		m[o.Name] = o
	}
	return m
}

func (r *Runner) price(job Job) Outcome {
	o := Outcome{Name: job.Name, Numeric: job.Scenario.NumericName()}
	switch o.Numeric {
	case config.Decimal:
		o.Value, o.Result, o.Err = priceIn(job.Scenario, numeric.Field[decimal.Decimal](numeric.DecimalField{}), r.logger)
	default:
		o.Value, o.Result, o.Err = priceIn(job.Scenario, numeric.Field[numeric.Rat](numeric.RationalField{}), r.logger)
	}
	return o
}

func priceIn[T numeric.Number[T]](s *config.Scenario, field numeric.Field[T], logger zerolog.Logger) (string, pricing.Result, error) {
	if err := s.Validate(); err != nil {
		return "", pricing.Result{}, err
	}
	params, dyn, err := config.Build(s, field)
	if err != nil {
		return "", pricing.Result{}, err
	}
	m, err := pricing.New(params, dyn, field, pricing.WithLogger(logger))
	if err != nil {
		return "", pricing.Result{}, err
	}
	return m.Value().String(), m.Result(), nil
}
