/*
Command lattice prices a path-dependent option with Bermudan exercise rights
on a binomial lattice and prints the priced tree.

Without -config it prices the built-in reference scenario: s0 = 20, three
zero-rate periods, moves of +2 and -4, a median call struck at 4, exercisable
at depths 0, 1 and 3.

Usage:

	go run ./cmd/lattice -config scenario.json -format text
	go run ./cmd/lattice -format value -numeric decimal
	go run ./cmd/lattice -config a.json,b.json,c.json -workers 4

Several comma-separated scenario files are priced concurrently and reported
one root value per line.

Formats are text (breadth-first table), dot (Graphviz), json and value (the
root value only).
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/SammyMurdoch/AutoPricing/internal/batch"
	"github.com/SammyMurdoch/AutoPricing/internal/config"
	"github.com/SammyMurdoch/AutoPricing/internal/numeric"
	"github.com/SammyMurdoch/AutoPricing/internal/pricing"
	"github.com/SammyMurdoch/AutoPricing/internal/render"
)

const (
	valueFormat = "value"

	// maxScenarios bounds a single batch run
	maxScenarios = 256
)

var (
	// configPath is the scenario file, or a comma-separated list of them;
	// empty runs the reference scenario
	configPath = flag.String("config", "", "Path to a JSON scenario file, or comma-separated paths for a batch")
	// format selects the output renderer
	format = flag.String("format", render.TextFormat, "Output format: text, dot, json or value")
	// numericName overrides the scenario's numeric field
	numericName = flag.String("numeric", "", "Numeric field override: rational or decimal")
	// logLevel sets the global zerolog level
	logLevel = flag.String("log-level", "info", "Log level: debug, info, warn or error")
	// workers bounds concurrent pricing in batch mode
	workers = flag.Int("workers", 4, "Concurrent scenarios in batch mode")
)

func main() {
	flag.Parse()

	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	level, err := zerolog.ParseLevel(*logLevel)
	if err != nil {
		log.Fatal().Err(err).Str("level", *logLevel).Msg("invalid log level")
	}
	zerolog.SetGlobalLevel(level)

	if paths := strings.Split(*configPath, ","); len(paths) > 1 {
		if err := runBatch(context.Background(), os.Stdout, paths); err != nil {
			log.Fatal().Err(err).Msg("batch failed")
		}
		return
	}

	scenario, err := loadScenario()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid scenario")
	}
	if err := validateFlags(scenario); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	log.Info().
		Str("scenario", scenario.Name).
		Str("numeric", scenario.NumericName()).
		Int("horizon", scenario.Horizon).
		Msg("pricing scenario")

	switch scenario.NumericName() {
	case config.Decimal:
		if scenario.DecimalPrecision > 0 {
			decimal.DivisionPrecision = int(scenario.DecimalPrecision)
		}
		err = run(os.Stdout, scenario, numeric.Field[decimal.Decimal](numeric.DecimalField{}), *format)
	default:
		err = run(os.Stdout, scenario, numeric.Field[numeric.Rat](numeric.RationalField{}), *format)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("pricing failed")
	}
}

func loadScenario() (*config.Scenario, error) {
	if *configPath == "" {
		return config.Default(), nil
	}
	return config.Load(*configPath)
}

// validateFlags applies the overrides and checks the output format.
func validateFlags(s *config.Scenario) error {
	if *numericName != "" {
		s.Numeric = *numericName
		if err := s.Validate(); err != nil {
			return err
		}
	}
	switch *format {
	case render.TextFormat, render.DOTFormat, render.JSONFormat, valueFormat:
		return nil
	default:
		return errors.Errorf("unknown format %q", *format)
	}
}

// run builds, prices and renders s over field.
func run[T numeric.Number[T]](w io.Writer, s *config.Scenario, field numeric.Field[T], format string) error {
	params, dyn, err := config.Build(s, field)
	if err != nil {
		return err
	}
	m, err := pricing.New(params, dyn, field)
	if err != nil {
		return err
	}
	priced := m.Params()
	log.Debug().
		Stringer("s0", priced.S0).
		Int("horizon", priced.Horizon).
		Ints("stopping_times", priced.Stopping().Sorted()).
		Msg("scenario parameters")

	switch format {
	case render.DOTFormat:
		out, err := render.DOT(m.Tree())
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, out)
		return err
	case render.JSONFormat:
		return render.JSON(w, m.Tree(), field.Name())
	case valueFormat:
		_, err = fmt.Fprintln(w, m.Value())
		return err
	default:
		return render.Text(w, m.Tree())
	}
}

// runBatch loads every scenario in paths, prices them concurrently and
// writes "name value" lines in the order given. A scenario is named after
// its file unless it carries a name of its own.
func runBatch(ctx context.Context, w io.Writer, paths []string) error {
	jobs := make([]batch.Job, 0, len(paths))
	for _, path := range paths {
		path = strings.TrimSpace(path)
		s, err := config.Load(path)
		if err != nil {
			return err
		}
		if *numericName != "" {
			s.Numeric = *numericName
			if err := s.Validate(); err != nil {
				return errors.WithMessagef(err, "scenario %s", path)
			}
		}
		name := s.Name
		if name == "" {
			name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		}
		jobs = append(jobs, batch.Job{Name: name, Scenario: s})
	}
	if err := batch.ValidateJobs(jobs, maxScenarios); err != nil {
		return err
	}

	outcomes := batch.Collect(batch.NewRunner(*workers, log.Logger).Run(ctx, jobs))
	return writeOutcomes(w, jobs, outcomes)
}

// writeOutcomes prints the priced jobs in order. A job with no outcome, as
// left by a cancelled batch, counts as failed.
func writeOutcomes(w io.Writer, jobs []batch.Job, outcomes map[string]batch.Outcome) error {
	failed := 0
	for _, job := range jobs {
		o, ok := outcomes[job.Name]
		if !ok {
			failed++
			log.Error().Str("scenario", job.Name).Msg("scenario not priced")
			continue
		}
		if o.Err != nil {
			failed++
			log.Error().Err(o.Err).Str("scenario", job.Name).Msg("scenario failed")
			continue
		}
		if _, err := fmt.Fprintf(w, "%s\t%s\n", job.Name, o.Value); err != nil {
			return err
		}
	}
	if failed > 0 {
		return errors.Errorf("%d of %d scenarios failed", failed, len(jobs))
	}
	return nil
}
