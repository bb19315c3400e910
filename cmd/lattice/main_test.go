package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SammyMurdoch/AutoPricing/internal/batch"
	"github.com/SammyMurdoch/AutoPricing/internal/config"
	"github.com/SammyMurdoch/AutoPricing/internal/model"
	"github.com/SammyMurdoch/AutoPricing/internal/numeric"
	"github.com/SammyMurdoch/AutoPricing/internal/render"
)

func init() {
	log.Logger = zerolog.Nop()
}

// Test_Run tests every output format on the reference scenario
func Test_Run(t *testing.T) {
	field := numeric.Field[numeric.Rat](numeric.RationalField{})

	tests := []struct {
		name     string
		format   string
		contains string
	}{
		{name: "Value", format: valueFormat, contains: "440/27\n"},
		{name: "Text", format: render.TextFormat, contains: "440/27"},
		{name: "DOT", format: render.DOTFormat, contains: "digraph lattice"},
		{name: "JSON", format: render.JSONFormat, contains: `"value": "440/27"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, run(&buf, config.Default(), field, tt.format))
			assert.Contains(t, buf.String(), tt.contains)
		})
	}
}

// Test_Run_Decimal tests the decimal field end to end
func Test_Run_Decimal(t *testing.T) {
	var buf bytes.Buffer
	field := numeric.Field[decimal.Decimal](numeric.DecimalField{})
	require.NoError(t, run(&buf, config.Default(), field, valueFormat))

	v, err := decimal.NewFromString(strings.TrimSpace(buf.String()))
	require.NoError(t, err)
	assert.Equal(t, "16.2962962963", v.Round(10).String())
}

// Test_Run_Errors tests that model errors reach the caller
func Test_Run_Errors(t *testing.T) {
	field := numeric.Field[numeric.Rat](numeric.RationalField{})

	s := config.Default()
	s.Rates = []string{"1/2", "0", "0"}
	err := run(&bytes.Buffer{}, s, field, valueFormat)
	assert.ErrorIs(t, err, model.ErrArbitrage)

	s = config.Default()
	s.StoppingTimes = []int{7}
	err = run(&bytes.Buffer{}, s, field, valueFormat)
	assert.ErrorIs(t, err, model.ErrConfiguration)
}

// Test_ValidateFlags tests format and numeric overrides
func Test_ValidateFlags(t *testing.T) {
	defer func(f, n string) { *format, *numericName = f, n }(*format, *numericName)

	s := config.Default()
	*format, *numericName = render.JSONFormat, config.Decimal
	require.NoError(t, validateFlags(s))
	assert.Equal(t, config.Decimal, s.NumericName())

	*format, *numericName = "yaml", ""
	assert.Error(t, validateFlags(s))

	*format, *numericName = valueFormat, "float"
	assert.ErrorIs(t, validateFlags(config.Default()), model.ErrConfiguration)
}

func writeScenario(t *testing.T, dir, file string, s *config.Scenario) string {
	t.Helper()
	doc, err := json.Marshal(s)
	require.NoError(t, err)
	path := filepath.Join(dir, file)
	require.NoError(t, os.WriteFile(path, doc, 0o600))
	return path
}

// Test_RunBatch tests concurrent pricing of several scenario files
func Test_RunBatch(t *testing.T) {
	dir := t.TempDir()

	reference := config.Default()
	european := config.Default()
	european.Name = ""
	european.StoppingTimes = []int{}

	paths := []string{
		writeScenario(t, dir, "reference.json", reference),
		" " + writeScenario(t, dir, "european.json", european),
	}

	var buf bytes.Buffer
	require.NoError(t, runBatch(context.Background(), &buf, paths))
	assert.Equal(t, "reference\t440/27\neuropean\t16\n", buf.String(),
		"Lines follow the given order; unnamed scenarios take their file name")
}

// Test_RunBatch_Errors tests failing and duplicate scenarios
func Test_RunBatch_Errors(t *testing.T) {
	dir := t.TempDir()

	arbitrage := config.Default()
	arbitrage.Name = "arbitrage"
	arbitrage.Rates = []string{"1/2", "0", "0"}

	var buf bytes.Buffer
	err := runBatch(context.Background(), &buf, []string{
		writeScenario(t, dir, "reference.json", config.Default()),
		writeScenario(t, dir, "arbitrage.json", arbitrage),
	})
	assert.EqualError(t, err, "1 of 2 scenarios failed")
	assert.Equal(t, "reference\t440/27\n", buf.String())

	path := writeScenario(t, dir, "again.json", config.Default())
	err = runBatch(context.Background(), &bytes.Buffer{}, []string{path, path})
	assert.Contains(t, err.Error(), "duplicate scenario name")

	err = runBatch(context.Background(), &bytes.Buffer{}, []string{path, filepath.Join(dir, "missing.json")})
	assert.Error(t, err)
}

// Test_WriteOutcomes tests that jobs without an outcome count as failed
func Test_WriteOutcomes(t *testing.T) {
	jobs := []batch.Job{{Name: "reference"}, {Name: "cancelled"}, {Name: "arbitrage"}}

	tests := []struct {
		name        string
		description string
		outcomes    map[string]batch.Outcome
		output      string
		err         string
	}{
		{
			name:        "All priced",
			description: "Every job prints one line in order",
			outcomes: map[string]batch.Outcome{
				"reference": {Name: "reference", Value: "440/27"},
				"cancelled": {Name: "cancelled", Value: "16"},
				"arbitrage": {Name: "arbitrage", Value: "0"},
			},
			output: "reference\t440/27\ncancelled\t16\narbitrage\t0\n",
		},
		{
			name:        "Missing outcome",
			description: "A job the runner never reached is a failure, not an empty line",
			outcomes: map[string]batch.Outcome{
				"reference": {Name: "reference", Value: "440/27"},
				"arbitrage": {Name: "arbitrage", Err: model.ErrArbitrage},
			},
			output: "reference\t440/27\n",
			err:    "2 of 3 scenarios failed",
		},
		{
			name:        "Nothing priced",
			description: "An empty outcome map fails every job",
			outcomes:    map[string]batch.Outcome{},
			err:         "3 of 3 scenarios failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := writeOutcomes(&buf, jobs, tt.outcomes)
			if tt.err != "" {
				assert.EqualError(t, err, tt.err, tt.description)
			} else {
				assert.NoError(t, err, tt.description)
			}
			assert.Equal(t, tt.output, buf.String(), tt.description)
		})
	}
}
