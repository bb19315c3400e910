package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SammyMurdoch/AutoPricing/internal/model"
	"github.com/SammyMurdoch/AutoPricing/internal/numeric"
	"github.com/SammyMurdoch/AutoPricing/internal/pricing"
)

var rational numeric.Field[numeric.Rat] = numeric.RationalField{}

const referenceJSON = `{
  "name": "reference",
  "numeric": "rational",
  "s0": "20",
  "rate": "0",
  "horizon": 3,
  "stepper": {"kind": "additive", "up": "2", "down": "4"},
  "payoff": {"kind": "call", "statistic": "median", "strike": "4"},
  "stopping_times": [0, 1, 3]
}`

func problems(t *testing.T, err error) []string {
	t.Helper()
	var cfgErr *model.ConfigurationError
	require.True(t, errors.As(err, &cfgErr), "Expected a configuration error, got %v", err)
	var out []string
	for _, e := range cfgErr.Errors() {
		out = append(out, e.Error())
	}
	return out
}

// Test_Default tests that the built-in scenario prices to the reference value
func Test_Default(t *testing.T) {
	s := Default()
	require.NoError(t, s.Validate())

	params, dyn, err := Build(s, rational)
	require.NoError(t, err)

	m, err := pricing.New(params, dyn, rational, pricing.WithLogger(zerolog.Nop()))
	require.NoError(t, err)
	assert.Equal(t, "440/27", m.Value().String())
}

// Test_Decode tests decoding, the rate shorthand and the numeric default
func Test_Decode(t *testing.T) {
	s, err := Decode(strings.NewReader(referenceJSON))
	require.NoError(t, err)

	assert.Equal(t, "reference", s.Name)
	assert.Equal(t, Rational, s.NumericName())
	assert.Empty(t, s.Rates)

	params, dyn, err := Build(s, rational)
	require.NoError(t, err)
	require.Len(t, params.Rates, 3, "A single rate is repeated over the horizon")
	for _, r := range params.Rates {
		assert.True(t, r.IsZero())
	}
	assert.Equal(t, []int{0, 1, 3}, params.StoppingTimes)

	m, err := pricing.New(params, dyn, rational, pricing.WithLogger(zerolog.Nop()))
	require.NoError(t, err)
	assert.Equal(t, "440/27", m.Value().String())

	s.Numeric = ""
	assert.Equal(t, Rational, s.NumericName())
}

// Test_Decode_Rejects tests malformed documents
func Test_Decode_Rejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "Malformed JSON", doc: `{"s0": `},
		{name: "Unknown field", doc: strings.Replace(referenceJSON, `"name"`, `"title"`, 1)},
		{name: "Wrong type", doc: strings.Replace(referenceJSON, `"horizon": 3`, `"horizon": "3"`, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.doc))
			require.Error(t, err)
			assert.True(t, errors.Is(err, model.ErrConfiguration))
		})
	}
}

// Test_Validate tests that every tag failure is reported together
func Test_Validate(t *testing.T) {
	s := Default()
	s.S0 = ""
	s.Rate = "0"
	s.Horizon = -1
	s.Stepper.Kind = "trinomial"
	s.Payoff.Statistic = "mode"
	s.StoppingTimes = []int{0, -2}
	s.Numeric = "float"

	err := s.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrConfiguration))

	got := problems(t, err)
	require.Len(t, got, 7, "Problems: %v", got)
	joined := strings.Join(got, "\n")
	assert.Contains(t, joined, "Scenario.s0 is required")
	assert.Contains(t, joined, "Scenario.rate cannot be combined with rates")
	assert.Contains(t, joined, "Scenario.horizon = -1 fails gte=0")
	assert.Contains(t, joined, `Scenario.stepper.kind = "trinomial" must be one of [additive multiplicative]`)
	assert.Contains(t, joined, `Scenario.payoff.statistic = "mode"`)
	assert.Contains(t, joined, "Scenario.stopping_times[1] = -2")
	assert.Contains(t, joined, `Scenario.numeric = "float"`)
}

// Test_Build_ParseErrors tests that every unparsable number is reported
func Test_Build_ParseErrors(t *testing.T) {
	s := Default()
	s.S0 = "twenty"
	s.Rates = []string{"0", "zero", "0"}
	s.Payoff.Strike = "1/0"

	_, dyn, err := Build(s, rational)
	assert.Nil(t, dyn)
	got := problems(t, err)
	require.Len(t, got, 3, "Problems: %v", got)
	assert.Contains(t, got[0], "s0")
	assert.Contains(t, got[1], "rates[1]")
	assert.Contains(t, got[2], "payoff.strike")

	_, _, err = Build[numeric.Rat](nil, rational)
	assert.True(t, errors.Is(err, model.ErrConfiguration))
	_, _, err = Build[numeric.Rat](s, nil)
	assert.True(t, errors.Is(err, model.ErrConfiguration))
}

// Test_Build_Multiplicative tests a discounted multiplicative put
func Test_Build_Multiplicative(t *testing.T) {
	s := &Scenario{
		S0:            "100",
		Rate:          "1/20",
		Horizon:       1,
		Stepper:       StepperSpec{Kind: MultiplicativeStepper, Up: "6/5", Down: "5/6"},
		Payoff:        PayoffSpec{Kind: "put", Statistic: "terminal", Strike: "100"},
		StoppingTimes: []int{0, 1},
	}
	require.NoError(t, s.Validate())

	params, dyn, err := Build(s, rational)
	require.NoError(t, err)

	// p = 13/22, V = 20/21 * (9/22 * 50/3)
	m, err := pricing.New(params, dyn, rational, pricing.WithLogger(zerolog.Nop()))
	require.NoError(t, err)
	assert.Equal(t, "500/77", m.Value().String())
}

// Test_Build_Decimal tests the decimal field
func Test_Build_Decimal(t *testing.T) {
	doc := strings.Replace(referenceJSON, `"numeric": "rational"`, `"numeric": "decimal"`, 1)
	s, err := Decode(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, Decimal, s.NumericName())

	field := numeric.Field[decimal.Decimal](numeric.DecimalField{})
	params, dyn, err := Build(s, field)
	require.NoError(t, err)

	m, err := pricing.New(params, dyn, field, pricing.WithLogger(zerolog.Nop()))
	require.NoError(t, err)
	assert.Equal(t, "16.2962962963", m.Value().Round(10).String())
}

// Test_Load tests reading scenarios from disk
func Test_Load(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "reference.json")
	require.NoError(t, os.WriteFile(path, []byte(referenceJSON), 0o600))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, s.Horizon)

	_, err = Load(filepath.Join(dir, "missing.json"))
	require.Error(t, err)
	assert.False(t, errors.Is(err, model.ErrConfiguration), "A missing file is not a model problem")

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"s0": "20"}`), 0o600))
	_, err = Load(bad)
	assert.True(t, errors.Is(err, model.ErrConfiguration))
	assert.Contains(t, err.Error(), bad)
}

// Test_HorizonBounds tests that out-of-range horizons are rejected before any allocation
func Test_HorizonBounds(t *testing.T) {
	huge := strings.Replace(referenceJSON, `"horizon": 3`, `"horizon": 1152921504606846976`, 1)
	_, err := Decode(strings.NewReader(huge))
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrConfiguration))
	assert.Contains(t, err.Error(), "Scenario.horizon = 1152921504606846976 fails lte=24")

	tests := []struct {
		name        string
		horizon     int
		expectError bool
		description string
	}{
		{name: "Negative", horizon: -1, expectError: true, description: "Should reject a negative horizon"},
		{name: "Above maximum", horizon: model.MaxHorizon + 1, expectError: true, description: "Should reject horizons past the maximum"},
		{name: "Far above maximum", horizon: 1 << 60, expectError: true, description: "Should reject without sizing the rate slice"},
		{name: "Maximum", horizon: model.MaxHorizon, description: "Should accept the maximum horizon"},
		{name: "Zero", horizon: 0, description: "Should accept a root-only lattice"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Default()
			s.Rates = nil
			s.Rate = "0"
			s.Horizon = tt.horizon

			params, dyn, err := Build(s, rational)
			if tt.expectError {
				require.Error(t, err, tt.description)
				assert.True(t, errors.Is(err, model.ErrConfiguration), tt.description)
				assert.Nil(t, dyn)
				return
			}
			require.NoError(t, err, tt.description)
			assert.Len(t, params.Rates, tt.horizon, tt.description)
		})
	}
}
