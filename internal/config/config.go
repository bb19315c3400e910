// Package config loads pricing scenarios from JSON.
//
// A Scenario holds every number as a string so it can be parsed exactly into
// whichever numeric field the run uses. Structural checks come from validator
// tags; the problems found are reported together as one
// *model.ConfigurationError.
package config

import (
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	json "github.com/goccy/go-json"
	"github.com/pkg/errors"

	"github.com/SammyMurdoch/AutoPricing/internal/dynamics"
	"github.com/SammyMurdoch/AutoPricing/internal/model"
)

// Numeric field names.
const (
	// Rational prices with exact fractions
	Rational = "rational"

	// Decimal prices with shopspring decimals
	Decimal = "decimal"
)

// Stepper kinds.
const (
	// AdditiveStepper moves prices by fixed amounts
	AdditiveStepper = "additive"

	// MultiplicativeStepper moves prices by fixed factors
	MultiplicativeStepper = "multiplicative"
)

// Scenario is one pricing run as read from a scenario file.
type Scenario struct {
	Name string `json:"name,omitempty"`

	// Numeric selects the field: "rational" (default) or "decimal".
	Numeric string `json:"numeric,omitempty" validate:"omitempty,oneof=rational decimal"`

	// DecimalPrecision sets the number of digits kept by decimal division.
	// Zero keeps the library default.
	DecimalPrecision int32 `json:"decimal_precision,omitempty" validate:"gte=0,lte=128"`

	S0 string `json:"s0" validate:"required"`

	// Rates holds r[0..horizon-1]. Rate is a shorthand repeating one rate
	// over the whole horizon; at most one of the two may be set.
	Rates []string `json:"rates,omitempty" validate:"dive,required"`
	Rate  string   `json:"rate,omitempty" validate:"excluded_with=Rates"`

	// Horizon is bounded by model.MaxHorizon.
	Horizon int `json:"horizon" validate:"gte=0,lte=24"`

	Stepper StepperSpec `json:"stepper"`
	Payoff  PayoffSpec  `json:"payoff"`

	StoppingTimes []int `json:"stopping_times" validate:"dive,gte=0"`
}

// StepperSpec describes how prices move between depths.
type StepperSpec struct {
	Kind string `json:"kind" validate:"required,oneof=additive multiplicative"`
	Up   string `json:"up" validate:"required"`
	Down string `json:"down" validate:"required"`
}

// PayoffSpec describes the exercise value of a path.
type PayoffSpec struct {
	Kind      string `json:"kind" validate:"required,oneof=call put"`
	Statistic string `json:"statistic" validate:"required,oneof=median mean max min terminal"`
	Strike    string `json:"strike" validate:"required"`
}

var validate = newValidator()

// newValidator reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Default returns the reference scenario.
func Default() *Scenario {
	return &Scenario{
		Name:    "reference",
		Numeric: Rational,
		S0:      "20",
		Rates:   []string{"0", "0", "0"},
		Horizon: 3,
		Stepper: StepperSpec{Kind: AdditiveStepper, Up: "2", Down: "4"},
		Payoff: PayoffSpec{
			Kind:      dynamics.CallKind,
			Statistic: dynamics.MedianStat,
			Strike:    "4",
		},
		StoppingTimes: []int{0, 1, 3},
	}
}

// Load reads and validates the scenario file at path.
func Load(path string) (*Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening scenario %s", path)
	}
	defer f.Close()

	s, err := Decode(f)
	if err != nil {
		return nil, errors.WithMessagef(err, "scenario %s", path)
	}
	return s, nil
}

// Decode reads one scenario from r and validates it. Unknown fields are
// rejected.
func Decode(r io.Reader) (*Scenario, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var s Scenario
	if err := dec.Decode(&s); err != nil {
		return nil, model.NewConfigurationError(errors.Wrap(err, "decoding scenario"))
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate runs the tag checks and returns every failure at once.
func (s *Scenario) Validate() error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return model.NewConfigurationError(err)
	}
	problems := make([]error, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		problems = append(problems, fieldProblem(fe))
	}
	return model.NewConfigurationError(problems...)
}

// NumericName returns the selected field name, defaulting to rational.
func (s *Scenario) NumericName() string {
	if s.Numeric == "" {
		return Rational
	}
	return s.Numeric
}

func fieldProblem(fe validator.FieldError) error {
	switch fe.Tag() {
	case "required":
		return errors.Errorf("%s is required", fe.Namespace())
	case "oneof":
		return errors.Errorf("%s = %q must be one of [%s]", fe.Namespace(), fe.Value(), fe.Param())
	case "excluded_with":
		return errors.Errorf("%s cannot be combined with %s", fe.Namespace(), strings.ToLower(fe.Param()))
	default:
		return errors.Errorf("%s = %v fails %s=%s", fe.Namespace(), fe.Value(), fe.Tag(), fe.Param())
	}
}
