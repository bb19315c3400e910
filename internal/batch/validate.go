package batch

import (
	"github.com/pkg/errors"
)

// Errors returned by ValidateJobs.
var (
	// ErrNoScenarios is returned for an empty batch
	ErrNoScenarios = errors.New("zero scenarios requested")

	// ErrTooManyScenarios is returned when a batch exceeds its limit
	ErrTooManyScenarios = errors.New("too many scenarios requested")
)

// ValidateJobs checks the batch size against maxAllowed and requires every
// job to carry a scenario and a unique, non-empty name.
func ValidateJobs(jobs []Job, maxAllowed int) error {
	if len(jobs) == 0 {
		return ErrNoScenarios
	}

	if maxAllowed <= 0 {
		return errors.Wrapf(ErrTooManyScenarios, "max allowed must be positive, got %d", maxAllowed)
	}

	if len(jobs) > maxAllowed {
		return errors.Wrapf(ErrTooManyScenarios, "requested %d scenarios, maximum allowed %d",
			len(jobs), maxAllowed)
	}

	seen := make(map[string]int, len(jobs))
	for i, job := range jobs {
		if job.Name == "" {
			return errors.Errorf("scenario at index %d has no name", i)
		}
		if job.Scenario == nil {
			return errors.Errorf("scenario %q at index %d is nil", job.Name, i)
		}
		if prev, ok := seen[job.Name]; ok {
			return errors.Errorf("duplicate scenario name %q at indexes %d and %d", job.Name, prev, i)
		}
		seen[job.Name] = i
	}

	return nil
}
