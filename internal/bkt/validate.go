package bkt

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidProbability is returned for values outside [0, 1] or NaN.
var ErrInvalidProbability = errors.New("invalid probability")

// ProbabilityError names the offending value.
type ProbabilityError struct {
	Name  string
	Value float64
}

func (e *ProbabilityError) Error() string {
	return fmt.Sprintf("%s = %v: must be within [0, 1]", e.Name, e.Value)
}

func (e *ProbabilityError) Unwrap() error { return ErrInvalidProbability }

// ValidateProbability checks that v is a finite value in [0, 1].
func ValidateProbability(name string, v float64) error {
	if math.IsNaN(v) || v < 0 || v > 1 {
		return &ProbabilityError{Name: name, Value: v}
	}
	return nil
}

// Validate checks that every parameter is a valid probability.
// Update itself never calls this.
func (p Params) Validate() error {
	return errors.Join(
		ValidateProbability("p_learn", p.Learn),
		ValidateProbability("p_guess", p.Guess),
		ValidateProbability("p_slip", p.Slip),
	)
}
