// Package bkt implements the Bayesian Knowledge Tracing update: a two-state
// (known/unknown) filter over a stream of correct/incorrect answers.
package bkt

// Default model parameters used when a (user, skill) pair has no stored state.
const (
	DefaultPrior = 0.5
	DefaultLearn = 0.3
	DefaultGuess = 0.2
	DefaultSlip  = 0.1
)

// Params holds the static per-skill model parameters. They are never
// re-estimated here; callers supply them and get them back unchanged.
type Params struct {
	Learn float64 `json:"p_learn"`
	Guess float64 `json:"p_guess"`
	Slip  float64 `json:"p_slip"`
}

// DefaultParams returns the default learn/guess/slip parameters.
func DefaultParams() Params {
	return Params{
		Learn: DefaultLearn,
		Guess: DefaultGuess,
		Slip:  DefaultSlip,
	}
}

// Result is the outcome of a single observation.
type Result struct {
	Old float64 `json:"p_old"`
	New float64 `json:"p_new"`
	Params
}

// Posterior applies Bayes' rule to pKnown given the observed correctness.
//
// When no probability mass explains the observation (denominator not
// strictly positive) the result is 1.0 for a correct answer and 0.0 for an
// incorrect one.
func Posterior(pKnown, pGuess, pSlip float64, correct bool) float64 {
	var num, den float64
	if correct {
		num = pKnown * (1 - pSlip)
		den = num + (1-pKnown)*pGuess
	} else {
		num = pKnown * pSlip
		den = num + (1-pKnown)*(1-pGuess)
	}

	if den > 0 {
		return num / den
	}
	if correct {
		return 1.0
	}
	return 0.0
}

// Update returns the mastery probability after one observation: the
// evidence update, then one learning transition, clamped to [0, 1].
// Inputs are not validated.
func Update(pKnown, pLearn, pGuess, pSlip float64, correct bool) float64 {
	p := Posterior(pKnown, pGuess, pSlip, correct)
	p = p + (1-p)*pLearn
	return clamp(p)
}

// Estimate runs Update for pKnown under params p and packages the result.
func Estimate(pKnown float64, p Params, correct bool) Result {
	return Result{
		Old:    pKnown,
		New:    Update(pKnown, p.Learn, p.Guess, p.Slip, correct),
		Params: p,
	}
}

func clamp(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
