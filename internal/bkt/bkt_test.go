package bkt

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var grid = []float64{0, 0.01, 0.1, 0.25, 0.5, 0.75, 0.9, 0.99, 1}

func TestUpdate_StaysInUnitInterval(t *testing.T) {
	for _, pK := range grid {
		for _, pL := range grid {
			for _, pG := range grid {
				for _, pS := range grid {
					for _, correct := range []bool{true, false} {
						got := Update(pK, pL, pG, pS, correct)
						if got < 0 || got > 1 || math.IsNaN(got) {
							t.Fatalf("Update(%v, %v, %v, %v, %v) = %v, want within [0, 1]",
								pK, pL, pG, pS, correct, got)
						}
					}
				}
			}
		}
	}
}

func TestPosterior_DegenerateCorrect(t *testing.T) {
	// Nothing explains a correct answer: unknown learner, no guessing.
	assert.Equal(t, 1.0, Posterior(0, 0, 0, true))
	assert.Equal(t, 1.0, Update(0, 0, 0, 0, true))
}

func TestPosterior_DegenerateIncorrect(t *testing.T) {
	for _, pG := range grid {
		assert.Equal(t, 0.0, Posterior(1, pG, 0, false), "p_guess=%v", pG)
		assert.Equal(t, 0.0, Update(1, 0, pG, 0, false), "p_guess=%v", pG)
	}
}

func TestUpdate_DegenerateThenLearn(t *testing.T) {
	assert.Equal(t, 1.0, Update(0, 0.3, 0, 0, true))
	assert.Equal(t, 0.3, Update(1, 0.3, 0.5, 0, false))
}

func TestUpdate_Scenarios(t *testing.T) {
	tests := []struct {
		name    string
		correct bool
		post    float64
		want    float64
	}{
		{"correct", true, 0.45 / 0.55, 0.8727},
		{"incorrect", false, 0.05 / 0.45, 0.3778},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.post, Posterior(0.5, 0.2, 0.1, tt.correct), 1e-12)
			assert.InDelta(t, tt.want, Update(0.5, 0.3, 0.2, 0.1, tt.correct), 1e-4)
		})
	}
}

func TestUpdate_UnknownLearnerWrongAnswer(t *testing.T) {
	for _, pL := range grid {
		for _, pG := range []float64{0.01, 0.2, 0.5, 0.99} {
			got := Update(0, pL, pG, 0.1, false)
			if got != pL {
				t.Errorf("Update(0, %v, %v, 0.1, false) = %v, want exactly %v", pL, pG, got, pL)
			}
		}
	}
}

func TestUpdate_MonotoneInLearn(t *testing.T) {
	for _, pK := range grid {
		for _, pG := range grid {
			for _, pS := range grid {
				for _, correct := range []bool{true, false} {
					prev := Update(pK, 0, pG, pS, correct)
					for _, pL := range grid[1:] {
						got := Update(pK, pL, pG, pS, correct)
						if got < prev {
							t.Fatalf("p_learn=%v gave %v < %v (pK=%v pG=%v pS=%v correct=%v)",
								pL, got, prev, pK, pG, pS, correct)
						}
						prev = got
					}
				}
			}
		}
	}
}

func TestEstimate_PassesParamsThrough(t *testing.T) {
	p := Params{Learn: 0.123456789, Guess: math.Nextafter(0.2, 1), Slip: 0.1}

	res := Estimate(0.42, p, true)

	assert.Equal(t, math.Float64bits(p.Learn), math.Float64bits(res.Learn))
	assert.Equal(t, math.Float64bits(p.Guess), math.Float64bits(res.Guess))
	assert.Equal(t, math.Float64bits(p.Slip), math.Float64bits(res.Slip))
	assert.Equal(t, 0.42, res.Old)
	assert.Equal(t, Update(0.42, p.Learn, p.Guess, p.Slip, true), res.New)
}

func TestEstimate_RepeatedCorrectConverges(t *testing.T) {
	p := DefaultParams()
	pK := DefaultPrior
	for i := 0; i < 20; i++ {
		next := Estimate(pK, p, true).New
		require.GreaterOrEqual(t, next, pK, "step %d", i)
		pK = next
	}
	assert.Greater(t, pK, 0.99)
}

func TestParamsValidate(t *testing.T) {
	require.NoError(t, DefaultParams().Validate())

	err := Params{Learn: 1.5, Guess: -0.1, Slip: math.NaN()}.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidProbability))

	var pe *ProbabilityError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "p_learn", pe.Name)
	assert.Contains(t, err.Error(), "p_guess")
	assert.Contains(t, err.Error(), "p_slip")
}

func TestValidateProbability_Bounds(t *testing.T) {
	assert.NoError(t, ValidateProbability("p", 0))
	assert.NoError(t, ValidateProbability("p", 1))
	assert.Error(t, ValidateProbability("p", math.Inf(1)))
	assert.Error(t, ValidateProbability("p", -0.0001))
}
