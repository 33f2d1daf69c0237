package rating

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput        = errors.New("invalid rating input")
	ErrNumericalDivergence = errors.New("rating computation diverged")
)

func validate(prior State, opponents []Opponent, scores []float64) error {
	if len(opponents) != len(scores) {
		return fmt.Errorf("%w: %d opponents but %d scores", ErrInvalidInput, len(opponents), len(scores))
	}
	if !isFinite(prior.Rating) {
		return fmt.Errorf("%w: rating %v", ErrInvalidInput, prior.Rating)
	}
	if !isFinite(prior.Deviation) || prior.Deviation <= 0 {
		return fmt.Errorf("%w: deviation %v", ErrInvalidInput, prior.Deviation)
	}
	if !isFinite(prior.Volatility) || prior.Volatility <= 0 {
		return fmt.Errorf("%w: volatility %v", ErrInvalidInput, prior.Volatility)
	}
	for i, opp := range opponents {
		if !isFinite(opp.Rating) {
			return fmt.Errorf("%w: opponent %d rating %v", ErrInvalidInput, i, opp.Rating)
		}
		if !isFinite(opp.Deviation) || opp.Deviation <= 0 {
			return fmt.Errorf("%w: opponent %d deviation %v", ErrInvalidInput, i, opp.Deviation)
		}
		if !isFinite(scores[i]) || scores[i] < 0 || scores[i] > 1 {
			return fmt.Errorf("%w: score %d is %v", ErrInvalidInput, i, scores[i])
		}
	}
	return nil
}
