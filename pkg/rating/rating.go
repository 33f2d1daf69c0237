package rating

import (
	"fmt"
	"math"
)

// Glicko-2 constants
const (
	scale         = 173.7178 // Glicko-2 scaling factor, keep as literal
	baseRating    = 1500
	epsilon       = 1e-6
	maxIterations = 100

	DefaultTau        = 0.5
	DefaultRating     = 1500
	DefaultDeviation  = 350
	DefaultVolatility = 0.06
)

// State is a player's rating on the public scale.
type State struct {
	Rating     float64
	Deviation  float64
	Volatility float64
}

// Opponent is a snapshot of an opposing player's rating at game time.
type Opponent struct {
	Rating    float64
	Deviation float64
}

// DefaultState returns the rating state given to new players.
func DefaultState() State {
	return State{
		Rating:     DefaultRating,
		Deviation:  DefaultDeviation,
		Volatility: DefaultVolatility,
	}
}

// Engine computes Glicko-2 rating updates. It holds no mutable state and is
// safe for concurrent use.
type Engine struct {
	tau float64
}

var defaultEngine = Engine{tau: DefaultTau}

// NewEngine returns an engine with the given volatility constraint tau.
func NewEngine(tau float64) (Engine, error) {
	if !isFinite(tau) || tau <= 0 {
		return Engine{}, fmt.Errorf("%w: tau must be positive, got %v", ErrInvalidInput, tau)
	}
	return Engine{tau: tau}, nil
}

// Tau returns the volatility constraint of the engine.
func (e Engine) Tau() float64 {
	return e.tau
}

// UpdateRating updates prior with the default engine.
func UpdateRating(prior State, opponents []Opponent, scores []float64) (State, error) {
	return defaultEngine.UpdateRating(prior, opponents, scores)
}

// UpdateRating returns the player's new rating state after one rating period
// against opponents, where scores[i] is the result against opponents[i]
// (1 win, 0.5 draw, 0 loss). Inputs are never modified.
func (e Engine) UpdateRating(prior State, opponents []Opponent, scores []float64) (State, error) {
	if err := validate(prior, opponents, scores); err != nil {
		return State{}, err
	}
	tau := e.tau
	if tau == 0 {
		tau = DefaultTau
	}

	mu := toMu(prior.Rating)
	phi := toPhi(prior.Deviation)
	sigma := prior.Volatility

	// No games: only the deviation grows.
	if len(opponents) == 0 {
		newPhi := math.Sqrt(phi*phi + sigma*sigma)
		deviation := math.Max(prior.Deviation, math.Round(newPhi*scale))
		if !isFinite(deviation) {
			return State{}, fmt.Errorf("%w: idle deviation is not finite", ErrNumericalDivergence)
		}
		return State{
			Rating:     prior.Rating,
			Deviation:  deviation,
			Volatility: sigma,
		}, nil
	}

	var sumVar, sumImp float64
	for i, opp := range opponents {
		muJ := toMu(opp.Rating)
		gJ := g(toPhi(opp.Deviation))
		eJ := expected(mu, muJ, gJ)
		sumVar += gJ * gJ * eJ * (1 - eJ)
		sumImp += gJ * (scores[i] - eJ)
	}
	v := 1 / sumVar
	if !isFinite(v) {
		return State{}, fmt.Errorf("%w: estimated variance is not finite", ErrNumericalDivergence)
	}
	delta := v * sumImp

	newSigma, err := solveVolatility(delta, phi, v, sigma, tau)
	if err != nil {
		return State{}, err
	}

	phiStar := math.Sqrt(phi*phi + newSigma*newSigma)
	newPhi := 1 / math.Sqrt(1/(phiStar*phiStar)+1/v)
	newMu := mu + newPhi*newPhi*sumImp

	next := State{
		Rating:     math.Round(baseRating + newMu*scale),
		Deviation:  math.Round(newPhi * scale),
		Volatility: newSigma,
	}
	if !isFinite(next.Rating) || !isFinite(next.Deviation) {
		return State{}, fmt.Errorf("%w: new rating is not finite", ErrNumericalDivergence)
	}
	return next, nil
}

// ExpectedScore returns the probability that player beats opponent.
func ExpectedScore(player State, opponent Opponent) float64 {
	return expected(toMu(player.Rating), toMu(opponent.Rating), g(toPhi(opponent.Deviation)))
}

// solveVolatility finds the new volatility with the Illinois algorithm.
func solveVolatility(delta, phi, v, sigma, tau float64) (float64, error) {
	a := math.Log(sigma * sigma)
	f := func(x float64) float64 {
		ex := math.Exp(x)
		d := phi*phi + v + ex
		return ex*(delta*delta-phi*phi-v-ex)/(2*d*d) - (x-a)/(tau*tau)
	}

	A := a
	var B float64
	if delta*delta > phi*phi+v {
		B = math.Log(delta*delta - phi*phi - v)
	} else {
		k := 1
		for ; k <= maxIterations; k++ {
			B = a - float64(k)*tau
			if f(B) >= 0 {
				break
			}
		}
		if k > maxIterations {
			return 0, fmt.Errorf("%w: no volatility bracket after %d steps", ErrNumericalDivergence, maxIterations)
		}
	}

	fA := f(A)
	fB := f(B)
	if !isFinite(fA) || !isFinite(fB) {
		return 0, fmt.Errorf("%w: volatility bracket is not finite", ErrNumericalDivergence)
	}
	for i := 0; math.Abs(B-A) > epsilon; i++ {
		if i >= maxIterations {
			return 0, fmt.Errorf("%w: volatility did not converge", ErrNumericalDivergence)
		}
		C := A + (A-B)*fA/(fB-fA)
		fC := f(C)
		if !isFinite(C) || !isFinite(fC) {
			return 0, fmt.Errorf("%w: volatility did not converge", ErrNumericalDivergence)
		}
		if fC*fB < 0 {
			A = B
			fA = fB
		} else {
			fA /= 2
		}
		B = C
		fB = fC
	}

	newSigma := math.Exp(A / 2)
	if !isFinite(newSigma) || newSigma <= 0 {
		return 0, fmt.Errorf("%w: volatility out of range", ErrNumericalDivergence)
	}
	return newSigma, nil
}

func toMu(rating float64) float64 { return (rating - baseRating) / scale }

func toPhi(deviation float64) float64 { return deviation / scale }

// g(phi) function
func g(phi float64) float64 {
	return 1 / math.Sqrt(1+3*phi*phi/(math.Pi*math.Pi))
}

// Expected score function
func expected(mu, muJ, gJ float64) float64 {
	return 1 / (1 + math.Exp(-gJ*(mu-muJ)))
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
