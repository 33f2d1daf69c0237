package rating

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateRatingGlickmanExample(t *testing.T) {
	prior := State{Rating: 1500, Deviation: 200, Volatility: 0.06}
	opponents := []Opponent{
		{Rating: 1400, Deviation: 30},
		{Rating: 1550, Deviation: 100},
		{Rating: 1700, Deviation: 300},
	}
	scores := []float64{1, 0, 0}

	next, err := UpdateRating(prior, opponents, scores)
	require.NoError(t, err)

	assert.InDelta(t, 1464.06, next.Rating, 0.5)
	assert.InDelta(t, 151.52, next.Deviation, 0.5)
	assert.InDelta(t, 0.05999, next.Volatility, 0.0001)
	assert.Equal(t, math.Round(next.Rating), next.Rating)
	assert.Equal(t, math.Round(next.Deviation), next.Deviation)
}

func TestUpdateRatingDoesNotMutateInputs(t *testing.T) {
	prior := State{Rating: 1500, Deviation: 200, Volatility: 0.06}
	opponents := []Opponent{{Rating: 1400, Deviation: 30}, {Rating: 1550, Deviation: 100}}
	scores := []float64{1, 0.5}

	_, err := UpdateRating(prior, opponents, scores)
	require.NoError(t, err)

	assert.Equal(t, State{Rating: 1500, Deviation: 200, Volatility: 0.06}, prior)
	assert.Equal(t, []Opponent{{Rating: 1400, Deviation: 30}, {Rating: 1550, Deviation: 100}}, opponents)
	assert.Equal(t, []float64{1, 0.5}, scores)
}

func TestUpdateRatingIdle(t *testing.T) {
	tests := []struct {
		name  string
		prior State
	}{{
		"new player",
		DefaultState(),
	}, {
		"established player",
		State{Rating: 1830, Deviation: 45, Volatility: 0.059},
	}, {
		"fractional deviation",
		State{Rating: 1720, Deviation: 30.4, Volatility: 0.06},
	}, {
		"volatile player",
		State{Rating: 1210, Deviation: 120, Volatility: 0.3},
	}}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			next, err := UpdateRating(test.prior, nil, nil)
			require.NoError(t, err)
			assert.Equal(t, test.prior.Rating, next.Rating)
			assert.Equal(t, test.prior.Volatility, next.Volatility)
			assert.GreaterOrEqual(t, next.Deviation, test.prior.Deviation)
		})
	}
}

func TestUpdateRatingIdleRoundTrip(t *testing.T) {
	prior := State{Rating: 1500, Deviation: 200, Volatility: 0.06}

	next, err := UpdateRating(prior, []Opponent{}, []float64{})
	require.NoError(t, err)

	assert.Equal(t, 1500.0, next.Rating)
	assert.Equal(t, 200.0, next.Deviation)
	assert.Equal(t, 0.06, next.Volatility)
}

func TestUpdateRatingDrawBetweenEquals(t *testing.T) {
	a := State{Rating: 1500, Deviation: 200, Volatility: 0.06}
	b := State{Rating: 1500, Deviation: 200, Volatility: 0.06}

	nextA, err := UpdateRating(a, []Opponent{{Rating: b.Rating, Deviation: b.Deviation}}, []float64{0.5})
	require.NoError(t, err)
	nextB, err := UpdateRating(b, []Opponent{{Rating: a.Rating, Deviation: a.Deviation}}, []float64{0.5})
	require.NoError(t, err)

	assert.Equal(t, nextA, nextB)
	assert.Equal(t, 1500.0, nextA.Rating)
	assert.Less(t, nextA.Deviation, a.Deviation)
}

func TestUpdateRatingMonotonicInScore(t *testing.T) {
	prior := State{Rating: 1500, Deviation: 200, Volatility: 0.06}
	opponent := []Opponent{{Rating: 1600, Deviation: 80}}

	loss, err := UpdateRating(prior, opponent, []float64{0})
	require.NoError(t, err)
	draw, err := UpdateRating(prior, opponent, []float64{0.5})
	require.NoError(t, err)
	win, err := UpdateRating(prior, opponent, []float64{1})
	require.NoError(t, err)

	assert.LessOrEqual(t, loss.Rating, draw.Rating)
	assert.LessOrEqual(t, draw.Rating, win.Rating)
	assert.Less(t, loss.Rating, prior.Rating)
	assert.Greater(t, win.Rating, prior.Rating)
}

func TestUpdateRatingMoreGamesShrinkDeviation(t *testing.T) {
	prior := State{Rating: 1500, Deviation: 200, Volatility: 0.06}
	opponent := Opponent{Rating: 1500, Deviation: 100}

	one, err := UpdateRating(prior, []Opponent{opponent}, []float64{0.5})
	require.NoError(t, err)
	three, err := UpdateRating(prior, []Opponent{opponent, opponent, opponent}, []float64{0.5, 0.5, 0.5})
	require.NoError(t, err)

	assert.LessOrEqual(t, three.Deviation, one.Deviation)
	assert.Less(t, one.Deviation, prior.Deviation)
}

func TestUpdateRatingInvalidInput(t *testing.T) {
	valid := State{Rating: 1500, Deviation: 200, Volatility: 0.06}
	tests := []struct {
		name      string
		prior     State
		opponents []Opponent
		scores    []float64
	}{{
		"more opponents than scores",
		valid,
		[]Opponent{{1400, 30}, {1550, 100}},
		[]float64{1},
	}, {
		"scores without opponents",
		valid,
		nil,
		[]float64{1},
	}, {
		"score above one",
		valid,
		[]Opponent{{1400, 30}},
		[]float64{1.5},
	}, {
		"negative score",
		valid,
		[]Opponent{{1400, 30}},
		[]float64{-0.5},
	}, {
		"nan score",
		valid,
		[]Opponent{{1400, 30}},
		[]float64{math.NaN()},
	}, {
		"nan rating",
		State{Rating: math.NaN(), Deviation: 200, Volatility: 0.06},
		nil,
		nil,
	}, {
		"zero deviation",
		State{Rating: 1500, Deviation: 0, Volatility: 0.06},
		nil,
		nil,
	}, {
		"negative volatility",
		State{Rating: 1500, Deviation: 200, Volatility: -0.06},
		nil,
		nil,
	}, {
		"infinite opponent rating",
		valid,
		[]Opponent{{math.Inf(1), 30}},
		[]float64{1},
	}, {
		"zero opponent deviation",
		valid,
		[]Opponent{{1400, 0}},
		[]float64{1},
	}}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			next, err := UpdateRating(test.prior, test.opponents, test.scores)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Equal(t, State{}, next)
		})
	}
}

func TestUpdateRatingDivergence(t *testing.T) {
	tests := []struct {
		name      string
		prior     State
		opponents []Opponent
		scores    []float64
	}{{
		"opponent out of reach",
		State{Rating: 1500, Deviation: 200, Volatility: 0.06},
		[]Opponent{{Rating: 1e6, Deviation: 30}},
		[]float64{1},
	}, {
		"idle with huge deviation",
		State{Rating: 1500, Deviation: 1e200, Volatility: 0.06},
		nil,
		nil,
	}, {
		"idle with huge volatility",
		State{Rating: 1500, Deviation: 200, Volatility: 1e200},
		nil,
		nil,
	}}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			next, err := UpdateRating(test.prior, test.opponents, test.scores)
			assert.ErrorIs(t, err, ErrNumericalDivergence)
			assert.Equal(t, State{}, next)
		})
	}
}

func TestUpdateRatingBracketSearchCap(t *testing.T) {
	// tau*tau underflows to zero, so f is NaN and no bracket is ever found.
	engine, err := NewEngine(1e-300)
	require.NoError(t, err)

	prior := State{Rating: 1500, Deviation: 200, Volatility: 0.06}
	_, err = engine.UpdateRating(prior, []Opponent{{Rating: 1500, Deviation: 200}}, []float64{0.5})
	assert.ErrorIs(t, err, ErrNumericalDivergence)
	assert.Contains(t, err.Error(), "no volatility bracket")
}

func TestNewEngine(t *testing.T) {
	_, err := NewEngine(0)
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = NewEngine(math.NaN())
	assert.ErrorIs(t, err, ErrInvalidInput)

	engine, err := NewEngine(0.3)
	require.NoError(t, err)
	assert.Equal(t, 0.3, engine.Tau())

	// zero value falls back to the default tau
	var zero Engine
	prior := State{Rating: 1500, Deviation: 200, Volatility: 0.06}
	opponents := []Opponent{{1400, 30}, {1550, 100}, {1700, 300}}
	scores := []float64{1, 0, 0}
	got, err := zero.UpdateRating(prior, opponents, scores)
	require.NoError(t, err)
	want, err := UpdateRating(prior, opponents, scores)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestExpectedScore(t *testing.T) {
	player := State{Rating: 1500, Deviation: 200, Volatility: 0.06}

	assert.InDelta(t, 0.5, ExpectedScore(player, Opponent{Rating: 1500, Deviation: 50}), 1e-12)
	assert.InDelta(t, 0.639, ExpectedScore(player, Opponent{Rating: 1400, Deviation: 30}), 0.001)
	assert.Less(t, ExpectedScore(player, Opponent{Rating: 1700, Deviation: 300}), 0.5)
}

func TestUpdateRatingConcurrent(t *testing.T) {
	prior := State{Rating: 1500, Deviation: 200, Volatility: 0.06}
	opponents := []Opponent{{1400, 30}, {1550, 100}, {1700, 300}}
	scores := []float64{1, 0, 0}
	want, err := UpdateRating(prior, opponents, scores)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]State, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = UpdateRating(prior, opponents, scores)
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
}
