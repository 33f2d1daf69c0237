package pgn

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tournament = `[Event "Club Championship"]
[Site "Hanoi"]
[Date "2025.03.01"]
[Round "1"]
[White "Linh"]
[Black "Minh"]
[Result "1-0"]

1. e4 e5 2. Nf3 Nc6 3. Bb5 a6 1-0

[Event "Club Championship"]
[Site "Hanoi"]
[Date "2025.03.02"]
[Round "2"]
[White "Minh"]
[Black "An"]
[Result "1/2-1/2"]

1. d4 d5 2. c4 e6 1/2-1/2

[Event "Club Championship"]
[Site "Hanoi"]
[Date "????.??.??"]
[Round "3"]
[White "An"]
[Black "Linh"]
[Result "0-1"]

1. e4 c5 0-1

[Event "Club Championship"]
[Site "Hanoi"]
[Date "2025.03.04"]
[Round "4"]
[White "Linh"]
[Black "An"]
[Result "*"]

1. e4 *
`

func TestParseGameResults(t *testing.T) {
	fallback := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)

	results, err := ParseGameResultsFromString(tournament, fallback)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "Linh", results[0].White)
	assert.Equal(t, "Minh", results[0].Black)
	assert.Equal(t, 1.0, results[0].Score)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), results[0].PlayedAt)

	assert.Equal(t, 0.5, results[1].Score)

	assert.Equal(t, 0.0, results[2].Score)
	assert.Equal(t, fallback, results[2].PlayedAt)

	assert.NotEmpty(t, results[0].MatchId)
	assert.NotEqual(t, results[0].MatchId, results[1].MatchId)
}

func TestParseGameResultsBadPlayers(t *testing.T) {
	tests := []struct {
		name  string
		white string
		black string
		err   error
	}{
		{"unknown white", "?", "Minh", ErrMissingPlayer},
		{"empty black", "Lan", "", ErrMissingPlayer},
		{"same player", "Minh", "Minh", ErrSamePlayer},
		{"same player padded", "Minh", " Minh ", ErrSamePlayer},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			game := fmt.Sprintf(`[Event "Casual"]
[White "%s"]
[Black "%s"]
[Result "1-0"]

1. e4 e5 1-0
`, test.white, test.black)
			results, err := ParseGameResultsFromString(game, time.Time{})
			assert.ErrorIs(t, err, test.err)
			assert.Nil(t, results)
		})
	}
}

func TestScoreFromResult(t *testing.T) {
	tests := []struct {
		result   string
		expected float64
		ok       bool
	}{
		{"1-0", 1, true},
		{"0-1", 0, true},
		{"1/2-1/2", 0.5, true},
		{"*", 0, false},
		{"", 0, false},
	}

	for _, test := range tests {
		t.Run(test.result, func(t *testing.T) {
			score, ok := scoreFromResult(test.result)
			assert.Equal(t, test.ok, ok)
			assert.Equal(t, test.expected, score)
		})
	}
}
