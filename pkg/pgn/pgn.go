package pgn

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/chess-vn/slrating/pkg/utils"
	"github.com/notnil/chess"
	"gopkg.in/freeeve/pgn.v1"
)

const dateLayout = "2006.01.02"

var (
	ErrMissingPlayer = errors.New("game has no player name")
	ErrSamePlayer    = errors.New("game has the same player on both sides")
)

// GameResult is a finished game read from PGN. Score is white's result.
type GameResult struct {
	MatchId  string
	White    string
	Black    string
	Score    float64
	PlayedAt time.Time
}

// ParseGameResults reads every game in r. Games without a decisive or drawn
// result are skipped. Games with no Date tag are dated defaultDate.
func ParseGameResults(r io.Reader, defaultDate time.Time) ([]GameResult, error) {
	ps := pgn.NewPGNScanner(r)

	var results []GameResult
	for n := 1; ps.Next(); n++ {
		game, err := ps.Scan()
		if err != nil {
			return nil, fmt.Errorf("failed to scan game %d: %w", n, err)
		}
		score, ok := scoreFromResult(game.Tags["Result"])
		if !ok {
			continue
		}
		white := strings.TrimSpace(game.Tags["White"])
		black := strings.TrimSpace(game.Tags["Black"])
		if white == "" || black == "" || white == "?" || black == "?" {
			return nil, fmt.Errorf("game %d: %w", n, ErrMissingPlayer)
		}
		if white == black {
			return nil, fmt.Errorf("game %d: %w: %s", n, ErrSamePlayer, white)
		}
		results = append(results, GameResult{
			MatchId:  utils.GenerateUUID(),
			White:    white,
			Black:    black,
			Score:    score,
			PlayedAt: parseDate(game.Tags["Date"], defaultDate),
		})
	}
	return results, nil
}

func ParseGameResultsFromString(pgnString string, defaultDate time.Time) ([]GameResult, error) {
	return ParseGameResults(strings.NewReader(pgnString), defaultDate)
}

func scoreFromResult(result string) (float64, bool) {
	switch chess.Outcome(strings.TrimSpace(result)) {
	case chess.WhiteWon:
		return 1, true
	case chess.BlackWon:
		return 0, true
	case chess.Draw:
		return 0.5, true
	}
	return 0, false
}

// parseDate accepts PGN dates; unknown parts such as "2024.??.??" fall back.
func parseDate(date string, fallback time.Time) time.Time {
	t, err := time.Parse(dateLayout, strings.TrimSpace(date))
	if err != nil {
		return fallback
	}
	return t
}
