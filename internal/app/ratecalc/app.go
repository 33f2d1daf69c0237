package ratecalc

import (
	"context"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/chess-vn/slrating/internal/domains/entities"
	"github.com/chess-vn/slrating/internal/repositories"
	"github.com/chess-vn/slrating/internal/usecases"
	"github.com/chess-vn/slrating/pkg/logging"
	"github.com/chess-vn/slrating/pkg/pgn"
	"github.com/chess-vn/slrating/pkg/rating"
	"go.uber.org/zap"
)

// App rates every game of a PGN file as a single rating period.
type App struct {
	cfg           Config
	ratingRepo    *repositories.RatingRepository
	ratingUsecase *usecases.RatingUsecase
	now           func() time.Time
}

type Standing struct {
	Player   string
	Games    int
	Score    float64
	Expected float64
	Rating   entities.UserRating
}

func NewApp(cfg Config) (*App, error) {
	engine, err := rating.NewEngine(cfg.Tau)
	if err != nil {
		return nil, err
	}
	ratingRepo := repositories.NewRatingRepository()
	return &App{
		cfg:           cfg,
		ratingRepo:    ratingRepo,
		ratingUsecase: usecases.NewRatingUsecase(ratingRepo, engine, cfg.DefaultState),
		now:           time.Now,
	}, nil
}

// Seed sets a player's rating before the period is rated.
func (a *App) Seed(ctx context.Context, userId string, state rating.State) error {
	return a.ratingRepo.PutUserRating(ctx, entities.NewUserRating(userId, state, time.Time{}))
}

// Rate records all games read from r and returns the standings, highest
// rating first.
func (a *App) Rate(ctx context.Context, r io.Reader) ([]Standing, error) {
	games, err := pgn.ParseGameResults(r, a.now().UTC())
	if err != nil {
		return nil, err
	}
	logging.Info("games loaded", zap.Int("games", len(games)))

	players := make(map[string]struct{})
	for _, game := range games {
		err := a.ratingUsecase.RecordMatch(ctx, entities.MatchRecord{
			MatchId:   game.MatchId,
			PlayerIds: [2]string{game.White, game.Black},
			Results:   [2]float64{game.Score, 1 - game.Score},
			EndedAt:   game.PlayedAt,
		})
		if err != nil {
			return nil, err
		}
		players[game.White] = struct{}{}
		players[game.Black] = struct{}{}
	}

	standings := make([]Standing, 0, len(players))
	for player := range players {
		standing, err := a.rate(ctx, player)
		if err != nil {
			return nil, err
		}
		standings = append(standings, standing)
	}
	sort.Slice(standings, func(i, j int) bool {
		if standings[i].Rating.Rating != standings[j].Rating.Rating {
			return standings[i].Rating.Rating > standings[j].Rating.Rating
		}
		return standings[i].Player < standings[j].Player
	})
	return standings, nil
}

func (a *App) rate(ctx context.Context, player string) (Standing, error) {
	prior := a.cfg.DefaultState
	if userRating, err := a.ratingRepo.GetUserRating(ctx, player); err == nil {
		prior = userRating.State()
	}
	matchResults, err := a.ratingRepo.FetchMatchResults(ctx, player, entities.RatingPeriod{})
	if err != nil {
		return Standing{}, err
	}

	standing := Standing{Player: player, Games: len(matchResults)}
	for _, matchResult := range matchResults {
		standing.Score += matchResult.Result
		standing.Expected += rating.ExpectedScore(prior, rating.Opponent{
			Rating:    matchResult.OpponentRating,
			Deviation: matchResult.OpponentRD,
		})
	}

	standing.Rating, err = a.ratingUsecase.RatePeriod(ctx, player, entities.RatingPeriod{})
	if err != nil {
		return Standing{}, err
	}
	return standing, nil
}

// Run rates the games in r and writes the standings table to out.
func (a *App) Run(ctx context.Context, r io.Reader, out io.Writer) error {
	standings, err := a.Rate(ctx, r)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PLAYER\tGAMES\tSCORE\tEXPECTED\tRATING\tRD\tVOLATILITY")
	for _, s := range standings {
		fmt.Fprintf(w, "%s\t%d\t%.1f\t%.2f\t%.0f\t%.0f\t%.6f\n",
			s.Player, s.Games, s.Score, s.Expected,
			s.Rating.Rating, s.Rating.RD, s.Rating.Volatility,
		)
	}
	return w.Flush()
}
