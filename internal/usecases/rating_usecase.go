package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chess-vn/slrating/internal/domains/entities"
	"github.com/chess-vn/slrating/internal/domains/interfaces"
	"github.com/chess-vn/slrating/pkg/logging"
	"github.com/chess-vn/slrating/pkg/rating"
	"go.uber.org/zap"
)

type RatingUsecase struct {
	ratingRepo   interfaces.IRatingRepository
	engine       rating.Engine
	defaultState rating.State
	now          func() time.Time
}

func NewRatingUsecase(
	ratingRepo interfaces.IRatingRepository,
	engine rating.Engine,
	defaultState rating.State,
) *RatingUsecase {
	return &RatingUsecase{
		ratingRepo:   ratingRepo,
		engine:       engine,
		defaultState: defaultState,
		now:          time.Now,
	}
}

var _ interfaces.IRatingUsecase = (*RatingUsecase)(nil)

// RecordMatch stores one result row per player, each holding the opponent's
// rating as it was before this match is rated. Invalid records are rejected
// before anything is written, and a match already on record returns
// interfaces.ErrMatchAlreadyRecorded.
func (u *RatingUsecase) RecordMatch(ctx context.Context, record entities.MatchRecord) error {
	if err := record.Validate(); err != nil {
		return err
	}
	recorded, err := u.isRecorded(ctx, record)
	if err != nil {
		return err
	}
	if recorded {
		return fmt.Errorf("%w: %s", interfaces.ErrMatchAlreadyRecorded, record.MatchId)
	}

	var snapshots [2]entities.UserRating
	for i, userId := range record.PlayerIds {
		userRating, err := u.getUserRating(ctx, userId)
		if err != nil {
			return err
		}
		snapshots[i] = userRating
	}

	timestamp := entities.FormatTimestamp(record.EndedAt)
	for i, userId := range record.PlayerIds {
		opponent := snapshots[1-i]
		err := u.ratingRepo.PutMatchResult(ctx, entities.MatchResult{
			UserId:         userId,
			MatchId:        record.MatchId,
			OpponentId:     opponent.UserId,
			OpponentRating: opponent.Rating,
			OpponentRD:     opponent.RD,
			Result:         record.Results[i],
			Timestamp:      timestamp,
		})
		if err != nil {
			return fmt.Errorf("failed to put match result: %w", err)
		}
	}
	logging.Info("match recorded",
		zap.String("match_id", record.MatchId),
		zap.Strings("player_ids", record.PlayerIds[:]),
		zap.Float64s("results", record.Results[:]),
	)
	return nil
}

// RatePeriod rates userId against every result recorded inside period and
// stores the new rating. A period without results only grows the deviation.
func (u *RatingUsecase) RatePeriod(
	ctx context.Context,
	userId string,
	period entities.RatingPeriod,
) (
	entities.UserRating,
	error,
) {
	prior, err := u.getUserRating(ctx, userId)
	if err != nil {
		return entities.UserRating{}, err
	}
	matchResults, err := u.ratingRepo.FetchMatchResults(ctx, userId, period)
	if err != nil {
		return entities.UserRating{}, fmt.Errorf("failed to fetch match results: %w", err)
	}

	opponents := make([]rating.Opponent, 0, len(matchResults))
	scores := make([]float64, 0, len(matchResults))
	for _, matchResult := range matchResults {
		opponents = append(opponents, rating.Opponent{
			Rating:    matchResult.OpponentRating,
			Deviation: matchResult.OpponentRD,
		})
		scores = append(scores, matchResult.Result)
	}

	next, err := u.engine.UpdateRating(prior.State(), opponents, scores)
	if err != nil {
		return entities.UserRating{}, fmt.Errorf("failed to update rating of %s: %w", userId, err)
	}

	userRating := entities.NewUserRating(userId, next, u.now().UTC())
	if err := u.ratingRepo.PutUserRating(ctx, userRating); err != nil {
		return entities.UserRating{}, fmt.Errorf("failed to put user rating: %w", err)
	}
	logging.Info("rating updated",
		zap.String("user_id", userId),
		zap.Int("games", len(matchResults)),
		zap.Float64("old_rating", prior.Rating),
		zap.Float64("new_rating", next.Rating),
		zap.Float64("new_rd", next.Deviation),
		zap.Float64("new_volatility", next.Volatility),
	)
	return userRating, nil
}

// isRecorded looks for the match among the first player's results at its end
// time, the only instant a row for it can be stored at.
func (u *RatingUsecase) isRecorded(ctx context.Context, record entities.MatchRecord) (bool, error) {
	endedAt := record.EndedAt.Truncate(time.Second)
	matchResults, err := u.ratingRepo.FetchMatchResults(
		ctx,
		record.PlayerIds[0],
		entities.RatingPeriod{From: endedAt, To: endedAt},
	)
	if err != nil {
		return false, fmt.Errorf("failed to fetch match results: %w", err)
	}
	for _, matchResult := range matchResults {
		if matchResult.MatchId == record.MatchId {
			return true, nil
		}
	}
	return false, nil
}

func (u *RatingUsecase) getUserRating(ctx context.Context, userId string) (entities.UserRating, error) {
	userRating, err := u.ratingRepo.GetUserRating(ctx, userId)
	if errors.Is(err, interfaces.ErrUserRatingNotFound) {
		return entities.NewUserRating(userId, u.defaultState, time.Time{}), nil
	}
	if err != nil {
		return entities.UserRating{}, fmt.Errorf("failed to get user rating: %w", err)
	}
	return userRating, nil
}
