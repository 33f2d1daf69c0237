package interfaces

import (
	"context"
	"errors"

	"github.com/chess-vn/slrating/internal/domains/entities"
)

var (
	ErrUserRatingNotFound   = errors.New("user rating not found")
	ErrMatchAlreadyRecorded = errors.New("match already recorded")
)

type (
	IRatingUsecase interface {
		RecordMatch(ctx context.Context, record entities.MatchRecord) error
		RatePeriod(ctx context.Context, userId string, period entities.RatingPeriod) (entities.UserRating, error)
	}

	IRatingRepository interface {
		GetUserRating(ctx context.Context, userId string) (entities.UserRating, error)
		PutUserRating(ctx context.Context, userRating entities.UserRating) error
		PutMatchResult(ctx context.Context, matchResult entities.MatchResult) error
		FetchMatchResults(ctx context.Context, userId string, period entities.RatingPeriod) ([]entities.MatchResult, error)
	}
)
