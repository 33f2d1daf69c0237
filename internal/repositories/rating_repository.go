package repositories

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/chess-vn/slrating/internal/domains/entities"
	"github.com/chess-vn/slrating/internal/domains/interfaces"
)

// RatingRepository keeps ratings and match results in memory.
type RatingRepository struct {
	mu           sync.RWMutex
	userRatings  map[string]entities.UserRating
	matchResults map[string][]entities.MatchResult
}

var _ interfaces.IRatingRepository = (*RatingRepository)(nil)

func NewRatingRepository() *RatingRepository {
	return &RatingRepository{
		userRatings:  make(map[string]entities.UserRating),
		matchResults: make(map[string][]entities.MatchResult),
	}
}

func (r *RatingRepository) GetUserRating(ctx context.Context, userId string) (entities.UserRating, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	userRating, ok := r.userRatings[userId]
	if !ok {
		return entities.UserRating{}, interfaces.ErrUserRatingNotFound
	}
	return userRating, nil
}

func (r *RatingRepository) PutUserRating(ctx context.Context, userRating entities.UserRating) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.userRatings[userRating.UserId] = userRating
	return nil
}

// ListUserRatings returns all ratings, highest first.
func (r *RatingRepository) ListUserRatings(ctx context.Context) []entities.UserRating {
	r.mu.RLock()
	defer r.mu.RUnlock()
	userRatings := make([]entities.UserRating, 0, len(r.userRatings))
	for _, userRating := range r.userRatings {
		userRatings = append(userRatings, userRating)
	}
	sort.Slice(userRatings, func(i, j int) bool {
		if userRatings[i].Rating != userRatings[j].Rating {
			return userRatings[i].Rating > userRatings[j].Rating
		}
		return userRatings[i].UserId < userRatings[j].UserId
	})
	return userRatings
}

// PutMatchResult stores matchResult, replacing the user's earlier row for the
// same match.
func (r *RatingRepository) PutMatchResult(ctx context.Context, matchResult entities.MatchResult) error {
	if _, err := time.Parse(entities.TimestampFormat, matchResult.Timestamp); err != nil {
		return fmt.Errorf("invalid match result timestamp: %w", err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	matchResults := r.matchResults[matchResult.UserId]
	for i := range matchResults {
		if matchResults[i].MatchId == matchResult.MatchId {
			matchResults[i] = matchResult
			return nil
		}
	}
	r.matchResults[matchResult.UserId] = append(matchResults, matchResult)
	return nil
}

// FetchMatchResults returns userId's results inside period, oldest first.
func (r *RatingRepository) FetchMatchResults(
	ctx context.Context,
	userId string,
	period entities.RatingPeriod,
) (
	[]entities.MatchResult,
	error,
) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var matchResults []entities.MatchResult
	for _, matchResult := range r.matchResults[userId] {
		at, err := time.Parse(entities.TimestampFormat, matchResult.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("invalid match result timestamp: %w", err)
		}
		if period.Contains(at) {
			matchResults = append(matchResults, matchResult)
		}
	}
	sort.SliceStable(matchResults, func(i, j int) bool {
		return matchResults[i].Timestamp < matchResults[j].Timestamp
	})
	return matchResults, nil
}
