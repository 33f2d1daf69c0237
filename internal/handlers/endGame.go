package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/chess-vn/slrating/internal/domains/dtos"
	"github.com/chess-vn/slrating/internal/domains/entities"
	"github.com/chess-vn/slrating/internal/domains/interfaces"
	"github.com/chess-vn/slrating/pkg/logging"
	"go.uber.org/zap"
)

type EndGameHandler struct {
	ratingUsecase interfaces.IRatingUsecase
}

func NewEndGameHandler(ratingUsecase interfaces.IRatingUsecase) *EndGameHandler {
	return &EndGameHandler{
		ratingUsecase: ratingUsecase,
	}
}

// Handle records a finished match and rates both players with the match as
// their rating period. Each match is rated at most once; a redelivered event
// returns an empty rating list.
func (h *EndGameHandler) Handle(ctx context.Context, event json.RawMessage) (dtos.EndGameResponse, error) {
	var matchRecordReq dtos.MatchRecordRequest
	if err := json.Unmarshal(event, &matchRecordReq); err != nil {
		return dtos.EndGameResponse{}, fmt.Errorf("failed to unmarshal request: %w", err)
	}
	if err := matchRecordReq.Validate(); err != nil {
		return dtos.EndGameResponse{}, err
	}

	matchRecord := dtos.MatchRecordRequestToEntity(matchRecordReq)
	err := h.ratingUsecase.RecordMatch(ctx, matchRecord)
	if errors.Is(err, interfaces.ErrMatchAlreadyRecorded) {
		// Retried event: the match was rated by the first delivery.
		logging.Warn("match already recorded",
			zap.String("match_id", matchRecord.MatchId),
		)
		return dtos.EndGameResponse{MatchId: matchRecord.MatchId}, nil
	}
	if err != nil {
		return dtos.EndGameResponse{}, fmt.Errorf("failed to record match: %w", err)
	}

	// Results are stored at second precision.
	endedAt := matchRecord.EndedAt.Truncate(time.Second)
	period := entities.RatingPeriod{From: endedAt, To: endedAt}
	resp := dtos.EndGameResponse{MatchId: matchRecord.MatchId}
	for _, userId := range matchRecord.PlayerIds {
		userRating, err := h.ratingUsecase.RatePeriod(ctx, userId, period)
		if err != nil {
			logging.Error("failed to rate player",
				zap.String("match_id", matchRecord.MatchId),
				zap.String("user_id", userId),
				zap.Error(err),
			)
			return dtos.EndGameResponse{}, err
		}
		resp.Ratings = append(resp.Ratings, dtos.UserRatingResponseFromEntity(userRating))
	}
	return resp, nil
}
