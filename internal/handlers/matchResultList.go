package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/chess-vn/slrating/internal/aws/auth"
	"github.com/chess-vn/slrating/internal/domains/dtos"
	"github.com/chess-vn/slrating/internal/domains/entities"
	"github.com/chess-vn/slrating/pkg/logging"
	"go.uber.org/zap"
)

type matchResultFetcher interface {
	FetchMatchResults(ctx context.Context, userId string, period entities.RatingPeriod) ([]entities.MatchResult, error)
}

type MatchResultListHandler struct {
	fetcher matchResultFetcher
}

func NewMatchResultListHandler(fetcher matchResultFetcher) *MatchResultListHandler {
	return &MatchResultListHandler{
		fetcher: fetcher,
	}
}

// Handle lists a user's match results, optionally limited to the period given
// by the "from" and "to" RFC3339 query parameters. Without "userId" the
// caller's own results are listed.
func (h *MatchResultListHandler) Handle(
	ctx context.Context,
	event events.APIGatewayProxyRequest,
) (
	events.APIGatewayProxyResponse,
	error,
) {
	userId, err := auth.UserIdFromAuthorizer(event.RequestContext.Authorizer)
	if err != nil {
		return events.APIGatewayProxyResponse{StatusCode: http.StatusUnauthorized}, nil
	}
	targetId, period, err := extractPeriodParameters(userId, event.QueryStringParameters)
	if err != nil {
		logging.Error("Failed to list match results", zap.Error(err))
		return events.APIGatewayProxyResponse{StatusCode: http.StatusBadRequest}, nil
	}
	matchResults, err := h.fetcher.FetchMatchResults(ctx, targetId, period)
	if err != nil {
		logging.Error("Failed to list match results", zap.String("user_id", targetId), zap.Error(err))
		return events.APIGatewayProxyResponse{StatusCode: http.StatusInternalServerError}, nil
	}

	matchResultListJson, err := json.Marshal(dtos.MatchResultListResponseFromEntities(matchResults))
	if err != nil {
		logging.Error("Failed to list match results", zap.Error(err))
		return events.APIGatewayProxyResponse{StatusCode: http.StatusInternalServerError}, nil
	}
	return events.APIGatewayProxyResponse{StatusCode: http.StatusOK, Body: string(matchResultListJson)}, nil
}

func extractPeriodParameters(userId string, params map[string]string) (string, entities.RatingPeriod, error) {
	targetId := userId
	if v, ok := params["userId"]; ok && v != "" {
		targetId = v
	}

	var period entities.RatingPeriod
	if v, ok := params["from"]; ok {
		from, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return "", entities.RatingPeriod{}, fmt.Errorf("invalid from: %w", err)
		}
		period.From = from
	}
	if v, ok := params["to"]; ok {
		to, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return "", entities.RatingPeriod{}, fmt.Errorf("invalid to: %w", err)
		}
		period.To = to
	}
	if !period.From.IsZero() && !period.To.IsZero() && period.To.Before(period.From) {
		return "", entities.RatingPeriod{}, fmt.Errorf("period ends before it starts")
	}
	return targetId, period, nil
}
